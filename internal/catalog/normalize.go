package catalog

import (
	"fmt"
	"math"
	"time"

	"github.com/tidwall/gjson"

	"github.com/campuseats/sitebuilder/internal/foundation/errors"
	"github.com/campuseats/sitebuilder/internal/jsonc"
)

// Normalize walks the raw restaurants document and produces a validated
// Catalog. Entities are normalized in the order their keys appear in the
// source, and that order is the display order everywhere downstream.
//
// The returned tree is freshly built; nothing aliases the parsed document.
func Normalize(doc *jsonc.Document) (*Catalog, error) {
	cat := &Catalog{bySlug: make(map[string]int)}

	var firstErr error
	doc.ForEachKey(func(key string, raw gjson.Result) bool {
		r, err := normalizeRestaurant(key, raw, doc.Path())
		if err != nil {
			firstErr = err
			return false
		}
		if _, dup := cat.bySlug[r.Slug]; dup {
			firstErr = errors.ValidationError("duplicate slug").
				WithContext("path", doc.Path()).
				WithContext("slug", r.Slug).Build()
			return false
		}
		cat.bySlug[r.Slug] = len(cat.Restaurants)
		cat.Restaurants = append(cat.Restaurants, r)
		return true
	})
	if firstErr != nil {
		return nil, firstErr
	}
	return cat, nil
}

func normalizeRestaurant(key string, raw gjson.Result, path string) (Restaurant, error) {
	if !raw.IsObject() {
		return Restaurant{}, errors.ValidationError("entity must be an object").
			WithContext("path", path).
			WithContext("key_path", key).Build()
	}

	slug := raw.Get("slug").String()
	if slug == "" {
		return Restaurant{}, errors.ValidationError("missing required field").
			WithContext("path", path).
			WithContext("key_path", key+".slug").Build()
	}
	if slug != key {
		return Restaurant{}, errors.ValidationError("slug does not match its storing key").
			WithContext("path", path).
			WithContext("key_path", key+".slug").
			WithContext("slug", slug).Build()
	}
	name := raw.Get("name").String()
	if name == "" {
		return Restaurant{}, errors.ValidationError("missing required field").
			WithContext("path", path).
			WithContext("key_path", key+".name").Build()
	}

	r := Restaurant{
		Slug:        slug,
		Name:        name,
		Description: raw.Get("description").String(),
		WebsiteSlug: raw.Get("website_slug").String(),
		Hours:       map[string]string{},
		Contact: Contact{
			Phone: raw.Get("contact.phone").String(),
			Email: raw.Get("contact.email").String(),
		},
		Logo:      resolveAsset(raw, "local_logo_path", "remote_logo_url"),
		Banner:    resolveAsset(raw, "local_banner_path", "remote_banner_url"),
		CreatedBy: raw.Get("created_by").String(),
		EditedBy:  []string{},
		Reviews:   []Review{},
	}

	raw.Get("hours").ForEach(func(day, span gjson.Result) bool {
		r.Hours[day.String()] = span.String()
		return true
	})
	raw.Get("edited_by").ForEach(func(_, editor gjson.Result) bool {
		r.EditedBy = append(r.EditedBy, editor.String())
		return true
	})

	var reviewErr error
	raw.Get("reviews").ForEach(func(idx, rawReview gjson.Result) bool {
		review, err := normalizeReview(rawReview, fmt.Sprintf("%s.reviews[%d]", key, len(r.Reviews)), path)
		if err != nil {
			reviewErr = err
			return false
		}
		r.Reviews = append(r.Reviews, review)
		return true
	})
	if reviewErr != nil {
		return Restaurant{}, reviewErr
	}
	return r, nil
}

func normalizeReview(raw gjson.Result, keyPath, path string) (Review, error) {
	fail := func(msg, field string) (Review, error) {
		return Review{}, errors.ValidationError(msg).
			WithContext("path", path).
			WithContext("key_path", keyPath+"."+field).Build()
	}

	author := raw.Get("author").String()
	if author == "" {
		return fail("missing required field", "author")
	}

	rating, ok := intField(raw.Get("rating"))
	if !ok || rating < 1 || rating > 5 {
		return fail("rating must be an integer between 1 and 5", "rating")
	}

	date := raw.Get("date").String()
	if _, err := time.Parse("2006-01-02", date); err != nil {
		return fail("date must be a calendar date in YYYY-MM-DD form", "date")
	}

	upvotes, ok := countField(raw.Get("upvotes"))
	if !ok {
		return fail("upvotes must be a non-negative integer", "upvotes")
	}
	downvotes, ok := countField(raw.Get("downvotes"))
	if !ok {
		return fail("downvotes must be a non-negative integer", "downvotes")
	}

	return Review{
		Author:         author,
		AuthorImageURL: raw.Get("author_image_url").String(),
		Date:           date,
		Rating:         rating,
		Description:    raw.Get("description").String(),
		AttachmentURL:  raw.Get("attachment_url").String(),
		Upvotes:        upvotes,
		Downvotes:      downvotes,
	}, nil
}

// intField extracts an integral JSON number.
func intField(v gjson.Result) (int, bool) {
	if v.Type != gjson.Number {
		return 0, false
	}
	f := v.Float()
	if f != math.Trunc(f) {
		return 0, false
	}
	return int(f), true
}

// countField extracts a non-negative integer, defaulting an absent value to
// zero.
func countField(v gjson.Result) (int, bool) {
	if !v.Exists() || v.Type == gjson.Null {
		return 0, true
	}
	n, ok := intField(v)
	if !ok || n < 0 {
		return 0, false
	}
	return n, true
}

// resolveAsset applies the fixed precedence rule: a local path beats a
// remote URL, an only-remote reference is used verbatim, and neither yields
// the explicit no-asset marker.
func resolveAsset(raw gjson.Result, localKey, remoteKey string) Asset {
	if local := raw.Get(localKey).String(); local != "" {
		return Asset{Source: AssetLocal, Ref: local}
	}
	if remote := raw.Get(remoteKey).String(); remote != "" {
		return Asset{Source: AssetRemote, Ref: remote}
	}
	return Asset{Source: AssetNone}
}

// NormalizeHomepage builds the optional Homepage record. The schema is
// site-defined: everything is carried through in Fields, with assets and the
// title resolved the same way entity fields are.
func NormalizeHomepage(doc *jsonc.Document) (*Homepage, error) {
	root := doc.Root()
	fields, ok := root.Value().(map[string]any)
	if !ok {
		return nil, errors.ValidationError("homepage data must be an object").
			WithContext("path", doc.Path()).Build()
	}
	title := root.Get("title").String()
	if title == "" {
		title = root.Get("name").String()
	}
	return &Homepage{
		Title:        title,
		ExtraContent: root.Get("extra_content").String(),
		Logo:         resolveAsset(root, "local_logo_path", "remote_logo_url"),
		Banner:       resolveAsset(root, "local_banner_path", "remote_banner_url"),
		Fields:       fields,
	}, nil
}
