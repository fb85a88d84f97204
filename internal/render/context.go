// Package render builds per-page template contexts and renders them through
// the scriggo template engine.
package render

import (
	"bytes"
	"strings"

	"github.com/open2b/scriggo/native"
	"github.com/yuin/goldmark"

	"github.com/campuseats/sitebuilder/internal/catalog"
	"github.com/campuseats/sitebuilder/internal/foundation/errors"
)

// Page kinds. The kind, not the identity, decides where a page is written:
// an entity slug is free to collide with the words "homepage" or "listing".
const (
	KindRestaurant = "restaurant"
	KindListing    = "listing"
	KindHomepage   = "homepage"
)

// Page is one renderable unit: a kind and identity for routing and
// diagnostics, and the variable set handed to the template. Pages are fresh,
// render-only views; they never alias or mutate catalog data.
type Page struct {
	Kind string
	ID   string
	Vars map[string]any
}

// HoursRow is one weekday's opening hours, in display order.
type HoursRow struct {
	Day  string
	Span string
}

// ReviewView is the template-facing shape of a review.
type ReviewView struct {
	Author         string
	AuthorImageURL string
	Date           string
	Rating         int
	Description    string
	AttachmentURL  string
	Upvotes        int
	Downvotes      int
}

// SummaryCard is one entry of the cross-entity summary used for link
// generation on the listing and homepage.
type SummaryCard struct {
	Slug    string
	Name    string
	Href    string
	LogoURL string
	HasLogo bool
}

// weekdays is the display order for opening hours. Days absent from the
// source are unspecified and not listed.
var weekdays = []string{
	"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday",
}

var md = goldmark.New()

// EntityPage builds the context for the restaurant at index i.
// Previous/next navigation follows source insertion order; the slugs are
// empty at either end of the collection.
func EntityPage(cat *catalog.Catalog, i int) (Page, error) {
	r := &cat.Restaurants[i]

	descriptionHTML, err := renderMarkdown(r.Description, r.Slug)
	if err != nil {
		return Page{}, err
	}

	prev, next := "", ""
	if i > 0 {
		prev = cat.Restaurants[i-1].Slug
	}
	if i < cat.Len()-1 {
		next = cat.Restaurants[i+1].Slug
	}

	vars := baseVars(KindRestaurant, r.Name)
	vars["item"] = itemFields(r)
	vars["description_html"] = descriptionHTML
	vars["created_by"] = r.CreatedBy
	vars["edited_by_display"] = joinEditors(r.EditedBy)
	vars["hours"] = hoursList(r.Hours)
	vars["reviews"] = reviewList(r.Reviews)
	vars["prev_slug"] = prev
	vars["next_slug"] = next
	applyAssets(vars, r.Logo, r.Banner)
	return Page{Kind: KindRestaurant, ID: r.Slug, Vars: vars}, nil
}

// ListingPage builds the context for the all-restaurants index page. Cards
// link to sibling files, so hrefs are relative to the restaurants directory.
func ListingPage(siteTitle string, cat *catalog.Catalog) Page {
	vars := baseVars(KindListing, siteTitle)
	vars["summary"] = summaryList(cat, "./")
	return Page{Kind: KindListing, ID: KindListing, Vars: vars}
}

// HomepagePage builds the context for the landing page. The homepage record
// is passed through opaquely as the item, enriched with the entity summary
// for link generation. Hrefs are relative to the output root.
func HomepagePage(cat *catalog.Catalog) Page {
	hp := cat.Homepage
	item := make(map[string]any, len(hp.Fields)+1)
	for k, v := range hp.Fields {
		item[k] = v
	}
	item["name"] = hp.Title

	vars := baseVars(KindHomepage, hp.Title)
	vars["item"] = item
	vars["summary"] = summaryList(cat, "./restaurants/")
	vars["extra_content"] = native.HTML(hp.ExtraContent)
	applyAssets(vars, hp.Logo, hp.Banner)
	return Page{Kind: KindHomepage, ID: KindHomepage, Vars: vars}
}

// baseVars seeds every declared template global so each page renders from a
// complete, deterministic variable set.
func baseVars(kind, title string) map[string]any {
	return map[string]any{
		"kind":              kind,
		"page_title":        title,
		"item":              map[string]any{},
		"summary":           []SummaryCard{},
		"hours":             []HoursRow{},
		"reviews":           []ReviewView{},
		"description_html":  native.HTML(""),
		"created_by":        "",
		"edited_by_display": "",
		"logo_url":          "",
		"has_logo":          false,
		"banner_url":        "",
		"has_banner":        false,
		"extra_content":     native.HTML(""),
		"prev_slug":         "",
		"next_slug":         "",
	}
}

// itemFields exposes the entity's plain attributes as an opaque mapping for
// site-specific templates that go beyond the typed globals.
func itemFields(r *catalog.Restaurant) map[string]any {
	return map[string]any{
		"slug":         r.Slug,
		"name":         r.Name,
		"description":  r.Description,
		"website_slug": r.WebsiteSlug,
		"phone":        r.Contact.Phone,
		"email":        r.Contact.Email,
	}
}

// applyAssets exposes resolved assets to the template. The has_* booleans
// are the explicit no-asset markers templates branch on; an absent asset is
// never just an empty URL.
func applyAssets(vars map[string]any, logo, banner catalog.Asset) {
	if logo.Present() {
		vars["logo_url"] = logo.Ref
		vars["has_logo"] = true
	}
	if banner.Present() {
		vars["banner_url"] = banner.Ref
		vars["has_banner"] = true
	}
}

func summaryList(cat *catalog.Catalog, hrefPrefix string) []SummaryCard {
	summary := make([]SummaryCard, 0, cat.Len())
	for _, r := range cat.Restaurants {
		card := SummaryCard{
			Slug: r.Slug,
			Name: r.Name,
			Href: hrefPrefix + r.Slug + ".html",
		}
		if r.Logo.Present() {
			card.LogoURL = r.Logo.Ref
			card.HasLogo = true
		}
		summary = append(summary, card)
	}
	return summary
}

// joinEditors returns the display form of the editor list: comma-and-space
// separated, empty string (not absent) for an empty list.
func joinEditors(editors []string) string {
	return strings.Join(editors, ", ")
}

func hoursList(hours map[string]string) []HoursRow {
	list := make([]HoursRow, 0, len(hours))
	for _, day := range weekdays {
		if span, ok := hours[day]; ok {
			list = append(list, HoursRow{Day: day, Span: span})
		}
	}
	return list
}

func reviewList(reviews []catalog.Review) []ReviewView {
	list := make([]ReviewView, 0, len(reviews))
	for _, rv := range reviews {
		list = append(list, ReviewView(rv))
	}
	return list
}

func renderMarkdown(source, slug string) (native.HTML, error) {
	var buf bytes.Buffer
	if err := md.Convert([]byte(source), &buf); err != nil {
		return "", errors.WrapError(err, errors.CategoryRender, "failed to render description markdown").
			WithContext("slug", slug).Build()
	}
	return native.HTML(buf.String()), nil
}
