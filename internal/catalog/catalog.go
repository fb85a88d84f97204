// Package catalog defines the normalized restaurant data model and the
// normalizer that produces it from raw parsed data.
package catalog

// AssetSource identifies which reference an asset was resolved from.
type AssetSource string

const (
	// AssetNone is the explicit no-asset marker: neither a local path nor a
	// remote URL was supplied.
	AssetNone   AssetSource = "none"
	AssetLocal  AssetSource = "local"
	AssetRemote AssetSource = "remote"
)

// Asset is a resolved image reference. When both a local path and a remote
// URL are present in the source, the local path wins: a local deployment
// stays self-contained. Remote URLs are stored verbatim and never fetched.
type Asset struct {
	Source AssetSource
	Ref    string
}

// Present reports whether the asset resolved to a usable reference.
func (a Asset) Present() bool { return a.Source != AssetNone }

// Contact holds optional contact details. Empty string means absent.
type Contact struct {
	Phone string
	Email string
}

// Review is one customer review nested under a restaurant.
// Upvotes and Downvotes are opaque display counters; nothing derives a
// score or ordering from them.
type Review struct {
	Author         string
	AuthorImageURL string
	Date           string // YYYY-MM-DD
	Rating         int    // 1..5
	Description    string
	AttachmentURL  string
	Upvotes        int
	Downvotes      int
}

// Restaurant is one normalized entity. After normalization a Restaurant is
// never mutated; the rendering layer builds fresh views over it.
type Restaurant struct {
	Slug        string
	Name        string
	Description string // Markdown
	WebsiteSlug string
	Hours       map[string]string // weekday -> free-text range; missing day = unspecified
	Contact     Contact
	Logo        Asset
	Banner      Asset
	CreatedBy   string
	EditedBy    []string // never nil; source order preserved
	Reviews     []Review // never nil
}

// Homepage holds site-wide fields for the landing page. The schema is
// site-defined, so the raw mapping is carried through opaquely next to the
// few fields the pipeline interprets itself.
type Homepage struct {
	Title        string
	ExtraContent string // raw HTML passthrough
	Logo         Asset
	Banner       Asset
	Fields       map[string]any
}

// Catalog is the validated, ordered restaurant collection. Slugs are unique
// and Restaurants iterates in source insertion order.
type Catalog struct {
	Restaurants []Restaurant
	Homepage    *Homepage

	bySlug map[string]int
}

// Len returns the number of restaurants.
func (c *Catalog) Len() int { return len(c.Restaurants) }

// Lookup returns the restaurant with the given slug.
func (c *Catalog) Lookup(slug string) (*Restaurant, bool) {
	i, ok := c.bySlug[slug]
	if !ok {
		return nil, false
	}
	return &c.Restaurants[i], true
}
