package render

import (
	"os"
	"testing"

	"github.com/gkampitakis/go-snaps/snaps"
	"github.com/open2b/scriggo/native"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campuseats/sitebuilder/internal/catalog"
	"github.com/campuseats/sitebuilder/internal/foundation/errors"
	"github.com/campuseats/sitebuilder/internal/jsonc"
)

func TestMain(m *testing.M) {
	v := m.Run()
	snaps.Clean(m)
	os.Exit(v)
}

func testCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	doc, err := jsonc.Parse([]byte(`{
		"first": {
			"slug": "first", "name": "First Place",
			"description": "A **bold** start.",
			"hours": {"Friday": "1pm-2pm", "Monday": "9am-5pm"},
			"local_logo_path": "img/first.png",
			"remote_logo_url": "https://cdn.example/first.png",
			"remote_banner_url": "https://cdn.example/first-banner.jpg",
			"created_by": "crew",
			"edited_by": ["A", "B", "C"],
			"reviews": [{"author": "pat", "date": "2024-01-02", "rating": 5, "description": "great", "upvotes": 2, "downvotes": 1}]
		},
		"second": {"slug": "second", "name": "Second Place"},
		"third": {"slug": "third", "name": "Third Place"}
	}`), "restaurants.jsonc")
	require.NoError(t, err)
	cat, err := catalog.Normalize(doc)
	require.NoError(t, err)
	return cat
}

func TestEntityPageDerivedFields(t *testing.T) {
	cat := testCatalog(t)
	page, err := EntityPage(cat, 0)
	require.NoError(t, err)

	assert.Equal(t, "first", page.ID)
	assert.Equal(t, "restaurant", page.Vars["kind"])
	assert.Equal(t, "First Place", page.Vars["page_title"])
	assert.Equal(t, "A, B, C", page.Vars["edited_by_display"])

	// Local logo wins over remote; banner is remote verbatim.
	assert.Equal(t, "img/first.png", page.Vars["logo_url"])
	assert.Equal(t, true, page.Vars["has_logo"])
	assert.Equal(t, "https://cdn.example/first-banner.jpg", page.Vars["banner_url"])

	// Hours come out in weekday order regardless of source order.
	hours := page.Vars["hours"].([]HoursRow)
	require.Len(t, hours, 2)
	assert.Equal(t, "Monday", hours[0].Day)
	assert.Equal(t, "Friday", hours[1].Day)
}

func TestEntityPageMarkdownDescription(t *testing.T) {
	cat := testCatalog(t)
	page, err := EntityPage(cat, 0)
	require.NoError(t, err)
	assert.Contains(t, string(page.Vars["description_html"].(native.HTML)), "<strong>bold</strong>")
}

func TestEntityPageNoAssetMarker(t *testing.T) {
	cat := testCatalog(t)
	page, err := EntityPage(cat, 1)
	require.NoError(t, err)
	assert.Equal(t, false, page.Vars["has_logo"])
	assert.Equal(t, false, page.Vars["has_banner"])
	assert.Equal(t, "", page.Vars["logo_url"])
}

func TestEntityPageEmptyEditors(t *testing.T) {
	cat := testCatalog(t)
	page, err := EntityPage(cat, 1)
	require.NoError(t, err)
	display, ok := page.Vars["edited_by_display"].(string)
	require.True(t, ok, "display string must be present even when empty")
	assert.Equal(t, "", display)
}

func TestNavigationFollowsInsertionOrder(t *testing.T) {
	cat := testCatalog(t)

	first, err := EntityPage(cat, 0)
	require.NoError(t, err)
	assert.Equal(t, "", first.Vars["prev_slug"])
	assert.Equal(t, "second", first.Vars["next_slug"])

	mid, err := EntityPage(cat, 1)
	require.NoError(t, err)
	assert.Equal(t, "first", mid.Vars["prev_slug"])
	assert.Equal(t, "third", mid.Vars["next_slug"])

	last, err := EntityPage(cat, 2)
	require.NoError(t, err)
	assert.Equal(t, "", last.Vars["next_slug"])
}

func TestSummaryHrefsPerPageKind(t *testing.T) {
	cat := testCatalog(t)

	listing := ListingPage("Guide", cat)
	cards := listing.Vars["summary"].([]SummaryCard)
	require.Len(t, cards, 3)
	assert.Equal(t, "./first.html", cards[0].Href)
	assert.True(t, cards[0].HasLogo)
	assert.False(t, cards[1].HasLogo)

	cat.Homepage = &catalog.Homepage{Title: "Campus Eats", Fields: map[string]any{}}
	home := HomepagePage(cat)
	cards = home.Vars["summary"].([]SummaryCard)
	assert.Equal(t, "./restaurants/first.html", cards[0].Href)
}

func TestRendererRendersEntityPage(t *testing.T) {
	cat := testCatalog(t)
	r, err := NewRendererFromFile("../../templates/skeleton.html")
	require.NoError(t, err)

	page, err := EntityPage(cat, 0)
	require.NoError(t, err)
	out, err := r.Render(page)
	require.NoError(t, err)

	assert.Contains(t, out, "<title>First Place</title>")
	assert.Contains(t, out, "img/first.png")
	assert.Contains(t, out, "Edited by A, B, C.")
	assert.Contains(t, out, `href="./second.html"`)
}

func TestRendererSnapshotEntityPage(t *testing.T) {
	cat := testCatalog(t)
	r, err := NewRendererFromFile("../../templates/skeleton.html")
	require.NoError(t, err)

	page, err := EntityPage(cat, 0)
	require.NoError(t, err)
	out, err := r.Render(page)
	require.NoError(t, err)
	snaps.WithConfig(snaps.Ext(".html")).MatchSnapshot(t, out)
}

func TestRendererSnapshotHomepage(t *testing.T) {
	cat := testCatalog(t)
	cat.Homepage = &catalog.Homepage{
		Title:        "Campus Eats",
		ExtraContent: "<p>welcome</p>",
		Fields:       map[string]any{},
	}
	r, err := NewRendererFromFile("../../templates/skeleton.html")
	require.NoError(t, err)

	out, err := r.Render(HomepagePage(cat))
	require.NoError(t, err)
	assert.Contains(t, out, "<p>welcome</p>")
	snaps.WithConfig(snaps.Ext(".html")).MatchSnapshot(t, out)
}

func TestRendererIsDeterministic(t *testing.T) {
	cat := testCatalog(t)
	r, err := NewRendererFromFile("../../templates/skeleton.html")
	require.NoError(t, err)

	page, err := EntityPage(cat, 0)
	require.NoError(t, err)
	first, err := r.Render(page)
	require.NoError(t, err)
	for i := 0; i < 5; i++ {
		again, err := r.Render(page)
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}

func TestRendererEscapesEntityText(t *testing.T) {
	doc, err := jsonc.Parse([]byte(`{"x": {"slug": "x", "name": "<Sneaky> & Sons"}}`), "r.jsonc")
	require.NoError(t, err)
	cat, err := catalog.Normalize(doc)
	require.NoError(t, err)

	r, err := NewRenderer([]byte(`<h1>{{ page_title }}</h1>`), "inline")
	require.NoError(t, err)
	page, err := EntityPage(cat, 0)
	require.NoError(t, err)
	out, err := r.Render(page)
	require.NoError(t, err)
	assert.NotContains(t, out, "<Sneaky>")
	assert.Contains(t, out, "&amp;")
}

func TestMalformedTemplateIsRenderError(t *testing.T) {
	_, err := NewRenderer([]byte(`{% if has_logo %}unterminated`), "broken.html")
	require.Error(t, err)
	assert.True(t, errors.HasCategory(err, errors.CategoryRender))
}

func TestUnknownVariableIsRenderError(t *testing.T) {
	_, err := NewRenderer([]byte(`{{ no_such_variable }}`), "unknown.html")
	require.Error(t, err)
	classified, ok := errors.AsClassified(err)
	require.True(t, ok)
	assert.Equal(t, errors.CategoryRender, classified.Category())
	path, _ := classified.Context().GetString("path")
	assert.Equal(t, "unknown.html", path)
}

func TestMissingTemplateFile(t *testing.T) {
	_, err := NewRendererFromFile("testdata/does-not-exist.html")
	require.Error(t, err)
	assert.True(t, errors.HasCategory(err, errors.CategoryRender))
}
