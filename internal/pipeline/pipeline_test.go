package pipeline

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campuseats/sitebuilder/internal/foundation/errors"
)

const testTemplate = `<!DOCTYPE html>
<html><head><title>{{ page_title }}</title></head>
<body>
{% if has_logo %}<img src="{{ logo_url }}">{% end %}
{% if kind == "restaurant" %}
<div>{{ description_html }}</div>
{% if edited_by_display != "" %}<footer>Edited by {{ edited_by_display }}</footer>{% end %}
{% if prev_slug != "" %}<a href="./{{ prev_slug }}.html">prev</a>{% end %}
{% if next_slug != "" %}<a href="./{{ next_slug }}.html">next</a>{% end %}
{% end %}
{% if kind == "listing" || kind == "homepage" %}
<ul>{% for card in summary %}<li><a href="{{ card.Href }}">{{ card.Name }}</a></li>{% end %}</ul>
{{ extra_content }}
{% end %}
</body></html>
`

const testRestaurants = `{
	// two entries, insertion order matters
	"beta-bites": {
		"slug": "beta-bites",
		"name": "Beta Bites",
		"description": "Try the *special*.",
		"local_logo_path": "logo.png",
		"remote_logo_url": "https://cdn.example/beta.png",
		"edited_by": ["A", "B"], // display order preserved
	},
	"alpha-grill": {
		"slug": "alpha-grill",
		"name": "Alpha Grill",
		"remote_banner_url": "https://cdn.example/alpha-banner.jpg",
	},
}`

const testHomepage = `{
	"title": "Test Site",
	"extra_content": "<p>hello</p>", // raw passthrough
}`

type fixture struct {
	opts Options
	dir  string
}

func setup(t *testing.T, restaurants, homepage string) fixture {
	t.Helper()
	dir := t.TempDir()

	write := func(name, content string) string {
		path := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
		return path
	}

	f := fixture{dir: dir}
	f.opts = Options{
		RestaurantsPath: write("restaurants.jsonc", restaurants),
		HomepagePath:    filepath.Join(dir, "homepage.jsonc"),
		TemplatePath:    write("skeleton.html", testTemplate),
		OutputDir:       filepath.Join(dir, "out"),
		SiteTitle:       "Test Guide",
	}
	if homepage != "" {
		write("homepage.jsonc", homepage)
	}
	return f
}

func readTree(t *testing.T, root string) map[string]string {
	t.Helper()
	tree := map[string]string{}
	err := filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil || info.IsDir() {
			return err
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		rel, _ := filepath.Rel(root, path)
		tree[rel] = string(data)
		return nil
	})
	require.NoError(t, err)
	return tree
}

func TestBuildProducesFullTree(t *testing.T) {
	f := setup(t, testRestaurants, testHomepage)
	require.NoError(t, Build(f.opts))

	tree := readTree(t, f.opts.OutputDir)
	assert.Contains(t, tree, "index.html")
	assert.Contains(t, tree, filepath.Join("restaurants", "index.html"))
	assert.Contains(t, tree, filepath.Join("restaurants", "beta-bites.html"))
	assert.Contains(t, tree, filepath.Join("restaurants", "alpha-grill.html"))
	assert.Len(t, tree, 4)

	entity := tree[filepath.Join("restaurants", "beta-bites.html")]
	assert.Contains(t, entity, "<title>Beta Bites</title>")
	// Local logo wins over the remote URL.
	assert.Contains(t, entity, `<img src="logo.png">`)
	assert.Contains(t, entity, "Edited by A, B")
	assert.Contains(t, entity, "<em>special</em>")
	assert.Contains(t, entity, `href="./alpha-grill.html"`)

	home := tree["index.html"]
	assert.Contains(t, home, "<title>Test Site</title>")
	assert.Contains(t, home, "<p>hello</p>")
	assert.Contains(t, home, `href="./restaurants/beta-bites.html"`)

	listing := tree[filepath.Join("restaurants", "index.html")]
	assert.Contains(t, listing, `href="./beta-bites.html"`)
	assert.Contains(t, listing, `href="./alpha-grill.html"`)
}

func TestBuildIsIdempotent(t *testing.T) {
	f := setup(t, testRestaurants, testHomepage)
	require.NoError(t, Build(f.opts))
	first := readTree(t, f.opts.OutputDir)

	require.NoError(t, Build(f.opts))
	second := readTree(t, f.opts.OutputDir)
	assert.Equal(t, first, second, "two runs over the same inputs must be byte-identical")
}

func TestBuildWithoutHomepage(t *testing.T) {
	f := setup(t, testRestaurants, "")
	require.NoError(t, Build(f.opts))

	tree := readTree(t, f.opts.OutputDir)
	assert.NotContains(t, tree, "index.html", "no homepage data means no homepage page")
	assert.Contains(t, tree, filepath.Join("restaurants", "index.html"))
	assert.Len(t, tree, 3)
}

func TestBuildFailsOnMissingSlugAndWritesNothing(t *testing.T) {
	f := setup(t, `{"x": {"name": "No Slug"}}`, "")
	err := Build(f.opts)
	require.Error(t, err)
	assert.True(t, errors.HasCategory(err, errors.CategoryValidation))

	_, statErr := os.Stat(f.opts.OutputDir)
	assert.True(t, os.IsNotExist(statErr), "validation failure must not create output")
}

func TestBuildFailsOnMalformedData(t *testing.T) {
	f := setup(t, `{"x": {`, "")
	err := Build(f.opts)
	require.Error(t, err)
	assert.True(t, errors.HasCategory(err, errors.CategoryParse))
}

func TestBuildFailsOnMalformedHomepage(t *testing.T) {
	f := setup(t, testRestaurants, `{"title": `)
	err := Build(f.opts)
	require.Error(t, err)
	assert.True(t, errors.HasCategory(err, errors.CategoryParse))
}

func TestBuildFailsOnBadTemplate(t *testing.T) {
	f := setup(t, testRestaurants, "")
	require.NoError(t, os.WriteFile(f.opts.TemplatePath, []byte(`{{ undeclared_var }}`), 0o644))

	err := Build(f.opts)
	require.Error(t, err)
	assert.True(t, errors.HasCategory(err, errors.CategoryRender))

	_, statErr := os.Stat(f.opts.OutputDir)
	assert.True(t, os.IsNotExist(statErr), "render failure must not create output")
}

func TestCommentedAndStrictInputsProduceIdenticalTrees(t *testing.T) {
	strict := `{
	"beta-bites": {
		"slug": "beta-bites",
		"name": "Beta Bites",
		"description": "Try the *special*.",
		"local_logo_path": "logo.png",
		"remote_logo_url": "https://cdn.example/beta.png",
		"edited_by": ["A", "B"]
	},
	"alpha-grill": {
		"slug": "alpha-grill",
		"name": "Alpha Grill",
		"remote_banner_url": "https://cdn.example/alpha-banner.jpg"
	}
}`
	annotated := setup(t, testRestaurants, "")
	plain := setup(t, strict, "")
	require.NoError(t, Build(annotated.opts))
	require.NoError(t, Build(plain.opts))
	assert.Equal(t, readTree(t, plain.opts.OutputDir), readTree(t, annotated.opts.OutputDir))
}

func TestEntitySlugsMayCollideWithPageNames(t *testing.T) {
	// "homepage" and "listing" are valid slugs; routing goes by page kind,
	// so these entities keep their own files under restaurants/.
	restaurants := `{
	"homepage": {"slug": "homepage", "name": "The Homepage Diner"},
	"listing": {"slug": "listing", "name": "Listing Lunches"}
}`
	f := setup(t, restaurants, testHomepage)
	require.NoError(t, Build(f.opts))

	tree := readTree(t, f.opts.OutputDir)
	assert.Len(t, tree, 4)
	assert.Contains(t, tree, filepath.Join("restaurants", "homepage.html"))
	assert.Contains(t, tree, filepath.Join("restaurants", "listing.html"))

	entity := tree[filepath.Join("restaurants", "homepage.html")]
	assert.Contains(t, entity, "<title>The Homepage Diner</title>")

	// The real homepage and listing pages are untouched by the collision.
	assert.Contains(t, tree["index.html"], "<title>Test Site</title>")
	assert.Contains(t, tree[filepath.Join("restaurants", "index.html")], `href="./homepage.html"`)
}

func TestBuildFailsOnUnstatableHomepage(t *testing.T) {
	f := setup(t, testRestaurants, "")
	// A path whose parent is a regular file fails stat with something other
	// than "not exist"; that must surface, not silently skip the homepage.
	f.opts.HomepagePath = filepath.Join(f.opts.RestaurantsPath, "homepage.jsonc")

	err := Build(f.opts)
	require.Error(t, err)
	assert.True(t, errors.HasCategory(err, errors.CategoryParse))
}

func TestValidateWritesNothing(t *testing.T) {
	f := setup(t, testRestaurants, testHomepage)
	require.NoError(t, Validate(f.opts))
	_, statErr := os.Stat(f.opts.OutputDir)
	assert.True(t, os.IsNotExist(statErr))
}

func TestValidateReportsBadData(t *testing.T) {
	f := setup(t, `{"x": {"slug": "mismatch", "name": "X"}}`, "")
	err := Validate(f.opts)
	require.Error(t, err)
	assert.True(t, errors.HasCategory(err, errors.CategoryValidation))
}
