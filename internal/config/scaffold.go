package config

import (
	"os"
	"path/filepath"

	"github.com/campuseats/sitebuilder/internal/foundation/errors"
)

const starterRestaurants = `{
	// One entry per restaurant. The storing key must equal the slug.
	"the-commons": {
		"slug": "the-commons",
		"name": "The Commons",
		"description": "Comfort food and **late** breakfast, right on the quad.",
		"hours": {
			"Monday": "7am - 9pm",
			"Friday": "7am - 11pm",
		},
		"created_by": "site maintainers",
	},
}
`

const starterHomepage = `{
	"title": "Campus Eats",
	"extra_content": "<p>Every dining spot on campus, one place.</p>",
}
`

const starterTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="utf-8">
  <title>{{ page_title }}</title>
</head>
<body>
  <h1>{{ page_title }}</h1>
  {% if kind == "restaurant" %}
  {{ description_html }}
  {% if len(hours) > 0 %}
  <table>
  {% for row in hours %}<tr><th>{{ row.Day }}</th><td>{{ row.Span }}</td></tr>
  {% end %}</table>
  {% end %}
  {% end %}
  {% if kind == "listing" || kind == "homepage" %}
  <ul>
  {% for card in summary %}<li><a href="{{ card.Href }}">{{ card.Name }}</a></li>
  {% end %}</ul>
  {{ extra_content }}
  {% end %}
</body>
</html>
`

// ScaffoldExamples writes starter data files and a starter template at the
// configured paths. Existing files are left alone: init must be safe to run
// inside a project that already has data.
func ScaffoldExamples(cfg *Config) ([]string, error) {
	targets := []struct {
		path    string
		content string
	}{
		{cfg.Paths.Restaurants, starterRestaurants},
		{cfg.Paths.Homepage, starterHomepage},
		{cfg.Paths.Template, starterTemplate},
	}

	var written []string
	for _, t := range targets {
		if _, err := os.Stat(t.path); err == nil {
			continue
		}
		if err := os.MkdirAll(filepath.Dir(t.path), 0o755); err != nil {
			return written, errors.WrapError(err, errors.CategoryWrite, "failed to create directory for starter file").
				WithContext("path", t.path).Build()
		}
		if err := os.WriteFile(t.path, []byte(t.content), 0o644); err != nil {
			return written, errors.WrapError(err, errors.CategoryWrite, "failed to write starter file").
				WithContext("path", t.path).Build()
		}
		written = append(written, t.path)
	}
	return written, nil
}
