package render

import (
	"bytes"
	"os"

	"github.com/open2b/scriggo"
	"github.com/open2b/scriggo/native"

	"github.com/campuseats/sitebuilder/internal/foundation/errors"
)

// templateName is the in-memory file name the template is built under.
const templateName = "skeleton.html"

// declarations is the fixed global variable set every template is built
// against. A template that references anything outside this set fails at
// build time, which surfaces the template/context mismatch before any page
// renders.
func declarations() native.Declarations {
	return native.Declarations{
		"kind":              (*string)(nil),
		"page_title":        (*string)(nil),
		"item":              (*map[string]any)(nil),
		"summary":           (*[]SummaryCard)(nil),
		"hours":             (*[]HoursRow)(nil),
		"reviews":           (*[]ReviewView)(nil),
		"description_html":  (*native.HTML)(nil),
		"created_by":        (*string)(nil),
		"edited_by_display": (*string)(nil),
		"logo_url":          (*string)(nil),
		"has_logo":          (*bool)(nil),
		"banner_url":        (*string)(nil),
		"has_banner":        (*bool)(nil),
		"extra_content":     (*native.HTML)(nil),
		"prev_slug":         (*string)(nil),
		"next_slug":         (*string)(nil),
	}
}

// Renderer wraps the scriggo template engine as a pure
// (template, context) -> text function. Rendering is deterministic and never
// retried.
type Renderer struct {
	tpl *scriggo.Template
}

// NewRendererFromFile reads and builds the template at path.
func NewRendererFromFile(path string) (*Renderer, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.WrapError(err, errors.CategoryRender, "failed to read template").
			WithContext("path", path).Build()
	}
	return NewRenderer(src, path)
}

// NewRenderer builds the template once. The path is used only for error
// reporting.
func NewRenderer(src []byte, path string) (*Renderer, error) {
	fsys := scriggo.Files{templateName: src}
	tpl, err := scriggo.BuildTemplate(fsys, templateName, &scriggo.BuildOptions{
		Globals: declarations(),
	})
	if err != nil {
		return nil, errors.WrapError(err, errors.CategoryRender, "template is malformed or references an unknown variable").
			WithContext("path", path).Build()
	}
	return &Renderer{tpl: tpl}, nil
}

// Render executes the template with the page's variables and returns the
// output text. Failures carry the page identity (entity slug, "listing", or
// "homepage").
func (r *Renderer) Render(page Page) (string, error) {
	var buf bytes.Buffer
	if err := r.tpl.Run(&buf, page.Vars, nil); err != nil {
		return "", errors.WrapError(err, errors.CategoryRender, "template execution failed").
			WithContext("page", page.ID).Build()
	}
	return buf.String(), nil
}
