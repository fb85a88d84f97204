// Package site maps rendered pages to their output paths and writes the
// publishable tree.
package site

import (
	"os"
	"path/filepath"

	"github.com/campuseats/sitebuilder/internal/foundation/errors"
	"github.com/campuseats/sitebuilder/internal/render"
)

// RestaurantsDir is the subdirectory holding one page per entity plus the
// listing page.
const RestaurantsDir = "restaurants"

// PagePath maps a page to its output path under root by kind: the homepage
// to the fixed root index file, the listing to the restaurants index, and
// every entity to the restaurants directory with the slug as the file stem.
// Routing never looks at the identity for non-entity pages, so an entity
// whose slug happens to be "homepage" or "listing" still gets its own file.
func PagePath(root, kind, id string) string {
	switch kind {
	case render.KindHomepage:
		return filepath.Join(root, "index.html")
	case render.KindListing:
		return filepath.Join(root, RestaurantsDir, "index.html")
	default:
		return filepath.Join(root, RestaurantsDir, id+".html")
	}
}

// WritePage writes rendered text to the page's output path, creating
// directories as needed and unconditionally overwriting any existing file.
// No merge, no backup, no confirmation.
func WritePage(root, kind, id, content string) (string, error) {
	path := PagePath(root, kind, id)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", errors.WrapError(err, errors.CategoryWrite, "failed to create output directory").
			WithContext("path", filepath.Dir(path)).
			WithContext("page", id).Build()
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return "", errors.WrapError(err, errors.CategoryWrite, "failed to write page").
			WithContext("path", path).
			WithContext("page", id).Build()
	}
	return path, nil
}
