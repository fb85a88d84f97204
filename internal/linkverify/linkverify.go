// Package linkverify checks the written output tree: every page must parse
// as HTML and every page-relative link must resolve to a file inside the
// tree. Problems are reported, not fatal; the pages are already on disk.
package linkverify

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/net/html"

	"github.com/campuseats/sitebuilder/internal/foundation/errors"
)

// Link is one extracted reference from a page.
type Link struct {
	URL       string
	Tag       string
	Attribute string
}

// Problem describes a link that does not resolve within the output tree.
type Problem struct {
	Page   string // page file path
	Target string // the unresolved link
}

// VerifyTree checks every named page file under root. It returns the
// problems found; an error only means a page could not be read or parsed.
func VerifyTree(root string, pages []string) ([]Problem, error) {
	var problems []Problem
	for _, page := range pages {
		links, err := extractFile(page)
		if err != nil {
			return nil, err
		}
		for _, l := range links {
			if !pageRelative(l.URL) {
				continue
			}
			target := filepath.Join(filepath.Dir(page), filepath.FromSlash(strings.TrimPrefix(l.URL, "./")))
			if !insideTree(root, target) || !fileExists(target) {
				problems = append(problems, Problem{Page: page, Target: l.URL})
			}
		}
	}
	return problems, nil
}

func extractFile(path string) ([]Link, error) {
	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		return nil, errors.WrapError(err, errors.CategoryWrite, "failed to open written page").
			WithContext("path", path).Build()
	}
	defer func() {
		_ = f.Close()
	}()
	return Extract(f)
}

// Extract parses HTML and returns href/src references from a, img, link,
// and script elements.
func Extract(r io.Reader) ([]Link, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, errors.WrapError(err, errors.CategoryWrite, "written page is not parseable HTML").Build()
	}

	var links []Link
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "a", "link":
				if href := getAttr(n, "href"); href != "" {
					links = append(links, Link{URL: href, Tag: n.Data, Attribute: "href"})
				}
			case "img", "script":
				if src := getAttr(n, "src"); src != "" {
					links = append(links, Link{URL: src, Tag: n.Data, Attribute: "src"})
				}
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)
	return links, nil
}

func getAttr(n *html.Node, name string) string {
	for _, a := range n.Attr {
		if a.Key == name {
			return a.Val
		}
	}
	return ""
}

// pageRelative reports whether the URL is relative to the page's own
// directory. Absolute URLs, protocol-relative URLs, fragments, and
// tree-relative local asset paths (which live outside the generated tree)
// are not checked.
func pageRelative(u string) bool {
	if u == "" || strings.HasPrefix(u, "#") {
		return false
	}
	if strings.Contains(u, "://") || strings.HasPrefix(u, "//") ||
		strings.HasPrefix(u, "mailto:") || strings.HasPrefix(u, "tel:") {
		return false
	}
	// Only generated cross-page links (always written as ./...) are claims
	// about the output tree itself.
	return strings.HasPrefix(u, "./")
}

func insideTree(root, target string) bool {
	rel, err := filepath.Rel(root, target)
	if err != nil {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
