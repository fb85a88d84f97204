// Package jsonc loads comment-annotated JSON ("JSONC") data files.
//
// Annotations (// line comments, /* */ block comments) and trailing commas
// are stripped before strict parsing. Stripping is layout-preserving: every
// removed byte is replaced with a space and newlines inside block comments
// are kept, so byte offsets and line numbers reported by the strict parser
// refer to positions in the annotated source file.
package jsonc

import (
	"encoding/json"
	stderrors "errors"
	"fmt"
	"os"

	"github.com/tidwall/gjson"

	"github.com/campuseats/sitebuilder/internal/foundation/errors"
)

// Document is a parsed JSONC file whose top-level value is an object.
// Top-level keys iterate in document order.
type Document struct {
	path string
	root gjson.Result
}

// Load reads and parses a JSONC file.
func Load(path string) (*Document, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.WrapError(err, errors.CategoryParse, "failed to read data file").
			WithContext("path", path).Build()
	}
	return Parse(src, path)
}

// Parse parses JSONC source. The path is used only for error reporting.
func Parse(src []byte, path string) (*Document, error) {
	stripped := Strip(src)

	// gjson tolerates malformed tails silently; run the strict decoder first
	// because it is the only parser that reports the offending byte offset.
	var probe any
	if err := json.Unmarshal(stripped, &probe); err != nil {
		b := errors.WrapError(err, errors.CategoryParse, "data file is not well-formed JSON after comment removal").
			WithContext("path", path)
		var syn *json.SyntaxError
		if stderrors.As(err, &syn) {
			// SyntaxError.Offset is one past the offending byte.
			off := syn.Offset
			if off > 0 {
				off--
			}
			line, col := position(stripped, off)
			b = b.WithContext("position", fmt.Sprintf("%d:%d", line, col))
		}
		return nil, b.Build()
	}

	root := gjson.ParseBytes(stripped)
	if !root.IsObject() {
		return nil, errors.ParseError("top-level value must be an object").
			WithContext("path", path).Build()
	}
	return &Document{path: path, root: root}, nil
}

// Path returns the source file path the document was loaded from.
func (d *Document) Path() string { return d.path }

// Root returns the top-level object.
func (d *Document) Root() gjson.Result { return d.root }

// Keys returns the top-level keys in document order.
func (d *Document) Keys() []string {
	var keys []string
	d.root.ForEach(func(key, _ gjson.Result) bool {
		keys = append(keys, key.String())
		return true
	})
	return keys
}

// ForEachKey iterates top-level entries in document order. Returning false
// from fn stops the iteration.
func (d *Document) ForEachKey(fn func(key string, value gjson.Result) bool) {
	d.root.ForEach(func(key, value gjson.Result) bool {
		return fn(key.String(), value)
	})
}

// position converts a byte offset into a 1-based line:column pair.
func position(src []byte, offset int64) (line, col int) {
	line, col = 1, 1
	for i := int64(0); i < offset && i < int64(len(src)); i++ {
		if src[i] == '\n' {
			line++
			col = 1
		} else {
			col++
		}
	}
	return line, col
}
