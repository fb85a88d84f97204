// Package errors provides the classified error taxonomy used across the
// build pipeline.
//
// Every failure surfaced to the user carries a category matching the
// pipeline phase that produced it (parse, validation, render, write), a
// severity, and structured context (file path, slug, key path) so the CLI
// can print a diagnostic that names exactly what failed and exit with a
// category-specific code.
package errors
