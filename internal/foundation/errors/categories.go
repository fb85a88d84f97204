package errors

import "maps"

// Category classifies an error by the pipeline phase that produced it.
type Category string

const (
	// CategoryParse covers input that is not well-formed after comment
	// stripping.
	CategoryParse Category = "parse"
	// CategoryValidation covers structurally valid input with bad content:
	// missing required fields, duplicate or mismatched slugs, out-of-range
	// review fields.
	CategoryValidation Category = "validation"
	// CategoryRender covers template build and execution failures.
	CategoryRender Category = "render"
	// CategoryWrite covers filesystem failures while emitting the output
	// tree.
	CategoryWrite Category = "write"

	CategoryConfig   Category = "config"
	CategoryInternal Category = "internal"
)

// Severity indicates the impact level of an error.
type Severity string

const (
	SeverityFatal   Severity = "fatal"   // Aborts the run.
	SeverityError   Severity = "error"   // Fails the current operation.
	SeverityWarning Severity = "warning" // Recorded, run continues.
)

// Context provides structured context for errors.
type Context map[string]any

// Set adds or updates a context value.
func (c Context) Set(key string, value any) Context {
	if c == nil {
		c = make(Context)
	}
	c[key] = value
	return c
}

// Get retrieves a context value.
func (c Context) Get(key string) (any, bool) {
	if c == nil {
		return nil, false
	}
	value, exists := c[key]
	return value, exists
}

// GetString retrieves a string context value.
func (c Context) GetString(key string) (string, bool) {
	if value, exists := c.Get(key); exists {
		if str, ok := value.(string); ok {
			return str, true
		}
	}
	return "", false
}

// Merge combines two contexts, with other taking precedence.
func (c Context) Merge(other Context) Context {
	if c == nil {
		return other
	}
	if other == nil {
		return c
	}
	result := make(Context)
	maps.Copy(result, c)
	maps.Copy(result, other)
	return result
}
