package errors

// Builder provides a fluent API for creating ClassifiedError instances.
type Builder struct {
	category Category
	severity Severity
	message  string
	cause    error
	context  Context
}

// NewError creates a new Builder with the specified category and message.
func NewError(category Category, message string) *Builder {
	return &Builder{
		category: category,
		severity: SeverityError,
		message:  message,
		context:  make(Context),
	}
}

// WrapError creates a new Builder that wraps an existing error.
func WrapError(err error, category Category, message string) *Builder {
	return &Builder{
		category: category,
		severity: SeverityError,
		message:  message,
		cause:    err,
		context:  make(Context),
	}
}

// WithSeverity sets the error severity.
func (b *Builder) WithSeverity(severity Severity) *Builder {
	b.severity = severity
	return b
}

// WithContext adds a context key-value pair.
func (b *Builder) WithContext(key string, value any) *Builder {
	b.context = b.context.Set(key, value)
	return b
}

// Fatal sets the severity to fatal.
func (b *Builder) Fatal() *Builder {
	return b.WithSeverity(SeverityFatal)
}

// Warning sets the severity to warning.
func (b *Builder) Warning() *Builder {
	return b.WithSeverity(SeverityWarning)
}

// Build creates the final ClassifiedError.
func (b *Builder) Build() *ClassifiedError {
	return &ClassifiedError{
		category: b.category,
		severity: b.severity,
		message:  b.message,
		cause:    b.cause,
		context:  b.context,
	}
}

// Convenience constructors for the pipeline's error taxonomy.

// ParseError reports input that is not well-formed after comment stripping.
func ParseError(message string) *Builder {
	return NewError(CategoryParse, message).Fatal()
}

// ValidationError reports a record that fails normalization.
func ValidationError(message string) *Builder {
	return NewError(CategoryValidation, message).Fatal()
}

// RenderError reports a template build or execution failure.
func RenderError(message string) *Builder {
	return NewError(CategoryRender, message).Fatal()
}

// WriteError reports a filesystem failure while emitting output.
func WriteError(message string) *Builder {
	return NewError(CategoryWrite, message).Fatal()
}

// ConfigError reports a configuration problem.
func ConfigError(message string) *Builder {
	return NewError(CategoryConfig, message).Fatal()
}
