package errors

import "fmt"

// CLIAdapter handles error presentation and exit code determination for the
// command-line entry point.
type CLIAdapter struct {
	verbose bool
}

// NewCLIAdapter creates a new CLI error adapter.
func NewCLIAdapter(verbose bool) *CLIAdapter {
	return &CLIAdapter{verbose: verbose}
}

// ExitCodeFor determines the appropriate exit code for an error.
func (a *CLIAdapter) ExitCodeFor(err error) int {
	if err == nil {
		return 0
	}
	if classified, ok := AsClassified(err); ok {
		return exitCodeFromClassified(classified)
	}
	return 1
}

func exitCodeFromClassified(err *ClassifiedError) int {
	switch err.Category() {
	case CategoryParse:
		return 3 // Malformed input
	case CategoryValidation:
		return 2 // Invalid data
	case CategoryRender:
		return 4 // Template failure
	case CategoryWrite:
		return 11 // Filesystem failure
	case CategoryConfig:
		return 7 // Configuration error
	case CategoryInternal:
		return 10 // Internal error
	default:
		return 1
	}
}

// FormatError formats an error for user-facing display.
func (a *CLIAdapter) FormatError(err error) string {
	if err == nil {
		return ""
	}
	classified, ok := AsClassified(err)
	if !ok {
		return fmt.Sprintf("Error: %v", err)
	}
	msg := fmt.Sprintf("Error (%s): %s", classified.Category(), classified.Message())
	if details := classified.Details(); details != "" {
		msg += " [" + details + "]"
	}
	if a.verbose && classified.Unwrap() != nil {
		msg += fmt.Sprintf("\n  cause: %v", classified.Unwrap())
	}
	return msg
}
