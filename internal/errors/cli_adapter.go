package errors

import (
	"fmt"
	"log/slog"
)

// CLIErrorAdapter handles error presentation and exit code determination for
// the notebook CLI.
type CLIErrorAdapter struct {
	verbose bool
	logger  *slog.Logger
}

// NewCLIErrorAdapter creates a new CLI error adapter.
func NewCLIErrorAdapter(verbose bool, logger *slog.Logger) *CLIErrorAdapter {
	if logger == nil {
		logger = slog.Default()
	}
	return &CLIErrorAdapter{
		verbose: verbose,
		logger:  logger,
	}
}

// ExitCodeFor determines the appropriate exit code for an error.
func (a *CLIErrorAdapter) ExitCodeFor(err error) int {
	if err == nil {
		return 0
	}

	if ce, ok := err.(*CompilerError); ok {
		return a.exitCodeFromCompiler(ce)
	}

	return 1
}

// exitCodeFromCompiler maps CompilerError categories to exit codes.
func (a *CLIErrorAdapter) exitCodeFromCompiler(err *CompilerError) int {
	switch err.Category {
	case CategoryValidation:
		return 2 // Invalid usage
	case CategoryConfig:
		return 7 // Configuration error
	case CategorySource, CategoryMetadata, CategoryFileSystem, CategoryCompile:
		return 11 // Compile error
	case CategoryDaemon:
		return 12 // Runtime error
	case CategoryInternal:
		return 10 // Internal error
	default:
		return 1 // General error
	}
}

// FormatError formats an error for user-friendly display.
func (a *CLIErrorAdapter) FormatError(err error) string {
	if err == nil {
		return ""
	}

	if ce, ok := err.(*CompilerError); ok && !a.verbose {
		msg := fmt.Sprintf("Error: %s", ce.Message)
		if page, ok := ce.Context["page"]; ok {
			msg = fmt.Sprintf("%s (page: %v)", msg, page)
		}
		return msg
	}

	return fmt.Sprintf("Error: %v", err)
}

// LogError reports an error through the adapter's logger with its
// structured context attached.
func (a *CLIErrorAdapter) LogError(err error) {
	if err == nil {
		return
	}

	if ce, ok := err.(*CompilerError); ok {
		attrs := []any{slog.String("category", string(ce.Category))}
		for k, v := range ce.Context {
			attrs = append(attrs, slog.Any(k, v))
		}
		if ce.Cause != nil {
			attrs = append(attrs, slog.String("cause", ce.Cause.Error()))
		}
		a.logger.Error(ce.Message, attrs...)
		return
	}

	a.logger.Error(err.Error())
}
