package errors

// ErrorCategory groups failures by where they come from. The CLI maps each
// category to an exit code.
type ErrorCategory string

const (
	// Input problems: the site configuration, the sidebar definition or a
	// path the user named.
	CategoryConfig     ErrorCategory = "config"
	CategoryValidation ErrorCategory = "validation"
	CategoryNotFound   ErrorCategory = "not_found"

	// Reading docs or sidebar files and writing rendered output.
	CategoryFileSystem ErrorCategory = "filesystem"
	CategoryDocs       ErrorCategory = "docs"
	CategoryRender     ErrorCategory = "render"

	// Watcher and metrics listener failures, and errors nobody classified.
	CategoryRuntime  ErrorCategory = "runtime"
	CategoryInternal ErrorCategory = "internal"
)

// ErrorSeverity decides how loudly the CLI reports an error.
type ErrorSeverity string

const (
	SeverityFatal   ErrorSeverity = "fatal"
	SeverityError   ErrorSeverity = "error"
	SeverityWarning ErrorSeverity = "warning"
	SeverityInfo    ErrorSeverity = "info"
)

// ErrorContext holds structured details such as the offending path.
type ErrorContext map[string]any
