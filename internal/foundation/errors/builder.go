package errors

// ErrorBuilder assembles a ClassifiedError.
type ErrorBuilder struct {
	err ClassifiedError
}

// NewError starts an error of the given category with severity error.
func NewError(category ErrorCategory, message string) *ErrorBuilder {
	return &ErrorBuilder{err: ClassifiedError{
		category: category,
		severity: SeverityError,
		message:  message,
		context:  ErrorContext{},
	}}
}

// WrapError starts an error that wraps cause.
func WrapError(cause error, category ErrorCategory, message string) *ErrorBuilder {
	return NewError(category, message).WithCause(cause)
}

// WithContext records a detail shown by the CLI adapter and in logs.
func (b *ErrorBuilder) WithContext(key string, value any) *ErrorBuilder {
	b.err.context[key] = value
	return b
}

// WithCause sets the wrapped error.
func (b *ErrorBuilder) WithCause(cause error) *ErrorBuilder {
	b.err.cause = cause
	return b
}

// Fatal marks the error as stopping the run.
func (b *ErrorBuilder) Fatal() *ErrorBuilder {
	b.err.severity = SeverityFatal
	return b
}

// Build returns the error. The builder must not be reused afterwards.
func (b *ErrorBuilder) Build() *ClassifiedError {
	out := b.err
	return &out
}

// ConfigError starts a fatal configuration error.
func ConfigError(message string) *ErrorBuilder {
	return NewError(CategoryConfig, message).Fatal()
}

// ValidationError starts a fatal validation error. Sidebar, docs and site
// configuration problems all use it.
func ValidationError(message string) *ErrorBuilder {
	return NewError(CategoryValidation, message).Fatal()
}
