package errors

import (
	"fmt"
	"log/slog"
	"strings"
	"testing"
)

func TestCLIErrorAdapter_ExitCodeFor(t *testing.T) {
	adapter := NewCLIErrorAdapter(false, slog.Default())

	tests := []struct {
		name     string
		err      error
		expected int
	}{
		{"nil error", nil, 0},
		{"validation error", ValidationError("duplicate document reference").Build(), 2},
		{"wrapped validation error", fmt.Errorf("validate: %w", ValidationError("bad").Build()), 2},
		{"not found", NewError(CategoryNotFound, "sidebar missing").Build(), 4},
		{"config error", ConfigError("bad config").Build(), 7},
		{"internal error", NewError(CategoryInternal, "boom").Fatal().Build(), 10},
		{"filesystem error", NewError(CategoryFileSystem, "read failed").Build(), 11},
		{"docs error", NewError(CategoryDocs, "scan failed").Build(), 11},
		{"render error", NewError(CategoryRender, "write failed").Build(), 11},
		{"runtime error", NewError(CategoryRuntime, "watcher failed").Fatal().Build(), 12},
		{"unclassified error", &customError{msg: "unknown error"}, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := adapter.ExitCodeFor(tt.err)
			if got != tt.expected {
				t.Errorf("ExitCodeFor() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestCLIErrorAdapter_FormatError(t *testing.T) {
	adapter := NewCLIErrorAdapter(false, slog.Default())

	tests := []struct {
		name     string
		err      error
		contains string
	}{
		{"nil error", nil, ""},
		{
			"internal error in non-verbose mode",
			NewError(CategoryInternal, "internal issue").Build(),
			"Internal error occurred (use -v for details)",
		},
		{
			"validation error shows cause",
			WrapError(&customError{msg: "sidebar[3]: duplicate"}, CategoryValidation, "invalid sidebar tree").Build(),
			"Error: invalid sidebar tree: sidebar[3]: duplicate",
		},
		{"config error", ConfigError("bad config").Build(), "Error: bad config"},
		{"unclassified error", &customError{msg: "unknown error"}, "Error: unknown error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := adapter.FormatError(tt.err)
			if tt.contains == "" {
				if got != "" {
					t.Errorf("FormatError() = %q, want empty string", got)
				}
				return
			}
			if !strings.Contains(got, tt.contains) {
				t.Errorf("FormatError() = %q, want to contain %q", got, tt.contains)
			}
		})
	}
}

func TestCLIErrorAdapter_FormatErrorVerbose(t *testing.T) {
	adapter := NewCLIErrorAdapter(true, slog.Default())
	err := ValidationError("invalid sidebar tree").
		WithContext("sidebar", "docs").
		WithContext("issues", 2).
		Build()

	got := adapter.FormatError(err)
	if !strings.HasPrefix(got, "[validation:fatal] invalid sidebar tree") {
		t.Errorf("unexpected verbose output %q", got)
	}
	if strings.Index(got, "issues: 2") > strings.Index(got, "sidebar: docs") {
		t.Errorf("expected context keys sorted, got %q", got)
	}
}

// customError is a test helper for unclassified errors
type customError struct {
	msg string
}

func (e *customError) Error() string {
	return e.msg
}
