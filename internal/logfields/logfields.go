package logfields

import "log/slog"

// Canonical log field name constants to avoid drift across packages.
const (
	KeyRunID      = "run_id"
	KeySidebar    = "sidebar"
	KeyEntryPath  = "entry_path"
	KeyDocID      = "doc_id"
	KeyPath       = "path"
	KeyFormat     = "format"
	KeyCount      = "count"
	KeyDurationMS = "duration_ms"
	KeyOutcome    = "outcome"
	KeyError      = "error"
)

// Simple helpers returning slog.Attr. Keeping each granular means callers can compose.
func RunID(id string) slog.Attr       { return slog.String(KeyRunID, id) }
func Sidebar(name string) slog.Attr   { return slog.String(KeySidebar, name) }
func EntryPath(p string) slog.Attr    { return slog.String(KeyEntryPath, p) }
func DocID(id string) slog.Attr       { return slog.String(KeyDocID, id) }
func Path(p string) slog.Attr         { return slog.String(KeyPath, p) }
func Format(f string) slog.Attr       { return slog.String(KeyFormat, f) }
func Count(n int) slog.Attr           { return slog.Int(KeyCount, n) }
func DurationMS(ms float64) slog.Attr { return slog.Float64(KeyDurationMS, ms) }
func Outcome(o string) slog.Attr      { return slog.String(KeyOutcome, o) }
func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}
