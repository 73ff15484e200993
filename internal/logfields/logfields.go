package logfields

import "log/slog"

// Canonical log field name constants to avoid drift across packages.
const (
	KeyBuildID     = "build_id"
	KeyPath        = "path"
	KeyFile        = "file"
	KeyURL         = "url"
	KeyEnvironment = "environment"
	KeyTemplate    = "template"
	KeyDurationMS  = "duration_ms"
	KeyRendered    = "rendered"
	KeySkipped     = "skipped"
	KeyError       = "error"
)

// Simple helpers returning slog.Attr. Keeping each granular means callers can compose.
func BuildID(id string) slog.Attr      { return slog.String(KeyBuildID, id) }
func Path(p string) slog.Attr          { return slog.String(KeyPath, p) }
func File(f string) slog.Attr          { return slog.String(KeyFile, f) }
func URL(u string) slog.Attr           { return slog.String(KeyURL, u) }
func Environment(e string) slog.Attr   { return slog.String(KeyEnvironment, e) }
func Template(t string) slog.Attr      { return slog.String(KeyTemplate, t) }
func DurationMS(ms float64) slog.Attr  { return slog.Float64(KeyDurationMS, ms) }
func Rendered(n int) slog.Attr         { return slog.Int(KeyRendered, n) }
func Skipped(n int) slog.Attr          { return slog.Int(KeySkipped, n) }
func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}
