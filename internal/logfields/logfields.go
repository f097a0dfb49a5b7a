package logfields

import (
	"log/slog"
	"strings"
	"time"
)

// Canonical log field names shared by the store and the session.
const (
	KeyPath       = "path"
	KeyFormat     = "format"
	KeyUntil      = "until"
	KeyStrict     = "strict"
	KeySites      = "sites"
	KeyDuration   = "duration"
	KeyTransition = "transition"
	KeyError      = "error"
)

func Path(p string) slog.Attr { return slog.String(KeyPath, p) }
func Format(f string) slog.Attr { return slog.String(KeyFormat, f) }
func Until(t time.Time) slog.Attr { return slog.Time(KeyUntil, t) }
func Strict(s bool) slog.Attr { return slog.Bool(KeyStrict, s) }
func Sites(s []string) slog.Attr { return slog.String(KeySites, strings.Join(s, ", ")) }
func Duration(d time.Duration) slog.Attr { return slog.Duration(KeyDuration, d) }
func Transition(name string) slog.Attr { return slog.String(KeyTransition, name) }
func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}
