// package shared defines shared helpers
package shared

import (
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
)

// NewLogger builds the application [log.Logger] writing to w, with
// timestamps enabled. A nil writer falls back to [os.Stderr].
func NewLogger(w io.Writer) *log.Logger {
	if w == nil {
		w = os.Stderr
	}
	return log.NewWithOptions(w, log.Options{
		Prefix:          "ytsort",
		ReportTimestamp: true,
	})
}

// WithLogger derives a child [log.Logger] carrying the given key-value
// pairs on every entry, used to tag a sort run's log lines.
func WithLogger(l *log.Logger, kv ...any) *log.Logger {
	return l.With(kv...)
}

// SetLogLevel adjusts the minimum [log.Level] the logger emits.
func SetLogLevel(l *log.Logger, ll log.Level) {
	l.SetLevel(ll)
}

// GenerateID returns a fresh v4 UUID string, used as the per-run
// correlation id attached to sort runs.
func GenerateID() string {
	return uuid.New().String()
}
