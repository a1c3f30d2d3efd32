package tui

import (
	"strings"
	"time"
)

// formatDate matches the web client's toLocaleDateString rendering closely
// enough for a terminal: "Jan 5, 2026". Unparseable values fall back to the
// raw string rather than erroring.
func formatDate(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return "-"
	}
	for _, layout := range []string{time.RFC3339Nano, time.RFC3339, "2006-01-02T15:04:05", "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format("Jan 2, 2006")
		}
	}
	return s
}
