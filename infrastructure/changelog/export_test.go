package changelog

import "time"

// NewWithClock exports a KeepAChangelog with a fixed clock for testing.
func NewWithClock(now func() time.Time) *KeepAChangelog {
	return &KeepAChangelog{now: now}
}
