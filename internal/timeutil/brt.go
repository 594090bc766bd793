package timeutil

import (
	"time"
)

// BRT is the Brasília time location (UTC-3)
var BRT *time.Location

func init() {
	var err error
	BRT, err = time.LoadLocation("America/Sao_Paulo")
	if err != nil {
		// Fallback: create fixed zone if America/Sao_Paulo not available
		BRT = time.FixedZone("BRT", -3*60*60) // UTC-3
	}
}

// Now returns the current time in BRT
func Now() time.Time {
	return time.Now().In(BRT)
}

// ToBRT converts any time to BRT
func ToBRT(t time.Time) time.Time {
	return t.In(BRT)
}

// FormatBRT formats a time in BRT using the given layout
func FormatBRT(t time.Time, layout string) string {
	return t.In(BRT).Format(layout)
}

// Common layouts
const (
	DateLayout     = "2006-01-02"
	DateTimeLayout = "2006-01-02 15:04:05"
	DisplayLayout  = "02/01/2006 15:04"
	// StoreLayout is the fixed-width UTC layout used for persisted
	// timestamps. The padded fraction keeps lexicographic order equal to
	// chronological order inside SQLite.
	StoreLayout = "2006-01-02 15:04:05.000000000"
	// BackupStampLayout names timestamped backup files.
	BackupStampLayout = "20060102_150405"
)

// FormatStore renders t for persistence (always UTC, fixed width).
func FormatStore(t time.Time) string {
	return t.UTC().Format(StoreLayout)
}

// ParseStore parses a persisted timestamp. It accepts the fixed-width store
// layout and the plain second-resolution form SQLite's datetime() emits.
func ParseStore(s string) (time.Time, error) {
	t, err := time.ParseInLocation(StoreLayout, s, time.UTC)
	if err == nil {
		return t, nil
	}
	return time.ParseInLocation(DateTimeLayout, s, time.UTC)
}
