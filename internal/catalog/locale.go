package catalog

import (
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	"github.com/ziadkadry99/lernkatalog/internal/manifest"
)

// The catalog is German only.
var printer = message.NewPrinter(language.German)

// HoursText returns the display text of meta's hours. Zero hours are absent.
func HoursText(meta *manifest.Meta) (string, bool) {
	switch {
	case meta == nil:
		return "", false
	case meta.HoursLabel != "":
		return meta.HoursLabel, true
	case meta.Hours != nil && *meta.Hours != 0:
		return formatHours(*meta.Hours), true
	}
	return "", false
}

// formatHours renders an hour count with a German decimal comma, every
// digit kept and no grouping ("1,5", "0,0001", "1200").
func formatHours(h float64) string {
	return printer.Sprint(number.Decimal(h, number.MaxFractionDigits(-1), number.NoSeparator()))
}

// formatTimestamp mirrors the de-DE locale string ("19.10.2026, 08:30:00").
// The zero time renders as an empty string.
func formatTimestamp(t time.Time, loc *time.Location) string {
	if t.IsZero() {
		return ""
	}
	if loc == nil {
		loc = time.Local
	}
	return t.In(loc).Format("2.1.2006, 15:04:05")
}
