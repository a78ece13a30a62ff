// Package dateutils holds the date layouts used when reading statements and
// writing CSV rows.
package dateutils

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// Go layouts for the patterns accepted in configuration.
const (
	DateLayoutISO      = "2006-01-02"
	DateLayoutEuropean = "02.01.2006"
	DateLayoutUS       = "01/02/2006"
	DateLayoutShortEU  = "02.01.06"
)

var patternLayouts = map[string]string{
	"YYYY-MM-DD": DateLayoutISO,
	"DD.MM.YYYY": DateLayoutEuropean,
	"MM/DD/YYYY": DateLayoutUS,
	"DD/MM/YYYY": "02/01/2006",
	"DD.MM.YY":   DateLayoutShortEU,
}

var spaceRe = regexp.MustCompile(`\s+`)

// LayoutFromPattern maps a human date pattern such as "DD.MM.YYYY" to a Go
// time layout. Patterns are case-insensitive.
func LayoutFromPattern(pattern string) (string, error) {
	layout, ok := patternLayouts[strings.ToUpper(strings.TrimSpace(pattern))]
	if !ok {
		return "", fmt.Errorf("unsupported date pattern: %q", pattern)
	}
	return layout, nil
}

// ParseInLayout parses s in the given layout after collapsing whitespace.
// The result is a calendar date at midnight UTC.
func ParseInLayout(s, layout string) (time.Time, error) {
	s = CleanDateString(s)
	t, err := time.Parse(layout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("unable to parse date %q with layout %q: %w", s, layout, err)
	}
	return t, nil
}

// FormatDate formats date with layout, defaulting to ISO.
func FormatDate(date time.Time, layout string) string {
	if layout == "" {
		layout = DateLayoutISO
	}
	return date.Format(layout)
}

// CleanDateString trims and collapses inner whitespace.
func CleanDateString(dateStr string) string {
	return spaceRe.ReplaceAllString(strings.TrimSpace(dateStr), " ")
}
