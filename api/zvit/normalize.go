package zvit

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// excelEpoch is the zero point of spreadsheet date serials. Day 1 is
// 1900-01-01; the offset to Dec 30 absorbs the historical leap-year bug.
var excelEpoch = time.Date(1899, time.December, 30, 0, 0, 0, 0, time.UTC)

var dottedDate = regexp.MustCompile(`^(\d{1,2})\.(\d{1,2})\.(\d{4})$`)

// genericLayouts is the fallback set for values that are neither serials nor
// dotted dates.
var genericLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006/01/02",
	"01/02/2006",
}

// NormalizeDate converts a raw spreadsheet cell into an ISO YYYY-MM-DD string.
// Three shapes are accepted: a numeric date serial, a day-first dotted date
// (15.01.2024), and anything a generic parse can read. Everything else
// resolves to the empty string; validation downstream keys on that.
func NormalizeDate(raw string) string {
	s := strings.TrimSpace(raw)
	if s == "" {
		return ""
	}

	if serial, err := strconv.ParseFloat(s, 64); err == nil {
		if serial <= 0 {
			return ""
		}
		d := excelEpoch.AddDate(0, 0, int(serial))
		return d.Format("2006-01-02")
	}

	// Day-first dotted form is re-emitted without range checks: the sheet
	// pattern wins before any calendar validation runs.
	if m := dottedDate.FindStringSubmatch(s); m != nil {
		day, _ := strconv.Atoi(m[1])
		month, _ := strconv.Atoi(m[2])
		return fmt.Sprintf("%s-%02d-%02d", m[3], month, day)
	}

	for _, layout := range genericLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format("2006-01-02")
		}
	}
	return ""
}

// affirmative tokens accepted by NormalizeYesNo, lowercase.
var yesTokens = map[string]bool{
	"так":  true,
	"yes":  true,
	"true": true,
	"1":    true,
	"да":   true,
}

// NormalizeYesNo maps a raw cell to a boolean. Matching is case-insensitive
// and trims whitespace; unrecognized input is false, never an error.
func NormalizeYesNo(raw string) bool {
	s := strings.ToLower(strings.TrimSpace(raw))
	if yesTokens[s] {
		return true
	}
	// numeric cells: equality to 1 only
	if n, err := strconv.ParseFloat(s, 64); err == nil {
		return n == 1
	}
	return false
}
