package engine

// dates.go resolves free-form date cells into DateValues.
//
// The cells this engine sees come from hand-edited spreadsheets exported to
// CSV, so a "date" may be any of:
//   - day/month/year with 4- or 2-digit years (the studio's locale order)
//   - ISO year-month-day
//   - a raw spreadsheet serial number, optionally with a fractional
//     time-of-day component
//   - a sentinel ("no especificat", "#VALUE!", a dash, ...) that must never
//     be fed to a date parser
//   - arbitrary prose
//
// Normalize is total: whatever does not resolve becomes a placeholder
// carrying the original text. Unparseable input is data, not failure.

import (
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// TwoDigitYearPivot defines how 2-digit years are interpreted. Parsed years
// more than this many years past the current year are pushed back a century.
var TwoDigitYearPivot = 20

// DefaultSentinels is the closed set of known non-date cell values, matched
// case-insensitively after trimming. Deployments with other front-end
// wordings supply their own set via Profile.Sentinels.
var DefaultSentinels = NewSentinelSet(
	"#VALUE!",
	"-",
	"",
	"no especificat",
	"desconegut",
	"no aplica",
	"not specified",
	"unknown",
	"n/a",
)

// SentinelSet is a case-insensitive membership set of non-date cell values.
type SentinelSet map[string]struct{}

// NewSentinelSet builds a SentinelSet from literal values.
func NewSentinelSet(values ...string) SentinelSet {
	set := make(SentinelSet, len(values))
	for _, v := range values {
		set[strings.ToUpper(strings.TrimSpace(v))] = struct{}{}
	}
	return set
}

// Contains reports whether the trimmed, case-folded value is a sentinel.
func (s SentinelSet) Contains(v string) bool {
	_, ok := s[strings.ToUpper(strings.TrimSpace(v))]
	return ok
}

// serialEpoch is the spreadsheet day-zero: serial 1 is 1899-12-31, and the
// off-by-one epoch absorbs the historical Lotus leap-year bug.
var serialEpoch = time.Date(1899, time.December, 30, 0, 0, 0, 0, time.UTC)

// Cell shapes, each gating one parse attempt. A cell that matches a shape
// but fails its parse (day 32, month 13) falls through to the next shape
// and ultimately to a placeholder.
var (
	dayMonthYear4Re = regexp.MustCompile(`^\d{1,2}/\d{1,2}/\d{4}$`)
	dayMonthYear2Re = regexp.MustCompile(`^\d{1,2}/\d{1,2}/\d{2}$`)
	isoDateRe       = regexp.MustCompile(`^\d{4}-\d{1,2}-\d{1,2}$`)
	serialRe        = regexp.MustCompile(`^\d+(\.\d+)?$`)
)

// Normalize converts a raw date cell into a DateValue. It never fails:
// sentinels and unrecognized text come back as placeholders holding the
// original input. Formats are attempted in fixed priority order, each only
// when the cell matches its shape.
func Normalize(text string, sentinels SentinelSet) DateValue {
	if sentinels == nil {
		sentinels = DefaultSentinels
	}
	if sentinels.Contains(text) {
		return PlaceholderDate(text)
	}

	s := strings.TrimSpace(text)

	if dayMonthYear4Re.MatchString(s) {
		if t, err := time.Parse("2/1/2006", s); err == nil {
			return ConcreteDate(t)
		}
	}

	if dayMonthYear2Re.MatchString(s) {
		if t, err := time.Parse("2/1/06", s); err == nil {
			if t.Year() > time.Now().Year()+TwoDigitYearPivot {
				t = t.AddDate(-100, 0, 0)
			}
			return ConcreteDate(t)
		}
	}

	if isoDateRe.MatchString(s) {
		if t, ok := parseISODate(s); ok {
			return ConcreteDate(t)
		}
	}

	if serialRe.MatchString(s) {
		if t, ok := parseSerial(s); ok {
			return ConcreteDate(t)
		}
	}

	return PlaceholderDate(text)
}

// parseISODate handles year-month-day cells. Strict parsing covers the
// zero-padded form; the manual path accepts unpadded components but must
// verify the reconstruction, since time.Date silently rolls day 32 into the
// next month.
func parseISODate(s string) (time.Time, bool) {
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t, true
	}

	parts := strings.Split(s, "-")
	if len(parts) != 3 {
		return time.Time{}, false
	}
	year, err1 := strconv.Atoi(parts[0])
	month, err2 := strconv.Atoi(parts[1])
	day, err3 := strconv.Atoi(parts[2])
	if err1 != nil || err2 != nil || err3 != nil {
		return time.Time{}, false
	}

	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	if t.Year() != year || t.Month() != time.Month(month) || t.Day() != day {
		return time.Time{}, false
	}
	return t, true
}

// parseSerial converts a purely numeric cell into a calendar date, treating
// the integer part as days since the spreadsheet epoch and the fractional
// part as time of day.
func parseSerial(s string) (time.Time, bool) {
	serial, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return time.Time{}, false
	}

	days := int(serial)
	frac := serial - float64(days)

	t := serialEpoch.AddDate(0, 0, days)
	if frac > 0 {
		seconds := int(math.Round(frac * 86400))
		t = t.Add(time.Duration(seconds) * time.Second)
	}
	return t, true
}
