package dataprocessing

import (
	"errors"
	"strings"
	"time"
	"unicode"

	"github.com/araddon/dateparse"
)

// DateLayout is the canonical date format used in output tables
const DateLayout = "2006-01-02"

// DateHint tells the normalizer which encodings a source is expected to use
type DateHint int

const (
	// HintMonthly tries "Jan-22" then "22-Jan"
	HintMonthly DateHint = iota
	// HintInferred tries free-form inference, then the HintMonthly layouts
	HintInferred
	// HintYear accepts a 4-digit year, read as January of that year
	HintYear
	// HintMonthYear accepts a month label followed by a 4-digit year ("Jan2022")
	HintMonthYear
	// HintYearMonth accepts a 4-digit year followed by a month label ("2022Jan")
	HintYearMonth
)

// String returns the hint name used in error messages
func (h DateHint) String() string {
	switch h {
	case HintMonthly:
		return "monthly"
	case HintInferred:
		return "inferred"
	case HintYear:
		return "year"
	case HintMonthYear:
		return "month-year"
	case HintYearMonth:
		return "year-month"
	default:
		return "unknown"
	}
}

type dateParser func(value string) (time.Time, error)

var errNotInferable = errors.New("value does not carry enough date components")

func layoutParser(layout string) dateParser {
	return func(value string) (time.Time, error) {
		return time.Parse(layout, value)
	}
}

var (
	parseMonthDashYear = layoutParser("Jan-06")
	parseYearDashMonth = layoutParser("06-Jan")
	parseYear          = layoutParser("2006")
	parseMonthYear     = layoutParser("Jan2006")
	parseYearMonth     = layoutParser("2006Jan")
)

// monthNameYear covers providers that label monthly rows with a month name and a 4-digit year
var monthNameYear = []dateParser{
	layoutParser("Jan-2006"),
	layoutParser("Jan 2006"),
	layoutParser("January 2006"),
	layoutParser("January-2006"),
}

// dateChains lists candidate parsers per hint in priority order; first success wins
var dateChains = map[DateHint][]dateParser{
	HintMonthly:   {parseMonthDashYear, parseYearDashMonth},
	HintInferred:  append(append([]dateParser{}, monthNameYear...), parseInferred, parseMonthDashYear, parseYearDashMonth),
	HintYear:      {parseYear},
	HintMonthYear: {parseMonthYear},
	HintYearMonth: {parseYearMonth},
}

// NormalizeDate parses a date-like string into its canonical month start.
// It returns a *DateFormatError when no candidate for the hint matches.
func NormalizeDate(value string, hint DateHint) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value != "" {
		for _, parse := range dateChains[hint] {
			if t, err := parse(value); err == nil {
				return MonthStart(t), nil
			}
		}
	}
	return time.Time{}, &DateFormatError{Value: value, Hint: hint}
}

// MonthStart truncates a time to the first day of its month in UTC
func MonthStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}

// parseInferred handles full dates in whatever order the provider exported them.
// Ambiguous numeric dates resolve month-first; dates that are only valid
// day-first ("15/01/2022") are retried that way. Short tokens such as "Jan-22"
// are declined so the explicit layouts decide them.
func parseInferred(value string) (time.Time, error) {
	if !hasFullDateShape(value) {
		return time.Time{}, errNotInferable
	}
	t, err := dateparse.ParseIn(value, time.UTC)
	if err == nil {
		return t, nil
	}
	return dateparse.ParseIn(value, time.UTC, dateparse.PreferMonthFirst(false))
}

func hasFullDateShape(value string) bool {
	fields := strings.FieldsFunc(value, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	if len(fields) >= 3 {
		return true
	}
	for _, f := range fields {
		if len(f) == 4 && isDigits(f) {
			return true
		}
	}
	return len(fields) == 1 && len(fields[0]) == 8 && isDigits(fields[0])
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return s != ""
}
