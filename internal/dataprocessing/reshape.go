package dataprocessing

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"indicatorcli/internal/sources"
)

// ErrMissingYearColumn is returned when a rate grid does not start with a Year column
var ErrMissingYearColumn = errors.New("first column is not Year")

// YearGridYears are the positional year columns of the months-supply grid
var YearGridYears = []string{"2017", "2018", "2019", "2020", "2021", "2022"}

// monthsPerYear bounds the month columns read from a rate grid
const monthsPerYear = 12

// MeltSpec describes how to turn a wide grid into long rows
type MeltSpec struct {
	// Variable names the single value column of the result
	Variable string
	// Axis holds the label of each value column, in column order starting at column 1
	Axis []string
	// Hint parses the composed date string
	Hint DateHint
	// Compose joins the row identifier and an axis label into a date string
	Compose func(id, axis string) string
}

// Melt converts a wide table (identifier in column 0, one column per axis label)
// into a long frame with one row per identifier and axis cell. Missing cells are dropped.
func Melt(t *sources.Table, spec MeltSpec) (*Frame, error) {
	frame := NewFrame(t.Name)
	frame.AddColumn(spec.Variable)

	for i := range t.Rows {
		id := t.Cell(i, 0)
		for j, label := range spec.Axis {
			v, err := ParseValue(label, t.Cell(i, j+1))
			if err != nil {
				return nil, err
			}
			if !v.Valid {
				continue
			}

			date, err := NormalizeDate(spec.Compose(id, label), spec.Hint)
			if err != nil {
				return nil, fmt.Errorf("row %d: %w", i+1, err)
			}
			if err := frame.Set(date, spec.Variable, v); err != nil {
				return nil, err
			}
		}
	}
	return frame, nil
}

// MeltYearGrid reshapes a month-by-year grid. The header row is ignored; the
// year columns are positional.
func MeltYearGrid(t *sources.Table, variable string) (*Frame, error) {
	return Melt(t, MeltSpec{
		Variable: variable,
		Axis:     YearGridYears,
		Hint:     HintMonthYear,
		Compose: func(month, year string) string {
			return month + normalizeYear(year)
		},
	})
}

// MeltRateGrid reshapes a year-by-month grid whose header is Year plus month labels
func MeltRateGrid(t *sources.Table, variable string) (*Frame, error) {
	if len(t.Header) == 0 || !strings.EqualFold(strings.TrimSpace(t.Header[0]), "year") {
		return nil, ErrMissingYearColumn
	}

	months := t.Header[1:]
	if len(months) > monthsPerYear {
		months = months[:monthsPerYear]
	}
	axis := make([]string, len(months))
	for i, m := range months {
		axis[i] = strings.TrimSpace(m)
	}

	return Melt(t, MeltSpec{
		Variable: variable,
		Axis:     axis,
		Hint:     HintYearMonth,
		Compose: func(year, month string) string {
			return normalizeYear(year) + month
		},
	})
}

// normalizeYear turns spreadsheet renderings such as "2022.0" into "2022"
func normalizeYear(s string) string {
	s = strings.TrimSpace(s)
	if f, err := strconv.ParseFloat(s, 64); err == nil && f == float64(int64(f)) {
		return strconv.FormatInt(int64(f), 10)
	}
	return s
}
