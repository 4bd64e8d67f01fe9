package dataprocessing

import (
	"fmt"
	"strings"

	"indicatorcli/internal/sources"
)

// Population column names, by position
var populationColumns = []string{"population", "growth", "growth_rate"}

// handlerFunc turns a raw source table into a frame for one schema kind
type handlerFunc func(c Classification, t *sources.Table, opts ProcessingOptions) (*Frame, error)

// handlers maps every recognized kind to the code that reads it
var handlers = map[SchemaKind]handlerFunc{
	KindMonthlyIndicator:  parseMonthly,
	KindYearGridIndicator: parseYearGrid,
	KindAnnualPopulation:  parsePopulation,
	KindAnnualRateGrid:    parseRateGrid,
}

// ParseSource converts a classified source table into a frame keyed by canonical date
func ParseSource(c Classification, t *sources.Table, opts ProcessingOptions) (*Frame, error) {
	handle, ok := handlers[c.Kind]
	if !ok {
		return nil, fmt.Errorf("no handler for %s source %s", c.Kind, c.Name)
	}
	return handle(c, t, opts)
}

// parseMonthly reads a date-per-row source. Every column other than date is a variable.
func parseMonthly(c Classification, t *sources.Table, _ ProcessingOptions) (*Frame, error) {
	dateIdx := -1
	for j, name := range t.Header {
		if strings.EqualFold(strings.TrimSpace(name), DateColumn) {
			dateIdx = j
			break
		}
	}
	if dateIdx < 0 {
		return nil, ErrMissingDateColumn
	}

	type valueColumn struct {
		index int
		name  string
	}

	frame := NewFrame(t.Name)
	var valueCols []valueColumn
	for j, name := range t.Header {
		name = strings.TrimSpace(name)
		if j == dateIdx || name == "" {
			continue
		}
		valueCols = append(valueCols, valueColumn{index: j, name: name})
		frame.AddColumn(name)
	}

	for i := range t.Rows {
		raw := t.Cell(i, dateIdx)
		if raw == "" {
			frame.Undated++
			continue
		}
		date, err := NormalizeDate(raw, c.Hint)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+1, err)
		}

		frame.Touch(date)
		for _, col := range valueCols {
			v, err := ParseValue(col.name, t.Cell(i, col.index))
			if err != nil {
				return nil, fmt.Errorf("row %d: %w", i+1, err)
			}
			if err := frame.Set(date, col.name, v); err != nil {
				return nil, err
			}
		}
	}
	return frame, nil
}

// parseYearGrid reads the months-supply grid: month label rows, one column per year
func parseYearGrid(_ Classification, t *sources.Table, _ ProcessingOptions) (*Frame, error) {
	return MeltYearGrid(t, "months_supply")
}

// parsePopulation reads the annual population table. The header row is skipped
// and columns are taken by position: date, population, growth, growth_rate.
func parsePopulation(c Classification, t *sources.Table, _ ProcessingOptions) (*Frame, error) {
	frame := NewFrame(t.Name)
	for _, name := range populationColumns {
		frame.AddColumn(name)
	}

	for i := range t.Rows {
		raw := t.Cell(i, 0)
		if raw == "" {
			frame.Undated++
			continue
		}
		date, err := NormalizeDate(raw, c.Hint)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+1, err)
		}

		frame.Touch(date)
		for j, name := range populationColumns {
			v, err := ParseValue(name, t.Cell(i, j+1))
			if err != nil {
				return nil, fmt.Errorf("row %d: %w", i+1, err)
			}
			if err := frame.Set(date, name, v); err != nil {
				return nil, err
			}
		}
	}
	return frame, nil
}

// parseRateGrid reads a Year-by-month rate table
func parseRateGrid(_ Classification, t *sources.Table, opts ProcessingOptions) (*Frame, error) {
	variable := opts.RateVariable
	if variable == "" {
		variable = DefaultRateVariable
	}
	return MeltRateGrid(t, variable)
}
