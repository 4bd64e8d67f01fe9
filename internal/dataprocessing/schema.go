package dataprocessing

import (
	"path/filepath"
	"strings"

	"indicatorcli/internal/sources"
)

// SchemaKind identifies how a source file must be interpreted
type SchemaKind int

const (
	// KindUnrecognized sources are reported and excluded from the merge
	KindUnrecognized SchemaKind = iota
	// KindMonthlyIndicator has one date column and one or more value columns
	KindMonthlyIndicator
	// KindYearGridIndicator has a month label column and one column per year
	KindYearGridIndicator
	// KindAnnualPopulation has positional date, population, growth, growth_rate columns
	KindAnnualPopulation
	// KindAnnualRateGrid has a Year column and one column per month
	KindAnnualRateGrid
)

// String returns the kind name used in logs and metrics
func (k SchemaKind) String() string {
	switch k {
	case KindMonthlyIndicator:
		return "monthly_indicator"
	case KindYearGridIndicator:
		return "year_grid_indicator"
	case KindAnnualPopulation:
		return "annual_population"
	case KindAnnualRateGrid:
		return "annual_rate_grid"
	default:
		return "unrecognized"
	}
}

// Source name rules
const (
	stemMonthsSupply     = "months-supply-updated"
	stemPopulationGrowth = "population-growth"
	prefixRate           = "rate"
)

// dependentMonthly lists the dependent sources already laid out one date per row
var dependentMonthly = map[string]bool{
	"average-price-sqft": true,
	"closed-sales":       true,
	"homes-for-sale":     true,
	"median-price-sqft":  true,
}

// Classification is the outcome of classifying one source file
type Classification struct {
	Name  string
	Stem  string
	Group Group
	Kind  SchemaKind
	// Hint is the date encoding expected for date columns of the source
	Hint DateHint
}

// Recognized reports whether the source takes part in the merge
func (c Classification) Recognized() bool {
	return c.Kind != KindUnrecognized
}

// Classify assigns a schema kind to a source by its file name. The name is
// authoritative; contents are never sniffed.
func Classify(group Group, name string) Classification {
	ext := filepath.Ext(name)
	stem := strings.TrimSuffix(name, ext)
	c := Classification{
		Name:  name,
		Stem:  stem,
		Group: group,
		Kind:  KindUnrecognized,
	}
	if !sources.IsSupported(name) {
		return c
	}

	switch group {
	case GroupDependent:
		switch {
		case dependentMonthly[stem]:
			c.Kind, c.Hint = KindMonthlyIndicator, HintMonthly
		case stem == stemMonthsSupply:
			c.Kind, c.Hint = KindYearGridIndicator, HintMonthYear
		}
	case GroupIndependent:
		switch {
		case stem == stemPopulationGrowth:
			c.Kind, c.Hint = KindAnnualPopulation, HintYear
		case strings.HasPrefix(stem, prefixRate):
			c.Kind, c.Hint = KindAnnualRateGrid, HintYearMonth
		case !strings.HasPrefix(stem, stemPopulationGrowth):
			c.Kind, c.Hint = KindMonthlyIndicator, HintInferred
		}
	}
	return c
}
