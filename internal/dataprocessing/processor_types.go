package dataprocessing

// Group identifies which canonical table a source belongs to
type Group string

const (
	// GroupDependent holds outcome indicators (sales, prices, supply)
	GroupDependent Group = "dependent"
	// GroupIndependent holds predictor indicators (rates, income, population)
	GroupIndependent Group = "independent"
)

// String returns the group name
func (g Group) String() string {
	return string(g)
}

// DefaultFillLimit is how many consecutive missing rows a known value may be carried into.
// Annual sources observed once a year cover the remaining 11 months of that year.
const DefaultFillLimit = 11

// DefaultRateVariable is the variable name produced by the rate grid reshape
const DefaultRateVariable = "rate_of_inflation"

// ProcessingOptions configures processing behavior
type ProcessingOptions struct {
	// FillLimit bounds the forward-fill horizon in rows; 0 disables filling
	FillLimit int

	// RateVariable names the value column produced from rate grids
	RateVariable string
}

// DefaultOptions returns default processing options
func DefaultOptions() ProcessingOptions {
	return ProcessingOptions{
		FillLimit:    DefaultFillLimit,
		RateVariable: DefaultRateVariable,
	}
}
