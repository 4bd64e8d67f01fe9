package dataprocessing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"indicatorcli/internal/sources"
)

func TestParseSource_Monthly(t *testing.T) {
	t.Run("dependent layouts", func(t *testing.T) {
		table := &sources.Table{
			Name:   "closed-sales.csv",
			Header: []string{"date", "closed_sales"},
			Rows:   [][]string{{"Jan-22", "120"}, {"22-Feb", "130"}},
		}

		frame, err := ParseSource(Classify(GroupDependent, table.Name), table, DefaultOptions())
		require.NoError(t, err)
		assert.Equal(t, []Point{
			{Date: month(2022, time.January), Variable: "closed_sales", Value: Known(120)},
			{Date: month(2022, time.February), Variable: "closed_sales", Value: Known(130)},
		}, frame.Points())
	})

	t.Run("several value columns and a missing cell", func(t *testing.T) {
		table := &sources.Table{
			Name:   "median-income.csv",
			Header: []string{" Date ", "median_income", "mean_income"},
			Rows: [][]string{
				{"2021-01-01", "70,784", "97,962"},
				{"2022-01-01", "", "102,316"},
			},
		}

		frame, err := ParseSource(Classify(GroupIndependent, table.Name), table, DefaultOptions())
		require.NoError(t, err)
		assert.Equal(t, 2, frame.Len())
		assert.Equal(t, Known(70784), frame.Value(month(2021, time.January), "median_income"))
		assert.False(t, frame.Value(month(2022, time.January), "median_income").Valid)
		assert.Equal(t, Known(102316), frame.Value(month(2022, time.January), "mean_income"))
		require.Len(t, frame.Columns, 2)
		assert.Equal(t, "median_income", frame.Columns[0].Name)
		assert.Equal(t, 1, frame.Columns[1].Position)
	})

	t.Run("blank date cells are counted, not parsed", func(t *testing.T) {
		table := &sources.Table{
			Name:   "fed-funds-rate.csv",
			Header: []string{"date", "fed_funds_rate"},
			Rows:   [][]string{{"2022-01-01", "0.08"}, {"", "0.2"}},
		}

		frame, err := ParseSource(Classify(GroupIndependent, table.Name), table, DefaultOptions())
		require.NoError(t, err)
		assert.Equal(t, 1, frame.Len())
		assert.Equal(t, 1, frame.Undated)
	})

	t.Run("unparseable date fails the source", func(t *testing.T) {
		table := &sources.Table{
			Name:   "unemployment-rate.csv",
			Header: []string{"date", "unemployment_rate"},
			Rows:   [][]string{{"2022-01-01", "4.0"}, {"sometime", "3.8"}},
		}

		_, err := ParseSource(Classify(GroupIndependent, table.Name), table, DefaultOptions())
		var dateErr *DateFormatError
		require.ErrorAs(t, err, &dateErr)
		assert.Equal(t, "sometime", dateErr.Value)
		assert.Contains(t, err.Error(), "row 2")
	})

	t.Run("no date column", func(t *testing.T) {
		table := &sources.Table{
			Name:   "homes-for-sale.csv",
			Header: []string{"month", "homes_for_sale"},
			Rows:   [][]string{{"Jan-22", "800"}},
		}

		_, err := ParseSource(Classify(GroupDependent, table.Name), table, DefaultOptions())
		assert.ErrorIs(t, err, ErrMissingDateColumn)
	})

	t.Run("conflicting duplicate dates fail the source", func(t *testing.T) {
		table := &sources.Table{
			Name:   "closed-sales.csv",
			Header: []string{"date", "closed_sales"},
			Rows:   [][]string{{"Jan-22", "120"}, {"22-Jan", "121"}},
		}

		_, err := ParseSource(Classify(GroupDependent, table.Name), table, DefaultOptions())
		var dupErr *DuplicateDateError
		assert.ErrorAs(t, err, &dupErr)
	})
}

func TestParseSource_YearGrid(t *testing.T) {
	table := &sources.Table{
		Name:   "months-supply-updated.csv",
		Header: []string{"whatever", "a", "b", "c", "d", "e", "f"},
		Rows:   [][]string{{"Jan", "", "", "", "", "", "3.4"}},
	}

	frame, err := ParseSource(Classify(GroupDependent, table.Name), table, DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, []Point{
		{Date: month(2022, time.January), Variable: "months_supply", Value: Known(3.4)},
	}, frame.Points())
}

func TestParseSource_Population(t *testing.T) {
	table := &sources.Table{
		Name:   "population-growth.csv",
		Header: []string{"Year", "Population", "Growth", "Growth Rate"},
		Rows: [][]string{
			{"2020", "1000", "10", "0.01"},
			{"2021", "1,012", "12", "0.012"},
		},
	}

	frame, err := ParseSource(Classify(GroupIndependent, table.Name), table, DefaultOptions())
	require.NoError(t, err)

	names := make([]string, 0, len(frame.Columns))
	for _, col := range frame.Columns {
		names = append(names, col.Name)
	}
	assert.Equal(t, []string{"population", "growth", "growth_rate"}, names)
	assert.Equal(t, Known(1000), frame.Value(month(2020, time.January), "population"))
	assert.Equal(t, Known(0.01), frame.Value(month(2020, time.January), "growth_rate"))
	assert.Equal(t, Known(1012), frame.Value(month(2021, time.January), "population"))

	t.Run("month labels are not years", func(t *testing.T) {
		bad := &sources.Table{
			Name:   "population-growth.csv",
			Header: table.Header,
			Rows:   [][]string{{"Jan-20", "1000", "10", "0.01"}},
		}
		_, err := ParseSource(Classify(GroupIndependent, bad.Name), bad, DefaultOptions())
		var dateErr *DateFormatError
		assert.ErrorAs(t, err, &dateErr)
	})
}

func TestParseSource_RateGridVariable(t *testing.T) {
	table := &sources.Table{
		Name:   "rate-of-inflation.csv",
		Header: []string{"Year", "Jan"},
		Rows:   [][]string{{"2022", "7.5"}},
	}

	frame, err := ParseSource(Classify(GroupIndependent, table.Name), table, ProcessingOptions{})
	require.NoError(t, err)
	assert.Equal(t, DefaultRateVariable, frame.Columns[0].Name)

	frame, err = ParseSource(Classify(GroupIndependent, table.Name), table, ProcessingOptions{RateVariable: "interest_rate"})
	require.NoError(t, err)
	assert.Equal(t, "interest_rate", frame.Columns[0].Name)
}

func TestParseSource_Unrecognized(t *testing.T) {
	_, err := ParseSource(Classify(GroupIndependent, "foo.txt"), &sources.Table{Name: "foo.txt"}, DefaultOptions())
	assert.Error(t, err)
}
