package dataprocessing

// ForwardFillProcessor carries the last known value of each column into the
// missing rows that follow it, for at most Limit consecutive rows.
type ForwardFillProcessor struct {
	Limit int
}

// NewForwardFillProcessor creates a new forward-fill processor
func NewForwardFillProcessor(limit int) *ForwardFillProcessor {
	return &ForwardFillProcessor{Limit: limit}
}

// FillMissingData fills a finalized, date-sorted table in place and returns the
// number of filled cells. Columns are filled independently. Nothing is filled
// before the first known value of a column, and a run of missing rows longer
// than Limit keeps its tail missing.
func (f *ForwardFillProcessor) FillMissingData(ft *FinalTable) int {
	if ft == nil || f.Limit <= 0 {
		return 0
	}

	filled := 0
	for col := range ft.Columns {
		var last Value
		gap := 0
		for i := range ft.Rows {
			v := ft.Rows[i].Values[col]
			if v.Valid {
				last = v
				gap = 0
				continue
			}
			gap++
			if last.Valid && gap <= f.Limit {
				ft.Rows[i].Values[col] = last
				filled++
			}
		}
	}
	return filled
}

// ForwardFillStatistics represents forward-fill operation statistics
type ForwardFillStatistics struct {
	Rows        int
	Columns     int
	KnownCells  int
	FilledCells int
	MissingLeft int
}

// FillMissingDataWithStats performs forward-fill and returns statistics
func (f *ForwardFillProcessor) FillMissingDataWithStats(ft *FinalTable) ForwardFillStatistics {
	stats := ForwardFillStatistics{}
	if ft == nil {
		return stats
	}

	stats.FilledCells = f.FillMissingData(ft)
	stats.Rows = len(ft.Rows)
	stats.Columns = len(ft.Columns)
	for _, row := range ft.Rows {
		for _, v := range row.Values {
			if !v.Valid {
				stats.MissingLeft++
			}
		}
	}
	stats.KnownCells = stats.Rows*stats.Columns - stats.MissingLeft - stats.FilledCells
	return stats
}
