package dataprocessing

// Align folds a frame into the accumulator using a full outer join on date.
// Dates present on one side only are kept; dates on both sides combine their
// columns. A variable carried by both sides must agree wherever both have a
// value, otherwise a *ColumnCollisionError is returned and acc is left untouched.
//
// The join is commutative and associative, so the fold order of a group's
// sources does not change the result.
func Align(acc *Table, frame *Frame) (*Table, error) {
	if err := checkCollisions(acc, frame); err != nil {
		return acc, err
	}

	for _, col := range frame.Columns {
		if existing, ok := acc.columns[col.Name]; !ok || columnLess(col, existing) {
			acc.columns[col.Name] = col
		}
	}

	for date, values := range frame.rows {
		row, ok := acc.rows[date]
		if !ok {
			row = make(map[string]Value, len(values))
			acc.rows[date] = row
		}
		for name, v := range values {
			row[name] = v
		}
	}

	acc.undated += frame.Undated
	return acc, nil
}

// checkCollisions reports the earliest point where frame disagrees with acc
func checkCollisions(acc *Table, frame *Frame) error {
	for _, p := range frame.Points() {
		owner, shared := acc.columns[p.Variable]
		if !shared {
			continue
		}
		current, ok := acc.rows[p.Date][p.Variable]
		if ok && current.Float != p.Value.Float {
			return &ColumnCollisionError{
				Variable: p.Variable,
				Date:     p.Date,
				Existing: owner.Source,
				Incoming: frame.Source,
				Current:  current.Float,
				Proposed: p.Value.Float,
			}
		}
	}
	return nil
}
