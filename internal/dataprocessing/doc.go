// Package dataprocessing turns per-indicator source files into canonical,
// month-indexed tables.
//
// # Architecture
//
// The package is organized into five components:
//
//  1. Dates: NormalizeDate tries candidate layouts in a fixed order per DateHint
//  2. Schema: Classify assigns a SchemaKind from the file name alone
//  3. Reshape: Melt turns year-by-month grids into one row per date
//  4. Align: full outer join of a source Frame into the group Table
//  5. Fill: ForwardFillProcessor carries values forward for a bounded number of rows
//
// # Data Flow
//
//	file name → Classify → ParseSource → Frame → Align → Table → Finalize → Fill → FinalTable
//
// Processor.Accumulate drives the first four steps for a whole group and
// reports one FileResult per source. Sources that fail to parse are dropped
// whole; no partial rows from a failed file reach the table.
//
// # Usage
//
//	p := dataprocessing.NewProcessor(dataprocessing.DefaultOptions(), logger)
//	table, results, err := p.Accumulate(ctx, dataprocessing.GroupIndependent, names, load)
//	if err != nil {
//	    return err
//	}
//	final := dataprocessing.Finalize(table)
//	stats := p.Fill(final)
//
// # Error Handling
//
// DateFormatError and ValueFormatError fail a single source. ColumnCollisionError
// and load errors fail the whole group.
package dataprocessing
