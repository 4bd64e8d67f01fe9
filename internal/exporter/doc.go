// Package exporter writes finalized canonical tables as CSV files.
//
// CSVWriter encodes a header row followed by one record per month. Files are
// written through files.WriteAtomic so a failed run never leaves a truncated
// output behind. A UTF-8 BOM can be requested for Excel users.
//
// Example usage:
//
//	writer := exporter.NewCSVWriter(exporter.DefaultWriteOptions(), logger)
//	err := writer.WriteTable("data/independent_variables.csv", final)
package exporter
