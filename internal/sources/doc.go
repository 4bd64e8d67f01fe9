// Package sources reads indicator export files into raw tables.
//
// Two formats are supported:
//
//	.csv   comma-delimited text with a header row
//	.xlsx  first worksheet of an Excel workbook (read with excelize)
//
// A Table keeps the header separate from the data rows and never interprets
// cell contents; classification and date handling live in dataprocessing.
package sources
