package exporter

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"indicatorcli/internal/dataprocessing"
	"indicatorcli/internal/files"
)

// ErrNilTable is returned when there is no table to write
var ErrNilTable = errors.New("nil table")

// WriteOptions configures CSV writing behavior
type WriteOptions struct {
	BOMPrefix bool // Add UTF-8 BOM for Excel compatibility
	Comma     rune
}

// DefaultWriteOptions writes plain comma separated UTF-8 without a BOM
func DefaultWriteOptions() WriteOptions {
	return WriteOptions{Comma: ','}
}

// CSVWriter provides CSV export functionality
type CSVWriter struct {
	options WriteOptions
	logger  *slog.Logger
}

// NewCSVWriter creates a new CSV writer instance
func NewCSVWriter(options WriteOptions, logger *slog.Logger) *CSVWriter {
	if options.Comma == 0 {
		options.Comma = ','
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &CSVWriter{options: options, logger: logger}
}

// WriteCSV writes headers and records to filePath, replacing any previous file atomically
func (w *CSVWriter) WriteCSV(filePath string, headers []string, records [][]string) error {
	w.logger.Info("Writing CSV file",
		slog.String("file_path", filePath),
		slog.Int("record_count", len(records)))

	return files.WriteAtomic(filePath, func(out io.Writer) error {
		return w.encode(out, headers, records)
	})
}

// WriteTable writes a finalized canonical table: the date column first, then
// one column per variable, one row per month in ascending order
func (w *CSVWriter) WriteTable(filePath string, table *dataprocessing.FinalTable) error {
	if table == nil {
		return ErrNilTable
	}
	return w.WriteCSV(filePath, table.Header(), table.Records())
}

func (w *CSVWriter) encode(out io.Writer, headers []string, records [][]string) error {
	// Write BOM if requested (helps Excel recognize UTF-8)
	if w.options.BOMPrefix {
		if _, err := out.Write([]byte{0xEF, 0xBB, 0xBF}); err != nil {
			return fmt.Errorf("failed to write BOM: %w", err)
		}
	}

	writer := csv.NewWriter(out)
	writer.Comma = w.options.Comma

	if len(headers) > 0 {
		if err := writer.Write(headers); err != nil {
			return fmt.Errorf("failed to write headers: %w", err)
		}
	}
	for i, record := range records {
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("failed to write record %d: %w", i, err)
		}
	}

	writer.Flush()
	return writer.Error()
}
