package sources

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Supported source extensions
const (
	ExtCSV  = ".csv"
	ExtXLSX = ".xlsx"
)

// ErrEmptySource is returned when a source has no header row
var ErrEmptySource = errors.New("source has no header row")

// ErrUnsupportedExtension is returned for files that no reader can open
var ErrUnsupportedExtension = errors.New("unsupported source extension")

// Table is the raw content of one source file: a header row followed by data rows.
// Rows may be shorter or longer than the header.
type Table struct {
	Name   string
	Header []string
	Rows   [][]string
}

// Cell returns the trimmed value at row i, column j, or "" when the row is short
func (t *Table) Cell(i, j int) string {
	if i < 0 || i >= len(t.Rows) || j < 0 || j >= len(t.Rows[i]) {
		return ""
	}
	return strings.TrimSpace(t.Rows[i][j])
}

// IsSupported reports whether a file name carries an extension a reader exists for
func IsSupported(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ExtCSV, ExtXLSX:
		return true
	}
	return false
}

// ReadFile opens a source file and reads it with the reader matching its extension
func ReadFile(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open source: %w", err)
	}
	defer f.Close()

	name := filepath.Base(path)
	switch strings.ToLower(filepath.Ext(name)) {
	case ExtCSV:
		return ReadCSV(f, name)
	case ExtXLSX:
		return ReadXLSX(f, name)
	default:
		return nil, fmt.Errorf("%s: %w", name, ErrUnsupportedExtension)
	}
}

// ReadCSV reads a comma-delimited table. A UTF-8 BOM on the first cell is removed.
func ReadCSV(r io.Reader, name string) (*Table, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", name, err)
	}
	return newTable(name, rows)
}

func newTable(name string, rows [][]string) (*Table, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("%s: %w", name, ErrEmptySource)
	}

	header := rows[0]
	if len(header) > 0 {
		header[0] = string(bytes.TrimPrefix([]byte(header[0]), []byte{0xEF, 0xBB, 0xBF}))
	}

	data := make([][]string, 0, len(rows)-1)
	for _, row := range rows[1:] {
		if isBlank(row) {
			continue
		}
		data = append(data, row)
	}

	return &Table{
		Name:   name,
		Header: header,
		Rows:   data,
	}, nil
}

func isBlank(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
