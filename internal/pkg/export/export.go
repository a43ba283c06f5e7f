// Package export renders tabular reports as downloadable files.
package export

import (
	"bytes"
	"encoding/csv"
	"fmt"
)

const (
	ContentTypeCSV  = "text/csv; charset=utf-8"
	ContentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

// File is a rendered export ready to be written to a response.
type File struct {
	Name        string
	ContentType string
	Content     []byte
}

// Table is a header plus rows of already formatted cells.
type Table struct {
	Header []string
	Rows   [][]string
}

// CSV renders t as comma-separated text. Cells containing commas, quotes
// or newlines are quoted.
func CSV(name string, t Table) (File, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(t.Header); err != nil {
		return File{}, fmt.Errorf("failed to write csv header: %w", err)
	}
	if err := w.WriteAll(t.Rows); err != nil {
		return File{}, fmt.Errorf("failed to write csv rows: %w", err)
	}

	return File{
		Name:        name,
		ContentType: ContentTypeCSV,
		Content:     buf.Bytes(),
	}, nil
}
