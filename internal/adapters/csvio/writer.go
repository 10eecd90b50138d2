package csvio

import (
	"encoding/csv"
	"fmt"
	"io"

	"leadhopper/internal/core/lead"
)

// Writer renders records as a Mailchimp-importable CSV.
// The header row is written lazily so column order is fixed at construction
// but nothing hits the output until the first record (or Flush)
type Writer struct {
	cw      *csv.Writer
	columns []string
	wrote   bool
	count   int
}

// NewWriter writes records to w in the given column order.
// Column names are internal; the header row renders their canonical form
func NewWriter(w io.Writer, columns []string) *Writer {
	cols := make([]string, len(columns))
	copy(cols, columns)
	return &Writer{cw: csv.NewWriter(w), columns: cols}
}

// Columns returns the output column order
func (w *Writer) Columns() []string {
	out := make([]string, len(w.columns))
	copy(out, w.columns)
	return out
}

func (w *Writer) writeHeader() error {
	row := make([]string, len(w.columns))
	for i, c := range w.columns {
		row[i] = lead.CanonicalHeader(c)
	}
	if err := w.cw.Write(row); err != nil {
		return fmt.Errorf("csvio: write header: %w", err)
	}
	w.wrote = true
	return nil
}

// Write renders one record as a row. Fields absent from the record
// render empty; fields outside the column order are dropped
func (w *Writer) Write(rec lead.Record) error {
	if !w.wrote {
		if err := w.writeHeader(); err != nil {
			return err
		}
	}
	row := make([]string, len(w.columns))
	for i, c := range w.columns {
		row[i] = rec.Value(c)
	}
	if err := w.cw.Write(row); err != nil {
		return fmt.Errorf("csvio: write row: %w", err)
	}
	w.count++
	return nil
}

// Count returns the number of data rows written
func (w *Writer) Count() int { return w.count }

// Flush writes the header if nothing has been written yet and drains
// the buffer. Callers must Flush before reading the output
func (w *Writer) Flush() error {
	if !w.wrote {
		if err := w.writeHeader(); err != nil {
			return err
		}
	}
	w.cw.Flush()
	if err := w.cw.Error(); err != nil {
		return fmt.Errorf("csvio: flush: %w", err)
	}
	return nil
}
