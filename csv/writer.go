// Package csv exports parsed Form D filings as comma-separated values.
package csv

import (
	"encoding/csv"
	"io"

	"github.com/fwojciec/edgar"
)

// Writer writes Form D rows under an edgar.FormDColumns header.
type Writer struct {
	w           *csv.Writer
	wroteHeader bool
}

// NewWriter creates a new Writer that writes to w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: csv.NewWriter(w)}
}

// Write writes one row per Form D, preceded by the header on first use.
// Nil entries are skipped.
func (w *Writer) Write(forms ...*edgar.FormD) error {
	if !w.wroteHeader {
		if err := w.w.Write(edgar.FormDColumns); err != nil {
			return err
		}
		w.wroteHeader = true
	}
	for _, f := range forms {
		if f == nil {
			continue
		}
		if err := w.w.Write(f.Row()); err != nil {
			return err
		}
	}
	w.w.Flush()
	return w.w.Error()
}
