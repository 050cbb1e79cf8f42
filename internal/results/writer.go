package results

import (
	"encoding/csv"
	"fmt"
	"io"
)

// Writer appends records to a result file one row at a time.
type Writer struct {
	csv *csv.Writer
}

// NewWriter writes the header and returns a row writer.
func NewWriter(w io.Writer) (*Writer, error) {
	out := &Writer{csv: csv.NewWriter(w)}
	if err := out.writeRow(Header); err != nil {
		return nil, fmt.Errorf("write header: %w", err)
	}
	return out, nil
}

// Write appends one record and flushes it to the underlying writer.
func (w *Writer) Write(rec Record) error {
	row := []string{
		rec.Question, rec.Gold,
		rec.RAG.Answer, FormatBool(rec.RAG.Correct), FormatScore(rec.RAG.Score), rec.RAG.Verdict.Wire(), rec.RAG.Reason,
		rec.OG.Answer, FormatBool(rec.OG.Correct), FormatScore(rec.OG.Score), rec.OG.Verdict.Wire(), rec.OG.Reason,
	}
	if err := w.writeRow(row); err != nil {
		return fmt.Errorf("write record: %w", err)
	}
	return nil
}

func (w *Writer) writeRow(row []string) error {
	if err := w.csv.Write(row); err != nil {
		return err
	}
	w.csv.Flush()
	return w.csv.Error()
}
