package reportserver

import (
	"context"
	"fmt"
	"io"
	"strconv"

	"github.com/a-h/templ"

	"ragjudge/internal/duckdb"
	"ragjudge/internal/report"
)

// Dashboard renders stored runs and the least stable questions.
func Dashboard(runs []duckdb.RunAccuracy, questions []duckdb.QuestionConsistency) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		head := `<!doctype html><html lang="id"><head><meta charset="utf-8"/><title>Dashboard RAG vs OG</title><style>` +
			report.PageStyle + `</style></head><body><h1>Dashboard RAG vs OG</h1><h2>Akurasi per Run</h2>`
		if _, err := io.WriteString(w, head); err != nil {
			return err
		}
		if len(runs) == 0 {
			if _, err := io.WriteString(w, `<p>Belum ada run. Jalankan ragjudge ingest terlebih dahulu.</p>`); err != nil {
				return err
			}
		} else if err := report.Table(
			[]string{"Run", "Diimpor", "Total", "RAG Benar", "OG Benar", "Keduanya Benar", "RAG", "OG"},
			runRows(runs),
		).Render(ctx, w); err != nil {
			return err
		}

		if len(questions) > 0 {
			if _, err := io.WriteString(w, `<h2>Stabilitas Pertanyaan</h2>`); err != nil {
				return err
			}
			if err := report.Table(
				[]string{"Pertanyaan", "Run", "RAG Benar", "OG Benar"},
				questionRows(questions),
			).Render(ctx, w); err != nil {
				return err
			}
		}
		_, err := io.WriteString(w, `<p><a href="/data/db.duckdb">Unduh database</a></p></body></html>`)
		return err
	})
}

func runRows(runs []duckdb.RunAccuracy) [][]string {
	rows := make([][]string, 0, len(runs))
	for _, r := range runs {
		rows = append(rows, []string{
			r.Name,
			r.IngestedAt.UTC().Format("2006-01-02 15:04"),
			strconv.Itoa(r.Total),
			strconv.Itoa(r.RAGCorrect),
			strconv.Itoa(r.OGCorrect),
			strconv.Itoa(r.BothCorrect),
			fmt.Sprintf("%.1f%%", r.RAGPercent),
			fmt.Sprintf("%.1f%%", r.OGPercent),
		})
	}
	return rows
}

func questionRows(questions []duckdb.QuestionConsistency) [][]string {
	rows := make([][]string, 0, len(questions))
	for _, q := range questions {
		rows = append(rows, []string{
			q.Text,
			strconv.Itoa(q.Runs),
			fmt.Sprintf("%d/%d", q.RAGCorrect, q.Runs),
			fmt.Sprintf("%d/%d", q.OGCorrect, q.Runs),
		})
	}
	return rows
}
