package report

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/a-h/templ"

	"ragjudge/internal/stats"
)

// PageStyle is the stylesheet shared by generated report pages.
const PageStyle = `body{font-family:sans-serif;margin:2rem;color:#222}
table{border-collapse:collapse;margin:1rem 0}
th,td{border:1px solid #ccc;padding:4px 8px;text-align:left}
th{background:#f4f4f4}
.ok{color:#2a9d8f}.bad{color:#e63946}`

// RenderHTML renders the analysis report page into a string.
func RenderHTML(ctx context.Context, a Analysis) (string, error) {
	var builder strings.Builder
	if err := Page(a).Render(ctx, &builder); err != nil {
		return "", err
	}
	return builder.String(), nil
}

// Page is the full analysis report with inline charts.
func Page(a Analysis) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		p := &printer{w: w}
		p.raw(`<!doctype html><html lang="id"><head><meta charset="utf-8"/><title>Analisis Kinerja RAG vs OG</title><style>`)
		p.raw(PageStyle)
		p.raw(`</style></head><body><h1>Analisis Kinerja RAG vs OG</h1>`)
		p.raw(`<p>Dibuat: `)
		p.text(a.GeneratedAt.Format("2006-01-02 15:04:05 MST"))
		p.raw(`</p>`)

		p.raw(`<h2>Kesimpulan</h2><p>`)
		p.text(fmt.Sprintf("Akurasi RAG %s, OG %s dari %d pertanyaan di %d file. ",
			formatPercent(a.Overall.RAGPercent), formatPercent(a.Overall.OGPercent), a.Overall.Total, a.Overall.Files))
		p.text(winnerLine(a.Overall))
		p.raw(`</p>`)

		p.raw(`<h2>Per File</h2>`)
		p.table([]string{"File", "Total", "RAG Benar", "OG Benar", "Keduanya Benar", "Hanya RAG", "Hanya OG", "Keduanya Salah"}, perFileRows(a.Files))
		p.render(ctx, templ.Raw(PerformanceSVG(a.Files)))

		if len(a.Categories) > 0 {
			p.raw(`<h2>Kategori Pertanyaan</h2>`)
			var rows [][]string
			for _, c := range a.Categories {
				rows = append(rows, []string{stats.DisplayName(c.Name), strconv.Itoa(c.Stats.Total),
					formatPercent(c.Stats.RAGCorrectPercent), formatPercent(c.Stats.OGCorrectPercent)})
			}
			p.table([]string{"Kategori", "Total", "RAG", "OG"}, rows)
		}

		p.raw(`<h2>Konsistensi Antar File</h2>`)
		if r := a.Consistency; r == nil {
			p.raw(`<p>`)
			p.text("Data tidak cukup: " + a.Insufficient)
			p.raw(`</p>`)
		} else {
			p.raw(`<p>`)
			kappa := r.Agreement.Level
			if r.Agreement.Defined {
				kappa = formatFloat(r.Agreement.Kappa, 3) + " (" + r.Agreement.Level + ")"
			}
			p.text("Cohen's Kappa: " + kappa)
			p.raw(`</p>`)
			var rows [][]string
			for _, f := range r.PerFile {
				rows = append(rows, []string{f.Name, formatPercent(f.RAGPercent), formatPercent(f.OGPercent),
					formatPercent(f.BothPercent), formatPercent(f.Agreement)})
			}
			p.table([]string{"File", "RAG", "OG", "Keduanya Benar", "Agreement"}, rows)
			p.render(ctx, templ.Raw(ConsistencySVG(*r)))

			rows = rows[:0]
			for _, q := range r.Questions {
				rows = append(rows, []string{strconv.Itoa(q.Index + 1),
					fmt.Sprintf("%d/%d", q.RAGCount, r.N), fmt.Sprintf("%d/%d", q.OGCount, r.N),
					string(q.RAGClass), string(q.OGClass), q.Question})
			}
			p.table([]string{"No", "RAG", "OG", "Kelas RAG", "Kelas OG", "Pertanyaan"}, rows)
		}
		p.raw(`</body></html>`)
		return p.err
	})
}

// Table renders headers and rows as an HTML table with escaped cells.
func Table(headers []string, rows [][]string) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		p := &printer{w: w}
		p.table(headers, rows)
		return p.err
	})
}

func perFileRows(files []stats.FileStats) [][]string {
	rows := make([][]string, 0, len(files))
	for _, fs := range files {
		cs := fs.Categories
		rows = append(rows, []string{
			fs.Name,
			strconv.Itoa(cs.Total),
			fmt.Sprintf("%d (%s)", cs.RAGCorrect, formatPercent(cs.RAGCorrectPercent)),
			fmt.Sprintf("%d (%s)", cs.OGCorrect, formatPercent(cs.OGCorrectPercent)),
			strconv.Itoa(cs.BothCorrect),
			strconv.Itoa(cs.OnlyRAG),
			strconv.Itoa(cs.OnlyOG),
			strconv.Itoa(cs.BothWrong),
		})
	}
	return rows
}

// printer writes HTML fragments and keeps the first write error.
type printer struct {
	w   io.Writer
	err error
}

func (p *printer) raw(s string) {
	if p.err != nil {
		return
	}
	_, p.err = io.WriteString(p.w, s)
}

func (p *printer) render(ctx context.Context, c templ.Component) {
	if p.err != nil {
		return
	}
	p.err = c.Render(ctx, p.w)
}

func (p *printer) text(s string) {
	p.raw(templ.EscapeString(s))
}

func (p *printer) table(headers []string, rows [][]string) {
	p.raw(`<table><thead><tr>`)
	for _, h := range headers {
		p.raw(`<th>`)
		p.text(h)
		p.raw(`</th>`)
	}
	p.raw(`</tr></thead><tbody>`)
	for _, row := range rows {
		p.raw(`<tr>`)
		for _, cell := range row {
			p.raw(`<td>`)
			p.text(cell)
			p.raw(`</td>`)
		}
		p.raw(`</tr>`)
	}
	p.raw(`</tbody></table>`)
}
