package report

import (
	"fmt"
	"strings"

	"github.com/a-h/templ"

	"ragjudge/internal/consistency"
	"ragjudge/internal/stats"
)

const (
	colorRAG       = "#4361ee"
	colorOG        = "#f72585"
	colorBoth      = "#4cc9f0"
	colorBothWrong = "#8d99ae"

	chartWidth  = 720
	chartHeight = 360
	chartPad    = 48
)

type series struct {
	label  string
	color  string
	values []float64
}

func svgOpen(b *strings.Builder, title string) {
	fmt.Fprintf(b, `<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d" font-family="sans-serif" font-size="11">`,
		chartWidth, chartHeight, chartWidth, chartHeight)
	b.WriteString(`<rect width="100%" height="100%" fill="white"/>`)
	fmt.Fprintf(b, `<text x="%d" y="20" text-anchor="middle" font-size="14">%s</text>`, chartWidth/2, templ.EscapeString(title))
	fmt.Fprintf(b, `<line x1="%d" y1="%d" x2="%d" y2="%d" stroke="#333"/>`, chartPad, chartHeight-chartPad, chartWidth-chartPad/2, chartHeight-chartPad)
	fmt.Fprintf(b, `<line x1="%d" y1="%d" x2="%d" y2="%d" stroke="#333"/>`, chartPad, chartPad, chartPad, chartHeight-chartPad)
}

func svgLegend(b *strings.Builder, all []series) {
	for i, s := range all {
		x := chartPad + i*130
		fmt.Fprintf(b, `<rect x="%d" y="30" width="10" height="10" fill="%s"/>`, x, s.color)
		fmt.Fprintf(b, `<text x="%d" y="39">%s</text>`, x+14, templ.EscapeString(s.label))
	}
}

func yFor(v, maxValue float64) float64 {
	plot := float64(chartHeight - 2*chartPad)
	if maxValue <= 0 {
		return float64(chartHeight - chartPad)
	}
	return float64(chartHeight-chartPad) - v/maxValue*plot
}

// PerformanceSVG draws grouped bars of correct answers per file.
func PerformanceSVG(files []stats.FileStats) string {
	all := []series{
		{label: "RAG Benar", color: colorRAG},
		{label: "OG Benar", color: colorOG},
		{label: "Keduanya Benar", color: colorBoth},
	}
	maxValue := 0.0
	for _, fs := range files {
		cs := fs.Categories
		all[0].values = append(all[0].values, float64(cs.RAGCorrect))
		all[1].values = append(all[1].values, float64(cs.OGCorrect))
		all[2].values = append(all[2].values, float64(cs.BothCorrect))
		maxValue = max(maxValue, float64(cs.Total))
	}

	var b strings.Builder
	svgOpen(&b, "Perbandingan Kinerja RAG vs OG")
	svgLegend(&b, all)
	if len(files) > 0 {
		slot := float64(chartWidth-chartPad-chartPad/2) / float64(len(files))
		bar := slot / float64(len(all)+1)
		for i, fs := range files {
			x0 := float64(chartPad) + float64(i)*slot + bar/2
			for j, s := range all {
				y := yFor(s.values[i], maxValue)
				fmt.Fprintf(&b, `<rect x="%.1f" y="%.1f" width="%.1f" height="%.1f" fill="%s"><title>%s: %g</title></rect>`,
					x0+float64(j)*bar, y, bar, float64(chartHeight-chartPad)-y, s.color,
					templ.EscapeString(fs.Name), s.values[i])
			}
			fmt.Fprintf(&b, `<text x="%.1f" y="%d" text-anchor="middle">%s</text>`,
				x0+bar*float64(len(all))/2, chartHeight-chartPad+16,
				templ.EscapeString(truncate(strings.TrimSuffix(fs.Name, ".csv"), 24)))
		}
	}
	fmt.Fprintf(&b, `<text x="12" y="%d" transform="rotate(-90 12 %d)" text-anchor="middle">Jumlah Jawaban Benar</text>`,
		chartHeight/2, chartHeight/2)
	b.WriteString(`</svg>`)
	return b.String()
}

// ConsistencySVG draws per-question correct counts across runs as lines.
func ConsistencySVG(r consistency.Report) string {
	all := []series{
		{label: "RAG Benar", color: colorRAG},
		{label: "OG Benar", color: colorOG},
		{label: "Keduanya Benar", color: colorBoth},
		{label: "Keduanya Salah", color: colorBothWrong},
	}
	for _, q := range r.Questions {
		all[0].values = append(all[0].values, float64(q.RAGCount))
		all[1].values = append(all[1].values, float64(q.OGCount))
		all[2].values = append(all[2].values, float64(q.BothCorrectCount))
		all[3].values = append(all[3].values, float64(q.BothWrongCount))
	}

	var b strings.Builder
	svgOpen(&b, "Konsistensi Jawaban per Pertanyaan")
	svgLegend(&b, all)
	maxValue := float64(r.N)
	fmt.Fprintf(&b, `<line x1="%d" y1="%.1f" x2="%d" y2="%.1f" stroke="green" stroke-dasharray="4 4"/>`,
		chartPad, yFor(maxValue, maxValue), chartWidth-chartPad/2, yFor(maxValue, maxValue))
	fmt.Fprintf(&b, `<line x1="%d" y1="%.1f" x2="%d" y2="%.1f" stroke="orange" stroke-dasharray="4 4"/>`,
		chartPad, yFor(maxValue/2, maxValue), chartWidth-chartPad/2, yFor(maxValue/2, maxValue))
	n := len(r.Questions)
	if n > 0 {
		step := float64(chartWidth-chartPad-chartPad/2) / float64(max(n-1, 1))
		for _, s := range all {
			points := make([]string, 0, n)
			for i, v := range s.values {
				points = append(points, fmt.Sprintf("%.1f,%.1f", float64(chartPad)+float64(i)*step, yFor(v, maxValue)))
			}
			fmt.Fprintf(&b, `<polyline fill="none" stroke="%s" stroke-width="2" points="%s"/>`, s.color, strings.Join(points, " "))
		}
		for i := 0; i < n; i++ {
			fmt.Fprintf(&b, `<text x="%.1f" y="%d" text-anchor="middle">%d</text>`, float64(chartPad)+float64(i)*step, chartHeight-chartPad+16, i+1)
		}
	}
	fmt.Fprintf(&b, `<text x="12" y="%d" transform="rotate(-90 12 %d)" text-anchor="middle">Jumlah (dari %d test)</text>`,
		chartHeight/2, chartHeight/2, r.N)
	b.WriteString(`</svg>`)
	return b.String()
}
