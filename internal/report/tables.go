package report

import (
	"fmt"
	"io"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/renderer"
	"github.com/olekukonko/tablewriter/tw"

	"ragjudge/internal/consistency"
	"ragjudge/internal/stats"
)

// newTable creates a markdown-style table shared by every terminal report.
func newTable(w io.Writer, headers ...string) *tablewriter.Table {
	cfg := tablewriter.Config{
		Header: tw.CellConfig{
			Alignment:  tw.CellAlignment{Global: tw.AlignLeft},
			Formatting: tw.CellFormatting{AutoFormat: tw.Off},
		},
		Row: tw.CellConfig{
			Alignment: tw.CellAlignment{Global: tw.AlignLeft},
		},
		MaxWidth: 100,
		Behavior: tw.Behavior{TrimSpace: tw.Off},
	}
	return tablewriter.NewTable(w,
		tablewriter.WithConfig(cfg),
		tablewriter.WithHeader(headers),
		tablewriter.WithRenderer(renderer.NewBlueprint()),
		tablewriter.WithRendition(tw.Rendition{
			Symbols: tw.NewSymbols(tw.StyleMarkdown),
			Borders: tw.Border{Left: tw.On, Top: tw.Off, Right: tw.On, Bottom: tw.Off},
		}),
		tablewriter.WithRowAutoWrap(tw.WrapNone),
	)
}

func heading(w io.Writer, title string) {
	fmt.Fprintf(w, "\n## %s\n\n", title)
}

func categoryRows(table *tablewriter.Table, cs stats.CategoryStats) {
	rows := [][]string{
		{"Total Pertanyaan", strconv.Itoa(cs.Total), ""},
		{"RAG Benar", strconv.Itoa(cs.RAGCorrect), formatPercent(cs.RAGCorrectPercent)},
		{"OG Benar", strconv.Itoa(cs.OGCorrect), formatPercent(cs.OGCorrectPercent)},
		{"Keduanya Benar", strconv.Itoa(cs.BothCorrect), formatPercent(cs.BothCorrectPercent)},
		{"Hanya RAG Benar", strconv.Itoa(cs.OnlyRAG), formatPercent(cs.OnlyRAGPercent)},
		{"Hanya OG Benar", strconv.Itoa(cs.OnlyOG), formatPercent(cs.OnlyOGPercent)},
		{"Keduanya Salah", strconv.Itoa(cs.BothWrong), formatPercent(cs.BothWrongPercent)},
	}
	for _, row := range rows {
		_ = table.Append(row)
	}
}

// WriteFileStats prints the single-file analysis.
func WriteFileStats(w io.Writer, fs stats.FileStats) error {
	heading(w, fs.Name)
	table := newTable(w, "Kategori", "Jumlah", "Persen")
	categoryRows(table, fs.Categories)
	if err := table.Render(); err != nil {
		return fmt.Errorf("render categories: %w", err)
	}

	heading(w, "Metrik")
	table = newTable(w, "Metrik", "RAG", "OG")
	_ = table.Append([]string{"Akurasi (boolean)", formatPercent(fs.RAGAccuracyBool), formatPercent(fs.OGAccuracyBool)})
	if fs.RAGAccuracyVerdict != nil {
		_ = table.Append([]string{"Akurasi (verdict)", formatPercent(*fs.RAGAccuracyVerdict), formatPercent(*fs.OGAccuracyVerdict)})
	}
	if fs.RAGScores != nil || fs.OGScores != nil {
		_ = table.Append([]string{"Skor rata-rata", scoreField(fs.RAGScores, "mean"), scoreField(fs.OGScores, "mean")})
		_ = table.Append([]string{"Skor median", scoreField(fs.RAGScores, "median"), scoreField(fs.OGScores, "median")})
		_ = table.Append([]string{"Skor std", scoreField(fs.RAGScores, "std"), scoreField(fs.OGScores, "std")})
	}
	_ = table.Append([]string{"Menang", strconv.Itoa(fs.RAGWins), strconv.Itoa(fs.OGWins)})
	if err := table.Render(); err != nil {
		return fmt.Errorf("render metrics: %w", err)
	}

	heading(w, "Konsistensi")
	table = newTable(w, "Metrik", "Nilai")
	_ = table.Append([]string{"Kesepakatan boolean", formatPercent(fs.BoolAgreement)})
	if fs.VerdictAgreement != nil {
		_ = table.Append([]string{"Kesepakatan verdict", formatPercent(*fs.VerdictAgreement)})
	}
	_ = table.Append([]string{"Korelasi skor", formatOptional(fs.ScoreCorrelation, 3)})
	_ = table.Append([]string{"Selisih skor rata-rata", formatOptional(fs.AvgScoreDiff, 3)})
	_ = table.Append([]string{"Selisih skor maksimum", formatOptional(fs.MaxScoreDiff, 3)})
	_ = table.Append([]string{"Kemiripan jawaban", formatOptional(fs.AnswerSimilarity, 3)})
	if err := table.Render(); err != nil {
		return fmt.Errorf("render consistency: %w", err)
	}

	if len(fs.Verdicts) > 0 {
		heading(w, "Distribusi Verdict")
		table = newTable(w, "Verdict", "RAG", "OG")
		for _, vc := range fs.Verdicts {
			_ = table.Append([]string{
				vc.Verdict,
				fmt.Sprintf("%d (%s)", vc.RAG, formatPercent(vc.RAGPercent)),
				fmt.Sprintf("%d (%s)", vc.OG, formatPercent(vc.OGPercent)),
			})
		}
		if err := table.Render(); err != nil {
			return fmt.Errorf("render verdicts: %w", err)
		}
	}

	heading(w, fmt.Sprintf("Pertanyaan Bermasalah (%d)", len(fs.Problematic)))
	if len(fs.Problematic) == 0 {
		fmt.Fprintln(w, "Tidak ada.")
		return nil
	}
	table = newTable(w, "No", "RAG", "OG", "Selisih", "Pertanyaan")
	for _, p := range fs.Problematic {
		_ = table.Append([]string{
			strconv.Itoa(p.Index + 1),
			mark(p.RAGCorrect),
			mark(p.OGCorrect),
			formatOptional(p.ScoreDiff, 3),
			truncate(p.Question, 60),
		})
	}
	if err := table.Render(); err != nil {
		return fmt.Errorf("render problematic: %w", err)
	}
	return nil
}

func scoreField(s *stats.ScoreSummary, field string) string {
	if s == nil {
		return "-"
	}
	switch field {
	case "mean":
		return formatFloat(s.Mean, 3)
	case "median":
		return formatFloat(s.Median, 3)
	default:
		return formatOptional(s.StdDev, 3)
	}
}

// WriteAnalysis prints the multi-file analysis.
func WriteAnalysis(w io.Writer, a Analysis) error {
	heading(w, "Per File")
	table := newTable(w, "File", "Total", "RAG", "OG", "Keduanya Benar", "Keduanya Salah", "Hasil")
	for i, fs := range a.Files {
		cs := fs.Categories
		_ = table.Append([]string{
			fs.Name,
			strconv.Itoa(cs.Total),
			fmt.Sprintf("%d (%s)", cs.RAGCorrect, formatPercent(cs.RAGCorrectPercent)),
			fmt.Sprintf("%d (%s)", cs.OGCorrect, formatPercent(cs.OGCorrectPercent)),
			strconv.Itoa(cs.BothCorrect),
			strconv.Itoa(cs.BothWrong),
			a.Overall.PerFile[i].Winner,
		})
	}
	if err := table.Render(); err != nil {
		return fmt.Errorf("render per-file: %w", err)
	}

	heading(w, "Kesimpulan")
	o := a.Overall
	fmt.Fprintf(w, "Total Pertanyaan: %d dari %d file\n", o.Total, o.Files)
	fmt.Fprintf(w, "Akurasi RAG: %s (%d/%d)\n", formatPercent(o.RAGPercent), o.RAGCorrect, o.Total)
	fmt.Fprintf(w, "Akurasi OG: %s (%d/%d)\n", formatPercent(o.OGPercent), o.OGCorrect, o.Total)
	fmt.Fprintln(w, winnerLine(o))

	if len(a.Categories) > 0 {
		heading(w, "Kategori Pertanyaan")
		table = newTable(w, "Kategori", "Total", "RAG", "OG")
		for _, c := range a.Categories {
			_ = table.Append([]string{
				stats.DisplayName(c.Name),
				strconv.Itoa(c.Stats.Total),
				formatPercent(c.Stats.RAGCorrectPercent),
				formatPercent(c.Stats.OGCorrectPercent),
			})
		}
		if err := table.Render(); err != nil {
			return fmt.Errorf("render categories: %w", err)
		}
	}

	if a.Consistency == nil {
		heading(w, "Konsistensi")
		fmt.Fprintf(w, "Data tidak cukup: %s\n", a.Insufficient)
		return nil
	}
	return writeConsistency(w, *a.Consistency)
}

func winnerLine(o stats.Overall) string {
	if o.Winner == stats.WinnerTie {
		return "Kinerja RAG dan OG setara!"
	}
	return fmt.Sprintf("%s mengungguli dengan margin %s", o.Winner, formatPercent(o.Margin))
}

func writeConsistency(w io.Writer, r consistency.Report) error {
	heading(w, "Konsistensi Antar File")
	table := newTable(w, "Sistem", "Std Dev", "Rentang", "Selalu Benar", "Selalu Salah", "Tidak Konsisten")
	for _, row := range []struct {
		name    string
		disp    consistency.Dispersion
		classes consistency.ClassCounts
	}{
		{"RAG", r.RAGDispersion, r.RAGClasses},
		{"OG", r.OGDispersion, r.OGClasses},
	} {
		_ = table.Append([]string{
			row.name,
			formatFloat(row.disp.StdDev, 2) + "%",
			fmt.Sprintf("%s - %s", formatPercent(row.disp.Min), formatPercent(row.disp.Max)),
			strconv.Itoa(row.classes.Always),
			strconv.Itoa(row.classes.Never),
			strconv.Itoa(row.classes.Inconsistent),
		})
	}
	if err := table.Render(); err != nil {
		return fmt.Errorf("render dispersion: %w", err)
	}

	heading(w, "Agreement")
	if r.Agreement.Defined {
		fmt.Fprintf(w, "Cohen's Kappa: %s (%s)\n", formatFloat(r.Agreement.Kappa, 3), r.Agreement.Level)
	} else {
		fmt.Fprintf(w, "Cohen's Kappa: %s\n", r.Agreement.Level)
	}
	table = newTable(w, "", "OG Salah", "OG Benar")
	_ = table.Append([]string{"RAG Salah", strconv.Itoa(r.Agreement.Confusion[0][0]), strconv.Itoa(r.Agreement.Confusion[0][1])})
	_ = table.Append([]string{"RAG Benar", strconv.Itoa(r.Agreement.Confusion[1][0]), strconv.Itoa(r.Agreement.Confusion[1][1])})
	if err := table.Render(); err != nil {
		return fmt.Errorf("render confusion: %w", err)
	}

	heading(w, "Per File")
	table = newTable(w, "File", "RAG", "OG", "Keduanya Benar", "Agreement")
	for _, f := range r.PerFile {
		_ = table.Append([]string{f.Name, formatPercent(f.RAGPercent), formatPercent(f.OGPercent), formatPercent(f.BothPercent), formatPercent(f.Agreement)})
	}
	if err := table.Render(); err != nil {
		return fmt.Errorf("render per-file agreement: %w", err)
	}

	heading(w, "Konsistensi Per Pertanyaan")
	table = newTable(w, "No", "RAG", "OG", "Keduanya Benar", "Keduanya Salah", "Pertanyaan")
	for _, q := range r.Questions {
		_ = table.Append([]string{
			strconv.Itoa(q.Index + 1),
			fmt.Sprintf("%d/%d", q.RAGCount, r.N),
			fmt.Sprintf("%d/%d", q.OGCount, r.N),
			fmt.Sprintf("%d/%d", q.BothCorrectCount, r.N),
			fmt.Sprintf("%d/%d", q.BothWrongCount, r.N),
			truncate(q.Question, 45),
		})
	}
	if err := table.Render(); err != nil {
		return fmt.Errorf("render per-question: %w", err)
	}

	fmt.Fprintf(w, "\nKeduanya Selalu Benar: %d pertanyaan\n", len(r.BothAlways))
	fmt.Fprintf(w, "Keduanya Selalu Salah: %d pertanyaan\n", len(r.BothNever))
	writeRanked(w, "RAG - Paling Tidak Konsisten", r, r.RAGInconsistent, func(q consistency.Question) int { return q.RAGCount })
	writeRanked(w, "OG - Paling Tidak Konsisten", r, r.OGInconsistent, func(q consistency.Question) int { return q.OGCount })
	fmt.Fprintf(w, "\nRata-rata benar per pertanyaan: RAG %s, OG %s\n", formatFloat(r.Spread.RAGMean, 2), formatFloat(r.Spread.OGMean, 2))
	fmt.Fprintf(w, "Standar deviasi: RAG %s, OG %s\n", formatFloat(r.Spread.RAGStdDev, 2), formatFloat(r.Spread.OGStdDev, 2))
	fmt.Fprintf(w, "Korelasi RAG-OG: %s\n", formatOptional(r.Spread.Correlation, 3))
	return nil
}

func writeRanked(w io.Writer, title string, r consistency.Report, ranked []int, count func(consistency.Question) int) {
	if len(ranked) == 0 {
		return
	}
	fmt.Fprintf(w, "\n%s:\n", title)
	for _, idx := range ranked[:min(3, len(ranked))] {
		q := r.Questions[idx]
		fmt.Fprintf(w, "  Q%d: %d/%d - %s\n", idx+1, count(q), r.N, truncate(q.Question, 50))
	}
}
