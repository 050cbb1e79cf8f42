package stats

import (
	"testing"

	"github.com/stretchr/testify/require"

	"ragjudge/internal/config"
	"ragjudge/internal/judge"
	"ragjudge/internal/results"
)

func flags(pairs ...bool) []results.Record {
	var recs []results.Record
	for i := 0; i+1 < len(pairs); i += 2 {
		recs = append(recs, results.Record{
			Question: "q",
			RAG:      results.Side{Correct: pairs[i]},
			OG:       results.Side{Correct: pairs[i+1]},
		})
	}
	return recs
}

func side(answer string, correct bool, score float64, label judge.Label) results.Side {
	return results.Side{Answer: answer, Correct: correct, Score: score, Scored: true, Verdict: label}
}

// TestComputePartitionsOutcomes verifies the four categories partition the records.
func TestComputePartitionsOutcomes(t *testing.T) {
	got := Compute(flags(true, true, true, false, false, true, false, false, true, false, false, false))
	require.Equal(t, 6, got.Total)
	require.Equal(t, 3, got.RAGCorrect)
	require.Equal(t, 2, got.OGCorrect)
	require.Equal(t, 1, got.BothCorrect)
	require.Equal(t, 2, got.OnlyRAG)
	require.Equal(t, 1, got.OnlyOG)
	require.Equal(t, 2, got.BothWrong)
	require.Equal(t, got.Total, got.BothCorrect+got.OnlyRAG+got.OnlyOG+got.BothWrong)
	require.Equal(t, 50.0, got.RAGCorrectPercent)
	require.Equal(t, 33.3, got.OGCorrectPercent)
	require.Equal(t, 16.7, got.BothCorrectPercent)
	sum := got.BothCorrectPercent + got.OnlyRAGPercent + got.OnlyOGPercent + got.BothWrongPercent
	require.InDelta(t, 100, sum, 0.1)
}

// TestComputeEmpty verifies an empty table yields all zeros.
func TestComputeEmpty(t *testing.T) {
	require.Equal(t, CategoryStats{}, Compute(nil))
}

// TestCategorizeFirstMatchWins verifies rule order, case folding and the fallback.
func TestCategorizeFirstMatchWins(t *testing.T) {
	rules := config.DefaultCategories()
	cases := map[string]string{
		"Kapan UKRI didirikan?":         "Identitas_UKRI",
		"Siapa dekan FTI?":              "Struktur_Organisasi",
		"Apa status AKREDITASI kampus?": "Akreditasi",
		"Berapa biaya kuliah?":          "Lainnya",
	}
	for question, want := range cases {
		require.Equal(t, want, Categorize(question, rules, "Lainnya"), question)
	}
}

// TestByCategoryFollowsRuleOrder verifies groups are ordered by rule and empty groups are omitted.
func TestByCategoryFollowsRuleOrder(t *testing.T) {
	recs := []results.Record{
		{Question: "Berapa biaya kuliah?", RAG: results.Side{Correct: true}},
		{Question: "Siapa rektor sekarang?", RAG: results.Side{Correct: true}, OG: results.Side{Correct: true}},
		{Question: "Kapan kampus berdiri?"},
		{Question: "Siapa wakil rektor?", OG: results.Side{Correct: true}},
	}
	got := ByCategory(recs, config.DefaultCategories(), "Lainnya")
	require.Len(t, got, 3)
	require.Equal(t, "Sejarah", got[0].Name)
	require.Equal(t, "Struktur_Organisasi", got[1].Name)
	require.Equal(t, "Lainnya", got[2].Name)
	require.Equal(t, 2, got[1].Stats.Total)
	require.Equal(t, 50.0, got[1].Stats.RAGCorrectPercent)
	require.Equal(t, 100.0, got[1].Stats.OGCorrectPercent)
	require.Equal(t, "Struktur Organisasi", DisplayName(got[1].Name))
}

// TestAnalyzeFullSchema verifies verdict, score and disagreement metrics on a complete table.
func TestAnalyzeFullSchema(t *testing.T) {
	table := results.Table{
		Name:   "run.csv",
		Schema: results.Schema{HasGold: true, HasAnswers: true, HasScores: true, HasVerdicts: true, HasReasons: true},
		Records: []results.Record{
			{Question: "q0", RAG: side("Tahun 1950", true, 0.9, judge.Correct), OG: side("tidak tahu", false, 0.2, judge.Incorrect)},
			{Question: "q1", RAG: side("x", true, 0.8, judge.Correct), OG: side("x", true, 0.85, judge.Correct)},
			{Question: "q2", RAG: side("a", false, 0.1, judge.Incorrect), OG: side("b", false, 0.5, judge.Uncertain)},
		},
	}
	fs := Analyze(table, 0.3)

	require.InDelta(t, 66.667, fs.RAGAccuracyBool, 0.001)
	require.InDelta(t, 33.333, fs.OGAccuracyBool, 0.001)
	require.NotNil(t, fs.RAGAccuracyVerdict)
	require.InDelta(t, 66.667, *fs.RAGAccuracyVerdict, 0.001)
	require.InDelta(t, 33.333, *fs.OGAccuracyVerdict, 0.001)
	require.InDelta(t, 66.667, fs.BoolAgreement, 0.001)
	require.InDelta(t, 33.333, *fs.VerdictAgreement, 0.001)
	require.Equal(t, 1, fs.RAGWins)
	require.Equal(t, 0, fs.OGWins)

	require.NotNil(t, fs.RAGScores)
	require.Equal(t, 3, fs.RAGScores.Count)
	require.InDelta(t, 0.6, fs.RAGScores.Mean, 1e-9)
	require.InDelta(t, 0.8, fs.RAGScores.Median, 1e-9)
	require.NotNil(t, fs.RAGScores.StdDev)
	require.InDelta(t, 0.5, fs.OGScores.Median, 1e-9)
	require.InDelta(t, 0.38333, *fs.AvgScoreDiff, 1e-4)
	require.InDelta(t, 0.7, *fs.MaxScoreDiff, 1e-9)
	require.NotNil(t, fs.ScoreCorrelation)

	require.Len(t, fs.Verdicts, 3)
	require.Equal(t, VerdictCount{Verdict: "BENAR", RAG: 2, OG: 1, RAGPercent: fs.Verdicts[0].RAGPercent, OGPercent: fs.Verdicts[0].OGPercent}, fs.Verdicts[0])
	require.Equal(t, 1, fs.Verdicts[2].OG)

	require.NotNil(t, fs.AnswerSimilarity)
	require.Greater(t, *fs.AnswerSimilarity, 0.0)
	require.LessOrEqual(t, *fs.AnswerSimilarity, 1.0)

	require.Len(t, fs.Problematic, 2)
	require.Equal(t, 0, fs.Problematic[0].Index)
	require.Equal(t, 2, fs.Problematic[1].Index)
	require.Equal(t, "TIDAK PASTI", fs.Problematic[1].OGVerdict)
}

// TestAnalyzeMinimalSchema verifies optional metrics stay unset without their columns.
func TestAnalyzeMinimalSchema(t *testing.T) {
	table := results.Table{Name: "min.csv", Records: flags(true, false, true, true, false, true)}
	fs := Analyze(table, 0.3)
	require.Nil(t, fs.RAGScores)
	require.Nil(t, fs.VerdictAgreement)
	require.Nil(t, fs.ScoreCorrelation)
	require.Nil(t, fs.AnswerSimilarity)
	require.Empty(t, fs.Verdicts)
	require.Len(t, fs.Problematic, 2)
	require.Equal(t, 0, fs.Problematic[0].Index)
	require.Equal(t, 2, fs.Problematic[1].Index)
}

// TestNumericHelpers verifies the dispersion and correlation helpers.
func TestNumericHelpers(t *testing.T) {
	values := []float64{2, 4, 4, 4, 5, 5, 7, 9}
	require.InDelta(t, 2.0, PopulationStdDev(values), 1e-9)
	std, ok := SampleStdDev(values)
	require.True(t, ok)
	require.InDelta(t, 2.13809, std, 1e-5)
	_, ok = SampleStdDev([]float64{1})
	require.False(t, ok)
	require.Equal(t, 4.5, Median(values))

	r, ok := Pearson([]float64{1, 2, 3}, []float64{2, 4, 6})
	require.True(t, ok)
	require.InDelta(t, 1.0, r, 1e-9)
	_, ok = Pearson([]float64{1, 1, 1}, []float64{2, 4, 6})
	require.False(t, ok)

	lo, hi := Bounds([]float64{40, 75.5, 60})
	require.Equal(t, 40.0, lo)
	require.Equal(t, 75.5, hi)
}

// TestSummarizeNamesWinner verifies pooled accuracy, margin and per-file winners.
func TestSummarizeNamesWinner(t *testing.T) {
	tables := []results.Table{
		{Name: "a.csv", Records: flags(true, false, true, true, false, false)},
		{Name: "b.csv", Records: flags(false, true, false, true)},
	}
	got := Summarize(tables)
	require.Equal(t, 5, got.Total)
	require.Equal(t, 40.0, got.RAGPercent)
	require.Equal(t, 60.0, got.OGPercent)
	require.Equal(t, WinnerOG, got.Winner)
	require.Equal(t, 20.0, got.Margin)
	require.Equal(t, WinnerRAG, got.PerFile[0].Winner)
	require.Equal(t, WinnerOG, got.PerFile[1].Winner)

	tie := Summarize([]results.Table{{Name: "c.csv", Records: flags(true, false, false, true)}})
	require.Equal(t, WinnerTie, tie.Winner)
	require.Equal(t, 0.0, tie.Margin)
}
