package stats

import (
	"math"
	"sort"
	"strings"

	"ragjudge/internal/judge"
	"ragjudge/internal/results"
	"ragjudge/internal/similarity"
)

// ScoreSummary describes the stored judge scores of one system.
type ScoreSummary struct {
	Count  int      `json:"count"`
	Mean   float64  `json:"mean"`
	Median float64  `json:"median"`
	StdDev *float64 `json:"std,omitempty"`
}

// VerdictCount is how often each system received one verdict.
type VerdictCount struct {
	Verdict    string  `json:"verdict"`
	RAG        int     `json:"rag_count"`
	OG         int     `json:"og_count"`
	RAGPercent float64 `json:"rag_percentage"`
	OGPercent  float64 `json:"og_percentage"`
}

// Problem is a question where the two systems were judged differently.
type Problem struct {
	Index      int      `json:"index"`
	Question   string   `json:"pertanyaan"`
	RAGCorrect bool     `json:"rag_benar"`
	OGCorrect  bool     `json:"og_benar"`
	RAGVerdict string   `json:"rag_verdict,omitempty"`
	OGVerdict  string   `json:"og_verdict,omitempty"`
	RAGScore   *float64 `json:"rag_score,omitempty"`
	OGScore    *float64 `json:"og_score,omitempty"`
	ScoreDiff  *float64 `json:"score_difference,omitempty"`
}

// FileStats is the full single-file analysis. Pointer fields are nil when the
// table lacked the columns they need or the value is undefined.
type FileStats struct {
	Name       string         `json:"name"`
	Schema     results.Schema `json:"-"`
	Dropped    int            `json:"dropped_rows"`
	Categories CategoryStats  `json:"categories"`

	RAGAccuracyBool    float64  `json:"rag_accuracy_boolean"`
	OGAccuracyBool     float64  `json:"og_accuracy_boolean"`
	RAGAccuracyVerdict *float64 `json:"rag_accuracy_verdict,omitempty"`
	OGAccuracyVerdict  *float64 `json:"og_accuracy_verdict,omitempty"`

	RAGScores *ScoreSummary  `json:"rag_scores,omitempty"`
	OGScores  *ScoreSummary  `json:"og_scores,omitempty"`
	Verdicts  []VerdictCount `json:"verdicts,omitempty"`

	BoolAgreement    float64  `json:"bool_agreement_rate"`
	VerdictAgreement *float64 `json:"verdict_agreement_rate,omitempty"`
	ScoreCorrelation *float64 `json:"score_correlation,omitempty"`
	AvgScoreDiff     *float64 `json:"avg_score_difference,omitempty"`
	MaxScoreDiff     *float64 `json:"max_score_difference,omitempty"`
	RAGWins          int      `json:"rag_wins"`
	OGWins           int      `json:"og_wins"`
	AnswerSimilarity *float64 `json:"avg_semantic_similarity,omitempty"`

	Problematic []Problem `json:"problematic_questions"`
}

// Analyze computes every single-file metric the table's columns allow.
// Questions whose scores differ by at least minScoreDiff are flagged as problematic.
func Analyze(table results.Table, minScoreDiff float64) FileStats {
	recs := table.Records
	total := len(recs)
	fs := FileStats{
		Name:       table.Name,
		Schema:     table.Schema,
		Dropped:    table.Dropped,
		Categories: Compute(recs),
	}
	fs.RAGAccuracyBool = share(fs.Categories.RAGCorrect, total)
	fs.OGAccuracyBool = share(fs.Categories.OGCorrect, total)
	fs.RAGWins = fs.Categories.OnlyRAG
	fs.OGWins = fs.Categories.OnlyOG
	fs.BoolAgreement = share(fs.Categories.BothCorrect+fs.Categories.BothWrong, total)

	if table.Schema.HasVerdicts {
		analyzeVerdicts(&fs, recs)
	}
	if table.Schema.HasScores {
		analyzeScores(&fs, recs)
	}
	if table.Schema.HasAnswers && total > 0 {
		var sum float64
		for _, rec := range recs {
			sum += similarity.Ratio(normalizeAnswer(rec.RAG.Answer), normalizeAnswer(rec.OG.Answer))
		}
		fs.AnswerSimilarity = ptr(sum / float64(total))
	}
	fs.Problematic = problematic(recs, table.Schema, minScoreDiff)
	return fs
}

func analyzeVerdicts(fs *FileStats, recs []results.Record) {
	total := len(recs)
	counts := map[judge.Label][2]int{}
	agree := 0
	for _, rec := range recs {
		c := counts[rec.RAG.Verdict]
		c[0]++
		counts[rec.RAG.Verdict] = c
		c = counts[rec.OG.Verdict]
		c[1]++
		counts[rec.OG.Verdict] = c
		if rec.RAG.Verdict == rec.OG.Verdict {
			agree++
		}
	}
	fs.RAGAccuracyVerdict = ptr(share(counts[judge.Correct][0], total))
	fs.OGAccuracyVerdict = ptr(share(counts[judge.Correct][1], total))
	fs.VerdictAgreement = ptr(share(agree, total))
	for _, label := range []judge.Label{judge.Correct, judge.Incorrect, judge.Uncertain} {
		c := counts[label]
		fs.Verdicts = append(fs.Verdicts, VerdictCount{
			Verdict:    label.Wire(),
			RAG:        c[0],
			OG:         c[1],
			RAGPercent: share(c[0], total),
			OGPercent:  share(c[1], total),
		})
	}
}

func analyzeScores(fs *FileStats, recs []results.Record) {
	var rag, og, pairedRAG, pairedOG, diffs []float64
	for _, rec := range recs {
		if rec.RAG.Scored {
			rag = append(rag, rec.RAG.Score)
		}
		if rec.OG.Scored {
			og = append(og, rec.OG.Score)
		}
		if rec.RAG.Scored && rec.OG.Scored {
			pairedRAG = append(pairedRAG, rec.RAG.Score)
			pairedOG = append(pairedOG, rec.OG.Score)
			diffs = append(diffs, math.Abs(rec.RAG.Score-rec.OG.Score))
		}
	}
	fs.RAGScores = summarizeScores(rag)
	fs.OGScores = summarizeScores(og)
	if len(diffs) > 1 {
		if r, ok := Pearson(pairedRAG, pairedOG); ok {
			fs.ScoreCorrelation = ptr(r)
		}
		_, hi := Bounds(diffs)
		fs.AvgScoreDiff = ptr(Mean(diffs))
		fs.MaxScoreDiff = ptr(hi)
	}
}

func summarizeScores(values []float64) *ScoreSummary {
	if len(values) == 0 {
		return nil
	}
	summary := &ScoreSummary{Count: len(values), Mean: Mean(values), Median: Median(values)}
	if std, ok := SampleStdDev(values); ok {
		summary.StdDev = ptr(std)
	}
	return summary
}

func problematic(recs []results.Record, schema results.Schema, minScoreDiff float64) []Problem {
	out := []Problem{}
	for i, rec := range recs {
		flagged := rec.RAG.Correct != rec.OG.Correct
		p := Problem{
			Index:      i,
			Question:   rec.Question,
			RAGCorrect: rec.RAG.Correct,
			OGCorrect:  rec.OG.Correct,
		}
		if schema.HasVerdicts {
			p.RAGVerdict = wire(rec.RAG.Verdict)
			p.OGVerdict = wire(rec.OG.Verdict)
			flagged = flagged || rec.RAG.Verdict != rec.OG.Verdict
		}
		if schema.HasScores {
			if rec.RAG.Scored {
				p.RAGScore = ptr(rec.RAG.Score)
			}
			if rec.OG.Scored {
				p.OGScore = ptr(rec.OG.Score)
			}
			if rec.RAG.Scored && rec.OG.Scored {
				diff := math.Abs(rec.RAG.Score - rec.OG.Score)
				p.ScoreDiff = ptr(diff)
				flagged = flagged || diff >= minScoreDiff
			}
		}
		if flagged {
			out = append(out, p)
		}
	}
	if schema.HasScores {
		sort.SliceStable(out, func(i, j int) bool {
			a, b := out[i].ScoreDiff, out[j].ScoreDiff
			if a == nil || b == nil {
				return a != nil && b == nil
			}
			return *a > *b
		})
	}
	return out
}

func wire(label judge.Label) string {
	if label == "" {
		return ""
	}
	return label.Wire()
}

func normalizeAnswer(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
