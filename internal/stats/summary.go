package stats

import "ragjudge/internal/results"

// Winner labels used in summaries.
const (
	WinnerRAG = "RAG"
	WinnerOG  = "OG"
	WinnerTie = "SERI"
)

// FileComparison is the head-to-head result for one table.
type FileComparison struct {
	Name       string `json:"name"`
	RAGCorrect int    `json:"rag_true"`
	OGCorrect  int    `json:"og_true"`
	Winner     string `json:"winner"`
}

// Overall pools every table into one accuracy comparison.
type Overall struct {
	Files       int              `json:"files"`
	Total       int              `json:"total"`
	RAGCorrect  int              `json:"rag_true"`
	OGCorrect   int              `json:"og_true"`
	BothCorrect int              `json:"both_true"`
	RAGPercent  float64          `json:"rag_accuracy"`
	OGPercent   float64          `json:"og_accuracy"`
	Winner      string           `json:"winner"`
	Margin      float64          `json:"margin"`
	PerFile     []FileComparison `json:"per_file"`
}

// Summarize compares overall accuracy and names the winner with its margin in
// percentage points.
func Summarize(tables []results.Table) Overall {
	overall := Overall{Files: len(tables)}
	for _, table := range tables {
		cs := Compute(table.Records)
		overall.Total += cs.Total
		overall.RAGCorrect += cs.RAGCorrect
		overall.OGCorrect += cs.OGCorrect
		overall.BothCorrect += cs.BothCorrect
		overall.PerFile = append(overall.PerFile, FileComparison{
			Name:       table.Name,
			RAGCorrect: cs.RAGCorrect,
			OGCorrect:  cs.OGCorrect,
			Winner:     winner(float64(cs.RAGCorrect), float64(cs.OGCorrect)),
		})
	}
	overall.RAGPercent = Percent(overall.RAGCorrect, overall.Total)
	overall.OGPercent = Percent(overall.OGCorrect, overall.Total)
	overall.Winner = winner(overall.RAGPercent, overall.OGPercent)
	if overall.Winner != WinnerTie {
		diff := overall.RAGPercent - overall.OGPercent
		if diff < 0 {
			diff = -diff
		}
		overall.Margin = Round1(diff)
	}
	return overall
}

func winner(rag, og float64) string {
	switch {
	case rag > og:
		return WinnerRAG
	case og > rag:
		return WinnerOG
	default:
		return WinnerTie
	}
}
