package consistency

// Agreement is Cohen's kappa between the two systems' correctness flags.
// Defined is false when there were no pairs to compare. Confusion is indexed
// [rag][og] with false=0 and true=1.
type Agreement struct {
	Defined   bool      `json:"defined"`
	Kappa     float64   `json:"kappa"`
	Level     string    `json:"level"`
	Total     int       `json:"total"`
	Confusion [2][2]int `json:"confusion"`
}

// Kappa levels, from worst to best.
const (
	LevelPoor          = "Buruk (Poor)"
	LevelFair          = "Sedang (Fair)"
	LevelModerate      = "Baik (Moderate)"
	LevelSubstantial   = "Sangat Baik (Substantial)"
	LevelAlmostPerfect = "Sempurna (Almost Perfect)"
	LevelUndefined     = "Tidak terdefinisi"
)

// Kappa computes Cohen's kappa over paired flags. Sequences of unequal length
// are truncated to the shorter one.
func Kappa(rag, og []bool) Agreement {
	n := min(len(rag), len(og))
	a := Agreement{Total: n, Level: LevelUndefined}
	if n == 0 {
		return a
	}
	for i := 0; i < n; i++ {
		a.Confusion[b2i(rag[i])][b2i(og[i])]++
	}
	total := float64(n)
	po := float64(a.Confusion[0][0]+a.Confusion[1][1]) / total
	p1 := float64(a.Confusion[1][0]+a.Confusion[1][1]) / total
	q1 := float64(a.Confusion[0][1]+a.Confusion[1][1]) / total
	pe := p1*q1 + (1-p1)*(1-q1)

	a.Defined = true
	if pe == 1 {
		a.Kappa = 1
	} else {
		a.Kappa = (po - pe) / (1 - pe)
	}
	a.Level = KappaLevel(a.Kappa)
	return a
}

// KappaLevel labels a kappa value on the usual agreement scale.
func KappaLevel(k float64) string {
	switch {
	case k < 0.2:
		return LevelPoor
	case k < 0.4:
		return LevelFair
	case k < 0.6:
		return LevelModerate
	case k < 0.8:
		return LevelSubstantial
	default:
		return LevelAlmostPerfect
	}
}

func b2i(v bool) int {
	if v {
		return 1
	}
	return 0
}
