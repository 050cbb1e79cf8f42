package prompt

import "strings"

const judgeInstructions = `
Anda adalah evaluator obyektif. Tugas Anda: nilai apakah JAWABAN_KANDIDAT setara secara semantik dengan JAWABAN_ACUAN untuk PERTANYAAN.

KELUARAN HARUS JSON SAJA:
{
  "verdict": "BENAR|SALAH|TIDAK PASTI",
  "score": 0.0,
  "reason": "alasan singkat <= 30 kata"
}

Aturan:
- BENAR jika makna utama setara (sinonim/paraferase ok).
- SALAH jika bertentangan/tidak menjawab/fakta inti hilang.
- TIDAK PASTI jika sebagian benar/ambigu.
- Balas HANYA JSON.
`

// Judge asks the model to grade a candidate answer against the reference answer.
func Judge(question, gold, answer string) string {
	var b strings.Builder
	b.WriteString(judgeInstructions)
	for _, section := range [][2]string{
		{"PERTANYAAN", question},
		{"JAWABAN_ACUAN", gold},
		{"JAWABAN_KANDIDAT", answer},
	} {
		b.WriteString("\n")
		b.WriteString(section[0])
		b.WriteString(":\n")
		b.WriteString(section[1])
		b.WriteString("\n")
	}
	return b.String()
}
