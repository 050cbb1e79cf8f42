// Package prompt builds the Indonesian prompt texts sent to the generation service.
package prompt

import "strings"

// NoContext stands in for retrieved context when retrieval returns no snippets.
const NoContext = "(Tidak ada konteks yang ditemukan.)"

const (
	persona  = "Anda adalah chatbot AI yang ramah dan membantu bernama Nara."
	accuracy = "Jawab secara akurat dan informatif dalam bahasa Indonesia.\n\n"
)

// RAG grounds the answer in retrieved snippets.
func RAG(question string, snippets []string) string {
	var b strings.Builder
	b.WriteString(persona)
	b.WriteString(" Jawab pertanyaan berikut berdasarkan konteks yang diberikan.\n")
	b.WriteString(accuracy)
	b.WriteString("Konteks:\n")
	if len(snippets) == 0 {
		b.WriteString(NoContext)
	}
	for i, snippet := range snippets {
		if i > 0 {
			b.WriteString("\n\n")
		}
		b.WriteString(snippet)
	}
	b.WriteString("\n\n")
	writeQuestion(&b, question)
	return b.String()
}

// OG asks the same question with no retrieved context.
func OG(question string) string {
	var b strings.Builder
	b.WriteString(persona)
	b.WriteString(" Jawab pertanyaan berikut.\n")
	b.WriteString(accuracy)
	writeQuestion(&b, question)
	return b.String()
}

func writeQuestion(b *strings.Builder, question string) {
	b.WriteString("Pertanyaan:\n")
	b.WriteString(question)
	b.WriteByte('\n')
}
