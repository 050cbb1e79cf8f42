package retrieval

import "strings"

// Chunk splits text on blank lines and greedily packs paragraphs into chunks of at most
// maxWords words. A single paragraph longer than maxWords becomes its own chunk.
func Chunk(text string, maxWords int) []string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	var chunks []string
	var current []string
	words := 0
	flush := func() {
		if chunk := strings.TrimSpace(strings.Join(current, "\n\n")); chunk != "" {
			chunks = append(chunks, chunk)
		}
		current = current[:0]
		words = 0
	}
	for _, para := range strings.Split(text, "\n\n") {
		n := len(strings.Fields(para))
		if n == 0 {
			continue
		}
		if words > 0 && words+n > maxWords {
			flush()
		}
		current = append(current, strings.TrimSpace(para))
		words += n
	}
	flush()
	return chunks
}
