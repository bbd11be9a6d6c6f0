package generate

import "strings"

const fallbackTitleWords = 5

// fallbackSlides splits raw text into evenly sized chunks so the editor
// always has something to show when every provider is down or returns
// garbage. Title is the chunk's first few words, body is the remainder.
func fallbackSlides(text string) []GeneratedSlide {
	words := strings.Fields(text)
	if len(words) == 0 {
		return []GeneratedSlide{
			{Title: "Title"},
			{Title: "Title"},
		}
	}

	chunks := minGeneratedSlides
	// Very short input still yields a full deck of tiny slides rather than
	// fewer, bigger ones; the deck floor is what matters.
	per := (len(words) + chunks - 1) / chunks
	if per < 1 {
		per = 1
	}

	var out []GeneratedSlide
	for start := 0; start < len(words); start += per {
		end := start + per
		if end > len(words) {
			end = len(words)
		}
		chunk := words[start:end]

		titleEnd := fallbackTitleWords
		if titleEnd > len(chunk) {
			titleEnd = len(chunk)
		}
		out = append(out, GeneratedSlide{
			Title: strings.Join(chunk[:titleEnd], " "),
			Body:  strings.Join(chunk[titleEnd:], " "),
		})
	}
	for len(out) < 2 {
		out = append(out, GeneratedSlide{Title: "Title"})
	}
	return out
}
