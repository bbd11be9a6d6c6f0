package generate

import "fmt"

const (
	minGeneratedSlides = 6
	maxGeneratedSlides = 12
)

const generateSystemPrompt = `You turn raw text into a social media carousel. ` +
	`Respond with JSON only, no markdown fences, in the exact shape ` +
	`{"slides":[{"title":"...","body":"..."}]}. ` +
	`Produce between 6 and 12 slides. The first slide is a hook; the last is a call to action. ` +
	`Titles are at most 8 words. Bodies are 1-3 short sentences. ` +
	`Answer in the same language as the source text.`

func buildGeneratePrompt(lang, text string) (systemPrompt, prompt string) {
	instruction := "Turn the following text into carousel slides."
	if lang == "he" {
		instruction = "Turn the following Hebrew text into carousel slides, writing all titles and bodies in Hebrew."
	}
	return generateSystemPrompt, fmt.Sprintf("%s\n\n%s", instruction, text)
}
