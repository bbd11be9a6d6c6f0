package generate

// GenerateDTO is a request to turn raw text into the slides of a deck.
type GenerateDTO struct {
	Name     string `json:"name"     binding:"required"`
	RawText  string `json:"raw_text" binding:"required"`
	Language string `json:"language"`
	Provider string `json:"provider"`
}

// GeneratedSlide is one slide produced by a provider or the local fallback.
type GeneratedSlide struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

// generationOutput is the JSON shape providers are instructed to return.
type generationOutput struct {
	Slides []GeneratedSlide `json:"slides"`
}
