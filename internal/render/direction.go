package render

import "unicode"

// Direction is the resolved text flow of one slide.
type Direction string

const (
	LTR Direction = "ltr"
	RTL Direction = "rtl"
)

// rtlThreshold is the Hebrew character ratio above which a slide lays out
// right-to-left. Exactly 30% stays ltr.
const rtlThreshold = 0.30

// Classify decides the layout direction of a text. It counts characters in
// the Hebrew Unicode block against all non-whitespace characters; empty or
// whitespace-only input is ltr. Cheap enough to run on every render.
func Classify(text string) Direction {
	hebrew, nonSpace := 0, 0
	for _, r := range text {
		if unicode.IsSpace(r) {
			continue
		}
		nonSpace++
		if unicode.Is(unicode.Hebrew, r) {
			hebrew++
		}
	}
	if nonSpace == 0 {
		return LTR
	}
	if float64(hebrew)/float64(nonSpace) > rtlThreshold {
		return RTL
	}
	return LTR
}
