package render

import (
	"image/color"
	"strconv"
	"strings"

	"github.com/slipframe/core/internal/models"
)

// BaseWidth is the fixed logical width of every frame, in layout units,
// regardless of display context. Export output is BaseWidth * upscale factor.
const BaseWidth = 540

const (
	margin      = 48
	contentW    = BaseWidth - 2*margin
	titleTop    = 120
	titleSize   = 34.0
	titleLineH  = 46
	bodySize    = 20.0
	bodyLineH   = 30
	bodyGap     = 24
	metaSize    = 15.0
	metaBottom  = 40
	contentClip = 72 // reserved strip above the meta line
)

// Params is everything the renderer needs to lay out one slide. It is derived
// fresh from a deck + position on every render, never stored.
type Params struct {
	Slide           models.Slide
	Template        models.Template
	CoverStyle      models.CoverStyle
	BackgroundColor string
	TextColor       string
	AccentColor     string
	AspectRatio     models.AspectRatio
	SlideNumber     int // 1-based visual position
	TotalSlides     int
	Direction       Direction
	// Interactive marks title/body regions editable. It never changes
	// geometry; export always renders with Interactive=false.
	Interactive bool
}

// ParamsFor derives render parameters for the slide at pos. Direction is
// classified from the slide's own text on every call.
func ParamsFor(deck *models.CarouselModel, pos int, interactive bool) Params {
	var slide models.Slide
	if pos >= 0 && pos < len(deck.Slides) {
		slide = deck.Slides[pos]
	}
	return Params{
		Slide:           slide,
		Template:        deck.Template,
		CoverStyle:      deck.CoverStyle,
		BackgroundColor: deck.BackgroundColor,
		TextColor:       deck.TextColor,
		AccentColor:     deck.AccentColor,
		AspectRatio:     deck.AspectRatio,
		SlideNumber:     pos + 1,
		TotalSlides:     len(deck.Slides),
		Direction:       Classify(slide.Title + " " + slide.Body),
		Interactive:     interactive,
	}
}

// Dimensions returns the logical frame size for an aspect ratio.
// Square is 540x540, portrait 540x675 (4:5).
func Dimensions(r models.AspectRatio) (w, h int) {
	if r == models.AspectPortrait {
		return BaseWidth, BaseWidth * 5 / 4
	}
	return BaseWidth, BaseWidth
}

// BuildFrame lays out one slide into a frame. The same frame feeds both the
// interactive preview and the export pipeline; all wrapping and alignment
// decisions happen here, in logical units, exactly once.
func BuildFrame(p Params, fc *FontCache) *Frame {
	if fc == nil {
		fc = DefaultFontCache()
	}
	w, h := Dimensions(p.AspectRatio)
	f := &Frame{Width: w, Height: h}

	bg := parseHex(p.BackgroundColor, color.RGBA{A: 255})
	fg := parseHex(p.TextColor, color.RGBA{R: 255, G: 255, B: 255, A: 255})
	accent := parseHex(p.AccentColor, parseHex(models.DefaultAccentColor, color.RGBA{A: 255}))

	f.Prims = append(f.Prims, RectPrim{X: 0, Y: 0, W: w, H: h, Color: bg})
	applyCoverStyle(f, p, fc, bg, accent)

	rtl := p.Direction == RTL

	y := titleTop
	for _, line := range wrapText(fc, p.Slide.Title, titleSize, true, contentW) {
		if y > h-contentClip {
			break
		}
		f.Prims = append(f.Prims, TextPrim{
			X:        alignLine(fc, line, titleSize, true, w, rtl),
			Baseline: y,
			Content:  line,
			Size:     titleSize,
			Bold:     true,
			Color:    fg,
			Region:   "title",
			Editable: p.Interactive,
		})
		y += titleLineH
	}

	y += bodyGap
	for _, line := range wrapText(fc, p.Slide.Body, bodySize, false, contentW) {
		if y > h-contentClip {
			break
		}
		f.Prims = append(f.Prims, TextPrim{
			X:        alignLine(fc, line, bodySize, false, w, rtl),
			Baseline: y,
			Content:  line,
			Size:     bodySize,
			Bold:     false,
			Color:    fg,
			Region:   "body",
			Editable: p.Interactive,
		})
		y += bodyLineH
	}

	if p.TotalSlides > 0 {
		meta := strconv.Itoa(p.SlideNumber) + " / " + strconv.Itoa(p.TotalSlides)
		f.Prims = append(f.Prims, TextPrim{
			X:        alignLine(fc, meta, metaSize, false, w, rtl),
			Baseline: h - metaBottom,
			Content:  meta,
			Size:     metaSize,
			Bold:     false,
			Color:    withAlpha(fg, 170),
			Region:   "meta",
		})
	}

	return f
}

// alignLine resolves the pen start for one line: flush left for ltr, flush
// right for rtl, measured with the scale-independent measure face.
func alignLine(fc *FontCache, line string, size float64, bold bool, frameW int, rtl bool) int {
	if !rtl {
		return margin
	}
	return frameW - margin - fc.MeasureString(line, size, bold)
}

// wrapText greedily wraps text into lines no wider than maxW logical units.
// Missing text renders as no lines; a single over-long word is kept whole.
func wrapText(fc *FontCache, text string, size float64, bold bool, maxW int) []string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return nil
	}

	var lines []string
	cur := words[0]
	for _, word := range words[1:] {
		candidate := cur + " " + word
		if fc.MeasureString(candidate, size, bold) > maxW {
			lines = append(lines, cur)
			cur = word
			continue
		}
		cur = candidate
	}
	return append(lines, cur)
}

// mirrorX flips a box horizontally for rtl layouts.
func mirrorX(x, boxW, frameW int) int {
	return frameW - x - boxW
}

func parseHex(s string, fallback color.RGBA) color.RGBA {
	s = strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(s) != 6 {
		return fallback
	}
	var v [3]uint8
	for i := 0; i < 3; i++ {
		hi, ok1 := hexNibble(s[i*2])
		lo, ok2 := hexNibble(s[i*2+1])
		if !ok1 || !ok2 {
			return fallback
		}
		v[i] = hi<<4 | lo
	}
	return color.RGBA{R: v[0], G: v[1], B: v[2], A: 255}
}

func hexNibble(b byte) (uint8, bool) {
	switch {
	case b >= '0' && b <= '9':
		return b - '0', true
	case b >= 'a' && b <= 'f':
		return b - 'a' + 10, true
	case b >= 'A' && b <= 'F':
		return b - 'A' + 10, true
	}
	return 0, false
}

// withAlpha returns c at the given alpha, premultiplied.
func withAlpha(c color.RGBA, a uint8) color.RGBA {
	return color.RGBA{
		R: uint8(uint16(c.R) * uint16(a) / 255),
		G: uint8(uint16(c.G) * uint16(a) / 255),
		B: uint8(uint16(c.B) * uint16(a) / 255),
		A: a,
	}
}

// blend mixes over into under at the given ratio (0..255) into an opaque color.
func blend(under, over color.RGBA, ratio uint8) color.RGBA {
	inv := uint16(255 - ratio)
	r := uint16(ratio)
	return color.RGBA{
		R: uint8((uint16(under.R)*inv + uint16(over.R)*r) / 255),
		G: uint8((uint16(under.G)*inv + uint16(over.G)*r) / 255),
		B: uint8((uint16(under.B)*inv + uint16(over.B)*r) / 255),
		A: 255,
	}
}
