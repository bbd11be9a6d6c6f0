package render

import (
	"image/color"
	"testing"

	"github.com/slipframe/core/internal/models"
)

func testDeck() *models.CarouselModel {
	return &models.CarouselModel{
		Name:            "Geometry Deck",
		Template:        models.TemplateDark,
		CoverStyle:      models.CoverMinimalist,
		AspectRatio:     models.AspectPortrait,
		BackgroundColor: "#101010",
		TextColor:       "#FAFAFA",
		AccentColor:     "#FF6B6B",
		Slides: models.SlideList{
			{Position: 0, Title: "First slide", Body: "Some body text that should wrap when it grows long enough to exceed the content width"},
			{Position: 1, Title: "שלום עולם", Body: "גוף הטקסט של השקופית"},
			{Position: 2, Title: "", Body: ""},
		},
	}
}

func TestDimensions(t *testing.T) {
	if w, h := Dimensions(models.AspectSquare); w != 540 || h != 540 {
		t.Errorf("square = %dx%d, want 540x540", w, h)
	}
	if w, h := Dimensions(models.AspectPortrait); w != 540 || h != 675 {
		t.Errorf("portrait = %dx%d, want 540x675", w, h)
	}
}

func TestBuildFrameBackgroundFirst(t *testing.T) {
	fc := NewFontCache()
	f := BuildFrame(ParamsFor(testDeck(), 0, false), fc)

	if f.Width != 540 || f.Height != 675 {
		t.Fatalf("frame = %dx%d, want 540x675", f.Width, f.Height)
	}
	if len(f.Prims) == 0 {
		t.Fatal("frame has no primitives")
	}
	bg, ok := f.Prims[0].(RectPrim)
	if !ok {
		t.Fatalf("first primitive is %T, want RectPrim", f.Prims[0])
	}
	if bg.W != f.Width || bg.H != f.Height || bg.X != 0 || bg.Y != 0 {
		t.Errorf("background rect = %+v, want full frame", bg)
	}
	if bg.Color != (color.RGBA{R: 0x10, G: 0x10, B: 0x10, A: 255}) {
		t.Errorf("background color = %v", bg.Color)
	}
}

// Interactive mode marks regions editable but must never move anything:
// the preview and the export pipeline consume the same geometry.
func TestInteractiveModeDoesNotChangeGeometry(t *testing.T) {
	fc := NewFontCache()
	deck := testDeck()

	editor := BuildFrame(ParamsFor(deck, 0, true), fc)
	export := BuildFrame(ParamsFor(deck, 0, false), fc)

	if len(editor.Prims) != len(export.Prims) {
		t.Fatalf("primitive count differs: %d vs %d", len(editor.Prims), len(export.Prims))
	}
	for i := range editor.Prims {
		et, eok := editor.Prims[i].(TextPrim)
		xt, xok := export.Prims[i].(TextPrim)
		if eok != xok {
			t.Fatalf("primitive %d kind differs: %T vs %T", i, editor.Prims[i], export.Prims[i])
		}
		if !eok {
			if editor.Prims[i] != export.Prims[i] {
				t.Errorf("primitive %d differs: %+v vs %+v", i, editor.Prims[i], export.Prims[i])
			}
			continue
		}
		if et.X != xt.X || et.Baseline != xt.Baseline || et.Content != xt.Content || et.Size != xt.Size {
			t.Errorf("text %d geometry differs: %+v vs %+v", i, et, xt)
		}
		if (et.Region == "title" || et.Region == "body") && !et.Editable {
			t.Errorf("interactive %s line not editable", et.Region)
		}
		if xt.Editable {
			t.Errorf("export text %d marked editable", i)
		}
	}
}

func TestRTLLinesFlushRight(t *testing.T) {
	fc := NewFontCache()
	deck := testDeck()

	f := BuildFrame(ParamsFor(deck, 1, false), fc)
	for _, prim := range f.Prims {
		tp, ok := prim.(TextPrim)
		if !ok || tp.Region != "title" {
			continue
		}
		wantX := f.Width - margin - fc.MeasureString(tp.Content, tp.Size, tp.Bold)
		if tp.X != wantX {
			t.Errorf("rtl title X = %d, want %d (right-flush)", tp.X, wantX)
		}
		return
	}
	t.Fatal("no title line in rtl frame")
}

func TestLTRLinesFlushLeft(t *testing.T) {
	fc := NewFontCache()
	f := BuildFrame(ParamsFor(testDeck(), 0, false), fc)
	for _, prim := range f.Prims {
		tp, ok := prim.(TextPrim)
		if !ok || tp.Region != "title" {
			continue
		}
		if tp.X != margin {
			t.Errorf("ltr title X = %d, want %d", tp.X, margin)
		}
		return
	}
	t.Fatal("no title line in ltr frame")
}

func TestEmptySlideStillRendersBackgroundAndMeta(t *testing.T) {
	fc := NewFontCache()
	f := BuildFrame(ParamsFor(testDeck(), 2, false), fc)

	var meta *TextPrim
	for _, prim := range f.Prims {
		if tp, ok := prim.(TextPrim); ok {
			if tp.Region == "title" || tp.Region == "body" {
				t.Errorf("empty slide produced %s text %q", tp.Region, tp.Content)
			}
			if tp.Region == "meta" {
				m := tp
				meta = &m
			}
		}
	}
	if meta == nil {
		t.Fatal("no meta line")
	}
	if meta.Content != "3 / 3" {
		t.Errorf("meta = %q, want %q", meta.Content, "3 / 3")
	}
}

func TestWrapTextRespectsWidth(t *testing.T) {
	fc := NewFontCache()
	text := "a reasonably long sentence that certainly cannot fit on one single line of content width"
	lines := wrapText(fc, text, bodySize, false, contentW)
	if len(lines) < 2 {
		t.Fatalf("expected wrapping, got %d line(s)", len(lines))
	}
	for _, line := range lines {
		if w := fc.MeasureString(line, bodySize, false); w > contentW {
			t.Errorf("line %q measures %d > %d", line, w, contentW)
		}
	}
}

func TestWrapTextEmpty(t *testing.T) {
	fc := NewFontCache()
	if lines := wrapText(fc, "   ", bodySize, false, contentW); lines != nil {
		t.Errorf("expected no lines, got %v", lines)
	}
}

func TestCoverStylePrimitives(t *testing.T) {
	fc := NewFontCache()
	deck := testDeck()

	find := func(style models.CoverStyle, match func(Primitive) bool) bool {
		deck.CoverStyle = style
		f := BuildFrame(ParamsFor(deck, 0, false), fc)
		// Skip the background rect at index 0.
		for _, prim := range f.Prims[1:] {
			if match(prim) {
				return true
			}
		}
		return false
	}

	if !find(models.CoverMinimalist, func(p Primitive) bool {
		r, ok := p.(RectPrim)
		return ok && r.H == 6
	}) {
		t.Error("minimalist: no accent rule")
	}
	if !find(models.CoverBigNumber, func(p Primitive) bool {
		tp, ok := p.(TextPrim)
		return ok && tp.Region == "decor" && tp.Content == "1"
	}) {
		t.Error("big_number: no numeral")
	}
	if !find(models.CoverAccentBlock, func(p Primitive) bool {
		r, ok := p.(RectPrim)
		return ok && r.W == 540 && r.H == 96
	}) {
		t.Error("accent_block: no strip")
	}
	if !find(models.CoverGradientOverlay, func(p Primitive) bool {
		_, ok := p.(GradientPrim)
		return ok
	}) {
		t.Error("gradient_overlay: no gradient")
	}
	if !find(models.CoverGeometric, func(p Primitive) bool {
		_, ok := p.(CirclePrim)
		return ok
	}) {
		t.Error("geometric: no circle")
	}
	if !find(models.CoverBoldFrame, func(p Primitive) bool {
		_, ok := p.(BorderPrim)
		return ok
	}) {
		t.Error("bold_frame: no border")
	}
}

func TestParseHex(t *testing.T) {
	fallback := color.RGBA{R: 1, G: 2, B: 3, A: 255}
	if got := parseHex("#FF6B6B", fallback); got != (color.RGBA{R: 0xFF, G: 0x6B, B: 0x6B, A: 255}) {
		t.Errorf("parseHex(#FF6B6B) = %v", got)
	}
	if got := parseHex("nonsense", fallback); got != fallback {
		t.Errorf("parseHex(nonsense) = %v, want fallback", got)
	}
	if got := parseHex("", fallback); got != fallback {
		t.Errorf("parseHex(\"\") = %v, want fallback", got)
	}
}
