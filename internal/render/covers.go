package render

import (
	"image/color"
	"strconv"

	"github.com/slipframe/core/internal/models"
)

// applyCoverStyle appends the decorative primitives for the deck's cover
// style. Decorations are laid down before the content text so text always
// paints on top. Directional elements mirror horizontally for rtl.
func applyCoverStyle(f *Frame, p Params, fc *FontCache, bg, accent color.RGBA) {
	rtl := p.Direction == RTL

	switch p.CoverStyle {
	case models.CoverMinimalist:
		// A short accent rule above the title.
		x := margin
		if rtl {
			x = mirrorX(x, 64, f.Width)
		}
		f.Prims = append(f.Prims, RectPrim{X: x, Y: 82, W: 64, H: 6, Color: accent})

	case models.CoverBigNumber:
		numeral := strconv.Itoa(p.SlideNumber)
		nw := fc.MeasureString(numeral, bigNumberSize, true)
		x := f.Width - margin - nw
		if rtl {
			x = margin
		}
		f.Prims = append(f.Prims, TextPrim{
			X:        x,
			Baseline: 196,
			Content:  numeral,
			Size:     bigNumberSize,
			Bold:     true,
			Color:    withAlpha(accent, 64),
			Region:   "decor",
		})

	case models.CoverAccentBlock:
		f.Prims = append(f.Prims, RectPrim{X: 0, Y: 0, W: f.Width, H: 96, Color: accent})

	case models.CoverGradientOverlay:
		f.Prims = append(f.Prims, GradientPrim{
			X: 0, Y: 0, W: f.Width, H: f.Height,
			Top:    blend(bg, accent, 96),
			Bottom: bg,
		})

	case models.CoverGeometric:
		cx := f.Width - 36
		if rtl {
			cx = 36
		}
		f.Prims = append(f.Prims,
			CirclePrim{CX: cx, CY: 64, R: 88, Color: withAlpha(accent, 110)},
			CirclePrim{CX: cx, CY: 64, R: 52, Color: withAlpha(accent, 70)},
		)
		sx := margin
		if rtl {
			sx = mirrorX(sx, 40, f.Width)
		}
		f.Prims = append(f.Prims, RectPrim{X: sx, Y: f.Height - 128, W: 40, H: 40, Color: withAlpha(accent, 150)})

	case models.CoverBoldFrame:
		f.Prims = append(f.Prims, BorderPrim{
			X: 16, Y: 16, W: f.Width - 32, H: f.Height - 32,
			Thickness: 12, Color: accent,
		})
	}
}

const bigNumberSize = 150.0
