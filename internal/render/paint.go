package render

import (
	"image"
	"image/color"
	"image/draw"

	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
)

// Paint rasterizes a frame onto a new RGBA surface at an integer scale
// factor. Geometry is already fixed in logical units; painting only multiplies
// coordinates and font sizes, so a 1x preview and a 2x export are the same
// picture at different resolutions.
func Paint(f *Frame, scale int, fc *FontCache) *image.RGBA {
	if scale < 1 {
		scale = 1
	}
	if fc == nil {
		fc = DefaultFontCache()
	}

	img := image.NewRGBA(image.Rect(0, 0, f.Width*scale, f.Height*scale))
	p := painter{img: img, scale: scale, fc: fc}
	for _, prim := range f.Prims {
		p.paint(prim)
	}
	return img
}

type painter struct {
	img   *image.RGBA
	scale int
	fc    *FontCache
}

func (p *painter) paint(prim Primitive) {
	switch v := prim.(type) {
	case RectPrim:
		p.fillRect(v.X, v.Y, v.W, v.H, v.Color)
	case BorderPrim:
		p.strokeRect(v.X, v.Y, v.W, v.H, v.Thickness, v.Color)
	case CirclePrim:
		p.fillCircle(v.CX, v.CY, v.R, v.Color)
	case GradientPrim:
		p.fillGradient(v)
	case TextPrim:
		p.drawText(v)
	}
}

func (p *painter) scaled(x, y, w, h int) image.Rectangle {
	s := p.scale
	return image.Rect(x*s, y*s, (x+w)*s, (y+h)*s)
}

func (p *painter) fillRect(x, y, w, h int, c color.RGBA) {
	draw.Draw(p.img, p.scaled(x, y, w, h), &image.Uniform{c}, image.Point{}, draw.Over)
}

func (p *painter) strokeRect(x, y, w, h, thickness int, c color.RGBA) {
	t := thickness
	p.fillRect(x, y, w, t, c)
	p.fillRect(x, y+h-t, w, t, c)
	p.fillRect(x, y+t, t, h-2*t, c)
	p.fillRect(x+w-t, y+t, t, h-2*t, c)
}

func (p *painter) fillCircle(cx, cy, r int, c color.RGBA) {
	s := p.scale
	scx, scy, sr := cx*s, cy*s, r*s
	rect := image.Rect(scx-sr, scy-sr, scx+sr, scy+sr).Intersect(p.img.Bounds())
	rr := float64(sr) * float64(sr)
	for py := rect.Min.Y; py < rect.Max.Y; py++ {
		for px := rect.Min.X; px < rect.Max.X; px++ {
			dx := float64(px-scx) + 0.5
			dy := float64(py-scy) + 0.5
			if dx*dx+dy*dy <= rr {
				blendPixel(p.img, px, py, c)
			}
		}
	}
}

func (p *painter) fillGradient(g GradientPrim) {
	rect := p.scaled(g.X, g.Y, g.W, g.H).Intersect(p.img.Bounds())
	height := rect.Dy()
	if height <= 0 {
		return
	}
	for py := rect.Min.Y; py < rect.Max.Y; py++ {
		ratio := uint8(255 * (py - rect.Min.Y) / height)
		row := blend(g.Top, g.Bottom, ratio)
		for px := rect.Min.X; px < rect.Max.X; px++ {
			p.img.SetRGBA(px, py, row)
		}
	}
}

func (p *painter) drawText(t TextPrim) {
	face := p.fc.Face(t.Size*float64(p.scale), t.Bold)
	d := &font.Drawer{
		Dst:  p.img,
		Src:  &image.Uniform{t.Color},
		Face: face,
		Dot:  fixed.P(t.X*p.scale, t.Baseline*p.scale),
	}
	d.DrawString(t.Content)
}

func blendPixel(img *image.RGBA, x, y int, c color.RGBA) {
	draw.Draw(img, image.Rect(x, y, x+1, y+1), &image.Uniform{c}, image.Point{}, draw.Over)
}
