package render

import "image/color"

// Frame is a rendered slide: a fixed-size scene graph of positioned, styled
// primitives. All coordinates are logical units (540 wide); the painter scales
// them uniformly, so preview and export share identical geometry.
type Frame struct {
	Width  int
	Height int
	Prims  []Primitive
}

// Primitive is one positioned visual element. The set is closed; the painter
// switches over the concrete types.
type Primitive interface {
	prim()
}

// RectPrim is an axis-aligned filled rectangle.
type RectPrim struct {
	X, Y, W, H int
	Color      color.RGBA
}

// BorderPrim is a hollow rectangle outline of the given thickness.
type BorderPrim struct {
	X, Y, W, H int
	Thickness  int
	Color      color.RGBA
}

// CirclePrim is a filled circle.
type CirclePrim struct {
	CX, CY, R int
	Color     color.RGBA
}

// GradientPrim is a vertical linear gradient from top color to bottom color.
type GradientPrim struct {
	X, Y, W, H int
	Top        color.RGBA
	Bottom     color.RGBA
}

// TextPrim is a single already-wrapped, already-aligned line of text.
// X is the pen start and Baseline the baseline row, both in logical units;
// wrapping and alignment are resolved at layout time so they can never differ
// between display contexts.
type TextPrim struct {
	X        int
	Baseline int
	Content  string
	Size     float64
	Bold     bool
	Color    color.RGBA
	// Region names the editable content area this line belongs to
	// ("title", "body", "meta"). Editable is set only in interactive mode and
	// has no geometric effect.
	Region   string
	Editable bool
}

func (RectPrim) prim()     {}
func (BorderPrim) prim()   {}
func (CirclePrim) prim()   {}
func (GradientPrim) prim() {}
func (TextPrim) prim()     {}
