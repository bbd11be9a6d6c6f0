package exporter

import (
	"bytes"
	"errors"
	"image/png"

	"github.com/slipframe/core/internal/render"
)

// rasterizeFrame paints a laid-out frame at the given upscale factor and
// encodes it as PNG. Geometry was resolved in logical units at layout time,
// so upscaling is a uniform multiply and preview and export stay identical.
func rasterizeFrame(frame *render.Frame, scale int, fonts *render.FontCache) ([]byte, error) {
	if frame == nil {
		return nil, errors.New("surface has no painted frame")
	}
	if scale < 1 {
		scale = 1
	}

	img := render.Paint(frame, scale, fonts)
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
