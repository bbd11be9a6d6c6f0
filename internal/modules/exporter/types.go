package exporter

import (
	"errors"
	"fmt"
)

var (
	// ErrAllSlidesFailed marks a deck export in which no slide produced an
	// image. Partial failure is not an error; total failure is.
	ErrAllSlidesFailed = errors.New("every slide failed to export")
)

// RasterizationError wraps a per-slide failure with the slide it came from.
type RasterizationError struct {
	Position int
	Err      error
}

func (e *RasterizationError) Error() string {
	return fmt.Sprintf("slide %d: %v", e.Position, e.Err)
}

func (e *RasterizationError) Unwrap() error { return e.Err }

// SlideArtifact is one successfully rasterized slide, named and ordered for
// the archive.
type SlideArtifact struct {
	Position int
	Filename string
	PNG      []byte
}

// DeckArtifact is the outcome of a full-deck export.
type DeckArtifact struct {
	Filename    string
	Archive     []byte
	TotalSlides int
	FailedCount int
	Failures    []*RasterizationError
	// UploadedURL is set when object storage upload is enabled.
	UploadedURL string
}
