package exporter

import (
	"archive/zip"
	"bytes"
	"fmt"
)

// slideFilename names one exported slide from the deck slug and the slide's
// 1-based visual position. Positions are unique per job, so names never
// collide.
func slideFilename(slug string, position int) string {
	return fmt.Sprintf("%s-slide-%d.png", slug, position+1)
}

// buildArchive assembles the per-slide PNGs into a single zip, preserving
// deck order.
func buildArchive(entries []SlideArtifact) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := zip.NewWriter(buf)

	for _, entry := range entries {
		f, err := w.Create(entry.Filename)
		if err != nil {
			return nil, fmt.Errorf("archive entry %s: %w", entry.Filename, err)
		}
		if _, err := f.Write(entry.PNG); err != nil {
			return nil, fmt.Errorf("archive entry %s: %w", entry.Filename, err)
		}
	}

	if err := w.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
