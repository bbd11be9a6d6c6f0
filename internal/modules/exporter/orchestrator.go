package exporter

import (
	"context"
	"fmt"
	"time"

	"github.com/slipframe/core/internal/config"
	"github.com/slipframe/core/internal/models"
	"github.com/slipframe/core/internal/pkg/jobtrack"
	"github.com/slipframe/core/internal/render"
	"go.uber.org/zap"
)

// jobTracker is the slice of the job tracking API the orchestrator needs.
type jobTracker interface {
	Begin(ctx context.Context, carouselID string, totalSlides int) (*jobtrack.Job, error)
	Finish(ctx context.Context, job *jobtrack.Job, status jobtrack.JobStatus, failedCount int, artifact, errMsg string)
}

// Orchestrator drives deck exports: mount, settle, rasterize, collect, one
// slide at a time in deck order. A slide failure skips that slide and the
// job carries on; only a fully-failed deck or a broken archive fails the job.
type Orchestrator struct {
	fonts    *render.FontCache
	cfg      config.ExportConfig
	tracker  jobTracker
	uploader *Uploader
	logger   *zap.Logger

	// rasterize is swappable so failure paths can be exercised in tests.
	rasterize func(*render.Frame, int, *render.FontCache) ([]byte, error)
}

func NewOrchestrator(fonts *render.FontCache, cfg config.ExportConfig, tracker jobTracker, uploader *Uploader, logger *zap.Logger) *Orchestrator {
	return &Orchestrator{
		fonts:     fonts,
		cfg:       cfg,
		tracker:   tracker,
		uploader:  uploader,
		logger:    logger,
		rasterize: rasterizeFrame,
	}
}

func (o *Orchestrator) upscale() int {
	if o.cfg.UpscaleFactor > 0 {
		return o.cfg.UpscaleFactor
	}
	return 2
}

func (o *Orchestrator) settleDelay() time.Duration {
	if o.cfg.SettleDelayMS > 0 {
		return time.Duration(o.cfg.SettleDelayMS) * time.Millisecond
	}
	return 200 * time.Millisecond
}

func (o *Orchestrator) slideTimeout() time.Duration {
	if o.cfg.SlideTimeoutMS > 0 {
		return time.Duration(o.cfg.SlideTimeoutMS) * time.Millisecond
	}
	return 10 * time.Second
}

// ExportDeck renders every slide of the deck and packs the results into a
// zip. The deck is snapshotted up front so edits made while the export runs
// cannot produce slides with mixed old and new styling. At most one export
// per deck runs at a time.
func (o *Orchestrator) ExportDeck(ctx context.Context, deck *models.CarouselModel) (*DeckArtifact, *jobtrack.Job, error) {
	snap := snapshotDeck(deck)

	job, err := o.tracker.Begin(ctx, snap.ID, len(snap.Slides))
	if err != nil {
		return nil, nil, err
	}

	// Each job gets its own surface host. The redis guard already bounds
	// concurrency per deck; unrelated decks must never contend for a surface.
	host := NewHost(o.fonts)

	slug := snap.Slug()
	artifact := &DeckArtifact{
		Filename:    slug + ".zip",
		TotalSlides: len(snap.Slides),
	}

	var collected []SlideArtifact
	for pos := range snap.Slides {
		png, err := o.renderSlide(ctx, host, render.ParamsFor(snap, pos, false))
		if err != nil {
			rerr := &RasterizationError{Position: pos, Err: err}
			artifact.Failures = append(artifact.Failures, rerr)
			artifact.FailedCount++
			o.logger.Warn("slide export failed",
				zap.String("carousel_id", snap.ID),
				zap.Int("position", pos),
				zap.Error(err))
			continue
		}
		collected = append(collected, SlideArtifact{
			Position: pos,
			Filename: slideFilename(slug, pos),
			PNG:      png,
		})
	}

	if len(collected) == 0 {
		o.tracker.Finish(ctx, job, jobtrack.JobFailed, artifact.FailedCount, "", ErrAllSlidesFailed.Error())
		return nil, job, ErrAllSlidesFailed
	}

	archive, err := buildArchive(collected)
	if err != nil {
		o.tracker.Finish(ctx, job, jobtrack.JobFailed, artifact.FailedCount, "", err.Error())
		return nil, job, fmt.Errorf("archive assembly: %w", err)
	}
	artifact.Archive = archive

	artifactRef := artifact.Filename
	if o.uploader != nil {
		key := fmt.Sprintf("exports/%s/%s/%s", snap.ID, job.ID, artifact.Filename)
		url, err := o.uploader.Upload(ctx, key, archive, "application/zip")
		if err != nil {
			// The download still works from the response body; only the
			// durable copy is missing.
			o.logger.Warn("artifact upload failed",
				zap.String("carousel_id", snap.ID), zap.Error(err))
		} else {
			artifact.UploadedURL = url
			artifactRef = url
		}
	}

	o.tracker.Finish(ctx, job, jobtrack.JobCompleted, artifact.FailedCount, artifactRef, "")
	return artifact, job, nil
}

// ExportSingleSlide renders exactly one slide, no archive. Binary outcome:
// either the PNG comes back or an error does.
func (o *Orchestrator) ExportSingleSlide(ctx context.Context, deck *models.CarouselModel, pos int) (string, []byte, error) {
	snap := snapshotDeck(deck)
	if pos < 0 || pos >= len(snap.Slides) {
		return "", nil, models.ErrSlideOutOfRange
	}

	png, err := o.renderSlide(ctx, NewHost(o.fonts), render.ParamsFor(snap, pos, false))
	if err != nil {
		return "", nil, &RasterizationError{Position: pos, Err: err}
	}
	return slideFilename(snap.Slug(), pos), png, nil
}

// renderSlide runs one slide through the full surface lifecycle. The
// per-slide timeout turns a hung layout or rasterization into an ordinary
// failure instead of wedging the job. Unmount always runs.
func (o *Orchestrator) renderSlide(ctx context.Context, host *Host, p render.Params) ([]byte, error) {
	sctx, cancel := context.WithTimeout(ctx, o.slideTimeout())
	defer cancel()

	surface, err := host.Mount(p)
	if err != nil {
		return nil, err
	}
	defer host.Unmount(surface)

	if err := surface.WaitReady(sctx, o.settleDelay()); err != nil {
		return nil, err
	}

	type rasterResult struct {
		png []byte
		err error
	}
	done := make(chan rasterResult, 1)
	go func() {
		png, err := o.rasterize(surface.Frame(), o.upscale(), o.fonts)
		done <- rasterResult{png, err}
	}()

	select {
	case r := <-done:
		return r.png, r.err
	case <-sctx.Done():
		return nil, sctx.Err()
	}
}

// snapshotDeck copies the deck and its slides so the export loop reads a
// consistent style set even while the editor keeps mutating the original.
func snapshotDeck(deck *models.CarouselModel) *models.CarouselModel {
	snap := *deck
	snap.Slides = append(models.SlideList(nil), deck.Slides...)
	return &snap
}
