package exporter

import (
	"archive/zip"
	"bytes"
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/slipframe/core/internal/config"
	"github.com/slipframe/core/internal/models"
	"github.com/slipframe/core/internal/pkg/jobtrack"
	"github.com/slipframe/core/internal/render"
	"go.uber.org/zap"
)

type fakeTracker struct {
	beginErr error

	mu          sync.Mutex
	finalStatus jobtrack.JobStatus
	finalFailed int
}

func (f *fakeTracker) Begin(ctx context.Context, carouselID string, totalSlides int) (*jobtrack.Job, error) {
	if f.beginErr != nil {
		return nil, f.beginErr
	}
	return &jobtrack.Job{
		ID:          "job-1",
		CarouselID:  carouselID,
		Status:      jobtrack.JobRunning,
		TotalSlides: totalSlides,
	}, nil
}

func (f *fakeTracker) Finish(ctx context.Context, job *jobtrack.Job, status jobtrack.JobStatus, failedCount int, artifact, errMsg string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.finalStatus = status
	f.finalFailed = failedCount
}

func exportDeckFixture(n int) *models.CarouselModel {
	m := &models.CarouselModel{
		Name:            "Launch Plan",
		Template:        models.TemplateDark,
		CoverStyle:      models.CoverMinimalist,
		AspectRatio:     models.AspectSquare,
		BackgroundColor: models.ColorBlack,
		TextColor:       models.ColorWhite,
		AccentColor:     models.DefaultAccentColor,
	}
	m.ID = "deck-1"
	for i := 0; i < n; i++ {
		m.Slides = append(m.Slides, models.Slide{Position: i, Title: "Slide", Body: "body"})
	}
	return m
}

func newTestOrchestrator(tracker jobTracker) *Orchestrator {
	cfg := config.ExportConfig{
		UpscaleFactor:  2,
		SettleDelayMS:  50,
		SlideTimeoutMS: 5000,
	}
	return NewOrchestrator(render.NewFontCache(), cfg, tracker, nil, zap.NewNop())
}

func archiveNames(t *testing.T, data []byte) []string {
	t.Helper()
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		t.Fatalf("read archive: %v", err)
	}
	names := make([]string, 0, len(zr.File))
	for _, f := range zr.File {
		names = append(names, f.Name)
	}
	return names
}

func TestExportDeckHappyPath(t *testing.T) {
	tracker := &fakeTracker{}
	o := newTestOrchestrator(tracker)

	artifact, job, err := o.ExportDeck(context.Background(), exportDeckFixture(3))
	if err != nil {
		t.Fatalf("ExportDeck: %v", err)
	}
	if job == nil || job.ID == "" {
		t.Fatal("no job recorded")
	}
	if artifact.Filename != "launch-plan.zip" {
		t.Errorf("filename = %q", artifact.Filename)
	}
	if artifact.FailedCount != 0 {
		t.Errorf("failed count = %d", artifact.FailedCount)
	}

	names := archiveNames(t, artifact.Archive)
	want := []string{"launch-plan-slide-1.png", "launch-plan-slide-2.png", "launch-plan-slide-3.png"}
	if len(names) != len(want) {
		t.Fatalf("archive entries = %v", names)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("entry %d = %q, want %q", i, names[i], want[i])
		}
	}
	if tracker.finalStatus != jobtrack.JobCompleted {
		t.Errorf("job status = %s", tracker.finalStatus)
	}
}

func TestExportDeckSkipsFailedSlideAndContinues(t *testing.T) {
	tracker := &fakeTracker{}
	o := newTestOrchestrator(tracker)

	calls := 0
	o.rasterize = func(f *render.Frame, scale int, fc *render.FontCache) ([]byte, error) {
		calls++
		if calls == 3 {
			return nil, errors.New("encode blew up")
		}
		return rasterizeFrame(f, scale, fc)
	}

	artifact, _, err := o.ExportDeck(context.Background(), exportDeckFixture(5))
	if err != nil {
		t.Fatalf("partial failure must not fail the job: %v", err)
	}
	if artifact.FailedCount != 1 {
		t.Errorf("failed count = %d, want 1", artifact.FailedCount)
	}
	if len(artifact.Failures) != 1 || artifact.Failures[0].Position != 2 {
		t.Errorf("failures = %+v, want one at position 2", artifact.Failures)
	}

	names := archiveNames(t, artifact.Archive)
	want := []string{
		"launch-plan-slide-1.png",
		"launch-plan-slide-2.png",
		"launch-plan-slide-4.png",
		"launch-plan-slide-5.png",
	}
	if len(names) != len(want) {
		t.Fatalf("archive entries = %v", names)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("entry %d = %q, want %q", i, names[i], want[i])
		}
	}
	if tracker.finalFailed != 1 {
		t.Errorf("tracked failed count = %d", tracker.finalFailed)
	}
}

func TestExportDeckAllSlidesFailedIsHardFailure(t *testing.T) {
	tracker := &fakeTracker{}
	o := newTestOrchestrator(tracker)
	o.rasterize = func(*render.Frame, int, *render.FontCache) ([]byte, error) {
		return nil, errors.New("boom")
	}

	artifact, _, err := o.ExportDeck(context.Background(), exportDeckFixture(3))
	if !errors.Is(err, ErrAllSlidesFailed) {
		t.Fatalf("err = %v, want ErrAllSlidesFailed", err)
	}
	if artifact != nil {
		t.Errorf("artifact offered despite total failure")
	}
	if tracker.finalStatus != jobtrack.JobFailed {
		t.Errorf("job status = %s", tracker.finalStatus)
	}
}

func TestExportDeckRecoversAfterFailedJob(t *testing.T) {
	o := newTestOrchestrator(&fakeTracker{})
	o.rasterize = func(*render.Frame, int, *render.FontCache) ([]byte, error) {
		return nil, errors.New("boom")
	}
	_, _, _ = o.ExportDeck(context.Background(), exportDeckFixture(2))

	// A leaked surface from the failed job would wedge every mount below.
	o.rasterize = rasterizeFrame
	if _, _, err := o.ExportDeck(context.Background(), exportDeckFixture(2)); err != nil {
		t.Fatalf("export after failed job: %v", err)
	}
}

func TestConcurrentExportsOfDifferentDecks(t *testing.T) {
	o := newTestOrchestrator(&fakeTracker{})
	o.rasterize = func(f *render.Frame, scale int, fc *render.FontCache) ([]byte, error) {
		time.Sleep(120 * time.Millisecond)
		return rasterizeFrame(f, scale, fc)
	}

	deckA := exportDeckFixture(2)
	deckA.ID = "deck-a"
	deckB := exportDeckFixture(2)
	deckB.ID = "deck-b"

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i, deck := range []*models.CarouselModel{deckA, deckB} {
		wg.Add(1)
		go func(i int, deck *models.CarouselModel) {
			defer wg.Done()
			_, _, errs[i] = o.ExportDeck(context.Background(), deck)
		}(i, deck)
	}
	wg.Wait()

	for i, err := range errs {
		if err != nil {
			t.Errorf("export %d: %v", i, err)
		}
	}
}

func TestExportDeckInFlightGuard(t *testing.T) {
	o := newTestOrchestrator(&fakeTracker{beginErr: jobtrack.ErrExportInFlight})
	_, _, err := o.ExportDeck(context.Background(), exportDeckFixture(2))
	if !errors.Is(err, jobtrack.ErrExportInFlight) {
		t.Fatalf("err = %v, want ErrExportInFlight", err)
	}
}

func TestSlideTimeoutBecomesOrdinaryFailure(t *testing.T) {
	tracker := &fakeTracker{}
	o := newTestOrchestrator(tracker)
	o.cfg.SlideTimeoutMS = 50

	calls := 0
	o.rasterize = func(f *render.Frame, scale int, fc *render.FontCache) ([]byte, error) {
		calls++
		if calls == 1 {
			time.Sleep(500 * time.Millisecond)
		}
		return rasterizeFrame(f, scale, fc)
	}

	artifact, _, err := o.ExportDeck(context.Background(), exportDeckFixture(3))
	if err != nil {
		t.Fatalf("a hung slide must not fail the job: %v", err)
	}
	if artifact.FailedCount != 1 {
		t.Errorf("failed count = %d, want 1", artifact.FailedCount)
	}
	if len(artifact.Failures) != 1 || artifact.Failures[0].Position != 0 {
		t.Errorf("failures = %+v, want one at position 0", artifact.Failures)
	}
}

func TestExportSingleSlide(t *testing.T) {
	o := newTestOrchestrator(&fakeTracker{})

	filename, png, err := o.ExportSingleSlide(context.Background(), exportDeckFixture(3), 1)
	if err != nil {
		t.Fatalf("ExportSingleSlide: %v", err)
	}
	if filename != "launch-plan-slide-2.png" {
		t.Errorf("filename = %q", filename)
	}
	if len(png) == 0 {
		t.Error("empty png")
	}
}

func TestExportSingleSlideOutOfRange(t *testing.T) {
	o := newTestOrchestrator(&fakeTracker{})
	_, _, err := o.ExportSingleSlide(context.Background(), exportDeckFixture(3), 3)
	if !errors.Is(err, models.ErrSlideOutOfRange) {
		t.Fatalf("err = %v, want ErrSlideOutOfRange", err)
	}
}

func TestExportNamingIsDeterministic(t *testing.T) {
	o := newTestOrchestrator(&fakeTracker{})
	deck := exportDeckFixture(3)

	first, _, err := o.ExportDeck(context.Background(), deck)
	if err != nil {
		t.Fatalf("first export: %v", err)
	}
	second, _, err := o.ExportDeck(context.Background(), deck)
	if err != nil {
		t.Fatalf("second export: %v", err)
	}

	a, b := archiveNames(t, first.Archive), archiveNames(t, second.Archive)
	if len(a) != len(b) {
		t.Fatalf("entry counts differ: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Errorf("entry %d: %q vs %q", i, a[i], b[i])
		}
	}
}

func TestExportIsolatedFromConcurrentEdits(t *testing.T) {
	o := newTestOrchestrator(&fakeTracker{})
	deck := exportDeckFixture(3)

	var sawHeights []int
	o.rasterize = func(f *render.Frame, scale int, fc *render.FontCache) ([]byte, error) {
		sawHeights = append(sawHeights, f.Height)
		// Simulate the editor mutating the deck mid-export.
		deck.AspectRatio = models.AspectPortrait
		deck.Slides = deck.Slides[:2]
		return rasterizeFrame(f, scale, fc)
	}

	artifact, _, err := o.ExportDeck(context.Background(), deck)
	if err != nil {
		t.Fatalf("ExportDeck: %v", err)
	}
	if artifact.TotalSlides != 3 {
		t.Errorf("total = %d, want snapshot of 3", artifact.TotalSlides)
	}
	for i, h := range sawHeights {
		if h != 540 {
			t.Errorf("slide %d rendered at height %d, want square snapshot", i, h)
		}
	}
	if len(archiveNames(t, artifact.Archive)) != 3 {
		t.Error("mid-export edit changed the slide set")
	}
}
