package models

import (
	"errors"
	"testing"
)

func newDeck(n int) *CarouselModel {
	m := &CarouselModel{
		Name:            "Test Deck",
		Template:        TemplateDark,
		CoverStyle:      CoverMinimalist,
		AspectRatio:     AspectPortrait,
		BackgroundColor: ColorBlack,
		TextColor:       ColorWhite,
		AccentColor:     DefaultAccentColor,
	}
	for i := 0; i < n; i++ {
		m.Slides = append(m.Slides, Slide{Position: i, Title: string(rune('A' + i))})
	}
	return m
}

func assertContiguous(t *testing.T, m *CarouselModel) {
	t.Helper()
	for i, s := range m.Slides {
		if s.Position != i {
			t.Fatalf("slide at index %d has position %d", i, s.Position)
		}
	}
}

func TestAddSlideAppendsWithDensePositions(t *testing.T) {
	m := newDeck(3)
	m.AddSlide()
	if len(m.Slides) != 4 {
		t.Fatalf("expected 4 slides, got %d", len(m.Slides))
	}
	if m.Slides[3].Title != "Title" {
		t.Errorf("new slide title = %q, want placeholder", m.Slides[3].Title)
	}
	assertContiguous(t, m)
}

func TestDeleteSlideRenumbersAndClampsSelection(t *testing.T) {
	m := newDeck(3)
	m.ActiveIndex = 2
	if err := m.DeleteSlide(2); err != nil {
		t.Fatalf("DeleteSlide: %v", err)
	}
	if len(m.Slides) != 2 {
		t.Fatalf("expected 2 slides, got %d", len(m.Slides))
	}
	if m.ActiveIndex != 1 {
		t.Errorf("ActiveIndex = %d, want 1 (clamped to last slide)", m.ActiveIndex)
	}
	assertContiguous(t, m)
}

func TestDeleteSlideRefusesBelowMinimum(t *testing.T) {
	m := newDeck(2)
	err := m.DeleteSlide(0)
	if !errors.Is(err, ErrMinimumSlides) {
		t.Fatalf("expected ErrMinimumSlides, got %v", err)
	}
	if len(m.Slides) != 2 {
		t.Errorf("deck mutated despite refusal: %d slides", len(m.Slides))
	}
}

func TestDeleteSlideOutOfRange(t *testing.T) {
	m := newDeck(3)
	if err := m.DeleteSlide(3); !errors.Is(err, ErrSlideOutOfRange) {
		t.Fatalf("expected ErrSlideOutOfRange, got %v", err)
	}
	if err := m.DeleteSlide(-1); !errors.Is(err, ErrSlideOutOfRange) {
		t.Fatalf("expected ErrSlideOutOfRange, got %v", err)
	}
}

func TestDuplicateSlideInsertsAfterOriginal(t *testing.T) {
	m := newDeck(3)
	if err := m.DuplicateSlide(1); err != nil {
		t.Fatalf("DuplicateSlide: %v", err)
	}
	if len(m.Slides) != 4 {
		t.Fatalf("expected 4 slides, got %d", len(m.Slides))
	}
	if m.Slides[1].Title != m.Slides[2].Title {
		t.Errorf("copy not adjacent to original: %q vs %q", m.Slides[1].Title, m.Slides[2].Title)
	}
	if m.Slides[3].Title != "C" {
		t.Errorf("tail slide shifted wrong, got %q", m.Slides[3].Title)
	}
	assertContiguous(t, m)
}

func TestReorderSlideForward(t *testing.T) {
	m := newDeck(4) // A B C D
	if err := m.ReorderSlide(0, 2); err != nil {
		t.Fatalf("ReorderSlide: %v", err)
	}
	got := titles(m)
	want := "BACD"
	if got != want {
		t.Errorf("order = %q, want %q", got, want)
	}
	assertContiguous(t, m)
}

func TestReorderSlideBackward(t *testing.T) {
	m := newDeck(4) // A B C D
	if err := m.ReorderSlide(3, 1); err != nil {
		t.Fatalf("ReorderSlide: %v", err)
	}
	if got := titles(m); got != "ADBC" {
		t.Errorf("order = %q, want %q", got, "ADBC")
	}
	assertContiguous(t, m)
}

func TestReorderKeepsSelectionOnSameContent(t *testing.T) {
	// Four slides, slide B selected. Moving A past B shifts B one left;
	// the selection must keep pointing at B.
	m := newDeck(4)
	m.ActiveIndex = 1
	if err := m.ReorderSlide(0, 2); err != nil {
		t.Fatalf("ReorderSlide: %v", err)
	}
	if got := titles(m); got != "BACD" {
		t.Fatalf("order = %q, want %q", got, "BACD")
	}
	if m.ActiveIndex != 0 {
		t.Errorf("ActiveIndex = %d, want 0 (still slide B)", m.ActiveIndex)
	}
}

func TestReorderMovedSlideCarriesSelection(t *testing.T) {
	m := newDeck(4)
	m.ActiveIndex = 0
	if err := m.ReorderSlide(0, 3); err != nil {
		t.Fatalf("ReorderSlide: %v", err)
	}
	if got := titles(m); got != "BCAD" {
		t.Fatalf("order = %q, want %q", got, "BCAD")
	}
	if m.ActiveIndex != 2 {
		t.Errorf("ActiveIndex = %d, want 2 (follows moved slide)", m.ActiveIndex)
	}
}

func TestReorderNoopWhenTargetEqualsSource(t *testing.T) {
	m := newDeck(3)
	m.ActiveIndex = 2
	if err := m.ReorderSlide(1, 1); err != nil {
		t.Fatalf("ReorderSlide: %v", err)
	}
	if got := titles(m); got != "ABC" {
		t.Errorf("order changed on no-op move: %q", got)
	}
	if m.ActiveIndex != 2 {
		t.Errorf("ActiveIndex changed on no-op move: %d", m.ActiveIndex)
	}
}

func TestReorderOutOfRange(t *testing.T) {
	m := newDeck(3)
	if err := m.ReorderSlide(3, 0); !errors.Is(err, ErrSlideOutOfRange) {
		t.Fatalf("expected ErrSlideOutOfRange, got %v", err)
	}
	if err := m.ReorderSlide(0, 4); !errors.Is(err, ErrSlideOutOfRange) {
		t.Fatalf("expected ErrSlideOutOfRange, got %v", err)
	}
}

func TestApplyTemplateResetsColorsKeepsAccent(t *testing.T) {
	m := newDeck(2)
	m.BackgroundColor = "#123456"
	m.TextColor = "#654321"
	m.AccentColor = "#00FF00"

	if err := m.ApplyTemplate(TemplateLight); err != nil {
		t.Fatalf("ApplyTemplate: %v", err)
	}
	if m.BackgroundColor != ColorWhite || m.TextColor != ColorBlack {
		t.Errorf("light template colors = %s/%s, want %s/%s",
			m.BackgroundColor, m.TextColor, ColorWhite, ColorBlack)
	}
	if m.AccentColor != "#00FF00" {
		t.Errorf("accent color reset by template switch: %s", m.AccentColor)
	}

	if err := m.ApplyTemplate(TemplateDark); err != nil {
		t.Fatalf("ApplyTemplate: %v", err)
	}
	if m.BackgroundColor != ColorBlack || m.TextColor != ColorWhite {
		t.Errorf("dark template colors = %s/%s", m.BackgroundColor, m.TextColor)
	}
}

func TestApplyTemplateRejectsUnknownVariant(t *testing.T) {
	m := newDeck(2)
	if err := m.ApplyTemplate(Template("sepia")); !errors.Is(err, ErrUnknownVariant) {
		t.Fatalf("expected ErrUnknownVariant, got %v", err)
	}
}

func TestSampleDeckRefusesStructuralMutation(t *testing.T) {
	m := newDeck(3)
	m.IsSample = true

	m.AddSlide()
	if len(m.Slides) != 3 {
		t.Errorf("AddSlide mutated sample deck")
	}
	if err := m.DeleteSlide(0); !errors.Is(err, ErrReadOnlyCarousel) {
		t.Errorf("DeleteSlide on sample: %v", err)
	}
	if err := m.DuplicateSlide(0); !errors.Is(err, ErrReadOnlyCarousel) {
		t.Errorf("DuplicateSlide on sample: %v", err)
	}
	if err := m.ReorderSlide(0, 2); !errors.Is(err, ErrReadOnlyCarousel) {
		t.Errorf("ReorderSlide on sample: %v", err)
	}
}

func TestUpdateSlideMergesFields(t *testing.T) {
	m := newDeck(2)
	title := "New Title"
	if err := m.UpdateSlide(0, &title, nil); err != nil {
		t.Fatalf("UpdateSlide: %v", err)
	}
	if m.Slides[0].Title != "New Title" {
		t.Errorf("title = %q", m.Slides[0].Title)
	}
	if m.Slides[0].Body != "" {
		t.Errorf("body changed unexpectedly: %q", m.Slides[0].Body)
	}

	body := "some body"
	if err := m.UpdateSlide(0, nil, &body); err != nil {
		t.Fatalf("UpdateSlide: %v", err)
	}
	if m.Slides[0].Title != "New Title" || m.Slides[0].Body != "some body" {
		t.Errorf("merge wrong: %+v", m.Slides[0])
	}
}

func TestSlug(t *testing.T) {
	cases := []struct {
		name string
		want string
	}{
		{"My Great Deck", "my-great-deck"},
		{"  Spaces  Around  ", "spaces-around"},
		{"Hello, World! (v2)", "hello-world-v2"},
		{"מצגת שלי", "מצגת-שלי"},
		{"", "carousel"},
		{"!!!", "carousel"},
	}
	for _, tc := range cases {
		m := &CarouselModel{Name: tc.name}
		if got := m.Slug(); got != tc.want {
			t.Errorf("Slug(%q) = %q, want %q", tc.name, got, tc.want)
		}
	}
}

func titles(m *CarouselModel) string {
	out := ""
	for _, s := range m.Slides {
		out += s.Title
	}
	return out
}
