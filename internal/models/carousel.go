package models

import (
	"errors"
	"strings"
)

// Template controls the default background/text color pairing of a deck.
type Template string

const (
	TemplateDark  Template = "dark"
	TemplateLight Template = "light"
)

// CoverStyle is the decorative layout variant applied uniformly to all slides.
type CoverStyle string

const (
	CoverMinimalist      CoverStyle = "minimalist"
	CoverBigNumber       CoverStyle = "big_number"
	CoverAccentBlock     CoverStyle = "accent_block"
	CoverGradientOverlay CoverStyle = "gradient_overlay"
	CoverGeometric       CoverStyle = "geometric"
	CoverBoldFrame       CoverStyle = "bold_frame"
)

// AspectRatio selects the canonical render dimensions.
type AspectRatio string

const (
	AspectSquare   AspectRatio = "1:1"
	AspectPortrait AspectRatio = "4:5"
)

// Canonical template color pairs. Accent color is never derived from the
// template, so it survives template switches.
const (
	ColorBlack = "#000000"
	ColorWhite = "#FFFFFF"

	DefaultAccentColor = "#FF6B6B"
)

// MinSlides is the structural floor of a deck; deletion below it is refused.
const MinSlides = 2

var (
	ErrMinimumSlides    = errors.New("carousel must keep at least 2 slides")
	ErrSlideOutOfRange  = errors.New("slide position out of range")
	ErrUnknownVariant   = errors.New("unknown style variant")
	ErrReadOnlyCarousel = errors.New("carousel is read-only")
	ErrNotOwner         = errors.New("carousel belongs to another user")
)

// Slide is one title+body content unit. Positions are dense and contiguous;
// every structural mutation renumbers the whole deck.
type Slide struct {
	Position int    `json:"position"`
	Title    string `json:"title"`
	Body     string `json:"body"`
}

// SlideList is serialized as a JSON column.
type SlideList []Slide

// CarouselModel is an ordered slide deck plus its shared style parameters.
type CarouselModel struct {
	Base
	OwnerID         string      `json:"owner_id"         gorm:"index"`
	Name            string      `json:"name"             gorm:"not null"`
	RawText         string      `json:"raw_text"         gorm:"type:longtext"`
	Language        string      `json:"language"`
	Slides          SlideList   `json:"slides"           gorm:"type:longtext;serializer:json"`
	Template        Template    `json:"template"`
	CoverStyle      CoverStyle  `json:"cover_style"`
	BackgroundColor string      `json:"background_color"`
	TextColor       string      `json:"text_color"`
	AccentColor     string      `json:"accent_color"`
	AspectRatio     AspectRatio `json:"aspect_ratio"`
	// ActiveIndex is the slide currently open for inline editing.
	ActiveIndex int `json:"active_index"`
	// IsSample marks built-in demo decks; structural mutations are refused.
	IsSample bool `json:"is_sample" gorm:"default:false"`
}

func (CarouselModel) TableName() string { return "carousels" }

// ValidTemplate reports whether t is a known template variant.
func ValidTemplate(t Template) bool {
	return t == TemplateDark || t == TemplateLight
}

// ValidCoverStyle reports whether s is a known cover style variant.
func ValidCoverStyle(s CoverStyle) bool {
	switch s {
	case CoverMinimalist, CoverBigNumber, CoverAccentBlock,
		CoverGradientOverlay, CoverGeometric, CoverBoldFrame:
		return true
	}
	return false
}

// ValidAspectRatio reports whether r is a known aspect ratio variant.
func ValidAspectRatio(r AspectRatio) bool {
	return r == AspectSquare || r == AspectPortrait
}

// TemplateColors returns the canonical background/text pair for a template.
func TemplateColors(t Template) (background, text string) {
	if t == TemplateLight {
		return ColorWhite, ColorBlack
	}
	return ColorBlack, ColorWhite
}

// AddSlide appends an empty slide at the end. Sample decks silently refuse.
func (m *CarouselModel) AddSlide() {
	if m.IsSample {
		return
	}
	m.Slides = append(m.Slides, Slide{
		Position: len(m.Slides),
		Title:    "Title",
		Body:     "",
	})
}

// DeleteSlide removes the slide at pos, renumbers, and clamps ActiveIndex to
// the new last slide when it falls out of range.
func (m *CarouselModel) DeleteSlide(pos int) error {
	if m.IsSample {
		return ErrReadOnlyCarousel
	}
	if pos < 0 || pos >= len(m.Slides) {
		return ErrSlideOutOfRange
	}
	if len(m.Slides)-1 < MinSlides {
		return ErrMinimumSlides
	}
	m.Slides = append(m.Slides[:pos], m.Slides[pos+1:]...)
	m.renumber()
	if m.ActiveIndex >= len(m.Slides) {
		m.ActiveIndex = len(m.Slides) - 1
	}
	return nil
}

// DuplicateSlide inserts a copy of the slide at pos immediately after it.
func (m *CarouselModel) DuplicateSlide(pos int) error {
	if m.IsSample {
		return ErrReadOnlyCarousel
	}
	if pos < 0 || pos >= len(m.Slides) {
		return ErrSlideOutOfRange
	}
	dup := m.Slides[pos]
	m.Slides = append(m.Slides, Slide{})
	copy(m.Slides[pos+2:], m.Slides[pos+1:])
	m.Slides[pos+1] = dup
	m.renumber()
	return nil
}

// ReorderSlide moves the slide at from to the drop target index to. The target
// is given in pre-removal coordinates: moving forward lands the slide at to-1
// because the removal shifts everything after from one step left.
//
// ActiveIndex follows the user's visual focus: if the active slide moved, the
// index becomes its landing position; otherwise it shifts by one when the move
// passed over it.
func (m *CarouselModel) ReorderSlide(from, to int) error {
	if m.IsSample {
		return ErrReadOnlyCarousel
	}
	n := len(m.Slides)
	if from < 0 || from >= n || to < 0 || to > n {
		return ErrSlideOutOfRange
	}
	insertAt := to
	if from < to {
		insertAt = to - 1
	}
	if insertAt == from {
		return nil
	}

	moved := m.Slides[from]
	rest := append(m.Slides[:from:from], m.Slides[from+1:]...)
	m.Slides = append(rest[:insertAt:insertAt], append(SlideList{moved}, rest[insertAt:]...)...)
	m.renumber()

	switch {
	case m.ActiveIndex == from:
		m.ActiveIndex = insertAt
	case from < m.ActiveIndex && m.ActiveIndex <= insertAt:
		m.ActiveIndex--
	case insertAt <= m.ActiveIndex && m.ActiveIndex < from:
		m.ActiveIndex++
	}
	return nil
}

// UpdateSlide merges the non-nil fields into the slide at pos.
func (m *CarouselModel) UpdateSlide(pos int, title, body *string) error {
	if pos < 0 || pos >= len(m.Slides) {
		return ErrSlideOutOfRange
	}
	if title != nil {
		m.Slides[pos].Title = *title
	}
	if body != nil {
		m.Slides[pos].Body = *body
	}
	return nil
}

// ApplyTemplate switches the template and resets background/text colors to the
// template's canonical pair. AccentColor is left untouched.
func (m *CarouselModel) ApplyTemplate(t Template) error {
	if !ValidTemplate(t) {
		return ErrUnknownVariant
	}
	m.Template = t
	m.BackgroundColor, m.TextColor = TemplateColors(t)
	return nil
}

// Slug derives the deterministic file-name stem used for export artifacts.
func (m *CarouselModel) Slug() string {
	name := strings.TrimSpace(strings.ToLower(m.Name))
	if name == "" {
		return "carousel"
	}
	var b strings.Builder
	prevDash := false
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r >= 0x05D0 && r <= 0x05EA:
			b.WriteRune(r)
			prevDash = false
		default:
			if !prevDash && b.Len() > 0 {
				b.WriteByte('-')
				prevDash = true
			}
		}
	}
	slug := strings.Trim(b.String(), "-")
	if slug == "" {
		return "carousel"
	}
	return slug
}

func (m *CarouselModel) renumber() {
	for i := range m.Slides {
		m.Slides[i].Position = i
	}
}
