package carousel

import (
	"time"

	"github.com/slipframe/core/internal/models"
)

type SlideDTO struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

type CreateCarouselDTO struct {
	Name        string     `json:"name"         binding:"required"`
	RawText     string     `json:"raw_text"`
	Language    string     `json:"language"`
	Slides      []SlideDTO `json:"slides"`
	Template    *string    `json:"template"`
	CoverStyle  *string    `json:"cover_style"`
	AspectRatio *string    `json:"aspect_ratio"`
	AccentColor *string    `json:"accent_color"`
}

type UpdateSlideDTO struct {
	Title *string `json:"title"`
	Body  *string `json:"body"`
}

type ReorderDTO struct {
	From int `json:"from" binding:"min=0"`
	To   int `json:"to"   binding:"min=0"`
}

type TemplateDTO struct {
	Template string `json:"template" binding:"required"`
}

// StyleDTO carries the plain style setters. All fields optional; unknown
// variants are rejected at this boundary, before anything reaches the
// renderer.
type StyleDTO struct {
	CoverStyle      *string `json:"cover_style"`
	BackgroundColor *string `json:"background_color"`
	TextColor       *string `json:"text_color"`
	AccentColor     *string `json:"accent_color"`
	AspectRatio     *string `json:"aspect_ratio"`
}

type SelectDTO struct {
	ActiveIndex int `json:"active_index" binding:"min=0"`
}

// Response is the client-facing deck shape. Internal columns (owner, raw
// source text, soft-delete bookkeeping) never leave the service.
type Response struct {
	ID              string             `json:"id"`
	Name            string             `json:"name"`
	Slides          []models.Slide     `json:"slides"`
	Template        models.Template    `json:"template"`
	CoverStyle      models.CoverStyle  `json:"cover_style"`
	BackgroundColor string             `json:"background_color"`
	TextColor       string             `json:"text_color"`
	AccentColor     string             `json:"accent_color"`
	AspectRatio     models.AspectRatio `json:"aspect_ratio"`
	ActiveIndex     int                `json:"active_index"`
	IsSample        bool               `json:"is_sample"`
	Created         time.Time          `json:"created"`
	Modified        time.Time          `json:"modified"`
}

func ToResponse(m *models.CarouselModel) Response {
	slides := m.Slides
	if slides == nil {
		slides = models.SlideList{}
	}
	return Response{
		ID:              m.ID,
		Name:            m.Name,
		Slides:          slides,
		Template:        m.Template,
		CoverStyle:      m.CoverStyle,
		BackgroundColor: m.BackgroundColor,
		TextColor:       m.TextColor,
		AccentColor:     m.AccentColor,
		AspectRatio:     m.AspectRatio,
		ActiveIndex:     m.ActiveIndex,
		IsSample:        m.IsSample,
		Created:         m.CreatedAt,
		Modified:        m.UpdatedAt,
	}
}
