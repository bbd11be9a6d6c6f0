package generate

import (
	"context"
	"strings"

	"github.com/slipframe/core/internal/config"
	"github.com/slipframe/core/internal/models"
	"github.com/slipframe/core/internal/modules/carousel"
	"github.com/slipframe/core/internal/render"
	"go.uber.org/zap"
)

type Service struct {
	providers []config.AIProvider
	decks     *carousel.Service
	logger    *zap.Logger
}

func NewService(cfg config.AIConfig, decks *carousel.Service, logger *zap.Logger) *Service {
	return &Service{
		providers: cfg.Providers,
		decks:     decks,
		logger:    logger,
	}
}

// Generate turns raw text into a new deck. Provider failure or malformed
// output never fails the request; the local chunking heuristic takes over so
// the editor always has slides to show.
func (s *Service) Generate(ctx context.Context, ownerID string, dto *GenerateDTO) (*models.CarouselModel, error) {
	lang := dto.Language
	if lang == "" {
		if render.Classify(dto.RawText) == render.RTL {
			lang = "he"
		} else {
			lang = "en"
		}
	}

	slides := s.generateSlides(ctx, dto.Provider, lang, dto.RawText)

	createDTO := &carousel.CreateCarouselDTO{
		Name:     dto.Name,
		RawText:  dto.RawText,
		Language: lang,
	}
	for _, sl := range slides {
		createDTO.Slides = append(createDTO.Slides, carousel.SlideDTO{
			Title: sl.Title,
			Body:  sl.Body,
		})
	}
	return s.decks.Create(ownerID, createDTO)
}

func (s *Service) generateSlides(ctx context.Context, providerID, lang, text string) []GeneratedSlide {
	provider := s.pickProvider(providerID)
	if provider == nil {
		s.logger.Info("no AI provider configured, using local chunking")
		return fallbackSlides(text)
	}

	systemPrompt, prompt := buildGeneratePrompt(lang, text)
	raw, err := callProvider(ctx, provider, systemPrompt, prompt)
	if err != nil {
		s.logger.Warn("AI generation failed, using local chunking",
			zap.String("provider", provider.ID), zap.Error(err))
		return fallbackSlides(text)
	}

	var out generationOutput
	if err := unmarshalProviderJSON(raw, &out); err != nil {
		s.logger.Warn("AI returned malformed slides, using local chunking",
			zap.String("provider", provider.ID), zap.Error(err))
		return fallbackSlides(text)
	}

	slides := sanitizeSlides(out.Slides)
	if len(slides) < 2 {
		s.logger.Warn("AI returned too few usable slides, using local chunking",
			zap.String("provider", provider.ID), zap.Int("count", len(slides)))
		return fallbackSlides(text)
	}
	return slides
}

func (s *Service) pickProvider(id string) *config.AIProvider {
	for i := range s.providers {
		p := &s.providers[i]
		if !p.Enabled {
			continue
		}
		if id == "" || p.ID == id {
			return p
		}
	}
	return nil
}

func sanitizeSlides(in []GeneratedSlide) []GeneratedSlide {
	out := make([]GeneratedSlide, 0, len(in))
	for _, sl := range in {
		sl.Title = strings.TrimSpace(sl.Title)
		sl.Body = strings.TrimSpace(sl.Body)
		if sl.Title == "" && sl.Body == "" {
			continue
		}
		if sl.Title == "" {
			sl.Title = "Title"
		}
		out = append(out, sl)
		if len(out) == maxGeneratedSlides {
			break
		}
	}
	return out
}
