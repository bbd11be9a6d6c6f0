package carousel

import (
	"context"
	"errors"
	"strings"

	"github.com/slipframe/core/internal/models"
	"github.com/slipframe/core/internal/pkg/pagination"
	"github.com/slipframe/core/internal/pkg/response"
	"github.com/slipframe/core/internal/render"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Service struct {
	db        *gorm.DB
	overrides *OverrideStore
	saver     *DebouncedSaver
	logger    *zap.Logger
}

func NewService(db *gorm.DB, overrides *OverrideStore, logger *zap.Logger) *Service {
	s := &Service{
		db:        db,
		overrides: overrides,
		logger:    logger,
	}
	s.saver = NewDebouncedSaver(s.persist, logger)
	return s
}

// Saver exposes the debounce layer so the exporter can flush pending edits
// before snapshotting a deck.
func (s *Service) Saver() *DebouncedSaver { return s.saver }

func (s *Service) persist(m *models.CarouselModel) error {
	return s.db.Save(m).Error
}

// scheduleSave hands the saver its own copy of the deck. The caller goes on
// to apply override shadowing to the original before responding; the row the
// timer eventually writes must not contain those shadowed values.
func (s *Service) scheduleSave(deck *models.CarouselModel) {
	snap := *deck
	snap.Slides = append(models.SlideList(nil), deck.Slides...)
	s.saver.Schedule(&snap)
}

func (s *Service) List(ownerID string, q pagination.Query) ([]models.CarouselModel, response.Pagination, error) {
	tx := s.db.Model(&models.CarouselModel{}).
		Where("owner_id = ? OR is_sample = ?", ownerID, true).
		Order("updated_at DESC")

	var decks []models.CarouselModel
	pag, err := pagination.Paginate(tx, q, &decks)
	return decks, pag, err
}

// load fetches the authoritative row without applying overrides. Mutation
// paths go through here so shadowed fields never leak back into the database.
func (s *Service) load(id string) (*models.CarouselModel, error) {
	var deck models.CarouselModel
	if err := s.db.First(&deck, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &deck, nil
}

// loadOwned fetches a deck and enforces ownership. Sample decks are readable
// by anyone; everything else belongs to exactly one user.
func (s *Service) loadOwned(id, ownerID string) (*models.CarouselModel, error) {
	deck, err := s.load(id)
	if err != nil || deck == nil {
		return deck, err
	}
	if deck.IsSample || deck.OwnerID == "" || deck.OwnerID == ownerID {
		return deck, nil
	}
	return nil, models.ErrNotOwner
}

// GetByID returns the deck as clients should see it, with overrides applied.
func (s *Service) GetByID(ctx context.Context, ownerID, id string) (*models.CarouselModel, error) {
	deck, err := s.loadOwned(id, ownerID)
	if err != nil || deck == nil {
		return deck, err
	}
	s.overrides.Apply(ctx, deck)
	return deck, nil
}

func (s *Service) Create(ownerID string, dto *CreateCarouselDTO) (*models.CarouselModel, error) {
	deck := models.CarouselModel{
		OwnerID:     ownerID,
		Name:        dto.Name,
		RawText:     dto.RawText,
		Language:    dto.Language,
		Template:    models.TemplateDark,
		CoverStyle:  models.CoverMinimalist,
		AspectRatio: models.AspectPortrait,
		AccentColor: models.DefaultAccentColor,
	}
	deck.BackgroundColor, deck.TextColor = models.TemplateColors(deck.Template)

	if dto.Template != nil {
		if err := deck.ApplyTemplate(models.Template(*dto.Template)); err != nil {
			return nil, err
		}
	}
	if dto.CoverStyle != nil {
		if !models.ValidCoverStyle(models.CoverStyle(*dto.CoverStyle)) {
			return nil, models.ErrUnknownVariant
		}
		deck.CoverStyle = models.CoverStyle(*dto.CoverStyle)
	}
	if dto.AspectRatio != nil {
		if !models.ValidAspectRatio(models.AspectRatio(*dto.AspectRatio)) {
			return nil, models.ErrUnknownVariant
		}
		deck.AspectRatio = models.AspectRatio(*dto.AspectRatio)
	}
	if dto.AccentColor != nil {
		if !validHexColor(*dto.AccentColor) {
			return nil, models.ErrUnknownVariant
		}
		deck.AccentColor = *dto.AccentColor
	}

	for _, sl := range dto.Slides {
		deck.Slides = append(deck.Slides, models.Slide{
			Position: len(deck.Slides),
			Title:    sl.Title,
			Body:     sl.Body,
		})
	}
	// Decks never start below the structural floor.
	for len(deck.Slides) < models.MinSlides {
		deck.Slides = append(deck.Slides, models.Slide{
			Position: len(deck.Slides),
			Title:    "Title",
		})
	}

	if deck.Language == "" {
		var all strings.Builder
		all.WriteString(deck.RawText)
		for _, sl := range deck.Slides {
			all.WriteString(" " + sl.Title + " " + sl.Body)
		}
		if render.Classify(all.String()) == render.RTL {
			deck.Language = "he"
		} else {
			deck.Language = "en"
		}
	}

	if err := s.db.Create(&deck).Error; err != nil {
		return nil, err
	}
	return &deck, nil
}

func (s *Service) Delete(ctx context.Context, ownerID, id string) error {
	deck, err := s.loadOwned(id, ownerID)
	if err != nil {
		return err
	}
	if deck == nil {
		return nil
	}
	if deck.IsSample {
		return models.ErrReadOnlyCarousel
	}
	s.saver.Cancel(id)
	if err := s.db.Delete(&models.CarouselModel{}, "id = ?", id).Error; err != nil {
		return err
	}
	if err := s.overrides.Drop(ctx, id); err != nil {
		s.logger.Warn("failed to drop carousel overrides",
			zap.String("carousel_id", id), zap.Error(err))
	}
	return nil
}

// mutate loads the deck, applies fn, and persists immediately on success.
// Structural changes never ride the debounce window.
func (s *Service) mutate(ctx context.Context, ownerID, id string, fn func(*models.CarouselModel) error) (*models.CarouselModel, error) {
	deck, err := s.loadOwned(id, ownerID)
	if err != nil || deck == nil {
		return deck, err
	}
	if err := fn(deck); err != nil {
		return nil, err
	}
	s.saver.Cancel(id)
	if err := s.persist(deck); err != nil {
		return nil, err
	}
	s.overrides.Apply(ctx, deck)
	return deck, nil
}

func (s *Service) AddSlide(ctx context.Context, ownerID, id string) (*models.CarouselModel, error) {
	return s.mutate(ctx, ownerID, id, func(m *models.CarouselModel) error {
		if m.IsSample {
			return models.ErrReadOnlyCarousel
		}
		m.AddSlide()
		return nil
	})
}

func (s *Service) DeleteSlide(ctx context.Context, ownerID, id string, pos int) (*models.CarouselModel, error) {
	return s.mutate(ctx, ownerID, id, func(m *models.CarouselModel) error {
		return m.DeleteSlide(pos)
	})
}

func (s *Service) DuplicateSlide(ctx context.Context, ownerID, id string, pos int) (*models.CarouselModel, error) {
	return s.mutate(ctx, ownerID, id, func(m *models.CarouselModel) error {
		return m.DuplicateSlide(pos)
	})
}

func (s *Service) ReorderSlide(ctx context.Context, ownerID, id string, dto *ReorderDTO) (*models.CarouselModel, error) {
	return s.mutate(ctx, ownerID, id, func(m *models.CarouselModel) error {
		return m.ReorderSlide(dto.From, dto.To)
	})
}

// UpdateSlide merges a text edit and schedules a coalesced save. Keystroke
// bursts collapse into one write roughly a second after the last edit.
func (s *Service) UpdateSlide(ctx context.Context, ownerID, id string, pos int, dto *UpdateSlideDTO) (*models.CarouselModel, error) {
	deck, err := s.loadOwned(id, ownerID)
	if err != nil || deck == nil {
		return deck, err
	}
	if deck.IsSample {
		return nil, models.ErrReadOnlyCarousel
	}
	if err := deck.UpdateSlide(pos, dto.Title, dto.Body); err != nil {
		return nil, err
	}
	s.scheduleSave(deck)
	s.overrides.Apply(ctx, deck)
	return deck, nil
}

func (s *Service) SetTemplate(ctx context.Context, ownerID, id string, dto *TemplateDTO) (*models.CarouselModel, error) {
	return s.mutate(ctx, ownerID, id, func(m *models.CarouselModel) error {
		return m.ApplyTemplate(models.Template(dto.Template))
	})
}

// SetStyle applies the plain style setters. Cover style and aspect ratio are
// shadowed fields: they live in the override store, never in the row.
func (s *Service) SetStyle(ctx context.Context, ownerID, id string, dto *StyleDTO) (*models.CarouselModel, error) {
	if dto.CoverStyle != nil && !models.ValidCoverStyle(models.CoverStyle(*dto.CoverStyle)) {
		return nil, models.ErrUnknownVariant
	}
	if dto.AspectRatio != nil && !models.ValidAspectRatio(models.AspectRatio(*dto.AspectRatio)) {
		return nil, models.ErrUnknownVariant
	}
	for _, c := range []*string{dto.BackgroundColor, dto.TextColor, dto.AccentColor} {
		if c != nil && !validHexColor(*c) {
			return nil, models.ErrUnknownVariant
		}
	}

	deck, err := s.loadOwned(id, ownerID)
	if err != nil || deck == nil {
		return deck, err
	}
	if deck.IsSample {
		return nil, models.ErrReadOnlyCarousel
	}

	if dto.BackgroundColor != nil || dto.TextColor != nil || dto.AccentColor != nil {
		if dto.BackgroundColor != nil {
			deck.BackgroundColor = *dto.BackgroundColor
		}
		if dto.TextColor != nil {
			deck.TextColor = *dto.TextColor
		}
		if dto.AccentColor != nil {
			deck.AccentColor = *dto.AccentColor
		}
		s.saver.Cancel(id)
		if err := s.persist(deck); err != nil {
			return nil, err
		}
	}

	if dto.CoverStyle != nil {
		if err := s.overrides.SetCoverStyle(ctx, id, models.CoverStyle(*dto.CoverStyle)); err != nil {
			return nil, err
		}
	}
	if dto.AspectRatio != nil {
		if err := s.overrides.SetAspectRatio(ctx, id, models.AspectRatio(*dto.AspectRatio)); err != nil {
			return nil, err
		}
	}

	s.overrides.Apply(ctx, deck)
	return deck, nil
}

// Select moves the inline-editing focus. High-frequency like text edits, so
// it rides the debounce window.
func (s *Service) Select(ctx context.Context, ownerID, id string, dto *SelectDTO) (*models.CarouselModel, error) {
	deck, err := s.loadOwned(id, ownerID)
	if err != nil || deck == nil {
		return deck, err
	}
	if deck.IsSample {
		return nil, models.ErrReadOnlyCarousel
	}
	if dto.ActiveIndex < 0 || dto.ActiveIndex >= len(deck.Slides) {
		return nil, models.ErrSlideOutOfRange
	}
	deck.ActiveIndex = dto.ActiveIndex
	s.scheduleSave(deck)
	s.overrides.Apply(ctx, deck)
	return deck, nil
}

func validHexColor(s string) bool {
	if len(s) != 7 || s[0] != '#' {
		return false
	}
	for _, c := range s[1:] {
		switch {
		case c >= '0' && c <= '9', c >= 'a' && c <= 'f', c >= 'A' && c <= 'F':
		default:
			return false
		}
	}
	return true
}
