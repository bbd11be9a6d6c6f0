package carousel

import (
	"context"

	"github.com/slipframe/core/internal/models"
	redisc "github.com/slipframe/core/internal/pkg/redis"
)

// OverrideStore is a local override layer that shadows the authoritative
// store for fields the persistence schema does not carry yet. Overrides win
// on read and are the only write target for the shadowed fields. This is a
// deliberate, temporary consistency exception, not ambient global state.
type OverrideStore struct {
	rc *redisc.Client
}

const overrideKeyPrefix = "sf:carousel:overrides:"

const (
	fieldCoverStyle  = "cover_style"
	fieldAspectRatio = "aspect_ratio"
)

func NewOverrideStore(rc *redisc.Client) *OverrideStore {
	return &OverrideStore{rc: rc}
}

// Apply merges any overrides for the deck into the model, in place.
// Unknown or empty values never clobber the authoritative field.
func (s *OverrideStore) Apply(ctx context.Context, m *models.CarouselModel) {
	if s == nil || s.rc == nil {
		return
	}
	fields, err := s.rc.HGetAll(ctx, overrideKeyPrefix+m.ID)
	if err != nil || len(fields) == 0 {
		return
	}
	if v, ok := fields[fieldCoverStyle]; ok && models.ValidCoverStyle(models.CoverStyle(v)) {
		m.CoverStyle = models.CoverStyle(v)
	}
	if v, ok := fields[fieldAspectRatio]; ok && models.ValidAspectRatio(models.AspectRatio(v)) {
		m.AspectRatio = models.AspectRatio(v)
	}
}

// SetCoverStyle writes the cover style override for a deck.
func (s *OverrideStore) SetCoverStyle(ctx context.Context, deckID string, style models.CoverStyle) error {
	return s.rc.HSet(ctx, overrideKeyPrefix+deckID, fieldCoverStyle, string(style))
}

// SetAspectRatio writes the aspect ratio override for a deck.
func (s *OverrideStore) SetAspectRatio(ctx context.Context, deckID string, ratio models.AspectRatio) error {
	return s.rc.HSet(ctx, overrideKeyPrefix+deckID, fieldAspectRatio, string(ratio))
}

// Drop removes all overrides for a deck, e.g. when the deck is deleted.
func (s *OverrideStore) Drop(ctx context.Context, deckID string) error {
	return s.rc.Del(ctx, overrideKeyPrefix+deckID)
}
