package carousel

import (
	"sync"
	"time"

	"github.com/slipframe/core/internal/models"
	"go.uber.org/zap"
)

// DebouncedSaver coalesces rapid successive saves of the same deck into a
// single persist call. Later schedules within the window replace earlier
// pending state, so only the newest snapshot hits the database. Structural
// operations bypass this and persist immediately.
type DebouncedSaver struct {
	mu      sync.Mutex
	pending map[string]*pendingSave
	persist func(*models.CarouselModel) error
	delay   time.Duration
	logger  *zap.Logger
}

type pendingSave struct {
	timer *time.Timer
	model *models.CarouselModel
}

const defaultSaveDelay = time.Second

func NewDebouncedSaver(persist func(*models.CarouselModel) error, logger *zap.Logger) *DebouncedSaver {
	return &DebouncedSaver{
		pending: make(map[string]*pendingSave),
		persist: persist,
		delay:   defaultSaveDelay,
		logger:  logger,
	}
}

// Schedule queues a save of the deck, resetting any pending window for it.
// The model is persisted as captured here; callers hand over a snapshot they
// no longer mutate.
func (s *DebouncedSaver) Schedule(m *models.CarouselModel) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if p, ok := s.pending[m.ID]; ok {
		p.timer.Stop()
		p.model = m
		p.timer.Reset(s.delay)
		return
	}

	id := m.ID
	p := &pendingSave{model: m}
	p.timer = time.AfterFunc(s.delay, func() { s.fire(id) })
	s.pending[id] = p
}

// Flush persists a pending save for the deck immediately, if one exists.
// Used before operations that must observe the latest state, e.g. export.
func (s *DebouncedSaver) Flush(deckID string) {
	s.mu.Lock()
	p, ok := s.pending[deckID]
	if ok {
		p.timer.Stop()
		delete(s.pending, deckID)
	}
	s.mu.Unlock()

	if ok {
		s.doPersist(p.model)
	}
}

// Cancel drops any pending save for the deck without persisting.
func (s *DebouncedSaver) Cancel(deckID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if p, ok := s.pending[deckID]; ok {
		p.timer.Stop()
		delete(s.pending, deckID)
	}
}

func (s *DebouncedSaver) fire(deckID string) {
	s.mu.Lock()
	p, ok := s.pending[deckID]
	if ok {
		delete(s.pending, deckID)
	}
	s.mu.Unlock()

	if ok {
		s.doPersist(p.model)
	}
}

func (s *DebouncedSaver) doPersist(m *models.CarouselModel) {
	if err := s.persist(m); err != nil && s.logger != nil {
		s.logger.Error("debounced carousel save failed",
			zap.String("carousel_id", m.ID),
			zap.Error(err))
	}
}
