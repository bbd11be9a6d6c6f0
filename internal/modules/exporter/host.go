package exporter

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/slipframe/core/internal/render"
)

var errSurfaceBusy = errors.New("a surface is already mounted")

// Host owns the off-screen surface for one export job. At most one surface
// is mounted at a time; sequential slide processing keeps the memory and
// paint-timing cost of export flat regardless of deck size.
type Host struct {
	fonts *render.FontCache

	mu      sync.Mutex
	mounted *Surface
}

func NewHost(fonts *render.FontCache) *Host {
	return &Host{fonts: fonts}
}

// Surface is one mounted slide mid-export. The frame becomes available when
// ready closes; until then it must not be read.
type Surface struct {
	ready chan struct{}
	frame *render.Frame
	err   error
}

// Mount lays out a slide off-screen. Layout runs asynchronously and signals
// completion through the surface's ready channel.
func (h *Host) Mount(p render.Params) (*Surface, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.mounted != nil {
		return nil, errSurfaceBusy
	}

	s := &Surface{ready: make(chan struct{})}
	h.mounted = s
	go func() {
		defer func() {
			if r := recover(); r != nil {
				s.err = fmt.Errorf("slide layout panic: %v", r)
			}
			close(s.ready)
		}()
		s.frame = render.BuildFrame(p, h.fonts)
	}()
	return s, nil
}

// Unmount releases the surface. Safe to call for a surface that already
// failed; export cleanup always runs through here.
func (h *Host) Unmount(s *Surface) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.mounted == s {
		h.mounted = nil
	}
}

// WaitReady blocks until layout signals completion, the settle fallback
// elapses, or ctx expires. When the fallback fires without a signal, capture
// proceeds anyway; an unfinished frame then surfaces as an ordinary
// rasterization failure rather than a hang.
func (s *Surface) WaitReady(ctx context.Context, settle time.Duration) error {
	select {
	case <-s.ready:
		return s.err
	case <-time.After(settle):
		select {
		case <-s.ready:
			return s.err
		default:
			return nil
		}
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Frame returns the laid-out frame, or nil while layout is still running.
// The ready channel is the only synchronization between the layout goroutine
// and readers; frame and err must never be touched before it closes.
func (s *Surface) Frame() *render.Frame {
	select {
	case <-s.ready:
		return s.frame
	default:
		return nil
	}
}
