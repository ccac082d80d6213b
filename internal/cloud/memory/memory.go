// Package memory is the in-process snapshot store. It stands in for the
// sqlite backend in tests and local runs, optionally adding artificial
// latency to mimic a remote round trip.
package memory

import (
	"context"
	"sync"
	"time"

	"farmbook/internal/core"
)

type Store struct {
	mu      sync.Mutex
	latency time.Duration
	items   map[string]*core.FarmData
}

func New(latency time.Duration) *Store {
	return &Store{
		latency: latency,
		items:   make(map[string]*core.FarmData),
	}
}

func (s *Store) Push(ctx context.Context, identity string, data *core.FarmData) error {
	if err := s.wait(ctx); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items[identity] = data.Clone()
	return nil
}

func (s *Store) Pull(ctx context.Context, identity string) (*core.FarmData, error) {
	if err := s.wait(ctx); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.items[identity].Clone(), nil
}

func (s *Store) wait(ctx context.Context) error {
	if s.latency <= 0 {
		return nil
	}
	select {
	case <-time.After(s.latency):
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
