package continuation

import (
	"context"
	"sync"
)

// MemoryStore теряет все продолжения при перезапуске процесса
type MemoryStore struct {
	mu    sync.Mutex
	steps map[int64]Continuation
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{steps: make(map[int64]Continuation)}
}

func (s *MemoryStore) Register(_ context.Context, chatID int64, c Continuation) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.steps[chatID] = c
	return nil
}

func (s *MemoryStore) Take(_ context.Context, chatID int64) (Continuation, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.steps[chatID]
	delete(s.steps, chatID)
	return c, ok, nil
}

func (s *MemoryStore) Get(_ context.Context, chatID int64) (Continuation, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.steps[chatID]
	return c, ok, nil
}

func (s *MemoryStore) Clear(_ context.Context, chatID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.steps, chatID)
	return nil
}
