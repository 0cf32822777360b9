package service

import (
	"sync"

	"taskdeck/internal/modules/tasks/domain"
)

// TaskService holds the engine's live state. All mutation goes through
// Dispatch so the reducer is the single place transitions happen.
type TaskService struct {
	mu    sync.RWMutex
	state domain.State
}

func NewTaskService() *TaskService {
	return &TaskService{state: domain.State{ActiveFilter: domain.FilterAll}}
}

func (s *TaskService) Dispatch(action domain.Action) domain.State {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = domain.Reduce(s.state, action)
	return s.state
}

func (s *TaskService) Snapshot() domain.State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}
