package service

import (
	"sync"

	"taskdeck/internal/modules/chat/domain"
)

// ChatService holds the live conversation state. All mutation goes through
// Dispatch so the reducer is the single place transitions happen.
type ChatService struct {
	mu    sync.RWMutex
	state domain.Conversation
}

func NewChatService() *ChatService {
	return &ChatService{}
}

func (s *ChatService) Dispatch(event domain.Event) domain.Conversation {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = domain.Reduce(s.state, event)
	return s.state
}

func (s *ChatService) Snapshot() domain.Conversation {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}
