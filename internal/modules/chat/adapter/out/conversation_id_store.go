package out

import (
	"context"
	"fmt"

	chatout "taskdeck/internal/modules/chat/port/out"
	"taskdeck/internal/platform/kv"
)

const conversationIDKey = "chat-conversation-id"

type KVConversationIDStore struct {
	store kv.Store
}

func NewKVConversationIDStore(store kv.Store) chatout.ConversationIDStore {
	return &KVConversationIDStore{store: store}
}

func (s *KVConversationIDStore) Save(ctx context.Context, conversationID string) error {
	if err := s.store.Put(ctx, conversationIDKey, conversationID); err != nil {
		return fmt.Errorf("write conversation id: %w", err)
	}
	return nil
}

func (s *KVConversationIDStore) Load(ctx context.Context) (string, bool, error) {
	value, found, err := s.store.Get(ctx, conversationIDKey)
	if err != nil {
		return "", false, fmt.Errorf("read conversation id: %w", err)
	}
	if !found || value == "" {
		return "", false, nil
	}
	return value, true, nil
}

func (s *KVConversationIDStore) Clear(ctx context.Context) error {
	if err := s.store.Delete(ctx, conversationIDKey); err != nil {
		return fmt.Errorf("clear conversation id: %w", err)
	}
	return nil
}
