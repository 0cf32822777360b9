package out

import (
	"context"
	"encoding/json"
	"fmt"

	"taskdeck/internal/modules/auth/domain"
	authout "taskdeck/internal/modules/auth/port/out"
	"taskdeck/internal/platform/kv"
)

// sessionRecordKey matches the key the original web client used for its
// persisted auth state.
const sessionRecordKey = "auth-state"

type KVSessionRecordStore struct {
	store kv.Store
}

func NewKVSessionRecordStore(store kv.Store) authout.SessionRecordStore {
	return &KVSessionRecordStore{store: store}
}

func (s *KVSessionRecordStore) Save(ctx context.Context, record domain.Record) error {
	payload, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("marshal session record: %w", err)
	}
	if err := s.store.Put(ctx, sessionRecordKey, string(payload)); err != nil {
		return fmt.Errorf("write session record: %w", err)
	}
	return nil
}

func (s *KVSessionRecordStore) Load(ctx context.Context) (domain.Record, bool, error) {
	payload, found, err := s.store.Get(ctx, sessionRecordKey)
	if err != nil {
		return domain.Record{}, false, fmt.Errorf("read session record: %w", err)
	}
	if !found {
		return domain.Record{}, false, nil
	}
	var record domain.Record
	if err := json.Unmarshal([]byte(payload), &record); err != nil {
		return domain.Record{}, false, fmt.Errorf("decode session record: %w", err)
	}
	if record.Token == "" {
		return domain.Record{}, false, nil
	}
	return record, true, nil
}

func (s *KVSessionRecordStore) Clear(ctx context.Context) error {
	if err := s.store.Delete(ctx, sessionRecordKey); err != nil {
		return fmt.Errorf("clear session record: %w", err)
	}
	return nil
}
