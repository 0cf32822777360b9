package domain_test

import (
	"testing"
	"time"

	"taskdeck/internal/modules/chat/domain"
)

func TestReduceSendLifecycle(t *testing.T) {
	t.Parallel()
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	state := domain.Reduce(domain.Conversation{}, domain.SendStarted{})
	if !state.Sending || state.Err != "" {
		t.Fatalf("send start must mark sending and clear errors, got %+v", state)
	}

	state = domain.Reduce(state, domain.SendSucceeded{
		ConversationID: "c9",
		UserMessage:    domain.Message{ID: "m1", Role: domain.RoleUser, Content: "hi", CreatedAt: now},
		Reply:          domain.Message{ID: "m2", Role: domain.RoleAssistant, Content: "hello", CreatedAt: now},
	})
	if state.Sending || state.ID != "c9" || len(state.Messages) != 2 {
		t.Fatalf("success must append the pair and adopt the id, got %+v", state)
	}

	state = domain.Reduce(state, domain.SendFailed{Message: "Failed to send message"})
	if state.Sending || state.Err == "" || len(state.Messages) != 2 {
		t.Fatalf("failure must settle without touching the transcript, got %+v", state)
	}
}

func TestReduceClearedForgetsEverything(t *testing.T) {
	t.Parallel()
	state := domain.Conversation{
		ID:       "c9",
		Messages: []domain.Message{{ID: "m1", Role: domain.RoleUser, Content: "hi"}},
		Open:     true,
		Err:      "stale",
	}
	state = domain.Reduce(state, domain.ConversationCleared{})
	if state.ID != "" || state.Messages != nil || state.Err != "" {
		t.Fatalf("clear must reset id, transcript, and error, got %+v", state)
	}
	if !state.Open {
		t.Fatalf("clearing the conversation must not close the panel")
	}
}

func TestReducePanelToggle(t *testing.T) {
	t.Parallel()
	state := domain.Reduce(domain.Conversation{}, domain.Toggled{})
	if !state.Open {
		t.Fatalf("toggle from closed must open")
	}
	state = domain.Reduce(state, domain.Toggled{})
	if state.Open {
		t.Fatalf("toggle from open must close")
	}
	state = domain.Reduce(state, domain.Opened{})
	state = domain.Reduce(state, domain.Opened{})
	if !state.Open {
		t.Fatalf("open is idempotent")
	}
}

func TestReduceHistoryLoadReplacesTranscript(t *testing.T) {
	t.Parallel()
	state := domain.Conversation{
		ID:       "c1",
		Messages: []domain.Message{{ID: "m1", Role: domain.RoleUser, Content: "old"}},
	}
	state = domain.Reduce(state, domain.HistoryLoadStarted{})
	if !state.Loading {
		t.Fatalf("history load must mark loading")
	}
	state = domain.Reduce(state, domain.HistoryLoaded{
		ConversationID: "c2",
		Messages: []domain.Message{
			{ID: "s0", Role: domain.RoleSystem, Content: "You are a task assistant."},
			{ID: "s1", Role: domain.RoleAssistant, Content: "new"},
		},
	})
	if state.Loading || state.ID != "c2" || len(state.Messages) != 2 || state.Messages[1].Content != "new" {
		t.Fatalf("history load must replace wholesale, got %+v", state)
	}
	if state.Messages[0].Role != domain.RoleSystem {
		t.Fatalf("system messages must survive a history load, got %+v", state.Messages[0])
	}
}
