package usecase_test

import (
	"context"
	"net/http"
	"strconv"
	"testing"
	"time"

	chatout "taskdeck/internal/modules/chat/adapter/out"
	"taskdeck/internal/modules/chat/service"
	"taskdeck/internal/modules/chat/usecase"
	"taskdeck/internal/platform/kv"
	"taskdeck/internal/platform/logging"
	"taskdeck/internal/remote"
)

const idKey = "chat-conversation-id"

type fakeClock struct {
	values []time.Time
	idx    int
}

func (f *fakeClock) Now() time.Time {
	if f.idx >= len(f.values) {
		return f.values[len(f.values)-1]
	}
	v := f.values[f.idx]
	f.idx++
	return v
}

type seqID struct{ n int }

func (s *seqID) New() string {
	s.n++
	return "m" + strconv.Itoa(s.n)
}

type fakeSessions struct{ authed bool }

func (f fakeSessions) Authenticated() bool { return f.authed }

type fakeGateway struct {
	sendResult   remote.Result[remote.ChatReply]
	getResult    remote.Result[remote.Conversation]
	listResult   remote.Result[remote.ConversationPage]
	deleteResult remote.Result[struct{}]

	sendCalls  int
	lastSentID string
	lastGetID  string
}

func (f *fakeGateway) Send(_ context.Context, _, conversationID string) remote.Result[remote.ChatReply] {
	f.sendCalls++
	f.lastSentID = conversationID
	return f.sendResult
}

func (f *fakeGateway) GetConversation(_ context.Context, id string, _ int) remote.Result[remote.Conversation] {
	f.lastGetID = id
	return f.getResult
}

func (f *fakeGateway) ListConversations(_ context.Context, _, _ int) remote.Result[remote.ConversationPage] {
	return f.listResult
}

func (f *fakeGateway) DeleteConversation(_ context.Context, _ string) remote.Result[struct{}] {
	return f.deleteResult
}

func newFixture(gateway *fakeGateway, authed bool) (*usecase.Interactor, *kv.MemoryStore) {
	svc := service.NewChatService()
	store := kv.NewMemoryStore()
	clk := &fakeClock{values: []time.Time{time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)}}
	uc := usecase.NewInteractor(svc, gateway, chatout.NewKVConversationIDStore(store), fakeSessions{authed: authed}, &seqID{}, clk, logging.Nop())
	return uc, store
}

func TestSendMessageAppendsPairAndAdoptsConversationID(t *testing.T) {
	t.Parallel()
	gateway := &fakeGateway{sendResult: remote.Result[remote.ChatReply]{
		OK: true, Status: http.StatusOK,
		Data: remote.ChatReply{
			ConversationID: "c9",
			Response:       "Added the task for you.",
			ToolCalls:      []remote.ToolCall{{Tool: "create_task", Success: true}},
		},
	}}
	uc, store := newFixture(gateway, true)

	out := uc.SendMessage(context.Background(), "add a task to buy milk")
	if out.Error != "" || out.Sending {
		t.Fatalf("send must settle cleanly, got %+v", out)
	}
	if out.ConversationID != "c9" {
		t.Fatalf("the minted conversation id must be adopted, got %q", out.ConversationID)
	}
	if len(out.Messages) != 2 {
		t.Fatalf("a send must append exactly the user/assistant pair, got %d messages", len(out.Messages))
	}
	if out.Messages[0].Role != "user" || out.Messages[1].Role != "assistant" {
		t.Fatalf("pair order must be user then assistant, got %s/%s", out.Messages[0].Role, out.Messages[1].Role)
	}
	if len(out.Messages[1].ToolCalls) != 1 || out.Messages[1].ToolCalls[0].Tool != "create_task" {
		t.Fatalf("assistant reply must carry its tool calls, got %+v", out.Messages[1].ToolCalls)
	}
	if value, found, _ := store.Get(context.Background(), idKey); !found || value != "c9" {
		t.Fatalf("conversation id must be persisted, got %q found=%t", value, found)
	}

	// The follow-up send reuses the adopted id.
	uc.SendMessage(context.Background(), "thanks")
	if gateway.lastSentID != "c9" {
		t.Fatalf("second send must carry the adopted id, got %q", gateway.lastSentID)
	}
}

func TestSendMessageFailureAppendsNothing(t *testing.T) {
	t.Parallel()
	gateway := &fakeGateway{sendResult: remote.Result[remote.ChatReply]{
		OK: false, Status: http.StatusInternalServerError, Err: "Failed to send message",
	}}
	uc, store := newFixture(gateway, true)

	out := uc.SendMessage(context.Background(), "hello")
	if len(out.Messages) != 0 {
		t.Fatalf("failed send must append nothing, got %d messages", len(out.Messages))
	}
	if out.Error != "Failed to send message" || out.Sending {
		t.Fatalf("failure must surface and settle, got %+v", out)
	}
	if _, found, _ := store.Get(context.Background(), idKey); found {
		t.Fatalf("no conversation id may be persisted on failure")
	}
}

func TestSendMessageGates(t *testing.T) {
	t.Parallel()
	gateway := &fakeGateway{}
	uc, _ := newFixture(gateway, false)

	out := uc.SendMessage(context.Background(), "hello")
	if out.Error != "Not authenticated" || gateway.sendCalls != 0 {
		t.Fatalf("unauthenticated send must fail locally, got %+v", out)
	}

	uc2, _ := newFixture(gateway, true)
	out = uc2.SendMessage(context.Background(), "   ")
	if out.Error == "" || gateway.sendCalls != 0 {
		t.Fatalf("blank message must fail locally, got %+v", out)
	}
}

func TestRestoreDiscardsMissingConversationSilently(t *testing.T) {
	t.Parallel()
	gateway := &fakeGateway{getResult: remote.Result[remote.Conversation]{
		OK: false, Status: http.StatusNotFound, Err: "Failed to load conversation",
	}}
	uc, store := newFixture(gateway, true)
	_ = store.Put(context.Background(), idKey, "gone")

	out := uc.Restore(context.Background())
	if out.Error != "" || out.ConversationID != "" {
		t.Fatalf("missing conversation must restore to a clean empty state, got %+v", out)
	}
	if _, found, _ := store.Get(context.Background(), idKey); found {
		t.Fatalf("stale persisted id must be removed")
	}
}

func TestRestoreLoadsPersistedConversation(t *testing.T) {
	t.Parallel()
	gateway := &fakeGateway{getResult: remote.Result[remote.Conversation]{
		OK: true, Status: http.StatusOK,
		Data: remote.Conversation{
			ID: "c9",
			Messages: []remote.Message{
				{ID: "s1", Role: "user", Content: "add a task"},
				{ID: "s2", Role: "assistant", Content: "Done."},
			},
		},
	}}
	uc, store := newFixture(gateway, true)
	_ = store.Put(context.Background(), idKey, "c9")

	out := uc.Restore(context.Background())
	if out.ConversationID != "c9" || len(out.Messages) != 2 {
		t.Fatalf("restore must rebuild the transcript, got %+v", out)
	}
	if gateway.lastGetID != "c9" {
		t.Fatalf("restore must fetch the persisted id, got %q", gateway.lastGetID)
	}
}

func TestLoadHistoryReplacesTranscript(t *testing.T) {
	t.Parallel()
	gateway := &fakeGateway{
		sendResult: remote.Result[remote.ChatReply]{
			OK: true, Data: remote.ChatReply{ConversationID: "c1", Response: "hi"},
		},
		getResult: remote.Result[remote.Conversation]{
			OK: true, Status: http.StatusOK,
			Data: remote.Conversation{
				ID:       "c2",
				Messages: []remote.Message{{ID: "s1", Role: "user", Content: "older chat"}},
			},
		},
	}
	uc, store := newFixture(gateway, true)
	uc.SendMessage(context.Background(), "hello")

	out := uc.LoadHistory(context.Background(), "c2")
	if out.ConversationID != "c2" || len(out.Messages) != 1 {
		t.Fatalf("history load must replace the transcript wholesale, got %+v", out)
	}
	if value, _, _ := store.Get(context.Background(), idKey); value != "c2" {
		t.Fatalf("the loaded conversation becomes the active one, got %q", value)
	}
}

func TestSessionEndedClearsConversationAndPersistedID(t *testing.T) {
	t.Parallel()
	gateway := &fakeGateway{sendResult: remote.Result[remote.ChatReply]{
		OK: true, Data: remote.ChatReply{ConversationID: "c9", Response: "hi"},
	}}
	uc, store := newFixture(gateway, true)
	uc.SendMessage(context.Background(), "hello")

	uc.SessionEnded(context.Background())
	out := uc.Current(context.Background())
	if out.ConversationID != "" || len(out.Messages) != 0 {
		t.Fatalf("session end must forget the conversation, got %+v", out)
	}
	if _, found, _ := store.Get(context.Background(), idKey); found {
		t.Fatalf("session end must remove the persisted id")
	}
}

func TestDeleteActiveConversationClearsLocalState(t *testing.T) {
	t.Parallel()
	gateway := &fakeGateway{
		sendResult:   remote.Result[remote.ChatReply]{OK: true, Data: remote.ChatReply{ConversationID: "c9", Response: "hi"}},
		deleteResult: remote.Result[struct{}]{OK: true, Status: http.StatusNoContent},
		listResult:   remote.Result[remote.ConversationPage]{OK: true, Data: remote.ConversationPage{Total: 0}},
	}
	uc, store := newFixture(gateway, true)
	uc.SendMessage(context.Background(), "hello")

	list := uc.DeleteConversation(context.Background(), "c9")
	if list.Error != "" || list.Total != 0 {
		t.Fatalf("delete must settle and re-list, got %+v", list)
	}
	out := uc.Current(context.Background())
	if out.ConversationID != "" || len(out.Messages) != 0 {
		t.Fatalf("deleting the active conversation must clear it locally, got %+v", out)
	}
	if _, found, _ := store.Get(context.Background(), idKey); found {
		t.Fatalf("persisted id must be cleared with the conversation")
	}
}

func TestConsecutiveSendsKeepPairsOrdered(t *testing.T) {
	t.Parallel()
	gateway := &fakeGateway{sendResult: remote.Result[remote.ChatReply]{
		OK: true, Data: remote.ChatReply{ConversationID: "c1", Response: "first"},
	}}
	uc, _ := newFixture(gateway, true)

	uc.SendMessage(context.Background(), "one")
	gateway.sendResult = remote.Result[remote.ChatReply]{OK: true, Data: remote.ChatReply{ConversationID: "c1", Response: "second"}}
	out := uc.SendMessage(context.Background(), "two")
	if len(out.Messages) != 4 {
		t.Fatalf("each send adds exactly two messages, got %d", len(out.Messages))
	}
	if out.Messages[2].Content != "two" || out.Messages[3].Content != "second" {
		t.Fatalf("pairs must stay ordered, got %+v", out.Messages)
	}
}
