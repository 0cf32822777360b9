package remote_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"taskdeck/internal/platform/logging"
	"taskdeck/internal/remote"
)

type staticTokens struct {
	token  string
	userID string
}

func (s staticTokens) Token() string  { return s.token }
func (s staticTokens) UserID() string { return s.userID }

func newClient(t *testing.T, handler http.Handler, tokens remote.TokenSource) (*remote.Client, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return remote.NewClient(server.URL, 5*time.Second, tokens, logging.Nop()), server
}

func TestLoginMapsCredentials(t *testing.T) {
	t.Parallel()
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/auth/login" || r.Method != http.MethodPost {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		var body map[string]string
		_ = json.NewDecoder(r.Body).Decode(&body)
		if body["email"] != "ada@example.com" {
			t.Errorf("email not forwarded, got %q", body["email"])
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"user": map[string]any{
				"id": "u1", "email": "ada@example.com", "name": "ada",
				"created_at": "2026-03-01T12:00:00Z",
			},
			"token": "tok",
		})
	})
	client, _ := newClient(t, handler, staticTokens{})

	result := client.Login(context.Background(), "ada@example.com", "pw")
	if !result.OK || result.Data.Token != "tok" || result.Data.User.ID != "u1" {
		t.Fatalf("login mapping failed: %+v", result)
	}
	if !result.Data.User.CreatedAt.Equal(time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)) {
		t.Fatalf("created_at not parsed, got %v", result.Data.User.CreatedAt)
	}
}

func TestBackendDetailMessagePassesThrough(t *testing.T) {
	t.Parallel()
	handler := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_ = json.NewEncoder(w).Encode(map[string]string{"detail": "Invalid credentials"})
	})
	client, _ := newClient(t, handler, staticTokens{})

	result := client.Login(context.Background(), "ada@example.com", "bad")
	if result.OK || result.Err != "Invalid credentials" || result.Status != http.StatusUnauthorized {
		t.Fatalf("backend message must pass through, got %+v", result)
	}
}

func TestOpaqueErrorBodyFallsBackToEndpointMessage(t *testing.T) {
	t.Parallel()
	handler := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte("<html>bad gateway</html>"))
	})
	client, _ := newClient(t, handler, staticTokens{token: "tok", userID: "u1"})

	result := client.ListTasks(context.Background())
	if result.OK || result.Err != "Failed to load tasks" {
		t.Fatalf("opaque body must fall back, got %+v", result)
	}
}

func TestTransportFailureIsNormalized(t *testing.T) {
	t.Parallel()
	server := httptest.NewServer(http.NotFoundHandler())
	server.Close()
	client := remote.NewClient(server.URL, time.Second, staticTokens{token: "tok", userID: "u1"}, logging.Nop())

	result := client.ListTasks(context.Background())
	if result.OK {
		t.Fatalf("unreachable server must fail")
	}
	if result.Err != "Network error - could not connect to server" {
		t.Fatalf("transport failures must be normalized, got %q", result.Err)
	}
	if result.Status != http.StatusInternalServerError {
		t.Fatalf("normalized failures carry status 500, got %d", result.Status)
	}
}

func TestAuthedCallsRequireIdentityAndCarryBearer(t *testing.T) {
	t.Parallel()
	var gotAuth string
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		_, _ = w.Write([]byte("[]"))
	})
	client, _ := newClient(t, handler, staticTokens{token: "tok", userID: "u1"})

	result := client.ListTasks(context.Background())
	if !result.OK {
		t.Fatalf("list failed: %+v", result)
	}
	if gotAuth != "Bearer tok" {
		t.Fatalf("bearer token must be attached, got %q", gotAuth)
	}

	anon := remote.NewClient("http://unused", time.Second, staticTokens{}, logging.Nop())
	result = anon.ListTasks(context.Background())
	if result.OK || result.Status != http.StatusUnauthorized || result.Err != "Not authenticated" {
		t.Fatalf("missing identity must short-circuit locally, got %+v", result)
	}
}

func TestUpdateTaskSendsOnlyPatchedFields(t *testing.T) {
	t.Parallel()
	var body map[string]any
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPatch {
			t.Errorf("expected PATCH, got %s", r.Method)
		}
		_ = json.NewDecoder(r.Body).Decode(&body)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"id": "t1", "title": "x", "completed": true,
			"created_at": "2026-03-01T12:00:00Z",
		})
	})
	client, _ := newClient(t, handler, staticTokens{token: "tok", userID: "u1"})

	completed := true
	result := client.UpdateTask(context.Background(), "t1", remote.TaskPatch{Completed: &completed})
	if !result.OK {
		t.Fatalf("update failed: %+v", result)
	}
	if len(body) != 1 || body["completed"] != true {
		t.Fatalf("patch must carry only the set fields, got %v", body)
	}
}

func TestDeleteTaskAcceptsOKAndNoContent(t *testing.T) {
	t.Parallel()
	for _, status := range []int{http.StatusOK, http.StatusNoContent} {
		handler := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(status)
		})
		client, _ := newClient(t, handler, staticTokens{token: "tok", userID: "u1"})
		if result := client.DeleteTask(context.Background(), "t1"); !result.OK {
			t.Fatalf("status %d must count as a successful delete, got %+v", status, result)
		}
	}
}

func TestSendChatSendsNullConversationIDForFreshConversation(t *testing.T) {
	t.Parallel()
	var body map[string]any
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewDecoder(r.Body).Decode(&body)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"conversation_id": "c9",
			"response":        "hello",
			"tool_calls": []map[string]any{
				{"tool": "create_task", "parameters": map[string]any{"title": "x"}, "success": true},
			},
		})
	})
	client, _ := newClient(t, handler, staticTokens{token: "tok", userID: "u1"})

	result := client.SendChat(context.Background(), "hi", "")
	if !result.OK || result.Data.ConversationID != "c9" {
		t.Fatalf("send mapping failed: %+v", result)
	}
	if value, present := body["conversation_id"]; !present || value != nil {
		t.Fatalf("fresh conversation must send an explicit null id, got %v", body)
	}
	if len(result.Data.ToolCalls) != 1 || result.Data.ToolCalls[0].Tool != "create_task" {
		t.Fatalf("tool calls must be mapped, got %+v", result.Data.ToolCalls)
	}
}

func TestListConversationsLeavesUnsetPagingToServerDefaults(t *testing.T) {
	t.Parallel()
	var gotQuery url.Values
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		_ = json.NewEncoder(w).Encode(map[string]any{"conversations": []any{}, "total": 0})
	})
	client, _ := newClient(t, handler, staticTokens{token: "tok", userID: "u1"})

	if result := client.ListConversations(context.Background(), 0, 0); !result.OK {
		t.Fatalf("list failed: %+v", result)
	}
	if gotQuery.Has("limit") || gotQuery.Has("offset") {
		t.Fatalf("zero paging values must be omitted, got %q", gotQuery.Encode())
	}

	if result := client.ListConversations(context.Background(), 20, 40); !result.OK {
		t.Fatalf("list failed: %+v", result)
	}
	if gotQuery.Get("limit") != "20" || gotQuery.Get("offset") != "40" {
		t.Fatalf("positive paging values must be forwarded, got %q", gotQuery.Encode())
	}
}

func TestGetConversationMapsMessagesAndLimit(t *testing.T) {
	t.Parallel()
	var gotLimit string
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotLimit = r.URL.Query().Get("limit")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"id":    "c9",
			"title": "groceries",
			"messages": []map[string]any{
				{"id": "s1", "role": "user", "content": "add milk", "created_at": "2026-03-01T12:00:00Z"},
				{"id": "s2", "role": "assistant", "content": "Done.", "created_at": "2026-03-01T12:00:01Z"},
			},
			"has_more": true,
		})
	})
	client, _ := newClient(t, handler, staticTokens{token: "tok", userID: "u1"})

	result := client.GetConversation(context.Background(), "c9", 50)
	if !result.OK || len(result.Data.Messages) != 2 || !result.Data.HasMore {
		t.Fatalf("conversation mapping failed: %+v", result)
	}
	if gotLimit != "50" {
		t.Fatalf("limit must be forwarded, got %q", gotLimit)
	}
}
