// Package remote is the gateway to the backend: the only package in the
// client that performs network I/O. Every call resolves to a Result value;
// transport failures are normalized and never escape as errors or panics.
package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"go.uber.org/zap"
)

// msgNetwork is the generic transport-failure message. Internals (DNS,
// refused connection, timeout, malformed body) are never leaked to the user.
const msgNetwork = "Network error - could not connect to server"

const msgNotAuthenticated = "Not authenticated"

type Client struct {
	baseURL string
	http    *http.Client
	tokens  TokenSource
	log     *zap.Logger
}

func NewClient(baseURL string, timeout time.Duration, tokens TokenSource, log *zap.Logger) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
		tokens:  tokens,
		log:     log,
	}
}

func (c *Client) Login(ctx context.Context, email, password string) Result[Credentials] {
	payload := map[string]string{"email": email, "password": password}
	return c.credentialsCall(ctx, "/auth/login", payload, "Login failed")
}

func (c *Client) Register(ctx context.Context, email, password, name string) Result[Credentials] {
	payload := map[string]string{"email": email, "password": password, "name": name}
	return c.credentialsCall(ctx, "/auth/register", payload, "Registration failed")
}

func (c *Client) credentialsCall(ctx context.Context, path string, payload map[string]string, fallback string) Result[Credentials] {
	status, body, err := c.do(ctx, http.MethodPost, path, payload, false)
	if err != nil {
		return failure[Credentials](http.StatusInternalServerError, msgNetwork)
	}
	if status < 200 || status >= 300 {
		return failure[Credentials](status, errorMessage(body, fallback))
	}
	var wc wireCredentials
	if err := json.Unmarshal(body, &wc); err != nil {
		return failure[Credentials](http.StatusInternalServerError, msgNetwork)
	}
	user, err := wc.User.toUser()
	if err != nil {
		return failure[Credentials](http.StatusInternalServerError, msgNetwork)
	}
	return succeed(Credentials{User: user, Token: wc.Token}, status)
}

func (c *Client) ListTasks(ctx context.Context) Result[[]Task] {
	userID, ok := c.identity()
	if !ok {
		return failure[[]Task](http.StatusUnauthorized, msgNotAuthenticated)
	}
	status, body, err := c.do(ctx, http.MethodGet, "/api/"+userID+"/tasks", nil, true)
	if err != nil {
		return failure[[]Task](http.StatusInternalServerError, msgNetwork)
	}
	if status < 200 || status >= 300 {
		return failure[[]Task](status, errorMessage(body, "Failed to load tasks"))
	}
	var records []wireTask
	if err := json.Unmarshal(body, &records); err != nil {
		return failure[[]Task](http.StatusInternalServerError, msgNetwork)
	}
	tasks := make([]Task, 0, len(records))
	for _, record := range records {
		task, err := record.toTask()
		if err != nil {
			return failure[[]Task](http.StatusInternalServerError, msgNetwork)
		}
		tasks = append(tasks, task)
	}
	return succeed(tasks, status)
}

func (c *Client) CreateTask(ctx context.Context, title, description string) Result[Task] {
	userID, ok := c.identity()
	if !ok {
		return failure[Task](http.StatusUnauthorized, msgNotAuthenticated)
	}
	payload := map[string]string{"title": title, "description": description}
	status, body, err := c.do(ctx, http.MethodPost, "/api/"+userID+"/tasks", payload, true)
	if err != nil {
		return failure[Task](http.StatusInternalServerError, msgNetwork)
	}
	if status < 200 || status >= 300 {
		return failure[Task](status, errorMessage(body, "Failed to add task"))
	}
	return decodeTask(body, status)
}

func (c *Client) UpdateTask(ctx context.Context, id string, patch TaskPatch) Result[Task] {
	userID, ok := c.identity()
	if !ok {
		return failure[Task](http.StatusUnauthorized, msgNotAuthenticated)
	}
	status, body, err := c.do(ctx, http.MethodPatch, "/api/"+userID+"/tasks/"+id, patch.body(), true)
	if err != nil {
		return failure[Task](http.StatusInternalServerError, msgNetwork)
	}
	if status < 200 || status >= 300 {
		return failure[Task](status, errorMessage(body, "Failed to update task"))
	}
	return decodeTask(body, status)
}

func (c *Client) DeleteTask(ctx context.Context, id string) Result[struct{}] {
	userID, ok := c.identity()
	if !ok {
		return failure[struct{}](http.StatusUnauthorized, msgNotAuthenticated)
	}
	status, body, err := c.do(ctx, http.MethodDelete, "/api/"+userID+"/tasks/"+id, nil, true)
	if err != nil {
		return failure[struct{}](http.StatusInternalServerError, msgNetwork)
	}
	if status != http.StatusOK && status != http.StatusNoContent {
		return failure[struct{}](status, errorMessage(body, "Failed to delete task"))
	}
	return succeed(struct{}{}, status)
}

// SendChat posts one user message. conversationID may be empty, in which case
// the backend mints a new conversation and returns its id.
func (c *Client) SendChat(ctx context.Context, message, conversationID string) Result[ChatReply] {
	userID, ok := c.identity()
	if !ok {
		return failure[ChatReply](http.StatusUnauthorized, msgNotAuthenticated)
	}
	payload := map[string]any{"message": message, "conversation_id": nil}
	if conversationID != "" {
		payload["conversation_id"] = conversationID
	}
	status, body, err := c.do(ctx, http.MethodPost, "/api/"+userID+"/chat", payload, true)
	if err != nil {
		return failure[ChatReply](http.StatusInternalServerError, msgNetwork)
	}
	if status < 200 || status >= 300 {
		return failure[ChatReply](status, errorMessage(body, "Failed to send message"))
	}
	var reply wireChatReply
	if err := json.Unmarshal(body, &reply); err != nil {
		return failure[ChatReply](http.StatusInternalServerError, msgNetwork)
	}
	return succeed(reply.toChatReply(), status)
}

func (c *Client) GetConversation(ctx context.Context, id string, limit int) Result[Conversation] {
	userID, ok := c.identity()
	if !ok {
		return failure[Conversation](http.StatusUnauthorized, msgNotAuthenticated)
	}
	path := "/api/" + userID + "/conversations/" + id
	if limit > 0 {
		path += "?" + url.Values{"limit": {strconv.Itoa(limit)}}.Encode()
	}
	status, body, err := c.do(ctx, http.MethodGet, path, nil, true)
	if err != nil {
		return failure[Conversation](http.StatusInternalServerError, msgNetwork)
	}
	if status < 200 || status >= 300 {
		return failure[Conversation](status, errorMessage(body, "Failed to load conversation"))
	}
	var record wireConversation
	if err := json.Unmarshal(body, &record); err != nil {
		return failure[Conversation](http.StatusInternalServerError, msgNetwork)
	}
	conv, err := record.toConversation()
	if err != nil {
		return failure[Conversation](http.StatusInternalServerError, msgNetwork)
	}
	return succeed(conv, status)
}

func (c *Client) ListConversations(ctx context.Context, limit, offset int) Result[ConversationPage] {
	userID, ok := c.identity()
	if !ok {
		return failure[ConversationPage](http.StatusUnauthorized, msgNotAuthenticated)
	}
	// Non-positive paging values are omitted; the backend rejects limit < 1,
	// so zero means "use the server's defaults".
	path := "/api/" + userID + "/conversations"
	query := url.Values{}
	if limit > 0 {
		query.Set("limit", strconv.Itoa(limit))
	}
	if offset > 0 {
		query.Set("offset", strconv.Itoa(offset))
	}
	if len(query) > 0 {
		path += "?" + query.Encode()
	}
	status, body, err := c.do(ctx, http.MethodGet, path, nil, true)
	if err != nil {
		return failure[ConversationPage](http.StatusInternalServerError, msgNetwork)
	}
	if status < 200 || status >= 300 {
		return failure[ConversationPage](status, errorMessage(body, "Failed to load conversations"))
	}
	var record wireConversationPage
	if err := json.Unmarshal(body, &record); err != nil {
		return failure[ConversationPage](http.StatusInternalServerError, msgNetwork)
	}
	page, err := record.toPage()
	if err != nil {
		return failure[ConversationPage](http.StatusInternalServerError, msgNetwork)
	}
	return succeed(page, status)
}

func (c *Client) DeleteConversation(ctx context.Context, id string) Result[struct{}] {
	userID, ok := c.identity()
	if !ok {
		return failure[struct{}](http.StatusUnauthorized, msgNotAuthenticated)
	}
	status, body, err := c.do(ctx, http.MethodDelete, "/api/"+userID+"/conversations/"+id, nil, true)
	if err != nil {
		return failure[struct{}](http.StatusInternalServerError, msgNetwork)
	}
	if status != http.StatusOK && status != http.StatusNoContent {
		return failure[struct{}](status, errorMessage(body, "Failed to delete conversation"))
	}
	return succeed(struct{}{}, status)
}

func decodeTask(body []byte, status int) Result[Task] {
	var record wireTask
	if err := json.Unmarshal(body, &record); err != nil {
		return failure[Task](http.StatusInternalServerError, msgNetwork)
	}
	task, err := record.toTask()
	if err != nil {
		return failure[Task](http.StatusInternalServerError, msgNetwork)
	}
	return succeed(task, status)
}

func (c *Client) identity() (string, bool) {
	if c.tokens == nil {
		return "", false
	}
	userID := c.tokens.UserID()
	if userID == "" || c.tokens.Token() == "" {
		return "", false
	}
	return userID, true
}

func (c *Client) do(ctx context.Context, method, path string, payload any, authed bool) (int, []byte, error) {
	var reqBody io.Reader
	if payload != nil {
		encoded, err := json.Marshal(payload)
		if err != nil {
			return 0, nil, fmt.Errorf("encode request: %w", err)
		}
		reqBody = bytes.NewReader(encoded)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return 0, nil, fmt.Errorf("build request: %w", err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if authed {
		// Token is read here, at call time, so an expiry or refresh between
		// two calls is honored by the later one.
		req.Header.Set("Authorization", "Bearer "+c.tokens.Token())
	}

	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Debug("request failed", zap.String("method", method), zap.String("path", path), zap.Error(err))
		return 0, nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		c.log.Debug("read response failed", zap.String("path", path), zap.Error(err))
		return 0, nil, err
	}
	c.log.Debug("request", zap.String("method", method), zap.String("path", path), zap.Int("status", resp.StatusCode))
	return resp.StatusCode, body, nil
}
