package remote

import "time"

// TokenSource supplies the bearer identity for authenticated calls. It is
// read at call time for every request, so a logout or token refresh between
// two calls is always honored by the later one.
type TokenSource interface {
	Token() string
	UserID() string
}

// Result is the uniform outcome shape for every remote call. A call never
// fails with a transport panic or an unhandled error: the caller always gets
// a definite OK/not-OK value with a user-facing message and a status code.
type Result[T any] struct {
	OK     bool
	Data   T
	Err    string
	Status int
}

func succeed[T any](data T, status int) Result[T] {
	return Result[T]{OK: true, Data: data, Status: status}
}

func failure[T any](status int, msg string) Result[T] {
	return Result[T]{OK: false, Err: msg, Status: status}
}

type User struct {
	ID        string
	Email     string
	Name      string
	CreatedAt time.Time
}

// Credentials is the payload of a successful login or registration.
type Credentials struct {
	User  User
	Token string
}

type Task struct {
	ID          string
	Title       string
	Description string
	Completed   bool
	CreatedAt   time.Time
	UpdatedAt   *time.Time
}

// TaskPatch carries the fields of a partial task update. Nil fields are
// omitted from the request body.
type TaskPatch struct {
	Title       *string
	Description *string
	Completed   *bool
}

func (p TaskPatch) body() map[string]any {
	fields := make(map[string]any)
	if p.Title != nil {
		fields["title"] = *p.Title
	}
	if p.Description != nil {
		fields["description"] = *p.Description
	}
	if p.Completed != nil {
		fields["completed"] = *p.Completed
	}
	return fields
}

type ToolCall struct {
	Tool       string
	Parameters map[string]any
	Result     map[string]any
	Success    bool
}

// ChatReply is the backend's answer to one sent message: the (possibly newly
// minted) conversation id, the assistant text, and any tool calls it made.
type ChatReply struct {
	ConversationID string
	Response       string
	ToolCalls      []ToolCall
}

type Message struct {
	ID        string
	Role      string
	Content   string
	CreatedAt time.Time
	ToolCalls []ToolCall
}

type Conversation struct {
	ID       string
	Title    string
	Messages []Message
	HasMore  bool
}

type ConversationSummary struct {
	ID           string
	Title        string
	CreatedAt    time.Time
	UpdatedAt    time.Time
	MessageCount int
}

type ConversationPage struct {
	Conversations []ConversationSummary
	Total         int
}
