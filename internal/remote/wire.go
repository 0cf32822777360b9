package remote

import (
	"encoding/json"
	"time"
)

// Wire records mirror the backend's snake_case field naming. Mapping into the
// typed shapes above happens in one place so a field rename on the backend is
// a one-file change here.

type wireUser struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	Name      string `json:"name"`
	CreatedAt string `json:"created_at"`
}

func (w wireUser) toUser() (User, error) {
	createdAt, err := parseTime(w.CreatedAt)
	if err != nil {
		return User{}, err
	}
	return User{ID: w.ID, Email: w.Email, Name: w.Name, CreatedAt: createdAt}, nil
}

type wireCredentials struct {
	User  wireUser `json:"user"`
	Token string   `json:"token"`
}

type wireTask struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Completed   bool   `json:"completed"`
	CreatedAt   string `json:"created_at"`
	UpdatedAt   string `json:"updated_at"`
}

func (w wireTask) toTask() (Task, error) {
	createdAt, err := parseTime(w.CreatedAt)
	if err != nil {
		return Task{}, err
	}
	task := Task{
		ID:          w.ID,
		Title:       w.Title,
		Description: w.Description,
		Completed:   w.Completed,
		CreatedAt:   createdAt,
	}
	if w.UpdatedAt != "" {
		updatedAt, err := parseTime(w.UpdatedAt)
		if err != nil {
			return Task{}, err
		}
		task.UpdatedAt = &updatedAt
	}
	return task, nil
}

type wireToolCall struct {
	Tool       string         `json:"tool"`
	Parameters map[string]any `json:"parameters"`
	Result     map[string]any `json:"result"`
	Success    bool           `json:"success"`
}

func (w wireToolCall) toToolCall() ToolCall {
	return ToolCall{Tool: w.Tool, Parameters: w.Parameters, Result: w.Result, Success: w.Success}
}

type wireChatReply struct {
	ConversationID string         `json:"conversation_id"`
	Response       string         `json:"response"`
	ToolCalls      []wireToolCall `json:"tool_calls"`
}

func (w wireChatReply) toChatReply() ChatReply {
	reply := ChatReply{ConversationID: w.ConversationID, Response: w.Response}
	for _, tc := range w.ToolCalls {
		reply.ToolCalls = append(reply.ToolCalls, tc.toToolCall())
	}
	return reply
}

type wireMessage struct {
	ID        string         `json:"id"`
	Role      string         `json:"role"`
	Content   string         `json:"content"`
	CreatedAt string         `json:"created_at"`
	ToolCalls []wireToolCall `json:"tool_calls"`
}

func (w wireMessage) toMessage() (Message, error) {
	createdAt, err := parseTime(w.CreatedAt)
	if err != nil {
		return Message{}, err
	}
	msg := Message{ID: w.ID, Role: w.Role, Content: w.Content, CreatedAt: createdAt}
	for _, tc := range w.ToolCalls {
		msg.ToolCalls = append(msg.ToolCalls, tc.toToolCall())
	}
	return msg, nil
}

type wireConversation struct {
	ID       string        `json:"id"`
	Title    string        `json:"title"`
	Messages []wireMessage `json:"messages"`
	HasMore  bool          `json:"has_more"`
}

func (w wireConversation) toConversation() (Conversation, error) {
	conv := Conversation{ID: w.ID, Title: w.Title, HasMore: w.HasMore}
	for _, m := range w.Messages {
		msg, err := m.toMessage()
		if err != nil {
			return Conversation{}, err
		}
		conv.Messages = append(conv.Messages, msg)
	}
	return conv, nil
}

type wireConversationSummary struct {
	ID           string `json:"id"`
	Title        string `json:"title"`
	CreatedAt    string `json:"created_at"`
	UpdatedAt    string `json:"updated_at"`
	MessageCount int    `json:"message_count"`
}

type wireConversationPage struct {
	Conversations []wireConversationSummary `json:"conversations"`
	Total         int                       `json:"total"`
}

func (w wireConversationPage) toPage() (ConversationPage, error) {
	page := ConversationPage{Total: w.Total}
	for _, c := range w.Conversations {
		createdAt, err := parseTime(c.CreatedAt)
		if err != nil {
			return ConversationPage{}, err
		}
		updatedAt, err := parseTime(c.UpdatedAt)
		if err != nil {
			return ConversationPage{}, err
		}
		page.Conversations = append(page.Conversations, ConversationSummary{
			ID:           c.ID,
			Title:        c.Title,
			CreatedAt:    createdAt,
			UpdatedAt:    updatedAt,
			MessageCount: c.MessageCount,
		})
	}
	return page, nil
}

type wireError struct {
	Detail string `json:"detail"`
	Error  string `json:"error"`
}

// errorMessage extracts the backend's structured message from a non-2xx body,
// falling back to the endpoint-specific message when the body is opaque.
func errorMessage(body []byte, fallback string) string {
	var we wireError
	if err := json.Unmarshal(body, &we); err == nil {
		if we.Detail != "" {
			return we.Detail
		}
		if we.Error != "" {
			return we.Error
		}
	}
	return fallback
}

func parseTime(raw string) (time.Time, error) {
	return time.Parse(time.RFC3339Nano, raw)
}
