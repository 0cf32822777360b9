package dto

import "time"

type ToolCallOutput struct {
	Tool       string         `json:"tool"`
	Parameters map[string]any `json:"parameters,omitempty"`
	Result     map[string]any `json:"result,omitempty"`
	Success    bool           `json:"success"`
}

type MessageOutput struct {
	ID        string           `json:"id"`
	Role      string           `json:"role"`
	Content   string           `json:"content"`
	CreatedAt time.Time        `json:"created_at"`
	ToolCalls []ToolCallOutput `json:"tool_calls,omitempty"`
}

// ConversationOutput is a full snapshot of the manager after an operation.
type ConversationOutput struct {
	ConversationID string          `json:"conversation_id,omitempty"`
	Messages       []MessageOutput `json:"messages"`
	Open           bool            `json:"open"`
	Sending        bool            `json:"sending"`
	Loading        bool            `json:"loading"`
	Error          string          `json:"error,omitempty"`
}

type ConversationSummaryOutput struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
	MessageCount int       `json:"message_count"`
}

type ConversationListOutput struct {
	Conversations []ConversationSummaryOutput `json:"conversations"`
	Total         int                         `json:"total"`
	Error         string                      `json:"error,omitempty"`
}
