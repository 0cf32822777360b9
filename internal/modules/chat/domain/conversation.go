package domain

import "time"

type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
	RoleSystem    Role = "system"
)

type ToolCall struct {
	Tool       string
	Parameters map[string]any
	Result     map[string]any
	Success    bool
}

type Message struct {
	ID        string
	Role      Role
	Content   string
	CreatedAt time.Time
	ToolCalls []ToolCall
}

// Conversation is the manager's live state. ID is empty until the backend
// mints one on the first successful send.
type Conversation struct {
	ID       string
	Messages []Message
	Open     bool
	Sending  bool
	Loading  bool
	Err      string
}

// Event is a tagged state transition. Reduce is total: unknown events leave
// the state unchanged.
type Event interface{ isChatEvent() }

type Opened struct{}

type Closed struct{}

type Toggled struct{}

type SendStarted struct{}

// SendSucceeded appends the user message and the assistant reply as one
// atomic pair. Observers never see the user message without its answer.
type SendSucceeded struct {
	ConversationID string
	UserMessage    Message
	Reply          Message
}

type SendFailed struct{ Message string }

type HistoryLoadStarted struct{}

// HistoryLoaded replaces the transcript wholesale with the server's.
type HistoryLoaded struct {
	ConversationID string
	Messages       []Message
}

type HistoryLoadFailed struct{ Message string }

// ConversationCleared forgets the id and transcript. The next send starts a
// fresh conversation.
type ConversationCleared struct{}

type ErrorCleared struct{}

func (Opened) isChatEvent()              {}
func (Closed) isChatEvent()              {}
func (Toggled) isChatEvent()             {}
func (SendStarted) isChatEvent()         {}
func (SendSucceeded) isChatEvent()       {}
func (SendFailed) isChatEvent()          {}
func (HistoryLoadStarted) isChatEvent()  {}
func (HistoryLoaded) isChatEvent()       {}
func (HistoryLoadFailed) isChatEvent()   {}
func (ConversationCleared) isChatEvent() {}
func (ErrorCleared) isChatEvent()        {}

func Reduce(state Conversation, event Event) Conversation {
	switch evt := event.(type) {
	case Opened:
		state.Open = true
		return state
	case Closed:
		state.Open = false
		return state
	case Toggled:
		state.Open = !state.Open
		return state
	case SendStarted:
		state.Sending = true
		state.Err = ""
		return state
	case SendSucceeded:
		state.Sending = false
		state.ID = evt.ConversationID
		state.Messages = append(append([]Message(nil), state.Messages...), evt.UserMessage, evt.Reply)
		return state
	case SendFailed:
		state.Sending = false
		state.Err = evt.Message
		return state
	case HistoryLoadStarted:
		state.Loading = true
		state.Err = ""
		return state
	case HistoryLoaded:
		state.Loading = false
		state.ID = evt.ConversationID
		state.Messages = append([]Message(nil), evt.Messages...)
		return state
	case HistoryLoadFailed:
		state.Loading = false
		state.Err = evt.Message
		return state
	case ConversationCleared:
		state.ID = ""
		state.Messages = nil
		state.Sending = false
		state.Loading = false
		state.Err = ""
		return state
	case ErrorCleared:
		state.Err = ""
		return state
	default:
		return state
	}
}
