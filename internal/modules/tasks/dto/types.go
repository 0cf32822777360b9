package dto

import "time"

type AddInput struct {
	Title       string
	Description string
}

// UpdateInput carries a partial edit. Nil fields are left untouched.
type UpdateInput struct {
	ID          string
	Title       *string
	Description *string
	Completed   *bool
}

type TaskOutput struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Completed   bool       `json:"completed"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   *time.Time `json:"updated_at,omitempty"`
}

// StateOutput is a full snapshot of the engine after an operation. Tasks holds
// only the rows visible under the active filter; the counts cover everything.
type StateOutput struct {
	Tasks          []TaskOutput `json:"tasks"`
	ActiveFilter   string       `json:"active_filter"`
	TotalCount     int          `json:"total_count"`
	ActiveCount    int          `json:"active_count"`
	CompletedCount int          `json:"completed_count"`
	ModalOpen      bool         `json:"modal_open,omitempty"`
	ModalMode      string       `json:"modal_mode,omitempty"`
	EditingTaskID  string       `json:"editing_task_id,omitempty"`
	Loading        bool         `json:"loading"`
	Error          string       `json:"error,omitempty"`
}
