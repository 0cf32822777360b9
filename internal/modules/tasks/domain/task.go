package domain

import (
	"fmt"
	"strings"
	"time"

	apperrors "taskdeck/internal/platform/errors"
)

const (
	TitleMaxLen       = 200
	DescriptionMaxLen = 1000
)

// Task mirrors one remote-owned task record. Identity is always
// server-assigned; the client never fabricates one.
type Task struct {
	ID          string
	Title       string
	Description string
	Completed   bool
	CreatedAt   time.Time
	UpdatedAt   *time.Time
}

// ValidateTitle trims and checks a user-entered title before any network
// call is made.
func ValidateTitle(title string) (string, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return "", fmt.Errorf("%w: title is required", apperrors.ErrInvalidInput)
	}
	if len(title) > TitleMaxLen {
		return "", fmt.Errorf("%w: title must be at most %d characters", apperrors.ErrInvalidInput, TitleMaxLen)
	}
	return title, nil
}

func ValidateDescription(description string) error {
	if len(description) > DescriptionMaxLen {
		return fmt.Errorf("%w: description must be at most %d characters", apperrors.ErrInvalidInput, DescriptionMaxLen)
	}
	return nil
}

type Filter string

const (
	FilterAll       Filter = "all"
	FilterActive    Filter = "active"
	FilterCompleted Filter = "completed"
)

func (f Filter) Validate() error {
	switch f {
	case FilterAll, FilterActive, FilterCompleted:
		return nil
	default:
		return fmt.Errorf("%w: unknown filter %q", apperrors.ErrInvalidInput, string(f))
	}
}

type ModalMode string

const (
	ModalAdd  ModalMode = "add"
	ModalEdit ModalMode = "edit"
)
