package domain

import "time"

// State is the engine's local mirror of the task list plus the UI state that
// belongs to it (filter, modal). The zero value is empty with FilterAll
// normalized on first read.
type State struct {
	Tasks         []Task
	ActiveFilter  Filter
	ModalOpen     bool
	ModalMode     ModalMode
	EditingTaskID string
	Loading       bool
	Err           string
}

// Action is a tagged state transition. Reduce is total: unknown actions and
// actions addressing an id that is no longer present are silent no-ops, never
// errors, so a stale remote outcome can always be applied safely.
type Action interface{ isTaskAction() }

type TasksReplaced struct{ Tasks []Task }

type TaskAppended struct{ Task Task }

type TaskUpdated struct {
	ID          string
	Title       *string
	Description *string
	Completed   *bool
	UpdatedAt   time.Time
}

type TaskRemoved struct{ ID string }

// CompletionToggled flips the completed flag in place. It is its own inverse,
// which is what makes the optimistic flip-then-flip-back rollback sound.
type CompletionToggled struct{ ID string }

type FilterChanged struct{ Filter Filter }

type ModalOpened struct {
	Mode   ModalMode
	TaskID string
}

type ModalClosed struct{}

type LoadingSet struct{ Loading bool }

// ErrorSet replaces the single error slot. An empty message clears it.
type ErrorSet struct{ Message string }

func (TasksReplaced) isTaskAction()     {}
func (TaskAppended) isTaskAction()      {}
func (TaskUpdated) isTaskAction()       {}
func (TaskRemoved) isTaskAction()       {}
func (CompletionToggled) isTaskAction() {}
func (FilterChanged) isTaskAction()     {}
func (ModalOpened) isTaskAction()       {}
func (ModalClosed) isTaskAction()       {}
func (LoadingSet) isTaskAction()        {}
func (ErrorSet) isTaskAction()          {}

func Reduce(state State, action Action) State {
	switch act := action.(type) {
	case TasksReplaced:
		state.Tasks = append([]Task(nil), act.Tasks...)
		return state
	case TaskAppended:
		state.Tasks = append(append([]Task(nil), state.Tasks...), act.Task)
		return state
	case TaskUpdated:
		tasks := append([]Task(nil), state.Tasks...)
		for idx := range tasks {
			if tasks[idx].ID != act.ID {
				continue
			}
			if act.Title != nil {
				tasks[idx].Title = *act.Title
			}
			if act.Description != nil {
				tasks[idx].Description = *act.Description
			}
			if act.Completed != nil {
				tasks[idx].Completed = *act.Completed
			}
			updatedAt := act.UpdatedAt
			tasks[idx].UpdatedAt = &updatedAt
		}
		state.Tasks = tasks
		return state
	case TaskRemoved:
		tasks := make([]Task, 0, len(state.Tasks))
		for _, task := range state.Tasks {
			if task.ID != act.ID {
				tasks = append(tasks, task)
			}
		}
		state.Tasks = tasks
		return state
	case CompletionToggled:
		tasks := append([]Task(nil), state.Tasks...)
		for idx := range tasks {
			if tasks[idx].ID == act.ID {
				tasks[idx].Completed = !tasks[idx].Completed
			}
		}
		state.Tasks = tasks
		return state
	case FilterChanged:
		state.ActiveFilter = act.Filter
		return state
	case ModalOpened:
		state.ModalOpen = true
		state.ModalMode = act.Mode
		state.EditingTaskID = act.TaskID
		return state
	case ModalClosed:
		state.ModalOpen = false
		state.ModalMode = ""
		state.EditingTaskID = ""
		return state
	case LoadingSet:
		state.Loading = act.Loading
		return state
	case ErrorSet:
		state.Err = act.Message
		return state
	default:
		return state
	}
}

// Find returns the task with the given id, if present.
func (s State) Find(id string) (Task, bool) {
	for _, task := range s.Tasks {
		if task.ID == id {
			return task, true
		}
	}
	return Task{}, false
}

// Filtered returns the tasks visible under the active filter.
func (s State) Filtered() []Task {
	filter := s.ActiveFilter
	if filter == "" {
		filter = FilterAll
	}
	visible := make([]Task, 0, len(s.Tasks))
	for _, task := range s.Tasks {
		switch filter {
		case FilterActive:
			if task.Completed {
				continue
			}
		case FilterCompleted:
			if !task.Completed {
				continue
			}
		}
		visible = append(visible, task)
	}
	return visible
}

// Counts reports totals per filter bucket for the filter tabs.
func (s State) Counts() (all, active, completed int) {
	for _, task := range s.Tasks {
		if task.Completed {
			completed++
		} else {
			active++
		}
	}
	return len(s.Tasks), active, completed
}
