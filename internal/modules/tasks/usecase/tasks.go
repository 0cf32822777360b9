package usecase

import (
	"context"

	"go.uber.org/zap"

	"taskdeck/internal/modules/tasks/domain"
	"taskdeck/internal/modules/tasks/dto"
	tasksin "taskdeck/internal/modules/tasks/port/in"
	tasksout "taskdeck/internal/modules/tasks/port/out"
	"taskdeck/internal/platform/clock"
	"taskdeck/internal/remote"
)

const msgNotAuthenticated = "Not authenticated"

type Interactor struct {
	svc      dispatcher
	gateway  tasksout.Gateway
	sessions tasksout.SessionReader
	clock    clock.Clock
	log      *zap.Logger
}

// dispatcher is the slice of TaskService this interactor needs.
type dispatcher interface {
	Dispatch(action domain.Action) domain.State
	Snapshot() domain.State
}

func NewInteractor(svc dispatcher, gateway tasksout.Gateway, sessions tasksout.SessionReader, clk clock.Clock, log *zap.Logger) *Interactor {
	return &Interactor{svc: svc, gateway: gateway, sessions: sessions, clock: clk, log: log}
}

var _ tasksin.Usecase = (*Interactor)(nil)

// FetchAll replaces the whole local collection with the server's. On failure
// the prior collection is left untouched and the error is surfaced.
func (i *Interactor) FetchAll(ctx context.Context) dto.StateOutput {
	if !i.sessions.Authenticated() {
		return i.fail(msgNotAuthenticated)
	}
	i.svc.Dispatch(domain.LoadingSet{Loading: true})
	result := i.gateway.List(ctx)
	i.svc.Dispatch(domain.LoadingSet{Loading: false})
	if !result.OK {
		return i.fail(result.Err)
	}
	tasks := make([]domain.Task, 0, len(result.Data))
	for _, task := range result.Data {
		tasks = append(tasks, fromRemote(task))
	}
	i.svc.Dispatch(domain.ErrorSet{})
	return toOutput(i.svc.Dispatch(domain.TasksReplaced{Tasks: tasks}))
}

// Add creates a task remotely and appends the server's row, id included, only
// after the server confirms it.
func (i *Interactor) Add(ctx context.Context, input dto.AddInput) dto.StateOutput {
	if !i.sessions.Authenticated() {
		return i.fail(msgNotAuthenticated)
	}
	title, err := domain.ValidateTitle(input.Title)
	if err != nil {
		return i.fail(err.Error())
	}
	if err := domain.ValidateDescription(input.Description); err != nil {
		return i.fail(err.Error())
	}
	description := input.Description
	i.svc.Dispatch(domain.LoadingSet{Loading: true})
	result := i.gateway.Create(ctx, title, description)
	i.svc.Dispatch(domain.LoadingSet{Loading: false})
	if !result.OK {
		return i.fail(result.Err)
	}
	i.svc.Dispatch(domain.ErrorSet{})
	return toOutput(i.svc.Dispatch(domain.TaskAppended{Task: fromRemote(result.Data)}))
}

// Update edits a task pessimistically and stamps the local row with the
// current time on success.
func (i *Interactor) Update(ctx context.Context, input dto.UpdateInput) dto.StateOutput {
	if !i.sessions.Authenticated() {
		return i.fail(msgNotAuthenticated)
	}
	if input.Title != nil {
		trimmed, err := domain.ValidateTitle(*input.Title)
		if err != nil {
			return i.fail(err.Error())
		}
		input.Title = &trimmed
	}
	if input.Description != nil {
		if err := domain.ValidateDescription(*input.Description); err != nil {
			return i.fail(err.Error())
		}
	}
	patch := remote.TaskPatch{
		Title:       input.Title,
		Description: input.Description,
		Completed:   input.Completed,
	}
	result := i.gateway.Update(ctx, input.ID, patch)
	if !result.OK {
		return i.fail(result.Err)
	}
	i.svc.Dispatch(domain.ErrorSet{})
	return toOutput(i.svc.Dispatch(domain.TaskUpdated{
		ID:          input.ID,
		Title:       input.Title,
		Description: input.Description,
		Completed:   input.Completed,
		UpdatedAt:   i.clock.Now(),
	}))
}

// ToggleComplete flips the completed flag locally first, then confirms with
// the server. On failure the flag is flipped back; the flip is its own
// inverse, and both flips no-op if the task vanished meanwhile, so the
// rollback can never corrupt state.
func (i *Interactor) ToggleComplete(ctx context.Context, id string) dto.StateOutput {
	if !i.sessions.Authenticated() {
		return i.fail(msgNotAuthenticated)
	}
	task, ok := i.svc.Snapshot().Find(id)
	if !ok {
		return toOutput(i.svc.Snapshot())
	}
	i.svc.Dispatch(domain.CompletionToggled{ID: id})
	completed := !task.Completed
	result := i.gateway.Update(ctx, id, remote.TaskPatch{Completed: &completed})
	if !result.OK {
		i.svc.Dispatch(domain.CompletionToggled{ID: id})
		return i.fail(result.Err)
	}
	i.svc.Dispatch(domain.ErrorSet{})
	return toOutput(i.svc.Dispatch(domain.TaskUpdated{ID: id, UpdatedAt: i.clock.Now()}))
}

// Delete removes a task remotely, then locally. Removing an id the server no
// longer knows surfaces the server's error and leaves the list unchanged.
func (i *Interactor) Delete(ctx context.Context, id string) dto.StateOutput {
	if !i.sessions.Authenticated() {
		return i.fail(msgNotAuthenticated)
	}
	result := i.gateway.Delete(ctx, id)
	if !result.OK {
		return i.fail(result.Err)
	}
	i.svc.Dispatch(domain.ErrorSet{})
	return toOutput(i.svc.Dispatch(domain.TaskRemoved{ID: id}))
}

func (i *Interactor) SetFilter(_ context.Context, filter string) dto.StateOutput {
	parsed := domain.Filter(filter)
	if err := parsed.Validate(); err != nil {
		return i.fail(err.Error())
	}
	return toOutput(i.svc.Dispatch(domain.FilterChanged{Filter: parsed}))
}

func (i *Interactor) OpenModal(_ context.Context, mode, taskID string) dto.StateOutput {
	parsed := domain.ModalMode(mode)
	if parsed != domain.ModalAdd && parsed != domain.ModalEdit {
		parsed = domain.ModalAdd
	}
	if parsed == domain.ModalAdd {
		taskID = ""
	}
	return toOutput(i.svc.Dispatch(domain.ModalOpened{Mode: parsed, TaskID: taskID}))
}

func (i *Interactor) CloseModal(_ context.Context) dto.StateOutput {
	return toOutput(i.svc.Dispatch(domain.ModalClosed{}))
}

func (i *Interactor) State(_ context.Context) dto.StateOutput {
	return toOutput(i.svc.Snapshot())
}

func (i *Interactor) ClearError(_ context.Context) dto.StateOutput {
	return toOutput(i.svc.Dispatch(domain.ErrorSet{}))
}

// SessionEnded drops the cached collection when the user logs out. The next
// authenticated fetch starts from empty.
func (i *Interactor) SessionEnded(_ context.Context) {
	i.svc.Dispatch(domain.TasksReplaced{})
	i.svc.Dispatch(domain.ErrorSet{})
	i.log.Debug("task cache cleared on session end")
}

func (i *Interactor) fail(msg string) dto.StateOutput {
	return toOutput(i.svc.Dispatch(domain.ErrorSet{Message: msg}))
}

func fromRemote(task remote.Task) domain.Task {
	return domain.Task{
		ID:          task.ID,
		Title:       task.Title,
		Description: task.Description,
		Completed:   task.Completed,
		CreatedAt:   task.CreatedAt,
		UpdatedAt:   task.UpdatedAt,
	}
}

func toOutput(state domain.State) dto.StateOutput {
	all, active, completed := state.Counts()
	filter := state.ActiveFilter
	if filter == "" {
		filter = domain.FilterAll
	}
	visible := state.Filtered()
	tasks := make([]dto.TaskOutput, 0, len(visible))
	for _, task := range visible {
		tasks = append(tasks, dto.TaskOutput{
			ID:          task.ID,
			Title:       task.Title,
			Description: task.Description,
			Completed:   task.Completed,
			CreatedAt:   task.CreatedAt,
			UpdatedAt:   task.UpdatedAt,
		})
	}
	return dto.StateOutput{
		Tasks:          tasks,
		ActiveFilter:   string(filter),
		TotalCount:     all,
		ActiveCount:    active,
		CompletedCount: completed,
		ModalOpen:      state.ModalOpen,
		ModalMode:      string(state.ModalMode),
		EditingTaskID:  state.EditingTaskID,
		Loading:        state.Loading,
		Error:          state.Err,
	}
}
