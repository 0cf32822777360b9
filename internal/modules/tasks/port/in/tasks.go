package in

import (
	"context"

	"taskdeck/internal/modules/tasks/dto"
)

// Usecase is the task engine's inbound port. Every operation returns the
// post-operation snapshot; failures surface in the snapshot's Error field
// instead of a Go error, so callers always have a coherent state to render.
type Usecase interface {
	FetchAll(ctx context.Context) dto.StateOutput
	Add(ctx context.Context, input dto.AddInput) dto.StateOutput
	Update(ctx context.Context, input dto.UpdateInput) dto.StateOutput
	ToggleComplete(ctx context.Context, id string) dto.StateOutput
	Delete(ctx context.Context, id string) dto.StateOutput
	SetFilter(ctx context.Context, filter string) dto.StateOutput
	OpenModal(ctx context.Context, mode, taskID string) dto.StateOutput
	CloseModal(ctx context.Context) dto.StateOutput
	State(ctx context.Context) dto.StateOutput
	ClearError(ctx context.Context) dto.StateOutput
}
