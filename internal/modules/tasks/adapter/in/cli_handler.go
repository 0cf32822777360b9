package in

import (
	"context"
	"errors"

	"taskdeck/internal/modules/tasks/dto"
	tasksin "taskdeck/internal/modules/tasks/port/in"
)

type CLIHandler struct {
	usecase tasksin.Usecase
}

func NewCLIHandler(usecase tasksin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) List(ctx context.Context, filter string) (dto.StateOutput, error) {
	if filter != "" {
		if out := h.usecase.SetFilter(ctx, filter); out.Error != "" {
			return out, errors.New(out.Error)
		}
	}
	out := h.usecase.FetchAll(ctx)
	return out, errorFrom(out)
}

func (h CLIHandler) Add(ctx context.Context, title, description string) (dto.StateOutput, error) {
	out := h.usecase.Add(ctx, dto.AddInput{Title: title, Description: description})
	return out, errorFrom(out)
}

func (h CLIHandler) Update(ctx context.Context, input dto.UpdateInput) (dto.StateOutput, error) {
	out := h.usecase.Update(ctx, input)
	return out, errorFrom(out)
}

func (h CLIHandler) Toggle(ctx context.Context, id string) (dto.StateOutput, error) {
	out := h.usecase.ToggleComplete(ctx, id)
	return out, errorFrom(out)
}

func (h CLIHandler) Delete(ctx context.Context, id string) (dto.StateOutput, error) {
	out := h.usecase.Delete(ctx, id)
	return out, errorFrom(out)
}

func errorFrom(out dto.StateOutput) error {
	if out.Error != "" {
		return errors.New(out.Error)
	}
	return nil
}
