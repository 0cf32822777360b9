package in

import (
	"context"
	"errors"

	"taskdeck/internal/modules/auth/dto"
	authin "taskdeck/internal/modules/auth/port/in"
)

type CLIHandler struct {
	usecase authin.Usecase
}

func NewCLIHandler(usecase authin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Login(ctx context.Context, email, password string) (dto.SessionOutput, error) {
	out := h.usecase.Login(ctx, dto.LoginInput{Email: email, Password: password})
	return out, errorFrom(out)
}

func (h CLIHandler) Register(ctx context.Context, email, password string) (dto.SessionOutput, error) {
	out := h.usecase.Register(ctx, dto.RegisterInput{Email: email, Password: password})
	return out, errorFrom(out)
}

func (h CLIHandler) Logout(ctx context.Context) dto.SessionOutput {
	return h.usecase.Logout(ctx)
}

func (h CLIHandler) Restore(ctx context.Context) dto.SessionOutput {
	return h.usecase.Restore(ctx)
}

func (h CLIHandler) Current(ctx context.Context) dto.SessionOutput {
	return h.usecase.Current(ctx)
}

func errorFrom(out dto.SessionOutput) error {
	if out.Error != "" {
		return errors.New(out.Error)
	}
	return nil
}
