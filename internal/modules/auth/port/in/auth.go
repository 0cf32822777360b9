package in

import (
	"context"

	"taskdeck/internal/modules/auth/dto"
)

// Usecase operations never fail with a Go error: every outcome, including a
// rejected login, lands in the returned session snapshot.
type Usecase interface {
	Login(ctx context.Context, input dto.LoginInput) dto.SessionOutput
	Register(ctx context.Context, input dto.RegisterInput) dto.SessionOutput
	Logout(ctx context.Context) dto.SessionOutput
	Restore(ctx context.Context) dto.SessionOutput
	Current(ctx context.Context) dto.SessionOutput
	ClearError(ctx context.Context) dto.SessionOutput
}
