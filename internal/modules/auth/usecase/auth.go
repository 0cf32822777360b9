package usecase

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"taskdeck/internal/modules/auth/domain"
	"taskdeck/internal/modules/auth/dto"
	authin "taskdeck/internal/modules/auth/port/in"
	authout "taskdeck/internal/modules/auth/port/out"
	"taskdeck/internal/platform/clock"
	"taskdeck/internal/remote"
)

type Interactor struct {
	svc       dispatcher
	gateway   authout.Gateway
	records   authout.SessionRecordStore
	clock     clock.Clock
	log       *zap.Logger
	listeners []authout.SessionEndedListener
}

// dispatcher is the slice of AuthService this interactor needs.
type dispatcher interface {
	Dispatch(event domain.Event) domain.Session
	Snapshot() domain.Session
}

func NewInteractor(svc dispatcher, gateway authout.Gateway, records authout.SessionRecordStore, clk clock.Clock, log *zap.Logger) *Interactor {
	return &Interactor{svc: svc, gateway: gateway, records: records, clock: clk, log: log}
}

var _ authin.Usecase = (*Interactor)(nil)

// AddSessionEndedListener registers a cache to clear when the session leaves
// the authenticated state. Not safe for concurrent use; call during wiring.
func (i *Interactor) AddSessionEndedListener(listener authout.SessionEndedListener) {
	i.listeners = append(i.listeners, listener)
}

func (i *Interactor) Login(ctx context.Context, input dto.LoginInput) dto.SessionOutput {
	if strings.TrimSpace(input.Email) == "" || input.Password == "" {
		return toOutput(i.svc.Dispatch(domain.AuthFailed{Message: "email and password are required"}))
	}
	i.svc.Dispatch(domain.AuthStarted{})
	result := i.gateway.Login(ctx, input.Email, input.Password)
	return i.applyAuthResult(ctx, result)
}

func (i *Interactor) Register(ctx context.Context, input dto.RegisterInput) dto.SessionOutput {
	if strings.TrimSpace(input.Email) == "" || input.Password == "" {
		return toOutput(i.svc.Dispatch(domain.AuthFailed{Message: "email and password are required"}))
	}
	// Display name defaults to the local part of the email address.
	name := strings.SplitN(input.Email, "@", 2)[0]
	i.svc.Dispatch(domain.AuthStarted{})
	result := i.gateway.Register(ctx, input.Email, input.Password, name)
	return i.applyAuthResult(ctx, result)
}

func (i *Interactor) applyAuthResult(ctx context.Context, result remote.Result[remote.Credentials]) dto.SessionOutput {
	if !result.OK {
		return toOutput(i.svc.Dispatch(domain.AuthFailed{Message: result.Err}))
	}
	user := domain.User{
		ID:        result.Data.User.ID,
		Email:     result.Data.User.Email,
		Name:      result.Data.User.Name,
		CreatedAt: result.Data.User.CreatedAt,
	}
	state := i.svc.Dispatch(domain.AuthSucceeded{User: user, Token: result.Data.Token})
	if err := i.records.Save(ctx, domain.Record{User: user, Token: result.Data.Token}); err != nil {
		// In-memory state stays correct; persistence is best effort.
		i.log.Debug("persist session failed", zap.Error(err))
	}
	return toOutput(state)
}

// Logout clears the session. Calling it when already logged out is a no-op
// that yields the same empty session.
func (i *Interactor) Logout(ctx context.Context) dto.SessionOutput {
	wasAuthenticated := i.svc.Snapshot().Authenticated()
	state := i.svc.Dispatch(domain.LoggedOut{})
	if err := i.records.Clear(ctx); err != nil {
		i.log.Debug("clear persisted session failed", zap.Error(err))
	}
	if wasAuthenticated {
		i.notifySessionEnded(ctx)
	}
	return toOutput(state)
}

// Restore runs once at startup. An absent record leaves the session empty; an
// expired or malformed token discards the record silently.
func (i *Interactor) Restore(ctx context.Context) dto.SessionOutput {
	record, found, err := i.records.Load(ctx)
	if err != nil {
		i.log.Debug("load persisted session failed", zap.Error(err))
		return toOutput(i.svc.Snapshot())
	}
	if !found {
		return toOutput(i.svc.Snapshot())
	}
	if domain.Expired(record.Token, i.clock.Now()) {
		if err := i.records.Clear(ctx); err != nil {
			i.log.Debug("clear expired session failed", zap.Error(err))
		}
		return toOutput(i.svc.Snapshot())
	}
	state := i.svc.Dispatch(domain.SessionRestored{User: record.User, Token: record.Token})
	return toOutput(state)
}

func (i *Interactor) Current(_ context.Context) dto.SessionOutput {
	return toOutput(i.svc.Snapshot())
}

func (i *Interactor) ClearError(_ context.Context) dto.SessionOutput {
	return toOutput(i.svc.Dispatch(domain.ErrorCleared{}))
}

func (i *Interactor) notifySessionEnded(ctx context.Context) {
	for _, listener := range i.listeners {
		listener.SessionEnded(ctx)
	}
}

func toOutput(state domain.Session) dto.SessionOutput {
	out := dto.SessionOutput{
		Authenticated: state.Authenticated(),
		Loading:       state.Loading,
		Error:         state.Err,
	}
	if state.User != nil {
		out.UserID = state.User.ID
		out.Email = state.User.Email
		out.Name = state.User.Name
		out.CreatedAt = state.User.CreatedAt
	}
	return out
}
