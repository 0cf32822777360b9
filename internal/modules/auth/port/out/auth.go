package out

import (
	"context"

	"taskdeck/internal/modules/auth/domain"
	"taskdeck/internal/remote"
)

type Gateway interface {
	Login(ctx context.Context, email, password string) remote.Result[remote.Credentials]
	Register(ctx context.Context, email, password, name string) remote.Result[remote.Credentials]
}

// SessionRecordStore persists the session record across restarts. Write and
// delete failures are swallowed by callers; the in-memory session stays
// authoritative for the running process.
type SessionRecordStore interface {
	Save(ctx context.Context, record domain.Record) error
	Load(ctx context.Context) (domain.Record, bool, error)
	Clear(ctx context.Context) error
}

// SessionEndedListener is notified whenever the session leaves the
// authenticated state, via logout or detected expiry. Dependent caches
// (tasks, conversation) register themselves to be cleared.
type SessionEndedListener interface {
	SessionEnded(ctx context.Context)
}
