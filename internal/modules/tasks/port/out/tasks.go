package out

import (
	"context"

	"taskdeck/internal/remote"
)

// Gateway is the remote surface the task engine syncs against.
type Gateway interface {
	List(ctx context.Context) remote.Result[[]remote.Task]
	Create(ctx context.Context, title, description string) remote.Result[remote.Task]
	Update(ctx context.Context, id string, patch remote.TaskPatch) remote.Result[remote.Task]
	Delete(ctx context.Context, id string) remote.Result[struct{}]
}

// SessionReader answers whether a live session is held. Mutations are gated
// on it before any network call.
type SessionReader interface {
	Authenticated() bool
}
