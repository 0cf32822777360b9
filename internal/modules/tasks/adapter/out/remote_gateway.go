package out

import (
	"context"

	tasksout "taskdeck/internal/modules/tasks/port/out"
	"taskdeck/internal/remote"
)

type RemoteGateway struct {
	client *remote.Client
}

func NewRemoteGateway(client *remote.Client) tasksout.Gateway {
	return &RemoteGateway{client: client}
}

func (g *RemoteGateway) List(ctx context.Context) remote.Result[[]remote.Task] {
	return g.client.ListTasks(ctx)
}

func (g *RemoteGateway) Create(ctx context.Context, title, description string) remote.Result[remote.Task] {
	return g.client.CreateTask(ctx, title, description)
}

func (g *RemoteGateway) Update(ctx context.Context, id string, patch remote.TaskPatch) remote.Result[remote.Task] {
	return g.client.UpdateTask(ctx, id, patch)
}

func (g *RemoteGateway) Delete(ctx context.Context, id string) remote.Result[struct{}] {
	return g.client.DeleteTask(ctx, id)
}
