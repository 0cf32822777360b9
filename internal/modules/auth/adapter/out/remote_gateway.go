package out

import (
	"context"

	authout "taskdeck/internal/modules/auth/port/out"
	"taskdeck/internal/remote"
)

type RemoteGateway struct {
	client *remote.Client
}

func NewRemoteGateway(client *remote.Client) authout.Gateway {
	return &RemoteGateway{client: client}
}

func (g *RemoteGateway) Login(ctx context.Context, email, password string) remote.Result[remote.Credentials] {
	return g.client.Login(ctx, email, password)
}

func (g *RemoteGateway) Register(ctx context.Context, email, password, name string) remote.Result[remote.Credentials] {
	return g.client.Register(ctx, email, password, name)
}
