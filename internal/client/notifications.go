package client

import (
	"context"

	"google.golang.org/grpc"

	"github.com/dtroode/lostfound/internal/api/grpc/rpc"
	"github.com/dtroode/lostfound/internal/profile"
)

// Notifications talks to the Notifications service.
type Notifications struct {
	client *rpc.NotificationsClient
}

var _ profile.NotificationService = (*Notifications)(nil)

func NewNotifications(conn grpc.ClientConnInterface) *Notifications {
	return &Notifications{client: rpc.NewNotificationsClient(conn)}
}

// FetchMatchNotifications asks the server to match items against the other
// users' posts.
func (n *Notifications) FetchMatchNotifications(ctx context.Context, items []profile.Item) error {
	ids := make([]string, 0, len(items))
	for _, item := range items {
		if item.ID != "" {
			ids = append(ids, item.ID)
		}
	}
	if len(ids) == 0 {
		return nil
	}

	if _, err := n.client.Match(ctx, &rpc.MatchRequest{ItemIDs: ids}); err != nil {
		return fromStatus(err)
	}
	return nil
}

// Notification is a match shown to the user.
type Notification = rpc.Notification

// List returns the user's notifications, newest first.
func (n *Notifications) List(ctx context.Context) ([]Notification, error) {
	resp, err := n.client.List(ctx)
	if err != nil {
		return nil, fromStatus(err)
	}
	return resp.Notifications, nil
}
