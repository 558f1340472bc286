package client

import (
	"context"
	"fmt"

	"google.golang.org/grpc"

	"github.com/dtroode/lostfound/internal/api/grpc/rpc"
	"github.com/dtroode/lostfound/internal/profile"
)

// Items talks to the Items service.
type Items struct {
	client *rpc.ItemsClient
}

var _ profile.ItemService = (*Items)(nil)

func NewItems(conn grpc.ClientConnInterface) *Items {
	return &Items{client: rpc.NewItemsClient(conn)}
}

// FetchItemsForUser returns the items of the signed in user. The server
// resolves the owner from the access token, so userID is only checked for
// presence.
func (i *Items) FetchItemsForUser(ctx context.Context, userID string) ([]profile.Item, error) {
	if userID == "" {
		return nil, ErrNoSession
	}

	resp, err := i.client.ListMine(ctx)
	if err != nil {
		return nil, fromStatus(err)
	}

	items := make([]profile.Item, 0, len(resp.Items))
	for _, it := range resp.Items {
		items = append(items, toItem(it))
	}
	return items, nil
}

func (i *Items) DeleteItem(ctx context.Context, id string) error {
	if err := i.client.Delete(ctx, &rpc.ItemRequest{ID: id}); err != nil {
		return fromStatus(err)
	}
	return nil
}

// NewItem describes an item to post.
type NewItem struct {
	Type        profile.ItemType
	Name        string
	Description string
	Category    string
	Location    profile.Location
	Date        string
	ImgURL      string
}

// CreateItem posts an item owned by the signed in user.
func (i *Items) CreateItem(ctx context.Context, item NewItem) (profile.Item, error) {
	req := &rpc.CreateItemRequest{
		ItemType:    string(item.Type),
		Name:        item.Name,
		Description: item.Description,
		Category:    item.Category,
		Date:        item.Date,
		ImgURL:      item.ImgURL,
	}
	if lat, lng, ok := item.Location.Coordinates(); ok {
		req.Location = rpc.Location{Lat: &lat, Lng: &lng}
	} else {
		text, _ := item.Location.Text()
		req.Location = rpc.Location{Text: text}
	}

	created, err := i.client.Create(ctx, req)
	if err != nil {
		return profile.Item{}, fmt.Errorf("failed to create item: %w", fromStatus(err))
	}
	return toItem(*created), nil
}

func toItem(it rpc.Item) profile.Item {
	loc := profile.TextLocation(it.Location.Text)
	if it.Location.HasCoordinates() {
		loc = profile.CoordinatesLocation(*it.Location.Lat, *it.Location.Lng)
	}
	return profile.Item{
		ID:          it.ID,
		Owner:       profile.Ref(it.Owner),
		UserID:      profile.Ref(it.UserID),
		ItemType:    it.ItemType,
		Name:        it.Name,
		Description: it.Description,
		Category:    it.Category,
		Location:    loc,
		Date:        it.Date,
		ImgURL:      it.ImgURL,
	}
}
