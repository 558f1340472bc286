package handler

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"

	grpcctx "github.com/dtroode/lostfound/internal/api/grpc/context"
	"github.com/dtroode/lostfound/internal/api/grpc/rpc"
	"github.com/dtroode/lostfound/internal/mocks"
	"github.com/dtroode/lostfound/internal/model"
	"github.com/dtroode/lostfound/internal/testutil"
)

func TestItems_ListMine(t *testing.T) {
	t.Parallel()

	uid := uuid.New()
	lat, lng := 52.52, 13.405
	lostAt := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	items := []model.Item{
		{ID: uuid.New(), OwnerID: uid, Type: model.ItemTypeLost, Name: "Wallet", Category: "Accessories",
			Location: model.Location{Lat: &lat, Lng: &lng}, LostAt: &lostAt},
		{ID: uuid.New(), LegacyUserID: "LEGACY-1", Type: model.ItemTypeFound, Name: "Keys", Category: "Keys",
			Location: model.Location{Text: "Park"}},
	}

	svc := mocks.NewItemService(t)
	svc.On("ListMine", mock.Anything, uid).Return(items, nil)

	h := NewItems(svc, grpcctx.NewManager(), testutil.MakeNoopLogger())
	out, err := h.ListMine(authed(uid), &emptypb.Empty{})
	require.NoError(t, err)
	require.Len(t, out.Items, 2)

	assert.Equal(t, uid.String(), out.Items[0].Owner)
	assert.Equal(t, "lost", out.Items[0].ItemType)
	assert.True(t, out.Items[0].Location.HasCoordinates())
	assert.Equal(t, "2024-05-01T10:00:00Z", out.Items[0].Date)

	assert.Empty(t, out.Items[1].Owner)
	assert.Equal(t, "LEGACY-1", out.Items[1].UserID)
	assert.Equal(t, "Park", out.Items[1].Location.Text)
	assert.Empty(t, out.Items[1].Date)
}

func TestItems_Create(t *testing.T) {
	t.Parallel()

	uid := uuid.New()
	svc := mocks.NewItemService(t)
	svc.On("Create", mock.Anything, mock.MatchedBy(func(p model.CreateItemParams) bool {
		return p.OwnerID == uid && p.Type == model.ItemTypeFound && p.Location.Text == "Station" &&
			p.LostAt != nil && p.LostAt.Day() == 3
	})).Return(model.Item{ID: uuid.New(), OwnerID: uid, Type: model.ItemTypeFound, Name: "Umbrella"}, nil)

	h := NewItems(svc, grpcctx.NewManager(), testutil.MakeNoopLogger())
	out, err := h.Create(authed(uid), &rpc.CreateItemRequest{
		ItemType: "Found", Name: "Umbrella", Category: "Other",
		Location: rpc.Location{Text: "Station"}, Date: "2024-06-03",
	})
	require.NoError(t, err)
	assert.Equal(t, "Umbrella", out.Name)
}

func TestItems_Create_InvalidInput(t *testing.T) {
	t.Parallel()

	uid := uuid.New()
	h := NewItems(mocks.NewItemService(t), grpcctx.NewManager(), testutil.MakeNoopLogger())

	_, err := h.Create(authed(uid), &rpc.CreateItemRequest{ItemType: "stolen"})
	assert.Equal(t, codes.InvalidArgument, status.Code(err))

	_, err = h.Create(authed(uid), &rpc.CreateItemRequest{ItemType: "lost", Date: "yesterday"})
	assert.Equal(t, codes.InvalidArgument, status.Code(err))
}

func TestItems_Delete(t *testing.T) {
	t.Parallel()

	uid := uuid.New()
	mine, foreign := uuid.New(), uuid.New()
	svc := mocks.NewItemService(t)
	svc.On("Delete", mock.Anything, uid, mine).Return(nil)
	svc.On("Delete", mock.Anything, uid, foreign).Return(model.ErrNotFound)

	h := NewItems(svc, grpcctx.NewManager(), testutil.MakeNoopLogger())

	_, err := h.Delete(authed(uid), &rpc.ItemRequest{ID: mine.String()})
	assert.NoError(t, err)

	_, err = h.Delete(authed(uid), &rpc.ItemRequest{ID: foreign.String()})
	assert.Equal(t, codes.NotFound, status.Code(err))

	_, err = h.Delete(authed(uid), &rpc.ItemRequest{ID: "nope"})
	assert.Equal(t, codes.InvalidArgument, status.Code(err))

	_, err = h.Delete(context.Background(), &rpc.ItemRequest{ID: mine.String()})
	assert.Equal(t, codes.Unauthenticated, status.Code(err))
}
