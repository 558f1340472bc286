package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	servermocks "github.com/dtroode/lostfound/internal/mocks"
	"github.com/dtroode/lostfound/internal/model"
	"github.com/dtroode/lostfound/internal/testutil"
)

func TestNotification_Match(t *testing.T) {
	ctx := context.Background()
	me := uuid.New()
	other := uuid.New()

	lost := model.Item{ID: uuid.New(), OwnerID: me, Type: model.ItemTypeLost, Name: "Wallet", Category: "accessories"}
	foreign := model.Item{ID: uuid.New(), OwnerID: other, Type: model.ItemTypeLost, Name: "Umbrella", Category: "misc"}
	found := model.Item{ID: uuid.New(), OwnerID: other, Type: model.ItemTypeFound, Name: "Brown wallet", Category: "accessories"}

	items := servermocks.NewItemStore(t)
	notes := servermocks.NewNotificationStore(t)

	items.On("GetByIDs", ctx, []uuid.UUID{lost.ID, foreign.ID}).Return([]model.Item{lost, foreign}, nil).Once()
	items.On("FindCandidates", ctx, model.ItemTypeFound, "accessories", me).Return([]model.Item{found}, nil).Once()

	var saved []model.MatchNotification
	notes.On("Save", ctx, mock.Anything).
		Run(func(args mock.Arguments) { saved = args.Get(1).([]model.MatchNotification) }).
		Return(2, nil).Once()

	n, err := NewNotification(items, notes, testutil.MakeNoopLogger()).Match(ctx, me, []uuid.UUID{lost.ID, foreign.ID})
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	require.Len(t, saved, 2)
	assert.Equal(t, me, saved[0].UserID)
	assert.Equal(t, lost.ID, saved[0].ItemID)
	assert.Equal(t, found.ID, saved[0].MatchedItemID)
	assert.Equal(t, other, saved[1].UserID)
	assert.Equal(t, found.ID, saved[1].ItemID)
	assert.Equal(t, lost.ID, saved[1].MatchedItemID)
}

func TestNotification_Match_NoCandidates(t *testing.T) {
	ctx := context.Background()
	me := uuid.New()
	found := model.Item{ID: uuid.New(), OwnerID: me, Type: model.ItemTypeFound, Category: "keys"}

	items := servermocks.NewItemStore(t)
	notes := servermocks.NewNotificationStore(t)

	items.On("GetByIDs", ctx, []uuid.UUID{found.ID}).Return([]model.Item{found}, nil).Once()
	items.On("FindCandidates", ctx, model.ItemTypeLost, "keys", me).Return(nil, nil).Once()

	n, err := NewNotification(items, notes, testutil.MakeNoopLogger()).Match(ctx, me, []uuid.UUID{found.ID})
	require.NoError(t, err)
	assert.Zero(t, n)
	notes.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestNotification_Match_Empty(t *testing.T) {
	items := servermocks.NewItemStore(t)
	notes := servermocks.NewNotificationStore(t)

	n, err := NewNotification(items, notes, testutil.MakeNoopLogger()).Match(context.Background(), uuid.New(), nil)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestNotification_List(t *testing.T) {
	ctx := context.Background()
	me := uuid.New()
	notes := servermocks.NewNotificationStore(t)
	want := []model.MatchNotification{{ID: uuid.New(), UserID: me}}

	notes.On("ListByUser", ctx, me).Return(want, nil).Once()

	got, err := NewNotification(servermocks.NewItemStore(t), notes, testutil.MakeNoopLogger()).List(ctx, me)
	require.NoError(t, err)
	assert.Equal(t, want, got)

	notes.On("ListByUser", ctx, me).Return(nil, assert.AnError).Once()
	_, err = NewNotification(servermocks.NewItemStore(t), notes, testutil.MakeNoopLogger()).List(ctx, me)
	require.ErrorIs(t, err, assert.AnError)
}
