package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/dtroode/lostfound/internal/model"
)

// ItemStore is a mock type for the model.ItemStore type.
type ItemStore struct {
	mock.Mock
}

var _ model.ItemStore = (*ItemStore)(nil)

func (_m *ItemStore) Create(ctx context.Context, item model.Item) (model.Item, error) {
	ret := _m.Called(ctx, item)
	return ret.Get(0).(model.Item), ret.Error(1)
}

func (_m *ItemStore) GetByID(ctx context.Context, id uuid.UUID) (model.Item, error) {
	ret := _m.Called(ctx, id)
	return ret.Get(0).(model.Item), ret.Error(1)
}

func (_m *ItemStore) GetByOwner(ctx context.Context, ownerID uuid.UUID) ([]model.Item, error) {
	ret := _m.Called(ctx, ownerID)
	return items(ret, 0), ret.Error(1)
}

func (_m *ItemStore) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]model.Item, error) {
	ret := _m.Called(ctx, ids)
	return items(ret, 0), ret.Error(1)
}

func (_m *ItemStore) FindCandidates(ctx context.Context, itemType model.ItemType, category string, excludeOwner uuid.UUID) ([]model.Item, error) {
	ret := _m.Called(ctx, itemType, category, excludeOwner)
	return items(ret, 0), ret.Error(1)
}

func (_m *ItemStore) SoftDelete(ctx context.Context, id uuid.UUID) error {
	ret := _m.Called(ctx, id)
	return ret.Error(0)
}

func (_m *ItemStore) SoftDeleteByOwner(ctx context.Context, ownerID uuid.UUID) (int, error) {
	ret := _m.Called(ctx, ownerID)
	return ret.Int(0), ret.Error(1)
}

func items(ret mock.Arguments, i int) []model.Item {
	if v, ok := ret.Get(i).([]model.Item); ok {
		return v
	}
	return nil
}

// NewItemStore creates a new instance of ItemStore. It also registers a cleanup
// function to assert the mocks expectations.
func NewItemStore(t interface {
	mock.TestingT
	Cleanup(func())
}) *ItemStore {
	m := &ItemStore{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

// NotificationStore is a mock type for the model.NotificationStore type.
type NotificationStore struct {
	mock.Mock
}

var _ model.NotificationStore = (*NotificationStore)(nil)

func (_m *NotificationStore) Save(ctx context.Context, notifications []model.MatchNotification) (int, error) {
	ret := _m.Called(ctx, notifications)
	return ret.Int(0), ret.Error(1)
}

func (_m *NotificationStore) ListByUser(ctx context.Context, userID uuid.UUID) ([]model.MatchNotification, error) {
	ret := _m.Called(ctx, userID)
	v, _ := ret.Get(0).([]model.MatchNotification)
	return v, ret.Error(1)
}

// NewNotificationStore creates a new instance of NotificationStore. It also
// registers a cleanup function to assert the mocks expectations.
func NewNotificationStore(t interface {
	mock.TestingT
	Cleanup(func())
}) *NotificationStore {
	m := &NotificationStore{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}
