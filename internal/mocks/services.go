package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/dtroode/lostfound/internal/model"
)

// AuthService is a mock of the authentication service used by gRPC handlers.
type AuthService struct {
	mock.Mock
}

func (_m *AuthService) Register(ctx context.Context, params model.RegisterParams) (model.User, error) {
	ret := _m.Called(ctx, params)
	return ret.Get(0).(model.User), ret.Error(1)
}

func (_m *AuthService) Login(ctx context.Context, email, password string) (model.TokenPair, error) {
	ret := _m.Called(ctx, email, password)
	return ret.Get(0).(model.TokenPair), ret.Error(1)
}

func (_m *AuthService) Refresh(ctx context.Context, refreshToken string) (model.TokenPair, error) {
	ret := _m.Called(ctx, refreshToken)
	return ret.Get(0).(model.TokenPair), ret.Error(1)
}

func (_m *AuthService) Logout(ctx context.Context, refreshToken string) error {
	ret := _m.Called(ctx, refreshToken)
	return ret.Error(0)
}

// NewAuthService creates a new instance of AuthService. It also registers a
// cleanup function to assert the mocks expectations.
func NewAuthService(t interface {
	mock.TestingT
	Cleanup(func())
}) *AuthService {
	m := &AuthService{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

// AccountService is a mock of the account service used by gRPC handlers.
type AccountService struct {
	mock.Mock
}

func (_m *AccountService) GetMe(ctx context.Context, userID uuid.UUID) (model.User, error) {
	ret := _m.Called(ctx, userID)
	return ret.Get(0).(model.User), ret.Error(1)
}

func (_m *AccountService) UploadAvatar(ctx context.Context, userID uuid.UUID, data []byte, declaredType string) (string, error) {
	ret := _m.Called(ctx, userID, data, declaredType)
	return ret.String(0), ret.Error(1)
}

func (_m *AccountService) UpdateMe(ctx context.Context, userID uuid.UUID, update model.UserUpdate) (model.User, error) {
	ret := _m.Called(ctx, userID, update)
	return ret.Get(0).(model.User), ret.Error(1)
}

func (_m *AccountService) DeleteMe(ctx context.Context, userID uuid.UUID) error {
	ret := _m.Called(ctx, userID)
	return ret.Error(0)
}

// NewAccountService creates a new instance of AccountService. It also
// registers a cleanup function to assert the mocks expectations.
func NewAccountService(t interface {
	mock.TestingT
	Cleanup(func())
}) *AccountService {
	m := &AccountService{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

// ItemService is a mock of the item service used by gRPC handlers.
type ItemService struct {
	mock.Mock
}

func (_m *ItemService) ListMine(ctx context.Context, userID uuid.UUID) ([]model.Item, error) {
	ret := _m.Called(ctx, userID)
	var items []model.Item
	if v := ret.Get(0); v != nil {
		items = v.([]model.Item)
	}
	return items, ret.Error(1)
}

func (_m *ItemService) Create(ctx context.Context, params model.CreateItemParams) (model.Item, error) {
	ret := _m.Called(ctx, params)
	return ret.Get(0).(model.Item), ret.Error(1)
}

func (_m *ItemService) Delete(ctx context.Context, userID, itemID uuid.UUID) error {
	ret := _m.Called(ctx, userID, itemID)
	return ret.Error(0)
}

// NewItemService creates a new instance of ItemService. It also registers a
// cleanup function to assert the mocks expectations.
func NewItemService(t interface {
	mock.TestingT
	Cleanup(func())
}) *ItemService {
	m := &ItemService{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

// NotificationService is a mock of the notification service used by gRPC handlers.
type NotificationService struct {
	mock.Mock
}

func (_m *NotificationService) Match(ctx context.Context, userID uuid.UUID, itemIDs []uuid.UUID) (int, error) {
	ret := _m.Called(ctx, userID, itemIDs)
	return ret.Int(0), ret.Error(1)
}

func (_m *NotificationService) List(ctx context.Context, userID uuid.UUID) ([]model.MatchNotification, error) {
	ret := _m.Called(ctx, userID)
	var out []model.MatchNotification
	if v := ret.Get(0); v != nil {
		out = v.([]model.MatchNotification)
	}
	return out, ret.Error(1)
}

// NewNotificationService creates a new instance of NotificationService. It
// also registers a cleanup function to assert the mocks expectations.
func NewNotificationService(t interface {
	mock.TestingT
	Cleanup(func())
}) *NotificationService {
	m := &NotificationService{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}
