package profile

import "context"

// Locations the controller navigates to.
const (
	EntryPath = "/"
	LoginPath = "/login"
)

// AuthenticationProvider exposes the session owned by the authentication layer.
type AuthenticationProvider interface {
	CurrentUser() (Account, bool)
	IsAuthenticated() bool
	IsLoading() bool
	Refresh(ctx context.Context) error
}

// UserAccountService performs account operations on the backend.
type UserAccountService interface {
	UploadAvatar(ctx context.Context, file File) (string, error)
	UpdateUser(ctx context.Context, id string, update UserUpdate) (Account, error)
	DeleteUser(ctx context.Context, id string) error
	Logout(ctx context.Context) error
}

// ItemService reads and deletes the account's items.
type ItemService interface {
	FetchItemsForUser(ctx context.Context, userID string) ([]Item, error)
	DeleteItem(ctx context.Context, id string) error
}

// NotificationService is told whenever the item list changes. Its result is not used.
type NotificationService interface {
	FetchMatchNotifications(ctx context.Context, items []Item) error
}

// ConfirmationPrompt asks the user a yes/no question.
type ConfirmationPrompt interface {
	Ask(message string) bool
}

// Navigator moves between screens.
type Navigator interface {
	GoBack()
	GoTo(path string)
	ReplaceLocation(path string)
}

// PreviewStore creates and releases transient preview handles for local files.
type PreviewStore interface {
	Create(file File) (string, error)
	Release(handle string)
}
