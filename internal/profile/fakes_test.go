package profile

import (
	"context"
	"fmt"
	"sync"

	"github.com/stretchr/testify/mock"
)

// countingPreviews hands out numbered handles and records releases.
type countingPreviews struct {
	created  []string
	released []string
	live     map[string]bool
	err      error
}

func newCountingPreviews() *countingPreviews {
	return &countingPreviews{live: map[string]bool{}}
}

func (p *countingPreviews) Create(file File) (string, error) {
	if p.err != nil {
		return "", p.err
	}
	h := fmt.Sprintf("blob:%d", len(p.created)+1)
	p.created = append(p.created, h)
	p.live[h] = true
	return h, nil
}

func (p *countingPreviews) Release(handle string) {
	if !p.live[handle] {
		panic("release of unknown or already released handle " + handle)
	}
	delete(p.live, handle)
	p.released = append(p.released, handle)
}

func (p *countingPreviews) balanced() bool {
	return len(p.created) == len(p.released) && len(p.live) == 0
}

type fakeAuth struct {
	user          Account
	authenticated bool
	loading       bool
	refreshErr    error
	refreshes     int
}

func (a *fakeAuth) CurrentUser() (Account, bool) { return a.user, a.authenticated }
func (a *fakeAuth) IsAuthenticated() bool        { return a.authenticated }
func (a *fakeAuth) IsLoading() bool              { return a.loading }
func (a *fakeAuth) Refresh(ctx context.Context) error {
	a.refreshes++
	return a.refreshErr
}

type mockUsers struct {
	mock.Mock
}

func (m *mockUsers) UploadAvatar(ctx context.Context, file File) (string, error) {
	args := m.Called(ctx, file)
	return args.String(0), args.Error(1)
}

func (m *mockUsers) UpdateUser(ctx context.Context, id string, update UserUpdate) (Account, error) {
	args := m.Called(ctx, id, update)
	return args.Get(0).(Account), args.Error(1)
}

func (m *mockUsers) DeleteUser(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *mockUsers) Logout(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

type mockItems struct {
	mock.Mock
}

func (m *mockItems) FetchItemsForUser(ctx context.Context, userID string) ([]Item, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]Item), args.Error(1)
}

func (m *mockItems) DeleteItem(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type chanNotifications struct {
	calls chan []Item
}

func (n *chanNotifications) FetchMatchNotifications(ctx context.Context, items []Item) error {
	n.calls <- items
	return nil
}

type fakeConfirm struct {
	answer bool
	asked  []string
}

func (c *fakeConfirm) Ask(message string) bool {
	c.asked = append(c.asked, message)
	return c.answer
}

type fakeNavigator struct {
	mu      sync.Mutex
	history []string
	backs   int
}

func (n *fakeNavigator) GoBack() {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.backs++
}

func (n *fakeNavigator) GoTo(path string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.history = append(n.history, path)
}

func (n *fakeNavigator) ReplaceLocation(path string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.history = append(n.history, "replace:"+path)
}
