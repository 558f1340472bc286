package client

import (
	"context"
	"net"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"
	"google.golang.org/protobuf/types/known/emptypb"

	"github.com/dtroode/lostfound/internal/api/grpc/rpc"
	"github.com/dtroode/lostfound/internal/testutil"
)

// fakeBackend implements every service in memory. Access tokens are accepted
// only when they equal validAccess.
type fakeBackend struct {
	mu sync.Mutex

	validAccess  string
	validRefresh string
	user         rpc.User

	refreshCalls int
	logoutErr    error
	lastUpdate   *rpc.UpdateMeRequest
	deleted      bool
	items        []rpc.Item
	deleteErr    error
	matched      []string
	matchCalls   int
}

func (f *fakeBackend) authorized(ctx context.Context) error {
	md, _ := metadata.FromIncomingContext(ctx)
	f.mu.Lock()
	defer f.mu.Unlock()
	if got := md.Get("authorization"); len(got) == 0 || got[0] != "Bearer "+f.validAccess {
		return status.Error(codes.Unauthenticated, "invalid authorization token")
	}
	return nil
}

func (f *fakeBackend) Register(_ context.Context, req *rpc.RegisterRequest) (*rpc.User, error) {
	if req.Email == f.user.Email {
		return nil, status.Error(codes.AlreadyExists, "email is already taken")
	}
	return &rpc.User{ID: "new", Email: req.Email, UserName: req.UserName}, nil
}

func (f *fakeBackend) Login(_ context.Context, req *rpc.LoginRequest) (*rpc.TokenPair, error) {
	if req.Password != "password1" {
		return nil, status.Error(codes.Unauthenticated, "invalid credentials")
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return &rpc.TokenPair{AccessToken: f.validAccess, RefreshToken: f.validRefresh}, nil
}

func (f *fakeBackend) Refresh(_ context.Context, req *rpc.RefreshRequest) (*rpc.TokenPair, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.refreshCalls++
	if req.RefreshToken != f.validRefresh {
		return nil, status.Error(codes.Unauthenticated, "refresh token revoked")
	}
	f.validAccess = "access-2"
	f.validRefresh = "refresh-2"
	return &rpc.TokenPair{AccessToken: f.validAccess, RefreshToken: f.validRefresh}, nil
}

func (f *fakeBackend) Logout(_ context.Context, _ *rpc.RefreshRequest) (*emptypb.Empty, error) {
	if f.logoutErr != nil {
		return nil, f.logoutErr
	}
	return &emptypb.Empty{}, nil
}

func (f *fakeBackend) GetMe(ctx context.Context, _ *emptypb.Empty) (*rpc.User, error) {
	if err := f.authorized(ctx); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	u := f.user
	return &u, nil
}

func (f *fakeBackend) UploadAvatar(ctx context.Context, req *rpc.UploadAvatarRequest) (*rpc.UploadAvatarResponse, error) {
	if err := f.authorized(ctx); err != nil {
		return nil, err
	}
	if req.ContentType != "image/png" && req.ContentType != "image/jpeg" {
		return nil, status.Error(codes.InvalidArgument, "image must be a JPEG or PNG file")
	}
	return &rpc.UploadAvatarResponse{URL: "http://cdn/avatars/" + req.FileName}, nil
}

func (f *fakeBackend) UpdateMe(ctx context.Context, req *rpc.UpdateMeRequest) (*rpc.User, error) {
	if err := f.authorized(ctx); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lastUpdate = req
	if req.UserName != nil {
		f.user.UserName = *req.UserName
	}
	if req.AvatarURL != nil {
		f.user.AvatarURL = *req.AvatarURL
	}
	u := f.user
	return &u, nil
}

func (f *fakeBackend) DeleteMe(ctx context.Context, _ *emptypb.Empty) (*emptypb.Empty, error) {
	if err := f.authorized(ctx); err != nil {
		return nil, err
	}
	f.mu.Lock()
	f.deleted = true
	f.mu.Unlock()
	return &emptypb.Empty{}, nil
}

func (f *fakeBackend) ListMine(ctx context.Context, _ *emptypb.Empty) (*rpc.ItemList, error) {
	if err := f.authorized(ctx); err != nil {
		return nil, err
	}
	return &rpc.ItemList{Items: f.items}, nil
}

func (f *fakeBackend) Create(ctx context.Context, req *rpc.CreateItemRequest) (*rpc.Item, error) {
	if err := f.authorized(ctx); err != nil {
		return nil, err
	}
	return &rpc.Item{ID: "created", Owner: f.user.ID, ItemType: req.ItemType, Name: req.Name,
		Category: req.Category, Location: req.Location, Date: req.Date}, nil
}

func (f *fakeBackend) Delete(ctx context.Context, _ *rpc.ItemRequest) (*emptypb.Empty, error) {
	if err := f.authorized(ctx); err != nil {
		return nil, err
	}
	if f.deleteErr != nil {
		return nil, f.deleteErr
	}
	return &emptypb.Empty{}, nil
}

func (f *fakeBackend) Match(ctx context.Context, req *rpc.MatchRequest) (*rpc.MatchResponse, error) {
	if err := f.authorized(ctx); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.matchCalls++
	f.matched = req.ItemIDs
	return &rpc.MatchResponse{Created: len(req.ItemIDs)}, nil
}

func (f *fakeBackend) List(ctx context.Context, _ *emptypb.Empty) (*rpc.NotificationList, error) {
	if err := f.authorized(ctx); err != nil {
		return nil, err
	}
	return &rpc.NotificationList{Notifications: []rpc.Notification{{ID: "n1", ItemName: "Wallet", MatchedName: "Brown wallet"}}}, nil
}

// memoryTokenStore keeps tokens in memory.
type memoryTokenStore struct {
	mu      sync.Mutex
	tokens  *Tokens
	deletes int
}

func (m *memoryTokenStore) Load() (Tokens, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.tokens == nil {
		return Tokens{}, ErrNoTokens
	}
	return *m.tokens, nil
}

func (m *memoryTokenStore) Save(tokens Tokens) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.tokens = &tokens
	return nil
}

func (m *memoryTokenStore) Delete() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.tokens = nil
	m.deletes++
	return nil
}

type harness struct {
	backend *fakeBackend
	store   *memoryTokenStore
	session *Session
	conn    *grpc.ClientConn
}

func newHarness(t *testing.T) *harness {
	t.Helper()

	backend := &fakeBackend{
		validAccess:  "access-1",
		validRefresh: "refresh-1",
		user:         rpc.User{ID: "u1", Email: "ann@example.com", UserName: "ann"},
	}

	lis := bufconn.Listen(1 << 20)
	s := grpc.NewServer()
	rpc.RegisterAuthServer(s, backend)
	rpc.RegisterAccountServer(s, backend)
	rpc.RegisterItemsServer(s, backend)
	rpc.RegisterNotificationsServer(s, backend)
	go func() { _ = s.Serve(lis) }()
	t.Cleanup(s.Stop)

	store := &memoryTokenStore{}
	session := NewSession(store, testutil.MakeNoopLogger())
	conn, err := Dial("passthrough:///bufnet", false, session,
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) { return lis.DialContext(ctx) }))
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	return &harness{backend: backend, store: store, session: session, conn: conn}
}

func (h *harness) login(t *testing.T) {
	t.Helper()
	require.NoError(t, h.session.Login(context.Background(), "ann@example.com", "password1"))
}

