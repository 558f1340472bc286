package client

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"strings"
	"sync"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/status"

	"github.com/dtroode/lostfound/internal/api/grpc/rpc"
	"github.com/dtroode/lostfound/internal/logger"
	"github.com/dtroode/lostfound/internal/model"
	"github.com/dtroode/lostfound/internal/profile"
)

// Session owns the tokens of the signed in user and the account they belong
// to. It attaches the access token to outgoing calls and renews it once when
// the server rejects it.
type Session struct {
	store  TokenStore
	logger *logger.Logger

	auth    *rpc.AuthClient
	account *rpc.AccountClient

	mu         sync.RWMutex
	tokens     Tokens
	user       *profile.Account
	loading    bool
	requireTLS bool

	refreshMu sync.Mutex
}

var (
	_ profile.AuthenticationProvider = (*Session)(nil)
	_ credentials.PerRPCCredentials  = (*Session)(nil)
)

// NewSession creates a Session backed by store. It is unusable until passed to Dial.
func NewSession(store TokenStore, logger *logger.Logger) *Session {
	return &Session{store: store, logger: logger}
}

// Dial connects to target and binds the session to the connection. Extra
// options are appended after the session's own.
func Dial(target string, useTLS bool, session *Session, opts ...grpc.DialOption) (*grpc.ClientConn, error) {
	creds := insecure.NewCredentials()
	if useTLS {
		creds = credentials.NewTLS(&tls.Config{MinVersion: tls.VersionTLS12})
	}
	session.requireTLS = useTLS

	opts = append([]grpc.DialOption{
		grpc.WithTransportCredentials(creds),
		grpc.WithPerRPCCredentials(session),
		grpc.WithChainUnaryInterceptor(session.renewOnUnauthenticated),
	}, opts...)

	conn, err := grpc.NewClient(target, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to %s: %w", target, err)
	}
	session.auth = rpc.NewAuthClient(conn)
	session.account = rpc.NewAccountClient(conn)

	return conn, nil
}

// Load restores a stored session and fetches its account. A stored session
// the server no longer accepts is discarded.
func (s *Session) Load(ctx context.Context) error {
	tokens, err := s.store.Load()
	if errors.Is(err, ErrNoTokens) {
		return nil
	}
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.tokens = tokens
	s.loading = true
	s.mu.Unlock()
	defer s.setLoading(false)

	if err := s.reloadUser(ctx); err != nil {
		if errors.Is(err, model.ErrUnauthenticated) {
			s.logger.Info("Session: stored session expired")
			return s.Clear()
		}
		return err
	}
	return nil
}

// Register creates an account and signs in with it.
func (s *Session) Register(ctx context.Context, email, userName, password string) error {
	_, err := s.auth.Register(ctx, &rpc.RegisterRequest{Email: email, UserName: userName, Password: password})
	if err != nil {
		return fromStatus(err)
	}
	return s.Login(ctx, email, password)
}

// Login exchanges credentials for tokens, stores them and loads the account.
func (s *Session) Login(ctx context.Context, email, password string) error {
	pair, err := s.auth.Login(ctx, &rpc.LoginRequest{Email: email, Password: password})
	if err != nil {
		return fromStatus(err)
	}
	if err := s.setTokens(Tokens{AccessToken: pair.AccessToken, RefreshToken: pair.RefreshToken}); err != nil {
		return err
	}

	s.logger.Info("Session: signed in", "email", email)
	return s.reloadUser(ctx)
}

// Refresh renews the tokens and re-reads the account from the server.
func (s *Session) Refresh(ctx context.Context) error {
	if err := s.rotate(ctx, s.Tokens().RefreshToken); err != nil {
		return err
	}
	return s.reloadUser(ctx)
}

// Logout revokes the session on the server, then forgets it locally.
func (s *Session) Logout(ctx context.Context) error {
	refresh := s.Tokens().RefreshToken
	if refresh == "" {
		return ErrNoSession
	}
	if _, err := s.auth.Logout(ctx, &rpc.RefreshRequest{RefreshToken: refresh}); err != nil {
		return fromStatus(err)
	}
	return s.Clear()
}

// Clear forgets the session without contacting the server.
func (s *Session) Clear() error {
	s.mu.Lock()
	s.tokens = Tokens{}
	s.user = nil
	s.mu.Unlock()

	return s.store.Delete()
}

// CurrentUser returns the signed in account.
func (s *Session) CurrentUser() (profile.Account, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return profile.Account{}, false
	}
	return *s.user, true
}

func (s *Session) IsAuthenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user != nil
}

func (s *Session) IsLoading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

// Tokens returns the current token pair.
func (s *Session) Tokens() Tokens {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.tokens
}

// GetRequestMetadata attaches the access token when there is one.
func (s *Session) GetRequestMetadata(_ context.Context, _ ...string) (map[string]string, error) {
	access := s.Tokens().AccessToken
	if access == "" {
		return nil, nil
	}
	return map[string]string{"authorization": "Bearer " + access}, nil
}

func (s *Session) RequireTransportSecurity() bool {
	return s.requireTLS
}

// renewOnUnauthenticated retries a call once after renewing the tokens when
// the server rejects the access token.
func (s *Session) renewOnUnauthenticated(
	ctx context.Context,
	method string,
	req, reply any,
	cc *grpc.ClientConn,
	invoker grpc.UnaryInvoker,
	opts ...grpc.CallOption,
) error {
	observed := s.Tokens().RefreshToken
	err := invoker(ctx, method, req, reply, cc, opts...)
	if status.Code(err) != codes.Unauthenticated || observed == "" ||
		strings.HasPrefix(method, "/"+rpc.AuthServiceName+"/") {
		return err
	}

	if rerr := s.rotate(ctx, observed); rerr != nil {
		s.logger.Debug("Session: token renewal failed", "method", method, "error", rerr)
		return err
	}
	return invoker(ctx, method, req, reply, cc, opts...)
}

// rotate exchanges the refresh token for a new pair. When another call
// already rotated observed, it does nothing.
func (s *Session) rotate(ctx context.Context, observed string) error {
	s.refreshMu.Lock()
	defer s.refreshMu.Unlock()

	current := s.Tokens().RefreshToken
	if current == "" {
		return ErrNoSession
	}
	if current != observed {
		return nil
	}

	pair, err := s.auth.Refresh(ctx, &rpc.RefreshRequest{RefreshToken: current})
	if err != nil {
		return fromStatus(err)
	}
	return s.setTokens(Tokens{AccessToken: pair.AccessToken, RefreshToken: pair.RefreshToken})
}

func (s *Session) reloadUser(ctx context.Context) error {
	user, err := s.account.GetMe(ctx)
	if err != nil {
		return fromStatus(err)
	}

	account := toAccount(user)
	s.mu.Lock()
	s.user = &account
	s.mu.Unlock()
	return nil
}

func (s *Session) setTokens(tokens Tokens) error {
	s.mu.Lock()
	s.tokens = tokens
	s.mu.Unlock()

	if err := s.store.Save(tokens); err != nil {
		return fmt.Errorf("failed to store session: %w", err)
	}
	return nil
}

func (s *Session) setLoading(v bool) {
	s.mu.Lock()
	s.loading = v
	s.mu.Unlock()
}

func toAccount(user *rpc.User) profile.Account {
	return profile.Account{
		ID:        user.ID,
		Email:     user.Email,
		UserName:  user.UserName,
		AvatarURL: user.AvatarURL,
	}
}
