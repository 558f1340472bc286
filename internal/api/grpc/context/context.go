package context

import (
	"context"

	"github.com/google/uuid"
	"google.golang.org/grpc/metadata"

	"github.com/dtroode/lostfound/internal/model"
)

// userIDKey is the incoming metadata key the authentication middleware
// stores the caller's id under.
const userIDKey = "user_id"

// Manager stores the authenticated user id in incoming gRPC metadata.
type Manager struct{}

var _ model.ContextManager = (*Manager)(nil)

// NewManager creates a new gRPC context manager instance.
func NewManager() *Manager {
	return &Manager{}
}

// SetUserIDToContext returns a context whose incoming metadata carries userID.
// A user id sent by the client under the same key is overwritten.
func (m *Manager) SetUserIDToContext(ctx context.Context, userID uuid.UUID) context.Context {
	md, ok := metadata.FromIncomingContext(ctx)
	if !ok {
		md = metadata.New(nil)
	} else {
		md = md.Copy()
	}
	md.Set(userIDKey, userID.String())

	return metadata.NewIncomingContext(ctx, md)
}

// GetUserIDFromContext returns the user id set by SetUserIDToContext.
func (m *Manager) GetUserIDFromContext(ctx context.Context) (uuid.UUID, bool) {
	md, ok := metadata.FromIncomingContext(ctx)
	if !ok {
		return uuid.Nil, false
	}

	userIDs := md.Get(userIDKey)
	if len(userIDs) == 0 {
		return uuid.Nil, false
	}

	userID, err := uuid.Parse(userIDs[0])
	if err != nil || userID == uuid.Nil {
		return uuid.Nil, false
	}

	return userID, true
}
