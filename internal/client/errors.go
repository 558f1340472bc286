package client

import (
	"errors"
	"fmt"
	"strings"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/dtroode/lostfound/internal/model"
)

var (
	ErrNoSession   = errors.New("no active session")
	ErrUnavailable = errors.New("server unavailable")
)

// fromStatus turns a gRPC status back into the sentinel the server started
// from, keeping the server's message.
func fromStatus(err error) error {
	if err == nil {
		return nil
	}
	st, ok := status.FromError(err)
	if !ok {
		return err
	}

	var kind error
	switch st.Code() {
	case codes.NotFound:
		kind = model.ErrNotFound
	case codes.AlreadyExists:
		kind = model.ErrEmailTaken
	case codes.Unauthenticated:
		kind = model.ErrUnauthenticated
	case codes.InvalidArgument:
		kind = model.ErrInvalidArgument
	case codes.Unavailable, codes.DeadlineExceeded:
		kind = ErrUnavailable
	default:
		return fmt.Errorf("server error: %s", st.Message())
	}

	msg := st.Message()
	if msg == kind.Error() || strings.HasPrefix(msg, kind.Error()+":") {
		return fmt.Errorf("%w%s", kind, strings.TrimPrefix(msg, kind.Error()))
	}
	return fmt.Errorf("%w: %s", kind, msg)
}
