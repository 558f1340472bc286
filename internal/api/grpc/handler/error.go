package handler

import (
	"errors"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/dtroode/lostfound/internal/model"
)

// handleError maps service errors to gRPC statuses. Validation errors keep
// their message so clients can show which field was rejected; anything
// unexpected is reported as an opaque internal error.
func handleError(err error) error {
	if st, ok := status.FromError(err); ok && st.Code() != codes.OK {
		return err
	}

	switch {
	case errors.Is(err, model.ErrNotFound):
		return status.Error(codes.NotFound, "not found")
	case errors.Is(err, model.ErrEmailTaken):
		return status.Error(codes.AlreadyExists, model.ErrEmailTaken.Error())
	case errors.Is(err, model.ErrInvalidCredentials):
		return status.Error(codes.Unauthenticated, model.ErrInvalidCredentials.Error())
	case errors.Is(err, model.ErrUnauthenticated),
		errors.Is(err, model.ErrTokenExpired),
		errors.Is(err, model.ErrTokenRevoked),
		errors.Is(err, model.ErrTokenMismatch):
		return status.Error(codes.Unauthenticated, err.Error())
	case errors.Is(err, model.ErrUnsupportedImage),
		errors.Is(err, model.ErrImageTooLarge),
		errors.Is(err, model.ErrInvalidArgument):
		return status.Error(codes.InvalidArgument, err.Error())
	default:
		return status.Error(codes.Internal, "internal server error")
	}
}
