package profile

import "errors"

// Failures of collaborator calls. Returned errors wrap one of these together
// with the cause, so callers can test them with errors.Is.
var (
	ErrUpload = errors.New("failed to upload image")
	ErrUpdate = errors.New("failed to update profile")
	ErrDelete = errors.New("failed to delete")
	ErrLogout = errors.New("failed to log out")
	ErrFetch  = errors.New("failed to fetch items")
)

var (
	ErrNotEditing       = errors.New("profile is not in edit mode")
	ErrSubmitInProgress = errors.New("profile update already in progress")
	ErrNotAuthenticated = errors.New("not authenticated")
	ErrUnknownField     = errors.New("unknown field")
)
