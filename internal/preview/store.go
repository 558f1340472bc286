// Package preview keeps in-memory previews of locally selected images.
package preview

import (
	"errors"
	"sync"

	"github.com/google/uuid"

	"github.com/dtroode/lostfound/internal/logger"
	"github.com/dtroode/lostfound/internal/profile"
)

const handlePrefix = "blob:"

// ErrUnknownHandle is returned for handles that were never created or already released.
var ErrUnknownHandle = errors.New("unknown preview handle")

// Store hands out opaque handles for image bytes. A handle stays valid until
// it is released.
type Store struct {
	mu      sync.Mutex
	entries map[string]profile.File
	logger  *logger.Logger
}

var _ profile.PreviewStore = (*Store)(nil)

// NewStore creates an empty Store.
func NewStore(logger *logger.Logger) *Store {
	return &Store{
		entries: make(map[string]profile.File),
		logger:  logger,
	}
}

// Create stores a copy of file and returns its handle.
func (s *Store) Create(file profile.File) (string, error) {
	id, err := uuid.NewRandom()
	if err != nil {
		return "", err
	}
	handle := handlePrefix + id.String()

	file.Data = append([]byte(nil), file.Data...)

	s.mu.Lock()
	s.entries[handle] = file
	s.mu.Unlock()

	s.logger.Debug("Preview: created", "handle", handle, "name", file.Name, "size", len(file.Data))

	return handle, nil
}

// Release drops the bytes behind handle. Releasing an unknown handle is logged
// and otherwise ignored.
func (s *Store) Release(handle string) {
	s.mu.Lock()
	_, ok := s.entries[handle]
	delete(s.entries, handle)
	s.mu.Unlock()

	if !ok {
		s.logger.Warn("Preview: release of unknown handle", "handle", handle)
		return
	}
	s.logger.Debug("Preview: released", "handle", handle)
}

// Get returns the file behind handle.
func (s *Store) Get(handle string) (profile.File, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	file, ok := s.entries[handle]
	if !ok {
		return profile.File{}, ErrUnknownHandle
	}
	return file, nil
}

// Len returns the number of live handles.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}
