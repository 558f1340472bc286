package terminal

import (
	"sync"

	"github.com/dtroode/lostfound/internal/logger"
	"github.com/dtroode/lostfound/internal/profile"
)

// ProfilePath is the location of the profile screen.
const ProfilePath = "/profile"

// Navigator keeps a browser-like history of screen locations.
type Navigator struct {
	mu      sync.Mutex
	history []string
	logger  *logger.Logger
}

var _ profile.Navigator = (*Navigator)(nil)

// NewNavigator starts the history at start.
func NewNavigator(start string, logger *logger.Logger) *Navigator {
	return &Navigator{history: []string{start}, logger: logger}
}

// Location returns the current location.
func (n *Navigator) Location() string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.history[len(n.history)-1]
}

// GoBack returns to the previous location. Going back from the first screen
// leaves the app, which is reported as EntryPath.
func (n *Navigator) GoBack() {
	n.mu.Lock()
	defer n.mu.Unlock()

	if len(n.history) == 1 {
		n.history[0] = profile.EntryPath
	} else {
		n.history = n.history[:len(n.history)-1]
	}
	n.logger.Debug("Navigator: back", "location", n.history[len(n.history)-1])
}

func (n *Navigator) GoTo(path string) {
	n.mu.Lock()
	defer n.mu.Unlock()

	n.history = append(n.history, path)
	n.logger.Debug("Navigator: go to", "location", path)
}

// ReplaceLocation swaps the current location without adding history.
func (n *Navigator) ReplaceLocation(path string) {
	n.mu.Lock()
	defer n.mu.Unlock()

	n.history[len(n.history)-1] = path
	n.logger.Debug("Navigator: replace", "location", path)
}
