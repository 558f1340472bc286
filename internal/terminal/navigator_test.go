package terminal

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dtroode/lostfound/internal/profile"
	"github.com/dtroode/lostfound/internal/testutil"
)

func TestNavigator(t *testing.T) {
	n := NewNavigator(ProfilePath, testutil.MakeNoopLogger())
	assert.Equal(t, ProfilePath, n.Location())

	n.GoTo("/items/1")
	assert.Equal(t, "/items/1", n.Location())

	n.GoBack()
	assert.Equal(t, ProfilePath, n.Location())

	n.ReplaceLocation(profile.LoginPath)
	assert.Equal(t, profile.LoginPath, n.Location())

	n.GoBack()
	assert.Equal(t, profile.EntryPath, n.Location())
}

func TestNavigator_ReplaceKeepsHistory(t *testing.T) {
	n := NewNavigator(profile.EntryPath, testutil.MakeNoopLogger())
	n.GoTo(ProfilePath)
	n.ReplaceLocation(profile.LoginPath)

	n.GoBack()
	assert.Equal(t, profile.EntryPath, n.Location())
}
