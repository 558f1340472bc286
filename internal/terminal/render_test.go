package terminal

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dtroode/lostfound/internal/profile"
)

func TestRender_Viewing(t *testing.T) {
	var buf bytes.Buffer
	err := Render(&buf, profile.View{
		Mode:    profile.ModeViewing,
		Account: profile.Account{ID: "u1", Email: "ann@example.com", UserName: "ann"},
		Lost: []profile.ItemView{
			{ID: "1", Name: "Wallet", Description: "brown leather", Category: "Accessories", Location: "Lat: 52.5200, Lng: 13.4050", Date: "5/1/2024"},
		},
	})
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "Profile (viewing)")
	assert.Contains(t, out, "ann@example.com")
	assert.Contains(t, out, "(none)")
	assert.Contains(t, out, "Lost items (1)")
	assert.Contains(t, out, "Wallet")
	assert.Contains(t, out, "DESCRIPTION")
	assert.Contains(t, out, "brown leather")
	assert.Contains(t, out, "Lat: 52.5200, Lng: 13.4050")
	assert.Contains(t, out, "Found items (0)")
	assert.Contains(t, out, "No found items.")
	assert.NotContains(t, out, "No lost items.")
	assert.NotContains(t, out, "Error:")
}

func TestRender_EditingWithErrors(t *testing.T) {
	var buf bytes.Buffer
	verr := &profile.ValidationError{Fields: map[string]string{profile.FieldUserName: "must be at least 3 characters"}}
	err := Render(&buf, profile.View{
		Mode:        profile.ModeEditing,
		Draft:       profile.Draft{Email: "ann@example.com", UserName: "ab", Password: "secret"},
		Preview:     "blob:1",
		FieldErrors: verr.Fields,
		Err:         verr,
	})
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "Profile (editing)")
	assert.Contains(t, out, "! must be at least 3 characters")
	assert.Contains(t, out, "********")
	assert.NotContains(t, out, "secret")
	assert.Contains(t, out, "blob:1")
	assert.Contains(t, out, "No lost items.")
	assert.Contains(t, out, "userName: must be at least 3 characters")
}

func TestRender_Loading(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Render(&buf, profile.View{Loading: true, Err: errors.New("ignored")}))
	assert.Equal(t, "Loading...\n", buf.String())
}
