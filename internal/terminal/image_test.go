package terminal

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, data, 0o600))
	return path
}

func TestLoadImage(t *testing.T) {
	png := []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\x0dIHDR\x00\x00\x00\x01\x00\x00\x00\x01\x08\x02\x00\x00\x00")
	jpeg := []byte{0xff, 0xd8, 0xff, 0xe0, 0x00, 0x10, 'J', 'F', 'I', 'F', 0x00}

	tests := []struct {
		name     string
		file     string
		data     []byte
		wantType string
	}{
		{name: "png", file: "me.png", data: png, wantType: "image/png"},
		{name: "jpeg", file: "me.jpg", data: jpeg, wantType: "image/jpeg"},
		{name: "extension is ignored", file: "me.png", data: []byte("GIF89a\x01\x00\x01\x00"), wantType: "image/gif"},
		{name: "text", file: "notes.png", data: []byte("hello"), wantType: "text/plain"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := LoadImage(writeFile(t, tt.file, tt.data))
			require.NoError(t, err)
			assert.Equal(t, tt.file, f.Name)
			assert.Equal(t, tt.wantType, f.ContentType)
			assert.Equal(t, tt.data, f.Data)
		})
	}
}

func TestLoadImage_Errors(t *testing.T) {
	_, err := LoadImage(filepath.Join(t.TempDir(), "missing.png"))
	assert.Error(t, err)

	_, err = LoadImage(t.TempDir())
	assert.Error(t, err)
}
