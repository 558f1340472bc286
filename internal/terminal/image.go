package terminal

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"

	"github.com/dtroode/lostfound/internal/profile"
)

// MaxImageFileBytes bounds the files LoadImage reads into memory.
const MaxImageFileBytes = 20 << 20

// LoadImage reads a file from disk. The content type is sniffed from the
// bytes, not taken from the extension.
func LoadImage(path string) (profile.File, error) {
	info, err := os.Stat(path)
	if err != nil {
		return profile.File{}, fmt.Errorf("failed to open image: %w", err)
	}
	if info.IsDir() {
		return profile.File{}, fmt.Errorf("%s is a directory", path)
	}
	if info.Size() > MaxImageFileBytes {
		return profile.File{}, fmt.Errorf("%s is larger than %d MiB", path, MaxImageFileBytes>>20)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return profile.File{}, fmt.Errorf("failed to read image: %w", err)
	}

	contentType := mimetype.Detect(data).String()
	if i := strings.IndexByte(contentType, ';'); i >= 0 {
		contentType = contentType[:i]
	}

	return profile.File{
		Name:        filepath.Base(path),
		ContentType: contentType,
		Data:        data,
	}, nil
}
