package profile

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestImageStaging_Select(t *testing.T) {
	previews := newCountingPreviews()
	s := NewImageStaging(previews, NewValidator())

	require.NoError(t, s.Select(File{Name: "a.png", ContentType: "image/png"}))
	staged, ok := s.Staged()
	require.True(t, ok)
	assert.Equal(t, "a.png", staged.File.Name)
	assert.Equal(t, "blob:1", staged.Preview)

	require.NoError(t, s.Select(File{Name: "b.jpg", ContentType: "image/jpeg"}))
	staged, ok = s.Staged()
	require.True(t, ok)
	assert.Equal(t, "b.jpg", staged.File.Name)
	assert.Equal(t, []string{"blob:1"}, previews.released, "previous handle released on replacement")
}

func TestImageStaging_SelectRejectsOtherTypes(t *testing.T) {
	previews := newCountingPreviews()
	s := NewImageStaging(previews, NewValidator())
	require.NoError(t, s.Select(File{Name: "a.png", ContentType: "image/png"}))

	err := s.Select(File{Name: "doc.pdf", ContentType: "application/pdf"})

	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	_, ok := verr.Field(FieldProfileImage)
	assert.True(t, ok)

	staged, ok := s.Staged()
	require.True(t, ok, "rejected file keeps the current image")
	assert.Equal(t, "a.png", staged.File.Name)
	assert.Len(t, previews.created, 1)
	assert.Empty(t, previews.released)
}

func TestImageStaging_Clear(t *testing.T) {
	previews := newCountingPreviews()
	s := NewImageStaging(previews, NewValidator())

	s.Clear()
	assert.Empty(t, previews.released)

	require.NoError(t, s.Select(File{ContentType: "image/png"}))
	s.Clear()
	s.Clear()

	_, ok := s.Staged()
	assert.False(t, ok)
	assert.True(t, previews.balanced())
}

func TestImageStaging_PreviewError(t *testing.T) {
	previews := newCountingPreviews()
	s := NewImageStaging(previews, NewValidator())
	require.NoError(t, s.Select(File{ContentType: "image/png"}))

	previews.err = errors.New("out of memory")
	err := s.Select(File{ContentType: "image/jpeg"})
	assert.Error(t, err)

	_, ok := s.Staged()
	assert.False(t, ok)
	assert.True(t, previews.balanced())
}

func TestImageStaging_UploadedURL(t *testing.T) {
	s := NewImageStaging(newCountingPreviews(), NewValidator())

	s.MarkUploaded("ignored")
	_, ok := s.UploadedURL()
	assert.False(t, ok)

	require.NoError(t, s.Select(File{ContentType: "image/png"}))
	s.MarkUploaded("https://cdn/a.png")
	url, ok := s.UploadedURL()
	assert.True(t, ok)
	assert.Equal(t, "https://cdn/a.png", url)

	require.NoError(t, s.Select(File{ContentType: "image/png"}))
	_, ok = s.UploadedURL()
	assert.False(t, ok, "a new selection forgets the upload")
}

func TestImageStaging_HandlesAlwaysBalance(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	files := []File{
		{ContentType: "image/png"},
		{ContentType: "image/jpeg"},
		{ContentType: "image/gif"},
	}

	for run := 0; run < 50; run++ {
		previews := newCountingPreviews()
		s := NewImageStaging(previews, NewValidator())

		for step := 0; step < 20; step++ {
			if rng.Intn(3) == 0 {
				s.Clear()
				continue
			}
			_ = s.Select(files[rng.Intn(len(files))])
		}
		s.Clear()

		assert.True(t, previews.balanced(), "run %d: created %d released %d", run, len(previews.created), len(previews.released))
	}
}
