package profile

import "fmt"

// StagedImage is an avatar picked locally and not uploaded yet.
type StagedImage struct {
	File    File
	Preview string
	// uploadedURL is set once the file reached the server, so a retried submit
	// can attach it without uploading the same bytes again.
	uploadedURL string
}

// ImageStaging owns at most one staged image and its preview handle. Every
// handle it creates is released exactly once: on replacement or on Clear.
type ImageStaging struct {
	previews  PreviewStore
	validator *Validator
	staged    *StagedImage
}

// NewImageStaging creates an empty ImageStaging.
func NewImageStaging(previews PreviewStore, validator *Validator) *ImageStaging {
	return &ImageStaging{previews: previews, validator: validator}
}

// Select stages file, replacing the current image. A file that is not a JPEG
// or PNG is rejected with a profileImage ValidationError and the current
// image stays staged.
func (s *ImageStaging) Select(file File) error {
	if err := s.validator.ValidateImage(file); err != nil {
		return err
	}

	s.Clear()

	handle, err := s.previews.Create(file)
	if err != nil {
		return fmt.Errorf("failed to create preview: %w", err)
	}
	s.staged = &StagedImage{File: file, Preview: handle}

	return nil
}

// Clear releases the current preview handle, if any, and drops the image.
func (s *ImageStaging) Clear() {
	if s.staged == nil {
		return
	}
	s.previews.Release(s.staged.Preview)
	s.staged = nil
}

// Staged returns a copy of the staged image.
func (s *ImageStaging) Staged() (StagedImage, bool) {
	if s.staged == nil {
		return StagedImage{}, false
	}
	return *s.staged, true
}

// MarkUploaded records the URL the staged image was uploaded to.
func (s *ImageStaging) MarkUploaded(url string) {
	if s.staged != nil {
		s.staged.uploadedURL = url
	}
}

// UploadedURL returns the URL recorded by MarkUploaded for the staged image.
func (s *ImageStaging) UploadedURL() (string, bool) {
	if s.staged == nil || s.staged.uploadedURL == "" {
		return "", false
	}
	return s.staged.uploadedURL, true
}
