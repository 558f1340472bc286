package profile

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"maps"
	"slices"
	"sync/atomic"
	"time"
	"unicode/utf8"

	"github.com/dtroode/lostfound/internal/logger"
)

// Mode is the render mode of the profile screen.
type Mode int

const (
	ModeViewing Mode = iota
	ModeEditing
)

func (m Mode) String() string {
	if m == ModeEditing {
		return "editing"
	}
	return "viewing"
}

// Draft is the working copy of the editable fields during an edit session.
type Draft struct {
	Email    string
	UserName string
	Password string
}

// FormInput returns the draft as form input.
func (d Draft) FormInput() FormInput {
	return FormInput{Email: d.Email, UserName: d.UserName, Password: d.Password}
}

const (
	deleteAccountPrompt = "Are you sure you want to delete your account? This cannot be undone."
	deleteItemPrompt    = "Are you sure you want to delete this item?"

	notificationTimeout = 30 * time.Second
)

// Collaborators groups everything a Controller talks to.
type Collaborators struct {
	Auth          AuthenticationProvider
	Users         UserAccountService
	Items         ItemService
	Notifications NotificationService
	Confirm       ConfirmationPrompt
	Navigator     Navigator
	Previews      PreviewStore
}

// Controller drives the profile screen. It is meant to be used from a single
// goroutine; only the submit in-flight flag is safe for concurrent access.
type Controller struct {
	auth          AuthenticationProvider
	users         UserAccountService
	items         ItemService
	notifications NotificationService
	confirm       ConfirmationPrompt
	nav           Navigator
	validator     *Validator
	staging       *ImageStaging
	logger        *logger.Logger

	account     Account
	mode        Mode
	draft       Draft
	fieldErrors map[string]string
	itemList    []Item
	lastErr     error
	submitting  atomic.Bool
}

// NewController creates a Controller in viewing mode.
func NewController(c Collaborators, logger *logger.Logger) *Controller {
	validator := NewValidator()
	return &Controller{
		auth:          c.Auth,
		users:         c.Users,
		items:         c.Items,
		notifications: c.Notifications,
		confirm:       c.Confirm,
		nav:           c.Navigator,
		validator:     validator,
		staging:       NewImageStaging(c.Previews, validator),
		logger:        logger,
	}
}

// Authorize redirects to the login page and returns ErrNotAuthenticated when
// there is no session and the session is not still loading. The profile must
// not be rendered in that case.
func (c *Controller) Authorize() error {
	if c.auth.IsLoading() || c.auth.IsAuthenticated() {
		return nil
	}
	c.nav.ReplaceLocation(LoginPath)
	return ErrNotAuthenticated
}

// Load adopts the session's current user and fetches its items.
func (c *Controller) Load(ctx context.Context) error {
	if err := c.Authorize(); err != nil {
		return err
	}

	account, ok := c.auth.CurrentUser()
	if !ok {
		return nil
	}
	c.account = account

	return c.RefreshItems(ctx)
}

// Account returns the current account.
func (c *Controller) Account() Account {
	return c.account
}

// Mode returns the current render mode.
func (c *Controller) Mode() Mode {
	return c.mode
}

// Draft returns the working copy of the form.
func (c *Controller) Draft() Draft {
	return c.draft
}

// ToggleEdit enters edit mode from viewing and cancels from editing.
func (c *Controller) ToggleEdit() {
	if c.mode == ModeEditing {
		c.Cancel()
		return
	}
	c.EnterEdit()
}

// EnterEdit starts an edit session seeded from the account with an empty
// password. It does nothing while already editing.
func (c *Controller) EnterEdit() {
	if c.mode == ModeEditing {
		return
	}
	c.draft = Draft{Email: c.account.Email, UserName: c.account.UserName}
	c.fieldErrors = nil
	c.lastErr = nil
	c.mode = ModeEditing
}

// EditField sets one field of the draft.
func (c *Controller) EditField(field, value string) error {
	if c.mode != ModeEditing {
		return ErrNotEditing
	}

	switch field {
	case FieldEmail:
		c.draft.Email = value
	case FieldUserName:
		c.draft.UserName = value
	case FieldPassword:
		c.draft.Password = value
	default:
		return fmt.Errorf("%w: %q", ErrUnknownField, field)
	}
	delete(c.fieldErrors, field)

	return nil
}

// SelectImage handles a change of the image field: the file is staged, or
// rejected with a profileImage field error.
func (c *Controller) SelectImage(file File) error {
	if c.mode != ModeEditing {
		return ErrNotEditing
	}

	if err := c.staging.Select(file); err != nil {
		var verr *ValidationError
		if errors.As(err, &verr) {
			c.setFieldErrors(verr.Fields)
		}
		return c.report(err)
	}
	delete(c.fieldErrors, FieldProfileImage)

	return nil
}

// ClearImage drops the staged image.
func (c *Controller) ClearImage() {
	c.staging.Clear()
}

// Cancel ends the edit session without touching the account.
func (c *Controller) Cancel() {
	if c.mode != ModeEditing {
		return
	}
	c.staging.Clear()
	c.draft = Draft{}
	c.fieldErrors = nil
	c.lastErr = nil
	c.mode = ModeViewing
}

// Submit validates input, uploads the staged image if there is one, and sends
// a partial update. An image passed in input is staged first, replacing the
// current one. Any failure leaves the account untouched and the screen in
// edit mode; a staged image survives a failed update.
func (c *Controller) Submit(ctx context.Context, input FormInput) error {
	if c.mode != ModeEditing {
		return ErrNotEditing
	}
	if !c.submitting.CompareAndSwap(false, true) {
		return ErrSubmitInProgress
	}
	defer c.submitting.Store(false)
	c.lastErr = nil

	if input.ProfileImage != nil {
		if err := c.stageInput(*input.ProfileImage); err != nil {
			return err
		}
	}
	staged, hasImage := c.staging.Staged()
	if hasImage {
		input.ProfileImage = &staged.File
	}

	valid, err := c.validator.Validate(input)
	if err != nil {
		var verr *ValidationError
		if errors.As(err, &verr) {
			c.fieldErrors = maps.Clone(verr.Fields)
		}
		return c.report(err)
	}
	c.fieldErrors = nil

	update := UserUpdate{Email: &valid.Email, UserName: &valid.UserName}
	if utf8.RuneCountInString(valid.Password) >= minPasswordLength {
		update.Password = &valid.Password
	}

	if hasImage {
		url, err := c.uploadStaged(ctx, staged)
		if err != nil {
			return c.report(fmt.Errorf("%w: %w", ErrUpload, err))
		}
		update.AvatarURL = &url
	}

	updated, err := c.users.UpdateUser(ctx, c.account.ID, update)
	if err != nil {
		return c.report(fmt.Errorf("%w: %w", ErrUpdate, err))
	}

	c.account = mergeAccount(c.account, update, updated)
	c.staging.Clear()
	c.draft = Draft{}
	c.mode = ModeViewing

	c.logger.Info("Profile: account updated",
		"user_id", c.account.ID,
		"password_changed", update.Password != nil,
		"avatar_changed", update.AvatarURL != nil)

	if err := c.auth.Refresh(ctx); err != nil {
		c.logger.Warn("Profile: failed to refresh session after update",
			"user_id", c.account.ID,
			"error", err)
	}

	return nil
}

// stageInput stages a form image unless it is the file already staged, so a
// retried submit keeps the uploaded URL.
func (c *Controller) stageInput(file File) error {
	if staged, ok := c.staging.Staged(); ok && sameFile(staged.File, file) {
		return nil
	}
	if err := c.staging.Select(file); err != nil {
		var verr *ValidationError
		if errors.As(err, &verr) {
			c.fieldErrors = maps.Clone(verr.Fields)
		}
		return c.report(err)
	}
	return nil
}

func sameFile(a, b File) bool {
	return a.Name == b.Name && a.ContentType == b.ContentType && bytes.Equal(a.Data, b.Data)
}

func (c *Controller) uploadStaged(ctx context.Context, staged StagedImage) (string, error) {
	if url, ok := c.staging.UploadedURL(); ok {
		return url, nil
	}

	url, err := c.users.UploadAvatar(ctx, staged.File)
	if err != nil {
		return "", err
	}
	c.staging.MarkUploaded(url)

	return url, nil
}

// Submitting reports whether a submit is in flight.
func (c *Controller) Submitting() bool {
	return c.submitting.Load()
}

// DeleteAccount deletes the account after confirmation and leaves for the
// entry page.
func (c *Controller) DeleteAccount(ctx context.Context) error {
	c.lastErr = nil
	if !c.confirm.Ask(deleteAccountPrompt) {
		return nil
	}

	id := c.account.ID
	if err := c.users.DeleteUser(ctx, id); err != nil {
		return c.report(fmt.Errorf("%w: account: %w", ErrDelete, err))
	}

	c.endSession()
	c.logger.Info("Profile: account deleted", "user_id", id)
	c.nav.ReplaceLocation(EntryPath)

	return nil
}

// Logout ends the session and leaves for the entry page.
func (c *Controller) Logout(ctx context.Context) error {
	c.lastErr = nil
	if err := c.users.Logout(ctx); err != nil {
		return c.report(fmt.Errorf("%w: %w", ErrLogout, err))
	}

	c.endSession()
	c.nav.ReplaceLocation(EntryPath)

	return nil
}

// DeleteItem deletes an item after confirmation and re-fetches the list.
func (c *Controller) DeleteItem(ctx context.Context, itemID string) error {
	c.lastErr = nil
	if !c.confirm.Ask(deleteItemPrompt) {
		return nil
	}

	if err := c.items.DeleteItem(ctx, itemID); err != nil {
		return c.report(fmt.Errorf("%w: item %s: %w", ErrDelete, itemID, err))
	}

	return c.RefreshItems(ctx)
}

// RefreshItems fetches the account's items and triggers match notifications.
func (c *Controller) RefreshItems(ctx context.Context) error {
	items, err := c.items.FetchItemsForUser(ctx, c.account.ID)
	if err != nil {
		return c.report(fmt.Errorf("%w: %w", ErrFetch, err))
	}
	c.itemList = items
	c.triggerMatches(ctx, items)

	return nil
}

func (c *Controller) triggerMatches(ctx context.Context, items []Item) {
	if c.notifications == nil || len(items) == 0 {
		return
	}

	snapshot := slices.Clone(items)
	go func() {
		ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), notificationTimeout)
		defer cancel()

		if err := c.notifications.FetchMatchNotifications(ctx, snapshot); err != nil {
			c.logger.Warn("Profile: failed to fetch match notifications", "error", err)
		}
	}()
}

// Items returns every fetched item.
func (c *Controller) Items() []Item {
	return c.itemList
}

// LostItems returns the account's lost items.
func (c *Controller) LostItems() []Item {
	return Classify(c.itemList, c.account.ID, ItemTypeLost)
}

// FoundItems returns the account's found items.
func (c *Controller) FoundItems() []Item {
	return Classify(c.itemList, c.account.ID, ItemTypeFound)
}

// Back navigates to the previous screen.
func (c *Controller) Back() {
	c.nav.GoBack()
}

// Close releases resources held by the screen. Call it when the screen goes away.
func (c *Controller) Close() {
	c.staging.Clear()
}

func (c *Controller) endSession() {
	c.staging.Clear()
	c.account = Account{}
	c.draft = Draft{}
	c.fieldErrors = nil
	c.itemList = nil
	c.mode = ModeViewing
}

func (c *Controller) setFieldErrors(fields map[string]string) {
	if c.fieldErrors == nil {
		c.fieldErrors = make(map[string]string, len(fields))
	}
	for k, v := range fields {
		c.fieldErrors[k] = v
	}
}

// report records err for display and returns it.
func (c *Controller) report(err error) error {
	c.lastErr = err
	var verr *ValidationError
	if !errors.As(err, &verr) {
		c.logger.Error("Profile: action failed", "user_id", c.account.ID, "error", err)
	}
	return err
}
