package client

import (
	"context"
	"fmt"

	"google.golang.org/grpc"

	"github.com/dtroode/lostfound/internal/api/grpc/rpc"
	"github.com/dtroode/lostfound/internal/profile"
)

// Accounts talks to the Account service on behalf of the session's user.
type Accounts struct {
	client  *rpc.AccountClient
	session *Session
}

var _ profile.UserAccountService = (*Accounts)(nil)

func NewAccounts(conn grpc.ClientConnInterface, session *Session) *Accounts {
	return &Accounts{client: rpc.NewAccountClient(conn), session: session}
}

// UploadAvatar stores the image and returns its public URL.
func (a *Accounts) UploadAvatar(ctx context.Context, file profile.File) (string, error) {
	resp, err := a.client.UploadAvatar(ctx, &rpc.UploadAvatarRequest{
		FileName:    file.Name,
		ContentType: file.ContentType,
		Data:        file.Data,
	})
	if err != nil {
		return "", fromStatus(err)
	}
	return resp.URL, nil
}

// UpdateUser sends the partial update. Only the session's own account can be updated.
func (a *Accounts) UpdateUser(ctx context.Context, id string, update profile.UserUpdate) (profile.Account, error) {
	if err := a.ensureCurrent(id); err != nil {
		return profile.Account{}, err
	}

	user, err := a.client.UpdateMe(ctx, &rpc.UpdateMeRequest{
		Email:     update.Email,
		UserName:  update.UserName,
		Password:  update.Password,
		AvatarURL: update.AvatarURL,
	})
	if err != nil {
		return profile.Account{}, fromStatus(err)
	}
	return toAccount(user), nil
}

// DeleteUser deletes the account and forgets the session.
func (a *Accounts) DeleteUser(ctx context.Context, id string) error {
	if err := a.ensureCurrent(id); err != nil {
		return err
	}
	if err := a.client.DeleteMe(ctx); err != nil {
		return fromStatus(err)
	}
	return a.session.Clear()
}

func (a *Accounts) Logout(ctx context.Context) error {
	return a.session.Logout(ctx)
}

func (a *Accounts) ensureCurrent(id string) error {
	current, ok := a.session.CurrentUser()
	if !ok {
		return ErrNoSession
	}
	if current.ID != id {
		return fmt.Errorf("account %s is not the signed in account", id)
	}
	return nil
}
