package profile

import "strings"

// Account is the signed-in identity as shown on the profile screen.
// The password is write-only and never part of an Account.
type Account struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	UserName  string `json:"userName"`
	AvatarURL string `json:"avatarUrl,omitempty"`
}

// UserUpdate is a partial account update. Nil fields are omitted from the
// request and must stay unchanged on the server.
type UserUpdate struct {
	Email     *string `json:"email,omitempty"`
	UserName  *string `json:"userName,omitempty"`
	Password  *string `json:"password,omitempty"`
	AvatarURL *string `json:"avatarUrl,omitempty"`
}

// File is a locally selected file.
type File struct {
	Name        string `json:"name"`
	ContentType string `json:"contentType" validate:"oneof=image/jpeg image/png"`
	Data        []byte `json:"-"`
}

// mergeAccount applies the server's answer to an update on top of prior.
// Only fields that were part of the update change.
func mergeAccount(prior Account, update UserUpdate, resp Account) Account {
	merged := prior
	if update.Email != nil {
		merged.Email = firstNonEmpty(resp.Email, *update.Email)
	}
	if update.UserName != nil {
		merged.UserName = firstNonEmpty(resp.UserName, *update.UserName)
	}
	if update.AvatarURL != nil {
		merged.AvatarURL = firstNonEmpty(resp.AvatarURL, *update.AvatarURL)
	}
	return merged
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
