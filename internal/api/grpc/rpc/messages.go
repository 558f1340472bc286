package rpc

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

type RegisterRequest struct {
	Email    string `json:"email"`
	UserName string `json:"userName"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RefreshRequest carries a refresh token. Refresh and Logout both take it.
type RefreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

type TokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// User is the public view of an account.
type User struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	UserName  string `json:"userName"`
	AvatarURL string `json:"avatarUrl,omitempty"`
}

// UploadAvatarRequest carries the raw image. Data travels base64 encoded.
type UploadAvatarRequest struct {
	FileName    string `json:"fileName,omitempty"`
	ContentType string `json:"contentType"`
	Data        []byte `json:"data"`
}

type UploadAvatarResponse struct {
	URL string `json:"url"`
}

// UpdateMeRequest is a partial update; absent fields stay unchanged.
type UpdateMeRequest struct {
	Email     *string `json:"email,omitempty"`
	UserName  *string `json:"userName,omitempty"`
	Password  *string `json:"password,omitempty"`
	AvatarURL *string `json:"avatarUrl,omitempty"`
}

// Location is a free-form place or a coordinate pair. On the wire it is a
// JSON string or an object with lat and lng.
type Location struct {
	Text string
	Lat  *float64
	Lng  *float64
}

type coordinates struct {
	Lat *float64 `json:"lat"`
	Lng *float64 `json:"lng"`
}

// HasCoordinates reports whether both coordinates are set.
func (l Location) HasCoordinates() bool {
	return l.Lat != nil && l.Lng != nil
}

func (l Location) MarshalJSON() ([]byte, error) {
	if l.HasCoordinates() {
		return json.Marshal(coordinates{Lat: l.Lat, Lng: l.Lng})
	}
	return json.Marshal(l.Text)
}

func (l *Location) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if bytes.Equal(trimmed, []byte("null")) {
		*l = Location{}
		return nil
	}
	if len(trimmed) > 0 && trimmed[0] == '"' {
		var text string
		if err := json.Unmarshal(trimmed, &text); err != nil {
			return fmt.Errorf("failed to decode location: %w", err)
		}
		*l = Location{Text: text}
		return nil
	}

	var c coordinates
	if err := json.Unmarshal(trimmed, &c); err != nil {
		return fmt.Errorf("failed to decode location: %w", err)
	}
	if c.Lat == nil || c.Lng == nil {
		return errors.New("location object needs lat and lng")
	}
	*l = Location{Lat: c.Lat, Lng: c.Lng}
	return nil
}

type Item struct {
	ID          string   `json:"id"`
	Owner       string   `json:"owner"`
	UserID      string   `json:"userId,omitempty"`
	ItemType    string   `json:"itemType"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Category    string   `json:"category"`
	Location    Location `json:"location"`
	Date        string   `json:"date,omitempty"`
	ImgURL      string   `json:"imgURL,omitempty"`
}

type ItemList struct {
	Items []Item `json:"items"`
}

// CreateItemRequest posts an item owned by the caller. Date is an RFC 3339
// timestamp or empty.
type CreateItemRequest struct {
	ItemType    string   `json:"itemType"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Category    string   `json:"category"`
	Location    Location `json:"location"`
	Date        string   `json:"date,omitempty"`
	ImgURL      string   `json:"imgURL,omitempty"`
}

type ItemRequest struct {
	ID string `json:"id"`
}

type MatchRequest struct {
	ItemIDs []string `json:"itemIds"`
}

type MatchResponse struct {
	Created int `json:"created"`
}

type Notification struct {
	ID            string    `json:"id"`
	ItemID        string    `json:"itemId"`
	MatchedItemID string    `json:"matchedItemId"`
	ItemName      string    `json:"itemName"`
	MatchedName   string    `json:"matchedName"`
	Category      string    `json:"category"`
	CreatedAt     time.Time `json:"createdAt"`
}

type NotificationList struct {
	Notifications []Notification `json:"notifications"`
}
