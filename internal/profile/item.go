package profile

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"
)

// ItemType is the kind of a posted item.
type ItemType string

const (
	ItemTypeLost  ItemType = "lost"
	ItemTypeFound ItemType = "found"
)

// Item is a marketplace item as received from the item service. The profile
// screen only reads items and asks for their deletion.
type Item struct {
	ID          string   `json:"id"`
	Owner       Ref      `json:"owner"`
	UserID      Ref      `json:"userId,omitempty"`
	ItemType    string   `json:"itemType"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Category    string   `json:"category"`
	Location    Location `json:"location"`
	Date        string   `json:"date,omitempty"`
	ImgURL      string   `json:"imgURL,omitempty"`
}

// OwnerRef returns the owner, falling back to the legacy user id field.
func (i Item) OwnerRef() Ref {
	if !i.Owner.IsZero() {
		return i.Owner
	}
	return i.UserID
}

// Ref is a user identifier. Different services encode the same id as a JSON
// string, a number, or an object wrapping it, so refs are compared through
// Normalize.
type Ref string

// Normalize returns the canonical form used for comparisons. Ids are case
// sensitive; only surrounding spaces are dropped.
func (r Ref) Normalize() string {
	return strings.TrimSpace(string(r))
}

// IsZero reports whether the ref carries no identifier.
func (r Ref) IsZero() bool {
	return r.Normalize() == ""
}

// Equal compares two refs after normalization.
func (r Ref) Equal(other Ref) bool {
	return !r.IsZero() && r.Normalize() == other.Normalize()
}

func (r *Ref) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		*r = ""
		return nil
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return fmt.Errorf("failed to decode reference: %w", err)
	}

	switch t := v.(type) {
	case string:
		*r = Ref(t)
	case json.Number:
		*r = Ref(t.String())
	case map[string]any:
		for _, key := range []string{"id", "_id", "$oid"} {
			inner, ok := t[key]
			if !ok {
				continue
			}
			raw, err := json.Marshal(inner)
			if err != nil {
				return fmt.Errorf("failed to decode reference: %w", err)
			}
			return r.UnmarshalJSON(raw)
		}
		return errors.New("reference object has no id")
	default:
		return fmt.Errorf("unsupported reference %s", data)
	}
	return nil
}

// Location is either free text or a coordinate pair.
type Location struct {
	text     string
	lat, lng float64
	coords   bool
}

// TextLocation returns a free-text location.
func TextLocation(text string) Location {
	return Location{text: text}
}

// CoordinatesLocation returns a coordinate location.
func CoordinatesLocation(lat, lng float64) Location {
	return Location{lat: lat, lng: lng, coords: true}
}

// Text returns the free-text value when the location is textual.
func (l Location) Text() (string, bool) {
	return l.text, !l.coords
}

// Coordinates returns the pair when the location is a coordinate location.
func (l Location) Coordinates() (lat, lng float64, ok bool) {
	return l.lat, l.lng, l.coords
}

// String renders text as-is and coordinates with four decimals.
func (l Location) String() string {
	if l.coords {
		return fmt.Sprintf("Lat: %.4f, Lng: %.4f", l.lat, l.lng)
	}
	return l.text
}

type coordinates struct {
	Lat *float64 `json:"lat"`
	Lng *float64 `json:"lng"`
}

func (l Location) MarshalJSON() ([]byte, error) {
	if l.coords {
		return json.Marshal(coordinates{Lat: &l.lat, Lng: &l.lng})
	}
	return json.Marshal(l.text)
}

func (l *Location) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	switch {
	case bytes.Equal(trimmed, []byte("null")):
		*l = Location{}
		return nil
	case len(trimmed) > 0 && trimmed[0] == '"':
		var text string
		if err := json.Unmarshal(trimmed, &text); err != nil {
			return fmt.Errorf("failed to decode location: %w", err)
		}
		*l = TextLocation(text)
		return nil
	}

	var c coordinates
	if err := json.Unmarshal(trimmed, &c); err != nil {
		return fmt.Errorf("failed to decode location: %w", err)
	}
	if c.Lat == nil || c.Lng == nil {
		return errors.New("location object needs lat and lng")
	}
	*l = CoordinatesLocation(*c.Lat, *c.Lng)
	return nil
}

const notAvailable = "N/A"

var dateLayouts = []string{time.RFC3339Nano, time.RFC3339, "2006-01-02T15:04:05", time.DateOnly}

// FormatDate renders an item date as a short en-US date, or N/A when the value
// is missing or cannot be parsed.
func FormatDate(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return notAvailable
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.Format("1/2/2006")
		}
	}
	return notAvailable
}
