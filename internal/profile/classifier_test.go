package profile

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	items := []Item{
		{ID: "1", Owner: "u1", ItemType: "Lost "},
		{ID: "2", Owner: "u1", ItemType: "found"},
		{ID: "3", Owner: "u2", ItemType: "lost"},
		{ID: "4", UserID: "U1", ItemType: "LOST"},
		{ID: "5", Owner: " u1 ", ItemType: "lost"},
		{ID: "6", Owner: "u1", ItemType: "stolen"},
		{ID: "7", Owner: "u2", UserID: "u1", ItemType: "lost"},
		{ID: "8", ItemType: "lost"},
	}

	tests := []struct {
		name     string
		userID   string
		itemType ItemType
		wantIDs  []string
	}{
		{
			name:     "lost items keep input order",
			userID:   "u1",
			itemType: ItemTypeLost,
			wantIDs:  []string{"1", "5"},
		},
		{
			name:     "ids are case sensitive",
			userID:   "U1",
			itemType: ItemTypeLost,
			wantIDs:  []string{"4"},
		},
		{
			name:     "found items",
			userID:   "u1",
			itemType: ItemTypeFound,
			wantIDs:  []string{"2"},
		},
		{
			name:     "other owner",
			userID:   "u2",
			itemType: ItemTypeLost,
			wantIDs:  []string{"3", "7"},
		},
		{
			name:     "unknown user",
			userID:   "u3",
			itemType: ItemTypeLost,
			wantIDs:  []string{},
		},
		{
			name:     "empty user id matches nothing",
			userID:   "",
			itemType: ItemTypeLost,
			wantIDs:  []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Classify(items, tt.userID, tt.itemType)

			ids := make([]string, 0, len(got))
			for _, item := range got {
				ids = append(ids, item.ID)
			}
			assert.Equal(t, tt.wantIDs, ids)
		})
	}
}

func TestClassify_MatchesDefinition(t *testing.T) {
	owners := []Ref{"", "u1", "U1", " u1", "u2", "42"}
	types := []string{"lost", "Lost ", " FOUND", "found", "other", ""}
	users := []string{"u1", "42", "u2"}

	var items []Item
	for _, owner := range owners {
		for _, legacy := range owners {
			for _, typ := range types {
				items = append(items, Item{Owner: owner, UserID: legacy, ItemType: typ})
			}
		}
	}

	for _, user := range users {
		for _, want := range []ItemType{ItemTypeLost, ItemTypeFound} {
			got := Classify(items, user, want)

			var expected []Item
			for _, item := range items {
				owner := item.Owner
				if owner.IsZero() {
					owner = item.UserID
				}
				if owner.Normalize() == Ref(user).Normalize() && normalizeType(item.ItemType) == string(want) {
					expected = append(expected, item)
				}
			}
			assert.ElementsMatch(t, expected, got, "user %s type %s", user, want)
			assert.Equal(t, len(expected), len(got))
		}
	}
}

func TestClassify_DoesNotModifyInput(t *testing.T) {
	items := []Item{{ID: "1", Owner: "u1", ItemType: "lost"}, {ID: "2", Owner: "u2", ItemType: "lost"}}
	before := append([]Item(nil), items...)

	_ = Classify(items, "u1", ItemTypeLost)

	assert.Equal(t, before, items)
}

func normalizeType(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
