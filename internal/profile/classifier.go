package profile

import "strings"

// Classify returns, in input order, the items owned by currentUserID whose
// type matches itemType. Item types are compared trimmed and lowercased.
func Classify(items []Item, currentUserID string, itemType ItemType) []Item {
	user := Ref(currentUserID)
	want := strings.ToLower(strings.TrimSpace(string(itemType)))

	out := make([]Item, 0, len(items))
	for _, item := range items {
		if !user.Equal(item.OwnerRef()) {
			continue
		}
		if strings.ToLower(strings.TrimSpace(item.ItemType)) != want {
			continue
		}
		out = append(out, item)
	}
	return out
}
