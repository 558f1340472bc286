package profile

import "maps"

// View is everything needed to render the profile screen.
type View struct {
	Mode        Mode
	Loading     bool
	Submitting  bool
	Account     Account
	Draft       Draft
	Preview     string
	FieldErrors map[string]string
	Lost        []ItemView
	Found       []ItemView
	Err         error
}

// ItemView is an item with display-ready fields.
type ItemView struct {
	ID          string
	Name        string
	Description string
	Category    string
	Location    string
	Date        string
	ImgURL      string
}

// NewItemView formats item for display.
func NewItemView(item Item) ItemView {
	return ItemView{
		ID:          item.ID,
		Name:        item.Name,
		Description: item.Description,
		Category:    item.Category,
		Location:    item.Location.String(),
		Date:        FormatDate(item.Date),
		ImgURL:      item.ImgURL,
	}
}

// View returns the current render model.
func (c *Controller) View() View {
	v := View{
		Mode:        c.mode,
		Loading:     c.auth.IsLoading(),
		Submitting:  c.Submitting(),
		Account:     c.account,
		Draft:       c.draft,
		FieldErrors: maps.Clone(c.fieldErrors),
		Lost:        itemViews(c.LostItems()),
		Found:       itemViews(c.FoundItems()),
		Err:         c.lastErr,
	}
	if staged, ok := c.staging.Staged(); ok {
		v.Preview = staged.Preview
	}
	return v
}

func itemViews(items []Item) []ItemView {
	out := make([]ItemView, 0, len(items))
	for _, item := range items {
		out = append(out, NewItemView(item))
	}
	return out
}
