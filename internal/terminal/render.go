package terminal

import (
	"errors"
	"fmt"
	"io"
	"slices"
	"text/tabwriter"

	"github.com/dtroode/lostfound/internal/profile"
)

// Render writes the profile screen.
func Render(w io.Writer, v profile.View) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)

	if v.Loading {
		fmt.Fprintln(tw, "Loading...")
		return tw.Flush()
	}

	fmt.Fprintf(tw, "Profile (%s)\n", v.Mode)
	if v.Mode == profile.ModeEditing {
		renderDraft(tw, v)
	} else {
		renderAccount(tw, v.Account)
	}

	renderItems(tw, "Lost items", "No lost items.", v.Lost)
	renderItems(tw, "Found items", "No found items.", v.Found)

	if v.Err != nil {
		fmt.Fprintf(tw, "\nError: %s\n", describe(v.Err))
	}

	return tw.Flush()
}

func renderAccount(w io.Writer, a profile.Account) {
	fmt.Fprintf(w, "  Email:\t%s\n", a.Email)
	fmt.Fprintf(w, "  User name:\t%s\n", a.UserName)
	avatar := a.AvatarURL
	if avatar == "" {
		avatar = "(none)"
	}
	fmt.Fprintf(w, "  Avatar:\t%s\n", avatar)
}

func renderDraft(w io.Writer, v profile.View) {
	password := "(unchanged)"
	if v.Draft.Password != "" {
		password = "********"
	}

	field := func(label, name, value string) {
		fmt.Fprintf(w, "  %s:\t%s", label, value)
		if msg, ok := v.FieldErrors[name]; ok {
			fmt.Fprintf(w, "\t! %s", msg)
		}
		fmt.Fprintln(w)
	}
	field("Email", profile.FieldEmail, v.Draft.Email)
	field("User name", profile.FieldUserName, v.Draft.UserName)
	field("Password", profile.FieldPassword, password)

	image := v.Preview
	if image == "" {
		image = "(keep current)"
	}
	field("Image", profile.FieldProfileImage, image)

	if v.Submitting {
		fmt.Fprintln(w, "  Saving...")
	}
}

func renderItems(w io.Writer, title, empty string, items []profile.ItemView) {
	fmt.Fprintf(w, "\n%s (%d)\n", title, len(items))
	if len(items) == 0 {
		fmt.Fprintf(w, "  %s\n", empty)
		return
	}

	fmt.Fprintln(w, "  ID\tNAME\tDESCRIPTION\tCATEGORY\tLOCATION\tDATE")
	for _, it := range items {
		fmt.Fprintf(w, "  %s\t%s\t%s\t%s\t%s\t%s\n", it.ID, it.Name, it.Description, it.Category, it.Location, it.Date)
	}
}

// describe flattens a validation error into one line per field.
func describe(err error) string {
	var verr *profile.ValidationError
	if !errors.As(err, &verr) {
		return err.Error()
	}

	fields := make([]string, 0, len(verr.Fields))
	for name := range verr.Fields {
		fields = append(fields, name)
	}
	slices.Sort(fields)

	out := "please fix the highlighted fields"
	for _, name := range fields {
		out += fmt.Sprintf("\n  %s: %s", name, verr.Fields[name])
	}
	return out
}
