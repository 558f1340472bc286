package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/dtroode/lostfound/internal/client"
	"github.com/dtroode/lostfound/internal/profile"
	"github.com/dtroode/lostfound/internal/terminal"
)

const shellHelp = `Commands:
  show                   redraw the profile
  edit                   start or cancel editing
  set <field> <value>    set email, userName or password while editing
  image <path>           choose a new profile image
  clear-image            drop the chosen image
  submit                 save the changes
  cancel                 leave edit mode without saving
  refresh                re-fetch your items
  delete-item <id>       delete one of your items
  matches                list match notifications
  delete-account         delete your account
  logout                 sign out
  back                   leave the profile screen
  quit                   exit`

type matchLister interface {
	List(ctx context.Context) ([]client.Notification, error)
}

// shell is a read-eval-render loop around the profile controller. It runs
// until the controller navigates away from the profile screen.
type shell struct {
	ctrl    *profile.Controller
	nav     *terminal.Navigator
	prompt  *terminal.Prompt
	matches matchLister
	out     io.Writer
}

func newShell(ctrl *profile.Controller, nav *terminal.Navigator, prompt *terminal.Prompt, matches matchLister, out io.Writer) *shell {
	return &shell{ctrl: ctrl, nav: nav, prompt: prompt, matches: matches, out: out}
}

func (s *shell) run(ctx context.Context) error {
	defer s.ctrl.Close()

	if err := s.ctrl.Load(ctx); err != nil && errors.Is(err, profile.ErrNotAuthenticated) {
		fmt.Fprintln(s.out, "Not signed in. Run lostfound login first.")
		return nil
	}
	s.render()

	for s.nav.Location() == terminal.ProfilePath {
		line, err := s.prompt.ReadLine("> ")
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}
		if line == "" {
			continue
		}

		done, err := s.exec(ctx, line)
		if err != nil {
			return err
		}
		if done {
			return nil
		}
	}

	switch s.nav.Location() {
	case profile.LoginPath:
		fmt.Fprintln(s.out, "Session ended. Run lostfound login to sign in again.")
	case profile.EntryPath:
		fmt.Fprintln(s.out, "Bye.")
	}
	return nil
}

// exec runs one command line. Failures of controller actions are shown by the
// next render; only terminal I/O errors are returned.
func (s *shell) exec(ctx context.Context, line string) (bool, error) {
	name, rest, _ := strings.Cut(line, " ")
	rest = strings.TrimSpace(rest)

	switch name {
	case "quit", "exit":
		return true, nil
	case "help":
		fmt.Fprintln(s.out, shellHelp)
		return false, nil
	case "show":
	case "edit":
		s.ctrl.ToggleEdit()
	case "set":
		field, value, _ := strings.Cut(rest, " ")
		if err := s.ctrl.EditField(field, value); err != nil {
			s.fail(err)
			return false, nil
		}
	case "image":
		file, err := terminal.LoadImage(rest)
		if err != nil {
			s.fail(err)
			return false, nil
		}
		if err := s.ctrl.SelectImage(file); errors.Is(err, profile.ErrNotEditing) {
			s.fail(err)
			return false, nil
		}
	case "clear-image":
		s.ctrl.ClearImage()
	case "submit":
		if err := s.ctrl.Submit(ctx, s.ctrl.Draft().FormInput()); errors.Is(err, profile.ErrNotEditing) {
			s.fail(err)
			return false, nil
		}
	case "cancel":
		s.ctrl.Cancel()
	case "refresh":
		_ = s.ctrl.RefreshItems(ctx)
	case "delete-item":
		if rest == "" {
			s.fail(errors.New("usage: delete-item <id>"))
			return false, nil
		}
		_ = s.ctrl.DeleteItem(ctx, rest)
	case "matches":
		return false, s.listMatches(ctx)
	case "delete-account":
		_ = s.ctrl.DeleteAccount(ctx)
	case "logout":
		_ = s.ctrl.Logout(ctx)
	case "back":
		s.ctrl.Back()
	default:
		s.fail(fmt.Errorf("unknown command %q, type help", name))
		return false, nil
	}

	if s.nav.Location() == terminal.ProfilePath {
		s.render()
	}
	return false, nil
}

func (s *shell) render() {
	if err := terminal.Render(s.out, s.ctrl.View()); err != nil {
		fmt.Fprintf(s.out, "Error: %s\n", err)
	}
}

func (s *shell) fail(err error) {
	fmt.Fprintf(s.out, "Error: %s\n", err)
}

func (s *shell) listMatches(ctx context.Context) error {
	list, err := s.matches.List(ctx)
	if err != nil {
		s.fail(err)
		return nil
	}
	if len(list) == 0 {
		fmt.Fprintln(s.out, "No matches yet.")
		return nil
	}

	tw := tabwriter.NewWriter(s.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "YOUR ITEM\tMATCHES\tCATEGORY\tWHEN")
	for _, n := range list {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", n.ItemName, n.MatchedName, n.Category, n.CreatedAt.Local().Format(time.DateTime))
	}
	return tw.Flush()
}
