package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/google/uuid"

	"github.com/broady/passwords"
	"github.com/broady/passwords/sessionstore"
)

type LoginCmd struct {
	PasswordStdin bool `help:"Read the password from stdin instead of prompting." name:"password-stdin"`
}

func (c *LoginCmd) Run(a *app) error {
	ctx, cancel := a.context()
	defer cancel()

	prompt := fmt.Sprintf("Password for %s on %s: ", a.cfg.Username, a.client.ServerURL())
	if c.PasswordStdin {
		prompt = ""
	}
	secret, err := a.secret(prompt)
	if err != nil {
		return err
	}
	if err := a.client.Login(ctx, a.cfg.Username, secret); err != nil {
		return err
	}
	if err := a.remember(ctx); err != nil {
		return err
	}
	fmt.Fprintf(a.stdout, "Logged in as %s\n", a.cfg.Username)
	return nil
}

type LogoutCmd struct{}

func (c *LogoutCmd) Run(a *app) error {
	ctx, cancel := a.context()
	defer cancel()

	state, err := a.store.Load(ctx, a.key())
	if errors.Is(err, sessionstore.ErrNotFound) {
		fmt.Fprintln(a.stdout, "Not logged in")
		return nil
	}
	if err != nil {
		return err
	}

	// A session the server already dropped only needs forgetting.
	if err := a.client.Resume(ctx, state); err == nil {
		if err := a.client.Disconnect(ctx); err != nil {
			a.logger.Warn("closing session failed", "error", err)
		}
	}
	if err := a.store.Delete(ctx, a.key()); err != nil {
		return err
	}
	fmt.Fprintln(a.stdout, "Logged out")
	return nil
}

type StatusCmd struct{}

func (c *StatusCmd) Run(a *app) error {
	ctx, cancel := a.context()
	defer cancel()

	if err := a.connect(ctx); err != nil {
		if errors.Is(err, errNotLoggedIn) {
			fmt.Fprintln(a.stdout, "Not logged in")
			return nil
		}
		return err
	}
	state, _ := a.client.Session()
	w := tabwriter.NewWriter(a.stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintf(w, "Server:\t%s\n", state.ServerURL)
	fmt.Fprintf(w, "User:\t%s\n", state.Username)
	fmt.Fprintf(w, "State:\t%s\n", a.client.Status())
	fmt.Fprintf(w, "Keepalive:\t%s\n", state.KeepAliveInterval())
	fmt.Fprintf(w, "Refreshed:\t%s\n", state.LastRefresh.Format(time.RFC3339))
	return w.Flush()
}

type FoldersCmd struct {
	List FoldersListCmd `cmd:"" default:"withargs" help:"List folders."`
}

type FoldersListCmd struct {
	JSON bool `help:"Print JSON." name:"json"`
}

func (c *FoldersListCmd) Run(a *app) error {
	ctx, cancel := a.context()
	defer cancel()
	if err := a.connect(ctx); err != nil {
		return err
	}
	folders, err := a.client.Folders().List(ctx, passwords.FolderDetails{})
	if err != nil {
		return err
	}
	if c.JSON {
		return printJSON(a.stdout, folders)
	}
	w := tabwriter.NewWriter(a.stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tLABEL\tPARENT\tFAVORITE")
	for _, f := range folders {
		fmt.Fprintf(w, "%s\t%s\t%s\t%t\n", f.ID, f.Label, f.Parent, f.Favorite)
	}
	return w.Flush()
}

type PasswordsCmd struct {
	List   PasswordsListCmd   `cmd:"" default:"withargs" help:"List passwords."`
	Find   PasswordsFindCmd   `cmd:"" help:"Find passwords by criteria."`
	Show   PasswordsShowCmd   `cmd:"" help:"Show one password."`
	Create PasswordsCreateCmd `cmd:"" help:"Create a password."`
	Delete PasswordsDeleteCmd `cmd:"" help:"Move a password to the trash, or delete it from there."`
}

type PasswordsListCmd struct {
	JSON bool `help:"Print JSON." name:"json"`
}

func (c *PasswordsListCmd) Run(a *app) error {
	ctx, cancel := a.context()
	defer cancel()
	if err := a.connect(ctx); err != nil {
		return err
	}
	list, err := a.client.Passwords().List(ctx, passwords.PasswordDetails{})
	if err != nil {
		return err
	}
	return printPasswords(a.stdout, list, c.JSON)
}

type PasswordsFindCmd struct {
	Favorite string `help:"Only favorites (true) or non-favorites (false)." enum:",true,false" default:""`
	Trashed  bool   `help:"Search the trash."`
	Status   string `help:"Security status." enum:",ok,weak,breached" default:""`
	Since    string `help:"Only passwords updated after this date (YYYY-MM-DD)."`
	JSON     bool   `help:"Print JSON." name:"json"`
}

// Criteria translates the flags into search criteria.
func (c *PasswordsFindCmd) Criteria() (passwords.PasswordSearch, error) {
	s := passwords.NewPasswordSearch()
	if c.Favorite != "" {
		s = s.AndFavorite(passwords.Exact(c.Favorite == "true"))
	}
	if c.Trashed {
		s = s.AndTrashed(passwords.Exact(true))
	}
	switch c.Status {
	case "ok":
		s = s.AndStatus(passwords.Exact(passwords.SecurityOK))
	case "weak":
		s = s.AndStatus(passwords.Exact(passwords.SecurityUserRulesViolated))
	case "breached":
		s = s.AndStatus(passwords.Exact(passwords.SecurityBreached))
	}
	if c.Since != "" {
		t, err := time.Parse(time.DateOnly, c.Since)
		if err != nil {
			return s, fmt.Errorf("--since: %w", err)
		}
		s = s.AndUpdated(passwords.GreaterThan(t.Unix()))
	}
	return s, nil
}

func (c *PasswordsFindCmd) Run(a *app) error {
	criteria, err := c.Criteria()
	if err != nil {
		return err
	}
	ctx, cancel := a.context()
	defer cancel()
	if err := a.connect(ctx); err != nil {
		return err
	}
	list, err := a.client.Passwords().Find(ctx, criteria, passwords.PasswordDetails{})
	if err != nil {
		return err
	}
	return printPasswords(a.stdout, list, c.JSON)
}

type PasswordsShowCmd struct {
	ID     uuid.UUID `arg:"" help:"Password id."`
	Reveal bool      `help:"Print the password itself." short:"r"`
	JSON   bool      `help:"Print JSON." name:"json"`
}

func (c *PasswordsShowCmd) Run(a *app) error {
	ctx, cancel := a.context()
	defer cancel()
	if err := a.connect(ctx); err != nil {
		return err
	}
	p, err := a.client.Passwords().Get(ctx, c.ID, passwords.PasswordDetails{}.WithFolder().WithTags())
	if err != nil {
		return err
	}
	if !c.Reveal {
		p.Password = "********"
	}
	if c.JSON {
		return printJSON(a.stdout, p)
	}

	w := tabwriter.NewWriter(a.stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintf(w, "ID:\t%s\n", p.ID)
	fmt.Fprintf(w, "Label:\t%s\n", p.Label)
	fmt.Fprintf(w, "Username:\t%s\n", p.Username)
	fmt.Fprintf(w, "Password:\t%s\n", p.Password)
	fmt.Fprintf(w, "URL:\t%s\n", p.URL)
	if folder, ok := p.Folder.Data(); ok {
		fmt.Fprintf(w, "Folder:\t%s\n", folder.Label)
	} else if !p.Folder.IsZero() {
		fmt.Fprintf(w, "Folder:\t%s\n", p.Folder.ID)
	}
	for _, t := range p.Tags {
		fmt.Fprintf(w, "Tag:\t%s\n", t.Label)
	}
	fmt.Fprintf(w, "Status:\t%s\n", p.Status)
	fmt.Fprintf(w, "Revision:\t%s\n", p.Revision)
	if p.Notes != "" {
		fmt.Fprintf(w, "Notes:\t%s\n", p.Notes)
	}
	return w.Flush()
}

type PasswordsCreateCmd struct {
	Label    string    `arg:"" help:"Label of the new password."`
	Username string    `help:"Account user name."`
	URL      string    `help:"Site address." name:"url"`
	Notes    string    `help:"Free-form notes."`
	Folder   uuid.UUID `help:"Folder id."`
	Favorite bool      `help:"Mark as favorite."`
	Generate bool      `help:"Generate the password on the server instead of reading it." short:"g"`
}

func (c *PasswordsCreateCmd) Run(a *app) error {
	ctx, cancel := a.context()
	defer cancel()
	if err := a.connect(ctx); err != nil {
		return err
	}

	var secret string
	if c.Generate {
		gen, err := a.client.Service().GenerateWithUserSettings(ctx)
		if err != nil {
			return err
		}
		secret = gen.Password
	} else {
		var err error
		if secret, err = a.secret("Password: "); err != nil {
			return err
		}
	}

	create := passwords.NewCreatePassword(c.Label, secret, passwords.HashPassword(secret))
	if c.Username != "" {
		create = create.WithUsername(c.Username)
	}
	if c.URL != "" {
		create = create.WithURL(c.URL)
	}
	if c.Notes != "" {
		create = create.WithNotes(c.Notes)
	}
	if c.Folder != uuid.Nil {
		create = create.WithFolder(passwords.RelationTo[passwords.Folder](c.Folder))
	}
	if c.Favorite {
		create = create.WithFavorite(true)
	}

	id, err := a.client.Passwords().Create(ctx, create)
	if err != nil {
		return err
	}
	fmt.Fprintln(a.stdout, id.ID)
	return nil
}

type PasswordsDeleteCmd struct {
	ID        uuid.UUID `arg:"" help:"Password id."`
	Permanent bool      `help:"Delete for good instead of moving to the trash."`
}

func (c *PasswordsDeleteCmd) Run(a *app) error {
	ctx, cancel := a.context()
	defer cancel()
	if err := a.connect(ctx); err != nil {
		return err
	}
	api := a.client.Passwords()
	gone, err := api.Delete(ctx, c.ID, nil)
	if err != nil {
		return err
	}
	if c.Permanent && gone.InTrash() {
		if gone, err = api.Delete(ctx, c.ID, nil); err != nil {
			return err
		}
	}
	if gone.InTrash() {
		fmt.Fprintf(a.stdout, "Moved %s to the trash\n", gone.ID)
	} else {
		fmt.Fprintf(a.stdout, "Deleted %s\n", gone.ID)
	}
	return nil
}

type GenerateCmd struct {
	Strength int  `help:"Strength from 1 to 4. Zero uses the account settings." short:"s"`
	Numbers  bool `help:"Include numbers." short:"n"`
	Special  bool `help:"Include special characters." short:"x"`
	Words    bool `help:"Also print the words the password is made of." short:"w"`
}

func (c *GenerateCmd) Run(a *app) error {
	ctx, cancel := a.context()
	defer cancel()
	if err := a.connect(ctx); err != nil {
		return err
	}

	var (
		gen *passwords.GeneratedPassword
		err error
	)
	if c.Strength == 0 && !c.Numbers && !c.Special {
		gen, err = a.client.Service().GenerateWithUserSettings(ctx)
	} else {
		req := passwords.NewGeneratePassword().WithNumbers(c.Numbers).WithSpecial(c.Special)
		if c.Strength != 0 {
			req = req.WithStrength(c.Strength)
		}
		gen, err = a.client.Service().GeneratePassword(ctx, req)
	}
	if err != nil {
		return err
	}
	fmt.Fprintln(a.stdout, gen.Password)
	if c.Words {
		for _, w := range gen.Words {
			fmt.Fprintln(a.stdout, w)
		}
	}
	return nil
}

func printPasswords(out io.Writer, list []passwords.Password, asJSON bool) error {
	if asJSON {
		for i := range list {
			list[i].Password = ""
		}
		return printJSON(out, list)
	}
	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tLABEL\tUSERNAME\tURL\tSTATUS")
	for _, p := range list {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", p.ID, p.Label, p.Username, p.URL, p.Status)
	}
	return w.Flush()
}

func printJSON(out io.Writer, v any) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
