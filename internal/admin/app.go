// Package admin implements the operator command line: creating the first
// superuser and promoting existing accounts.
package admin

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"

	"github.com/dmitrijs2005/folio/internal/server/models"
)

const minPasswordLength = 8

// Accounts is the part of the user service the admin command needs.
type Accounts interface {
	CreateSuperuser(ctx context.Context, username, email, password string) (*models.User, error)
	Promote(ctx context.Context, email string) error
}

type App struct {
	accounts Accounts
	in       *bufio.Reader
	out      io.Writer
}

func NewApp(accounts Accounts, in io.Reader, out io.Writer) *App {
	return &App{accounts: accounts, in: bufio.NewReader(in), out: out}
}

const usage = `usage: folio-admin [-c config.json] <command> [flags]

commands:
  create-superuser [-username name] [-email address]
  promote -email address
`

// Run executes the subcommand named by args[0].
func (a *App) Run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		fmt.Fprint(a.out, usage)
		return errors.New("no command given")
	}

	switch args[0] {
	case "create-superuser":
		return a.createSuperuser(ctx, args[1:])
	case "promote":
		return a.promote(ctx, args[1:])
	case "help", "-h", "--help":
		fmt.Fprint(a.out, usage)
		return nil
	default:
		fmt.Fprint(a.out, usage)
		return fmt.Errorf("unknown command %q", args[0])
	}
}

func (a *App) createSuperuser(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("create-superuser", flag.ContinueOnError)
	fs.SetOutput(a.out)
	username := fs.String("username", "", "username")
	email := fs.String("email", "", "email address")
	if err := fs.Parse(args); err != nil {
		return err
	}

	var err error
	if *username == "" {
		if *username, err = GetSimpleText(a.in, "Username", a.out); err != nil {
			return err
		}
	}
	if *email == "" {
		if *email, err = GetSimpleText(a.in, "Email", a.out); err != nil {
			return err
		}
	}
	if strings.TrimSpace(*username) == "" || strings.TrimSpace(*email) == "" {
		return errors.New("username and email are required")
	}

	password, err := GetPassword(a.in, "Password", a.out)
	if err != nil {
		return err
	}
	if len(password) < minPasswordLength {
		return fmt.Errorf("password must be at least %d characters", minPasswordLength)
	}
	confirm, err := GetPassword(a.in, "Password (again)", a.out)
	if err != nil {
		return err
	}
	if password != confirm {
		return errors.New("passwords do not match")
	}

	u, err := a.accounts.CreateSuperuser(ctx, *username, *email, password)
	if err != nil {
		return fmt.Errorf("create superuser: %w", err)
	}

	fmt.Fprintf(a.out, "Superuser %s (%s) created with id %d\n", u.Username, u.Email, u.ID)
	return nil
}

func (a *App) promote(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("promote", flag.ContinueOnError)
	fs.SetOutput(a.out)
	email := fs.String("email", "", "email address of the account")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *email == "" {
		return errors.New("-email is required")
	}

	if err := a.accounts.Promote(ctx, *email); err != nil {
		return fmt.Errorf("promote %s: %w", *email, err)
	}

	fmt.Fprintf(a.out, "%s is now a superuser\n", *email)
	return nil
}
