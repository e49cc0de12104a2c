// Package shell implements the interactive local console over the record
// store, for operators working without the HTTP API.
package shell

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/atinyakov/tranum/internal/currency"
	"github.com/atinyakov/tranum/internal/models"
	"github.com/atinyakov/tranum/internal/service"
)

const helpText = `Available commands:
  login <email> [traveler|admin]   sign in, the password is prompted
  register                         create a traveler account
  logout, whoami
  trips, add-trip, total           traveler trips and spend
  docs, add-doc                    travel documents with status
  health, add-health               health records
  luggage, add-luggage             tracked bags
  delete <trip|doc|health|luggage> <id>
  convert <amount> <from> <to>     e.g. convert 100 USD EUR
  travelers [query], stats         admin console
  exit`

// Shell reads commands line by line and runs them against the services.
type Shell struct {
	Auth     *service.AuthService
	Traveler *service.TravelerService
	Admin    *service.AdminService

	prompt *Prompter
	out    io.Writer
}

func New(auth *service.AuthService, traveler *service.TravelerService, admin *service.AdminService, in io.Reader, out io.Writer) *Shell {
	return &Shell{
		Auth:     auth,
		Traveler: traveler,
		Admin:    admin,
		prompt:   NewPrompter(in, out),
		out:      out,
	}
}

// Run loops until exit or end of input.
func (s *Shell) Run(ctx context.Context) {
	for {
		line, ok := s.prompt.Ask("tranum> ")
		if !ok {
			return
		}
		args := strings.Fields(line)
		if len(args) == 0 {
			continue
		}
		if args[0] == "exit" {
			fmt.Fprintln(s.out, "Bye")
			return
		}
		if err := s.exec(ctx, args); err != nil {
			fmt.Fprintln(s.out, "Error:", err)
		}
	}
}

func (s *Shell) exec(ctx context.Context, args []string) error {
	switch args[0] {
	case "help":
		fmt.Fprintln(s.out, helpText)
		return nil
	case "login":
		return s.login(ctx, args[1:])
	case "register":
		return s.register(ctx)
	case "logout":
		return s.Auth.Logout(ctx)
	case "whoami":
		u, ok := s.Auth.Current()
		if !ok {
			fmt.Fprintln(s.out, "Not signed in")
			return nil
		}
		fmt.Fprintf(s.out, "%s <%s> %s %s\n", u.FullName, u.Email, u.Role, u.TRNumber)
		return nil
	case "convert":
		return s.convert(args[1:])
	case "travelers", "stats":
		return s.admin(ctx, args)
	default:
		return s.traveler(ctx, args)
	}
}

func (s *Shell) login(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return errors.New("usage: login <email> [traveler|admin]")
	}
	password := s.prompt.ask("Password: ")
	var (
		u   models.User
		err error
	)
	if len(args) > 1 {
		u, err = s.Auth.LoginAs(ctx, args[0], password, models.Role(args[1]))
	} else {
		u, err = s.Auth.Login(ctx, args[0], password)
	}
	if err != nil {
		return err
	}
	fmt.Fprintf(s.out, "Welcome, %s\n", u.FullName)
	return nil
}

func (s *Shell) register(ctx context.Context) error {
	name := s.prompt.ask("Full name: ")
	email := s.prompt.ask("Email: ")
	password := s.prompt.ask("Password: ")
	u, err := s.Auth.Register(ctx, name, email, password)
	if err != nil {
		return err
	}
	fmt.Fprintf(s.out, "Registered %s with %s\n", u.Email, u.TRNumber)
	return nil
}

func (s *Shell) convert(args []string) error {
	if len(args) != 3 {
		return errors.New("usage: convert <amount> <from> <to>")
	}
	amount, err := currency.ParseAmount(args[0])
	if err != nil {
		return err
	}
	from, to := strings.ToUpper(args[1]), strings.ToUpper(args[2])
	v, err := currency.Convert(amount, from, to)
	if err != nil {
		return err
	}
	fmt.Fprintf(s.out, "%s %s = %s %s\n", strconv.FormatFloat(amount, 'f', -1, 64), from, strconv.FormatFloat(v, 'f', 2, 64), to)
	return nil
}

func (s *Shell) signedIn(role models.Role) (models.User, error) {
	u, ok := s.Auth.Current()
	if !ok {
		return models.User{}, errors.New("not signed in")
	}
	if u.Role != role {
		return models.User{}, fmt.Errorf("command needs a %s account", role)
	}
	return u, nil
}

func (s *Shell) admin(ctx context.Context, args []string) error {
	if _, err := s.signedIn(models.RoleAdmin); err != nil {
		return err
	}
	if args[0] == "stats" {
		return s.print(s.Admin.Stats(ctx))
	}
	for _, u := range s.Admin.Travelers(ctx, strings.Join(args[1:], " ")) {
		fmt.Fprintf(s.out, "%s  %s <%s> %s %s\n", u.TRNumber, u.FullName, u.Email, u.Tier, u.Status)
	}
	return nil
}

func (s *Shell) traveler(ctx context.Context, args []string) error {
	known := map[string]bool{
		"trips": true, "add-trip": true, "total": true, "docs": true, "add-doc": true,
		"health": true, "add-health": true, "luggage": true, "add-luggage": true, "delete": true,
	}
	if !known[args[0]] {
		return fmt.Errorf("unknown command %q, type 'help' for a list of commands", args[0])
	}
	u, err := s.signedIn(models.RoleTraveler)
	if err != nil {
		return err
	}

	switch args[0] {
	case "trips":
		return s.print(s.Traveler.Trips(ctx, u.ID))
	case "add-trip":
		t, err := s.prompt.PromptTrip()
		if err != nil {
			return err
		}
		return s.added(s.Traveler.AddTrip(ctx, u.ID, t))
	case "total":
		total, code := s.Traveler.TotalSpent(ctx, u)
		fmt.Fprintf(s.out, "Total spent: %.2f %s\n", total, code)
		return nil
	case "docs":
		return s.print(s.Traveler.Documents(ctx, u.ID))
	case "add-doc":
		return s.added(s.Traveler.AddDocument(ctx, u.ID, s.prompt.PromptDocument()))
	case "health":
		return s.print(s.Traveler.HealthRecords(ctx, u.ID))
	case "add-health":
		return s.added(s.Traveler.AddHealthRecord(ctx, u.ID, s.prompt.PromptHealthRecord()))
	case "luggage":
		return s.print(s.Traveler.Luggage(ctx, u.ID))
	case "add-luggage":
		return s.added(s.Traveler.AddLuggage(ctx, u.ID, s.prompt.PromptLuggage()))
	default:
		return s.remove(ctx, u.ID, args[1:])
	}
}

func (s *Shell) remove(ctx context.Context, userID string, args []string) error {
	if len(args) != 2 {
		return errors.New("usage: delete <trip|doc|health|luggage> <id>")
	}
	var err error
	switch args[0] {
	case "trip":
		err = s.Traveler.DeleteTrip(ctx, userID, args[1])
	case "doc":
		err = s.Traveler.DeleteDocument(ctx, userID, args[1])
	case "health":
		err = s.Traveler.DeleteHealthRecord(ctx, userID, args[1])
	case "luggage":
		err = s.Traveler.DeleteLuggage(ctx, userID, args[1])
	default:
		return fmt.Errorf("unknown record kind %q", args[0])
	}
	if err != nil {
		return err
	}
	fmt.Fprintln(s.out, "Deleted")
	return nil
}

func (s *Shell) added(rec interface{ RecordID() string }, err error) error {
	if err != nil {
		return err
	}
	fmt.Fprintf(s.out, "Added %s\n", rec.RecordID())
	return nil
}

func (s *Shell) print(v any) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Fprintln(s.out, string(b))
	return nil
}
