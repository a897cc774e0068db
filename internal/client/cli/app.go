// Package cli is the interactive terminal front-end for the booking API.
package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/hongminglow/atithi-inn/internal/client"
	"github.com/hongminglow/atithi-inn/internal/models"
	"github.com/hongminglow/atithi-inn/internal/models/dto"
)

// API is the slice of *client.Client the commands use.
type API interface {
	State() *client.State

	Register(ctx context.Context, req dto.RegisterRequest) (models.User, error)
	Login(ctx context.Context, email, password string) (models.User, error)
	Logout(ctx context.Context) error
	Me(ctx context.Context) (client.Profile, error)
	AdminRegister(ctx context.Context, req dto.AdminRegisterRequest) (models.Admin, error)
	AdminLogin(ctx context.Context, email, password string) (models.Admin, error)
	AdminUsers(ctx context.Context) ([]models.User, error)

	Hotels(ctx context.Context, search client.HotelSearch) (dto.ListResponse[models.Hotel], error)
	Hotel(ctx context.Context, id string) (models.Hotel, error)

	Book(ctx context.Context, roomID string, req dto.CreateBookingRequest) (models.Booking, error)
	MyBookings(ctx context.Context) ([]models.Booking, error)
	CancelBooking(ctx context.Context, id string) (models.Booking, error)
}

// App runs commands against the API, reading prompts from in and writing to out.
type App struct {
	api API
	in  *bufio.Reader
	out io.Writer
	fd  int
}

func NewApp(api API, in io.Reader, out io.Writer) *App {
	return &App{api: api, in: bufio.NewReader(in), out: out, fd: int(os.Stdin.Fd())}
}

type command struct {
	usage string
	help  string
	run   func(a *App, ctx context.Context, args []string) error
}

var commands = map[string]command{
	"register":       {"register", "create a guest account", (*App).register},
	"login":          {"login", "sign in as a guest", (*App).login},
	"logout":         {"logout", "sign out of every session", (*App).logout},
	"me":             {"me", "show the signed-in profile", (*App).me},
	"hotels":         {"hotels [city] [page]", "search hotels", (*App).hotels},
	"hotel":          {"hotel <id>", "show hotel details and rooms", (*App).hotel},
	"book":           {"book <roomId> <checkIn> <checkOut> [guests]", "reserve a room", (*App).book},
	"bookings":       {"bookings", "list my bookings", (*App).bookings},
	"cancel":         {"cancel <bookingId>", "cancel a booking", (*App).cancel},
	"admin-login":    {"admin-login", "sign in as an administrator", (*App).adminLogin},
	"admin-register": {"admin-register", "create an administrator account", (*App).adminRegister},
	"admin-users":    {"admin-users", "list registered users", (*App).adminUsers},
}

var commandOrder = []string{
	"register", "login", "logout", "me", "hotels", "hotel", "book", "bookings", "cancel",
	"admin-login", "admin-register", "admin-users",
}

// Exec runs a single command.
func (a *App) Exec(ctx context.Context, name string, args []string) error {
	if name == "help" {
		a.help()
		return nil
	}
	cmd, ok := commands[name]
	if !ok {
		return fmt.Errorf("unknown command %q, type 'help' for a list", name)
	}
	return cmd.run(a, ctx, args)
}

// Run is the read-eval-print loop. It returns on EOF, exit or quit.
func (a *App) Run(ctx context.Context) error {
	fmt.Fprintln(a.out, "Welcome to AtithiInn (type 'help' for commands)")
	for {
		fmt.Fprintf(a.out, "atithi%s> ", a.status())
		line, err := a.in.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return err
		}
		fields := strings.Fields(line)
		if len(fields) > 0 {
			if fields[0] == "exit" || fields[0] == "quit" {
				fmt.Fprintln(a.out, "Bye!")
				return nil
			}
			if cmdErr := a.Exec(ctx, fields[0], fields[1:]); cmdErr != nil {
				a.report(cmdErr)
			}
		}
		if err != nil {
			fmt.Fprintln(a.out)
			return nil
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
	}
}

func (a *App) status() string {
	state := a.api.State()
	switch {
	case state.AdminSession() != nil && state.AdminSession().Admin != nil:
		return fmt.Sprintf(" (admin %s)", state.AdminSession().Admin.Name)
	case state.UserSession() != nil && state.UserSession().User != nil:
		return fmt.Sprintf(" (%s)", state.UserSession().User.Username)
	}
	return ""
}

func (a *App) report(err error) {
	var apiErr *client.APIError
	switch {
	case errors.Is(err, client.ErrUnavailable):
		fmt.Fprintln(a.out, "Error:", client.ErrUnavailable)
	case errors.As(err, &apiErr):
		fmt.Fprintln(a.out, "Error:", apiErr.Message)
	default:
		fmt.Fprintln(a.out, "Error:", err)
	}
}

func (a *App) help() {
	fmt.Fprintln(a.out, "Commands:")
	for _, name := range commandOrder {
		cmd := commands[name]
		fmt.Fprintf(a.out, "  %-46s %s\n", cmd.usage, cmd.help)
	}
	fmt.Fprintf(a.out, "  %-46s %s\n", "exit", "leave")
}
