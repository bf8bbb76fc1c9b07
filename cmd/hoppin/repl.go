package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/hoppin-app/hoppin-go/internal/app"
	"github.com/hoppin-app/hoppin-go/internal/domain"
	"github.com/hoppin-app/hoppin-go/internal/trips"
	"github.com/hoppin-app/hoppin-go/internal/wizard"
)

// repl is a line-oriented shell over the controller. Every command runs to
// completion before the next line is read, which gives the single-threaded
// execution model the core assumes.
type repl struct {
	ctrl  *app.Controller
	in    *bufio.Scanner
	out   io.Writer
	query trips.Query // admin table controls, kept between commands
}

func newREPL(ctrl *app.Controller, in io.Reader, out io.Writer) *repl {
	return &repl{ctrl: ctrl, in: bufio.NewScanner(in), out: out}
}

func (r *repl) run(ctx context.Context) {
	fmt.Fprintln(r.out, "Hoppin — type 'help' for commands")
	for {
		r.banner()
		fmt.Fprintf(r.out, "[%s]> ", r.ctrl.View())
		if !r.in.Scan() {
			return
		}
		line := strings.TrimSpace(r.in.Text())
		if line == "" {
			continue
		}
		fields := strings.Fields(line)
		cmd, args := fields[0], fields[1:]

		switch cmd {
		case "quit", "exit":
			return
		case "help":
			r.help()
		case "dismiss":
			r.ctrl.DismissError()
		case "whoami":
			r.whoami()
		case "login":
			if len(args) != 2 {
				fmt.Fprintln(r.out, "usage: login <email> <password>")
				continue
			}
			if r.ctrl.Login(ctx, args[0], args[1]) == nil {
				r.whoami()
			}
		case "signup":
			if len(args) < 5 {
				fmt.Fprintln(r.out, "usage: signup <email> <phone> <first> <last> <password> [whatsapp]")
				continue
			}
			reg := domain.Registration{
				Email:           args[0],
				Phone:           args[1],
				FirstName:       args[2],
				LastName:        args[3],
				Password:        args[4],
				WhatsappConsent: len(args) > 5 && args[5] == "whatsapp",
			}
			if r.ctrl.SignUp(ctx, reg) == nil {
				r.whoami()
			}
		case "logout":
			r.ctrl.Logout(ctx)
		case "go":
			if len(args) != 1 {
				fmt.Fprintln(r.out, "usage: go <home|signup|login|mytrips|create|admin|faq>")
				continue
			}
			r.ctrl.Navigate(app.View(args[0]))
		case "trips":
			r.listTrips()
		case "find":
			r.query.Search = strings.Join(args, " ")
		case "role":
			r.setRoleFilter(args)
		case "sort":
			r.setSort(args)
		case "match":
			if len(args) != 1 {
				fmt.Fprintln(r.out, "usage: match <trip-id>")
				continue
			}
			if r.ctrl.ToggleMatched(ctx, args[0]) == nil {
				fmt.Fprintln(r.out, "toggled")
			}
		case "create":
			r.runWizard(ctx)
		default:
			fmt.Fprintf(r.out, "unknown command %q — try 'help'\n", cmd)
		}
	}
}

// banner shows the dismissible error message, if any.
func (r *repl) banner() {
	if msg := r.ctrl.ErrorMessage(); msg != "" {
		fmt.Fprintf(r.out, "! %s  (type 'dismiss' to clear)\n", msg)
	}
}

func (r *repl) help() {
	fmt.Fprint(r.out, `commands:
  login <email> <password>
  signup <email> <phone> <first> <last> <password> [whatsapp]
  logout
  whoami
  trips                 list visible trips (admins: filtered and sorted)
  find <text>           set the admin search filter
  role <driver|passenger|both|all>
  sort <datetime|arrival|departure>
  match <trip-id>       toggle the matched flag (admin)
  create                start the trip creation wizard
  go <view>             navigate between views
  dismiss               clear the error banner
  quit
`)
}

func (r *repl) whoami() {
	user := r.ctrl.Session()
	if user == nil {
		fmt.Fprintln(r.out, "not logged in")
		return
	}
	role := "user"
	if user.IsAdmin {
		role = "admin"
	}
	fmt.Fprintf(r.out, "%s <%s> (%s)\n", user.FullName(), user.Email, role)
}

func (r *repl) listTrips() {
	visible := r.ctrl.VisibleTrips()
	user := r.ctrl.Session()
	if user != nil && user.IsAdmin {
		visible = r.query.Apply(visible)
	}
	if len(visible) == 0 {
		fmt.Fprintln(r.out, "no trips")
		return
	}
	for _, t := range visible {
		matched := " "
		if t.IsMatched {
			matched = "*"
		}
		fmt.Fprintf(r.out, "%s [%s] %-9s %s -> %s  %s %s  %s  (%s)\n",
			matched, t.ID, t.Role, t.DepartureLocation, t.ArrivalLocation,
			t.Date, t.ArrivalTime, t.RecurrenceLabel(), t.UserName)
	}
}

func (r *repl) setRoleFilter(args []string) {
	if len(args) != 1 {
		fmt.Fprintln(r.out, "usage: role <driver|passenger|both|all>")
		return
	}
	if args[0] == "all" {
		r.query.Role = ""
		return
	}
	role := domain.Role(args[0])
	if !role.Valid() {
		fmt.Fprintln(r.out, "usage: role <driver|passenger|both|all>")
		return
	}
	r.query.Role = role
}

func (r *repl) setSort(args []string) {
	if len(args) != 1 {
		fmt.Fprintln(r.out, "usage: sort <datetime|arrival|departure>")
		return
	}
	switch mode := trips.SortMode(args[0]); mode {
	case trips.SortByDateTime, trips.SortByArrival, trips.SortByDeparture:
		r.query.Sort = mode
	default:
		fmt.Fprintln(r.out, "usage: sort <datetime|arrival|departure>")
	}
}

// runWizard drives the two-step creation flow. Cancelling discards the
// machine; a successful submit hands the draft to the controller.
func (r *repl) runWizard(ctx context.Context) {
	user := r.ctrl.Session()
	if user == nil || user.IsAdmin {
		fmt.Fprintln(r.out, "trip creation is for signed-in riders and drivers")
		return
	}

	m := wizard.New()
	fmt.Fprintln(r.out, "step 1 of 2 — choose a role: driver, passenger, or both ('cancel' to exit)")
	for {
		fmt.Fprintf(r.out, "(create %s)> ", stepName(m.Step()))
		if !r.in.Scan() {
			return
		}
		fields := strings.Fields(strings.TrimSpace(r.in.Text()))
		if len(fields) == 0 {
			continue
		}
		cmd, rest := fields[0], strings.Join(fields[1:], " ")

		var err error
		switch cmd {
		case "cancel":
			return
		case "driver", "passenger", "both":
			if err = m.SelectRole(domain.Role(cmd)); err == nil {
				fmt.Fprintln(r.out, "step 2 of 2 — from/to/date/time/repeat/day, then 'submit'")
			}
		case "back":
			m.Back()
		case "from":
			m.SetDepartureLocation(rest)
		case "to":
			m.SetArrivalLocation(rest)
		case "date":
			m.SetDate(rest)
		case "time":
			m.SetArrivalTime(rest)
		case "repeat":
			err = m.SetRecurrence(domain.Recurrence(rest))
		case "day":
			err = m.ToggleDay(rest)
		case "show":
			d := m.Draft()
			fmt.Fprintf(r.out, "%s: %s -> %s on %s at %s, %s %v\n",
				d.Role, d.DepartureLocation, d.ArrivalLocation, d.Date, d.ArrivalTime, d.Recurrence, d.RecurringDays)
		case "submit":
			draft, serr := m.Submit()
			if serr != nil {
				err = serr
				break
			}
			if r.ctrl.CreateTrip(ctx, draft) == nil {
				fmt.Fprintln(r.out, "trip created")
			}
			return
		default:
			fmt.Fprintf(r.out, "unknown wizard command %q\n", cmd)
		}
		if err != nil {
			fmt.Fprintln(r.out, err.Error())
		}
	}
}

func stepName(s wizard.Step) string {
	if s == wizard.StepRoleSelection {
		return "role"
	}
	return "details"
}
