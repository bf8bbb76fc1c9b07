// Package app composes the session store and trip collection manager into
// the top-level controller: it routes between named views, keeps the trip
// cache in sync with the session token, and owns the dismissible error
// banner. The wizard runs on its own and reaches the controller only through
// CreateTrip, its completion hand-off.
package app

import (
	"context"
	"log/slog"

	"github.com/hoppin-app/hoppin-go/internal/api"
	"github.com/hoppin-app/hoppin-go/internal/domain"
	"github.com/hoppin-app/hoppin-go/internal/session"
	"github.com/hoppin-app/hoppin-go/internal/trips"
)

// View names a screen of the client.
type View string

const (
	ViewHome    View = "home"
	ViewSignUp  View = "signup"
	ViewLogin   View = "login"
	ViewMyTrips View = "mytrips"
	ViewCreate  View = "create"
	ViewAdmin   View = "admin"
	ViewFAQ     View = "faq"
)

// Controller is the single owner of client state. All operations run on one
// goroutine; completion of each backend call is handled atomically with
// respect to the rest of the state.
type Controller struct {
	session *session.Store
	trips   *trips.Manager
	logger  *slog.Logger

	view      View
	errMsg    string
	lastToken string
}

// NewController wires the controller. logger may be nil, in which case the
// process-default logger is used.
func NewController(store *session.Store, manager *trips.Manager, logger *slog.Logger) *Controller {
	if logger == nil {
		logger = slog.Default()
	}
	return &Controller{
		session: store,
		trips:   manager,
		logger:  logger,
		view:    ViewHome,
	}
}

// Start restores any persisted session and performs the initial trip sync.
// A restore failure is indistinguishable from no stored session.
func (c *Controller) Start(ctx context.Context) {
	c.session.Restore()
	if user := c.session.Current(); user != nil {
		c.logger.Info("session restored", "email", user.Email, "admin", user.IsAdmin)
	}
	c.syncTrips(ctx)
}

// Login authenticates and, on success, routes admins to the admin view and
// everyone else home. On failure the previous session state is untouched and
// the error message is surfaced.
func (c *Controller) Login(ctx context.Context, email, password string) error {
	c.errMsg = ""
	user, err := c.session.Login(ctx, email, password)
	if err != nil {
		return c.fail(ctx, err)
	}
	c.routeAfterAuth(user)
	c.syncTrips(ctx)
	return nil
}

// SignUp registers a new account; a successful registration behaves like a
// login, including the admin/home routing rule.
func (c *Controller) SignUp(ctx context.Context, reg domain.Registration) error {
	c.errMsg = ""
	user, err := c.session.SignUp(ctx, reg)
	if err != nil {
		return c.fail(ctx, err)
	}
	c.routeAfterAuth(user)
	c.syncTrips(ctx)
	return nil
}

// Logout clears the session and trip cache and routes home. Idempotent.
// The current error banner, if any, stays visible — a forced logout must not
// hide the message that caused it.
func (c *Controller) Logout(ctx context.Context) {
	c.session.Logout()
	c.view = ViewHome
	c.syncTrips(ctx)
}

// CreateTrip is the wizard's completion hand-off: it sends the draft to the
// backend, appends the canonical trip to the cache, and routes to my-trips.
func (c *Controller) CreateTrip(ctx context.Context, draft domain.TripDraft) error {
	c.errMsg = ""
	created, err := c.trips.Create(ctx, c.session.Current(), draft)
	if err != nil {
		return c.fail(ctx, err)
	}
	c.logger.Info("trip created", "id", created.ID)
	c.view = ViewMyTrips
	return nil
}

// ToggleMatched flips one trip's matched flag; the view does not change.
func (c *Controller) ToggleMatched(ctx context.Context, tripID string) error {
	c.errMsg = ""
	if _, err := c.trips.ToggleMatched(ctx, c.session.Current(), tripID); err != nil {
		return c.fail(ctx, err)
	}
	return nil
}

// Navigate switches to the requested view when the session allows it:
// my-trips and the wizard need an authenticated non-admin, the admin view
// needs an admin. Disallowed requests leave the view unchanged.
func (c *Controller) Navigate(view View) {
	user := c.session.Current()
	switch view {
	case ViewMyTrips, ViewCreate:
		if user == nil || user.IsAdmin {
			return
		}
	case ViewAdmin:
		if user == nil || !user.IsAdmin {
			return
		}
	case ViewHome, ViewSignUp, ViewLogin, ViewFAQ:
		// open to everyone
	default:
		return
	}
	c.view = view
}

// View returns the current view.
func (c *Controller) View() View {
	return c.view
}

// Session returns the current user, or nil when anonymous.
func (c *Controller) Session() *domain.User {
	return c.session.Current()
}

// VisibleTrips returns the cached trips the session user may see.
func (c *Controller) VisibleTrips() []domain.Trip {
	return c.trips.Visible(c.session.Current())
}

// QueryTrips applies the admin table's search/filter/sort to the visible set.
func (c *Controller) QueryTrips(q trips.Query) []domain.Trip {
	return q.Apply(c.VisibleTrips())
}

// ErrorMessage returns the most recent surfaced error, or "" when none.
func (c *Controller) ErrorMessage() string {
	return c.errMsg
}

// DismissError clears the error banner.
func (c *Controller) DismissError() {
	c.errMsg = ""
}

// fail records err as the surfaced message and, when it is an authentication
// rejection, forces the logout effect regardless of which operation failed.
func (c *Controller) fail(ctx context.Context, err error) error {
	c.errMsg = err.Error()
	c.logger.Warn("operation failed", "error", err)
	if api.IsAuthRejection(err) {
		c.logger.Info("auth rejected, clearing session")
		c.Logout(ctx)
	}
	return err
}

// routeAfterAuth applies the post-login routing rule.
func (c *Controller) routeAfterAuth(user *domain.User) {
	if user.IsAdmin {
		c.view = ViewAdmin
	} else {
		c.view = ViewHome
	}
}

// syncTrips refreshes the trip cache whenever the session token has changed
// since the last sync, including transitions to and from anonymous. This is
// the only place the cache is refreshed, so token changes cannot be missed.
func (c *Controller) syncTrips(ctx context.Context) {
	token := c.session.Token()
	if token == c.lastToken {
		return
	}
	c.lastToken = token
	if err := c.trips.Refresh(ctx, c.session.Current()); err != nil {
		c.fail(ctx, err)
	}
}
