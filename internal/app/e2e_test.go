package app_test

import (
	"context"
	"io"
	"log/slog"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hoppin-app/hoppin-go/internal/api"
	"github.com/hoppin-app/hoppin-go/internal/app"
	"github.com/hoppin-app/hoppin-go/internal/domain"
	"github.com/hoppin-app/hoppin-go/internal/session"
	"github.com/hoppin-app/hoppin-go/internal/stub"
	"github.com/hoppin-app/hoppin-go/internal/trips"
	"github.com/hoppin-app/hoppin-go/internal/wizard"
)

// These tests run the full client stack — controller, trip manager, session
// store, and HTTP client — against the in-memory backend over a real HTTP
// round trip. No mocks anywhere.

func startBackend(t *testing.T, adminEmails ...string) *httptest.Server {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	srv := httptest.NewServer(stub.NewServer("e2e-secret", adminEmails, logger).Routes())
	t.Cleanup(srv.Close)
	return srv
}

// buildClient wires a controller against the backend, persisting the session
// at sessionPath so a second controller can restore it.
func buildClient(t *testing.T, backend *httptest.Server, sessionPath string) *app.Controller {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	client := api.NewClient(backend.URL+"/api", backend.Client())
	store := session.NewStore(client, session.NewStorage(sessionPath))
	return app.NewController(store, trips.NewManager(client), logger)
}

func signUpRider(t *testing.T, ctrl *app.Controller, email string) {
	t.Helper()
	require.NoError(t, ctrl.SignUp(context.Background(), domain.Registration{
		Email:     email,
		Phone:     "+15550100",
		FirstName: "Riley",
		LastName:  "Commuter",
		Password:  "pw123456",
	}))
}

func TestE2E_SignUpCreateAndLogout(t *testing.T) {
	ctx := context.Background()
	backend := startBackend(t)
	ctrl := buildClient(t, backend, filepath.Join(t.TempDir(), "session.json"))
	ctrl.Start(ctx)

	signUpRider(t, ctrl, "riley@hoppin.example")
	require.NotNil(t, ctrl.Session())
	assert.Equal(t, app.ViewHome, ctrl.View())
	assert.Empty(t, ctrl.VisibleTrips())

	// Drive the wizard the way the UI does, then hand the draft off.
	m := wizard.New()
	require.NoError(t, m.SelectRole(domain.RolePassenger))
	m.SetDepartureLocation("Old Town")
	m.SetArrivalLocation("Tech Park")
	m.SetDate("2026-09-21")
	m.SetArrivalTime("09:00")
	require.NoError(t, m.SetRecurrence(domain.RecurrenceCustom))
	require.NoError(t, m.ToggleDay("monday"))
	require.NoError(t, m.ToggleDay("thursday"))
	draft, err := m.Submit()
	require.NoError(t, err)

	require.NoError(t, ctrl.CreateTrip(ctx, draft))
	assert.Equal(t, app.ViewMyTrips, ctrl.View())

	visible := ctrl.VisibleTrips()
	require.Len(t, visible, 1)
	assert.Equal(t, "Riley Commuter", visible[0].UserName)
	assert.Equal(t, []string{"monday", "thursday"}, visible[0].RecurringDays)
	assert.Equal(t, "mon, thu", visible[0].RecurrenceLabel())
	assert.NotEmpty(t, visible[0].ID)

	ctrl.Logout(ctx)
	assert.Nil(t, ctrl.Session())
	assert.Empty(t, ctrl.VisibleTrips())
	assert.Equal(t, app.ViewHome, ctrl.View())
}

func TestE2E_SessionSurvivesRestart(t *testing.T) {
	ctx := context.Background()
	backend := startBackend(t)
	sessionPath := filepath.Join(t.TempDir(), "session.json")

	first := buildClient(t, backend, sessionPath)
	first.Start(ctx)
	signUpRider(t, first, "riley@hoppin.example")
	require.NoError(t, first.CreateTrip(ctx, domain.TripDraft{
		Role:              domain.RoleDriver,
		DepartureLocation: "Harbor",
		ArrivalLocation:   "Campus",
		Date:              "2026-09-22",
		ArrivalTime:       "08:15",
		Recurrence:        domain.RecurrenceWeekly,
	}))

	// A fresh process restores the persisted token and refetches over HTTP.
	second := buildClient(t, backend, sessionPath)
	second.Start(ctx)
	require.NotNil(t, second.Session())
	assert.Equal(t, "riley@hoppin.example", second.Session().Email)
	require.Len(t, second.VisibleTrips(), 1)
	assert.Equal(t, "Harbor", second.VisibleTrips()[0].DepartureLocation)
}

func TestE2E_StaleTokenForcesLogout(t *testing.T) {
	ctx := context.Background()
	backend := startBackend(t)
	sessionPath := filepath.Join(t.TempDir(), "session.json")

	// Persist a session whose token the backend will reject.
	storage := session.NewStorage(sessionPath)
	require.NoError(t, storage.Save(domain.User{
		ID:    "ghost",
		Email: "ghost@hoppin.example",
		Token: "expired-or-forged",
	}))

	ctrl := buildClient(t, backend, sessionPath)
	ctrl.Start(ctx)

	assert.Nil(t, ctrl.Session())
	assert.Equal(t, app.ViewHome, ctrl.View())
	assert.Contains(t, ctrl.ErrorMessage(), "Invalid token")
	// The persisted record is gone too: a restart stays logged out.
	assert.Nil(t, session.NewStorage(sessionPath).Load())
}

func TestE2E_AdminSeesAllTripsAndToggles(t *testing.T) {
	ctx := context.Background()
	backend := startBackend(t, "dispatch@hoppin.example")

	rider := buildClient(t, backend, filepath.Join(t.TempDir(), "rider.json"))
	rider.Start(ctx)
	signUpRider(t, rider, "riley@hoppin.example")
	require.NoError(t, rider.CreateTrip(ctx, domain.TripDraft{
		Role:              domain.RoleBoth,
		DepartureLocation: "Harbor",
		ArrivalLocation:   "Campus",
		Date:              "2026-09-23",
		ArrivalTime:       "17:45",
		Recurrence:        domain.RecurrenceOnce,
	}))

	admin := buildClient(t, backend, filepath.Join(t.TempDir(), "admin.json"))
	admin.Start(ctx)
	require.NoError(t, admin.SignUp(ctx, domain.Registration{
		Email:     "dispatch@hoppin.example",
		FirstName: "Dana",
		LastName:  "Dispatch",
		Password:  "pw123456",
	}))
	assert.Equal(t, app.ViewAdmin, admin.View())

	all := admin.VisibleTrips()
	require.Len(t, all, 1)
	assert.False(t, all[0].IsMatched)

	require.NoError(t, admin.ToggleMatched(ctx, all[0].ID))
	require.Len(t, admin.VisibleTrips(), 1)
	assert.True(t, admin.VisibleTrips()[0].IsMatched)

	// The admin table search finds the rider's trip by owner name.
	found := admin.QueryTrips(trips.Query{Search: "riley"})
	assert.Len(t, found, 1)
	assert.Empty(t, admin.QueryTrips(trips.Query{Search: "nobody"}))
}
