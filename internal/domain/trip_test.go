package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hoppin-app/hoppin-go/internal/domain"
)

func validDraft() domain.TripDraft {
	return domain.TripDraft{
		Role:              domain.RoleDriver,
		DepartureLocation: "New York, NY 10001",
		ArrivalLocation:   "Boston, MA 02101",
		Date:              "2026-09-14",
		ArrivalTime:       "08:30",
		Recurrence:        domain.RecurrenceOnce,
	}
}

func TestTripDraft_Validate_OK(t *testing.T) {
	require.NoError(t, validDraft().Validate())
}

func TestTripDraft_Validate_MissingFields(t *testing.T) {
	cases := map[string]func(*domain.TripDraft){
		"role":              func(d *domain.TripDraft) { d.Role = "" },
		"unknown role":      func(d *domain.TripDraft) { d.Role = "pilot" },
		"departure":         func(d *domain.TripDraft) { d.DepartureLocation = "   " },
		"arrival":           func(d *domain.TripDraft) { d.ArrivalLocation = "" },
		"date":              func(d *domain.TripDraft) { d.Date = "" },
		"arrival time":      func(d *domain.TripDraft) { d.ArrivalTime = "" },
		"recurrence":        func(d *domain.TripDraft) { d.Recurrence = "daily" },
		"custom without days": func(d *domain.TripDraft) {
			d.Recurrence = domain.RecurrenceCustom
			d.RecurringDays = nil
		},
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			draft := validDraft()
			mutate(&draft)
			assert.ErrorIs(t, draft.Validate(), domain.ErrValidation)
		})
	}
}

func TestTripDraft_Validate_CustomWithDays(t *testing.T) {
	draft := validDraft()
	draft.Recurrence = domain.RecurrenceCustom
	draft.RecurringDays = []string{"monday", "wednesday"}

	require.NoError(t, draft.Validate())
}

func TestTrip_RecurrenceLabel(t *testing.T) {
	assert.Equal(t, "Once", domain.Trip{Recurrence: domain.RecurrenceOnce}.RecurrenceLabel())
	assert.Equal(t, "Weekly", domain.Trip{Recurrence: domain.RecurrenceWeekly}.RecurrenceLabel())
	assert.Equal(t, "mon, wed, fri", domain.Trip{
		Recurrence:    domain.RecurrenceCustom,
		RecurringDays: []string{"monday", "wednesday", "friday"},
	}.RecurrenceLabel())
	// Defensive: custom with no days falls back rather than rendering nothing.
	assert.Equal(t, "Once", domain.Trip{Recurrence: domain.RecurrenceCustom}.RecurrenceLabel())
}

func TestValidDay(t *testing.T) {
	assert.True(t, domain.ValidDay("monday"))
	assert.False(t, domain.ValidDay("Monday"))
	assert.False(t, domain.ValidDay("someday"))
}
