package domain

import (
	"fmt"
	"strings"
)

// Role describes how a user participates in a trip.
type Role string

const (
	RoleDriver    Role = "driver"
	RolePassenger Role = "passenger"
	RoleBoth      Role = "both"
)

// Valid reports whether r is one of the three accepted roles.
func (r Role) Valid() bool {
	return r == RoleDriver || r == RolePassenger || r == RoleBoth
}

// Recurrence governs whether and how a trip repeats.
// RecurringDays is used only when the mode is RecurrenceCustom.
type Recurrence string

const (
	RecurrenceOnce   Recurrence = "once"
	RecurrenceWeekly Recurrence = "weekly"
	RecurrenceCustom Recurrence = "custom"
)

// Valid reports whether rc is one of the three accepted recurrence modes.
func (rc Recurrence) Valid() bool {
	return rc == RecurrenceOnce || rc == RecurrenceWeekly || rc == RecurrenceCustom
}

// WeekDays lists the accepted recurring-day names in calendar order.
var WeekDays = []string{
	"monday",
	"tuesday",
	"wednesday",
	"thursday",
	"friday",
	"saturday",
	"sunday",
}

// ValidDay reports whether day names one of the seven weekdays.
func ValidDay(day string) bool {
	for _, d := range WeekDays {
		if d == day {
			return true
		}
	}
	return false
}

// Trip is a recurring commute posted by a user. The owner fields (UserID,
// UserName, UserEmail, UserPhone) are denormalized by the backend at creation
// time from the acting user; the backend is the source of truth for ID,
// IsMatched, and CreatedAt.
type Trip struct {
	ID                string     `json:"id"`
	UserID            string     `json:"userId"`
	UserName          string     `json:"userName"`
	UserEmail         string     `json:"userEmail"`
	UserPhone         string     `json:"userPhone"`
	Role              Role       `json:"role"`
	DepartureLocation string     `json:"departureLocation"`
	ArrivalLocation   string     `json:"arrivalLocation"`
	Date              string     `json:"date"`
	ArrivalTime       string     `json:"arrivalTime"`
	Recurrence        Recurrence `json:"recurrence"`
	RecurringDays     []string   `json:"recurringDays,omitempty"`
	IsMatched         bool       `json:"isMatched"`
	CreatedAt         string     `json:"createdAt"`
}

// RecurrenceLabel renders the recurrence column shown in trip listings,
// e.g. "Once", "Weekly", or "mon, wed, fri" for custom schedules.
func (t Trip) RecurrenceLabel() string {
	switch t.Recurrence {
	case RecurrenceWeekly:
		return "Weekly"
	case RecurrenceCustom:
		if len(t.RecurringDays) > 0 {
			short := make([]string, len(t.RecurringDays))
			for i, d := range t.RecurringDays {
				if len(d) > 3 {
					d = d[:3]
				}
				short[i] = d
			}
			return strings.Join(short, ", ")
		}
	}
	return "Once"
}

// TripDraft is the in-progress trip collected by the creation wizard. It is
// transient and client-only; a validated draft is what gets posted to the
// backend, which fills in the identifier and owner fields.
type TripDraft struct {
	Role              Role       `json:"role"`
	DepartureLocation string     `json:"departureLocation"`
	ArrivalLocation   string     `json:"arrivalLocation"`
	Date              string     `json:"date"`
	ArrivalTime       string     `json:"arrivalTime"`
	Recurrence        Recurrence `json:"recurrence"`
	RecurringDays     []string   `json:"recurringDays,omitempty"`
}

// Validate checks the draft against the submission rules: role, both
// locations, date, and arrival time must be non-empty, and a custom
// recurrence must select at least one day.
// Returns a wrapped ErrValidation describing the first violation found.
func (d TripDraft) Validate() error {
	if !d.Role.Valid() {
		return fmt.Errorf("%w: role is required", ErrValidation)
	}
	if strings.TrimSpace(d.DepartureLocation) == "" {
		return fmt.Errorf("%w: departure location is required", ErrValidation)
	}
	if strings.TrimSpace(d.ArrivalLocation) == "" {
		return fmt.Errorf("%w: arrival location is required", ErrValidation)
	}
	if strings.TrimSpace(d.Date) == "" {
		return fmt.Errorf("%w: date is required", ErrValidation)
	}
	if strings.TrimSpace(d.ArrivalTime) == "" {
		return fmt.Errorf("%w: arrival time is required", ErrValidation)
	}
	if !d.Recurrence.Valid() {
		return fmt.Errorf("%w: recurrence must be once, weekly, or custom", ErrValidation)
	}
	if d.Recurrence == RecurrenceCustom && len(d.RecurringDays) == 0 {
		return fmt.Errorf("%w: select at least one day for custom recurrence", ErrValidation)
	}
	return nil
}
