// Package wizard implements the two-step trip creation flow as an explicit
// state machine: role selection, then trip details, then a validated hand-off
// of the completed draft. The machine holds only transient state; cancelling
// is done by discarding it.
package wizard

import (
	"fmt"

	"github.com/hoppin-app/hoppin-go/internal/domain"
)

// Step identifies the wizard's current screen.
type Step int

const (
	// StepRoleSelection is the initial step: pick driver, passenger, or both.
	StepRoleSelection Step = iota + 1
	// StepDetailsEntry collects locations, date, time, and recurrence.
	StepDetailsEntry
)

// Machine is the wizard state. Create one per wizard entry with New; a
// successful Submit ends its life, as does discarding it on cancel.
type Machine struct {
	step  Step
	draft domain.TripDraft
}

// New returns a fresh Machine at role selection with an empty draft.
// Recurrence defaults to once.
func New() *Machine {
	return &Machine{
		step: StepRoleSelection,
		draft: domain.TripDraft{
			Recurrence:    domain.RecurrenceOnce,
			RecurringDays: []string{},
		},
	}
}

// Step returns the current step.
func (m *Machine) Step() Step {
	return m.step
}

// Draft returns a copy of the in-progress draft, for rendering.
func (m *Machine) Draft() domain.TripDraft {
	d := m.draft
	d.RecurringDays = append([]string(nil), m.draft.RecurringDays...)
	return d
}

// SelectRole records the chosen role and advances to details entry.
// Only valid while at role selection.
func (m *Machine) SelectRole(role domain.Role) error {
	if m.step != StepRoleSelection {
		return fmt.Errorf("%w: role is already selected", domain.ErrValidation)
	}
	if !role.Valid() {
		return fmt.Errorf("%w: role must be driver, passenger, or both", domain.ErrValidation)
	}
	m.draft.Role = role
	m.step = StepDetailsEntry
	return nil
}

// Back returns to role selection without losing any entered data; the
// previously chosen role stays selected.
func (m *Machine) Back() {
	m.step = StepRoleSelection
}

// SetDepartureLocation updates the draft's departure location.
func (m *Machine) SetDepartureLocation(loc string) {
	m.draft.DepartureLocation = loc
}

// SetArrivalLocation updates the draft's arrival location.
func (m *Machine) SetArrivalLocation(loc string) {
	m.draft.ArrivalLocation = loc
}

// SetDate updates the draft's date.
func (m *Machine) SetDate(date string) {
	m.draft.Date = date
}

// SetArrivalTime updates the draft's arrival time.
func (m *Machine) SetArrivalTime(t string) {
	m.draft.ArrivalTime = t
}

// SetRecurrence switches the recurrence mode. Switching away from custom
// clears the recurring-day set; switching to custom leaves it as-is so a
// round trip through another mode does not silently resurrect stale days.
func (m *Machine) SetRecurrence(mode domain.Recurrence) error {
	if !mode.Valid() {
		return fmt.Errorf("%w: recurrence must be once, weekly, or custom", domain.ErrValidation)
	}
	m.draft.Recurrence = mode
	if mode != domain.RecurrenceCustom {
		m.draft.RecurringDays = []string{}
	}
	return nil
}

// ToggleDay adds the day to the recurring-day set if absent, removes it if
// present. Only meaningful while recurrence is custom.
func (m *Machine) ToggleDay(day string) error {
	if m.draft.Recurrence != domain.RecurrenceCustom {
		return fmt.Errorf("%w: days apply only to custom recurrence", domain.ErrValidation)
	}
	if !domain.ValidDay(day) {
		return fmt.Errorf("%w: unknown day %q", domain.ErrValidation, day)
	}
	for i, d := range m.draft.RecurringDays {
		if d == day {
			m.draft.RecurringDays = append(m.draft.RecurringDays[:i], m.draft.RecurringDays[i+1:]...)
			return nil
		}
	}
	m.draft.RecurringDays = append(m.draft.RecurringDays, day)
	return nil
}

// Submit validates the draft and hands it off. On a validation failure the
// machine stays at details entry and the error describes the violation. On
// success the returned draft carries recurring days only for custom
// recurrence; the caller discards the machine.
func (m *Machine) Submit() (domain.TripDraft, error) {
	if m.step != StepDetailsEntry {
		return domain.TripDraft{}, fmt.Errorf("%w: role is required", domain.ErrValidation)
	}
	if err := m.draft.Validate(); err != nil {
		return domain.TripDraft{}, err
	}
	done := m.Draft()
	if done.Recurrence != domain.RecurrenceCustom {
		done.RecurringDays = nil
	}
	return done, nil
}
