package trips

import (
	"sort"
	"strings"
	"time"

	"github.com/hoppin-app/hoppin-go/internal/domain"
)

// SortMode selects the ordering of the admin trip table.
type SortMode string

const (
	// SortByDateTime orders by trip date plus arrival time, earliest first.
	SortByDateTime SortMode = "datetime"
	// SortByArrival orders alphabetically by arrival location.
	SortByArrival SortMode = "arrival"
	// SortByDeparture orders alphabetically by departure location.
	SortByDeparture SortMode = "departure"
)

// Query mirrors the admin table controls: a free-text search across owner
// name, email, phone, and both locations; an optional role filter; and a
// sort mode. The zero value matches everything in cache order.
type Query struct {
	Search string
	Role   domain.Role // empty means all roles
	Sort   SortMode
}

// Apply filters and sorts a copy of trips. The input slice is not modified.
func (q Query) Apply(trips []domain.Trip) []domain.Trip {
	out := []domain.Trip{}
	needle := strings.ToLower(strings.TrimSpace(q.Search))
	for _, t := range trips {
		if needle != "" && !matchesSearch(t, needle) {
			continue
		}
		if q.Role != "" && t.Role != q.Role {
			continue
		}
		out = append(out, t)
	}

	switch q.Sort {
	case SortByDateTime:
		sort.SliceStable(out, func(i, j int) bool {
			return departureInstant(out[i]).Before(departureInstant(out[j]))
		})
	case SortByArrival:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].ArrivalLocation < out[j].ArrivalLocation
		})
	case SortByDeparture:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].DepartureLocation < out[j].DepartureLocation
		})
	}
	return out
}

func matchesSearch(t domain.Trip, needle string) bool {
	for _, field := range []string{
		t.UserName,
		t.DepartureLocation,
		t.ArrivalLocation,
		t.UserEmail,
		t.UserPhone,
	} {
		if strings.Contains(strings.ToLower(field), needle) {
			return true
		}
	}
	return false
}

// departureInstant combines the trip's date and arrival time for sorting.
// Unparseable values sort first rather than breaking the table.
func departureInstant(t domain.Trip) time.Time {
	ts, err := time.Parse("2006-01-02 15:04", t.Date+" "+t.ArrivalTime)
	if err != nil {
		return time.Time{}
	}
	return ts
}
