// Package filter narrows client and workout collections for the list views.
// Filtering is stable: matching records keep their original relative order.
package filter

import (
	"alcyxob/trainer-dashboard/internal/domain"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"
)

var ErrInvalidStatusFilter = errors.New("invalid status filter, expected all, active or inactive")

// ClientFilter is the transient search state of the clients page.
type ClientFilter struct {
	SearchTerm string                    `json:"searchTerm"`
	Status     domain.ClientStatusFilter `json:"status"`
}

// ParseStatusFilter validates a status filter coming from the outside.
// An empty value means all clients.
func ParseStatusFilter(s string) (domain.ClientStatusFilter, error) {
	switch f := domain.ClientStatusFilter(strings.ToLower(strings.TrimSpace(s))); f {
	case "":
		return domain.ClientStatusAll, nil
	case domain.ClientStatusAll, domain.ClientStatusActive, domain.ClientStatusInactive:
		return f, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidStatusFilter, s)
	}
}

// Clients returns the clients matching both the status and the search predicate.
func Clients(clients []domain.Client, f ClientFilter) []domain.Client {
	term := strings.ToLower(f.SearchTerm)
	out := make([]domain.Client, 0, len(clients))
	for _, c := range clients {
		if matchesStatus(c, f.Status) && matchesSearch(c, term) {
			out = append(out, c)
		}
	}
	return out
}

func matchesStatus(c domain.Client, status domain.ClientStatusFilter) bool {
	switch status {
	case domain.ClientStatusActive:
		return c.IsActive
	case domain.ClientStatusInactive:
		return !c.IsActive
	default:
		return true
	}
}

// term must already be lower-cased.
func matchesSearch(c domain.Client, term string) bool {
	if term == "" {
		return true
	}
	return strings.Contains(strings.ToLower(c.Name), term) ||
		strings.Contains(strings.ToLower(c.Email), term) ||
		strings.Contains(strings.ToLower(c.Phone), term)
}

// WorkoutFilter selects workouts by date range, type, status and client.
// Zero values mean "any".
type WorkoutFilter struct {
	From     time.Time              `json:"from,omitempty"`
	To       time.Time              `json:"to,omitempty"` // inclusive
	Types    []domain.WorkoutType   `json:"types,omitempty"`
	Statuses []domain.WorkoutStatus `json:"statuses,omitempty"`
	ClientID int64                  `json:"clientId,omitempty"`
}

// Workouts returns the workouts matching every set criterion of f.
func Workouts(workouts []domain.Workout, f WorkoutFilter) []domain.Workout {
	from, to := "", ""
	if !f.From.IsZero() {
		from = domain.FormatDate(f.From)
	}
	if !f.To.IsZero() {
		to = domain.FormatDate(f.To)
	}

	out := make([]domain.Workout, 0, len(workouts))
	for _, w := range workouts {
		if from != "" && w.Date < from {
			continue
		}
		if to != "" && w.Date > to {
			continue
		}
		if f.ClientID != 0 && w.ClientID != f.ClientID {
			continue
		}
		if len(f.Types) > 0 && !slices.Contains(f.Types, w.Type) {
			continue
		}
		if len(f.Statuses) > 0 && !slices.Contains(f.Statuses, w.Status) {
			continue
		}
		out = append(out, w)
	}
	return out
}
