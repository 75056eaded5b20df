package domain

import (
	"time"
)

// WorkoutType is the kind of training session.
type WorkoutType string

const (
	WorkoutStrength   WorkoutType = "strength"
	WorkoutCardio     WorkoutType = "cardio"
	WorkoutFunctional WorkoutType = "functional"
	WorkoutStretching WorkoutType = "stretching"
	WorkoutMixed      WorkoutType = "mixed"
)

// WorkoutTypes lists every valid type in display order.
var WorkoutTypes = []WorkoutType{WorkoutStrength, WorkoutCardio, WorkoutFunctional, WorkoutStretching, WorkoutMixed}

func (t WorkoutType) Valid() bool {
	for _, known := range WorkoutTypes {
		if t == known {
			return true
		}
	}
	return false
}

// WorkoutStatus tracks the lifecycle of a scheduled session.
type WorkoutStatus string

const (
	StatusScheduled  WorkoutStatus = "scheduled"
	StatusInProgress WorkoutStatus = "in-progress"
	StatusCompleted  WorkoutStatus = "completed"
	StatusCancelled  WorkoutStatus = "cancelled"
)

var WorkoutStatuses = []WorkoutStatus{StatusScheduled, StatusInProgress, StatusCompleted, StatusCancelled}

func (s WorkoutStatus) Valid() bool {
	for _, known := range WorkoutStatuses {
		if s == known {
			return true
		}
	}
	return false
}

// IsTerminal reports whether no further transition is allowed.
func (s WorkoutStatus) IsTerminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

// CanTransitionTo reports whether s -> next is a legal lifecycle step.
// scheduled -> in-progress -> completed, scheduled -> completed,
// scheduled -> cancelled. A started workout can only be completed.
func (s WorkoutStatus) CanTransitionTo(next WorkoutStatus) bool {
	switch s {
	case StatusScheduled:
		return next == StatusInProgress || next == StatusCompleted || next == StatusCancelled
	case StatusInProgress:
		return next == StatusCompleted
	default:
		return false
	}
}

// Workout is one training session booked for a client.
type Workout struct {
	ID              int64         `bson:"_id" json:"id"`
	ClientID        int64         `bson:"clientId" json:"clientId"`
	Date            string        `bson:"date" json:"date"` // YYYY-MM-DD
	Time            string        `bson:"time" json:"time"` // HH:MM, zero padded
	DurationMinutes int           `bson:"durationMinutes" json:"durationMinutes"`
	Type            WorkoutType   `bson:"type" json:"type"`
	Status          WorkoutStatus `bson:"status" json:"status"`
	Location        string        `bson:"location,omitempty" json:"location,omitempty"`
	Notes           string        `bson:"notes,omitempty" json:"notes,omitempty"`
	CompletedAt     *time.Time    `bson:"completedAt,omitempty" json:"completedAt,omitempty"`
	CreatedAt       time.Time     `bson:"createdAt" json:"createdAt"`
	UpdatedAt       time.Time     `bson:"updatedAt" json:"updatedAt"`
}

// Before orders workouts by date, then time, then id.
func (w Workout) Before(other Workout) bool {
	if w.Date != other.Date {
		return w.Date < other.Date
	}
	if w.Time != other.Time {
		return w.Time < other.Time
	}
	return w.ID < other.ID
}
