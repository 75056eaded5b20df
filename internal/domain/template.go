// internal/domain/template.go
package domain

import (
	"time"
)

// TemplateLevel is the difficulty tier a generated template targets.
type TemplateLevel string

const (
	LevelBeginner     TemplateLevel = "beginner"
	LevelIntermediate TemplateLevel = "intermediate"
)

// WorkoutTemplate is a reusable exercise plan a trainer saves for later scheduling.
type WorkoutTemplate struct {
	ID        string            `bson:"_id" json:"id"`
	Name      string            `bson:"name" json:"name"`
	Type      WorkoutType       `bson:"type" json:"type"`
	Level     TemplateLevel     `bson:"level,omitempty" json:"level,omitempty"`
	ClientID  *int64            `bson:"clientId,omitempty" json:"clientId,omitempty"` // Optional: plan prepared for a specific client
	Exercises []PlannedExercise `bson:"exercises" json:"exercises"`
	CreatedAt time.Time         `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time         `bson:"updatedAt" json:"updatedAt"`
}

// Renumber rewrites Order so exercises are numbered 1..n in slice order.
func (t *WorkoutTemplate) Renumber() {
	for i := range t.Exercises {
		t.Exercises[i].Order = i + 1
	}
}
