// internal/domain/exercise.go
package domain

// ExerciseCategory groups the exercise library by muscle group or modality.
type ExerciseCategory string

const (
	CategoryChest      ExerciseCategory = "chest"
	CategoryBack       ExerciseCategory = "back"
	CategoryLegs       ExerciseCategory = "legs"
	CategoryArms       ExerciseCategory = "arms"
	CategoryCardio     ExerciseCategory = "cardio"
	CategoryStretching ExerciseCategory = "stretching"
)

var ExerciseCategories = []ExerciseCategory{CategoryChest, CategoryBack, CategoryLegs, CategoryArms, CategoryCardio, CategoryStretching}

// Exercise represents a single exercise definition in the library.
type Exercise struct {
	ID         int              `bson:"_id" json:"id"`
	Name       string           `bson:"name" json:"name"`
	Category   ExerciseCategory `bson:"category" json:"category"`
	Equipment  string           `bson:"equipment" json:"equipment"`   // e.g. "barbell", "none"
	Difficulty string           `bson:"difficulty" json:"difficulty"` // "beginner" or "intermediate"
}

// PlannedExercise places a library exercise into a workout plan with its prescription.
type PlannedExercise struct {
	ExerciseID  int              `bson:"exerciseId" json:"exerciseId"`
	Name        string           `bson:"name" json:"name"`
	Category    ExerciseCategory `bson:"category" json:"category"`
	Sets        int              `bson:"sets" json:"sets"`
	Reps        string           `bson:"reps" json:"reps"` // "10-12", "30 sec", "20 min"
	Weight      string           `bson:"weight,omitempty" json:"weight,omitempty"`
	RestSeconds int              `bson:"restSeconds" json:"restSeconds"`
	Notes       string           `bson:"notes,omitempty" json:"notes,omitempty"`
	Order       int              `bson:"order" json:"order"` // 1-based position within the plan
}
