package service

import "alcyxob/trainer-dashboard/internal/domain"

// exerciseLibrary is the built-in catalogue, grouped by category in display order.
var exerciseLibrary = []domain.Exercise{
	{ID: 1, Name: "Bench press", Category: domain.CategoryChest, Equipment: "barbell", Difficulty: "intermediate"},
	{ID: 2, Name: "Push-ups", Category: domain.CategoryChest, Equipment: "none", Difficulty: "beginner"},
	{ID: 3, Name: "Dumbbell press", Category: domain.CategoryChest, Equipment: "dumbbells", Difficulty: "intermediate"},
	{ID: 4, Name: "Dumbbell flyes", Category: domain.CategoryChest, Equipment: "dumbbells", Difficulty: "intermediate"},
	{ID: 5, Name: "Dips", Category: domain.CategoryChest, Equipment: "parallel bars", Difficulty: "intermediate"},

	{ID: 6, Name: "Pull-ups", Category: domain.CategoryBack, Equipment: "pull-up bar", Difficulty: "intermediate"},
	{ID: 7, Name: "Bent-over barbell row", Category: domain.CategoryBack, Equipment: "barbell", Difficulty: "intermediate"},
	{ID: 8, Name: "Lat pulldown", Category: domain.CategoryBack, Equipment: "machine", Difficulty: "beginner"},
	{ID: 9, Name: "Back extension", Category: domain.CategoryBack, Equipment: "machine", Difficulty: "beginner"},
	{ID: 10, Name: "One-arm dumbbell row", Category: domain.CategoryBack, Equipment: "dumbbells", Difficulty: "intermediate"},

	{ID: 11, Name: "Barbell squat", Category: domain.CategoryLegs, Equipment: "barbell", Difficulty: "intermediate"},
	{ID: 12, Name: "Bodyweight squat", Category: domain.CategoryLegs, Equipment: "none", Difficulty: "beginner"},
	{ID: 13, Name: "Lunges", Category: domain.CategoryLegs, Equipment: "none", Difficulty: "beginner"},
	{ID: 14, Name: "Leg press", Category: domain.CategoryLegs, Equipment: "machine", Difficulty: "beginner"},
	{ID: 15, Name: "Calf raises", Category: domain.CategoryLegs, Equipment: "none", Difficulty: "beginner"},

	{ID: 16, Name: "Barbell curl", Category: domain.CategoryArms, Equipment: "barbell", Difficulty: "beginner"},
	{ID: 17, Name: "French press", Category: domain.CategoryArms, Equipment: "barbell", Difficulty: "intermediate"},
	{ID: 18, Name: "Hammer curls", Category: domain.CategoryArms, Equipment: "dumbbells", Difficulty: "beginner"},
	{ID: 19, Name: "Close-grip push-ups", Category: domain.CategoryArms, Equipment: "none", Difficulty: "intermediate"},
	{ID: 20, Name: "Dumbbell curl", Category: domain.CategoryArms, Equipment: "dumbbells", Difficulty: "beginner"},

	{ID: 21, Name: "Running", Category: domain.CategoryCardio, Equipment: "none", Difficulty: "beginner"},
	{ID: 22, Name: "Burpees", Category: domain.CategoryCardio, Equipment: "none", Difficulty: "intermediate"},
	{ID: 23, Name: "Jump rope", Category: domain.CategoryCardio, Equipment: "jump rope", Difficulty: "beginner"},
	{ID: 24, Name: "Stationary bike", Category: domain.CategoryCardio, Equipment: "machine", Difficulty: "beginner"},
	{ID: 25, Name: "Elliptical trainer", Category: domain.CategoryCardio, Equipment: "machine", Difficulty: "beginner"},

	{ID: 26, Name: "Back stretch", Category: domain.CategoryStretching, Equipment: "none", Difficulty: "beginner"},
	{ID: 27, Name: "Leg stretch", Category: domain.CategoryStretching, Equipment: "none", Difficulty: "beginner"},
	{ID: 28, Name: "Plank", Category: domain.CategoryStretching, Equipment: "none", Difficulty: "beginner"},
	{ID: 29, Name: "Shoulder stretch", Category: domain.CategoryStretching, Equipment: "none", Difficulty: "beginner"},
	{ID: 30, Name: "Yoga flow", Category: domain.CategoryStretching, Equipment: "mat", Difficulty: "intermediate"},
}

type templateItem struct {
	exerciseID int
	sets       int
	reps       string
}

// templatePlans are the starter plans offered by GenerateTemplate.
// Types without an entry generate an empty plan.
var templatePlans = map[domain.WorkoutType]map[domain.TemplateLevel][]templateItem{
	domain.WorkoutStrength: {
		domain.LevelBeginner: {
			{exerciseID: 2, sets: 3, reps: "10-12"},
			{exerciseID: 12, sets: 3, reps: "15"},
			{exerciseID: 8, sets: 3, reps: "12"},
			{exerciseID: 28, sets: 3, reps: "30 sec"},
		},
		domain.LevelIntermediate: {
			{exerciseID: 1, sets: 4, reps: "8-10"},
			{exerciseID: 11, sets: 4, reps: "10-12"},
			{exerciseID: 7, sets: 4, reps: "10"},
			{exerciseID: 16, sets: 3, reps: "12"},
		},
	},
	domain.WorkoutCardio: {
		domain.LevelBeginner: {
			{exerciseID: 21, sets: 1, reps: "20 min"},
			{exerciseID: 22, sets: 3, reps: "10"},
			{exerciseID: 23, sets: 3, reps: "100"},
		},
		domain.LevelIntermediate: {
			{exerciseID: 21, sets: 1, reps: "30 min"},
			{exerciseID: 22, sets: 5, reps: "15"},
			{exerciseID: 24, sets: 1, reps: "20 min"},
		},
	},
}

func findExercise(id int) (domain.Exercise, bool) {
	for _, ex := range exerciseLibrary {
		if ex.ID == id {
			return ex, true
		}
	}
	return domain.Exercise{}, false
}
