package domain

import (
	"strings"
	"time"
)

// ClientStatusFilter selects clients by their activity flag.
type ClientStatusFilter string

const (
	ClientStatusAll      ClientStatusFilter = "all"
	ClientStatusActive   ClientStatusFilter = "active"
	ClientStatusInactive ClientStatusFilter = "inactive"
)

// Client is a person trained by the dashboard owner.
// Clients are never physically removed, only deactivated via IsActive.
type Client struct {
	ID              int64     `bson:"_id" json:"id"`
	Name            string    `bson:"name" json:"name"`
	Avatar          string    `bson:"avatar" json:"avatar"` // Initials shown in the client card
	Goal            string    `bson:"goal" json:"goal"`
	ProgressPercent int       `bson:"progressPercent" json:"progressPercent"` // 0..100
	IsActive        bool      `bson:"isActive" json:"isActive"`
	Email           string    `bson:"email" json:"email"`
	Phone           string    `bson:"phone,omitempty" json:"phone,omitempty"`
	NextWorkoutDate string    `bson:"nextWorkoutDate,omitempty" json:"nextWorkoutDate,omitempty"` // YYYY-MM-DD, empty when nothing is planned
	CreatedAt       time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt       time.Time `bson:"updatedAt" json:"updatedAt"`
}

// Goal keys accepted by client registration.
var goalTexts = map[string]string{
	"weight_loss":    "Weight loss",
	"muscle_gain":    "Muscle gain",
	"strength":       "Strength",
	"endurance":      "Endurance",
	"health":         "General health",
	"sport_specific": "Sport-specific training",
}

const GoalNotSpecified = "Not specified"

// GoalText maps a goal key to its display text.
func GoalText(key string) string {
	if text, ok := goalTexts[key]; ok {
		return text
	}
	return GoalNotSpecified
}

// Initials returns up to two upper-cased leading letters of the name's words.
func Initials(name string) string {
	var b strings.Builder
	count := 0
	for _, word := range strings.Fields(name) {
		r := []rune(word)
		b.WriteString(strings.ToUpper(string(r[0])))
		count++
		if count == 2 {
			break
		}
	}
	return b.String()
}

// ClampProgress keeps a progress value inside 0..100.
func ClampProgress(p int) int {
	if p < 0 {
		return 0
	}
	if p > 100 {
		return 100
	}
	return p
}
