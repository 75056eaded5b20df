package service

import (
	"alcyxob/trainer-dashboard/internal/domain"
	"alcyxob/trainer-dashboard/internal/repository"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

// --- Error Definitions ---
var (
	ErrExerciseNotFound     = errors.New("exercise not found")
	ErrTemplateNotFound     = errors.New("workout template not found")
	ErrInvalidCategory      = errors.New("invalid exercise category")
	ErrInvalidLevel         = errors.New("invalid template level")
	ErrInvalidPlanPosition  = errors.New("exercise position out of range")
	ErrTemplateNameRequired = errors.New("template name is required")
)

const (
	templateKeyPrefix  = "templates/"
	templateIndexKey   = "templates/index"
	defaultRestSeconds = 60
)

// TemplateKey is the key-value store key a saved template lives under.
func TemplateKey(id string) string { return templateKeyPrefix + id }

// PlanExerciseInput prescribes one library exercise for a plan.
type PlanExerciseInput struct {
	ExerciseID  int
	Sets        int
	Reps        string
	Weight      string
	RestSeconds int // 0 means 60
	Notes       string
}

// PlannerService builds workout plans from the exercise library and keeps saved templates.
type PlannerService interface {
	Exercises(category domain.ExerciseCategory) ([]domain.Exercise, error)
	GenerateTemplate(t domain.WorkoutType, level domain.TemplateLevel) (*domain.WorkoutTemplate, error)
	AddExercise(plan *domain.WorkoutTemplate, in PlanExerciseInput) error
	RemoveExercise(plan *domain.WorkoutTemplate, index int) error
	MoveExercise(plan *domain.WorkoutTemplate, from, to int) error
	SaveTemplate(ctx context.Context, plan *domain.WorkoutTemplate) (*domain.WorkoutTemplate, error)
	GetTemplate(ctx context.Context, id string) (*domain.WorkoutTemplate, error)
	ListTemplates(ctx context.Context) ([]domain.WorkoutTemplate, error)
}

// plannerService implements the PlannerService interface.
type plannerService struct {
	store repository.KeyValueStore
	mu    sync.Mutex // serialises index read-modify-write
	now   func() time.Time
}

// NewPlannerService creates a new instance of plannerService backed by a key-value store.
func NewPlannerService(store repository.KeyValueStore, now func() time.Time) PlannerService {
	if now == nil {
		now = time.Now
	}
	return &plannerService{store: store, now: now}
}

// Exercises lists the library, optionally narrowed to one category.
func (s *plannerService) Exercises(category domain.ExerciseCategory) ([]domain.Exercise, error) {
	if category == "" {
		return append([]domain.Exercise(nil), exerciseLibrary...), nil
	}
	if !slices.Contains(domain.ExerciseCategories, category) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidCategory, category)
	}
	var out []domain.Exercise
	for _, ex := range exerciseLibrary {
		if ex.Category == category {
			out = append(out, ex)
		}
	}
	return out, nil
}

// GenerateTemplate returns an unsaved starter plan for the workout type and level.
func (s *plannerService) GenerateTemplate(t domain.WorkoutType, level domain.TemplateLevel) (*domain.WorkoutTemplate, error) {
	if !t.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidWorkoutType, t)
	}
	if level == "" {
		level = domain.LevelBeginner
	}
	if level != domain.LevelBeginner && level != domain.LevelIntermediate {
		return nil, fmt.Errorf("%w: %q", ErrInvalidLevel, level)
	}

	plan := &domain.WorkoutTemplate{
		Name:      fmt.Sprintf("%s%s (%s)", strings.ToUpper(string(t[:1])), t[1:], level),
		Type:      t,
		Level:     level,
		Exercises: []domain.PlannedExercise{},
	}
	for _, item := range templatePlans[t][level] {
		if err := s.AddExercise(plan, PlanExerciseInput{ExerciseID: item.exerciseID, Sets: item.sets, Reps: item.reps}); err != nil {
			return nil, err
		}
	}
	return plan, nil
}

// AddExercise appends a library exercise to the plan.
func (s *plannerService) AddExercise(plan *domain.WorkoutTemplate, in PlanExerciseInput) error {
	ex, ok := findExercise(in.ExerciseID)
	if !ok {
		return fmt.Errorf("%w: %d", ErrExerciseNotFound, in.ExerciseID)
	}
	rest := in.RestSeconds
	if rest <= 0 {
		rest = defaultRestSeconds
	}
	plan.Exercises = append(plan.Exercises, domain.PlannedExercise{
		ExerciseID:  ex.ID,
		Name:        ex.Name,
		Category:    ex.Category,
		Sets:        in.Sets,
		Reps:        in.Reps,
		Weight:      in.Weight,
		RestSeconds: rest,
		Notes:       in.Notes,
	})
	plan.Renumber()
	return nil
}

// RemoveExercise drops the exercise at index and renumbers the rest.
func (s *plannerService) RemoveExercise(plan *domain.WorkoutTemplate, index int) error {
	if index < 0 || index >= len(plan.Exercises) {
		return ErrInvalidPlanPosition
	}
	plan.Exercises = append(plan.Exercises[:index], plan.Exercises[index+1:]...)
	plan.Renumber()
	return nil
}

// MoveExercise moves the exercise at from so it ends up at position to.
func (s *plannerService) MoveExercise(plan *domain.WorkoutTemplate, from, to int) error {
	n := len(plan.Exercises)
	if from < 0 || from >= n || to < 0 || to >= n {
		return ErrInvalidPlanPosition
	}
	moved := plan.Exercises[from]
	rest := append(plan.Exercises[:from:from], plan.Exercises[from+1:]...)
	plan.Exercises = append(rest[:to:to], append([]domain.PlannedExercise{moved}, rest[to:]...)...)
	plan.Renumber()
	return nil
}

// SaveTemplate stores the plan, assigning an id on first save.
func (s *plannerService) SaveTemplate(ctx context.Context, plan *domain.WorkoutTemplate) (*domain.WorkoutTemplate, error) {
	if strings.TrimSpace(plan.Name) == "" {
		return nil, ErrTemplateNameRequired
	}
	if !plan.Type.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidWorkoutType, plan.Type)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	saved := *plan
	saved.Exercises = append([]domain.PlannedExercise{}, plan.Exercises...)
	saved.Renumber()
	now := s.now().UTC()
	if saved.ID == "" {
		saved.ID = uuid.NewString()
		saved.CreatedAt = now
	}
	saved.UpdatedAt = now

	payload, err := json.Marshal(saved)
	if err != nil {
		return nil, err
	}
	// The index is written first so a failed save never leaves an unlisted payload.
	ids, err := s.loadIndex(ctx)
	if err != nil {
		return nil, err
	}
	added := !slices.Contains(ids, saved.ID)
	if added {
		if err := s.saveIndex(ctx, append(ids[:len(ids):len(ids)], saved.ID)); err != nil {
			return nil, fmt.Errorf("saving template index: %w", err)
		}
	}
	if err := s.store.Save(ctx, TemplateKey(saved.ID), payload); err != nil {
		if added {
			if rerr := s.saveIndex(ctx, ids); rerr != nil {
				log.Errorf("Failed to roll back template index after %s: %v", saved.ID, rerr)
			}
		}
		return nil, fmt.Errorf("saving template %s: %w", saved.ID, err)
	}
	log.Infof("Saved workout template %s (%s, %d exercises)", saved.ID, saved.Name, len(saved.Exercises))
	return &saved, nil
}

func (s *plannerService) GetTemplate(ctx context.Context, id string) (*domain.WorkoutTemplate, error) {
	payload, found, err := s.store.Load(ctx, TemplateKey(id))
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, ErrTemplateNotFound
	}
	var t domain.WorkoutTemplate
	if err := json.Unmarshal(payload, &t); err != nil {
		return nil, fmt.Errorf("decoding template %s: %w", id, err)
	}
	return &t, nil
}

// ListTemplates returns saved templates in save order. Entries missing from
// the store (a save interrupted between index and payload) are skipped.
func (s *plannerService) ListTemplates(ctx context.Context) ([]domain.WorkoutTemplate, error) {
	s.mu.Lock()
	ids, err := s.loadIndex(ctx)
	s.mu.Unlock()
	if err != nil {
		return nil, err
	}

	out := make([]domain.WorkoutTemplate, 0, len(ids))
	for _, id := range ids {
		t, err := s.GetTemplate(ctx, id)
		if errors.Is(err, ErrTemplateNotFound) {
			log.Warnf("Template %s listed in index but missing from store", id)
			continue
		}
		if err != nil {
			return nil, err
		}
		out = append(out, *t)
	}
	return out, nil
}

func (s *plannerService) saveIndex(ctx context.Context, ids []string) error {
	if ids == nil {
		ids = []string{}
	}
	index, err := json.Marshal(ids)
	if err != nil {
		return err
	}
	return s.store.Save(ctx, templateIndexKey, index)
}

func (s *plannerService) loadIndex(ctx context.Context) ([]string, error) {
	payload, found, err := s.store.Load(ctx, templateIndexKey)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, nil
	}
	var ids []string
	if err := json.Unmarshal(payload, &ids); err != nil {
		return nil, fmt.Errorf("decoding template index: %w", err)
	}
	return ids, nil
}
