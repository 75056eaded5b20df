package mongo

import (
	"alcyxob/trainer-dashboard/internal/domain"
	"alcyxob/trainer-dashboard/internal/repository"
	"context"
	"fmt"

	log "github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	clientCollectionName  = "clients"
	workoutCollectionName = "workouts"
)

// EntitySource loads the trainer's clients and workouts from MongoDB once at startup.
type EntitySource struct {
	clients  *mongo.Collection
	workouts *mongo.Collection
}

var _ repository.EntitySource = (*EntitySource)(nil)

func NewEntitySource(db *mongo.Database) *EntitySource {
	return &EntitySource{
		clients:  db.Collection(clientCollectionName),
		workouts: db.Collection(workoutCollectionName),
	}
}

// LoadClients returns every client ordered by id, which is insertion order.
func (s *EntitySource) LoadClients(ctx context.Context) ([]domain.Client, error) {
	var clients []domain.Client
	if err := findAll(ctx, s.clients, &clients); err != nil {
		return nil, fmt.Errorf("loading clients: %w", err)
	}
	return clients, nil
}

// LoadWorkouts returns every workout ordered by id.
func (s *EntitySource) LoadWorkouts(ctx context.Context) ([]domain.Workout, error) {
	var workouts []domain.Workout
	if err := findAll(ctx, s.workouts, &workouts); err != nil {
		return nil, fmt.Errorf("loading workouts: %w", err)
	}
	return workouts, nil
}

// Seed upserts the records of another source, keyed by id.
func (s *EntitySource) Seed(ctx context.Context, from repository.EntitySource) (clients, workouts int, err error) {
	cs, err := from.LoadClients(ctx)
	if err != nil {
		return 0, 0, err
	}
	ws, err := from.LoadWorkouts(ctx)
	if err != nil {
		return 0, 0, err
	}

	upsert := options.Replace().SetUpsert(true)
	for _, c := range cs {
		if _, err := s.clients.ReplaceOne(ctx, bson.M{"_id": c.ID}, c, upsert); err != nil {
			return clients, workouts, fmt.Errorf("seeding client %d: %w", c.ID, err)
		}
		clients++
	}
	for _, w := range ws {
		if _, err := s.workouts.ReplaceOne(ctx, bson.M{"_id": w.ID}, w, upsert); err != nil {
			return clients, workouts, fmt.Errorf("seeding workout %d: %w", w.ID, err)
		}
		workouts++
	}
	log.Infof("Seeded %d clients and %d workouts", clients, workouts)
	return clients, workouts, nil
}

// EnsureIndexes creates the indexes used by ad-hoc queries on the workout book.
func (s *EntitySource) EnsureIndexes(ctx context.Context) {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "clientId", Value: 1}, {Key: "date", Value: -1}},
			Options: options.Index(),
		},
		{
			Keys:    bson.D{{Key: "date", Value: 1}, {Key: "time", Value: 1}},
			Options: options.Index(),
		},
	}
	if _, err := s.workouts.Indexes().CreateMany(ctx, indexes); err != nil {
		log.Warnf("Failed to create indexes for collection %s: %v", s.workouts.Name(), err)
	}
	if _, err := s.clients.Indexes().CreateOne(ctx, mongo.IndexModel{Keys: bson.D{{Key: "email", Value: 1}}}); err != nil {
		log.Warnf("Failed to create indexes for collection %s: %v", s.clients.Name(), err)
	}
}

func findAll(ctx context.Context, coll *mongo.Collection, out any) error {
	cursor, err := coll.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return err
	}
	defer cursor.Close(ctx)
	return cursor.All(ctx, out)
}
