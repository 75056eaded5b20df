package mongo

import (
	"alcyxob/trainer-dashboard/internal/repository"
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const templateCollectionName = "template_store"

type kvDocument struct {
	Key       string    `bson:"_id"`
	Value     []byte    `bson:"value"`
	UpdatedAt time.Time `bson:"updatedAt"`
}

// mongoTemplateStore implements repository.KeyValueStore
type mongoTemplateStore struct {
	collection *mongo.Collection
}

// NewMongoTemplateStore creates the template key-value store backed by MongoDB.
func NewMongoTemplateStore(db *mongo.Database) repository.KeyValueStore {
	return &mongoTemplateStore{collection: db.Collection(templateCollectionName)}
}

func (r *mongoTemplateStore) Load(ctx context.Context, key string) ([]byte, bool, error) {
	var doc kvDocument
	err := r.collection.FindOne(ctx, bson.M{"_id": key}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, false, nil
		}
		return nil, false, err
	}
	return doc.Value, true, nil
}

func (r *mongoTemplateStore) Save(ctx context.Context, key string, value []byte) error {
	if key == "" {
		return repository.ErrInvalidInput
	}
	doc := kvDocument{Key: key, Value: value, UpdatedAt: time.Now().UTC()}
	res, err := r.collection.ReplaceOne(ctx, bson.M{"_id": key}, doc, options.Replace().SetUpsert(true))
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 && res.UpsertedCount == 0 {
		return repository.ErrUpdateFailed
	}
	return nil
}
