//go:build integration_test || all_tests

package mongo

import (
	"alcyxob/trainer-dashboard/internal/repository/memory"
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/mongo"
)

func testDBSetup(t *testing.T) (*mongo.Database, func()) {
	t.Helper()

	uri := os.Getenv("MONGO_URI")
	if uri == "" {
		uri = "mongodb://localhost:27017"
	}
	t.Logf("using mongo uri: %s", uri)

	client, err := ConnectDB(uri, 10*time.Second)
	require.NoError(t, err)

	db := client.Database(fmt.Sprintf("trainer_test_%d", time.Now().UnixNano()))
	return db, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = db.Drop(ctx)
		_ = DisconnectDB(client)
	}
}

func TestEntitySource_SeedAndLoad(t *testing.T) {
	ctx := context.Background()
	db, shutdown := testDBSetup(t)
	defer shutdown()

	source := NewEntitySource(db)
	source.EnsureIndexes(ctx)

	clients, workouts, err := source.Seed(ctx, memory.DemoSource{})
	require.NoError(t, err)
	assert.Equal(t, 3, clients)
	assert.Equal(t, 3, workouts)

	// Seeding twice upserts instead of duplicating.
	_, _, err = source.Seed(ctx, memory.DemoSource{})
	require.NoError(t, err)

	loadedClients, err := source.LoadClients(ctx)
	require.NoError(t, err)
	require.Len(t, loadedClients, 3)
	assert.Equal(t, "Anna Ivanova", loadedClients[0].Name)

	loadedWorkouts, err := source.LoadWorkouts(ctx)
	require.NoError(t, err)
	require.Len(t, loadedWorkouts, 3)
	assert.Equal(t, "14:00", loadedWorkouts[2].Time)

	store := memory.NewStore()
	require.NoError(t, store.Load(ctx, source))
}

func TestTemplateStore_SaveLoad(t *testing.T) {
	ctx := context.Background()
	db, shutdown := testDBSetup(t)
	defer shutdown()

	kv := NewMongoTemplateStore(db)
	key := "templates/" + gofakeit.UUID()

	_, found, err := kv.Load(ctx, key)
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, kv.Save(ctx, key, []byte(`{"name":"a"}`)))
	require.NoError(t, kv.Save(ctx, key, []byte(`{"name":"b"}`)))

	v, found, err := kv.Load(ctx, key)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, `{"name":"b"}`, string(v))
}
