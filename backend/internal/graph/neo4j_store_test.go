package graph

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"go.uber.org/zap/zaptest"

	"movielynx/backend/internal/state"
)

// TestNeo4jStore_* require a running Neo4j instance
// Set NEO4J_TEST_URI, NEO4J_TEST_USER, NEO4J_TEST_PASSWORD environment variables
func TestNeo4jStore_LoadIdempotent(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test")
	}

	ctx := context.Background()
	driver, err := createTestDriver()
	if err != nil {
		t.Skipf("Neo4j not available: %v", err)
	}
	defer driver.Close(ctx)

	store := NewNeo4jStore(driver, "")
	if err := store.EnsureIndexes(ctx); err != nil {
		t.Fatalf("EnsureIndexes failed: %v", err)
	}

	suffix := " #" + time.Now().Format("20060102150405.000")
	films := state.Filmography{
		"Carmencita Abad" + suffix: {"1 2 3" + suffix, "Abarinding" + suffix, "1 2 3" + suffix},
		"Angeles Abad" + suffix:    {"Troyanas" + suffix, "1 2 3" + suffix},
	}

	// Clean up
	defer func() {
		session := driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeWrite})
		defer session.Close(ctx)
		_, _ = session.Run(ctx, "MATCH (n) WHERE (n:Actor OR n:Movie) AND n.id ENDS WITH $suffix DETACH DELETE n",
			map[string]interface{}{"suffix": suffix})
	}()

	before, err := store.Counts(ctx)
	if err != nil {
		t.Fatalf("Counts failed: %v", err)
	}

	loader := NewLoader(store, 1, zaptest.NewLogger(t))
	first, err := loader.Load(ctx, films)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if first.ActorsCreated != 2 || first.MoviesCreated != 3 || first.EdgesCreated != 4 || first.EdgesSkipped != 1 {
		t.Errorf("Unexpected first load stats: %+v", first)
	}
	if first.Batches != 2 {
		t.Errorf("Expected 2 batches, got %d", first.Batches)
	}

	second, err := loader.Load(ctx, films)
	if err != nil {
		t.Fatalf("Second load failed: %v", err)
	}
	if second.ActorsCreated != 0 || second.MoviesCreated != 0 || second.EdgesCreated != 0 {
		t.Errorf("Second load created data: %+v", second)
	}

	after, err := store.Counts(ctx)
	if err != nil {
		t.Fatalf("Counts failed: %v", err)
	}
	if after.Actors-before.Actors != 2 || after.Movies-before.Movies != 3 || after.Edges-before.Edges != 4 {
		t.Errorf("Unexpected graph growth: before %+v, after %+v", before, after)
	}
}

func TestNeo4jStore_Rollback(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test")
	}

	ctx := context.Background()
	driver, err := createTestDriver()
	if err != nil {
		t.Skipf("Neo4j not available: %v", err)
	}
	defer driver.Close(ctx)

	store := NewNeo4jStore(driver, "")
	id := "rollback-" + time.Now().Format("20060102150405.000")

	tx, err := store.Begin(ctx)
	if err != nil {
		t.Fatalf("Begin failed: %v", err)
	}
	if _, created, err := tx.FindOrCreateNode(ctx, "Actor", id); err != nil || !created {
		t.Fatalf("FindOrCreateNode failed: created=%v err=%v", created, err)
	}
	if err := tx.Rollback(ctx); err != nil {
		t.Fatalf("Rollback failed: %v", err)
	}

	tx, err = store.Begin(ctx)
	if err != nil {
		t.Fatalf("Begin failed: %v", err)
	}
	defer tx.Rollback(ctx)
	if _, created, err := tx.FindOrCreateNode(ctx, "Actor", id); err != nil || !created {
		t.Errorf("Rolled back node should not exist: created=%v err=%v", created, err)
	}
}

func createTestDriver() (neo4j.DriverWithContext, error) {
	uri := getTestEnv("NEO4J_TEST_URI", "bolt://localhost:7687")
	user := getTestEnv("NEO4J_TEST_USER", "neo4j")
	password := getTestEnv("NEO4J_TEST_PASSWORD", "password")

	driver, err := neo4j.NewDriverWithContext(uri, neo4j.BasicAuth(user, password, ""))
	if err != nil {
		return nil, err
	}

	// Verify connection
	ctx := context.Background()
	if err := driver.VerifyConnectivity(ctx); err != nil {
		driver.Close(ctx)
		return nil, err
	}

	return driver, nil
}

func getTestEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
