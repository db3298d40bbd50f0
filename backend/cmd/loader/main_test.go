package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"movielynx/backend/internal/graph"
	"movielynx/backend/pkg/config"
	apperrors "movielynx/backend/pkg/errors"
)

func testConfig(dir string) *config.Config {
	return &config.Config{
		Env:           "development",
		ActorFileDir:  dir,
		Neo4jURI:      "bolt://localhost:7687",
		Neo4jUser:     "neo4j",
		Neo4jPassword: "password",
		BatchSize:     1000,
	}
}

func TestRun_DryRun(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "actors.list"),
		[]byte("----\t\t\t------\nDoe, Sam\tFirst (2001)\n\tSecond (2002)\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "actresses.list"),
		[]byte("----\t\t\t------\nPoe, Ada\tFirst (2001)\n"), 0o644))

	result, counts, err := run(context.Background(), testConfig(dir), options{dryRun: true}, zaptest.NewLogger(t))
	require.NoError(t, err)

	assert.NotEmpty(t, result.RunID)
	assert.Equal(t, 2, result.Persons)
	assert.Equal(t, graph.Counts{Actors: 2, Movies: 2, Edges: 3}, counts)
}

func TestRun_DryRunMissingSource(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "actors.list"), []byte("----\t\t\t------\n"), 0o644))

	_, _, err := run(context.Background(), testConfig(dir), options{dryRun: true}, zaptest.NewLogger(t))
	require.Error(t, err)
	assert.True(t, apperrors.IsErrorType(err, apperrors.ErrorTypeSource))
	assert.False(t, apperrors.IsRetryable(err))
}
