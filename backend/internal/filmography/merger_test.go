package filmography

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"movielynx/backend/internal/constants"
	"movielynx/backend/internal/state"
	apperrors "movielynx/backend/pkg/errors"
)

const actorsListing = "THE ACTORS LIST\n" +
	"----\t\t\t------\n" +
	"Doe, Sam\tShared Film (2001)\n" +
	"\tActors Only (2002)\n" +
	"\n" +
	"Roe, Max\tSolo (1999)\n"

const actressesListing = "THE ACTRESSES LIST\n" +
	"----\t\t\t------\n" +
	"Doe, Sam\tShared Film (2001)\n" +
	"\tActresses Only (2003)\n" +
	"\n" +
	"Poe, Ada\tRaven (1980)\n"

func writeSources(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
	}
	return dir
}

func newTestMerger(t *testing.T) *Merger {
	log := zaptest.NewLogger(t)
	return NewMerger(NewParser(log), constants.RequiredSources, log)
}

func TestMerger_LastWriteWins(t *testing.T) {
	dir := writeSources(t, map[string]string{
		"actors.list":    actorsListing,
		"actresses.list": actressesListing,
	})

	master, err := newTestMerger(t).Merge(dir)
	require.NoError(t, err)

	expected := state.Filmography{
		"Sam Doe": {"Shared Film", "Actresses Only"},
		"Max Roe": {"Solo"},
		"Ada Poe": {"Raven"},
	}
	assert.Equal(t, expected, master)
}

func TestMerger_MissingSource(t *testing.T) {
	dir := writeSources(t, map[string]string{"actors.list": actorsListing})

	master, err := newTestMerger(t).Merge(dir)
	require.Error(t, err)
	assert.Nil(t, master)

	var missing *apperrors.ErrMissingSource
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, "actresses.list", missing.Name)
	assert.True(t, apperrors.IsErrorType(err, apperrors.ErrorTypeSource))
}

func TestMerger_EmptyDirectory(t *testing.T) {
	_, err := newTestMerger(t).Merge(t.TempDir())

	var missing *apperrors.ErrMissingSource
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, "actors.list", missing.Name)
}

func TestVerifySources_MissingDirectory(t *testing.T) {
	err := VerifySources(filepath.Join(t.TempDir(), "absent"), constants.RequiredSources)
	require.Error(t, err)
	assert.True(t, apperrors.IsErrorType(err, apperrors.ErrorTypeConfig))
}

func TestVerifySources_DirectoryNamedLikeSource(t *testing.T) {
	dir := writeSources(t, map[string]string{"actors.list": actorsListing})
	require.NoError(t, os.Mkdir(filepath.Join(dir, "actresses.list"), 0o755))

	err := VerifySources(dir, constants.RequiredSources)
	assert.True(t, apperrors.IsErrorType(err, apperrors.ErrorTypeSource))
}

func TestMerge_Order(t *testing.T) {
	a := state.Filmography{"Sam Doe": {"A1", "A2"}, "Only A": {"X"}}
	b := state.Filmography{"Sam Doe": {"B1"}}

	assert.Equal(t, state.Filmography{"Sam Doe": {"B1"}, "Only A": {"X"}}, Merge(a, b))
	assert.Equal(t, state.Filmography{"Sam Doe": {"A1", "A2"}, "Only A": {"X"}}, Merge(b, a))
	assert.Empty(t, Merge())
}
