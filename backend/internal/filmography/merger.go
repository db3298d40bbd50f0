package filmography

import (
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"movielynx/backend/internal/state"
	apperrors "movielynx/backend/pkg/errors"
	"movielynx/backend/pkg/logger"
)

// Merger parses a fixed list of listing files from one directory and folds
// them into a single Filmography
type Merger struct {
	parser  *Parser
	sources []string
	logger  *zap.Logger
}

// NewMerger creates a merger over sources, merged in the given order
func NewMerger(parser *Parser, sources []string, log *zap.Logger) *Merger {
	if log == nil {
		log = logger.For("merger")
	}
	return &Merger{
		parser:  parser,
		sources: append([]string(nil), sources...),
		logger:  log,
	}
}

// Merge verifies every source exists in dir, then parses them in order.
// A person present in several sources keeps the credits of the last one.
func (m *Merger) Merge(dir string) (state.Filmography, error) {
	if err := VerifySources(dir, m.sources); err != nil {
		return nil, err
	}

	master := state.Filmography{}
	for _, name := range m.sources {
		films, err := m.parser.ParseFile(filepath.Join(dir, name))
		if err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", name, err)
		}
		master = Merge(master, films)

		m.logger.Info("Source merged",
			zap.String("source", name),
			zap.Int("persons", len(films)),
			zap.Int("total_persons", len(master)),
		)
	}
	return master, nil
}

// VerifySources checks that dir exists and holds every named source file
func VerifySources(dir string, names []string) error {
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		return apperrors.NewConfigValidationFailed("input directory", fmt.Sprintf("non-existent directory %s", dir))
	}

	for _, name := range names {
		info, err := os.Stat(filepath.Join(dir, name))
		if err != nil || info.IsDir() {
			return apperrors.NewMissingSource(dir, name)
		}
	}
	return nil
}

// Merge folds maps left to right into a new Filmography. Keys are
// overwritten, never combined: the last map holding a person wins.
func Merge(maps ...state.Filmography) state.Filmography {
	merged := state.Filmography{}
	for _, films := range maps {
		for person, movies := range films {
			merged[person] = movies
		}
	}
	return merged
}
