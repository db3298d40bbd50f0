package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"movielynx/backend/internal/graph"
	"movielynx/backend/internal/state"
)

// FilmographySource produces the master mapping to load
type FilmographySource interface {
	Merge(dir string) (state.Filmography, error)
}

// GraphLoader writes a master mapping into the graph
type GraphLoader interface {
	Load(ctx context.Context, films state.Filmography) (graph.LoadStats, error)
}

// LoadResult summarizes one run of the load pipeline
type LoadResult struct {
	RunID    string          `json:"run_id"`
	Persons  int             `json:"persons"`
	Credits  int             `json:"credits"`
	Stats    graph.LoadStats `json:"stats"`
	ParseDur time.Duration   `json:"parse_duration"`
	LoadDur  time.Duration   `json:"load_duration"`
}

// LoadService runs the parse phase to completion, then the load phase
type LoadService struct {
	source FilmographySource
	loader GraphLoader
	dir    string
	logger *zap.Logger
}

// NewLoadService creates the pipeline over the listing files in dir
func NewLoadService(logger *zap.Logger, source FilmographySource, loader GraphLoader, dir string) *LoadService {
	return &LoadService{
		source: source,
		loader: loader,
		dir:    dir,
		logger: logger,
	}
}

// Run parses every listing into memory and then loads the result. Nothing
// is written when parsing fails.
func (s *LoadService) Run(ctx context.Context) (*LoadResult, error) {
	result := &LoadResult{RunID: uuid.NewString()}
	log := s.logger.With(zap.String("run_id", result.RunID))

	log.Info("Parsing listings", zap.String("dir", s.dir))
	start := time.Now()
	films, err := s.source.Merge(s.dir)
	if err != nil {
		return result, fmt.Errorf("parse phase failed: %w", err)
	}
	result.ParseDur = time.Since(start)
	result.Persons = len(films)
	result.Credits = films.CreditCount()

	log.Info("Listings parsed",
		zap.Int("persons", result.Persons),
		zap.Int("credits", result.Credits),
		zap.Duration("duration", result.ParseDur),
	)

	start = time.Now()
	stats, err := s.loader.Load(ctx, films)
	result.Stats = stats
	result.LoadDur = time.Since(start)
	if err != nil {
		log.Error("Load failed",
			zap.Int("committed_persons", stats.Persons),
			zap.Error(err),
		)
		return result, fmt.Errorf("load phase failed: %w", err)
	}

	log.Info("Load finished",
		zap.Int("persons", stats.Persons),
		zap.Int("edges_created", stats.EdgesCreated),
		zap.Duration("duration", result.LoadDur),
	)
	return result, nil
}
