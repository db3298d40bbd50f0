package graph

import (
	"context"
	"math"
	"time"

	"go.uber.org/zap"

	"movielynx/backend/internal/constants"
	"movielynx/backend/internal/state"
	apperrors "movielynx/backend/pkg/errors"
	"movielynx/backend/pkg/logger"
)

// ProgressFunc observes a load after every committed batch
type ProgressFunc func(state.LoadProgress)

// LoadStats summarizes the committed part of a load
type LoadStats struct {
	Persons       int `json:"persons"`
	ActorsCreated int `json:"actors_created"`
	MoviesCreated int `json:"movies_created"`
	EdgesCreated  int `json:"edges_created"`
	EdgesSkipped  int `json:"edges_skipped"`
	Batches       int `json:"batches"`
}

func (s *LoadStats) add(other LoadStats) {
	s.Persons += other.Persons
	s.ActorsCreated += other.ActorsCreated
	s.MoviesCreated += other.MoviesCreated
	s.EdgesCreated += other.EdgesCreated
	s.EdgesSkipped += other.EdgesSkipped
	s.Batches += other.Batches
}

// Loader writes a Filmography into a Store as Actor and Movie nodes joined by
// ACTED_IN edges, one transaction per batch of persons
type Loader struct {
	store     Store
	batchSize int
	progress  ProgressFunc
	logger    *zap.Logger
}

// NewLoader creates a loader. A non-positive batchSize selects the default.
func NewLoader(store Store, batchSize int, log *zap.Logger) *Loader {
	if batchSize <= 0 {
		batchSize = constants.DefaultBatchSize
	}
	if log == nil {
		log = logger.For("loader")
	}
	return &Loader{
		store:     store,
		batchSize: batchSize,
		logger:    log,
	}
}

// WithProgress registers fn to be called after each committed batch
func (l *Loader) WithProgress(fn ProgressFunc) *Loader {
	l.progress = fn
	return l
}

// Load writes films in sorted person order. Rerunning it against the same
// store finds existing nodes and edges instead of duplicating them.
//
// On failure the open batch is rolled back and an *errors.ErrGraphBatchFailed
// is returned together with the stats of the batches already committed.
func (l *Loader) Load(ctx context.Context, films state.Filmography) (LoadStats, error) {
	var stats LoadStats

	persons := films.Persons()
	total := len(persons)
	if total == 0 {
		l.logger.Info("Nothing to load")
		return stats, nil
	}

	batchNo := 1
	var batch LoadStats
	start := time.Now()

	tx, err := l.store.Begin(ctx)
	if err != nil {
		return stats, apperrors.NewGraphBatchFailed(batchNo, 0, err)
	}

	for i, person := range persons {
		if err := l.loadPerson(ctx, tx, person, films[person], &batch); err != nil {
			if rbErr := tx.Rollback(ctx); rbErr != nil {
				l.logger.Warn("Rollback failed", zap.Int("batch", batchNo), zap.Error(rbErr))
			}
			return stats, apperrors.NewGraphBatchFailed(batchNo, stats.Persons, err)
		}
		batch.Persons++

		last := i == total-1
		if batch.Persons < l.batchSize && !last {
			continue
		}

		if err := tx.Commit(ctx); err != nil {
			return stats, apperrors.NewGraphBatchFailed(batchNo, stats.Persons, err)
		}
		batch.Batches = 1
		stats.add(batch)
		l.report(state.LoadProgress{
			Batch:     batchNo,
			Processed: stats.Persons,
			Total:     total,
			Percent:   percent(stats.Persons, total),
			Elapsed:   time.Since(start),
		})

		if last {
			break
		}
		batchNo++
		batch = LoadStats{}
		start = time.Now()
		if tx, err = l.store.Begin(ctx); err != nil {
			return stats, apperrors.NewGraphBatchFailed(batchNo, stats.Persons, err)
		}
	}

	l.logger.Info("Load complete",
		zap.Int("persons", stats.Persons),
		zap.Int("actors_created", stats.ActorsCreated),
		zap.Int("movies_created", stats.MoviesCreated),
		zap.Int("edges_created", stats.EdgesCreated),
		zap.Int("edges_skipped", stats.EdgesSkipped),
		zap.Int("batches", stats.Batches),
	)
	return stats, nil
}

func (l *Loader) loadPerson(ctx context.Context, tx Tx, person string, movies []string, batch *LoadStats) error {
	actor, created, err := tx.FindOrCreateNode(ctx, constants.ActorLabel, person)
	if err != nil {
		return err
	}
	if created {
		batch.ActorsCreated++
	}

	for _, title := range movies {
		movie, created, err := tx.FindOrCreateNode(ctx, constants.MovieLabel, title)
		if err != nil {
			return err
		}
		if created {
			batch.MoviesCreated++
		}

		exists, err := tx.HasEdgeTo(ctx, actor, movie, constants.ActedIn)
		if err != nil {
			return err
		}
		if exists {
			batch.EdgesSkipped++
			continue
		}
		if err := tx.CreateEdge(ctx, actor, movie, constants.ActedIn); err != nil {
			return err
		}
		batch.EdgesCreated++
	}
	return nil
}

func (l *Loader) report(p state.LoadProgress) {
	l.logger.Info("Batch committed",
		zap.Int("batch", p.Batch),
		zap.Int("processed", p.Processed),
		zap.Int("total", p.Total),
		zap.Float64("percent", p.Percent),
		zap.Duration("elapsed", p.Elapsed),
	)
	if l.progress != nil {
		l.progress(p)
	}
}

// percent rounds done/total to two decimals
func percent(done, total int) float64 {
	return math.Round(float64(done)/float64(total)*10000) / 100
}
