package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"go.uber.org/zap"

	"movielynx/backend/internal/constants"
	"movielynx/backend/internal/filmography"
	"movielynx/backend/internal/graph"
	"movielynx/backend/internal/services"
	"movielynx/backend/pkg/config"
	apperrors "movielynx/backend/pkg/errors"
	"movielynx/backend/pkg/logger"
)

type options struct {
	dryRun      bool
	skipIndexes bool
}

// countingStore is a graph.Store that can report its totals
type countingStore interface {
	graph.Store
	Counts(ctx context.Context) (graph.Counts, error)
}

func main() {
	var opts options
	flag.BoolVar(&opts.dryRun, "dry-run", false, "Parse and load into an in-memory graph instead of Neo4j")
	flag.BoolVar(&opts.skipIndexes, "skip-indexes", false, "Do not create the id lookup indexes before loading")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(2)
	}

	// Initialize logger
	if err := logger.Init(cfg.Env); err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer logger.Sync()

	log := logger.Get()
	log.Info("Starting filmography load...",
		zap.String("dir", cfg.ActorFileDir),
		zap.Int("batch_size", cfg.BatchSize),
		zap.Bool("dry_run", opts.dryRun),
	)

	ctx := context.Background()
	result, counts, err := run(ctx, cfg, opts, log)
	if err != nil {
		fields := []zap.Field{zap.Error(err), zap.Bool("retryable", apperrors.IsRetryable(err))}
		if result != nil {
			fields = append(fields, zap.String("run_id", result.RunID))
		}
		log.Fatal("Load failed", fields...)
	}

	log.Info("Load completed successfully!",
		zap.String("run_id", result.RunID),
		zap.Int64("actors", counts.Actors),
		zap.Int64("movies", counts.Movies),
		zap.Int64("edges", counts.Edges),
	)
}

func run(ctx context.Context, cfg *config.Config, opts options, log *zap.Logger) (*services.LoadResult, graph.Counts, error) {
	store, closeStore, err := openStore(ctx, cfg, opts, log)
	if err != nil {
		return nil, graph.Counts{}, err
	}
	defer closeStore()

	parser := filmography.NewParser(log.Named("parser"))
	merger := filmography.NewMerger(parser, constants.RequiredSources, log.Named("merger"))
	loader := graph.NewLoader(store, cfg.BatchSize, log.Named("loader"))

	result, err := services.NewLoadService(log, merger, loader, cfg.ActorFileDir).Run(ctx)
	if err != nil {
		return result, graph.Counts{}, err
	}

	counts, err := store.Counts(ctx)
	if err != nil {
		log.Warn("Failed to count loaded graph", zap.Error(err))
	}
	return result, counts, nil
}

func openStore(ctx context.Context, cfg *config.Config, opts options, log *zap.Logger) (countingStore, func(), error) {
	if opts.dryRun {
		return graph.NewMemoryStore(), func() {}, nil
	}

	// Initialize Neo4j driver
	driver, err := neo4j.NewDriverWithContext(
		cfg.Neo4jURI,
		neo4j.BasicAuth(cfg.Neo4jUser, cfg.Neo4jPassword, ""),
		func(c *neo4j.Config) {
			c.SocketConnectTimeout = 10 * time.Second
		},
	)
	if err != nil {
		return nil, nil, apperrors.NewGraphConnectionFailed(cfg.Neo4jURI, err)
	}

	// Verify connection
	if err := driver.VerifyConnectivity(ctx); err != nil {
		_ = driver.Close(ctx)
		return nil, nil, apperrors.NewGraphConnectionFailed(cfg.Neo4jURI, err)
	}

	store := graph.NewNeo4jStore(driver, cfg.Neo4jDatabase)
	if !opts.skipIndexes {
		if err := store.EnsureIndexes(ctx); err != nil {
			log.Warn("Failed to create indexes (continuing)", zap.Error(err))
		}
	}

	return store, func() { _ = store.Close(context.Background()) }, nil
}
