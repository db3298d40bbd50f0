package graph

import (
	"context"
	"fmt"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"go.uber.org/zap"

	"movielynx/backend/internal/constants"
	"movielynx/backend/pkg/logger"
)

// Neo4jStore handles all Neo4j database operations of the loader
type Neo4jStore struct {
	driver   neo4j.DriverWithContext
	database string
	logger   *zap.Logger
}

// NewNeo4jStore creates a store on driver. An empty database selects the
// server default.
func NewNeo4jStore(driver neo4j.DriverWithContext, database string) *Neo4jStore {
	return &Neo4jStore{
		driver:   driver,
		database: database,
		logger:   logger.For("neo4j"),
	}
}

// Close closes the Neo4j driver connection
func (s *Neo4jStore) Close(ctx context.Context) error {
	return s.driver.Close(ctx)
}

func (s *Neo4jStore) session(ctx context.Context, mode neo4j.AccessMode) neo4j.SessionWithContext {
	return s.driver.NewSession(ctx, neo4j.SessionConfig{
		AccessMode:   mode,
		DatabaseName: s.database,
	})
}

// Begin opens an explicit write transaction on a fresh session
func (s *Neo4jStore) Begin(ctx context.Context) (Tx, error) {
	session := s.session(ctx, neo4j.AccessModeWrite)
	tx, err := session.BeginTransaction(ctx)
	if err != nil {
		_ = session.Close(ctx)
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	return &neo4jTx{session: session, tx: tx}, nil
}

// EnsureIndexes creates lookup indexes on the id property of both labels.
// They are not uniqueness constraints; duplicate edges are still avoided by
// the loader's own existence checks.
func (s *Neo4jStore) EnsureIndexes(ctx context.Context) error {
	session := s.session(ctx, neo4j.AccessModeWrite)
	defer session.Close(ctx)

	indexes := []struct {
		name  string
		label string
	}{
		{"actor_id_index", constants.ActorLabel},
		{"movie_id_index", constants.MovieLabel},
	}

	for _, idx := range indexes {
		query := fmt.Sprintf("CREATE INDEX %s IF NOT EXISTS FOR (n:%s) ON (n.%s)", idx.name, idx.label, constants.IDProperty)
		result, err := session.Run(ctx, query, nil)
		if err != nil {
			return fmt.Errorf("failed to create index %s: %w", idx.name, err)
		}
		if _, err := result.Consume(ctx); err != nil {
			return fmt.Errorf("failed to create index %s: %w", idx.name, err)
		}
		s.logger.Info("Index ensured", zap.String("index", idx.name), zap.String("label", idx.label))
	}
	return nil
}

// Counts returns the number of actor nodes, movie nodes and acted-in edges
func (s *Neo4jStore) Counts(ctx context.Context) (Counts, error) {
	session := s.session(ctx, neo4j.AccessModeRead)
	defer session.Close(ctx)

	query := fmt.Sprintf(`
		CALL { MATCH (a:%[1]s) RETURN count(a) AS actors }
		CALL { MATCH (m:%[2]s) RETURN count(m) AS movies }
		CALL { MATCH (:%[1]s)-[r:%[3]s]->(:%[2]s) RETURN count(r) AS edges }
		RETURN actors, movies, edges
	`, constants.ActorLabel, constants.MovieLabel, constants.ActedIn)

	result, err := session.Run(ctx, query, nil)
	if err != nil {
		return Counts{}, fmt.Errorf("failed to execute query: %w", err)
	}
	record, err := result.Single(ctx)
	if err != nil {
		return Counts{}, fmt.Errorf("failed to fetch counts: %w", err)
	}

	return Counts{
		Actors: getInt64FromRecord(record, "actors"),
		Movies: getInt64FromRecord(record, "movies"),
		Edges:  getInt64FromRecord(record, "edges"),
	}, nil
}

// neo4jTx is one explicit transaction; it owns its session
type neo4jTx struct {
	session neo4j.SessionWithContext
	tx      neo4j.ExplicitTransaction
	closed  bool
}

func (t *neo4jTx) FindOrCreateNode(ctx context.Context, label, id string) (Node, bool, error) {
	if t.closed {
		return Node{}, false, errTxClosed
	}
	if err := checkIdentifier("label", label); err != nil {
		return Node{}, false, err
	}
	node := Node{Label: label, ID: id}
	params := map[string]interface{}{"id": id}

	find := fmt.Sprintf("MATCH (n:%s {%s: $id}) RETURN n.%s AS id LIMIT 1", label, constants.IDProperty, constants.IDProperty)
	result, err := t.tx.Run(ctx, find, params)
	if err != nil {
		return Node{}, false, fmt.Errorf("failed to find node %s: %w", node, err)
	}
	if result.Next(ctx) {
		return node, false, nil
	}
	if err := result.Err(); err != nil {
		return Node{}, false, fmt.Errorf("failed to find node %s: %w", node, err)
	}

	create := fmt.Sprintf("CREATE (n:%s {%s: $id})", label, constants.IDProperty)
	result, err = t.tx.Run(ctx, create, params)
	if err != nil {
		return Node{}, false, fmt.Errorf("failed to create node %s: %w", node, err)
	}
	if _, err := result.Consume(ctx); err != nil {
		return Node{}, false, fmt.Errorf("failed to create node %s: %w", node, err)
	}
	return node, true, nil
}

func (t *neo4jTx) HasEdgeTo(ctx context.Context, from, to Node, edgeType string) (bool, error) {
	if t.closed {
		return false, errTxClosed
	}
	if err := checkEdge(from, to, edgeType); err != nil {
		return false, err
	}

	query := fmt.Sprintf(`
		MATCH (a:%s {%s: $from})-[r:%s]->(b)
		WHERE b:%s AND b.%s = $to
		RETURN count(r) AS edges
	`, from.Label, constants.IDProperty, edgeType, to.Label, constants.IDProperty)

	result, err := t.tx.Run(ctx, query, map[string]interface{}{
		"from": from.ID,
		"to":   to.ID,
	})
	if err != nil {
		return false, fmt.Errorf("failed to scan edges of %s: %w", from, err)
	}
	record, err := result.Single(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to scan edges of %s: %w", from, err)
	}
	return getInt64FromRecord(record, "edges") > 0, nil
}

func (t *neo4jTx) CreateEdge(ctx context.Context, from, to Node, edgeType string) error {
	if t.closed {
		return errTxClosed
	}
	if err := checkEdge(from, to, edgeType); err != nil {
		return err
	}

	query := fmt.Sprintf(`
		MATCH (a:%s {%s: $from}), (b:%s {%s: $to})
		CREATE (a)-[:%s]->(b)
	`, from.Label, constants.IDProperty, to.Label, constants.IDProperty, edgeType)

	result, err := t.tx.Run(ctx, query, map[string]interface{}{
		"from": from.ID,
		"to":   to.ID,
	})
	if err != nil {
		return fmt.Errorf("failed to create edge %s->%s: %w", from, to, err)
	}
	summary, err := result.Consume(ctx)
	if err != nil {
		return fmt.Errorf("failed to create edge %s->%s: %w", from, to, err)
	}
	if summary.Counters().RelationshipsCreated() == 0 {
		return ErrNodeNotFound{Node: from}
	}
	return nil
}

func (t *neo4jTx) Commit(ctx context.Context) error {
	if t.closed {
		return errTxClosed
	}
	t.closed = true
	defer t.session.Close(ctx)

	if err := t.tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

func (t *neo4jTx) Rollback(ctx context.Context) error {
	if t.closed {
		return nil
	}
	t.closed = true
	defer t.session.Close(ctx)

	return t.tx.Rollback(ctx)
}

func checkEdge(from, to Node, edgeType string) error {
	if err := checkIdentifier("label", from.Label); err != nil {
		return err
	}
	if err := checkIdentifier("label", to.Label); err != nil {
		return err
	}
	return checkIdentifier("relationship type", edgeType)
}
