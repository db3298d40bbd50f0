package graph

import (
	"context"
	"fmt"
	"regexp"
)

// Node identifies a graph node by label and its id property
type Node struct {
	Label string `json:"label"`
	ID    string `json:"id"`
}

func (n Node) String() string {
	return fmt.Sprintf("(:%s {id: %q})", n.Label, n.ID)
}

// Store opens write transactions against a graph database
type Store interface {
	Begin(ctx context.Context) (Tx, error)
}

// Tx is a single write transaction. Writes become visible to other
// transactions only after Commit; a Tx sees its own uncommitted writes.
type Tx interface {
	// FindOrCreateNode returns the node with the given label and id, creating
	// it when absent. created reports which of the two happened.
	FindOrCreateNode(ctx context.Context, label, id string) (node Node, created bool, err error)
	// HasEdgeTo reports whether from already has an outgoing edgeType edge to to
	HasEdgeTo(ctx context.Context, from, to Node, edgeType string) (bool, error)
	// CreateEdge creates a from -> to edge of edgeType without checking for an existing one
	CreateEdge(ctx context.Context, from, to Node, edgeType string) error
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// Counts holds node and edge totals of a loaded graph
type Counts struct {
	Actors int64 `json:"actors"`
	Movies int64 `json:"movies"`
	Edges  int64 `json:"edges"`
}

// identifierPattern restricts labels and relationship types, which Cypher
// cannot take as parameters
var identifierPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

func checkIdentifier(kind, name string) error {
	if !identifierPattern.MatchString(name) {
		return ErrInvalidIdentifier{Kind: kind, Name: name}
	}
	return nil
}

// Errors

type ErrInvalidIdentifier struct {
	Kind string
	Name string
}

func (e ErrInvalidIdentifier) Error() string {
	return fmt.Sprintf("invalid %s: %q", e.Kind, e.Name)
}

type ErrNodeNotFound struct {
	Node Node
}

func (e ErrNodeNotFound) Error() string {
	return fmt.Sprintf("node not found: %s", e.Node)
}

var errTxClosed = fmt.Errorf("transaction already closed")
