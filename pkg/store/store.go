// Package store persists rendered diagrams so they can be fetched again by ID.
//
// The HTTP server writes every successful render to a [Store]; clients then
// retrieve it through GET /v1/renders/{id}. Two backends are provided:
//   - [FileStore]: JSON documents on an afero filesystem (local or in-memory)
//   - [MongoStore]: one document per artifact in a MongoDB collection
//
// # Usage
//
//	st, err := store.NewFileStore(afero.NewOsFs(), "/var/lib/blockgraph")
//	if err != nil {
//	    return err
//	}
//	a := store.NewArtifact("shop", "svg", projectHash, svgBytes)
//	if err := st.Put(ctx, a); err != nil {
//	    return err
//	}
package store

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

// Sentinel errors for store operations.
var (
	// ErrNotFound is returned when no artifact has the requested ID.
	ErrNotFound = errors.New("artifact not found")

	// ErrInvalidID is returned for IDs that are not UUIDs.
	ErrInvalidID = errors.New("invalid artifact id")
)

// DefaultListLimit caps List when the caller passes a non-positive limit.
const DefaultListLimit = 50

// Artifact is one rendered output.
type Artifact struct {
	ID          string    `json:"id" bson:"_id"`
	Title       string    `json:"title,omitempty" bson:"title,omitempty"`
	Format      string    `json:"format" bson:"format"`
	ProjectHash string    `json:"project_hash" bson:"project_hash"`
	Data        []byte    `json:"data,omitempty" bson:"data,omitempty"`
	CreatedAt   time.Time `json:"created_at" bson:"created_at"`
}

// Store is the interface for artifact storage backends.
type Store interface {
	// Put stores a, replacing any artifact with the same ID.
	Put(ctx context.Context, a *Artifact) error

	// Get returns the artifact with the given ID or ErrNotFound.
	Get(ctx context.Context, id string) (*Artifact, error)

	// List returns up to limit artifacts, newest first, without Data.
	List(ctx context.Context, limit int) ([]Artifact, error)

	Close() error
}

// NewID returns a fresh random artifact ID.
func NewID() string {
	return uuid.NewString()
}

// ValidateID reports ErrInvalidID unless id parses as a UUID.
func ValidateID(id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return ErrInvalidID
	}
	return nil
}

// NewArtifact stamps a new artifact with an ID and creation time.
func NewArtifact(title, format, projectHash string, data []byte) *Artifact {
	return &Artifact{
		ID:          NewID(),
		Title:       title,
		Format:      format,
		ProjectHash: projectHash,
		Data:        data,
		CreatedAt:   time.Now().UTC(),
	}
}

func listLimit(n int) int {
	if n <= 0 {
		return DefaultListLimit
	}
	return n
}
