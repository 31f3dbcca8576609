// Package storage persists computed facet layouts as documents.
//
// A [Document] pairs a [facet.Layout] with the hash of the input it was
// computed from, so an API server can hand out stable IDs and answer repeat
// requests without recomputing. Backends:
//   - [MemoryStore]: in-process map for tests and single-instance servers
//   - [FileStore]: one JSON file per document, for the CLI
//   - [MongoStore]: MongoDB collection for multi-instance deployments
//
// Usage:
//
//	store := storage.NewMemoryStore()
//	doc := storage.NewDocument(inputHash, layout, storage.DefaultTTL)
//	if err := store.Put(ctx, doc); err != nil {
//	    return err
//	}
//	doc, err := store.Get(ctx, doc.ID)
//	if errors.Is(err, storage.ErrNotFound) {
//	    // unknown or expired
//	}
package storage

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/matzehuels/facetgrid/pkg/facet"
)

// Sentinel errors for storage operations.
var (
	// ErrNotFound is returned when a document does not exist or has expired.
	ErrNotFound = errors.New("layout not found")

	// ErrInvalidID is returned for IDs that are not UUIDs.
	ErrInvalidID = errors.New("invalid layout id")
)

// DefaultTTL is how long stored layouts are kept.
const DefaultTTL = 30 * 24 * time.Hour

// Document is a stored layout.
type Document struct {
	ID        string       `json:"id"`
	InputHash string       `json:"input_hash"`
	Layout    facet.Layout `json:"layout"`
	CreatedAt time.Time    `json:"created_at"`
	ExpiresAt *time.Time   `json:"expires_at,omitempty"`
}

// NewDocument creates a document with a fresh ID. A zero ttl never expires.
func NewDocument(inputHash string, l facet.Layout, ttl time.Duration) *Document {
	now := time.Now().UTC()
	doc := &Document{
		ID:        uuid.NewString(),
		InputHash: inputHash,
		Layout:    l,
		CreatedAt: now,
	}
	if ttl > 0 {
		exp := now.Add(ttl)
		doc.ExpiresAt = &exp
	}
	return doc
}

// IsExpired reports whether the document has passed its expiry time.
func (d *Document) IsExpired() bool {
	return d.ExpiresAt != nil && time.Now().After(*d.ExpiresAt)
}

// Store is the interface for layout storage backends.
type Store interface {
	// Get retrieves a document by ID. Returns ErrNotFound when the document
	// does not exist or has expired.
	Get(ctx context.Context, id string) (*Document, error)

	// FindByInputHash returns the newest live document computed from the
	// given input, or ErrNotFound.
	FindByInputHash(ctx context.Context, inputHash string) (*Document, error)

	// Put stores a document, replacing any document with the same ID.
	Put(ctx context.Context, doc *Document) error

	// Delete removes a document. Deleting a missing document is not an error.
	Delete(ctx context.Context, id string) error

	// Close releases backend resources.
	Close() error
}

// Sweeper is implemented by stores that cannot expire documents on their own.
// Mongo relies on its TTL index and does not implement it.
type Sweeper interface {
	Cleanup(ctx context.Context) (int, error)
}

var (
	_ Sweeper = (*MemoryStore)(nil)
	_ Sweeper = (*FileStore)(nil)
)

// ValidateID checks that id is a UUID.
func ValidateID(id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return ErrInvalidID
	}
	return nil
}

func newer(a, b *Document) bool {
	return b == nil || a.CreatedAt.After(b.CreatedAt)
}
