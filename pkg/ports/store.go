package ports

import (
	"context"
	"errors"

	"github.com/aretw0/canvasdoc/pkg/document"
)

// ErrDocumentNotFound is returned by DocumentStore.Load for unknown ids.
var ErrDocumentNotFound = errors.New("document not found")

// DocumentStore persists canvas documents.
type DocumentStore interface {
	// Save stores doc under id, replacing any previous version.
	Save(ctx context.Context, id string, doc *document.Document) error

	// Load retrieves the document stored under id.
	// Returns ErrDocumentNotFound if there is none.
	Load(ctx context.Context, id string) (*document.Document, error)

	// Delete removes the document. Deleting an unknown id is not an error.
	Delete(ctx context.Context, id string) error

	// List returns the stored ids in ascending order.
	List(ctx context.Context) ([]string, error)
}
