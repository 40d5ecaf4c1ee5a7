package repository

import (
	"context"
	"time"

	"github.com/lawfolio/lawfolio/backend/site-service/internal/content"
)

// Collection names in the document store.
const (
	ContentCollection = "siteContent"
	ServiceCollection = "services"
	MessageCollection = "messages"
)

// ContentRepository persists the singleton keyed documents.
type ContentRepository interface {
	// Get returns (nil, nil) when the key was never written.
	Get(ctx context.Context, key content.Key) (*content.Document, error)
	// Merge upserts key, overlaying fields onto the stored ones and stamping at.
	Merge(ctx context.Context, key content.Key, fields content.Fields, at time.Time) error
}

// ServiceRepository persists the ordered services collection.
type ServiceRepository interface {
	// List returns every entry ascending by Order.
	List(ctx context.Context) ([]content.ServiceEntry, error)
	Create(ctx context.Context, s *content.ServiceEntry) error
	// Update applies the non-nil patch fields; content.ErrNotFound when id is absent.
	Update(ctx context.Context, id string, patch content.ServicePatch, at time.Time) error
	// Delete is a no-op for an absent id.
	Delete(ctx context.Context, id string) error
}

// MessageRepository persists the contact form inbox.
type MessageRepository interface {
	// List returns every entry descending by CreatedAt.
	List(ctx context.Context) ([]content.MessageEntry, error)
	Create(ctx context.Context, m *content.MessageEntry) error
	// Delete is a no-op for an absent id.
	Delete(ctx context.Context, id string) error
}
