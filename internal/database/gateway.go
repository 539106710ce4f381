package database

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

var (
	ErrUnavailable = errors.New("database not available")
	ErrNotFound    = errors.New("record not found")
	ErrInvalidID   = errors.New("invalid id")
)

// Doc is the canonical field mapping stored in a collection.
type Doc map[string]any

// Fields returns a shallow copy so callers can stamp it without touching d.
func (d Doc) Fields() map[string]any {
	out := make(map[string]any, len(d)+2)
	for k, v := range d {
		out[k] = v
	}
	return out
}

// Record is anything that serializes itself to a canonical field mapping.
type Record interface {
	Fields() map[string]any
}

// Backend is the storage driver beneath the Gateway. Inserted documents
// carry no "_id"; the backend assigns one.
type Backend interface {
	Insert(ctx context.Context, collection string, doc map[string]any) (string, error)
	Find(ctx context.Context, collection string, filter map[string]any, limit int64) ([]Doc, error)
	FindByID(ctx context.Context, collection string, id primitive.ObjectID) (Doc, error)
	CollectionNames(ctx context.Context) ([]string, error)
}

// Gateway is the process-wide handle to the document store. A Gateway built
// without a backend stays unavailable for the lifetime of the process.
type Gateway struct {
	backend Backend
	now     func() time.Time
}

func NewGateway(b Backend) *Gateway {
	return &Gateway{backend: b, now: func() time.Time { return time.Now().UTC() }}
}

// Unavailable returns a gateway with no store behind it.
func Unavailable() *Gateway { return NewGateway(nil) }

func (g *Gateway) Available() bool {
	return g != nil && g.backend != nil
}

// Create stamps created_at/updated_at on the record's fields and inserts it.
func (g *Gateway) Create(ctx context.Context, collection string, rec Record) (string, error) {
	if !g.Available() {
		return "", ErrUnavailable
	}
	fields := rec.Fields()
	delete(fields, "_id")
	now := g.now()
	fields["created_at"] = now
	fields["updated_at"] = now
	return g.backend.Insert(ctx, collection, fields)
}

// Query applies an equality filter; a zero limit means no cap.
func (g *Gateway) Query(ctx context.Context, collection string, filter map[string]any, limit int64) ([]Doc, error) {
	if !g.Available() {
		return nil, ErrUnavailable
	}
	if filter == nil {
		filter = map[string]any{}
	}
	// a negative limit caps like its absolute value, as in the Mongo driver
	if limit < 0 {
		limit = -limit
	}
	return g.backend.Find(ctx, collection, filter, limit)
}

// FindByID looks up a record by its hex ObjectID.
func (g *Gateway) FindByID(ctx context.Context, collection, id string) (Doc, error) {
	if !g.Available() {
		return nil, ErrUnavailable
	}
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrInvalidID
	}
	return g.backend.FindByID(ctx, collection, oid)
}

// CollectionNames returns at most max collection names.
func (g *Gateway) CollectionNames(ctx context.Context, max int) ([]string, error) {
	if !g.Available() {
		return nil, ErrUnavailable
	}
	names, err := g.backend.CollectionNames(ctx)
	if err != nil {
		return nil, err
	}
	if max > 0 && len(names) > max {
		names = names[:max]
	}
	return names, nil
}

// IDString renders a stored "_id" value as a string.
func IDString(v any) string {
	switch id := v.(type) {
	case primitive.ObjectID:
		return id.Hex()
	case string:
		return id
	case nil:
		return ""
	default:
		return ""
	}
}
