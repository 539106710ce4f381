// Package repository maps regulation records onto the persistence gateway.
package repository

import (
	"context"

	"github.com/stemracing/regulations/backend/go-services/internal/database"
	"github.com/stemracing/regulations/backend/go-services/internal/regulation"
)

// Store persists the three record types through a single gateway.
type Store struct {
	gw *database.Gateway
}

func New(gw *database.Gateway) *Store {
	return &Store{gw: gw}
}

func (s *Store) Available() bool { return s.gw.Available() }

func (s *Store) CreateDocument(ctx context.Context, d *regulation.Document) (string, error) {
	id, err := s.gw.Create(ctx, regulation.DocumentCollection, d)
	if err != nil {
		return "", err
	}
	d.ID = id
	return id, nil
}

// GetDocument returns database.ErrInvalidID for malformed ids and
// database.ErrNotFound when nothing matches.
func (s *Store) GetDocument(ctx context.Context, id string) (*regulation.Document, error) {
	m, err := s.gw.FindByID(ctx, regulation.DocumentCollection, id)
	if err != nil {
		return nil, err
	}
	return regulation.DocumentFromDoc(m), nil
}

func (s *Store) ListDocuments(ctx context.Context, limit int64) ([]*regulation.Document, error) {
	docs, err := s.gw.Query(ctx, regulation.DocumentCollection, nil, limit)
	if err != nil {
		return nil, err
	}
	out := make([]*regulation.Document, 0, len(docs))
	for _, m := range docs {
		out = append(out, regulation.DocumentFromDoc(m))
	}
	return out, nil
}

func (s *Store) CreateFlashcard(ctx context.Context, f *regulation.Flashcard) (string, error) {
	id, err := s.gw.Create(ctx, regulation.FlashcardCollection, f)
	if err != nil {
		return "", err
	}
	f.ID = id
	return id, nil
}

// ListFlashcards filters by tag when tag is non-empty.
func (s *Store) ListFlashcards(ctx context.Context, tag string, limit int64) ([]*regulation.Flashcard, error) {
	filter := map[string]any{}
	if tag != "" {
		filter["tag"] = tag
	}
	docs, err := s.gw.Query(ctx, regulation.FlashcardCollection, filter, limit)
	if err != nil {
		return nil, err
	}
	out := make([]*regulation.Flashcard, 0, len(docs))
	for _, m := range docs {
		out = append(out, regulation.FlashcardFromDoc(m))
	}
	return out, nil
}

func (s *Store) CreateInspiration(ctx context.Context, i *regulation.Inspiration) (string, error) {
	id, err := s.gw.Create(ctx, regulation.InspirationCollection, i)
	if err != nil {
		return "", err
	}
	i.ID = id
	return id, nil
}

func (s *Store) ListInspirations(ctx context.Context, limit int64) ([]*regulation.Inspiration, error) {
	docs, err := s.gw.Query(ctx, regulation.InspirationCollection, nil, limit)
	if err != nil {
		return nil, err
	}
	out := make([]*regulation.Inspiration, 0, len(docs))
	for _, m := range docs {
		out = append(out, regulation.InspirationFromDoc(m))
	}
	return out, nil
}
