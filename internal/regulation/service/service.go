package service

import (
	"context"
	"errors"
	"strings"

	"github.com/stemracing/regulations/backend/go-services/internal/analysis"
	"github.com/stemracing/regulations/backend/go-services/internal/database"
	"github.com/stemracing/regulations/backend/go-services/internal/ingest"
	"github.com/stemracing/regulations/backend/go-services/internal/knowledge"
	"github.com/stemracing/regulations/backend/go-services/internal/regulation"
	"github.com/stemracing/regulations/backend/go-services/internal/regulation/repository"
	"github.com/stemracing/regulations/backend/go-services/pkg/logger"
	"github.com/stemracing/regulations/backend/go-services/pkg/metrics"
)

const (
	DefaultFlashcardCount = 5
	MinFlashcardCount     = 1
	MaxFlashcardCount     = 20
)

// Loader fetches a source document and returns its text.
type Loader interface {
	Load(ctx context.Context, url string) (*ingest.Source, error)
}

// Presigner hands out download links for archived PDFs.
type Presigner interface {
	PresignedURL(ctx context.Context, key string) (string, error)
}

// Service implements the regulation API operations. It holds no per-request
// state and is safe for concurrent use.
type Service struct {
	store     *repository.Store
	loader    Loader
	lookup    knowledge.Looker
	presigner Presigner
}

// New wires the service; presigner may be nil when no archive is configured.
func New(store *repository.Store, loader Loader, lookup knowledge.Looker, presigner Presigner) *Service {
	return &Service{store: store, loader: loader, lookup: lookup, presigner: presigner}
}

func (s *Service) StoreAvailable() bool { return s.store.Available() }

// AddRegulation downloads sourceURL once, extracts its text and stores it.
func (s *Service) AddRegulation(ctx context.Context, title, sourceURL string) (*regulation.Document, error) {
	title = strings.TrimSpace(title)
	sourceURL = strings.TrimSpace(sourceURL)
	if title == "" {
		return nil, badInput("title is required")
	}
	if sourceURL == "" {
		return nil, badInput("source_url is required")
	}
	if !s.store.Available() {
		metrics.RegulationsIngested.WithLabelValues("store_unavailable").Inc()
		return nil, database.ErrUnavailable
	}

	src, err := s.loader.Load(ctx, sourceURL)
	if err != nil {
		switch {
		case errors.Is(err, ingest.ErrNoText):
			metrics.RegulationsIngested.WithLabelValues("no_text").Inc()
		default:
			metrics.RegulationsIngested.WithLabelValues("fetch_error").Inc()
		}
		return nil, err
	}

	doc := &regulation.Document{Title: title, SourceURL: sourceURL, Text: src.Text, PDFKey: src.PDFKey}
	if _, err := s.store.CreateDocument(ctx, doc); err != nil {
		metrics.RegulationsIngested.WithLabelValues("store_error").Inc()
		return nil, err
	}
	metrics.RegulationsIngested.WithLabelValues("ok").Inc()
	logger.Infof("ingested regulation %s (%q, %d bytes of text)", doc.ID, doc.Title, len(doc.Text))
	return doc, nil
}

func (s *Service) ListRegulations(ctx context.Context, limit int64) ([]*regulation.Document, error) {
	return s.store.ListDocuments(ctx, limit)
}

func (s *Service) GetRegulation(ctx context.Context, id string) (*regulation.Document, error) {
	return s.store.GetDocument(ctx, id)
}

// RegulationPDFURL returns a temporary link to the archived original.
func (s *Service) RegulationPDFURL(ctx context.Context, id string) (string, error) {
	doc, err := s.store.GetDocument(ctx, id)
	if err != nil {
		return "", err
	}
	if s.presigner == nil || doc.PDFKey == "" {
		return "", ErrNotArchived
	}
	return s.presigner.PresignedURL(ctx, doc.PDFKey)
}

// Explain is a pure heuristic, exposed here so handlers only talk to Service.
func (s *Service) Explain(text string) analysis.Explanation {
	return analysis.Explain(text)
}

// GenerateRequest mirrors the flashcard generation payload. A nil Count
// means DefaultFlashcardCount.
type GenerateRequest struct {
	DocID *string
	Text  *string
	Count *int
	Tag   *string
}

// GenerateFlashcards builds cards from Text, or from the stored document
// DocID when Text is empty, and persists each card. DocID is stored as given.
func (s *Service) GenerateFlashcards(ctx context.Context, req GenerateRequest) ([]*regulation.Flashcard, error) {
	count := DefaultFlashcardCount
	if req.Count != nil {
		count = *req.Count
	}
	if count < MinFlashcardCount || count > MaxFlashcardCount {
		return nil, badInput("count must be between 1 and 20")
	}

	var base string
	if req.Text != nil {
		base = *req.Text
	}
	if base == "" && req.DocID != nil && *req.DocID != "" {
		doc, err := s.store.GetDocument(ctx, *req.DocID)
		if err != nil {
			return nil, err
		}
		base = doc.Text
	}
	if base == "" {
		return nil, badInput("Provide text or doc_id")
	}

	cards := analysis.GenerateFlashcards(base, count, req.Tag)
	out := make([]*regulation.Flashcard, 0, len(cards))
	for _, c := range cards {
		fc := &regulation.Flashcard{DocID: req.DocID, Question: c.Question, Answer: c.Answer, Tag: c.Tag}
		if _, err := s.store.CreateFlashcard(ctx, fc); err != nil {
			return nil, err
		}
		out = append(out, fc)
	}
	metrics.FlashcardsGenerated.Add(float64(len(out)))
	return out, nil
}

func (s *Service) ListFlashcards(ctx context.Context, tag string, limit int64) ([]*regulation.Flashcard, error) {
	return s.store.ListFlashcards(ctx, tag, limit)
}

// Inspire looks query up, derives aero highlights from the summary and
// stores the result. Lookup problems never fail the request; only the
// store can.
func (s *Service) Inspire(ctx context.Context, query string) (*regulation.Inspiration, error) {
	if !s.store.Available() {
		return nil, database.ErrUnavailable
	}
	res := s.lookup.Lookup(ctx, query)
	outcome := string(res.Outcome)
	if res.FromCache {
		outcome = "cached"
	}
	metrics.InspirationLookups.WithLabelValues(outcome).Inc()
	if res.Outcome == knowledge.OutcomeFailed {
		logger.Warnf("encyclopedia lookup failed for %q", query)
	}

	in := &regulation.Inspiration{
		Query:          query,
		Car:            res.Title,
		Summary:        res.Extract,
		AeroHighlights: analysis.AeroHighlights(res.Extract),
	}
	if _, err := s.store.CreateInspiration(ctx, in); err != nil {
		return nil, err
	}
	return in, nil
}

func (s *Service) ListInspirations(ctx context.Context, limit int64) ([]*regulation.Inspiration, error) {
	return s.store.ListInspirations(ctx, limit)
}
