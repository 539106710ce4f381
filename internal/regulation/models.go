package regulation

import (
	"time"

	"github.com/stemracing/regulations/backend/go-services/internal/database"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Collection names in the document store.
const (
	DocumentCollection    = "regulationdoc"
	FlashcardCollection   = "flashcard"
	InspirationCollection = "inspiration"
)

// Document is an imported technical rulebook: its extracted text plus where
// it came from. Documents are never modified after creation.
type Document struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	SourceURL string    `json:"source_url"`
	Text      string    `json:"text"`
	PDFKey    string    `json:"pdf_key,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (d *Document) Fields() map[string]any {
	f := map[string]any{
		"title":      d.Title,
		"source_url": d.SourceURL,
		"text":       d.Text,
	}
	if d.PDFKey != "" {
		f["pdf_key"] = d.PDFKey
	}
	return f
}

func DocumentFromDoc(m database.Doc) *Document {
	return &Document{
		ID:        database.IDString(m["_id"]),
		Title:     str(m, "title"),
		SourceURL: str(m, "source_url"),
		Text:      str(m, "text"),
		PDFKey:    str(m, "pdf_key"),
		CreatedAt: timestamp(m, "created_at"),
		UpdatedAt: timestamp(m, "updated_at"),
	}
}

// Flashcard is a question/answer pair derived from regulation text. DocID is
// informational; it is not checked against stored documents.
type Flashcard struct {
	ID        string    `json:"id"`
	DocID     *string   `json:"doc_id"`
	Question  string    `json:"question"`
	Answer    string    `json:"answer"`
	Tag       *string   `json:"tag"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (f *Flashcard) Fields() map[string]any {
	return map[string]any{
		"doc_id":   optional(f.DocID),
		"question": f.Question,
		"answer":   f.Answer,
		"tag":      optional(f.Tag),
	}
}

func FlashcardFromDoc(m database.Doc) *Flashcard {
	return &Flashcard{
		ID:        database.IDString(m["_id"]),
		DocID:     optStr(m, "doc_id"),
		Question:  str(m, "question"),
		Answer:    str(m, "answer"),
		Tag:       optStr(m, "tag"),
		CreatedAt: timestamp(m, "created_at"),
		UpdatedAt: timestamp(m, "updated_at"),
	}
}

// Inspiration is a stored encyclopedia lookup about a race car together with
// the aerodynamic observations derived from it.
type Inspiration struct {
	ID             string    `json:"id"`
	Query          string    `json:"query"`
	Car            string    `json:"car"`
	Summary        string    `json:"summary"`
	AeroHighlights []string  `json:"aero_highlights"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

func (i *Inspiration) Fields() map[string]any {
	highlights := i.AeroHighlights
	if highlights == nil {
		highlights = []string{}
	}
	return map[string]any{
		"query":           i.Query,
		"car":             i.Car,
		"summary":         i.Summary,
		"aero_highlights": highlights,
	}
}

func InspirationFromDoc(m database.Doc) *Inspiration {
	return &Inspiration{
		ID:             database.IDString(m["_id"]),
		Query:          str(m, "query"),
		Car:            str(m, "car"),
		Summary:        str(m, "summary"),
		AeroHighlights: strList(m, "aero_highlights"),
		CreatedAt:      timestamp(m, "created_at"),
		UpdatedAt:      timestamp(m, "updated_at"),
	}
}

func optional(s *string) any {
	if s == nil {
		return nil
	}
	return *s
}

func str(m database.Doc, key string) string {
	s, _ := m[key].(string)
	return s
}

func optStr(m database.Doc, key string) *string {
	s, ok := m[key].(string)
	if !ok {
		return nil
	}
	return &s
}

func strList(m database.Doc, key string) []string {
	switch v := m[key].(type) {
	case []string:
		return append([]string(nil), v...)
	case primitive.A:
		return anyStrings(v)
	case []any:
		return anyStrings(v)
	}
	return []string{}
}

func anyStrings(in []any) []string {
	out := make([]string, 0, len(in))
	for _, x := range in {
		if s, ok := x.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

func timestamp(m database.Doc, key string) time.Time {
	switch v := m[key].(type) {
	case time.Time:
		return v.UTC()
	case primitive.DateTime:
		return v.Time().UTC()
	}
	return time.Time{}
}
