// Package ingest downloads regulation PDFs and extracts their text.
package ingest

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"io"
	"strings"

	"github.com/stemracing/regulations/backend/go-services/pkg/logger"
)

const pdfContentType = "application/pdf"

// Archive keeps a copy of the original PDF. It is optional.
type Archive interface {
	UploadFile(ctx context.Context, key string, reader io.Reader, size int64, contentType string) error
}

// Source is the outcome of loading one document.
type Source struct {
	Text   string
	PDFKey string
}

type Ingester struct {
	fetcher   *Fetcher
	extractor Extractor
	archive   Archive
}

// NewIngester wires a fetcher and extractor; archive may be nil.
func NewIngester(f *Fetcher, e Extractor, archive Archive) *Ingester {
	if e == nil {
		e = PDFExtractor{}
	}
	return &Ingester{fetcher: f, extractor: e, archive: archive}
}

// Load fetches url once, extracts its text and archives the bytes when an
// archive is configured. Archive failures are logged, not returned.
func (i *Ingester) Load(ctx context.Context, url string) (*Source, error) {
	data, err := i.fetcher.Fetch(ctx, url)
	if err != nil {
		return nil, newFetchError(err)
	}
	text, err := i.extractor.Extract(data)
	if err != nil {
		return nil, newFetchError(err)
	}
	if strings.TrimSpace(text) == "" {
		return nil, ErrNoText
	}

	src := &Source{Text: text}
	if i.archive != nil {
		key := ArchiveKey(data)
		if err := i.archive.UploadFile(context.WithoutCancel(ctx), key, bytes.NewReader(data), int64(len(data)), pdfContentType); err != nil {
			logger.Warnf("archive upload for %s failed: %v", url, err)
		} else {
			src.PDFKey = key
		}
	}
	return src, nil
}

// ArchiveKey is content addressed so re-ingesting the same PDF reuses the object.
func ArchiveKey(data []byte) string {
	sum := sha256.Sum256(data)
	return "regulations/" + hex.EncodeToString(sum[:]) + ".pdf"
}
