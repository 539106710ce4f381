package ingest

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

const fixtureSentence = "The car must weigh at least 50 grams."

func readFixture(t *testing.T) []byte {
	t.Helper()
	data, err := os.ReadFile(filepath.Join("testdata", "rule.pdf"))
	require.NoError(t, err)
	return data
}

func TestPDFExtractor_ReadsTextLayer(t *testing.T) {
	text, err := PDFExtractor{}.Extract(readFixture(t))
	require.NoError(t, err)
	require.Contains(t, text, fixtureSentence)
}

func TestLoad_RealPDF(t *testing.T) {
	data := readFixture(t)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/pdf")
		_, _ = w.Write(data)
	}))
	defer srv.Close()

	archive := &fakeArchive{}
	in := NewIngester(NewFetcher(2*time.Second, 1<<20, "test"), nil, archive)
	src, err := in.Load(context.Background(), srv.URL+"/rule.pdf")
	require.NoError(t, err)
	require.Contains(t, src.Text, fixtureSentence)
	require.Equal(t, ArchiveKey(data), src.PDFKey)
	require.Len(t, archive.bodies, 1)
	require.Equal(t, data, archive.bodies[0])
}
