package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stemracing/regulations/backend/go-services/internal/database"
	"github.com/stemracing/regulations/backend/go-services/internal/ingest"
	"github.com/stemracing/regulations/backend/go-services/internal/knowledge"
	"github.com/stemracing/regulations/backend/go-services/internal/regulation/repository"
	"github.com/stemracing/regulations/backend/go-services/internal/regulation/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const rulebookText = "R1 The car must have four wheels in contact with the track. " +
	"R2 The overall length shall not exceed 210 mm at any time. " +
	"R3 Wings should be rigid and securely attached to the body. " +
	"R4 The canister chamber is drilled to a depth of 50 mm. " +
	"R5 A minimum mass of 50 grams is required without the canister. " +
	"R6 Teams are responsible for their own spare parts."

type textExtractor struct{ text string }

func (e textExtractor) Extract(data []byte) (string, error) { return e.text, nil }

type stubLooker struct{ res knowledge.Result }

func (s stubLooker) Lookup(ctx context.Context, query string) knowledge.Result {
	if s.res.Outcome == "" {
		return knowledge.Result{Title: query, Extract: knowledge.NoResultsExtract, Outcome: knowledge.OutcomeNoResults}
	}
	return s.res
}

type memArchive struct{ keys []string }

func (a *memArchive) UploadFile(ctx context.Context, key string, r io.Reader, size int64, contentType string) error {
	a.keys = append(a.keys, key)
	return nil
}

type stubPresigner struct{}

func (stubPresigner) PresignedURL(ctx context.Context, key string) (string, error) {
	return "https://files.example.org/" + key + "?sig=abc", nil
}

type testEnv struct {
	router *gin.Engine
	store  *repository.Store
	pdfURL string
}

func newEnv(t *testing.T, gw *database.Gateway, extracted string, looker knowledge.Looker) *testEnv {
	t.Helper()
	pdfSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/missing.pdf" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/pdf")
		_, _ = w.Write([]byte("%PDF-1.4 stub"))
	}))
	t.Cleanup(pdfSrv.Close)

	store := repository.New(gw)
	in := ingest.NewIngester(ingest.NewFetcher(2*time.Second, 1<<20, "test"), textExtractor{text: extracted}, nil)
	svc := service.New(store, in, looker, nil)

	g := gin.New()
	RegisterRoutes(g, svc)
	return &testEnv{router: g, store: store, pdfURL: pdfSrv.URL}
}

func (e *testEnv) do(t *testing.T, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func memoryGateway() *database.Gateway {
	return database.NewGateway(database.NewMemoryBackend())
}

func TestRegulationsHandler_IngestGetList(t *testing.T) {
	env := newEnv(t, memoryGateway(), rulebookText, stubLooker{})

	// create
	w := env.do(t, http.MethodPost, "/api/regulations", fmt.Sprintf(`{"title":"Nationals 2026","source_url":"%s/rules.pdf"}`, env.pdfURL))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var cr map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &cr))
	id := cr["id"]
	require.NotEmpty(t, id)
	assert.Equal(t, "Nationals 2026", cr["title"])

	// get
	w = env.do(t, http.MethodGet, "/api/regulations/"+id, "")
	require.Equal(t, http.StatusOK, w.Code)
	var got map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, id, got["id"])
	assert.Equal(t, "Nationals 2026", got["title"])
	assert.Equal(t, env.pdfURL+"/rules.pdf", got["source_url"])
	assert.Equal(t, rulebookText, got["text"])

	// list
	w = env.do(t, http.MethodGet, "/api/regulations", "")
	require.Equal(t, http.StatusOK, w.Code)
	var list []map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	require.Len(t, list, 1)
	assert.Equal(t, id, list[0]["id"])
	assert.Equal(t, rulebookText[:200]+"...", list[0]["snippet"])
	assert.NotContains(t, list[0], "text")
}

func TestRegulationsHandler_ListLimit(t *testing.T) {
	env := newEnv(t, memoryGateway(), "short text", stubLooker{})
	for i := 0; i < 3; i++ {
		w := env.do(t, http.MethodPost, "/api/regulations", fmt.Sprintf(`{"title":"R%d","source_url":"%s/r.pdf"}`, i, env.pdfURL))
		require.Equal(t, http.StatusOK, w.Code)
	}
	w := env.do(t, http.MethodGet, "/api/regulations?limit=2", "")
	require.Equal(t, http.StatusOK, w.Code)
	var list []map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	require.Len(t, list, 2)
	assert.Equal(t, "short text...", list[0]["snippet"])

	w = env.do(t, http.MethodGet, "/api/regulations?limit=abc", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRegulationsHandler_IngestErrors(t *testing.T) {
	env := newEnv(t, memoryGateway(), rulebookText, stubLooker{})

	w := env.do(t, http.MethodPost, "/api/regulations", fmt.Sprintf(`{"title":"x","source_url":"%s/missing.pdf"}`, env.pdfURL))
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Failed to fetch/parse PDF: 404")

	w = env.do(t, http.MethodPost, "/api/regulations", `{"source_url":"http://example.org/a.pdf"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = env.do(t, http.MethodPost, "/api/regulations", `{"title":"","source_url":"http://example.org/a.pdf"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = env.do(t, http.MethodPost, "/api/regulations", `not json`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	blank := newEnv(t, memoryGateway(), "   \n ", stubLooker{})
	w = blank.do(t, http.MethodPost, "/api/regulations", fmt.Sprintf(`{"title":"x","source_url":"%s/blank.pdf"}`, blank.pdfURL))
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Could not extract text from PDF")
}

func TestRegulationsHandler_NotFoundVsInvalidID(t *testing.T) {
	env := newEnv(t, memoryGateway(), rulebookText, stubLooker{})

	w := env.do(t, http.MethodGet, "/api/regulations/"+primitive.NewObjectID().Hex(), "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = env.do(t, http.MethodGet, "/api/regulations/not-an-object-id", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid id")

	w = env.do(t, http.MethodGet, "/api/regulations/"+primitive.NewObjectID().Hex()+"/pdf", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestRegulationsHandler_PDFNotArchived(t *testing.T) {
	env := newEnv(t, memoryGateway(), rulebookText, stubLooker{})
	w := env.do(t, http.MethodPost, "/api/regulations", fmt.Sprintf(`{"title":"x","source_url":"%s/r.pdf"}`, env.pdfURL))
	require.Equal(t, http.StatusOK, w.Code)
	var cr map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &cr))

	w = env.do(t, http.MethodGet, "/api/regulations/"+cr["id"]+"/pdf", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "not archived")
}

func TestExplainHandler(t *testing.T) {
	env := newEnv(t, memoryGateway(), "", stubLooker{})

	w := env.do(t, http.MethodPost, "/api/explain", `{"text":"The rear wing must not exceed 40 mm."}`)
	require.Equal(t, http.StatusOK, w.Code)
	var resp struct {
		Summary string   `json:"summary"`
		Bullets []string `json:"bullets"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "The rear wing must not exceed 40 mm.", resp.Summary)
	require.Len(t, resp.Bullets, 4)
	assert.Equal(t, "Identifies a compliance rule: contains the word 'must'.", resp.Bullets[0])

	w = env.do(t, http.MethodPost, "/api/explain", `{}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestFlashcardsHandler_GenerateAndList(t *testing.T) {
	env := newEnv(t, memoryGateway(), rulebookText, stubLooker{})

	w := env.do(t, http.MethodPost, "/api/flashcards/generate", fmt.Sprintf(`{"text":%q,"tag":"chassis"}`, rulebookText))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var cards []map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &cards))
	require.Len(t, cards, 5)
	assert.Equal(t, "R1 The car What must have four wheels in contact with the track.", cards[0]["question"])
	assert.Equal(t, "R1 The car must have four wheels in contact with the track.", cards[0]["answer"])
	assert.Equal(t, "chassis", cards[0]["tag"])
	assert.NotEmpty(t, cards[0]["id"])

	w = env.do(t, http.MethodPost, "/api/flashcards/generate", fmt.Sprintf(`{"text":%q,"count":1}`, rulebookText))
	require.Equal(t, http.StatusOK, w.Code)
	var untagged []map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &untagged))
	require.Len(t, untagged, 1)
	assert.Nil(t, untagged[0]["tag"])

	w = env.do(t, http.MethodGet, "/api/flashcards", "")
	require.Equal(t, http.StatusOK, w.Code)
	var all []map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &all))
	assert.Len(t, all, 6)

	w = env.do(t, http.MethodGet, "/api/flashcards?tag=chassis&limit=3", "")
	require.Equal(t, http.StatusOK, w.Code)
	var tagged []map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &tagged))
	assert.Len(t, tagged, 3)
	for _, c := range tagged {
		assert.Equal(t, "chassis", c["tag"])
	}
}

func TestFlashcardsHandler_FromDocID(t *testing.T) {
	env := newEnv(t, memoryGateway(), rulebookText, stubLooker{})
	w := env.do(t, http.MethodPost, "/api/regulations", fmt.Sprintf(`{"title":"x","source_url":"%s/r.pdf"}`, env.pdfURL))
	require.Equal(t, http.StatusOK, w.Code)
	var cr map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &cr))

	w = env.do(t, http.MethodPost, "/api/flashcards/generate", fmt.Sprintf(`{"doc_id":%q,"count":3}`, cr["id"]))
	require.Equal(t, http.StatusOK, w.Code)
	var cards []map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &cards))
	assert.Len(t, cards, 3)

	stored, err := env.store.ListFlashcards(context.Background(), "", 0)
	require.NoError(t, err)
	require.Len(t, stored, 3)
	assert.Equal(t, cr["id"], *stored[0].DocID)
}

func TestFlashcardsHandler_Errors(t *testing.T) {
	env := newEnv(t, memoryGateway(), rulebookText, stubLooker{})

	w := env.do(t, http.MethodPost, "/api/flashcards/generate", fmt.Sprintf(`{"text":%q,"count":21}`, rulebookText))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	stored, err := env.store.ListFlashcards(context.Background(), "", 0)
	require.NoError(t, err)
	assert.Empty(t, stored)

	w = env.do(t, http.MethodPost, "/api/flashcards/generate", `{"count":3}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Provide text or doc_id")

	w = env.do(t, http.MethodPost, "/api/flashcards/generate", fmt.Sprintf(`{"doc_id":%q}`, primitive.NewObjectID().Hex()))
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = env.do(t, http.MethodPost, "/api/flashcards/generate", `{"doc_id":"xyz"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = env.do(t, http.MethodPost, "/api/flashcards/generate", `{"text":"x","count":"five"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestInspirationHandler_NoResultsPersisted(t *testing.T) {
	env := newEnv(t, memoryGateway(), "", stubLooker{})

	w := env.do(t, http.MethodPost, "/api/inspiration", `{"query":"flux capacitor racer"}`)
	require.Equal(t, http.StatusOK, w.Code)
	var resp struct {
		ID             string   `json:"id"`
		Car            string   `json:"car"`
		Summary        string   `json:"summary"`
		AeroHighlights []string `json:"aero_highlights"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.ID)
	assert.Equal(t, "flux capacitor racer", resp.Car)
	assert.Equal(t, "No results found.", resp.Summary)
	assert.Len(t, resp.AeroHighlights, 1)

	w = env.do(t, http.MethodGet, "/api/inspiration", "")
	require.Equal(t, http.StatusOK, w.Code)
	var list []map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	require.Len(t, list, 1)
	assert.Equal(t, resp.ID, list[0]["id"])

	w = env.do(t, http.MethodPost, "/api/inspiration", `{}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestInspirationHandler_FailedLookupStillSucceeds(t *testing.T) {
	looker := stubLooker{res: knowledge.Result{Title: "q", Extract: knowledge.FailedExtract, Outcome: knowledge.OutcomeFailed}}
	env := newEnv(t, memoryGateway(), "", looker)
	w := env.do(t, http.MethodPost, "/api/inspiration", `{"query":"q"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Lookup failed.")
}

func TestHandlers_StoreUnavailable(t *testing.T) {
	env := newEnv(t, database.Unavailable(), rulebookText, stubLooker{})

	for _, tc := range []struct{ method, path, body string }{
		{http.MethodPost, "/api/regulations", `{"title":"x","source_url":"http://example.org/a.pdf"}`},
		{http.MethodGet, "/api/regulations", ""},
		{http.MethodGet, "/api/regulations/" + primitive.NewObjectID().Hex(), ""},
		{http.MethodPost, "/api/flashcards/generate", `{"text":"The car must be painted before the event."}`},
		{http.MethodGet, "/api/flashcards", ""},
		{http.MethodPost, "/api/inspiration", `{"query":"x"}`},
	} {
		w := env.do(t, tc.method, tc.path, tc.body)
		assert.Equal(t, http.StatusInternalServerError, w.Code, "%s %s", tc.method, tc.path)
		assert.Contains(t, w.Body.String(), "Database not available")
	}

	// explain needs no store
	w := env.do(t, http.MethodPost, "/api/explain", `{"text":"hello"}`)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRegulationsHandler_PDFRedirect(t *testing.T) {
	pdfSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("%PDF-1.4 stub"))
	}))
	defer pdfSrv.Close()

	archive := &memArchive{}
	in := ingest.NewIngester(ingest.NewFetcher(2*time.Second, 1<<20, "test"), textExtractor{text: rulebookText}, archive)
	svc := service.New(repository.New(memoryGateway()), in, stubLooker{}, stubPresigner{})
	g := gin.New()
	RegisterRoutes(g, svc)
	env := &testEnv{router: g}

	w := env.do(t, http.MethodPost, "/api/regulations", fmt.Sprintf(`{"title":"x","source_url":"%s/r.pdf"}`, pdfSrv.URL))
	require.Equal(t, http.StatusOK, w.Code)
	var cr map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &cr))
	require.Len(t, archive.keys, 1)

	w = env.do(t, http.MethodGet, "/api/regulations/"+cr["id"]+"/pdf", "")
	require.Equal(t, http.StatusTemporaryRedirect, w.Code)
	assert.Equal(t, "https://files.example.org/"+archive.keys[0]+"?sig=abc", w.Header().Get("Location"))
}
