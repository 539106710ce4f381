package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/stemracing/regulations/backend/go-services/internal/analysis"
	"github.com/stemracing/regulations/backend/go-services/internal/database"
	"github.com/stemracing/regulations/backend/go-services/internal/ingest"
	"github.com/stemracing/regulations/backend/go-services/internal/regulation/service"
	"github.com/stemracing/regulations/backend/go-services/pkg/logger"
)

const (
	defaultRegulationLimit  = 20
	defaultFlashcardLimit   = 50
	defaultInspirationLimit = 20
	snippetLength           = 200
)

// RegisterRoutes mounts the regulation, flashcard and inspiration API.
func RegisterRoutes(r gin.IRouter, svc *service.Service) {
	h := &handler{svc: svc}
	api := r.Group("/api")
	api.POST("/regulations", h.addRegulation)
	api.GET("/regulations", h.listRegulations)
	api.GET("/regulations/:id", h.getRegulation)
	api.GET("/regulations/:id/pdf", h.regulationPDF)
	api.POST("/explain", h.explain)
	api.POST("/flashcards/generate", h.generateFlashcards)
	api.GET("/flashcards", h.listFlashcards)
	api.POST("/inspiration", h.inspiration)
	api.GET("/inspiration", h.listInspirations)
}

type handler struct {
	svc *service.Service
}

func (h *handler) addRegulation(c *gin.Context) {
	var req struct {
		Title     *string `json:"title"`
		SourceURL *string `json:"source_url"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Title == nil || req.SourceURL == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "title and source_url are required"})
		return
	}
	doc, err := h.svc.AddRegulation(c.Request.Context(), *req.Title, *req.SourceURL)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": doc.ID, "title": doc.Title})
}

func (h *handler) listRegulations(c *gin.Context) {
	limit, ok := queryLimit(c, defaultRegulationLimit)
	if !ok {
		return
	}
	docs, err := h.svc.ListRegulations(c.Request.Context(), limit)
	if err != nil {
		writeError(c, err)
		return
	}
	out := make([]gin.H, 0, len(docs))
	for _, d := range docs {
		snippet := ""
		if d.Text != "" {
			snippet = analysis.Truncate(d.Text, snippetLength) + "..."
		}
		out = append(out, gin.H{"id": d.ID, "title": d.Title, "source_url": d.SourceURL, "snippet": snippet})
	}
	c.JSON(http.StatusOK, out)
}

func (h *handler) getRegulation(c *gin.Context) {
	d, err := h.svc.GetRegulation(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": d.ID, "title": d.Title, "source_url": d.SourceURL, "text": d.Text})
}

func (h *handler) regulationPDF(c *gin.Context) {
	u, err := h.svc.RegulationPDFURL(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.Redirect(http.StatusTemporaryRedirect, u)
}

func (h *handler) explain(c *gin.Context) {
	var req struct {
		Text *string `json:"text"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Text == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "text is required"})
		return
	}
	c.JSON(http.StatusOK, h.svc.Explain(*req.Text))
}

func (h *handler) generateFlashcards(c *gin.Context) {
	var req struct {
		DocID *string `json:"doc_id"`
		Text  *string `json:"text"`
		Count *int    `json:"count"`
		Tag   *string `json:"tag"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	cards, err := h.svc.GenerateFlashcards(c.Request.Context(), service.GenerateRequest{
		DocID: req.DocID,
		Text:  req.Text,
		Count: req.Count,
		Tag:   req.Tag,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	out := make([]gin.H, 0, len(cards))
	for _, fc := range cards {
		out = append(out, gin.H{"question": fc.Question, "answer": fc.Answer, "tag": fc.Tag, "id": fc.ID})
	}
	c.JSON(http.StatusOK, out)
}

func (h *handler) listFlashcards(c *gin.Context) {
	limit, ok := queryLimit(c, defaultFlashcardLimit)
	if !ok {
		return
	}
	cards, err := h.svc.ListFlashcards(c.Request.Context(), c.Query("tag"), limit)
	if err != nil {
		writeError(c, err)
		return
	}
	out := make([]gin.H, 0, len(cards))
	for _, fc := range cards {
		out = append(out, gin.H{"id": fc.ID, "question": fc.Question, "answer": fc.Answer, "tag": fc.Tag})
	}
	c.JSON(http.StatusOK, out)
}

func (h *handler) inspiration(c *gin.Context) {
	var req struct {
		Query *string `json:"query"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Query == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "query is required"})
		return
	}
	in, err := h.svc.Inspire(c.Request.Context(), *req.Query)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": in.ID, "car": in.Car, "summary": in.Summary, "aero_highlights": in.AeroHighlights})
}

func (h *handler) listInspirations(c *gin.Context) {
	limit, ok := queryLimit(c, defaultInspirationLimit)
	if !ok {
		return
	}
	list, err := h.svc.ListInspirations(c.Request.Context(), limit)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

// queryLimit parses ?limit=; it writes the 400 itself on bad input.
func queryLimit(c *gin.Context, def int64) (int64, bool) {
	raw := c.Query("limit")
	if raw == "" {
		return def, true
	}
	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be an integer"})
		return 0, false
	}
	return n, true
}

func writeError(c *gin.Context, err error) {
	var fetchErr *ingest.FetchError
	var badInput *service.BadInputError
	switch {
	case errors.As(err, &badInput):
		c.JSON(http.StatusBadRequest, gin.H{"error": badInput.Msg})
	case errors.Is(err, database.ErrInvalidID):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid id"})
	case errors.Is(err, database.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Document not found"})
	case errors.Is(err, service.ErrNotArchived):
		c.JSON(http.StatusNotFound, gin.H{"error": "Original PDF not archived"})
	case errors.As(err, &fetchErr):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to fetch/parse PDF: " + fetchErr.Reason})
	case errors.Is(err, ingest.ErrNoText):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Could not extract text from PDF"})
	case errors.Is(err, database.ErrUnavailable):
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database not available. Check DATABASE_URL/DATABASE_NAME or the MongoDB connection."})
	default:
		logger.Errorf("%s %s: %v", c.Request.Method, c.FullPath(), err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
