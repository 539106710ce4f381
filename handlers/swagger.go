package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RegisterSwagger registers minimal Swagger/OpenAPI endpoints for the regulations API.
// - GET /swagger/index.html  -> a small HTML page that loads the OpenAPI JSON
// - GET /swagger/doc.json    -> machine-readable OpenAPI JSON
func RegisterSwagger(rg *gin.Engine) {
	rg.GET("/swagger/index.html", func(c *gin.Context) {
		c.Header("Content-Type", "text/html; charset=utf-8")
		c.String(http.StatusOK, swaggerHTML)
	})

	rg.GET("/swagger/doc.json", func(c *gin.Context) {
		c.Data(http.StatusOK, "application/json; charset=utf-8", []byte(swaggerJSON))
	})
}

const swaggerHTML = `<!doctype html>
<html>
  <head>
    <meta charset="utf-8" />
    <title>STEM Racing Regulations API — Swagger</title>
    <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@4/swagger-ui.css" />
  </head>
  <body>
    <div id="swagger-ui"></div>
    <script src="https://unpkg.com/swagger-ui-dist@4/swagger-ui-bundle.js"></script>
    <script>
      window.ui = SwaggerUIBundle({
        url: '/swagger/doc.json',
        dom_id: '#swagger-ui',
      })
    </script>
  </body>
</html>`

const swaggerJSON = `{
  "openapi": "3.0.0",
  "info": { "title": "STEM Racing Regulations API", "version": "v0.1.0" },
  "paths": {
    "/api/regulations": {
      "post": {
        "summary": "Ingest a regulation PDF",
        "requestBody": { "content": { "application/json": { "schema": {"type":"object","required":["title","source_url"],"properties":{"title":{"type":"string"},"source_url":{"type":"string"}}}}}},
        "responses": { "200": { "description": "id and title" }, "400": { "description": "fetch, parse or extraction failed" }, "500": { "description": "database not available" } }
      },
      "get": {
        "summary": "List regulations with a text snippet",
        "parameters": [ { "name": "limit", "in": "query", "schema": {"type":"integer","default":20} } ],
        "responses": { "200": { "description": "regulation summaries" } }
      }
    },
    "/api/regulations/{id}": {
      "get": { "summary": "Get a regulation with full text", "parameters": [ { "name": "id", "in": "path", "required": true, "schema": {"type":"string"} } ], "responses": { "200": { "description": "regulation" }, "400": { "description": "invalid id" }, "404": { "description": "not found" } } }
    },
    "/api/regulations/{id}/pdf": {
      "get": { "summary": "Redirect to the archived PDF", "parameters": [ { "name": "id", "in": "path", "required": true, "schema": {"type":"string"} } ], "responses": { "307": { "description": "presigned download URL" }, "404": { "description": "not found or not archived" } } }
    },
    "/api/explain": {
      "post": { "summary": "Explain a regulation excerpt", "requestBody": { "content": { "application/json": { "schema": {"type":"object","required":["text"],"properties":{"text":{"type":"string"}}}}}}, "responses": { "200": { "description": "summary and bullets" } } }
    },
    "/api/flashcards/generate": {
      "post": { "summary": "Generate and store flashcards", "requestBody": { "content": { "application/json": { "schema": {"type":"object","properties":{"doc_id":{"type":"string"},"text":{"type":"string"},"count":{"type":"integer","minimum":1,"maximum":20,"default":5},"tag":{"type":"string"}}}}}}, "responses": { "200": { "description": "generated cards" }, "400": { "description": "bad count or no input" }, "404": { "description": "document not found" } } }
    },
    "/api/flashcards": {
      "get": { "summary": "List flashcards", "parameters": [ { "name": "tag", "in": "query", "schema": {"type":"string"} }, { "name": "limit", "in": "query", "schema": {"type":"integer","default":50} } ], "responses": { "200": { "description": "flashcards" } } }
    },
    "/api/inspiration": {
      "post": { "summary": "Look up a car and extract aero highlights", "requestBody": { "content": { "application/json": { "schema": {"type":"object","required":["query"],"properties":{"query":{"type":"string"}}}}}}, "responses": { "200": { "description": "stored inspiration" } } },
      "get": { "summary": "List stored inspirations", "parameters": [ { "name": "limit", "in": "query", "schema": {"type":"integer","default":20} } ], "responses": { "200": { "description": "inspirations" } } }
    },
    "/api/hello": { "get": { "summary": "Greeting", "responses": { "200": { "description": "message" } } } },
    "/test": { "get": { "summary": "Database connection status", "responses": { "200": { "description": "store status" } } } },
    "/health": { "get": { "summary": "Liveness check", "responses": { "200": { "description": "healthy" } } } },
    "/metrics": { "get": { "summary": "Prometheus metrics", "responses": { "200": { "description": "text exposition" } } } }
  }
}`
