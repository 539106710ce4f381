package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stemracing/regulations/backend/go-services/internal/database"
	"github.com/stemracing/regulations/backend/go-services/pkg/logger"
)

const maxListedCollections = 10

// StoreStatus reports the persistence gateway state on /test.
type StoreStatus struct {
	Gateway        *database.Gateway
	URLConfigured  bool
	NameConfigured bool
}

func configured(ok bool) string {
	if ok {
		return "configured"
	}
	return "not configured"
}

// RegisterHealth mounts the root banner, greeting, liveness and store status routes.
func RegisterHealth(r *gin.Engine, st StoreStatus) {
	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "STEM Racing Regulations API running"})
	})
	r.GET("/api/hello", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "Hello from the backend API!"})
	})
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/test", func(c *gin.Context) {
		out := gin.H{
			"backend":           "running",
			"database":          "not connected",
			"database_url":      configured(st.URLConfigured),
			"database_name":     configured(st.NameConfigured),
			"connection_status": "not connected",
			"collections":       []string{},
		}
		if st.Gateway == nil || !st.Gateway.Available() {
			c.JSON(http.StatusOK, out)
			return
		}
		out["database"] = "connected"
		out["connection_status"] = "success"

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()
		names, err := st.Gateway.CollectionNames(ctx, maxListedCollections)
		if err != nil {
			logger.Warnf("listing collections: %v", err)
			c.JSON(http.StatusOK, out)
			return
		}
		if names != nil {
			out["collections"] = names
		}
		c.JSON(http.StatusOK, out)
	})
}
