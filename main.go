package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/stemracing/regulations/backend/go-services/handlers"
	"github.com/stemracing/regulations/backend/go-services/internal/config"
	"github.com/stemracing/regulations/backend/go-services/internal/database"
	"github.com/stemracing/regulations/backend/go-services/internal/ingest"
	"github.com/stemracing/regulations/backend/go-services/internal/knowledge"
	"github.com/stemracing/regulations/backend/go-services/internal/regulation/handler"
	"github.com/stemracing/regulations/backend/go-services/internal/regulation/repository"
	"github.com/stemracing/regulations/backend/go-services/internal/regulation/service"
	"github.com/stemracing/regulations/backend/go-services/internal/storage"
	"github.com/stemracing/regulations/backend/go-services/pkg/logger"
	"github.com/stemracing/regulations/backend/go-services/pkg/metrics"
	"github.com/stemracing/regulations/backend/go-services/pkg/middleware"
)

func main() {
	// config first: LOG_LEVEL may come from .env
	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Fatalf("failed to load config: %v", err)
	}
	logger.Init(cfg.LogLevel)
	logger.Debugf("startup: LOG_LEVEL=%s", logger.LevelString())
	logger.Infof("config loaded: mongo=%v redis=%v minio=%v", cfg.DatabaseConfigured(), cfg.Redis.Host != "", cfg.MinIO.Enabled())

	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(middleware.RequestID(), middleware.AccessLog(), gin.Recovery(), middleware.CORS())

	ctx := context.Background()

	gw, closeDB := database.Open(ctx, cfg.Database.URL, cfg.Database.Name, cfg.Database.Timeout)
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := closeDB(shutdownCtx); err != nil {
			logger.Warnf("disconnecting MongoDB: %v", err)
		}
	}()

	// Optional object storage for original PDFs. Interface-typed so a
	// disabled archive stays a nil interface.
	var archive ingest.Archive
	var presigner service.Presigner
	if cfg.MinIO.Enabled() {
		st, err := storage.NewMinIOStorage(&cfg.MinIO)
		if err != nil {
			logger.Warnf("MinIO unavailable, PDFs will not be archived: %v", err)
		} else {
			archive, presigner = st, st
			logger.Infof("archiving PDFs to MinIO bucket %q", cfg.MinIO.Bucket)
		}
	}

	var lookup knowledge.Looker = knowledge.NewClient(cfg.Lookup.SearchURL, cfg.Lookup.SummaryURL, cfg.Lookup.Timeout, cfg.Lookup.UserAgent)
	if rc := connectRedis(ctx, cfg.Redis); rc != nil {
		defer rc.Close()
		lookup = knowledge.NewCachedClient(lookup, rc, "", cfg.Redis.CacheTTL)
	}

	fetcher := ingest.NewFetcher(cfg.Ingest.FetchTimeout, cfg.Ingest.MaxPDFBytes, cfg.Lookup.UserAgent)
	ingester := ingest.NewIngester(fetcher, ingest.PDFExtractor{}, archive)
	svc := service.New(repository.New(gw), ingester, lookup, presigner)

	handlers.RegisterHealth(r, handlers.StoreStatus{
		Gateway:        gw,
		URLConfigured:  cfg.Database.URL != "",
		NameConfigured: cfg.Database.Name != "",
	})
	handlers.RegisterSwagger(r)
	handler.RegisterRoutes(r, svc)

	metrics.RegisterCollectors(prometheus.DefaultRegisterer)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}
	go func() {
		logger.Infof("Starting regulations API on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Infof("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Errorf("graceful shutdown: %v", err)
	}
}

// connectRedis returns nil when Redis is not configured or does not answer a ping.
func connectRedis(ctx context.Context, rc config.RedisConfig) *redis.Client {
	if rc.Host == "" {
		return nil
	}
	client := redis.NewClient(&redis.Options{Addr: rc.Host + ":" + rc.Port, Password: rc.Password, DB: rc.DB})
	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		logger.Warnf("failed to connect to Redis (%s:%s), lookup cache disabled: %v", rc.Host, rc.Port, err)
		_ = client.Close()
		return nil
	}
	logger.Infof("Connected to Redis for lookup cache: %s:%s", rc.Host, rc.Port)
	return client
}
