// @title DocVerify API
// @version 1.0
// @description Trade document verification with content-addressed caching of extraction results and reports.
// @BasePath /api/v1
package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	_ "docverify/docs"
	"docverify/internal/cache"
	"docverify/internal/comparison"
	"docverify/internal/config"
	"docverify/internal/handler"
	"docverify/internal/parser"
	"docverify/internal/parser/claude"
	"docverify/internal/parser/gemini"
	"docverify/internal/port"
	"docverify/internal/repository/bolt"
	"docverify/internal/repository/memory"
	"docverify/internal/repository/postgres"
	"docverify/internal/router"
	"docverify/internal/service"
	s3storage "docverify/internal/storage/s3"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if cfg.Log.Level == "debug" {
		log.SetFlags(log.LstdFlags | log.Lmicroseconds | log.Lshortfile)
	}
	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Initialize cache store
	store, closeStore, err := openCacheStore(cfg)
	if err != nil {
		return err
	}
	defer closeStore()

	// Initialize extraction providers
	registerProviders()
	extractor, err := buildExtractor(&cfg.Parser)
	if err != nil {
		return err
	}

	// Initialize report archive
	var storage port.ObjectStorage
	if cfg.Reports.Enabled {
		storage, err = s3storage.NewS3Client(&cfg.Reports)
		if err != nil {
			return fmt.Errorf("failed to initialize S3 client: %w", err)
		}
		log.Printf("Report archive enabled (bucket=%s prefix=%s)", cfg.Reports.Bucket, cfg.Reports.Prefix)
	}

	// Initialize services
	docCache := cache.NewDocumentCache(store, cfg.Cache)
	workflowCache := cache.NewWorkflowCache(store, cfg.Cache)
	reportSvc := service.NewReportService(storage, cfg.Reports)
	verificationSvc := service.NewVerificationService(
		docCache, workflowCache, extractor, comparison.NewEngine(), reportSvc, cfg.Workflow,
	)

	// Initialize handlers
	verificationH := handler.NewVerificationHandler(verificationSvc, cfg.Server.MaxFileSizeMB)
	reportH := handler.NewReportHandler(reportSvc)
	healthH := handler.NewHealthHandler(store)

	// Setup router
	r := router.Setup(cfg.CORS.AllowedOrigins, verificationH, reportH, healthH)
	r.MaxMultipartMemory = 3 * cfg.Server.MaxFileSizeMB << 20

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.Cache.Enabled && cfg.Cache.SweepInterval > 0 {
		go cache.NewSweeper(store, cfg.Cache.SweepInterval).Start(ctx)
	}

	srv := &http.Server{
		Addr:         cfg.Server.Port,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("Server starting on %s (cache enabled=%t backend=%s ttl=%s)",
			cfg.Server.Port, cfg.Cache.Enabled, cfg.Cache.Backend, cfg.Cache.TTL)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Println("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}
	log.Println("Server stopped")
	return nil
}

// openCacheStore opens the configured cache backend and returns a function releasing it.
func openCacheStore(cfg *config.Config) (port.CacheStore, func(), error) {
	switch cfg.Cache.Backend {
	case config.CacheBackendMemory:
		log.Println("Cache store: in-memory")
		return memory.NewCacheStore(), func() {}, nil

	case config.CacheBackendBolt:
		store, err := bolt.Open(cfg.Cache.BoltPath)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open cache database: %w", err)
		}
		log.Printf("Cache store: bolt (%s)", cfg.Cache.BoltPath)
		return store, func() { _ = store.Close() }, nil

	case config.CacheBackendPostgres:
		db, err := postgres.NewDB(&cfg.DB)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to connect to database: %w", err)
		}
		log.Printf("Cache store: postgres (%s:%d/%s)", cfg.DB.Host, cfg.DB.Port, cfg.DB.Name)
		return postgres.NewCacheStoreRepo(db), func() { _ = db.Close() }, nil

	default:
		return nil, nil, fmt.Errorf("unknown cache backend: %s", cfg.Cache.Backend)
	}
}

func registerProviders() {
	parser.RegisterProvider("gemini", func(cfg *config.ParserProviderConfig) (port.DocumentExtractor, error) {
		return gemini.NewExtractor(cfg), nil
	})
	parser.RegisterProvider("claude", func(cfg *config.ParserProviderConfig) (port.DocumentExtractor, error) {
		return claude.NewExtractor(cfg), nil
	})
}

// buildExtractor wires the primary provider, and the secondary behind a
// fallback circuit breaker when one is configured.
func buildExtractor(cfg *config.ParserConfig) (port.DocumentExtractor, error) {
	primary, err := providerExtractor(&cfg.Primary)
	if err != nil {
		return nil, err
	}
	secondaryCfg := cfg.SecondaryConfig()
	if secondaryCfg == nil {
		log.Printf("Extraction provider: %s", cfg.Primary.Provider)
		return primary, nil
	}

	secondary, err := providerExtractor(secondaryCfg)
	if err != nil {
		return nil, err
	}
	log.Printf("Extraction providers: %s (fallback %s)", cfg.Primary.Provider, secondaryCfg.Provider)
	return parser.NewFallbackExtractor(
		[]port.DocumentExtractor{primary, secondary},
		[]string{cfg.Primary.Provider, secondaryCfg.Provider},
	), nil
}

func providerExtractor(cfg *config.ParserProviderConfig) (port.DocumentExtractor, error) {
	if cfg.APIKey == "" {
		log.Printf("WARNING: no API key configured for %s; extraction requests will fail", cfg.Provider)
	}
	extractor, err := parser.NewExtractor(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create %s extractor: %w", cfg.Provider, err)
	}
	return parser.NewRetryExtractor(extractor, cfg.Provider, cfg.MaxRetries), nil
}
