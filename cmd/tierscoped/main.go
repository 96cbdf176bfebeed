// Command tierscoped is the hosted Tierscope service.
// It serves the run ingest API, comparison endpoints, and a health check.
package main

import (
	"context"
	"database/sql"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	_ "github.com/lib/pq"

	"github.com/tierscope/tierscope/internal/api"
	"github.com/tierscope/tierscope/internal/ingestion"
	"github.com/tierscope/tierscope/internal/platform"
	"github.com/tierscope/tierscope/internal/tenant"
	"github.com/tierscope/tierscope/pkg/config"
)

type daemonConfig struct {
	Port           string
	DatabaseURL    string
	APIKey         string
	StorageBackend string // local, s3, or gcs
	LocalPath      string
	S3Bucket       string
	S3Region       string
	S3Endpoint     string
	S3AccessKey    string
	S3SecretKey    string
	GCSBucket      string
	ConfigPath     string
}

func loadDaemonConfig() daemonConfig {
	return daemonConfig{
		Port:           envOrDefault("PORT", "8080"),
		DatabaseURL:    envOrDefault("DATABASE_URL", "postgres://localhost:5432/tierscope?sslmode=disable"),
		APIKey:         os.Getenv("API_KEY"),
		StorageBackend: envOrDefault("STORAGE_BACKEND", "local"),
		LocalPath:      envOrDefault("LOCAL_STORAGE_PATH", "/tmp/tierscope-data"),
		S3Bucket:       os.Getenv("S3_BUCKET"),
		S3Region:       os.Getenv("S3_REGION"),
		S3Endpoint:     os.Getenv("S3_ENDPOINT"),
		S3AccessKey:    os.Getenv("S3_ACCESS_KEY"),
		S3SecretKey:    os.Getenv("S3_SECRET_KEY"),
		GCSBucket:      os.Getenv("GCS_BUCKET"),
		ConfigPath:     os.Getenv("TIERSCOPE_CONFIG"),
	}
}

func newStorage(ctx context.Context, cfg daemonConfig) (ingestion.StorageClient, error) {
	switch cfg.StorageBackend {
	case "s3":
		return ingestion.NewS3Storage(ctx, ingestion.S3Config{
			Bucket:    cfg.S3Bucket,
			Region:    cfg.S3Region,
			Endpoint:  cfg.S3Endpoint,
			AccessKey: cfg.S3AccessKey,
			SecretKey: cfg.S3SecretKey,
		})
	case "gcs":
		return ingestion.NewGCSStorage(ctx, cfg.GCSBucket)
	default:
		return ingestion.NewLocalStorage(cfg.LocalPath), nil
	}
}

func main() {
	cfg := loadDaemonConfig()

	db, err := sql.Open("postgres", cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("open database: %v", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		log.Fatalf("ping database: %v", err)
	}

	if err := platform.AutoMigrate(db); err != nil {
		log.Fatalf("migrate database: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	storage, err := newStorage(ctx, cfg)
	if err != nil {
		log.Fatalf("init storage backend %q: %v", cfg.StorageBackend, err)
	}

	appCfg, err := config.Load(cfg.ConfigPath)
	if err != nil {
		log.Fatalf("load threshold configuration: %v", err)
	}
	tables, err := appCfg.Tables()
	if err != nil {
		log.Fatalf("invalid threshold configuration: %v", err)
	}

	tenantSvc := tenant.NewService(db)
	ingestionSvc := ingestion.NewService(db, storage, tables)

	handler := api.NewHandler(db, tenantSvc, ingestionSvc, nil)
	mux := http.NewServeMux()
	handler.RegisterRoutes(mux)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: api.CORS(api.APIKeyAuth(cfg.APIKey)(mux)),
	}

	go func() {
		log.Printf("starting tierscoped on :%s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %v", err)
		}
	}()

	<-ctx.Done()
	log.Println("shutting down...")
	if err := srv.Shutdown(context.Background()); err != nil {
		log.Printf("shutdown error: %v", err)
	}
}

func envOrDefault(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}
