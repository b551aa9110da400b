package main

import (
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/resume-analyzer/backend/internal/api"
	"github.com/resume-analyzer/backend/internal/classify"
	"github.com/resume-analyzer/backend/internal/config"
	"github.com/resume-analyzer/backend/internal/extract"
	"github.com/resume-analyzer/backend/internal/storage"
	"github.com/resume-analyzer/backend/internal/upload"
	"github.com/resume-analyzer/backend/internal/web"
)

// Version info (set during build)
var (
	Version   = "dev"
	BuildTime = "unknown"
)

func main() {
	_ = godotenv.Load()

	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config.yaml"
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	if err := cfg.EnsureDirectories(); err != nil {
		log.Fatalf("Failed to create directories: %v", err)
	}

	maxUpload, err := cfg.MaxUploadBytes()
	if err != nil {
		log.Fatalf("Invalid max upload size: %v", err)
	}

	// Model artifacts load once; a failure here is fatal. There is no
	// degraded-mode serving.
	classifier, err := classify.Load(cfg.Model.VectorizerPath, cfg.Model.ClassifierPath)
	if err != nil {
		log.Fatalf("Failed to load model artifacts: %v", err)
	}
	stats := classifier.Stats()

	store, err := storage.NewTempStore(cfg.Storage.UploadDir)
	if err != nil {
		log.Fatalf("Failed to initialize upload storage: %v", err)
	}

	handlers := api.NewHandlers(&api.Dependencies{
		Validator:  upload.NewValidator(maxUpload),
		Store:      store,
		Extractor:  extract.NewRegistry(),
		Classifier: classifier,
		Version:    Version,
		ModelStats: stats,
	})

	e := echo.New()
	e.HideBanner = true

	renderer, err := web.NewRenderer()
	if err != nil {
		log.Fatalf("Failed to parse templates: %v", err)
	}
	e.Renderer = renderer
	e.HTTPErrorHandler = api.NewErrorHandler(cfg.IsDevelopment())

	e.Use(middleware.LoggerWithConfig(middleware.LoggerConfig{
		Skipper: func(c echo.Context) bool {
			path := c.Request().URL.Path
			return path == "/health" || path == "/api/health"
		},
	}))

	e.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{
		StackSize: 1024 * 4,
	}))

	e.Use(middleware.BodyLimit(cfg.Storage.MaxUploadSize))
	e.Use(middleware.Gzip())

	if cfg.IsDevelopment() {
		e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
			AllowOrigins: []string{
				"http://localhost:5173", "http://127.0.0.1:5173",
				"http://localhost:3000", "http://127.0.0.1:3000",
			},
			AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
			AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept},
		}))
	}

	api.RegisterRoutes(e, handlers)

	s := &http.Server{
		Addr:         cfg.Addr(),
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	fmt.Printf("\n")
	fmt.Printf("╔═══════════════════════════════════════════════════════════╗\n")
	fmt.Printf("║           Resume Role Analyzer Server                     ║\n")
	fmt.Printf("╠═══════════════════════════════════════════════════════════╣\n")
	fmt.Printf("║  Version:     %-44s║\n", Version)
	fmt.Printf("║  Build Time:  %-44s║\n", BuildTime)
	fmt.Printf("║  Environment: %-44s║\n", cfg.Environment)
	fmt.Printf("╠═══════════════════════════════════════════════════════════╣\n")
	fmt.Printf("║  Listen:      http://%-37s║\n", cfg.Addr())
	fmt.Printf("║  Model:       %-44s║\n", fmt.Sprintf("%d roles, %d vocabulary terms", stats.Classes, stats.Terms))
	fmt.Printf("╚═══════════════════════════════════════════════════════════╝\n")
	fmt.Printf("\n")

	e.Logger.Fatal(e.StartServer(s))
}
