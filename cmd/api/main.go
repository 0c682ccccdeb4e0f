package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/oauth2/google"

	"homelytics/internal/config"
	"homelytics/internal/design"
	"homelytics/internal/events"
	"homelytics/internal/media"
	"homelytics/internal/pricing"
	"homelytics/internal/server"
	"homelytics/internal/storage"
	"homelytics/internal/vision"
)

const cloudPlatformScope = "https://www.googleapis.com/auth/cloud-platform"

func main() {
	cfg, err := config.FromEnv()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	ctx := context.Background()
	source, err := storage.NewCatalogSource(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("failed to init catalog source: %v", err)
	}
	cat, err := storage.LoadCatalog(ctx, source)
	source.Close()
	if err != nil {
		log.Fatalf("failed to load catalog: %v", err)
	}
	log.Printf("catalog ready: %d items from %s", cat.Len(), source.Name())

	uploader, err := newUploader(ctx, cfg.Media)
	if err != nil {
		log.Fatalf("failed to init media uploader: %v", err)
	}

	renderer, err := newRenderer(ctx, cfg.Render)
	if err != nil {
		log.Fatalf("failed to init renderer: %v", err)
	}
	info := renderer.Info()
	log.Printf("renderer ready: %s (%s, %s)", info.Provider, info.Model, info.Mode)

	designHandler := design.Handler{
		Catalog:   cat,
		Estimator: pricing.NewEstimator(cat),
		Renderer:  renderer,
		Uploader:  uploader,
		Events:    events.NewBroker(),
		Settings:  renderSettings(cfg.Render),
	}

	srv := server.New(server.Options{
		Port:           cfg.Port,
		AllowedOrigins: cfg.AllowedOrigins,
		RenderTimeout:  cfg.Render.Timeout,
		RatePerSecond:  cfg.RateLimit.PerSecond,
		RateBurst:      cfg.RateLimit.Burst,
	}, designHandler)

	shutdownChan := make(chan os.Signal, 1)
	signal.Notify(shutdownChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-shutdownChan
		log.Println("shutting down server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Printf("server shutdown error: %v", err)
			_ = srv.Close()
		}
	}()

	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("server failed: %v", err)
	}
}

// renderSettings applies configured overrides on top of the tuned defaults.
func renderSettings(cfg config.RenderConfig) design.RenderSettings {
	settings := design.DefaultRenderSettings()
	if cfg.Strength > 0 {
		settings.Strength = cfg.Strength
	}
	if cfg.GuidanceScale > 0 {
		settings.GuidanceScale = cfg.GuidanceScale
	}
	if cfg.Steps > 0 {
		settings.Steps = cfg.Steps
	}
	if cfg.Size > 0 {
		settings.Size = cfg.Size
	}
	return settings
}

func newUploader(ctx context.Context, cfg config.MediaConfig) (media.Uploader, error) {
	if cfg.Bucket != "" && cfg.Region != "" {
		log.Printf("media uploader: s3 bucket %s", cfg.Bucket)
		return media.NewUploader(ctx, media.Config{
			Bucket:          cfg.Bucket,
			Region:          cfg.Region,
			Endpoint:        cfg.Endpoint,
			PublicURL:       cfg.PublicURL,
			KeyPrefix:       cfg.KeyPrefix,
			ForcePathStyle:  cfg.ForcePathStyle,
			AccessKeyID:     cfg.AccessKeyID,
			SecretAccessKey: cfg.SecretAccessKey,
		})
	}
	if cfg.LocalDir != "" {
		log.Printf("media uploader: local directory %s", cfg.LocalDir)
		return media.NewLocalUploader(cfg.LocalDir)
	}
	log.Println("media uploader: disabled, renders are returned inline only")
	return media.Disabled(), nil
}

func newRenderer(ctx context.Context, cfg config.RenderConfig) (vision.Renderer, error) {
	switch cfg.Provider {
	case "sdwebui":
		return vision.NewStableDiffusion(cfg.Endpoint, cfg.Model, cfg.Timeout), nil
	case "imagen":
		imagenCfg := vision.VertexImagenConfig{
			ProjectID:          cfg.ProjectID,
			Location:           cfg.Location,
			Model:              cfg.Model,
			APIKey:             cfg.APIKey,
			ServiceAccount:     cfg.ServiceAccount,
			ServiceAccountJSON: cfg.ServiceAccountJSON,
			Timeout:            cfg.Timeout,
		}
		if cfg.UseADC {
			ts, err := google.DefaultTokenSource(ctx, cloudPlatformScope)
			if err != nil {
				return nil, err
			}
			imagenCfg.TokenSource = ts
		}
		return vision.NewVertexImagen(imagenCfg), nil
	case "gemini":
		return vision.NewGeminiRenderer(cfg.APIKey, cfg.Model, cfg.Timeout), nil
	case "openai":
		return vision.NewOpenAIRenderer(cfg.APIKey, cfg.Endpoint, cfg.Model, cfg.Timeout), nil
	default:
		log.Println("renderer: demo mode, uploads are echoed back unchanged")
		return vision.Passthrough{}, nil
	}
}
