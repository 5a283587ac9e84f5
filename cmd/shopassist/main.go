package main

import (
	"context"
	"io"
	"log"
	"os"

	gfshutdown "github.com/gelmium/graceful-shutdown"

	"shopassist/internal/ai"
	"shopassist/internal/cache"
	"shopassist/internal/config"
	"shopassist/internal/http/handlers"
	"shopassist/internal/repos"
	"shopassist/internal/services"
)

func main() {
	cfg := config.Load()

	// Optional file logging
	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			log.Printf("[warn] could not open log file %s: %v", cfg.LogFile, err)
		} else {
			log.SetOutput(io.MultiWriter(os.Stdout, f))
		}
	}

	db, err := repos.OpenDB(cfg.DBDSN)
	if err != nil {
		log.Fatal(err)
	}
	prodRepo := repos.NewProductRepo(db)
	recRepo := repos.NewRecommendationRepo(db)

	// Redis is optional; without it reads go straight to the store.
	var productCache *cache.Cache
	if cfg.RedisAddr != "" {
		productCache, err = cache.Dial(context.Background(), cfg.RedisAddr, cfg.CachePrefix, cfg.CacheTTL)
		if err != nil {
			log.Printf("[warn] redis unavailable at %s, caching disabled: %v", cfg.RedisAddr, err)
			productCache = nil
		}
	}

	var gen *ai.GeminiGenerator
	if cfg.GeminiAPIKey != "" {
		gen, err = ai.NewGeminiGenerator(context.Background(), cfg.GeminiAPIKey, cfg.GeminiModel)
		if err != nil {
			log.Printf("[warn] gemini client init failed, using keyword fallback: %v", err)
			gen = nil
		}
	}
	// A nil *GeminiGenerator must not become a non-nil interface.
	var generator ai.Generator
	if gen != nil {
		generator = gen
	}
	aiClient := ai.NewClient(generator, cfg.AITimeout, cfg.AIRatePerMin)

	catalog := services.NewCatalogService(prodRepo, productCache)
	// A previous process may have cached a catalog that was reseeded since.
	if err := catalog.Invalidate(context.Background()); err != nil {
		log.Printf("[warn] cache invalidate: %v", err)
	}
	history := services.NewHistoryRecorder(recRepo)
	recs := services.NewRecommendationService(catalog, aiClient, history)

	deps := handlers.NewDeps(cfg, catalog, recs, recRepo)
	app := handlers.NewApp(cfg, deps)

	go func() {
		log.Printf("[http] listening on :%s", cfg.Port)
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Fatal(err)
		}
	}()

	wait := gfshutdown.GracefulShutdown(
		context.Background(),
		cfg.ShutdownTimeout,
		map[string]gfshutdown.Operation{
			"shopassist": func(ctx context.Context) error {
				log.Println("[shutdown] draining http server")
				if err := app.ShutdownWithContext(ctx); err != nil {
					log.Printf("[shutdown] http: %v", err)
				}
				history.Wait()
				if gen != nil {
					_ = gen.Close()
				}
				if productCache != nil {
					_ = productCache.Close()
				}
				return db.Close()
			},
		},
	)

	exitCode := <-wait
	log.Printf("[shutdown] exited with code %d", exitCode)
	os.Exit(exitCode)
}
