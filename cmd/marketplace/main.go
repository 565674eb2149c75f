package main

import (
	"context"
	"database/sql"
	"os"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"MarketStore/internal/kvstore"
	"MarketStore/internal/marketplace"
	"MarketStore/pkg/kit"
)

func main() {
	service := "marketplace"
	log := kit.NewLogger(service)
	defer func() { _ = log.Sync() }()

	port := getenv("PORT", "8080")

	kv := openKV(log)
	svc := marketplace.New(marketplace.Options{
		Source: catalogSource(),
		KV:     kv,
		Log:    log,
	})

	// warm the catalog; a failed load is non-fatal, defaults serve
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if _, err := svc.LoadCatalog(ctx).Wait(ctx); err != nil {
			log.Warn("initial catalog load failed", zap.Error(err))
		}
	}()

	var sessions *marketplace.TokenMaker
	if secret := os.Getenv("SESSION_SECRET"); secret != "" {
		sessions = marketplace.NewTokenMaker(secret)
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector())

	s := &marketplace.Server{
		Service:  svc,
		KV:       kv,
		Sessions: sessions,
		Log:      log,
	}

	h := marketplace.NewHandler(s, marketplace.HTTPDeps{
		Log:            log,
		Service:        service,
		Registry:       registry,
		MetricsEnabled: os.Getenv("METRICS_ENABLED") == "1",
		MetricsToken:   os.Getenv("METRICS_TOKEN"),
		Limiter:        kit.NewIPRateLimiter(300, 60),
	})

	if err := kit.RunHTTPServer(":"+port, h, log); err != nil {
		log.Fatal("http server stopped", zap.Error(err))
	}
}

func catalogSource() marketplace.Source {
	if url := os.Getenv("CATALOG_URL"); url != "" {
		return marketplace.NewHTTPSource(url)
	}
	return marketplace.FileSource{Path: getenv("CATALOG_PATH", "catalog.json")}
}

func openKV(log *zap.Logger) kvstore.Store {
	switch getenv("KV_BACKEND", "file") {
	case "memory":
		return kvstore.NewMemStore()

	case "postgres":
		db, err := sql.Open("pgx", os.Getenv("DATABASE_URL"))
		if err != nil {
			log.Fatal("open postgres", zap.Error(err))
		}
		store := kvstore.NewPostgresStore(db)

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := store.Init(ctx); err != nil {
			log.Fatal("init kv table", zap.Error(err))
		}
		return store

	case "redis":
		client := redis.NewClient(&redis.Options{
			Addr:     getenv("REDIS_ADDR", "localhost:6379"),
			Password: os.Getenv("REDIS_PASSWORD"),
		})
		return kvstore.NewRedisStore(client)

	default:
		return kvstore.NewFileStore(getenv("KV_PATH", "marketplace_state.json"))
	}
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
