package main

import (
	"context"
	"database/sql"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	goredis "github.com/redis/go-redis/v9"

	"staffhub.org/internal/auth"
	"staffhub.org/internal/config"
	"staffhub.org/internal/eraser"
	"staffhub.org/internal/holidays"
	"staffhub.org/internal/httpapi"
	"staffhub.org/internal/obs"
	"staffhub.org/internal/staff"
	"staffhub.org/internal/storage"
)

var (
	version = "0.3.0"
	commit  = "dev"
)

func main() {
	obs.Init()
	obs.InitBuildInfo(version, commit)

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	if cfg.Auth.Secret == "" {
		log.Fatal("missing auth secret: set STAFFHUB_AUTH_SECRET")
	}

	var db *sql.DB
	if cfg.Database.URL != "" {
		db, err = sql.Open("pgx", cfg.Database.URL)
		if err != nil {
			log.Fatalf("open db: %v", err)
		}
		db.SetMaxOpenConns(10)
		db.SetMaxIdleConns(10)
		db.SetConnMaxLifetime(30 * time.Minute)
	}
	if db == nil {
		log.Fatal("missing database URL: set STAFFHUB_DATABASE_URL")
	}

	tokens, err := auth.NewTokens(cfg.Auth.Secret, auth.WithIssuer(cfg.Auth.Issuer))
	if err != nil {
		log.Fatalf("tokens: %v", err)
	}
	accounts := auth.NewPGAccounts(db)
	authSvc, err := auth.NewService(tokens, accounts, auth.WithTokenTTL(cfg.Auth.TokenTTL))
	if err != nil {
		log.Fatalf("auth service: %v", err)
	}

	var cache staff.Cache = staff.NewMemoryCache()
	if cfg.Redis.Addr != "" {
		client := goredis.NewClient(&goredis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
		})
		cache = staff.NewRedisCache(client, 10*time.Minute)
		defer client.Close()
	}

	directory := staff.NewPGDirectory(db)
	resolver, err := staff.NewResolver(directory, cache)
	if err != nil {
		log.Fatalf("resolver: %v", err)
	}

	er, err := eraser.New(authSvc, directory, eraser.NewPGCleanup(db), authSvc)
	if err != nil {
		log.Fatalf("eraser: %v", err)
	}

	holidayStore, err := holidays.NewPGStore(db)
	if err != nil {
		log.Fatalf("holiday store: %v", err)
	}
	holidaySvc, err := holidays.NewService(holidayStore)
	if err != nil {
		log.Fatalf("holiday service: %v", err)
	}

	images, err := storage.NewImages(cfg.Storage.Dir, cfg.Storage.BaseURL)
	if err != nil {
		log.Fatalf("image storage: %v", err)
	}

	api := httpapi.New(httpapi.Options{
		Ready:      httpapi.ReadyProbe{DB: db},
		Version:    version,
		Resolver:   resolver,
		Eraser:     er,
		Auth:       authSvc,
		Holidays:   holidaySvc,
		Images:     images,
		RateBurst:  cfg.RateLimit.Burst,
		RatePerSec: cfg.RateLimit.PerSec,
	})

	srv := &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           api.Handler(),
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	log.Printf("Starting staffhub-api %s on %s", version, srv.Addr)

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	<-stop
	log.Println("Shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_ = srv.Shutdown(ctx)
	_ = db.Close()
	log.Println("Stopped")
}
