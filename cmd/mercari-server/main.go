package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"mercari/internal/config"
	"mercari/internal/server"
	"mercari/internal/storage"
	"mercari/internal/telemetry"
)

func main() {
	cfg := config.LoadServer()
	flag.StringVar(&cfg.Port, "port", cfg.Port, "Server port")
	flag.StringVar(&cfg.DBPath, "db", cfg.DBPath, "SQLite database path")
	flag.StringVar(&cfg.ImagesDir, "images", cfg.ImagesDir, "Directory for uploaded images")
	flag.StringVar(&cfg.FrontURL, "front-url", cfg.FrontURL, "Frontend origin allowed by CORS")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	tp, err := telemetry.Setup(ctx, "mercari-server")
	if err != nil {
		log.Fatalf("Failed to initialize telemetry: %v", err)
	}
	defer tp.Shutdown(context.Background())

	store, err := storage.New(cfg.DBPath)
	if err != nil {
		log.Fatalf("Failed to initialize storage: %v", err)
	}
	defer store.Close()

	images, err := server.NewImageDir(cfg.ImagesDir)
	if err != nil {
		log.Fatalf("Failed to initialize images: %v", err)
	}

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: server.New(store, images, cfg.FrontURL),
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		srv.Shutdown(shutdownCtx)
	}()

	log.Printf("items API listening on http://localhost:%s", cfg.Port)
	log.Printf("database: %s, images: %s", cfg.DBPath, cfg.ImagesDir)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatalf("Server failed: %v", err)
	}
}
