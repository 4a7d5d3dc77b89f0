package main

import (
	"context"
	"flag"
	"log"
	"time"

	"wallpapers/internal/config"
	"wallpapers/internal/database"
	"wallpapers/internal/modules/wallpaper"
	"wallpapers/internal/repository"
)

func main() {
	batch := flag.Int("batch", 500, "rows per batch")
	timeout := flag.Duration("timeout", 10*time.Minute, "abort after this long")
	flag.Parse()

	config.LoadDotEnv()
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatal(err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	start := time.Now()
	n, err := wallpaper.Rerank(ctx, repository.NewWallpaperRepository(db), nil, start, *batch)
	if err != nil {
		log.Fatalf("rerank failed after %d wallpapers: %v", n, err)
	}
	log.Printf("rerank done: updated=%d took=%s", n, time.Since(start))
}
