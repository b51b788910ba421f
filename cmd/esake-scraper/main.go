package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"strings"
	"sync"
	"syscall"

	"github.com/fortuna/esake/internal/boxscore"
	"github.com/fortuna/esake/internal/cache"
	"github.com/fortuna/esake/internal/config"
	"github.com/fortuna/esake/internal/ingest/esake"
	"github.com/fortuna/esake/internal/publisher"
)

const (
	appName    = "esake-scraper"
	appVersion = "1.0.0"
)

func main() {
	log.Printf("=== %s v%s ===", appName, appVersion)

	cfg := config.Load()

	var (
		baseURL = flag.String("base-url", cfg.BaseURL, "ESAKE site base URL")
		out     = flag.String("out", cfg.DataDir, "Directory box score files are written under")
		season  = flag.String("season", "regular", "Season part: regular or play_offs")
		series  = flag.Int("series", 0, "Series number on the results page")
		games   = flag.String("games", "", "Comma-separated game ids (skips listing the series)")
		workers = flag.Int("workers", cfg.Workers, "Games rendered in parallel")
		dryRun  = flag.Bool("dry-run", false, "Extract without writing files or publishing")
		debug   = flag.Bool("debug", cfg.Debug(), "Log extraction internals")
	)
	flag.Parse()

	if *series <= 0 && *games == "" {
		log.Fatalf("Specify --series or --games")
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	client := esake.NewClient(*baseURL)
	renderer := esake.NewRenderer(cfg.RenderWait)
	defer renderer.Close()

	runnerCfg := esake.RunnerConfig{
		Lister:    client,
		Renderer:  renderer,
		Extractor: boxscore.NewExtractor(boxscore.WithDebug(*debug)),
		OutputDir: *out,
		Workers:   *workers,
	}

	if cfg.RedisURL != "" {
		redisCache, err := cache.NewRedisCache(cfg.RedisURL)
		if err != nil {
			log.Printf("⚠️  Redis cache unavailable, rendering every game: %v", err)
		} else {
			defer redisCache.Close()
			runnerCfg.Cache = redisCache
			log.Println("✓ Connected to Redis cache")
		}

		redisPublisher, err := publisher.NewRedisPublisher(cfg.RedisURL)
		if err != nil {
			log.Printf("⚠️  Redis publisher unavailable, box scores will not be streamed: %v", err)
		} else {
			defer redisPublisher.Close()
			runnerCfg.Publisher = redisPublisher
			log.Println("✓ Redis publisher initialized")
		}
	}

	runner, err := esake.NewRunner(runnerCfg)
	if err != nil {
		log.Fatalf("create runner: %v", err)
	}

	spec := esake.JobSpec{
		Season: *season,
		Series: *series,
		DryRun: *dryRun,
	}
	if *games != "" {
		for _, id := range strings.Split(*games, ",") {
			if id = strings.TrimSpace(id); id != "" {
				spec.GameIDs = append(spec.GameIDs, id)
			}
		}
	}

	reporter := &consoleReporter{dryRun: *dryRun}
	if err := runner.Run(ctx, spec, reporter); err != nil {
		log.Fatalf("scrape failed: %v", err)
	}

	log.Println("✓ Scrape completed successfully")
}

type consoleReporter struct {
	dryRun bool

	mu    sync.Mutex
	done  int
	total int
}

func (c *consoleReporter) OnJobStart(spec esake.JobSpec, total int) {
	c.total = total
	log.Printf("Scraping %s series %d: %d games (dry_run=%v)", spec.Season, spec.Series, total, c.dryRun)
}

func (c *consoleReporter) OnGameProcessed(gameID string, box *boxscore.BoxScore, path string) {
	n := c.step()
	if path == "" {
		log.Printf("[%d/%d] ✓ %s: %s vs %s, %d rows", n, c.total, gameID, box.Teams[0], box.Teams[1], len(box.Rows))
		return
	}
	log.Printf("[%d/%d] ✓ %s → %s", n, c.total, gameID, path)
}

func (c *consoleReporter) OnGameSkipped(gameID string, err error) {
	n := c.step()
	log.Printf("[%d/%d] ⚠️  Skipped %s: %v", n, c.total, gameID, err)
}

func (c *consoleReporter) OnJobComplete(processed, skipped int) {
	log.Printf("Job complete: %d processed, %d skipped", processed, skipped)
}

func (c *consoleReporter) step() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.done++
	return c.done
}
