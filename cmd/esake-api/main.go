package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fortuna/esake/internal/api/rest"
	"github.com/fortuna/esake/internal/api/websocket"
	"github.com/fortuna/esake/internal/boxscore"
	"github.com/fortuna/esake/internal/cache"
	"github.com/fortuna/esake/internal/config"
	"github.com/fortuna/esake/internal/publisher"
	"github.com/fortuna/esake/internal/store"
)

const (
	serviceName    = "esake-api"
	serviceVersion = "1.0.0"
)

func main() {
	log.Printf("Starting %s v%s - ESAKE box score service", serviceName, serviceVersion)

	cfg := config.Load()

	db, err := store.NewDatabase(cfg.DBDriver, cfg.DatabaseDSN)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	log.Printf("✓ Connected to %s database", cfg.DBDriver)

	if err := db.RunMigrations(); err != nil {
		log.Fatalf("Failed to run database migrations: %v", err)
	}
	log.Println("✓ Database migrations applied")

	// The stream relay is optional; without Redis the websocket server
	// still accepts subscribers but never pushes.
	var source websocket.EventSource
	if cfg.RedisURL != "" {
		redisCache, err := connectRedis(cfg.RedisURL, 5, 2*time.Second)
		if err != nil {
			log.Printf("⚠️  Redis unavailable, box score stream disabled: %v", err)
		} else {
			defer redisCache.Close()
			source = publisher.NewStreamConsumer(redisCache.Client())
			log.Println("✓ Connected to Redis stream")
		}
	}

	extractor := boxscore.NewExtractor(boxscore.WithDebug(cfg.Debug()))

	restServer := rest.NewServer(cfg.RESTPort, db, extractor)
	go func() {
		log.Printf("Starting REST API server on port %s", cfg.RESTPort)
		if err := restServer.Start(); err != nil {
			log.Printf("REST server error: %v", err)
		}
	}()

	wsServer := websocket.NewServer(source)
	go func() {
		log.Printf("Starting WebSocket server on port %s", cfg.WSPort)
		if err := wsServer.Start(cfg.WSPort); err != nil {
			log.Printf("WebSocket server error: %v", err)
		}
	}()

	log.Printf("✓ %s v%s started successfully", serviceName, serviceVersion)
	log.Printf("  REST API: http://0.0.0.0:%s", cfg.RESTPort)
	log.Printf("  WebSocket: ws://0.0.0.0:%s/ws/boxscores", cfg.WSPort)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan

	log.Println("Shutting down gracefully...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := restServer.Shutdown(shutdownCtx); err != nil {
		log.Printf("REST API server shutdown error: %v", err)
	}
	if err := wsServer.Shutdown(shutdownCtx); err != nil {
		log.Printf("WebSocket server shutdown error: %v", err)
	}

	log.Printf("%s stopped", serviceName)
}

func connectRedis(url string, attempts int, delay time.Duration) (*cache.RedisCache, error) {
	var lastErr error
	for i := 0; i < attempts; i++ {
		rc, err := cache.NewRedisCache(url)
		if err == nil {
			return rc, nil
		}
		lastErr = err
		if i < attempts-1 {
			log.Printf("Redis connection attempt %d/%d failed: %v (retrying in %v)", i+1, attempts, err, delay)
			time.Sleep(delay)
		}
	}
	return nil, lastErr
}
