package main

import (
	"context"
	"flag"
	"log"
	"time"

	"github.com/fortuna/esake/internal/config"
	"github.com/fortuna/esake/internal/season"
	"github.com/fortuna/esake/internal/store"
	"github.com/fortuna/esake/internal/store/repository"
	"github.com/fortuna/esake/internal/tablefile"
)

const (
	appName    = "esake-aggregate"
	appVersion = "1.0.0"
)

func main() {
	log.Printf("=== %s v%s ===", appName, appVersion)

	cfg := config.Load()

	var (
		dataDir = flag.String("data", cfg.DataDir, "Root directory of per-game box score files")
		outDir  = flag.String("out", cfg.OutputDir, "Directory season tables are written to")
		label   = flag.String("season", "", "Season label; when set the tables are also stored in the database")
		legacy  = flag.Bool("legacy-points", cfg.LegacyAttemptedPoints, "Derive points-from-shots averages from attempted shots")
	)
	flag.Parse()

	start := time.Now()

	games, skipped, err := tablefile.LoadGames(*dataDir)
	if err != nil {
		log.Fatalf("load games: %v", err)
	}
	log.Printf("[aggregate] Loaded %d games from %s (%d skipped)", len(games), *dataDir, skipped)

	snap, err := season.Build(games, season.Options{LegacyAttemptedPoints: *legacy})
	if err != nil {
		log.Fatalf("build season: %v", err)
	}
	snap.GamesSkipped = skipped

	if err := tablefile.WriteSeason(*outDir, snap); err != nil {
		log.Fatalf("write season tables: %v", err)
	}
	log.Printf("[aggregate] ✓ Wrote %d game rows, %d players, %d teams to %s",
		len(snap.Games), len(snap.Players), len(snap.Teams), *outDir)

	if *label != "" {
		if err := storeSeason(cfg, *label, snap); err != nil {
			log.Fatalf("store season: %v", err)
		}
		log.Printf("[aggregate] ✓ Stored season %s in %s database", *label, cfg.DBDriver)
	}

	log.Printf("✓ Aggregation completed in %v", time.Since(start).Round(time.Millisecond))
}

func storeSeason(cfg config.Config, label string, snap *season.Snapshot) error {
	db, err := store.NewDatabase(cfg.DBDriver, cfg.DatabaseDSN)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := db.RunMigrations(); err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()
	return repository.NewSeasonRepository(db).ReplaceSeason(ctx, label, snap)
}
