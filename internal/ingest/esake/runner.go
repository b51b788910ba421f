package esake

import (
	"context"
	"fmt"
	"log"
	"path/filepath"
	"strconv"
	"sync"
	"sync/atomic"

	"github.com/fortuna/esake/internal/boxscore"
	"github.com/fortuna/esake/internal/tablefile"
)

// RunnerConfig wires a Runner. Cache and Publisher are optional.
type RunnerConfig struct {
	Lister    GameLister
	Renderer  TextRenderer
	Cache     TextCache
	Publisher BoxScorePublisher
	Extractor *boxscore.Extractor
	OutputDir string
	Workers   int
	Logger    *log.Logger
}

// Runner scrapes a series: list, render, extract, write, publish.
type Runner struct {
	cfg    RunnerConfig
	logger *log.Logger
}

// NewRunner validates cfg and fills defaults.
func NewRunner(cfg RunnerConfig) (*Runner, error) {
	if cfg.Lister == nil || cfg.Renderer == nil {
		return nil, fmt.Errorf("runner needs a game lister and a renderer")
	}
	if cfg.Extractor == nil {
		cfg.Extractor = boxscore.NewExtractor()
	}
	if cfg.Workers <= 0 {
		cfg.Workers = 1
	}
	logger := cfg.Logger
	if logger == nil {
		logger = log.New(log.Writer(), "[runner] ", log.LstdFlags)
	}
	return &Runner{cfg: cfg, logger: logger}, nil
}

// Run processes every game of the spec. A game that cannot be rendered or
// extracted is reported and skipped; only cancellation of ctx or a failure to
// list the series aborts the job.
func (r *Runner) Run(ctx context.Context, spec JobSpec, reporter Reporter) error {
	ids := spec.GameIDs
	if len(ids) == 0 {
		var err error
		ids, err = r.cfg.Lister.GameIDs(ctx, spec.Season, spec.Series)
		if err != nil {
			return fmt.Errorf("listing games: %w", err)
		}
	}
	if reporter != nil {
		reporter.OnJobStart(spec, len(ids))
	}

	outDir := filepath.Join(r.cfg.OutputDir, spec.Season, strconv.Itoa(spec.Series))

	var processed, skipped atomic.Int64
	jobs := make(chan string)
	var wg sync.WaitGroup

	for w := 0; w < r.cfg.Workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for gameID := range jobs {
				box, path, err := r.processGame(ctx, gameID, outDir, spec.DryRun)
				if err != nil {
					skipped.Add(1)
					r.logger.Printf("⚠️  Skipping game %s: %v", gameID, err)
					if reporter != nil {
						reporter.OnGameSkipped(gameID, err)
					}
					continue
				}
				processed.Add(1)
				if reporter != nil {
					reporter.OnGameProcessed(gameID, box, path)
				}
			}
		}()
	}

feed:
	for _, id := range ids {
		select {
		case jobs <- id:
		case <-ctx.Done():
			break feed
		}
	}
	close(jobs)
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return err
	}
	if reporter != nil {
		reporter.OnJobComplete(int(processed.Load()), int(skipped.Load()))
	}
	return nil
}

func (r *Runner) processGame(ctx context.Context, gameID, outDir string, dryRun bool) (*boxscore.BoxScore, string, error) {
	text, err := r.gameText(ctx, gameID)
	if err != nil {
		return nil, "", err
	}

	box, err := r.cfg.Extractor.ExtractGame(text)
	if err != nil {
		return nil, "", fmt.Errorf("extracting: %w", err)
	}
	for _, row := range box.Rows {
		if anomalies := row.ShotAnomalies(); len(anomalies) > 0 {
			r.logger.Printf("⚠️  Game %s: %s made more shots than attempted (%v)", gameID, row.PlayerName, anomalies)
		}
	}

	if dryRun {
		return box, "", nil
	}

	path, err := tablefile.WriteBoxScore(outDir, box)
	if err != nil {
		return nil, "", err
	}

	if r.cfg.Publisher != nil {
		if err := r.cfg.Publisher.PublishBoxScore(ctx, gameID, box); err != nil {
			r.logger.Printf("⚠️  Failed to publish game %s: %v", gameID, err)
		}
	}
	return box, path, nil
}

// gameText returns cached text when present and renders the page otherwise.
func (r *Runner) gameText(ctx context.Context, gameID string) (string, error) {
	if r.cfg.Cache != nil {
		text, ok, err := r.cfg.Cache.GetGameText(ctx, gameID)
		if err != nil {
			r.logger.Printf("⚠️  Cache read failed for %s: %v", gameID, err)
		} else if ok {
			return text, nil
		}
	}

	url, err := r.cfg.Lister.GameURL(gameID)
	if err != nil {
		return "", err
	}
	text, err := r.cfg.Renderer.RenderText(ctx, url)
	if err != nil {
		return "", fmt.Errorf("rendering: %w", err)
	}

	if r.cfg.Cache != nil {
		if err := r.cfg.Cache.SetGameText(ctx, gameID, text); err != nil {
			r.logger.Printf("⚠️  Cache write failed for %s: %v", gameID, err)
		}
	}
	return text, nil
}
