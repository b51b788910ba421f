package esake

import (
	"context"

	"github.com/fortuna/esake/internal/boxscore"
)

// JobSpec describes the games a runner should scrape.
type JobSpec struct {
	Season  string   // regular or play_offs
	Series  int      // series number on the results page
	GameIDs []string // explicit games; when empty the series page is listed
	DryRun  bool     // extract without writing files or publishing
}

// Reporter receives lifecycle callbacks from the runner. Callbacks may arrive
// from several workers at once.
type Reporter interface {
	OnJobStart(spec JobSpec, total int)
	OnGameProcessed(gameID string, box *boxscore.BoxScore, path string)
	OnGameSkipped(gameID string, err error)
	OnJobComplete(processed, skipped int)
}

// GameLister lists the game ids of a series.
type GameLister interface {
	GameIDs(ctx context.Context, season string, series int) ([]string, error)
	GameURL(gameID string) (string, error)
}

// TextRenderer turns a game page URL into flattened page text.
type TextRenderer interface {
	RenderText(ctx context.Context, url string) (string, error)
}

// TextCache stores rendered game text so reruns skip the browser.
type TextCache interface {
	GetGameText(ctx context.Context, gameID string) (string, bool, error)
	SetGameText(ctx context.Context, gameID, text string) error
}

// BoxScorePublisher announces newly extracted box scores.
type BoxScorePublisher interface {
	PublishBoxScore(ctx context.Context, gameID string, box *boxscore.BoxScore) error
}
