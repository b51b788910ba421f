package boxscore

import (
	"fmt"
	"log"
)

// Extractor turns the flattened text of one game page into a BoxScore.
// It holds no per-game state and is safe for concurrent use.
type Extractor struct {
	sentinels Sentinels
	counters  []FieldWidth
	logger    *log.Logger
	debug     bool
}

// Option configures an Extractor.
type Option func(*Extractor)

func WithSentinels(s Sentinels) Option {
	return func(e *Extractor) { e.sentinels = s }
}

func WithCounterFields(fields []FieldWidth) Option {
	return func(e *Extractor) { e.counters = fields }
}

func WithLogger(l *log.Logger) Option {
	return func(e *Extractor) { e.logger = l }
}

// WithDebug logs every classified token and the recovered rosters.
func WithDebug(debug bool) Option {
	return func(e *Extractor) { e.debug = debug }
}

// NewExtractor creates an extractor for esake.gr pages unless told otherwise.
func NewExtractor(opts ...Option) *Extractor {
	e := &Extractor{
		sentinels: DefaultSentinels(),
		counters:  DefaultCounterFields,
		logger:    log.Default(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Sentinels returns the markers the extractor was configured with.
func (e *Extractor) Sentinels() Sentinels {
	return e.sentinels
}

// Teams returns the first two names found before the shots marker.
func (e *Extractor) Teams(text string) ([2]string, error) {
	var teams [2]string
	matches := e.sentinels.teamPattern().FindAllStringSubmatch(text, 2)
	if len(matches) < 2 {
		return teams, fmt.Errorf("%w: found %d team names, need 2", ErrMalformedGame, len(matches))
	}
	for i, m := range matches {
		teams[i] = cleanTeamName(m[1])
		if teams[i] == "" {
			return teams, fmt.Errorf("%w: empty team name before %s marker", ErrMalformedGame, e.sentinels.Shots)
		}
	}
	return teams, nil
}

// Rosters returns the ordered player names of both teams.
func (e *Extractor) Rosters(text string) ([2][]string, error) {
	var rosters [2][]string

	tokens := e.sentinels.Classify(Tokenize(text))
	if e.debug {
		for _, tok := range tokens {
			e.logger.Printf("[extractor] token %-12s %q", tok.Kind, tok.Text)
		}
	}

	regions, err := Segment(tokens)
	if err != nil {
		return rosters, err
	}
	for i, region := range regions {
		names, err := e.sentinels.Roster(region)
		if err != nil {
			return rosters, fmt.Errorf("team %d: %w", i+1, err)
		}
		rosters[i] = names
	}
	if e.debug {
		e.logger.Printf("[extractor] rosters: %v | %v", rosters[0], rosters[1])
	}
	return rosters, nil
}

// Extract builds the box score of one game. Either every row decodes or the
// whole game fails; partial tables are never returned.
func (e *Extractor) Extract(text string, teams [2]string) (*BoxScore, error) {
	rosters, err := e.Rosters(text)
	if err != nil {
		return nil, err
	}

	spans, err := e.sentinels.StatSpans(text, rosters)
	if err != nil {
		return nil, err
	}

	box := &BoxScore{Teams: teams}
	for team := range rosters {
		box.RosterSizes[team] = len(rosters[team])
		for i, name := range rosters[team] {
			rec := PlayerStatRecord{Team: teams[team], PlayerName: name}
			if err := decodeSpan(&rec, spans[team][i], e.counters); err != nil {
				return nil, err
			}
			box.Rows = append(box.Rows, rec)
		}
	}
	return box, nil
}

// ExtractGame locates the team names and extracts the box score in one step.
func (e *Extractor) ExtractGame(text string) (*BoxScore, error) {
	teams, err := e.Teams(text)
	if err != nil {
		return nil, err
	}
	return e.Extract(text, teams)
}
