// Package session drives repeated rounds and keeps statistics up to date.
package session

import (
	"context"
	"errors"
	"strings"

	"github.com/rs/zerolog"

	"github.com/verte-zerg/guessnum/internal/console"
	"github.com/verte-zerg/guessnum/internal/model"
	"github.com/verte-zerg/guessnum/internal/stats"
)

const instructions = "Guess the number. Enter a whole number within the range; hints help narrow the search."

// Round plays a single round.
type Round interface {
	Play(ctx context.Context) (model.RoundResult, error)
}

// LineReader reads the replay answer.
type LineReader interface {
	ReadLine(ctx context.Context, prompt string) (string, error)
}

// StatsStore loads and saves aggregate statistics.
type StatsStore interface {
	Load() (model.Statistics, error)
	Save(model.Statistics) error
}

// History records every finished round.
type History interface {
	InsertRound(ctx context.Context, cfg model.Config, result model.RoundResult) (int64, error)
}

// Deps are the collaborators of a Session. Stats and History may be nil,
// which disables persistence and round history respectively.
type Deps struct {
	Round   Round
	In      LineReader
	Out     *console.Console
	Stats   StatsStore
	History History
	Logger  zerolog.Logger
}

// Session runs rounds until the player stops.
type Session struct {
	cfg  model.Config
	deps Deps
}

// New constructs a Session. cfg must already be validated.
func New(cfg model.Config, deps Deps) *Session {
	return &Session{cfg: cfg, deps: deps}
}

// Run plays rounds until the player declines another one and returns the
// final statistics. The only error it returns is *console.Abort.
func (s *Session) Run(ctx context.Context) (model.Statistics, error) {
	statistics := s.loadStats()
	s.deps.Out.Println(instructions)

	for {
		result, err := s.deps.Round.Play(ctx)
		if err != nil {
			return statistics, err
		}
		statistics.Record(result)
		s.saveStats(statistics)
		s.recordHistory(ctx, result)
		s.deps.Out.Println(statistics.Summary())

		answer, err := s.deps.In.ReadLine(ctx, "Play again? (y/n): ")
		if err != nil {
			return statistics, err
		}
		if strings.ToLower(strings.TrimSpace(answer)) != "y" {
			s.deps.Out.Println("Thanks for playing!")
			return statistics, nil
		}
	}
}

func (s *Session) loadStats() model.Statistics {
	if s.deps.Stats == nil {
		return model.Statistics{}
	}
	statistics, err := s.deps.Stats.Load()
	log := s.deps.Logger
	switch {
	case err == nil:
		log.Debug().Int("games", statistics.Games).Int("wins", statistics.Wins).Msg("statistics loaded")
	case errors.Is(err, stats.ErrCorrupt):
		log.Warn().Err(err).Msg("statistics file unreadable, starting from zero")
	default:
		log.Warn().Err(err).Msg("failed to load statistics, starting from zero")
	}
	return statistics
}

func (s *Session) saveStats(statistics model.Statistics) {
	if s.deps.Stats == nil {
		return
	}
	if err := s.deps.Stats.Save(statistics); err != nil {
		s.deps.Out.Errorf("Could not save statistics.")
		s.deps.Logger.Warn().Err(err).Msg("failed to save statistics")
	}
}

func (s *Session) recordHistory(ctx context.Context, result model.RoundResult) {
	if s.deps.History == nil {
		return
	}
	id, err := s.deps.History.InsertRound(ctx, s.cfg, result)
	if err != nil {
		s.deps.Logger.Warn().Err(err).Msg("failed to record round history")
		return
	}
	s.deps.Logger.Debug().Int64("round_id", id).Bool("won", result.Won).Msg("round recorded")
}
