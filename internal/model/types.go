// Package model defines shared data structures.
package model

import (
	"fmt"
	"strconv"
	"time"
)

// Config defines game settings.
type Config struct {
	Low          int
	High         int
	Attempts     int
	HintAfter    int
	PersistStats bool
	StatsPath    string
	HistoryPath  string
	Seed         uint64
}

// ConfigError reports an invalid game configuration.
type ConfigError struct {
	Msg string
}

func (e *ConfigError) Error() string {
	return e.Msg
}

// Validate checks the range and attempt budget and normalizes HintAfter.
func (c *Config) Validate() error {
	if c.Low >= c.High {
		return &ConfigError{Msg: "--low must be less than --high"}
	}
	if c.Attempts <= 0 {
		return &ConfigError{Msg: "--attempts must be > 0"}
	}
	if c.HintAfter < 0 {
		c.HintAfter = 0
	}
	return nil
}

// HintsEnabled reports whether a hint is scheduled for each round.
func (c Config) HintsEnabled() bool {
	return c.HintAfter > 0
}

// RoundResult captures a completed round.
type RoundResult struct {
	Won          bool
	AttemptsUsed int
	Secret       int
	HintShown    bool
	StartedAt    time.Time
	EndedAt      time.Time
}

// Statistics aggregates results across sessions.
type Statistics struct {
	Games        int  `json:"games"`
	Wins         int  `json:"wins"`
	BestAttempts *int `json:"best_attempts"`
}

// Record applies a finished round. Only won rounds can improve BestAttempts.
func (s *Statistics) Record(r RoundResult) {
	s.Games++
	if !r.Won {
		return
	}
	s.Wins++
	if s.BestAttempts == nil || r.AttemptsUsed < *s.BestAttempts {
		best := r.AttemptsUsed
		s.BestAttempts = &best
	}
}

// Valid reports whether the counters satisfy the stored invariants.
func (s Statistics) Valid() bool {
	if s.Games < 0 || s.Wins < 0 || s.Wins > s.Games {
		return false
	}
	if s.BestAttempts != nil && (*s.BestAttempts < 1 || s.Wins == 0) {
		return false
	}
	return true
}

// BestLabel formats BestAttempts, using "-" when no round was won yet.
func (s Statistics) BestLabel() string {
	if s.BestAttempts == nil {
		return "-"
	}
	return strconv.Itoa(*s.BestAttempts)
}

// Summary renders the one-line stats summary shown after each round.
func (s Statistics) Summary() string {
	return fmt.Sprintf("Stats: games=%d, wins=%d, best=%s", s.Games, s.Wins, s.BestLabel())
}

// RoundRecord is a stored round in the history database.
type RoundRecord struct {
	ID           int64
	StartedAt    time.Time
	EndedAt      time.Time
	Low          int
	High         int
	Attempts     int
	HintAfter    int
	Secret       int
	Won          bool
	AttemptsUsed int
	HintShown    bool
}

// HistoryConfig defines filters for history output.
type HistoryConfig struct {
	Last int
}

// HistorySummary aggregates stored rounds. AvgAttempts and BestAttempts
// only consider won rounds and are zero when there are none.
type HistorySummary struct {
	Rounds       int
	Wins         int
	AvgAttempts  float64
	BestAttempts int
}
