package model

import (
	"errors"
	"testing"
)

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
		hint    int
	}{
		{name: "defaults", cfg: Config{Low: 1, High: 100, Attempts: 7, HintAfter: 3}, hint: 3},
		{name: "equal bounds", cfg: Config{Low: 5, High: 5, Attempts: 7}, wantErr: true},
		{name: "inverted bounds", cfg: Config{Low: 10, High: 1, Attempts: 7}, wantErr: true},
		{name: "zero attempts", cfg: Config{Low: 1, High: 10, Attempts: 0}, wantErr: true},
		{name: "negative hint disables", cfg: Config{Low: 1, High: 10, Attempts: 3, HintAfter: -4}, hint: 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := tt.cfg
			err := cfg.Validate()
			if tt.wantErr {
				var cfgErr *ConfigError
				if !errors.As(err, &cfgErr) {
					t.Fatalf("expected ConfigError, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if cfg.HintAfter != tt.hint {
				t.Fatalf("expected hint-after %d, got %d", tt.hint, cfg.HintAfter)
			}
		})
	}
}

func TestStatisticsRecord(t *testing.T) {
	var s Statistics
	s.Record(RoundResult{Won: false, AttemptsUsed: 7})
	if s.Games != 1 || s.Wins != 0 || s.BestAttempts != nil {
		t.Fatalf("loss must not touch wins or best: %+v", s)
	}
	s.Record(RoundResult{Won: true, AttemptsUsed: 5})
	s.Record(RoundResult{Won: true, AttemptsUsed: 6})
	if s.BestAttempts == nil || *s.BestAttempts != 5 {
		t.Fatalf("expected best 5, got %s", s.BestLabel())
	}
	s.Record(RoundResult{Won: false, AttemptsUsed: 1})
	s.Record(RoundResult{Won: true, AttemptsUsed: 2})
	if s.Games != 5 || s.Wins != 3 {
		t.Fatalf("unexpected counters: %+v", s)
	}
	if *s.BestAttempts != 2 {
		t.Fatalf("expected best 2, got %d", *s.BestAttempts)
	}
}

func TestStatisticsSummary(t *testing.T) {
	s := Statistics{Games: 2, Wins: 0}
	if got := s.Summary(); got != "Stats: games=2, wins=0, best=-" {
		t.Fatalf("unexpected summary: %q", got)
	}
	best := 4
	s = Statistics{Games: 3, Wins: 1, BestAttempts: &best}
	if got := s.Summary(); got != "Stats: games=3, wins=1, best=4" {
		t.Fatalf("unexpected summary: %q", got)
	}
}

func TestStatisticsValid(t *testing.T) {
	zero := 0
	one := 1
	cases := []struct {
		stats Statistics
		want  bool
	}{
		{Statistics{}, true},
		{Statistics{Games: 3, Wins: 2, BestAttempts: &one}, true},
		{Statistics{Games: 1, Wins: 2}, false},
		{Statistics{Games: -1}, false},
		{Statistics{Games: 2, Wins: 1, BestAttempts: &zero}, false},
		{Statistics{Games: 2, Wins: 0, BestAttempts: &one}, false},
	}
	for i, c := range cases {
		if got := c.stats.Valid(); got != c.want {
			t.Fatalf("case %d: expected %v, got %v", i, c.want, got)
		}
	}
}
