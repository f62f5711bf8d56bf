package stats

import (
	"context"
	"fmt"
	"strconv"

	"github.com/verte-zerg/guessnum/internal/model"
	"github.com/verte-zerg/guessnum/internal/store"
)

const timeLayout = "2006-01-02 15:04"

// Report contains precomputed data for stats rendering.
type Report struct {
	Stats   model.Statistics
	Summary model.HistorySummary
	Rounds  []model.RoundRecord
	// HasHistory is false when no history database was available.
	HasHistory bool
}

// BuildReport combines persisted statistics with the round history. st may be nil.
func BuildReport(ctx context.Context, statistics model.Statistics, st *store.Store, cfg model.HistoryConfig) (Report, error) {
	report := Report{Stats: statistics}
	if st == nil {
		return report, nil
	}
	summary, err := st.Summary(ctx)
	if err != nil {
		return Report{}, fmt.Errorf("failed to summarize history: %w", err)
	}
	rounds, err := st.ListRounds(ctx, cfg)
	if err != nil {
		return Report{}, fmt.Errorf("failed to list rounds: %w", err)
	}
	report.Summary = summary
	report.Rounds = rounds
	report.HasHistory = true
	return report, nil
}

// OverviewLines renders the aggregate section.
func (r Report) OverviewLines() []string {
	lines := []string{
		r.Stats.Summary(),
		fmt.Sprintf("Win rate: %s", winRate(r.Stats.Wins, r.Stats.Games)),
	}
	if !r.HasHistory {
		return lines
	}
	avg, best := "-", "-"
	if r.Summary.Wins > 0 {
		avg = strconv.FormatFloat(r.Summary.AvgAttempts, 'f', 1, 64)
		best = strconv.Itoa(r.Summary.BestAttempts)
	}
	lines = append(lines,
		fmt.Sprintf("History: rounds=%d, wins=%d, best=%s, avg attempts per win=%s", r.Summary.Rounds, r.Summary.Wins, best, avg),
	)
	return lines
}

// HistoryLines renders the round table, or a notice when it is empty.
func (r Report) HistoryLines() []string {
	if !r.HasHistory {
		return []string{"History is unavailable."}
	}
	if len(r.Rounds) == 0 {
		return []string{"No rounds recorded yet."}
	}
	cols := []column{
		{title: "#", right: true},
		{title: "Played"},
		{title: "Range"},
		{title: "Result"},
		{title: "Attempts", right: true},
		{title: "Secret", right: true},
		{title: "Hint"},
	}
	rows := make([][]string, 0, len(r.Rounds))
	for _, rec := range r.Rounds {
		result := "lost"
		if rec.Won {
			result = "won"
		}
		hint := "no"
		if rec.HintShown {
			hint = "yes"
		}
		rows = append(rows, []string{
			strconv.FormatInt(rec.ID, 10),
			rec.EndedAt.Local().Format(timeLayout),
			fmt.Sprintf("[%d, %d]", rec.Low, rec.High),
			result,
			fmt.Sprintf("%d/%d", rec.AttemptsUsed, rec.Attempts),
			strconv.Itoa(rec.Secret),
			hint,
		})
	}
	return renderTable(cols, rows)
}

// Lines renders the full plain-text report.
func (r Report) Lines() []string {
	lines := append([]string{}, r.OverviewLines()...)
	lines = append(lines, "")
	lines = append(lines, r.HistoryLines()...)
	return lines
}

func winRate(wins, games int) string {
	if games == 0 {
		return "-"
	}
	return fmt.Sprintf("%.1f%%", float64(wins)*100/float64(games))
}
