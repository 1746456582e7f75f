package statistics

import (
	"math"
	"strings"
	"testing"
)

func TestStatistics_Empty(t *testing.T) {
	stats := &Statistics{}

	if stats.Mean() != 0 {
		t.Errorf("Expected mean of 0 for empty stats, got %f", stats.Mean())
	}
	if stats.Variance() != 0 {
		t.Errorf("Expected variance of 0 for empty stats, got %f", stats.Variance())
	}
	if stats.StdError() != 0 {
		t.Errorf("Expected stderr of 0 for empty stats, got %f", stats.StdError())
	}
	if stats.WinRate() != 0 {
		t.Errorf("Expected win rate of 0 for empty stats, got %f", stats.WinRate())
	}
	if stats.MeanWinMoves() != 0 {
		t.Errorf("Expected mean win moves of 0 for empty stats, got %f", stats.MeanWinMoves())
	}
	if stats.Median() != 0 {
		t.Errorf("Expected median of 0 for empty stats, got %f", stats.Median())
	}
	if stats.Percentile(0.5) != 0 {
		t.Errorf("Expected percentile of 0 for empty stats, got %f", stats.Percentile(0.5))
	}
	if lo, hi := stats.WinRateInterval95(); lo != 0 || hi != 0 {
		t.Errorf("Expected empty interval, got [%f, %f]", lo, hi)
	}
	if err := stats.Validate(); err == nil {
		t.Error("Expected validation error for empty stats")
	}
}

func TestStatistics_SingleWin(t *testing.T) {
	stats := &Statistics{}
	stats.Add(GameResult{
		Seed:            12345,
		Won:             true,
		AutoSolved:      true,
		Moves:           140,
		Commands:        96,
		FoundationCards: 52,
		Revealed:        21,
	})

	if stats.Games != 1 || stats.Wins != 1 || stats.AutoSolves != 1 {
		t.Errorf("Expected 1 game, 1 win, 1 auto-solve, got %d/%d/%d", stats.Games, stats.Wins, stats.AutoSolves)
	}
	if stats.WinRate() != 1 {
		t.Errorf("Expected win rate of 1, got %f", stats.WinRate())
	}
	if stats.MeanWinMoves() != 140 {
		t.Errorf("Expected mean win moves of 140, got %f", stats.MeanWinMoves())
	}
	if stats.MinWinMoves != 140 || stats.MaxWinMoves != 140 {
		t.Errorf("Expected min/max win moves of 140, got %d/%d", stats.MinWinMoves, stats.MaxWinMoves)
	}
	if stats.Variance() != 0 {
		t.Errorf("Expected variance of 0 for single value, got %f", stats.Variance())
	}
	if stats.FoundationHistogram[52] != 1 {
		t.Errorf("Expected one complete deal in histogram, got %d", stats.FoundationHistogram[52])
	}
	if err := stats.Validate(); err != nil {
		t.Errorf("Expected valid stats, got %v", err)
	}
}

func TestStatistics_MultipleValues(t *testing.T) {
	stats := &Statistics{}

	results := []GameResult{
		{Won: true, Moves: 120, FoundationCards: 52},
		{Resigned: true, Moves: 80, FoundationCards: 10},
		{Won: true, AutoSolved: true, Moves: 100, FoundationCards: 52},
		{Resigned: true, Moves: 60, FoundationCards: 4},
		{Resigned: true, Moves: 90, FoundationCards: 12},
	}
	for _, r := range results {
		stats.Add(r)
	}

	if stats.Games != 5 {
		t.Errorf("Expected 5 games, got %d", stats.Games)
	}
	if math.Abs(stats.WinRate()-0.4) > 1e-9 {
		t.Errorf("Expected win rate of 0.4, got %f", stats.WinRate())
	}
	if stats.MeanWinMoves() != 110 {
		t.Errorf("Expected mean win moves of 110, got %f", stats.MeanWinMoves())
	}
	if stats.MinWinMoves != 100 || stats.MaxWinMoves != 120 {
		t.Errorf("Expected min/max win moves 100/120, got %d/%d", stats.MinWinMoves, stats.MaxWinMoves)
	}
	if stats.Resigns != 3 {
		t.Errorf("Expected 3 resigns, got %d", stats.Resigns)
	}

	// (52 + 10 + 52 + 4 + 12) / 5 = 26
	if stats.Mean() != 26 {
		t.Errorf("Expected mean of 26, got %f", stats.Mean())
	}
	if stats.Median() != 12 {
		t.Errorf("Expected median of 12, got %f", stats.Median())
	}
	if stats.Percentile(0) != 4 || stats.Percentile(1) != 52 {
		t.Errorf("Expected P0=4 and P100=52, got %f and %f", stats.Percentile(0), stats.Percentile(1))
	}

	lo, hi := stats.WinRateInterval95()
	if lo < 0 || hi > 1 || lo > 0.4 || hi < 0.4 {
		t.Errorf("Expected interval around 0.4 within [0, 1], got [%f, %f]", lo, hi)
	}

	if err := stats.Validate(); err != nil {
		t.Errorf("Expected valid stats, got %v", err)
	}
}

func TestStatistics_Merge(t *testing.T) {
	a := &Statistics{}
	a.Add(GameResult{Won: true, Moves: 150, FoundationCards: 52})
	a.Add(GameResult{FoundationCards: 7})

	b := &Statistics{}
	b.Add(GameResult{Won: true, Moves: 90, FoundationCards: 52, AutoSolved: true})

	whole := &Statistics{}
	whole.Merge(a)
	whole.Merge(b)

	if whole.Games != 3 || whole.Wins != 2 || whole.AutoSolves != 1 {
		t.Errorf("Expected 3 games, 2 wins, 1 auto-solve, got %d/%d/%d", whole.Games, whole.Wins, whole.AutoSolves)
	}
	if whole.MinWinMoves != 90 || whole.MaxWinMoves != 150 {
		t.Errorf("Expected min/max 90/150, got %d/%d", whole.MinWinMoves, whole.MaxWinMoves)
	}
	if err := whole.Validate(); err != nil {
		t.Errorf("Expected merged stats to be valid, got %v", err)
	}
}

func TestStatistics_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(s *Statistics)
		wantErr string
	}{
		{"values mismatch", func(s *Statistics) { s.Values = s.Values[:1] }, "values array length"},
		{"too many wins", func(s *Statistics) { s.Wins = 10 }, "wins"},
		{"too many auto-solves", func(s *Statistics) { s.AutoSolves = 2 }, "auto-solves"},
		{"histogram mismatch", func(s *Statistics) { s.FoundationHistogram[3]++ }, "histogram total"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stats := &Statistics{}
			stats.Add(GameResult{Won: true, AutoSolved: true, FoundationCards: 52})
			stats.Add(GameResult{FoundationCards: 3})
			tt.mutate(stats)

			err := stats.Validate()
			if err == nil {
				t.Fatal("Expected validation error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Expected error containing %q, got %v", tt.wantErr, err)
			}
		})
	}
}
