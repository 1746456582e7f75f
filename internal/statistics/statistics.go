package statistics

import (
	"fmt"
	"math"
	"sort"
)

// GameResult represents the outcome of a single deal
type GameResult struct {
	Seed            int64 // RNG seed for this deal (for replay)
	Won             bool  // Did the deal end with all foundations complete?
	AutoSolved      bool  // Was the finish handed to auto-solve?
	Resigned        bool  // Did the player give up?
	Moves           int   // Board move counter at the end of the deal
	Commands        int   // Commands issued by the player before it stopped
	FoundationCards int   // Cards on the foundations at the end (0-52)
	Revealed        int   // Face-down tableau cards turned over
}

// Statistics tracks aggregate results over many deals
type Statistics struct {
	Games      int
	Wins       int
	AutoSolves int
	Resigns    int

	SumFoundation  float64
	SumFoundation2 float64   // Sum of squares for variance calculation
	Values         []float64 // Foundation cards per deal, for median/percentiles

	// Won deals only
	SumWinMoves int
	MinWinMoves int
	MaxWinMoves int

	TotalCommands int
	TotalRevealed int

	// FoundationHistogram counts deals by final foundation size
	FoundationHistogram [53]int
}

// Add incorporates a new deal into the statistics
func (s *Statistics) Add(result GameResult) {
	fc := float64(result.FoundationCards)
	s.Games++
	s.SumFoundation += fc
	s.SumFoundation2 += fc * fc
	s.Values = append(s.Values, fc)

	if result.Won {
		if s.Wins == 0 || result.Moves < s.MinWinMoves {
			s.MinWinMoves = result.Moves
		}
		if result.Moves > s.MaxWinMoves {
			s.MaxWinMoves = result.Moves
		}
		s.Wins++
		s.SumWinMoves += result.Moves
	}
	if result.AutoSolved {
		s.AutoSolves++
	}
	if result.Resigned {
		s.Resigns++
	}

	s.TotalCommands += result.Commands
	s.TotalRevealed += result.Revealed

	if result.FoundationCards >= 0 && result.FoundationCards < len(s.FoundationHistogram) {
		s.FoundationHistogram[result.FoundationCards]++
	}
}

// Merge folds other into s
func (s *Statistics) Merge(other *Statistics) {
	if other.Wins > 0 {
		if s.Wins == 0 || other.MinWinMoves < s.MinWinMoves {
			s.MinWinMoves = other.MinWinMoves
		}
		if other.MaxWinMoves > s.MaxWinMoves {
			s.MaxWinMoves = other.MaxWinMoves
		}
	}
	s.Games += other.Games
	s.Wins += other.Wins
	s.AutoSolves += other.AutoSolves
	s.Resigns += other.Resigns
	s.SumFoundation += other.SumFoundation
	s.SumFoundation2 += other.SumFoundation2
	s.Values = append(s.Values, other.Values...)
	s.SumWinMoves += other.SumWinMoves
	s.TotalCommands += other.TotalCommands
	s.TotalRevealed += other.TotalRevealed
	for i, n := range other.FoundationHistogram {
		s.FoundationHistogram[i] += n
	}
}

// WinRate returns the fraction of deals won
func (s *Statistics) WinRate() float64 {
	if s.Games == 0 {
		return 0
	}
	return float64(s.Wins) / float64(s.Games)
}

// WinRateInterval95 returns the normal-approximation 95% confidence interval
// for the win rate, clamped to [0, 1]
func (s *Statistics) WinRateInterval95() (float64, float64) {
	if s.Games == 0 {
		return 0, 0
	}
	p := s.WinRate()
	margin := 1.96 * math.Sqrt(p*(1-p)/float64(s.Games))
	return math.Max(0, p-margin), math.Min(1, p+margin)
}

// MeanWinMoves returns the average move count of won deals
func (s *Statistics) MeanWinMoves() float64 {
	if s.Wins == 0 {
		return 0
	}
	return float64(s.SumWinMoves) / float64(s.Wins)
}

// Mean returns the average number of foundation cards per deal
func (s *Statistics) Mean() float64 {
	if s.Games == 0 {
		return 0
	}
	return s.SumFoundation / float64(s.Games)
}

// Variance returns the sample variance of foundation cards per deal
func (s *Statistics) Variance() float64 {
	if s.Games < 2 {
		return 0
	}
	mean := s.Mean()
	return (s.SumFoundation2 - float64(s.Games)*mean*mean) / float64(s.Games-1)
}

// StdDev returns the sample standard deviation of foundation cards per deal
func (s *Statistics) StdDev() float64 {
	return math.Sqrt(s.Variance())
}

// StdError returns the standard error of the mean
func (s *Statistics) StdError() float64 {
	if s.Games == 0 {
		return 0
	}
	return s.StdDev() / math.Sqrt(float64(s.Games))
}

// Median returns the median foundation count
func (s *Statistics) Median() float64 {
	if len(s.Values) == 0 {
		return 0
	}
	sorted := make([]float64, len(s.Values))
	copy(sorted, s.Values)
	sort.Float64s(sorted)

	n := len(sorted)
	if n%2 == 0 {
		return (sorted[n/2-1] + sorted[n/2]) / 2
	}
	return sorted[n/2]
}

// Percentile returns the foundation count at the given percentile (0.0 to 1.0)
func (s *Statistics) Percentile(p float64) float64 {
	if len(s.Values) == 0 {
		return 0
	}
	sorted := make([]float64, len(s.Values))
	copy(sorted, s.Values)
	sort.Float64s(sorted)

	index := p * float64(len(sorted)-1)
	lower := int(index)
	upper := lower + 1

	if upper >= len(sorted) {
		return sorted[len(sorted)-1]
	}

	weight := index - float64(lower)
	return sorted[lower]*(1-weight) + sorted[upper]*weight
}

// Validate performs consistency checks on the collected data
func (s *Statistics) Validate() error {
	if s.Games <= 0 {
		return fmt.Errorf("invalid games count: %d", s.Games)
	}

	if len(s.Values) != s.Games {
		return fmt.Errorf("values array length (%d) does not match games count (%d)",
			len(s.Values), s.Games)
	}

	if s.Wins > s.Games {
		return fmt.Errorf("wins (%d) exceeds games (%d)", s.Wins, s.Games)
	}
	if s.AutoSolves > s.Wins {
		return fmt.Errorf("auto-solves (%d) exceeds wins (%d)", s.AutoSolves, s.Wins)
	}

	histogramGames := 0
	for _, n := range s.FoundationHistogram {
		histogramGames += n
	}
	if histogramGames != s.Games {
		return fmt.Errorf("histogram total (%d) does not match games count (%d)", histogramGames, s.Games)
	}
	if s.FoundationHistogram[52] != s.Wins {
		return fmt.Errorf("complete foundations (%d) does not match wins (%d)", s.FoundationHistogram[52], s.Wins)
	}

	return nil
}
