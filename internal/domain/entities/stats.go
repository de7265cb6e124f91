package entities

import "time"

// StatsWindow is how far back the mood tally looks.
const StatsWindow = 7 * 24 * time.Hour

// MoodStats is the fixed-shape mood tally
type MoodStats struct {
	Fine     int64 `json:"Fine"`
	Tired    int64 `json:"Tired"`
	Stressed int64 `json:"Stressed"`
}

// NewMoodStats fills a tally from per-mood counts. Moods absent from counts
// stay at zero and unknown keys are ignored.
func NewMoodStats(counts map[Mood]int64) MoodStats {
	return MoodStats{
		Fine:     counts[MoodFine],
		Tired:    counts[MoodTired],
		Stressed: counts[MoodStressed],
	}
}
