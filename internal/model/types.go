// Package model defines shared data structures.
package model

import "time"

// WordSets maps a set name to its ordered, deduplicated words.
type WordSets map[string][]string

// Clone returns a deep copy of the collection.
func (s WordSets) Clone() WordSets {
	out := make(WordSets, len(s))
	for name, words := range s {
		out[name] = append([]string(nil), words...)
	}
	return out
}

// Config defines review settings resolved from flags and the config file.
type Config struct {
	DataPath  string
	Seed      int64
	History   bool
	LogLevel  string
	HistoryDB string
}

// HistoryFilter narrows the review history listing.
type HistoryFilter struct {
	SetName string
	Since   *time.Time
	Last    int
}

// ReviewRecord captures one finished review session.
type ReviewRecord struct {
	ID         int64
	SessionID  string
	SetName    string
	Cards      int
	Seen       int
	Reshuffles int
	Completed  bool
	StartedAt  time.Time
	EndedAt    time.Time
}

// SetSummary aggregates review records for a single set.
type SetSummary struct {
	SetName      string
	Reviews      int
	Completed    int
	CardsSeen    int
	LastReviewed time.Time
}
