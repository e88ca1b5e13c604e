// Package session implements a shuffled flashcard review over one word set.
package session

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/verte-zerg/wordcards/internal/model"
)

// ErrEmptyOrMissingSet is returned when a review is requested for a set that
// does not exist or has no words.
var ErrEmptyOrMissingSet = errors.New("set is missing or has no words")

// Session holds a shuffled copy of a set's words and a cursor into it.
type Session struct {
	id        string
	setName   string
	words     []string
	cursor    int
	shuffler  *Shuffler
	startedAt time.Time

	seen       int
	reshuffles int
	completed  bool
}

// Start begins a review of sets[name] with a fresh random order.
func Start(sets model.WordSets, name string, shuffler *Shuffler, now time.Time) (*Session, error) {
	words, ok := sets[name]
	if !ok || len(words) == 0 {
		return nil, ErrEmptyOrMissingSet
	}
	if shuffler == nil {
		shuffler = NewShuffler()
	}
	s := &Session{
		id:        uuid.New().String(),
		setName:   name,
		words:     append([]string(nil), words...),
		shuffler:  shuffler,
		startedAt: now,
		seen:      1,
	}
	s.shuffler.Shuffle(s.words)
	return s, nil
}

// ID identifies the session in logs and review history.
func (s *Session) ID() string {
	return s.id
}

// SetName returns the name of the set under review.
func (s *Session) SetName() string {
	return s.setName
}

// Len returns the number of cards.
func (s *Session) Len() int {
	return len(s.words)
}

// Position returns the one-based card number and the total, or 0, 0 when empty.
func (s *Session) Position() (int, int) {
	if len(s.words) == 0 {
		return 0, 0
	}
	return s.cursor + 1, len(s.words)
}

// CurrentWord returns the word under the cursor.
func (s *Session) CurrentWord() (string, bool) {
	if len(s.words) == 0 {
		return "", false
	}
	return s.words[s.cursor], true
}

// Advance moves to the next card. It reports true, without moving, when the
// cursor is already on the last card.
func (s *Session) Advance() bool {
	if len(s.words) == 0 {
		return false
	}
	if s.cursor >= len(s.words)-1 {
		s.completed = true
		return true
	}
	s.cursor++
	if s.cursor+1 > s.seen {
		s.seen = s.cursor + 1
	}
	return false
}

// Retreat moves to the previous card; it does nothing on the first card.
func (s *Session) Retreat() {
	if s.cursor > 0 {
		s.cursor--
	}
}

// Reshuffle draws a new order and returns to the first card. It reports false
// for an empty session.
func (s *Session) Reshuffle() bool {
	if len(s.words) == 0 {
		return false
	}
	s.shuffler.Shuffle(s.words)
	s.cursor = 0
	s.reshuffles++
	return true
}

// Record summarizes the session for the review history.
func (s *Session) Record(endedAt time.Time) model.ReviewRecord {
	return model.ReviewRecord{
		SessionID:  s.id,
		SetName:    s.setName,
		Cards:      len(s.words),
		Seen:       s.seen,
		Reshuffles: s.reshuffles,
		Completed:  s.completed,
		StartedAt:  s.startedAt,
		EndedAt:    endedAt,
	}
}
