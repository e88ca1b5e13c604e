package app

import (
	"errors"

	"github.com/verte-zerg/wordcards/internal/session"
)

var (
	// ErrValidation reports an empty set name or a word list with no words.
	ErrValidation = errors.New("invalid word set")
	// ErrNotFound reports an operation on a set that does not exist.
	ErrNotFound = errors.New("word set not found")
	// ErrEmptyOrMissingSet reports a review request for a missing or empty set.
	ErrEmptyOrMissingSet = session.ErrEmptyOrMissingSet
	// ErrDeclined reports that the user said no to a confirmation. Nothing changed.
	ErrDeclined = errors.New("confirmation declined")
	// ErrStorageWrite reports that the set file could not be written.
	ErrStorageWrite = errors.New("failed to save word sets")
)
