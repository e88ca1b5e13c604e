// Package app holds the application controller that owns the word sets and the
// active review session.
package app

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/verte-zerg/wordcards/internal/model"
	"github.com/verte-zerg/wordcards/internal/session"
	"github.com/verte-zerg/wordcards/internal/wordlist"
)

// Store persists the word set collection.
type Store interface {
	Load() model.WordSets
	Save(sets model.WordSets) error
}

// Recorder receives finished review sessions.
type Recorder interface {
	InsertReview(ctx context.Context, rec model.ReviewRecord) (int64, error)
}

// Prefill is the create form content for edit mode.
type Prefill struct {
	Name  string
	Words string
}

// CardView is what the flashcard pane renders.
type CardView struct {
	SetName string
	Word    string
	Hint    string
	Index   int
	Total   int
	Active  bool
}

const (
	idleWord = "Select a set and start."
	idleHint = "Choose a set on the left, then press enter to review."
	cardHint = "Use ← / → / space"
)

// Controller mediates between presentation and the word set core.
type Controller struct {
	store    Store
	sets     model.WordSets
	prompter Prompter
	recorder Recorder
	log      zerolog.Logger
	shuffler *session.Shuffler
	now      func() time.Time

	active   *session.Session
	selected string
	editing  string
}

// Option configures a Controller.
type Option func(*Controller)

// WithPrompter sets the prompt implementation. The default approves everything silently.
func WithPrompter(p Prompter) Option {
	return func(c *Controller) { c.prompter = p }
}

// WithRecorder enables review history.
func WithRecorder(r Recorder) Option {
	return func(c *Controller) { c.recorder = r }
}

// WithLogger sets the logger.
func WithLogger(log zerolog.Logger) Option {
	return func(c *Controller) { c.log = log }
}

// WithShuffler sets the random source for review order.
func WithShuffler(s *session.Shuffler) Option {
	return func(c *Controller) { c.shuffler = s }
}

// WithClock overrides time.Now.
func WithClock(now func() time.Time) Option {
	return func(c *Controller) { c.now = now }
}

// New loads the collection from store and returns a Controller.
func New(store Store, opts ...Option) *Controller {
	c := &Controller{
		store:    store,
		prompter: SilentPrompter{},
		log:      zerolog.Nop(),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.shuffler == nil {
		c.shuffler = session.NewShuffler()
	}
	c.sets = store.Load()
	if c.sets == nil {
		c.sets = model.WordSets{}
	}
	c.log.Debug().Int("sets", len(c.sets)).Msg("loaded word sets")
	return c
}

// SetNames returns all set names sorted case-insensitively.
func (c *Controller) SetNames() []string {
	names := make([]string, 0, len(c.sets))
	for name := range c.sets {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		li, lj := strings.ToLower(names[i]), strings.ToLower(names[j])
		if li == lj {
			return names[i] < names[j]
		}
		return li < lj
	})
	return names
}

// Words returns a copy of a set's words.
func (c *Controller) Words(name string) ([]string, bool) {
	words, ok := c.sets[name]
	if !ok {
		return nil, false
	}
	return append([]string(nil), words...), true
}

// Select marks name as the current set. Unknown names clear the selection.
func (c *Controller) Select(name string) {
	if _, ok := c.sets[name]; !ok {
		c.selected = ""
		return
	}
	c.selected = name
}

// Selected returns the current set name, or "" when none.
func (c *Controller) Selected() string {
	return c.selected
}

// EditTarget returns the set being edited.
func (c *Controller) EditTarget() (string, bool) {
	return c.editing, c.editing != ""
}

// ActiveSet returns the source set of the running review.
func (c *Controller) ActiveSet() (string, bool) {
	if c.active == nil {
		return "", false
	}
	return c.active.SetName(), true
}

// CreateOrUpdateSet saves rawText as the words of name. In edit mode the
// edited set is overwritten regardless of name and a new review starts.
func (c *Controller) CreateOrUpdateSet(name, rawText string) error {
	words := wordlist.Normalize(rawText)
	editing := c.editing != ""
	if editing {
		name = c.editing
	} else {
		name = strings.TrimSpace(name)
	}

	if name == "" {
		c.show(PromptWarn, "Missing name", "Please name your word set.")
		return fmt.Errorf("%w: empty name", ErrValidation)
	}
	if len(words) == 0 {
		c.show(PromptWarn, "No words", "Please enter at least 1 word (one per line).")
		return fmt.Errorf("%w: no words", ErrValidation)
	}

	if !editing {
		if _, exists := c.sets[name]; exists {
			ok := c.prompter.Confirm(Prompt{
				Kind:    PromptConfirm,
				Title:   "Overwrite?",
				Message: fmt.Sprintf("A set named '%s' already exists.\nDo you want to overwrite it?", name),
			})
			if !ok {
				return ErrDeclined
			}
		}
	}

	c.sets[name] = words
	if err := c.persist(); err != nil {
		return err
	}
	c.selected = name

	if editing {
		c.log.Info().Str("set", name).Int("words", len(words)).Msg("updated set")
		c.show(PromptInfo, "Updated", fmt.Sprintf("Updated '%s' with %d words.", name, len(words)))
		c.editing = ""
		return c.startReview(name)
	}
	c.log.Info().Str("set", name).Int("words", len(words)).Msg("saved set")
	c.show(PromptInfo, "Saved", fmt.Sprintf("Saved '%s' with %d words.", name, len(words)))
	return nil
}

// DeleteSet removes a set after confirmation and ends its review if running.
func (c *Controller) DeleteSet(name string) error {
	if name == "" {
		c.show(PromptInfo, "Select a set", "Please select a word set first.")
		return fmt.Errorf("%w: no set selected", ErrNotFound)
	}
	if _, ok := c.sets[name]; !ok {
		c.show(PromptInfo, "Not found", fmt.Sprintf("There is no set named '%s'.", name))
		return fmt.Errorf("%w: %q", ErrNotFound, name)
	}
	ok := c.prompter.Confirm(Prompt{
		Kind:    PromptConfirm,
		Title:   "Delete?",
		Message: fmt.Sprintf("Delete '%s'? This cannot be undone.", name),
	})
	if !ok {
		return ErrDeclined
	}

	delete(c.sets, name)
	if c.active != nil && c.active.SetName() == name {
		c.finishReview()
	}
	if c.selected == name {
		c.selected = ""
	}
	if c.editing == name {
		c.editing = ""
	}
	if err := c.persist(); err != nil {
		return err
	}
	c.log.Info().Str("set", name).Msg("deleted set")
	c.show(PromptInfo, "Deleted", fmt.Sprintf("Deleted '%s'.", name))
	return nil
}

// StartReview replaces the active session with a new shuffled review of name.
func (c *Controller) StartReview(name string) error {
	if name == "" {
		c.show(PromptInfo, "Select a set", "Please select a word set first.")
		return ErrEmptyOrMissingSet
	}
	return c.startReview(name)
}

func (c *Controller) startReview(name string) error {
	next, err := session.Start(c.sets, name, c.shuffler, c.now())
	if err != nil {
		c.show(PromptWarn, "Empty set", "This set has no words.")
		return err
	}
	c.finishReview()
	c.active = next
	c.selected = name
	c.log.Info().Str("set", name).Str("session", next.ID()).Int("cards", next.Len()).Msg("review started")
	return nil
}

// EnterEditMode switches the create form to editing name.
func (c *Controller) EnterEditMode(name string) (Prefill, error) {
	words, ok := c.sets[name]
	if name == "" || !ok {
		c.show(PromptInfo, "No set", "Please start/review a set first, then edit it.")
		return Prefill{}, fmt.Errorf("%w: %q", ErrNotFound, name)
	}
	c.editing = name
	return Prefill{Name: name, Words: wordlist.Join(words)}, nil
}

// CancelEdit leaves edit mode without saving.
func (c *Controller) CancelEdit() {
	c.editing = ""
}

// Next moves to the next card and reports whether the end was already reached.
func (c *Controller) Next() bool {
	if c.active == nil {
		return false
	}
	if !c.active.Advance() {
		return false
	}
	c.show(PromptInfo, "Done!", "You reached the last card.\nYou can reshuffle to review again.")
	return true
}

// Prev moves to the previous card.
func (c *Controller) Prev() {
	if c.active == nil {
		return
	}
	c.active.Retreat()
}

// Reshuffle reorders the active review and returns to the first card.
func (c *Controller) Reshuffle() {
	if c.active == nil {
		return
	}
	if c.active.Reshuffle() {
		c.log.Debug().Str("session", c.active.ID()).Msg("reshuffled")
	}
}

// Card describes the current flashcard.
func (c *Controller) Card() CardView {
	if c.active == nil {
		return CardView{Word: idleWord, Hint: idleHint}
	}
	word, ok := c.active.CurrentWord()
	if !ok {
		return CardView{Word: idleWord, Hint: idleHint}
	}
	idx, total := c.active.Position()
	return CardView{
		SetName: c.active.SetName(),
		Word:    word,
		Hint:    cardHint,
		Index:   idx,
		Total:   total,
		Active:  true,
	}
}

// Close ends the active review so it reaches the history.
func (c *Controller) Close() {
	c.finishReview()
}

func (c *Controller) finishReview() {
	if c.active == nil {
		return
	}
	done := c.active
	c.active = nil
	rec := done.Record(c.now())
	c.log.Info().
		Str("set", rec.SetName).
		Str("session", rec.SessionID).
		Int("seen", rec.Seen).
		Int("cards", rec.Cards).
		Bool("completed", rec.Completed).
		Msg("review finished")
	if c.recorder == nil {
		return
	}
	if _, err := c.recorder.InsertReview(context.Background(), rec); err != nil {
		c.log.Error().Err(err).Str("session", rec.SessionID).Msg("failed to record review")
	}
}

func (c *Controller) persist() error {
	if err := c.store.Save(c.sets); err != nil {
		c.log.Error().Err(err).Msg("failed to save word sets")
		c.show(PromptError, "Save failed", err.Error())
		return fmt.Errorf("%w: %w", ErrStorageWrite, err)
	}
	return nil
}

func (c *Controller) show(kind PromptKind, title, message string) {
	c.prompter.Show(Prompt{Kind: kind, Title: title, Message: message})
}
