package tui

import (
	"reflect"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"github.com/verte-zerg/wordcards/internal/app"
	"github.com/verte-zerg/wordcards/internal/model"
	"github.com/verte-zerg/wordcards/internal/session"
)

type memStore struct {
	sets model.WordSets
}

func (s *memStore) Load() model.WordSets {
	return s.sets.Clone()
}

func (s *memStore) Save(sets model.WordSets) error {
	s.sets = sets.Clone()
	return nil
}

func newTestModel(t *testing.T, sets model.WordSets) (*Model, *memStore) {
	t.Helper()
	if sets == nil {
		sets = model.WordSets{}
	}
	st := &memStore{sets: sets}
	p := NewPrompter()
	ctrl := app.New(st,
		app.WithPrompter(p),
		app.WithShuffler(session.NewSeededShuffler(7)),
	)
	m := NewModel(ctrl, p, nil, zerolog.Nop())
	m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	return m, st
}

func press(m *Model, keys ...string) {
	for _, k := range keys {
		var msg tea.KeyMsg
		switch k {
		case "esc":
			msg = tea.KeyMsg{Type: tea.KeyEsc}
		case "enter":
			msg = tea.KeyMsg{Type: tea.KeyEnter}
		case "tab":
			msg = tea.KeyMsg{Type: tea.KeyTab}
		case "right":
			msg = tea.KeyMsg{Type: tea.KeyRight}
		case "left":
			msg = tea.KeyMsg{Type: tea.KeyLeft}
		case "ctrl+s":
			msg = tea.KeyMsg{Type: tea.KeyCtrlS}
		default:
			msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
		}
		m.Update(msg)
	}
}

func TestDeleteAsksBeforeRemoving(t *testing.T) {
	m, st := newTestModel(t, model.WordSets{"Animals": {"cat", "dog"}})

	press(m, "esc", "d")
	if m.modal == nil || m.modal.prompt.Title != "Delete?" {
		t.Fatalf("expected delete confirmation, got %+v", m.modal)
	}
	if _, ok := st.sets["Animals"]; !ok {
		t.Fatalf("set removed before confirmation")
	}

	press(m, "y")
	if _, ok := st.sets["Animals"]; ok {
		t.Fatalf("set still stored after confirmation")
	}
	if m.modal == nil || m.modal.prompt.Title != "Deleted" {
		t.Fatalf("expected deleted notice, got %+v", m.modal)
	}
	press(m, "enter")
	if m.modal != nil {
		t.Fatalf("notice not dismissed")
	}
	if m.listIndex != -1 {
		t.Fatalf("listIndex = %d, want -1", m.listIndex)
	}
}

func TestDeleteDeclinedKeepsSet(t *testing.T) {
	m, st := newTestModel(t, model.WordSets{"Animals": {"cat", "dog"}})

	press(m, "esc", "d", "n")
	if m.modal != nil {
		t.Fatalf("modal still open: %+v", m.modal)
	}
	if _, ok := st.sets["Animals"]; !ok {
		t.Fatalf("declined delete removed the set")
	}
	if m.prompter.approve {
		t.Fatalf("prompter left in approving state")
	}
}

func TestSaveWithoutNameWarns(t *testing.T) {
	m, st := newTestModel(t, nil)

	press(m, "ctrl+s")
	if m.modal == nil || m.modal.prompt.Kind != app.PromptWarn || m.modal.prompt.Title != "Missing name" {
		t.Fatalf("expected missing name warning, got %+v", m.modal)
	}
	if len(st.sets) != 0 {
		t.Fatalf("unexpected sets stored: %v", st.sets)
	}
}

func TestCreateSetFromForm(t *testing.T) {
	m, st := newTestModel(t, nil)

	press(m, "C", "o", "l", "o", "r", "s", "enter")
	if m.formField != fieldWords {
		t.Fatalf("enter should move focus to the words field")
	}
	m.wordsInput.SetValue("red\n  blue \nRed\n\n")
	press(m, "ctrl+s")

	want := []string{"red", "blue"}
	if got := st.sets["Colors"]; !reflect.DeepEqual(got, want) {
		t.Fatalf("stored words = %v, want %v", got, want)
	}
	if m.modal == nil || m.modal.prompt.Title != "Saved" {
		t.Fatalf("expected saved notice, got %+v", m.modal)
	}
	if m.ctrl.Selected() != "Colors" || m.listIndex != 0 {
		t.Fatalf("new set not selected: %q index %d", m.ctrl.Selected(), m.listIndex)
	}
}

func TestOverwriteConfirmationReplaysSave(t *testing.T) {
	m, st := newTestModel(t, model.WordSets{"Colors": {"red"}})

	m.nameInput.SetValue("Colors")
	m.wordsInput.SetValue("green")
	press(m, "ctrl+s")
	if m.modal == nil || m.modal.prompt.Title != "Overwrite?" {
		t.Fatalf("expected overwrite confirmation, got %+v", m.modal)
	}
	press(m, "y")
	if got := st.sets["Colors"]; !reflect.DeepEqual(got, []string{"green"}) {
		t.Fatalf("stored words = %v, want [green]", got)
	}
}

func TestLeavingCreateTabCancelsEdit(t *testing.T) {
	m, _ := newTestModel(t, model.WordSets{"Animals": {"cat", "dog"}})

	press(m, "esc", "e")
	if target, ok := m.ctrl.EditTarget(); !ok || target != "Animals" {
		t.Fatalf("edit mode not entered: %q %v", target, ok)
	}
	if m.nameInput.Value() != "Animals" || m.wordsInput.Value() != "cat\ndog" {
		t.Fatalf("form not prefilled: %q %q", m.nameInput.Value(), m.wordsInput.Value())
	}
	if m.formField != fieldWords {
		t.Fatalf("words field should be focused in edit mode")
	}

	press(m, "tab")
	if _, ok := m.ctrl.EditTarget(); ok {
		t.Fatalf("edit mode survived leaving the tab")
	}
	if m.nameInput.Value() != "" || m.wordsInput.Value() != "" {
		t.Fatalf("form not cleared")
	}
}

func TestEditSaveSwitchesToCards(t *testing.T) {
	m, st := newTestModel(t, model.WordSets{"Animals": {"cat", "dog"}})

	press(m, "esc", "e")
	m.wordsInput.SetValue("cat\ndog\nbird")
	press(m, "ctrl+s")

	if got := len(st.sets["Animals"]); got != 3 {
		t.Fatalf("stored %d words, want 3", got)
	}
	if m.activeTab != tabCards {
		t.Fatalf("activeTab = %d, want cards", m.activeTab)
	}
	card := m.ctrl.Card()
	if !card.Active || card.Total != 3 || card.Index != 1 {
		t.Fatalf("unexpected card after update: %+v", card)
	}
}

func TestReviewNavigation(t *testing.T) {
	m, _ := newTestModel(t, model.WordSets{"Pair": {"one", "two"}})

	press(m, "esc", "enter")
	if m.activeTab != tabCards {
		t.Fatalf("review did not switch to the cards tab")
	}
	card := m.ctrl.Card()
	if !card.Active || card.Index != 1 || card.Total != 2 {
		t.Fatalf("unexpected first card: %+v", card)
	}

	press(m, "right")
	if got := m.ctrl.Card().Index; got != 2 {
		t.Fatalf("index after next = %d, want 2", got)
	}
	if m.modal != nil {
		t.Fatalf("unexpected modal before the end: %+v", m.modal)
	}

	press(m, " ")
	if m.modal == nil || m.modal.prompt.Title != "Done!" {
		t.Fatalf("expected done notice, got %+v", m.modal)
	}
	press(m, "enter", "left")
	if got := m.ctrl.Card().Index; got != 1 {
		t.Fatalf("index after prev = %d, want 1", got)
	}

	view := m.View()
	if !strings.Contains(view, "1 / 2") || !strings.Contains(view, "Set: Pair") {
		t.Fatalf("view missing progress:\n%s", view)
	}
}

func TestHistoryTabWithoutStore(t *testing.T) {
	m, _ := newTestModel(t, nil)

	press(m, "tab", "tab")
	if m.activeTab != tabHistory {
		t.Fatalf("activeTab = %d, want history", m.activeTab)
	}
	if !strings.Contains(m.View(), "Review history is disabled.") {
		t.Fatalf("history tab should report disabled history")
	}
}

func TestIdleCardView(t *testing.T) {
	m, _ := newTestModel(t, nil)

	press(m, "tab")
	view := m.View()
	if !strings.Contains(view, "Select a set and start.") {
		t.Fatalf("idle card text missing:\n%s", view)
	}
	if m.keys.Next.Enabled() {
		t.Fatalf("navigation keys should be disabled without a review")
	}
}

func TestEmphasize(t *testing.T) {
	cases := []struct {
		word  string
		width int
		want  string
	}{
		{"cat", 20, "c a t"},
		{"a", 20, "a"},
		{"ice cream", 20, "ice cream"},
		{"extraordinarily", 40, "extraordinarily"},
		{"house", 6, "house"},
	}
	for _, tc := range cases {
		if got := emphasize(tc.word, tc.width); got != tc.want {
			t.Fatalf("emphasize(%q, %d) = %q, want %q", tc.word, tc.width, got, tc.want)
		}
	}
}
