// Package tui provides the Bubble Tea flashcard interface.
package tui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
	"github.com/rs/zerolog"

	"github.com/verte-zerg/wordcards/internal/app"
	"github.com/verte-zerg/wordcards/internal/stats"
)

const (
	tabCreate = iota
	tabCards
	tabHistory
	tabCount
)

const (
	fieldName = iota
	fieldWords
)

const (
	listWidth    = 28
	headerHeight = 3
	footerHeight = 1
	wordsHint    = "Tip: paste many lines at once. Words are de-duplicated (case-insensitive)."
)

var (
	titleStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0")).Bold(true)
	subtitleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	mutedStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	labelStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0")).Bold(true)
	lockedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C")).Italic(true)
	selectedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#0B1220")).Background(lipgloss.Color("#C89A3A")).Bold(true)
	itemStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#D0D0D0"))
	errorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
	cardWordStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0")).Bold(true)

	paneStyle = lipgloss.NewStyle().
			Padding(0, 1).
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(lipgloss.Color("#4A4A4A"))
	focusedPaneStyle = paneStyle.
				BorderForeground(lipgloss.Color("#C89A3A"))
	activeNavStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F0F0F0")).
			Bold(true).
			Padding(0, 1).
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(lipgloss.Color("#C89A3A"))
	inactiveNavStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#B0B0B0")).
				Padding(0, 1).
				Border(lipgloss.RoundedBorder(), true).
				BorderForeground(lipgloss.Color("#4A4A4A"))
	cardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(lipgloss.Color("#20315C")).
			Background(lipgloss.Color("#0F1A33"))
	buttonStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F0F0F0")).
			Padding(0, 1).
			Margin(0, 1).
			Border(lipgloss.NormalBorder(), true).
			BorderForeground(lipgloss.Color("#C89A3A"))
	buttonDisabledStyle = buttonStyle.
				Foreground(lipgloss.Color("#555555")).
				BorderForeground(lipgloss.Color("#333333"))
	modalStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(lipgloss.Color("#C89A3A")).
			Padding(1, 2)
	warnModalStyle  = modalStyle.BorderForeground(lipgloss.Color("#E0A030"))
	errorModalStyle = modalStyle.BorderForeground(lipgloss.Color("#FF4D4F"))
)

// action is a controller call plus the view update to run once it settles.
type action struct {
	do    func() error
	after func(err error)
}

type modalState struct {
	prompt app.Prompt
	replay *action
}

// Model implements the Bubble Tea flashcard UI.
type Model struct {
	ctrl     *app.Controller
	prompter *Prompter
	history  stats.ReviewLister
	log      zerolog.Logger
	keys     keyMap

	width  int
	height int

	activeTab   int
	listFocused bool
	listIndex   int

	formField  int
	nameInput  textinput.Model
	wordsInput textarea.Model

	historyTable table.Model
	historyErr   string

	modal *modalState
}

// NewModel constructs the flashcard UI. prompter must be the one the
// controller was built with. history may be nil when review history is off.
func NewModel(ctrl *app.Controller, prompter *Prompter, history stats.ReviewLister, log zerolog.Logger) *Model {
	m := &Model{
		ctrl:         ctrl,
		prompter:     prompter,
		history:      history,
		log:          log,
		keys:         newKeyMap(),
		activeTab:    tabCreate,
		historyTable: newHistoryTable(),
	}
	m.initInputs()
	if names := ctrl.SetNames(); len(names) > 0 && ctrl.Selected() == "" {
		ctrl.Select(names[0])
	}
	m.syncList()
	m.focusForm()
	return m
}

func (m *Model) initInputs() {
	m.nameInput = textinput.New()
	m.nameInput.Prompt = "› "
	m.nameInput.Placeholder = "Set name"
	m.nameInput.CharLimit = 80
	m.nameInput.Cursor.SetMode(cursor.CursorBlink)

	m.wordsInput = textarea.New()
	m.wordsInput.Placeholder = "One word per line"
	m.wordsInput.ShowLineNumbers = false
	m.wordsInput.CharLimit = 0
	m.wordsInput.MaxHeight = 0
	m.wordsInput.SetWidth(40)
	m.wordsInput.SetHeight(8)
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.updateLayout()
		return m, nil
	case tea.KeyMsg:
		if key.Matches(msg, m.keys.ForceQuit) {
			return m, tea.Quit
		}
		if m.modal != nil {
			m.updateModal(msg)
			return m, nil
		}
		switch {
		case key.Matches(msg, m.keys.NextTab):
			return m, m.switchTab(m.activeTab + 1)
		case key.Matches(msg, m.keys.PrevTab):
			return m, m.switchTab(m.activeTab - 1)
		}
		if m.activeTab == tabCreate && !m.listFocused {
			return m.updateForm(msg)
		}
		return m.updateBrowse(msg)
	default:
		return m.forwardToInputs(msg)
	}
}

func (m *Model) updateModal(msg tea.KeyMsg) {
	if m.modal.prompt.Kind == app.PromptConfirm {
		switch {
		case key.Matches(msg, m.keys.Yes):
			replay := m.modal.replay
			m.modal = nil
			m.prompter.approve = true
			err := replay.do()
			m.prompter.approve = false
			m.settle(*replay, err)
		case key.Matches(msg, m.keys.No):
			m.modal = nil
			m.nextModal()
		}
		return
	}
	if key.Matches(msg, m.keys.Dismiss) {
		m.modal = nil
		m.nextModal()
	}
}

func (m *Model) updateForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Save):
		m.run(m.saveAction())
		return m, nil
	case key.Matches(msg, m.keys.Focus):
		m.listFocused = true
		m.blurForm()
		return m, nil
	}
	if m.formField == fieldName {
		if msg.Type == tea.KeyEnter {
			return m, m.focusField(fieldWords)
		}
		var cmd tea.Cmd
		m.nameInput, cmd = m.nameInput.Update(msg)
		return m, cmd
	}
	var cmd tea.Cmd
	m.wordsInput, cmd = m.wordsInput.Update(msg)
	return m, cmd
}

func (m *Model) updateBrowse(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Focus) && m.activeTab == tabCreate:
		m.listFocused = false
		return m, m.focusForm()
	}

	if m.activeTab == tabHistory {
		var cmd tea.Cmd
		m.historyTable, cmd = m.historyTable.Update(msg)
		return m, cmd
	}

	switch {
	case key.Matches(msg, m.keys.Up):
		m.moveSelection(-1)
	case key.Matches(msg, m.keys.Down):
		m.moveSelection(1)
	case key.Matches(msg, m.keys.Review):
		m.run(m.reviewAction(m.ctrl.Selected()))
	case key.Matches(msg, m.keys.Delete):
		m.run(m.deleteAction(m.ctrl.Selected()))
	case key.Matches(msg, m.keys.Edit):
		return m, m.enterEdit()
	case m.activeTab == tabCards && key.Matches(msg, m.keys.Prev):
		m.ctrl.Prev()
	case m.activeTab == tabCards && key.Matches(msg, m.keys.Next):
		m.ctrl.Next()
		m.nextModal()
	case m.activeTab == tabCards && key.Matches(msg, m.keys.Reshuffle):
		m.ctrl.Reshuffle()
	}
	return m, nil
}

func (m *Model) forwardToInputs(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd
	var cmd tea.Cmd
	m.nameInput, cmd = m.nameInput.Update(msg)
	cmds = append(cmds, cmd)
	m.wordsInput, cmd = m.wordsInput.Update(msg)
	cmds = append(cmds, cmd)
	return m, tea.Batch(cmds...)
}

// run calls the controller. A declined confirmation opens a modal that
// replays the same action if the user answers yes.
func (m *Model) run(a action) {
	m.prompter.approve = false
	err := a.do()
	if errors.Is(err, app.ErrDeclined) {
		if pr, ok := m.prompter.takePending(); ok {
			m.modal = &modalState{prompt: pr, replay: &a}
			return
		}
	}
	m.settle(a, err)
}

func (m *Model) settle(a action, err error) {
	if err != nil && !errors.Is(err, app.ErrDeclined) {
		m.log.Debug().Err(err).Msg("action rejected")
	}
	if a.after != nil {
		a.after(err)
	}
	m.syncList()
	m.nextModal()
}

func (m *Model) nextModal() {
	if m.modal != nil {
		return
	}
	if pr, ok := m.prompter.nextMessage(); ok {
		m.modal = &modalState{prompt: pr}
	}
}

func (m *Model) saveAction() action {
	_, wasEditing := m.ctrl.EditTarget()
	name := m.nameInput.Value()
	text := m.wordsInput.Value()
	return action{
		do: func() error {
			return m.ctrl.CreateOrUpdateSet(name, text)
		},
		after: func(err error) {
			if err != nil || !wasEditing {
				return
			}
			m.resetForm()
			m.activeTab = tabCards
			m.blurForm()
		},
	}
}

func (m *Model) deleteAction(name string) action {
	return action{
		do: func() error {
			return m.ctrl.DeleteSet(name)
		},
		after: func(err error) {
			if err != nil {
				return
			}
			if _, editing := m.ctrl.EditTarget(); !editing && m.nameInput.Value() == name {
				m.resetForm()
			}
		},
	}
}

func (m *Model) reviewAction(name string) action {
	return action{
		do: func() error {
			return m.ctrl.StartReview(name)
		},
		after: func(err error) {
			if err != nil {
				return
			}
			m.activeTab = tabCards
			m.listFocused = false
			m.blurForm()
		},
	}
}

func (m *Model) enterEdit() tea.Cmd {
	prefill, err := m.ctrl.EnterEditMode(m.ctrl.Selected())
	if err != nil {
		m.nextModal()
		return nil
	}
	m.nameInput.SetValue(prefill.Name)
	m.wordsInput.SetValue(prefill.Words)
	m.activeTab = tabCreate
	m.listFocused = false
	return m.focusField(fieldWords)
}

func (m *Model) switchTab(next int) tea.Cmd {
	next = (next + tabCount) % tabCount
	prev := m.activeTab
	if next == prev {
		return nil
	}
	_, editing := m.ctrl.EditTarget()
	if prev == tabCreate && editing {
		m.ctrl.CancelEdit()
		editing = false
		m.resetForm()
	}
	if next == tabCreate && !editing {
		m.resetForm()
	}
	m.activeTab = next
	switch next {
	case tabCreate:
		m.listFocused = false
		return m.focusForm()
	case tabHistory:
		m.refreshHistory()
	}
	m.blurForm()
	return nil
}

func (m *Model) moveSelection(delta int) {
	names := m.ctrl.SetNames()
	if len(names) == 0 {
		return
	}
	idx := m.listIndex + delta
	if idx < 0 {
		idx = 0
	}
	if idx >= len(names) {
		idx = len(names) - 1
	}
	m.listIndex = idx
	m.ctrl.Select(names[idx])
}

// syncList points the list cursor at the controller's selection.
func (m *Model) syncList() {
	names := m.ctrl.SetNames()
	m.listIndex = -1
	selected := m.ctrl.Selected()
	for i, name := range names {
		if name == selected {
			m.listIndex = i
			return
		}
	}
}

func (m *Model) resetForm() {
	m.nameInput.Reset()
	m.wordsInput.Reset()
	m.formField = fieldName
}

func (m *Model) focusForm() tea.Cmd {
	if _, editing := m.ctrl.EditTarget(); editing {
		return m.focusField(fieldWords)
	}
	return m.focusField(fieldName)
}

func (m *Model) focusField(field int) tea.Cmd {
	m.formField = field
	if field == fieldName {
		m.wordsInput.Blur()
		return m.nameInput.Focus()
	}
	m.nameInput.Blur()
	return m.wordsInput.Focus()
}

func (m *Model) blurForm() {
	m.nameInput.Blur()
	m.wordsInput.Blur()
}

func (m *Model) updateLayout() {
	if m.width <= 0 || m.height <= 0 {
		return
	}
	rightW := m.rightWidth()
	bodyH := m.bodyHeight()
	m.nameInput.Width = maxInt(10, rightW-lipgloss.Width(m.nameInput.Prompt)-6)
	m.wordsInput.SetWidth(maxInt(10, rightW-4))
	m.wordsInput.SetHeight(maxInt(3, bodyH-14))
	m.historyTable.SetWidth(maxInt(10, rightW-4))
	m.historyTable.SetHeight(maxInt(3, bodyH-8))
}

func (m *Model) rightWidth() int {
	return maxInt(20, m.width-listWidth-4)
}

func (m *Model) bodyHeight() int {
	return maxInt(8, m.height-headerHeight-footerHeight)
}

// View implements tea.Model.
func (m *Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	m.keys.setNavEnabled(m.ctrl.Card().Active)
	if m.modal != nil {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, m.renderModal())
	}
	header := m.renderHeader()
	bodyH := m.bodyHeight()
	left := m.renderSetList(bodyH)
	right := m.renderRight(bodyH)
	body := lipgloss.JoinHorizontal(lipgloss.Top, left, right)
	footer := mutedStyle.Render(runewidth.Truncate(m.renderHelp(), m.width, "…"))
	return strings.Join([]string{header, body, footer}, "\n")
}

func (m *Model) renderHeader() string {
	title := titleStyle.Render("Word Flashcards")
	sub := runewidth.Truncate("Create word sets → shuffle → flip cards (prev / next) → saved locally for review.", m.width, "…")
	return title + "\n" + subtitleStyle.Render(sub) + "\n"
}

func (m *Model) renderSetList(height int) string {
	style := paneStyle
	if m.listFocused || m.activeTab == tabCards {
		style = focusedPaneStyle
	}
	inner := listWidth - 4
	lines := []string{labelStyle.Render("Your Word Sets"), ""}
	names := m.ctrl.SetNames()
	if len(names) == 0 {
		lines = append(lines, mutedStyle.Render("No sets yet."))
	}
	for i, name := range names {
		words, _ := m.ctrl.Words(name)
		label := runewidth.Truncate(name, inner-5, "…")
		count := fmt.Sprintf("%d", len(words))
		pad := inner - runewidth.StringWidth(label) - runewidth.StringWidth(count)
		line := label + strings.Repeat(" ", maxInt(1, pad)) + count
		if i == m.listIndex {
			lines = append(lines, selectedStyle.Render(line))
		} else {
			lines = append(lines, itemStyle.Render(line))
		}
	}
	return style.Width(listWidth - 2).Height(height - 2).Render(strings.Join(lines, "\n"))
}

func (m *Model) renderTabs() string {
	titles := []string{"Create a Set", "Flashcards", "History"}
	if target, editing := m.ctrl.EditTarget(); editing {
		titles[tabCreate] = "Edit: " + target
	}
	parts := make([]string, 0, len(titles))
	for i, title := range titles {
		if i == m.activeTab {
			parts = append(parts, activeNavStyle.Render(title))
		} else {
			parts = append(parts, inactiveNavStyle.Render(title))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

func (m *Model) renderRight(height int) string {
	tabs := m.renderTabs()
	contentH := maxInt(1, height-lipgloss.Height(tabs))
	var content string
	switch m.activeTab {
	case tabCreate:
		content = m.renderCreate()
	case tabCards:
		content = m.renderCards(contentH)
	case tabHistory:
		content = m.renderHistory()
	}
	pane := lipgloss.NewStyle().Width(m.rightWidth()).Height(contentH).Padding(0, 1).Render(content)
	return lipgloss.JoinVertical(lipgloss.Left, tabs, pane)
}

func (m *Model) renderCreate() string {
	_, editing := m.ctrl.EditTarget()
	name := m.nameInput.View()
	if editing {
		name = lockedStyle.Render(m.nameInput.Prompt + m.nameInput.Value() + "  (locked while editing)")
	}
	saveLabel := "ctrl+s: Save Set"
	if editing {
		saveLabel = "ctrl+s: Update Set"
	}
	lines := []string{
		labelStyle.Render("1) Name your set"),
		name,
		"",
		labelStyle.Render("2) Enter words (one per line)"),
		m.wordsInput.View(),
		"",
		buttonStyle.Render(saveLabel),
		mutedStyle.Render(wordsHint),
	}
	return strings.Join(lines, "\n")
}

func (m *Model) renderCards(height int) string {
	view := m.ctrl.Card()
	title := "No set selected"
	if view.Active {
		title = "Set: " + view.SetName
	}
	progress := renderProgress(view)
	width := m.rightWidth() - 2
	gap := maxInt(1, width-runewidth.StringWidth(title)-runewidth.StringWidth(progress))
	top := labelStyle.Render(title) + strings.Repeat(" ", gap) + subtitleStyle.Render(progress)
	controls := renderControls(m.keys)
	cardH := maxInt(5, height-lipgloss.Height(controls)-2)
	card := lipgloss.Place(width, cardH, lipgloss.Center, lipgloss.Center, renderCard(view, width, cardH))
	return lipgloss.JoinVertical(lipgloss.Left, top, card, lipgloss.PlaceHorizontal(width, lipgloss.Center, controls))
}

func (m *Model) renderHistory() string {
	switch {
	case m.history == nil:
		return mutedStyle.Render("Review history is disabled.")
	case m.historyErr != "":
		return errorStyle.Render("Failed to load history: " + m.historyErr)
	case len(m.historyTable.Rows()) == 0:
		return mutedStyle.Render("No reviews recorded yet.")
	default:
		return m.historyTable.View()
	}
}

func (m *Model) renderHelp() string {
	if m.modal != nil {
		return ""
	}
	k := m.keys
	switch {
	case m.activeTab == tabCreate && !m.listFocused:
		return helpLine(k.Save, k.Focus, k.NextTab, k.ForceQuit)
	case m.activeTab == tabCards:
		return helpLine(k.Up, k.Down, k.Review, k.Prev, k.Next, k.Reshuffle, k.Edit, k.Delete, k.NextTab, k.Quit)
	case m.activeTab == tabHistory:
		return helpLine(k.Up, k.Down, k.NextTab, k.Quit)
	default:
		return helpLine(k.Up, k.Down, k.Review, k.Edit, k.Delete, k.Focus, k.NextTab, k.Quit)
	}
}

func (m *Model) renderModal() string {
	pr := m.modal.prompt
	style := modalStyle
	switch pr.Kind {
	case app.PromptWarn:
		style = warnModalStyle
	case app.PromptError:
		style = errorModalStyle
	}
	help := helpLine(m.keys.Dismiss)
	if pr.Kind == app.PromptConfirm {
		help = helpLine(m.keys.Yes, m.keys.No)
	}
	width := maxInt(20, minInt(60, m.width-8))
	body := strings.Join([]string{
		titleStyle.Render(pr.Title),
		"",
		lipgloss.NewStyle().Width(width).Render(pr.Message),
		"",
		mutedStyle.Render(help),
	}, "\n")
	return style.Render(body)
}
