package tui

import "github.com/verte-zerg/wordcards/internal/app"

// Prompter adapts controller prompts to modal dialogs. A confirmation cannot
// block the update loop, so the first call declines and records the question;
// the model replays the action with approval once the user answers yes.
type Prompter struct {
	approve  bool
	pending  *app.Prompt
	messages []app.Prompt
}

// NewPrompter returns a Prompter to pass to app.WithPrompter and NewModel.
func NewPrompter() *Prompter {
	return &Prompter{}
}

// Confirm implements app.Prompter.
func (p *Prompter) Confirm(pr app.Prompt) bool {
	if p.approve {
		return true
	}
	question := pr
	p.pending = &question
	return false
}

// Show implements app.Prompter.
func (p *Prompter) Show(pr app.Prompt) {
	p.messages = append(p.messages, pr)
}

func (p *Prompter) takePending() (app.Prompt, bool) {
	if p.pending == nil {
		return app.Prompt{}, false
	}
	pr := *p.pending
	p.pending = nil
	return pr, true
}

func (p *Prompter) nextMessage() (app.Prompt, bool) {
	if len(p.messages) == 0 {
		return app.Prompt{}, false
	}
	pr := p.messages[0]
	p.messages = p.messages[1:]
	return pr, true
}
