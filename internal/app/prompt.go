package app

// PromptKind tells presentation how to show a prompt.
type PromptKind int

const (
	// PromptInfo is an informational message.
	PromptInfo PromptKind = iota
	// PromptWarn is a warning about rejected input.
	PromptWarn
	// PromptError is a failed action.
	PromptError
	// PromptConfirm asks a yes/no question.
	PromptConfirm
)

func (k PromptKind) String() string {
	switch k {
	case PromptInfo:
		return "info"
	case PromptWarn:
		return "warn"
	case PromptError:
		return "error"
	case PromptConfirm:
		return "confirm"
	default:
		return "unknown"
	}
}

// Prompt is a message the controller wants presented to the user.
type Prompt struct {
	Kind    PromptKind
	Title   string
	Message string
}

// Prompter is supplied by presentation. Confirm is only called with
// PromptConfirm prompts; Show receives all other kinds.
type Prompter interface {
	Confirm(p Prompt) bool
	Show(p Prompt)
}

// SilentPrompter approves every confirmation and discards messages.
type SilentPrompter struct{}

// Confirm implements Prompter.
func (SilentPrompter) Confirm(Prompt) bool { return true }

// Show implements Prompter.
func (SilentPrompter) Show(Prompt) {}
