package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
	"github.com/muesli/reflow/wordwrap"

	"github.com/verte-zerg/wordcards/internal/app"
)

const maxSpacedRunes = 12

func renderCard(view app.CardView, width, height int) string {
	cardW := int(float64(width) * 0.86)
	cardH := int(float64(height) * 0.72)
	if cardW < 10 {
		cardW = minInt(width, 10)
	}
	if cardH < 5 {
		cardH = minInt(height, 5)
	}
	inner := maxInt(1, cardW-4)

	word := view.Word
	if view.Active {
		word = emphasize(word, inner)
	}
	wrapped := wordwrap.String(word, inner)
	hint := runewidth.Truncate(view.Hint, inner, "…")
	body := lipgloss.JoinVertical(lipgloss.Center,
		cardWordStyle.Render(wrapped),
		"",
		mutedStyle.Render(hint),
	)
	return cardStyle.
		Width(maxInt(1, cardW-2)).
		Height(maxInt(1, cardH-2)).
		Align(lipgloss.Center, lipgloss.Center).
		Render(body)
}

// emphasize letter-spaces short words so they read larger on the card.
func emphasize(word string, width int) string {
	runes := []rune(word)
	if len(runes) < 2 || len(runes) > maxSpacedRunes || strings.ContainsRune(word, ' ') {
		return word
	}
	if runewidth.StringWidth(word)+len(runes)-1 > width {
		return word
	}
	parts := make([]string, len(runes))
	for i, r := range runes {
		parts[i] = string(r)
	}
	return strings.Join(parts, " ")
}

func renderProgress(view app.CardView) string {
	if !view.Active {
		return ""
	}
	return fmt.Sprintf("%d / %d", view.Index, view.Total)
}

func renderControls(k keyMap) string {
	buttons := []struct {
		label   string
		enabled bool
	}{
		{"← Prev", k.Prev.Enabled()},
		{"Next →", k.Next.Enabled()},
		{"Reshuffle", k.Reshuffle.Enabled()},
	}
	parts := make([]string, 0, len(buttons))
	for _, btn := range buttons {
		style := buttonStyle
		if !btn.enabled {
			style = buttonDisabledStyle
		}
		parts = append(parts, style.Render(btn.label))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
