package tui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/table"

	"github.com/verte-zerg/wordcards/internal/model"
	"github.com/verte-zerg/wordcards/internal/stats"
)

func newHistoryTable() table.Model {
	columns := make([]table.Column, len(stats.Columns))
	for i, col := range stats.Columns {
		columns[i] = table.Column{Title: col.Title, Width: col.Width}
	}
	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(5),
	)
	return t
}

func (m *Model) refreshHistory() {
	if m.history == nil {
		m.historyErr = ""
		m.historyTable.SetRows(nil)
		return
	}
	report, err := stats.BuildReport(context.Background(), m.history, model.HistoryFilter{})
	if err != nil {
		m.historyErr = err.Error()
		m.log.Error().Err(err).Msg("failed to load review history")
		return
	}
	m.historyErr = ""
	cells := stats.Rows(report.Summaries, time.Local)
	rows := make([]table.Row, 0, len(cells))
	for _, c := range cells {
		rows = append(rows, table.Row(c))
	}
	m.historyTable.SetRows(rows)
	m.historyTable.GotoTop()
}
