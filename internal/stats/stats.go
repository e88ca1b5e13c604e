// Package stats contains review history aggregation and reporting.
package stats

import (
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/verte-zerg/wordcards/internal/model"
)

// Summarize aggregates review records per set, sorted case-insensitively by name.
func Summarize(records []model.ReviewRecord) []model.SetSummary {
	bySet := map[string]*model.SetSummary{}
	for _, rec := range records {
		sum, ok := bySet[rec.SetName]
		if !ok {
			sum = &model.SetSummary{SetName: rec.SetName}
			bySet[rec.SetName] = sum
		}
		sum.Reviews++
		if rec.Completed {
			sum.Completed++
		}
		sum.CardsSeen += rec.Seen
		if rec.EndedAt.After(sum.LastReviewed) {
			sum.LastReviewed = rec.EndedAt
		}
	}
	out := make([]model.SetSummary, 0, len(bySet))
	for _, sum := range bySet {
		out = append(out, *sum)
	}
	sort.Slice(out, func(i, j int) bool {
		li, lj := strings.ToLower(out[i].SetName), strings.ToLower(out[j].SetName)
		if li == lj {
			return out[i].SetName < out[j].SetName
		}
		return li < lj
	})
	return out
}

// CompletionRate returns the share of reviews that reached the last card.
func CompletionRate(sum model.SetSummary) float64 {
	if sum.Reviews == 0 {
		return 0
	}
	return float64(sum.Completed) / float64(sum.Reviews)
}

// Rows formats summaries as table cells in Columns order.
func Rows(summaries []model.SetSummary, loc *time.Location) [][]string {
	if loc == nil {
		loc = time.Local
	}
	rows := make([][]string, 0, len(summaries))
	for _, sum := range summaries {
		last := "-"
		if !sum.LastReviewed.IsZero() {
			last = sum.LastReviewed.In(loc).Format("2006-01-02 15:04")
		}
		rows = append(rows, []string{
			sum.SetName,
			strconv.Itoa(sum.Reviews),
			fmt.Sprintf("%.0f%%", CompletionRate(sum)*100),
			strconv.Itoa(sum.CardsSeen),
			last,
		})
	}
	return rows
}

// RenderHistory writes the per-set history table.
func RenderHistory(w io.Writer, summaries []model.SetSummary, loc *time.Location) error {
	if len(summaries) == 0 {
		_, err := fmt.Fprintln(w, "No reviews recorded yet.")
		return err
	}
	lines := layoutTable(Columns, Rows(summaries, loc))
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}
