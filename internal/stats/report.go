// Package stats contains review history aggregation and reporting.
package stats

import (
	"context"

	"github.com/verte-zerg/wordcards/internal/model"
)

// ReviewLister is the part of the history store needed for reports.
type ReviewLister interface {
	ListReviews(ctx context.Context, filter model.HistoryFilter) ([]model.ReviewRecord, error)
}

// Report contains precomputed data for history rendering.
type Report struct {
	Reviews   []model.ReviewRecord
	Summaries []model.SetSummary
}

// BuildReport loads reviews matching filter and aggregates them.
func BuildReport(ctx context.Context, st ReviewLister, filter model.HistoryFilter) (Report, error) {
	reviews, err := st.ListReviews(ctx, filter)
	if err != nil {
		return Report{}, err
	}
	return Report{
		Reviews:   reviews,
		Summaries: Summarize(reviews),
	}, nil
}
