package store

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/verte-zerg/wordcards/internal/model"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	st, err := Open(filepath.Join(t.TempDir(), "history.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() {
		_ = st.Close()
	})
	return st
}

func review(i int, set string, completed bool) model.ReviewRecord {
	start := time.Unix(0, 0).UTC().Add(time.Duration(i) * time.Minute)
	return model.ReviewRecord{
		SessionID:  fmt.Sprintf("session-%d", i),
		SetName:    set,
		Cards:      4,
		Seen:       2 + i%3,
		Reshuffles: i % 2,
		Completed:  completed,
		StartedAt:  start,
		EndedAt:    start.Add(30 * time.Second),
	}
}

func TestInsertAndListReviews(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()
	for i := 0; i < 3; i++ {
		if _, err := st.InsertReview(ctx, review(i, "Animals", i == 2)); err != nil {
			t.Fatalf("insert review: %v", err)
		}
	}
	if _, err := st.InsertReview(ctx, review(3, "Colors", false)); err != nil {
		t.Fatalf("insert review: %v", err)
	}

	all, err := st.ListReviews(ctx, model.HistoryFilter{})
	if err != nil {
		t.Fatalf("list reviews: %v", err)
	}
	if len(all) != 4 {
		t.Fatalf("expected 4 reviews, got %d", len(all))
	}
	if all[0].SessionID != "session-0" || all[3].SetName != "Colors" {
		t.Fatalf("unexpected order: %+v", all)
	}
	if !all[2].Completed || all[1].Completed {
		t.Fatalf("completed flag not preserved: %+v", all)
	}
	if !all[0].StartedAt.Equal(time.Unix(0, 0)) {
		t.Fatalf("unexpected start time: %v", all[0].StartedAt)
	}

	animals, err := st.ListReviews(ctx, model.HistoryFilter{SetName: "Animals", Last: 2})
	if err != nil {
		t.Fatalf("list reviews: %v", err)
	}
	if len(animals) != 2 || animals[0].SessionID != "session-1" || animals[1].SessionID != "session-2" {
		t.Fatalf("unexpected filtered reviews: %+v", animals)
	}

	since := time.Unix(0, 0).Add(2 * time.Minute)
	recent, err := st.ListReviews(ctx, model.HistoryFilter{Since: &since})
	if err != nil {
		t.Fatalf("list reviews: %v", err)
	}
	if len(recent) != 2 {
		t.Fatalf("expected 2 recent reviews, got %d", len(recent))
	}
}

func TestInsertReviewRejectsDuplicateSession(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()
	if _, err := st.InsertReview(ctx, review(1, "Animals", false)); err != nil {
		t.Fatalf("insert review: %v", err)
	}
	if _, err := st.InsertReview(ctx, review(1, "Animals", false)); err == nil {
		t.Fatalf("expected duplicate session id to fail")
	}
}

func TestLastReview(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()
	if _, ok, err := st.LastReview(ctx, "Animals"); err != nil || ok {
		t.Fatalf("expected no review yet, ok=%v err=%v", ok, err)
	}
	for i := 0; i < 3; i++ {
		if _, err := st.InsertReview(ctx, review(i, "Animals", false)); err != nil {
			t.Fatalf("insert review: %v", err)
		}
	}
	rec, ok, err := st.LastReview(ctx, "Animals")
	if err != nil || !ok {
		t.Fatalf("expected last review, ok=%v err=%v", ok, err)
	}
	if rec.SessionID != "session-2" {
		t.Fatalf("unexpected last review: %+v", rec)
	}
}

func TestSubSecondOrdering(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()
	base := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)
	first := review(0, "Animals", false)
	first.SessionID = "a"
	first.EndedAt = base.Add(500 * time.Millisecond)
	second := review(1, "Animals", false)
	second.SessionID = "b"
	second.EndedAt = base.Add(550 * time.Millisecond)
	for _, rec := range []model.ReviewRecord{first, second} {
		if _, err := st.InsertReview(ctx, rec); err != nil {
			t.Fatalf("insert review: %v", err)
		}
	}

	last, err := st.ListReviews(ctx, model.HistoryFilter{Last: 1})
	if err != nil {
		t.Fatalf("list reviews: %v", err)
	}
	if len(last) != 1 || last[0].SessionID != "b" {
		t.Fatalf("expected review b as the latest, got %+v", last)
	}

	rec, ok, err := st.LastReview(ctx, "Animals")
	if err != nil || !ok || rec.SessionID != "b" {
		t.Fatalf("expected last review b, ok=%v err=%v rec=%+v", ok, err, rec)
	}
	if !rec.EndedAt.Equal(second.EndedAt) {
		t.Fatalf("end time not preserved: %v", rec.EndedAt)
	}

	since := base.Add(520 * time.Millisecond)
	recent, err := st.ListReviews(ctx, model.HistoryFilter{Since: &since})
	if err != nil {
		t.Fatalf("list reviews: %v", err)
	}
	if len(recent) != 1 || recent[0].SessionID != "b" {
		t.Fatalf("since boundary picked wrong rows: %+v", recent)
	}
}
