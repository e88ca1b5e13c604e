package stats

import (
	"bytes"
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/verte-zerg/wordcards/internal/model"
	"github.com/verte-zerg/wordcards/internal/store"
)

func TestBuildReport(t *testing.T) {
	dir := t.TempDir()
	st, err := store.Open(filepath.Join(dir, "history.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() {
		_ = st.Close()
	})

	ctx := context.Background()
	sets := []string{"colors", "Animals", "Animals"}
	for i, set := range sets {
		start := time.Unix(0, 0).Add(time.Duration(i) * time.Minute)
		rec := model.ReviewRecord{
			SessionID: fmt.Sprintf("s%d", i),
			SetName:   set,
			Cards:     3,
			Seen:      3,
			Completed: i != 1,
			StartedAt: start,
			EndedAt:   start.Add(30 * time.Second),
		}
		if _, err := st.InsertReview(ctx, rec); err != nil {
			t.Fatalf("insert review: %v", err)
		}
	}

	report, err := BuildReport(ctx, st, model.HistoryFilter{})
	if err != nil {
		t.Fatalf("build report: %v", err)
	}
	if len(report.Reviews) != 3 {
		t.Fatalf("expected 3 reviews, got %d", len(report.Reviews))
	}
	if len(report.Summaries) != 2 {
		t.Fatalf("expected 2 summaries, got %d", len(report.Summaries))
	}
	animals := report.Summaries[0]
	if animals.SetName != "Animals" || animals.Reviews != 2 || animals.Completed != 1 || animals.CardsSeen != 6 {
		t.Fatalf("unexpected Animals summary: %+v", animals)
	}
	if report.Summaries[1].SetName != "colors" {
		t.Fatalf("expected case-insensitive order, got %+v", report.Summaries)
	}

	var buf bytes.Buffer
	if err := RenderHistory(&buf, report.Summaries, time.UTC); err != nil {
		t.Fatalf("render history: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"Set", "Animals", "50%", "colors", "100%", "1970-01-01 00:02"} {
		if !strings.Contains(out, want) {
			t.Fatalf("history output missing %q:\n%s", want, out)
		}
	}
}

func TestRenderHistoryEmpty(t *testing.T) {
	var buf bytes.Buffer
	if err := RenderHistory(&buf, nil, time.UTC); err != nil {
		t.Fatalf("render history: %v", err)
	}
	if !strings.Contains(buf.String(), "No reviews") {
		t.Fatalf("unexpected output: %q", buf.String())
	}
}
