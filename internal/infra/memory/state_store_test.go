package memory

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/BHARGAV-S54/code-battle/internal/domain"
)

func TestAppendSubmissionKeepsBestScore(t *testing.T) {
	ctx := context.Background()
	store := NewStateStore()
	_, _ = store.UpsertTeam(ctx, domain.Team{ID: "team-alpha", Name: "Team Alpha"})

	attempts := []struct {
		score int
		want  int
	}{
		{40, 40},
		{90, 90},
		{20, 90},
	}
	for i, attempt := range attempts {
		sub := domain.Submission{ID: "s", TeamID: "team-alpha", Score: attempt.score, Timestamp: int64(i + 1)}
		if _, err := store.AppendSubmission(ctx, sub); err != nil {
			t.Fatalf("append: %v", err)
		}
		snap, _ := store.GetState(ctx)
		if snap.Teams[0].TotalScore != attempt.want {
			t.Fatalf("attempt %d: expected score %d, got %d", i, attempt.want, snap.Teams[0].TotalScore)
		}
		if snap.Teams[0].LastSubmissionTime != int64(i+1) {
			t.Fatalf("attempt %d: lastSubmissionTime not advanced", i)
		}
	}
}

func TestIncrementViolationUnknownTeam(t *testing.T) {
	store := NewStateStore()
	if err := store.IncrementViolation(context.Background(), "ghost"); err != domain.ErrTeamNotFound {
		t.Fatalf("expected ErrTeamNotFound, got %v", err)
	}
}

func TestResetAllKeepsBankAndDuration(t *testing.T) {
	ctx := context.Background()
	store := NewStateStore()

	_, _ = store.UpsertProblem(ctx, domain.Problem{ID: "p1", Title: "FizzBuzz"})
	_, _ = store.UpsertTeam(ctx, domain.Team{ID: "team-alpha"})
	_, _ = store.AppendSubmission(ctx, domain.Submission{ID: "s1", TeamID: "team-alpha"})
	status := domain.StatusActive
	start := int64(12345)
	duration := 90
	_ = store.UpsertContest(ctx, domain.ContestUpdate{Status: &status, StartTime: &start, DurationMinutes: &duration})

	if err := store.ResetAll(ctx); err != nil {
		t.Fatalf("reset: %v", err)
	}

	snap, _ := store.GetState(ctx)
	if snap.Contest.Status != domain.StatusLocked || snap.Contest.StartTime != 0 {
		t.Fatalf("expected locked contest without start time, got %+v", snap.Contest)
	}
	if snap.Contest.DurationMinutes != 90 {
		t.Fatalf("expected duration kept, got %d", snap.Contest.DurationMinutes)
	}
	if len(snap.Contest.ProblemBank) != 1 {
		t.Fatalf("expected problem bank kept, got %d", len(snap.Contest.ProblemBank))
	}
	if len(snap.Teams) != 0 || len(snap.Submissions) != 0 {
		t.Fatalf("expected teams and submissions cleared")
	}
}

func TestFileStateStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "data.json")

	store, err := NewFileStateStore(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	_, _ = store.UpsertTeam(ctx, domain.Team{ID: "team-alpha", Name: "Team Alpha", TotalScore: 55})
	_, _ = store.UpsertProblem(ctx, domain.Problem{ID: "p1", Title: "FizzBuzz"})
	status := domain.StatusActive
	_ = store.UpsertContest(ctx, domain.ContestUpdate{Status: &status})

	reopened, err := NewFileStateStore(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	snap, _ := reopened.GetState(ctx)
	if snap.Contest.Status != domain.StatusActive {
		t.Fatalf("expected persisted status, got %s", snap.Contest.Status)
	}
	if len(snap.Teams) != 1 || snap.Teams[0].TotalScore != 55 {
		t.Fatalf("expected persisted team, got %+v", snap.Teams)
	}
	if len(snap.Contest.ProblemBank) != 1 {
		t.Fatalf("expected persisted bank, got %d", len(snap.Contest.ProblemBank))
	}
}

func TestSnapshotDoesNotAliasInternalState(t *testing.T) {
	ctx := context.Background()
	store := NewStateStore()
	_, _ = store.UpsertTeam(ctx, domain.Team{ID: "team-alpha", Name: "Team Alpha"})

	snap, _ := store.GetState(ctx)
	snap.Teams[0].TotalScore = 999

	fresh, _ := store.GetState(ctx)
	if fresh.Teams[0].TotalScore != 0 {
		t.Fatalf("snapshot mutation leaked into the store")
	}
}
