package app_test

import (
	"context"
	"testing"
	"time"

	"github.com/BHARGAV-S54/code-battle/internal/app"
	"github.com/BHARGAV-S54/code-battle/internal/domain"
	"github.com/BHARGAV-S54/code-battle/internal/infra/memory"
)

func TestStartAssignsProblemsAndClearsStandings(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStateStore()
	clock := time.UnixMilli(1_700_000_000_000)
	contest := app.NewContestServiceWithClock(store, func() time.Time { return clock }, func(n int) int { return 0 })

	_, _ = store.UpsertTeam(ctx, domain.Team{ID: "team-alpha", Name: "Team Alpha", TotalScore: 77, Violations: 4, LastSubmissionTime: 123})
	_, _ = store.AppendSubmission(ctx, domain.Submission{ID: "sub-old", TeamID: "team-alpha", Score: 77})

	if err := contest.Start(ctx, 90); err != nil {
		t.Fatalf("start failed: %v", err)
	}

	snap, err := contest.State(ctx)
	if err != nil {
		t.Fatalf("state failed: %v", err)
	}
	if snap.Contest.Status != domain.StatusActive {
		t.Fatalf("expected ACTIVE, got %s", snap.Contest.Status)
	}
	if snap.Contest.StartTime != clock.UnixMilli() {
		t.Fatalf("expected startTime %d, got %d", clock.UnixMilli(), snap.Contest.StartTime)
	}
	if snap.Contest.DurationMinutes != 90 {
		t.Fatalf("expected duration 90, got %d", snap.Contest.DurationMinutes)
	}
	if len(snap.Submissions) != 0 {
		t.Fatalf("expected submission history cleared, got %d", len(snap.Submissions))
	}

	team := snap.Teams[0]
	// Configured bank is empty, so assignments come from the built-in bank.
	if team.AssignedProblemID != domain.DefaultBank()[0].ID {
		t.Fatalf("expected default bank assignment, got %q", team.AssignedProblemID)
	}
	if team.TotalScore != 0 || team.Violations != 0 || team.LastSubmissionTime != 0 {
		t.Fatalf("expected standings zeroed, got %+v", team)
	}
}

func TestStartRequiresLockedContest(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStateStore()
	contest := app.NewContestService(store)

	if err := contest.Start(ctx, 60); err != nil {
		t.Fatalf("first start failed: %v", err)
	}
	if err := contest.Start(ctx, 60); err != domain.ErrContestNotLocked {
		t.Fatalf("expected ErrContestNotLocked, got %v", err)
	}
}

func TestStartRejectsInvalidDuration(t *testing.T) {
	ctx := context.Background()
	contest := app.NewContestService(memory.NewStateStore())

	for _, minutes := range []int{0, -5} {
		if err := contest.Start(ctx, minutes); err != domain.ErrInvalidDuration {
			t.Fatalf("duration %d: expected ErrInvalidDuration, got %v", minutes, err)
		}
	}
}

func TestStopFinishesOnlyActiveContest(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStateStore()
	contest := app.NewContestService(store)

	// LOCKED: no-op.
	if err := contest.Stop(ctx); err != nil {
		t.Fatalf("stop while locked: %v", err)
	}
	snap, _ := contest.State(ctx)
	if snap.Contest.Status != domain.StatusLocked {
		t.Fatalf("expected still LOCKED, got %s", snap.Contest.Status)
	}

	if err := contest.Start(ctx, 60); err != nil {
		t.Fatalf("start failed: %v", err)
	}
	if err := contest.Stop(ctx); err != nil {
		t.Fatalf("stop failed: %v", err)
	}
	snap, _ = contest.State(ctx)
	if snap.Contest.Status != domain.StatusFinished {
		t.Fatalf("expected FINISHED, got %s", snap.Contest.Status)
	}
	if snap.Contest.StartTime == 0 {
		t.Fatalf("expected start time kept for review")
	}

	// FINISHED: stop stays a no-op, it never reactivates or re-finishes.
	if err := contest.Stop(ctx); err != nil {
		t.Fatalf("stop while finished: %v", err)
	}
}

func TestResetPreservesProblemBank(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStateStore()
	contest := app.NewContestService(store)

	problem, err := contest.AddProblem(ctx, domain.Problem{
		Title:       "Sum Two Numbers",
		Description: "Read two integers and print their sum.",
		TestCases:   []domain.TestCase{{ID: "t1", Input: "1 2", ExpectedOutput: "3"}},
	})
	if err != nil {
		t.Fatalf("add problem: %v", err)
	}
	_, _ = store.UpsertTeam(ctx, domain.Team{ID: "team-alpha", Name: "Team Alpha"})

	if err := contest.Start(ctx, 60); err != nil {
		t.Fatalf("start failed: %v", err)
	}
	if err := contest.Reset(ctx); err != nil {
		t.Fatalf("reset failed: %v", err)
	}

	snap, _ := contest.State(ctx)
	if snap.Contest.Status != domain.StatusLocked {
		t.Fatalf("expected LOCKED after reset, got %s", snap.Contest.Status)
	}
	if snap.Contest.StartTime != 0 {
		t.Fatalf("expected start time cleared, got %d", snap.Contest.StartTime)
	}
	if len(snap.Teams) != 0 || len(snap.Submissions) != 0 {
		t.Fatalf("expected teams and submissions cleared, got %d/%d", len(snap.Teams), len(snap.Submissions))
	}
	if len(snap.Contest.ProblemBank) != 1 || snap.Contest.ProblemBank[0].ID != problem.ID {
		t.Fatalf("expected problem bank preserved, got %+v", snap.Contest.ProblemBank)
	}
}

func TestRemainingClampsAtZero(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStateStore()
	now := time.UnixMilli(1_700_000_000_000)
	contest := app.NewContestServiceWithClock(store, func() time.Time { return now }, func(n int) int { return 0 })

	if err := contest.Start(ctx, 2); err != nil {
		t.Fatalf("start failed: %v", err)
	}

	snap, _ := contest.State(ctx)
	if got := contest.Remaining(snap.Contest); got != 2*time.Minute {
		t.Fatalf("expected 2m remaining, got %s", got)
	}

	now = now.Add(3 * time.Minute)
	if got := contest.Remaining(snap.Contest); got != 0 {
		t.Fatalf("expected 0 remaining past expiry, got %s", got)
	}
}

func TestExpireIfDueFinishesOnlyAfterDeadline(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStateStore()
	now := time.UnixMilli(1_700_000_000_000)
	contest := app.NewContestServiceWithClock(store, func() time.Time { return now }, func(n int) int { return 0 })

	if err := contest.Start(ctx, 1); err != nil {
		t.Fatalf("start failed: %v", err)
	}

	expired, err := contest.ExpireIfDue(ctx)
	if err != nil || expired {
		t.Fatalf("expected not yet expired, got expired=%v err=%v", expired, err)
	}

	now = now.Add(90 * time.Second)
	expired, err = contest.ExpireIfDue(ctx)
	if err != nil || !expired {
		t.Fatalf("expected expiry, got expired=%v err=%v", expired, err)
	}
	snap, _ := contest.State(ctx)
	if snap.Contest.Status != domain.StatusFinished {
		t.Fatalf("expected FINISHED, got %s", snap.Contest.Status)
	}

	// Already finished: nothing further to expire.
	expired, err = contest.ExpireIfDue(ctx)
	if err != nil || expired {
		t.Fatalf("expected no-op on finished contest, got expired=%v err=%v", expired, err)
	}
}

func TestAddProblemValidatesAndAssignsID(t *testing.T) {
	ctx := context.Background()
	contest := app.NewContestService(memory.NewStateStore())

	incomplete := []domain.Problem{
		{Description: "d", TestCases: []domain.TestCase{{ID: "t1"}}},
		{Title: "t", TestCases: []domain.TestCase{{ID: "t1"}}},
		{Title: "t", Description: "d"},
	}
	for i, p := range incomplete {
		if _, err := contest.AddProblem(ctx, p); err != domain.ErrProblemIncomplete {
			t.Fatalf("case %d: expected ErrProblemIncomplete, got %v", i, err)
		}
	}

	saved, err := contest.AddProblem(ctx, domain.Problem{
		Title:       "Reverse String",
		Description: "Print the input reversed.",
		TestCases:   []domain.TestCase{{ID: "t1", Input: "abc", ExpectedOutput: "cba"}},
	})
	if err != nil {
		t.Fatalf("add problem: %v", err)
	}
	if saved.ID == "" {
		t.Fatalf("expected generated problem id")
	}
}
