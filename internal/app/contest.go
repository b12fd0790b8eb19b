package app

import (
	"context"
	"math/rand"
	"strings"
	"time"

	"github.com/BHARGAV-S54/code-battle/internal/domain"
	"github.com/google/uuid"
)

// ContestService owns the LOCKED → ACTIVE → FINISHED lifecycle, the clock,
// and the problem bank.
type ContestService struct {
	repo StateRepository
	now  func() time.Time
	pick func(n int) int
}

func NewContestService(repo StateRepository) *ContestService {
	rnd := rand.New(rand.NewSource(time.Now().UnixNano()))
	return NewContestServiceWithClock(repo, time.Now, rnd.Intn)
}

// NewContestServiceWithClock allows deterministic time and problem draws in tests.
func NewContestServiceWithClock(repo StateRepository, now func() time.Time, pick func(n int) int) *ContestService {
	return &ContestService{repo: repo, now: now, pick: pick}
}

// State returns the full authoritative snapshot.
func (s *ContestService) State(ctx context.Context) (domain.ContestSnapshot, error) {
	return s.repo.GetState(ctx)
}

// Start launches the contest: status ACTIVE, clock set, every team assigned a
// uniform-random problem from the bank (the built-in default bank when the
// configured one is empty), scores and violation counters zeroed, submission
// history cleared. Fails with ErrContestNotLocked unless the contest is LOCKED.
func (s *ContestService) Start(ctx context.Context, durationMinutes int) error {
	if durationMinutes <= 0 {
		return domain.ErrInvalidDuration
	}

	snap, err := s.repo.GetState(ctx)
	if err != nil {
		return err
	}
	if snap.Contest.Status != domain.StatusLocked {
		return domain.ErrContestNotLocked
	}

	bank := snap.Contest.ProblemBank
	if len(bank) == 0 {
		// Seed the built-in bank so assignments reference stored problems.
		bank = domain.DefaultBank()
		for _, p := range bank {
			if _, err := s.repo.UpsertProblem(ctx, p); err != nil {
				return err
			}
		}
	}

	for _, team := range snap.Teams {
		team.AssignedProblemID = bank[s.pick(len(bank))].ID
		team.TotalScore = 0
		team.Violations = 0
		team.LastSubmissionTime = 0
		if _, err := s.repo.UpsertTeam(ctx, team); err != nil {
			return err
		}
	}

	if err := s.repo.ClearSubmissions(ctx); err != nil {
		return err
	}

	// Activate last so no submission can slip in mid-launch.
	status := domain.StatusActive
	startTime := s.now().UnixMilli()
	return s.repo.UpsertContest(ctx, domain.ContestUpdate{
		Status:          &status,
		StartTime:       &startTime,
		DurationMinutes: &durationMinutes,
	})
}

// Stop finishes an ACTIVE contest. Calling it while LOCKED or FINISHED is a
// no-op. Start time, assignments, scores, and submissions are kept for
// post-contest review.
func (s *ContestService) Stop(ctx context.Context) error {
	snap, err := s.repo.GetState(ctx)
	if err != nil {
		return err
	}
	if snap.Contest.Status != domain.StatusActive {
		return nil
	}
	status := domain.StatusFinished
	return s.repo.UpsertContest(ctx, domain.ContestUpdate{Status: &status})
}

// Reset force-returns the contest to LOCKED from any state and clears teams
// and submissions. The problem bank survives.
func (s *ContestService) Reset(ctx context.Context) error {
	return s.repo.ResetAll(ctx)
}

// Remaining reports the time left on the clock, clamped at zero. Expiry does
// not transition the contest by itself; see ExpireIfDue.
func (s *ContestService) Remaining(contest domain.ContestState) time.Duration {
	if contest.Status != domain.StatusActive || contest.StartTime == 0 {
		return 0
	}
	end := contest.StartTime + int64(contest.DurationMinutes)*60_000
	remaining := time.Duration(end-s.now().UnixMilli()) * time.Millisecond
	if remaining < 0 {
		return 0
	}
	return remaining
}

// ExpireIfDue stops the contest once the clock has run out. Only wired up when
// auto-finish is enabled in config; by default FINISHED is reached solely
// through an explicit Stop.
func (s *ContestService) ExpireIfDue(ctx context.Context) (bool, error) {
	snap, err := s.repo.GetState(ctx)
	if err != nil {
		return false, err
	}
	if snap.Contest.Status != domain.StatusActive || s.Remaining(snap.Contest) > 0 {
		return false, nil
	}
	status := domain.StatusFinished
	if err := s.repo.UpsertContest(ctx, domain.ContestUpdate{Status: &status}); err != nil {
		return false, err
	}
	return true, nil
}

// AddProblem validates and upserts a bank entry, assigning an id when missing.
func (s *ContestService) AddProblem(ctx context.Context, problem domain.Problem) (domain.Problem, error) {
	if strings.TrimSpace(problem.Title) == "" ||
		strings.TrimSpace(problem.Description) == "" ||
		len(problem.TestCases) == 0 {
		return domain.Problem{}, domain.ErrProblemIncomplete
	}
	if problem.ID == "" {
		problem.ID = "p-" + uuid.NewString()
	}
	return s.repo.UpsertProblem(ctx, problem)
}

func (s *ContestService) DeleteProblem(ctx context.Context, id string) error {
	return s.repo.DeleteProblem(ctx, id)
}
