package app

import (
	"context"

	"github.com/BHARGAV-S54/code-battle/internal/domain"
)

// StateRepository abstracts the shared authoritative store (in-memory,
// Postgres, etc). Every mutation is atomic per call; in particular
// IncrementViolation must never be a read-modify-write that can lose a
// concurrent update.
type StateRepository interface {
	GetState(ctx context.Context) (domain.ContestSnapshot, error)
	UpsertTeam(ctx context.Context, team domain.Team) (domain.Team, error)
	DeleteTeam(ctx context.Context, id string) error
	UpsertContest(ctx context.Context, update domain.ContestUpdate) error
	UpsertProblem(ctx context.Context, problem domain.Problem) (domain.Problem, error)
	DeleteProblem(ctx context.Context, id string) error
	// AppendSubmission records the submission and raises the team's score to
	// max(totalScore, submission.Score) in the same mutation.
	AppendSubmission(ctx context.Context, sub domain.Submission) (domain.Submission, error)
	IncrementViolation(ctx context.Context, teamID string) error
	ClearSubmissions(ctx context.Context) error
	// ResetAll clears teams and submissions and forces the contest back to
	// LOCKED while preserving the problem bank.
	ResetAll(ctx context.Context) error
}

// GuardCounters tracks session-scoped violation counts per team. A session
// begins when a monitor attaches (Reset) and the count is attributed to the
// next submission. Implementations: in-process map, Redis INCR.
type GuardCounters interface {
	Reset(ctx context.Context, teamID string) error
	Increment(ctx context.Context, teamID string) (int, error)
	Count(ctx context.Context, teamID string) (int, error)
}

// Judge is the external grading collaborator. It may fail or time out; the
// submission pipeline degrades such failures into an all-fail verdict.
type Judge interface {
	Evaluate(ctx context.Context, code string, problem domain.Problem, language string) (domain.Verdict, error)
}
