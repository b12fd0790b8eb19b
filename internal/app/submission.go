package app

import (
	"context"
	"time"

	"github.com/BHARGAV-S54/code-battle/internal/domain"
	"github.com/BHARGAV-S54/code-battle/internal/metrics"
	"github.com/google/uuid"
)

const degradedFeedback = "The AI evaluator encountered an error while processing your logic. Please check your syntax and try again."

// SubmissionService grades submissions through the Judge collaborator and
// folds verdicts into contest state.
type SubmissionService struct {
	repo     StateRepository
	judge    Judge
	sessions GuardCounters
	now      func() time.Time
	newID    func() string
}

// NewSubmissionService wires the pipeline. sessions may be nil when no
// proctoring is deployed; submissions then carry a zero violation count.
func NewSubmissionService(repo StateRepository, judge Judge, sessions GuardCounters) *SubmissionService {
	return &SubmissionService{
		repo:     repo,
		judge:    judge,
		sessions: sessions,
		now:      time.Now,
		newID:    func() string { return "sub-" + uuid.NewString() },
	}
}

// NewSubmissionServiceWithClock is test-only for deterministic ids and timestamps.
func NewSubmissionServiceWithClock(repo StateRepository, judge Judge, sessions GuardCounters, now func() time.Time, newID func() string) *SubmissionService {
	s := NewSubmissionService(repo, judge, sessions)
	s.now = now
	s.newID = newID
	return s
}

// Submit grades the code and appends a Submission. A judge failure never
// surfaces to the caller: the attempt is recorded with the degraded verdict
// instead of being dropped or left pending. The current session's violation
// count (not the team's lifetime counter) is attached to the record.
func (s *SubmissionService) Submit(ctx context.Context, teamID, problemID, code, language string) (domain.Submission, error) {
	snap, err := s.repo.GetState(ctx)
	if err != nil {
		return domain.Submission{}, err
	}
	if snap.Contest.Status != domain.StatusActive {
		return domain.Submission{}, domain.ErrContestNotActive
	}

	problem, ok := findProblem(snap.Contest.ProblemBank, problemID)
	if !ok {
		return domain.Submission{}, domain.ErrProblemNotFound
	}
	if !teamExists(snap.Teams, teamID) {
		return domain.Submission{}, domain.ErrTeamNotFound
	}

	verdict, outcome := s.evaluate(ctx, code, problem, language)

	sub := domain.Submission{
		ID:                s.newID(),
		TeamID:            teamID,
		ProblemID:         problemID,
		Code:              code,
		Language:          language,
		Timestamp:         s.now().UnixMilli(),
		Results:           verdict.Results,
		Score:             verdict.TotalScore,
		AIScore:           verdict.AIScore,
		AIFeedback:        verdict.AIFeedback,
		ProctorViolations: s.sessionViolations(ctx, teamID),
	}

	saved, err := s.repo.AppendSubmission(ctx, sub)
	if err != nil {
		return domain.Submission{}, err
	}
	metrics.SubmissionsTotal.WithLabelValues(outcome).Inc()
	return saved, nil
}

// Run is the dry-run path: same judge contract and degraded fallback, but no
// Submission record and no team update.
func (s *SubmissionService) Run(ctx context.Context, code string, problem domain.Problem, language string) (domain.Verdict, error) {
	snap, err := s.repo.GetState(ctx)
	if err != nil {
		return domain.Verdict{}, err
	}
	if snap.Contest.Status != domain.StatusActive {
		return domain.Verdict{}, domain.ErrContestNotActive
	}
	verdict, _ := s.evaluate(ctx, code, problem, language)
	return verdict, nil
}

func (s *SubmissionService) evaluate(ctx context.Context, code string, problem domain.Problem, language string) (domain.Verdict, string) {
	verdict, err := s.judge.Evaluate(ctx, code, problem, language)
	if err != nil {
		metrics.JudgeFailuresTotal.Inc()
		return degradedVerdict(problem), "degraded"
	}
	return verdict, "graded"
}

func (s *SubmissionService) sessionViolations(ctx context.Context, teamID string) int {
	if s.sessions == nil {
		return 0
	}
	count, err := s.sessions.Count(ctx, teamID)
	if err != nil {
		return 0
	}
	return count
}

// degradedVerdict is the all-fail fallback synthesized when the judge
// collaborator is unreachable or returns garbage.
func degradedVerdict(problem domain.Problem) domain.Verdict {
	results := make([]domain.TestResult, 0, len(problem.TestCases))
	for _, tc := range problem.TestCases {
		results = append(results, domain.TestResult{
			TestCaseID:   tc.ID,
			Passed:       false,
			ActualOutput: "Execution Engine Timeout",
			Error:        "Internal Processing Error",
		})
	}
	return domain.Verdict{
		Results:    results,
		TotalScore: 0,
		AIScore:    0,
		AIFeedback: degradedFeedback,
	}
}

func findProblem(bank []domain.Problem, id string) (domain.Problem, bool) {
	for _, p := range bank {
		if p.ID == id {
			return p, true
		}
	}
	return domain.Problem{}, false
}

func teamExists(teams []domain.Team, id string) bool {
	for _, t := range teams {
		if t.ID == id {
			return true
		}
	}
	return false
}
