package memory

import (
	"context"
	"encoding/json"
	"os"
	"sync"

	"github.com/BHARGAV-S54/code-battle/internal/domain"
)

// StateStore is the flat-file/in-memory implementation of the state
// repository, used when no Postgres URL is configured. With a path set, every
// mutation is persisted to a JSON file (the local data.json mode) so restarts
// keep the arena.
type StateStore struct {
	mu          sync.Mutex
	contest     domain.ContestState
	teams       []domain.Team
	submissions []domain.Submission
	path        string
}

const defaultDurationMinutes = 60

// NewStateStore builds a purely in-memory store.
func NewStateStore() *StateStore {
	return &StateStore{
		contest: domain.ContestState{
			Status:          domain.StatusLocked,
			DurationMinutes: defaultDurationMinutes,
		},
	}
}

// NewFileStateStore loads (or initializes) a JSON-file-backed store at path.
func NewFileStateStore(path string) (*StateStore, error) {
	s := NewStateStore()
	s.path = path

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return s, nil
	}
	if err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return s, nil
	}

	var snap domain.ContestSnapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, err
	}
	s.contest = snap.Contest
	s.teams = snap.Teams
	s.submissions = snap.Submissions
	if s.contest.Status == "" {
		s.contest.Status = domain.StatusLocked
	}
	if s.contest.DurationMinutes == 0 {
		s.contest.DurationMinutes = defaultDurationMinutes
	}
	return s, nil
}

func (s *StateStore) GetState(_ context.Context) (domain.ContestSnapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked(), nil
}

func (s *StateStore) UpsertTeam(_ context.Context, team domain.Team) (domain.Team, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.teams {
		if s.teams[i].ID == team.ID {
			s.teams[i] = team
			s.saveLocked()
			return team, nil
		}
	}
	s.teams = append(s.teams, team)
	s.saveLocked()
	return team, nil
}

func (s *StateStore) DeleteTeam(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := s.teams[:0]
	for _, t := range s.teams {
		if t.ID != id {
			kept = append(kept, t)
		}
	}
	s.teams = kept
	s.saveLocked()
	return nil
}

func (s *StateStore) UpsertContest(_ context.Context, update domain.ContestUpdate) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if update.Status != nil {
		s.contest.Status = *update.Status
	}
	if update.StartTime != nil {
		s.contest.StartTime = *update.StartTime
	}
	if update.DurationMinutes != nil {
		s.contest.DurationMinutes = *update.DurationMinutes
	}
	s.saveLocked()
	return nil
}

func (s *StateStore) UpsertProblem(_ context.Context, problem domain.Problem) (domain.Problem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.contest.ProblemBank {
		if s.contest.ProblemBank[i].ID == problem.ID {
			s.contest.ProblemBank[i] = problem
			s.saveLocked()
			return problem, nil
		}
	}
	s.contest.ProblemBank = append(s.contest.ProblemBank, problem)
	s.saveLocked()
	return problem, nil
}

func (s *StateStore) DeleteProblem(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := s.contest.ProblemBank[:0]
	for _, p := range s.contest.ProblemBank {
		if p.ID != id {
			kept = append(kept, p)
		}
	}
	s.contest.ProblemBank = kept
	s.saveLocked()
	return nil
}

func (s *StateStore) AppendSubmission(_ context.Context, sub domain.Submission) (domain.Submission, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.submissions = append(s.submissions, sub)
	for i := range s.teams {
		if s.teams[i].ID != sub.TeamID {
			continue
		}
		if sub.Score > s.teams[i].TotalScore {
			s.teams[i].TotalScore = sub.Score
		}
		s.teams[i].LastSubmissionTime = sub.Timestamp
		break
	}
	s.saveLocked()
	return sub, nil
}

func (s *StateStore) IncrementViolation(_ context.Context, teamID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.teams {
		if s.teams[i].ID == teamID {
			s.teams[i].Violations++
			s.saveLocked()
			return nil
		}
	}
	return domain.ErrTeamNotFound
}

func (s *StateStore) ClearSubmissions(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.submissions = nil
	s.saveLocked()
	return nil
}

func (s *StateStore) ResetAll(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.teams = nil
	s.submissions = nil
	s.contest.Status = domain.StatusLocked
	s.contest.StartTime = 0
	s.saveLocked()
	return nil
}

// snapshotLocked copies all slices so callers never alias internal state.
func (s *StateStore) snapshotLocked() domain.ContestSnapshot {
	snap := domain.ContestSnapshot{Contest: s.contest}
	snap.Contest.ProblemBank = append([]domain.Problem(nil), s.contest.ProblemBank...)
	snap.Teams = append([]domain.Team(nil), s.teams...)
	snap.Submissions = append([]domain.Submission(nil), s.submissions...)
	return snap
}

// saveLocked persists the snapshot when a path is configured. Best effort,
// mirroring the original flat-file mode.
func (s *StateStore) saveLocked() {
	if s.path == "" {
		return
	}
	data, err := json.MarshalIndent(s.snapshotLocked(), "", "  ")
	if err != nil {
		return
	}
	_ = os.WriteFile(s.path, data, 0o644)
}
