package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/BHARGAV-S54/code-battle/internal/domain"
	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"
)

// StateStore is the Postgres implementation of the state repository. The
// schema keeps problems and submissions as JSONB documents and teams as
// columns, with the contest clock in a singleton row (id=1).
type StateStore struct {
	pool *pgxpool.Pool
}

func NewStateStore(pool *pgxpool.Pool) *StateStore {
	return &StateStore{pool: pool}
}

func (s *StateStore) GetState(ctx context.Context) (domain.ContestSnapshot, error) {
	var snap domain.ContestSnapshot

	teams, err := s.loadTeams(ctx)
	if err != nil {
		return snap, err
	}
	snap.Teams = teams

	subs, err := s.loadSubmissions(ctx)
	if err != nil {
		return snap, err
	}
	snap.Submissions = subs

	contest, err := s.loadContest(ctx)
	if err != nil {
		return snap, err
	}
	snap.Contest = contest

	return snap, nil
}

func (s *StateStore) loadTeams(ctx context.Context) ([]domain.Team, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, name, password, total_score, violations, assigned_problem_id, last_submission_time
		FROM teams ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("load teams: %w", err)
	}
	defer rows.Close()

	var teams []domain.Team
	for rows.Next() {
		var (
			t         domain.Team
			assigned  *string
			lastSubmt *int64
		)
		if err := rows.Scan(&t.ID, &t.Name, &t.Password, &t.TotalScore, &t.Violations, &assigned, &lastSubmt); err != nil {
			return nil, fmt.Errorf("scan team: %w", err)
		}
		if assigned != nil {
			t.AssignedProblemID = *assigned
		}
		if lastSubmt != nil {
			t.LastSubmissionTime = *lastSubmt
		}
		t.Members = []string{}
		teams = append(teams, t)
	}
	return teams, rows.Err()
}

func (s *StateStore) loadSubmissions(ctx context.Context) ([]domain.Submission, error) {
	rows, err := s.pool.Query(ctx, `SELECT data FROM submissions ORDER BY (data->>'timestamp')::bigint`)
	if err != nil {
		return nil, fmt.Errorf("load submissions: %w", err)
	}
	defer rows.Close()

	var subs []domain.Submission
	for rows.Next() {
		var raw []byte
		if err := rows.Scan(&raw); err != nil {
			return nil, fmt.Errorf("scan submission: %w", err)
		}
		var sub domain.Submission
		if err := json.Unmarshal(raw, &sub); err != nil {
			return nil, fmt.Errorf("unmarshal submission: %w", err)
		}
		subs = append(subs, sub)
	}
	return subs, rows.Err()
}

func (s *StateStore) loadContest(ctx context.Context) (domain.ContestState, error) {
	contest := domain.ContestState{Status: domain.StatusLocked, DurationMinutes: 60}

	var (
		status    string
		startTime *int64
	)
	err := s.pool.QueryRow(ctx, `SELECT status, start_time, duration_minutes FROM contest_state WHERE id = 1`).
		Scan(&status, &startTime, &contest.DurationMinutes)
	if err != nil && err != pgx.ErrNoRows {
		return contest, fmt.Errorf("load contest: %w", err)
	}
	if status != "" {
		contest.Status = domain.ContestStatus(status)
	}
	if startTime != nil {
		contest.StartTime = *startTime
	}

	rows, err := s.pool.Query(ctx, `SELECT data FROM problems ORDER BY id`)
	if err != nil {
		return contest, fmt.Errorf("load problems: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var raw []byte
		if err := rows.Scan(&raw); err != nil {
			return contest, fmt.Errorf("scan problem: %w", err)
		}
		var p domain.Problem
		if err := json.Unmarshal(raw, &p); err != nil {
			return contest, fmt.Errorf("unmarshal problem: %w", err)
		}
		contest.ProblemBank = append(contest.ProblemBank, p)
	}
	return contest, rows.Err()
}

func (s *StateStore) UpsertTeam(ctx context.Context, team domain.Team) (domain.Team, error) {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO teams (id, name, password, total_score, violations, assigned_problem_id, last_submission_time)
		VALUES ($1, $2, $3, $4, $5, NULLIF($6, ''), NULLIF($7, 0))
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name,
			password = EXCLUDED.password,
			total_score = EXCLUDED.total_score,
			violations = EXCLUDED.violations,
			assigned_problem_id = EXCLUDED.assigned_problem_id,
			last_submission_time = EXCLUDED.last_submission_time`,
		team.ID, team.Name, team.Password, team.TotalScore, team.Violations, team.AssignedProblemID, team.LastSubmissionTime)
	if err != nil {
		return domain.Team{}, fmt.Errorf("upsert team: %w", err)
	}
	return team, nil
}

func (s *StateStore) DeleteTeam(ctx context.Context, id string) error {
	if _, err := s.pool.Exec(ctx, `DELETE FROM teams WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete team: %w", err)
	}
	return nil
}

// UpsertContest merges only the fields the caller set; COALESCE keeps the
// stored value for every nil field.
func (s *StateStore) UpsertContest(ctx context.Context, update domain.ContestUpdate) error {
	var status *string
	if update.Status != nil {
		v := string(*update.Status)
		status = &v
	}
	_, err := s.pool.Exec(ctx, `
		INSERT INTO contest_state (id, status, start_time, duration_minutes)
		VALUES (1, COALESCE($1, 'LOCKED'), $2, COALESCE($3, 60))
		ON CONFLICT (id) DO UPDATE SET
			status = COALESCE($1, contest_state.status),
			start_time = COALESCE($2, contest_state.start_time),
			duration_minutes = COALESCE($3, contest_state.duration_minutes)`,
		status, update.StartTime, update.DurationMinutes)
	if err != nil {
		return fmt.Errorf("upsert contest: %w", err)
	}
	return nil
}

func (s *StateStore) UpsertProblem(ctx context.Context, problem domain.Problem) (domain.Problem, error) {
	data, err := json.Marshal(problem)
	if err != nil {
		return domain.Problem{}, fmt.Errorf("marshal problem: %w", err)
	}
	_, err = s.pool.Exec(ctx, `
		INSERT INTO problems (id, data) VALUES ($1, $2)
		ON CONFLICT (id) DO UPDATE SET data = EXCLUDED.data`,
		problem.ID, data)
	if err != nil {
		return domain.Problem{}, fmt.Errorf("upsert problem: %w", err)
	}
	return problem, nil
}

func (s *StateStore) DeleteProblem(ctx context.Context, id string) error {
	if _, err := s.pool.Exec(ctx, `DELETE FROM problems WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete problem: %w", err)
	}
	return nil
}

// AppendSubmission inserts the record and raises the team's score in one
// transaction; GREATEST keeps scoring monotonic under concurrent submits.
func (s *StateStore) AppendSubmission(ctx context.Context, sub domain.Submission) (domain.Submission, error) {
	data, err := json.Marshal(sub)
	if err != nil {
		return domain.Submission{}, fmt.Errorf("marshal submission: %w", err)
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return domain.Submission{}, fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx,
		`INSERT INTO submissions (id, team_id, data) VALUES ($1, $2, $3)`,
		sub.ID, sub.TeamID, data); err != nil {
		return domain.Submission{}, fmt.Errorf("insert submission: %w", err)
	}
	if _, err := tx.Exec(ctx,
		`UPDATE teams SET total_score = GREATEST(total_score, $1), last_submission_time = $2 WHERE id = $3`,
		sub.Score, sub.Timestamp, sub.TeamID); err != nil {
		return domain.Submission{}, fmt.Errorf("update team score: %w", err)
	}
	if err := tx.Commit(ctx); err != nil {
		return domain.Submission{}, fmt.Errorf("commit: %w", err)
	}
	return sub, nil
}

// IncrementViolation is a single atomic UPDATE; two racing increments for the
// same team never lose a count.
func (s *StateStore) IncrementViolation(ctx context.Context, teamID string) error {
	tag, err := s.pool.Exec(ctx, `UPDATE teams SET violations = violations + 1 WHERE id = $1`, teamID)
	if err != nil {
		return fmt.Errorf("increment violation: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrTeamNotFound
	}
	return nil
}

func (s *StateStore) ClearSubmissions(ctx context.Context) error {
	if _, err := s.pool.Exec(ctx, `DELETE FROM submissions`); err != nil {
		return fmt.Errorf("clear submissions: %w", err)
	}
	return nil
}

func (s *StateStore) ResetAll(ctx context.Context) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM submissions`); err != nil {
		return fmt.Errorf("reset submissions: %w", err)
	}
	if _, err := tx.Exec(ctx, `DELETE FROM teams`); err != nil {
		return fmt.Errorf("reset teams: %w", err)
	}
	if _, err := tx.Exec(ctx, `UPDATE contest_state SET status = 'LOCKED', start_time = NULL WHERE id = 1`); err != nil {
		return fmt.Errorf("reset contest: %w", err)
	}
	return tx.Commit(ctx)
}
