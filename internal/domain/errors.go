package domain

import "errors"

var (
	// ErrContestNotActive is returned when a submission arrives outside an ACTIVE contest.
	ErrContestNotActive = errors.New("contest is not active")
	// ErrContestNotLocked is returned when start is called on a running or finished contest.
	ErrContestNotLocked = errors.New("contest is not locked")
	// ErrInvalidDuration rejects non-positive contest durations.
	ErrInvalidDuration = errors.New("duration must be a positive number of minutes")
	// ErrTeamNotFound indicates an unknown team id.
	ErrTeamNotFound = errors.New("team not found")
	// ErrProblemNotFound indicates an unknown problem id.
	ErrProblemNotFound = errors.New("problem not found")
	// ErrEmptyTeamName rejects team registration without a name.
	ErrEmptyTeamName = errors.New("team name must not be empty")
	// ErrEmptyPassword rejects team registration without a password.
	ErrEmptyPassword = errors.New("team password must not be empty")
	// ErrInvalidCredentials covers both unknown identifiers and password mismatches.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrProblemIncomplete rejects problems missing a title, description, or test cases.
	ErrProblemIncomplete = errors.New("problem needs a title, a description, and at least one test case")
	// ErrClipboardBlocked signals a suppressed clipboard action. It is a guard
	// signal, not a violation: the action never completes and nothing is counted.
	ErrClipboardBlocked = errors.New("clipboard access is blocked during the contest")
	// ErrGuardDetached is returned when violations are reported without an attached session.
	ErrGuardDetached = errors.New("session guard is not attached")
)
