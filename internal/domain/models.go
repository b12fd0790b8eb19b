package domain

// UserRole distinguishes the single admin identity from team logins.
type UserRole string

const (
	RoleAdmin UserRole = "ADMIN"
	RoleTeam  UserRole = "TEAM"
)

// ContestStatus enumerates the contest lifecycle states.
type ContestStatus string

const (
	StatusLocked   ContestStatus = "LOCKED"
	StatusActive   ContestStatus = "ACTIVE"
	StatusFinished ContestStatus = "FINISHED"
)

// Difficulty labels for problems.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "Easy"
	DifficultyMedium Difficulty = "Medium"
	DifficultyHard   Difficulty = "Hard"
)

// TestCase is a single input/expected-output pair of a problem.
type TestCase struct {
	ID             string `json:"id"`
	Input          string `json:"input"`
	ExpectedOutput string `json:"expectedOutput"`
}

// Problem is one entry of the problem bank. A problem referenced by a
// submission is treated as immutable for grading; later edits only affect
// future judge calls.
type Problem struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Difficulty  Difficulty `json:"difficulty"`
	Description string     `json:"description"`
	Constraints []string   `json:"constraints"`
	TestCases   []TestCase `json:"testCases"`
}

// Team is an enrolled team. ID is derived from the name (lowercase,
// whitespace replaced by hyphens), so names differing only by case or
// whitespace map to the same record; the normalized name is the registry's
// uniqueness key.
type Team struct {
	ID                 string   `json:"id"`
	Name               string   `json:"name"`
	Password           string   `json:"password,omitempty"`
	Members            []string `json:"members"`
	AssignedProblemID  string   `json:"assignedProblemId,omitempty"`
	TotalScore         int      `json:"totalScore"`
	LastSubmissionTime int64    `json:"lastSubmissionTime,omitempty"`
	Violations         int      `json:"violations"`
}

// TestResult is the judge's outcome for a single test case.
type TestResult struct {
	TestCaseID   string `json:"testCaseId"`
	Passed       bool   `json:"passed"`
	ActualOutput string `json:"actualOutput"`
	Error        string `json:"error,omitempty"`
}

// Verdict is the judge collaborator's output for one evaluation.
type Verdict struct {
	Results    []TestResult `json:"results"`
	TotalScore int          `json:"totalScore"`
	AIScore    int          `json:"aiScore"`
	AIFeedback string       `json:"aiFeedback"`
}

// Submission is an append-only record of one graded attempt. Timestamps are
// epoch milliseconds to match the polling clients' wire format.
type Submission struct {
	ID                string       `json:"id"`
	TeamID            string       `json:"teamId"`
	ProblemID         string       `json:"problemId"`
	Code              string       `json:"code"`
	Language          string       `json:"language"`
	Timestamp         int64        `json:"timestamp"`
	Results           []TestResult `json:"results"`
	Score             int          `json:"score"`
	AIScore           int          `json:"aiScore,omitempty"`
	AIFeedback        string       `json:"aiFeedback,omitempty"`
	ProctorViolations int          `json:"proctorViolations,omitempty"`
}

// ContestState is the shared clock and problem bank. StartTime is set only on
// the transition to ACTIVE and survives FINISHED so elapsed time stays
// computable for post-contest review.
type ContestState struct {
	Status          ContestStatus `json:"status"`
	StartTime       int64         `json:"startTime,omitempty"`
	DurationMinutes int           `json:"durationMinutes"`
	ProblemBank     []Problem     `json:"problemBank"`
}

// ContestSnapshot is the full authoritative state a client reconciles against.
type ContestSnapshot struct {
	Contest     ContestState `json:"contest"`
	Teams       []Team       `json:"teams"`
	Submissions []Submission `json:"submissions"`
}

// ContestUpdate is a partial-field contest write. Nil fields are left
// untouched by the store, so callers state exactly which fields they are
// authoritative for.
type ContestUpdate struct {
	Status          *ContestStatus
	StartTime       *int64
	DurationMinutes *int
}

// Identity is a resolved login.
type Identity struct {
	ID   string   `json:"id"`
	Role UserRole `json:"role"`
	Name string   `json:"name"`
}

// ViolationKind classifies proctoring events.
type ViolationKind string

const (
	ViolationFullscreenExit  ViolationKind = "FULLSCREEN_EXIT"
	ViolationFocusLoss       ViolationKind = "FOCUS_LOSS"
	ViolationDevtoolsAttempt ViolationKind = "DEVTOOLS_ATTEMPT"
	ViolationClipboardCopy   ViolationKind = "CLIPBOARD_COPY"
	ViolationClipboardPaste  ViolationKind = "CLIPBOARD_PASTE"
)
