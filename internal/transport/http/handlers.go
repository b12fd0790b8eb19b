package http

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/BHARGAV-S54/code-battle/internal/app"
	"github.com/BHARGAV-S54/code-battle/internal/domain"
	"github.com/go-chi/chi/v5"
)

// API bundles the handlers over the core services.
type API struct {
	contest     *app.ContestService
	registry    *app.Registry
	submissions *app.SubmissionService
	repo        app.StateRepository
}

func NewAPI(contest *app.ContestService, registry *app.Registry, submissions *app.SubmissionService, repo app.StateRepository) *API {
	return &API{contest: contest, registry: registry, submissions: submissions, repo: repo}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("write response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

// writeDomainError maps the error taxonomy onto HTTP statuses: validation →
// 400, preconditions → 409, lookups → 404, store failures → 500.
func writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidDuration),
		errors.Is(err, domain.ErrEmptyTeamName),
		errors.Is(err, domain.ErrEmptyPassword),
		errors.Is(err, domain.ErrProblemIncomplete):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrContestNotActive),
		errors.Is(err, domain.ErrContestNotLocked):
		writeError(w, http.StatusConflict, err.Error())
	case errors.Is(err, domain.ErrTeamNotFound),
		errors.Is(err, domain.ErrProblemNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	default:
		log.Printf("internal error: %v", err)
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}

func (a *API) State(w http.ResponseWriter, r *http.Request) {
	snap, err := a.contest.State(r.Context())
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, snap)
}

type createTeamRequest struct {
	Name     string `json:"name"`
	Password string `json:"password"`
}

func (a *API) CreateTeam(w http.ResponseWriter, r *http.Request) {
	var req createTeamRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	team, err := a.registry.CreateTeam(r.Context(), req.Name, req.Password)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, team)
}

func (a *API) DeleteTeam(w http.ResponseWriter, r *http.Request) {
	if err := a.registry.DeleteTeam(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

func (a *API) AddProblem(w http.ResponseWriter, r *http.Request) {
	var problem domain.Problem
	if err := json.NewDecoder(r.Body).Decode(&problem); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	saved, err := a.contest.AddProblem(r.Context(), problem)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, saved)
}

func (a *API) DeleteProblem(w http.ResponseWriter, r *http.Request) {
	if err := a.contest.DeleteProblem(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

type startContestRequest struct {
	DurationMinutes int `json:"durationMinutes"`
}

func (a *API) StartContest(w http.ResponseWriter, r *http.Request) {
	var req startContestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := a.contest.Start(r.Context(), req.DurationMinutes); err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

func (a *API) StopContest(w http.ResponseWriter, r *http.Request) {
	if err := a.contest.Stop(r.Context()); err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

func (a *API) Reset(w http.ResponseWriter, r *http.Request) {
	if err := a.contest.Reset(r.Context()); err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

type submitRequest struct {
	TeamID    string `json:"teamId"`
	ProblemID string `json:"problemId"`
	Code      string `json:"code"`
	Language  string `json:"language"`
}

func (a *API) Submit(w http.ResponseWriter, r *http.Request) {
	var req submitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	sub, err := a.submissions.Submit(r.Context(), req.TeamID, req.ProblemID, req.Code, req.Language)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, sub)
}

// RunCode is the dry-run endpoint: a verdict comes back but nothing is recorded.
func (a *API) RunCode(w http.ResponseWriter, r *http.Request) {
	var req submitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	snap, err := a.contest.State(r.Context())
	if err != nil {
		writeDomainError(w, err)
		return
	}
	var problem *domain.Problem
	for i := range snap.Contest.ProblemBank {
		if snap.Contest.ProblemBank[i].ID == req.ProblemID {
			problem = &snap.Contest.ProblemBank[i]
			break
		}
	}
	if problem == nil {
		writeDomainError(w, domain.ErrProblemNotFound)
		return
	}

	verdict, err := a.submissions.Run(r.Context(), req.Code, *problem, req.Language)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, verdict)
}

// LogViolation is the direct REST increment kept for compatibility with
// clients that do not hold a guard websocket.
func (a *API) LogViolation(w http.ResponseWriter, r *http.Request) {
	if err := a.repo.IncrementViolation(r.Context(), chi.URLParam(r, "teamId")); err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

func Healthz(w http.ResponseWriter, _ *http.Request) {
	w.Write([]byte("ok"))
}
