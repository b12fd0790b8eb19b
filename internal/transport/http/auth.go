package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/BHARGAV-S54/code-battle/internal/app"
	"github.com/BHARGAV-S54/code-battle/internal/domain"
	"github.com/golang-jwt/jwt/v5"
)

type identityKey struct{}

// Auth issues and verifies the bearer tokens the API mutations require.
type Auth struct {
	registry *app.Registry
	secret   []byte
	ttl      time.Duration
	now      func() time.Time
}

func NewAuth(registry *app.Registry, secret string, ttl time.Duration) *Auth {
	if ttl <= 0 {
		ttl = 12 * time.Hour
	}
	return &Auth{registry: registry, secret: []byte(secret), ttl: ttl, now: time.Now}
}

type loginRequest struct {
	Identifier string          `json:"identifier"`
	Password   string          `json:"password"`
	Role       domain.UserRole `json:"role"`
}

type loginResponse struct {
	Token string          `json:"token"`
	User  domain.Identity `json:"user"`
}

type claims struct {
	Name string          `json:"name"`
	Role domain.UserRole `json:"role"`
	jwt.RegisteredClaims
}

func (a *Auth) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	identity, err := a.registry.Login(r.Context(), req.Identifier, req.Password, req.Role)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			writeError(w, http.StatusUnauthorized, err.Error())
			return
		}
		writeDomainError(w, err)
		return
	}

	token, err := a.issue(identity)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, loginResponse{Token: token, User: identity})
}

func (a *Auth) issue(identity domain.Identity) (string, error) {
	now := a.now()
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims{
		Name: identity.Name,
		Role: identity.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   identity.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(a.ttl)),
		},
	})
	return tok.SignedString(a.secret)
}

func (a *Auth) verify(raw string) (domain.Identity, error) {
	var c claims
	tok, err := jwt.ParseWithClaims(raw, &c, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return a.secret, nil
	}, jwt.WithTimeFunc(a.now))
	if err != nil || !tok.Valid {
		return domain.Identity{}, domain.ErrInvalidCredentials
	}
	return domain.Identity{ID: c.Subject, Role: c.Role, Name: c.Name}, nil
}

// RequireAuth rejects requests without a valid bearer token and stashes the
// resolved identity in the request context.
func (a *Auth) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		raw, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || raw == "" {
			writeError(w, http.StatusUnauthorized, "missing bearer token")
			return
		}
		identity, err := a.verify(raw)
		if err != nil {
			writeError(w, http.StatusUnauthorized, "invalid token")
			return
		}
		ctx := context.WithValue(r.Context(), identityKey{}, identity)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireAdmin layers on RequireAuth and rejects non-admin identities.
func (a *Auth) RequireAdmin(next http.Handler) http.Handler {
	return a.RequireAuth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		identity, ok := IdentityFrom(r.Context())
		if !ok || identity.Role != domain.RoleAdmin {
			writeError(w, http.StatusForbidden, "admin access required")
			return
		}
		next.ServeHTTP(w, r)
	}))
}

// IdentityFrom returns the identity RequireAuth stored on the context.
func IdentityFrom(ctx context.Context) (domain.Identity, bool) {
	identity, ok := ctx.Value(identityKey{}).(domain.Identity)
	return identity, ok
}
