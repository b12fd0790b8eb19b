package app

import (
	"context"
	"strings"
	"unicode"

	"github.com/BHARGAV-S54/code-battle/internal/domain"
)

// AdminAccount is the single fixed administrator identity.
type AdminAccount struct {
	ID          string
	Password    string
	DisplayName string
}

// Registry manages team enrollment and login resolution.
type Registry struct {
	repo  StateRepository
	admin AdminAccount
}

func NewRegistry(repo StateRepository, admin AdminAccount) *Registry {
	return &Registry{repo: repo, admin: admin}
}

// TeamID derives the registry key from a team name: lowercase with every
// whitespace character replaced by a hyphen. Names differing only by case or
// whitespace therefore collide; re-registration replaces the existing record.
func TeamID(name string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return '-'
		}
		return unicode.ToLower(r)
	}, name)
}

// CreateTeam enrolls a team with upsert semantics: a second registration under
// the same derived id replaces the first (last write wins).
func (r *Registry) CreateTeam(ctx context.Context, name, password string) (domain.Team, error) {
	if strings.TrimSpace(name) == "" {
		return domain.Team{}, domain.ErrEmptyTeamName
	}
	if strings.TrimSpace(password) == "" {
		return domain.Team{}, domain.ErrEmptyPassword
	}
	team := domain.Team{
		ID:       TeamID(name),
		Name:     name,
		Password: password,
		Members:  []string{},
	}
	return r.repo.UpsertTeam(ctx, team)
}

// DeleteTeam removes a team and its standing. Historical submissions are not
// cascaded; orphans keep their teamId.
func (r *Registry) DeleteTeam(ctx context.Context, id string) error {
	return r.repo.DeleteTeam(ctx, id)
}

// Login resolves an (identifier, password, role) triple. Admin is the single
// configured account; teams match case-insensitively on name or id with an
// exact password comparison.
func (r *Registry) Login(ctx context.Context, identifier, password string, role domain.UserRole) (domain.Identity, error) {
	if role == domain.RoleAdmin {
		if identifier == r.admin.ID && password == r.admin.Password {
			return domain.Identity{ID: "admin-root", Role: domain.RoleAdmin, Name: r.admin.DisplayName}, nil
		}
		return domain.Identity{}, domain.ErrInvalidCredentials
	}

	snap, err := r.repo.GetState(ctx)
	if err != nil {
		return domain.Identity{}, err
	}
	needle := strings.ToLower(identifier)
	for _, team := range snap.Teams {
		if strings.ToLower(team.Name) != needle && team.ID != needle {
			continue
		}
		if team.Password != password {
			return domain.Identity{}, domain.ErrInvalidCredentials
		}
		return domain.Identity{ID: team.ID, Role: domain.RoleTeam, Name: team.Name}, nil
	}
	return domain.Identity{}, domain.ErrInvalidCredentials
}
