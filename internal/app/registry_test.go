package app_test

import (
	"context"
	"testing"

	"github.com/BHARGAV-S54/code-battle/internal/app"
	"github.com/BHARGAV-S54/code-battle/internal/domain"
	"github.com/BHARGAV-S54/code-battle/internal/infra/memory"
)

func testAdmin() app.AdminAccount {
	return app.AdminAccount{ID: "admin", Password: "bhargav", DisplayName: "Root Admin"}
}

func TestTeamIDNormalization(t *testing.T) {
	cases := []struct {
		name string
		want string
	}{
		{"Team Alpha", "team-alpha"},
		{"team alpha", "team-alpha"},
		{"TEAM\tALPHA", "team-alpha"},
		{"CodeNinjas", "codeninjas"},
	}
	for _, c := range cases {
		if got := app.TeamID(c.name); got != c.want {
			t.Fatalf("TeamID(%q) = %q, want %q", c.name, got, c.want)
		}
	}
}

func TestCreateTeamReplacesExistingRecord(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStateStore()
	registry := app.NewRegistry(store, testAdmin())

	first, err := registry.CreateTeam(ctx, "Team Alpha", "pw-one")
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	second, err := registry.CreateTeam(ctx, "TEAM ALPHA", "pw-two")
	if err != nil {
		t.Fatalf("re-create failed: %v", err)
	}
	if first.ID != second.ID {
		t.Fatalf("expected same derived id, got %q and %q", first.ID, second.ID)
	}

	snap, _ := store.GetState(ctx)
	if len(snap.Teams) != 1 {
		t.Fatalf("expected one team after re-registration, got %d", len(snap.Teams))
	}
	if snap.Teams[0].Password != "pw-two" || snap.Teams[0].Name != "TEAM ALPHA" {
		t.Fatalf("expected last write to win, got %+v", snap.Teams[0])
	}
}

func TestCreateTeamValidation(t *testing.T) {
	ctx := context.Background()
	registry := app.NewRegistry(memory.NewStateStore(), testAdmin())

	if _, err := registry.CreateTeam(ctx, "   ", "pw"); err != domain.ErrEmptyTeamName {
		t.Fatalf("expected ErrEmptyTeamName, got %v", err)
	}
	if _, err := registry.CreateTeam(ctx, "Team Alpha", ""); err != domain.ErrEmptyPassword {
		t.Fatalf("expected ErrEmptyPassword, got %v", err)
	}
}

func TestLoginAdmin(t *testing.T) {
	ctx := context.Background()
	registry := app.NewRegistry(memory.NewStateStore(), testAdmin())

	identity, err := registry.Login(ctx, "admin", "bhargav", domain.RoleAdmin)
	if err != nil {
		t.Fatalf("admin login failed: %v", err)
	}
	if identity.ID != "admin-root" || identity.Role != domain.RoleAdmin || identity.Name != "Root Admin" {
		t.Fatalf("unexpected admin identity: %+v", identity)
	}

	if _, err := registry.Login(ctx, "admin", "wrong", domain.RoleAdmin); err != domain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestLoginTeamMatchesNameOrID(t *testing.T) {
	ctx := context.Background()
	registry := app.NewRegistry(memory.NewStateStore(), testAdmin())

	if _, err := registry.CreateTeam(ctx, "Team Alpha", "secret"); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	for _, identifier := range []string{"Team Alpha", "team alpha", "TEAM ALPHA", "team-alpha"} {
		identity, err := registry.Login(ctx, identifier, "secret", domain.RoleTeam)
		if err != nil {
			t.Fatalf("login as %q failed: %v", identifier, err)
		}
		if identity.ID != "team-alpha" || identity.Role != domain.RoleTeam {
			t.Fatalf("unexpected identity for %q: %+v", identifier, identity)
		}
	}

	// Password comparison stays exact.
	if _, err := registry.Login(ctx, "Team Alpha", "SECRET", domain.RoleTeam); err != domain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials for wrong password, got %v", err)
	}
	if _, err := registry.Login(ctx, "Team Beta", "secret", domain.RoleTeam); err != domain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials for unknown team, got %v", err)
	}
}
