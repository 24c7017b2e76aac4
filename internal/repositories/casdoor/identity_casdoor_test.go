package casdoor

import (
	"testing"

	"github.com/casdoor/casdoor-go-sdk/casdoorsdk"

	"github.com/elab-development/internet-tehnologije-2025-vebaplikacijazaucenjejezika-2022-0147/internal/models"
)

func TestConvertCasdoorRolesToModel(t *testing.T) {
	tests := []struct {
		name string
		user casdoorsdk.User
		want models.UserRole
	}{
		{name: "no roles", user: casdoorsdk.User{}, want: models.RoleStudent},
		{name: "admin flag", user: casdoorsdk.User{IsAdmin: true}, want: models.RoleAdmin},
		{
			name: "admin role wins",
			user: casdoorsdk.User{Roles: []*casdoorsdk.Role{{Name: "teacher"}, {Name: "Administrator"}}},
			want: models.RoleAdmin,
		},
		{
			name: "instructor maps to teacher",
			user: casdoorsdk.User{Roles: []*casdoorsdk.Role{{Name: "student"}, {Name: "Instructor"}}},
			want: models.RoleTeacher,
		},
		{name: "type fallback", user: casdoorsdk.User{Type: "teacher"}, want: models.RoleTeacher},
		{name: "unknown type", user: casdoorsdk.User{Type: "normal-user"}, want: models.RoleStudent},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := convertCasdoorRolesToModel(&tt.user); got != tt.want {
				t.Errorf("convertCasdoorRolesToModel() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestConvertClaimsToIdentity(t *testing.T) {
	claims := &casdoorsdk.Claims{
		User: casdoorsdk.User{Id: "abc", Name: "jdoe", Email: " jdoe@example.com ", Type: "teacher"},
	}

	identity, err := convertClaimsToIdentity(claims)
	if err != nil {
		t.Fatalf("convertClaimsToIdentity() error = %v", err)
	}
	if identity.Name != "jdoe" {
		t.Errorf("Name = %q, want login name fallback", identity.Name)
	}
	if identity.Email != "jdoe@example.com" {
		t.Errorf("Email = %q", identity.Email)
	}
	if identity.Role != models.RoleTeacher {
		t.Errorf("Role = %v, want teacher", identity.Role)
	}

	if _, err := convertClaimsToIdentity(&casdoorsdk.Claims{User: casdoorsdk.User{Name: "x"}}); err == nil {
		t.Error("expected error for missing email")
	}
}
