package services

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/elab-development/internet-tehnologije-2025-vebaplikacijazaucenjejezika-2022-0147/internal/models"
	"github.com/elab-development/internet-tehnologije-2025-vebaplikacijazaucenjejezika-2022-0147/internal/repositories"
	"github.com/elab-development/internet-tehnologije-2025-vebaplikacijazaucenjejezika-2022-0147/internal/validator"
)

func TestAuthService_Register(t *testing.T) {
	env := newTestEnv(t)
	auth := env.services.Auth()
	ctx := context.Background()

	tests := []struct {
		name      string
		req       RegisterRequest
		wantRole  models.UserRole
		wantErr   error
		wantField string
	}{
		{
			name:     "defaults to student",
			req:      RegisterRequest{Name: "New Student", Email: "new@example.com", Password: testPassword},
			wantRole: models.RoleStudent,
		},
		{
			name:     "teacher self registration",
			req:      RegisterRequest{Name: "New Teacher", Email: "teach@example.com", Password: testPassword, Role: models.RoleTeacher},
			wantRole: models.RoleTeacher,
		},
		{
			name:      "admin cannot be self assigned",
			req:       RegisterRequest{Name: "Mallory", Email: "mallory@example.com", Password: testPassword, Role: models.RoleAdmin},
			wantField: "role",
		},
		{
			name:      "confirmation mismatch",
			req:       RegisterRequest{Name: "Typo", Email: "typo@example.com", Password: testPassword, PasswordConfirmation: ptr("different1")},
			wantField: "password_confirmation",
		},
		{
			name:    "email taken ignoring case",
			req:     RegisterRequest{Name: "Again", Email: "SAM@example.com", Password: testPassword},
			wantErr: ErrEmailTaken,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := auth.Register(ctx, &tt.req)
			switch {
			case tt.wantField != "":
				wantFieldError(t, err, tt.wantField)
				return
			case tt.wantErr != nil:
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("Register() error = %v, want %v", err, tt.wantErr)
				}
				return
			case err != nil:
				t.Fatalf("Register() error = %v", err)
			}

			if resp.TokenType != TokenTypeBearer || resp.AccessToken == "" {
				t.Errorf("Register() token = %q %q", resp.TokenType, resp.AccessToken)
			}
			if resp.Data.Role != tt.wantRole {
				t.Errorf("role = %v, want %v", resp.Data.Role, tt.wantRole)
			}
		})
	}
}

// lateUserRepository misses accounts created after the existence check,
// as a concurrent registration would.
type lateUserRepository struct {
	repositories.UserRepository
}

func (lateUserRepository) ExistsByEmail(ctx context.Context, tx *gorm.DB, email string) (bool, error) {
	return false, nil
}

type lateRepository struct {
	repositories.Repository
}

func (r lateRepository) User() repositories.UserRepository {
	return lateUserRepository{r.Repository.User()}
}

func TestAuthService_RegisterUniqueIndex(t *testing.T) {
	env := newTestEnv(t)
	auth := NewAuthService(lateRepository{env.repo}, env.db, slog.New(slog.NewJSONHandler(io.Discard, nil)), validator.New(), AuthSettings{
		JWTSecret:  "test-secret",
		TokenTTL:   time.Hour,
		BcryptCost: bcrypt.MinCost,
	})

	_, err := auth.Register(context.Background(), &RegisterRequest{Name: "Twin", Email: "Sam@Example.com", Password: testPassword})
	if !errors.Is(err, ErrEmailTaken) {
		t.Fatalf("Register() error = %v, want ErrEmailTaken", err)
	}
	if n := env.count(t, &models.User{}); n != 5 {
		t.Errorf("users = %d, want 5", n)
	}
}

func TestAuthService_LoginAndAuthenticate(t *testing.T) {
	env := newTestEnv(t)
	auth := env.services.Auth()
	ctx := context.Background()

	if _, err := auth.Login(ctx, &LoginRequest{Email: "sam@example.com", Password: "wrong-password"}); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("Login() with bad password error = %v", err)
	}
	if _, err := auth.Login(ctx, &LoginRequest{Email: "nobody@example.com", Password: testPassword}); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("Login() with unknown email error = %v", err)
	}

	resp, err := auth.Login(ctx, &LoginRequest{Email: "sam@example.com", Password: testPassword})
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}

	user, claims, err := auth.Authenticate(ctx, resp.AccessToken)
	if err != nil {
		t.Fatalf("Authenticate() error = %v", err)
	}
	if user.ID != env.student.ID || claims.Role != models.RoleStudent {
		t.Errorf("Authenticate() = user %d role %v", user.ID, claims.Role)
	}
	if claims.ID == "" {
		t.Error("token carries no jti")
	}

	for _, token := range []string{"", "not-a-token", resp.AccessToken + "x"} {
		if _, _, err := auth.Authenticate(ctx, token); !errors.Is(err, ErrUnauthorized) {
			t.Errorf("Authenticate(%q) error = %v, want ErrUnauthorized", token, err)
		}
	}
}

func TestAuthService_ExpiredToken(t *testing.T) {
	env := newTestEnv(t)
	svc := env.services.Auth().(*authService)
	ctx := context.Background()

	svc.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	resp, err := svc.Login(ctx, &LoginRequest{Email: "sam@example.com", Password: testPassword})
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}
	svc.now = time.Now

	if _, _, err := svc.Authenticate(ctx, resp.AccessToken); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("Authenticate() error = %v, want ErrUnauthorized", err)
	}
}

func TestAuthService_Logout(t *testing.T) {
	tests := []struct {
		name string
		opts []envOption
	}{
		{name: "database revocation list"},
		{name: "redis revocation list", opts: []envOption{withRedis()}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t, tt.opts...)
			auth := env.services.Auth()
			ctx := context.Background()

			first, err := auth.Login(ctx, &LoginRequest{Email: "tina@example.com", Password: testPassword})
			if err != nil {
				t.Fatalf("Login() error = %v", err)
			}
			second, err := auth.Login(ctx, &LoginRequest{Email: "tina@example.com", Password: testPassword})
			if err != nil {
				t.Fatalf("Login() error = %v", err)
			}

			_, claims, err := auth.Authenticate(ctx, first.AccessToken)
			if err != nil {
				t.Fatalf("Authenticate() error = %v", err)
			}
			if err := auth.Logout(ctx, claims); err != nil {
				t.Fatalf("Logout() error = %v", err)
			}

			if _, _, err := auth.Authenticate(ctx, first.AccessToken); !errors.Is(err, ErrUnauthorized) {
				t.Errorf("revoked token error = %v, want ErrUnauthorized", err)
			}
			if _, _, err := auth.Authenticate(ctx, second.AccessToken); err != nil {
				t.Errorf("other session should stay valid, got %v", err)
			}

			if env.redis != nil {
				if !env.redis.Exists("revoked:" + claims.ID) {
					t.Error("revocation not stored in redis")
				}
			} else if n := env.count(t, &models.RevokedToken{}); n != 1 {
				t.Errorf("revoked_tokens rows = %d, want 1", n)
			}
		})
	}
}

func TestAuthService_DeletedUserIsUnauthorized(t *testing.T) {
	env := newTestEnv(t)
	auth := env.services.Auth()
	ctx := context.Background()

	resp, err := auth.Login(ctx, &LoginRequest{Email: "sue@example.com", Password: testPassword})
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}
	if err := env.db.Delete(&models.User{}, env.otherStudent.ID).Error; err != nil {
		t.Fatalf("delete user: %v", err)
	}

	if _, _, err := auth.Authenticate(ctx, resp.AccessToken); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("Authenticate() error = %v, want ErrUnauthorized", err)
	}
}

func TestAuthService_LoginWithSSO(t *testing.T) {
	ctx := context.Background()

	t.Run("disabled", func(t *testing.T) {
		env := newTestEnv(t)
		if env.services.Auth().SSOEnabled() {
			t.Fatal("SSOEnabled() = true without a provider")
		}
		if _, err := env.services.Auth().LoginWithSSO(ctx, &SSOLoginRequest{Code: "c"}); !errors.Is(err, ErrSSODisabled) {
			t.Fatalf("LoginWithSSO() error = %v, want ErrSSODisabled", err)
		}
	})

	t.Run("creates then reuses the account", func(t *testing.T) {
		provider := &stubIdentityProvider{identity: &repositories.ExternalIdentity{
			Subject: "casdoor-1", Name: "Olga", Email: "olga@example.com", Role: models.RoleTeacher,
		}}
		env := newTestEnv(t, withIdentityProvider(provider))
		auth := env.services.Auth()

		first, err := auth.LoginWithSSO(ctx, &SSOLoginRequest{Code: "code", State: "state"})
		if err != nil {
			t.Fatalf("LoginWithSSO() error = %v", err)
		}
		if first.Data.Role != models.RoleTeacher {
			t.Errorf("role = %v, want teacher", first.Data.Role)
		}

		provider.identity.Role = models.RoleAdmin
		second, err := auth.LoginWithSSO(ctx, &SSOLoginRequest{Code: "code"})
		if err != nil {
			t.Fatalf("LoginWithSSO() error = %v", err)
		}
		if second.Data.ID != first.Data.ID || second.Data.Role != models.RoleTeacher {
			t.Errorf("second login = %+v, want the same teacher account", second.Data)
		}
	})

	t.Run("provider failure", func(t *testing.T) {
		env := newTestEnv(t, withIdentityProvider(&stubIdentityProvider{err: errors.New("bad code")}))
		if _, err := env.services.Auth().LoginWithSSO(ctx, &SSOLoginRequest{Code: "x"}); !errors.Is(err, ErrInvalidCredentials) {
			t.Fatalf("LoginWithSSO() error = %v, want ErrInvalidCredentials", err)
		}
	})
}
