// Package seed loads the demo catalog used for local development.
package seed

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/elab-development/internet-tehnologije-2025-vebaplikacijazaucenjejezika-2022-0147/internal/models"
	"github.com/elab-development/internet-tehnologije-2025-vebaplikacijazaucenjejezika-2022-0147/internal/repositories"
)

// DemoPassword is the password of every seeded account.
const DemoPassword = "password"

type demoUser struct {
	name  string
	email string
	role  models.UserRole
}

var demoUsers = []demoUser{
	{"Admin", "admin@lingua.test", models.RoleAdmin},
	{"Anna Teacher", "anna.teacher@lingua.test", models.RoleTeacher},
	{"Marko Teacher", "marko.teacher@lingua.test", models.RoleTeacher},
	{"Luka Student", "luka.student@lingua.test", models.RoleStudent},
	{"Mia Student", "mia.student@lingua.test", models.RoleStudent},
}

type demoLanguage struct {
	name   string
	imgURL string
}

var demoLanguages = []demoLanguage{
	{"English", "https://flaglog.com/img/england1277.png"},
	{"German", "https://flaglog.com/img/germany1949.png"},
	{"Spanish", "https://flaglog.com/img/spain1981.png"},
	{"French", "https://flaglog.com/img/france1794.png"},
	{"Italian", "https://flaglog.com/img/italy1946.png"},
}

type demoCourse struct {
	title string
	level models.CEFRLevel
}

var demoCatalog = map[string][]demoCourse{
	"English": {
		{"English A1 – Basics & Survival", models.LevelA1},
		{"English A2 – Everyday Conversations", models.LevelA2},
		{"English B1 – Work & Travel", models.LevelB1},
	},
	"German": {
		{"German A1 – Grundlagen", models.LevelA1},
		{"German A2 – Alltag & Einkaufen", models.LevelA2},
		{"German B1 – Beruf & Reisen", models.LevelB1},
	},
	"Spanish": {
		{"Spanish A1 – Básico", models.LevelA1},
		{"Spanish A2 – Conversación diaria", models.LevelA2},
		{"Spanish B1 – Viajes & Cultura", models.LevelB1},
	},
	"French": {
		{"French A1 – Débutant", models.LevelA1},
		{"French A2 – Vie quotidienne", models.LevelA2},
		{"French B1 – Travail & Voyages", models.LevelB1},
	},
	"Italian": {
		{"Italian A1 – Principianti", models.LevelA1},
		{"Italian A2 – Conversazione", models.LevelA2},
		{"Italian B1 – Lavoro & Viaggi", models.LevelB1},
	},
}

// Seeder writes demo users, languages, courses and lesson plans.
type Seeder struct {
	repo       repositories.Repository
	logger     *slog.Logger
	bcryptCost int
	now        func() time.Time
}

func NewSeeder(repo repositories.Repository, logger *slog.Logger, bcryptCost int) *Seeder {
	return &Seeder{
		repo:       repo,
		logger:     logger,
		bcryptCost: bcryptCost,
		now:        time.Now,
	}
}

// Run seeds an empty database in one transaction. A database that
// already has languages is left alone.
func (s *Seeder) Run(ctx context.Context) error {
	existing, err := s.repo.Language().List(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to check existing languages: %w", err)
	}
	if len(existing) > 0 {
		s.logger.Info("Demo data already present, skipping seed", "languages", len(existing))
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(DemoPassword), s.bcryptCost)
	if err != nil {
		return fmt.Errorf("failed to hash demo password: %w", err)
	}

	var courses, lessons int
	err = s.repo.WithTransaction(ctx, func(repo repositories.Repository) error {
		teachers, err := s.seedUsers(ctx, repo, string(hash))
		if err != nil {
			return err
		}

		base := s.now().UTC().Truncate(24*time.Hour).AddDate(0, 0, 7)
		teacherIdx := 0

		for _, dl := range demoLanguages {
			imgURL := dl.imgURL
			language := &models.Language{Name: dl.name, ImgURL: &imgURL}
			if err := repo.Language().Create(ctx, nil, language); err != nil {
				return fmt.Errorf("failed to seed language %s: %w", dl.name, err)
			}

			for _, dc := range demoCatalog[dl.name] {
				course := &models.Course{
					Title:      dc.title,
					LanguageID: language.ID,
					Level:      dc.level,
					IsActive:   true,
				}
				if len(teachers) > 0 {
					course.TeacherID = &teachers[teacherIdx%len(teachers)].ID
					teacherIdx++
				}
				if err := repo.Course().Create(ctx, nil, course); err != nil {
					return fmt.Errorf("failed to seed course %s: %w", dc.title, err)
				}
				courses++

				if course.TeacherID == nil {
					continue
				}
				for i, title := range LessonPlan(dl.name, dc.level) {
					starts := base.AddDate(0, 0, i*3).Add(time.Duration(9+(i*2)%10) * time.Hour)
					if i%2 == 1 {
						starts = starts.Add(30 * time.Minute)
					}
					ends := starts.Add(time.Duration(60+30*(i%2)) * time.Minute)

					lesson := &models.Lesson{
						CourseID:  course.ID,
						TeacherID: *course.TeacherID,
						Title:     title,
						StartsAt:  starts,
						EndsAt:    &ends,
					}
					if err := repo.Lesson().Create(ctx, nil, lesson); err != nil {
						return fmt.Errorf("failed to seed lesson %q: %w", title, err)
					}
					lessons++
				}
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.logger.Info("Demo data seeded",
		"users", len(demoUsers),
		"languages", len(demoLanguages),
		"courses", courses,
		"lessons", lessons)
	return nil
}

func (s *Seeder) seedUsers(ctx context.Context, repo repositories.Repository, passwordHash string) ([]*models.User, error) {
	var teachers []*models.User

	for _, du := range demoUsers {
		user, err := repo.User().GetByEmail(ctx, nil, du.email)
		switch {
		case err == nil:
		case repositories.IsNotFoundError(err):
			user = &models.User{Name: du.name, Email: du.email, PasswordHash: passwordHash, Role: du.role}
			if err := repo.User().Create(ctx, nil, user); err != nil {
				return nil, fmt.Errorf("failed to seed user %s: %w", du.email, err)
			}
		default:
			return nil, fmt.Errorf("failed to look up user %s: %w", du.email, err)
		}

		if user.IsTeacher() {
			teachers = append(teachers, user)
		}
	}

	return teachers, nil
}
