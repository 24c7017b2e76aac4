package models

import "time"

// CEFRLevel is a Common European Framework proficiency tier.
type CEFRLevel string

const (
	LevelA1 CEFRLevel = "A1"
	LevelA2 CEFRLevel = "A2"
	LevelB1 CEFRLevel = "B1"
	LevelB2 CEFRLevel = "B2"
	LevelC1 CEFRLevel = "C1"
	LevelC2 CEFRLevel = "C2"
)

var CEFRLevels = []CEFRLevel{LevelA1, LevelA2, LevelB1, LevelB2, LevelC1, LevelC2}

func (l CEFRLevel) IsValid() bool {
	for _, level := range CEFRLevels {
		if l == level {
			return true
		}
	}
	return false
}

type Course struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	Title      string    `json:"title" gorm:"not null;size:255"`
	LanguageID uint      `json:"language_id" gorm:"not null;index"`
	Language   *Language `json:"language,omitempty" gorm:"foreignKey:LanguageID"`
	Level      CEFRLevel `json:"level" gorm:"not null;size:2;index"`
	TeacherID  *uint     `json:"teacher_id" gorm:"index"`
	// false is a valid stored value, so no gorm default
	IsActive bool `json:"is_active" gorm:"not null"`

	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}

func (Course) TableName() string {
	return "courses"
}

// IsTaughtBy reports whether the course is assigned to the given teacher.
func (c *Course) IsTaughtBy(userID uint) bool {
	return c.TeacherID != nil && *c.TeacherID == userID
}
