package models

import "time"

type Lesson struct {
	ID        uint       `json:"id" gorm:"primaryKey"`
	CourseID  uint       `json:"course_id" gorm:"not null;index"`
	Course    *Course    `json:"-" gorm:"foreignKey:CourseID"`
	TeacherID uint       `json:"teacher_id" gorm:"not null;index"`
	Title     string     `json:"title" gorm:"not null;size:255"`
	StartsAt  time.Time  `json:"starts_at" gorm:"not null;index"`
	EndsAt    *time.Time `json:"ends_at"`

	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}

func (Lesson) TableName() string {
	return "lessons"
}
