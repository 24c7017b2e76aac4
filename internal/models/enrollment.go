package models

import "time"

type EnrollmentStatus string

const (
	EnrollmentActive    EnrollmentStatus = "active"
	EnrollmentCompleted EnrollmentStatus = "completed"
	EnrollmentCancelled EnrollmentStatus = "cancelled"
)

var EnrollmentStatuses = []EnrollmentStatus{EnrollmentActive, EnrollmentCompleted, EnrollmentCancelled}

func (s EnrollmentStatus) IsValid() bool {
	switch s {
	case EnrollmentActive, EnrollmentCompleted, EnrollmentCancelled:
		return true
	}
	return false
}

type Enrollment struct {
	ID        uint             `json:"id" gorm:"primaryKey"`
	CourseID  uint             `json:"course_id" gorm:"not null;index"`
	Course    *Course          `json:"-" gorm:"foreignKey:CourseID"`
	StudentID uint             `json:"student_id" gorm:"not null;index"`
	Student   *User            `json:"-" gorm:"foreignKey:StudentID"`
	Status    EnrollmentStatus `json:"status" gorm:"not null;size:20;index"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Enrollment) TableName() string {
	return "enrollments"
}

// EnrollmentDetail is the read projection of an enrollment joined with
// its course title and student name.
type EnrollmentDetail struct {
	ID          uint             `json:"id"`
	CourseID    uint             `json:"course_id"`
	CourseTitle string           `json:"course_title"`
	StudentID   uint             `json:"student_id"`
	StudentName string           `json:"student_name"`
	Status      EnrollmentStatus `json:"status"`
	CreatedAt   time.Time        `json:"created_at"`
	UpdatedAt   time.Time        `json:"updated_at"`
}
