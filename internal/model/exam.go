package model

import "time"

// Exam is a timed paper under a course. StartDatetime is optional until an
// administrator schedules it; nothing can start a session before it is set.
type Exam struct {
	BaseModel
	SchoolID        uint       `gorm:"index;not null" json:"schoolId"`
	CourseID        uint       `gorm:"index;not null" json:"courseId"`
	Course          *Course    `gorm:"foreignKey:CourseID" json:"course,omitempty"`
	Title           string     `gorm:"size:255;not null" json:"title"`
	TotalQuestions  int        `gorm:"default:0" json:"totalQuestions"`
	DurationMinutes int        `gorm:"not null" json:"durationMinutes"`
	Rules           string     `gorm:"type:text" json:"rules"`
	StartDatetime   *time.Time `json:"startDatetime,omitempty"`
}

func (Exam) TableName() string {
	return "exams"
}

// EndDatetime is the official close of the exam window, derived from the
// scheduled start and the duration. Nil when the exam is unscheduled.
func (e *Exam) EndDatetime() *time.Time {
	if e.StartDatetime == nil {
		return nil
	}
	end := e.StartDatetime.Add(time.Duration(e.DurationMinutes) * time.Minute)
	return &end
}

// WindowContains reports whether now falls inside [start, end].
func (e *Exam) WindowContains(now time.Time) bool {
	if e.StartDatetime == nil {
		return false
	}
	end := e.EndDatetime()
	return !now.Before(*e.StartDatetime) && !now.After(*end)
}
