package model

import "time"

// ExamSession is the single live attempt for a (user, exam) pair. The unique
// index is what makes concurrent start calls collapse into one row. The row
// is deleted at end-of-exam; only the derived StudentScore survives.
type ExamSession struct {
	BaseModel
	SchoolID  uint      `gorm:"index;not null" json:"schoolId"`
	UserID    uint      `gorm:"uniqueIndex:idx_session_user_exam;not null" json:"userId"`
	ExamID    uint      `gorm:"uniqueIndex:idx_session_user_exam;not null" json:"examId"`
	StartTime time.Time `gorm:"not null" json:"startTime"`
	EndTime   time.Time `gorm:"not null" json:"endTime"`
}

func (ExamSession) TableName() string {
	return "exam_sessions"
}

// Remaining returns the whole seconds left on the clock, clamped at zero.
func (s *ExamSession) Remaining(now time.Time) int64 {
	left := int64(s.EndTime.Sub(now).Seconds())
	if left < 0 {
		return 0
	}
	return left
}
