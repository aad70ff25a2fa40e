package model

// StudentScore is a materialized cache of the sum over the student's current
// answers for one exam. It is recomputed whole on every aggregation pass,
// never incremented.
type StudentScore struct {
	BaseModel
	SchoolID uint    `gorm:"index;not null" json:"schoolId"`
	UserID   uint    `gorm:"uniqueIndex:idx_score_user_exam;not null" json:"userId"`
	ExamID   uint    `gorm:"uniqueIndex:idx_score_user_exam;not null" json:"examId"`
	Score    float64 `gorm:"default:0" json:"score"`
}

func (StudentScore) TableName() string {
	return "student_scores"
}
