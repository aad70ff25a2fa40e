package model

// StudentAnswer holds the latest submission for a (user, question) pair.
// Resubmitting overwrites in place; no history is kept. PointsEarned is
// filled at submit time for auto-graded kinds and by a grader for essays,
// which lets the score be recomputed as a plain sum over these rows.
type StudentAnswer struct {
	BaseModel
	SchoolID     uint      `gorm:"index;not null" json:"schoolId"`
	UserID       uint      `gorm:"uniqueIndex:idx_answer_user_question;not null" json:"userId"`
	QuestionID   uint      `gorm:"uniqueIndex:idx_answer_user_question;not null" json:"questionId"`
	Question     *Question `gorm:"foreignKey:QuestionID" json:"question,omitempty"`
	AnswerText   string    `gorm:"type:text" json:"answerText"`
	IsCorrect    bool      `gorm:"default:false" json:"isCorrect"`
	IsGraded     bool      `gorm:"default:false" json:"isGraded"`
	PointsEarned float64   `gorm:"default:0" json:"pointsEarned"`
}

func (StudentAnswer) TableName() string {
	return "student_answers"
}
