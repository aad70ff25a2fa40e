package repository

import (
	"github.com/18d-shady/cbt-backend/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ScoreRepository struct {
	DB *gorm.DB
}

func NewScoreRepository(db *gorm.DB) *ScoreRepository {
	return &ScoreRepository{DB: db}
}

// UpsertTx replaces the score for (user, exam) wholesale. Aggregation always
// writes a freshly computed total, never an increment.
func (r *ScoreRepository) UpsertTx(tx *gorm.DB, score *model.StudentScore) error {
	return tx.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}, {Name: "exam_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"score", "updated_at",
		}),
	}).Create(score).Error
}

func (r *ScoreRepository) Find(userID, examID uint) (*model.StudentScore, error) {
	var score model.StudentScore
	err := r.DB.Where("user_id = ? AND exam_id = ?", userID, examID).
		First(&score).Error
	if err != nil {
		return nil, err
	}
	return &score, nil
}

// SumPointsEarnedTx reads a consistent snapshot of all answers for the
// (user, exam) pair inside the caller's transaction.
func (r *ScoreRepository) SumPointsEarnedTx(tx *gorm.DB, userID, examID uint) (float64, error) {
	var total float64
	err := tx.Model(&model.StudentAnswer{}).
		Joins("JOIN questions ON questions.id = student_answers.question_id").
		Where("student_answers.user_id = ? AND questions.exam_id = ?", userID, examID).
		Select("COALESCE(SUM(student_answers.points_earned), 0)").
		Scan(&total).Error
	return total, err
}

func (r *ScoreRepository) DeleteByUserAndExamTx(tx *gorm.DB, userID, examID uint) error {
	return tx.Unscoped().
		Where("user_id = ? AND exam_id = ?", userID, examID).
		Delete(&model.StudentScore{}).Error
}
