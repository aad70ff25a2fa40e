package repository

import (
	"github.com/18d-shady/cbt-backend/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type AnswerRepository struct {
	DB *gorm.DB
}

func NewAnswerRepository(db *gorm.DB) *AnswerRepository {
	return &AnswerRepository{DB: db}
}

// Upsert writes the latest submission for (user, question), overwriting any
// prior row including its grading state. Concurrent submits serialize to a
// single last-writer-wins row on the unique index.
func (r *AnswerRepository) Upsert(answer *model.StudentAnswer) error {
	return r.DB.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}, {Name: "question_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"answer_text", "is_correct", "is_graded", "points_earned", "updated_at",
		}),
	}).Create(answer).Error
}

func (r *AnswerRepository) FindByUserAndQuestion(userID, questionID uint) (*model.StudentAnswer, error) {
	var answer model.StudentAnswer
	err := r.DB.Where("user_id = ? AND question_id = ?", userID, questionID).
		First(&answer).Error
	if err != nil {
		return nil, err
	}
	return &answer, nil
}

func (r *AnswerRepository) FindForGradingTx(tx *gorm.DB, schoolID, examID, answerID uint) (*model.StudentAnswer, error) {
	var answer model.StudentAnswer
	err := tx.Joins("JOIN questions ON questions.id = student_answers.question_id").
		Where("student_answers.id = ? AND student_answers.school_id = ?", answerID, schoolID).
		Where("questions.exam_id = ? AND questions.question_type = ?", examID, model.KindEssay).
		Preload("Question").
		First(&answer).Error
	if err != nil {
		return nil, err
	}
	return &answer, nil
}

func (r *AnswerRepository) ListUngradedEssays(schoolID, examID uint) ([]model.StudentAnswer, error) {
	var answers []model.StudentAnswer
	err := r.DB.Joins("JOIN questions ON questions.id = student_answers.question_id").
		Where("student_answers.school_id = ? AND student_answers.is_graded = ?", schoolID, false).
		Where("questions.exam_id = ? AND questions.question_type = ?", examID, model.KindEssay).
		Preload("Question").
		Find(&answers).Error
	return answers, err
}

// DistinctUserIDsByExamTx lists every student holding at least one answer
// under the exam; the regrade pass rescores each of them from scratch.
func (r *AnswerRepository) DistinctUserIDsByExamTx(tx *gorm.DB, examID uint) ([]uint, error) {
	var ids []uint
	err := tx.Model(&model.StudentAnswer{}).
		Joins("JOIN questions ON questions.id = student_answers.question_id").
		Where("questions.exam_id = ?", examID).
		Distinct().
		Pluck("student_answers.user_id", &ids).Error
	return ids, err
}

func (r *AnswerRepository) DeleteByUserAndExamTx(tx *gorm.DB, userID, examID uint) error {
	return tx.Unscoped().
		Where("user_id = ? AND question_id IN (?)",
			userID,
			tx.Session(&gorm.Session{NewDB: true}).Model(&model.Question{}).Select("id").Where("exam_id = ?", examID),
		).
		Delete(&model.StudentAnswer{}).Error
}
