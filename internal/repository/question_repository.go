package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/18d-shady/cbt-backend/internal/model"

	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"
)

const questionCacheTTL = 30 * time.Second

type QuestionRepository struct {
	DB  *gorm.DB
	RDB *redis.Client
}

func NewQuestionRepository(db *gorm.DB, rdb *redis.Client) *QuestionRepository {
	return &QuestionRepository{DB: db, RDB: rdb}
}

func questionListKey(examID uint) string {
	return fmt.Sprintf("cbt:exam:%d:questions", examID)
}

func (r *QuestionRepository) Create(question *model.Question) error {
	if err := r.DB.Create(question).Error; err != nil {
		return err
	}
	r.invalidate(question.ExamID)
	return nil
}

// Delete removes the question for real: a soft-deleted row would keep its
// slot in the (exam, question_number) unique index and block renumbering.
func (r *QuestionRepository) Delete(schoolID, id uint) (examID uint, err error) {
	q, err := r.FindByID(schoolID, id)
	if err != nil {
		return 0, err
	}
	if err := r.DB.Unscoped().Delete(&model.Question{}, q.ID).Error; err != nil {
		return 0, err
	}
	r.invalidate(q.ExamID)
	return q.ExamID, nil
}

func (r *QuestionRepository) FindByID(schoolID, id uint) (*model.Question, error) {
	var q model.Question
	err := r.DB.Where("school_id = ? AND id = ?", schoolID, id).
		Preload("Images").
		First(&q).Error
	if err != nil {
		return nil, err
	}
	return &q, nil
}

// ListByExam returns an exam's questions ordered by question number. The
// whole list is cached briefly; during a sitting every student pages through
// the same rows.
func (r *QuestionRepository) ListByExam(schoolID, examID uint) ([]model.Question, error) {
	ctx := context.Background()
	key := questionListKey(examID)

	if r.RDB != nil {
		if raw, err := r.RDB.Get(ctx, key).Bytes(); err == nil {
			var qs []model.Question
			if json.Unmarshal(raw, &qs) == nil {
				return qs, nil
			}
		}
	}

	var qs []model.Question
	err := r.DB.Where("school_id = ? AND exam_id = ?", schoolID, examID).
		Preload("Images").
		Order("question_number asc").
		Find(&qs).Error
	if err != nil {
		return nil, err
	}

	if r.RDB != nil {
		if raw, err := json.Marshal(qs); err == nil {
			r.RDB.Set(ctx, key, raw, questionCacheTTL)
		}
	}
	return qs, nil
}

// FindByExamIndex returns the question at a zero-based position in
// question-number order, or gorm.ErrRecordNotFound past the end.
func (r *QuestionRepository) FindByExamIndex(schoolID, examID uint, index int) (*model.Question, error) {
	if index < 0 {
		return nil, gorm.ErrRecordNotFound
	}
	qs, err := r.ListByExam(schoolID, examID)
	if err != nil {
		return nil, err
	}
	if index >= len(qs) {
		return nil, gorm.ErrRecordNotFound
	}
	return &qs[index], nil
}

func (r *QuestionRepository) AddImage(img *model.QuestionImage) error {
	if err := r.DB.Create(img).Error; err != nil {
		return err
	}
	var q model.Question
	if err := r.DB.Select("exam_id").First(&q, img.QuestionID).Error; err == nil {
		r.invalidate(q.ExamID)
	}
	return nil
}

func (r *QuestionRepository) invalidate(examID uint) {
	if r.RDB != nil {
		r.RDB.Del(context.Background(), questionListKey(examID))
	}
}
