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

// examCacheTTL is short on purpose: an exam snapshot only needs to survive
// the burst of identical reads while a cohort is polling during a sitting.
const examCacheTTL = 30 * time.Second

type ExamRepository struct {
	DB  *gorm.DB
	RDB *redis.Client
}

func NewExamRepository(db *gorm.DB, rdb *redis.Client) *ExamRepository {
	return &ExamRepository{DB: db, RDB: rdb}
}

func examCacheKey(schoolID, id uint) string {
	return fmt.Sprintf("cbt:exam:%d:%d", schoolID, id)
}

func (r *ExamRepository) Create(exam *model.Exam) error {
	return r.DB.Create(exam).Error
}

func (r *ExamRepository) Update(exam *model.Exam) error {
	if err := r.DB.Save(exam).Error; err != nil {
		return err
	}
	r.invalidate(exam.SchoolID, exam.ID)
	return nil
}

// FindByID reads through the redis cache when one is configured. Cache
// failures fall back to MySQL silently; the cache is an optimization, never
// a source of truth.
func (r *ExamRepository) FindByID(schoolID, id uint) (*model.Exam, error) {
	ctx := context.Background()
	key := examCacheKey(schoolID, id)

	if r.RDB != nil {
		if raw, err := r.RDB.Get(ctx, key).Bytes(); err == nil {
			var exam model.Exam
			if json.Unmarshal(raw, &exam) == nil {
				return &exam, nil
			}
		}
	}

	var exam model.Exam
	err := r.DB.Where("school_id = ? AND id = ?", schoolID, id).
		Preload("Course").Preload("Course.Class").
		First(&exam).Error
	if err != nil {
		return nil, err
	}

	if r.RDB != nil {
		if raw, err := json.Marshal(&exam); err == nil {
			r.RDB.Set(ctx, key, raw, examCacheTTL)
		}
	}
	return &exam, nil
}

// FindEligibleToday returns exams under the given courses scheduled to start
// within [dayStart, dayEnd), ordered by start time so callers get a
// deterministic earliest-first pick.
func (r *ExamRepository) FindEligibleToday(schoolID uint, courseIDs []uint, dayStart, dayEnd time.Time) ([]model.Exam, error) {
	if len(courseIDs) == 0 {
		return nil, nil
	}
	var exams []model.Exam
	err := r.DB.Where("school_id = ? AND course_id IN ?", schoolID, courseIDs).
		Where("start_datetime >= ? AND start_datetime < ?", dayStart, dayEnd).
		Preload("Course").
		Order("start_datetime asc").
		Find(&exams).Error
	return exams, err
}

func (r *ExamRepository) CountQuestions(examID uint) (int64, error) {
	var count int64
	err := r.DB.Model(&model.Question{}).Where("exam_id = ?", examID).Count(&count).Error
	return count, err
}

// ReconcileTotalQuestions re-derives total_questions from the owned question
// rows after catalog edits.
func (r *ExamRepository) ReconcileTotalQuestions(schoolID, examID uint) error {
	count, err := r.CountQuestions(examID)
	if err != nil {
		return err
	}
	err = r.DB.Model(&model.Exam{}).
		Where("school_id = ? AND id = ?", schoolID, examID).
		Update("total_questions", count).Error
	if err != nil {
		return err
	}
	r.invalidate(schoolID, examID)
	return nil
}

func (r *ExamRepository) invalidate(schoolID, id uint) {
	if r.RDB != nil {
		r.RDB.Del(context.Background(), examCacheKey(schoolID, id))
	}
}
