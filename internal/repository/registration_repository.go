package repository

import (
	"github.com/18d-shady/cbt-backend/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type RegistrationRepository struct {
	DB *gorm.DB
}

func NewRegistrationRepository(db *gorm.DB) *RegistrationRepository {
	return &RegistrationRepository{DB: db}
}

// Create is an idempotent insert; registering the same student twice for the
// same course is a no-op thanks to the (user, course) unique index.
func (r *RegistrationRepository) Create(reg *model.CourseRegistration) error {
	return r.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "course_id"}},
		DoNothing: true,
	}).Create(reg).Error
}

func (r *RegistrationRepository) ListByUser(schoolID, userID uint) ([]model.CourseRegistration, error) {
	var regs []model.CourseRegistration
	err := r.DB.Where("school_id = ? AND user_id = ?", schoolID, userID).
		Preload("Course").
		Find(&regs).Error
	return regs, err
}

func (r *RegistrationRepository) CourseIDsByUser(schoolID, userID uint) ([]uint, error) {
	var ids []uint
	err := r.DB.Model(&model.CourseRegistration{}).
		Where("school_id = ? AND user_id = ?", schoolID, userID).
		Pluck("course_id", &ids).Error
	return ids, err
}
