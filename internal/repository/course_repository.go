package repository

import (
	"github.com/18d-shady/cbt-backend/internal/model"

	"gorm.io/gorm"
)

type CourseRepository struct {
	DB *gorm.DB
}

func NewCourseRepository(db *gorm.DB) *CourseRepository {
	return &CourseRepository{DB: db}
}

func (r *CourseRepository) Create(course *model.Course) error {
	return r.DB.Create(course).Error
}

func (r *CourseRepository) FindByID(schoolID, id uint) (*model.Course, error) {
	var course model.Course
	err := r.DB.Where("school_id = ? AND id = ?", schoolID, id).
		Preload("Class").First(&course).Error
	if err != nil {
		return nil, err
	}
	return &course, nil
}

func (r *CourseRepository) ListBySchool(schoolID uint) ([]model.Course, error) {
	var courses []model.Course
	err := r.DB.Where("school_id = ?", schoolID).
		Preload("Class").
		Order("name asc").
		Find(&courses).Error
	return courses, err
}

func (r *CourseRepository) ListByClass(schoolID, classID uint) ([]model.Course, error) {
	var courses []model.Course
	err := r.DB.Where("school_id = ? AND class_id = ?", schoolID, classID).
		Find(&courses).Error
	return courses, err
}
