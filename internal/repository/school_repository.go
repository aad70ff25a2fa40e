package repository

import (
	"github.com/18d-shady/cbt-backend/internal/model"

	"gorm.io/gorm"
)

type SchoolRepository struct {
	DB *gorm.DB
}

func NewSchoolRepository(db *gorm.DB) *SchoolRepository {
	return &SchoolRepository{DB: db}
}

func (r *SchoolRepository) FindByID(id uint) (*model.School, error) {
	var school model.School
	err := r.DB.First(&school, id).Error
	if err != nil {
		return nil, err
	}
	return &school, nil
}

func (r *SchoolRepository) FindClass(schoolID, classID uint) (*model.StudentClass, error) {
	var class model.StudentClass
	err := r.DB.Where("school_id = ? AND id = ?", schoolID, classID).First(&class).Error
	if err != nil {
		return nil, err
	}
	return &class, nil
}
