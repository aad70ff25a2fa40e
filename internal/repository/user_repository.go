package repository

import (
	"time"

	"github.com/18d-shady/cbt-backend/internal/model"

	"gorm.io/gorm"
)

type UserRepository struct {
	DB *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{DB: db}
}

func (r *UserRepository) Create(user *model.User) error {
	return r.DB.Create(user).Error
}

func (r *UserRepository) FindByID(id uint) (*model.User, error) {
	var user model.User
	err := r.DB.Preload("School").Preload("Class").First(&user, id).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) FindByUsername(username string) (*model.User, error) {
	var user model.User
	err := r.DB.Preload("School").Preload("Class").
		Where("username = ?", username).
		First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// FindStudent scopes the lookup to one school; an id from another tenant
// behaves like a missing row.
func (r *UserRepository) FindStudent(schoolID, id uint) (*model.User, error) {
	var user model.User
	err := r.DB.Where("school_id = ? AND id = ? AND role = ?", schoolID, id, model.RoleStudent).
		First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) ListByClass(schoolID, classID uint) ([]model.User, error) {
	var users []model.User
	err := r.DB.Where("school_id = ? AND class_id = ? AND role = ?", schoolID, classID, model.RoleStudent).
		Find(&users).Error
	return users, err
}

func (r *UserRepository) UpdateLastLogin(id uint) error {
	return r.DB.Model(&model.User{}).Where("id = ?", id).
		Update("last_login", time.Now()).Error
}
