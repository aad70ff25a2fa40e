package database

import (
	"fmt"
	"log"

	"github.com/18d-shady/cbt-backend/internal/config"
	"github.com/18d-shady/cbt-backend/internal/model"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func InitDB(cfg *config.DatabaseConfig) (*gorm.DB, error) {
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=%s&parseTime=%t&loc=Local",
		cfg.User,
		cfg.Password,
		cfg.Host,
		cfg.Port,
		cfg.DBName,
		cfg.Charset,
		cfg.ParseTime,
	)

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, err
	}

	log.Println("Database connection established")
	return db, nil
}

// Migrate creates/updates the schema. The unique composite indexes declared
// on ExamSession, StudentAnswer and StudentScore are what serialize the
// start-session, answer-upsert and score races; migrations must run before
// the engine serves traffic.
func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&model.School{},
		&model.StudentClass{},
		&model.User{},
		&model.Course{},
		&model.Exam{},
		&model.Question{},
		&model.QuestionImage{},
		&model.CourseRegistration{},
		&model.ExamSession{},
		&model.StudentAnswer{},
		&model.StudentScore{},
	)
	if err != nil {
		return err
	}

	log.Println("Database migration completed")
	return nil
}
