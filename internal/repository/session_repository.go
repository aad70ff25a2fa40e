package repository

import (
	"github.com/18d-shady/cbt-backend/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type SessionRepository struct {
	DB *gorm.DB
}

func NewSessionRepository(db *gorm.DB) *SessionRepository {
	return &SessionRepository{DB: db}
}

func (r *SessionRepository) Find(userID, examID uint) (*model.ExamSession, error) {
	var session model.ExamSession
	err := r.DB.Where("user_id = ? AND exam_id = ?", userID, examID).
		First(&session).Error
	if err != nil {
		return nil, err
	}
	return &session, nil
}

// GetOrCreate inserts the session unless one already exists for the
// (user, exam) pair. The unique index arbitrates concurrent starts: the
// loser's insert affects zero rows and it reads back the winner's row, so
// both callers observe the same end time. created reports whether this call
// inserted the row.
func (r *SessionRepository) GetOrCreate(session *model.ExamSession) (*model.ExamSession, bool, error) {
	res := r.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "exam_id"}},
		DoNothing: true,
	}).Create(session)
	if res.Error != nil {
		return nil, false, res.Error
	}
	if res.RowsAffected > 0 {
		return session, true, nil
	}

	existing, err := r.Find(session.UserID, session.ExamID)
	if err != nil {
		return nil, false, err
	}
	return existing, false, nil
}

func (r *SessionRepository) DeleteTx(tx *gorm.DB, id uint) error {
	return tx.Unscoped().Delete(&model.ExamSession{}, id).Error
}

func (r *SessionRepository) DeleteByUserAndExamTx(tx *gorm.DB, userID, examID uint) error {
	return tx.Unscoped().
		Where("user_id = ? AND exam_id = ?", userID, examID).
		Delete(&model.ExamSession{}).Error
}

func (r *SessionRepository) CountOpen() (int64, error) {
	var count int64
	err := r.DB.Model(&model.ExamSession{}).Count(&count).Error
	return count, err
}
