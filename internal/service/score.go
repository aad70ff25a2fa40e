package service

import (
	"github.com/18d-shady/cbt-backend/internal/model"
	"github.com/18d-shady/cbt-backend/internal/repository"

	"gorm.io/gorm"
)

// recomputeScoreTx derives the authoritative score for (user, exam) from the
// current answer rows and upserts it as a whole. It runs inside the caller's
// transaction so the snapshot read and the score write land atomically;
// calling it any number of times with unchanged answers writes the same
// total. StudentScore is a materialized cache of this sum, never a source of
// truth.
func recomputeScoreTx(tx *gorm.DB, scores *repository.ScoreRepository, schoolID, userID, examID uint) (float64, error) {
	total, err := scores.SumPointsEarnedTx(tx, userID, examID)
	if err != nil {
		return 0, err
	}
	err = scores.UpsertTx(tx, &model.StudentScore{
		SchoolID: schoolID,
		UserID:   userID,
		ExamID:   examID,
		Score:    total,
	})
	return total, err
}
