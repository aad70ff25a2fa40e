package service

import (
	"errors"
	"fmt"

	"github.com/18d-shady/cbt-backend/internal/model"
	"github.com/18d-shady/cbt-backend/internal/repository"
	"github.com/18d-shady/cbt-backend/internal/util"
	"github.com/18d-shady/cbt-backend/pkg/logger"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// GradingService is the admin-facing half of scoring: the deferred essay
// pass and the re-aggregation it triggers.
type GradingService struct {
	ExamRepo    *repository.ExamRepository
	AnswerRepo  *repository.AnswerRepository
	ScoreRepo   *repository.ScoreRepository
	SessionRepo *repository.SessionRepository
	UserRepo    *repository.UserRepository
	DB          *gorm.DB
}

func NewGradingService(examRepo *repository.ExamRepository, answerRepo *repository.AnswerRepository, scoreRepo *repository.ScoreRepository, sessionRepo *repository.SessionRepository, userRepo *repository.UserRepository, db *gorm.DB) *GradingService {
	return &GradingService{
		ExamRepo:    examRepo,
		AnswerRepo:  answerRepo,
		ScoreRepo:   scoreRepo,
		SessionRepo: sessionRepo,
		UserRepo:    userRepo,
		DB:          db,
	}
}

type EssayGrade struct {
	AnswerID uint    `json:"answerId" binding:"required"`
	Points   float64 `json:"points"`
}

type GradeReport struct {
	Graded           int `json:"graded"`
	StudentsRescored int `json:"studentsRescored"`
}

// capPoints clamps a grader's award to what the question is worth; a grader
// cannot hand out more than the question carries, nor a negative score.
func capPoints(points, max float64) float64 {
	if points < 0 {
		return 0
	}
	if points > max {
		return max
	}
	return points
}

func (s *GradingService) ListUngradedEssays(schoolID, examID uint) ([]model.StudentAnswer, error) {
	if _, err := s.ExamRepo.FindByID(schoolID, examID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrExamNotFound
		}
		return nil, err
	}
	return s.AnswerRepo.ListUngradedEssays(schoolID, examID)
}

// GradeEssays applies a batch of essay marks, then recomputes the score of
// every student holding any answer under the exam. Totals are rebuilt from
// scratch, not incrementally, so repeated re-grading of the same answers
// converges on the same totals. The batch and the rescoring share one transaction; a
// concurrent session end cannot observe a half-applied pass.
func (s *GradingService) GradeEssays(schoolID, examID uint, grades []EssayGrade) (*GradeReport, error) {
	if _, err := s.ExamRepo.FindByID(schoolID, examID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrExamNotFound
		}
		return nil, err
	}

	report := &GradeReport{}
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		for _, g := range grades {
			answer, err := s.AnswerRepo.FindForGradingTx(tx, schoolID, examID, g.AnswerID)
			if err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return fmt.Errorf("%w: essay answer %d", util.ErrAnswerNotFound, g.AnswerID)
				}
				return err
			}

			points := capPoints(g.Points, answer.Question.Point)
			err = tx.Model(&model.StudentAnswer{}).Where("id = ?", answer.ID).
				Updates(map[string]interface{}{
					"points_earned": points,
					"is_graded":     true,
					"is_correct":    points > 0,
				}).Error
			if err != nil {
				return err
			}
			report.Graded++
		}

		userIDs, err := s.AnswerRepo.DistinctUserIDsByExamTx(tx, examID)
		if err != nil {
			return err
		}
		for _, uid := range userIDs {
			if _, err := recomputeScoreTx(tx, s.ScoreRepo, schoolID, uid, examID); err != nil {
				return err
			}
		}
		report.StudentsRescored = len(userIDs)
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Log.Info("essay grading pass applied",
		zap.Uint("exam_id", examID),
		zap.Int("graded", report.Graded),
		zap.Int("students_rescored", report.StudentsRescored),
	)
	return report, nil
}

// ResetStudent wipes one student's attempt for an exam: answers, any open
// session, and the score row. Registrations are untouched; the student can
// sit the exam again while the window is open.
func (s *GradingService) ResetStudent(schoolID, studentID, examID uint) error {
	if _, err := s.UserRepo.FindStudent(schoolID, studentID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return util.ErrUserNotFound
		}
		return err
	}
	if _, err := s.ExamRepo.FindByID(schoolID, examID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return util.ErrExamNotFound
		}
		return err
	}

	return s.DB.Transaction(func(tx *gorm.DB) error {
		if err := s.AnswerRepo.DeleteByUserAndExamTx(tx, studentID, examID); err != nil {
			return err
		}
		if err := s.SessionRepo.DeleteByUserAndExamTx(tx, studentID, examID); err != nil {
			return err
		}
		return s.ScoreRepo.DeleteByUserAndExamTx(tx, studentID, examID)
	})
}
