package service

import (
	"errors"
	"time"

	"github.com/18d-shady/cbt-backend/internal/config"
	"github.com/18d-shady/cbt-backend/internal/model"
	"github.com/18d-shady/cbt-backend/internal/repository"
	"github.com/18d-shady/cbt-backend/internal/util"
	"github.com/18d-shady/cbt-backend/pkg/logger"
	"github.com/18d-shady/cbt-backend/pkg/monitoring"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// SessionService owns the absent -> active -> ended state machine for exam
// attempts. All time checks compare against wall-clock now at the instant of
// the call; nothing here runs on a timer.
type SessionService struct {
	ExamRepo    *repository.ExamRepository
	SessionRepo *repository.SessionRepository
	ScoreRepo   *repository.ScoreRepository
	DB          *gorm.DB

	// graceSeconds is the tolerance past the official deadline within which
	// a late end call is still accepted; negative disables the check.
	graceSeconds int
}

func NewSessionService(examRepo *repository.ExamRepository, sessionRepo *repository.SessionRepository, scoreRepo *repository.ScoreRepository, db *gorm.DB, cfg *config.Config) *SessionService {
	return &SessionService{
		ExamRepo:     examRepo,
		SessionRepo:  sessionRepo,
		ScoreRepo:    scoreRepo,
		DB:           db,
		graceSeconds: cfg.Session.GraceSeconds,
	}
}

// sessionWindow validates the exam schedule against now and returns the
// official close of the window: start + duration, regardless of when the
// student actually shows up. A late arrival gets a shorter effective window
// and every student shares the same deadline.
func sessionWindow(exam *model.Exam, now time.Time) (time.Time, error) {
	if exam.StartDatetime == nil {
		return time.Time{}, util.ErrStartNotConfigured
	}
	end := *exam.EndDatetime()
	if now.Before(*exam.StartDatetime) {
		return time.Time{}, util.ErrExamNotOpen
	}
	if now.After(end) {
		return time.Time{}, util.ErrExamClosed
	}
	return end, nil
}

// Start opens the single attempt for (user, exam), or returns the existing
// one unchanged. Idempotence matters: repeated start calls must not reset
// the clock, and two concurrent calls must agree on one row (the unique
// index arbitrates, the loser reads back the winner).
func (s *SessionService) Start(schoolID, userID, examID uint, now time.Time) (*model.ExamSession, error) {
	exam, err := s.ExamRepo.FindByID(schoolID, examID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrExamNotFound
		}
		return nil, err
	}

	end, err := sessionWindow(exam, now)
	if err != nil {
		return nil, err
	}

	session := &model.ExamSession{
		SchoolID:  schoolID,
		UserID:    userID,
		ExamID:    examID,
		StartTime: now,
		EndTime:   end,
	}
	session, created, err := s.SessionRepo.GetOrCreate(session)
	if err != nil {
		return nil, err
	}
	if created {
		monitoring.ActiveSessions.Inc()
		logger.Log.Info("exam session started",
			zap.Uint("user_id", userID),
			zap.Uint("exam_id", examID),
			zap.Time("end_time", session.EndTime),
		)
	}
	return session, nil
}

// Remaining returns the seconds left on the clock, or 0 when no session
// exists (never started, or already ended). It never errors so polling
// clients degrade gracefully.
func (s *SessionService) Remaining(userID, examID uint, now time.Time) int64 {
	session, err := s.SessionRepo.Find(userID, examID)
	if err != nil {
		return 0
	}
	return session.Remaining(now)
}

// End closes the attempt: the final score is aggregated from the current
// answers and the session row is deleted, all in one transaction. Only the
// StudentScore survives as history.
func (s *SessionService) End(userID, examID uint, now time.Time) (float64, error) {
	session, err := s.SessionRepo.Find(userID, examID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, util.ErrSessionNotFound
		}
		return 0, err
	}

	if s.graceSeconds >= 0 {
		deadline := session.EndTime.Add(time.Duration(s.graceSeconds) * time.Second)
		if now.After(deadline) {
			return 0, util.ErrExamClosed
		}
	}

	var total float64
	err = s.DB.Transaction(func(tx *gorm.DB) error {
		var err error
		total, err = recomputeScoreTx(tx, s.ScoreRepo, session.SchoolID, userID, examID)
		if err != nil {
			return err
		}
		return s.SessionRepo.DeleteTx(tx, session.ID)
	})
	if err != nil {
		return 0, err
	}

	monitoring.ActiveSessions.Dec()
	logger.Log.Info("exam session ended",
		zap.Uint("user_id", userID),
		zap.Uint("exam_id", examID),
		zap.Float64("score", total),
	)
	return total, nil
}
