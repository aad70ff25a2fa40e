package service

import (
	"fmt"
	"time"

	"github.com/18d-shady/cbt-backend/internal/config"
	"github.com/18d-shady/cbt-backend/internal/model"
	"github.com/18d-shady/cbt-backend/internal/repository"
	"github.com/18d-shady/cbt-backend/internal/util"
	"github.com/18d-shady/cbt-backend/pkg/logger"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

type AuthService struct {
	UserRepo *repository.UserRepository
	RegRepo  *repository.RegistrationRepository
	ExamRepo *repository.ExamRepository
	Cfg      *config.Config
}

func NewAuthService(userRepo *repository.UserRepository, regRepo *repository.RegistrationRepository, examRepo *repository.ExamRepository, cfg *config.Config) *AuthService {
	return &AuthService{
		UserRepo: userRepo,
		RegRepo:  regRepo,
		ExamRepo: examRepo,
		Cfg:      cfg,
	}
}

type LoginResult struct {
	Tokens  *util.TokenPair `json:"tokens"`
	Student *model.User     `json:"student"`
	Exam    *model.Exam     `json:"exam"`
}

// Login authenticates by exam number + password and resolves the single exam
// the student may enter right now. Eligibility is limited to exams starting
// today under courses the student is registered for, within their school.
func (s *AuthService) Login(username, password string, now time.Time) (*LoginResult, error) {
	user, err := s.UserRepo.FindByUsername(username)
	if err != nil {
		return nil, util.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, util.ErrInvalidCredentials
	}

	courseIDs, err := s.RegRepo.CourseIDsByUser(user.SchoolID, user.ID)
	if err != nil {
		return nil, err
	}

	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	exams, err := s.ExamRepo.FindEligibleToday(user.SchoolID, courseIDs, dayStart, dayStart.AddDate(0, 0, 1))
	if err != nil {
		return nil, err
	}
	if len(exams) == 0 {
		return nil, util.ErrNoExamToday
	}

	active, upcoming := pickExam(exams, now)
	if active == nil {
		if upcoming != nil {
			name := upcoming.Title
			if upcoming.Course != nil {
				name = upcoming.Course.Name
			}
			return nil, fmt.Errorf("%w: %s is scheduled for today at %s, please log in then",
				util.ErrExamNotOpen, name, upcoming.StartDatetime.Format("3:04 PM"))
		}
		return nil, util.ErrWindowPassed
	}

	if err := s.UserRepo.UpdateLastLogin(user.ID); err != nil {
		logger.Log.Warn("failed to record last login", zap.Uint("user_id", user.ID), zap.Error(err))
	}

	tokens, err := util.GenerateTokenPair(user, s.Cfg.JWT.Secret, s.Cfg.JWT.AccessExpire, s.Cfg.JWT.RefreshExpire)
	if err != nil {
		return nil, err
	}

	return &LoginResult{Tokens: tokens, Student: user, Exam: active}, nil
}

// Refresh exchanges a valid refresh token for a fresh access token.
func (s *AuthService) Refresh(refreshToken string) (string, error) {
	claims, err := util.ParseJWT(refreshToken, s.Cfg.JWT.Secret)
	if err != nil || claims.TokenType != util.TokenRefresh {
		return "", util.ErrInvalidRefresh
	}

	user, err := s.UserRepo.FindByID(claims.UserID)
	if err != nil {
		return "", util.ErrInvalidRefresh
	}

	pair, err := util.GenerateTokenPair(user, s.Cfg.JWT.Secret, s.Cfg.JWT.AccessExpire, 0)
	if err != nil {
		return "", err
	}
	return pair.Access, nil
}

// pickExam splits today's exams into the one whose window contains now and
// the next upcoming one. exams must be sorted by start time ascending, which
// makes both picks deterministic when several windows overlap: the earliest
// active exam wins.
func pickExam(exams []model.Exam, now time.Time) (active, upcoming *model.Exam) {
	for i := range exams {
		e := &exams[i]
		if e.StartDatetime == nil {
			continue
		}
		if e.WindowContains(now) {
			return e, nil
		}
		if upcoming == nil && e.StartDatetime.After(now) {
			upcoming = e
		}
	}
	return nil, upcoming
}
