package service

import (
	"errors"

	"github.com/18d-shady/cbt-backend/internal/model"
	"github.com/18d-shady/cbt-backend/internal/repository"
	"github.com/18d-shady/cbt-backend/internal/util"

	"gorm.io/gorm"
)

type AnswerService struct {
	QuestionRepo *repository.QuestionRepository
	AnswerRepo   *repository.AnswerRepository
}

func NewAnswerService(questionRepo *repository.QuestionRepository, answerRepo *repository.AnswerRepository) *AnswerService {
	return &AnswerService{QuestionRepo: questionRepo, AnswerRepo: answerRepo}
}

type SubmitResult struct {
	Saved     bool `json:"saved"`
	IsCorrect bool `json:"isCorrect"`
	IsGraded  bool `json:"isGraded"`
}

// Submit records the student's latest answer and grades it on the spot for
// auto-gradable kinds. It is a pure upsert on (user, question): resubmitting
// overwrites the prior row and its grading state. The running score is not
// touched here; aggregation happens at session end.
func (s *AnswerService) Submit(schoolID, userID, questionID uint, answerText string) (*SubmitResult, error) {
	question, err := s.QuestionRepo.FindByID(schoolID, questionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrQuestionNotFound
		}
		return nil, err
	}

	isCorrect := question.Kind.Grade(answerText, question.CorrectAnswer)
	points := 0.0
	if isCorrect {
		points = question.Point
	}

	answer := &model.StudentAnswer{
		SchoolID:     schoolID,
		UserID:       userID,
		QuestionID:   question.ID,
		AnswerText:   answerText,
		IsCorrect:    isCorrect,
		IsGraded:     question.Kind.AutoGradable(),
		PointsEarned: points,
	}
	if err := s.AnswerRepo.Upsert(answer); err != nil {
		return nil, err
	}

	return &SubmitResult{Saved: true, IsCorrect: isCorrect, IsGraded: answer.IsGraded}, nil
}
