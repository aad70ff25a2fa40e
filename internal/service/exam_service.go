package service

import (
	"errors"

	"github.com/18d-shady/cbt-backend/internal/model"
	"github.com/18d-shady/cbt-backend/internal/repository"
	"github.com/18d-shady/cbt-backend/internal/util"

	"gorm.io/gorm"
)

// ExamService serves the student-facing read side of the catalog.
type ExamService struct {
	ExamRepo     *repository.ExamRepository
	QuestionRepo *repository.QuestionRepository
	AnswerRepo   *repository.AnswerRepository
	RegRepo      *repository.RegistrationRepository
}

func NewExamService(examRepo *repository.ExamRepository, questionRepo *repository.QuestionRepository, answerRepo *repository.AnswerRepository, regRepo *repository.RegistrationRepository) *ExamService {
	return &ExamService{
		ExamRepo:     examRepo,
		QuestionRepo: questionRepo,
		AnswerRepo:   answerRepo,
		RegRepo:      regRepo,
	}
}

func (s *ExamService) GetExam(schoolID, examID uint) (*model.Exam, error) {
	exam, err := s.ExamRepo.FindByID(schoolID, examID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrExamNotFound
		}
		return nil, err
	}
	return exam, nil
}

func (s *ExamService) Subjects(schoolID, userID uint) ([]string, error) {
	regs, err := s.RegRepo.ListByUser(schoolID, userID)
	if err != nil {
		return nil, err
	}
	subjects := make([]string, 0, len(regs))
	for _, reg := range regs {
		if reg.Course != nil {
			subjects = append(subjects, reg.Course.Name)
		}
	}
	return subjects, nil
}

// QuestionView is what a sitting student sees: the question without its
// correct answer, plus their previously saved answer if any.
type QuestionView struct {
	ID             uint                  `json:"id"`
	QuestionNumber int                   `json:"questionNumber"`
	Text           string                `json:"text"`
	QuestionType   model.QuestionKind    `json:"questionType"`
	OptionA        string                `json:"optionA,omitempty"`
	OptionB        string                `json:"optionB,omitempty"`
	OptionC        string                `json:"optionC,omitempty"`
	OptionD        string                `json:"optionD,omitempty"`
	Point          float64               `json:"point"`
	StudentAnswer  *string               `json:"studentAnswer"`
	Images         []model.QuestionImage `json:"images"`
}

// QuestionByIndex returns the question at a zero-based position in
// question-number order. An index past the end is a not-found, matching how
// clients page with "question 5 of 40".
func (s *ExamService) QuestionByIndex(schoolID, userID, examID uint, index int) (*QuestionView, error) {
	if _, err := s.ExamRepo.FindByID(schoolID, examID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrQuestionNotFound
		}
		return nil, err
	}

	question, err := s.QuestionRepo.FindByExamIndex(schoolID, examID, index)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrQuestionNotFound
		}
		return nil, err
	}

	view := &QuestionView{
		ID:             question.ID,
		QuestionNumber: question.QuestionNumber,
		Text:           question.Text,
		QuestionType:   question.Kind,
		OptionA:        question.OptionA,
		OptionB:        question.OptionB,
		OptionC:        question.OptionC,
		OptionD:        question.OptionD,
		Point:          question.Point,
		Images:         question.Images,
	}

	if answer, err := s.AnswerRepo.FindByUserAndQuestion(userID, question.ID); err == nil {
		view.StudentAnswer = &answer.AnswerText
	}
	return view, nil
}
