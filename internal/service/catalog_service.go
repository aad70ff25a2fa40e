package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/18d-shady/cbt-backend/internal/model"
	"github.com/18d-shady/cbt-backend/internal/repository"
	"github.com/18d-shady/cbt-backend/internal/util"
	"github.com/18d-shady/cbt-backend/pkg/logger"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// CatalogService is the admin write side: courses, exams, questions,
// registrations. Everything here is scoped to the caller's school.
type CatalogService struct {
	CourseRepo   *repository.CourseRepository
	ExamRepo     *repository.ExamRepository
	QuestionRepo *repository.QuestionRepository
	RegRepo      *repository.RegistrationRepository
	UserRepo     *repository.UserRepository
	SchoolRepo   *repository.SchoolRepository
	Storage      *StorageService
}

func NewCatalogService(courseRepo *repository.CourseRepository, examRepo *repository.ExamRepository, questionRepo *repository.QuestionRepository, regRepo *repository.RegistrationRepository, userRepo *repository.UserRepository, schoolRepo *repository.SchoolRepository, storage *StorageService) *CatalogService {
	return &CatalogService{
		CourseRepo:   courseRepo,
		ExamRepo:     examRepo,
		QuestionRepo: questionRepo,
		RegRepo:      regRepo,
		UserRepo:     userRepo,
		SchoolRepo:   schoolRepo,
		Storage:      storage,
	}
}

type CourseInput struct {
	Name    string `json:"name" binding:"required"`
	Code    string `json:"code" binding:"required"`
	ClassID *uint  `json:"classId"`
}

func (s *CatalogService) CreateCourse(schoolID uint, in *CourseInput) (*model.Course, error) {
	if in.ClassID != nil {
		if _, err := s.SchoolRepo.FindClass(schoolID, *in.ClassID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, util.ErrClassNotFound
			}
			return nil, err
		}
	}

	course := &model.Course{
		SchoolID: schoolID,
		Name:     in.Name,
		Code:     in.Code,
		ClassID:  in.ClassID,
	}
	if err := s.CourseRepo.Create(course); err != nil {
		return nil, err
	}
	return course, nil
}

func (s *CatalogService) ListCourses(schoolID uint) ([]model.Course, error) {
	return s.CourseRepo.ListBySchool(schoolID)
}

type ExamInput struct {
	CourseID        uint       `json:"courseId" binding:"required"`
	Title           string     `json:"title" binding:"required"`
	DurationMinutes int        `json:"durationMinutes" binding:"required,gt=0"`
	Rules           string     `json:"rules"`
	StartDatetime   *time.Time `json:"startDatetime"`
}

func (s *CatalogService) CreateExam(schoolID uint, in *ExamInput) (*model.Exam, error) {
	if _, err := s.CourseRepo.FindByID(schoolID, in.CourseID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrCourseNotFound
		}
		return nil, err
	}

	exam := &model.Exam{
		SchoolID:        schoolID,
		CourseID:        in.CourseID,
		Title:           in.Title,
		DurationMinutes: in.DurationMinutes,
		Rules:           in.Rules,
		StartDatetime:   in.StartDatetime,
	}
	if err := s.ExamRepo.Create(exam); err != nil {
		return nil, err
	}
	return exam, nil
}

type ExamUpdate struct {
	Title           *string    `json:"title"`
	DurationMinutes *int       `json:"durationMinutes"`
	Rules           *string    `json:"rules"`
	StartDatetime   *time.Time `json:"startDatetime"`
}

// UpdateExam applies a partial edit. Rescheduling an exam moves the window
// for every student who has not started yet; sessions already open keep the
// deadline they were issued with.
func (s *CatalogService) UpdateExam(schoolID, examID uint, in *ExamUpdate) (*model.Exam, error) {
	exam, err := s.ExamRepo.FindByID(schoolID, examID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrExamNotFound
		}
		return nil, err
	}

	if in.Title != nil {
		exam.Title = *in.Title
	}
	if in.DurationMinutes != nil {
		exam.DurationMinutes = *in.DurationMinutes
	}
	if in.Rules != nil {
		exam.Rules = *in.Rules
	}
	if in.StartDatetime != nil {
		exam.StartDatetime = in.StartDatetime
	}

	// keep the advertised count honest on every edit
	count, err := s.ExamRepo.CountQuestions(exam.ID)
	if err != nil {
		return nil, err
	}
	exam.TotalQuestions = int(count)

	if err := s.ExamRepo.Update(exam); err != nil {
		return nil, err
	}
	return exam, nil
}

type QuestionInput struct {
	ExamID         uint               `json:"examId" binding:"required"`
	QuestionNumber int                `json:"questionNumber" binding:"required,gt=0"`
	Text           string             `json:"text" binding:"required"`
	QuestionType   model.QuestionKind `json:"questionType" binding:"required"`
	OptionA        string             `json:"optionA"`
	OptionB        string             `json:"optionB"`
	OptionC        string             `json:"optionC"`
	OptionD        string             `json:"optionD"`
	Point          float64            `json:"point"`
	CorrectAnswer  string             `json:"correctAnswer"`
}

func (s *CatalogService) CreateQuestion(schoolID uint, in *QuestionInput) (*model.Question, error) {
	if !in.QuestionType.Valid() {
		return nil, fmt.Errorf("%w: %q", util.ErrInvalidKind, in.QuestionType)
	}
	if _, err := s.ExamRepo.FindByID(schoolID, in.ExamID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrExamNotFound
		}
		return nil, err
	}

	point := in.Point
	if point <= 0 {
		point = 1
	}

	question := &model.Question{
		SchoolID:       schoolID,
		ExamID:         in.ExamID,
		QuestionNumber: in.QuestionNumber,
		Text:           in.Text,
		Kind:           in.QuestionType,
		OptionA:        in.OptionA,
		OptionB:        in.OptionB,
		OptionC:        in.OptionC,
		OptionD:        in.OptionD,
		Point:          point,
		CorrectAnswer:  in.CorrectAnswer,
	}
	if err := s.QuestionRepo.Create(question); err != nil {
		return nil, err
	}
	if err := s.ExamRepo.ReconcileTotalQuestions(schoolID, in.ExamID); err != nil {
		return nil, err
	}
	return question, nil
}

func (s *CatalogService) DeleteQuestion(schoolID, questionID uint) error {
	examID, err := s.QuestionRepo.Delete(schoolID, questionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return util.ErrQuestionNotFound
		}
		return err
	}
	return s.ExamRepo.ReconcileTotalQuestions(schoolID, examID)
}

// RegisterStudent enrolls one student on one course. Registering twice is a
// no-op, not an error.
func (s *CatalogService) RegisterStudent(schoolID, studentID, courseID uint) error {
	if _, err := s.UserRepo.FindStudent(schoolID, studentID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return util.ErrUserNotFound
		}
		return err
	}
	if _, err := s.CourseRepo.FindByID(schoolID, courseID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return util.ErrCourseNotFound
		}
		return err
	}

	return s.RegRepo.Create(&model.CourseRegistration{
		SchoolID: schoolID,
		UserID:   studentID,
		CourseID: courseID,
	})
}

// RegisterClassCourses enrolls every student in a class on each listed
// course. Existing registrations are skipped, so the call is safe to repeat
// at the start of a term. Returns how many (student, course) pairs were
// attempted.
func (s *CatalogService) RegisterClassCourses(schoolID, classID uint, courseIDs []uint) (int, error) {
	if _, err := s.SchoolRepo.FindClass(schoolID, classID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, util.ErrClassNotFound
		}
		return 0, err
	}

	for _, courseID := range courseIDs {
		if _, err := s.CourseRepo.FindByID(schoolID, courseID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return 0, fmt.Errorf("%w: course %d", util.ErrCourseNotFound, courseID)
			}
			return 0, err
		}
	}

	students, err := s.UserRepo.ListByClass(schoolID, classID)
	if err != nil {
		return 0, err
	}

	registered := 0
	for _, student := range students {
		for _, courseID := range courseIDs {
			err := s.RegRepo.Create(&model.CourseRegistration{
				SchoolID: schoolID,
				UserID:   student.ID,
				CourseID: courseID,
			})
			if err != nil {
				return registered, err
			}
			registered++
		}
	}

	logger.Log.Info("class registered for courses",
		zap.Uint("class_id", classID),
		zap.Int("students", len(students)),
		zap.Int("courses", len(courseIDs)),
	)
	return registered, nil
}

// AttachQuestionImage stores an uploaded image and links it to the question.
// Object keys are random; original filenames only contribute the extension.
func (s *CatalogService) AttachQuestionImage(ctx context.Context, schoolID, questionID uint, filename string, reader io.Reader, size int64, contentType, caption string) (*model.QuestionImage, error) {
	question, err := s.QuestionRepo.FindByID(schoolID, questionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrQuestionNotFound
		}
		return nil, err
	}

	key := fmt.Sprintf("questions/%d/%s%s", question.ID, uuid.NewString(), filepath.Ext(filename))
	url, err := s.Storage.Upload(ctx, key, reader, size, contentType)
	if err != nil {
		return nil, err
	}

	img := &model.QuestionImage{
		SchoolID:   schoolID,
		QuestionID: question.ID,
		ObjectKey:  key,
		URL:        url,
		Caption:    caption,
	}
	if err := s.QuestionRepo.AddImage(img); err != nil {
		// best effort cleanup of the orphaned object
		s.Storage.Delete(ctx, key)
		return nil, err
	}
	return img, nil
}
