package service

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/18d-shady/cbt-backend/internal/config"
	"github.com/18d-shady/cbt-backend/internal/model"
	"github.com/18d-shady/cbt-backend/internal/repository"
	"github.com/18d-shady/cbt-backend/internal/util"
	"github.com/18d-shady/cbt-backend/pkg/database"
	"github.com/18d-shady/cbt-backend/pkg/logger"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// TestExamLifecycle_DBIntegration walks one student through a full sitting
// against a real MySQL: login, idempotent and concurrent starts, answer
// upserts, session end scoring, the essay grading pass and a reset. The
// unique-index arbitration under test only exists on a real database.
func TestExamLifecycle_DBIntegration(t *testing.T) {
	if os.Getenv("CBT_INTEGRATION") != "1" {
		t.Skip("set CBT_INTEGRATION=1 to run integration tests")
	}

	dsn := os.Getenv("CBT_TEST_DSN")
	if strings.TrimSpace(dsn) == "" {
		dsn = "cbt:cbt@tcp(127.0.0.1:3306)/cbt_test?charset=utf8mb4&parseTime=true&loc=Local"
	}

	if logger.Log == nil {
		logger.Log = zap.NewNop()
	}

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	suffix := time.Now().UnixNano()
	now := time.Now().Truncate(time.Second)
	start := now.Add(-10 * time.Minute)

	school := &model.School{Name: "ITest School", Code: fmt.Sprintf("IT%d", suffix%1_000_000_000), IsActive: true}
	mustCreate(t, db, school)

	class := &model.StudentClass{SchoolID: school.ID, Name: fmt.Sprintf("SS3-%d", suffix)}
	mustCreate(t, db, class)

	hash, err := bcrypt.GenerateFromPassword([]byte("secret123"), bcrypt.DefaultCost)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	student := &model.User{
		SchoolID: school.ID,
		Username: fmt.Sprintf("itest_student_%d", suffix),
		Password: string(hash),
		Role:     model.RoleStudent,
		ClassID:  &class.ID,
	}
	mustCreate(t, db, student)

	course := &model.Course{SchoolID: school.ID, Name: fmt.Sprintf("ITest Math %d", suffix), Code: fmt.Sprintf("M%d", suffix%1_000_000_000), ClassID: &class.ID}
	mustCreate(t, db, course)
	mustCreate(t, db, &model.CourseRegistration{SchoolID: school.ID, UserID: student.ID, CourseID: course.ID})

	exam := &model.Exam{
		SchoolID:        school.ID,
		CourseID:        course.ID,
		Title:           "ITest Paper",
		DurationMinutes: 60,
		TotalQuestions:  2,
		StartDatetime:   &start,
	}
	mustCreate(t, db, exam)

	objective := &model.Question{
		SchoolID: school.ID, ExamID: exam.ID, QuestionNumber: 1,
		Text: "2+2?", Kind: model.KindObjective,
		OptionA: "3", OptionB: "4", Point: 2, CorrectAnswer: "B",
	}
	mustCreate(t, db, objective)
	essay := &model.Question{
		SchoolID: school.ID, ExamID: exam.ID, QuestionNumber: 2,
		Text: "Explain.", Kind: model.KindEssay, Point: 5,
	}
	mustCreate(t, db, essay)

	cfg := &config.Config{Session: config.SessionConfig{GraceSeconds: -1}}
	cfg.JWT.Secret = "itest-secret-itest-secret-itest-secret"
	cfg.JWT.AccessExpire = time.Hour
	cfg.JWT.RefreshExpire = 24 * time.Hour

	userRepo := repository.NewUserRepository(db)
	examRepo := repository.NewExamRepository(db, nil)
	questionRepo := repository.NewQuestionRepository(db, nil)
	regRepo := repository.NewRegistrationRepository(db)
	sessionRepo := repository.NewSessionRepository(db)
	answerRepo := repository.NewAnswerRepository(db)
	scoreRepo := repository.NewScoreRepository(db)

	authSvc := NewAuthService(userRepo, regRepo, examRepo, cfg)
	sessionSvc := NewSessionService(examRepo, sessionRepo, scoreRepo, db, cfg)
	answerSvc := NewAnswerService(questionRepo, answerRepo)
	gradingSvc := NewGradingService(examRepo, answerRepo, scoreRepo, sessionRepo, userRepo, db)

	t.Run("login resolves the active exam", func(t *testing.T) {
		result, err := authSvc.Login(student.Username, "secret123", now)
		if err != nil {
			t.Fatalf("Login: %v", err)
		}
		if result.Exam == nil || result.Exam.ID != exam.ID {
			t.Fatalf("Login exam = %+v, want id %d", result.Exam, exam.ID)
		}
		if result.Tokens.Access == "" || result.Tokens.Refresh == "" {
			t.Fatal("Login returned empty token pair")
		}
	})

	t.Run("start is idempotent and shares the official deadline", func(t *testing.T) {
		first, err := sessionSvc.Start(school.ID, student.ID, exam.ID, now)
		if err != nil {
			t.Fatalf("first Start: %v", err)
		}
		wantEnd := start.Add(time.Hour)
		if first.EndTime.Unix() != wantEnd.Unix() {
			t.Errorf("EndTime = %v, want %v (start+duration, not now+duration)", first.EndTime, wantEnd)
		}

		second, err := sessionSvc.Start(school.ID, student.ID, exam.ID, now.Add(time.Minute))
		if err != nil {
			t.Fatalf("second Start: %v", err)
		}
		if second.ID != first.ID || second.EndTime.Unix() != first.EndTime.Unix() {
			t.Errorf("repeated Start moved the session: first %d/%v, second %d/%v",
				first.ID, first.EndTime, second.ID, second.EndTime)
		}

		var wg sync.WaitGroup
		ids := make([]uint, 8)
		for i := range ids {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				s, err := sessionSvc.Start(school.ID, student.ID, exam.ID, now)
				if err != nil {
					t.Errorf("concurrent Start: %v", err)
					return
				}
				ids[i] = s.ID
			}(i)
		}
		wg.Wait()
		for _, id := range ids {
			if id != first.ID {
				t.Errorf("concurrent Start produced session %d, want %d", id, first.ID)
			}
		}
	})

	t.Run("answers upsert and auto-grade", func(t *testing.T) {
		result, err := answerSvc.Submit(school.ID, student.ID, objective.ID, "b")
		if err != nil {
			t.Fatalf("Submit: %v", err)
		}
		if !result.IsCorrect || !result.IsGraded {
			t.Errorf("Submit(b) = %+v, want correct and graded", result)
		}

		// changing the mind replaces the row and its grading state
		if _, err := answerSvc.Submit(school.ID, student.ID, objective.ID, "A"); err != nil {
			t.Fatalf("resubmit: %v", err)
		}
		saved, err := answerRepo.FindByUserAndQuestion(student.ID, objective.ID)
		if err != nil {
			t.Fatalf("find answer: %v", err)
		}
		if saved.AnswerText != "A" || saved.IsCorrect || saved.PointsEarned != 0 {
			t.Errorf("after resubmit: %+v, want A/incorrect/0 points", saved)
		}

		if _, err := answerSvc.Submit(school.ID, student.ID, objective.ID, "B"); err != nil {
			t.Fatalf("final resubmit: %v", err)
		}

		essayResult, err := answerSvc.Submit(school.ID, student.ID, essay.ID, "Because of long division.")
		if err != nil {
			t.Fatalf("submit essay: %v", err)
		}
		if essayResult.IsGraded {
			t.Error("essay came back graded, want deferred")
		}
	})

	t.Run("end aggregates and closes the session", func(t *testing.T) {
		score, err := sessionSvc.End(student.ID, exam.ID, now.Add(5*time.Minute))
		if err != nil {
			t.Fatalf("End: %v", err)
		}
		if score != 2 {
			t.Errorf("End score = %v, want 2 (essay still ungraded)", score)
		}

		if remaining := sessionSvc.Remaining(student.ID, exam.ID, now); remaining != 0 {
			t.Errorf("Remaining after end = %d, want 0", remaining)
		}
		if _, err := sessionSvc.End(student.ID, exam.ID, now); !errors.Is(err, util.ErrSessionNotFound) {
			t.Errorf("second End error = %v, want %v", err, util.ErrSessionNotFound)
		}
	})

	t.Run("essay grading rescoring converges", func(t *testing.T) {
		essays, err := gradingSvc.ListUngradedEssays(school.ID, exam.ID)
		if err != nil {
			t.Fatalf("ListUngradedEssays: %v", err)
		}
		if len(essays) != 1 {
			t.Fatalf("ungraded essays = %d, want 1", len(essays))
		}

		// awarding 7 on a 5-point question clamps to 5
		report, err := gradingSvc.GradeEssays(school.ID, exam.ID, []EssayGrade{{AnswerID: essays[0].ID, Points: 7}})
		if err != nil {
			t.Fatalf("GradeEssays: %v", err)
		}
		if report.Graded != 1 {
			t.Errorf("Graded = %d, want 1", report.Graded)
		}
		scoreRow, err := scoreRepo.Find(student.ID, exam.ID)
		if err != nil {
			t.Fatalf("find score: %v", err)
		}
		if scoreRow.Score != 7 {
			t.Errorf("score after grading = %v, want 7 (2 + capped 5)", scoreRow.Score)
		}

		// regrading replaces, never accumulates
		if _, err := gradingSvc.GradeEssays(school.ID, exam.ID, []EssayGrade{{AnswerID: essays[0].ID, Points: 3}}); err != nil {
			t.Fatalf("regrade: %v", err)
		}
		scoreRow, err = scoreRepo.Find(student.ID, exam.ID)
		if err != nil {
			t.Fatalf("find score after regrade: %v", err)
		}
		if scoreRow.Score != 5 {
			t.Errorf("score after regrade = %v, want 5 (2 + 3)", scoreRow.Score)
		}
	})

	t.Run("reset wipes the attempt", func(t *testing.T) {
		if err := gradingSvc.ResetStudent(school.ID, student.ID, exam.ID); err != nil {
			t.Fatalf("ResetStudent: %v", err)
		}
		if _, err := scoreRepo.Find(student.ID, exam.ID); !errors.Is(err, gorm.ErrRecordNotFound) {
			t.Errorf("score after reset: err = %v, want record not found", err)
		}
		if _, err := answerRepo.FindByUserAndQuestion(student.ID, objective.ID); !errors.Is(err, gorm.ErrRecordNotFound) {
			t.Errorf("answer after reset: err = %v, want record not found", err)
		}
	})
}

func mustCreate(t *testing.T, db *gorm.DB, value interface{}) {
	t.Helper()
	if err := db.Create(value).Error; err != nil {
		t.Fatalf("seed %T: %v", value, err)
	}
}
