package controller

import (
	"github.com/18d-shady/cbt-backend/internal/service"
	"github.com/18d-shady/cbt-backend/internal/util"

	"github.com/gin-gonic/gin"
)

type ExamController struct {
	ExamService *service.ExamService
}

func NewExamController(examService *service.ExamService) *ExamController {
	return &ExamController{ExamService: examService}
}

func (c *ExamController) GetExam(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	examID, ok := paramUint(ctx, "id")
	if !ok {
		return
	}

	exam, err := c.ExamService.GetExam(claims.SchoolID, examID)
	if err != nil {
		respondServiceError(ctx, err)
		return
	}
	util.Success(ctx, exam)
}

func (c *ExamController) Subjects(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)

	subjects, err := c.ExamService.Subjects(claims.SchoolID, claims.UserID)
	if err != nil {
		respondServiceError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"subjects": subjects})
}

// QuestionByIndex pages through an exam one question at a time. The index is
// zero-based over question-number order; the correct answer never leaves the
// server, but the student's own saved answer rides along.
func (c *ExamController) QuestionByIndex(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	examID, ok := paramUint(ctx, "id")
	if !ok {
		return
	}
	index, ok := paramInt(ctx, "index")
	if !ok {
		return
	}

	view, err := c.ExamService.QuestionByIndex(claims.SchoolID, claims.UserID, examID, index)
	if err != nil {
		respondServiceError(ctx, err)
		return
	}
	util.Success(ctx, view)
}
