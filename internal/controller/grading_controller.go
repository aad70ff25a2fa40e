package controller

import (
	"github.com/18d-shady/cbt-backend/internal/service"
	"github.com/18d-shady/cbt-backend/internal/util"

	"github.com/gin-gonic/gin"
)

type GradingController struct {
	GradingService *service.GradingService
}

func NewGradingController(gradingService *service.GradingService) *GradingController {
	return &GradingController{GradingService: gradingService}
}

func (c *GradingController) ListEssays(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	examID, ok := paramUint(ctx, "id")
	if !ok {
		return
	}

	essays, err := c.GradingService.ListUngradedEssays(claims.SchoolID, examID)
	if err != nil {
		respondServiceError(ctx, err)
		return
	}
	util.Success(ctx, essays)
}

type GradeEssaysRequest struct {
	Grades []service.EssayGrade `json:"grades" binding:"required,min=1,dive"`
}

// GradeEssays applies a batch of marks and rescored totals in one shot. The
// whole batch succeeds or none of it does.
func (c *GradingController) GradeEssays(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	examID, ok := paramUint(ctx, "id")
	if !ok {
		return
	}

	var req GradeEssaysRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	report, err := c.GradingService.GradeEssays(claims.SchoolID, examID, req.Grades)
	if err != nil {
		respondServiceError(ctx, err)
		return
	}
	util.Success(ctx, report)
}

type ResetStudentRequest struct {
	ExamID uint `json:"examId" binding:"required"`
}

func (c *GradingController) ResetStudent(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	studentID, ok := paramUint(ctx, "id")
	if !ok {
		return
	}

	var req ResetStudentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	if err := c.GradingService.ResetStudent(claims.SchoolID, studentID, req.ExamID); err != nil {
		respondServiceError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"reset": true})
}
