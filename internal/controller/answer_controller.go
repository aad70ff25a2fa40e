package controller

import (
	"github.com/18d-shady/cbt-backend/internal/service"
	"github.com/18d-shady/cbt-backend/internal/util"

	"github.com/gin-gonic/gin"
)

type AnswerController struct {
	AnswerService *service.AnswerService
}

func NewAnswerController(answerService *service.AnswerService) *AnswerController {
	return &AnswerController{AnswerService: answerService}
}

type SubmitAnswerRequest struct {
	QuestionID uint   `json:"questionId" binding:"required"`
	Answer     string `json:"answer"`
}

// Submit saves the student's current answer for one question, replacing any
// earlier one.
func (c *AnswerController) Submit(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)

	var req SubmitAnswerRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	result, err := c.AnswerService.Submit(claims.SchoolID, claims.UserID, req.QuestionID, req.Answer)
	if err != nil {
		respondServiceError(ctx, err)
		return
	}
	util.Success(ctx, result)
}
