package controller

import (
	"time"

	"github.com/18d-shady/cbt-backend/internal/service"
	"github.com/18d-shady/cbt-backend/internal/util"

	"github.com/gin-gonic/gin"
)

type AuthController struct {
	AuthService *service.AuthService
}

func NewAuthController(authService *service.AuthService) *AuthController {
	return &AuthController{AuthService: authService}
}

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Login authenticates a student by exam number and password. Success means
// there is an exam they can enter right now; the response carries the token
// pair plus a snapshot of that exam.
func (c *AuthController) Login(ctx *gin.Context) {
	var req LoginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	result, err := c.AuthService.Login(req.Username, req.Password, time.Now())
	if err != nil {
		respondServiceError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{
		"tokens": result.Tokens,
		"student": gin.H{
			"id":        result.Student.ID,
			"username":  result.Student.Username,
			"firstName": result.Student.FirstName,
			"lastName":  result.Student.LastName,
			"class":     result.Student.Class,
		},
		"exam": result.Exam,
	})
}

type RefreshRequest struct {
	Refresh string `json:"refresh" binding:"required"`
}

func (c *AuthController) Refresh(ctx *gin.Context) {
	var req RefreshRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	access, err := c.AuthService.Refresh(req.Refresh)
	if err != nil {
		respondServiceError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"access": access})
}
