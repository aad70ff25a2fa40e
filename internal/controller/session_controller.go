package controller

import (
	"time"

	"github.com/18d-shady/cbt-backend/internal/service"
	"github.com/18d-shady/cbt-backend/internal/util"

	"github.com/gin-gonic/gin"
)

type SessionController struct {
	SessionService *service.SessionService
}

func NewSessionController(sessionService *service.SessionService) *SessionController {
	return &SessionController{SessionService: sessionService}
}

// Start opens (or re-opens into) the student's attempt. Calling it again
// returns the same session with the original deadline.
func (c *SessionController) Start(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	examID, ok := paramUint(ctx, "id")
	if !ok {
		return
	}

	session, err := c.SessionService.Start(claims.SchoolID, claims.UserID, examID, time.Now())
	if err != nil {
		respondServiceError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{
		"startTime": session.StartTime,
		"endTime":   session.EndTime,
		"remaining": session.Remaining(time.Now()),
	})
}

// Time is the polling endpoint the exam timer runs on. It always answers 200;
// zero means either time is up or there is no session to speak of.
func (c *SessionController) Time(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	examID, ok := paramUint(ctx, "id")
	if !ok {
		return
	}

	remaining := c.SessionService.Remaining(claims.UserID, examID, time.Now())
	util.Success(ctx, gin.H{"remaining": remaining})
}

func (c *SessionController) End(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	examID, ok := paramUint(ctx, "id")
	if !ok {
		return
	}

	score, err := c.SessionService.End(claims.UserID, examID, time.Now())
	if err != nil {
		respondServiceError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"score": score})
}
