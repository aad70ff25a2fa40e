package controller

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/18d-shady/cbt-backend/internal/util"

	"github.com/gin-gonic/gin"
)

// respondServiceError maps the service error taxonomy onto HTTP statuses.
// Anything outside the taxonomy is treated as a 500 and logged.
func respondServiceError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, util.ErrInvalidCredentials),
		errors.Is(err, util.ErrNoExamToday),
		errors.Is(err, util.ErrStartNotConfigured),
		errors.Is(err, util.ErrInvalidRefresh),
		errors.Is(err, util.ErrInvalidKind):
		util.Error(ctx, http.StatusBadRequest, err.Error())

	case errors.Is(err, util.ErrExamNotOpen),
		errors.Is(err, util.ErrWindowPassed),
		errors.Is(err, util.ErrExamClosed),
		errors.Is(err, util.ErrSubscription):
		util.Error(ctx, http.StatusForbidden, err.Error())

	case errors.Is(err, util.ErrExamNotFound),
		errors.Is(err, util.ErrQuestionNotFound),
		errors.Is(err, util.ErrSessionNotFound),
		errors.Is(err, util.ErrAnswerNotFound),
		errors.Is(err, util.ErrUserNotFound),
		errors.Is(err, util.ErrCourseNotFound),
		errors.Is(err, util.ErrClassNotFound):
		util.Error(ctx, http.StatusNotFound, err.Error())

	default:
		util.LogInternalError(ctx, err)
	}
}

func paramUint(ctx *gin.Context, name string) (uint, bool) {
	v, err := strconv.ParseUint(ctx.Param(name), 10, 32)
	if err != nil {
		util.BadRequest(ctx, "invalid "+name)
		return 0, false
	}
	return uint(v), true
}

func paramInt(ctx *gin.Context, name string) (int, bool) {
	v, err := strconv.Atoi(ctx.Param(name))
	if err != nil {
		util.BadRequest(ctx, "invalid "+name)
		return 0, false
	}
	return v, true
}
