package util

import "errors"

// Engine error taxonomy. Controllers map these onto HTTP statuses; nothing
// here is fatal to the process and nothing is retried server-side.
var (
	// validation / auth (400)
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrNoExamToday        = errors.New("you have no exams scheduled for today")
	ErrStartNotConfigured = errors.New("exam start time is not configured")
	ErrInvalidRefresh     = errors.New("invalid refresh token")
	ErrInvalidKind        = errors.New("unknown question type")

	// window violations (403)
	ErrExamNotOpen  = errors.New("your exam has not started yet")
	ErrWindowPassed = errors.New("your exam window for today has already passed")
	ErrExamClosed   = errors.New("the exam window has already closed")
	ErrSubscription = errors.New("subscription expired")

	// absent or out of the caller's school (404); a tenant mismatch is
	// indistinguishable from a missing row
	ErrExamNotFound     = errors.New("exam not found")
	ErrQuestionNotFound = errors.New("question not found")
	ErrSessionNotFound  = errors.New("no active session found")
	ErrAnswerNotFound   = errors.New("answer not found")
	ErrUserNotFound     = errors.New("user not found")
	ErrCourseNotFound   = errors.New("course not found")
	ErrClassNotFound    = errors.New("class not found")
)
