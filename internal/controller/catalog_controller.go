package controller

import (
	"github.com/18d-shady/cbt-backend/internal/service"
	"github.com/18d-shady/cbt-backend/internal/util"

	"github.com/gin-gonic/gin"
)

// CatalogController exposes the admin write side. Routes mounting it sit
// behind the admin role check, so handlers only deal with tenant scoping.
type CatalogController struct {
	CatalogService *service.CatalogService
}

func NewCatalogController(catalogService *service.CatalogService) *CatalogController {
	return &CatalogController{CatalogService: catalogService}
}

func (c *CatalogController) CreateCourse(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)

	var req service.CourseInput
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	course, err := c.CatalogService.CreateCourse(claims.SchoolID, &req)
	if err != nil {
		respondServiceError(ctx, err)
		return
	}
	util.Created(ctx, course)
}

func (c *CatalogController) ListCourses(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)

	courses, err := c.CatalogService.ListCourses(claims.SchoolID)
	if err != nil {
		respondServiceError(ctx, err)
		return
	}
	util.Success(ctx, courses)
}

func (c *CatalogController) CreateExam(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)

	var req service.ExamInput
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	exam, err := c.CatalogService.CreateExam(claims.SchoolID, &req)
	if err != nil {
		respondServiceError(ctx, err)
		return
	}
	util.Created(ctx, exam)
}

func (c *CatalogController) UpdateExam(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	examID, ok := paramUint(ctx, "id")
	if !ok {
		return
	}

	var req service.ExamUpdate
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	exam, err := c.CatalogService.UpdateExam(claims.SchoolID, examID, &req)
	if err != nil {
		respondServiceError(ctx, err)
		return
	}
	util.Success(ctx, exam)
}

func (c *CatalogController) CreateQuestion(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)

	var req service.QuestionInput
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	question, err := c.CatalogService.CreateQuestion(claims.SchoolID, &req)
	if err != nil {
		respondServiceError(ctx, err)
		return
	}
	util.Created(ctx, question)
}

func (c *CatalogController) DeleteQuestion(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	questionID, ok := paramUint(ctx, "id")
	if !ok {
		return
	}

	if err := c.CatalogService.DeleteQuestion(claims.SchoolID, questionID); err != nil {
		respondServiceError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"deleted": true})
}

// UploadQuestionImage accepts a multipart form with an "image" file and an
// optional "caption" field.
func (c *CatalogController) UploadQuestionImage(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	questionID, ok := paramUint(ctx, "id")
	if !ok {
		return
	}

	header, err := ctx.FormFile("image")
	if err != nil {
		util.BadRequest(ctx, "image file is required")
		return
	}

	file, err := header.Open()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	defer file.Close()

	img, err := c.CatalogService.AttachQuestionImage(
		ctx.Request.Context(),
		claims.SchoolID,
		questionID,
		header.Filename,
		file,
		header.Size,
		header.Header.Get("Content-Type"),
		ctx.PostForm("caption"),
	)
	if err != nil {
		respondServiceError(ctx, err)
		return
	}
	util.Created(ctx, img)
}

type RegisterStudentRequest struct {
	StudentID uint `json:"studentId" binding:"required"`
	CourseID  uint `json:"courseId" binding:"required"`
}

func (c *CatalogController) RegisterStudent(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)

	var req RegisterStudentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	if err := c.CatalogService.RegisterStudent(claims.SchoolID, req.StudentID, req.CourseID); err != nil {
		respondServiceError(ctx, err)
		return
	}
	util.Created(ctx, gin.H{"registered": true})
}

type RegisterClassRequest struct {
	CourseIDs []uint `json:"courseIds" binding:"required,min=1"`
}

func (c *CatalogController) RegisterClassCourses(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	classID, ok := paramUint(ctx, "id")
	if !ok {
		return
	}

	var req RegisterClassRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	registered, err := c.CatalogService.RegisterClassCourses(claims.SchoolID, classID, req.CourseIDs)
	if err != nil {
		respondServiceError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"registrations": registered})
}
