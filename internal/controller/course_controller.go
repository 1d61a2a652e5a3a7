package controller

import (
	"errors"
	"lms_backend/internal/model"
	"lms_backend/internal/repository"
	"lms_backend/internal/service"
	"lms_backend/internal/util"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type CourseController struct {
	CourseService *service.CourseService
	AccessService *service.AccessService
	Activity      *service.ActivityService
}

func NewCourseController(
	courseService *service.CourseService,
	accessService *service.AccessService,
	activity *service.ActivityService,
) *CourseController {
	return &CourseController{
		CourseService: courseService,
		AccessService: accessService,
		Activity:      activity,
	}
}

func userFromClaims(claims *util.Claims) *model.User {
	u := &model.User{Role: claims.Role, Username: claims.Username}
	u.ID = claims.UserID
	return u
}

// ListCourses godoc
// @Summary List courses
// @Description Published courses plus everything the caller can see
// @Tags courses
// @Produce  json
// @Param   category   query string false "category name"
// @Param   difficulty query string false "beginner|intermediate|advanced"
// @Param   search     query string false "title search"
// @Param   page       query int    false "page"
// @Param   limit      query int    false "page size"
// @Success 200 {object} util.Response{data=util.PageResponse}
// @Router /api/v1/courses [get]
func (c *CourseController) ListCourses(ctx *gin.Context) {
	page, limit := pagination(ctx)
	filter := repository.CourseFilter{
		Category:   ctx.Query("category"),
		Difficulty: ctx.Query("difficulty"),
		Search:     ctx.Query("search"),
		Status:     string(model.CoursePublished),
	}

	// admins browse everything, including drafts
	if claims := util.GetUserFromContext(ctx); claims != nil && claims.Role == model.RoleAdmin {
		filter.Status = ctx.Query("status")
	}

	courses, total, err := c.CourseService.ListCourses(filter, page, limit)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, util.PageResponse{List: courses, Total: total, Page: page, Limit: limit})
}

// GetCourse godoc
// @Summary Get a course with its modules, lessons and assessments
// @Tags courses
// @Produce  json
// @Param   id path int true "course id"
// @Success 200 {object} util.Response{data=model.Course}
// @Failure 403 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/v1/courses/{id} [get]
func (c *CourseController) GetCourse(ctx *gin.Context) {
	course, err := c.CourseService.GetCourse(util.MustParseUint(ctx.Param("id")))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	if course.Status != model.CoursePublished {
		claims := util.GetUserFromContext(ctx)
		if claims == nil {
			util.Unauthorized(ctx)
			return
		}
		ok, err := c.AccessService.CanView(userFromClaims(claims), course)
		if err != nil {
			util.LogInternalError(ctx, err)
			return
		}
		if !ok {
			util.Forbidden(ctx)
			return
		}
	}

	util.Success(ctx, course)
}

// CreateCourse godoc
// @Summary Create a course
// @Tags courses
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   body body service.CourseRequest true "course fields"
// @Success 201 {object} util.Response{data=model.Course}
// @Router /api/v1/courses [post]
func (c *CourseController) CreateCourse(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req service.CourseRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	instructorID := claims.UserID
	course, err := c.CourseService.CreateCourse(req, &instructorID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	c.Activity.Log(claims.UserID, "course.created", "course", &course.ID, nil)
	util.Created(ctx, course)
}

// requireEdit loads the course and checks edit rights in one step.
func (c *CourseController) requireEdit(ctx *gin.Context, courseID uint) *model.Course {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return nil
	}

	course, err := c.CourseService.CourseRepo.FindByID(courseID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return nil
	}

	ok, err := c.AccessService.CanEdit(userFromClaims(claims), course)
	if err != nil {
		util.LogInternalError(ctx, err)
		return nil
	}
	if !ok {
		util.Forbidden(ctx)
		return nil
	}
	return course
}

// UpdateCourse godoc
// @Summary Update a course
// @Tags courses
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   id   path int true "course id"
// @Param   body body service.CourseRequest true "course fields"
// @Success 200 {object} util.Response{data=model.Course}
// @Router /api/v1/courses/{id} [put]
func (c *CourseController) UpdateCourse(ctx *gin.Context) {
	id := util.MustParseUint(ctx.Param("id"))
	if c.requireEdit(ctx, id) == nil {
		return
	}

	var req service.CourseRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	course, err := c.CourseService.UpdateCourse(id, req)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, course)
}

type SetStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=draft published archived"`
}

// SetStatus godoc
// @Summary Publish, archive or unpublish a course
// @Tags courses
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   id   path int true "course id"
// @Param   body body SetStatusRequest true "target status"
// @Success 200 {object} util.Response{data=model.Course}
// @Router /api/v1/courses/{id}/status [put]
func (c *CourseController) SetStatus(ctx *gin.Context) {
	id := util.MustParseUint(ctx.Param("id"))
	if c.requireEdit(ctx, id) == nil {
		return
	}

	var req SetStatusRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	course, err := c.CourseService.SetStatus(id, model.CourseStatus(req.Status))
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, course)
}

// DeleteCourse godoc
// @Summary Delete a course and everything under it
// @Tags courses
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "course id"
// @Success 200 {object} util.Response
// @Router /api/v1/courses/{id} [delete]
func (c *CourseController) DeleteCourse(ctx *gin.Context) {
	id := util.MustParseUint(ctx.Param("id"))
	if c.requireEdit(ctx, id) == nil {
		return
	}

	if err := c.CourseService.DeleteCourse(id); err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

// UploadThumbnail godoc
// @Summary Upload a course thumbnail
// @Tags courses
// @Accept  multipart/form-data
// @Produce  json
// @Security BearerAuth
// @Param   id   path int true "course id"
// @Param   file formData file true "image file"
// @Success 200 {object} util.Response
// @Router /api/v1/courses/{id}/thumbnail [post]
func (c *CourseController) UploadThumbnail(ctx *gin.Context) {
	id := util.MustParseUint(ctx.Param("id"))
	if c.requireEdit(ctx, id) == nil {
		return
	}

	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		util.BadRequest(ctx, "file is required")
		return
	}
	contentType := fileHeader.Header.Get("Content-Type")
	if !util.IsImage(contentType) {
		util.BadRequest(ctx, "file must be an image")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	defer file.Close()

	url, err := c.CourseService.UploadThumbnail(ctx.Request.Context(),
		id, fileHeader.Filename, file, fileHeader.Size, contentType)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"url": url})
}

// Modules

// AddModule godoc
// @Summary Add a module to a course
// @Tags courses
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   id   path int true "course id"
// @Param   body body service.ModuleRequest true "module fields"
// @Success 201 {object} util.Response{data=model.Module}
// @Router /api/v1/courses/{id}/modules [post]
func (c *CourseController) AddModule(ctx *gin.Context) {
	courseID := util.MustParseUint(ctx.Param("id"))
	if c.requireEdit(ctx, courseID) == nil {
		return
	}

	var req service.ModuleRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	m, err := c.CourseService.AddModule(courseID, req)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Created(ctx, m)
}

// UpdateModule godoc
// @Summary Update a module
// @Tags courses
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   moduleId path int true "module id"
// @Param   body body service.ModuleRequest true "module fields"
// @Success 200 {object} util.Response{data=model.Module}
// @Router /api/v1/modules/{moduleId} [put]
func (c *CourseController) UpdateModule(ctx *gin.Context) {
	moduleID := util.MustParseUint(ctx.Param("moduleId"))
	m, err := c.CourseService.ModuleRepo.FindByID(moduleID)
	if err != nil {
		util.NotFound(ctx)
		return
	}
	if c.requireEdit(ctx, m.CourseID) == nil {
		return
	}

	var req service.ModuleRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	updated, err := c.CourseService.UpdateModule(moduleID, req)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, updated)
}

// DeleteModule godoc
// @Summary Delete a module and its lessons
// @Tags courses
// @Produce  json
// @Security BearerAuth
// @Param   moduleId path int true "module id"
// @Success 200 {object} util.Response
// @Router /api/v1/modules/{moduleId} [delete]
func (c *CourseController) DeleteModule(ctx *gin.Context) {
	moduleID := util.MustParseUint(ctx.Param("moduleId"))
	m, err := c.CourseService.ModuleRepo.FindByID(moduleID)
	if err != nil {
		util.NotFound(ctx)
		return
	}
	if c.requireEdit(ctx, m.CourseID) == nil {
		return
	}

	if err := c.CourseService.DeleteModule(moduleID); err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

// Lessons

// ListModuleLessons godoc
// @Summary List the lessons of a module in order
// @Tags courses
// @Produce  json
// @Security BearerAuth
// @Param   moduleId path int true "module id"
// @Success 200 {object} util.Response{data=[]model.Lesson}
// @Failure 403 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/v1/modules/{moduleId}/lessons [get]
func (c *CourseController) ListModuleLessons(ctx *gin.Context) {
	moduleID := util.MustParseUint(ctx.Param("moduleId"))

	mod, err := c.CourseService.ModuleRepo.FindByID(moduleID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	course, err := c.CourseService.CourseRepo.FindByID(mod.CourseID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	if course.Status != model.CoursePublished {
		claims := util.GetUserFromContext(ctx)
		if claims == nil {
			util.Unauthorized(ctx)
			return
		}
		ok, err := c.AccessService.CanView(userFromClaims(claims), course)
		if err != nil {
			util.LogInternalError(ctx, err)
			return
		}
		if !ok {
			util.Forbidden(ctx)
			return
		}
	}

	lessons, err := c.CourseService.ListModuleLessons(moduleID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, lessons)
}

// AddLesson godoc
// @Summary Add a lesson to a module
// @Tags courses
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   moduleId path int true "module id"
// @Param   body body service.LessonRequest true "lesson fields"
// @Success 201 {object} util.Response{data=model.Lesson}
// @Router /api/v1/modules/{moduleId}/lessons [post]
func (c *CourseController) AddLesson(ctx *gin.Context) {
	moduleID := util.MustParseUint(ctx.Param("moduleId"))
	m, err := c.CourseService.ModuleRepo.FindByID(moduleID)
	if err != nil {
		util.NotFound(ctx)
		return
	}
	if c.requireEdit(ctx, m.CourseID) == nil {
		return
	}

	var req service.LessonRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	l, err := c.CourseService.AddLesson(moduleID, req)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Created(ctx, l)
}

func (c *CourseController) editableLessonCourse(ctx *gin.Context, lessonID uint) bool {
	courseID, err := c.CourseService.LessonRepo.CourseID(lessonID)
	if err != nil || courseID == 0 {
		util.NotFound(ctx)
		return false
	}
	return c.requireEdit(ctx, courseID) != nil
}

// UpdateLesson godoc
// @Summary Update a lesson
// @Tags courses
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   lessonId path int true "lesson id"
// @Param   body body service.LessonRequest true "lesson fields"
// @Success 200 {object} util.Response{data=model.Lesson}
// @Router /api/v1/lessons/{lessonId} [put]
func (c *CourseController) UpdateLesson(ctx *gin.Context) {
	lessonID := util.MustParseUint(ctx.Param("lessonId"))
	if !c.editableLessonCourse(ctx, lessonID) {
		return
	}

	var req service.LessonRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	l, err := c.CourseService.UpdateLesson(lessonID, req)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, l)
}

// DeleteLesson godoc
// @Summary Delete a lesson
// @Tags courses
// @Produce  json
// @Security BearerAuth
// @Param   lessonId path int true "lesson id"
// @Success 200 {object} util.Response
// @Router /api/v1/lessons/{lessonId} [delete]
func (c *CourseController) DeleteLesson(ctx *gin.Context) {
	lessonID := util.MustParseUint(ctx.Param("lessonId"))
	if !c.editableLessonCourse(ctx, lessonID) {
		return
	}

	if err := c.CourseService.DeleteLesson(lessonID); err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

// UploadLessonVideo godoc
// @Summary Upload a lesson video
// @Description Probes the video duration before storing it
// @Tags courses
// @Accept  multipart/form-data
// @Produce  json
// @Security BearerAuth
// @Param   lessonId path int true "lesson id"
// @Param   file formData file true "video file"
// @Success 200 {object} util.Response{data=model.Lesson}
// @Router /api/v1/lessons/{lessonId}/video [post]
func (c *CourseController) UploadLessonVideo(ctx *gin.Context) {
	lessonID := util.MustParseUint(ctx.Param("lessonId"))
	if !c.editableLessonCourse(ctx, lessonID) {
		return
	}

	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		util.BadRequest(ctx, "file is required")
		return
	}
	contentType := fileHeader.Header.Get("Content-Type")
	if !util.IsVideo(contentType) {
		util.BadRequest(ctx, "file must be a video")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	defer file.Close()

	lesson, err := c.CourseService.UploadLessonVideo(ctx.Request.Context(),
		lessonID, fileHeader.Filename, file, contentType)
	if err != nil {
		if errors.Is(err, util.ErrUnsupportedVideoFormat) {
			util.BadRequest(ctx, err.Error())
			return
		}
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, lesson)
}
