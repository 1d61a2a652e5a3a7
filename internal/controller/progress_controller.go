package controller

import (
	"errors"
	"lms_backend/internal/service"
	"lms_backend/internal/util"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type ProgressController struct {
	ProgressService *service.ProgressService
}

func NewProgressController(progressService *service.ProgressService) *ProgressController {
	return &ProgressController{ProgressService: progressService}
}

// TouchLesson godoc
// @Summary Record that the caller opened a lesson
// @Tags progress
// @Produce  json
// @Security BearerAuth
// @Param   lessonId path int true "lesson id"
// @Success 200 {object} util.Response{data=model.LessonProgress}
// @Failure 404 {object} util.Response
// @Router /api/v1/lessons/{lessonId}/progress [post]
func (c *ProgressController) TouchLesson(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	p, err := c.ProgressService.Touch(claims.UserID, util.MustParseUint(ctx.Param("lessonId")))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, p)
}

// CompleteLesson godoc
// @Summary Mark a lesson completed
// @Description Completing the last lesson of an enrolled course issues a certificate.
// @Tags progress
// @Produce  json
// @Security BearerAuth
// @Param   lessonId path int true "lesson id"
// @Success 200 {object} util.Response{data=model.LessonProgress}
// @Failure 404 {object} util.Response
// @Router /api/v1/lessons/{lessonId}/complete [post]
func (c *ProgressController) CompleteLesson(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	p, err := c.ProgressService.Complete(claims.UserID, util.MustParseUint(ctx.Param("lessonId")))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, p)
}

// CourseProgress godoc
// @Summary Progress summary for one enrolled course
// @Tags progress
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "course id"
// @Success 200 {object} util.Response{data=service.CourseProgress}
// @Failure 404 {object} util.Response
// @Router /api/v1/courses/{id}/progress [get]
func (c *ProgressController) CourseProgress(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	progress, err := c.ProgressService.ForCourse(claims.UserID, util.MustParseUint(ctx.Param("id")))
	if err != nil {
		if errors.Is(err, util.ErrNotEnrolled) || errors.Is(err, gorm.ErrRecordNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, progress)
}
