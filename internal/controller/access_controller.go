package controller

import (
	"errors"
	"lms_backend/internal/service"
	"lms_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type AccessController struct {
	AccessService *service.AccessService
}

func NewAccessController(accessService *service.AccessService) *AccessController {
	return &AccessController{AccessService: accessService}
}

// Grant godoc
// @Summary Grant course access to a user or a group
// @Description Exactly one of userId and groupId must be set.
// @Tags access
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   body body service.GrantRequest true "grant"
// @Success 201 {object} util.Response{data=model.CourseAccess}
// @Failure 400 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/v1/admin/access [post]
func (c *AccessController) Grant(ctx *gin.Context) {
	var req service.GrantRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	grant, err := c.AccessService.Grant(req)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrAccessTargetMissing):
			util.BadRequest(ctx, "either userId or groupId must be set")
		case errors.Is(err, util.ErrAccessTargetBoth):
			util.BadRequest(ctx, "userId and groupId are mutually exclusive")
		case errors.Is(err, util.ErrCourseNotFound):
			util.NotFound(ctx)
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Created(ctx, grant)
}

// Revoke godoc
// @Summary Revoke a grant
// @Tags access
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "grant id"
// @Success 200 {object} util.Response
// @Router /api/v1/admin/access/{id} [delete]
func (c *AccessController) Revoke(ctx *gin.Context) {
	if err := c.AccessService.Revoke(util.MustParseUint(ctx.Param("id"))); err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

// ListForCourse godoc
// @Summary List grants on a course
// @Tags access
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "course id"
// @Success 200 {object} util.Response{data=[]model.CourseAccess}
// @Router /api/v1/admin/courses/{id}/access [get]
func (c *AccessController) ListForCourse(ctx *gin.Context) {
	grants, err := c.AccessService.ListForCourse(util.MustParseUint(ctx.Param("id")))
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, grants)
}

// MyAccessibleCourses godoc
// @Summary List course ids the caller can see beyond the published catalog
// @Tags access
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} util.Response
// @Router /api/v1/access/courses [get]
func (c *AccessController) MyAccessibleCourses(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	ids, err := c.AccessService.AccessibleCourseIDs(claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"courseIds": ids})
}
