package controller

import (
	"errors"
	"lms_backend/internal/service"
	"lms_backend/internal/util"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type GroupController struct {
	GroupService *service.GroupService
}

func NewGroupController(groupService *service.GroupService) *GroupController {
	return &GroupController{GroupService: groupService}
}

// CreateGroup godoc
// @Summary Create a group
// @Tags groups
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   body body service.GroupRequest true "group fields"
// @Success 201 {object} util.Response{data=model.Group}
// @Router /api/v1/admin/groups [post]
func (c *GroupController) CreateGroup(ctx *gin.Context) {
	var req service.GroupRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	g, err := c.GroupService.CreateGroup(req)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Created(ctx, g)
}

// GetGroup godoc
// @Summary Get a group with its members
// @Tags groups
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "group id"
// @Success 200 {object} util.Response{data=model.Group}
// @Failure 404 {object} util.Response
// @Router /api/v1/admin/groups/{id} [get]
func (c *GroupController) GetGroup(ctx *gin.Context) {
	g, err := c.GroupService.GetGroup(util.MustParseUint(ctx.Param("id")))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, g)
}

// ListGroups godoc
// @Summary List groups
// @Tags groups
// @Produce  json
// @Security BearerAuth
// @Param   page  query int false "page"
// @Param   limit query int false "page size"
// @Success 200 {object} util.Response{data=util.PageResponse}
// @Router /api/v1/admin/groups [get]
func (c *GroupController) ListGroups(ctx *gin.Context) {
	page, limit := pagination(ctx)
	groups, total, err := c.GroupService.ListGroups(page, limit)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, util.PageResponse{List: groups, Total: total, Page: page, Limit: limit})
}

// UpdateGroup godoc
// @Summary Update a group
// @Tags groups
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   id   path int true "group id"
// @Param   body body service.GroupRequest true "group fields"
// @Success 200 {object} util.Response{data=model.Group}
// @Router /api/v1/admin/groups/{id} [put]
func (c *GroupController) UpdateGroup(ctx *gin.Context) {
	var req service.GroupRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	g, err := c.GroupService.UpdateGroup(util.MustParseUint(ctx.Param("id")), req)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, g)
}

// DeleteGroup godoc
// @Summary Delete a group and its memberships, grants and course links
// @Tags groups
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "group id"
// @Success 200 {object} util.Response
// @Router /api/v1/admin/groups/{id} [delete]
func (c *GroupController) DeleteGroup(ctx *gin.Context) {
	if err := c.GroupService.DeleteGroup(util.MustParseUint(ctx.Param("id"))); err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

// AddMember godoc
// @Summary Add a user to a group
// @Description Adding an existing member is a no-op.
// @Tags groups
// @Produce  json
// @Security BearerAuth
// @Param   id     path int true "group id"
// @Param   userId path int true "user id"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/v1/admin/groups/{id}/members/{userId} [post]
func (c *GroupController) AddMember(ctx *gin.Context) {
	err := c.GroupService.AddMember(
		util.MustParseUint(ctx.Param("id")),
		util.MustParseUint(ctx.Param("userId")))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) || errors.Is(err, util.ErrUserNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, nil)
}

// RemoveMember godoc
// @Summary Remove a user from a group
// @Tags groups
// @Produce  json
// @Security BearerAuth
// @Param   id     path int true "group id"
// @Param   userId path int true "user id"
// @Success 200 {object} util.Response
// @Router /api/v1/admin/groups/{id}/members/{userId} [delete]
func (c *GroupController) RemoveMember(ctx *gin.Context) {
	err := c.GroupService.RemoveMember(
		util.MustParseUint(ctx.Param("id")),
		util.MustParseUint(ctx.Param("userId")))
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

// AttachCourse godoc
// @Summary Link a course to a group
// @Tags groups
// @Produce  json
// @Security BearerAuth
// @Param   id       path int true "group id"
// @Param   courseId path int true "course id"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/v1/admin/groups/{id}/courses/{courseId} [post]
func (c *GroupController) AttachCourse(ctx *gin.Context) {
	err := c.GroupService.AttachCourse(
		util.MustParseUint(ctx.Param("id")),
		util.MustParseUint(ctx.Param("courseId")))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) || errors.Is(err, util.ErrCourseNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, nil)
}

// DetachCourse godoc
// @Summary Unlink a course from a group
// @Tags groups
// @Produce  json
// @Security BearerAuth
// @Param   id       path int true "group id"
// @Param   courseId path int true "course id"
// @Success 200 {object} util.Response
// @Router /api/v1/admin/groups/{id}/courses/{courseId} [delete]
func (c *GroupController) DetachCourse(ctx *gin.Context) {
	err := c.GroupService.DetachCourse(
		util.MustParseUint(ctx.Param("id")),
		util.MustParseUint(ctx.Param("courseId")))
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}
