package controller

import (
	"lms_backend/internal/service"
	"lms_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type ActivityController struct {
	ActivityService *service.ActivityService
}

func NewActivityController(activityService *service.ActivityService) *ActivityController {
	return &ActivityController{ActivityService: activityService}
}

// MyActivity godoc
// @Summary Recent activity for the caller
// @Tags activity
// @Produce  json
// @Security BearerAuth
// @Param   page  query int false "page"
// @Param   limit query int false "page size"
// @Success 200 {object} util.Response{data=util.PageResponse}
// @Router /api/v1/activity [get]
func (c *ActivityController) MyActivity(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	page, limit := pagination(ctx)
	logs, total, err := c.ActivityService.RecentForUser(claims.UserID, page, limit)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, util.PageResponse{List: logs, Total: total, Page: page, Limit: limit})
}

// UserActivity godoc
// @Summary Recent activity for any user
// @Tags activity
// @Produce  json
// @Security BearerAuth
// @Param   id    path  int true  "user id"
// @Param   page  query int false "page"
// @Param   limit query int false "page size"
// @Success 200 {object} util.Response{data=util.PageResponse}
// @Router /api/v1/admin/users/{id}/activity [get]
func (c *ActivityController) UserActivity(ctx *gin.Context) {
	page, limit := pagination(ctx)
	logs, total, err := c.ActivityService.RecentForUser(util.MustParseUint(ctx.Param("id")), page, limit)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, util.PageResponse{List: logs, Total: total, Page: page, Limit: limit})
}
