package controller

import (
	"errors"
	"lms_backend/internal/service"
	"lms_backend/internal/util"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type CommentController struct {
	CommentService *service.CommentService
}

func NewCommentController(commentService *service.CommentService) *CommentController {
	return &CommentController{CommentService: commentService}
}

// PostComment godoc
// @Summary Comment on a lesson
// @Description Set parentId to reply to another comment on the same lesson.
// @Tags comments
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   lessonId path int true "lesson id"
// @Param   body body service.CommentRequest true "comment"
// @Success 201 {object} util.Response{data=model.Comment}
// @Failure 404 {object} util.Response
// @Router /api/v1/lessons/{lessonId}/comments [post]
func (c *CommentController) PostComment(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req service.CommentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	comment, err := c.CommentService.Post(claims.UserID, util.MustParseUint(ctx.Param("lessonId")), req)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrParentCommentGone):
			util.BadRequest(ctx, "parent comment does not exist on this lesson")
		case errors.Is(err, gorm.ErrRecordNotFound):
			util.NotFound(ctx)
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Created(ctx, comment)
}

// ListComments godoc
// @Summary List top-level comments on a lesson
// @Tags comments
// @Produce  json
// @Param   lessonId path  int true  "lesson id"
// @Param   page     query int false "page"
// @Param   limit    query int false "page size"
// @Success 200 {object} util.Response{data=util.PageResponse}
// @Router /api/v1/lessons/{lessonId}/comments [get]
func (c *CommentController) ListComments(ctx *gin.Context) {
	page, limit := pagination(ctx)
	comments, total, err := c.CommentService.ListForLesson(util.MustParseUint(ctx.Param("lessonId")), page, limit)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, util.PageResponse{List: comments, Total: total, Page: page, Limit: limit})
}

// ListReplies godoc
// @Summary List replies to a comment
// @Tags comments
// @Produce  json
// @Param   commentId path int true "comment id"
// @Success 200 {object} util.Response{data=[]model.Comment}
// @Router /api/v1/comments/{commentId}/replies [get]
func (c *CommentController) ListReplies(ctx *gin.Context) {
	replies, err := c.CommentService.ListReplies(util.MustParseUint(ctx.Param("commentId")))
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, replies)
}

// DeleteComment godoc
// @Summary Delete a comment and its replies
// @Description Allowed for the author and for admins.
// @Tags comments
// @Produce  json
// @Security BearerAuth
// @Param   commentId path int true "comment id"
// @Success 200 {object} util.Response
// @Failure 403 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/v1/comments/{commentId} [delete]
func (c *CommentController) DeleteComment(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	err := c.CommentService.Delete(userFromClaims(claims), util.MustParseUint(ctx.Param("commentId")))
	if err != nil {
		switch {
		case errors.Is(err, util.ErrPermissionDenied):
			util.Forbidden(ctx)
		case errors.Is(err, gorm.ErrRecordNotFound):
			util.NotFound(ctx)
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, nil)
}
