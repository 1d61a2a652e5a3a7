package controller

import (
	"errors"
	"lms_backend/internal/model"
	"lms_backend/internal/repository"
	"lms_backend/internal/util"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type CategoryController struct {
	Repo *repository.CategoryRepository
}

func NewCategoryController(repo *repository.CategoryRepository) *CategoryController {
	return &CategoryController{Repo: repo}
}

// ListCategories godoc
// @Summary List categories
// @Tags categories
// @Produce  json
// @Success 200 {object} util.Response{data=[]model.Category}
// @Router /api/v1/categories [get]
func (c *CategoryController) ListCategories(ctx *gin.Context) {
	cats, err := c.Repo.List()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, cats)
}

type CategoryRequest struct {
	Name string `json:"name" binding:"required"`
}

// CreateCategory godoc
// @Summary Create a category
// @Tags categories
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   body body CategoryRequest true "category fields"
// @Success 201 {object} util.Response{data=model.Category}
// @Failure 409 {object} util.Response
// @Router /api/v1/admin/categories [post]
func (c *CategoryController) CreateCategory(ctx *gin.Context) {
	var req CategoryRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	if _, err := c.Repo.FindByName(req.Name); err == nil {
		util.Conflict(ctx, "category name already exists")
		return
	}

	cat := &model.Category{Name: req.Name}
	if err := c.Repo.Create(cat); err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Created(ctx, cat)
}

// UpdateCategory godoc
// @Summary Update a category
// @Tags categories
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   id   path int true "category id"
// @Param   body body CategoryRequest true "category fields"
// @Success 200 {object} util.Response{data=model.Category}
// @Router /api/v1/admin/categories/{id} [put]
func (c *CategoryController) UpdateCategory(ctx *gin.Context) {
	var req CategoryRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	cat, err := c.Repo.FindByID(util.MustParseUint(ctx.Param("id")))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	cat.Name = req.Name
	if err := c.Repo.Update(cat); err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, cat)
}

// DeleteCategory godoc
// @Summary Delete a category
// @Description Courses keep their category string; nothing cascades.
// @Tags categories
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "category id"
// @Success 200 {object} util.Response
// @Router /api/v1/admin/categories/{id} [delete]
func (c *CategoryController) DeleteCategory(ctx *gin.Context) {
	if err := c.Repo.Delete(util.MustParseUint(ctx.Param("id"))); err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}
