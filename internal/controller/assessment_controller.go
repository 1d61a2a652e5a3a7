package controller

import (
	"errors"
	"lms_backend/internal/service"
	"lms_backend/internal/util"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type AssessmentController struct {
	AssessmentService *service.AssessmentService
}

func NewAssessmentController(assessmentService *service.AssessmentService) *AssessmentController {
	return &AssessmentController{AssessmentService: assessmentService}
}

// ListModuleAssessments godoc
// @Summary List the assessments attached to a module
// @Tags assessments
// @Produce  json
// @Security BearerAuth
// @Param   moduleId path int true "module id"
// @Success 200 {object} util.Response{data=[]model.Assessment}
// @Router /api/v1/modules/{moduleId}/assessments [get]
func (c *AssessmentController) ListModuleAssessments(ctx *gin.Context) {
	as, err := c.AssessmentService.ListForModule(util.MustParseUint(ctx.Param("moduleId")))
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, as)
}

// CreateAssessment godoc
// @Summary Create an assessment
// @Tags assessments
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   body body service.AssessmentRequest true "assessment fields"
// @Success 201 {object} util.Response{data=model.Assessment}
// @Router /api/v1/assessments [post]
func (c *AssessmentController) CreateAssessment(ctx *gin.Context) {
	var req service.AssessmentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	a, err := c.AssessmentService.CreateAssessment(req)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Created(ctx, a)
}

// GetAssessment godoc
// @Summary Get an assessment with its questions
// @Description Correct answers are included; admin surface only.
// @Tags assessments
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "assessment id"
// @Success 200 {object} util.Response{data=model.Assessment}
// @Failure 404 {object} util.Response
// @Router /api/v1/admin/assessments/{id} [get]
func (c *AssessmentController) GetAssessment(ctx *gin.Context) {
	a, err := c.AssessmentService.GetAssessment(util.MustParseUint(ctx.Param("id")))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, a)
}

// UpdateAssessment godoc
// @Summary Update an assessment
// @Tags assessments
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   id   path int true "assessment id"
// @Param   body body service.AssessmentRequest true "assessment fields"
// @Success 200 {object} util.Response{data=model.Assessment}
// @Router /api/v1/assessments/{id} [put]
func (c *AssessmentController) UpdateAssessment(ctx *gin.Context) {
	var req service.AssessmentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	a, err := c.AssessmentService.UpdateAssessment(util.MustParseUint(ctx.Param("id")), req)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, a)
}

// DeleteAssessment godoc
// @Summary Delete an assessment, its questions and attempts
// @Tags assessments
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "assessment id"
// @Success 200 {object} util.Response
// @Router /api/v1/assessments/{id} [delete]
func (c *AssessmentController) DeleteAssessment(ctx *gin.Context) {
	if err := c.AssessmentService.DeleteAssessment(util.MustParseUint(ctx.Param("id"))); err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

// CreateQuestion godoc
// @Summary Add a question to an assessment
// @Tags assessments
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   id   path int true "assessment id"
// @Param   body body service.QuestionRequest true "question fields"
// @Success 201 {object} util.Response{data=model.Question}
// @Failure 400 {object} util.Response
// @Router /api/v1/assessments/{id}/questions [post]
func (c *AssessmentController) CreateQuestion(ctx *gin.Context) {
	var req service.QuestionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	q, err := c.AssessmentService.CreateQuestion(util.MustParseUint(ctx.Param("id")), req)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrInvalidQuestionType):
			util.BadRequest(ctx, "invalid question type")
		case errors.Is(err, gorm.ErrRecordNotFound):
			util.NotFound(ctx)
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Created(ctx, q)
}

// UpdateQuestion godoc
// @Summary Update a question
// @Tags assessments
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   questionId path int true "question id"
// @Param   body body service.QuestionRequest true "question fields"
// @Success 200 {object} util.Response{data=model.Question}
// @Router /api/v1/questions/{questionId} [put]
func (c *AssessmentController) UpdateQuestion(ctx *gin.Context) {
	var req service.QuestionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	q, err := c.AssessmentService.UpdateQuestion(util.MustParseUint(ctx.Param("questionId")), req)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrInvalidQuestionType):
			util.BadRequest(ctx, "invalid question type")
		case errors.Is(err, gorm.ErrRecordNotFound):
			util.NotFound(ctx)
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, q)
}

// DeleteQuestion godoc
// @Summary Delete a question
// @Tags assessments
// @Produce  json
// @Security BearerAuth
// @Param   questionId path int true "question id"
// @Success 200 {object} util.Response
// @Router /api/v1/questions/{questionId} [delete]
func (c *AssessmentController) DeleteQuestion(ctx *gin.Context) {
	if err := c.AssessmentService.DeleteQuestion(util.MustParseUint(ctx.Param("questionId"))); err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

// TakeAssessment godoc
// @Summary Get an assessment for taking
// @Description Questions come without correct answers or explanations.
// @Tags assessments
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "assessment id"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/v1/assessments/{id}/take [get]
func (c *AssessmentController) TakeAssessment(ctx *gin.Context) {
	id := util.MustParseUint(ctx.Param("id"))
	a, err := c.AssessmentService.Repo.FindByID(id)
	if err != nil {
		util.NotFound(ctx)
		return
	}

	questions, err := c.AssessmentService.ListStudentQuestions(id)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{
		"id":           a.ID,
		"title":        a.Title,
		"description":  a.Description,
		"timeLimit":    a.TimeLimit,
		"passingScore": a.PassingScore,
		"questions":    questions,
	})
}

// StartAttempt godoc
// @Summary Start (or resume) an attempt
// @Tags assessments
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "assessment id"
// @Success 201 {object} util.Response{data=model.AssessmentAttempt}
// @Router /api/v1/assessments/{id}/attempts [post]
func (c *AssessmentController) StartAttempt(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	attempt, err := c.AssessmentService.StartAttempt(claims.UserID, util.MustParseUint(ctx.Param("id")))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Created(ctx, attempt)
}

// SubmitAttempt godoc
// @Summary Submit answers for an attempt
// @Tags assessments
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   attemptId path int true "attempt id"
// @Param   body body service.SubmitAttemptRequest true "answers"
// @Success 200 {object} util.Response{data=model.AssessmentAttempt}
// @Failure 409 {object} util.Response
// @Router /api/v1/attempts/{attemptId}/submit [post]
func (c *AssessmentController) SubmitAttempt(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req service.SubmitAttemptRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	attempt, err := c.AssessmentService.SubmitAttempt(claims.UserID, util.MustParseUint(ctx.Param("attemptId")), req)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrAttemptNotFound):
			util.NotFound(ctx)
		case errors.Is(err, util.ErrPermissionDenied):
			util.Forbidden(ctx)
		case errors.Is(err, util.ErrAttemptFinished):
			util.Conflict(ctx, "attempt already submitted")
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, attempt)
}

type GradeRequest struct {
	Score int `json:"score" binding:"min=0"`
}

// GradeAttempt godoc
// @Summary Override an attempt's score after manual review
// @Tags assessments
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   attemptId path int true "attempt id"
// @Param   body body GradeRequest true "final score"
// @Success 200 {object} util.Response{data=model.AssessmentAttempt}
// @Router /api/v1/admin/attempts/{attemptId}/grade [put]
func (c *AssessmentController) GradeAttempt(ctx *gin.Context) {
	var req GradeRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	attempt, err := c.AssessmentService.GradeAttempt(util.MustParseUint(ctx.Param("attemptId")), req.Score)
	if err != nil {
		if errors.Is(err, util.ErrAttemptNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, attempt)
}

// ListAttempts godoc
// @Summary List attempts on an assessment
// @Tags assessments
// @Produce  json
// @Security BearerAuth
// @Param   id    path  int true  "assessment id"
// @Param   page  query int false "page"
// @Param   limit query int false "page size"
// @Success 200 {object} util.Response{data=util.PageResponse}
// @Router /api/v1/admin/assessments/{id}/attempts [get]
func (c *AssessmentController) ListAttempts(ctx *gin.Context) {
	page, limit := pagination(ctx)
	attempts, total, err := c.AssessmentService.ListAttempts(util.MustParseUint(ctx.Param("id")), page, limit)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, util.PageResponse{List: attempts, Total: total, Page: page, Limit: limit})
}

// MyAttempts godoc
// @Summary List own attempts
// @Tags assessments
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=[]model.AssessmentAttempt}
// @Router /api/v1/attempts [get]
func (c *AssessmentController) MyAttempts(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	attempts, err := c.AssessmentService.ListAttemptsForUser(claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, attempts)
}
