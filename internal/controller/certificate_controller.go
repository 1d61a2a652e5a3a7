package controller

import (
	"errors"
	"lms_backend/internal/service"
	"lms_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type CertificateController struct {
	CertificateService *service.CertificateService
}

func NewCertificateController(certificateService *service.CertificateService) *CertificateController {
	return &CertificateController{CertificateService: certificateService}
}

// MyCertificates godoc
// @Summary List own certificates
// @Tags certificates
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=[]model.Certificate}
// @Router /api/v1/certificates [get]
func (c *CertificateController) MyCertificates(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	certs, err := c.CertificateService.ListForUser(claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, certs)
}

// Verify godoc
// @Summary Verify a certificate by its public id
// @Description Open endpoint for third parties checking authenticity.
// @Tags certificates
// @Produce  json
// @Param   certificateId path string true "public certificate id"
// @Success 200 {object} util.Response{data=service.VerifiedCertificate}
// @Failure 404 {object} util.Response
// @Router /api/v1/certificates/{certificateId} [get]
func (c *CertificateController) Verify(ctx *gin.Context) {
	res, err := c.CertificateService.Verify(ctx.Param("certificateId"))
	if err != nil {
		if errors.Is(err, util.ErrCertificateNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, res)
}
