package service

import (
	"fmt"
	"lms_backend/internal/model"
	"lms_backend/internal/repository"
	"lms_backend/internal/util"
	"lms_backend/pkg/monitoring"
	"time"

	"gorm.io/gorm"
)

type CertificateService struct {
	Repo       *repository.CertificateRepository
	CourseRepo *repository.CourseRepository
	UserRepo   *repository.UserRepository
}

func NewCertificateService(
	repo *repository.CertificateRepository,
	courseRepo *repository.CourseRepository,
	userRepo *repository.UserRepository,
) *CertificateService {
	return &CertificateService{
		Repo:       repo,
		CourseRepo: courseRepo,
		UserRepo:   userRepo,
	}
}

// Issue creates a certificate for a completed course. Issuing twice for
// the same user and course returns the existing one.
func (s *CertificateService) Issue(userID, courseID uint) (*model.Certificate, error) {
	existing, err := s.Repo.FindByUserAndCourse(userID, courseID)
	if err == nil {
		return existing, nil
	}
	if err != gorm.ErrRecordNotFound {
		return nil, err
	}

	cert := &model.Certificate{
		UserID:        userID,
		CourseID:      courseID,
		CertificateID: model.GenerateUUID(),
		IssuedAt:      time.Now(),
	}
	cert.URL = fmt.Sprintf("/api/v1/certificates/%s", cert.CertificateID)

	if err := s.Repo.Create(cert); err != nil {
		return nil, err
	}

	monitoring.CertificateCounter.Inc()
	return cert, nil
}

func (s *CertificateService) ListForUser(userID uint) ([]model.Certificate, error) {
	return s.Repo.ListByUser(userID)
}

type VerifiedCertificate struct {
	Certificate model.Certificate `json:"certificate"`
	UserName    string            `json:"userName"`
	CourseTitle string            `json:"courseTitle"`
	IssuedOn    string            `json:"issuedOn"`
}

// Verify resolves a public certificate id to its holder and course, for
// third parties checking authenticity.
func (s *CertificateService) Verify(certificateID string) (*VerifiedCertificate, error) {
	cert, err := s.Repo.FindByCertificateID(certificateID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, util.ErrCertificateNotFound
		}
		return nil, err
	}

	res := &VerifiedCertificate{
		Certificate: *cert,
		IssuedOn:    cert.IssuedAt.Format(util.DateFormat),
	}

	if user, err := s.UserRepo.FindByID(cert.UserID); err == nil {
		res.UserName = user.Username
	}
	if course, err := s.CourseRepo.FindByID(cert.CourseID); err == nil {
		res.CourseTitle = course.Title
	}
	return res, nil
}
