package repository

import (
	"lms_backend/internal/model"
	"time"

	"gorm.io/gorm"
)

type SessionRepository struct {
	DB *gorm.DB
}

func NewSessionRepository(db *gorm.DB) *SessionRepository {
	return &SessionRepository{DB: db}
}

func (r *SessionRepository) Save(s *model.Session) error {
	return r.DB.Save(s).Error
}

func (r *SessionRepository) FindByID(id string) (*model.Session, error) {
	var s model.Session
	err := r.DB.First(&s, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *SessionRepository) Delete(id string) error {
	return r.DB.Delete(&model.Session{}, "id = ?", id).Error
}

// DeleteExpired sweeps rows past their expiry.
func (r *SessionRepository) DeleteExpired(now time.Time) (int64, error) {
	res := r.DB.Where("expires_at < ?", now).Delete(&model.Session{})
	return res.RowsAffected, res.Error
}
