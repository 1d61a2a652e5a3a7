package service

import (
	"context"
	"encoding/json"
	"lms_backend/internal/model"
	"lms_backend/internal/repository"
	"lms_backend/pkg/logger"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// SessionService stores sessions in the database and keeps a
// read-through cache in redis when one is configured.
type SessionService struct {
	Repo  *repository.SessionRepository
	Redis *redis.Client
	TTL   time.Duration
}

func NewSessionService(repo *repository.SessionRepository, rdb *redis.Client, ttl time.Duration) *SessionService {
	return &SessionService{Repo: repo, Redis: rdb, TTL: ttl}
}

func sessionCacheKey(id string) string {
	return "session:" + id
}

func (s *SessionService) Create(data map[string]interface{}) (*model.Session, error) {
	raw, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}

	sess := &model.Session{
		ID:        model.GenerateUUID(),
		Data:      datatypes.JSON(raw),
		ExpiresAt: time.Now().Add(s.TTL),
	}
	if err := s.Repo.Save(sess); err != nil {
		return nil, err
	}

	s.cache(sess)
	return sess, nil
}

func (s *SessionService) Get(id string) (*model.Session, error) {
	if sess := s.fromCache(id); sess != nil {
		if sess.ExpiresAt.After(time.Now()) {
			return sess, nil
		}
	}

	sess, err := s.Repo.FindByID(id)
	if err != nil {
		return nil, err
	}
	if sess.ExpiresAt.Before(time.Now()) {
		s.Destroy(id)
		return nil, gorm.ErrRecordNotFound
	}

	s.cache(sess)
	return sess, nil
}

func (s *SessionService) Update(id string, data map[string]interface{}) (*model.Session, error) {
	sess, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	raw, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}
	sess.Data = datatypes.JSON(raw)
	sess.ExpiresAt = time.Now().Add(s.TTL)

	if err := s.Repo.Save(sess); err != nil {
		return nil, err
	}
	s.cache(sess)
	return sess, nil
}

func (s *SessionService) Destroy(id string) error {
	if s.Redis != nil {
		s.Redis.Del(context.Background(), sessionCacheKey(id))
	}
	return s.Repo.Delete(id)
}

// Sweep deletes expired rows. Run periodically.
func (s *SessionService) Sweep() {
	n, err := s.Repo.DeleteExpired(time.Now())
	if err != nil {
		logger.Log.Error("session sweep failed", zap.Error(err))
		return
	}
	if n > 0 {
		logger.Log.Info("swept expired sessions", zap.Int64("count", n))
	}
}

// StartSweeper runs Sweep on the given interval until ctx is done.
func (s *SessionService) StartSweeper(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				s.Sweep()
			}
		}
	}()
}

func (s *SessionService) cache(sess *model.Session) {
	if s.Redis == nil {
		return
	}
	raw, err := json.Marshal(sess)
	if err != nil {
		return
	}
	ttl := time.Until(sess.ExpiresAt)
	if ttl <= 0 {
		return
	}
	if err := s.Redis.Set(context.Background(), sessionCacheKey(sess.ID), raw, ttl).Err(); err != nil {
		logger.Log.Warn("failed to cache session", zap.String("id", sess.ID), zap.Error(err))
	}
}

func (s *SessionService) fromCache(id string) *model.Session {
	if s.Redis == nil {
		return nil
	}
	raw, err := s.Redis.Get(context.Background(), sessionCacheKey(id)).Bytes()
	if err != nil {
		return nil
	}
	var sess model.Session
	if err := json.Unmarshal(raw, &sess); err != nil {
		return nil
	}
	return &sess
}
