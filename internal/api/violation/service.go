package violation

import (
	"context"
	"crypto/subtle"
	"sync"

	"go.uber.org/zap"

	commonerrors "speedwatch-api-server/internal/api/common/errors"
	"speedwatch-api-server/internal/api/common/query"
	"speedwatch-api-server/internal/cache"
	"speedwatch-api-server/internal/models"
)

type violationService struct {
	adminKey   string
	cache      *cache.Cache
	repository ViolationRepository
	logger     *zap.Logger

	// mu orders cache fills against delete-all: a Get that read the store
	// before a delete must not re-insert the record into the cache after
	// the delete cleared it. Reads share the lock; delete-all is exclusive.
	mu sync.RWMutex
}

var _ ViolationService = (*violationService)(nil)

func NewViolationService(
	adminKey string,
	cache *cache.Cache,
	repository ViolationRepository,
	logger *zap.Logger) ViolationService {

	return &violationService{
		adminKey:   adminKey,
		cache:      cache,
		repository: repository,
		logger:     logger,
	}
}

// Submit is the only write path: validate, then insert. A validation failure
// never touches the store.
func (s *violationService) Submit(ctx context.Context, req SubmitRequest) (uint, error) {
	record, errs := Validate(req)
	if len(errs) > 0 {
		s.logger.Debug("rejected violation payload", zap.Strings("errors", errs))
		return 0, commonerrors.ValidationErr(errs)
	}

	id, err := s.repository.Insert(ctx, &record)
	if err != nil {
		return 0, err
	}

	s.logger.Debug("stored violation",
		zap.Uint("id", id),
		zap.String("device", record.Device),
		zap.String("tier", record.Tier),
		zap.Float64("excess", record.Excess))
	return id, nil
}

func (s *violationService) Get(ctx context.Context, id uint) (*models.Violation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if v, ok := s.cache.Get(id); ok {
		return v, nil
	}

	v, err := s.repository.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	// Safe to cache: records never change after insert, and holding mu
	// guarantees a concurrent delete-all clears this entry too.
	s.cache.Set(id, v)
	return v, nil
}

func (s *violationService) List(ctx context.Context, filter query.Filter) ([]models.Violation, error) {
	return s.repository.List(ctx, filter)
}

// DeleteAll wipes the store when key matches the configured admin secret.
func (s *violationService) DeleteAll(ctx context.Context, key string) (int64, error) {
	if s.adminKey == "" || subtle.ConstantTimeCompare([]byte(key), []byte(s.adminKey)) != 1 {
		return 0, commonerrors.UnauthorizedErr()
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	count, err := s.repository.DeleteAll(ctx)
	if err != nil {
		return 0, err
	}
	s.cache.Clear()

	s.logger.Info("deleted all violations", zap.Int64("count", count))
	return count, nil
}
