package violation

import (
	"context"
	"errors"
	"strconv"
	"time"

	"gorm.io/gorm"

	commonerrors "speedwatch-api-server/internal/api/common/errors"
	"speedwatch-api-server/internal/api/common/query"
	"speedwatch-api-server/internal/models"
)

type violationRepository struct {
	db *gorm.DB
}

func NewViolationRepository(db *gorm.DB) ViolationRepository {
	return &violationRepository{
		db: db,
	}
}

// Insert appends one record with a store-assigned id and receivedAt. The
// write is a single statement: it is durable before return and never partial.
func (r *violationRepository) Insert(ctx context.Context, v *models.Violation) (uint, error) {
	v.ID = 0
	v.ReceivedAt = time.Now()

	if err := r.db.WithContext(ctx).Create(v).Error; err != nil {
		return 0, commonerrors.StoreErr("insert violation", err)
	}
	return v.ID, nil
}

func (r *violationRepository) GetByID(ctx context.Context, id uint) (*models.Violation, error) {
	var v models.Violation
	err := r.db.WithContext(ctx).First(&v, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, commonerrors.NotFoundErr("violation", strconv.FormatUint(uint64(id), 10))
	}
	if err != nil {
		return nil, commonerrors.StoreErr("get violation", err)
	}
	return &v, nil
}

// List returns records matching the filter, newest-receivedAt-first with id
// as the tiebreak, capped at the filter limit.
func (r *violationRepository) List(ctx context.Context, filter query.Filter) ([]models.Violation, error) {
	db := r.db.WithContext(ctx).
		Order("received_at DESC, id DESC").
		Limit(filter.Limit)

	if filter.Tier != "" {
		db = db.Where("tier = ?", filter.Tier)
	}
	if filter.Device != "" {
		db = db.Where("device = ?", filter.Device)
	}
	if filter.Since != nil {
		db = db.Where("received_at >= ?", *filter.Since)
	}

	violations := []models.Violation{}
	if err := db.Find(&violations).Error; err != nil {
		return nil, commonerrors.StoreErr("list violations", err)
	}
	return violations, nil
}

// DeleteAll removes every record and reports how many were removed.
func (r *violationRepository) DeleteAll(ctx context.Context) (int64, error) {
	res := r.db.WithContext(ctx).
		Session(&gorm.Session{AllowGlobalUpdate: true}).
		Delete(&models.Violation{})
	if res.Error != nil {
		return 0, commonerrors.StoreErr("delete violations", res.Error)
	}
	return res.RowsAffected, nil
}
