package violation

import (
	"context"

	"speedwatch-api-server/internal/api/common/query"
	"speedwatch-api-server/internal/models"
)

// ViolationRepository is the only read/write access path to stored records.
type ViolationRepository interface {
	Insert(ctx context.Context, v *models.Violation) (uint, error)
	GetByID(ctx context.Context, id uint) (*models.Violation, error)
	List(ctx context.Context, filter query.Filter) ([]models.Violation, error)
	DeleteAll(ctx context.Context) (int64, error)
}

type ViolationService interface {
	Submit(ctx context.Context, req SubmitRequest) (uint, error)
	Get(ctx context.Context, id uint) (*models.Violation, error)
	List(ctx context.Context, filter query.Filter) ([]models.Violation, error)
	DeleteAll(ctx context.Context, key string) (int64, error)
}

// SubmitRequest is the raw inbound event payload. Numeric fields are decoded
// untyped because deployed device firmware sends them interchangeably as JSON
// numbers or numeric strings; the validator owns the coercion step.
type SubmitRequest struct {
	Device interface{} `json:"device"`
	Speed  interface{} `json:"speed"`
	Limit  interface{} `json:"limit"`
	Excess interface{} `json:"excess"`
	Tier   interface{} `json:"tier"`
	Lat    interface{} `json:"lat"`
	Lon    interface{} `json:"lon"`
}
