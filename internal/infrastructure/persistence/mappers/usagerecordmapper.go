package mappers

import (
	"fmt"

	"github.com/boomerhub/boomerhub/internal/domain/usage"
	"github.com/boomerhub/boomerhub/internal/infrastructure/persistence/models"
)

// UsageRecordMapper handles the conversion between usage records and persistence models
type UsageRecordMapper interface {
	// ToEntity converts a persistence model to a domain entity
	ToEntity(model *models.UsageRecordModel) (*usage.UsageRecord, error)

	// ToModel converts a domain entity to a persistence model
	ToModel(entity *usage.UsageRecord) *models.UsageRecordModel
}

type usageRecordMapper struct{}

// NewUsageRecordMapper creates a new usage record mapper
func NewUsageRecordMapper() UsageRecordMapper {
	return &usageRecordMapper{}
}

func (m *usageRecordMapper) ToEntity(model *models.UsageRecordModel) (*usage.UsageRecord, error) {
	if model == nil {
		return nil, nil
	}

	typ, err := usage.ParseIdentityType(model.IdentityType)
	if err != nil {
		return nil, fmt.Errorf("usage record %q: %w", model.Identity, err)
	}
	identity, err := usage.NewIdentity(model.Identity, typ)
	if err != nil {
		return nil, fmt.Errorf("usage record %q: %w", model.Identity, err)
	}

	return usage.ReconstructUsageRecord(
		identity,
		model.RequestCount,
		model.WindowStart,
		model.CreatedAt,
		model.UpdatedAt,
	), nil
}

func (m *usageRecordMapper) ToModel(entity *usage.UsageRecord) *models.UsageRecordModel {
	if entity == nil {
		return nil
	}

	return &models.UsageRecordModel{
		Identity:     entity.Identity().Key(),
		IdentityType: entity.Identity().Type().String(),
		RequestCount: entity.Count(),
		WindowStart:  entity.WindowStart(),
		CreatedAt:    entity.CreatedAt(),
		UpdatedAt:    entity.UpdatedAt(),
	}
}
