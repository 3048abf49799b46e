package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/boomerhub/boomerhub/internal/domain/usage"
	"github.com/boomerhub/boomerhub/internal/infrastructure/persistence/mappers"
	"github.com/boomerhub/boomerhub/internal/infrastructure/persistence/models"
	"github.com/boomerhub/boomerhub/internal/shared/logger"
)

// UsageRecordRepositoryImpl is the SQL-backed usage.Store.
type UsageRecordRepositoryImpl struct {
	db     *gorm.DB
	mapper mappers.UsageRecordMapper
	logger logger.Interface
}

func NewUsageRecordRepository(db *gorm.DB, logger logger.Interface) *UsageRecordRepositoryImpl {
	return &UsageRecordRepositoryImpl{
		db:     db,
		mapper: mappers.NewUsageRecordMapper(),
		logger: logger,
	}
}

// recordKeyColumns is the primary key of usage_records.
var recordKeyColumns = []clause.Column{{Name: "identity_type"}, {Name: "identity"}}

func whereIdentity(db *gorm.DB, identity usage.Identity) *gorm.DB {
	return db.Where("identity_type = ? AND identity = ?", identity.Type().String(), identity.Key())
}

func (r *UsageRecordRepositoryImpl) Get(ctx context.Context, identity usage.Identity) (*usage.UsageRecord, error) {
	var model models.UsageRecordModel
	err := whereIdentity(r.db.WithContext(ctx), identity).First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usage.ErrRecordNotFound
		}
		r.logger.Errorw("failed to get usage record", "error", err, "identity", identity.String())
		return nil, fmt.Errorf("failed to get usage record: %w", err)
	}

	return r.mapper.ToEntity(&model)
}

func (r *UsageRecordRepositoryImpl) Set(ctx context.Context, record *usage.UsageRecord) error {
	model := r.mapper.ToModel(record)

	result := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: recordKeyColumns,
		DoUpdates: clause.AssignmentColumns([]string{
			"request_count",
			"window_start",
			"updated_at",
		}),
	}).Create(model)

	if result.Error != nil {
		r.logger.Errorw("failed to upsert usage record", "error", result.Error, "identity", model.Identity)
		return fmt.Errorf("failed to upsert usage record: %w", result.Error)
	}

	r.logger.Debugw("usage record saved", "identity", model.Identity, "count", model.RequestCount)
	return nil
}

// Increment adds delta in a single upsert statement, so concurrent increments
// against the same row are serialized by the database.
func (r *UsageRecordRepositoryImpl) Increment(ctx context.Context, identity usage.Identity, delta int64, now time.Time) (*usage.UsageRecord, error) {
	now = now.UTC()
	model := &models.UsageRecordModel{
		Identity:     identity.Key(),
		IdentityType: identity.Type().String(),
		RequestCount: delta,
		WindowStart:  now,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	var updated models.UsageRecordModel
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.OnConflict{
			Columns: recordKeyColumns,
			DoUpdates: clause.Assignments(map[string]interface{}{
				"request_count": gorm.Expr("request_count + ?", delta),
				"updated_at":    now,
			}),
		}).Create(model).Error; err != nil {
			return err
		}
		return whereIdentity(tx, identity).First(&updated).Error
	})
	if err != nil {
		r.logger.Errorw("failed to increment usage record", "error", err, "identity", identity.String())
		return nil, fmt.Errorf("failed to increment usage record: %w", err)
	}

	return r.mapper.ToEntity(&updated)
}
