package migration

import (
	"github.com/boomerhub/boomerhub/internal/infrastructure/persistence/models"
)

// AutoMigrateModels lists the models managed by GormAutoMigrateStrategy.
func AutoMigrateModels() []interface{} {
	return []interface{}{
		&models.UsageRecordModel{},
	}
}
