package migration

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/ykhknw/pocketnavi/pkg/database/models"
)

// RunMigration migrates the full schema: the catalog tables, the architect
// credit chain and the query log table.
func RunMigration(db *gorm.DB) error {
	// uuid_generate_v4() lives in uuid-ossp
	if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS "uuid-ossp"`).Error; err != nil {
		return fmt.Errorf("failed to create uuid-ossp extension: %w", err)
	}

	err := db.AutoMigrate(
		&models.Building{},
		&models.IndividualArchitect{},
		&models.ArchitectComposition{},
		&models.BuildingArchitectLink{},
		&models.QueryLog{},
	)
	if err != nil {
		return fmt.Errorf("failed to migrate schema: %w", err)
	}

	return nil
}
