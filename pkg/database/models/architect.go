package models

import (
	"time"

	"github.com/google/uuid"
)

// IndividualArchitect represents a single canonical architect or firm.
// One row exists per unique (Name, NameEn) pair; rows are shared across
// every composite credit that lists the architect and are never deleted.
type IndividualArchitect struct {
	ID          uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4()"`
	ArchitectID int       `gorm:"uniqueIndex;not null"` // stable catalog ID
	Name        string    `gorm:"index;not null"`
	NameEn      string    `gorm:"index"`
	Slug        string    `gorm:"uniqueIndex"`
	CreatedAt   time.Time `gorm:"default:now()"`
	UpdatedAt   time.Time `gorm:"default:now()"`
}

// TableName specifies the table name for IndividualArchitect
func (IndividualArchitect) TableName() string {
	return "individual_architects"
}

// ArchitectComposition is the ordered membership of one IndividualArchitect
// inside one composite credit. A credit like "A & B Architects" is stored as
// N rows sharing a CompositeCreditID, ordered by OrderIndex.
type ArchitectComposition struct {
	CompositeCreditID     int `gorm:"primaryKey;autoIncrement:false"`
	IndividualArchitectID int `gorm:"index;not null"`
	OrderIndex            int `gorm:"primaryKey;autoIncrement:false"`

	// Relationships
	IndividualArchitect IndividualArchitect `gorm:"foreignKey:IndividualArchitectID;references:ArchitectID"`
}

// TableName specifies the table name for ArchitectComposition
func (ArchitectComposition) TableName() string {
	return "architect_compositions"
}

// BuildingArchitectLink joins a building to a composite credit. CreditOrder
// separates independent credits on the same building (design vs supervision).
type BuildingArchitectLink struct {
	ID                uint `gorm:"primaryKey"`
	BuildingID        int  `gorm:"index;not null"`
	CompositeCreditID int  `gorm:"index;not null"`
	CreditOrder       int  `gorm:"not null;default:1"`
}

// TableName specifies the table name for BuildingArchitectLink
func (BuildingArchitectLink) TableName() string {
	return "building_architect_links"
}
