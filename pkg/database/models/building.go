package models

import (
	"time"

	"github.com/google/uuid"
)

// Building represents a single building in the catalog
type Building struct {
	ID              uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4()"`
	BuildingID      int       `gorm:"uniqueIndex;not null"` // stable catalog ID
	Slug            string    `gorm:"uniqueIndex"`
	Title           string    `gorm:"index;not null"`
	TitleEn         string    `gorm:"index"`
	Location        string    `gorm:"index"`
	LocationEn      string    `gorm:"index"`
	Prefecture      string    `gorm:"index"`
	PrefectureEn    string    `gorm:"index"`
	BuildingTypes   string    `gorm:"index"` // slash-delimited category list
	BuildingTypesEn string    `gorm:"index"`
	CompletionYears string    `gorm:"index"` // free text in the legacy data, may not be numeric
	Lat             *float64
	Lng             *float64
	ThumbnailURL    string
	YoutubeURL      string
	Likes           int       `gorm:"default:0"`
	CreatedAt       time.Time `gorm:"default:now()"`
	UpdatedAt       time.Time `gorm:"default:now()"`

	// Relationships
	ArchitectLinks []BuildingArchitectLink `gorm:"foreignKey:BuildingID;references:BuildingID"`
}

// TableName specifies the table name for Building
func (Building) TableName() string {
	return "buildings"
}

// HasCoordinates reports whether the building can participate in geo searches.
// Both coordinates must be present and non-zero.
func (b *Building) HasCoordinates() bool {
	return b.Lat != nil && b.Lng != nil && *b.Lat != 0 && *b.Lng != 0
}
