package repository

import (
	"gorm.io/gorm"

	"github.com/ykhknw/pocketnavi/pkg/slugops"
)

// SlugRepository backs the slug maintenance workflow. Records list in
// building ID ascending order so dedup suffixing is deterministic.
type SlugRepository struct {
	db *gorm.DB
}

var _ slugops.SlugStore = (*SlugRepository)(nil)

func NewSlugRepository(db *gorm.DB) *SlugRepository {
	return &SlugRepository{db: db}
}

// ListSlugRecords returns every building's ID, title and current slug in
// creation order.
func (r *SlugRepository) ListSlugRecords() ([]slugops.SlugRecord, error) {
	var records []slugops.SlugRecord
	err := r.db.Table("buildings").
		Select("building_id, title, slug").
		Order("building_id ASC").
		Scan(&records).Error
	if err != nil {
		return nil, err
	}
	return records, nil
}

// UpdateSlug writes one building's slug. The unique index on the column is
// the backstop against concurrent writers.
func (r *SlugRepository) UpdateSlug(buildingID int, slug string) error {
	return r.db.Table("buildings").
		Where("building_id = ?", buildingID).
		Update("slug", slug).Error
}
