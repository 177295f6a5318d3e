package repository

import (
	"errors"

	"gorm.io/gorm"

	"github.com/ykhknw/pocketnavi/pkg/search"
)

// ArchitectRepository handles database operations for the architect credit
// chain: individual_architects, architect_compositions and
// building_architect_links.
type ArchitectRepository struct {
	db *gorm.DB
}

var _ search.ArchitectStore = (*ArchitectRepository)(nil)

func NewArchitectRepository(db *gorm.DB) *ArchitectRepository {
	return &ArchitectRepository{db: db}
}

// FindBuildingIDsByName walks name match -> composite credits -> building
// IDs. The caller deduplicates.
func (r *ArchitectRepository) FindBuildingIDsByName(nameSubstring string, lang search.Lang) ([]int, error) {
	nameColumn := "ia.name"
	if lang == search.LangEn {
		nameColumn = "ia.name_en"
	}

	var ids []int
	err := r.db.Table("individual_architects AS ia").
		Joins("JOIN architect_compositions ac ON ac.individual_architect_id = ia.architect_id").
		Joins("JOIN building_architect_links bal ON bal.composite_credit_id = ac.composite_credit_id").
		Where(nameColumn+" ILIKE ?", likePattern(nameSubstring)).
		Order("bal.building_id DESC").
		Pluck("bal.building_id", &ids).Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}

// GetBySlug returns the architect with the exact slug, or search.ErrNotFound.
// If the uniqueness invariant is ever violated the lowest ID wins.
func (r *ArchitectRepository) GetBySlug(slug string) (*search.ArchitectRow, error) {
	var row search.ArchitectRow
	err := r.db.Table("individual_architects").
		Select("architect_id, name, name_en, slug").
		Where("slug = ?", slug).
		Order("architect_id ASC").
		Take(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, search.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &row, nil
}

// BuildingIDsByArchitectID walks architect -> composite credits -> building
// IDs.
func (r *ArchitectRepository) BuildingIDsByArchitectID(architectID int) ([]int, error) {
	var ids []int
	err := r.db.Table("architect_compositions AS ac").
		Joins("JOIN building_architect_links bal ON bal.composite_credit_id = ac.composite_credit_id").
		Where("ac.individual_architect_id = ?", architectID).
		Order("bal.building_id DESC").
		Pluck("bal.building_id", &ids).Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}

// ArchitectsOfBuilding returns the building's full credit list ordered by
// (credit order, order index) so composite credits render in authored
// order.
func (r *ArchitectRepository) ArchitectsOfBuilding(buildingID int) ([]search.ArchitectRef, error) {
	var refs []search.ArchitectRef
	err := r.db.Table("building_architect_links AS bal").
		Select("ia.architect_id, ia.name, ia.name_en, ia.slug").
		Joins("JOIN architect_compositions ac ON ac.composite_credit_id = bal.composite_credit_id").
		Joins("JOIN individual_architects ia ON ia.architect_id = ac.individual_architect_id").
		Where("bal.building_id = ?", buildingID).
		Order("bal.credit_order ASC, ac.order_index ASC").
		Scan(&refs).Error
	if err != nil {
		return nil, err
	}
	return refs, nil
}
