package repository

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/ykhknw/pocketnavi/pkg/search"
)

// buildingColumns selects the building columns plus the concatenated
// architect sub-fields the result transformer consumes. Names aggregate
// with the name delimiter, IDs and slugs with the key delimiter, all four
// in the same (credit_order, order_index) order so the lists stay parallel.
const buildingColumns = `buildings.building_id, buildings.slug, buildings.title, buildings.title_en,
	buildings.location, buildings.location_en, buildings.prefecture, buildings.prefecture_en,
	buildings.building_types, buildings.building_types_en, buildings.completion_years,
	buildings.lat, buildings.lng, buildings.thumbnail_url, buildings.youtube_url, buildings.likes,
	COALESCE(credits.architect_ids, '') AS architect_ids,
	COALESCE(credits.architect_names, '') AS architect_names,
	COALESCE(credits.architect_names_en, '') AS architect_names_en,
	COALESCE(credits.architect_slugs, '') AS architect_slugs`

// architectCreditsJoin resolves each building's full credit list through
// the composition chain, relationally rather than by splitting stored
// strings.
const architectCreditsJoin = `LEFT JOIN LATERAL (
	SELECT
		string_agg(ia.architect_id::text, ',' ORDER BY bal.credit_order, ac.order_index) AS architect_ids,
		string_agg(ia.name, '/' ORDER BY bal.credit_order, ac.order_index) AS architect_names,
		string_agg(COALESCE(ia.name_en, ''), '/' ORDER BY bal.credit_order, ac.order_index) AS architect_names_en,
		string_agg(COALESCE(ia.slug, ''), ',' ORDER BY bal.credit_order, ac.order_index) AS architect_slugs
	FROM building_architect_links bal
	JOIN architect_compositions ac ON ac.composite_credit_id = bal.composite_credit_id
	JOIN individual_architects ia ON ia.architect_id = ac.individual_architect_id
	WHERE bal.building_id = buildings.building_id
) credits ON true`

// architectNameExists is the architect leg of the per-token OR: the token
// matches if any architect credited on the building carries it in either
// name.
const architectNameExists = `EXISTS (
	SELECT 1
	FROM building_architect_links bal
	JOIN architect_compositions ac ON ac.composite_credit_id = bal.composite_credit_id
	JOIN individual_architects ia ON ia.architect_id = ac.individual_architect_id
	WHERE bal.building_id = buildings.building_id
	  AND (ia.name ILIKE ? OR ia.name_en ILIKE ?)
)`

// defaultOrder puts thumbnailed buildings first, newest identity first
// within each group.
const defaultOrder = `CASE WHEN buildings.thumbnail_url <> '' THEN 0 ELSE 1 END, buildings.building_id DESC`

// BuildingRepository handles database operations for the buildings table
type BuildingRepository struct {
	db *gorm.DB
}

var _ search.BuildingStore = (*BuildingRepository)(nil)

func NewBuildingRepository(db *gorm.DB) *BuildingRepository {
	return &BuildingRepository{db: db}
}

// Count returns the total number of buildings matching the criteria.
func (r *BuildingRepository) Count(criteria search.Criteria) (int64, error) {
	var count int64
	query := applyCriteria(r.db.Table("buildings"), criteria)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Search returns one page of joined rows matching the criteria.
func (r *BuildingRepository) Search(criteria search.Criteria, limit, offset int) ([]search.BuildingRow, error) {
	var rows []search.BuildingRow
	query := applyCriteria(r.joinedQuery(), criteria).
		Order(defaultOrder).
		Limit(limit).
		Offset(offset)
	if err := query.Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// GetBySlug returns the joined row for a slug, or search.ErrNotFound. If
// the uniqueness invariant is ever violated the lowest building ID wins.
func (r *BuildingRepository) GetBySlug(slug string) (*search.BuildingRow, error) {
	var row search.BuildingRow
	err := r.joinedQuery().
		Where("buildings.slug = ?", slug).
		Order("buildings.building_id ASC").
		Take(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, search.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &row, nil
}

// GeoCandidates returns every geo-searchable row that satisfies the media
// flags. A row is geo-searchable when both coordinates are present and
// non-zero.
func (r *BuildingRepository) GeoCandidates(media search.MediaFlags) ([]search.BuildingRow, error) {
	query := r.joinedQuery().
		Where("buildings.lat IS NOT NULL AND buildings.lng IS NOT NULL").
		Where("buildings.lat <> 0 AND buildings.lng <> 0")
	query = applyMediaFlags(query, media)

	var rows []search.BuildingRow
	if err := query.Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *BuildingRepository) joinedQuery() *gorm.DB {
	return r.db.Table("buildings").
		Select(buildingColumns).
		Joins(architectCreditsJoin)
}

// applyCriteria translates a composed criteria value into WHERE clauses.
// Count and Search both go through here so the two queries can never
// drift apart.
func applyCriteria(query *gorm.DB, criteria search.Criteria) *gorm.DB {
	for _, token := range criteria.Keywords {
		pattern := likePattern(token)
		query = query.Where(
			`(buildings.title ILIKE ? OR buildings.title_en ILIKE ?
				OR buildings.building_types ILIKE ? OR buildings.building_types_en ILIKE ?
				OR buildings.location ILIKE ? OR buildings.location_en ILIKE ?
				OR `+architectNameExists+`)`,
			pattern, pattern, pattern, pattern, pattern, pattern, pattern, pattern,
		)
	}

	query = applyMediaFlags(query, criteria.Media)

	if len(criteria.BuildingTypes) > 0 {
		clauses := make([]string, 0, len(criteria.BuildingTypes))
		args := make([]interface{}, 0, len(criteria.BuildingTypes)*2)
		for _, value := range criteria.BuildingTypes {
			clauses = append(clauses, "buildings.building_types ILIKE ? OR buildings.building_types_en ILIKE ?")
			args = append(args, likePattern(value), likePattern(value))
		}
		query = query.Where("("+strings.Join(clauses, " OR ")+")", args...)
	}

	if len(criteria.Prefectures) > 0 {
		// ILIKE with the bare value: a whole-string case-insensitive
		// match, same as the in-memory predicate.
		clauses := make([]string, 0, len(criteria.Prefectures))
		args := make([]interface{}, 0, len(criteria.Prefectures)*2)
		for _, value := range criteria.Prefectures {
			clauses = append(clauses, "buildings.prefecture ILIKE ? OR buildings.prefecture_en ILIKE ?")
			args = append(args, value, value)
		}
		query = query.Where("("+strings.Join(clauses, " OR ")+")", args...)
	}

	if len(criteria.Years) > 0 {
		// Substring containment: the legacy completion_years column is
		// free text and may hold ranges or annotations.
		clauses := make([]string, 0, len(criteria.Years))
		args := make([]interface{}, 0, len(criteria.Years))
		for _, value := range criteria.Years {
			clauses = append(clauses, "buildings.completion_years LIKE ?")
			args = append(args, likePattern(value))
		}
		query = query.Where("("+strings.Join(clauses, " OR ")+")", args...)
	}

	if criteria.BuildingIDs != nil {
		if len(criteria.BuildingIDs) == 0 {
			query = query.Where("1 = 0")
		} else {
			query = query.Where("buildings.building_id IN ?", criteria.BuildingIDs)
		}
	}

	return query
}

func applyMediaFlags(query *gorm.DB, media search.MediaFlags) *gorm.DB {
	if media.HasPhotos {
		query = query.Where("buildings.thumbnail_url <> ''")
	}
	if media.HasVideos {
		query = query.Where("buildings.youtube_url <> ''")
	}
	return query
}

func likePattern(value string) string {
	return "%" + value + "%"
}
