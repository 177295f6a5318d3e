package search

import (
	"errors"
	"sort"
	"strings"

	"github.com/ykhknw/pocketnavi/pkg/logging"
)

const (
	// DefaultPageSize applies when a caller passes a non-positive size.
	DefaultPageSize = 10

	// pageWindowRadius is how many pages around the current one the
	// pager control always shows.
	pageWindowRadius = 2
)

// SearchRequest carries every filter of a keyword search. Zero values mean
// "no constraint for this field".
type SearchRequest struct {
	Query         string
	ArchitectName string
	Page          int
	PageSize      int
	Media         MediaFlags
	BuildingTypes []string
	Prefectures   []string
	Years         []string
	Lang          Lang
}

// GeoSearchRequest carries the parameters of a radius search.
type GeoSearchRequest struct {
	Lat      float64
	Lng      float64
	RadiusKm float64
	Page     int
	PageSize int
	Media    MediaFlags
	Lang     Lang
}

// SearchResult is one page of typed results plus pagination metadata.
type SearchResult struct {
	Items      []*Building
	Total      int64
	Page       int
	TotalPages int
	PageRefs   []PageRef
}

// ArchitectSearchResult is a search result scoped to one architect's works.
type ArchitectSearchResult struct {
	SearchResult
	ArchitectDisplayName string
	ArchitectSlug        string
}

// Engine composes the tokenizer, criteria, resolver, paginator and
// transformer into the four public search operations. It is stateless and
// safe for concurrent use. Storage failures are logged and degrade to an
// empty result set so a search surface always has something to render; no
// error escapes the public operations.
type Engine struct {
	buildings BuildingStore
	resolver  *Resolver
	logger    logging.Logger
}

// NewEngine creates a search engine over the given stores.
func NewEngine(buildings BuildingStore, architects ArchitectStore, logger logging.Logger) *Engine {
	return &Engine{
		buildings: buildings,
		resolver:  NewResolver(architects),
		logger:    logger,
	}
}

// Search runs a keyword search with the full filter set.
func (e *Engine) Search(req SearchRequest) SearchResult {
	pageSize := normalizePageSize(req.PageSize)
	criteria := Compose(req.Query, req.Media, req.BuildingTypes, req.Prefectures, req.Years, req.Lang)

	if name := strings.TrimSpace(req.ArchitectName); name != "" {
		ids, err := e.resolver.ByName(name, criteria.Lang)
		if err != nil {
			e.logSearchFailure("architect name resolution failed", err, criteria, req.Page)
			return emptyResult()
		}
		criteria = criteria.WithBuildingIDs(ids)
	}

	return e.runSearch(criteria, req.Page, pageSize)
}

// SearchByLocation runs a radius search around an origin point. Results are
// sorted ascending by great-circle distance (ties broken by building ID
// descending) and every item carries its distance.
func (e *Engine) SearchByLocation(req GeoSearchRequest) SearchResult {
	pageSize := normalizePageSize(req.PageSize)

	if !validCoordinates(req.Lat, req.Lng) || req.RadiusKm <= 0 {
		e.logger.Warn("geo search with unusable origin", map[string]interface{}{
			"lat":       req.Lat,
			"lng":       req.Lng,
			"radius_km": req.RadiusKm,
		})
		return emptyResult()
	}

	candidates, err := e.buildings.GeoCandidates(req.Media)
	if err != nil {
		e.logger.Error("geo candidate query failed", err, map[string]interface{}{
			"lat":       req.Lat,
			"lng":       req.Lng,
			"radius_km": req.RadiusKm,
		})
		return emptyResult()
	}

	type scored struct {
		row      BuildingRow
		distance float64
	}
	var matches []scored
	for _, row := range candidates {
		if !row.HasCoordinates() {
			continue
		}
		distance := HaversineKm(*row.Lat, *row.Lng, req.Lat, req.Lng)
		if distance <= req.RadiusKm {
			matches = append(matches, scored{row: row, distance: distance})
		}
	}

	sort.Slice(matches, func(i, j int) bool {
		if matches[i].distance != matches[j].distance {
			return matches[i].distance < matches[j].distance
		}
		return matches[i].row.BuildingID > matches[j].row.BuildingID
	})

	total := int64(len(matches))
	pg := Paginate(total, pageSize, req.Page)

	end := pg.Offset + pageSize
	if end > len(matches) {
		end = len(matches)
	}

	items := make([]*Building, 0, end-pg.Offset)
	for _, m := range matches[pg.Offset:end] {
		building := ToBuilding(&m.row)
		distance := m.distance
		building.DistanceKm = &distance
		items = append(items, building)
	}

	return SearchResult{
		Items:      items,
		Total:      total,
		Page:       pg.Page,
		TotalPages: pg.TotalPages,
		PageRefs:   PageRange(pg.Page, pg.TotalPages, pageWindowRadius),
	}
}

// SearchByArchitectSlug lists the works of one architect. A missing slug is
// a normal empty result with no display name, letting the caller decide
// between a 404 and an empty listing.
func (e *Engine) SearchByArchitectSlug(slug string, page, pageSize int, lang Lang) ArchitectSearchResult {
	pageSize = normalizePageSize(pageSize)
	if lang == "" {
		lang = LangJa
	}

	architect, buildingIDs, err := e.resolver.BySlug(slug)
	if err != nil {
		e.logger.Error("architect slug resolution failed", err, map[string]interface{}{
			"slug": slug,
		})
		return ArchitectSearchResult{SearchResult: emptyResult()}
	}
	if architect == nil {
		return ArchitectSearchResult{SearchResult: emptyResult()}
	}

	criteria := Criteria{Lang: lang}.WithBuildingIDs(buildingIDs)
	result := e.runSearch(criteria, page, pageSize)

	displayName := architect.Name
	if lang == LangEn && strings.TrimSpace(architect.NameEn) != "" {
		displayName = architect.NameEn
	}

	return ArchitectSearchResult{
		SearchResult:         result,
		ArchitectDisplayName: displayName,
		ArchitectSlug:        architect.Slug,
	}
}

// GetBySlug looks up a single building. The second return value
// distinguishes "absent" from a present record; storage failures are
// logged and reported as absent. The record carries both language field
// sets with fallback applied, so no language parameter is needed here.
func (e *Engine) GetBySlug(slug string) (*Building, bool) {
	row, err := e.buildings.GetBySlug(slug)
	if errors.Is(err, ErrNotFound) {
		return nil, false
	}
	if err != nil {
		e.logger.Error("building slug lookup failed", err, map[string]interface{}{
			"slug": slug,
		})
		return nil, false
	}
	return ToBuilding(row), true
}

// runSearch executes the count + page pair for a composed criteria and
// assembles the result.
func (e *Engine) runSearch(criteria Criteria, requestedPage, pageSize int) SearchResult {
	total, err := e.buildings.Count(criteria)
	if err != nil {
		e.logSearchFailure("count query failed", err, criteria, requestedPage)
		return emptyResult()
	}

	pg := Paginate(total, pageSize, requestedPage)
	if total == 0 {
		return SearchResult{Page: pg.Page}
	}

	rows, err := e.buildings.Search(criteria, pageSize, pg.Offset)
	if err != nil {
		e.logSearchFailure("page query failed", err, criteria, requestedPage)
		return emptyResult()
	}

	items := make([]*Building, 0, len(rows))
	for i := range rows {
		items = append(items, ToBuilding(&rows[i]))
	}

	return SearchResult{
		Items:      items,
		Total:      total,
		Page:       pg.Page,
		TotalPages: pg.TotalPages,
		PageRefs:   PageRange(pg.Page, pg.TotalPages, pageWindowRadius),
	}
}

func (e *Engine) logSearchFailure(msg string, err error, criteria Criteria, page int) {
	e.logger.Error(msg, err, map[string]interface{}{
		"keywords":       criteria.Keywords,
		"building_types": criteria.BuildingTypes,
		"prefectures":    criteria.Prefectures,
		"years":          criteria.Years,
		"has_photos":     criteria.Media.HasPhotos,
		"has_videos":     criteria.Media.HasVideos,
		"page":           page,
	})
}

func emptyResult() SearchResult {
	return SearchResult{Page: 1}
}

func normalizePageSize(pageSize int) int {
	if pageSize < 1 {
		return DefaultPageSize
	}
	return pageSize
}

func validCoordinates(lat, lng float64) bool {
	if lat == 0 && lng == 0 {
		return false
	}
	return lat >= -90 && lat <= 90 && lng >= -180 && lng <= 180
}
