package search

import "strings"

// Lang selects which bilingual field set is preferred. English fields fall
// back to their Japanese counterparts when empty; the reverse never happens.
type Lang string

const (
	LangJa Lang = "ja"
	LangEn Lang = "en"
)

// MediaFlags are independent AND conditions on media presence.
type MediaFlags struct {
	HasPhotos bool
	HasVideos bool
}

// Criteria is the composed filter set for one search. It is a plain value
// the storage layer translates into a single parameterized query; the same
// criteria drive both the count query and the page query. A zero Criteria
// matches every building.
type Criteria struct {
	// Keywords are ANDed across tokens; each token is an OR over the
	// eight searchable text fields.
	Keywords []string

	Media MediaFlags

	// List filters: OR within a category, AND across categories.
	BuildingTypes []string
	Prefectures   []string
	Years         []string

	// BuildingIDs is an allow-list produced by the architect resolver.
	// nil means no constraint; a non-nil empty list matches nothing.
	BuildingIDs []int

	Lang Lang
}

// Compose assembles a criteria value from caller-supplied filters. The raw
// query is tokenized here so callers never pre-split keywords; blank
// filters collapse to "no constraint for this field".
func Compose(rawQuery string, media MediaFlags, buildingTypes, prefectures, years []string, lang Lang) Criteria {
	if lang == "" {
		lang = LangJa
	}
	return Criteria{
		Keywords:      Tokenize(rawQuery),
		Media:         media,
		BuildingTypes: trimNonEmpty(buildingTypes),
		Prefectures:   trimNonEmpty(prefectures),
		Years:         trimNonEmpty(years),
		Lang:          lang,
	}
}

// WithBuildingIDs returns a copy of the criteria constrained to the given
// allow-list of building IDs.
func (c Criteria) WithBuildingIDs(ids []int) Criteria {
	if ids == nil {
		ids = []int{}
	}
	c.BuildingIDs = ids
	return c
}

// Matches is the reference in-memory predicate for the criteria, applied to
// a fully joined row. The storage layer translates the same semantics to
// SQL; this form backs tests and any in-memory store.
func (c Criteria) Matches(row *BuildingRow) bool {
	for _, token := range c.Keywords {
		if !tokenMatchesRow(token, row) {
			return false
		}
	}

	if c.Media.HasPhotos && row.ThumbnailURL == "" {
		return false
	}
	if c.Media.HasVideos && row.YoutubeURL == "" {
		return false
	}

	if len(c.BuildingTypes) > 0 && !anyFold(c.BuildingTypes, row.BuildingTypes, row.BuildingTypesEn) {
		return false
	}
	if len(c.Prefectures) > 0 && !anyEqual(c.Prefectures, row.Prefecture, row.PrefectureEn) {
		return false
	}
	if len(c.Years) > 0 && !anySubstring(c.Years, row.CompletionYears) {
		return false
	}

	if c.BuildingIDs != nil && !containsInt(c.BuildingIDs, row.BuildingID) {
		return false
	}

	return true
}

// tokenMatchesRow is the per-token eight-field OR: a token matches if it
// appears as a case-insensitive substring of any searchable field,
// including the concatenated architect names.
func tokenMatchesRow(token string, row *BuildingRow) bool {
	fields := []string{
		row.Title,
		row.TitleEn,
		row.BuildingTypes,
		row.BuildingTypesEn,
		row.Location,
		row.LocationEn,
		row.ArchitectNames,
		row.ArchitectNamesEn,
	}
	for _, field := range fields {
		if containsFold(field, token) {
			return true
		}
	}
	return false
}

func containsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}

func anyFold(values []string, fields ...string) bool {
	for _, v := range values {
		for _, f := range fields {
			if containsFold(f, v) {
				return true
			}
		}
	}
	return false
}

func anyEqual(values []string, fields ...string) bool {
	for _, v := range values {
		for _, f := range fields {
			if f != "" && strings.EqualFold(f, v) {
				return true
			}
		}
	}
	return false
}

func anySubstring(values []string, field string) bool {
	for _, v := range values {
		if strings.Contains(field, v) {
			return true
		}
	}
	return false
}

func containsInt(ids []int, id int) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}

func trimNonEmpty(values []string) []string {
	var out []string
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v != "" {
			out = append(out, v)
		}
	}
	return out
}
