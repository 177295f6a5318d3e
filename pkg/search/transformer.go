package search

import (
	"regexp"
	"strconv"
	"strings"
)

// ArchitectRef is one resolved architect credit entry on a building, in
// authored order.
type ArchitectRef struct {
	ArchitectID int
	Name        string
	NameEn      string
	Slug        string
}

// Building is the typed result record exposed to callers. English-variant
// fields are already fallback-filled from their Japanese counterparts.
type Building struct {
	BuildingID      int
	Slug            string
	Title           string
	TitleEn         string
	Location        string
	LocationEn      string
	Prefecture      string
	PrefectureEn    string
	BuildingTypes   []string
	BuildingTypesEn []string
	CompletionYear  *int
	Lat             *float64
	Lng             *float64
	ThumbnailURL    string
	YoutubeURL      string
	Likes           int
	Architects      []ArchitectRef

	// DistanceKm is set only on geo search results.
	DistanceKm *float64
}

// DisplayTitle returns the title in the requested language, with the
// English variant falling back to Japanese.
func (b *Building) DisplayTitle(lang Lang) string {
	if lang == LangEn {
		return b.TitleEn
	}
	return b.Title
}

var yearPattern = regexp.MustCompile(`\d{4}`)

// ParseYear extracts a completion year from the legacy free-text field.
// Plain numeric values parse directly; otherwise the first four-digit run
// wins (covers range-like text such as "1991-1995"). Garbage yields nil,
// never an error.
func ParseYear(raw string) *int {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	if year, err := strconv.Atoi(raw); err == nil {
		return &year
	}
	if match := yearPattern.FindString(raw); match != "" {
		year, _ := strconv.Atoi(match)
		return &year
	}
	return nil
}

// ToBuilding converts one raw joined row into the typed Building record:
// delimited category lists are split, the parallel architect sub-fields are
// zipped into ordered refs, and every English-variant field is
// fallback-filled from its Japanese counterpart.
func ToBuilding(row *BuildingRow) *Building {
	types := splitList(row.BuildingTypes, NameListDelimiter)
	typesEn := splitList(row.BuildingTypesEn, NameListDelimiter)
	if len(typesEn) == 0 {
		typesEn = types
	}

	return &Building{
		BuildingID:      row.BuildingID,
		Slug:            row.Slug,
		Title:           row.Title,
		TitleEn:         fallback(row.TitleEn, row.Title),
		Location:        row.Location,
		LocationEn:      fallback(row.LocationEn, row.Location),
		Prefecture:      row.Prefecture,
		PrefectureEn:    fallback(row.PrefectureEn, row.Prefecture),
		BuildingTypes:   types,
		BuildingTypesEn: typesEn,
		CompletionYear:  ParseYear(row.CompletionYears),
		Lat:             row.Lat,
		Lng:             row.Lng,
		ThumbnailURL:    row.ThumbnailURL,
		YoutubeURL:      row.YoutubeURL,
		Likes:           row.Likes,
		Architects:      zipArchitects(row),
	}
}

// zipArchitects pairs the same-index entries of the concatenated architect
// sub-fields. The name list drives the length; a shorter English-name list
// falls back to the Japanese name and a shorter slug list fills with "".
func zipArchitects(row *BuildingRow) []ArchitectRef {
	names := splitRaw(row.ArchitectNames, NameListDelimiter)
	if len(names) == 0 {
		return nil
	}
	namesEn := splitRaw(row.ArchitectNamesEn, NameListDelimiter)
	ids := splitRaw(row.ArchitectIDs, KeyListDelimiter)
	slugs := splitRaw(row.ArchitectSlugs, KeyListDelimiter)

	refs := make([]ArchitectRef, 0, len(names))
	for i, rawName := range names {
		name := strings.TrimSpace(rawName)
		if name == "" {
			continue
		}
		ref := ArchitectRef{Name: name, NameEn: name}
		if i < len(namesEn) && strings.TrimSpace(namesEn[i]) != "" {
			ref.NameEn = strings.TrimSpace(namesEn[i])
		}
		if i < len(ids) {
			if id, err := strconv.Atoi(strings.TrimSpace(ids[i])); err == nil {
				ref.ArchitectID = id
			}
		}
		if i < len(slugs) {
			ref.Slug = strings.TrimSpace(slugs[i])
		}
		refs = append(refs, ref)
	}
	return refs
}

// splitList splits a delimited category field, trimming entries and
// dropping blanks.
func splitList(raw, delimiter string) []string {
	var out []string
	for _, part := range splitRaw(raw, delimiter) {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}

// splitRaw splits without filtering so parallel lists keep their indexes.
func splitRaw(raw, delimiter string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	return strings.Split(raw, delimiter)
}

func fallback(preferred, alternate string) string {
	if strings.TrimSpace(preferred) == "" {
		return alternate
	}
	return preferred
}
