package search

// Delimiters used by the storage layer when it concatenates the architect
// sub-fields of a joined row. Names use a different delimiter from the
// parallel ID and slug lists because names may themselves contain commas.
const (
	NameListDelimiter = "/"
	KeyListDelimiter  = ","
)

// BuildingRow is one raw joined row as produced by the storage layer:
// the building columns plus the concatenated, order-preserving architect
// sub-fields. The result transformer turns it into a typed Building.
type BuildingRow struct {
	BuildingID      int
	Slug            string
	Title           string
	TitleEn         string
	Location        string
	LocationEn      string
	Prefecture      string
	PrefectureEn    string
	BuildingTypes   string
	BuildingTypesEn string
	CompletionYears string
	Lat             *float64
	Lng             *float64
	ThumbnailURL    string
	YoutubeURL      string
	Likes           int

	// Concatenated architect sub-fields, parallel and order-preserving.
	ArchitectIDs     string // KeyListDelimiter
	ArchitectNames   string // NameListDelimiter
	ArchitectNamesEn string // NameListDelimiter
	ArchitectSlugs   string // KeyListDelimiter
}

// HasCoordinates reports whether the row can participate in geo searches.
// Both coordinates must be present and non-zero.
func (r *BuildingRow) HasCoordinates() bool {
	return r.Lat != nil && r.Lng != nil && *r.Lat != 0 && *r.Lng != 0
}

// ArchitectRow is one individual architect as read from storage.
type ArchitectRow struct {
	ArchitectID int
	Name        string
	NameEn      string
	Slug        string
}
