package search

import "errors"

// ErrNotFound distinguishes "no record for this key" from an empty result
// list. Storage adapters map their own missing-row sentinel to this one.
var ErrNotFound = errors.New("record not found")

// BuildingStore executes composed criteria against the relational store.
// Implementations translate a Criteria value into one parameterized query;
// Count and Search share the translation.
type BuildingStore interface {
	// Count returns the total number of buildings matching the criteria.
	Count(criteria Criteria) (int64, error)

	// Search returns one page of joined rows matching the criteria,
	// ordered with thumbnailed buildings first, then building ID
	// descending.
	Search(criteria Criteria, limit, offset int) ([]BuildingRow, error)

	// GetBySlug returns the joined row for a slug, or ErrNotFound.
	GetBySlug(slug string) (*BuildingRow, error)

	// GeoCandidates returns every row with usable coordinates that
	// satisfies the media flags. Distance math happens in the engine.
	GeoCandidates(media MediaFlags) ([]BuildingRow, error)
}

// ArchitectStore traverses the individual-architect / composite-credit /
// building join chain.
type ArchitectStore interface {
	// FindBuildingIDsByName returns the IDs of buildings credited to any
	// architect whose name (in the given language) contains the
	// substring. May contain duplicates; the resolver deduplicates.
	FindBuildingIDsByName(nameSubstring string, lang Lang) ([]int, error)

	// GetBySlug returns the architect with the exact slug, or
	// ErrNotFound. If the uniqueness invariant is ever violated the
	// first row by ID wins.
	GetBySlug(slug string) (*ArchitectRow, error)

	// BuildingIDsByArchitectID returns the IDs of every building
	// reachable from the architect through any composite credit.
	BuildingIDsByArchitectID(architectID int) ([]int, error)

	// ArchitectsOfBuilding returns the building's full credit list
	// ordered by (credit order, order index within the credit).
	ArchitectsOfBuilding(buildingID int) ([]ArchitectRef, error)
}
