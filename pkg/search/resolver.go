package search

import (
	"errors"
	"strings"
)

// Resolver walks the architect credit chain in both directions. Every path
// is a two-hop traversal: building -> composite credit -> individual
// architect, or the reverse. "Architect not found" is a normal empty
// result, never an error.
type Resolver struct {
	architects ArchitectStore
}

// NewResolver creates a resolver over an architect store.
func NewResolver(architects ArchitectStore) *Resolver {
	return &Resolver{architects: architects}
}

// ByName resolves a name substring to the deduplicated set of building IDs
// credited to any matching architect. A building reachable through several
// matching architects of the same credit appears once.
func (r *Resolver) ByName(nameSubstring string, lang Lang) ([]int, error) {
	nameSubstring = strings.TrimSpace(nameSubstring)
	if nameSubstring == "" {
		return nil, nil
	}

	ids, err := r.architects.FindBuildingIDsByName(nameSubstring, lang)
	if err != nil {
		return nil, err
	}
	return dedupeInts(ids), nil
}

// BySlug resolves an architect slug to the architect record and the
// deduplicated IDs of its credited buildings. A missing slug yields
// (nil, nil, nil).
func (r *Resolver) BySlug(slug string) (*ArchitectRow, []int, error) {
	architect, err := r.architects.GetBySlug(slug)
	if errors.Is(err, ErrNotFound) {
		return nil, nil, nil
	}
	if err != nil {
		return nil, nil, err
	}

	ids, err := r.architects.BuildingIDsByArchitectID(architect.ArchitectID)
	if err != nil {
		return nil, nil, err
	}
	return architect, dedupeInts(ids), nil
}

// OfBuilding returns the building's credit list in authored order.
func (r *Resolver) OfBuilding(buildingID int) ([]ArchitectRef, error) {
	return r.architects.ArchitectsOfBuilding(buildingID)
}

// dedupeInts removes duplicates while keeping first-seen order.
func dedupeInts(ids []int) []int {
	seen := make(map[int]struct{}, len(ids))
	var out []int
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
