package search_test

import (
	"sort"
	"strings"
	"sync"

	"github.com/ykhknw/pocketnavi/pkg/logging"
	"github.com/ykhknw/pocketnavi/pkg/search"
)

// fakeBuildingStore is an in-memory BuildingStore mirroring the ordering
// the real repository applies: thumbnailed rows first, building ID
// descending within each group.
type fakeBuildingStore struct {
	rows []search.BuildingRow

	countErr  error
	searchErr error
	geoErr    error
	slugErr   error
}

var _ search.BuildingStore = (*fakeBuildingStore)(nil)

func (s *fakeBuildingStore) matching(criteria search.Criteria) []search.BuildingRow {
	var out []search.BuildingRow
	for i := range s.rows {
		if criteria.Matches(&s.rows[i]) {
			out = append(out, s.rows[i])
		}
	}
	sort.Slice(out, func(i, j int) bool {
		iPhoto, jPhoto := out[i].ThumbnailURL != "", out[j].ThumbnailURL != ""
		if iPhoto != jPhoto {
			return iPhoto
		}
		return out[i].BuildingID > out[j].BuildingID
	})
	return out
}

func (s *fakeBuildingStore) Count(criteria search.Criteria) (int64, error) {
	if s.countErr != nil {
		return 0, s.countErr
	}
	return int64(len(s.matching(criteria))), nil
}

func (s *fakeBuildingStore) Search(criteria search.Criteria, limit, offset int) ([]search.BuildingRow, error) {
	if s.searchErr != nil {
		return nil, s.searchErr
	}
	matched := s.matching(criteria)
	if offset >= len(matched) {
		return nil, nil
	}
	end := offset + limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[offset:end], nil
}

func (s *fakeBuildingStore) GetBySlug(slug string) (*search.BuildingRow, error) {
	if s.slugErr != nil {
		return nil, s.slugErr
	}
	for i := range s.rows {
		if s.rows[i].Slug == slug {
			return &s.rows[i], nil
		}
	}
	return nil, search.ErrNotFound
}

func (s *fakeBuildingStore) GeoCandidates(media search.MediaFlags) ([]search.BuildingRow, error) {
	if s.geoErr != nil {
		return nil, s.geoErr
	}
	var out []search.BuildingRow
	for i := range s.rows {
		row := s.rows[i]
		if !row.HasCoordinates() {
			continue
		}
		if media.HasPhotos && row.ThumbnailURL == "" {
			continue
		}
		if media.HasVideos && row.YoutubeURL == "" {
			continue
		}
		out = append(out, row)
	}
	return out, nil
}

// composition and creditLink mirror the join tables.
type composition struct {
	creditID    int
	architectID int
	orderIndex  int
}

type creditLink struct {
	buildingID  int
	creditID    int
	creditOrder int
}

// fakeArchitectStore is an in-memory ArchitectStore over the
// architect / composition / link chain.
type fakeArchitectStore struct {
	architects   []search.ArchitectRow
	compositions []composition
	links        []creditLink

	err error
}

var _ search.ArchitectStore = (*fakeArchitectStore)(nil)

func (s *fakeArchitectStore) FindBuildingIDsByName(nameSubstring string, lang search.Lang) ([]int, error) {
	if s.err != nil {
		return nil, s.err
	}
	var ids []int
	for _, architect := range s.architects {
		name := architect.Name
		if lang == search.LangEn {
			name = architect.NameEn
		}
		if !strings.Contains(strings.ToLower(name), strings.ToLower(nameSubstring)) {
			continue
		}
		for _, comp := range s.compositions {
			if comp.architectID != architect.ArchitectID {
				continue
			}
			for _, link := range s.links {
				if link.creditID == comp.creditID {
					ids = append(ids, link.buildingID)
				}
			}
		}
	}
	return ids, nil
}

func (s *fakeArchitectStore) GetBySlug(slug string) (*search.ArchitectRow, error) {
	if s.err != nil {
		return nil, s.err
	}
	for i := range s.architects {
		if s.architects[i].Slug == slug {
			return &s.architects[i], nil
		}
	}
	return nil, search.ErrNotFound
}

func (s *fakeArchitectStore) BuildingIDsByArchitectID(architectID int) ([]int, error) {
	if s.err != nil {
		return nil, s.err
	}
	var ids []int
	for _, comp := range s.compositions {
		if comp.architectID != architectID {
			continue
		}
		for _, link := range s.links {
			if link.creditID == comp.creditID {
				ids = append(ids, link.buildingID)
			}
		}
	}
	return ids, nil
}

func (s *fakeArchitectStore) ArchitectsOfBuilding(buildingID int) ([]search.ArchitectRef, error) {
	if s.err != nil {
		return nil, s.err
	}

	type entry struct {
		creditOrder int
		orderIndex  int
		ref         search.ArchitectRef
	}
	var entries []entry
	for _, link := range s.links {
		if link.buildingID != buildingID {
			continue
		}
		for _, comp := range s.compositions {
			if comp.creditID != link.creditID {
				continue
			}
			for _, architect := range s.architects {
				if architect.ArchitectID == comp.architectID {
					entries = append(entries, entry{
						creditOrder: link.creditOrder,
						orderIndex:  comp.orderIndex,
						ref: search.ArchitectRef{
							ArchitectID: architect.ArchitectID,
							Name:        architect.Name,
							NameEn:      architect.NameEn,
							Slug:        architect.Slug,
						},
					})
				}
			}
		}
	}

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].creditOrder != entries[j].creditOrder {
			return entries[i].creditOrder < entries[j].creditOrder
		}
		return entries[i].orderIndex < entries[j].orderIndex
	})

	refs := make([]search.ArchitectRef, 0, len(entries))
	for _, e := range entries {
		refs = append(refs, e.ref)
	}
	return refs, nil
}

// captureLogger records log calls so tests can assert on log events.
type captureLogger struct {
	mu     sync.Mutex
	errors []string
	warns  []string
	infos  []string
}

func (l *captureLogger) Info(msg string, fields map[string]interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.infos = append(l.infos, msg)
}

func (l *captureLogger) Error(msg string, err error, fields map[string]interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.errors = append(l.errors, msg)
}

func (l *captureLogger) Warn(msg string, fields map[string]interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.warns = append(l.warns, msg)
}

func (l *captureLogger) Debug(msg string, fields map[string]interface{}) {}

func (l *captureLogger) WithContext(ctx map[string]interface{}) logging.Logger {
	return l
}
