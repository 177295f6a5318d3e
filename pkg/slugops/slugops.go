// Package slugops is the write-side slug maintenance workflow: backfilling
// missing building slugs and resolving duplicate slugs. It is the only part
// of the system that mutates the unique slug column; the search path
// assumes slugs are already unique.
package slugops

import (
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/ykhknw/pocketnavi/pkg/logging"
	"github.com/ykhknw/pocketnavi/pkg/search"
)

// defaultWorkerLimit bounds how many duplicate groups are processed at
// once. Groups never overlap, so workers never race on a slug.
const defaultWorkerLimit = 4

// SlugRecord is the minimal building projection the workflow needs,
// listed in creation order (building ID ascending).
type SlugRecord struct {
	BuildingID int
	Title      string
	Slug       string
}

// SlugStore is the storage contract for the workflow. ListSlugRecords must
// return records ordered by building ID ascending so dedup suffixes are
// deterministic across runs.
type SlugStore interface {
	ListSlugRecords() ([]SlugRecord, error)
	UpdateSlug(buildingID int, slug string) error
}

// Workflow runs slug backfill and deduplication over a store.
type Workflow struct {
	store       SlugStore
	logger      logging.Logger
	workerLimit int
}

// NewWorkflow creates a slug maintenance workflow.
func NewWorkflow(store SlugStore, logger logging.Logger) *Workflow {
	return &Workflow{
		store:       store,
		logger:      logger,
		workerLimit: defaultWorkerLimit,
	}
}

// Backfill assigns a slug to every building that has none, deriving it
// from the title with the building ID as fallback. Returns the number of
// slugs written.
func (w *Workflow) Backfill() (int, error) {
	records, err := w.store.ListSlugRecords()
	if err != nil {
		return 0, fmt.Errorf("list slug records: %w", err)
	}

	updated := 0
	for _, record := range records {
		if record.Slug != "" {
			continue
		}
		slug := search.Slugify(record.Title, record.BuildingID)
		if err := w.store.UpdateSlug(record.BuildingID, slug); err != nil {
			return updated, fmt.Errorf("backfill slug for building %d: %w", record.BuildingID, err)
		}
		updated++
	}

	w.logger.Info("slug backfill finished", map[string]interface{}{
		"scanned": len(records),
		"updated": updated,
	})
	return updated, nil
}

// Dedup resolves duplicate slugs. Records are grouped by their current
// slug in creation order; within each group the first occurrence keeps the
// slug and later ones get the occurrence-count suffix. Each group runs on
// one worker so no two writers ever assign the same suffix; the unique
// index on the slug column is the backstop. Running Dedup over an
// already-resolved set changes nothing.
func (w *Workflow) Dedup() (int, error) {
	records, err := w.store.ListSlugRecords()
	if err != nil {
		return 0, fmt.Errorf("list slug records: %w", err)
	}

	groups := make(map[string][]SlugRecord)
	var order []string
	for _, record := range records {
		if record.Slug == "" {
			continue
		}
		if _, seen := groups[record.Slug]; !seen {
			order = append(order, record.Slug)
		}
		groups[record.Slug] = append(groups[record.Slug], record)
	}

	var eg errgroup.Group
	eg.SetLimit(w.workerLimit)
	results := make(chan int, len(order))

	for _, base := range order {
		group := groups[base]
		if len(group) < 2 {
			continue
		}
		eg.Go(func() error {
			n, err := w.resolveGroup(group)
			if err != nil {
				return err
			}
			results <- n
			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		return 0, err
	}
	close(results)

	updated := 0
	for n := range results {
		updated += n
	}

	w.logger.Info("slug dedup finished", map[string]interface{}{
		"scanned": len(records),
		"updated": updated,
	})
	return updated, nil
}

// resolveGroup rewrites the 2nd and later occurrences of one base slug.
func (w *Workflow) resolveGroup(group []SlugRecord) (int, error) {
	bases := make([]string, len(group))
	for i, record := range group {
		bases[i] = record.Slug
	}
	finals := search.ResolveDuplicates(bases)

	updated := 0
	for i, record := range group {
		if finals[i] == record.Slug {
			continue
		}
		if err := w.store.UpdateSlug(record.BuildingID, finals[i]); err != nil {
			return updated, fmt.Errorf("dedup slug for building %d: %w", record.BuildingID, err)
		}
		updated++
	}
	return updated, nil
}

// Run executes backfill followed by dedup, the order the maintenance job
// uses.
func (w *Workflow) Run() error {
	if _, err := w.Backfill(); err != nil {
		return err
	}
	if _, err := w.Dedup(); err != nil {
		return err
	}
	return nil
}
