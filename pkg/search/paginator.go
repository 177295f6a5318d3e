package search

// Page holds the resolved pagination state for one result page.
type Page struct {
	Page       int
	TotalPages int
	Offset     int
}

// Paginate computes the effective page, total page count and row offset for
// a result set. The requested page is clamped into [1, max(totalPages, 1)],
// so out-of-range requests land on the nearest valid page instead of
// producing an empty page.
func Paginate(totalCount int64, pageSize, requestedPage int) Page {
	if pageSize < 1 {
		pageSize = 1
	}

	totalPages := int((totalCount + int64(pageSize) - 1) / int64(pageSize))

	page := requestedPage
	if page < 1 {
		page = 1
	}
	if totalPages > 0 && page > totalPages {
		page = totalPages
	}
	if totalPages == 0 {
		page = 1
	}

	return Page{
		Page:       page,
		TotalPages: totalPages,
		Offset:     (page - 1) * pageSize,
	}
}

// PageRef is one entry of a compact page-range control: either a concrete
// page number or an ellipsis bridging a gap.
type PageRef struct {
	Number   int
	Ellipsis bool
}

// PageRange produces the compact page sequence used by pager controls.
// Page 1 and the last page always appear, along with every page within
// windowRadius of the current page. Each gap larger than one page collapses
// to a single ellipsis; a gap of exactly one page shows the page itself.
func PageRange(currentPage, totalPages, windowRadius int) []PageRef {
	if totalPages < 1 {
		return nil
	}

	included := func(p int) bool {
		if p == 1 || p == totalPages {
			return true
		}
		return p >= currentPage-windowRadius && p <= currentPage+windowRadius
	}

	var refs []PageRef
	prev := 0
	for p := 1; p <= totalPages; p++ {
		if !included(p) {
			continue
		}
		switch {
		case prev == 0 || p == prev+1:
			// contiguous
		case p == prev+2:
			// gap of one page: show the page instead of an ellipsis
			refs = append(refs, PageRef{Number: prev + 1})
		default:
			refs = append(refs, PageRef{Ellipsis: true})
		}
		refs = append(refs, PageRef{Number: p})
		prev = p
	}

	return refs
}
