package listing

// Pager tracks the current page window of a list view. Any change to the
// page size or to the filter inputs resets the page to 0 so the view never
// lands past the end of a shrunken result set.
type Pager struct {
	page     int
	pageSize int
}

// NewPager creates a pager at page 0 with the given page size.
func NewPager(pageSize int) Pager {
	if pageSize <= 0 {
		pageSize = 10
	}
	return Pager{pageSize: pageSize}
}

// Page returns the current zero-indexed page.
func (p Pager) Page() int { return p.page }

// PageSize returns the current page size.
func (p Pager) PageSize() int { return p.pageSize }

// SetPage moves to a page. Negative pages clamp to 0.
func (p *Pager) SetPage(page int) {
	if page < 0 {
		page = 0
	}
	p.page = page
}

// SetPageSize changes the page size. A changed size resets to page 0.
func (p *Pager) SetPageSize(size int) {
	if size <= 0 || size == p.pageSize {
		return
	}
	p.pageSize = size
	p.page = 0
}

// FilterChanged must be called whenever search text, a facet or the tab
// selector changes; it resets to page 0.
func (p *Pager) FilterChanged() {
	p.page = 0
}

// Slice applies the pager's window to a filtered list.
func Slice[T any](p Pager, items []T) []T {
	return Window(items, p.page, p.pageSize)
}
