package datatable

// DefaultPageSize is the page size of a new table.
const DefaultPageSize = 10

// Paginator slices a row set of Total rows into pages of PageSize rows.
// Its methods keep PageIndex within [0, max(0, PageCount()-1)].
type Paginator struct {
	PageIndex int
	PageSize  int
	Total     int
}

// NewPaginator returns a paginator positioned at pageIndex, clamped.
func NewPaginator(pageIndex, pageSize, total int) (Paginator, error) {
	if pageSize <= 0 {
		return Paginator{}, configError("", "page size must be positive, got %d", pageSize)
	}
	if total < 0 {
		total = 0
	}
	p := Paginator{PageSize: pageSize, Total: total}
	p.GoTo(pageIndex)
	return p, nil
}

// PageCount returns ceil(Total/PageSize), 0 for an empty row set.
func (p *Paginator) PageCount() int {
	if p.PageSize <= 0 || p.Total <= 0 {
		return 0
	}
	return (p.Total + p.PageSize - 1) / p.PageSize
}

// GoTo moves to page n, clamped to the existing pages.
func (p *Paginator) GoTo(n int) {
	p.PageIndex = clampPage(n, p.PageCount())
}

// NextPage advances one page unless already on the last one.
func (p *Paginator) NextPage() {
	p.GoTo(p.PageIndex + 1)
}

// PrevPage moves back one page unless already on the first one.
func (p *Paginator) PrevPage() {
	p.GoTo(p.PageIndex - 1)
}

// SetPageSize changes the page size and returns to the first page.
func (p *Paginator) SetPageSize(n int) error {
	if n <= 0 {
		return configError("", "page size must be positive, got %d", n)
	}
	p.PageSize = n
	p.PageIndex = 0
	return nil
}

// Bounds returns the half-open row range of the current page.
func (p *Paginator) Bounds() (start, end int) {
	if p.PageSize <= 0 {
		return 0, 0
	}
	start = p.PageIndex * p.PageSize
	if start > p.Total {
		start = p.Total
	}
	end = start + p.PageSize
	if end > p.Total {
		end = p.Total
	}
	return start, end
}

// Info describes the current page.
func (p *Paginator) Info() PageInfo {
	start, end := p.Bounds()
	count := p.PageCount()
	return PageInfo{
		PageIndex: p.PageIndex,
		PageSize:  p.PageSize,
		PageCount: count,
		Total:     p.Total,
		Start:     start,
		End:       end,
		HasPrev:   p.PageIndex > 0,
		HasNext:   p.PageIndex+1 < count,
	}
}

// Window returns the rows of the current page of rows.
func Window[T any](rows []T, p Paginator) []T {
	p.Total = len(rows)
	p.GoTo(p.PageIndex)
	start, end := p.Bounds()
	return rows[start:end]
}

// PageInfo summarizes paging for a render layer.
type PageInfo struct {
	PageIndex int
	PageSize  int
	PageCount int
	// Total counts rows after filtering.
	Total int
	// Start and End bound the visible rows within the filtered set.
	Start   int
	End     int
	HasPrev bool
	HasNext bool
}

func clampPage(n, pageCount int) int {
	if n < 0 || pageCount <= 0 {
		return 0
	}
	if n > pageCount-1 {
		return pageCount - 1
	}
	return n
}
