// Package pagination reveals an already loaded list page by page.
package pagination

const (
	HomePageSize    = 5
	ArchivePageSize = 10
)

// Cursor counts how many items of a resident list are shown.
type Cursor struct {
	pageSize int
	visible  int
}

// New returns a cursor showing the first page.
func New(pageSize int) Cursor {
	if pageSize < 1 {
		pageSize = 1
	}
	return Cursor{pageSize: pageSize, visible: pageSize}
}

// At restores a cursor from a client supplied count. Counts below one page
// are raised to one page.
func At(pageSize, visible int) Cursor {
	c := New(pageSize)
	if visible > c.visible {
		c.visible = visible
	}
	return c
}

func (c Cursor) PageSize() int {
	return c.pageSize
}

// Visible returns the number of items shown out of total.
func (c Cursor) Visible(total int) int {
	return min(c.visible, max(total, 0))
}

// HasMore reports whether a "load more" control should be shown.
func (c Cursor) HasMore(total int) bool {
	return c.visible < total
}

// More reveals one more page, never more than total.
func (c Cursor) More(total int) Cursor {
	if !c.HasMore(total) {
		return c
	}
	c.visible = min(c.visible+c.pageSize, total)
	return c
}

// Window returns the visible part of items.
func Window[T any](items []T, c Cursor) []T {
	return items[:c.Visible(len(items))]
}
