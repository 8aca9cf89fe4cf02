package helpers

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

const (
	DefaultPageSize = 10
	MaxPageSize     = 100
	DefaultPage     = 1 // Default page is 1-based
)

// PageWindow describes which slice of a filtered collection a page shows.
// Start and End index the collection; ShowingFrom and ShowingTo are the
// 1-based numbers printed as "Showing X-Y of Z".
type PageWindow struct {
	Page        int
	PageSize    int
	TotalPages  int
	Total       int
	Start       int
	End         int
	ShowingFrom int
	ShowingTo   int
}

// HasPrev reports whether a previous page exists.
func (w PageWindow) HasPrev() bool { return w.Page > 1 }

// HasNext reports whether a next page exists.
func (w PageWindow) HasNext() bool { return w.Total > 0 && w.Page < w.TotalPages }

// PrevPage returns the previous page number, never below 1.
func (w PageWindow) PrevPage() int {
	if w.Page > 1 {
		return w.Page - 1
	}
	return 1
}

// NextPage returns the next page number, never above TotalPages.
func (w PageWindow) NextPage() int {
	if w.Page < w.TotalPages {
		return w.Page + 1
	}
	return w.Page
}

// Paginate computes the window for a 1-based page over total items. The page
// is clamped to [1, max(1, ceil(total/size))] so a shrinking collection snaps
// to its last page instead of rendering an empty one.
func Paginate(total, page, size int) PageWindow {
	if size <= 0 || size > MaxPageSize {
		size = DefaultPageSize
	}
	if total < 0 {
		total = 0
	}

	totalPages := (total + size - 1) / size
	if totalPages < 1 {
		totalPages = 1
	}

	if page < 1 {
		page = DefaultPage
	}
	if page > totalPages {
		page = totalPages
	}

	start, end := CalculateSliceIndices(page, size, total)

	w := PageWindow{
		Page:       page,
		PageSize:   size,
		TotalPages: totalPages,
		Total:      total,
		Start:      start,
		End:        end,
		ShowingTo:  end,
	}
	if total > 0 {
		w.ShowingFrom = start + 1
	}
	return w
}

// CalculateSliceIndices calculates the start and end indices for slicing an array for pagination
func CalculateSliceIndices(page, size, totalItems int) (start, end int) {
	if size <= 0 {
		size = DefaultPageSize
	}
	if page < 1 {
		page = DefaultPage
	}

	start = (page - 1) * size
	end = start + size

	if start >= totalItems {
		start = totalItems
	}
	if end > totalItems {
		end = totalItems
	}

	return start, end
}

// ParsePageParam extracts the 1-based page from the query string
func ParsePageParam(c *gin.Context) int {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		return DefaultPage
	}
	return page
}
