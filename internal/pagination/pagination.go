// Package pagination slices ordered result sets into fixed-size pages.
package pagination

import (
	"errors"
	"strconv"
)

// PerPage is the number of items in a page
const PerPage = 10

// DefaultPage is used when the request carries no usable page number
const DefaultPage = 1

// ParsePage reads a 1-based page number from a query value. Missing or
// non-numeric values fall back to DefaultPage. Numbers too large for an int
// clamp to the nearest representable value, so they still land past the end.
func ParsePage(raw string) int {
	page, err := strconv.Atoi(raw)
	if err != nil {
		if errors.Is(err, strconv.ErrRange) {
			return page
		}
		return DefaultPage
	}
	return page
}

// Paginate returns the items of the given 1-based page. Pages past the end,
// and pages below 1, are empty.
func Paginate[T any](items []T, page int) []T {
	if page < 1 {
		return []T{}
	}
	// compare page counts first so (page-1)*PerPage cannot overflow
	if page-1 >= (len(items)+PerPage-1)/PerPage {
		return []T{}
	}
	start := (page - 1) * PerPage
	end := min(start+PerPage, len(items))

	out := make([]T, end-start)
	copy(out, items[start:end])
	return out
}
