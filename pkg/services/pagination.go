package services

import "math"

// MaxPage is the number of pages needed to show total entries, pageSize per page.
func MaxPage(total, pageSize int) int {
	if total <= 0 || pageSize <= 0 {
		return 0
	}
	return (total + pageSize - 1) / pageSize
}

// Skip is the offset of the first entry on the 1-indexed page.
// Pages past the end are not clamped; fetching them yields nothing.
// Offsets that do not fit in an int saturate at math.MaxInt.
func Skip(page, pageSize int) int {
	if page < 1 || pageSize <= 0 {
		return 0
	}
	if !Reachable(page, pageSize) {
		return math.MaxInt
	}
	return (page - 1) * pageSize
}

// Reachable reports whether the offset of page can be represented at all.
// No store can hold entries on an unreachable page.
func Reachable(page, pageSize int) bool {
	if page <= 1 || pageSize <= 0 {
		return true
	}
	return page-1 <= math.MaxInt/pageSize
}
