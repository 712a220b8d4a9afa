package helpers

import (
	"errors"
	"strconv"
)

var (
	ErrInvalidPage  = errors.New("Invalid page number.")
	ErrInvalidLimit = errors.New("Invalid limit.")
)

// ParsePagination parses page and limit query values. Both must be
// positive integers; limit also feeds a page-count division, so zero
// and negatives are rejected here.
func ParsePagination(page, limit string) (int, int, error) {
	pageNum, err := strconv.Atoi(page)
	if err != nil || pageNum < 1 {
		return 0, 0, ErrInvalidPage
	}

	limitNum, err := strconv.Atoi(limit)
	if err != nil || limitNum < 1 {
		return 0, 0, ErrInvalidLimit
	}

	return pageNum, limitNum, nil
}
