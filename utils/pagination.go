package utils

import "strconv"

const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// Page converts 1-based page/page_size query values into limit and offset.
// Garbage falls back to the first page of DefaultPageSize.
func Page(pageParam, sizeParam string) (limit, offset int) {
	page, err := strconv.Atoi(pageParam)
	if err != nil || page < 1 {
		page = 1
	}
	size, err := strconv.Atoi(sizeParam)
	if err != nil || size < 1 {
		size = DefaultPageSize
	}
	if size > MaxPageSize {
		size = MaxPageSize
	}
	return size, (page - 1) * size
}
