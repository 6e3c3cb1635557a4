// Package listview implements the fetch-once list screens: a free-text and
// category filter over an already-loaded collection, pagination over the
// filtered result, and the page-number strip shown under the table.
package listview

import (
	"strings"
)

// AllCategories is the category selector sentinel that matches every item.
const AllCategories = "all"

// Item is anything a list screen can filter and page through.
type Item interface {
	SearchTitle() string
	SearchContent() string
	CategoryName() string
}

type Result[T Item] struct {
	PageItems  []T
	TotalCount int
	TotalPages int
}

// Matches reports whether the item passes both the text and category
// predicates. An empty query matches everything; the query is a
// case-insensitive substring of the title or the content.
func Matches[T Item](item T, query, category string) bool {
	if query != "" {
		q := strings.ToLower(query)
		title := strings.ToLower(item.SearchTitle())
		content := strings.ToLower(item.SearchContent())
		if !strings.Contains(title, q) && !strings.Contains(content, q) {
			return false
		}
	}

	if category != AllCategories && category != "" {
		if item.CategoryName() != category {
			return false
		}
	}

	return true
}

// Compute filters the collection and slices out the requested 1-based page.
// A page beyond the filtered result yields an empty page, not an error.
func Compute[T Item](items []T, query, category string, page, pageSize int) Result[T] {
	if pageSize < 1 {
		return Result[T]{}
	}
	if page < 1 {
		page = 1
	}

	filtered := make([]T, 0, len(items))
	for _, item := range items {
		if Matches(item, query, category) {
			filtered = append(filtered, item)
		}
	}

	total := len(filtered)
	totalPages := (total + pageSize - 1) / pageSize

	start := (page - 1) * pageSize
	if start >= total {
		return Result[T]{PageItems: []T{}, TotalCount: total, TotalPages: totalPages}
	}

	end := start + pageSize
	if end > total {
		end = total
	}

	return Result[T]{PageItems: filtered[start:end], TotalCount: total, TotalPages: totalPages}
}

// Ellipsis marks a collapsed run of page numbers in the page strip.
const Ellipsis = -1

// PageWindow returns the page numbers to render: first page, last page, the
// current page and its direct neighbours, with each gap collapsed into a
// single Ellipsis marker.
func PageWindow(current, totalPages int) []int {
	if totalPages < 1 {
		return []int{}
	}
	if current < 1 {
		current = 1
	}
	if current > totalPages {
		current = totalPages
	}

	window := []int{}
	previous := 0
	for page := 1; page <= totalPages; page++ {
		if page != 1 && page != totalPages && (page < current-1 || page > current+1) {
			continue
		}
		if previous != 0 && page != previous+1 {
			window = append(window, Ellipsis)
		}
		window = append(window, page)
		previous = page
	}

	return window
}
