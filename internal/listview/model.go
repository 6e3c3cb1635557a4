package listview

import (
	"sync"
	"time"

	"github.com/Ianrury/articel/internal/debounce"
)

// Model is the stateful half of a list screen: the fetched collection, the
// raw and debounced search terms, the category selector, and the current
// page. All state transitions keep the pagination invariants: search or
// category changes reset the page to 1, and removals clamp the page so a
// stale index never shows an out-of-range page.
type Model[T Item] struct {
	mu sync.Mutex

	items    []T
	query    string // committed, post-debounce
	category string
	page     int
	pageSize int

	debouncer *debounce.Debouncer
}

// NewModel builds a model with the sentinel "all" category selected and the
// search debounced by delay. A zero delay commits every keystroke.
func NewModel[T Item](pageSize int, delay time.Duration) *Model[T] {
	m := &Model[T]{
		category: AllCategories,
		page:     1,
		pageSize: pageSize,
	}
	m.debouncer = debounce.New(delay, m.commitQuery)
	return m
}

// SetItems replaces the fetched collection, keeping filters but clamping the
// page into the new range.
func (m *Model[T]) SetItems(items []T) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.items = items
	m.clampPageLocked()
}

// SetSearch feeds one keystroke into the debouncer. The filter only changes
// once the input has been quiet for the configured delay.
func (m *Model[T]) SetSearch(raw string) {
	m.debouncer.Set(raw)
}

// FlushSearch applies the pending search term without waiting out the delay.
func (m *Model[T]) FlushSearch() {
	m.debouncer.Flush()
}

func (m *Model[T]) commitQuery(value string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if value == m.query {
		return
	}
	m.query = value
	m.page = 1
}

// SetCategory switches the category filter and resets to the first page.
func (m *Model[T]) SetCategory(category string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if category == "" {
		category = AllCategories
	}
	if category == m.category {
		return
	}
	m.category = category
	m.page = 1
}

// SetPage moves to a 1-based page, clamped into the current range.
func (m *Model[T]) SetPage(page int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.page = page
	m.clampPageLocked()
}

// RemoveItem drops every item the predicate matches. If the removal empties
// the tail pages, the current page is pulled back to the last one.
func (m *Model[T]) RemoveItem(match func(T) bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	kept := m.items[:0:0]
	for _, item := range m.items {
		if !match(item) {
			kept = append(kept, item)
		}
	}
	m.items = kept
	m.clampPageLocked()
}

func (m *Model[T]) clampPageLocked() {
	result := Compute(m.items, m.query, m.category, 1, m.pageSize)
	if m.page > result.TotalPages {
		m.page = result.TotalPages
	}
	if m.page < 1 {
		m.page = 1
	}
}

// View computes the visible page under the committed filters.
func (m *Model[T]) View() Result[T] {
	m.mu.Lock()
	defer m.mu.Unlock()
	return Compute(m.items, m.query, m.category, m.page, m.pageSize)
}

// Page returns the current 1-based page index.
func (m *Model[T]) Page() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.page
}

// Query returns the committed search term.
func (m *Model[T]) Query() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.query
}

// Category returns the selected category filter.
func (m *Model[T]) Category() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.category
}

// Close stops the debouncer.
func (m *Model[T]) Close() {
	m.debouncer.Stop()
}
