package service

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/Ianrury/articel/internal/config"
	"github.com/Ianrury/articel/internal/listview"
	"github.com/Ianrury/articel/internal/models"
)

// categoryItem adapts a category to the list view-model.
type categoryItem struct {
	models.Category
}

func (c categoryItem) SearchTitle() string   { return c.Name }
func (c categoryItem) SearchContent() string { return "" }
func (c categoryItem) CategoryName() string  { return c.Name }

// CategoryPage is one rendered page of the category listing.
type CategoryPage struct {
	Data        []models.Category `json:"data"`
	TotalData   int               `json:"totalData"`
	CurrentPage int               `json:"currentPage"`
	TotalPages  int               `json:"totalPages"`
	PageWindow  []int             `json:"pageWindow"`
}

// CategoryService backs the category screens. The remote collection is small
// and returned whole, so listing fetches once and filters and paginates
// locally through the list view-model.
type CategoryService struct {
	api CategoryAPI
	cfg *config.Config

	mu    sync.Mutex
	views map[string]*listview.Model[categoryItem]
}

func NewCategoryService(api CategoryAPI, cfg *config.Config) *CategoryService {
	return &CategoryService{
		api:   api,
		cfg:   cfg,
		views: make(map[string]*listview.Model[categoryItem]),
	}
}

// List fetches the full collection and applies the text filter and page
// locally. An out-of-range page renders empty rather than failing.
func (s *CategoryService) List(ctx context.Context, token, search string, page int) (*CategoryPage, error) {
	list, err := s.api.ListCategories(ctx, token)
	if err != nil {
		return nil, fmt.Errorf("listing categories: %w", err)
	}

	items := make([]categoryItem, 0, len(list.Data))
	for _, category := range list.Data {
		items = append(items, categoryItem{category})
	}

	if page < 1 {
		page = 1
	}

	result := listview.Compute(items, search, listview.AllCategories, page, s.cfg.AdminPageSize)

	data := make([]models.Category, 0, len(result.PageItems))
	for _, item := range result.PageItems {
		data = append(data, item.Category)
	}

	return &CategoryPage{
		Data:        data,
		TotalData:   result.TotalCount,
		CurrentPage: page,
		TotalPages:  result.TotalPages,
		PageWindow:  listview.PageWindow(page, result.TotalPages),
	}, nil
}

// viewFor returns the live table view a session holds, creating it on first
// use with the configured page size and search debounce.
func (s *CategoryService) viewFor(token string) *listview.Model[categoryItem] {
	s.mu.Lock()
	defer s.mu.Unlock()

	view, ok := s.views[token]
	if !ok {
		view = listview.NewModel[categoryItem](s.cfg.AdminPageSize, s.cfg.SearchDebounce)
		s.views[token] = view
	}
	return view
}

// RefreshView re-fetches the collection into the session's table view,
// keeping its committed filters, and returns the visible page.
func (s *CategoryService) RefreshView(ctx context.Context, token string) (*CategoryPage, error) {
	list, err := s.api.ListCategories(ctx, token)
	if err != nil {
		return nil, fmt.Errorf("refreshing category view: %w", err)
	}

	items := make([]categoryItem, 0, len(list.Data))
	for _, category := range list.Data {
		items = append(items, categoryItem{category})
	}

	view := s.viewFor(token)
	view.SetItems(items)
	return s.renderView(view), nil
}

// TypeViewSearch feeds one keystroke into the debounced search. The filter
// only changes after the input has been quiet for the configured delay.
func (s *CategoryService) TypeViewSearch(token, raw string) {
	s.viewFor(token).SetSearch(raw)
}

// CommitViewSearch applies the pending search term immediately.
func (s *CategoryService) CommitViewSearch(token string) *CategoryPage {
	view := s.viewFor(token)
	view.FlushSearch()
	return s.renderView(view)
}

// SetViewPage moves the view to a 1-based page, clamped into range.
func (s *CategoryService) SetViewPage(token string, page int) *CategoryPage {
	view := s.viewFor(token)
	view.SetPage(page)
	return s.renderView(view)
}

// ViewPage renders the view as it stands, without a re-fetch.
func (s *CategoryService) ViewPage(token string) *CategoryPage {
	return s.renderView(s.viewFor(token))
}

// CloseView drops the session's view, stopping its debouncer.
func (s *CategoryService) CloseView(token string) {
	s.mu.Lock()
	view, ok := s.views[token]
	delete(s.views, token)
	s.mu.Unlock()

	if ok {
		view.Close()
	}
}

func (s *CategoryService) renderView(view *listview.Model[categoryItem]) *CategoryPage {
	result := view.View()
	page := view.Page()

	data := make([]models.Category, 0, len(result.PageItems))
	for _, item := range result.PageItems {
		data = append(data, item.Category)
	}

	return &CategoryPage{
		Data:        data,
		TotalData:   result.TotalCount,
		CurrentPage: page,
		TotalPages:  result.TotalPages,
		PageWindow:  listview.PageWindow(page, result.TotalPages),
	}
}

func (s *CategoryService) Get(ctx context.Context, token, id string) (*models.Category, error) {
	category, err := s.api.GetCategory(ctx, token, id)
	if err != nil {
		return nil, fmt.Errorf("fetching category %s: %w", id, err)
	}
	return category, nil
}

func (s *CategoryService) Create(ctx context.Context, token, name string) (*models.Category, error) {
	category, err := s.api.CreateCategory(ctx, token, models.CategoryInput{Name: strings.TrimSpace(name)})
	if err != nil {
		return nil, fmt.Errorf("creating category: %w", err)
	}
	return category, nil
}

func (s *CategoryService) Update(ctx context.Context, token, id, name string) (*models.Category, error) {
	category, err := s.api.UpdateCategory(ctx, token, id, models.CategoryInput{Name: strings.TrimSpace(name)})
	if err != nil {
		return nil, fmt.Errorf("updating category %s: %w", id, err)
	}
	return category, nil
}

func (s *CategoryService) Delete(ctx context.Context, token, id string) error {
	if err := s.api.DeleteCategory(ctx, token, id); err != nil {
		return fmt.Errorf("deleting category %s: %w", id, err)
	}

	// Keep a live table view consistent without a re-fetch; the page is
	// pulled back if the removal emptied the tail.
	s.mu.Lock()
	view, ok := s.views[token]
	s.mu.Unlock()
	if ok {
		view.RemoveItem(func(item categoryItem) bool { return item.ID == id })
	}

	return nil
}
