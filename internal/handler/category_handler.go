package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/gorilla/mux"
)

type CategoryRequest struct {
	Name string `json:"name"`
}

// validCategoryName applies the form rule: 2-100 characters after trimming.
// Characters, not bytes, so multibyte names are measured the same way the
// validator tags measure the other forms.
func validCategoryName(name string) bool {
	length := utf8.RuneCountInString(strings.TrimSpace(name))
	return length >= 2 && length <= 100
}

// ListCategories renders one page of the category table: the collection is
// fetched whole and filtered/paginated locally.
func (h *Handlers) ListCategories(w http.ResponseWriter, r *http.Request) {
	s, ok := h.requireSession(w, r)
	if !ok {
		return
	}

	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	if page < 1 {
		page = 1
	}

	result, err := h.CategoryService.List(r.Context(), s.Token, r.URL.Query().Get("search"), page)
	if err != nil {
		writeAPIError(w, err)
		return
	}

	writeJSON(w, result, http.StatusOK)
}

type CategorySearchRequest struct {
	Query string `json:"query"`
}

type CategoryPageRequest struct {
	Page int `json:"page"`
}

// RefreshCategoryView re-fetches the collection into the session's live
// table view and renders the visible page. Filters committed earlier stay.
func (h *Handlers) RefreshCategoryView(w http.ResponseWriter, r *http.Request) {
	s, ok := h.requireAdmin(w, r)
	if !ok {
		return
	}

	page, err := h.CategoryService.RefreshView(r.Context(), s.Token)
	if err != nil {
		writeAPIError(w, err)
		return
	}

	writeJSON(w, page, http.StatusOK)
}

// TypeCategorySearch feeds one keystroke into the view's debounced search
// and answers immediately; the filter commits after the quiet period.
func (h *Handlers) TypeCategorySearch(w http.ResponseWriter, r *http.Request) {
	s, ok := h.requireAdmin(w, r)
	if !ok {
		return
	}

	var req CategorySearchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, "Invalid request format", http.StatusBadRequest)
		return
	}

	h.CategoryService.TypeViewSearch(s.Token, req.Query)
	w.WriteHeader(http.StatusAccepted)
}

// CommitCategorySearch applies the pending search term without waiting out
// the delay and renders the result.
func (h *Handlers) CommitCategorySearch(w http.ResponseWriter, r *http.Request) {
	s, ok := h.requireAdmin(w, r)
	if !ok {
		return
	}

	writeJSON(w, h.CategoryService.CommitViewSearch(s.Token), http.StatusOK)
}

// SetCategoryViewPage moves the view to the requested page.
func (h *Handlers) SetCategoryViewPage(w http.ResponseWriter, r *http.Request) {
	s, ok := h.requireAdmin(w, r)
	if !ok {
		return
	}

	var req CategoryPageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, "Invalid request format", http.StatusBadRequest)
		return
	}

	writeJSON(w, h.CategoryService.SetViewPage(s.Token, req.Page), http.StatusOK)
}

func (h *Handlers) GetCategory(w http.ResponseWriter, r *http.Request) {
	s, ok := h.requireSession(w, r)
	if !ok {
		return
	}

	category, err := h.CategoryService.Get(r.Context(), s.Token, mux.Vars(r)["id"])
	if err != nil {
		writeAPIError(w, err)
		return
	}

	writeJSON(w, category, http.StatusOK)
}

func (h *Handlers) CreateCategory(w http.ResponseWriter, r *http.Request) {
	s, ok := h.requireAdmin(w, r)
	if !ok {
		return
	}

	var req CategoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, "Invalid request format", http.StatusBadRequest)
		return
	}

	if !validCategoryName(req.Name) {
		writeError(w, "Category name must be 2-100 characters", http.StatusBadRequest)
		return
	}

	category, err := h.CategoryService.Create(r.Context(), s.Token, req.Name)
	if err != nil {
		writeAPIError(w, err)
		return
	}

	writeJSON(w, category, http.StatusCreated)
}

func (h *Handlers) UpdateCategory(w http.ResponseWriter, r *http.Request) {
	s, ok := h.requireAdmin(w, r)
	if !ok {
		return
	}

	var req CategoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, "Invalid request format", http.StatusBadRequest)
		return
	}

	if !validCategoryName(req.Name) {
		writeError(w, "Category name must be 2-100 characters", http.StatusBadRequest)
		return
	}

	category, err := h.CategoryService.Update(r.Context(), s.Token, mux.Vars(r)["id"], req.Name)
	if err != nil {
		writeAPIError(w, err)
		return
	}

	writeJSON(w, category, http.StatusOK)
}

func (h *Handlers) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	s, ok := h.requireAdmin(w, r)
	if !ok {
		return
	}

	if err := h.CategoryService.Delete(r.Context(), s.Token, mux.Vars(r)["id"]); err != nil {
		writeAPIError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
