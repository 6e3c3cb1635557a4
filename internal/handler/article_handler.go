package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/Ianrury/articel/internal/models"
	"github.com/Ianrury/articel/internal/remote"
	"github.com/Ianrury/articel/internal/service"
)

type ArticleCreateRequest struct {
	Title      string `json:"title" validate:"required,min=5,max=200"`
	Content    string `json:"content" validate:"required,min=10,max=10000"`
	CategoryID string `json:"categoryId" validate:"required,uuid"`
}

type ArticleUpdateRequest struct {
	Title      *string `json:"title" validate:"omitempty,min=5,max=200"`
	Content    *string `json:"content" validate:"omitempty,min=10,max=10000"`
	CategoryID *string `json:"categoryId" validate:"omitempty,uuid"`
	ImageURL   *string `json:"imageUrl" validate:"omitempty,url"`
}

type CreateFlowResponse struct {
	FormID string `json:"formId"`
}

type ImageSelectResponse struct {
	PreviewDataURL string `json:"previewDataUrl"`
}

type PendingDeleteResponse struct {
	ArticleID    string `json:"articleId"`
	ArticleTitle string `json:"articleTitle"`
}

// articleQuery reads pagination and filter parameters the way the listing
// screens send them.
func (h *Handlers) articleQuery(r *http.Request, defaultLimit int) remote.ArticleQuery {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	if page < 1 {
		page = 1
	}

	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	if limit < 1 || limit > 100 {
		limit = defaultLimit
	}

	return remote.ArticleQuery{
		Page:       page,
		Limit:      limit,
		Search:     r.URL.Query().Get("search"),
		CategoryID: r.URL.Query().Get("categoryId"),
	}
}

// ListArticles is the public reader listing.
func (h *Handlers) ListArticles(w http.ResponseWriter, r *http.Request) {
	query := h.articleQuery(r, h.Cfg.ReaderPageSize)

	list, err := h.ArticleService.List(r.Context(), h.optionalToken(r), query)
	if err != nil {
		writeAPIError(w, err)
		return
	}

	writeJSON(w, list, http.StatusOK)
}

func (h *Handlers) GetArticle(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	article, err := h.ArticleService.Get(r.Context(), h.optionalToken(r), id)
	if err != nil {
		writeAPIError(w, err)
		return
	}

	writeJSON(w, article, http.StatusOK)
}

// ListAdminArticles is the admin table, server-side paginated.
func (h *Handlers) ListAdminArticles(w http.ResponseWriter, r *http.Request) {
	s, ok := h.requireAdmin(w, r)
	if !ok {
		return
	}

	query := h.articleQuery(r, h.Cfg.AdminPageSize)

	list, err := h.ArticleService.List(r.Context(), s.Token, query)
	if err != nil {
		writeAPIError(w, err)
		return
	}

	writeJSON(w, list, http.StatusOK)
}

// OpenCreateArticle opens a create-form instance and hands its id to the
// client; the image selection and the submit reference it.
func (h *Handlers) OpenCreateArticle(w http.ResponseWriter, r *http.Request) {
	if _, ok := h.requireAdmin(w, r); !ok {
		return
	}

	formID, _ := h.ArticleService.OpenCreateFlow()
	writeJSON(w, CreateFlowResponse{FormID: formID}, http.StatusCreated)
}

// SelectArticleImage stages the multipart image on the form instance.
// Validation rejections never reach the upstream API.
func (h *Handlers) SelectArticleImage(w http.ResponseWriter, r *http.Request) {
	if _, ok := h.requireAdmin(w, r); !ok {
		return
	}

	flow, ok := h.ArticleService.CreateFlow(mux.Vars(r)["formId"])
	if !ok {
		writeError(w, "Unknown form", http.StatusNotFound)
		return
	}

	// Cap the whole body so an oversized upload is cut off on the wire
	// instead of streaming to disk before the size check.
	r.Body = http.MaxBytesReader(w, r.Body, h.Cfg.MaxUploadSize+1024)

	if err := r.ParseMultipartForm(h.Cfg.MaxUploadSize + 1024); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, "Maximum file size is 5MB", http.StatusBadRequest)
			return
		}
		writeError(w, "Invalid multipart request", http.StatusBadRequest)
		return
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		writeError(w, "image file field is required", http.StatusBadRequest)
		return
	}
	defer file.Close()

	err = flow.SelectImage(header.Filename, header.Header.Get("Content-Type"), header.Size, file)
	switch {
	case errors.Is(err, service.ErrNotAnImage):
		writeError(w, "Only image files are allowed", http.StatusBadRequest)
		return
	case errors.Is(err, service.ErrImageTooLarge):
		writeError(w, "Maximum file size is 5MB", http.StatusBadRequest)
		return
	case err != nil:
		writeError(w, "Could not read the file", http.StatusInternalServerError)
		return
	}

	writeJSON(w, ImageSelectResponse{PreviewDataURL: flow.Preview()}, http.StatusOK)
}

// RemoveArticleImage clears the staged file and any cached uploaded URL.
func (h *Handlers) RemoveArticleImage(w http.ResponseWriter, r *http.Request) {
	if _, ok := h.requireAdmin(w, r); !ok {
		return
	}

	flow, ok := h.ArticleService.CreateFlow(mux.Vars(r)["formId"])
	if !ok {
		writeError(w, "Unknown form", http.StatusNotFound)
		return
	}

	flow.RemoveImage()
	w.WriteHeader(http.StatusNoContent)
}

// SubmitCreateArticle runs the upload-then-create flow for the form.
func (h *Handlers) SubmitCreateArticle(w http.ResponseWriter, r *http.Request) {
	s, ok := h.requireAdmin(w, r)
	if !ok {
		return
	}

	formID := mux.Vars(r)["formId"]
	flow, ok := h.ArticleService.CreateFlow(formID)
	if !ok {
		writeError(w, "Unknown form", http.StatusNotFound)
		return
	}

	var req ArticleCreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, "Invalid request format", http.StatusBadRequest)
		return
	}

	if err := h.Validate.Struct(req); err != nil {
		writeError(w, "Title (5-200), content (10-10000) and a valid category are required", http.StatusBadRequest)
		return
	}

	article, err := flow.Submit(r.Context(), s.Token, models.ArticleInput{
		Title:      req.Title,
		Content:    req.Content,
		CategoryID: req.CategoryID,
	})
	if errors.Is(err, service.ErrSubmitInFlight) {
		writeError(w, "Submission already in progress", http.StatusConflict)
		return
	}
	if err != nil {
		// Form stays open so the user can retry without re-uploading.
		writeAPIError(w, err)
		return
	}

	h.ArticleService.CloseCreateFlow(formID)
	writeJSON(w, article, http.StatusCreated)
}

func (h *Handlers) UpdateArticle(w http.ResponseWriter, r *http.Request) {
	s, ok := h.requireAdmin(w, r)
	if !ok {
		return
	}

	var req ArticleUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, "Invalid request format", http.StatusBadRequest)
		return
	}

	if err := h.Validate.Struct(req); err != nil {
		writeError(w, "Invalid article fields", http.StatusBadRequest)
		return
	}

	article, err := h.ArticleService.Update(r.Context(), s.Token, mux.Vars(r)["id"], models.ArticleUpdate{
		Title:      req.Title,
		Content:    req.Content,
		CategoryID: req.CategoryID,
		ImageURL:   req.ImageURL,
	})
	if err != nil {
		writeAPIError(w, err)
		return
	}

	writeJSON(w, article, http.StatusOK)
}

// StageDeleteArticle opens the confirmation dialog for an article.
func (h *Handlers) StageDeleteArticle(w http.ResponseWriter, r *http.Request) {
	s, ok := h.requireAdmin(w, r)
	if !ok {
		return
	}

	var req struct {
		Title string `json:"title"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		writeError(w, "Invalid request format", http.StatusBadRequest)
		return
	}

	id := mux.Vars(r)["id"]
	if err := h.ArticleService.StageDelete(s.Token, id, req.Title); err != nil {
		writeError(w, err.Error(), http.StatusConflict)
		return
	}

	writeJSON(w, PendingDeleteResponse{ArticleID: id, ArticleTitle: req.Title}, http.StatusOK)
}

// ConfirmDeleteArticle executes the staged deletion and returns the
// refreshed listing, with the page pulled back when the old one vanished.
func (h *Handlers) ConfirmDeleteArticle(w http.ResponseWriter, r *http.Request) {
	s, ok := h.requireAdmin(w, r)
	if !ok {
		return
	}

	query := h.articleQuery(r, h.Cfg.AdminPageSize)

	list, err := h.ArticleService.ConfirmDelete(r.Context(), s.Token, query)
	if errors.Is(err, service.ErrNothingStaged) {
		writeError(w, err.Error(), http.StatusConflict)
		return
	}
	if errors.Is(err, service.ErrDeleteInFlight) {
		writeError(w, err.Error(), http.StatusConflict)
		return
	}
	if err != nil {
		// The dialog stays open; the client may retry or cancel.
		writeAPIError(w, err)
		return
	}

	writeJSON(w, list, http.StatusOK)
}

// CancelDeleteArticle discards the pending target.
func (h *Handlers) CancelDeleteArticle(w http.ResponseWriter, r *http.Request) {
	s, ok := h.requireAdmin(w, r)
	if !ok {
		return
	}

	h.ArticleService.CancelDelete(s.Token)
	w.WriteHeader(http.StatusNoContent)
}

// PendingDeleteArticle reports the open confirmation dialog, if any.
func (h *Handlers) PendingDeleteArticle(w http.ResponseWriter, r *http.Request) {
	s, ok := h.requireAdmin(w, r)
	if !ok {
		return
	}

	id, title, pending := h.ArticleService.PendingDelete(s.Token)
	if !pending {
		writeError(w, "No delete is awaiting confirmation", http.StatusNotFound)
		return
	}

	writeJSON(w, PendingDeleteResponse{ArticleID: id, ArticleTitle: title}, http.StatusOK)
}
