package service

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/Ianrury/articel/internal/config"
	"github.com/Ianrury/articel/internal/models"
	"github.com/Ianrury/articel/internal/remote"
)

// ArticleService backs the article screens: server-side paginated listings,
// detail, partial updates, and the two multi-step flows (create-with-upload
// and delete-with-confirmation).
type ArticleService struct {
	api ArticleAPI
	cfg *config.Config

	mu          sync.Mutex
	createFlows map[string]*CreateArticleFlow
	deleteFlows map[string]*DeleteFlow
}

func NewArticleService(api ArticleAPI, cfg *config.Config) *ArticleService {
	return &ArticleService{
		api:         api,
		cfg:         cfg,
		createFlows: make(map[string]*CreateArticleFlow),
		deleteFlows: make(map[string]*DeleteFlow),
	}
}

// List forwards pagination, search, and category filters to the API. The
// limit is clamped so a client cannot request unbounded pages.
func (s *ArticleService) List(ctx context.Context, token string, query remote.ArticleQuery) (*models.ArticleList, error) {
	if query.Page < 1 {
		query.Page = 1
	}
	if query.Limit < 1 {
		query.Limit = s.cfg.AdminPageSize
	}
	if query.Limit > 100 {
		query.Limit = 100
	}

	list, err := s.api.ListArticles(ctx, token, query)
	if err != nil {
		return nil, fmt.Errorf("listing articles: %w", err)
	}

	return list, nil
}

func (s *ArticleService) Get(ctx context.Context, token, id string) (*models.Article, error) {
	article, err := s.api.GetArticle(ctx, token, id)
	if err != nil {
		return nil, fmt.Errorf("fetching article %s: %w", id, err)
	}
	return article, nil
}

func (s *ArticleService) Update(ctx context.Context, token, id string, update models.ArticleUpdate) (*models.Article, error) {
	article, err := s.api.UpdateArticle(ctx, token, id, update)
	if err != nil {
		return nil, fmt.Errorf("updating article %s: %w", id, err)
	}
	return article, nil
}

// OpenCreateFlow starts a create-article form instance and returns its id.
// The flow lives until the submission succeeds or the form is abandoned.
func (s *ArticleService) OpenCreateFlow() (string, *CreateArticleFlow) {
	id := uuid.New().String()
	flow := NewCreateArticleFlow(s.api, s.cfg.MaxUploadSize)

	s.mu.Lock()
	s.createFlows[id] = flow
	s.mu.Unlock()

	return id, flow
}

// CreateFlow looks up an open form instance.
func (s *ArticleService) CreateFlow(id string) (*CreateArticleFlow, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	flow, ok := s.createFlows[id]
	return flow, ok
}

// CloseCreateFlow discards a form instance after success or abandonment.
func (s *ArticleService) CloseCreateFlow(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.createFlows, id)
}

// deleteFlowFor returns the one delete dialog a session may hold.
func (s *ArticleService) deleteFlowFor(token string) *DeleteFlow {
	s.mu.Lock()
	defer s.mu.Unlock()

	flow, ok := s.deleteFlows[token]
	if !ok {
		flow = NewDeleteFlow()
		s.deleteFlows[token] = flow
	}
	return flow
}

// StageDelete opens the confirmation dialog for the given article.
func (s *ArticleService) StageDelete(token, id, title string) error {
	return s.deleteFlowFor(token).Request(id, title)
}

// CancelDelete discards the pending target.
func (s *ArticleService) CancelDelete(token string) {
	s.deleteFlowFor(token).Cancel()
}

// PendingDelete reports the staged target, if any.
func (s *ArticleService) PendingDelete(token string) (id, title string, ok bool) {
	return s.deleteFlowFor(token).Pending()
}

// ConfirmDelete executes the staged deletion, then re-fetches the listing
// from the source of truth. If the caller's page fell beyond the new last
// page, the returned query is pulled back to it.
func (s *ArticleService) ConfirmDelete(ctx context.Context, token string, query remote.ArticleQuery) (*models.ArticleList, error) {
	flow := s.deleteFlowFor(token)

	if err := flow.Confirm(ctx, func(ctx context.Context, id string) error {
		return s.api.DeleteArticle(ctx, token, id)
	}); err != nil {
		return nil, err
	}

	list, err := s.List(ctx, token, query)
	if err != nil {
		return nil, err
	}

	// The echoed limit is untrusted; the listing schema is loose and a
	// missing or zero value must not take the page math down.
	limit := list.Limit
	if limit < 1 {
		limit = query.Limit
	}
	if limit < 1 {
		limit = s.cfg.AdminPageSize
	}

	totalPages := (list.Total + limit - 1) / limit
	if totalPages > 0 && list.Page > totalPages {
		query.Page = totalPages
		list, err = s.List(ctx, token, query)
		if err != nil {
			return nil, err
		}
	}

	return list, nil
}
