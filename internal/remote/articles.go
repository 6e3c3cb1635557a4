package remote

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/Ianrury/articel/internal/models"
)

// ArticleQuery mirrors the query parameters of GET /articles. Zero values
// are omitted so the API applies its own defaults.
type ArticleQuery struct {
	Page       int
	Limit      int
	Search     string
	CategoryID string
}

func (q ArticleQuery) values() url.Values {
	values := url.Values{}
	if q.Page > 0 {
		values.Set("page", strconv.Itoa(q.Page))
	}
	if q.Limit > 0 {
		values.Set("limit", strconv.Itoa(q.Limit))
	}
	if q.Search != "" {
		values.Set("search", q.Search)
	}
	if q.CategoryID != "" {
		values.Set("categoryId", q.CategoryID)
	}
	return values
}

func (c *Client) ListArticles(ctx context.Context, token string, query ArticleQuery) (*models.ArticleList, error) {
	var list models.ArticleList
	if err := c.do(ctx, http.MethodGet, "/articles", token, query.values(), nil, &list); err != nil {
		return nil, err
	}
	return &list, nil
}

func (c *Client) GetArticle(ctx context.Context, token, id string) (*models.Article, error) {
	var article models.Article
	if err := c.do(ctx, http.MethodGet, "/articles/"+url.PathEscape(id), token, nil, nil, &article); err != nil {
		return nil, err
	}
	return &article, nil
}

// CreateArticle submits a new article. The idempotency key lets a retried
// submission after a network failure create at most one article.
func (c *Client) CreateArticle(ctx context.Context, token string, input models.ArticleInput, idempotencyKey string) (*models.Article, error) {
	var article models.Article
	headers := map[string]string{}
	if idempotencyKey != "" {
		headers["X-Idempotency-Key"] = idempotencyKey
	}
	if err := c.doWithHeaders(ctx, http.MethodPost, "/articles", token, nil, input, &article, headers); err != nil {
		return nil, err
	}
	return &article, nil
}

func (c *Client) UpdateArticle(ctx context.Context, token, id string, update models.ArticleUpdate) (*models.Article, error) {
	var article models.Article
	if err := c.do(ctx, http.MethodPut, "/articles/"+url.PathEscape(id), token, nil, update, &article); err != nil {
		return nil, err
	}
	return &article, nil
}

func (c *Client) DeleteArticle(ctx context.Context, token, id string) error {
	return c.do(ctx, http.MethodDelete, "/articles/"+url.PathEscape(id), token, nil, nil, nil)
}
