package remote

import (
	"context"
	"net/http"
	"net/url"

	"github.com/Ianrury/articel/internal/models"
)

func (c *Client) ListCategories(ctx context.Context, token string) (*models.CategoryList, error) {
	var list models.CategoryList
	if err := c.do(ctx, http.MethodGet, "/categories", token, nil, nil, &list); err != nil {
		return nil, err
	}
	return &list, nil
}

func (c *Client) GetCategory(ctx context.Context, token, id string) (*models.Category, error) {
	var category models.Category
	if err := c.do(ctx, http.MethodGet, "/categories/"+url.PathEscape(id), token, nil, nil, &category); err != nil {
		return nil, err
	}
	return &category, nil
}

func (c *Client) CreateCategory(ctx context.Context, token string, input models.CategoryInput) (*models.Category, error) {
	var category models.Category
	if err := c.do(ctx, http.MethodPost, "/categories", token, nil, input, &category); err != nil {
		return nil, err
	}
	return &category, nil
}

func (c *Client) UpdateCategory(ctx context.Context, token, id string, input models.CategoryInput) (*models.Category, error) {
	var category models.Category
	if err := c.do(ctx, http.MethodPut, "/categories/"+url.PathEscape(id), token, nil, input, &category); err != nil {
		return nil, err
	}
	return &category, nil
}

func (c *Client) DeleteCategory(ctx context.Context, token, id string) error {
	return c.do(ctx, http.MethodDelete, "/categories/"+url.PathEscape(id), token, nil, nil, nil)
}
