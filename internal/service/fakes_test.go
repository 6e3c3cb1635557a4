package service

import (
	"context"
	"io"
	"sync"

	"github.com/Ianrury/articel/internal/models"
	"github.com/Ianrury/articel/internal/remote"
)

// fakeArticleAPI records calls and serves scripted responses.
type fakeArticleAPI struct {
	mu sync.Mutex

	listFn    func(query remote.ArticleQuery) *models.ArticleList
	listCalls []remote.ArticleQuery
	listErr   error

	uploadURL   string
	uploadErr   error
	uploadGate  chan struct{} // when set, uploads block until closed
	uploadCalls int

	created    []models.ArticleInput
	createKeys []string
	createErr  error

	deleted   []string
	deleteErr error
}

func (f *fakeArticleAPI) ListArticles(ctx context.Context, token string, query remote.ArticleQuery) (*models.ArticleList, error) {
	f.mu.Lock()
	f.listCalls = append(f.listCalls, query)
	fn, err := f.listFn, f.listErr
	f.mu.Unlock()

	if err != nil {
		return nil, err
	}
	if fn != nil {
		return fn(query), nil
	}
	return &models.ArticleList{Page: query.Page, Limit: query.Limit}, nil
}

func (f *fakeArticleAPI) GetArticle(ctx context.Context, token, id string) (*models.Article, error) {
	return &models.Article{ID: id}, nil
}

func (f *fakeArticleAPI) CreateArticle(ctx context.Context, token string, input models.ArticleInput, idempotencyKey string) (*models.Article, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.createErr != nil {
		return nil, f.createErr
	}
	f.created = append(f.created, input)
	f.createKeys = append(f.createKeys, idempotencyKey)
	return &models.Article{ID: "created-1", Title: input.Title, ImageURL: input.ImageURL}, nil
}

func (f *fakeArticleAPI) UpdateArticle(ctx context.Context, token, id string, update models.ArticleUpdate) (*models.Article, error) {
	return &models.Article{ID: id}, nil
}

func (f *fakeArticleAPI) DeleteArticle(ctx context.Context, token, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.deleteErr != nil {
		return f.deleteErr
	}
	f.deleted = append(f.deleted, id)
	return nil
}

func (f *fakeArticleAPI) UploadImage(ctx context.Context, token, fileName string, file io.Reader) (string, error) {
	f.mu.Lock()
	f.uploadCalls++
	gate := f.uploadGate
	url, err := f.uploadURL, f.uploadErr
	f.mu.Unlock()

	if gate != nil {
		<-gate
	}
	if err != nil {
		return "", err
	}
	io.Copy(io.Discard, file)
	return url, nil
}

func (f *fakeArticleAPI) uploads() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.uploadCalls
}

func (f *fakeArticleAPI) createdInputs() []models.ArticleInput {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]models.ArticleInput(nil), f.created...)
}

// fakeCategoryAPI serves a fixed collection.
type fakeCategoryAPI struct {
	categories []models.Category
	listErr    error

	createdNames []string
	updatedNames []string
	deleted      []string
}

func (f *fakeCategoryAPI) ListCategories(ctx context.Context, token string) (*models.CategoryList, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return &models.CategoryList{Data: f.categories, TotalData: len(f.categories)}, nil
}

func (f *fakeCategoryAPI) GetCategory(ctx context.Context, token, id string) (*models.Category, error) {
	return &models.Category{ID: id}, nil
}

func (f *fakeCategoryAPI) CreateCategory(ctx context.Context, token string, input models.CategoryInput) (*models.Category, error) {
	f.createdNames = append(f.createdNames, input.Name)
	return &models.Category{ID: "c-new", Name: input.Name}, nil
}

func (f *fakeCategoryAPI) UpdateCategory(ctx context.Context, token, id string, input models.CategoryInput) (*models.Category, error) {
	f.updatedNames = append(f.updatedNames, input.Name)
	return &models.Category{ID: id, Name: input.Name}, nil
}

func (f *fakeCategoryAPI) DeleteCategory(ctx context.Context, token, id string) error {
	f.deleted = append(f.deleted, id)
	return nil
}

// fakeAuthAPI scripts the auth endpoints.
type fakeAuthAPI struct {
	loginResp *remote.LoginResponse
	loginErr  error
	user      *models.User
}

func (f *fakeAuthAPI) Login(ctx context.Context, req remote.LoginRequest) (*remote.LoginResponse, error) {
	if f.loginErr != nil {
		return nil, f.loginErr
	}
	return f.loginResp, nil
}

func (f *fakeAuthAPI) Register(ctx context.Context, req remote.RegisterRequest) (*models.User, error) {
	return &models.User{ID: "u-1", Username: req.Username, Role: req.Role}, nil
}

func (f *fakeAuthAPI) Profile(ctx context.Context, token string) (*models.User, error) {
	return f.user, nil
}
