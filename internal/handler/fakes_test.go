package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/require"

	"github.com/Ianrury/articel/internal/config"
	"github.com/Ianrury/articel/internal/models"
	"github.com/Ianrury/articel/internal/remote"
	"github.com/Ianrury/articel/internal/service"
	"github.com/Ianrury/articel/internal/session"
)

// stubArticleAPI serves scripted article responses and records what the
// handlers asked for.
type stubArticleAPI struct {
	mu sync.Mutex

	list    *models.ArticleList
	listErr error

	article    *models.Article
	articleErr error

	uploadURL string
	uploadErr error

	createErr error
	deleteErr error

	listQueries []remote.ArticleQuery
	listTokens  []string
	created     []models.ArticleInput
	createKeys  []string
	uploads     []string
	deleted     []string
}

func (f *stubArticleAPI) ListArticles(ctx context.Context, token string, query remote.ArticleQuery) (*models.ArticleList, error) {
	f.mu.Lock()
	f.listQueries = append(f.listQueries, query)
	f.listTokens = append(f.listTokens, token)
	f.mu.Unlock()

	if f.listErr != nil {
		return nil, f.listErr
	}
	if f.list != nil {
		return f.list, nil
	}
	return &models.ArticleList{Page: query.Page, Limit: query.Limit}, nil
}

func (f *stubArticleAPI) GetArticle(ctx context.Context, token, id string) (*models.Article, error) {
	if f.articleErr != nil {
		return nil, f.articleErr
	}
	if f.article != nil {
		return f.article, nil
	}
	return &models.Article{ID: id}, nil
}

func (f *stubArticleAPI) CreateArticle(ctx context.Context, token string, input models.ArticleInput, idempotencyKey string) (*models.Article, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.createErr != nil {
		return nil, f.createErr
	}
	f.created = append(f.created, input)
	f.createKeys = append(f.createKeys, idempotencyKey)
	return &models.Article{ID: "a-new", Title: input.Title, ImageURL: input.ImageURL}, nil
}

func (f *stubArticleAPI) UpdateArticle(ctx context.Context, token, id string, update models.ArticleUpdate) (*models.Article, error) {
	article := models.Article{ID: id}
	if update.Title != nil {
		article.Title = *update.Title
	}
	return &article, nil
}

func (f *stubArticleAPI) DeleteArticle(ctx context.Context, token, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.deleteErr != nil {
		return f.deleteErr
	}
	f.deleted = append(f.deleted, id)
	return nil
}

func (f *stubArticleAPI) UploadImage(ctx context.Context, token, fileName string, file io.Reader) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.uploadErr != nil {
		return "", f.uploadErr
	}
	io.Copy(io.Discard, file)
	f.uploads = append(f.uploads, fileName)
	return f.uploadURL, nil
}

type stubCategoryAPI struct {
	categories []models.Category
	listErr    error

	createdNames []string
	updatedNames []string
	deleted      []string
	createErr    error
}

func (f *stubCategoryAPI) ListCategories(ctx context.Context, token string) (*models.CategoryList, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return &models.CategoryList{Data: f.categories, TotalData: len(f.categories)}, nil
}

func (f *stubCategoryAPI) GetCategory(ctx context.Context, token, id string) (*models.Category, error) {
	return &models.Category{ID: id}, nil
}

func (f *stubCategoryAPI) CreateCategory(ctx context.Context, token string, input models.CategoryInput) (*models.Category, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	f.createdNames = append(f.createdNames, input.Name)
	return &models.Category{ID: "c-new", Name: input.Name}, nil
}

func (f *stubCategoryAPI) UpdateCategory(ctx context.Context, token, id string, input models.CategoryInput) (*models.Category, error) {
	f.updatedNames = append(f.updatedNames, input.Name)
	return &models.Category{ID: id, Name: input.Name}, nil
}

func (f *stubCategoryAPI) DeleteCategory(ctx context.Context, token, id string) error {
	f.deleted = append(f.deleted, id)
	return nil
}

type stubAuthAPI struct {
	loginResp *remote.LoginResponse
	loginErr  error
	user      *models.User
}

func (f *stubAuthAPI) Login(ctx context.Context, req remote.LoginRequest) (*remote.LoginResponse, error) {
	if f.loginErr != nil {
		return nil, f.loginErr
	}
	return f.loginResp, nil
}

func (f *stubAuthAPI) Register(ctx context.Context, req remote.RegisterRequest) (*models.User, error) {
	return &models.User{ID: "u-1", Username: req.Username, Role: req.Role}, nil
}

func (f *stubAuthAPI) Profile(ctx context.Context, token string) (*models.User, error) {
	if f.user != nil {
		return f.user, nil
	}
	return nil, &remote.Error{Kind: remote.KindUnauthorized, Status: http.StatusUnauthorized}
}

// newTestHandlers wires real services over the stubs, with a fixed signing
// secret so every test can mint its own cookies.
func newTestHandlers(articles service.ArticleAPI, categories service.CategoryAPI, auth service.AuthAPI) *Handlers {
	cfg := &config.Config{
		AdminPageSize:  10,
		ReaderPageSize: 9,
		MaxUploadSize:  5 * 1024 * 1024,
	}
	return &Handlers{
		ArticleService:  service.NewArticleService(articles, cfg),
		CategoryService: service.NewCategoryService(categories, cfg),
		AuthService:     service.NewAuthService(auth),
		Sessions:        session.NewCodec("handler-test-secret", time.Hour),
		Cfg:             cfg,
		Validate:        validator.New(),
	}
}

// signIn mints a valid session cookie for the given role.
func signIn(t *testing.T, h *Handlers, role string) *http.Cookie {
	t.Helper()

	rec := httptest.NewRecorder()
	require.NoError(t, h.Sessions.Write(rec, session.Session{Token: "api-token", Role: role}))

	cookies := rec.Result().Cookies()
	require.NotEmpty(t, cookies)
	return cookies[0]
}

func jsonRequest(t *testing.T, method, target string, body interface{}) *http.Request {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set("Content-Type", "application/json")
	return req
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()

	var resp ErrorResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	return resp.Error
}
