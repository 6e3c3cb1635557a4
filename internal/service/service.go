package service

import (
	"context"
	"io"

	"github.com/Ianrury/articel/internal/config"
	"github.com/Ianrury/articel/internal/models"
	"github.com/Ianrury/articel/internal/remote"
)

// ArticleAPI is the slice of the content API the article screens use.
type ArticleAPI interface {
	ListArticles(ctx context.Context, token string, query remote.ArticleQuery) (*models.ArticleList, error)
	GetArticle(ctx context.Context, token, id string) (*models.Article, error)
	CreateArticle(ctx context.Context, token string, input models.ArticleInput, idempotencyKey string) (*models.Article, error)
	UpdateArticle(ctx context.Context, token, id string, update models.ArticleUpdate) (*models.Article, error)
	DeleteArticle(ctx context.Context, token, id string) error
	UploadImage(ctx context.Context, token, fileName string, file io.Reader) (string, error)
}

type CategoryAPI interface {
	ListCategories(ctx context.Context, token string) (*models.CategoryList, error)
	GetCategory(ctx context.Context, token, id string) (*models.Category, error)
	CreateCategory(ctx context.Context, token string, input models.CategoryInput) (*models.Category, error)
	UpdateCategory(ctx context.Context, token, id string, input models.CategoryInput) (*models.Category, error)
	DeleteCategory(ctx context.Context, token, id string) error
}

type AuthAPI interface {
	Login(ctx context.Context, req remote.LoginRequest) (*remote.LoginResponse, error)
	Register(ctx context.Context, req remote.RegisterRequest) (*models.User, error)
	Profile(ctx context.Context, token string) (*models.User, error)
}

type Service struct {
	Article  *ArticleService
	Category *CategoryService
	Auth     *AuthService
}

func NewService(client *remote.Client, cfg *config.Config) *Service {
	return &Service{
		Article:  NewArticleService(client, cfg),
		Category: NewCategoryService(client, cfg),
		Auth:     NewAuthService(client),
	}
}
