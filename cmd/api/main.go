package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/gorilla/mux"

	"github.com/Ianrury/articel/cmd/app"
	"github.com/Ianrury/articel/internal/config"
	handlers "github.com/Ianrury/articel/internal/handler"
	"github.com/Ianrury/articel/internal/middleware"
)

func main() {
	cfg := config.LoadConfig()

	_, services, sessions := app.App(cfg)

	handler := handlers.NewHandlers(services, sessions, cfg)

	router := mux.NewRouter()
	registerRoutes(router, handler)

	chain := middleware.Chain(
		router,
		middleware.Logging,
		middleware.CORS(cfg.AllowedOrigin),
		middleware.PageGate(sessions),
	)

	addr := fmt.Sprintf(":%d", cfg.ServerPort)
	slog.Info("console listening", "addr", addr, "api", cfg.APIBaseURL)

	if err := http.ListenAndServe(addr, chain); err != nil {
		slog.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func registerRoutes(router *mux.Router, handler *handlers.Handlers) {
	api := router.PathPrefix("/api").Subrouter()

	// auth
	api.HandleFunc("/auth/login", handler.Login).Methods(http.MethodPost)
	api.HandleFunc("/auth/register", handler.Register).Methods(http.MethodPost)
	api.HandleFunc("/auth/profile", handler.Profile).Methods(http.MethodGet)
	api.HandleFunc("/auth/logout", handler.Logout).Methods(http.MethodPost)
	api.HandleFunc("/navigate", handler.Navigate).Methods(http.MethodGet)

	// reader
	api.HandleFunc("/articles", handler.ListArticles).Methods(http.MethodGet)
	api.HandleFunc("/articles/{id}", handler.GetArticle).Methods(http.MethodGet)

	// admin articles
	admin := api.PathPrefix("/admin").Subrouter()
	admin.HandleFunc("/articles", handler.ListAdminArticles).Methods(http.MethodGet)
	admin.HandleFunc("/articles/new", handler.OpenCreateArticle).Methods(http.MethodPost)
	admin.HandleFunc("/articles/new/{formId}", handler.SubmitCreateArticle).Methods(http.MethodPost)
	admin.HandleFunc("/articles/new/{formId}/image", handler.SelectArticleImage).Methods(http.MethodPost)
	admin.HandleFunc("/articles/new/{formId}/image", handler.RemoveArticleImage).Methods(http.MethodDelete)
	admin.HandleFunc("/articles/delete/pending", handler.PendingDeleteArticle).Methods(http.MethodGet)
	admin.HandleFunc("/articles/delete/confirm", handler.ConfirmDeleteArticle).Methods(http.MethodPost)
	admin.HandleFunc("/articles/delete/cancel", handler.CancelDeleteArticle).Methods(http.MethodPost)
	admin.HandleFunc("/articles/{id}", handler.GetArticle).Methods(http.MethodGet)
	admin.HandleFunc("/articles/{id}", handler.UpdateArticle).Methods(http.MethodPut)
	admin.HandleFunc("/articles/{id}/delete", handler.StageDeleteArticle).Methods(http.MethodPost)

	// categories
	admin.HandleFunc("/categories/view", handler.RefreshCategoryView).Methods(http.MethodGet)
	admin.HandleFunc("/categories/view/search", handler.TypeCategorySearch).Methods(http.MethodPost)
	admin.HandleFunc("/categories/view/search/commit", handler.CommitCategorySearch).Methods(http.MethodPost)
	admin.HandleFunc("/categories/view/page", handler.SetCategoryViewPage).Methods(http.MethodPost)
	admin.HandleFunc("/categories", handler.ListCategories).Methods(http.MethodGet)
	admin.HandleFunc("/categories", handler.CreateCategory).Methods(http.MethodPost)
	admin.HandleFunc("/categories/{id}", handler.GetCategory).Methods(http.MethodGet)
	admin.HandleFunc("/categories/{id}", handler.UpdateCategory).Methods(http.MethodPut)
	admin.HandleFunc("/categories/{id}", handler.DeleteCategory).Methods(http.MethodDelete)
}
