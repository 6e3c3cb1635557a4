package models

import (
	"time"
)

type User struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Role     string `json:"role"`
}

type Category struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	UserID    string    `json:"userId"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type Article struct {
	ID         string    `json:"id"`
	Title      string    `json:"title"`
	Content    string    `json:"content"`
	ImageURL   string    `json:"imageUrl"`
	UserID     string    `json:"userId"`
	CategoryID string    `json:"categoryId"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
	Category   Category  `json:"category"`
	User       User      `json:"user"`
}

// ArticleInput carries the fields the creation endpoint accepts.
// ImageURL is filled in by the create flow after a successful upload.
type ArticleInput struct {
	Title      string `json:"title"`
	Content    string `json:"content"`
	CategoryID string `json:"categoryId"`
	ImageURL   string `json:"imageUrl,omitempty"`
}

// ArticleUpdate is a partial update; nil fields are left untouched.
type ArticleUpdate struct {
	Title      *string `json:"title,omitempty"`
	Content    *string `json:"content,omitempty"`
	CategoryID *string `json:"categoryId,omitempty"`
	ImageURL   *string `json:"imageUrl,omitempty"`
}

type CategoryInput struct {
	Name string `json:"name"`
}

type ArticleList struct {
	Data  []Article `json:"data"`
	Total int       `json:"total"`
	Page  int       `json:"page"`
	Limit int       `json:"limit"`
}

type CategoryList struct {
	Data        []Category `json:"data"`
	TotalData   int        `json:"totalData"`
	CurrentPage int        `json:"currentPage"`
	TotalPages  int        `json:"totalPages"`
}
