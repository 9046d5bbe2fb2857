package services

import (
	"context"

	"github.com/tasknest/tasknest-backend/internal/models"
	"github.com/tasknest/tasknest-backend/internal/repository"
)

// UserStore is the persistence the auth service needs
type UserStore interface {
	Create(ctx context.Context, username, passwordHash string) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
}

// CategoryStore is the persistence the category service needs
type CategoryStore interface {
	Create(ctx context.Context, name string, userID int64) (*models.Category, error)
	Get(ctx context.Context, id, userID int64) (*models.Category, error)
	List(ctx context.Context, userID int64) ([]models.Category, error)
	Update(ctx context.Context, id, userID int64, name string) (*models.Category, error)
	Delete(ctx context.Context, id, userID int64) (*models.Category, error)
}

// TodoStore is the persistence the todo service needs
type TodoStore interface {
	List(ctx context.Context, f repository.TodoFilter) ([]models.Todo, int, error)
	Get(ctx context.Context, id, userID int64) (*models.Todo, error)
	Create(ctx context.Context, userID int64, f repository.TodoFields) (*models.Todo, error)
	Update(ctx context.Context, id, userID int64, f repository.TodoFields) (*models.Todo, error)
	Delete(ctx context.Context, id, userID int64) (*models.Todo, error)
	AddCategory(ctx context.Context, todoID, categoryID int64) (*models.TodoCategory, error)
	RemoveCategory(ctx context.Context, todoID, categoryID int64) (*models.TodoCategory, error)
	ListCategories(ctx context.Context, todoID, userID int64) ([]models.Category, error)
}

var (
	_ UserStore     = (*repository.UserRepository)(nil)
	_ CategoryStore = (*repository.CategoryRepository)(nil)
	_ TodoStore     = (*repository.TodoRepository)(nil)
)
