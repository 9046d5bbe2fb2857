package handlers

import (
	"context"

	"github.com/tasknest/tasknest-backend/internal/models"
	"github.com/tasknest/tasknest-backend/internal/services"
)

// AuthService is what AuthHandler needs from the auth service
type AuthService interface {
	Register(ctx context.Context, username, password string) (*models.User, error)
	Login(ctx context.Context, username, password string) (string, error)
}

// CategoryService is what CategoriesHandler needs from the category service
type CategoryService interface {
	Create(ctx context.Context, name string, ownerID int64) (*models.Category, error)
	Get(ctx context.Context, id, ownerID int64) (*models.Category, error)
	List(ctx context.Context, ownerID int64) ([]models.Category, error)
	Update(ctx context.Context, id, ownerID int64, name string) (*models.Category, error)
	Delete(ctx context.Context, id, ownerID int64) (*models.Category, error)
}

// TodoService is what TodosHandler needs from the todo service
type TodoService interface {
	List(ctx context.Context, ownerID int64, params services.ListParams) (*services.TodoPage, error)
	Get(ctx context.Context, id, ownerID int64) (*models.Todo, error)
	Create(ctx context.Context, in services.TodoInput, ownerID int64) (*models.Todo, error)
	Update(ctx context.Context, id int64, patch services.TodoPatch, ownerID int64) (*models.Todo, error)
	Delete(ctx context.Context, id, ownerID int64) (*models.Todo, error)
	AddCategory(ctx context.Context, todoID, categoryID, ownerID int64) (*models.TodoCategory, error)
	RemoveCategory(ctx context.Context, todoID, categoryID, ownerID int64) (*models.TodoCategory, error)
	ListCategories(ctx context.Context, todoID, ownerID int64) ([]models.Category, error)
}

var (
	_ AuthService     = (*services.AuthService)(nil)
	_ CategoryService = (*services.CategoryService)(nil)
	_ TodoService     = (*services.TodoService)(nil)
)
