package services

import (
	"context"
	"errors"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/tasknest/tasknest-backend/internal/apperror"
	"github.com/tasknest/tasknest-backend/internal/models"
	"github.com/tasknest/tasknest-backend/internal/repository"
	"github.com/tasknest/tasknest-backend/internal/utils"
)

const (
	DefaultPageLimit = 10
	MaxPageLimit     = 100
)

// Nullable is a patch field: Set reports whether the caller supplied it,
// Value is nil when the caller supplied null.
type Nullable[T any] struct {
	Set   bool
	Value *T
}

// TodoInput carries the fields of a new todo
type TodoInput struct {
	Title       string
	Completed   *bool
	Description *string
	DueDate     *string
	Priority    *string
}

// TodoPatch carries a partial update. Unset fields keep their stored value.
type TodoPatch struct {
	Title       Nullable[string]
	Completed   Nullable[bool]
	Description Nullable[string]
	DueDate     Nullable[string]
	Priority    Nullable[string]
}

// ListParams selects a page of todos
type ListParams struct {
	Page       int
	Limit      int
	Completed  *bool
	Search     string
	CategoryID *int64
}

// Pagination describes the page window of a listing
type Pagination struct {
	Page       int
	Limit      int
	Total      int
	TotalPages int
}

// TodoPage is one page of a listing
type TodoPage struct {
	Data       []models.Todo
	Pagination Pagination
}

// TodoService enforces todo ownership and field rules
type TodoService struct {
	todos      TodoStore
	categories CategoryStore
}

// NewTodoService creates a new TodoService
func NewTodoService(todos TodoStore, categories CategoryStore) *TodoService {
	return &TodoService{todos: todos, categories: categories}
}

func todoError(err error) error {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return apperror.NotFound("Todo not found")
	case errors.Is(err, repository.ErrInvalidValue):
		return apperror.Validation("Invalid todo field value")
	default:
		return apperror.Internal(err)
	}
}

func validateTitle(title string) (string, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return "", apperror.Validation("Title is required")
	}
	if utf8.RuneCountInString(title) > MaxNameLength {
		return "", apperror.Validation("Title must be at most 255 characters")
	}
	return title, nil
}

// parseDueDate treats an empty string like null
func parseDueDate(s *string) (*time.Time, error) {
	if s == nil || strings.TrimSpace(*s) == "" {
		return nil, nil
	}
	d, err := utils.ParseDate(*s)
	if err != nil {
		return nil, apperror.Validation("Invalid due date: must be YYYY-MM-DD or RFC3339")
	}
	return &d, nil
}

// parsePriority treats an empty string like null
func parsePriority(s *string) (*models.Priority, error) {
	if s == nil || strings.TrimSpace(*s) == "" {
		return nil, nil
	}
	p := models.Priority(strings.ToLower(strings.TrimSpace(*s)))
	if !p.Valid() {
		return nil, apperror.Validation("Priority must be one of low, medium, high")
	}
	return &p, nil
}

// NormalizeListParams applies the page defaults and clamps limit to MaxPageLimit
func NormalizeListParams(p ListParams) ListParams {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.Limit < 1 {
		p.Limit = DefaultPageLimit
	}
	if p.Limit > MaxPageLimit {
		p.Limit = MaxPageLimit
	}
	p.Search = strings.TrimSpace(p.Search)
	return p
}

// TotalPages is ceil(total / limit)
func TotalPages(total, limit int) int {
	if limit <= 0 || total <= 0 {
		return 0
	}
	return (total + limit - 1) / limit
}

// List returns one page of ownerID's todos, newest first
func (s *TodoService) List(ctx context.Context, ownerID int64, params ListParams) (*TodoPage, error) {
	params = NormalizeListParams(params)

	items, total, err := s.todos.List(ctx, repository.TodoFilter{
		UserID:     ownerID,
		Completed:  params.Completed,
		Search:     params.Search,
		CategoryID: params.CategoryID,
		Limit:      params.Limit,
		Offset:     (params.Page - 1) * params.Limit,
	})
	if err != nil {
		return nil, todoError(err)
	}

	return &TodoPage{
		Data: items,
		Pagination: Pagination{
			Page:       params.Page,
			Limit:      params.Limit,
			Total:      total,
			TotalPages: TotalPages(total, params.Limit),
		},
	}, nil
}

// Get returns a todo owned by ownerID
func (s *TodoService) Get(ctx context.Context, id, ownerID int64) (*models.Todo, error) {
	t, err := s.todos.Get(ctx, id, ownerID)
	if err != nil {
		return nil, todoError(err)
	}
	return t, nil
}

// Create validates in and stores a new todo for ownerID
func (s *TodoService) Create(ctx context.Context, in TodoInput, ownerID int64) (*models.Todo, error) {
	title, err := validateTitle(in.Title)
	if err != nil {
		return nil, err
	}
	dueDate, err := parseDueDate(in.DueDate)
	if err != nil {
		return nil, err
	}
	priority, err := parsePriority(in.Priority)
	if err != nil {
		return nil, err
	}

	fields := repository.TodoFields{
		Title:       title,
		Description: in.Description,
		DueDate:     dueDate,
		Priority:    priority,
	}
	if in.Completed != nil {
		fields.Completed = *in.Completed
	}

	t, err := s.todos.Create(ctx, ownerID, fields)
	if err != nil {
		return nil, todoError(err)
	}
	return t, nil
}

// Update applies patch to a todo owned by ownerID. Supplied fields are
// validated before the todo is loaded.
func (s *TodoService) Update(ctx context.Context, id int64, patch TodoPatch, ownerID int64) (*models.Todo, error) {
	var (
		title    string
		dueDate  *time.Time
		priority *models.Priority
		err      error
	)
	if patch.Title.Set {
		if patch.Title.Value == nil {
			return nil, apperror.Validation("Title is required")
		}
		if title, err = validateTitle(*patch.Title.Value); err != nil {
			return nil, err
		}
	}
	if patch.Completed.Set && patch.Completed.Value == nil {
		return nil, apperror.Validation("Completed must be true or false")
	}
	if patch.DueDate.Set {
		if dueDate, err = parseDueDate(patch.DueDate.Value); err != nil {
			return nil, err
		}
	}
	if patch.Priority.Set {
		if priority, err = parsePriority(patch.Priority.Value); err != nil {
			return nil, err
		}
	}

	current, err := s.todos.Get(ctx, id, ownerID)
	if err != nil {
		return nil, todoError(err)
	}

	fields := repository.TodoFields{
		Title:       current.Title,
		Completed:   current.Completed,
		Description: current.Description,
		DueDate:     current.DueDate,
		Priority:    current.Priority,
	}
	if patch.Title.Set {
		fields.Title = title
	}
	if patch.Completed.Set {
		fields.Completed = *patch.Completed.Value
	}
	if patch.Description.Set {
		fields.Description = patch.Description.Value
	}
	if patch.DueDate.Set {
		fields.DueDate = dueDate
	}
	if patch.Priority.Set {
		fields.Priority = priority
	}

	t, err := s.todos.Update(ctx, id, ownerID, fields)
	if err != nil {
		return nil, todoError(err)
	}
	return t, nil
}

// Delete removes a todo owned by ownerID and returns the deleted record
func (s *TodoService) Delete(ctx context.Context, id, ownerID int64) (*models.Todo, error) {
	if _, err := s.todos.Get(ctx, id, ownerID); err != nil {
		return nil, todoError(err)
	}
	t, err := s.todos.Delete(ctx, id, ownerID)
	if err != nil {
		return nil, todoError(err)
	}
	return t, nil
}

// ensureTodoAndCategory checks that both sides of a link belong to ownerID
func (s *TodoService) ensureTodoAndCategory(ctx context.Context, todoID, categoryID, ownerID int64) error {
	if _, err := s.todos.Get(ctx, todoID, ownerID); err != nil {
		return todoError(err)
	}
	if _, err := s.categories.Get(ctx, categoryID, ownerID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperror.NotFound("Category not found")
		}
		return apperror.Internal(err)
	}
	return nil
}

// AddCategory links a category to a todo. Linking twice is a Conflict.
func (s *TodoService) AddCategory(ctx context.Context, todoID, categoryID, ownerID int64) (*models.TodoCategory, error) {
	if err := s.ensureTodoAndCategory(ctx, todoID, categoryID, ownerID); err != nil {
		return nil, err
	}
	link, err := s.todos.AddCategory(ctx, todoID, categoryID)
	if err != nil {
		if errors.Is(err, repository.ErrUniqueViolation) {
			return nil, apperror.Conflict("Category already linked to todo")
		}
		return nil, apperror.Internal(err)
	}
	return link, nil
}

// RemoveCategory unlinks a category from a todo. A missing link returns (nil, nil).
func (s *TodoService) RemoveCategory(ctx context.Context, todoID, categoryID, ownerID int64) (*models.TodoCategory, error) {
	if err := s.ensureTodoAndCategory(ctx, todoID, categoryID, ownerID); err != nil {
		return nil, err
	}
	link, err := s.todos.RemoveCategory(ctx, todoID, categoryID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, nil
		}
		return nil, apperror.Internal(err)
	}
	return link, nil
}

// ListCategories returns the categories linked to a todo owned by ownerID
func (s *TodoService) ListCategories(ctx context.Context, todoID, ownerID int64) ([]models.Category, error) {
	if _, err := s.todos.Get(ctx, todoID, ownerID); err != nil {
		return nil, todoError(err)
	}
	items, err := s.todos.ListCategories(ctx, todoID, ownerID)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return items, nil
}
