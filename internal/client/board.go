package client

import (
	"context"
	"strings"

	"github.com/tasknest/tasknest-backend/internal/dto"
)

// BoardAPI is the subset of Client the board drives
type BoardAPI interface {
	ListTodos(ctx context.Context, q TodoQuery) (*dto.TodoListResponse, error)
	GetTodo(ctx context.Context, id int64) (*dto.TodoResponse, error)
	CreateTodo(ctx context.Context, req dto.CreateTodoRequest) (*dto.TodoResponse, error)
	UpdateTodo(ctx context.Context, id int64, req dto.UpdateTodoRequest) (*dto.TodoResponse, error)
	DeleteTodo(ctx context.Context, id int64) (*dto.TodoResponse, error)
	AddCategory(ctx context.Context, todoID, categoryID int64) (*dto.TodoCategoryResponse, error)
	RemoveCategory(ctx context.Context, todoID, categoryID int64) error
	ListCategories(ctx context.Context) ([]dto.CategoryResponse, error)
	CreateCategory(ctx context.Context, name string) (*dto.CategoryResponse, error)
	DeleteCategory(ctx context.Context, id int64) (*dto.CategoryResponse, error)
}

var _ BoardAPI = (*Client)(nil)

// BoardFilter narrows the todo list
type BoardFilter struct {
	Completed  *bool
	Search     string
	CategoryID int64
}

// Draft is an in-progress edit of one todo. Empty optional fields are sent as null.
type Draft struct {
	ID          int64
	Title       string
	Description string
	DueDate     string
	Priority    string
}

// TodoBoard holds the state of the todo page: filter, page window, the
// loaded page and category list, and at most one edit draft
type TodoBoard struct {
	api BoardAPI

	Filter     BoardFilter
	Page       int
	Limit      int
	Items      []dto.TodoResponse
	Pagination dto.PaginationResponse
	Categories []dto.CategoryResponse
	Draft      *Draft
}

// NewTodoBoard creates a board on page 1 with the given page size
func NewTodoBoard(api BoardAPI, limit int) *TodoBoard {
	return &TodoBoard{api: api, Page: 1, Limit: limit}
}

func (b *TodoBoard) query() TodoQuery {
	return TodoQuery{
		Page:       b.Page,
		Limit:      b.Limit,
		Completed:  b.Filter.Completed,
		Search:     b.Filter.Search,
		CategoryID: b.Filter.CategoryID,
	}
}

// Load fetches the current page and the category list
func (b *TodoBoard) Load(ctx context.Context) error {
	if err := b.Refresh(ctx); err != nil {
		return err
	}
	categories, err := b.api.ListCategories(ctx)
	if err != nil {
		return err
	}
	b.Categories = categories
	return nil
}

// Refresh re-fetches the current page with the current filter
func (b *TodoBoard) Refresh(ctx context.Context) error {
	page, err := b.api.ListTodos(ctx, b.query())
	if err != nil {
		return err
	}
	b.Items = page.Data
	b.Pagination = page.Pagination
	if page.Pagination.Page > 0 {
		b.Page = page.Pagination.Page
	}
	return nil
}

// SetFilter replaces the filter and goes back to page 1
func (b *TodoBoard) SetFilter(ctx context.Context, f BoardFilter) error {
	f.Search = strings.TrimSpace(f.Search)
	b.Filter = f
	b.Page = 1
	return b.Refresh(ctx)
}

// HasNext reports whether a later page exists
func (b *TodoBoard) HasNext() bool { return b.Page < b.Pagination.TotalPages }

// HasPrev reports whether an earlier page exists
func (b *TodoBoard) HasPrev() bool { return b.Page > 1 }

// NextPage moves forward one page; it is a no-op on the last page
func (b *TodoBoard) NextPage(ctx context.Context) error {
	if !b.HasNext() {
		return nil
	}
	b.Page++
	return b.Refresh(ctx)
}

// Add creates a todo and shows the first page, where it now appears.
// A blank title is ignored.
func (b *TodoBoard) Add(ctx context.Context, req dto.CreateTodoRequest) (*dto.TodoResponse, error) {
	req.Title = strings.TrimSpace(req.Title)
	if req.Title == "" {
		return nil, nil
	}
	if req.Completed == nil {
		completed := false
		req.Completed = &completed
	}
	todo, err := b.api.CreateTodo(ctx, req)
	if err != nil {
		return nil, err
	}
	b.Page = 1
	return todo, b.Refresh(ctx)
}

func (b *TodoBoard) find(id int64) int {
	for i := range b.Items {
		if b.Items[i].ID == id {
			return i
		}
	}
	return -1
}

// Toggle flips completion, resending the whole record
func (b *TodoBoard) Toggle(ctx context.Context, id int64) (*dto.TodoResponse, error) {
	var current dto.TodoResponse
	if i := b.find(id); i >= 0 {
		current = b.Items[i]
	} else {
		fetched, err := b.api.GetTodo(ctx, id)
		if err != nil {
			return nil, err
		}
		current = *fetched
	}

	updated, err := b.api.UpdateTodo(ctx, id, dto.UpdateTodoRequest{
		Title:       dto.Some(current.Title),
		Completed:   dto.Some(!current.Completed),
		Description: dto.Optional[string]{Set: true, Value: current.Description},
		DueDate:     dto.Optional[string]{Set: true, Value: current.DueDate},
		Priority:    dto.Optional[string]{Set: true, Value: current.Priority},
	})
	if err != nil {
		return nil, err
	}
	if i := b.find(id); i >= 0 {
		b.Items[i] = *updated
	}
	return updated, nil
}

// Delete removes a todo and drops it from the loaded page
func (b *TodoBoard) Delete(ctx context.Context, id int64) error {
	if _, err := b.api.DeleteTodo(ctx, id); err != nil {
		return err
	}
	if i := b.find(id); i >= 0 {
		b.Items = append(b.Items[:i], b.Items[i+1:]...)
		if b.Pagination.Total > 0 {
			b.Pagination.Total--
		}
	}
	return nil
}

// Edit starts a draft from the todo with the given id, fetching it when it
// is not on the loaded page
func (b *TodoBoard) Edit(ctx context.Context, id int64) error {
	var t dto.TodoResponse
	if i := b.find(id); i >= 0 {
		t = b.Items[i]
	} else {
		fetched, err := b.api.GetTodo(ctx, id)
		if err != nil {
			return err
		}
		t = *fetched
	}
	b.Draft = &Draft{ID: t.ID, Title: t.Title}
	if t.Description != nil {
		b.Draft.Description = *t.Description
	}
	if t.DueDate != nil {
		b.Draft.DueDate = *t.DueDate
	}
	if t.Priority != nil {
		b.Draft.Priority = *t.Priority
	}
	return nil
}

func nullIfEmpty(s string) dto.Optional[string] {
	if strings.TrimSpace(s) == "" {
		return dto.Null[string]()
	}
	return dto.Some(s)
}

// SaveEdit sends the draft and clears it on success
func (b *TodoBoard) SaveEdit(ctx context.Context) (*dto.TodoResponse, error) {
	if b.Draft == nil {
		return nil, nil
	}
	d := b.Draft
	updated, err := b.api.UpdateTodo(ctx, d.ID, dto.UpdateTodoRequest{
		Title:       dto.Some(d.Title),
		Description: nullIfEmpty(d.Description),
		DueDate:     nullIfEmpty(d.DueDate),
		Priority:    nullIfEmpty(d.Priority),
	})
	if err != nil {
		return nil, err
	}
	if i := b.find(d.ID); i >= 0 {
		b.Items[i] = *updated
	}
	b.Draft = nil
	return updated, nil
}

// AddCategory creates a category and appends it to the list
func (b *TodoBoard) AddCategory(ctx context.Context, name string) (*dto.CategoryResponse, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, nil
	}
	c, err := b.api.CreateCategory(ctx, name)
	if err != nil {
		return nil, err
	}
	b.Categories = append(b.Categories, *c)
	return c, nil
}

// DeleteCategory removes a category; filtering by it is cleared
func (b *TodoBoard) DeleteCategory(ctx context.Context, id int64) error {
	if _, err := b.api.DeleteCategory(ctx, id); err != nil {
		return err
	}
	kept := b.Categories[:0]
	for _, c := range b.Categories {
		if c.ID != id {
			kept = append(kept, c)
		}
	}
	b.Categories = kept
	if b.Filter.CategoryID == id {
		f := b.Filter
		f.CategoryID = 0
		return b.SetFilter(ctx, f)
	}
	return nil
}

// Link attaches a category to a todo and reloads the page under the current filter
func (b *TodoBoard) Link(ctx context.Context, todoID, categoryID int64) error {
	if _, err := b.api.AddCategory(ctx, todoID, categoryID); err != nil {
		return err
	}
	return b.Refresh(ctx)
}

// Unlink detaches a category from a todo and reloads the page
func (b *TodoBoard) Unlink(ctx context.Context, todoID, categoryID int64) error {
	if err := b.api.RemoveCategory(ctx, todoID, categoryID); err != nil {
		return err
	}
	return b.Refresh(ctx)
}
