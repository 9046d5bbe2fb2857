package client

import (
	"context"
	"testing"

	"github.com/tasknest/tasknest-backend/internal/dto"
)

// fakeAPI serves 25 todos (ids 25..1, newest first) and records calls
type fakeAPI struct {
	queries []TodoQuery
	updates map[int64]dto.UpdateTodoRequest
	links   [][2]int64
	created []dto.CreateTodoRequest
	deleted []int64
}

func newFakeAPI() *fakeAPI {
	return &fakeAPI{updates: map[int64]dto.UpdateTodoRequest{}}
}

func strp(s string) *string { return &s }

func (f *fakeAPI) todo(id int64) dto.TodoResponse {
	return dto.TodoResponse{ID: id, Title: "task", Description: strp("d"), Priority: strp("high"), DueDate: strp("2025-03-01")}
}

func (f *fakeAPI) ListTodos(_ context.Context, q TodoQuery) (*dto.TodoListResponse, error) {
	f.queries = append(f.queries, q)
	const total = 25
	limit := q.Limit
	if limit <= 0 {
		limit = 10
	}
	page := q.Page
	if page < 1 {
		page = 1
	}
	var data []dto.TodoResponse
	for i := (page - 1) * limit; i < page*limit && i < total; i++ {
		data = append(data, f.todo(int64(total-i)))
	}
	return &dto.TodoListResponse{
		Data:       data,
		Pagination: dto.PaginationResponse{Page: page, Limit: limit, Total: total, TotalPages: (total + limit - 1) / limit},
	}, nil
}

func (f *fakeAPI) GetTodo(_ context.Context, id int64) (*dto.TodoResponse, error) {
	t := f.todo(id)
	return &t, nil
}

func (f *fakeAPI) CreateTodo(_ context.Context, req dto.CreateTodoRequest) (*dto.TodoResponse, error) {
	f.created = append(f.created, req)
	return &dto.TodoResponse{ID: 26, Title: req.Title}, nil
}

func (f *fakeAPI) UpdateTodo(_ context.Context, id int64, req dto.UpdateTodoRequest) (*dto.TodoResponse, error) {
	f.updates[id] = req
	t := f.todo(id)
	if req.Completed.Value != nil {
		t.Completed = *req.Completed.Value
	}
	if req.Title.Value != nil {
		t.Title = *req.Title.Value
	}
	return &t, nil
}

func (f *fakeAPI) DeleteTodo(_ context.Context, id int64) (*dto.TodoResponse, error) {
	f.deleted = append(f.deleted, id)
	t := f.todo(id)
	return &t, nil
}

func (f *fakeAPI) AddCategory(_ context.Context, todoID, categoryID int64) (*dto.TodoCategoryResponse, error) {
	f.links = append(f.links, [2]int64{todoID, categoryID})
	return &dto.TodoCategoryResponse{TodoID: todoID, CategoryID: categoryID}, nil
}

func (f *fakeAPI) RemoveCategory(context.Context, int64, int64) error { return nil }

func (f *fakeAPI) ListCategories(context.Context) ([]dto.CategoryResponse, error) {
	return []dto.CategoryResponse{{ID: 5, Name: "Work"}, {ID: 6, Name: "Home"}}, nil
}

func (f *fakeAPI) CreateCategory(_ context.Context, name string) (*dto.CategoryResponse, error) {
	return &dto.CategoryResponse{ID: 7, Name: name}, nil
}

func (f *fakeAPI) DeleteCategory(_ context.Context, id int64) (*dto.CategoryResponse, error) {
	return &dto.CategoryResponse{ID: id}, nil
}

func (f *fakeAPI) lastQuery() TodoQuery { return f.queries[len(f.queries)-1] }

func TestBoardPagingIsBounded(t *testing.T) {
	api := newFakeAPI()
	b := NewTodoBoard(api, 10)
	ctx := context.Background()

	if err := b.Load(ctx); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(b.Items) != 10 || len(b.Categories) != 2 || b.HasPrev() || !b.HasNext() {
		t.Fatalf("unexpected initial state: items=%d categories=%d", len(b.Items), len(b.Categories))
	}

	_ = b.NextPage(ctx)
	_ = b.NextPage(ctx)
	if b.Page != 3 || len(b.Items) != 5 || b.HasNext() || !b.HasPrev() {
		t.Fatalf("expected last page with 5 items, got page %d with %d", b.Page, len(b.Items))
	}
	_ = b.NextPage(ctx)
	if b.Page != 3 || len(api.queries) != 3 {
		t.Fatalf("NextPage past the end should be a no-op, page=%d queries=%d", b.Page, len(api.queries))
	}
}

func TestBoardFilterResetsPage(t *testing.T) {
	api := newFakeAPI()
	b := NewTodoBoard(api, 10)
	ctx := context.Background()
	_ = b.Load(ctx)
	_ = b.NextPage(ctx)

	completed := true
	if err := b.SetFilter(ctx, BoardFilter{Completed: &completed, Search: "  milk ", CategoryID: 5}); err != nil {
		t.Fatalf("SetFilter: %v", err)
	}
	q := api.lastQuery()
	if q.Page != 1 || q.Search != "milk" || q.CategoryID != 5 || q.Completed == nil || !*q.Completed {
		t.Fatalf("unexpected query %#v", q)
	}
}

func TestBoardToggleSendsFullRecord(t *testing.T) {
	api := newFakeAPI()
	b := NewTodoBoard(api, 10)
	ctx := context.Background()
	_ = b.Load(ctx)

	updated, err := b.Toggle(ctx, 25)
	if err != nil || !updated.Completed {
		t.Fatalf("Toggle: %#v %v", updated, err)
	}
	req := api.updates[25]
	if !req.Title.Set || !req.Completed.Set || !req.Description.Set || !req.DueDate.Set || !req.Priority.Set {
		t.Fatalf("toggle must resend every field: %#v", req)
	}
	if *req.DueDate.Value != "2025-03-01" || *req.Priority.Value != "high" {
		t.Fatalf("fields not carried over: %#v", req)
	}
	if !b.Items[0].Completed {
		t.Fatal("loaded item not replaced")
	}

	if _, err := b.Toggle(ctx, 1); err != nil {
		t.Fatalf("Toggle of an unloaded todo: %v", err)
	}
}

func TestBoardLinkRefreshesWithFilter(t *testing.T) {
	api := newFakeAPI()
	b := NewTodoBoard(api, 10)
	ctx := context.Background()
	_ = b.SetFilter(ctx, BoardFilter{CategoryID: 5})

	if err := b.Link(ctx, 25, 5); err != nil {
		t.Fatalf("Link: %v", err)
	}
	if len(api.links) != 1 || api.lastQuery().CategoryID != 5 {
		t.Fatalf("link not followed by filtered refresh: %#v", api.queries)
	}
}

func TestBoardDeleteCategoryClearsFilter(t *testing.T) {
	api := newFakeAPI()
	b := NewTodoBoard(api, 10)
	ctx := context.Background()
	_ = b.Load(ctx)
	_ = b.SetFilter(ctx, BoardFilter{CategoryID: 5})

	if err := b.DeleteCategory(ctx, 5); err != nil {
		t.Fatalf("DeleteCategory: %v", err)
	}
	if len(b.Categories) != 1 || b.Categories[0].ID != 6 {
		t.Fatalf("category not removed: %#v", b.Categories)
	}
	if b.Filter.CategoryID != 0 || api.lastQuery().CategoryID != 0 {
		t.Fatal("filter on deleted category not cleared")
	}
}

func TestBoardEditDraft(t *testing.T) {
	api := newFakeAPI()
	b := NewTodoBoard(api, 10)
	ctx := context.Background()
	_ = b.Load(ctx)

	if err := b.Edit(ctx, 999); err != nil || b.Draft.ID != 999 {
		t.Fatalf("a todo off the loaded page should be fetched: %v %#v", err, b.Draft)
	}
	if err := b.Edit(ctx, 24); err != nil || b.Draft.Priority != "high" {
		t.Fatalf("draft not populated: %v %#v", err, b.Draft)
	}
	b.Draft.Title = "renamed"
	b.Draft.Priority = ""

	if _, err := b.SaveEdit(ctx); err != nil {
		t.Fatalf("SaveEdit: %v", err)
	}
	req := api.updates[24]
	if *req.Title.Value != "renamed" || !req.Priority.Set || req.Priority.Value != nil {
		t.Fatalf("unexpected update %#v", req)
	}
	if req.Completed.Set {
		t.Fatal("edit must not touch completion")
	}
	if b.Draft != nil || b.Items[1].Title != "renamed" {
		t.Fatal("draft not applied")
	}
}

func TestBoardAddAndDelete(t *testing.T) {
	api := newFakeAPI()
	b := NewTodoBoard(api, 10)
	ctx := context.Background()
	_ = b.Load(ctx)
	_ = b.NextPage(ctx)

	if todo, err := b.Add(ctx, dto.CreateTodoRequest{Title: "   "}); todo != nil || err != nil || len(api.created) != 0 {
		t.Fatal("blank title should be ignored")
	}
	high := "high"
	if _, err := b.Add(ctx, dto.CreateTodoRequest{Title: " Buy milk ", Priority: &high}); err != nil {
		t.Fatalf("Add: %v", err)
	}
	if b.Page != 1 || *api.created[0].Completed || api.created[0].Title != "Buy milk" || *api.created[0].Priority != "high" {
		t.Fatalf("unexpected state after add: page=%d", b.Page)
	}

	if err := b.Delete(ctx, 25); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if len(b.Items) != 9 || b.Pagination.Total != 24 {
		t.Fatalf("todo not dropped: %d items, total %d", len(b.Items), b.Pagination.Total)
	}
}
