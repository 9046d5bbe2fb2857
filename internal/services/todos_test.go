package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/tasknest/tasknest-backend/internal/apperror"
	"github.com/tasknest/tasknest-backend/internal/models"
)

func newTodoService() (*TodoService, *CategoryService, *memDB) {
	db := newMemDB()
	return NewTodoService(memTodos{db}, memCategories{db}), NewCategoryService(memCategories{db}), db
}

func TestNormalizeListParams(t *testing.T) {
	tests := []struct {
		name      string
		in        ListParams
		wantPage  int
		wantLimit int
	}{
		{"defaults", ListParams{}, 1, DefaultPageLimit},
		{"negative", ListParams{Page: -3, Limit: -1}, 1, DefaultPageLimit},
		{"clamped", ListParams{Page: 2, Limit: 500}, 2, MaxPageLimit},
		{"kept", ListParams{Page: 4, Limit: 25}, 4, 25},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NormalizeListParams(tt.in)
			if got.Page != tt.wantPage || got.Limit != tt.wantLimit {
				t.Fatalf("got page=%d limit=%d", got.Page, got.Limit)
			}
		})
	}
}

func TestTotalPages(t *testing.T) {
	cases := map[[2]int]int{{0, 10}: 0, {1, 10}: 1, {10, 10}: 1, {11, 10}: 2, {25, 10}: 3}
	for in, want := range cases {
		if got := TotalPages(in[0], in[1]); got != want {
			t.Errorf("TotalPages(%d, %d) = %d, want %d", in[0], in[1], got, want)
		}
	}
}

func TestCreateValidatesFields(t *testing.T) {
	svc, _, _ := newTodoService()
	ctx := context.Background()

	cases := []TodoInput{
		{Title: "  "},
		{Title: "t", DueDate: ptr("not-a-date")},
		{Title: "t", Priority: ptr("urgent")},
	}
	for _, in := range cases {
		if _, err := svc.Create(ctx, in, 1); apperror.KindOf(err) != apperror.KindValidation {
			t.Fatalf("expected validation error for %#v, got %v", in, err)
		}
	}
}

func TestCreateKeepsOptionalFields(t *testing.T) {
	svc, _, _ := newTodoService()

	todo, err := svc.Create(context.Background(), TodoInput{
		Title:       "Buy milk",
		Description: ptr("2 litres"),
		DueDate:     ptr("2025-01-15T10:00:00Z"),
		Priority:    ptr("High"),
	}, 1)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if todo.Completed {
		t.Fatal("completed should default to false")
	}
	if todo.Description == nil || *todo.Description != "2 litres" {
		t.Fatalf("description lost: %#v", todo.Description)
	}
	if todo.DueDate == nil || todo.DueDate.Format("2006-01-02") != "2025-01-15" {
		t.Fatalf("due date lost: %#v", todo.DueDate)
	}
	if todo.Priority == nil || *todo.Priority != models.PriorityHigh {
		t.Fatalf("priority lost: %#v", todo.Priority)
	}
}

func TestCreateTreatsEmptyStringsAsNull(t *testing.T) {
	svc, _, _ := newTodoService()

	todo, err := svc.Create(context.Background(), TodoInput{Title: "t", DueDate: ptr(""), Priority: ptr("")}, 1)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if todo.DueDate != nil || todo.Priority != nil {
		t.Fatalf("expected null due date and priority, got %#v", todo)
	}
}

func TestListPagesPartitionNewestFirst(t *testing.T) {
	svc, _, _ := newTodoService()
	ctx := context.Background()

	for i := 0; i < 25; i++ {
		if _, err := svc.Create(ctx, TodoInput{Title: "task"}, 1); err != nil {
			t.Fatalf("Create: %v", err)
		}
	}
	_, _ = svc.Create(ctx, TodoInput{Title: "someone else's"}, 2)

	seen := map[int64]bool{}
	var lastID int64 = 1 << 62
	for page := 1; page <= 3; page++ {
		res, err := svc.List(ctx, 1, ListParams{Page: page})
		if err != nil {
			t.Fatalf("List page %d: %v", page, err)
		}
		if res.Pagination.Total != 25 || res.Pagination.TotalPages != 3 || res.Pagination.Limit != DefaultPageLimit {
			t.Fatalf("unexpected pagination %#v", res.Pagination)
		}
		wantLen := 10
		if page == 3 {
			wantLen = 5
		}
		if len(res.Data) != wantLen {
			t.Fatalf("page %d: expected %d items, got %d", page, wantLen, len(res.Data))
		}
		for _, todo := range res.Data {
			if seen[todo.ID] {
				t.Fatalf("todo %d appears on two pages", todo.ID)
			}
			if todo.ID >= lastID {
				t.Fatalf("not newest first: %d after %d", todo.ID, lastID)
			}
			seen[todo.ID] = true
			lastID = todo.ID
		}
	}

	beyond, err := svc.List(ctx, 1, ListParams{Page: 9})
	if err != nil || len(beyond.Data) != 0 || beyond.Pagination.Total != 25 {
		t.Fatalf("page past the end: %#v, %v", beyond, err)
	}
}

func TestListFilters(t *testing.T) {
	svc, categories, _ := newTodoService()
	ctx := context.Background()

	milk, _ := svc.Create(ctx, TodoInput{Title: "Buy MILK"}, 1)
	_, _ = svc.Create(ctx, TodoInput{Title: "Walk dog", Completed: ptr(true)}, 1)
	work, _ := categories.Create(ctx, "Errands", 1)
	_, _ = svc.AddCategory(ctx, milk.ID, work.ID, 1)

	done, _ := svc.List(ctx, 1, ListParams{Completed: ptr(true)})
	if len(done.Data) != 1 || done.Data[0].Title != "Walk dog" {
		t.Fatalf("completed filter: %#v", done.Data)
	}

	found, _ := svc.List(ctx, 1, ListParams{Search: "milk"})
	if len(found.Data) != 1 || found.Data[0].ID != milk.ID {
		t.Fatalf("search filter: %#v", found.Data)
	}

	inCategory, _ := svc.List(ctx, 1, ListParams{CategoryID: &work.ID})
	if len(inCategory.Data) != 1 || inCategory.Data[0].ID != milk.ID {
		t.Fatalf("category filter: %#v", inCategory.Data)
	}
}

func TestListStorageFailureIsInternal(t *testing.T) {
	svc, _, db := newTodoService()
	db.failWith = errors.New("boom")

	if _, err := svc.List(context.Background(), 1, ListParams{}); apperror.KindOf(err) != apperror.KindInternal {
		t.Fatalf("expected internal, got %v", err)
	}
}

func TestUpdatePartialPreservesFields(t *testing.T) {
	svc, _, _ := newTodoService()
	ctx := context.Background()

	todo, _ := svc.Create(ctx, TodoInput{Title: "Buy milk", Description: ptr("2 litres"), Priority: ptr("low")}, 1)

	updated, err := svc.Update(ctx, todo.ID, TodoPatch{
		Completed: Nullable[bool]{Set: true, Value: ptr(true)},
	}, 1)
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if !updated.Completed || updated.Title != "Buy milk" {
		t.Fatalf("unexpected update %#v", updated)
	}
	if updated.Description == nil || *updated.Description != "2 litres" {
		t.Fatalf("description not preserved: %#v", updated.Description)
	}
	if updated.Priority == nil || *updated.Priority != models.PriorityLow {
		t.Fatalf("priority not preserved: %#v", updated.Priority)
	}
	if !updated.UpdatedAt.After(todo.UpdatedAt) {
		t.Fatal("updated_at not advanced")
	}
}

func TestUpdateNullClearsOptionalFields(t *testing.T) {
	svc, _, _ := newTodoService()
	ctx := context.Background()

	todo, _ := svc.Create(ctx, TodoInput{
		Title: "t", Description: ptr("d"), DueDate: ptr("2025-02-01"), Priority: ptr("medium"),
	}, 1)

	updated, err := svc.Update(ctx, todo.ID, TodoPatch{
		Description: Nullable[string]{Set: true},
		DueDate:     Nullable[string]{Set: true},
		Priority:    Nullable[string]{Set: true},
	}, 1)
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.Description != nil || updated.DueDate != nil || updated.Priority != nil {
		t.Fatalf("expected cleared fields, got %#v", updated)
	}
}

func TestUpdateRejectsInvalidValues(t *testing.T) {
	svc, _, _ := newTodoService()
	ctx := context.Background()
	todo, _ := svc.Create(ctx, TodoInput{Title: "t"}, 1)

	patches := []TodoPatch{
		{Title: Nullable[string]{Set: true}},
		{Title: Nullable[string]{Set: true, Value: ptr(" ")}},
		{Completed: Nullable[bool]{Set: true}},
		{Priority: Nullable[string]{Set: true, Value: ptr("critical")}},
		{DueDate: Nullable[string]{Set: true, Value: ptr("15/01/2025")}},
	}
	for i, p := range patches {
		if _, err := svc.Update(ctx, todo.ID, p, 1); apperror.KindOf(err) != apperror.KindValidation {
			t.Fatalf("patch %d: expected validation error, got %v", i, err)
		}
	}
}

func TestTodoOfOtherOwnerIsNotFound(t *testing.T) {
	svc, _, _ := newTodoService()
	ctx := context.Background()
	todo, _ := svc.Create(ctx, TodoInput{Title: "private"}, 1)

	if _, err := svc.Get(ctx, todo.ID, 2); apperror.KindOf(err) != apperror.KindNotFound {
		t.Fatalf("Get: expected not found, got %v", err)
	}
	if _, err := svc.Update(ctx, todo.ID, TodoPatch{}, 2); apperror.KindOf(err) != apperror.KindNotFound {
		t.Fatalf("Update: expected not found, got %v", err)
	}
	if _, err := svc.Delete(ctx, todo.ID, 2); apperror.KindOf(err) != apperror.KindNotFound {
		t.Fatalf("Delete: expected not found, got %v", err)
	}
	if _, err := svc.Get(ctx, todo.ID, 1); err != nil {
		t.Fatalf("owner lost the todo: %v", err)
	}
}

func TestDeleteReturnsRecord(t *testing.T) {
	svc, _, _ := newTodoService()
	ctx := context.Background()
	todo, _ := svc.Create(ctx, TodoInput{Title: "gone"}, 1)

	deleted, err := svc.Delete(ctx, todo.ID, 1)
	if err != nil || deleted.Title != "gone" {
		t.Fatalf("Delete: %#v, %v", deleted, err)
	}
	if _, err := svc.Get(ctx, todo.ID, 1); apperror.KindOf(err) != apperror.KindNotFound {
		t.Fatalf("expected not found after delete, got %v", err)
	}
}

func TestCategoryLinks(t *testing.T) {
	svc, categories, _ := newTodoService()
	ctx := context.Background()
	todo, _ := svc.Create(ctx, TodoInput{Title: "t"}, 1)
	cat, _ := categories.Create(ctx, "Work", 1)

	link, err := svc.AddCategory(ctx, todo.ID, cat.ID, 1)
	if err != nil || link.TodoID != todo.ID || link.CategoryID != cat.ID {
		t.Fatalf("AddCategory: %#v, %v", link, err)
	}
	if _, err := svc.AddCategory(ctx, todo.ID, cat.ID, 1); apperror.KindOf(err) != apperror.KindConflict {
		t.Fatalf("expected conflict on second link, got %v", err)
	}

	linked, err := svc.ListCategories(ctx, todo.ID, 1)
	if err != nil || len(linked) != 1 || linked[0].Name != "Work" {
		t.Fatalf("ListCategories: %#v, %v", linked, err)
	}

	removed, err := svc.RemoveCategory(ctx, todo.ID, cat.ID, 1)
	if err != nil || removed == nil {
		t.Fatalf("RemoveCategory: %#v, %v", removed, err)
	}
	again, err := svc.RemoveCategory(ctx, todo.ID, cat.ID, 1)
	if err != nil || again != nil {
		t.Fatalf("removing a missing link should be a no-op, got %#v, %v", again, err)
	}
}

func TestCategoryLinksRequireOwnership(t *testing.T) {
	svc, categories, _ := newTodoService()
	ctx := context.Background()
	mine, _ := svc.Create(ctx, TodoInput{Title: "mine"}, 1)
	theirs, _ := categories.Create(ctx, "Theirs", 2)

	_, err := svc.AddCategory(ctx, mine.ID, theirs.ID, 1)
	if apperror.KindOf(err) != apperror.KindNotFound || apperror.PublicMessage(err) != "Category not found" {
		t.Fatalf("expected category not found, got %v", err)
	}
	_, err = svc.AddCategory(ctx, 999, theirs.ID, 2)
	if apperror.KindOf(err) != apperror.KindNotFound || apperror.PublicMessage(err) != "Todo not found" {
		t.Fatalf("expected todo not found, got %v", err)
	}
	if _, err := svc.ListCategories(ctx, mine.ID, 2); apperror.KindOf(err) != apperror.KindNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestUpdateValidatesBeforeLoading(t *testing.T) {
	svc, _, db := newTodoService()

	_, err := svc.Update(context.Background(), 999, TodoPatch{Priority: Nullable[string]{Set: true, Value: ptr("urgent")}}, 1)
	if apperror.KindOf(err) != apperror.KindValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
	if db.todoGets != 0 {
		t.Fatalf("invalid patch must not reach storage, got %d lookups", db.todoGets)
	}
}

func TestTitleLengthLimit(t *testing.T) {
	svc, _, db := newTodoService()
	ctx := context.Background()

	created, err := svc.Create(ctx, TodoInput{Title: strings.Repeat("é", MaxNameLength)}, 1)
	if err != nil {
		t.Fatalf("a 255 character title is allowed: %v", err)
	}

	long := strings.Repeat("x", 300)
	if _, err := svc.Create(ctx, TodoInput{Title: long}, 1); apperror.KindOf(err) != apperror.KindValidation {
		t.Fatalf("expected validation error on create, got %v", err)
	}
	_, err = svc.Update(ctx, created.ID, TodoPatch{Title: Nullable[string]{Set: true, Value: &long}}, 1)
	if apperror.KindOf(err) != apperror.KindValidation {
		t.Fatalf("expected validation error on update, got %v", err)
	}
	if got := db.todos[created.ID].Title; got != strings.Repeat("é", MaxNameLength) {
		t.Fatalf("stored title changed to %d runes", len([]rune(got)))
	}
}
