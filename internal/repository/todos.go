package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/tasknest/tasknest-backend/internal/models"
)

const (
	todoColumns      = `id, title, completed, description, due_date, priority, user_id, created_at, updated_at`
	todoAliasColumns = `t.id, t.title, t.completed, t.description, t.due_date, t.priority, t.user_id, t.created_at, t.updated_at`
)

// TodoFilter narrows a todo listing. UserID is always applied.
type TodoFilter struct {
	UserID     int64
	Completed  *bool
	Search     string
	CategoryID *int64
	Limit      int
	Offset     int
}

// TodoFields are the writable columns of a todo
type TodoFields struct {
	Title       string
	Completed   bool
	Description *string
	DueDate     *time.Time
	Priority    *models.Priority
}

// TodoRepository persists todos and their category links
type TodoRepository struct {
	db DBTX
}

// NewTodoRepository creates a new TodoRepository
func NewTodoRepository(db DBTX) *TodoRepository {
	return &TodoRepository{db: db}
}

func scanTodo(row pgx.Row) (*models.Todo, error) {
	var t models.Todo
	var priority *string
	if err := row.Scan(&t.ID, &t.Title, &t.Completed, &t.Description, &t.DueDate, &priority,
		&t.UserID, &t.CreatedAt, &t.UpdatedAt); err != nil {
		return nil, err
	}
	if priority != nil {
		p := models.Priority(*priority)
		t.Priority = &p
	}
	return &t, nil
}

func priorityArg(p *models.Priority) *string {
	if p == nil {
		return nil
	}
	s := string(*p)
	return &s
}

// escapeLike makes user input match literally inside an ILIKE pattern
func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}

// buildTodoFilter returns the FROM/JOIN/WHERE tail and its positional args
func buildTodoFilter(f TodoFilter) (string, []any) {
	conditions := []string{"t.user_id = $1"}
	args := []any{f.UserID}

	if f.Completed != nil {
		args = append(args, *f.Completed)
		conditions = append(conditions, fmt.Sprintf("t.completed = $%d", len(args)))
	}
	if f.Search != "" {
		args = append(args, "%"+escapeLike(f.Search)+"%")
		conditions = append(conditions, fmt.Sprintf("t.title ILIKE $%d", len(args)))
	}

	join := ""
	if f.CategoryID != nil {
		join = " INNER JOIN todo_categories tc ON t.id = tc.todo_id"
		args = append(args, *f.CategoryID)
		conditions = append(conditions, fmt.Sprintf("tc.category_id = $%d", len(args)))
	}

	return "FROM todos t" + join + " WHERE " + strings.Join(conditions, " AND "), args
}

// List returns one page of matching todos, newest first, and the total match count
func (r *TodoRepository) List(ctx context.Context, f TodoFilter) ([]models.Todo, int, error) {
	tail, args := buildTodoFilter(f)

	var total int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(DISTINCT t.id) `+tail, args...).Scan(&total); err != nil {
		return nil, 0, translate("count todos", err)
	}

	n := len(args)
	query := fmt.Sprintf(`SELECT DISTINCT %s %s ORDER BY t.created_at DESC, t.id DESC LIMIT $%d OFFSET $%d`,
		todoAliasColumns, tail, n+1, n+2)
	rows, err := r.db.Query(ctx, query, append(args, f.Limit, f.Offset)...)
	if err != nil {
		return nil, 0, translate("list todos", err)
	}
	defer rows.Close()

	items := make([]models.Todo, 0, f.Limit)
	for rows.Next() {
		t, err := scanTodo(rows)
		if err != nil {
			return nil, 0, translate("scan todo", err)
		}
		items = append(items, *t)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, translate("list todos", err)
	}
	return items, total, nil
}

// Get loads a todo owned by userID
func (r *TodoRepository) Get(ctx context.Context, id, userID int64) (*models.Todo, error) {
	t, err := scanTodo(r.db.QueryRow(ctx,
		`SELECT `+todoColumns+` FROM todos WHERE id = $1 AND user_id = $2`, id, userID))
	if err != nil {
		return nil, translate("select todo", err)
	}
	return t, nil
}

// Create inserts a todo for userID
func (r *TodoRepository) Create(ctx context.Context, userID int64, f TodoFields) (*models.Todo, error) {
	t, err := scanTodo(r.db.QueryRow(ctx,
		`INSERT INTO todos (title, completed, user_id, description, due_date, priority)
		 VALUES ($1, $2, $3, $4, $5, $6) RETURNING `+todoColumns,
		f.Title, f.Completed, userID, f.Description, f.DueDate, priorityArg(f.Priority)))
	if err != nil {
		return nil, translate("insert todo", err)
	}
	return t, nil
}

// Update overwrites every writable column of a todo owned by userID
func (r *TodoRepository) Update(ctx context.Context, id, userID int64, f TodoFields) (*models.Todo, error) {
	t, err := scanTodo(r.db.QueryRow(ctx,
		`UPDATE todos
		    SET title = $1, completed = $2, description = $3, due_date = $4, priority = $5,
		        updated_at = CURRENT_TIMESTAMP
		  WHERE id = $6 AND user_id = $7
		  RETURNING `+todoColumns,
		f.Title, f.Completed, f.Description, f.DueDate, priorityArg(f.Priority), id, userID))
	if err != nil {
		return nil, translate("update todo", err)
	}
	return t, nil
}

// Delete removes a todo owned by userID and returns it
func (r *TodoRepository) Delete(ctx context.Context, id, userID int64) (*models.Todo, error) {
	t, err := scanTodo(r.db.QueryRow(ctx,
		`DELETE FROM todos WHERE id = $1 AND user_id = $2 RETURNING `+todoColumns, id, userID))
	if err != nil {
		return nil, translate("delete todo", err)
	}
	return t, nil
}

// AddCategory links a todo and a category; an existing link yields ErrUniqueViolation
func (r *TodoRepository) AddCategory(ctx context.Context, todoID, categoryID int64) (*models.TodoCategory, error) {
	var link models.TodoCategory
	err := r.db.QueryRow(ctx,
		`INSERT INTO todo_categories (todo_id, category_id) VALUES ($1, $2) RETURNING todo_id, category_id`,
		todoID, categoryID).Scan(&link.TodoID, &link.CategoryID)
	if err != nil {
		return nil, translate("insert todo category", err)
	}
	return &link, nil
}

// RemoveCategory unlinks a todo and a category; ErrNotFound when they were not linked
func (r *TodoRepository) RemoveCategory(ctx context.Context, todoID, categoryID int64) (*models.TodoCategory, error) {
	var link models.TodoCategory
	err := r.db.QueryRow(ctx,
		`DELETE FROM todo_categories WHERE todo_id = $1 AND category_id = $2 RETURNING todo_id, category_id`,
		todoID, categoryID).Scan(&link.TodoID, &link.CategoryID)
	if err != nil {
		return nil, translate("delete todo category", err)
	}
	return &link, nil
}

// ListCategories returns the categories linked to a todo, restricted to userID
func (r *TodoRepository) ListCategories(ctx context.Context, todoID, userID int64) ([]models.Category, error) {
	rows, err := r.db.Query(ctx,
		`SELECT c.id, c.name, c.user_id, c.created_at
		   FROM categories c
		   JOIN todo_categories tc ON c.id = tc.category_id
		  WHERE tc.todo_id = $1 AND c.user_id = $2
		  ORDER BY c.id`,
		todoID, userID)
	if err != nil {
		return nil, translate("list todo categories", err)
	}
	defer rows.Close()

	items := make([]models.Category, 0)
	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			return nil, translate("scan category", err)
		}
		items = append(items, *c)
	}
	if err := rows.Err(); err != nil {
		return nil, translate("list todo categories", err)
	}
	return items, nil
}
