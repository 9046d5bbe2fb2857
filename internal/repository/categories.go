package repository

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/tasknest/tasknest-backend/internal/models"
)

const categoryColumns = `id, name, user_id, created_at`

// CategoryRepository persists categories. Every statement is scoped by user_id.
type CategoryRepository struct {
	db DBTX
}

// NewCategoryRepository creates a new CategoryRepository
func NewCategoryRepository(db DBTX) *CategoryRepository {
	return &CategoryRepository{db: db}
}

func scanCategory(row pgx.Row) (*models.Category, error) {
	var c models.Category
	if err := row.Scan(&c.ID, &c.Name, &c.UserID, &c.CreatedAt); err != nil {
		return nil, err
	}
	return &c, nil
}

// Create inserts a category; a duplicate name for the same user yields ErrUniqueViolation
func (r *CategoryRepository) Create(ctx context.Context, name string, userID int64) (*models.Category, error) {
	c, err := scanCategory(r.db.QueryRow(ctx,
		`INSERT INTO categories (name, user_id) VALUES ($1, $2) RETURNING `+categoryColumns,
		name, userID))
	if err != nil {
		return nil, translate("insert category", err)
	}
	return c, nil
}

// Get loads a category owned by userID
func (r *CategoryRepository) Get(ctx context.Context, id, userID int64) (*models.Category, error) {
	c, err := scanCategory(r.db.QueryRow(ctx,
		`SELECT `+categoryColumns+` FROM categories WHERE id = $1 AND user_id = $2`,
		id, userID))
	if err != nil {
		return nil, translate("select category", err)
	}
	return c, nil
}

// List returns all categories of userID
func (r *CategoryRepository) List(ctx context.Context, userID int64) ([]models.Category, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+categoryColumns+` FROM categories WHERE user_id = $1 ORDER BY id`,
		userID)
	if err != nil {
		return nil, translate("list categories", err)
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
		return nil, translate("list categories", err)
	}
	return items, nil
}

// Update renames a category owned by userID
func (r *CategoryRepository) Update(ctx context.Context, id, userID int64, name string) (*models.Category, error) {
	c, err := scanCategory(r.db.QueryRow(ctx,
		`UPDATE categories SET name = $1 WHERE id = $2 AND user_id = $3 RETURNING `+categoryColumns,
		name, id, userID))
	if err != nil {
		return nil, translate("update category", err)
	}
	return c, nil
}

// Delete removes a category owned by userID. Its todo links go with it (ON DELETE CASCADE).
func (r *CategoryRepository) Delete(ctx context.Context, id, userID int64) (*models.Category, error) {
	c, err := scanCategory(r.db.QueryRow(ctx,
		`DELETE FROM categories WHERE id = $1 AND user_id = $2 RETURNING `+categoryColumns,
		id, userID))
	if err != nil {
		return nil, translate("delete category", err)
	}
	return c, nil
}
