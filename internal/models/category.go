package models

import "time"

// Category is a user-owned label; (name, user_id) is unique
type Category struct {
	ID        int64     `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	UserID    int64     `json:"user_id" db:"user_id"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// TodoCategory is a row of the todo_categories junction table
type TodoCategory struct {
	TodoID     int64 `json:"todo_id" db:"todo_id"`
	CategoryID int64 `json:"category_id" db:"category_id"`
}
