package dto

// CategoryRequest is the payload for creating or renaming a category
type CategoryRequest struct {
	Name string `json:"name" validate:"required,notblank,max=255"`
}

// CategoryResponse represents a category in API responses
type CategoryResponse struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	UserID    int64  `json:"user_id"`
	CreatedAt string `json:"created_at"`
}
