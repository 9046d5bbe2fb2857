package dto

// CreateTodoRequest is the payload for POST /api/todos
type CreateTodoRequest struct {
	Title       string  `json:"title" validate:"required,notblank,max=255"`
	Completed   *bool   `json:"completed,omitempty"`
	Description *string `json:"description,omitempty"`
	DueDate     *string `json:"dueDate,omitempty"`
	Priority    *string `json:"priority,omitempty"`
}

// UpdateTodoRequest is the payload for PUT /api/todos/{id}.
// Omitted keys keep the stored value; null clears nullable fields.
type UpdateTodoRequest struct {
	Title       Optional[string] `json:"title" swaggertype:"string"`
	Completed   Optional[bool]   `json:"completed" swaggertype:"boolean"`
	Description Optional[string] `json:"description" swaggertype:"string"`
	DueDate     Optional[string] `json:"dueDate" swaggertype:"string"`
	Priority    Optional[string] `json:"priority" swaggertype:"string" enums:"low,medium,high"`
}

// TodoResponse represents a todo in API responses
type TodoResponse struct {
	ID          int64   `json:"id"`
	Title       string  `json:"title"`
	Completed   bool    `json:"completed"`
	Description *string `json:"description"`
	DueDate     *string `json:"due_date"`
	Priority    *string `json:"priority" enums:"low,medium,high"`
	UserID      int64   `json:"user_id"`
	CreatedAt   string  `json:"created_at"`
	UpdatedAt   string  `json:"updated_at"`
}

// PaginationResponse describes the page window of a listing
type PaginationResponse struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	Total      int `json:"total"`
	TotalPages int `json:"totalPages"`
}

// TodoListResponse is one page of todos
type TodoListResponse struct {
	Data       []TodoResponse     `json:"data"`
	Pagination PaginationResponse `json:"pagination"`
}

// LinkCategoryRequest is the payload for POST /api/todos/{id}/categories
type LinkCategoryRequest struct {
	CategoryID NumericID `json:"categoryId" validate:"required,gt=0" swaggertype:"integer"`
}

// TodoCategoryResponse represents a todo-category link
type TodoCategoryResponse struct {
	TodoID     int64 `json:"todo_id"`
	CategoryID int64 `json:"category_id"`
}
