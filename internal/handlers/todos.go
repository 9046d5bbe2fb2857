package handlers

import (
	"net/http"

	"github.com/tasknest/tasknest-backend/internal/dto"
	"github.com/tasknest/tasknest-backend/internal/services"
	"github.com/tasknest/tasknest-backend/internal/utils"
)

// TodosHandler manages todo endpoints and their category links
type TodosHandler struct {
	todos TodoService
}

// NewTodosHandler creates a new TodosHandler
func NewTodosHandler(todos TodoService) *TodosHandler {
	return &TodosHandler{todos: todos}
}

// ListTodos handles GET /api/todos
// @Summary List todos
// @Description Newest first. limit is capped at 100.
// @Tags todos
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Page size" default(10)
// @Param completed query bool false "Completion filter"
// @Param search query string false "Case-insensitive title search"
// @Param categoryId query int false "Only todos linked to this category"
// @Success 200 {object} dto.TodoListResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Router /api/todos [get]
func (h *TodosHandler) ListTodos(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	params, err := listParams(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	page, err := h.todos.List(r.Context(), userID, params)
	if err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSONResponse(w, http.StatusOK, dto.TodoListResponse{
		Data: toTodoResponses(page.Data),
		Pagination: dto.PaginationResponse{
			Page:       page.Pagination.Page,
			Limit:      page.Pagination.Limit,
			Total:      page.Pagination.Total,
			TotalPages: page.Pagination.TotalPages,
		},
	})
}

// GetTodo handles GET /api/todos/{id}
// @Summary Get a todo
// @Tags todos
// @Produce json
// @Security BearerAuth
// @Param id path int true "Todo ID"
// @Success 200 {object} dto.TodoResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/todos/{id} [get]
func (h *TodosHandler) GetTodo(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}

	todo, err := h.todos.Get(r.Context(), id, userID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	utils.WriteJSONResponse(w, http.StatusOK, toTodoResponse(todo))
}

// CreateTodo handles POST /api/todos
// @Summary Create a todo
// @Tags todos
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body dto.CreateTodoRequest true "Todo payload"
// @Success 201 {object} dto.TodoResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Router /api/todos [post]
func (h *TodosHandler) CreateTodo(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}

	var req dto.CreateTodoRequest
	if err := decodeAndValidate(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	todo, err := h.todos.Create(r.Context(), services.TodoInput{
		Title:       req.Title,
		Completed:   req.Completed,
		Description: req.Description,
		DueDate:     req.DueDate,
		Priority:    req.Priority,
	}, userID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	utils.WriteJSONResponse(w, http.StatusCreated, toTodoResponse(todo))
}

// UpdateTodo handles PUT /api/todos/{id}
// @Summary Update a todo
// @Description Partial update: omitted fields are kept, null clears description, dueDate and priority.
// @Tags todos
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Todo ID"
// @Param payload body dto.UpdateTodoRequest true "Fields to change"
// @Success 200 {object} dto.TodoResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/todos/{id} [put]
func (h *TodosHandler) UpdateTodo(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}

	var req dto.UpdateTodoRequest
	if err := decodeAndValidate(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	todo, err := h.todos.Update(r.Context(), id, services.TodoPatch{
		Title:       optionalToNullable(req.Title),
		Completed:   optionalToNullable(req.Completed),
		Description: optionalToNullable(req.Description),
		DueDate:     optionalToNullable(req.DueDate),
		Priority:    optionalToNullable(req.Priority),
	}, userID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	utils.WriteJSONResponse(w, http.StatusOK, toTodoResponse(todo))
}

// DeleteTodo handles DELETE /api/todos/{id}
// @Summary Delete a todo
// @Tags todos
// @Produce json
// @Security BearerAuth
// @Param id path int true "Todo ID"
// @Success 200 {object} dto.TodoResponse "The deleted todo"
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/todos/{id} [delete]
func (h *TodosHandler) DeleteTodo(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}

	todo, err := h.todos.Delete(r.Context(), id, userID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	utils.WriteJSONResponse(w, http.StatusOK, toTodoResponse(todo))
}

// AddCategory handles POST /api/todos/{id}/categories
// @Summary Link a category to a todo
// @Tags todos
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Todo ID"
// @Param payload body dto.LinkCategoryRequest true "Category to link"
// @Success 201 {object} dto.TodoCategoryResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Router /api/todos/{id}/categories [post]
func (h *TodosHandler) AddCategory(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	todoID, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}

	var req dto.LinkCategoryRequest
	if err := decodeAndValidate(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	link, err := h.todos.AddCategory(r.Context(), todoID, int64(req.CategoryID), userID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	utils.WriteJSONResponse(w, http.StatusCreated, dto.TodoCategoryResponse{
		TodoID:     link.TodoID,
		CategoryID: link.CategoryID,
	})
}

// RemoveCategory handles DELETE /api/todos/{id}/categories/{categoryId}
// @Summary Unlink a category from a todo
// @Description Removing a link that does not exist succeeds with an empty object.
// @Tags todos
// @Produce json
// @Security BearerAuth
// @Param id path int true "Todo ID"
// @Param categoryId path int true "Category ID"
// @Success 200 {object} dto.TodoCategoryResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/todos/{id}/categories/{categoryId} [delete]
func (h *TodosHandler) RemoveCategory(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	todoID, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	categoryID, err := pathID(r, "categoryId")
	if err != nil {
		writeError(w, r, err)
		return
	}

	link, err := h.todos.RemoveCategory(r.Context(), todoID, categoryID, userID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if link == nil {
		utils.WriteJSONResponse(w, http.StatusOK, struct{}{})
		return
	}
	utils.WriteJSONResponse(w, http.StatusOK, dto.TodoCategoryResponse{
		TodoID:     link.TodoID,
		CategoryID: link.CategoryID,
	})
}

// ListTodoCategories handles GET /api/todos/{id}/categories
// @Summary List the categories of a todo
// @Tags todos
// @Produce json
// @Security BearerAuth
// @Param id path int true "Todo ID"
// @Success 200 {array} dto.CategoryResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/todos/{id}/categories [get]
func (h *TodosHandler) ListTodoCategories(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	todoID, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}

	items, err := h.todos.ListCategories(r.Context(), todoID, userID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	utils.WriteJSONResponse(w, http.StatusOK, toCategoryResponses(items))
}
