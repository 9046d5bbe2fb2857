package handlers

import (
	"github.com/tasknest/tasknest-backend/internal/dto"
	"github.com/tasknest/tasknest-backend/internal/models"
	"github.com/tasknest/tasknest-backend/internal/services"
	"github.com/tasknest/tasknest-backend/internal/utils"
)

func toTodoResponse(t *models.Todo) dto.TodoResponse {
	resp := dto.TodoResponse{
		ID:          t.ID,
		Title:       t.Title,
		Completed:   t.Completed,
		Description: t.Description,
		UserID:      t.UserID,
		CreatedAt:   utils.FormatTimestamp(t.CreatedAt),
		UpdatedAt:   utils.FormatTimestamp(t.UpdatedAt),
	}
	if t.DueDate != nil {
		d := utils.FormatDate(*t.DueDate)
		resp.DueDate = &d
	}
	if t.Priority != nil {
		p := string(*t.Priority)
		resp.Priority = &p
	}
	return resp
}

func toTodoResponses(items []models.Todo) []dto.TodoResponse {
	out := make([]dto.TodoResponse, 0, len(items))
	for i := range items {
		out = append(out, toTodoResponse(&items[i]))
	}
	return out
}

func toCategoryResponse(c *models.Category) dto.CategoryResponse {
	return dto.CategoryResponse{
		ID:        c.ID,
		Name:      c.Name,
		UserID:    c.UserID,
		CreatedAt: utils.FormatTimestamp(c.CreatedAt),
	}
}

func toCategoryResponses(items []models.Category) []dto.CategoryResponse {
	out := make([]dto.CategoryResponse, 0, len(items))
	for i := range items {
		out = append(out, toCategoryResponse(&items[i]))
	}
	return out
}

func optionalToNullable[T any](o dto.Optional[T]) services.Nullable[T] {
	return services.Nullable[T]{Set: o.Set, Value: o.Value}
}
