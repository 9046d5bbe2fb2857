package routes

import (
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/tasknest/tasknest-backend/internal/handlers"
	"github.com/tasknest/tasknest-backend/internal/middleware"
)

// Handlers groups everything the route table dispatches to
type Handlers struct {
	Auth       *handlers.AuthHandler
	Todos      *handlers.TodosHandler
	Categories *handlers.CategoriesHandler
	Health     *handlers.HealthHandler
}

// SetupRoutes configures all application routes on mux
func SetupRoutes(mux *http.ServeMux, h Handlers, verifier middleware.TokenVerifier) {
	protected := middleware.AuthMiddleware(verifier)
	auth := func(fn http.HandlerFunc) http.Handler { return protected(fn) }

	// Health check routes
	mux.HandleFunc("GET /{$}", h.Health.Root)
	mux.HandleFunc("GET /health", h.Health.HealthCheck)
	mux.HandleFunc("GET /livez", h.Health.LivenessCheck)

	// Authentication routes
	mux.HandleFunc("POST /api/auth/register", h.Auth.Register)
	mux.HandleFunc("POST /api/auth/login", h.Auth.Login)

	// Todo routes
	mux.Handle("GET /api/todos", auth(h.Todos.ListTodos))
	mux.Handle("POST /api/todos", auth(h.Todos.CreateTodo))
	mux.Handle("GET /api/todos/{id}", auth(h.Todos.GetTodo))
	mux.Handle("PUT /api/todos/{id}", auth(h.Todos.UpdateTodo))
	mux.Handle("DELETE /api/todos/{id}", auth(h.Todos.DeleteTodo))
	mux.Handle("GET /api/todos/{id}/categories", auth(h.Todos.ListTodoCategories))
	mux.Handle("POST /api/todos/{id}/categories", auth(h.Todos.AddCategory))
	mux.Handle("DELETE /api/todos/{id}/categories/{categoryId}", auth(h.Todos.RemoveCategory))

	// Category routes
	mux.Handle("GET /api/categories", auth(h.Categories.ListCategories))
	mux.Handle("POST /api/categories", auth(h.Categories.CreateCategory))
	mux.Handle("GET /api/categories/{id}", auth(h.Categories.GetCategory))
	mux.Handle("PUT /api/categories/{id}", auth(h.Categories.UpdateCategory))
	mux.Handle("DELETE /api/categories/{id}", auth(h.Categories.DeleteCategory))

	// Swagger UI
	mux.Handle("GET /swagger/", httpSwagger.WrapHandler)

	mux.HandleFunc("/", handlers.NotFound)
}
