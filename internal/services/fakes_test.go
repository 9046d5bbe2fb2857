package services

import (
	"context"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/tasknest/tasknest-backend/internal/models"
	"github.com/tasknest/tasknest-backend/internal/repository"
)

// memDB mimics the relational store, including its unique constraints and
// ON DELETE CASCADE on todo_categories.
type memDB struct {
	mu         sync.Mutex
	nextID     int64
	clock      time.Time
	users      map[int64]models.User
	categories map[int64]models.Category
	todos      map[int64]models.Todo
	links      map[models.TodoCategory]bool
	failWith   error
	todoGets   int
}

func newMemDB() *memDB {
	return &memDB{
		clock:      time.Date(2025, 1, 1, 9, 0, 0, 0, time.UTC),
		users:      map[int64]models.User{},
		categories: map[int64]models.Category{},
		todos:      map[int64]models.Todo{},
		links:      map[models.TodoCategory]bool{},
	}
}

func (m *memDB) id() int64 {
	m.nextID++
	return m.nextID
}

func (m *memDB) tick() time.Time {
	m.clock = m.clock.Add(time.Second)
	return m.clock
}

type memUsers struct{ *memDB }

func (s memUsers) Create(_ context.Context, username, hash string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Username == username {
			return nil, repository.ErrUniqueViolation
		}
	}
	u := models.User{ID: s.id(), Username: username, PasswordHash: hash, CreatedAt: s.tick()}
	s.users[u.ID] = u
	return &u, nil
}

func (s memUsers) GetByUsername(_ context.Context, username string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failWith != nil {
		return nil, s.failWith
	}
	for _, u := range s.users {
		if u.Username == username {
			return &u, nil
		}
	}
	return nil, repository.ErrNotFound
}

type memCategories struct{ *memDB }

func (s memCategories) taken(name string, userID, except int64) bool {
	for _, c := range s.categories {
		if c.Name == name && c.UserID == userID && c.ID != except {
			return true
		}
	}
	return false
}

func (s memCategories) Create(_ context.Context, name string, userID int64) (*models.Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.taken(name, userID, 0) {
		return nil, repository.ErrUniqueViolation
	}
	c := models.Category{ID: s.id(), Name: name, UserID: userID, CreatedAt: s.tick()}
	s.categories[c.ID] = c
	return &c, nil
}

func (s memCategories) Get(_ context.Context, id, userID int64) (*models.Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.categories[id]
	if !ok || c.UserID != userID {
		return nil, repository.ErrNotFound
	}
	return &c, nil
}

func (s memCategories) List(_ context.Context, userID int64) ([]models.Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	items := []models.Category{}
	for _, c := range s.categories {
		if c.UserID == userID {
			items = append(items, c)
		}
	}
	sort.Slice(items, func(i, j int) bool { return items[i].ID < items[j].ID })
	return items, nil
}

func (s memCategories) Update(_ context.Context, id, userID int64, name string) (*models.Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.categories[id]
	if !ok || c.UserID != userID {
		return nil, repository.ErrNotFound
	}
	if s.taken(name, userID, id) {
		return nil, repository.ErrUniqueViolation
	}
	c.Name = name
	s.categories[id] = c
	return &c, nil
}

func (s memCategories) Delete(_ context.Context, id, userID int64) (*models.Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.categories[id]
	if !ok || c.UserID != userID {
		return nil, repository.ErrNotFound
	}
	delete(s.categories, id)
	for link := range s.links {
		if link.CategoryID == id {
			delete(s.links, link)
		}
	}
	return &c, nil
}

type memTodos struct{ *memDB }

func (s memTodos) List(_ context.Context, f repository.TodoFilter) ([]models.Todo, int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failWith != nil {
		return nil, 0, s.failWith
	}
	matched := []models.Todo{}
	for _, t := range s.todos {
		if t.UserID != f.UserID {
			continue
		}
		if f.Completed != nil && t.Completed != *f.Completed {
			continue
		}
		if f.Search != "" && !strings.Contains(strings.ToLower(t.Title), strings.ToLower(f.Search)) {
			continue
		}
		if f.CategoryID != nil && !s.links[models.TodoCategory{TodoID: t.ID, CategoryID: *f.CategoryID}] {
			continue
		}
		matched = append(matched, t)
	}
	sort.Slice(matched, func(i, j int) bool {
		if !matched[i].CreatedAt.Equal(matched[j].CreatedAt) {
			return matched[i].CreatedAt.After(matched[j].CreatedAt)
		}
		return matched[i].ID > matched[j].ID
	})
	total := len(matched)
	start := f.Offset
	if start > total {
		start = total
	}
	end := start + f.Limit
	if end > total {
		end = total
	}
	return matched[start:end], total, nil
}

func (s memTodos) Get(_ context.Context, id, userID int64) (*models.Todo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.todoGets++
	t, ok := s.todos[id]
	if !ok || t.UserID != userID {
		return nil, repository.ErrNotFound
	}
	return &t, nil
}

func (s memTodos) Create(_ context.Context, userID int64, f repository.TodoFields) (*models.Todo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.tick()
	t := models.Todo{
		ID: s.id(), Title: f.Title, Completed: f.Completed, Description: f.Description,
		DueDate: f.DueDate, Priority: f.Priority, UserID: userID, CreatedAt: now, UpdatedAt: now,
	}
	s.todos[t.ID] = t
	return &t, nil
}

func (s memTodos) Update(_ context.Context, id, userID int64, f repository.TodoFields) (*models.Todo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.todos[id]
	if !ok || t.UserID != userID {
		return nil, repository.ErrNotFound
	}
	t.Title, t.Completed, t.Description, t.DueDate, t.Priority = f.Title, f.Completed, f.Description, f.DueDate, f.Priority
	t.UpdatedAt = s.tick()
	s.todos[id] = t
	return &t, nil
}

func (s memTodos) Delete(_ context.Context, id, userID int64) (*models.Todo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.todos[id]
	if !ok || t.UserID != userID {
		return nil, repository.ErrNotFound
	}
	delete(s.todos, id)
	for link := range s.links {
		if link.TodoID == id {
			delete(s.links, link)
		}
	}
	return &t, nil
}

func (s memTodos) AddCategory(_ context.Context, todoID, categoryID int64) (*models.TodoCategory, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	link := models.TodoCategory{TodoID: todoID, CategoryID: categoryID}
	if s.links[link] {
		return nil, repository.ErrUniqueViolation
	}
	s.links[link] = true
	return &link, nil
}

func (s memTodos) RemoveCategory(_ context.Context, todoID, categoryID int64) (*models.TodoCategory, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	link := models.TodoCategory{TodoID: todoID, CategoryID: categoryID}
	if !s.links[link] {
		return nil, repository.ErrNotFound
	}
	delete(s.links, link)
	return &link, nil
}

func (s memTodos) ListCategories(_ context.Context, todoID, userID int64) ([]models.Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	items := []models.Category{}
	for link := range s.links {
		if link.TodoID != todoID {
			continue
		}
		if c, ok := s.categories[link.CategoryID]; ok && c.UserID == userID {
			items = append(items, c)
		}
	}
	sort.Slice(items, func(i, j int) bool { return items[i].ID < items[j].ID })
	return items, nil
}

type plainHasher struct{}

func (plainHasher) Hash(password string) (string, error) { return "hashed:" + password, nil }

func (plainHasher) Verify(password, hash string) (bool, error) {
	return hash == "hashed:"+password, nil
}

type fixedTokens struct{}

func (fixedTokens) Issue(userID int64) (string, error) {
	return "token-" + strconv.FormatInt(userID, 10), nil
}

func ptr[T any](v T) *T { return &v }

func itoa(id int64) string { return strconv.FormatInt(id, 10) }
