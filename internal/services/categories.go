package services

import (
	"context"
	"errors"
	"strings"
	"unicode/utf8"

	"github.com/tasknest/tasknest-backend/internal/apperror"
	"github.com/tasknest/tasknest-backend/internal/models"
	"github.com/tasknest/tasknest-backend/internal/repository"
)

// CategoryService enforces per-owner category rules
type CategoryService struct {
	repo CategoryStore
}

// NewCategoryService creates a new CategoryService
func NewCategoryService(repo CategoryStore) *CategoryService {
	return &CategoryService{repo: repo}
}

func categoryError(err error) error {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return apperror.NotFound("Category not found")
	case errors.Is(err, repository.ErrUniqueViolation):
		return apperror.Conflict("Category already exists")
	case errors.Is(err, repository.ErrInvalidValue):
		return apperror.Validation("Invalid category name")
	default:
		return apperror.Internal(err)
	}
}

func normalizeCategoryName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", apperror.Validation("Category name is required")
	}
	if utf8.RuneCountInString(name) > MaxNameLength {
		return "", apperror.Validation("Category name must be at most 255 characters")
	}
	return name, nil
}

// Create adds a category for ownerID
func (s *CategoryService) Create(ctx context.Context, name string, ownerID int64) (*models.Category, error) {
	name, err := normalizeCategoryName(name)
	if err != nil {
		return nil, err
	}
	c, err := s.repo.Create(ctx, name, ownerID)
	if err != nil {
		return nil, categoryError(err)
	}
	return c, nil
}

// Get returns a category owned by ownerID
func (s *CategoryService) Get(ctx context.Context, id, ownerID int64) (*models.Category, error) {
	c, err := s.repo.Get(ctx, id, ownerID)
	if err != nil {
		return nil, categoryError(err)
	}
	return c, nil
}

// List returns all categories of ownerID
func (s *CategoryService) List(ctx context.Context, ownerID int64) ([]models.Category, error) {
	items, err := s.repo.List(ctx, ownerID)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return items, nil
}

// Update renames a category owned by ownerID
func (s *CategoryService) Update(ctx context.Context, id, ownerID int64, name string) (*models.Category, error) {
	name, err := normalizeCategoryName(name)
	if err != nil {
		return nil, err
	}
	if _, err := s.repo.Get(ctx, id, ownerID); err != nil {
		return nil, categoryError(err)
	}
	c, err := s.repo.Update(ctx, id, ownerID, name)
	if err != nil {
		return nil, categoryError(err)
	}
	return c, nil
}

// Delete removes a category owned by ownerID together with its todo links
func (s *CategoryService) Delete(ctx context.Context, id, ownerID int64) (*models.Category, error) {
	if _, err := s.repo.Get(ctx, id, ownerID); err != nil {
		return nil, categoryError(err)
	}
	c, err := s.repo.Delete(ctx, id, ownerID)
	if err != nil {
		return nil, categoryError(err)
	}
	return c, nil
}
