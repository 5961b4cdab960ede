package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/pocketlist/pocketlist/internal/api/domain"
	"github.com/pocketlist/pocketlist/internal/api/store"
	"github.com/pocketlist/pocketlist/pkg/idx"
)

// TodoService is owner-scoped CRUD over todos. Every operation takes the
// caller's user id and refuses to reveal whether a foreign todo exists:
// "not yours" and "not there" are both ErrTodoNotFound.
type TodoService struct {
	Store store.Store
}

// TodoUpdate carries a partial update; nil fields are left unchanged.
type TodoUpdate struct {
	Title       *string
	Description *string
	Completed   *bool
}

func (s *TodoService) Create(ctx context.Context, userID, title, description string) (domain.Todo, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return domain.Todo{}, validationf("Title is required")
	}

	now := time.Now().UTC()
	todo := domain.Todo{
		ID:          idx.New().String(),
		UserID:      userID,
		Title:       title,
		Description: strings.TrimSpace(description),
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.Store.Todos().CreateTodo(ctx, todo); err != nil {
		return domain.Todo{}, err
	}
	return todo, nil
}

func (s *TodoService) List(ctx context.Context, userID string) ([]domain.Todo, error) {
	return s.Store.Todos().ListTodosByUser(ctx, userID)
}

func (s *TodoService) Get(ctx context.Context, userID, todoID string) (domain.Todo, error) {
	return s.getOwned(ctx, userID, todoID)
}

func (s *TodoService) Update(ctx context.Context, userID, todoID string, upd TodoUpdate) (domain.Todo, error) {
	todo, err := s.getOwned(ctx, userID, todoID)
	if err != nil {
		return domain.Todo{}, err
	}

	if upd.Title != nil {
		title := strings.TrimSpace(*upd.Title)
		if title == "" {
			return domain.Todo{}, validationf("Title is required")
		}
		todo.Title = title
	}
	if upd.Description != nil {
		todo.Description = strings.TrimSpace(*upd.Description)
	}
	if upd.Completed != nil {
		todo.Completed = *upd.Completed
	}
	todo.UpdatedAt = time.Now().UTC()

	if err := s.Store.Todos().UpdateTodo(ctx, todo); err != nil {
		return domain.Todo{}, err
	}
	return todo, nil
}

func (s *TodoService) Delete(ctx context.Context, userID, todoID string) error {
	if _, err := s.getOwned(ctx, userID, todoID); err != nil {
		return err
	}
	return s.Store.Todos().DeleteTodo(ctx, todoID)
}

func (s *TodoService) getOwned(ctx context.Context, userID, todoID string) (domain.Todo, error) {
	todo, err := s.Store.Todos().GetTodoByID(ctx, todoID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.Todo{}, ErrTodoNotFound
		}
		return domain.Todo{}, err
	}
	if todo.UserID != userID {
		return domain.Todo{}, ErrTodoNotFound
	}
	return todo, nil
}
