package app

import (
	"context"
	"errors"
	"strings"
	"time"

	"todoapp/internal/model"
)

var (
	ErrEmptyTitle = errors.New("todo title cannot be empty")

	// Get keeps "missing" and "someone else's" apart; the transport
	// layer collapses them into one denial so existence never leaks.
	ErrTodoNotFound  = errors.New("todo not found")
	ErrTodoForbidden = errors.New("todo belongs to another user")

	// Update reports the two cases as one outcome from the start.
	ErrTodoDenied = errors.New("todo not found or not owned by you")
)

// TodoStore is the slice of the todo repository the service needs.
type TodoStore interface {
	Create(todo *model.Todo) error
	ListByOwnerID(ownerID uint) ([]model.Todo, error)
	GetByID(id uint) (*model.Todo, error)
	Update(todo *model.Todo) error
	Delete(todo *model.Todo) error
}

// ListCache is an optional read cache for List; a nil cache disables it.
type ListCache interface {
	GetList(ctx context.Context, ownerID uint) ([]model.Todo, bool, error)
	SetList(ctx context.Context, ownerID uint, todos []model.Todo) error
	Invalidate(ctx context.Context, ownerID uint) error
}

type TodoService struct {
	todoStore TodoStore
	listCache ListCache
}

func NewTodoService(todoStore TodoStore, listCache ListCache) *TodoService {
	return &TodoService{
		todoStore: todoStore,
		listCache: listCache,
	}
}

// List returns the owner's todos, most recently created first.
func (s *TodoService) List(ctx context.Context, ownerID uint) ([]model.Todo, error) {
	if s.listCache != nil {
		if cached, hit, err := s.listCache.GetList(ctx, ownerID); err == nil && hit {
			return cached, nil
		}
	}

	todos, err := s.todoStore.ListByOwnerID(ownerID)
	if err != nil {
		return nil, err
	}
	if s.listCache != nil {
		_ = s.listCache.SetList(ctx, ownerID, todos)
	}
	return todos, nil
}

func (s *TodoService) Get(ownerID, todoID uint) (*model.Todo, error) {
	todo, err := s.todoStore.GetByID(todoID)
	if err != nil {
		return nil, err
	}
	if todo == nil {
		return nil, ErrTodoNotFound
	}
	if todo.OwnerID != ownerID {
		return nil, ErrTodoForbidden
	}
	return todo, nil
}

func (s *TodoService) Create(ctx context.Context, ownerID uint, title string) (*model.Todo, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, ErrEmptyTitle
	}

	now := time.Now().UTC()
	todo := &model.Todo{
		Title:     title,
		OwnerID:   ownerID,
		Date:      time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC),
		CreatedAt: now,
	}
	if err := s.todoStore.Create(todo); err != nil {
		return nil, err
	}
	s.invalidateList(ctx, ownerID)
	return todo, nil
}

// Update changes the title and nothing else. The title is validated
// before any lookup happens, so a blank title never reveals whether
// the todo exists.
func (s *TodoService) Update(ctx context.Context, ownerID, todoID uint, title string) (*model.Todo, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, ErrEmptyTitle
	}

	todo, err := s.todoStore.GetByID(todoID)
	if err != nil {
		return nil, err
	}
	if todo == nil || todo.OwnerID != ownerID {
		return nil, ErrTodoDenied
	}

	todo.Title = title
	if err := s.todoStore.Update(todo); err != nil {
		return nil, err
	}
	s.invalidateList(ctx, ownerID)
	return todo, nil
}

// Delete removes the todo and returns its title for confirmation
// messaging. A missing or unowned todo is a silent no-op.
func (s *TodoService) Delete(ctx context.Context, ownerID, todoID uint) (string, bool, error) {
	todo, err := s.todoStore.GetByID(todoID)
	if err != nil {
		return "", false, err
	}
	if todo == nil || todo.OwnerID != ownerID {
		return "", false, nil
	}

	title := todo.Title
	if err := s.todoStore.Delete(todo); err != nil {
		return "", false, err
	}
	s.invalidateList(ctx, ownerID)
	return title, true, nil
}

func (s *TodoService) invalidateList(ctx context.Context, ownerID uint) {
	if s.listCache != nil {
		_ = s.listCache.Invalidate(ctx, ownerID)
	}
}
