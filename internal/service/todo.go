package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/taskbox/taskbox-go/internal/model"
	"github.com/taskbox/taskbox-go/internal/repository"
)

var (
	ErrTextRequired = errors.New("text is required")
	ErrTodoNotFound = errors.New("todo not found")
)

// TodoService handles todo business logic. Every operation is scoped to the
// owning user; a todo belonging to someone else looks exactly like a missing
// one.
type TodoService struct {
	todos *repository.TodoRepository
}

// NewTodoService creates a new TodoService.
func NewTodoService(todos *repository.TodoRepository) *TodoService {
	return &TodoService{todos: todos}
}

// Create creates a new todo owned by the given user.
func (s *TodoService) Create(ctx context.Context, creator primitive.ObjectID, req model.CreateTodoRequest) (*model.Todo, error) {
	text := strings.TrimSpace(req.Text)
	if text == "" {
		return nil, ErrTextRequired
	}

	todo := &model.Todo{
		Text:    text,
		Creator: creator,
	}

	if err := s.todos.Create(ctx, todo); err != nil {
		return nil, err
	}

	return todo, nil
}

// List returns all todos owned by the given user.
func (s *TodoService) List(ctx context.Context, creator primitive.ObjectID) ([]model.Todo, error) {
	return s.todos.ListByCreator(ctx, creator)
}

// Get returns one owned todo by its id string.
func (s *TodoService) Get(ctx context.Context, creator primitive.ObjectID, id string) (*model.Todo, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, ErrTodoNotFound
	}

	todo, err := s.todos.GetOwned(ctx, oid, creator)
	if err != nil {
		if errors.Is(err, repository.ErrTodoNotFound) {
			return nil, ErrTodoNotFound
		}
		return nil, err
	}

	return todo, nil
}

// Delete removes one owned todo and returns the removed record.
func (s *TodoService) Delete(ctx context.Context, creator primitive.ObjectID, id string) (*model.Todo, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, ErrTodoNotFound
	}

	todo, err := s.todos.DeleteOwned(ctx, oid, creator)
	if err != nil {
		if errors.Is(err, repository.ErrTodoNotFound) {
			return nil, ErrTodoNotFound
		}
		return nil, err
	}

	return todo, nil
}

// Update applies a partial update to one owned todo and returns the updated
// record. Only text and the completed pair are mutable; the creator never is.
func (s *TodoService) Update(ctx context.Context, creator primitive.ObjectID, id string, req model.UpdateTodoRequest) (*model.Todo, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, ErrTodoNotFound
	}

	set, err := buildTodoPatch(req, time.Now())
	if err != nil {
		return nil, err
	}

	todo, err := s.todos.UpdateOwned(ctx, oid, creator, set)
	if err != nil {
		if errors.Is(err, repository.ErrTodoNotFound) {
			return nil, ErrTodoNotFound
		}
		return nil, err
	}

	return todo, nil
}

// buildTodoPatch normalizes an update request into the field set to persist.
// completed == true stamps completedAt with the current time in epoch
// milliseconds; any other completed value, including an omitted one, forces
// the pair back to false/null no matter what the caller sent.
func buildTodoPatch(req model.UpdateTodoRequest, now time.Time) (bson.M, error) {
	set := bson.M{}

	if req.Text != nil {
		text := strings.TrimSpace(*req.Text)
		if text == "" {
			return nil, ErrTextRequired
		}
		set["text"] = text
	}

	if req.Completed != nil && *req.Completed {
		set["completed"] = true
		set["completedAt"] = now.UnixMilli()
	} else {
		set["completed"] = false
		set["completedAt"] = nil
	}

	return set, nil
}

// parseID validates a path id. A malformed id is reported as not-found by
// callers without ever reaching the store.
func parseID(id string) (primitive.ObjectID, error) {
	return primitive.ObjectIDFromHex(id)
}
