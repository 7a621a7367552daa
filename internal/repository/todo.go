package repository

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/taskbox/taskbox-go/internal/model"
)

var ErrTodoNotFound = errors.New("todo not found")

// TodoRepository handles todo persistence operations. Every query filters on
// the creator id, so a todo owned by another user is indistinguishable from
// one that does not exist.
type TodoRepository struct {
	col *mongo.Collection
}

// NewTodoRepository creates a new TodoRepository over the todos collection.
func NewTodoRepository(db *mongo.Database) *TodoRepository {
	if db == nil {
		return &TodoRepository{}
	}
	return &TodoRepository{col: db.Collection("todos")}
}

// Create inserts a new todo and sets the generated ID on the todo struct.
func (r *TodoRepository) Create(ctx context.Context, todo *model.Todo) error {
	result, err := r.col.InsertOne(ctx, todo)
	if err != nil {
		return err
	}

	todo.ID = result.InsertedID.(primitive.ObjectID)
	return nil
}

// ListByCreator retrieves all todos owned by the given user.
func (r *TodoRepository) ListByCreator(ctx context.Context, creator primitive.ObjectID) ([]model.Todo, error) {
	cursor, err := r.col.Find(ctx, bson.M{"_creator": creator})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	todos := []model.Todo{}
	if err := cursor.All(ctx, &todos); err != nil {
		return nil, err
	}

	return todos, nil
}

// GetOwned retrieves a todo by id, scoped to its creator.
func (r *TodoRepository) GetOwned(ctx context.Context, id, creator primitive.ObjectID) (*model.Todo, error) {
	todo := &model.Todo{}
	err := r.col.FindOne(ctx, ownedFilter(id, creator)).Decode(todo)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrTodoNotFound
		}
		return nil, err
	}

	return todo, nil
}

// DeleteOwned removes a todo scoped to its creator and returns the removed
// document.
func (r *TodoRepository) DeleteOwned(ctx context.Context, id, creator primitive.ObjectID) (*model.Todo, error) {
	todo := &model.Todo{}
	err := r.col.FindOneAndDelete(ctx, ownedFilter(id, creator)).Decode(todo)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrTodoNotFound
		}
		return nil, err
	}

	return todo, nil
}

// UpdateOwned applies the given field set to a todo scoped to its creator
// and returns the updated document. The creator field is never part of the
// update document.
func (r *TodoRepository) UpdateOwned(ctx context.Context, id, creator primitive.ObjectID, set bson.M) (*model.Todo, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	todo := &model.Todo{}
	err := r.col.FindOneAndUpdate(ctx, ownedFilter(id, creator), bson.M{"$set": set}, opts).Decode(todo)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrTodoNotFound
		}
		return nil, err
	}

	return todo, nil
}

func ownedFilter(id, creator primitive.ObjectID) bson.M {
	return bson.M{"_id": id, "_creator": creator}
}
