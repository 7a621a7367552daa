package model

import "go.mongodb.org/mongo-driver/bson/primitive"

// Todo represents a todo document owned by exactly one user.
// CompletedAt is milliseconds since epoch and is non-nil iff Completed is true.
type Todo struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	Text        string             `bson:"text"`
	Completed   bool               `bson:"completed"`
	CompletedAt *int64             `bson:"completedAt"`
	Creator     primitive.ObjectID `bson:"_creator"`
}

// CreateTodoRequest represents a todo creation request.
type CreateTodoRequest struct {
	Text string `json:"text"`
}

// UpdateTodoRequest represents a partial todo update. Omitted fields are
// left untouched for text; the completed pair is always normalized
// server-side regardless of what the caller sends.
type UpdateTodoRequest struct {
	Text      *string `json:"text"`
	Completed *bool   `json:"completed"`
}

// TodoResponse represents a todo in API responses.
type TodoResponse struct {
	ID          string `json:"_id"`
	Text        string `json:"text"`
	Completed   bool   `json:"completed"`
	CompletedAt *int64 `json:"completedAt"`
	Creator     string `json:"_creator"`
}

// ToResponse converts a Todo to its external representation.
func (t *Todo) ToResponse() TodoResponse {
	return TodoResponse{
		ID:          t.ID.Hex(),
		Text:        t.Text,
		Completed:   t.Completed,
		CompletedAt: t.CompletedAt,
		Creator:     t.Creator.Hex(),
	}
}
