package model

import (
	"encoding/json"
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestTodoToResponse(t *testing.T) {
	completedAt := int64(1717243200000)
	todo := Todo{
		ID:          primitive.NewObjectID(),
		Text:        "walk the dog",
		Completed:   true,
		CompletedAt: &completedAt,
		Creator:     primitive.NewObjectID(),
	}

	resp := todo.ToResponse()

	if resp.ID != todo.ID.Hex() {
		t.Errorf("ID = %q, want %q", resp.ID, todo.ID.Hex())
	}
	if resp.Creator != todo.Creator.Hex() {
		t.Errorf("Creator = %q, want %q", resp.Creator, todo.Creator.Hex())
	}
	if resp.CompletedAt == nil || *resp.CompletedAt != completedAt {
		t.Errorf("CompletedAt = %v, want %d", resp.CompletedAt, completedAt)
	}
}

func TestTodoResponseNullCompletedAt(t *testing.T) {
	todo := Todo{
		ID:      primitive.NewObjectID(),
		Text:    "buy milk",
		Creator: primitive.NewObjectID(),
	}

	data, err := json.Marshal(todo.ToResponse())
	if err != nil {
		t.Fatalf("Marshal() unexpected error: %v", err)
	}

	var decoded map[string]any
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Unmarshal() unexpected error: %v", err)
	}

	if decoded["completed"] != false {
		t.Errorf("completed = %v, want false", decoded["completed"])
	}
	if decoded["completedAt"] != nil {
		t.Errorf("completedAt = %v, want null", decoded["completedAt"])
	}
}
