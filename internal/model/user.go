package model

import "go.mongodb.org/mongo-driver/bson/primitive"

// AccessAuth is the access scope attached to session tokens.
const AccessAuth = "auth"

// AuthToken is one live session token held by a user. A user holds one
// entry per active session or device; logout removes a single entry.
type AuthToken struct {
	Access string `bson:"access"`
	Token  string `bson:"token"`
}

// User represents a user document. The password hash and token list never
// leave the process; API responses use UserResponse.
type User struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	Email        string             `bson:"email"`
	PasswordHash string             `bson:"password"`
	Tokens       []AuthToken        `bson:"tokens"`
}

// CreateUserRequest represents a user registration request.
type CreateUserRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginRequest represents a user login request.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UserResponse represents user data safe for API responses (no sensitive fields).
type UserResponse struct {
	ID    string `json:"_id"`
	Email string `json:"email"`
}

// ToResponse converts a User to its external representation.
func (u *User) ToResponse() UserResponse {
	return UserResponse{
		ID:    u.ID.Hex(),
		Email: u.Email,
	}
}
