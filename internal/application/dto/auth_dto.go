package dto

import "time"

// RegisterRequest inscription par email/mot de passe.
type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

// LoginRequest connexion.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UserResponse représentation publique d'un compte.
type UserResponse struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name,omitempty"`
	AvatarURL string    `json:"avatarUrl,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// LoginResponse token + utilisateur.
type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}
