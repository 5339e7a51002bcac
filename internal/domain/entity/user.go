package entity

import "time"

// User représente un compte propriétaire. Tous les profils et documents
// sont rattachés à exactement un utilisateur.
type User struct {
	ID           string
	Email        string
	PasswordHash string
	Name         string
	AvatarURL    string
	Status       string // active, suspended
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
