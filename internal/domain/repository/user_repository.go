package repository

import "github.com/mandaniainarandriambinintsoa/Factupro/internal/domain/entity"

// UserRepository persistance des comptes utilisateurs.
type UserRepository interface {
	Create(user *entity.User) error
	GetByID(id string) (*entity.User, error)
	FindByEmail(email string) (*entity.User, error)
	Update(user *entity.User) error
}
