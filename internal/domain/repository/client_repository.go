package repository

import "github.com/mandaniainarandriambinintsoa/Factupro/internal/domain/entity"

// ClientRepository persistance des profils clients réutilisables.
// Toutes les lectures sont bornées au propriétaire (userID).
type ClientRepository interface {
	Create(client *entity.Client) error
	GetByID(id string) (*entity.Client, error)
	ListByUser(userID string, limit, offset int) ([]*entity.Client, error)
	SearchByUser(userID, query string, limit int) ([]*entity.Client, error)
	Update(client *entity.Client) error
	Delete(id string) error
}
