package repository

import "github.com/mandaniainarandriambinintsoa/Factupro/internal/domain/entity"

// CompanyRepository persistance des profils émetteurs (sociétés).
type CompanyRepository interface {
	Create(company *entity.Company) error
	GetByID(id string) (*entity.Company, error)
	GetDefaultByUser(userID string) (*entity.Company, error)
	ListByUser(userID string, limit, offset int) ([]*entity.Company, error)
	Update(company *entity.Company) error
	// ClearDefault retire le marqueur société par défaut du propriétaire
	// (avant d'en désigner une autre).
	ClearDefault(userID string) error
	Delete(id string) error
}
