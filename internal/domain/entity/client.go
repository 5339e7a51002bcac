package entity

import "time"

// Client représente un profil client réutilisable, indépendant de tout
// document. Sélectionner un client copie ses champs dans le document au moment
// de la création (copie par valeur, pas de clé étrangère) : modifier le profil
// ensuite ne change pas les documents déjà créés.
type Client struct {
	ID          string
	UserID      string
	Name        string
	Email       string
	Address     string
	Phone       string
	CompanyName string
	Notes       string
	Fiscal      FiscalInfo
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
