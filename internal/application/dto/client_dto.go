package dto

import "time"

// ClientRequest création ou mise à jour d'un profil client.
type ClientRequest struct {
	Name        string         `json:"name"`
	Email       string         `json:"email"`
	Address     string         `json:"address,omitempty"`
	Phone       string         `json:"phone,omitempty"`
	CompanyName string         `json:"companyName,omitempty"`
	Notes       string         `json:"notes,omitempty"`
	FiscalInfo  *FiscalInfoDTO `json:"fiscalInfo,omitempty"`
}

// ClientResponse profil client persisté.
type ClientResponse struct {
	ID          string         `json:"id"`
	UserID      string         `json:"userId"`
	Name        string         `json:"name"`
	Email       string         `json:"email"`
	Address     string         `json:"address,omitempty"`
	Phone       string         `json:"phone,omitempty"`
	CompanyName string         `json:"companyName,omitempty"`
	Notes       string         `json:"notes,omitempty"`
	FiscalInfo  *FiscalInfoDTO `json:"fiscalInfo,omitempty"`
	CreatedAt   time.Time      `json:"createdAt"`
	UpdatedAt   time.Time      `json:"updatedAt"`
}
