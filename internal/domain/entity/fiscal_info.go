package entity

// Régions fiscales supportées (ensemble fermé).
const (
	FiscalRegionNone = "NONE"
	FiscalRegionEU   = "EU"
	FiscalRegionMG   = "MG"
)

// FiscalInfo regroupe les identifiants fiscaux d'une société ou d'un client.
// La région détermine quels champs sont porteurs de sens :
// EU -> siret + tvaNumber, MG -> nif + stat, NONE -> aucun.
// Les champs hors région restent stockés mais ne doivent jamais être affichés
// (voir fiscal.DisplayIdentifiers).
type FiscalInfo struct {
	Region    string `json:"region"`
	NIF       string `json:"nif,omitempty"`
	Stat      string `json:"stat,omitempty"`
	Siret     string `json:"siret,omitempty"`
	TVANumber string `json:"tvaNumber,omitempty"`
}
