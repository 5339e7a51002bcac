package domain

import "errors"

// Erreurs de domaine (sans dépendances externes).
var (
	ErrNotFound           = errors.New("ressource introuvable")
	ErrUserNotFound       = errors.New("utilisateur introuvable")
	ErrEmailAlreadyExists = errors.New("cet email est déjà enregistré")
	ErrInvalidInput       = errors.New("entrée invalide")
	ErrDuplicate          = errors.New("ressource dupliquée")
	ErrUnauthorized       = errors.New("non autorisé")
	ErrForbidden          = errors.New("accès refusé")
	ErrConflict           = errors.New("conflit avec l'état actuel")
	ErrLastLineItem       = errors.New("un document doit conserver au moins un article")
)

// ValidationError porte le message utilisateur produit par le moteur de
// validation. S'identifie comme ErrInvalidInput via errors.Is pour que les
// handlers HTTP puissent mapper vers un 400 sans connaître le champ fautif.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// Is permet errors.Is(err, domain.ErrInvalidInput) sur une ValidationError.
func (e *ValidationError) Is(target error) bool { return target == ErrInvalidInput }

// NewValidationError construit l'erreur à partir du message de validation.
func NewValidationError(message string) error {
	if message == "" {
		message = ErrInvalidInput.Error()
	}
	return &ValidationError{Message: message}
}
