package auth

import "github.com/google/uuid"

// Identity is the authenticated caller of a single request. Handlers resolve it once and
// pass it explicitly into the services.
type Identity struct {
	UserID uuid.UUID
	Role   string
	Name   string
}

func (i Identity) Authenticated() bool {
	return i.UserID != uuid.Nil
}

// DisplayName falls back to fallback when the token carried no name.
func (i Identity) DisplayName(fallback string) string {
	if i.Name == "" {
		return fallback
	}
	return i.Name
}
