package auth

import (
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Realm distinguishes staff tokens from shopper tokens. A token minted for
// one realm is never accepted by the other realm's guard.
type Realm string

const (
	RealmStaff  Realm = "staff"
	RealmClient Realm = "client"
)

// IsValid reports whether the realm is one of the two known realms.
func (r Realm) IsValid() bool {
	return r == RealmStaff || r == RealmClient
}

// AccessTokenPayload captures the data available when minting a JWT.
type AccessTokenPayload struct {
	SubjectID uuid.UUID
	Realm     Realm
	Email     string
	RoleName  string
}

// AccessTokenClaims represents the typed JWT issued to callers.
type AccessTokenClaims struct {
	SubjectID uuid.UUID `json:"sub_id"`
	Realm     Realm     `json:"realm"`
	Email     string    `json:"email"`
	RoleName  string    `json:"role,omitempty"`
	jwt.RegisteredClaims
}
