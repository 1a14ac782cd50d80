package models

import "time"

// RoleAdmin is the only role the system grants.
const RoleAdmin = "admin"

// Credential is an account stored as a Redis hash under "user:<username>".
// The password hash never leaves the service layer.
type Credential struct {
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	CreatedAt    time.Time `json:"createdAt"`
}

// Credential hash field names.
const (
	FieldPassword  = "password"
	FieldRole      = "role"
	FieldCreatedAt = "createdAt"
)

// HashFields flattens the credential into the field map written to the store.
func (c Credential) HashFields() map[string]string {
	return map[string]string{
		FieldPassword:  c.PasswordHash,
		FieldRole:      c.Role,
		FieldCreatedAt: c.CreatedAt.UTC().Format(time.RFC3339),
	}
}

// CredentialFromHash rebuilds a credential from a stored hash.
func CredentialFromHash(username string, fields map[string]string) Credential {
	createdAt, _ := time.Parse(time.RFC3339, fields[FieldCreatedAt])

	return Credential{
		Username:     username,
		PasswordHash: fields[FieldPassword],
		Role:         fields[FieldRole],
		CreatedAt:    createdAt,
	}
}
