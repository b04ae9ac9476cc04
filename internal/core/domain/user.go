package domain

import "encoding/json"

// Role is the account category issued by the backend. It is never inferred.
type Role string

const (
	RoleDonor      Role = "donor"
	RoleNGO        Role = "ngo"
	RoleAdmin      Role = "admin"
	RoleSuperAdmin Role = "super_admin"
)

// Valid reports whether r is one of the four known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleDonor, RoleNGO, RoleAdmin, RoleSuperAdmin:
		return true
	}
	return false
}

// User models the authenticated actor as returned by the identity endpoints.
type User struct {
	ID                 string `json:"id"`
	Name               string `json:"name"`
	Email              string `json:"email"`
	Role               Role   `json:"role"`
	VerificationStatus string `json:"verificationStatus,omitempty"`
}

// UnmarshalJSON accepts both "id" and the backend's "_id".
func (u *User) UnmarshalJSON(data []byte) error {
	type plain User
	var raw struct {
		plain
		MongoID string `json:"_id"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*u = User(raw.plain)
	if u.ID == "" {
		u.ID = raw.MongoID
	}
	return nil
}
