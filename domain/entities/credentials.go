package entities

// Credentials is the single record persisted between runs so a user
// registered once can be reused by later login flows.
type Credentials struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// IsZero reports whether the record carries no usable identity.
func (c Credentials) IsZero() bool {
	return c.Email == ""
}
