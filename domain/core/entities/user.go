package entities

// User is an account row in the Users table, keyed by UserID.
// PasswordHash is an unsalted SHA-256 digest, compatible with rows written
// by the legacy API; it is never serialized into API responses.
type User struct {
	UserID       string `json:"user_id"`
	Username     string `json:"username"`
	Email        string `json:"email"`
	PasswordHash string `json:"-"`
	CreatedAt    string `json:"created_at"`
	IsAdmin      bool   `json:"is_admin"`
}
