package models

// Account is a signup identity. Key is user-chosen, acts as the primary key
// and as the authorization scope for document records. PasswordHash is a
// bcrypt digest; the plaintext is never persisted or logged.
type Account struct {
	Key          string
	PasswordHash string
}
