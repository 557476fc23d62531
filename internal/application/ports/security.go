package ports

// PasswordHasher hashes and verifies passwords.
// Verify returns false for a malformed hash instead of failing.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(password, hash string) bool
}

// TokenIssuer signs and validates bearer tokens carrying a user id.
type TokenIssuer interface {
	IssueAccessToken(userID string) (string, error)
	// ValidateAccessToken returns errors.ErrExpiredToken or errors.ErrMalformedToken on failure.
	ValidateAccessToken(tokenString string) (userID string, err error)
}
