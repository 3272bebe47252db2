package domain

import (
	"context"
	"time"
)

// PasswordHasher handles salt generation, hashing, and verification.
// Implementations may use bcrypt, argon2, etc.
type PasswordHasher interface {
	GenerateSalt() (string, error)
	Hash(salt, password string) (hash string, err error)
	Compare(hash, salt, password string) error
}

// TokenIssuer issues tokens (e.g. JWT) for an authenticated user.
type TokenIssuer interface {
	Issue(profileID, email string, expiry time.Duration) (string, error)
}

// TokenVerifier verifies a token and returns the caller's profile ID and email.
type TokenVerifier interface {
	Verify(token string) (profileID, email string, err error)
}

// AuthService defines signup and login. The rest of the system treats the
// resulting token as an opaque "current identity" provider.
type AuthService interface {
	SignUp(ctx context.Context, email, password, displayName string) (token string, profile *Profile, err error)
	Login(ctx context.Context, email, password string) (token string, profile *Profile, err error)
}
