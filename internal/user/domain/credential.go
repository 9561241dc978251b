package domain

import (
	"context"
)

// PasswordHasher hashes and verifies account passwords.
type PasswordHasher interface {
	// Hash derives a salted one-way hash from the plaintext.
	Hash(ctx context.Context, plain string) (string, error)

	// Verify reports whether plain matches hash. needsRehash is true when the hash was
	// produced by an older scheme and should be replaced after a successful login.
	Verify(ctx context.Context, plain, hash string) (ok bool, needsRehash bool, err error)
}

// Credential is a password hash produced from a plaintext. The plaintext never
// leaves NewCredential.
type Credential struct {
	hash string
}

// NewCredential is the only way to turn a plaintext password into something the
// store accepts.
func NewCredential(ctx context.Context, hasher PasswordHasher, plain string) (Credential, error) {
	if plain == "" {
		return Credential{}, ErrEmptyPassword
	}
	hash, err := hasher.Hash(ctx, plain)
	if err != nil {
		return Credential{}, err
	}
	return Credential{hash: hash}, nil
}

// Hash returns the encoded hash.
func (c Credential) Hash() string {
	return c.hash
}
