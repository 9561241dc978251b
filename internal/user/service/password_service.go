// Package service provides password hashing for farmer accounts.
package service

import (
	"context"
	"runtime"
	"strings"

	"github.com/allisson/go-pwdhash"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/sync/semaphore"

	apperrors "github.com/farmrakshaa/farm-guardian/internal/errors"
	"github.com/farmrakshaa/farm-guardian/internal/user/domain"
)

// bcryptPrefixes identify hashes imported from the previous deployment.
var bcryptPrefixes = []string{"$2a$", "$2b$", "$2y$"}

// passwordService hashes with Argon2id and still accepts legacy bcrypt hashes.
// Hash and Verify are CPU bound, so the number running at once is capped.
type passwordService struct {
	hasher *pwdhash.PasswordHasher
	sem    *semaphore.Weighted
}

// NewPasswordService creates a PasswordHasher using the Interactive Argon2id policy.
// concurrency <= 0 defaults to GOMAXPROCS.
func NewPasswordService(concurrency int) (domain.PasswordHasher, error) {
	hasher, err := pwdhash.New(pwdhash.WithPolicy(pwdhash.PolicyInteractive))
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to create password hasher")
	}
	if concurrency <= 0 {
		concurrency = runtime.GOMAXPROCS(0)
	}
	return &passwordService{
		hasher: hasher,
		sem:    semaphore.NewWeighted(int64(concurrency)),
	}, nil
}

// Hash returns an Argon2id PHC string.
func (s *passwordService) Hash(ctx context.Context, plain string) (string, error) {
	if err := s.sem.Acquire(ctx, 1); err != nil {
		return "", err
	}
	defer s.sem.Release(1)

	hash, err := s.hasher.Hash([]byte(plain))
	if err != nil {
		return "", apperrors.Wrap(err, "failed to hash password")
	}
	return hash, nil
}

// Verify compares plain against an Argon2id or bcrypt hash. A bcrypt match reports
// needsRehash so the caller can upgrade the stored hash.
func (s *passwordService) Verify(ctx context.Context, plain, hash string) (bool, bool, error) {
	if err := s.sem.Acquire(ctx, 1); err != nil {
		return false, false, err
	}
	defer s.sem.Release(1)

	if isBcrypt(hash) {
		err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain))
		if err == nil {
			return true, true, nil
		}
		if apperrors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return false, false, nil
		}
		return false, false, apperrors.Wrap(err, "failed to verify legacy password hash")
	}

	ok, err := s.hasher.Verify([]byte(plain), hash)
	if err != nil {
		// Malformed stored hashes are treated as a mismatch.
		return false, false, nil
	}
	return ok, false, nil
}

func isBcrypt(hash string) bool {
	for _, p := range bcryptPrefixes {
		if strings.HasPrefix(hash, p) {
			return true
		}
	}
	return false
}
