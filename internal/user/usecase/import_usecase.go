package usecase

import (
	"context"

	"github.com/farmrakshaa/farm-guardian/internal/database"
	apperrors "github.com/farmrakshaa/farm-guardian/internal/errors"
	"github.com/farmrakshaa/farm-guardian/internal/user/domain"
)

// UserSource yields complete accounts, password hashes included, from another store.
type UserSource interface {
	All(ctx context.Context) ([]*domain.User, error)
}

// ImportResult counts the outcome of an import run.
type ImportResult struct {
	Imported int
	Skipped  int
}

// ImportUseCase copies accounts from a UserSource into the configured user store.
type ImportUseCase interface {
	Import(ctx context.Context, source UserSource) (*ImportResult, error)
}

type importUseCase struct {
	txManager database.TxManager
	userRepo  UserRepository
}

// NewImportUseCase creates an ImportUseCase writing through userRepo inside txManager.
func NewImportUseCase(txManager database.TxManager, userRepo UserRepository) ImportUseCase {
	return &importUseCase{txManager: txManager, userRepo: userRepo}
}

// Import writes every source account in one transaction. Accounts whose id already
// exists are skipped, so a run can be repeated. Any other failure, including an email or
// Aadhaar number held by a different account, rolls the whole run back.
func (uc *importUseCase) Import(ctx context.Context, source UserSource) (*ImportResult, error) {
	users, err := source.All(ctx)
	if err != nil {
		return nil, err
	}

	result := &ImportResult{}
	err = uc.txManager.WithTx(ctx, func(ctx context.Context) error {
		for _, user := range users {
			if user.PasswordHash == "" {
				return apperrors.Wrapf(domain.ErrEmptyPassword, "account %s", user.Email)
			}

			_, err := uc.userRepo.GetByID(ctx, user.ID)
			switch {
			case err == nil:
				result.Skipped++
				continue
			case !apperrors.Is(err, domain.ErrUserNotFound):
				return err
			}

			if err := uc.userRepo.Create(ctx, user); err != nil {
				return apperrors.Wrapf(err, "account %s", user.Email)
			}
			result.Imported++
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}
