// Package usecase implements the farmer account business logic: registration, login and
// farm profile reads and writes.
package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	validation "github.com/jellydator/validation"

	apperrors "github.com/farmrakshaa/farm-guardian/internal/errors"
	"github.com/farmrakshaa/farm-guardian/internal/user/domain"
	appValidation "github.com/farmrakshaa/farm-guardian/internal/validation"
)

// RegisterInput contains the sign-up form fields.
type RegisterInput struct {
	Name       string `json:"name"`
	Email      string `json:"email"`
	Phone      string `json:"phone"`
	Address    string `json:"address"`
	NationalID string `json:"aadhaarNumber"`
	Village    string `json:"village"`
	Password   string `json:"password"`
}

// LoginInput contains login credentials.
type LoginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LivestockInput is the per-species part of a farm data update.
type LivestockInput struct {
	Total      int `json:"total"`
	Vaccinated int `json:"vaccinated"`
}

// Validate checks that both counts are non-negative.
func (l LivestockInput) Validate() error {
	return validation.ValidateStruct(&l,
		validation.Field(&l.Total, appValidation.NonNegative),
		validation.Field(&l.Vaccinated, appValidation.NonNegative),
	)
}

// FarmDataInput replaces the whole farm profile. Species missing from Livestock are
// stored as zero.
type FarmDataInput struct {
	TotalAcres float64                   `json:"totalAcres"`
	Livestock  map[string]LivestockInput `json:"livestock"`
}

// UseCase defines the interface for account and farm profile operations.
type UseCase interface {
	Register(ctx context.Context, input RegisterInput) (*domain.User, error)
	Login(ctx context.Context, input LoginInput) (*domain.User, error)
	GetProfile(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetFarmData(ctx context.Context, id uuid.UUID) (*domain.FarmData, error)
	UpdateFarmData(ctx context.Context, id uuid.UUID, input FarmDataInput) (*domain.User, error)
}

// UserRepository defines persistence for the user record. Only GetCredentialsByEmail
// returns the password hash.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetCredentialsByEmail(ctx context.Context, email string) (*domain.User, error)
	UpdatePasswordHash(ctx context.Context, id uuid.UUID, hash string) error
	UpdateFarmData(ctx context.Context, id uuid.UUID, farmData domain.FarmData) error
}

// unknownAccountPassword is hashed once to give logins for unknown emails a real hash
// to verify against.
const unknownAccountPassword = "unknown-account-placeholder"

// UserUseCase handles account business logic.
type UserUseCase struct {
	userRepo UserRepository
	hasher   domain.PasswordHasher

	dummyMu   sync.Mutex
	dummyHash string
}

// NewUserUseCase creates a new UserUseCase.
func NewUserUseCase(userRepo UserRepository, hasher domain.PasswordHasher) UseCase {
	return &UserUseCase{
		userRepo: userRepo,
		hasher:   hasher,
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (uc *UserUseCase) validateRegisterInput(input RegisterInput) error {
	err := validation.ValidateStruct(&input,
		validation.Field(&input.Name,
			validation.Required.Error("name is required"),
			appValidation.NotBlank,
			validation.RuneLength(1, 50).Error("name cannot be more than 50 characters"),
		),
		validation.Field(&input.Email,
			validation.Required.Error("email is required"),
			appValidation.Email,
		),
		validation.Field(&input.Phone,
			validation.Required.Error("phone is required"),
			appValidation.Phone,
		),
		validation.Field(&input.Address,
			validation.Required.Error("address is required"),
			appValidation.NotBlank,
		),
		validation.Field(&input.NationalID,
			validation.Required.Error("Aadhaar number is required"),
			appValidation.NationalID,
		),
		validation.Field(&input.Village,
			validation.Required.Error("village is required"),
			appValidation.NotBlank,
		),
		validation.Field(&input.Password,
			validation.Required.Error("password is required"),
			appValidation.PasswordStrength{MinLength: 6},
		),
	)
	return appValidation.WrapValidationError(err)
}

// Register validates the sign-up form, hashes the password and stores the account with
// an all-zero farm profile.
func (uc *UserUseCase) Register(ctx context.Context, input RegisterInput) (*domain.User, error) {
	input.Name = strings.TrimSpace(input.Name)
	input.Email = normalizeEmail(input.Email)
	input.Address = strings.TrimSpace(input.Address)
	input.Village = strings.TrimSpace(input.Village)
	input.NationalID = strings.TrimSpace(input.NationalID)

	if err := uc.validateRegisterInput(input); err != nil {
		return nil, err
	}

	cred, err := domain.NewCredential(ctx, uc.hasher, input.Password)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	user := &domain.User{
		ID:           uuid.Must(uuid.NewV7()),
		Name:         input.Name,
		Email:        input.Email,
		Phone:        input.Phone,
		Address:      input.Address,
		NationalID:   input.NationalID,
		Village:      input.Village,
		PasswordHash: cred.Hash(),
		Role:         domain.RoleUser,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := uc.userRepo.Create(ctx, user); err != nil {
		// Email is reported first when both unique keys collide, whichever index the
		// store happened to check first.
		if apperrors.Is(err, domain.ErrDuplicateNationalID) && uc.emailTaken(ctx, user.Email) {
			return nil, domain.ErrDuplicateEmail
		}
		return nil, err
	}

	return user.WithoutPassword(), nil
}

// Login verifies credentials. Unknown emails and wrong passwords both return
// ErrInvalidCredentials. Legacy hashes are upgraded after a successful match.
func (uc *UserUseCase) Login(ctx context.Context, input LoginInput) (*domain.User, error) {
	email := normalizeEmail(input.Email)
	if email == "" || input.Password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	user, err := uc.userRepo.GetCredentialsByEmail(ctx, email)
	if err != nil {
		if apperrors.Is(err, domain.ErrUserNotFound) {
			// Pay the same verification cost as a wrong password.
			if hash := uc.unknownAccountHash(ctx); hash != "" {
				_, _, _ = uc.hasher.Verify(ctx, input.Password, hash)
			}
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	ok, needsRehash, err := uc.hasher.Verify(ctx, input.Password, user.PasswordHash)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, domain.ErrInvalidCredentials
	}

	if needsRehash {
		// Best effort: a failed upgrade leaves the legacy hash, which still verifies.
		if cred, err := domain.NewCredential(ctx, uc.hasher, input.Password); err == nil {
			_ = uc.userRepo.UpdatePasswordHash(ctx, user.ID, cred.Hash())
		}
	}

	return user.WithoutPassword(), nil
}

func (uc *UserUseCase) emailTaken(ctx context.Context, email string) bool {
	_, err := uc.userRepo.GetCredentialsByEmail(ctx, email)
	return err == nil
}

// unknownAccountHash hashes unknownAccountPassword on first use. A failed attempt is
// retried on the next call.
func (uc *UserUseCase) unknownAccountHash(ctx context.Context) string {
	uc.dummyMu.Lock()
	defer uc.dummyMu.Unlock()

	if uc.dummyHash == "" {
		if hash, err := uc.hasher.Hash(ctx, unknownAccountPassword); err == nil {
			uc.dummyHash = hash
		}
	}
	return uc.dummyHash
}

// GetProfile returns the account without its password hash.
func (uc *UserUseCase) GetProfile(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	user, err := uc.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return user.WithoutPassword(), nil
}

// GetFarmData returns the farm profile; accounts that never saved one get the zero value.
func (uc *UserUseCase) GetFarmData(ctx context.Context, id uuid.UUID) (*domain.FarmData, error) {
	user, err := uc.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	farmData := user.FarmData
	return &farmData, nil
}

func validateFarmDataInput(input FarmDataInput) error {
	err := validation.ValidateStruct(&input,
		validation.Field(&input.TotalAcres, appValidation.NonNegative),
		validation.Field(&input.Livestock, validation.By(knownSpecies)),
	)
	return appValidation.WrapValidationError(err)
}

func knownSpecies(value interface{}) error {
	livestock, _ := value.(map[string]LivestockInput)
	var unknown []string
	for key := range livestock {
		switch domain.Species(key) {
		case domain.SpeciesPigs, domain.SpeciesPoultry, domain.SpeciesCattle, domain.SpeciesGoats:
		default:
			unknown = append(unknown, key)
		}
	}
	if len(unknown) == 0 {
		return nil
	}
	sort.Strings(unknown)
	return validation.NewError(
		"validation_unknown_species",
		fmt.Sprintf("unknown species: %s", strings.Join(unknown, ", ")),
	)
}

func (input FarmDataInput) toDomain() domain.FarmData {
	count := func(s domain.Species) domain.LivestockCount {
		in := input.Livestock[string(s)]
		return domain.LivestockCount{Total: in.Total, Vaccinated: in.Vaccinated}
	}
	return domain.FarmData{
		TotalAcres: input.TotalAcres,
		Livestock: domain.Livestock{
			Pigs:    count(domain.SpeciesPigs),
			Poultry: count(domain.SpeciesPoultry),
			Cattle:  count(domain.SpeciesCattle),
			Goats:   count(domain.SpeciesGoats),
		},
	}
}

// UpdateFarmData replaces the farm profile wholesale and returns the updated account.
// Vaccinated counts above the species total are accepted.
func (uc *UserUseCase) UpdateFarmData(
	ctx context.Context,
	id uuid.UUID,
	input FarmDataInput,
) (*domain.User, error) {
	if err := validateFarmDataInput(input); err != nil {
		return nil, err
	}

	if err := uc.userRepo.UpdateFarmData(ctx, id, input.toDomain()); err != nil {
		return nil, err
	}

	return uc.GetProfile(ctx, id)
}
