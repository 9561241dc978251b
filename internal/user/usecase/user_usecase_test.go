package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	apperrors "github.com/farmrakshaa/farm-guardian/internal/errors"
	"github.com/farmrakshaa/farm-guardian/internal/user/domain"
)

// MockUserRepository is a mock implementation of UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) GetCredentialsByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) UpdatePasswordHash(ctx context.Context, id uuid.UUID, hash string) error {
	args := m.Called(ctx, id, hash)
	return args.Error(0)
}

func (m *MockUserRepository) UpdateFarmData(ctx context.Context, id uuid.UUID, farmData domain.FarmData) error {
	args := m.Called(ctx, id, farmData)
	return args.Error(0)
}

// MockPasswordHasher is a mock implementation of domain.PasswordHasher
type MockPasswordHasher struct {
	mock.Mock
}

func (m *MockPasswordHasher) Hash(ctx context.Context, plain string) (string, error) {
	args := m.Called(ctx, plain)
	return args.String(0), args.Error(1)
}

func (m *MockPasswordHasher) Verify(ctx context.Context, plain, hash string) (bool, bool, error) {
	args := m.Called(ctx, plain, hash)
	return args.Bool(0), args.Bool(1), args.Error(2)
}

func validRegisterInput() RegisterInput {
	return RegisterInput{
		Name:       "Asha",
		Email:      "asha@example.com",
		Phone:      "9876543210",
		Address:    "12 Mill Road",
		NationalID: "345612349012",
		Village:    "Rampur",
		Password:   "secret123",
	}
}

func TestUserUseCase_Register(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		repo := &MockUserRepository{}
		hasher := &MockPasswordHasher{}
		uc := NewUserUseCase(repo, hasher)

		hasher.On("Hash", ctx, "secret123").Return("$argon2id$hash", nil).Once()
		repo.On("Create", ctx, mock.MatchedBy(func(u *domain.User) bool {
			return u.PasswordHash == "$argon2id$hash" && u.Email == "asha@example.com"
		})).Return(nil).Once()

		input := validRegisterInput()
		input.Email = "  Asha@Example.COM "
		input.Name = " Asha "

		user, err := uc.Register(ctx, input)
		require.NoError(t, err)
		assert.NotEqual(t, uuid.Nil, user.ID)
		assert.Equal(t, "Asha", user.Name)
		assert.Equal(t, "asha@example.com", user.Email)
		assert.Equal(t, domain.RoleUser, user.Role)
		assert.Empty(t, user.PasswordHash)
		assert.Equal(t, domain.FarmData{}, user.FarmData)
		assert.False(t, user.CreatedAt.IsZero())
		repo.AssertExpectations(t)
		hasher.AssertExpectations(t)
	})

	t.Run("ValidationError", func(t *testing.T) {
		repo := &MockUserRepository{}
		hasher := &MockPasswordHasher{}
		uc := NewUserUseCase(repo, hasher)

		input := validRegisterInput()
		input.NationalID = "123456789012"
		input.Phone = "12345"
		input.Password = "abc"

		user, err := uc.Register(ctx, input)
		assert.Nil(t, user)
		assert.True(t, apperrors.Is(err, apperrors.ErrInvalidInput))

		var vErr *apperrors.ValidationError
		require.True(t, apperrors.As(err, &vErr))
		assert.Contains(t, vErr.Fields, "aadhaarNumber")
		assert.Contains(t, vErr.Fields, "phone")
		assert.Contains(t, vErr.Fields, "password")
		hasher.AssertNotCalled(t, "Hash", mock.Anything, mock.Anything)
		repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("NameTooLong", func(t *testing.T) {
		uc := NewUserUseCase(&MockUserRepository{}, &MockPasswordHasher{})

		input := validRegisterInput()
		input.Name = "abcdefghijabcdefghijabcdefghijabcdefghijabcdefghijk"

		_, err := uc.Register(ctx, input)
		var vErr *apperrors.ValidationError
		require.True(t, apperrors.As(err, &vErr))
		assert.Contains(t, vErr.Fields, "name")
	})

	t.Run("DuplicateEmail", func(t *testing.T) {
		repo := &MockUserRepository{}
		hasher := &MockPasswordHasher{}
		uc := NewUserUseCase(repo, hasher)

		hasher.On("Hash", ctx, "secret123").Return("$argon2id$hash", nil).Once()
		repo.On("Create", ctx, mock.AnythingOfType("*domain.User")).Return(domain.ErrDuplicateEmail).Once()

		input := validRegisterInput()
		input.Email = "ASHA@example.com"

		user, err := uc.Register(ctx, input)
		assert.Nil(t, user)
		assert.ErrorIs(t, err, domain.ErrDuplicateEmail)
		assert.True(t, apperrors.Is(err, apperrors.ErrConflict))
	})

	t.Run("DuplicateNationalID", func(t *testing.T) {
		repo := &MockUserRepository{}
		hasher := &MockPasswordHasher{}
		uc := NewUserUseCase(repo, hasher)

		hasher.On("Hash", ctx, "secret123").Return("$argon2id$hash", nil).Once()
		repo.On("Create", ctx, mock.AnythingOfType("*domain.User")).
			Return(domain.ErrDuplicateNationalID).
			Once()
		repo.On("GetCredentialsByEmail", ctx, "asha@example.com").Return(nil, domain.ErrUserNotFound).Once()

		_, err := uc.Register(ctx, validRegisterInput())
		assert.ErrorIs(t, err, domain.ErrDuplicateNationalID)
		repo.AssertExpectations(t)
	})

	t.Run("BothKeysTakenReportsEmail", func(t *testing.T) {
		repo := &MockUserRepository{}
		hasher := &MockPasswordHasher{}
		uc := NewUserUseCase(repo, hasher)

		hasher.On("Hash", ctx, "secret123").Return("$argon2id$hash", nil).Once()
		repo.On("Create", ctx, mock.AnythingOfType("*domain.User")).
			Return(domain.ErrDuplicateNationalID).
			Once()
		repo.On("GetCredentialsByEmail", ctx, "asha@example.com").
			Return(&domain.User{Email: "asha@example.com"}, nil).
			Once()

		_, err := uc.Register(ctx, validRegisterInput())
		assert.ErrorIs(t, err, domain.ErrDuplicateEmail)
		repo.AssertExpectations(t)
	})

	t.Run("HashError", func(t *testing.T) {
		repo := &MockUserRepository{}
		hasher := &MockPasswordHasher{}
		uc := NewUserUseCase(repo, hasher)

		hasher.On("Hash", ctx, "secret123").Return("", context.Canceled).Once()

		_, err := uc.Register(ctx, validRegisterInput())
		assert.ErrorIs(t, err, context.Canceled)
		repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})
}

func TestUserUseCase_Login(t *testing.T) {
	ctx := context.Background()
	userID := uuid.Must(uuid.NewV7())
	stored := func(hash string) *domain.User {
		return &domain.User{ID: userID, Email: "asha@example.com", PasswordHash: hash, Role: domain.RoleUser}
	}

	t.Run("Success", func(t *testing.T) {
		repo := &MockUserRepository{}
		hasher := &MockPasswordHasher{}
		uc := NewUserUseCase(repo, hasher)

		repo.On("GetCredentialsByEmail", ctx, "asha@example.com").Return(stored("$argon2id$hash"), nil).Once()
		hasher.On("Verify", ctx, "secret123", "$argon2id$hash").Return(true, false, nil).Once()

		user, err := uc.Login(ctx, LoginInput{Email: "Asha@Example.com", Password: "secret123"})
		require.NoError(t, err)
		assert.Equal(t, userID, user.ID)
		assert.Empty(t, user.PasswordHash)
		repo.AssertNotCalled(t, "UpdatePasswordHash", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("UnknownEmail", func(t *testing.T) {
		repo := &MockUserRepository{}
		hasher := &MockPasswordHasher{}
		uc := NewUserUseCase(repo, hasher)

		repo.On("GetCredentialsByEmail", ctx, "ghost@example.com").Return(nil, domain.ErrUserNotFound).Twice()
		hasher.On("Hash", ctx, unknownAccountPassword).Return("$argon2id$placeholder", nil).Once()
		hasher.On("Verify", ctx, "secret123", "$argon2id$placeholder").Return(false, false, nil).Twice()

		for range 2 {
			user, err := uc.Login(ctx, LoginInput{Email: "ghost@example.com", Password: "secret123"})
			assert.Nil(t, user)
			assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
		}
		hasher.AssertExpectations(t)
	})

	t.Run("UnknownEmailHashFailureStillRejects", func(t *testing.T) {
		repo := &MockUserRepository{}
		hasher := &MockPasswordHasher{}
		uc := NewUserUseCase(repo, hasher)

		repo.On("GetCredentialsByEmail", ctx, "ghost@example.com").Return(nil, domain.ErrUserNotFound).Once()
		hasher.On("Hash", ctx, unknownAccountPassword).Return("", context.Canceled).Once()

		_, err := uc.Login(ctx, LoginInput{Email: "ghost@example.com", Password: "secret123"})
		assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
		hasher.AssertNotCalled(t, "Verify", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("WrongPassword", func(t *testing.T) {
		repo := &MockUserRepository{}
		hasher := &MockPasswordHasher{}
		uc := NewUserUseCase(repo, hasher)

		repo.On("GetCredentialsByEmail", ctx, "asha@example.com").Return(stored("$argon2id$hash"), nil).Once()
		hasher.On("Verify", ctx, "wrong", "$argon2id$hash").Return(false, false, nil).Once()

		user, err := uc.Login(ctx, LoginInput{Email: "asha@example.com", Password: "wrong"})
		assert.Nil(t, user)
		assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
	})

	t.Run("EmptyPassword", func(t *testing.T) {
		repo := &MockUserRepository{}
		uc := NewUserUseCase(repo, &MockPasswordHasher{})

		_, err := uc.Login(ctx, LoginInput{Email: "asha@example.com"})
		assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
		repo.AssertNotCalled(t, "GetCredentialsByEmail", mock.Anything, mock.Anything)
	})

	t.Run("RepositoryError", func(t *testing.T) {
		repo := &MockUserRepository{}
		uc := NewUserUseCase(repo, &MockPasswordHasher{})
		dbErr := errors.New("connection refused")

		repo.On("GetCredentialsByEmail", ctx, "asha@example.com").Return(nil, dbErr).Once()

		_, err := uc.Login(ctx, LoginInput{Email: "asha@example.com", Password: "secret123"})
		assert.ErrorIs(t, err, dbErr)
		assert.NotErrorIs(t, err, domain.ErrInvalidCredentials)
	})

	t.Run("LegacyHashIsUpgraded", func(t *testing.T) {
		repo := &MockUserRepository{}
		hasher := &MockPasswordHasher{}
		uc := NewUserUseCase(repo, hasher)

		repo.On("GetCredentialsByEmail", ctx, "asha@example.com").Return(stored("$2a$10$legacy"), nil).Once()
		hasher.On("Verify", ctx, "secret123", "$2a$10$legacy").Return(true, true, nil).Once()
		hasher.On("Hash", ctx, "secret123").Return("$argon2id$new", nil).Once()
		repo.On("UpdatePasswordHash", ctx, userID, "$argon2id$new").Return(nil).Once()

		user, err := uc.Login(ctx, LoginInput{Email: "asha@example.com", Password: "secret123"})
		require.NoError(t, err)
		assert.Equal(t, userID, user.ID)
		repo.AssertExpectations(t)
		hasher.AssertExpectations(t)
	})

	t.Run("LegacyHashUpgradeFailureStillLogsIn", func(t *testing.T) {
		repo := &MockUserRepository{}
		hasher := &MockPasswordHasher{}
		uc := NewUserUseCase(repo, hasher)

		repo.On("GetCredentialsByEmail", ctx, "asha@example.com").Return(stored("$2a$10$legacy"), nil).Once()
		hasher.On("Verify", ctx, "secret123", "$2a$10$legacy").Return(true, true, nil).Once()
		hasher.On("Hash", ctx, "secret123").Return("$argon2id$new", nil).Once()
		repo.On("UpdatePasswordHash", ctx, userID, "$argon2id$new").Return(errors.New("db down")).Once()

		user, err := uc.Login(ctx, LoginInput{Email: "asha@example.com", Password: "secret123"})
		require.NoError(t, err)
		assert.NotNil(t, user)
	})
}

func TestUserUseCase_GetProfile(t *testing.T) {
	ctx := context.Background()
	userID := uuid.Must(uuid.NewV7())

	t.Run("StripsPasswordHash", func(t *testing.T) {
		repo := &MockUserRepository{}
		uc := NewUserUseCase(repo, &MockPasswordHasher{})

		repo.On("GetByID", ctx, userID).Return(&domain.User{ID: userID, PasswordHash: "leak"}, nil).Once()

		user, err := uc.GetProfile(ctx, userID)
		require.NoError(t, err)
		assert.Empty(t, user.PasswordHash)
	})

	t.Run("NotFound", func(t *testing.T) {
		repo := &MockUserRepository{}
		uc := NewUserUseCase(repo, &MockPasswordHasher{})

		repo.On("GetByID", ctx, userID).Return(nil, domain.ErrUserNotFound).Once()

		_, err := uc.GetProfile(ctx, userID)
		assert.True(t, apperrors.Is(err, apperrors.ErrNotFound))
	})
}

func TestUserUseCase_GetFarmData(t *testing.T) {
	ctx := context.Background()
	userID := uuid.Must(uuid.NewV7())
	repo := &MockUserRepository{}
	uc := NewUserUseCase(repo, &MockPasswordHasher{})

	repo.On("GetByID", ctx, userID).Return(&domain.User{ID: userID}, nil).Once()

	farmData, err := uc.GetFarmData(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, domain.FarmData{}, *farmData)
}

func TestUserUseCase_UpdateFarmData(t *testing.T) {
	ctx := context.Background()
	userID := uuid.Must(uuid.NewV7())

	t.Run("ReplacesWholesale", func(t *testing.T) {
		repo := &MockUserRepository{}
		uc := NewUserUseCase(repo, &MockPasswordHasher{})

		expected := domain.FarmData{
			TotalAcres: 3.5,
			Livestock: domain.Livestock{
				Cattle: domain.LivestockCount{Total: 10, Vaccinated: 6},
			},
		}
		repo.On("UpdateFarmData", ctx, userID, expected).Return(nil).Once()
		repo.On("GetByID", ctx, userID).Return(&domain.User{ID: userID, FarmData: expected}, nil).Once()

		user, err := uc.UpdateFarmData(ctx, userID, FarmDataInput{
			TotalAcres: 3.5,
			Livestock:  map[string]LivestockInput{"cattle": {Total: 10, Vaccinated: 6}},
		})
		require.NoError(t, err)
		assert.Equal(t, expected, user.FarmData)
		repo.AssertExpectations(t)
	})

	// Vaccinated above total is currently accepted; there is no cross-field check.
	t.Run("AcceptsVaccinatedAboveTotal", func(t *testing.T) {
		repo := &MockUserRepository{}
		uc := NewUserUseCase(repo, &MockPasswordHasher{})

		expected := domain.FarmData{
			Livestock: domain.Livestock{Pigs: domain.LivestockCount{Total: 5, Vaccinated: 7}},
		}
		repo.On("UpdateFarmData", ctx, userID, expected).Return(nil).Once()
		repo.On("GetByID", ctx, userID).Return(&domain.User{ID: userID, FarmData: expected}, nil).Once()

		user, err := uc.UpdateFarmData(ctx, userID, FarmDataInput{
			Livestock: map[string]LivestockInput{"pigs": {Total: 5, Vaccinated: 7}},
		})
		require.NoError(t, err)
		assert.Equal(t, 7, user.FarmData.Livestock.Pigs.Vaccinated)
	})

	t.Run("RejectsNegativeCounts", func(t *testing.T) {
		repo := &MockUserRepository{}
		uc := NewUserUseCase(repo, &MockPasswordHasher{})

		_, err := uc.UpdateFarmData(ctx, userID, FarmDataInput{
			TotalAcres: -1,
			Livestock:  map[string]LivestockInput{"goats": {Total: -2}},
		})
		var vErr *apperrors.ValidationError
		require.True(t, apperrors.As(err, &vErr))
		assert.Contains(t, vErr.Fields, "totalAcres")
		assert.Contains(t, vErr.Fields, "livestock.goats.total")
		repo.AssertNotCalled(t, "UpdateFarmData", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("RejectsUnknownSpecies", func(t *testing.T) {
		repo := &MockUserRepository{}
		uc := NewUserUseCase(repo, &MockPasswordHasher{})

		_, err := uc.UpdateFarmData(ctx, userID, FarmDataInput{
			Livestock: map[string]LivestockInput{"horses": {Total: 1}},
		})
		var vErr *apperrors.ValidationError
		require.True(t, apperrors.As(err, &vErr))
		assert.Equal(t, "unknown species: horses", vErr.Fields["livestock"])
	})

	t.Run("NotFound", func(t *testing.T) {
		repo := &MockUserRepository{}
		uc := NewUserUseCase(repo, &MockPasswordHasher{})

		repo.On("UpdateFarmData", ctx, userID, domain.FarmData{}).Return(domain.ErrUserNotFound).Once()

		_, err := uc.UpdateFarmData(ctx, userID, FarmDataInput{})
		assert.ErrorIs(t, err, domain.ErrUserNotFound)
	})
}
