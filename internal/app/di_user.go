package app

import (
	"context"
	"fmt"

	"github.com/farmrakshaa/farm-guardian/internal/config"
	userDomain "github.com/farmrakshaa/farm-guardian/internal/user/domain"
	userHTTP "github.com/farmrakshaa/farm-guardian/internal/user/http"
	userRepository "github.com/farmrakshaa/farm-guardian/internal/user/repository"
	userService "github.com/farmrakshaa/farm-guardian/internal/user/service"
	userUseCase "github.com/farmrakshaa/farm-guardian/internal/user/usecase"
)

// PasswordService returns the Argon2id hasher with legacy bcrypt verification.
func (c *Container) PasswordService() (userDomain.PasswordHasher, error) {
	var err error
	c.passwordServiceInit.Do(func() {
		c.passwordService, err = userService.NewPasswordService(c.config.PasswordHashConcurrency)
		if err != nil {
			c.storeError("passwordService", err)
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr := c.storedError("passwordService"); storedErr != nil {
		return nil, storedErr
	}
	return c.passwordService, nil
}

// UserRepository returns the user store selected by DB_DRIVER.
func (c *Container) UserRepository() (userUseCase.UserRepository, error) {
	var err error
	c.userRepoInit.Do(func() {
		c.userRepo, err = c.initUserRepository()
		if err != nil {
			c.storeError("userRepo", err)
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr := c.storedError("userRepo"); storedErr != nil {
		return nil, storedErr
	}
	return c.userRepo, nil
}

// UserUseCase returns the account use case with metrics.
func (c *Container) UserUseCase() (userUseCase.UseCase, error) {
	var err error
	c.userUseCaseInit.Do(func() {
		c.userUseCase, err = c.initUserUseCase()
		if err != nil {
			c.storeError("userUseCase", err)
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr := c.storedError("userUseCase"); storedErr != nil {
		return nil, storedErr
	}
	return c.userUseCase, nil
}

// ImportUseCase returns the legacy account importer. It needs a SQL user store.
func (c *Container) ImportUseCase() (userUseCase.ImportUseCase, error) {
	var err error
	c.importUseCaseInit.Do(func() {
		c.importUseCase, err = c.initImportUseCase()
		if err != nil {
			c.storeError("importUseCase", err)
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr := c.storedError("importUseCase"); storedErr != nil {
		return nil, storedErr
	}
	return c.importUseCase, nil
}

// UserHandler returns the profile and farm data handler.
func (c *Container) UserHandler() (*userHTTP.UserHandler, error) {
	var err error
	c.userHandlerInit.Do(func() {
		var useCase userUseCase.UseCase
		useCase, err = c.UserUseCase()
		if err != nil {
			err = fmt.Errorf("failed to get user use case for user handler: %w", err)
			c.storeError("userHandler", err)
			return
		}
		c.userHandler = userHTTP.NewUserHandler(useCase, c.Logger())
	})
	if err != nil {
		return nil, err
	}
	if storedErr := c.storedError("userHandler"); storedErr != nil {
		return nil, storedErr
	}
	return c.userHandler, nil
}

func (c *Container) initUserRepository() (userUseCase.UserRepository, error) {
	switch c.config.DBDriver {
	case config.DriverMongoDB:
		db, err := c.MongoDatabase()
		if err != nil {
			return nil, fmt.Errorf("failed to get mongodb for user repository: %w", err)
		}
		repo := userRepository.NewMongoDBUserRepository(db)
		ctx, cancel := context.WithTimeout(c.ctx, mongoConnectTimeout)
		defer cancel()
		if err := repo.EnsureIndexes(ctx); err != nil {
			return nil, err
		}
		return repo, nil
	case config.DriverMySQL, config.DriverPostgres:
		db, err := c.DB()
		if err != nil {
			return nil, fmt.Errorf("failed to get database for user repository: %w", err)
		}
		if c.config.DBDriver == config.DriverMySQL {
			return userRepository.NewMySQLUserRepository(db), nil
		}
		return userRepository.NewPostgreSQLUserRepository(db), nil
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
	}
}

func (c *Container) initUserUseCase() (userUseCase.UseCase, error) {
	userRepo, err := c.UserRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get user repository for user use case: %w", err)
	}

	hasher, err := c.PasswordService()
	if err != nil {
		return nil, fmt.Errorf("failed to get password service for user use case: %w", err)
	}

	businessMetrics, err := c.BusinessMetrics()
	if err != nil {
		return nil, fmt.Errorf("failed to get business metrics for user use case: %w", err)
	}

	useCase := userUseCase.NewUserUseCase(userRepo, hasher)
	return userUseCase.NewUserUseCaseWithMetrics(useCase, businessMetrics), nil
}

func (c *Container) initImportUseCase() (userUseCase.ImportUseCase, error) {
	if !c.config.UsesSQL() {
		return nil, fmt.Errorf(
			"importing users requires a SQL DB_DRIVER, got %q (with mongodb legacy accounts are served in place)",
			c.config.DBDriver,
		)
	}

	txManager, err := c.TxManager()
	if err != nil {
		return nil, fmt.Errorf("failed to get tx manager for import use case: %w", err)
	}

	userRepo, err := c.UserRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get user repository for import use case: %w", err)
	}

	return userUseCase.NewImportUseCase(txManager, userRepo), nil
}
