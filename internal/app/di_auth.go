package app

import (
	"fmt"

	authHTTP "github.com/farmrakshaa/farm-guardian/internal/auth/http"
	authService "github.com/farmrakshaa/farm-guardian/internal/auth/service"
	authUseCase "github.com/farmrakshaa/farm-guardian/internal/auth/usecase"
)

// TokenService returns the JWT session token service. It fails without JWT_SECRET.
func (c *Container) TokenService() (authService.TokenService, error) {
	var err error
	c.tokenServiceInit.Do(func() {
		c.tokenService, err = authService.NewTokenService(c.config.JWTSecret, c.config.AuthTokenExpiration)
		if err != nil {
			c.storeError("tokenService", err)
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr := c.storedError("tokenService"); storedErr != nil {
		return nil, storedErr
	}
	return c.tokenService, nil
}

// SessionUseCase returns the session use case with metrics.
func (c *Container) SessionUseCase() (authUseCase.SessionUseCase, error) {
	var err error
	c.sessionUseCaseInit.Do(func() {
		c.sessionUseCase, err = c.initSessionUseCase()
		if err != nil {
			c.storeError("sessionUseCase", err)
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr := c.storedError("sessionUseCase"); storedErr != nil {
		return nil, storedErr
	}
	return c.sessionUseCase, nil
}

// SessionHandler returns the register, login and logout handler.
func (c *Container) SessionHandler() (*authHTTP.SessionHandler, error) {
	var err error
	c.sessionHandlerInit.Do(func() {
		c.sessionHandler, err = c.initSessionHandler()
		if err != nil {
			c.storeError("sessionHandler", err)
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr := c.storedError("sessionHandler"); storedErr != nil {
		return nil, storedErr
	}
	return c.sessionHandler, nil
}

func (c *Container) initSessionUseCase() (authUseCase.SessionUseCase, error) {
	userUseCase, err := c.UserUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get user use case for session use case: %w", err)
	}

	tokenService, err := c.TokenService()
	if err != nil {
		return nil, fmt.Errorf("failed to get token service for session use case: %w", err)
	}

	businessMetrics, err := c.BusinessMetrics()
	if err != nil {
		return nil, fmt.Errorf("failed to get business metrics for session use case: %w", err)
	}

	useCase := authUseCase.NewSessionUseCase(userUseCase, tokenService)
	return authUseCase.NewSessionUseCaseWithMetrics(useCase, businessMetrics), nil
}

func (c *Container) initSessionHandler() (*authHTTP.SessionHandler, error) {
	sessionUseCase, err := c.SessionUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get session use case for session handler: %w", err)
	}

	cookie := authHTTP.CookieConfig{
		Secure: c.config.IsProduction(),
		MaxAge: c.config.AuthTokenExpiration,
	}
	return authHTTP.NewSessionHandler(sessionUseCase, cookie, c.Logger()), nil
}
