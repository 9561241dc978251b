// Package http provides HTTP handlers for the farmer profile.
package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	authHTTP "github.com/farmrakshaa/farm-guardian/internal/auth/http"
	apperrors "github.com/farmrakshaa/farm-guardian/internal/errors"
	"github.com/farmrakshaa/farm-guardian/internal/httputil"
	"github.com/farmrakshaa/farm-guardian/internal/user/http/dto"
	"github.com/farmrakshaa/farm-guardian/internal/user/usecase"
)

// UserHandler serves the authenticated profile endpoints.
type UserHandler struct {
	userUseCase usecase.UseCase
	logger      *slog.Logger
}

// NewUserHandler creates a UserHandler.
func NewUserHandler(userUseCase usecase.UseCase, logger *slog.Logger) *UserHandler {
	return &UserHandler{
		userUseCase: userUseCase,
		logger:      logger,
	}
}

// ProfileHandler returns the current user with vaccination coverage.
// GET /api/auth/profile - requires authentication.
func (h *UserHandler) ProfileHandler(c *gin.Context) {
	userID, ok := authHTTP.GetUserID(c.Request.Context())
	if !ok {
		httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, h.logger)
		return
	}

	user, err := h.userUseCase.GetProfile(c.Request.Context(), userID)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapUserToProfileResponse(user))
}

// UpdateFarmDataHandler replaces the farm profile of the current user.
// PUT /api/auth/farm-data - requires authentication; body is {"farmData": {...}}.
func (h *UserHandler) UpdateFarmDataHandler(c *gin.Context) {
	userID, ok := authHTTP.GetUserID(c.Request.Context())
	if !ok {
		httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, h.logger)
		return
	}

	var req dto.UpdateFarmDataRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}
	if err := req.Validate(); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	user, err := h.userUseCase.UpdateFarmData(c.Request.Context(), userID, *req.FarmData)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.UserEnvelope{User: dto.MapUserToResponse(user)})
}
