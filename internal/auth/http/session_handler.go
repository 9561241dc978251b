package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/farmrakshaa/farm-guardian/internal/auth/http/dto"
	authUseCase "github.com/farmrakshaa/farm-guardian/internal/auth/usecase"
	"github.com/farmrakshaa/farm-guardian/internal/httputil"
	userUsecase "github.com/farmrakshaa/farm-guardian/internal/user/usecase"
)

// SessionHandler handles registration, login and logout.
type SessionHandler struct {
	sessionUseCase authUseCase.SessionUseCase
	cookie         CookieConfig
	logger         *slog.Logger
}

// NewSessionHandler creates a session handler.
func NewSessionHandler(
	sessionUseCase authUseCase.SessionUseCase,
	cookie CookieConfig,
	logger *slog.Logger,
) *SessionHandler {
	return &SessionHandler{
		sessionUseCase: sessionUseCase,
		cookie:         cookie,
		logger:         logger,
	}
}

// RegisterHandler creates an account and starts a session.
// POST /api/auth/register - returns 201 Created with {user, token} and sets the cookie.
func (h *SessionHandler) RegisterHandler(c *gin.Context) {
	var req userUsecase.RegisterInput
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	session, err := h.sessionUseCase.Register(c.Request.Context(), req)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	h.cookie.set(c, session.Token.Token)
	c.JSON(http.StatusCreated, dto.MapSessionToResponse(session))
}

// LoginHandler verifies credentials and starts a session.
// POST /api/auth/login - returns 200 OK with {user, token} and sets the cookie.
func (h *SessionHandler) LoginHandler(c *gin.Context) {
	var req userUsecase.LoginInput
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	session, err := h.sessionUseCase.Login(c.Request.Context(), req)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	h.cookie.set(c, session.Token.Token)
	c.JSON(http.StatusOK, dto.MapSessionToResponse(session))
}

// LogoutHandler clears the session cookie. Tokens are stateless, so an issued token
// stays valid until it expires.
// POST /api/auth/logout - no authentication required.
func (h *SessionHandler) LogoutHandler(c *gin.Context) {
	h.cookie.clear(c)
	c.JSON(http.StatusOK, dto.MessageResponse{Message: "Logged out successfully"})
}
