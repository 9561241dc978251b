// Package dto provides data transfer objects for the session endpoints.
package dto

import (
	authDomain "github.com/farmrakshaa/farm-guardian/internal/auth/domain"
	userDto "github.com/farmrakshaa/farm-guardian/internal/user/http/dto"
)

// SessionResponse is returned by register and login. The token is also set as a cookie.
type SessionResponse struct {
	User  userDto.UserResponse `json:"user"`
	Token string               `json:"token"`
}

// MapSessionToResponse converts a session to its response payload.
func MapSessionToResponse(session *authDomain.Session) SessionResponse {
	return SessionResponse{
		User:  userDto.MapUserToResponse(session.User),
		Token: session.Token.Token,
	}
}

// MessageResponse carries a plain confirmation message.
type MessageResponse struct {
	Message string `json:"message"`
}
