// Package dto provides data transfer objects for the user HTTP layer.
package dto

import (
	"time"

	assessmentDomain "github.com/farmrakshaa/farm-guardian/internal/assessment/domain"
	"github.com/farmrakshaa/farm-guardian/internal/user/domain"
)

// UserResponse is the public user payload. It never carries the password hash.
type UserResponse struct {
	ID            string          `json:"_id"`
	Name          string          `json:"name"`
	Email         string          `json:"email"`
	Phone         string          `json:"phone"`
	Address       string          `json:"address"`
	AadhaarNumber string          `json:"aadhaarNumber"`
	Village       string          `json:"village"`
	Role          string          `json:"role"`
	FarmData      domain.FarmData `json:"farmData"`
	CreatedAt     time.Time       `json:"createdAt"`
}

// MapUserToResponse converts a domain user to its public payload.
func MapUserToResponse(user *domain.User) UserResponse {
	return UserResponse{
		ID:            user.ID.String(),
		Name:          user.Name,
		Email:         user.Email,
		Phone:         user.Phone,
		Address:       user.Address,
		AadhaarNumber: user.NationalID,
		Village:       user.Village,
		Role:          string(user.Role),
		FarmData:      user.FarmData,
		CreatedAt:     user.CreatedAt,
	}
}

// UserEnvelope wraps a user payload as {"user": ...}.
type UserEnvelope struct {
	User UserResponse `json:"user"`
}

// ProfileResponse is the profile payload with the computed vaccination coverage.
type ProfileResponse struct {
	User     UserResponse              `json:"user"`
	Coverage assessmentDomain.Coverage `json:"coverage"`
}

// MapUserToProfileResponse builds the profile payload.
func MapUserToProfileResponse(user *domain.User) ProfileResponse {
	return ProfileResponse{
		User:     MapUserToResponse(user),
		Coverage: assessmentDomain.VaccinationCoverage(user.FarmData),
	}
}
