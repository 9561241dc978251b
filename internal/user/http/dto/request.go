package dto

import (
	validation "github.com/jellydator/validation"

	"github.com/farmrakshaa/farm-guardian/internal/user/usecase"
	appValidation "github.com/farmrakshaa/farm-guardian/internal/validation"
)

// UpdateFarmDataRequest is the body of PUT /api/auth/farm-data.
type UpdateFarmDataRequest struct {
	FarmData *usecase.FarmDataInput `json:"farmData"`
}

// Validate only checks presence; field rules are applied by the use case.
func (r *UpdateFarmDataRequest) Validate() error {
	err := validation.ValidateStruct(r,
		validation.Field(&r.FarmData, validation.NotNil.Error("farmData is required")),
	)
	return appValidation.WrapValidationError(err)
}
