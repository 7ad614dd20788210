// Package validation checks owner field constraints and reports every
// violation as data. It never decides what happens next; the owner service's
// gate branches on the result.
package validation

import (
	"errors"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"

	"petclinic/internal/owner/models"
)

// MaxTelephoneDigits bounds the telephone number length.
const MaxTelephoneDigits = 10

// ownerKey collects violations that cannot be tied to a single field.
const ownerKey = "owner"

const telephoneMessage = "numeric value out of bounds (<10 digits>.<0 digits> expected)"

// Validator enforces presence and format rules on owners. It is stateless and
// safe for concurrent use.
type Validator struct{}

// New returns an owner Validator.
func New() *Validator {
	return &Validator{}
}

// Validate returns every field violation on owner keyed by the field's JSON
// name. A nil owner is reported under "owner".
func (v *Validator) Validate(owner *models.Owner) models.ValidationResult {
	result := models.ValidationResult{}
	if owner == nil {
		result.Add(ownerKey, "is required")
		return result
	}

	err := validation.ValidateStruct(owner,
		validation.Field(&owner.FirstName, validation.Required),
		validation.Field(&owner.LastName, validation.Required),
		validation.Field(&owner.Address, validation.Required),
		validation.Field(&owner.City, validation.Required),
		validation.Field(&owner.Telephone,
			validation.Required,
			is.Digit.Error(telephoneMessage),
			validation.Length(1, MaxTelephoneDigits).Error(telephoneMessage),
		),
	)
	if err == nil {
		return result
	}

	var fieldErrs validation.Errors
	if errors.As(err, &fieldErrs) {
		for field, fieldErr := range fieldErrs {
			result.Add(field, fieldErr.Error())
		}
		return result
	}
	result.Add(ownerKey, err.Error())
	return result
}
