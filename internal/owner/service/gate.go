package service

import "petclinic/internal/owner/models"

// Decision is the validation gate's verdict on a submitted owner.
type Decision struct {
	Accepted   bool
	Owner      *models.Owner
	Validation models.ValidationResult
}

// Evaluate accepts owner only when result is empty. Any entry rejects it,
// including a field reported with no messages. A rejection echoes the same
// owner pointer and result untouched so the form can be re-rendered exactly
// as submitted.
func Evaluate(owner *models.Owner, result models.ValidationResult) Decision {
	if result.HasErrors() {
		return Decision{Accepted: false, Owner: owner, Validation: result}
	}
	return Decision{Accepted: true, Owner: owner}
}
