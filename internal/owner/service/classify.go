package service

import "petclinic/internal/owner/models"

// Classify maps a last-name lookup result to a navigation outcome:
//   - no match: the empty search form again, with no violations attached
//   - one match: redirect to that owner so the URL identifies the record
//   - several: the list in the order the store returned it
func Classify(matches []*models.Owner) models.Outcome {
	switch len(matches) {
	case 0:
		return models.ShowForm(models.FormFindOwners, &models.Owner{}, nil)
	case 1:
		return models.RedirectToDetail(matches[0].ID)
	default:
		return models.ShowList(matches)
	}
}
