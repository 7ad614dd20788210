package handler

import (
	"net/http"
	"strconv"

	"petclinic/internal/owner/models"
	"petclinic/pkg/platform/httputil"
)

// ViewResponse is the JSON rendering of a view name plus its model, the
// stand-in for a server-side template.
type ViewResponse struct {
	View  string         `json:"view"`
	Model map[string]any `json:"model"`
}

// Model keys.
const (
	modelOwner      = "owner"
	modelErrors     = "errors"
	modelSelections = "selections"
)

// OwnerURL is the detail page of the owner with id.
func OwnerURL(id int) string {
	return "/owners/" + strconv.Itoa(id)
}

// writeOutcome maps a navigation outcome onto the response.
func writeOutcome(w http.ResponseWriter, r *http.Request, outcome models.Outcome) {
	if outcome.IsRedirect() {
		http.Redirect(w, r, OwnerURL(outcome.OwnerID), http.StatusFound)
		return
	}
	switch outcome.Kind {
	case models.OutcomeShowList:
		httputil.WriteJSON(w, http.StatusOK, ViewResponse{
			View:  models.ViewOwnersList,
			Model: map[string]any{modelSelections: outcome.Owners},
		})
	case models.OutcomeShowDetail:
		httputil.WriteJSON(w, http.StatusOK, ViewResponse{
			View:  models.ViewOwnerDetails,
			Model: map[string]any{modelOwner: outcome.Owner},
		})
	default:
		errs := outcome.Validation
		if errs == nil {
			errs = models.ValidationResult{}
		}
		httputil.WriteJSON(w, http.StatusOK, ViewResponse{
			View:  string(outcome.Form),
			Model: map[string]any{modelOwner: outcome.Owner, modelErrors: errs},
		})
	}
}
