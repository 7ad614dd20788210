package handler

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"petclinic/internal/owner/models"
	dErrors "petclinic/pkg/domain-errors"
)

// Form parameter names. They match the owner's JSON field names so violation
// keys line up with what the client sent.
const (
	paramFirstName = "firstName"
	paramLastName  = "lastName"
	paramAddress   = "address"
	paramCity      = "city"
	paramTelephone = "telephone"
)

// decodeOwnerForm binds the submitted form onto a fresh owner. Any id the
// client sends is ignored; the path or the store decides identity.
func decodeOwnerForm(r *http.Request) (*models.Owner, error) {
	if err := r.ParseForm(); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeBadRequest, "invalid form body")
	}
	return &models.Owner{
		FirstName: r.PostForm.Get(paramFirstName),
		LastName:  r.PostForm.Get(paramLastName),
		Address:   r.PostForm.Get(paramAddress),
		City:      r.PostForm.Get(paramCity),
		Telephone: r.PostForm.Get(paramTelephone),
	}, nil
}

func parseOwnerID(r *http.Request) (int, error) {
	raw := chi.URLParam(r, "ownerId")
	id, err := strconv.Atoi(raw)
	if err != nil || id <= 0 {
		return 0, dErrors.New(dErrors.CodeBadRequest, "owner id must be a positive integer")
	}
	return id, nil
}
