package handlers

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/nebulavault/server/internal/services"
	"github.com/nebulavault/server/internal/utils"
)

// respondServiceError maps the service error taxonomy onto HTTP
// responses. Anything outside the taxonomy is a store-level failure and
// surfaces as a fixed 500 so internals never leak.
func respondServiceError(w http.ResponseWriter, err error) {
	var ve *services.ValidationError
	switch {
	case errors.As(err, &ve):
		utils.Fail(w, http.StatusBadRequest, ve.Error())
	case errors.Is(err, services.ErrDuplicateUser):
		utils.Fail(w, http.StatusBadRequest, "Username is already taken")
	case errors.Is(err, services.ErrInvalidCredentials):
		utils.Fail(w, http.StatusUnauthorized, "Invalid credentials")
	case errors.Is(err, services.ErrNotFound):
		utils.Fail(w, http.StatusNotFound, "Not found")
	case errors.Is(err, services.ErrForbidden):
		utils.Fail(w, http.StatusForbidden, "Only the administrator can manage machines")
	default:
		log.Printf("internal error: %v", err)
		utils.Fail(w, http.StatusInternalServerError, "Something went wrong")
	}
}

// pathID parses the {id} path segment. A non-numeric id is reported as
// not found, same as a missing record.
func pathID(w http.ResponseWriter, r *http.Request) (uint, bool) {
	id, err := strconv.ParseUint(r.PathValue("id"), 10, 32)
	if err != nil {
		utils.Fail(w, http.StatusNotFound, "Not found")
		return 0, false
	}
	return uint(id), true
}
