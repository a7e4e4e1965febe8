package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/nebulavault/server/internal/api/middleware"
	"github.com/nebulavault/server/internal/models"
	"github.com/nebulavault/server/internal/repositories"
	"github.com/nebulavault/server/internal/services"
	"github.com/nebulavault/server/internal/utils"
)

// GET /htb
func ListMachines(w http.ResponseWriter, r *http.Request) {
	catalog := services.NewCatalog(repositories.DB)
	machines, err := catalog.ListMachines()
	if err != nil {
		respondServiceError(w, err)
		return
	}
	utils.OK(w, http.StatusOK, "", machines)
}

// POST /add_htb
func AddMachine(w http.ResponseWriter, r *http.Request) {
	actor, ok := currentUser(w, r)
	if !ok {
		return
	}

	var input services.MachineInput
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&input); err != nil {
		utils.Fail(w, http.StatusBadRequest, "Invalid input")
		return
	}

	catalog := services.NewCatalog(repositories.DB)
	machine, err := catalog.CreateMachine(actor, input)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	utils.OK(w, http.StatusCreated, "Machine added", machine)
}

// POST /edit_htb/{id}
func EditMachine(w http.ResponseWriter, r *http.Request) {
	actor, ok := currentUser(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var input services.MachineInput
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&input); err != nil {
		utils.Fail(w, http.StatusBadRequest, "Invalid input")
		return
	}

	catalog := services.NewCatalog(repositories.DB)
	machine, err := catalog.UpdateMachine(actor, id, input)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	utils.OK(w, http.StatusOK, "Machine updated", machine)
}

// GET /delete_htb/{id}
func DeleteMachine(w http.ResponseWriter, r *http.Request) {
	actor, ok := currentUser(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	catalog := services.NewCatalog(repositories.DB)
	if err := catalog.DeleteMachine(actor, id); err != nil {
		respondServiceError(w, err)
		return
	}
	utils.OK(w, http.StatusOK, "Machine deleted", nil)
}

// currentUser resolves the session identity to its user record. The
// role on the record, not the session claim, decides catalog access.
func currentUser(w http.ResponseWriter, r *http.Request) (*models.User, bool) {
	accounts := services.NewAccounts(repositories.DB)
	user, err := accounts.GetByUsername(middleware.Identity(r))
	if err != nil {
		respondServiceError(w, err)
		return nil, false
	}
	return user, true
}
