// FilePath: api/resources/api.resource.hives.go
package resources

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/bkeeper/hub/internal/errors"
	"github.com/bkeeper/hub/internal/hubservice"
	"github.com/bkeeper/hub/internal/models"
	nuts "github.com/vaudience/go-nuts"
)

// HiveHandlers encapsulates the hive-related HTTP handlers
type HiveHandlers struct {
	hubservice *hubservice.HubService
}

// @Summary Create a new hive
// @Description Create a hive in an apiary. Owner/admin only; names unique per apiary.
// @Tags hives
// @Accept json
// @Produce json
// @Param hive body models.Hive true "Hive details"
// @Success 201 {object} models.Hive
// @Failure 400 {object} errors.APIError
// @Failure 403 {object} errors.APIError
// @Router /hives [post]
// @Security BearerAuth
func (h *HiveHandlers) CreateHive(w http.ResponseWriter, r *http.Request) {
	requestID := nuts.NID("req", 12)
	profileID, ok := requireUser(w, r)
	if !ok {
		return
	}

	var hive models.Hive
	if err := json.NewDecoder(r.Body).Decode(&hive); err != nil {
		respondWithError(w, errors.NewValidationError("invalid request body", err).WithRequestID(requestID))
		return
	}

	if err := h.hubservice.CreateHive(r.Context(), &hive, profileID); err != nil {
		respondServiceError(w, err, requestID)
		return
	}

	respondWithJSON(w, http.StatusCreated, hive)
}

// @Summary List hives of an apiary
// @Description The apiary's hives plus hives individually shared with the caller
// @Tags hives
// @Produce json
// @Param apiary_id query string true "Apiary ID"
// @Success 200 {array} models.Hive
// @Router /hives [get]
// @Security BearerAuth
func (h *HiveHandlers) ListHives(w http.ResponseWriter, r *http.Request) {
	requestID := nuts.NID("req", 12)
	profileID, ok := requireUser(w, r)
	if !ok {
		return
	}

	apiaryID := r.URL.Query().Get("apiary_id")
	if apiaryID == "" {
		respondWithError(w, errors.NewValidationError("apiary_id is required", nil).WithRequestID(requestID))
		return
	}

	hives, err := h.hubservice.ListHives(r.Context(), apiaryID, profileID)
	if err != nil {
		respondServiceError(w, err, requestID)
		return
	}

	respondWithJSON(w, http.StatusOK, hives)
}

// @Summary Get a hive by ID
// @Tags hives
// @Produce json
// @Param id path string true "Hive ID"
// @Success 200 {object} models.Hive
// @Failure 404 {object} errors.APIError
// @Router /hives/{id} [get]
// @Security BearerAuth
func (h *HiveHandlers) GetHive(w http.ResponseWriter, r *http.Request) {
	requestID := nuts.NID("req", 12)
	profileID, ok := requireUser(w, r)
	if !ok {
		return
	}

	hive, err := h.hubservice.GetHive(r.Context(), mux.Vars(r)["id"], profileID)
	if err != nil {
		respondServiceError(w, err, requestID)
		return
	}

	respondWithJSON(w, http.StatusOK, hive)
}

// @Summary Update a hive
// @Description Update a hive's editable fields; cached status fields are untouched
// @Tags hives
// @Accept json
// @Produce json
// @Param id path string true "Hive ID"
// @Param hive body models.Hive true "Updated hive details"
// @Success 200 {object} models.Hive
// @Failure 400 {object} errors.APIError
// @Failure 404 {object} errors.APIError
// @Router /hives/{id} [put]
// @Security BearerAuth
func (h *HiveHandlers) UpdateHive(w http.ResponseWriter, r *http.Request) {
	requestID := nuts.NID("req", 12)
	profileID, ok := requireUser(w, r)
	if !ok {
		return
	}

	var updates models.Hive
	if err := json.NewDecoder(r.Body).Decode(&updates); err != nil {
		respondWithError(w, errors.NewValidationError("invalid request body", err).WithRequestID(requestID))
		return
	}

	hive, err := h.hubservice.UpdateHive(r.Context(), mux.Vars(r)["id"], &updates, profileID)
	if err != nil {
		respondServiceError(w, err, requestID)
		return
	}

	respondWithJSON(w, http.StatusOK, hive)
}

// @Summary Delete a hive
// @Description Delete a hive and all its inspections, tasks, harvests and grants
// @Tags hives
// @Param id path string true "Hive ID"
// @Success 204 "No Content"
// @Failure 403 {object} errors.APIError
// @Failure 404 {object} errors.APIError
// @Router /hives/{id} [delete]
// @Security BearerAuth
func (h *HiveHandlers) DeleteHive(w http.ResponseWriter, r *http.Request) {
	requestID := nuts.NID("req", 12)
	profileID, ok := requireUser(w, r)
	if !ok {
		return
	}

	if err := h.hubservice.DeleteHive(r.Context(), mux.Vars(r)["id"], profileID); err != nil {
		respondServiceError(w, err, requestID)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
