// FilePath: api/resources/api.resource.harvests.go
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

// HarvestHandlers encapsulates the harvest-related HTTP handlers
type HarvestHandlers struct {
	hubservice *hubservice.HubService
}

// @Summary Record a honey harvest
// @Description Estimated weight defaults to 2 kg per honey frame
// @Tags harvests
// @Accept json
// @Produce json
// @Param harvest body models.Harvest true "Harvest record"
// @Success 201 {object} models.Harvest
// @Failure 400 {object} errors.APIError
// @Router /harvests [post]
// @Security BearerAuth
func (h *HarvestHandlers) CreateHarvest(w http.ResponseWriter, r *http.Request) {
	requestID := nuts.NID("req", 12)
	profileID, ok := requireUser(w, r)
	if !ok {
		return
	}

	var harvest models.Harvest
	if err := json.NewDecoder(r.Body).Decode(&harvest); err != nil {
		respondWithError(w, errors.NewValidationError("invalid request body", err).WithRequestID(requestID))
		return
	}

	if err := h.hubservice.CreateHarvest(r.Context(), &harvest, profileID); err != nil {
		respondServiceError(w, err, requestID)
		return
	}

	respondWithJSON(w, http.StatusCreated, harvest)
}

// @Summary List a hive's harvests
// @Tags harvests
// @Produce json
// @Param id path string true "Hive ID"
// @Success 200 {array} models.Harvest
// @Router /hives/{id}/harvests [get]
// @Security BearerAuth
func (h *HarvestHandlers) ListHarvests(w http.ResponseWriter, r *http.Request) {
	requestID := nuts.NID("req", 12)
	profileID, ok := requireUser(w, r)
	if !ok {
		return
	}

	harvests, err := h.hubservice.ListHarvests(r.Context(), mux.Vars(r)["id"], profileID)
	if err != nil {
		respondServiceError(w, err, requestID)
		return
	}

	respondWithJSON(w, http.StatusOK, harvests)
}

// @Summary Get a hive's season harvest total
// @Tags harvests
// @Produce json
// @Param id path string true "Hive ID"
// @Success 200 {object} map[string]float64
// @Router /hives/{id}/harvests/total [get]
// @Security BearerAuth
func (h *HarvestHandlers) SeasonTotal(w http.ResponseWriter, r *http.Request) {
	requestID := nuts.NID("req", 12)
	profileID, ok := requireUser(w, r)
	if !ok {
		return
	}

	total, err := h.hubservice.SeasonTotalKg(r.Context(), mux.Vars(r)["id"], profileID)
	if err != nil {
		respondServiceError(w, err, requestID)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]float64{"total_kg": total})
}
