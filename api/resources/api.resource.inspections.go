// FilePath: api/resources/api.resource.inspections.go
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

// InspectionHandlers encapsulates the inspection-related HTTP handlers
type InspectionHandlers struct {
	hubservice *hubservice.HubService
}

// @Summary Record an inspection
// @Description Save an inspection and update the hive's cached status in one transaction
// @Tags inspections
// @Accept json
// @Produce json
// @Param inspection body models.Inspection true "Inspection record"
// @Success 201 {object} models.Inspection
// @Failure 400 {object} errors.APIError
// @Failure 404 {object} errors.APIError
// @Router /inspections [post]
// @Security BearerAuth
func (h *InspectionHandlers) CreateInspection(w http.ResponseWriter, r *http.Request) {
	requestID := nuts.NID("req", 12)
	profileID, ok := requireUser(w, r)
	if !ok {
		return
	}

	var insp models.Inspection
	if err := json.NewDecoder(r.Body).Decode(&insp); err != nil {
		respondWithError(w, errors.NewValidationError("invalid request body", err).WithRequestID(requestID))
		return
	}

	if err := h.hubservice.CreateInspection(r.Context(), &insp, profileID); err != nil {
		respondServiceError(w, err, requestID)
		return
	}

	respondWithJSON(w, http.StatusCreated, insp)
}

// @Summary Get an inspection
// @Tags inspections
// @Produce json
// @Param id path string true "Inspection ID"
// @Success 200 {object} models.Inspection
// @Failure 404 {object} errors.APIError
// @Router /inspections/{id} [get]
// @Security BearerAuth
func (h *InspectionHandlers) GetInspection(w http.ResponseWriter, r *http.Request) {
	requestID := nuts.NID("req", 12)
	profileID, ok := requireUser(w, r)
	if !ok {
		return
	}

	insp, err := h.hubservice.GetInspection(r.Context(), mux.Vars(r)["id"], profileID)
	if err != nil {
		respondServiceError(w, err, requestID)
		return
	}

	respondWithJSON(w, http.StatusOK, insp)
}

// @Summary List a hive's inspections
// @Tags inspections
// @Produce json
// @Param id path string true "Hive ID"
// @Param since query string false "Only inspections on or after this date (YYYY-MM-DD)"
// @Param offset query int false "Offset for pagination"
// @Param limit query int false "Limit for pagination"
// @Success 200 {array} models.Inspection
// @Router /hives/{id}/inspections [get]
// @Security BearerAuth
func (h *InspectionHandlers) ListInspections(w http.ResponseWriter, r *http.Request) {
	requestID := nuts.NID("req", 12)
	profileID, ok := requireUser(w, r)
	if !ok {
		return
	}
	offset, limit := getPaginationParams(r)

	var filters models.InspectionFilters
	if err := queryDecoder.Decode(&filters, r.URL.Query()); err != nil {
		respondWithError(w, errors.NewValidationError("invalid query parameters", err).WithRequestID(requestID))
		return
	}
	filters.HiveID = mux.Vars(r)["id"]

	inspections, err := h.hubservice.ListInspections(r.Context(), filters, profileID, offset, limit)
	if err != nil {
		respondServiceError(w, err, requestID)
		return
	}

	respondWithJSON(w, http.StatusOK, inspections)
}
