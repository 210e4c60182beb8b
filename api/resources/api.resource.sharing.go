// FilePath: api/resources/api.resource.sharing.go
package resources

import (
	"encoding/json"
	"net/http"

	"github.com/bkeeper/hub/internal/errors"
	"github.com/bkeeper/hub/internal/hubservice"
	"github.com/bkeeper/hub/internal/models"
	nuts "github.com/vaudience/go-nuts"
)

// SharingHandlers encapsulates the sharing-code HTTP handlers
type SharingHandlers struct {
	hubservice *hubservice.HubService
}

// @Summary Create a sharing code
// @Description Create a one-shot code for an apiary or hive. Owner only.
// @Tags sharing
// @Accept json
// @Produce json
// @Param code body models.SharingCode true "Resource, access level, optional expiry and max uses"
// @Success 201 {object} models.SharingCode
// @Failure 400 {object} errors.APIError
// @Failure 403 {object} errors.APIError
// @Router /sharing/codes [post]
// @Security BearerAuth
func (h *SharingHandlers) CreateCode(w http.ResponseWriter, r *http.Request) {
	requestID := nuts.NID("req", 12)
	profileID, ok := requireUser(w, r)
	if !ok {
		return
	}

	var code models.SharingCode
	if err := json.NewDecoder(r.Body).Decode(&code); err != nil {
		respondWithError(w, errors.NewValidationError("invalid request body", err).WithRequestID(requestID))
		return
	}

	if err := h.hubservice.CreateSharingCode(r.Context(), &code, profileID); err != nil {
		respondServiceError(w, err, requestID)
		return
	}

	respondWithJSON(w, http.StatusCreated, code)
}

// @Summary Redeem a sharing code
// @Description Grants the caller access to the shared apiary or hive
// @Tags sharing
// @Accept json
// @Produce json
// @Param body body object true "{\"code\": \"abc123de\"}"
// @Success 200 {object} hubservice.RedemptionResult
// @Failure 404 {object} errors.APIError
// @Failure 409 {object} errors.APIError
// @Failure 410 {object} errors.APIError
// @Router /sharing/redeem [post]
// @Security BearerAuth
func (h *SharingHandlers) RedeemCode(w http.ResponseWriter, r *http.Request) {
	requestID := nuts.NID("req", 12)
	profileID, ok := requireUser(w, r)
	if !ok {
		return
	}

	var body struct {
		Code string `json:"code"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.Code == "" {
		respondWithError(w, errors.NewValidationError("code is required", err).WithRequestID(requestID))
		return
	}

	result, err := h.hubservice.RedeemSharingCode(r.Context(), body.Code, profileID)
	if err != nil {
		respondServiceError(w, err, requestID)
		return
	}

	respondWithJSON(w, http.StatusOK, result)
}
