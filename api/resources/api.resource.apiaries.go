// FilePath: api/resources/api.resource.apiaries.go
package resources

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/bkeeper/hub/internal/errors"
	"github.com/bkeeper/hub/internal/hubservice"
	"github.com/bkeeper/hub/internal/models"
	"github.com/bkeeper/hub/internal/session"
	nuts "github.com/vaudience/go-nuts"
)

// ApiaryHandlers encapsulates the apiary-related HTTP handlers
type ApiaryHandlers struct {
	hubservice *hubservice.HubService
	sessions   *session.Manager
}

// @Summary Create a new apiary
// @Description Create an apiary; the caller becomes its owner
// @Tags apiaries
// @Accept json
// @Produce json
// @Param apiary body models.Apiary true "Apiary details"
// @Success 201 {object} models.Apiary
// @Failure 400 {object} errors.APIError
// @Failure 401 {object} errors.APIError
// @Router /apiaries [post]
// @Security BearerAuth
func (h *ApiaryHandlers) CreateApiary(w http.ResponseWriter, r *http.Request) {
	requestID := nuts.NID("req", 12)
	profileID, ok := requireUser(w, r)
	if !ok {
		return
	}

	var apiary models.Apiary
	if err := json.NewDecoder(r.Body).Decode(&apiary); err != nil {
		respondWithError(w, errors.NewValidationError("invalid request body", err).WithRequestID(requestID))
		return
	}

	if err := h.hubservice.CreateApiary(r.Context(), &apiary, profileID); err != nil {
		respondServiceError(w, err, requestID)
		return
	}

	respondWithJSON(w, http.StatusCreated, apiary)
}

// @Summary List apiaries
// @Description List all apiaries the caller can reach, with effective roles
// @Tags apiaries
// @Produce json
// @Success 200 {array} models.Apiary
// @Router /apiaries [get]
// @Security BearerAuth
func (h *ApiaryHandlers) ListApiaries(w http.ResponseWriter, r *http.Request) {
	requestID := nuts.NID("req", 12)
	profileID, ok := requireUser(w, r)
	if !ok {
		return
	}

	apiaries, err := h.hubservice.ListApiaries(r.Context(), profileID)
	if err != nil {
		respondServiceError(w, err, requestID)
		return
	}

	filtered := make([]*models.Apiary, 0, len(apiaries))
	for _, apiary := range apiaries {
		fa, err := hubservice.FilterApiaryForRole(apiary)
		if err != nil {
			nuts.L.Warnf("[API] Failed to filter apiary %s: %v", apiary.ID, err)
			continue
		}
		filtered = append(filtered, fa)
	}

	respondWithJSON(w, http.StatusOK, filtered)
}

// @Summary Get an apiary
// @Tags apiaries
// @Produce json
// @Param id path string true "Apiary ID"
// @Success 200 {object} models.Apiary
// @Failure 404 {object} errors.APIError
// @Router /apiaries/{id} [get]
// @Security BearerAuth
func (h *ApiaryHandlers) GetApiary(w http.ResponseWriter, r *http.Request) {
	requestID := nuts.NID("req", 12)
	profileID, ok := requireUser(w, r)
	if !ok {
		return
	}

	apiary, err := h.hubservice.GetApiary(r.Context(), mux.Vars(r)["id"], profileID)
	if err != nil {
		respondServiceError(w, err, requestID)
		return
	}
	filtered, err := hubservice.FilterApiaryForRole(apiary)
	if err != nil {
		respondServiceError(w, err, requestID)
		return
	}

	respondWithJSON(w, http.StatusOK, filtered)
}

// @Summary Update an apiary
// @Tags apiaries
// @Accept json
// @Produce json
// @Param id path string true "Apiary ID"
// @Param apiary body models.Apiary true "Updated details"
// @Success 200 {object} models.Apiary
// @Failure 403 {object} errors.APIError
// @Router /apiaries/{id} [put]
// @Security BearerAuth
func (h *ApiaryHandlers) UpdateApiary(w http.ResponseWriter, r *http.Request) {
	requestID := nuts.NID("req", 12)
	profileID, ok := requireUser(w, r)
	if !ok {
		return
	}

	var apiary models.Apiary
	if err := json.NewDecoder(r.Body).Decode(&apiary); err != nil {
		respondWithError(w, errors.NewValidationError("invalid request body", err).WithRequestID(requestID))
		return
	}
	apiary.ID = mux.Vars(r)["id"]

	if err := h.hubservice.UpdateApiary(r.Context(), &apiary, profileID); err != nil {
		respondServiceError(w, err, requestID)
		return
	}

	respondWithJSON(w, http.StatusOK, apiary)
}

// @Summary Delete an apiary
// @Description Delete an apiary and everything under it. Owner only.
// @Tags apiaries
// @Param id path string true "Apiary ID"
// @Success 204 "No Content"
// @Failure 403 {object} errors.APIError
// @Router /apiaries/{id} [delete]
// @Security BearerAuth
func (h *ApiaryHandlers) DeleteApiary(w http.ResponseWriter, r *http.Request) {
	requestID := nuts.NID("req", 12)
	profileID, ok := requireUser(w, r)
	if !ok {
		return
	}

	if err := h.hubservice.DeleteApiary(r.Context(), mux.Vars(r)["id"], profileID); err != nil {
		respondServiceError(w, err, requestID)
		return
	}
	if err := h.sessions.ClearSelection(r.Context(), profileID); err != nil {
		nuts.L.Warnf("[API] Failed to clear apiary selection: %v", err)
	}

	w.WriteHeader(http.StatusNoContent)
}

// @Summary List apiary members
// @Tags apiaries
// @Produce json
// @Param id path string true "Apiary ID"
// @Success 200 {array} models.ApiaryMember
// @Router /apiaries/{id}/members [get]
// @Security BearerAuth
func (h *ApiaryHandlers) ListMembers(w http.ResponseWriter, r *http.Request) {
	requestID := nuts.NID("req", 12)
	profileID, ok := requireUser(w, r)
	if !ok {
		return
	}

	members, err := h.hubservice.ListApiaryMembers(r.Context(), mux.Vars(r)["id"], profileID)
	if err != nil {
		respondServiceError(w, err, requestID)
		return
	}

	respondWithJSON(w, http.StatusOK, members)
}

// @Summary Get the invite message for an apiary
// @Description Returns the share-sheet text containing the invite code
// @Tags apiaries
// @Produce json
// @Param id path string true "Apiary ID"
// @Success 200 {object} map[string]string
// @Failure 403 {object} errors.APIError
// @Router /apiaries/{id}/invite [get]
// @Security BearerAuth
func (h *ApiaryHandlers) GetInviteMessage(w http.ResponseWriter, r *http.Request) {
	requestID := nuts.NID("req", 12)
	profileID, ok := requireUser(w, r)
	if !ok {
		return
	}

	apiary, err := h.hubservice.GetApiary(r.Context(), mux.Vars(r)["id"], profileID)
	if err != nil {
		respondServiceError(w, err, requestID)
		return
	}
	if !apiary.Role.CanManageHives() {
		respondWithError(w, errors.NewAuthorizationError("only owners and admins may invite", nil).WithRequestID(requestID))
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]string{
		"invite_code": apiary.InviteCode,
		"message":     hubservice.FormatInviteMessage(apiary.Name, apiary.InviteCode),
	})
}

// @Summary Join an apiary by invite code
// @Tags apiaries
// @Accept json
// @Produce json
// @Param body body object true "{\"invite_code\": \"abc123de\"}"
// @Success 200 {object} hubservice.RedemptionResult
// @Failure 404 {object} errors.APIError
// @Failure 409 {object} errors.APIError
// @Router /apiaries/join [post]
// @Security BearerAuth
func (h *ApiaryHandlers) JoinByInviteCode(w http.ResponseWriter, r *http.Request) {
	requestID := nuts.NID("req", 12)
	profileID, ok := requireUser(w, r)
	if !ok {
		return
	}

	var body struct {
		InviteCode string `json:"invite_code"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.InviteCode == "" {
		respondWithError(w, errors.NewValidationError("invite_code is required", err).WithRequestID(requestID))
		return
	}

	result, err := h.hubservice.JoinApiaryByInviteCode(r.Context(), body.InviteCode, profileID)
	if err != nil {
		respondServiceError(w, err, requestID)
		return
	}

	respondWithJSON(w, http.StatusOK, result)
}

// @Summary Get the selected apiary
// @Description Returns the caller's active apiary, falling back to the first reachable one
// @Tags apiaries
// @Produce json
// @Success 200 {object} map[string]string
// @Router /apiaries/selected [get]
// @Security BearerAuth
func (h *ApiaryHandlers) GetSelectedApiary(w http.ResponseWriter, r *http.Request) {
	requestID := nuts.NID("req", 12)
	profileID, ok := requireUser(w, r)
	if !ok {
		return
	}

	selected, err := h.sessions.SelectedApiary(r.Context(), profileID)
	if err != nil {
		respondServiceError(w, err, requestID)
		return
	}
	if selected == "" {
		apiaries, err := h.hubservice.ListApiaries(r.Context(), profileID)
		if err != nil {
			respondServiceError(w, err, requestID)
			return
		}
		if len(apiaries) > 0 {
			selected = apiaries[0].ID
		}
	}

	respondWithJSON(w, http.StatusOK, map[string]string{"apiary_id": selected})
}

// @Summary Select the active apiary
// @Tags apiaries
// @Param id path string true "Apiary ID"
// @Success 204 "No Content"
// @Router /apiaries/{id}/select [post]
// @Security BearerAuth
func (h *ApiaryHandlers) SelectApiary(w http.ResponseWriter, r *http.Request) {
	requestID := nuts.NID("req", 12)
	profileID, ok := requireUser(w, r)
	if !ok {
		return
	}
	apiaryID := mux.Vars(r)["id"]

	// Selection only sticks for apiaries the caller can actually reach
	if _, err := h.hubservice.GetApiary(r.Context(), apiaryID, profileID); err != nil {
		respondServiceError(w, err, requestID)
		return
	}
	if err := h.sessions.SelectApiary(r.Context(), profileID, apiaryID); err != nil {
		respondServiceError(w, err, requestID)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
