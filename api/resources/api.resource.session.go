// FilePath: api/resources/api.resource.session.go
package resources

import (
	"net/http"

	"github.com/bkeeper/hub/api/middleware"
	"github.com/bkeeper/hub/internal/session"
	nuts "github.com/vaudience/go-nuts"
)

// SessionHandlers reports which store a caller's session operates
// against.
type SessionHandlers struct {
	sessions *session.Manager
}

// @Summary Get the current session mode
// @Description Anonymous callers get the local mode; authenticated callers get collaborative plus their selected apiary
// @Tags session
// @Produce json
// @Success 200 {object} map[string]string
// @Router /session [get]
func (h *SessionHandlers) GetSession(w http.ResponseWriter, r *http.Request) {
	requestID := nuts.NID("req", 12)

	profileID := ""
	if user := middleware.UserFromContext(r.Context()); user != nil {
		profileID = user.ProfileID
	}

	mode := h.sessions.Resolve(profileID)
	payload := map[string]string{"mode": string(mode)}
	if mode == session.ModeCollaborative {
		selected, err := h.sessions.SelectedApiary(r.Context(), profileID)
		if err != nil {
			respondServiceError(w, err, requestID)
			return
		}
		payload["selected_apiary_id"] = selected
	}
	respondWithJSON(w, http.StatusOK, payload)
}
