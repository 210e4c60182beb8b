// FilePath: api/resources/resources.go
package resources

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/bkeeper/hub/api/middleware"
	"github.com/bkeeper/hub/internal/errors"
	"github.com/bkeeper/hub/internal/hubservice"
	"github.com/bkeeper/hub/internal/localstore"
	"github.com/bkeeper/hub/internal/session"
	"github.com/bkeeper/hub/internal/weather"
	nuts "github.com/vaudience/go-nuts"
)

// Resources holds all HTTP resource handlers
type Resources struct {
	Apiaries    *ApiaryHandlers
	Hives       *HiveHandlers
	Inspections *InspectionHandlers
	Tasks       *TaskHandlers
	Harvests    *HarvestHandlers
	Sharing     *SharingHandlers
	Local       *LocalHandlers
	Weather     *WeatherHandlers
	Session     *SessionHandlers
	HealthCheck func(w http.ResponseWriter, r *http.Request)
}

// NewResources creates a new Resources instance
func NewResources(svc *hubservice.HubService, local *localstore.Store, sessions *session.Manager, forecast *weather.Client) *Resources {
	return &Resources{
		Apiaries:    &ApiaryHandlers{hubservice: svc, sessions: sessions},
		Hives:       &HiveHandlers{hubservice: svc},
		Inspections: &InspectionHandlers{hubservice: svc},
		Tasks:       &TaskHandlers{hubservice: svc},
		Harvests:    &HarvestHandlers{hubservice: svc},
		Sharing:     &SharingHandlers{hubservice: svc},
		Local:       &LocalHandlers{store: local},
		Weather:     &WeatherHandlers{client: forecast},
		Session:     &SessionHandlers{sessions: sessions},
	}
}

// SetHealthCheck sets the health check handler
func (r *Resources) SetHealthCheck(h func(w http.ResponseWriter, r *http.Request)) {
	r.HealthCheck = h
}

// Helper functions

// requireUser returns the authenticated user's profile id or writes 401
func requireUser(w http.ResponseWriter, r *http.Request) (string, bool) {
	user := middleware.UserFromContext(r.Context())
	if user == nil {
		respondWithError(w, errors.NewAuthError("authentication required", nil))
		return "", false
	}
	return user.ProfileID, true
}

func getPaginationParams(r *http.Request) (offset, limit int) {
	query := r.URL.Query()
	offset, _ = strconv.Atoi(query.Get("offset"))
	limit, _ = strconv.Atoi(query.Get("limit"))

	if limit <= 0 || limit > 100 {
		limit = 50 // Default limit
	}
	if offset < 0 {
		offset = 0
	}

	return offset, limit
}

func respondWithError(w http.ResponseWriter, err *errors.APIError) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(err.Code)
	json.NewEncoder(w).Encode(err)
	nuts.L.Errorf("[API] %s", err.Error())
}

// respondServiceError passes typed service errors through unchanged so
// clients see not_found/authorization_denied/expired rather than a
// generic failure, and wraps anything else as internal.
func respondServiceError(w http.ResponseWriter, err error, requestID string) {
	if apiErr, ok := err.(*errors.APIError); ok {
		respondWithError(w, apiErr.WithRequestID(requestID))
		return
	}
	respondWithError(w, errors.NewInternalError("unexpected failure", err).WithRequestID(requestID))
}

func respondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(payload)
}
