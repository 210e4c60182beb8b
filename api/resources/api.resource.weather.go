// FilePath: api/resources/api.resource.weather.go
package resources

import (
	"net/http"
	"strconv"

	"github.com/bkeeper/hub/internal/errors"
	"github.com/bkeeper/hub/internal/weather"
	nuts "github.com/vaudience/go-nuts"
)

// WeatherHandlers serves current-conditions lookups for the inspection
// form. Failures surface as network_failure so clients fall back to
// manual entry.
type WeatherHandlers struct {
	client *weather.Client
}

// @Summary Current weather at a location
// @Tags weather
// @Produce json
// @Param lat query number true "Latitude"
// @Param lon query number true "Longitude"
// @Success 200 {object} weather.Snapshot
// @Failure 400 {object} errors.APIError
// @Failure 502 {object} errors.APIError
// @Router /weather [get]
func (h *WeatherHandlers) Current(w http.ResponseWriter, r *http.Request) {
	requestID := nuts.NID("req", 12)
	lat, latErr := strconv.ParseFloat(r.URL.Query().Get("lat"), 64)
	lon, lonErr := strconv.ParseFloat(r.URL.Query().Get("lon"), 64)
	if latErr != nil || lonErr != nil {
		respondWithError(w, errors.NewValidationError("lat and lon are required", nil).WithRequestID(requestID))
		return
	}

	snapshot, err := h.client.Current(r.Context(), lat, lon)
	if err != nil {
		respondServiceError(w, err, requestID)
		return
	}

	respondWithJSON(w, http.StatusOK, snapshot)
}
