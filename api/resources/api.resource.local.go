// FilePath: api/resources/api.resource.local.go
package resources

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/bkeeper/hub/internal/errors"
	"github.com/bkeeper/hub/internal/localstore"
	"github.com/bkeeper/hub/internal/models"
	nuts "github.com/vaudience/go-nuts"
)

// LocalHandlers serves the device-local store. These routes need no
// authentication: an anonymous session works entirely against the
// local file.
type LocalHandlers struct {
	store *localstore.Store
}

// @Summary List local hives
// @Tags local
// @Produce json
// @Success 200 {array} models.Hive
// @Router /local/hives [get]
func (h *LocalHandlers) ListHives(w http.ResponseWriter, r *http.Request) {
	requestID := nuts.NID("req", 12)
	hives, err := h.store.Hives()
	if err != nil {
		respondServiceError(w, err, requestID)
		return
	}
	respondWithJSON(w, http.StatusOK, hives)
}

// @Summary Create a local hive
// @Tags local
// @Accept json
// @Produce json
// @Param hive body models.Hive true "Hive details"
// @Success 201 {object} models.Hive
// @Failure 400 {object} errors.APIError
// @Router /local/hives [post]
func (h *LocalHandlers) CreateHive(w http.ResponseWriter, r *http.Request) {
	requestID := nuts.NID("req", 12)
	var hive models.Hive
	if err := json.NewDecoder(r.Body).Decode(&hive); err != nil {
		respondWithError(w, errors.NewValidationError("invalid request body", err).WithRequestID(requestID))
		return
	}
	if err := h.store.AddHive(&hive); err != nil {
		respondServiceError(w, err, requestID)
		return
	}
	respondWithJSON(w, http.StatusCreated, hive)
}

// @Summary Get a local hive
// @Tags local
// @Produce json
// @Param id path string true "Hive ID"
// @Success 200 {object} models.Hive
// @Failure 404 {object} errors.APIError
// @Router /local/hives/{id} [get]
func (h *LocalHandlers) GetHive(w http.ResponseWriter, r *http.Request) {
	requestID := nuts.NID("req", 12)
	hive, err := h.store.GetHive(mux.Vars(r)["id"])
	if err != nil {
		respondServiceError(w, err, requestID)
		return
	}
	respondWithJSON(w, http.StatusOK, hive)
}

// @Summary Update a local hive
// @Tags local
// @Accept json
// @Produce json
// @Param id path string true "Hive ID"
// @Param hive body models.Hive true "Updated details"
// @Success 200 {object} models.Hive
// @Failure 404 {object} errors.APIError
// @Router /local/hives/{id} [put]
func (h *LocalHandlers) UpdateHive(w http.ResponseWriter, r *http.Request) {
	requestID := nuts.NID("req", 12)
	var hive models.Hive
	if err := json.NewDecoder(r.Body).Decode(&hive); err != nil {
		respondWithError(w, errors.NewValidationError("invalid request body", err).WithRequestID(requestID))
		return
	}
	hive.ID = mux.Vars(r)["id"]
	if err := h.store.UpdateHive(&hive); err != nil {
		respondServiceError(w, err, requestID)
		return
	}
	respondWithJSON(w, http.StatusOK, hive)
}

// @Summary Delete a local hive
// @Description Removes the hive and exactly its own inspections
// @Tags local
// @Param id path string true "Hive ID"
// @Success 204 "No Content"
// @Failure 404 {object} errors.APIError
// @Router /local/hives/{id} [delete]
func (h *LocalHandlers) DeleteHive(w http.ResponseWriter, r *http.Request) {
	requestID := nuts.NID("req", 12)
	if err := h.store.DeleteHive(mux.Vars(r)["id"]); err != nil {
		respondServiceError(w, err, requestID)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// @Summary List a local hive's inspections
// @Tags local
// @Produce json
// @Param id path string true "Hive ID"
// @Success 200 {array} models.Inspection
// @Router /local/hives/{id}/inspections [get]
func (h *LocalHandlers) ListHiveInspections(w http.ResponseWriter, r *http.Request) {
	requestID := nuts.NID("req", 12)
	inspections, err := h.store.InspectionsForHive(mux.Vars(r)["id"])
	if err != nil {
		respondServiceError(w, err, requestID)
		return
	}
	respondWithJSON(w, http.StatusOK, inspections)
}

// @Summary Record a local inspection
// @Description Saves the inspection and recomputes the hive's cached status atomically
// @Tags local
// @Accept json
// @Produce json
// @Param inspection body models.Inspection true "Inspection record"
// @Success 201 {object} models.Inspection
// @Failure 400 {object} errors.APIError
// @Router /local/inspections [post]
func (h *LocalHandlers) CreateInspection(w http.ResponseWriter, r *http.Request) {
	requestID := nuts.NID("req", 12)
	var insp models.Inspection
	if err := json.NewDecoder(r.Body).Decode(&insp); err != nil {
		respondWithError(w, errors.NewValidationError("invalid request body", err).WithRequestID(requestID))
		return
	}
	if err := h.store.AddInspection(&insp); err != nil {
		respondServiceError(w, err, requestID)
		return
	}
	respondWithJSON(w, http.StatusCreated, insp)
}

// @Summary List local tasks
// @Tags local
// @Produce json
// @Success 200 {array} models.Task
// @Router /local/tasks [get]
func (h *LocalHandlers) ListTasks(w http.ResponseWriter, r *http.Request) {
	requestID := nuts.NID("req", 12)
	tasks, err := h.store.Tasks()
	if err != nil {
		respondServiceError(w, err, requestID)
		return
	}
	respondWithJSON(w, http.StatusOK, tasks)
}

// @Summary Create a local task
// @Tags local
// @Accept json
// @Produce json
// @Param task body models.Task true "Task details"
// @Success 201 {object} models.Task
// @Failure 400 {object} errors.APIError
// @Router /local/tasks [post]
func (h *LocalHandlers) CreateTask(w http.ResponseWriter, r *http.Request) {
	requestID := nuts.NID("req", 12)
	var task models.Task
	if err := json.NewDecoder(r.Body).Decode(&task); err != nil {
		respondWithError(w, errors.NewValidationError("invalid request body", err).WithRequestID(requestID))
		return
	}
	if err := h.store.AddTask(&task); err != nil {
		respondServiceError(w, err, requestID)
		return
	}
	respondWithJSON(w, http.StatusCreated, task)
}

// @Summary Complete a local task
// @Tags local
// @Param id path string true "Task ID"
// @Success 204 "No Content"
// @Failure 404 {object} errors.APIError
// @Router /local/tasks/{id}/complete [post]
func (h *LocalHandlers) CompleteTask(w http.ResponseWriter, r *http.Request) {
	requestID := nuts.NID("req", 12)
	if err := h.store.CompleteTask(mux.Vars(r)["id"]); err != nil {
		respondServiceError(w, err, requestID)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// @Summary List local harvests
// @Tags local
// @Produce json
// @Success 200 {array} models.Harvest
// @Router /local/harvests [get]
func (h *LocalHandlers) ListHarvests(w http.ResponseWriter, r *http.Request) {
	requestID := nuts.NID("req", 12)
	harvests, err := h.store.Harvests()
	if err != nil {
		respondServiceError(w, err, requestID)
		return
	}
	respondWithJSON(w, http.StatusOK, harvests)
}

// @Summary Record a local harvest
// @Tags local
// @Accept json
// @Produce json
// @Param harvest body models.Harvest true "Harvest record"
// @Success 201 {object} models.Harvest
// @Failure 400 {object} errors.APIError
// @Router /local/harvests [post]
func (h *LocalHandlers) CreateHarvest(w http.ResponseWriter, r *http.Request) {
	requestID := nuts.NID("req", 12)
	var harvest models.Harvest
	if err := json.NewDecoder(r.Body).Decode(&harvest); err != nil {
		respondWithError(w, errors.NewValidationError("invalid request body", err).WithRequestID(requestID))
		return
	}
	if err := h.store.AddHarvest(&harvest); err != nil {
		respondServiceError(w, err, requestID)
		return
	}
	respondWithJSON(w, http.StatusCreated, harvest)
}
