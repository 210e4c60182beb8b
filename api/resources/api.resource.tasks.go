// FilePath: api/resources/api.resource.tasks.go
package resources

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/gorilla/schema"
	"github.com/bkeeper/hub/internal/errors"
	"github.com/bkeeper/hub/internal/hubservice"
	"github.com/bkeeper/hub/internal/models"
	nuts "github.com/vaudience/go-nuts"
)

// TaskHandlers encapsulates the task-related HTTP handlers
type TaskHandlers struct {
	hubservice *hubservice.HubService
}

var queryDecoder = schema.NewDecoder()

func init() {
	queryDecoder.IgnoreUnknownKeys(true)
}

// @Summary Create a task
// @Tags tasks
// @Accept json
// @Produce json
// @Param task body models.Task true "Task details"
// @Success 201 {object} models.Task
// @Failure 400 {object} errors.APIError
// @Router /tasks [post]
// @Security BearerAuth
func (h *TaskHandlers) CreateTask(w http.ResponseWriter, r *http.Request) {
	requestID := nuts.NID("req", 12)
	profileID, ok := requireUser(w, r)
	if !ok {
		return
	}

	var task models.Task
	if err := json.NewDecoder(r.Body).Decode(&task); err != nil {
		respondWithError(w, errors.NewValidationError("invalid request body", err).WithRequestID(requestID))
		return
	}

	if err := h.hubservice.CreateTask(r.Context(), &task, profileID); err != nil {
		respondServiceError(w, err, requestID)
		return
	}

	respondWithJSON(w, http.StatusCreated, task)
}

// @Summary List tasks
// @Description Filterable by apiary_id, hive_id, completed and priority
// @Tags tasks
// @Produce json
// @Param apiary_id query string false "Apiary ID"
// @Param hive_id query string false "Hive ID"
// @Param completed query bool false "Completion state"
// @Param priority query string false "Priority"
// @Success 200 {array} models.Task
// @Router /tasks [get]
// @Security BearerAuth
func (h *TaskHandlers) ListTasks(w http.ResponseWriter, r *http.Request) {
	requestID := nuts.NID("req", 12)
	profileID, ok := requireUser(w, r)
	if !ok {
		return
	}
	offset, limit := getPaginationParams(r)

	var filters models.TaskFilters
	if err := queryDecoder.Decode(&filters, r.URL.Query()); err != nil {
		respondWithError(w, errors.NewValidationError("invalid filter parameters", err).WithRequestID(requestID))
		return
	}

	tasks, err := h.hubservice.ListTasks(r.Context(), filters, profileID, offset, limit)
	if err != nil {
		respondServiceError(w, err, requestID)
		return
	}

	respondWithJSON(w, http.StatusOK, tasks)
}

// @Summary Complete a task
// @Tags tasks
// @Produce json
// @Param id path string true "Task ID"
// @Success 200 {object} models.Task
// @Failure 404 {object} errors.APIError
// @Router /tasks/{id}/complete [post]
// @Security BearerAuth
func (h *TaskHandlers) CompleteTask(w http.ResponseWriter, r *http.Request) {
	requestID := nuts.NID("req", 12)
	profileID, ok := requireUser(w, r)
	if !ok {
		return
	}

	task, err := h.hubservice.CompleteTask(r.Context(), mux.Vars(r)["id"], profileID)
	if err != nil {
		respondServiceError(w, err, requestID)
		return
	}

	respondWithJSON(w, http.StatusOK, task)
}

// @Summary Delete a task
// @Tags tasks
// @Param id path string true "Task ID"
// @Success 204 "No Content"
// @Failure 403 {object} errors.APIError
// @Router /tasks/{id} [delete]
// @Security BearerAuth
func (h *TaskHandlers) DeleteTask(w http.ResponseWriter, r *http.Request) {
	requestID := nuts.NID("req", 12)
	profileID, ok := requireUser(w, r)
	if !ok {
		return
	}

	if err := h.hubservice.DeleteTask(r.Context(), mux.Vars(r)["id"], profileID); err != nil {
		respondServiceError(w, err, requestID)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
