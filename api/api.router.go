// FilePath: api/api.router.go
package api

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/bkeeper/hub/api/middleware"
	"github.com/bkeeper/hub/api/resources"
	"github.com/bkeeper/hub/internal/hubservice"
	"github.com/bkeeper/hub/internal/localstore"
	"github.com/bkeeper/hub/internal/session"
	"github.com/bkeeper/hub/internal/weather"
)

type Router struct {
	router    *mux.Router
	auth      *middleware.KeycloakMiddleware
	resources *resources.Resources
}

func NewRouter(
	svc *hubservice.HubService,
	local *localstore.Store,
	sessions *session.Manager,
	forecast *weather.Client,
	keycloakConfig middleware.KeycloakConfig,
) *Router {
	r := &Router{
		router:    mux.NewRouter(),
		auth:      middleware.NewKeycloakMiddleware(keycloakConfig, svc.Profiles),
		resources: resources.NewResources(svc, local, sessions, forecast),
	}

	r.setupRoutes()
	return r
}

func (r *Router) setupRoutes() {
	// API version prefix
	api := r.router.PathPrefix("/api/v1").Subrouter()

	// Public routes
	// Health handler is attached after construction; dispatch lazily
	api.HandleFunc("/health", func(w http.ResponseWriter, req *http.Request) {
		if r.resources.HealthCheck == nil {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		r.resources.HealthCheck(w, req)
	}).Methods(http.MethodGet)
	api.HandleFunc("/weather", r.resources.Weather.Current).Methods(http.MethodGet)

	// Session mode resolution works with or without a token
	session := api.PathPrefix("/session").Subrouter()
	session.Use(r.auth.OptionalAuthenticate)
	session.HandleFunc("", r.resources.Session.GetSession).Methods(http.MethodGet)

	// Local-store routes work without a token; an authenticated caller
	// still reaches them explicitly under /local.
	local := api.PathPrefix("/local").Subrouter()
	local.Use(r.auth.OptionalAuthenticate)
	local.HandleFunc("/hives", r.resources.Local.ListHives).Methods(http.MethodGet)
	local.HandleFunc("/hives", r.resources.Local.CreateHive).Methods(http.MethodPost)
	local.HandleFunc("/hives/{id}", r.resources.Local.GetHive).Methods(http.MethodGet)
	local.HandleFunc("/hives/{id}", r.resources.Local.UpdateHive).Methods(http.MethodPut)
	local.HandleFunc("/hives/{id}", r.resources.Local.DeleteHive).Methods(http.MethodDelete)
	local.HandleFunc("/hives/{id}/inspections", r.resources.Local.ListHiveInspections).Methods(http.MethodGet)
	local.HandleFunc("/inspections", r.resources.Local.CreateInspection).Methods(http.MethodPost)
	local.HandleFunc("/tasks", r.resources.Local.ListTasks).Methods(http.MethodGet)
	local.HandleFunc("/tasks", r.resources.Local.CreateTask).Methods(http.MethodPost)
	local.HandleFunc("/tasks/{id}/complete", r.resources.Local.CompleteTask).Methods(http.MethodPost)
	local.HandleFunc("/harvests", r.resources.Local.ListHarvests).Methods(http.MethodGet)
	local.HandleFunc("/harvests", r.resources.Local.CreateHarvest).Methods(http.MethodPost)

	// Protected collaborative routes
	protected := api.PathPrefix("").Subrouter()
	protected.Use(r.auth.Authenticate)

	// Apiaries
	apiaries := protected.PathPrefix("/apiaries").Subrouter()
	apiaries.HandleFunc("", r.resources.Apiaries.ListApiaries).Methods(http.MethodGet)
	apiaries.HandleFunc("", r.resources.Apiaries.CreateApiary).Methods(http.MethodPost)
	apiaries.HandleFunc("/join", r.resources.Apiaries.JoinByInviteCode).Methods(http.MethodPost)
	apiaries.HandleFunc("/selected", r.resources.Apiaries.GetSelectedApiary).Methods(http.MethodGet)
	apiaries.HandleFunc("/{id}", r.resources.Apiaries.GetApiary).Methods(http.MethodGet)
	apiaries.HandleFunc("/{id}", r.resources.Apiaries.UpdateApiary).Methods(http.MethodPut)
	apiaries.HandleFunc("/{id}", r.resources.Apiaries.DeleteApiary).Methods(http.MethodDelete)
	apiaries.HandleFunc("/{id}/members", r.resources.Apiaries.ListMembers).Methods(http.MethodGet)
	apiaries.HandleFunc("/{id}/invite", r.resources.Apiaries.GetInviteMessage).Methods(http.MethodGet)
	apiaries.HandleFunc("/{id}/select", r.resources.Apiaries.SelectApiary).Methods(http.MethodPost)

	// Hives
	hives := protected.PathPrefix("/hives").Subrouter()
	hives.HandleFunc("", r.resources.Hives.ListHives).Methods(http.MethodGet)
	hives.HandleFunc("", r.resources.Hives.CreateHive).Methods(http.MethodPost)
	hives.HandleFunc("/{id}", r.resources.Hives.GetHive).Methods(http.MethodGet)
	hives.HandleFunc("/{id}", r.resources.Hives.UpdateHive).Methods(http.MethodPut)
	hives.HandleFunc("/{id}", r.resources.Hives.DeleteHive).Methods(http.MethodDelete)
	hives.HandleFunc("/{id}/inspections", r.resources.Inspections.ListInspections).Methods(http.MethodGet)
	hives.HandleFunc("/{id}/harvests", r.resources.Harvests.ListHarvests).Methods(http.MethodGet)
	hives.HandleFunc("/{id}/harvests/total", r.resources.Harvests.SeasonTotal).Methods(http.MethodGet)

	// Inspections
	inspections := protected.PathPrefix("/inspections").Subrouter()
	inspections.HandleFunc("", r.resources.Inspections.CreateInspection).Methods(http.MethodPost)
	inspections.HandleFunc("/{id}", r.resources.Inspections.GetInspection).Methods(http.MethodGet)

	// Tasks
	tasks := protected.PathPrefix("/tasks").Subrouter()
	tasks.HandleFunc("", r.resources.Tasks.ListTasks).Methods(http.MethodGet)
	tasks.HandleFunc("", r.resources.Tasks.CreateTask).Methods(http.MethodPost)
	tasks.HandleFunc("/{id}", r.resources.Tasks.DeleteTask).Methods(http.MethodDelete)
	tasks.HandleFunc("/{id}/complete", r.resources.Tasks.CompleteTask).Methods(http.MethodPost)

	// Harvests
	harvests := protected.PathPrefix("/harvests").Subrouter()
	harvests.HandleFunc("", r.resources.Harvests.CreateHarvest).Methods(http.MethodPost)

	// Sharing
	sharing := protected.PathPrefix("/sharing").Subrouter()
	sharing.HandleFunc("/codes", r.resources.Sharing.CreateCode).Methods(http.MethodPost)
	sharing.HandleFunc("/redeem", r.resources.Sharing.RedeemCode).Methods(http.MethodPost)
}

// SetHealthCheck wires the server's health handler into the router
func (r *Router) SetHealthCheck(h func(w http.ResponseWriter, req *http.Request)) {
	r.resources.SetHealthCheck(h)
}

func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	r.router.ServeHTTP(w, req)
}
