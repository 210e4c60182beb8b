// FilePath: internal/models/api.models.filters.go
package models

// TaskFilters narrows task list queries; decoded from query params.
// ProfileID is never client-supplied: the service sets it to scope
// unfiltered listings to the caller's own tasks and memberships.
type TaskFilters struct {
	ApiaryID  string `schema:"apiary_id"`
	HiveID    string `schema:"hive_id"`
	Completed *bool  `schema:"completed"`
	Priority  string `schema:"priority"`
	ProfileID string `schema:"-"`
}

// InspectionFilters narrows inspection list queries. HiveID comes from
// the route, Since from a query param (YYYY-MM-DD).
type InspectionFilters struct {
	HiveID string `schema:"-"`
	Since  string `schema:"since"`
}
