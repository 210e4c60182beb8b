// FilePath: internal/repository/repository.go
package repository

import (
	"context"
	"errors"
	"time"

	"github.com/bkeeper/hub/internal/database"
	"github.com/bkeeper/hub/internal/models"
)

var (
	// ErrNotFound indicates that a requested resource was not found
	ErrNotFound = errors.New("resource not found")
	// ErrDuplicate indicates that a resource already exists
	ErrDuplicate = errors.New("resource already exists")
	// ErrInvalidInput indicates that the input data is invalid
	ErrInvalidInput = errors.New("invalid input")
)

// ProfileRepository defines the interface for profile data operations
type ProfileRepository interface {
	database.Repository
	Create(ctx context.Context, profile *models.Profile) error
	Get(ctx context.Context, id string) (*models.Profile, error)
	GetByUserID(ctx context.Context, userID string) (*models.Profile, error)
}

// ApiaryRepository defines the interface for apiary data operations
type ApiaryRepository interface {
	database.Repository
	Create(ctx context.Context, apiary *models.Apiary) error
	Get(ctx context.Context, id string) (*models.Apiary, error)
	GetByInviteCode(ctx context.Context, code string) (*models.Apiary, error)
	Update(ctx context.Context, apiary *models.Apiary) error
	Delete(ctx context.Context, id string) error
	// ListForProfile returns the union of apiaries where the profile
	// is a direct member and apiaries reached via shared access
	// grants, with the effective role resolved per apiary.
	ListForProfile(ctx context.Context, profileID string) ([]*models.Apiary, error)

	AddMember(ctx context.Context, member *models.ApiaryMember) error
	GetMember(ctx context.Context, apiaryID, profileID string) (*models.ApiaryMember, error)
	ListMembers(ctx context.Context, apiaryID string) ([]*models.ApiaryMember, error)
	RemoveMembers(ctx context.Context, apiaryID string, tx database.Transaction) error
}

// HiveRepository defines the interface for hive data operations
type HiveRepository interface {
	database.Repository
	Create(ctx context.Context, hive *models.Hive) error
	Get(ctx context.Context, id string) (*models.Hive, error)
	Update(ctx context.Context, hive *models.Hive) error
	Delete(ctx context.Context, id string, tx database.Transaction) error
	ListByApiary(ctx context.Context, apiaryID string) ([]*models.Hive, error)
	// ListSharedWithProfile returns hives individually granted to the
	// profile through hive-level shared access.
	ListSharedWithProfile(ctx context.Context, profileID string) ([]*models.Hive, error)
	CountByApiaryAndName(ctx context.Context, apiaryID, name, excludeID string) (int, error)
}

// InspectionRepository defines the interface for inspection records
type InspectionRepository interface {
	database.Repository
	// CreateWithHiveUpdate persists the inspection and the recomputed
	// hive display cache in one transaction.
	CreateWithHiveUpdate(ctx context.Context, insp *models.Inspection, hive *models.Hive) error
	Get(ctx context.Context, id string) (*models.Inspection, error)
	ListByHive(ctx context.Context, filters models.InspectionFilters, offset, limit int) ([]*models.Inspection, error)
	DeleteByHive(ctx context.Context, hiveID string, tx database.Transaction) error
}

// TaskRepository defines the interface for task data operations
type TaskRepository interface {
	database.Repository
	Create(ctx context.Context, task *models.Task) error
	Get(ctx context.Context, id string) (*models.Task, error)
	Update(ctx context.Context, task *models.Task) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filters models.TaskFilters, offset, limit int) ([]*models.Task, error)
	DeleteByHive(ctx context.Context, hiveID string, tx database.Transaction) error
}

// HarvestRepository defines the interface for harvest records
type HarvestRepository interface {
	database.Repository
	Create(ctx context.Context, harvest *models.Harvest) error
	ListByHive(ctx context.Context, hiveID string) ([]*models.Harvest, error)
	TotalKgSince(ctx context.Context, hiveID string, since time.Time) (float64, error)
	DeleteByHive(ctx context.Context, hiveID string, tx database.Transaction) error
}

// SharingRepository defines the interface for sharing codes and grants
type SharingRepository interface {
	database.Repository
	CreateCode(ctx context.Context, code *models.SharingCode) error
	GetActiveByCode(ctx context.Context, code string) (*models.SharingCode, error)
	// Redeem increments the code's use count and inserts the access
	// grant in one transaction.
	Redeem(ctx context.Context, code *models.SharingCode, grant *models.SharedAccess) error
	GetGrant(ctx context.Context, profileID string, resourceType models.ResourceType, resourceID string) (*models.SharedAccess, error)
	DeleteGrantsByResource(ctx context.Context, resourceType models.ResourceType, resourceID string, tx database.Transaction) error
}
