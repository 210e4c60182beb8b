// FilePath: internal/hubservice/fakes_test.go
package hubservice

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"fmt"
	"strings"
	"time"

	"github.com/bkeeper/hub/internal/database"
	"github.com/bkeeper/hub/internal/errors"
	"github.com/bkeeper/hub/internal/models"
)

// In-memory repository fakes for service-level tests.

type fakeTx struct{}

func (fakeTx) Commit() error   { return nil }
func (fakeTx) Rollback() error { return nil }
func (fakeTx) ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error) {
	return driver.RowsAffected(1), nil
}

type fakeBase struct{}

func (fakeBase) BeginTx(ctx context.Context) (database.Transaction, error) {
	return fakeTx{}, nil
}

var idCounter int

func nextID(prefix string) string {
	idCounter++
	return fmt.Sprintf("%s_%d", prefix, idCounter)
}

type fakeProfileRepo struct {
	fakeBase
	profiles map[string]*models.Profile
}

func newFakeProfileRepo() *fakeProfileRepo {
	return &fakeProfileRepo{profiles: map[string]*models.Profile{}}
}

func (r *fakeProfileRepo) Create(ctx context.Context, p *models.Profile) error {
	if p.ID == "" {
		p.ID = nextID("prf")
	}
	r.profiles[p.ID] = p
	return nil
}

func (r *fakeProfileRepo) Get(ctx context.Context, id string) (*models.Profile, error) {
	if p, ok := r.profiles[id]; ok {
		return p, nil
	}
	return nil, errors.NewNotFoundError("profile not found", nil)
}

func (r *fakeProfileRepo) GetByUserID(ctx context.Context, userID string) (*models.Profile, error) {
	for _, p := range r.profiles {
		if p.UserID == userID {
			return p, nil
		}
	}
	return nil, errors.NewNotFoundError("profile not found", nil)
}

type fakeApiaryRepo struct {
	fakeBase
	apiaries map[string]*models.Apiary
	members  []*models.ApiaryMember
}

func newFakeApiaryRepo() *fakeApiaryRepo {
	return &fakeApiaryRepo{apiaries: map[string]*models.Apiary{}}
}

func (r *fakeApiaryRepo) Create(ctx context.Context, a *models.Apiary) error {
	if a.ID == "" {
		a.ID = nextID("apy")
	}
	a.CreatedAt = time.Now()
	r.apiaries[a.ID] = a
	return nil
}

func (r *fakeApiaryRepo) Get(ctx context.Context, id string) (*models.Apiary, error) {
	if a, ok := r.apiaries[id]; ok {
		cp := *a
		return &cp, nil
	}
	return nil, errors.NewNotFoundError("apiary not found", nil)
}

func (r *fakeApiaryRepo) GetByInviteCode(ctx context.Context, code string) (*models.Apiary, error) {
	for _, a := range r.apiaries {
		if a.InviteCode == code {
			cp := *a
			return &cp, nil
		}
	}
	return nil, errors.NewNotFoundError("apiary not found", nil)
}

func (r *fakeApiaryRepo) Update(ctx context.Context, a *models.Apiary) error {
	if _, ok := r.apiaries[a.ID]; !ok {
		return errors.NewNotFoundError("apiary not found", nil)
	}
	r.apiaries[a.ID] = a
	return nil
}

func (r *fakeApiaryRepo) Delete(ctx context.Context, id string) error {
	delete(r.apiaries, id)
	return nil
}

func (r *fakeApiaryRepo) ListForProfile(ctx context.Context, profileID string) ([]*models.Apiary, error) {
	var out []*models.Apiary
	for _, m := range r.members {
		if m.ProfileID == profileID {
			if a, ok := r.apiaries[m.ApiaryID]; ok {
				cp := *a
				cp.Role = m.Role
				out = append(out, &cp)
			}
		}
	}
	return out, nil
}

func (r *fakeApiaryRepo) AddMember(ctx context.Context, m *models.ApiaryMember) error {
	if m.ID == "" {
		m.ID = nextID("mbr")
	}
	m.JoinedAt = time.Now()
	r.members = append(r.members, m)
	return nil
}

func (r *fakeApiaryRepo) GetMember(ctx context.Context, apiaryID, profileID string) (*models.ApiaryMember, error) {
	for _, m := range r.members {
		if m.ApiaryID == apiaryID && m.ProfileID == profileID {
			return m, nil
		}
	}
	return nil, errors.NewNotFoundError("not a member", nil)
}

func (r *fakeApiaryRepo) ListMembers(ctx context.Context, apiaryID string) ([]*models.ApiaryMember, error) {
	var out []*models.ApiaryMember
	for _, m := range r.members {
		if m.ApiaryID == apiaryID {
			out = append(out, m)
		}
	}
	return out, nil
}

func (r *fakeApiaryRepo) RemoveMembers(ctx context.Context, apiaryID string, tx database.Transaction) error {
	kept := r.members[:0]
	for _, m := range r.members {
		if m.ApiaryID != apiaryID {
			kept = append(kept, m)
		}
	}
	r.members = kept
	return nil
}

type fakeHiveRepo struct {
	fakeBase
	hives map[string]*models.Hive
}

func newFakeHiveRepo() *fakeHiveRepo {
	return &fakeHiveRepo{hives: map[string]*models.Hive{}}
}

func (r *fakeHiveRepo) Create(ctx context.Context, h *models.Hive) error {
	if h.ID == "" {
		h.ID = nextID("hv")
	}
	h.CreatedAt = time.Now()
	r.hives[h.ID] = h
	return nil
}

func (r *fakeHiveRepo) Get(ctx context.Context, id string) (*models.Hive, error) {
	if h, ok := r.hives[id]; ok {
		cp := *h
		return &cp, nil
	}
	return nil, errors.NewNotFoundError("hive not found", nil)
}

func (r *fakeHiveRepo) Update(ctx context.Context, h *models.Hive) error {
	if _, ok := r.hives[h.ID]; !ok {
		return errors.NewNotFoundError("hive not found", nil)
	}
	r.hives[h.ID] = h
	return nil
}

func (r *fakeHiveRepo) Delete(ctx context.Context, id string, tx database.Transaction) error {
	if _, ok := r.hives[id]; !ok {
		return errors.NewNotFoundError("hive not found", nil)
	}
	delete(r.hives, id)
	return nil
}

func (r *fakeHiveRepo) ListByApiary(ctx context.Context, apiaryID string) ([]*models.Hive, error) {
	var out []*models.Hive
	for _, h := range r.hives {
		if h.ApiaryID == apiaryID {
			cp := *h
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeHiveRepo) ListSharedWithProfile(ctx context.Context, profileID string) ([]*models.Hive, error) {
	return nil, nil
}

func (r *fakeHiveRepo) CountByApiaryAndName(ctx context.Context, apiaryID, name, excludeID string) (int, error) {
	count := 0
	for _, h := range r.hives {
		if h.ApiaryID == apiaryID && strings.EqualFold(h.Name, name) && h.ID != excludeID {
			count++
		}
	}
	return count, nil
}

type fakeInspectionRepo struct {
	fakeBase
	inspections map[string]*models.Inspection
	hives       *fakeHiveRepo
}

func newFakeInspectionRepo(hives *fakeHiveRepo) *fakeInspectionRepo {
	return &fakeInspectionRepo{inspections: map[string]*models.Inspection{}, hives: hives}
}

func (r *fakeInspectionRepo) CreateWithHiveUpdate(ctx context.Context, insp *models.Inspection, hive *models.Hive) error {
	if _, ok := r.hives.hives[hive.ID]; !ok {
		return errors.NewNotFoundError("hive not found", nil)
	}
	if insp.ID == "" {
		insp.ID = nextID("insp")
	}
	r.inspections[insp.ID] = insp
	r.hives.hives[hive.ID] = hive
	return nil
}

func (r *fakeInspectionRepo) Get(ctx context.Context, id string) (*models.Inspection, error) {
	if insp, ok := r.inspections[id]; ok {
		return insp, nil
	}
	return nil, errors.NewNotFoundError("inspection not found", nil)
}

func (r *fakeInspectionRepo) ListByHive(ctx context.Context, filters models.InspectionFilters, offset, limit int) ([]*models.Inspection, error) {
	var out []*models.Inspection
	for _, insp := range r.inspections {
		if insp.HiveID != filters.HiveID {
			continue
		}
		if filters.Since != "" && insp.Date < filters.Since {
			continue
		}
		out = append(out, insp)
	}
	return out, nil
}

func (r *fakeInspectionRepo) DeleteByHive(ctx context.Context, hiveID string, tx database.Transaction) error {
	for id, insp := range r.inspections {
		if insp.HiveID == hiveID {
			delete(r.inspections, id)
		}
	}
	return nil
}

type fakeTaskRepo struct {
	fakeBase
	tasks    map[string]*models.Task
	apiaries *fakeApiaryRepo
}

func newFakeTaskRepo(apiaries *fakeApiaryRepo) *fakeTaskRepo {
	return &fakeTaskRepo{tasks: map[string]*models.Task{}, apiaries: apiaries}
}

func (r *fakeTaskRepo) Create(ctx context.Context, t *models.Task) error {
	if t.ID == "" {
		t.ID = nextID("task")
	}
	r.tasks[t.ID] = t
	return nil
}

func (r *fakeTaskRepo) Get(ctx context.Context, id string) (*models.Task, error) {
	if t, ok := r.tasks[id]; ok {
		return t, nil
	}
	return nil, errors.NewNotFoundError("task not found", nil)
}

func (r *fakeTaskRepo) Update(ctx context.Context, t *models.Task) error {
	r.tasks[t.ID] = t
	return nil
}

func (r *fakeTaskRepo) Delete(ctx context.Context, id string) error {
	delete(r.tasks, id)
	return nil
}

func (r *fakeTaskRepo) List(ctx context.Context, filters models.TaskFilters, offset, limit int) ([]*models.Task, error) {
	var out []*models.Task
	for _, t := range r.tasks {
		if filters.ApiaryID != "" && t.ApiaryID != filters.ApiaryID {
			continue
		}
		if filters.HiveID != "" && t.HiveID != filters.HiveID {
			continue
		}
		if filters.ProfileID != "" && !r.visibleTo(t, filters.ProfileID) {
			continue
		}
		out = append(out, t)
	}
	return out, nil
}

func (r *fakeTaskRepo) visibleTo(t *models.Task, profileID string) bool {
	if t.CreatorID == profileID {
		return true
	}
	if t.ApiaryID == "" {
		return false
	}
	for _, m := range r.apiaries.members {
		if m.ApiaryID == t.ApiaryID && m.ProfileID == profileID {
			return true
		}
	}
	return false
}

func (r *fakeTaskRepo) DeleteByHive(ctx context.Context, hiveID string, tx database.Transaction) error {
	for id, t := range r.tasks {
		if t.HiveID == hiveID {
			delete(r.tasks, id)
		}
	}
	return nil
}

type fakeHarvestRepo struct {
	fakeBase
	harvests map[string]*models.Harvest
}

func newFakeHarvestRepo() *fakeHarvestRepo {
	return &fakeHarvestRepo{harvests: map[string]*models.Harvest{}}
}

func (r *fakeHarvestRepo) Create(ctx context.Context, h *models.Harvest) error {
	if h.ID == "" {
		h.ID = nextID("hrv")
	}
	r.harvests[h.ID] = h
	return nil
}

func (r *fakeHarvestRepo) ListByHive(ctx context.Context, hiveID string) ([]*models.Harvest, error) {
	var out []*models.Harvest
	for _, h := range r.harvests {
		if h.HiveID == hiveID {
			out = append(out, h)
		}
	}
	return out, nil
}

func (r *fakeHarvestRepo) TotalKgSince(ctx context.Context, hiveID string, since time.Time) (float64, error) {
	var total float64
	for _, h := range r.harvests {
		if h.HiveID == hiveID {
			total += h.EstimatedKg
		}
	}
	return total, nil
}

func (r *fakeHarvestRepo) DeleteByHive(ctx context.Context, hiveID string, tx database.Transaction) error {
	for id, h := range r.harvests {
		if h.HiveID == hiveID {
			delete(r.harvests, id)
		}
	}
	return nil
}

type fakeSharingRepo struct {
	fakeBase
	codes  map[string]*models.SharingCode
	grants []*models.SharedAccess
}

func newFakeSharingRepo() *fakeSharingRepo {
	return &fakeSharingRepo{codes: map[string]*models.SharingCode{}}
}

func (r *fakeSharingRepo) CreateCode(ctx context.Context, code *models.SharingCode) error {
	if code.ID == "" {
		code.ID = nextID("shc")
	}
	code.IsActive = true
	code.CreatedAt = time.Now()
	r.codes[code.ID] = code
	return nil
}

func (r *fakeSharingRepo) GetActiveByCode(ctx context.Context, code string) (*models.SharingCode, error) {
	for _, c := range r.codes {
		if c.Code == code && c.IsActive {
			return c, nil
		}
	}
	return nil, errors.NewNotFoundError("sharing code not found", nil)
}

func (r *fakeSharingRepo) Redeem(ctx context.Context, code *models.SharingCode, grant *models.SharedAccess) error {
	stored, ok := r.codes[code.ID]
	if !ok || !stored.IsActive {
		return errors.NewNotFoundError("sharing code not found", nil)
	}
	if stored.IsExhausted() {
		return errors.NewExhaustedError("sharing code has reached its use limit")
	}
	stored.CurrentUses++
	if grant.ID == "" {
		grant.ID = nextID("sha")
	}
	grant.JoinedAt = time.Now()
	r.grants = append(r.grants, grant)
	return nil
}

func (r *fakeSharingRepo) GetGrant(ctx context.Context, profileID string, resourceType models.ResourceType, resourceID string) (*models.SharedAccess, error) {
	for _, g := range r.grants {
		if g.ProfileID == profileID && g.ResourceType == resourceType && g.ResourceID == resourceID {
			return g, nil
		}
	}
	return nil, errors.NewNotFoundError("no shared access grant", nil)
}

func (r *fakeSharingRepo) DeleteGrantsByResource(ctx context.Context, resourceType models.ResourceType, resourceID string, tx database.Transaction) error {
	kept := r.grants[:0]
	for _, g := range r.grants {
		if !(g.ResourceType == resourceType && g.ResourceID == resourceID) {
			kept = append(kept, g)
		}
	}
	r.grants = kept
	return nil
}

// newTestService wires a HubService over fresh fakes
func newTestService() (*HubService, *fakeApiaryRepo, *fakeHiveRepo, *fakeSharingRepo) {
	apiaries := newFakeApiaryRepo()
	hives := newFakeHiveRepo()
	sharing := newFakeSharingRepo()
	svc := New(
		newFakeProfileRepo(),
		apiaries,
		hives,
		newFakeInspectionRepo(hives),
		newFakeTaskRepo(apiaries),
		newFakeHarvestRepo(),
		sharing,
	)
	return svc, apiaries, hives, sharing
}
