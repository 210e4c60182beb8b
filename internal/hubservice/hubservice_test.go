// FilePath: internal/hubservice/hubservice_test.go
package hubservice

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/bkeeper/hub/internal/errors"
	"github.com/bkeeper/hub/internal/models"
)

func boolPtr(b bool) *bool        { return &b }
func floatPtr(f float64) *float64 { return &f }
func intPtr(i int) *int           { return &i }

func createApiary(t *testing.T, svc *HubService, name, ownerID string) *models.Apiary {
	t.Helper()
	apiary := &models.Apiary{Name: name}
	if err := svc.CreateApiary(context.Background(), apiary, ownerID); err != nil {
		t.Fatalf("CreateApiary: %v", err)
	}
	return apiary
}

func TestCreateApiarySetsOwnerAndInviteCode(t *testing.T) {
	svc, apiaries, _, _ := newTestService()
	ctx := context.Background()

	apiary := createApiary(t, svc, "Hemma", "prf_owner")
	if apiary.OwnerID != "prf_owner" {
		t.Errorf("owner = %q", apiary.OwnerID)
	}
	if len(apiary.InviteCode) != 8 {
		t.Errorf("invite code = %q, want 8 chars", apiary.InviteCode)
	}
	member, err := apiaries.GetMember(ctx, apiary.ID, "prf_owner")
	if err != nil {
		t.Fatalf("expected owner membership: %v", err)
	}
	if member.Role != models.RoleOwner {
		t.Errorf("role = %q, want owner", member.Role)
	}
}

func TestHiveCreateAuthorization(t *testing.T) {
	svc, apiaries, _, _ := newTestService()
	ctx := context.Background()
	apiary := createApiary(t, svc, "Hemma", "prf_owner")
	apiaries.AddMember(ctx, &models.ApiaryMember{ApiaryID: apiary.ID, ProfileID: "prf_member", Role: models.RoleMember})

	// Plain members may not create hives
	err := svc.CreateHive(ctx, &models.Hive{ApiaryID: apiary.ID, Name: "Kupa 1"}, "prf_member")
	if !errors.IsAuthorization(err) {
		t.Errorf("expected authorization_denied, got %v", err)
	}
	// Strangers may not either, and also get authorization_denied
	err = svc.CreateHive(ctx, &models.Hive{ApiaryID: apiary.ID, Name: "Kupa 1"}, "prf_stranger")
	if !errors.IsAuthorization(err) {
		t.Errorf("expected authorization_denied for stranger, got %v", err)
	}
	// The owner may
	if err := svc.CreateHive(ctx, &models.Hive{ApiaryID: apiary.ID, Name: "Kupa 1"}, "prf_owner"); err != nil {
		t.Fatalf("owner create: %v", err)
	}
}

func TestHiveNamesUniquePerApiary(t *testing.T) {
	svc, _, _, _ := newTestService()
	ctx := context.Background()
	apiary := createApiary(t, svc, "Hemma", "prf_owner")
	other := createApiary(t, svc, "Borta", "prf_owner")

	if err := svc.CreateHive(ctx, &models.Hive{ApiaryID: apiary.ID, Name: "Kupa Alpha"}, "prf_owner"); err != nil {
		t.Fatal(err)
	}
	err := svc.CreateHive(ctx, &models.Hive{ApiaryID: apiary.ID, Name: "kupa alpha"}, "prf_owner")
	if !errors.IsValidation(err) {
		t.Errorf("expected validation error for duplicate name, got %v", err)
	}
	// Same name in a different apiary is fine
	if err := svc.CreateHive(ctx, &models.Hive{ApiaryID: other.ID, Name: "Kupa Alpha"}, "prf_owner"); err != nil {
		t.Errorf("cross-apiary name should be allowed: %v", err)
	}
}

func TestNewHiveStartsInStatusNew(t *testing.T) {
	svc, _, _, _ := newTestService()
	ctx := context.Background()
	apiary := createApiary(t, svc, "Hemma", "prf_owner")

	hive := &models.Hive{ApiaryID: apiary.ID, Name: "Ny kupa", Status: models.HiveStatusExcellent}
	if err := svc.CreateHive(ctx, hive, "prf_owner"); err != nil {
		t.Fatal(err)
	}
	if hive.Status != models.HiveStatusNew {
		t.Errorf("status = %q, want new regardless of input", hive.Status)
	}
}

func TestCreateInspectionUpdatesHiveCache(t *testing.T) {
	svc, _, hives, _ := newTestService()
	ctx := context.Background()
	apiary := createApiary(t, svc, "Hemma", "prf_owner")
	hive := &models.Hive{ApiaryID: apiary.ID, Name: "Kupa 1"}
	if err := svc.CreateHive(ctx, hive, "prf_owner"); err != nil {
		t.Fatal(err)
	}

	insp := &models.Inspection{
		HiveID:      hive.ID,
		BroodFrames: 9,
		TotalFrames: 10,
		QueenSeen:   boolPtr(true),
		Temperament: models.TemperamentCalm,
		VarroaCount: floatPtr(10),
		VarroaDays:  floatPtr(7),
	}
	if err := svc.CreateInspection(ctx, insp, "prf_owner"); err != nil {
		t.Fatalf("CreateInspection: %v", err)
	}
	if insp.InspectorID != "prf_owner" {
		t.Errorf("inspector = %q", insp.InspectorID)
	}
	if insp.Rating == 0 {
		t.Error("expected a derived rating")
	}

	stored, _ := hives.Get(ctx, hive.ID)
	if stored.Status != models.HiveStatusExcellent {
		t.Errorf("cached status = %q, want excellent", stored.Status)
	}
	if stored.Frames != "9/10" {
		t.Errorf("cached frames = %q", stored.Frames)
	}
}

func TestCreateInspectionValidation(t *testing.T) {
	svc, _, _, _ := newTestService()
	ctx := context.Background()
	apiary := createApiary(t, svc, "Hemma", "prf_owner")
	hive := &models.Hive{ApiaryID: apiary.ID, Name: "Kupa 1"}
	if err := svc.CreateHive(ctx, hive, "prf_owner"); err != nil {
		t.Fatal(err)
	}

	err := svc.CreateInspection(ctx, &models.Inspection{HiveID: hive.ID, BroodFrames: 11, TotalFrames: 10}, "prf_owner")
	if !errors.IsValidation(err) {
		t.Errorf("expected validation error, got %v", err)
	}
	err = svc.CreateInspection(ctx, &models.Inspection{HiveID: "missing", BroodFrames: 5, TotalFrames: 10}, "prf_owner")
	if !errors.IsNotFound(err) {
		t.Errorf("expected not found, got %v", err)
	}
}

func TestSharingCodeLifecycle(t *testing.T) {
	svc, _, _, sharing := newTestService()
	ctx := context.Background()
	apiary := createApiary(t, svc, "Hemma", "prf_owner")

	code := &models.SharingCode{
		ResourceType: models.ResourceApiary,
		ResourceID:   apiary.ID,
		AccessLevel:  models.AccessMember,
	}
	// Non-owners may not share
	err := svc.CreateSharingCode(ctx, code, "prf_other")
	if !errors.IsAuthorization(err) {
		t.Fatalf("expected authorization_denied, got %v", err)
	}
	if err := svc.CreateSharingCode(ctx, code, "prf_owner"); err != nil {
		t.Fatalf("CreateSharingCode: %v", err)
	}
	if len(code.Code) != 8 {
		t.Errorf("code = %q, want 8 chars", code.Code)
	}

	// Redemption grants access and names the resource
	result, err := svc.RedeemSharingCode(ctx, code.Code, "prf_guest")
	if err != nil {
		t.Fatalf("RedeemSharingCode: %v", err)
	}
	if result.ResourceName != "Hemma" || result.AccessLevel != models.AccessMember {
		t.Errorf("unexpected result: %+v", result)
	}
	if _, err := sharing.GetGrant(ctx, "prf_guest", models.ResourceApiary, apiary.ID); err != nil {
		t.Errorf("expected a grant: %v", err)
	}

	// Second redemption by the same profile is idempotent: flagged, no
	// duplicate grant row
	_, err = svc.RedeemSharingCode(ctx, code.Code, "prf_guest")
	if !errors.IsAlreadyMember(err) {
		t.Errorf("expected already_member, got %v", err)
	}
	if len(sharing.grants) != 1 {
		t.Errorf("expected exactly 1 grant, got %d", len(sharing.grants))
	}
}

func TestRedeemUnknownCode(t *testing.T) {
	svc, _, _, _ := newTestService()
	_, err := svc.RedeemSharingCode(context.Background(), "nosuch00", "prf_guest")
	if !errors.IsNotFound(err) {
		t.Errorf("expected not_found, got %v", err)
	}
}

func TestRedeemExpiredCode(t *testing.T) {
	svc, _, _, sharing := newTestService()
	ctx := context.Background()
	apiary := createApiary(t, svc, "Hemma", "prf_owner")

	past := time.Now().Add(-time.Hour)
	code := &models.SharingCode{
		ResourceType: models.ResourceApiary,
		ResourceID:   apiary.ID,
		AccessLevel:  models.AccessMember,
		ExpiresAt:    &past,
	}
	if err := svc.CreateSharingCode(ctx, code, "prf_owner"); err != nil {
		t.Fatal(err)
	}

	_, err := svc.RedeemSharingCode(ctx, code.Code, "prf_guest")
	apiErr, ok := err.(*errors.APIError)
	if !ok || apiErr.Type != errors.ErrorTypeExpired {
		t.Errorf("expected expired, got %v", err)
	}
	if len(sharing.grants) != 0 {
		t.Error("expired redemption must not grant access")
	}
}

func TestRedeemExhaustedCode(t *testing.T) {
	svc, _, _, sharing := newTestService()
	ctx := context.Background()
	apiary := createApiary(t, svc, "Hemma", "prf_owner")

	code := &models.SharingCode{
		ResourceType: models.ResourceApiary,
		ResourceID:   apiary.ID,
		AccessLevel:  models.AccessMember,
		MaxUses:      intPtr(1),
	}
	if err := svc.CreateSharingCode(ctx, code, "prf_owner"); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.RedeemSharingCode(ctx, code.Code, "prf_first"); err != nil {
		t.Fatalf("first redemption: %v", err)
	}

	_, err := svc.RedeemSharingCode(ctx, code.Code, "prf_second")
	apiErr, ok := err.(*errors.APIError)
	if !ok || apiErr.Type != errors.ErrorTypeExhausted {
		t.Errorf("expected exhausted, got %v", err)
	}
	if len(sharing.grants) != 1 {
		t.Errorf("exhausted redemption must not grant access, got %d grants", len(sharing.grants))
	}
}

func TestRedeemAsExistingMember(t *testing.T) {
	svc, apiaries, _, sharing := newTestService()
	ctx := context.Background()
	apiary := createApiary(t, svc, "Hemma", "prf_owner")
	apiaries.AddMember(ctx, &models.ApiaryMember{ApiaryID: apiary.ID, ProfileID: "prf_member", Role: models.RoleMember})

	code := &models.SharingCode{
		ResourceType: models.ResourceApiary,
		ResourceID:   apiary.ID,
		AccessLevel:  models.AccessMember,
	}
	if err := svc.CreateSharingCode(ctx, code, "prf_owner"); err != nil {
		t.Fatal(err)
	}

	_, err := svc.RedeemSharingCode(ctx, code.Code, "prf_member")
	if !errors.IsAlreadyMember(err) {
		t.Errorf("expected already_member, got %v", err)
	}
	if len(sharing.grants) != 0 {
		t.Error("members must not get a redundant grant")
	}
}

func TestJoinApiaryByInviteCode(t *testing.T) {
	svc, apiaries, _, _ := newTestService()
	ctx := context.Background()
	apiary := createApiary(t, svc, "Hemma", "prf_owner")

	result, err := svc.JoinApiaryByInviteCode(ctx, apiary.InviteCode, "prf_new")
	if err != nil {
		t.Fatalf("JoinApiaryByInviteCode: %v", err)
	}
	if result.ResourceName != "Hemma" {
		t.Errorf("apiary name = %q", result.ResourceName)
	}
	member, err := apiaries.GetMember(ctx, apiary.ID, "prf_new")
	if err != nil {
		t.Fatalf("expected membership: %v", err)
	}
	if member.Role != models.RoleMember {
		t.Errorf("role = %q, want member", member.Role)
	}

	// Joining twice reports already_member
	if _, err := svc.JoinApiaryByInviteCode(ctx, apiary.InviteCode, "prf_new"); !errors.IsAlreadyMember(err) {
		t.Errorf("expected already_member, got %v", err)
	}
	// Garbage codes are not found
	if _, err := svc.JoinApiaryByInviteCode(ctx, "xxxxxxxx", "prf_new"); !errors.IsNotFound(err) {
		t.Errorf("expected not_found, got %v", err)
	}
}

func TestDeleteHiveAuthorizationAndCascade(t *testing.T) {
	svc, apiaries, hives, _ := newTestService()
	ctx := context.Background()
	apiary := createApiary(t, svc, "Hemma", "prf_owner")
	apiaries.AddMember(ctx, &models.ApiaryMember{ApiaryID: apiary.ID, ProfileID: "prf_member", Role: models.RoleMember})

	hive := &models.Hive{ApiaryID: apiary.ID, Name: "Kupa 1"}
	if err := svc.CreateHive(ctx, hive, "prf_owner"); err != nil {
		t.Fatal(err)
	}
	if err := svc.CreateInspection(ctx, &models.Inspection{HiveID: hive.ID, BroodFrames: 5, TotalFrames: 10}, "prf_member"); err != nil {
		t.Fatalf("member inspection should be allowed: %v", err)
	}

	// Members may inspect but not delete
	if err := svc.DeleteHive(ctx, hive.ID, "prf_member"); !errors.IsAuthorization(err) {
		t.Errorf("expected authorization_denied, got %v", err)
	}
	if err := svc.DeleteHive(ctx, hive.ID, "prf_owner"); err != nil {
		t.Fatalf("owner delete: %v", err)
	}
	if _, err := hives.Get(ctx, hive.ID); !errors.IsNotFound(err) {
		t.Error("hive should be gone")
	}
	if list, _ := svc.Inspections.ListByHive(ctx, models.InspectionFilters{HiveID: hive.ID}, 0, 50); len(list) != 0 {
		t.Errorf("expected cascaded inspections, got %d", len(list))
	}
}

func TestFormatInviteMessage(t *testing.T) {
	msg := FormatInviteMessage("Hemma", "abc123de")
	if !strings.Contains(msg, "Hemma") || !strings.Contains(msg, "abc123de") {
		t.Errorf("unexpected message: %q", msg)
	}
}

func TestRemoteCreateAssignsIdentifiers(t *testing.T) {
	svc, apiaries, _, _ := newTestService()
	ctx := context.Background()

	apiary := createApiary(t, svc, "Hemma", "prf_owner")
	if apiary.ID == "" {
		t.Fatal("apiary id not assigned on create")
	}
	member, err := apiaries.GetMember(ctx, apiary.ID, "prf_owner")
	if err != nil {
		t.Fatalf("owner membership: %v", err)
	}
	if member.ApiaryID != apiary.ID {
		t.Errorf("member references apiary %q, want %q", member.ApiaryID, apiary.ID)
	}

	hive := &models.Hive{ApiaryID: apiary.ID, Name: "Kupa 1"}
	if err := svc.CreateHive(ctx, hive, "prf_owner"); err != nil {
		t.Fatalf("CreateHive: %v", err)
	}
	if hive.ID == "" {
		t.Fatal("hive id not assigned on create")
	}

	insp := &models.Inspection{HiveID: hive.ID, BroodFrames: 5, TotalFrames: 10}
	if err := svc.CreateInspection(ctx, insp, "prf_owner"); err != nil {
		t.Fatalf("CreateInspection: %v", err)
	}
	task := &models.Task{Title: "Vinterfodra", ApiaryID: apiary.ID}
	if err := svc.CreateTask(ctx, task, "prf_owner"); err != nil {
		t.Fatalf("CreateTask: %v", err)
	}
	harvest := &models.Harvest{HiveID: hive.ID, HoneyFrames: 4}
	if err := svc.CreateHarvest(ctx, harvest, "prf_owner"); err != nil {
		t.Fatalf("CreateHarvest: %v", err)
	}

	seen := map[string]bool{}
	for _, id := range []string{apiary.ID, hive.ID, insp.ID, task.ID, harvest.ID} {
		if id == "" {
			t.Fatal("entity id not assigned on create")
		}
		if seen[id] {
			t.Errorf("duplicate id %q", id)
		}
		seen[id] = true
	}
}

func TestListTasksScopedToCallersApiaries(t *testing.T) {
	svc, _, _, _ := newTestService()
	ctx := context.Background()

	apiaryA := createApiary(t, svc, "A:s bigård", "prf_a")
	taskA := &models.Task{Title: "A:s uppgift", ApiaryID: apiaryA.ID}
	if err := svc.CreateTask(ctx, taskA, "prf_a"); err != nil {
		t.Fatalf("CreateTask: %v", err)
	}

	apiaryB := createApiary(t, svc, "B:s bigård", "prf_b")
	taskB := &models.Task{Title: "B:s uppgift", ApiaryID: apiaryB.ID}
	if err := svc.CreateTask(ctx, taskB, "prf_b"); err != nil {
		t.Fatalf("CreateTask: %v", err)
	}

	// An unfiltered listing only reaches the caller's own apiaries
	tasks, err := svc.ListTasks(ctx, models.TaskFilters{}, "prf_b", 0, 50)
	if err != nil {
		t.Fatalf("ListTasks: %v", err)
	}
	if len(tasks) != 1 || tasks[0].ID != taskB.ID {
		t.Errorf("expected only B's task, got %d tasks", len(tasks))
	}

	// A hive filter requires access to that hive
	hiveA := &models.Hive{ApiaryID: apiaryA.ID, Name: "Kupa A"}
	if err := svc.CreateHive(ctx, hiveA, "prf_a"); err != nil {
		t.Fatalf("CreateHive: %v", err)
	}
	_, err = svc.ListTasks(ctx, models.TaskFilters{HiveID: hiveA.ID}, "prf_b", 0, 50)
	if !errors.IsAuthorization(err) {
		t.Errorf("expected authorization_denied for foreign hive filter, got %v", err)
	}

	// An apiary filter still requires membership
	_, err = svc.ListTasks(ctx, models.TaskFilters{ApiaryID: apiaryA.ID}, "prf_b", 0, 50)
	if !errors.IsAuthorization(err) {
		t.Errorf("expected authorization_denied for foreign apiary filter, got %v", err)
	}
}

func TestCompleteTaskPersonalTaskCreatorOnly(t *testing.T) {
	svc, _, _, _ := newTestService()
	ctx := context.Background()

	task := &models.Task{Title: "Beställ ramar"}
	if err := svc.CreateTask(ctx, task, "prf_creator"); err != nil {
		t.Fatalf("CreateTask: %v", err)
	}

	if _, err := svc.CompleteTask(ctx, task.ID, "prf_stranger"); !errors.IsAuthorization(err) {
		t.Errorf("expected authorization_denied for stranger, got %v", err)
	}

	done, err := svc.CompleteTask(ctx, task.ID, "prf_creator")
	if err != nil {
		t.Fatalf("CompleteTask: %v", err)
	}
	if !done.Completed || done.CompletedAt == nil {
		t.Error("task not marked completed")
	}
}

func TestListInspectionsSinceFilter(t *testing.T) {
	svc, _, _, _ := newTestService()
	ctx := context.Background()

	apiary := createApiary(t, svc, "Hemma", "prf_owner")
	hive := &models.Hive{ApiaryID: apiary.ID, Name: "Kupa 1"}
	if err := svc.CreateHive(ctx, hive, "prf_owner"); err != nil {
		t.Fatalf("CreateHive: %v", err)
	}
	old := &models.Inspection{HiveID: hive.ID, BroodFrames: 5, TotalFrames: 10, Date: "2026-04-01"}
	if err := svc.CreateInspection(ctx, old, "prf_owner"); err != nil {
		t.Fatalf("CreateInspection: %v", err)
	}
	recent := &models.Inspection{HiveID: hive.ID, BroodFrames: 6, TotalFrames: 10, Date: "2026-07-15"}
	if err := svc.CreateInspection(ctx, recent, "prf_owner"); err != nil {
		t.Fatalf("CreateInspection: %v", err)
	}

	all, err := svc.ListInspections(ctx, models.InspectionFilters{HiveID: hive.ID}, "prf_owner", 0, 50)
	if err != nil {
		t.Fatalf("ListInspections: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("expected 2 inspections, got %d", len(all))
	}

	since, err := svc.ListInspections(ctx, models.InspectionFilters{HiveID: hive.ID, Since: "2026-06-01"}, "prf_owner", 0, 50)
	if err != nil {
		t.Fatalf("ListInspections: %v", err)
	}
	if len(since) != 1 || since[0].ID != recent.ID {
		t.Errorf("expected only the recent inspection, got %d", len(since))
	}
}
