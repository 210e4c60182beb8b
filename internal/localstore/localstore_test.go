// FilePath: internal/localstore/localstore_test.go
package localstore

import (
	"path/filepath"
	"testing"

	"github.com/bkeeper/hub/internal/errors"
	"github.com/bkeeper/hub/internal/models"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "bkeeper.db"))
	if err != nil {
		t.Fatalf("failed to open store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func boolPtr(b bool) *bool       { return &b }
func floatPtr(f float64) *float64 { return &f }

func TestFirstRunSeedsExampleHives(t *testing.T) {
	s := openTestStore(t)
	hives, err := s.Hives()
	if err != nil {
		t.Fatalf("Hives: %v", err)
	}
	if len(hives) != 3 {
		t.Fatalf("expected 3 seeded hives, got %d", len(hives))
	}
	names := map[string]bool{}
	for _, h := range hives {
		names[h.Name] = true
		if h.ID == "" {
			t.Errorf("seeded hive %s has no id", h.Name)
		}
		if h.ApiaryID != models.LocalApiaryID {
			t.Errorf("seeded hive %s apiary = %q", h.Name, h.ApiaryID)
		}
	}
	for _, want := range []string{"Kupa Alpha", "Kupa Beta", "Kupa Gamma"} {
		if !names[want] {
			t.Errorf("missing seeded hive %q", want)
		}
	}
}

func TestSeedingIsIdempotent(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bkeeper.db")

	s, err := Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if err := s.AddHive(&models.Hive{Name: "Min egen kupa"}); err != nil {
		t.Fatalf("AddHive: %v", err)
	}
	s.Close()

	// Reopen: user data survives and examples are not re-seeded
	s, err = Open(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer s.Close()
	hives, err := s.Hives()
	if err != nil {
		t.Fatalf("Hives: %v", err)
	}
	if len(hives) != 4 {
		t.Fatalf("expected 4 hives after reopen, got %d", len(hives))
	}
}

func TestAddHiveRoundTrip(t *testing.T) {
	s := openTestStore(t)
	hive := &models.Hive{Name: "Testkupa", Location: "Trädgården", IsNucleus: true}
	if err := s.AddHive(hive); err != nil {
		t.Fatalf("AddHive: %v", err)
	}
	if hive.ID == "" {
		t.Fatal("expected an assigned id")
	}
	if hive.Status != models.HiveStatusNew {
		t.Errorf("new hive status = %q, want %q", hive.Status, models.HiveStatusNew)
	}

	got, err := s.GetHive(hive.ID)
	if err != nil {
		t.Fatalf("GetHive: %v", err)
	}
	if got.Name != "Testkupa" || got.Location != "Trädgården" || !got.IsNucleus {
		t.Errorf("round-trip mismatch: %+v", got)
	}
}

func TestAddHiveRejectsDuplicateNames(t *testing.T) {
	s := openTestStore(t)
	err := s.AddHive(&models.Hive{Name: "kupa alpha"}) // case-insensitive clash with seed
	if err == nil || !errors.IsValidation(err) {
		t.Errorf("expected validation error, got %v", err)
	}
}

func TestRenameKeepsInspections(t *testing.T) {
	s := openTestStore(t)
	hive := &models.Hive{Name: "Byt namn på mig"}
	if err := s.AddHive(hive); err != nil {
		t.Fatalf("AddHive: %v", err)
	}
	if err := s.AddInspection(&models.Inspection{
		HiveID: hive.ID, BroodFrames: 6, TotalFrames: 10,
	}); err != nil {
		t.Fatalf("AddInspection: %v", err)
	}

	hive.Name = "Nytt namn"
	if err := s.UpdateHive(hive); err != nil {
		t.Fatalf("UpdateHive: %v", err)
	}

	// Inspections reference the hive id, so the rename loses nothing
	inspections, err := s.InspectionsForHive(hive.ID)
	if err != nil {
		t.Fatalf("InspectionsForHive: %v", err)
	}
	if len(inspections) != 1 {
		t.Fatalf("expected 1 inspection after rename, got %d", len(inspections))
	}
}

func TestDeleteHiveCascadesExactly(t *testing.T) {
	s := openTestStore(t)
	doomed := &models.Hive{Name: "Doomed"}
	kept := &models.Hive{Name: "Kept"}
	if err := s.AddHive(doomed); err != nil {
		t.Fatal(err)
	}
	if err := s.AddHive(kept); err != nil {
		t.Fatal(err)
	}
	for _, hiveID := range []string{doomed.ID, doomed.ID, kept.ID} {
		if err := s.AddInspection(&models.Inspection{
			HiveID: hiveID, BroodFrames: 5, TotalFrames: 10,
		}); err != nil {
			t.Fatal(err)
		}
	}

	if err := s.DeleteHive(doomed.ID); err != nil {
		t.Fatalf("DeleteHive: %v", err)
	}

	if _, err := s.GetHive(doomed.ID); !errors.IsNotFound(err) {
		t.Errorf("expected hive gone, got %v", err)
	}
	all, err := s.Inspections()
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 1 || all[0].HiveID != kept.ID {
		t.Errorf("cascade removed the wrong inspections: %+v", all)
	}
}

func TestAddInspectionUpdatesHiveCache(t *testing.T) {
	s := openTestStore(t)
	hive := &models.Hive{Name: "Inspektera mig"}
	if err := s.AddHive(hive); err != nil {
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
	if err := s.AddInspection(insp); err != nil {
		t.Fatalf("AddInspection: %v", err)
	}
	if insp.ID == "" || insp.Date == "" {
		t.Error("expected id and date to be filled")
	}
	if insp.Rating == 0 {
		t.Error("expected a derived rating")
	}

	got, err := s.GetHive(hive.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.Status != models.HiveStatusExcellent {
		t.Errorf("cached status = %q, want %q", got.Status, models.HiveStatusExcellent)
	}
	if got.Population != "Stark" {
		t.Errorf("cached population = %q, want Stark", got.Population)
	}
	if got.Frames != "9/10" {
		t.Errorf("cached frames = %q, want 9/10", got.Frames)
	}
	if got.Varroa != "1.4/dag" {
		t.Errorf("cached varroa = %q, want 1.4/dag", got.Varroa)
	}
	if got.LastInspection != insp.Date {
		t.Errorf("cached last inspection = %q, want %q", got.LastInspection, insp.Date)
	}
}

func TestAddInspectionValidation(t *testing.T) {
	s := openTestStore(t)
	hive := &models.Hive{Name: "Validera"}
	if err := s.AddHive(hive); err != nil {
		t.Fatal(err)
	}

	// Brood above total can never be saved
	err := s.AddInspection(&models.Inspection{HiveID: hive.ID, BroodFrames: 11, TotalFrames: 10})
	if err == nil || !errors.IsValidation(err) {
		t.Errorf("expected validation error, got %v", err)
	}
	// Unknown hive reference is rejected before anything is written
	err = s.AddInspection(&models.Inspection{HiveID: "nope", BroodFrames: 5, TotalFrames: 10})
	if !errors.IsNotFound(err) {
		t.Errorf("expected not found, got %v", err)
	}
	// A failed save leaves the inspection log untouched
	all, _ := s.Inspections()
	if len(all) != 0 {
		t.Errorf("expected no inspections after failed saves, got %d", len(all))
	}
}

func TestTasksAndHarvests(t *testing.T) {
	s := openTestStore(t)
	hive := &models.Hive{Name: "Skattkupa"}
	if err := s.AddHive(hive); err != nil {
		t.Fatal(err)
	}

	task := &models.Task{Title: "Byt botten"}
	if err := s.AddTask(task); err != nil {
		t.Fatalf("AddTask: %v", err)
	}
	if task.Priority != models.TaskPriorityMedium {
		t.Errorf("default priority = %q, want medium", task.Priority)
	}
	if err := s.CompleteTask(task.ID); err != nil {
		t.Fatalf("CompleteTask: %v", err)
	}
	tasks, _ := s.Tasks()
	if len(tasks) != 1 || !tasks[0].Completed || tasks[0].CompletedAt == nil {
		t.Errorf("task not completed: %+v", tasks)
	}

	harvest := &models.Harvest{HiveID: hive.ID, HoneyFrames: 6}
	if err := s.AddHarvest(harvest); err != nil {
		t.Fatalf("AddHarvest: %v", err)
	}
	if harvest.EstimatedKg != 12 {
		t.Errorf("estimated kg = %v, want 12", harvest.EstimatedKg)
	}
	if err := s.AddHarvest(&models.Harvest{HiveID: "nope", HoneyFrames: 2}); !errors.IsNotFound(err) {
		t.Error("expected not found for unknown hive")
	}
}
