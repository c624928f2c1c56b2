package models_test

import (
	"context"
	"os"
	"testing"
	"time"

	"contentfield/models"
)

// setupFieldDB opens a clean field store for one test
func setupFieldDB(t *testing.T, path string) func() {
	t.Helper()

	if err := models.InitTestDB(path); err != nil {
		t.Fatalf("failed to initialize test database: %v", err)
	}

	return func() {
		models.CloseDB()
		os.Remove(path)
		os.Remove(path + ".wal")
		os.Remove(path + ".lock")
	}
}

func TestFieldValuePersistence(t *testing.T) {
	cleanup := setupFieldDB(t, "./test_field_store.ddb")
	defer cleanup()

	got, err := models.GetFieldValue("entry-1")
	if err != nil {
		t.Fatalf("GetFieldValue failed: %v", err)
	}
	if got != nil {
		t.Fatalf("expected no value for a fresh entry, got %+v", got)
	}

	first := models.FieldValue{Type: models.ContentTypeMerchant, ID: "42", Name: "Acme"}
	if err := models.SaveFieldValue("entry-1", first); err != nil {
		t.Fatalf("SaveFieldValue failed: %v", err)
	}

	second := models.FieldValue{Type: models.ContentTypeBrand, ID: "b7", Name: "Samsung"}
	if err := models.SaveFieldValue("entry-1", second); err != nil {
		t.Fatalf("SaveFieldValue failed: %v", err)
	}

	got, err = models.GetFieldValue("entry-1")
	if err != nil {
		t.Fatalf("GetFieldValue failed: %v", err)
	}
	if got == nil || *got != second {
		t.Errorf("expected the second value to replace the first, got %+v", got)
	}

	other, err := models.GetFieldValue("entry-2")
	if err != nil {
		t.Fatalf("GetFieldValue failed: %v", err)
	}
	if other != nil {
		t.Errorf("entries must not share values, got %+v", other)
	}
}

func TestSaveFieldValueRejectsPartial(t *testing.T) {
	cleanup := setupFieldDB(t, "./test_field_partial.ddb")
	defer cleanup()

	if err := models.SaveFieldValue("entry-1", models.FieldValue{Type: models.ContentTypeBrand, ID: "b7"}); err == nil {
		t.Error("expected value without a name to be rejected")
	}
	if err := models.SaveFieldValue("", models.FieldValue{Type: models.ContentTypeBrand, ID: "b7", Name: "Samsung"}); err == nil {
		t.Error("expected empty entry id to be rejected")
	}

	got, err := models.GetFieldValue("entry-1")
	if err != nil {
		t.Fatalf("GetFieldValue failed: %v", err)
	}
	if got != nil {
		t.Errorf("rejected value must not be stored, got %+v", got)
	}
}

func TestFieldValueSurvivesReopen(t *testing.T) {
	path := "./test_field_reopen.ddb"
	cleanup := setupFieldDB(t, path)
	defer cleanup()

	value := models.FieldValue{Type: models.ContentTypeSubcategory, ID: "/e/phones", Name: "Electronics - Phones"}
	if err := models.SaveFieldValue("entry-9", value); err != nil {
		t.Fatalf("SaveFieldValue failed: %v", err)
	}

	models.CloseDB()
	if err := models.InitDB(path); err != nil {
		t.Fatalf("reopen failed: %v", err)
	}

	got, err := models.GetFieldValue("entry-9")
	if err != nil {
		t.Fatalf("GetFieldValue failed: %v", err)
	}
	if got == nil || *got != value {
		t.Errorf("expected %+v after reopen, got %+v", value, got)
	}
}

func TestSessionRegistryCommitsThroughEntryStore(t *testing.T) {
	cleanup := setupFieldDB(t, "./test_field_session.ddb")
	defer cleanup()

	fetcher := newFakeFetcher()
	fetcher.results["acm"] = []models.Suggestion{{ID: "42", Name: "Acme"}}
	registry := models.NewSessionRegistry(fetcher, models.EntryFieldStore, time.Hour)

	session := registry.Open("entry-7")
	if session.Height() != 250 {
		t.Errorf("expected mount height 250, got %d", session.Height())
	}

	found, ok := registry.Get(session.ID)
	if !ok || found != session {
		t.Fatal("expected to find the opened session")
	}

	ctrl := session.Controller
	ctrl.ChangeContentType(models.ContentTypeMerchant)
	ctrl.Search(context.Background(), "acm")
	if session.Height() != 450 {
		t.Errorf("expected searching height 450, got %d", session.Height())
	}
	ctrl.Select(ctrl.State().Suggestions[0])

	stored, err := models.GetFieldValue("entry-7")
	if err != nil {
		t.Fatalf("GetFieldValue failed: %v", err)
	}
	want := models.FieldValue{Type: models.ContentTypeMerchant, ID: "42", Name: "Acme"}
	if stored == nil || *stored != want {
		t.Errorf("expected %+v stored, got %+v", want, stored)
	}

	// A new session on the same entry mounts the committed value
	reopened := registry.Open("entry-7")
	state := reopened.Controller.State()
	if state.ContentType != models.ContentTypeMerchant || state.Selected == nil || state.Selected.ID != "42" {
		t.Errorf("unexpected hydrated state %+v", state)
	}

	registry.Close(session.ID)
	if _, ok := registry.Get(session.ID); ok {
		t.Error("closed session should be gone")
	}
	if registry.Len() != 1 {
		t.Errorf("expected 1 live session, got %d", registry.Len())
	}
}
