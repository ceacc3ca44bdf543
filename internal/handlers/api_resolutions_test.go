package handlers

import (
	"net/http"
	"testing"

	"github.com/nuevas-energias/hrcore/internal/database"
	"github.com/nuevas-energias/hrcore/internal/testhelpers"
)

func TestCreateResolution_ClosesGroup(t *testing.T) {
	f := newAPIFixture(t)
	group := f.createGroup(t, f.workEmp)

	body := map[string]string{"group_id": group.GroupID, "description": "Amonestación escrita"}
	var resolution database.Resolution
	testhelpers.NewHTTPTestContext(t, "POST", "/api/resolutions", nil).
		WithJSONBody(body).
		WithPrincipal(f.admin).
		Execute(f.mux).
		AssertStatus(http.StatusCreated).
		DecodeJSON(&resolution)

	if resolution.GroupID != group.GroupID {
		t.Errorf("resolution group = %s, want %s", resolution.GroupID, group.GroupID)
	}

	var records []database.IncidentRecord
	f.db.Where("group_id = ?", group.GroupID).Find(&records)
	for _, record := range records {
		if record.State != database.IncidentStateClosed {
			t.Errorf("record %d should be CLOSED after resolution", record.ID)
		}
	}
}

func TestCreateResolution_DuplicateConflicts(t *testing.T) {
	f := newAPIFixture(t)
	group := f.createGroup(t, f.workEmp)

	body := map[string]string{"group_id": group.GroupID, "description": "Primera"}
	testhelpers.NewHTTPTestContext(t, "POST", "/api/resolutions", nil).
		WithJSONBody(body).
		WithPrincipal(f.admin).
		Execute(f.mux).
		AssertStatus(http.StatusCreated)

	body["description"] = "Segunda"
	testhelpers.NewHTTPTestContext(t, "POST", "/api/resolutions", nil).
		WithJSONBody(body).
		WithPrincipal(f.admin).
		Execute(f.mux).
		AssertStatus(http.StatusConflict).
		AssertBodyContains("already has a resolution")
}

func TestCreateResolution_RequiresAdmin(t *testing.T) {
	f := newAPIFixture(t)
	group := f.createGroup(t, f.workEmp)

	body := map[string]string{"group_id": group.GroupID, "description": "Intento"}
	testhelpers.NewHTTPTestContext(t, "POST", "/api/resolutions", nil).
		WithJSONBody(body).
		WithPrincipal(f.worker).
		Execute(f.mux).
		AssertStatus(http.StatusForbidden)
}

func TestCreateResolution_Validation(t *testing.T) {
	f := newAPIFixture(t)

	// group_id must be a UUID.
	body := map[string]string{"group_id": "not-a-uuid", "description": "x"}
	testhelpers.NewHTTPTestContext(t, "POST", "/api/resolutions", nil).
		WithJSONBody(body).
		WithPrincipal(f.admin).
		Execute(f.mux).
		AssertStatus(http.StatusUnprocessableEntity).
		AssertBodyContains("group_id")

	body = map[string]string{"group_id": "7f4d37e7-4f1c-4b7e-9a9a-2b9d6f3c1a00", "description": "x"}
	testhelpers.NewHTTPTestContext(t, "POST", "/api/resolutions", nil).
		WithJSONBody(body).
		WithPrincipal(f.admin).
		Execute(f.mux).
		AssertStatus(http.StatusNotFound)
}
