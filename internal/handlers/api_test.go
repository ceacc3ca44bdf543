package handlers

import (
	"net/http"
	"testing"
	"time"

	"github.com/nuevas-energias/hrcore/internal/database"
	"github.com/nuevas-energias/hrcore/internal/services"
	"github.com/nuevas-energias/hrcore/internal/testhelpers"
	"gorm.io/gorm"
)

// apiFixture wires a full APIHandler against an in-memory database and
// registers its routes on a mux, so tests exercise the same routing
// the server uses.
type apiFixture struct {
	db       *gorm.DB
	mux      *http.ServeMux
	incident *services.IncidentService

	admin    *database.User // admin with an employee profile
	adminEmp *database.Employee
	worker   *database.User // employee account with a profile
	workEmp  *database.Employee
	orphan   *database.User // employee account without a profile
	itype    *database.IncidentType
}

func newAPIFixture(t *testing.T) *apiFixture {
	t.Helper()
	db := testhelpers.OpenTestDB(t)
	// The incident type catalog handlers read the package-level
	// connection.
	database.DB = db

	admin := testhelpers.NewUserBuilder().AsAdmin().Create(t, db)
	adminEmp := testhelpers.NewEmployeeBuilder().WithName("Carla", "Mendoza").WithUser(admin).Create(t, db)
	worker := testhelpers.NewUserBuilder().Create(t, db)
	workEmp := testhelpers.NewEmployeeBuilder().WithUser(worker).Create(t, db)
	orphan := testhelpers.NewUserBuilder().Create(t, db)
	itype := testhelpers.NewIncidentTypeBuilder().Create(t, db)

	notifier := services.NewNotificationService(db, "")
	incident := services.NewIncidentService(db, notifier)
	handler := NewAPIHandler(
		incident,
		services.NewStatementService(db),
		services.NewEmployeeService(db),
		notifier,
	)

	mux := http.NewServeMux()
	handler.SetupRoutes(mux)

	return &apiFixture{
		db:       db,
		mux:      mux,
		incident: incident,
		admin:    admin,
		adminEmp: adminEmp,
		worker:   worker,
		workEmp:  workEmp,
		orphan:   orphan,
		itype:    itype,
	}
}

// createGroup creates a group for the given employees through the
// service layer, acting as the fixture admin.
func (f *apiFixture) createGroup(t *testing.T, employees ...*database.Employee) *services.GroupSummary {
	t.Helper()
	ids := make([]uint, 0, len(employees))
	for _, e := range employees {
		ids = append(ids, e.ID)
	}
	summary, err := f.incident.CreateGroup(services.CreateGroupInput{
		IncidentTypeID: f.itype.ID,
		EmployeeIDs:    ids,
		OccurrenceDate: time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC),
		Description:    "Llegada tarde",
	}, f.admin.ID)
	if err != nil {
		t.Fatalf("createGroup failed: %v", err)
	}
	return summary
}

func (f *apiFixture) groupRequest() map[string]any {
	return map[string]any{
		"incident_type_id": f.itype.ID,
		"employee_ids":     []uint{f.workEmp.ID},
		"occurrence_date":  "2025-06-15",
		"description":      "Llegada tarde",
	}
}
