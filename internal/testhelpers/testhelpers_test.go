package testhelpers

import (
	"net/http"
	"testing"

	"github.com/nuevas-energias/hrcore/internal/database"
	"github.com/nuevas-energias/hrcore/internal/middleware"
)

func TestOpenTestDB_Isolated(t *testing.T) {
	db1 := OpenTestDB(t)
	db2 := OpenTestDB(t)

	NewUserBuilder().WithUsername("solo").Create(t, db1)

	var count int64
	if err := db2.Model(&database.User{}).Count(&count).Error; err != nil {
		t.Fatalf("count failed: %v", err)
	}
	if count != 0 {
		t.Errorf("expected isolated databases, found %d users in second db", count)
	}
}

func TestUserBuilder_Defaults(t *testing.T) {
	db := OpenTestDB(t)

	user := NewUserBuilder().Create(t, db)
	if user.ID == 0 {
		t.Error("expected user to be persisted with an id")
	}
	if user.Role != database.RoleEmployee {
		t.Errorf("expected default role employee, got %s", user.Role)
	}
	if !user.Active {
		t.Error("expected default user to be active")
	}

	admin := NewUserBuilder().AsAdmin().Create(t, db)
	if !admin.IsAdmin() {
		t.Error("expected AsAdmin to produce an admin user")
	}
}

func TestEmployeeBuilder_UniqueDNI(t *testing.T) {
	db := OpenTestDB(t)

	a := NewEmployeeBuilder().Create(t, db)
	b := NewEmployeeBuilder().Create(t, db)

	if a.DNI == b.DNI {
		t.Errorf("expected distinct DNIs, both are %s", a.DNI)
	}
}

func TestEmployeeBuilder_WithUser(t *testing.T) {
	db := OpenTestDB(t)

	user := NewUserBuilder().Create(t, db)
	employee := NewEmployeeBuilder().WithUser(user).Create(t, db)

	if employee.UserID == nil || *employee.UserID != user.ID {
		t.Error("expected employee to be linked to the user")
	}
}

func TestHTTPTestContext_WithPrincipal(t *testing.T) {
	db := OpenTestDB(t)
	user := NewUserBuilder().AsAdmin().Create(t, db)

	var got middleware.Principal
	var found bool
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got, found = middleware.GetPrincipal(r.Context())
		w.WriteHeader(http.StatusOK)
	})

	NewHTTPTestContext(t, http.MethodGet, "/api/test", nil).
		WithPrincipal(user).
		ExecuteFunc(handler).
		AssertStatus(http.StatusOK)

	if !found {
		t.Fatal("expected principal in context")
	}
	if got.UserID != user.ID || !got.IsAdmin() {
		t.Errorf("unexpected principal: %+v", got)
	}
}

func TestHTTPTestContext_WithJSONBody(t *testing.T) {
	payload := map[string]string{"key": "value"}

	ctx := NewHTTPTestContext(t, http.MethodPost, "/api/test", nil).WithJSONBody(payload)

	if ct := ctx.Request.Header.Get("Content-Type"); ct != "application/json" {
		t.Errorf("expected Content-Type application/json, got %s", ct)
	}
}
