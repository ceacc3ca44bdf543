package api

import "github.com/nuevas-energias/hrcore/internal/database"

// EmployeeToListItem converts a database Employee to its compact list
// representation.
func EmployeeToListItem(e database.Employee) EmployeeListItem {
	return EmployeeListItem{
		ID:        e.ID,
		FirstName: e.FirstName,
		LastName:  e.LastName,
		DNI:       e.DNI,
		Email:     e.Email,
		Status:    e.Status,
	}
}

// EmployeesToListItems converts a slice of database Employees to list items.
func EmployeesToListItems(employees []database.Employee) []EmployeeListItem {
	items := make([]EmployeeListItem, len(employees))
	for i, e := range employees {
		items[i] = EmployeeToListItem(e)
	}
	return items
}
