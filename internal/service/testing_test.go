package service

import (
	"context"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/escolalab/escolar-api/internal/tenancy"
)

func testLogger() zerolog.Logger {
	return zerolog.Nop()
}

func testValidator() *validator.Validate {
	return validator.New(validator.WithRequiredStructEnabled())
}

// fakeAudit collects audit entries for assertions.
type fakeAudit struct {
	entries []AuditEntry
}

func (f *fakeAudit) Record(_ context.Context, entry AuditEntry) {
	f.entries = append(f.entries, entry)
}

// schoolIDLookup builds a SchoolIDOf-shaped function over a fixed table.
func schoolIDLookup(table map[uint]uint) func(context.Context, uint) (uint, error) {
	return func(_ context.Context, id uint) (uint, error) {
		school, ok := table[id]
		if !ok {
			return 0, gorm.ErrRecordNotFound
		}
		return school, nil
	}
}

func teacherClaims(staffID, schoolID uint) tenancy.Claims {
	return tenancy.Claims{StaffID: staffID, Name: "Teacher", Role: tenancy.RoleTeacher, SchoolID: &schoolID}
}

func supervisorClaims(staffID, schoolID uint) tenancy.Claims {
	return tenancy.Claims{StaffID: staffID, Name: "Supervisor", Role: tenancy.RoleSupervisor, SchoolID: &schoolID}
}

func adminClaims(staffID uint) tenancy.Claims {
	return tenancy.Claims{StaffID: staffID, Name: "Admin", Role: tenancy.RoleAdministrator}
}
