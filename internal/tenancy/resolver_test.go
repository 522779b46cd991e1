package tenancy

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func uintPtr(v uint) *uint { return &v }

func TestResolveAdministrator(t *testing.T) {
	admin := Claims{StaffID: 1, Role: RoleAdministrator}

	scope, err := Resolve(admin, 7)
	require.NoError(t, err)
	require.Equal(t, uint(7), scope.SchoolID)
	require.False(t, scope.EmptyListing)

	scope, err = Resolve(admin, 0)
	require.NoError(t, err)
	require.True(t, scope.EmptyListing)

	_, err = ResolveWrite(admin, 0)
	require.ErrorIs(t, err, ErrNoViewingSchool)

	scope, err = ResolveWrite(admin, 3)
	require.NoError(t, err)
	require.Equal(t, uint(3), scope.SchoolID)
}

func TestResolveNonAdminIgnoresRequestedSchoolOnReads(t *testing.T) {
	for _, role := range []Role{RoleSupervisor, RoleTeacher} {
		claims := Claims{StaffID: 2, Role: role, SchoolID: uintPtr(5)}

		scope, err := Resolve(claims, 9)
		require.NoError(t, err)
		require.Equal(t, uint(5), scope.SchoolID, "role %s must always operate on its home school", role)

		scope, err = Resolve(claims, 0)
		require.NoError(t, err)
		require.Equal(t, uint(5), scope.SchoolID)
	}
}

func TestResolveWriteRejectsSchoolSpoofing(t *testing.T) {
	claims := Claims{StaffID: 2, Role: RoleSupervisor, SchoolID: uintPtr(5)}

	_, err := ResolveWrite(claims, 9)
	require.ErrorIs(t, err, ErrSchoolMismatch)

	scope, err := ResolveWrite(claims, 5)
	require.NoError(t, err)
	require.Equal(t, uint(5), scope.SchoolID)

	scope, err = ResolveWrite(claims, 0)
	require.NoError(t, err)
	require.Equal(t, uint(5), scope.SchoolID)
}

func TestResolveWithoutHomeSchool(t *testing.T) {
	claims := Claims{StaffID: 3, Role: RoleTeacher}

	_, err := Resolve(claims, 4)
	require.ErrorIs(t, err, ErrNoSchool)

	_, err = ResolveWrite(claims, 4)
	require.ErrorIs(t, err, ErrNoSchool)
}
