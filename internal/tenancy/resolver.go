package tenancy

import "errors"

// Resolution failures. ErrNoSchool and ErrSchoolMismatch surface as Forbidden;
// ErrNoViewingSchool rejects administrator writes issued without selecting a
// school to operate on.
var (
	ErrNoSchool        = errors.New("actor has no school association")
	ErrNoViewingSchool = errors.New("no viewing school selected")
	ErrSchoolMismatch  = errors.New("requested school does not match actor school")
)

// Scope is the resolved operating tenant for a request. EmptyListing marks
// the administrator-without-viewing-school case: list operations must return
// an empty result set instead of an error.
type Scope struct {
	SchoolID     uint
	EmptyListing bool
}

// Resolve computes the operating school for a read. Administrators operate on
// the requested school when one is supplied and otherwise get the
// empty-listing scope. Everyone else operates on their home school; a
// requested school is ignored for reads.
func Resolve(claims Claims, requestedSchool uint) (Scope, error) {
	if claims.Role == RoleAdministrator {
		if requestedSchool != 0 {
			return Scope{SchoolID: requestedSchool}, nil
		}
		return Scope{EmptyListing: true}, nil
	}

	home := claims.HomeSchool()
	if home == 0 {
		return Scope{}, ErrNoSchool
	}
	return Scope{SchoolID: home}, nil
}

// ResolveWrite computes the operating school for a mutation. On top of the
// read rules, an administrator must have selected a school, and a non-admin
// supplying a school that disagrees with their home school is rejected so a
// forged tenant field can never redirect a write.
func ResolveWrite(claims Claims, requestedSchool uint) (Scope, error) {
	if claims.Role == RoleAdministrator {
		if requestedSchool == 0 {
			return Scope{}, ErrNoViewingSchool
		}
		return Scope{SchoolID: requestedSchool}, nil
	}

	home := claims.HomeSchool()
	if home == 0 {
		return Scope{}, ErrNoSchool
	}
	if requestedSchool != 0 && requestedSchool != home {
		return Scope{}, ErrSchoolMismatch
	}
	return Scope{SchoolID: home}, nil
}
