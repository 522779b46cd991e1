package tenancy

// Claims carries the authenticated identity attached to a request: who is
// acting, with which role, and which school they belong to. SchoolID is nil
// for administrators, who have no home tenant.
type Claims struct {
	StaffID  uint
	Name     string
	Role     Role
	SchoolID *uint
}

// HomeSchool returns the claim's school id, or 0 when absent.
func (c Claims) HomeSchool() uint {
	if c.SchoolID == nil {
		return 0
	}
	return *c.SchoolID
}
