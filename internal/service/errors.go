package service

import "errors"

// Failure kinds shared across services. Handlers translate them to HTTP
// statuses: permission and tenancy failures to 403, missing records to 404,
// duplicate natural keys to 409 and domain validation failures to 400.
var (
	ErrNotPermitted       = errors.New("operation not permitted for role")
	ErrWrongSchool        = errors.New("record belongs to another school")
	ErrNotOwnActivity     = errors.New("teachers may only manage their own activities")
	ErrInvalidCredentials = errors.New("invalid registration or password")
	ErrInvalidRole        = errors.New("unknown role")
	ErrScoreExceedsMax    = errors.New("score exceeds the activity max score")
	ErrCannotDeleteSelf   = errors.New("staff members cannot delete themselves")

	ErrSchoolNotFound     = errors.New("school not found")
	ErrStaffNotFound      = errors.New("staff member not found")
	ErrClassNotFound      = errors.New("class not found")
	ErrSubjectNotFound    = errors.New("subject not found")
	ErrStudentNotFound    = errors.New("student not found")
	ErrActivityNotFound   = errors.New("activity not found")
	ErrEvaluationNotFound = errors.New("evaluation not found")
	ErrGradeNotFound      = errors.New("bimonthly grade not found")
	ErrConditionNotFound  = errors.New("condition not found")
	ErrInsightUnavailable = errors.New("insight generation failed")
)
