package shifts

import "errors"

var (
	ErrNotFound          = errors.New("shift not found")
	ErrInvalidTransition = errors.New("shift state does not allow this action")
	ErrAttendantDisabled = errors.New("attendant is disabled")
	ErrNoModuleAccess    = errors.New("attendant has no access to module")
)
