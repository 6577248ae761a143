package errs

// Error kinds surfaced to callers. Concrete errors carry one of these as a
// mark, and the HTTP layer switches on the kind only.
var (
	ErrNotFound         = New("not found")
	ErrPermission       = New("permission denied")
	ErrBadRequest       = New("bad request")
	ErrEmailBusy        = New("email busy")
	ErrUnsupportedState = New("unsupported state")
)

// KindOf reports the first kind mark found on err, or nil for internal errors.
func KindOf(err error) error {
	for _, kind := range []error{ErrUnsupportedState, ErrNotFound, ErrPermission, ErrEmailBusy, ErrBadRequest} {
		if Is(err, kind) {
			return kind
		}
	}
	return nil
}
