package countdown

import "errors"

var (
	ErrInvalidSubject   = errors.New("countdown: subject id is required")
	ErrInvalidTimeout   = errors.New("countdown: timeout must be positive")
	ErrSchedulingFailed = errors.New("countdown: failed to schedule driver")
)
