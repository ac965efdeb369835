package sim

import "errors"

var (
	// ErrTerminalState rejects Advance on an instance whose outcome is
	// already WIN or LOSE.
	ErrTerminalState = errors.New("sim: instance already reached a terminal outcome")
	// ErrMissingConfig indicates New was invoked with an unusable config.
	ErrMissingConfig = errors.New("sim: config has no usable grid dimensions")
)
