package interp

import (
	"errors"

	"github.com/edyy78/uireplay/internal/target"
)

var (
	// ErrIO marks an unreadable script or exported image
	ErrIO = errors.New("unreadable file")

	// ErrTargetUnavailable marks an application that could not be found or started
	ErrTargetUnavailable = target.ErrUnavailable

	// ErrNoScript is returned when Run is called without a script path
	ErrNoScript = errors.New("no test file supplied")
)
