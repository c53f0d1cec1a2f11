package pkg

import "errors"

// ErrKernelMismatch is returned when a kernel does not survive a load/save round trip.
var ErrKernelMismatch = errors.New("❌ kernel changed after load/save round trip")
