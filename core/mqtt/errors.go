package mqtt

import "errors"

// ErrNotConnected is returned when a publish is attempted without an active
// broker connection.
var ErrNotConnected = errors.New("mqtt client not connected")
