package metrics

import "errors"

// Sentinel kinds for metrics errors.
var (
	ErrWriteTextfile = errors.New("write metrics textfile failed")
)
