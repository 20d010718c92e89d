package generate

import "errors"

// ErrWriteOutput wraps every failure to place the output document.
var ErrWriteOutput = errors.New("write output failed")
