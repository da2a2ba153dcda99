package errors

import "errors"

var ErrNotFound = errors.New("task not found")
