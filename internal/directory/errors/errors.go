package errors

import (
	"fmt"
)

var (
	ErrFetchFailed    = fmt.Errorf("fetch failed")
	ErrInvalidRecord  = fmt.Errorf("invalid record")
	ErrInvalidInput   = fmt.Errorf("invalid input")
	ErrAlreadyLoaded  = fmt.Errorf("already loaded")
	ErrNotFound       = fmt.Errorf("not found")
	ErrDuplicateEntry = fmt.Errorf("duplicate entry")
)
