package datatree

import "errors"

var (
	ErrMalformedPath  = errors.New("malformed tree path")
	ErrMalformedKey   = errors.New("malformed item key")
	ErrDuplicateIndex = errors.New("duplicate item index")
	ErrDuplicatePath  = errors.New("duplicate tree path")
)
