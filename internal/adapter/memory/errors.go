package memory

import "errors"

var ErrDuplicateID = errors.New("duplicate product id")
