package mesh

import (
	"errors"

	"github.com/Faultbox/meshstore/pkg/slots"
)

// Slot access errors, re-exported so callers only need this package.
var (
	ErrOutOfRange     = slots.ErrOutOfRange
	ErrUseAfterDelete = slots.ErrUseAfterDelete
	ErrAlreadyDeleted = slots.ErrAlreadyDeleted
)

// Mesh errors.
var (
	ErrNotEnabled        = errors.New("attribute not enabled")
	ErrDanglingReference = errors.New("dangling reference")
	ErrUnsupported       = errors.New("not supported by mesh kind")
	ErrArity             = errors.New("invalid vertex count")
	ErrNegativeCount     = errors.New("negative count")
)
