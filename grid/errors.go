package grid

import (
	"errors"

	"github.com/odvcencio/furry-grid/attr"
)

var (
	// ErrInvalidArgument is returned for rejected argument values. It is the
	// same value as attr.ErrInvalidArgument so callers need a single check.
	ErrInvalidArgument = attr.ErrInvalidArgument
	ErrColumnRange     = errors.New("column index out of range")
	ErrRowRange        = errors.New("row index out of range")
	ErrDuplicateKey    = errors.New("duplicate row key")
	ErrKeyNotFound     = errors.New("row key not found")
	ErrKeyedRows       = errors.New("rows of a keyed grid are addressed by key")
	ErrNoDrag          = errors.New("no column drag in progress")
	// ErrConsistency marks a broken internal invariant. It is never returned;
	// it is the cause carried by the panic that reports the violation.
	ErrConsistency = errors.New("grid consistency violation")
)
