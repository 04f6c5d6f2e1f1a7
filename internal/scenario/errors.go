package scenario

import "errors"

var (
	// ErrBadStep marks a malformed step, scope table or unknown key.
	ErrBadStep = errors.New("invalid scenario entry")
	// ErrUnknownOp marks a step op other than add, flip or remove.
	ErrUnknownOp = errors.New("unknown scenario operation")
	// ErrBadRange marks a range that is malformed or exceeds the unit.
	ErrBadRange = errors.New("scenario range out of bounds")
	// ErrBadBinding marks a malformed binding declaration.
	ErrBadBinding = errors.New("invalid scenario binding")
	// ErrUnknownScope marks a reference to an undeclared scope name.
	ErrUnknownScope = errors.New("unknown scope name")
)
