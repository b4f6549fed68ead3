package stride

import "errors"

// Error taxonomy shared by every package in this module. Packages wrap
// these sentinels with fmt.Errorf("...: %w", ...) so callers can classify
// failures with errors.Is without depending on message text.
var (
	// ErrInvalidArgument is returned for malformed construction input,
	// such as a strided range with stride zero.
	ErrInvalidArgument = errors.New("stride: invalid argument")

	// ErrConfiguration is returned when a policy/index-space combination
	// is not supported by the chosen backend.
	ErrConfiguration = errors.New("stride: unsupported configuration")

	// ErrOutOfRange is returned for index access beyond a segment's or
	// set's bounds.
	ErrOutOfRange = errors.New("stride: index out of range")

	// ErrResourceExhausted is returned when the reduction id pool has no
	// free ids, i.e. too many independent reductions are live at once.
	ErrResourceExhausted = errors.New("stride: reduction pool exhausted")
)
