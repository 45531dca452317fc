package depot

import "errors"

var (
	// ErrNoVersions means no documentation version is configured at all.
	ErrNoVersions = errors.New("no documentation versions available")

	// ErrCorruptBlob wraps failures to decode a serialized docblock field.
	ErrCorruptBlob = errors.New("corrupt serialized field")

	// ErrOddParams is returned for a route parameter list that does not pair up.
	ErrOddParams = errors.New("route parameters must come in key/value pairs")

	// ErrBadVersion is returned when the version parameter is not a number.
	ErrBadVersion = errors.New("version parameter is not numeric")
)
