package bullposter_protocol

import (
	"errors"
	"fmt"
)

var (
	ErrBufferOverflow      = errors.New("buffer overflow")
	ErrNotFound            = errors.New("account not found")
	ErrEndpointUnavailable = errors.New("rpc endpoint unavailable")
	ErrAllEndpointsFailed  = errors.New("no rpc endpoint reachable")
	ErrNoEndpoints         = errors.New("no rpc endpoints configured")
	ErrMalformedSeedInput  = errors.New("malformed seed input")
)

// BufferOverflowError reports a read that would run past the end of an
// account buffer. It matches ErrBufferOverflow with errors.Is.
type BufferOverflowError struct {
	Offset    int
	Size      int
	Remaining int
}

func (e *BufferOverflowError) Error() string {
	return fmt.Sprintf("buffer overflow at offset %d: read of %d bytes, %d remaining", e.Offset, e.Size, e.Remaining)
}

func (e *BufferOverflowError) Unwrap() error {
	return ErrBufferOverflow
}
