package collector

import (
	"errors"
	"fmt"
)

// ErrUpstreamShape means the provider answered but the body did not carry the
// expected datasets record.
var ErrUpstreamShape = errors.New("unexpected upstream response shape")

// UpstreamHTTPError is returned when the provider answers with a non-2xx status.
type UpstreamHTTPError struct {
	StatusCode int
	Body       string
}

func (e *UpstreamHTTPError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("upstream status %d", e.StatusCode)
	}
	return fmt.Sprintf("upstream status %d, body: %s", e.StatusCode, e.Body)
}

func shapeError(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrUpstreamShape, fmt.Sprintf(format, args...))
}
