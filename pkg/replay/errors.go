package replay

import (
	"errors"
	"fmt"
)

// EmptyPayloadError reports an empty payload given to a record whose required
// fields leave nothing to default. The rendered text is a contract.
type EmptyPayloadError struct {
	TypeName string
}

func (e *EmptyPayloadError) Error() string {
	return fmt.Sprintf("Empty arrays are not allowed for %s initialization", e.TypeName)
}

// IsEmptyPayloadError reports whether err is (or wraps) an EmptyPayloadError.
func IsEmptyPayloadError(err error) bool {
	var e *EmptyPayloadError
	return errors.As(err, &e)
}
