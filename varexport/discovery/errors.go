package discovery

import (
	"errors"
	"fmt"
	"reflect"
)

var (
	// ErrInvalidDeclaration is returned for malformed tags and declarations.
	ErrInvalidDeclaration = errors.New("invalid export declaration")
	// ErrNotExported means the referenced member is not publicly accessible.
	ErrNotExported = errors.New("member is not exported")
	// ErrNoSuchMember means the referenced member does not exist.
	ErrNoSuchMember = errors.New("no such member")
)

// AttributeAccessError reports an explicit member reference that cannot be
// exported.
type AttributeAccessError struct {
	Type   reflect.Type
	Member string
	Err    error
}

// Error implements the error interface.
func (e *AttributeAccessError) Error() string {
	return fmt.Sprintf("cannot export %s.%s: %v", e.Type, e.Member, e.Err)
}

// Unwrap returns the underlying reason.
func (e *AttributeAccessError) Unwrap() error {
	return e.Err
}
