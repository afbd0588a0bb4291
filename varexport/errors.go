package varexport

import (
	"errors"

	"github.com/vk/varexport/varexport/discovery"
)

// AttributeAccessError reports an explicitly referenced member that cannot be
// exported.
type AttributeAccessError = discovery.AttributeAccessError

var (
	ErrNotExported        = discovery.ErrNotExported
	ErrNoSuchMember       = discovery.ErrNoSuchMember
	ErrInvalidDeclaration = discovery.ErrInvalidDeclaration

	// ErrUnreachableTarget is returned when exporting an instance that is nil
	// or already collected.
	ErrUnreachableTarget = errors.New("export target is nil or no longer reachable")
)
