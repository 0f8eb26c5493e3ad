package emergency

import (
	"errors"
	"fmt"
)

var ErrInvalidProtocol = errors.New("invalid emergency protocol")

// ErrUnknownKind indicates the triggered emergency has no protocol entry.
// Nothing was applied or logged.
type ErrUnknownKind struct {
	Kind Kind
}

func (e *ErrUnknownKind) Error() string {
	return fmt.Sprintf("unknown emergency kind '%s'", e.Kind)
}

func NewErrUnknownKind(kind Kind) *ErrUnknownKind {
	return &ErrUnknownKind{Kind: kind}
}

func IsUnknownKindError(err error) bool {
	var e *ErrUnknownKind
	return errors.As(err, &e)
}
