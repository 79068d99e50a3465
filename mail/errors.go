package mail

import (
	"errors"
	"fmt"
)

// ErrNoRecipient is returned when an Email without a recipient is sent.
var ErrNoRecipient = errors.New("no recipient specified")

// Kind classifies an Error.
type Kind string

const (
	KindAddressFormat Kind = "AddressFormat" // string is not an RFC 5322 address
	KindConfiguration Kind = "Configuration" // required option missing or malformed
	KindDelivery      Kind = "Delivery"      // transport failed to deliver
)

// Error wraps failures of address parsing, configuration and delivery.
type Error struct {
	Kind Kind
	Op   string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("mail.%s: %s: %v", e.Kind, e.Op, e.Err)
	}
	return fmt.Sprintf("mail.%s: %s", e.Kind, e.Op)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// NewError creates an Error of the given kind.
func NewError(kind Kind, op string, err error) *Error {
	return &Error{Kind: kind, Op: op, Err: err}
}

// IsAddressFormat checks if error is an address format error.
func IsAddressFormat(err error) bool {
	return isKind(err, KindAddressFormat)
}

// IsConfiguration checks if error is a configuration error.
func IsConfiguration(err error) bool {
	return isKind(err, KindConfiguration)
}

// IsDelivery checks if error is a delivery error.
func IsDelivery(err error) bool {
	return isKind(err, KindDelivery)
}

func isKind(err error, kind Kind) bool {
	var mailErr *Error
	if errors.As(err, &mailErr) {
		return mailErr.Kind == kind
	}
	return false
}
