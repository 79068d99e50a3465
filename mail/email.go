package mail

import (
	netmail "net/mail"

	"github.com/pkg/errors"
)

// Email is an outgoing message. It is immutable once built; use Builder to create one.
type Email struct {
	recipient *netmail.Address
	subject   string
	content   string
	isHTML    bool
}

// Recipient returns the recipient address, or nil if none was set.
func (e Email) Recipient() *netmail.Address {
	if e.recipient == nil {
		return nil
	}
	addr := *e.recipient
	return &addr
}

func (e Email) Subject() string {
	return e.subject
}

func (e Email) Content() string {
	return e.content
}

// IsHTML reports whether Content is HTML markup rather than plain text.
func (e Email) IsHTML() bool {
	return e.isHTML
}

// ParseAddress parses a single RFC 5322 address, e.g. "Jane <jane@example.com>".
func ParseAddress(address string) (*netmail.Address, error) {
	addr, err := netmail.ParseAddress(address)
	if err != nil {
		return nil, NewError(KindAddressFormat, "parse address", errors.Wrapf(err, "invalid address %q", address))
	}
	return addr, nil
}

// IsValidEmailAddress reports whether address parses as an RFC 5322 address.
func IsValidEmailAddress(address string) bool {
	_, err := netmail.ParseAddress(address)
	return err == nil
}

// IsValidEmailAddressPtr is IsValidEmailAddress for an optional value; nil is invalid.
func IsValidEmailAddressPtr(address *string) bool {
	return address != nil && IsValidEmailAddress(*address)
}

// Builder accumulates the fields of an Email.
// Setters mutate only the builder; emails built earlier are not affected.
type Builder struct {
	recipient *netmail.Address
	subject   string
	content   string
	isHTML    bool
}

// NewBuilder creates an empty Builder.
func NewBuilder() *Builder {
	return &Builder{}
}

// SetRecipient parses address and sets it as the recipient.
// On a malformed address the builder is left unchanged and a KindAddressFormat error is returned.
func (b *Builder) SetRecipient(address string) (*Builder, error) {
	addr, err := ParseAddress(address)
	if err != nil {
		return b, err
	}
	b.recipient = addr
	return b, nil
}

func (b *Builder) SetSubject(subject string) *Builder {
	b.subject = subject
	return b
}

// SetText sets a plain text body, replacing any previous body.
func (b *Builder) SetText(text string) *Builder {
	b.content = text
	b.isHTML = false
	return b
}

// SetHTML sets an HTML body, replacing any previous body.
func (b *Builder) SetHTML(html string) *Builder {
	b.content = html
	b.isHTML = true
	return b
}

// Build returns an Email from the fields set so far.
// Missing fields are not an error here; a missing recipient fails at send time.
func (b *Builder) Build() Email {
	email := Email{
		subject: b.subject,
		content: b.content,
		isHTML:  b.isHTML,
	}
	if b.recipient != nil {
		addr := *b.recipient
		email.recipient = &addr
	}
	return email
}
