package smtp

import (
	netmail "net/mail"

	"github.com/pkg/errors"
	gomail "github.com/wneessen/go-mail"

	"github.com/pure-golang/omnimail/mail"
)

// newMessage composes the transport message: one sender, one To recipient,
// the subject verbatim and a single text/plain or text/html body.
func (c *Client) newMessage(email mail.Email, recipient *netmail.Address) (*gomail.Msg, error) {
	msg := gomail.NewMsg()

	if err := msg.From(c.sender.String()); err != nil {
		return nil, errors.Wrap(err, "failed to set sender")
	}
	if err := msg.To(recipient.String()); err != nil {
		return nil, errors.Wrapf(err, "failed to set recipient: %s", recipient.Address)
	}
	msg.Subject(email.Subject())
	msg.SetDate()
	msg.SetMessageID()

	if email.IsHTML() {
		msg.SetBodyString(gomail.TypeTextHTML, email.Content())
	} else {
		msg.SetBodyString(gomail.TypeTextPlain, email.Content())
	}

	return msg, nil
}
