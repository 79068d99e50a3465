package noop

import (
	"context"
	"sync"

	"github.com/pure-golang/omnimail/mail"
)

var _ mail.Sender = (*Sender)(nil)

// Sender is a no-op mail sender for testing. It keeps sent emails in memory.
type Sender struct {
	mx   sync.Mutex
	sent []mail.Email
}

// NewSender creates a new no-op Sender.
func NewSender() *Sender {
	return &Sender{}
}

// SendEmail records email and returns nil.
func (n *Sender) SendEmail(_ context.Context, email mail.Email) error {
	n.mx.Lock()
	defer n.mx.Unlock()

	n.sent = append(n.sent, email)
	return nil
}

// Sent returns the emails recorded so far.
func (n *Sender) Sent() []mail.Email {
	n.mx.Lock()
	defer n.mx.Unlock()

	out := make([]mail.Email, len(n.sent))
	copy(out, n.sent)
	return out
}
