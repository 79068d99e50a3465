package smtp

import (
	"context"
	"log/slog"
	netmail "net/mail"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/pure-golang/omnimail/env"
	"github.com/pure-golang/omnimail/logger"
	"github.com/pure-golang/omnimail/mail"
)

var _ mail.Sender = (*Client)(nil)

// Client sends emails over SMTP from a fixed sender address.
//
// A Client is immutable after construction and safe for concurrent use:
// every SendEmail call opens its own connection from the client's Session.
type Client struct {
	sender    *netmail.Address
	session   Session
	transport TransportFactory
	logger    *slog.Logger
}

// ClientOptions contains options for creating a Client.
type ClientOptions struct {
	// Logger overrides the logger taken from the SendEmail context.
	Logger *slog.Logger
	// Transport overrides the go-mail transport, mostly for tests.
	Transport TransportFactory
}

// NewClient validates cfg, parses the sender address and derives the Session.
func NewClient(cfg Config, options *ClientOptions) (*Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	sender, err := mail.ParseAddress(cfg.Sender)
	if err != nil {
		return nil, errors.Wrap(err, "invalid email.sender")
	}

	c := &Client{
		sender:    sender,
		session:   newSession(cfg),
		transport: defaultTransport,
	}
	if options != nil {
		if options.Transport != nil {
			c.transport = options.Transport
		}
		c.logger = options.Logger
	}

	return c, nil
}

// NewDefault creates a Client from the environment and the .env file.
// The client logs through a logger built from LOG_PROVIDER and LOG_LEVEL.
func NewDefault() (*Client, error) {
	cfg, err := LoadConfig()
	if err != nil {
		return nil, err
	}

	var logCfg logger.Config
	if err := env.InitConfig(&logCfg); err != nil {
		return nil, mail.NewError(mail.KindConfiguration, opConfig, err)
	}

	return NewClient(cfg, &ClientOptions{Logger: logger.NewDefault(logCfg)})
}

// Sender returns the from address.
func (c *Client) Sender() netmail.Address {
	return *c.sender
}

// Session returns the transport settings.
func (c *Client) Session() Session {
	return c.session
}

// SendEmail delivers email synchronously. It makes exactly one delivery attempt
// and returns a mail.KindDelivery error on any failure.
func (c *Client) SendEmail(ctx context.Context, email mail.Email) (err error) {
	sendID := uuid.NewString()

	ctx, span := tracer.Start(ctx, "SMTP.SendEmail", trace.WithSpanKind(trace.SpanKindClient))
	defer span.End()

	span.SetAttributes(
		attribute.String("smtp.send_id", sendID),
		attribute.String("smtp.from", c.sender.Address),
		attribute.String("smtp.subject", email.Subject()),
		attribute.Bool("smtp.html", email.IsHTML()),
		attribute.String("smtp.host", c.session.Host),
		attribute.Int("smtp.port", c.session.Port),
		attribute.Bool("smtp.starttls", c.session.StartTLS),
	)

	l := c.logger
	if l == nil {
		l = logger.FromContext(ctx)
	}
	ctx = logger.NewContext(ctx, l.With("send_id", sendID, "host", c.session.Host, "port", c.session.Port))

	start := time.Now()
	defer func() {
		status := statusSuccess
		if err != nil {
			status = statusError
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			logger.FromContextWithErrIf(ctx, err).Debug("email not sent")
		} else {
			span.SetStatus(codes.Ok, "")
			logger.FromContext(ctx).Debug("email sent")
		}
		recordSend(status, time.Since(start).Seconds())
	}()

	recipient := email.Recipient()
	if recipient == nil {
		return mail.NewError(mail.KindDelivery, "send email", mail.ErrNoRecipient)
	}
	span.SetAttributes(attribute.String("smtp.to", recipient.Address))
	ctx = logger.NewContext(ctx, logger.FromContext(ctx).With("recipient", recipient.Address))

	msg, err := c.newMessage(email, recipient)
	if err != nil {
		return mail.NewError(mail.KindDelivery, "compose message", err)
	}

	transport, err := c.transport(c.session)
	if err != nil {
		return mail.NewError(mail.KindDelivery, "open transport", err)
	}

	if err := transport.DialAndSendWithContext(ctx, msg); err != nil {
		return mail.NewError(mail.KindDelivery, "send email", errors.Wrapf(err, "failed to send email to %s", recipient.Address))
	}

	return nil
}
