package smtp

import (
	"context"
	"crypto/tls"
	"fmt"
	"time"

	"github.com/pkg/errors"
	gomail "github.com/wneessen/go-mail"
)

// Transport performs one complete SMTP conversation per call.
// *gomail.Client satisfies it.
type Transport interface {
	DialAndSendWithContext(ctx context.Context, messages ...*gomail.Msg) error
}

// TransportFactory opens a Transport for a Session.
type TransportFactory func(s Session) (Transport, error)

// Session holds the transport settings of one Client.
// Sessions are owned by their Client; nothing is shared between clients.
type Session struct {
	Host     string
	Port     int
	StartTLS bool
	Username string
	Password string
	Insecure bool
	Timeout  time.Duration
}

func newSession(cfg Config) Session {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = DefaultTimeout
	}
	return Session{
		Host:     cfg.Host,
		Port:     cfg.Port,
		StartTLS: cfg.StartTLS,
		Username: cfg.Username,
		Password: cfg.Password,
		Insecure: cfg.Insecure,
		Timeout:  timeout,
	}
}

// Addr returns host:port.
func (s Session) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// TLSPolicy maps the STARTTLS flag to a go-mail policy: opportunistic upgrade or none.
func (s Session) TLSPolicy() gomail.TLSPolicy {
	if s.StartTLS {
		return gomail.TLSOpportunistic
	}
	return gomail.NoTLS
}

// NewTransport creates a fresh go-mail client for a single send.
// go-mail clients keep connection state, so they are never reused across sends.
func (s Session) NewTransport() (*gomail.Client, error) {
	opts := []gomail.Option{
		gomail.WithPort(s.Port),
		gomail.WithTimeout(s.Timeout),
		gomail.WithTLSPolicy(s.TLSPolicy()),
		gomail.WithTLSConfig(&tls.Config{
			ServerName:         s.Host,
			MinVersion:         tls.VersionTLS12,
			InsecureSkipVerify: s.Insecure, // #nosec G402 -- controlled by config
		}),
	}
	if s.Username != "" {
		opts = append(opts,
			gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
			gomail.WithUsername(s.Username),
			gomail.WithPassword(s.Password),
		)
	}

	client, err := gomail.NewClient(s.Host, opts...)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create smtp client")
	}
	return client, nil
}

func defaultTransport(s Session) (Transport, error) {
	client, err := s.NewTransport()
	if err != nil {
		return nil, err
	}
	return client, nil
}
