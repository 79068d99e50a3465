package smtp

import (
	"time"
)

// DefaultTimeout bounds every socket operation of a single send.
const DefaultTimeout = 15 * time.Second

// Config contains the email.* options of the SMTP client.
type Config struct {
	Sender   string        `envconfig:"EMAIL_SENDER" required:"true"`   // from address, "Name <addr>" allowed
	Host     string        `envconfig:"EMAIL_HOST" required:"true"`     // smtp.gmail.com
	Port     int           `envconfig:"EMAIL_PORT" required:"true"`     // 587 for STARTTLS, 25 for plain
	StartTLS bool          `envconfig:"EMAIL_STARTTLS" required:"true"` // upgrade with STARTTLS when offered
	Username string        `envconfig:"EMAIL_USERNAME"`                 // enables SMTP AUTH PLAIN when set
	Password string        `envconfig:"EMAIL_PASSWORD"`
	Insecure bool          `envconfig:"EMAIL_INSECURE" default:"false"` // skip certificate verification
	Timeout  time.Duration `envconfig:"EMAIL_TIMEOUT" default:"15s"`
}
