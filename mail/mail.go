package mail

import (
	"context"
)

// Sender delivers a single Email.
type Sender interface {
	SendEmail(ctx context.Context, email Email) error
}
