package email

import (
	"context"
	"errors"
)

// ErrDisabled is returned by list operations when email is switched off.
var ErrDisabled = errors.New("email is disabled")

// Sender is the interface for sending emails
type Sender interface {
	Send(ctx context.Context, opts SendOptions) (*SendResult, error)
}

// ListManager adds addresses to the newsletter mailing list
type ListManager interface {
	AddMember(ctx context.Context, address, name string) error
}

// SendOptions contains options for sending an email
type SendOptions struct {
	To      string
	ToName  string
	ReplyTo string
	Subject string
	HTML    string
	Text    string
	Tags    []string
}

// SendResult contains the result of sending an email
type SendResult struct {
	Success   bool
	MessageID string
	Error     string
}
