// Package email sends transactional mail. Delivery failures are the
// caller's to log; no business flow fails because a message did not go
// out.
package email

import "context"

// Message is a single outbound mail.
type Message struct {
	To      string
	Subject string
	Body    string
}

type Provider interface {
	Send(ctx context.Context, msg Message) error
}
