package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
)

type Service interface {
	// Purchase issues a pending ticket plus its PENDING TICKET order in
	// a single transaction, and drops a calendar entry for the event
	// date.
	Purchase(ctx context.Context, userID, eventID snowflake.ID) (*EventTicket, error)
	Get(ctx context.Context, userID, ticketID snowflake.ID) (*EventTicket, error)
	ListMine(ctx context.Context, userID snowflake.ID) ([]EventTicket, error)

	// ConfirmPayment flips a pending ticket to paid. Called by the
	// payment webhook after signature verification.
	ConfirmPayment(ctx context.Context, ticketID snowflake.ID) (*EventTicket, error)
	Cancel(ctx context.Context, userID, ticketID snowflake.ID) (*EventTicket, error)

	// ReceiptPDF renders the printable ticket for a paid ticket.
	ReceiptPDF(ctx context.Context, userID, ticketID snowflake.ID) ([]byte, error)
}
