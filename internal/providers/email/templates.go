package email

import "fmt"

// VerificationMessage builds the account-verification mail.
func VerificationMessage(to, displayName, verifyURL string) Message {
	return Message{
		To:      to,
		Subject: "Verify your StageHub account",
		Body: fmt.Sprintf(
			"Hi %s,\n\nWelcome to StageHub. Confirm your email address by opening:\n\n%s\n\nThe link expires in 48 hours.\n",
			displayName, verifyURL,
		),
	}
}

// OrderConfirmationMessage builds the post-checkout mail.
func OrderConfirmationMessage(to string, orderID int64, total int64, currency string) Message {
	return Message{
		To:      to,
		Subject: fmt.Sprintf("Order #%d confirmed", orderID),
		Body: fmt.Sprintf(
			"Your order #%d has been received.\n\nTotal: %d %s\n\nWe will let you know when it ships.\n",
			orderID, total, currency,
		),
	}
}

// TicketConfirmationMessage builds the ticket-payment mail.
func TicketConfirmationMessage(to, eventName, qrCode string) Message {
	return Message{
		To:      to,
		Subject: fmt.Sprintf("Your ticket for %s", eventName),
		Body: fmt.Sprintf(
			"Payment received. Your ticket for %s is confirmed.\n\nTicket code: %s\n\nShow the QR code at the door.\n",
			eventName, qrCode,
		),
	}
}
