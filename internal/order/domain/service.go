package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"github.com/tedxmekong/stagehub/pkg/db/pagination"
	"gorm.io/gorm"
)

type Service interface {
	// Checkout turns the user's cart into a PENDING MERCHANDISE order in
	// one transaction: approval re-check, price snapshot, guarded stock
	// decrements, optional discount redemption and cart clearing all
	// commit or roll back together.
	Checkout(ctx context.Context, req CheckoutRequest) (*OrderWithItems, error)

	// CreateTicketOrder records a PENDING TICKET order for one event
	// ticket. tx lets the ticket purchase run it inside its own
	// transaction.
	CreateTicketOrder(ctx context.Context, tx *gorm.DB, req TicketOrderRequest) (*Order, error)

	Get(ctx context.Context, orderID snowflake.ID) (*OrderWithItems, error)
	GetForUser(ctx context.Context, userID, orderID snowflake.ID) (*OrderWithItems, error)
	ListMine(ctx context.Context, userID snowflake.ID) ([]Order, error)
	ListAll(ctx context.Context, req ListAllRequest) (ListAllResponse, error)

	// AdvanceStatus moves the order along the lifecycle, rejecting
	// transitions the state machine does not allow.
	AdvanceStatus(ctx context.Context, orderID snowflake.ID, status string) (*Order, error)
	// Cancel cancels a PENDING or PROCESSING order and restores stock.
	Cancel(ctx context.Context, userID, orderID snowflake.ID) (*Order, error)
}

type CheckoutRequest struct {
	UserID          snowflake.ID
	ShippingAddress string
	DiscountCode    string
}

type TicketOrderRequest struct {
	UserID    snowflake.ID
	EventID   snowflake.ID
	EventName string
	Price     int64
}

type ListAllRequest struct {
	pagination.Pagination
}

type ListAllResponse struct {
	pagination.PageInfo
	Orders []Order `json:"orders"`
}
