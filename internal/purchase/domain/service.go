package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
)

type Service interface {
	// Purchase buys an approved offering. A second purchase of the same
	// pair fails with ErrAlreadyPurchased; the unique index decides
	// races. A SERVICE workspace is provisioned and linked.
	Purchase(ctx context.Context, userID, offeringID snowflake.ID) (*ServicePurchase, error)
	Get(ctx context.Context, userID, purchaseID snowflake.ID) (*ServicePurchase, error)
	ListMine(ctx context.Context, userID snowflake.ID) ([]ServicePurchase, error)

	// UpdateProgress sets progress, clamped to 0..100. Mentor/admin
	// operation.
	UpdateProgress(ctx context.Context, purchaseID snowflake.ID, progress int) (*ServicePurchase, error)
	Complete(ctx context.Context, purchaseID snowflake.ID) (*ServicePurchase, error)
	Cancel(ctx context.Context, userID, purchaseID snowflake.ID) (*ServicePurchase, error)
}
