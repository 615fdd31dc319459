// Package domain contains core types for the shopping cart.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

// CartItem holds one product line in a user's cart. The (user, product)
// pair is unique; adding the same product again raises the quantity.
type CartItem struct {
	ID        snowflake.ID `json:"id" gorm:"primaryKey"`
	UserID    snowflake.ID `json:"user_id" gorm:"column:user_id;not null;uniqueIndex:ux_cart_user_product"`
	ProductID snowflake.ID `json:"product_id" gorm:"column:product_id;not null;uniqueIndex:ux_cart_user_product"`
	Quantity  int          `json:"quantity" gorm:"not null"`
	CreatedAt time.Time    `json:"created_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt time.Time    `json:"updated_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
}

// TableName sets the database table name.
func (CartItem) TableName() string { return "cart_items" }

// Line is a cart item joined with the live product row. Price and stock
// come from the catalog at read time, never from the client.
type Line struct {
	Item         CartItem `json:"item"`
	ProductName  string   `json:"product_name"`
	UnitPrice    int64    `json:"unit_price"`
	Stock        int      `json:"stock"`
	Approved     bool     `json:"approved"`
	LineSubtotal int64    `json:"line_subtotal"`
}
