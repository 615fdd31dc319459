package server

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	discountdomain "github.com/tedxmekong/stagehub/internal/discount/domain"
	orderdomain "github.com/tedxmekong/stagehub/internal/order/domain"
)

type AddCartItemRequest struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

type CheckoutRequest struct {
	ShippingAddress string `json:"shipping_address"`
	DiscountCode    string `json:"discount_code"`
}

type PreviewDiscountRequest struct {
	Code     string `json:"code"`
	Subtotal int64  `json:"subtotal"`
}

type CreateDiscountRequest struct {
	Code       string    `json:"code"`
	Type       string    `json:"type"`
	Value      int64     `json:"value"`
	MinAmount  int64     `json:"min_amount"`
	MaxUses    int       `json:"max_uses"`
	ValidUntil time.Time `json:"valid_until"`
}

// -------- Cart --------

func (s *Server) ListCart(c *gin.Context) {
	user, ok := s.mustUser(c)
	if !ok {
		return
	}
	lines, err := s.cartSvc.List(c.Request.Context(), user.ID)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	var subtotal int64
	for _, line := range lines {
		subtotal += line.LineSubtotal
	}
	c.JSON(http.StatusOK, gin.H{"items": lines, "subtotal": subtotal})
}

func (s *Server) AddCartItem(c *gin.Context) {
	user, ok := s.mustUser(c)
	if !ok {
		return
	}

	var req AddCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}
	productID, ok := parseOptionalID(&req.ProductID)
	if !ok || productID == nil {
		AbortWithError(c, newValidationError("product_id", "invalid_id", "invalid identifier"))
		return
	}

	item, err := s.cartSvc.Add(c.Request.Context(), user.ID, *productID, req.Quantity)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, item)
}

func (s *Server) UpdateCartItem(c *gin.Context) {
	user, ok := s.mustUser(c)
	if !ok {
		return
	}
	productID, ok := parseIDParam(c, "productId")
	if !ok {
		return
	}

	var req struct {
		Quantity int `json:"quantity"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	item, err := s.cartSvc.UpdateQuantity(c.Request.Context(), user.ID, productID, req.Quantity)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

func (s *Server) RemoveCartItem(c *gin.Context) {
	user, ok := s.mustUser(c)
	if !ok {
		return
	}
	productID, ok := parseIDParam(c, "productId")
	if !ok {
		return
	}

	if err := s.cartSvc.Remove(c.Request.Context(), user.ID, productID); err != nil {
		AbortWithError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) ClearCart(c *gin.Context) {
	user, ok := s.mustUser(c)
	if !ok {
		return
	}
	if err := s.cartSvc.Clear(c.Request.Context(), user.ID); err != nil {
		AbortWithError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// -------- Discounts --------

func (s *Server) PreviewDiscount(c *gin.Context) {
	var req PreviewDiscountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	quote, err := s.discountSvc.Preview(c.Request.Context(), req.Code, req.Subtotal)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, quote)
}

func (s *Server) ListDiscounts(c *gin.Context) {
	codes, err := s.discountSvc.List(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"discount_codes": codes})
}

func (s *Server) CreateDiscount(c *gin.Context) {
	var req CreateDiscountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	code, err := s.discountSvc.Create(c.Request.Context(), discountdomain.CreateRequest{
		Code:       req.Code,
		Type:       strings.ToUpper(strings.TrimSpace(req.Type)),
		Value:      req.Value,
		MinAmount:  req.MinAmount,
		MaxUses:    req.MaxUses,
		ValidUntil: req.ValidUntil,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, code)
}

// -------- Orders --------

func (s *Server) Checkout(c *gin.Context) {
	user, ok := s.mustUser(c)
	if !ok {
		return
	}

	var req CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	result, err := s.orderSvc.Checkout(c.Request.Context(), orderdomain.CheckoutRequest{
		UserID:          user.ID,
		ShippingAddress: strings.TrimSpace(req.ShippingAddress),
		DiscountCode:    strings.TrimSpace(req.DiscountCode),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, result)
}

func (s *Server) ListMyOrders(c *gin.Context) {
	user, ok := s.mustUser(c)
	if !ok {
		return
	}
	orders, err := s.orderSvc.ListMine(c.Request.Context(), user.ID)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"orders": orders})
}

func (s *Server) GetMyOrder(c *gin.Context) {
	user, ok := s.mustUser(c)
	if !ok {
		return
	}
	orderID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	result, err := s.orderSvc.GetForUser(c.Request.Context(), user.ID, orderID)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (s *Server) CancelOrder(c *gin.Context) {
	user, ok := s.mustUser(c)
	if !ok {
		return
	}
	orderID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	order, err := s.orderSvc.Cancel(c.Request.Context(), user.ID, orderID)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, order)
}

func (s *Server) AdminListOrders(c *gin.Context) {
	var req orderdomain.ListAllRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.orderSvc.ListAll(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (s *Server) AdvanceOrderStatus(c *gin.Context) {
	orderID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req struct {
		Status string `json:"status"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	order, err := s.orderSvc.AdvanceStatus(c.Request.Context(), orderID, strings.ToUpper(strings.TrimSpace(req.Status)))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, order)
}
