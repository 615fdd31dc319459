package server

import (
	"net/http"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"
)

type PurchaseOfferingRequest struct {
	OfferingID string `json:"offering_id"`
}

func (s *Server) PurchaseOffering(c *gin.Context) {
	user, ok := s.mustUser(c)
	if !ok {
		return
	}

	var req PurchaseOfferingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}
	offeringID, err := snowflake.ParseString(strings.TrimSpace(req.OfferingID))
	if err != nil {
		AbortWithError(c, newValidationError("offering_id", "invalid_id", "invalid identifier"))
		return
	}

	purchase, err := s.purchaseSvc.Purchase(c.Request.Context(), user.ID, offeringID)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, purchase)
}

func (s *Server) ListMyPurchases(c *gin.Context) {
	user, ok := s.mustUser(c)
	if !ok {
		return
	}
	purchases, err := s.purchaseSvc.ListMine(c.Request.Context(), user.ID)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"purchases": purchases})
}

func (s *Server) GetPurchase(c *gin.Context) {
	user, ok := s.mustUser(c)
	if !ok {
		return
	}
	purchaseID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	purchase, err := s.purchaseSvc.Get(c.Request.Context(), user.ID, purchaseID)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, purchase)
}

func (s *Server) CancelPurchase(c *gin.Context) {
	user, ok := s.mustUser(c)
	if !ok {
		return
	}
	purchaseID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	purchase, err := s.purchaseSvc.Cancel(c.Request.Context(), user.ID, purchaseID)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, purchase)
}

func (s *Server) UpdatePurchaseProgress(c *gin.Context) {
	purchaseID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req struct {
		Progress int `json:"progress"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	purchase, err := s.purchaseSvc.UpdateProgress(c.Request.Context(), purchaseID, req.Progress)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, purchase)
}

func (s *Server) CompletePurchase(c *gin.Context) {
	purchaseID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	purchase, err := s.purchaseSvc.Complete(c.Request.Context(), purchaseID)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, purchase)
}
