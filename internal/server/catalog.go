package server

import (
	"net/http"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"
	authdomain "github.com/tedxmekong/stagehub/internal/auth/domain"
	eventdomain "github.com/tedxmekong/stagehub/internal/event/domain"
	offeringdomain "github.com/tedxmekong/stagehub/internal/offering/domain"
	organizationdomain "github.com/tedxmekong/stagehub/internal/organization/domain"
	productdomain "github.com/tedxmekong/stagehub/internal/product/domain"
)

type CreateOfferingRequest struct {
	Name           string   `json:"name"`
	Description    string   `json:"description"`
	Price          int64    `json:"price"`
	Category       string   `json:"category"`
	Features       []string `json:"features"`
	OrganizationID *string  `json:"organization_id"`
}

type UpdateOfferingRequest struct {
	Name        *string  `json:"name"`
	Description *string  `json:"description"`
	Price       *int64   `json:"price"`
	Category    *string  `json:"category"`
	Features    []string `json:"features"`
}

type CreateEventRequest struct {
	Name           string    `json:"name"`
	Description    string    `json:"description"`
	Date           time.Time `json:"date"`
	Location       string    `json:"location"`
	TicketPrice    int64     `json:"ticket_price"`
	Type           string    `json:"type"`
	OrganizationID *string   `json:"organization_id"`
}

type UpdateEventRequest struct {
	Name        *string    `json:"name"`
	Description *string    `json:"description"`
	Date        *time.Time `json:"date"`
	Location    *string    `json:"location"`
	TicketPrice *int64     `json:"ticket_price"`
	Type        *string    `json:"type"`
}

type CreateProductRequest struct {
	Name           string   `json:"name"`
	Description    string   `json:"description"`
	Price          int64    `json:"price"`
	Images         []string `json:"images"`
	Stock          int      `json:"stock"`
	Category       string   `json:"category"`
	OrganizationID *string  `json:"organization_id"`
}

type UpdateProductRequest struct {
	Name        *string  `json:"name"`
	Description *string  `json:"description"`
	Price       *int64   `json:"price"`
	Images      []string `json:"images"`
	Category    *string  `json:"category"`
}

func parseOptionalID(raw *string) (*snowflake.ID, bool) {
	if raw == nil || strings.TrimSpace(*raw) == "" {
		return nil, true
	}
	id, err := snowflake.ParseString(strings.TrimSpace(*raw))
	if err != nil {
		return nil, false
	}
	return &id, true
}

// checkOrgAttribution verifies the caller may publish catalog entries
// under the organization. Admins may attribute to any organization;
// everyone else needs an approved membership.
func (s *Server) checkOrgAttribution(c *gin.Context, user *authdomain.User, orgID *snowflake.ID) error {
	if orgID == nil || user.Role == authdomain.RoleAdmin {
		return nil
	}
	ok, err := s.organizationSvc.IsApprovedMember(c.Request.Context(), *orgID, user.ID)
	if err != nil {
		return err
	}
	if !ok {
		return organizationdomain.ErrForbiddenMember
	}
	return nil
}

// -------- Offerings --------

func (s *Server) ListOfferings(c *gin.Context) {
	offerings, err := s.offeringSvc.ListPublic(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"offerings": offerings})
}

func (s *Server) GetOffering(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	offering, err := s.offeringSvc.GetApproved(c.Request.Context(), id)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, offering)
}

func (s *Server) CreateOffering(c *gin.Context) {
	user, ok := s.mustUser(c)
	if !ok {
		return
	}

	var req CreateOfferingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}
	orgID, ok := parseOptionalID(req.OrganizationID)
	if !ok {
		AbortWithError(c, newValidationError("organization_id", "invalid_id", "invalid identifier"))
		return
	}
	if err := s.checkOrgAttribution(c, user, orgID); err != nil {
		AbortWithError(c, err)
		return
	}

	offering, err := s.offeringSvc.Create(c.Request.Context(), offeringdomain.CreateRequest{
		Name:           strings.TrimSpace(req.Name),
		Description:    strings.TrimSpace(req.Description),
		Price:          req.Price,
		Category:       strings.ToLower(strings.TrimSpace(req.Category)),
		Features:       req.Features,
		OrganizationID: orgID,
		CreatedBy:      user.ID,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, offering)
}

func (s *Server) UpdateOffering(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req UpdateOfferingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	offering, err := s.offeringSvc.Update(c.Request.Context(), offeringdomain.UpdateRequest{
		ID:          id,
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Category:    req.Category,
		Features:    req.Features,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, offering)
}

func (s *Server) AdminListOfferings(c *gin.Context) {
	offerings, err := s.offeringSvc.ListAll(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"offerings": offerings})
}

func (s *Server) ApproveOffering(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if err := s.offeringSvc.Approve(c.Request.Context(), id); err != nil {
		AbortWithError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// -------- Events --------

func (s *Server) ListEvents(c *gin.Context) {
	upcomingOnly := strings.EqualFold(c.DefaultQuery("upcoming", "true"), "true")
	events, err := s.eventSvc.ListPublic(c.Request.Context(), upcomingOnly)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"events": events})
}

func (s *Server) GetEvent(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	evt, err := s.eventSvc.GetApproved(c.Request.Context(), id)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, evt)
}

func (s *Server) CreateEvent(c *gin.Context) {
	user, ok := s.mustUser(c)
	if !ok {
		return
	}

	var req CreateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}
	orgID, ok := parseOptionalID(req.OrganizationID)
	if !ok {
		AbortWithError(c, newValidationError("organization_id", "invalid_id", "invalid identifier"))
		return
	}
	if err := s.checkOrgAttribution(c, user, orgID); err != nil {
		AbortWithError(c, err)
		return
	}

	evt, err := s.eventSvc.Create(c.Request.Context(), eventdomain.CreateRequest{
		Name:           strings.TrimSpace(req.Name),
		Description:    strings.TrimSpace(req.Description),
		Date:           req.Date,
		Location:       strings.TrimSpace(req.Location),
		TicketPrice:    req.TicketPrice,
		Type:           strings.ToUpper(strings.TrimSpace(req.Type)),
		OrganizationID: orgID,
		CreatedBy:      user.ID,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, evt)
}

func (s *Server) UpdateEvent(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req UpdateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	evt, err := s.eventSvc.Update(c.Request.Context(), eventdomain.UpdateRequest{
		ID:          id,
		Name:        req.Name,
		Description: req.Description,
		Date:        req.Date,
		Location:    req.Location,
		TicketPrice: req.TicketPrice,
		Type:        req.Type,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, evt)
}

func (s *Server) AdminListEvents(c *gin.Context) {
	events, err := s.eventSvc.ListAll(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"events": events})
}

func (s *Server) ApproveEvent(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if err := s.eventSvc.Approve(c.Request.Context(), id); err != nil {
		AbortWithError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// -------- Products --------

func (s *Server) ListProducts(c *gin.Context) {
	products, err := s.productSvc.ListPublic(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"products": products})
}

func (s *Server) GetProduct(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	product, err := s.productSvc.GetApproved(c.Request.Context(), id)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, product)
}

func (s *Server) CreateProduct(c *gin.Context) {
	user, ok := s.mustUser(c)
	if !ok {
		return
	}

	var req CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}
	orgID, ok := parseOptionalID(req.OrganizationID)
	if !ok {
		AbortWithError(c, newValidationError("organization_id", "invalid_id", "invalid identifier"))
		return
	}
	if err := s.checkOrgAttribution(c, user, orgID); err != nil {
		AbortWithError(c, err)
		return
	}

	product, err := s.productSvc.Create(c.Request.Context(), productdomain.CreateRequest{
		Name:           strings.TrimSpace(req.Name),
		Description:    strings.TrimSpace(req.Description),
		Price:          req.Price,
		Images:         req.Images,
		Stock:          req.Stock,
		Category:       strings.TrimSpace(req.Category),
		OrganizationID: orgID,
		CreatedBy:      user.ID,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, product)
}

func (s *Server) UpdateProduct(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	product, err := s.productSvc.Update(c.Request.Context(), productdomain.UpdateRequest{
		ID:          id,
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Images:      req.Images,
		Category:    req.Category,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, product)
}

func (s *Server) AdjustProductStock(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req struct {
		Delta int `json:"delta"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	product, err := s.productSvc.AdjustStock(c.Request.Context(), id, req.Delta)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, product)
}

func (s *Server) AdminListProducts(c *gin.Context) {
	products, err := s.productSvc.ListAll(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"products": products})
}

func (s *Server) ApproveProduct(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if err := s.productSvc.Approve(c.Request.Context(), id); err != nil {
		AbortWithError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
