package server

import (
	"net/http"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"
	organizationdomain "github.com/tedxmekong/stagehub/internal/organization/domain"
)

type CreateOrganizationRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	LogoURL     string `json:"logo_url"`
	Website     string `json:"website"`
}

type UpdateOrganizationRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	LogoURL     *string `json:"logo_url"`
	Website     *string `json:"website"`
}

func (s *Server) ListOrganizations(c *gin.Context) {
	orgs, err := s.organizationSvc.List(c.Request.Context(), organizationdomain.ListFilter{
		ApprovedOnly: true,
		Tier:         strings.TrimSpace(c.Query("tier")),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"organizations": orgs})
}

// GetOrganization resolves the path value as a snowflake ID first and
// falls back to slug lookup, so public profile links can use either.
func (s *Server) GetOrganization(c *gin.Context) {
	raw := c.Param("id")

	var org *organizationdomain.Organization
	var err error
	if id, parseErr := snowflake.ParseString(raw); parseErr == nil {
		org, err = s.organizationSvc.Get(c.Request.Context(), id)
	} else {
		org, err = s.organizationSvc.GetBySlug(c.Request.Context(), raw)
	}
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, org)
}

func (s *Server) CreateOrganization(c *gin.Context) {
	user, ok := s.mustUser(c)
	if !ok {
		return
	}

	var req CreateOrganizationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	org, err := s.organizationSvc.Create(c.Request.Context(), organizationdomain.CreateRequest{
		Name:        strings.TrimSpace(req.Name),
		Description: strings.TrimSpace(req.Description),
		LogoURL:     strings.TrimSpace(req.LogoURL),
		Website:     strings.TrimSpace(req.Website),
		OwnerID:     user.ID,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, org)
}

func (s *Server) ListMyOrganizations(c *gin.Context) {
	user, ok := s.mustUser(c)
	if !ok {
		return
	}
	orgs, err := s.organizationSvc.ListMine(c.Request.Context(), user.ID)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"organizations": orgs})
}

func (s *Server) UpdateOrganization(c *gin.Context) {
	user, ok := s.mustUser(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req UpdateOrganizationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	org, err := s.organizationSvc.Update(c.Request.Context(), organizationdomain.UpdateRequest{
		ID:          id,
		ActorID:     user.ID,
		Name:        req.Name,
		Description: req.Description,
		LogoURL:     req.LogoURL,
		Website:     req.Website,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, org)
}

func (s *Server) JoinOrganization(c *gin.Context) {
	user, ok := s.mustUser(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	member, err := s.organizationSvc.Join(c.Request.Context(), id, user.ID)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, member)
}

func (s *Server) ListOrganizationMembers(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	members, err := s.organizationSvc.ListMembers(c.Request.Context(), id)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"members": members})
}

func (s *Server) ApproveOrganizationMember(c *gin.Context) {
	user, ok := s.mustUser(c)
	if !ok {
		return
	}
	orgID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	memberUserID, ok := parseIDParam(c, "userId")
	if !ok {
		return
	}

	if err := s.organizationSvc.ApproveMember(c.Request.Context(), user.ID, orgID, memberUserID); err != nil {
		AbortWithError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) RemoveOrganizationMember(c *gin.Context) {
	user, ok := s.mustUser(c)
	if !ok {
		return
	}
	orgID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	memberUserID, ok := parseIDParam(c, "userId")
	if !ok {
		return
	}

	if err := s.organizationSvc.RemoveMember(c.Request.Context(), user.ID, orgID, memberUserID); err != nil {
		AbortWithError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) AdminListOrganizations(c *gin.Context) {
	orgs, err := s.organizationSvc.List(c.Request.Context(), organizationdomain.ListFilter{
		Tier: strings.TrimSpace(c.Query("tier")),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"organizations": orgs})
}

func (s *Server) ApproveOrganization(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if err := s.organizationSvc.Approve(c.Request.Context(), id); err != nil {
		AbortWithError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) SetOrganizationTier(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req struct {
		Tier string `json:"tier"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	if err := s.organizationSvc.SetTier(c.Request.Context(), id, strings.ToUpper(strings.TrimSpace(req.Tier))); err != nil {
		AbortWithError(c, err)
		return
	}

	commission, err := s.organizationSvc.CommissionPercent(c.Request.Context(), id)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"tier": strings.ToUpper(strings.TrimSpace(req.Tier)), "commission_percent": commission})
}
