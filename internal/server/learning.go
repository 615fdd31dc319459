package server

import (
	"net/http"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"
	learningdomain "github.com/tedxmekong/stagehub/internal/learning/domain"
)

type UpsertProgressRequest struct {
	OfferingID        string   `json:"offering_id"`
	CompletionPercent int      `json:"completion_percent"`
	Materials         []string `json:"materials"`
}

func (s *Server) UpsertLearningProgress(c *gin.Context) {
	user, ok := s.mustUser(c)
	if !ok {
		return
	}

	var req UpsertProgressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}
	offeringID, err := snowflake.ParseString(strings.TrimSpace(req.OfferingID))
	if err != nil {
		AbortWithError(c, newValidationError("offering_id", "invalid_id", "invalid identifier"))
		return
	}

	progress, err := s.learningSvc.Upsert(c.Request.Context(), learningdomain.UpsertRequest{
		UserID:            user.ID,
		OfferingID:        offeringID,
		CompletionPercent: req.CompletionPercent,
		Materials:         req.Materials,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, progress)
}

func (s *Server) ListLearningProgress(c *gin.Context) {
	user, ok := s.mustUser(c)
	if !ok {
		return
	}
	progress, err := s.learningSvc.ListMine(c.Request.Context(), user.ID)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"progress": progress})
}

func (s *Server) GetLearningSummary(c *gin.Context) {
	user, ok := s.mustUser(c)
	if !ok {
		return
	}
	summary, err := s.learningSvc.Summarize(c.Request.Context(), user.ID)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}
