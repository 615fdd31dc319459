package server

import (
	"net/http"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"
	mentordomain "github.com/tedxmekong/stagehub/internal/mentor/domain"
)

type AddSlotRequest struct {
	Date      time.Time `json:"date"`
	StartTime string    `json:"start_time"`
	EndTime   string    `json:"end_time"`
}

type BookSessionRequest struct {
	SlotID     string  `json:"slot_id"`
	OfferingID *string `json:"offering_id"`
	Duration   int     `json:"duration"`
}

func (s *Server) ListMentorSlots(c *gin.Context) {
	mentorID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	availableOnly := strings.EqualFold(c.DefaultQuery("available", "true"), "true")

	slots, err := s.mentorSvc.ListSlots(c.Request.Context(), mentorID, availableOnly)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"slots": slots})
}

func (s *Server) AddMentorSlot(c *gin.Context) {
	user, ok := s.mustUser(c)
	if !ok {
		return
	}

	var req AddSlotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	slot, err := s.mentorSvc.AddSlot(c.Request.Context(), mentordomain.SlotRequest{
		MentorID:  user.ID,
		Date:      req.Date,
		StartTime: strings.TrimSpace(req.StartTime),
		EndTime:   strings.TrimSpace(req.EndTime),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, slot)
}

func (s *Server) ToggleMentorSlot(c *gin.Context) {
	user, ok := s.mustUser(c)
	if !ok {
		return
	}
	slotID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	slot, err := s.mentorSvc.ToggleSlot(c.Request.Context(), user.ID, slotID)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, slot)
}

func (s *Server) RemoveMentorSlot(c *gin.Context) {
	user, ok := s.mustUser(c)
	if !ok {
		return
	}
	slotID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := s.mentorSvc.RemoveSlot(c.Request.Context(), user.ID, slotID); err != nil {
		AbortWithError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) BookSession(c *gin.Context) {
	user, ok := s.mustUser(c)
	if !ok {
		return
	}

	var req BookSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}
	slotID, err := snowflake.ParseString(strings.TrimSpace(req.SlotID))
	if err != nil {
		AbortWithError(c, newValidationError("slot_id", "invalid_id", "invalid identifier"))
		return
	}
	offeringID, ok := parseOptionalID(req.OfferingID)
	if !ok {
		AbortWithError(c, newValidationError("offering_id", "invalid_id", "invalid identifier"))
		return
	}

	session, err := s.mentorSvc.Book(c.Request.Context(), mentordomain.BookRequest{
		StudentID:  user.ID,
		SlotID:     slotID,
		OfferingID: offeringID,
		Duration:   req.Duration,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, session)
}

func (s *Server) ListMySessions(c *gin.Context) {
	user, ok := s.mustUser(c)
	if !ok {
		return
	}
	sessions, err := s.mentorSvc.ListForStudent(c.Request.Context(), user.ID)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"sessions": sessions})
}

func (s *Server) ListMentoringSessions(c *gin.Context) {
	user, ok := s.mustUser(c)
	if !ok {
		return
	}
	sessions, err := s.mentorSvc.ListForMentor(c.Request.Context(), user.ID)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"sessions": sessions})
}

func (s *Server) CompleteSession(c *gin.Context) {
	user, ok := s.mustUser(c)
	if !ok {
		return
	}
	sessionID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req struct {
		Feedback string `json:"feedback"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	session, err := s.mentorSvc.Complete(c.Request.Context(), user.ID, sessionID, strings.TrimSpace(req.Feedback))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, session)
}

func (s *Server) CancelSession(c *gin.Context) {
	user, ok := s.mustUser(c)
	if !ok {
		return
	}
	sessionID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	session, err := s.mentorSvc.Cancel(c.Request.Context(), user.ID, sessionID)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, session)
}
