package server

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	notificationdomain "github.com/tedxmekong/stagehub/internal/notification/domain"
)

type CreateCalendarEventRequest struct {
	Title     string     `json:"title"`
	Date      time.Time  `json:"date"`
	EndDate   *time.Time `json:"end_date"`
	Type      string     `json:"type"`
	RelatedID *string    `json:"related_id"`
	Notes     string     `json:"notes"`
}

type UpdateCalendarEventRequest struct {
	Title   *string    `json:"title"`
	Date    *time.Time `json:"date"`
	EndDate *time.Time `json:"end_date"`
	Notes   *string    `json:"notes"`
}

func (s *Server) ListNotifications(c *gin.Context) {
	user, ok := s.mustUser(c)
	if !ok {
		return
	}
	notifications, err := s.notificationSvc.ListMine(c.Request.Context(), user.ID)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"notifications": notifications})
}

func (s *Server) MarkNotificationRead(c *gin.Context) {
	user, ok := s.mustUser(c)
	if !ok {
		return
	}
	notificationID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := s.notificationSvc.MarkRead(c.Request.Context(), user.ID, notificationID); err != nil {
		AbortWithError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) MarkAllNotificationsRead(c *gin.Context) {
	user, ok := s.mustUser(c)
	if !ok {
		return
	}
	if err := s.notificationSvc.MarkAllRead(c.Request.Context(), user.ID); err != nil {
		AbortWithError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// -------- Calendar --------

func (s *Server) ListCalendar(c *gin.Context) {
	user, ok := s.mustUser(c)
	if !ok {
		return
	}

	from, ok := parseTimeQuery(c, "from")
	if !ok {
		return
	}
	to, ok := parseTimeQuery(c, "to")
	if !ok {
		return
	}

	events, err := s.notificationSvc.ListCalendar(c.Request.Context(), user.ID, from, to)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"events": events})
}

func (s *Server) CreateCalendarEvent(c *gin.Context) {
	user, ok := s.mustUser(c)
	if !ok {
		return
	}

	var req CreateCalendarEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}
	relatedID, ok := parseOptionalID(req.RelatedID)
	if !ok {
		AbortWithError(c, newValidationError("related_id", "invalid_id", "invalid identifier"))
		return
	}

	event, err := s.notificationSvc.CreateCalendarEvent(c.Request.Context(), notificationdomain.CalendarEventRequest{
		UserID:    user.ID,
		Title:     strings.TrimSpace(req.Title),
		Date:      req.Date,
		EndDate:   req.EndDate,
		Type:      strings.ToUpper(strings.TrimSpace(req.Type)),
		RelatedID: relatedID,
		Notes:     req.Notes,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, event)
}

func (s *Server) UpdateCalendarEvent(c *gin.Context) {
	user, ok := s.mustUser(c)
	if !ok {
		return
	}
	eventID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req UpdateCalendarEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	event, err := s.notificationSvc.UpdateCalendarEvent(c.Request.Context(), notificationdomain.CalendarEventUpdate{
		ID:      eventID,
		UserID:  user.ID,
		Title:   req.Title,
		Date:    req.Date,
		EndDate: req.EndDate,
		Notes:   req.Notes,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, event)
}

func (s *Server) DeleteCalendarEvent(c *gin.Context) {
	user, ok := s.mustUser(c)
	if !ok {
		return
	}
	eventID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := s.notificationSvc.DeleteCalendarEvent(c.Request.Context(), user.ID, eventID); err != nil {
		AbortWithError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func parseTimeQuery(c *gin.Context, name string) (*time.Time, bool) {
	raw := strings.TrimSpace(c.Query(name))
	if raw == "" {
		return nil, true
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		AbortWithError(c, newValidationError(name, "invalid_time", "must be RFC 3339"))
		return nil, false
	}
	return &t, true
}
