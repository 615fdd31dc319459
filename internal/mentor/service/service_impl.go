package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/tedxmekong/stagehub/internal/mentor/domain"
	notificationdomain "github.com/tedxmekong/stagehub/internal/notification/domain"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const defaultSessionMinutes = 60

type Service struct {
	log           *zap.Logger
	db            *gorm.DB
	repo          domain.Repository
	notifications notificationdomain.Service
	genID         *snowflake.Node
}

func New(log *zap.Logger, conn *gorm.DB, repo domain.Repository, notifications notificationdomain.Service, genID *snowflake.Node) domain.Service {
	return &Service{
		log:           log.Named("mentor.service"),
		db:            conn,
		repo:          repo,
		notifications: notifications,
		genID:         genID,
	}
}

func (s *Service) AddSlot(ctx context.Context, req domain.SlotRequest) (*domain.Slot, error) {
	start := strings.TrimSpace(req.StartTime)
	end := strings.TrimSpace(req.EndTime)
	if !validClock(start) || !validClock(end) || start >= end {
		return nil, domain.ErrInvalidTimeRange
	}
	if req.Date.IsZero() {
		return nil, domain.ErrInvalidTimeRange
	}

	slot := &domain.Slot{
		ID:        s.genID.Generate(),
		MentorID:  req.MentorID,
		Date:      req.Date.UTC(),
		StartTime: start,
		EndTime:   end,
		Available: true,
	}
	if err := s.repo.CreateSlot(ctx, slot); err != nil {
		return nil, err
	}
	return slot, nil
}

// validClock accepts "HH:MM" 24h times, which also compare correctly
// as strings.
func validClock(v string) bool {
	_, err := time.Parse("15:04", v)
	return err == nil
}

func (s *Service) ListSlots(ctx context.Context, mentorID snowflake.ID, availableOnly bool) ([]domain.Slot, error) {
	return s.repo.ListSlots(ctx, mentorID, availableOnly)
}

func (s *Service) ToggleSlot(ctx context.Context, mentorID, slotID snowflake.ID) (*domain.Slot, error) {
	slot, err := s.repo.FindSlot(ctx, slotID)
	if err != nil {
		return nil, err
	}
	if slot.MentorID != mentorID {
		return nil, domain.ErrSlotNotFound
	}

	if err := s.repo.SetSlotAvailability(ctx, slotID, !slot.Available); err != nil {
		return nil, err
	}
	slot.Available = !slot.Available
	return slot, nil
}

func (s *Service) RemoveSlot(ctx context.Context, mentorID, slotID snowflake.ID) error {
	slot, err := s.repo.FindSlot(ctx, slotID)
	if err != nil {
		return err
	}
	if slot.MentorID != mentorID {
		return domain.ErrSlotNotFound
	}
	return s.repo.DeleteSlot(ctx, slotID)
}

func (s *Service) Book(ctx context.Context, req domain.BookRequest) (*domain.Session, error) {
	slot, err := s.repo.FindSlot(ctx, req.SlotID)
	if err != nil {
		return nil, err
	}
	if !slot.Available {
		return nil, domain.ErrSlotUnavailable
	}

	duration := req.Duration
	if duration <= 0 {
		duration = defaultSessionMinutes
	}

	session := &domain.Session{
		ID:         s.genID.Generate(),
		MentorID:   slot.MentorID,
		StudentID:  req.StudentID,
		OfferingID: req.OfferingID,
		SlotID:     slot.ID,
		Date:       slot.Date,
		Duration:   duration,
		Status:     domain.SessionScheduled,
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.repo.ClaimSlot(ctx, tx, slot.ID); err != nil {
			return err
		}
		return s.repo.CreateSession(ctx, tx, session)
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("session booked",
		zap.Int64("session_id", int64(session.ID)),
		zap.Int64("mentor_id", int64(session.MentorID)),
		zap.Int64("student_id", int64(session.StudentID)),
	)
	s.afterBooking(ctx, session, slot)
	return session, nil
}

// afterBooking drops the mentor notification and both calendar
// entries. Failures only log.
func (s *Service) afterBooking(ctx context.Context, session *domain.Session, slot *domain.Slot) {
	sessionID := session.ID
	if _, err := s.notifications.Notify(ctx, notificationdomain.NotifyRequest{
		UserID:    session.MentorID,
		Title:     "New mentoring session",
		Content:   "A student booked your slot on " + slot.Date.Format("2006-01-02") + " at " + slot.StartTime + ".",
		Type:      notificationdomain.TypeBooking,
		RelatedID: &sessionID,
	}); err != nil {
		s.log.Warn("booking notification failed", zap.Int64("session_id", int64(session.ID)), zap.Error(err))
	}

	for _, userID := range []snowflake.ID{session.MentorID, session.StudentID} {
		if _, err := s.notifications.CreateCalendarEvent(ctx, notificationdomain.CalendarEventRequest{
			UserID:    userID,
			Title:     "Mentoring session",
			Date:      session.Date,
			Type:      notificationdomain.CalendarSession,
			RelatedID: &sessionID,
			Notes:     slot.StartTime + "-" + slot.EndTime,
		}); err != nil {
			s.log.Warn("booking calendar entry failed", zap.Int64("session_id", int64(session.ID)), zap.Error(err))
		}
	}
}

func (s *Service) ListForMentor(ctx context.Context, mentorID snowflake.ID) ([]domain.Session, error) {
	return s.repo.ListSessionsByMentor(ctx, mentorID)
}

func (s *Service) ListForStudent(ctx context.Context, studentID snowflake.ID) ([]domain.Session, error) {
	return s.repo.ListSessionsByStudent(ctx, studentID)
}

func (s *Service) Complete(ctx context.Context, mentorID, sessionID snowflake.ID, feedback string) (*domain.Session, error) {
	session, err := s.repo.FindSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session.MentorID != mentorID {
		return nil, domain.ErrNotSessionMentor
	}
	if session.Status != domain.SessionScheduled {
		return nil, domain.ErrSessionNotActive
	}

	trimmed := strings.TrimSpace(feedback)
	fields := map[string]any{
		"status":     domain.SessionCompleted,
		"updated_at": time.Now().UTC(),
	}
	if trimmed != "" {
		fields["feedback"] = trimmed
	}
	if err := s.repo.UpdateSessionFields(ctx, nil, sessionID, fields); err != nil {
		return nil, err
	}

	session.Status = domain.SessionCompleted
	if trimmed != "" {
		session.Feedback = &trimmed
	}
	return session, nil
}

func (s *Service) Cancel(ctx context.Context, actorID, sessionID snowflake.ID) (*domain.Session, error) {
	session, err := s.repo.FindSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if actorID != session.MentorID && actorID != session.StudentID {
		return nil, domain.ErrNotSessionStudent
	}
	if session.Status != domain.SessionScheduled {
		return nil, domain.ErrSessionNotActive
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.repo.UpdateSessionFields(ctx, tx, sessionID, map[string]any{
			"status":     domain.SessionCancelled,
			"updated_at": time.Now().UTC(),
		}); err != nil {
			return err
		}
		return s.repo.ReleaseSlot(ctx, tx, session.SlotID)
	})
	if err != nil {
		return nil, err
	}

	session.Status = domain.SessionCancelled
	return session, nil
}
