package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/tedxmekong/stagehub/internal/notification/domain"
	"go.uber.org/zap"
)

type Service struct {
	log   *zap.Logger
	repo  domain.Repository
	genID *snowflake.Node
}

func New(log *zap.Logger, repo domain.Repository, genID *snowflake.Node) domain.Service {
	return &Service{
		log:   log.Named("notification.service"),
		repo:  repo,
		genID: genID,
	}
}

func (s *Service) Notify(ctx context.Context, req domain.NotifyRequest) (*domain.Notification, error) {
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return nil, domain.ErrInvalidTitle
	}
	notificationType := req.Type
	if notificationType == "" {
		notificationType = domain.TypeGeneral
	}

	notification := &domain.Notification{
		ID:        s.genID.Generate(),
		UserID:    req.UserID,
		Title:     title,
		Content:   strings.TrimSpace(req.Content),
		Type:      notificationType,
		RelatedID: req.RelatedID,
	}
	if err := s.repo.Create(ctx, notification); err != nil {
		return nil, err
	}
	return notification, nil
}

func (s *Service) ListMine(ctx context.Context, userID snowflake.ID) ([]domain.Notification, error) {
	return s.repo.ListByUser(ctx, userID)
}

func (s *Service) MarkRead(ctx context.Context, userID, notificationID snowflake.ID) error {
	notification, err := s.repo.FindByID(ctx, notificationID)
	if err != nil {
		return err
	}
	if notification.UserID != userID {
		return domain.ErrNotificationNotFound
	}
	return s.repo.MarkRead(ctx, notificationID)
}

func (s *Service) MarkAllRead(ctx context.Context, userID snowflake.ID) error {
	return s.repo.MarkAllRead(ctx, userID)
}

func (s *Service) CreateCalendarEvent(ctx context.Context, req domain.CalendarEventRequest) (*domain.CalendarEvent, error) {
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return nil, domain.ErrInvalidTitle
	}
	if req.Date.IsZero() {
		return nil, domain.ErrInvalidDate
	}
	entryType := req.Type
	if entryType == "" {
		entryType = domain.CalendarCustom
	}

	event := &domain.CalendarEvent{
		ID:        s.genID.Generate(),
		UserID:    req.UserID,
		Title:     title,
		Date:      req.Date.UTC(),
		EndDate:   req.EndDate,
		Type:      entryType,
		RelatedID: req.RelatedID,
		Notes:     strings.TrimSpace(req.Notes),
	}
	if err := s.repo.CreateCalendarEvent(ctx, event); err != nil {
		return nil, err
	}
	return event, nil
}

func (s *Service) ListCalendar(ctx context.Context, userID snowflake.ID, from, to *time.Time) ([]domain.CalendarEvent, error) {
	return s.repo.ListCalendarEvents(ctx, userID, from, to)
}

func (s *Service) UpdateCalendarEvent(ctx context.Context, req domain.CalendarEventUpdate) (*domain.CalendarEvent, error) {
	event, err := s.repo.FindCalendarEvent(ctx, req.ID)
	if err != nil {
		return nil, err
	}
	if event.UserID != req.UserID {
		return nil, domain.ErrCalendarEventNotFound
	}

	fields := map[string]any{"updated_at": time.Now().UTC()}
	if req.Title != nil {
		title := strings.TrimSpace(*req.Title)
		if title == "" {
			return nil, domain.ErrInvalidTitle
		}
		fields["title"] = title
	}
	if req.Date != nil {
		if req.Date.IsZero() {
			return nil, domain.ErrInvalidDate
		}
		fields["date"] = req.Date.UTC()
	}
	if req.EndDate != nil {
		fields["end_date"] = *req.EndDate
	}
	if req.Notes != nil {
		fields["notes"] = strings.TrimSpace(*req.Notes)
	}

	if err := s.repo.UpdateCalendarFields(ctx, req.ID, fields); err != nil {
		return nil, err
	}
	return s.repo.FindCalendarEvent(ctx, req.ID)
}

func (s *Service) DeleteCalendarEvent(ctx context.Context, userID, eventID snowflake.ID) error {
	event, err := s.repo.FindCalendarEvent(ctx, eventID)
	if err != nil {
		return err
	}
	if event.UserID != userID {
		return domain.ErrCalendarEventNotFound
	}
	return s.repo.DeleteCalendarEvent(ctx, eventID)
}
