package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/tedxmekong/stagehub/internal/event/domain"
	"go.uber.org/zap"
)

type Service struct {
	log   *zap.Logger
	repo  domain.Repository
	genID *snowflake.Node
}

func New(log *zap.Logger, repo domain.Repository, genID *snowflake.Node) domain.Service {
	return &Service{
		log:   log.Named("event.service"),
		repo:  repo,
		genID: genID,
	}
}

func (s *Service) Create(ctx context.Context, req domain.CreateRequest) (*domain.Event, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, domain.ErrInvalidName
	}
	if req.TicketPrice < 0 {
		return nil, domain.ErrInvalidPrice
	}
	eventType := strings.ToUpper(strings.TrimSpace(req.Type))
	if !domain.ValidType(eventType) {
		return nil, domain.ErrInvalidType
	}
	if req.Date.IsZero() {
		return nil, domain.ErrInvalidDate
	}

	event := &domain.Event{
		ID:             s.genID.Generate(),
		Name:           name,
		Description:    strings.TrimSpace(req.Description),
		Date:           req.Date.UTC(),
		Location:       strings.TrimSpace(req.Location),
		TicketPrice:    req.TicketPrice,
		Type:           eventType,
		OrganizationID: req.OrganizationID,
		Approved:       false,
		CreatedBy:      req.CreatedBy,
	}
	if err := s.repo.Create(ctx, event); err != nil {
		return nil, err
	}

	s.log.Info("event created",
		zap.Int64("event_id", int64(event.ID)),
		zap.String("type", event.Type),
		zap.Time("date", event.Date),
	)
	return event, nil
}

func (s *Service) Get(ctx context.Context, id snowflake.ID) (*domain.Event, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *Service) GetApproved(ctx context.Context, id snowflake.ID) (*domain.Event, error) {
	event, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !event.Approved {
		return nil, domain.ErrEventNotFound
	}
	return event, nil
}

func (s *Service) ListPublic(ctx context.Context, upcomingOnly bool) ([]domain.Event, error) {
	filter := domain.ListFilter{ApprovedOnly: true}
	if upcomingOnly {
		now := time.Now().UTC()
		filter.After = &now
	}
	return s.repo.List(ctx, filter)
}

func (s *Service) ListAll(ctx context.Context) ([]domain.Event, error) {
	return s.repo.List(ctx, domain.ListFilter{})
}

func (s *Service) Update(ctx context.Context, req domain.UpdateRequest) (*domain.Event, error) {
	if _, err := s.repo.FindByID(ctx, req.ID); err != nil {
		return nil, err
	}

	fields := map[string]any{"updated_at": time.Now().UTC()}
	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, domain.ErrInvalidName
		}
		fields["name"] = name
	}
	if req.Description != nil {
		fields["description"] = strings.TrimSpace(*req.Description)
	}
	if req.Date != nil {
		if req.Date.IsZero() {
			return nil, domain.ErrInvalidDate
		}
		fields["date"] = req.Date.UTC()
	}
	if req.Location != nil {
		fields["location"] = strings.TrimSpace(*req.Location)
	}
	if req.TicketPrice != nil {
		if *req.TicketPrice < 0 {
			return nil, domain.ErrInvalidPrice
		}
		fields["ticket_price"] = *req.TicketPrice
	}
	if req.Type != nil {
		eventType := strings.ToUpper(strings.TrimSpace(*req.Type))
		if !domain.ValidType(eventType) {
			return nil, domain.ErrInvalidType
		}
		fields["type"] = eventType
	}

	if err := s.repo.UpdateFields(ctx, req.ID, fields); err != nil {
		return nil, err
	}
	return s.repo.FindByID(ctx, req.ID)
}

func (s *Service) Approve(ctx context.Context, id snowflake.ID) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return err
	}
	return s.repo.UpdateFields(ctx, id, map[string]any{
		"approved":   true,
		"updated_at": time.Now().UTC(),
	})
}
