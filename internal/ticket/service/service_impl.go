package service

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"github.com/google/uuid"
	authdomain "github.com/tedxmekong/stagehub/internal/auth/domain"
	"github.com/tedxmekong/stagehub/internal/config"
	eventdomain "github.com/tedxmekong/stagehub/internal/event/domain"
	notificationdomain "github.com/tedxmekong/stagehub/internal/notification/domain"
	"github.com/tedxmekong/stagehub/internal/observability/metrics"
	orderdomain "github.com/tedxmekong/stagehub/internal/order/domain"
	"github.com/tedxmekong/stagehub/internal/providers/email"
	"github.com/tedxmekong/stagehub/internal/providers/pdf"
	"github.com/tedxmekong/stagehub/internal/ticket/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	Log           *zap.Logger
	DB            *gorm.DB
	Repo          domain.Repository
	Events        eventdomain.Service
	Orders        orderdomain.Service
	Users         authdomain.Service
	Notifications notificationdomain.Service
	Mailer        email.Provider
	Renderer      *pdf.Renderer
	Commerce      *config.CommerceConfigHolder
	Metrics       *metrics.Metrics
	GenID         *snowflake.Node
}

type Service struct {
	log           *zap.Logger
	db            *gorm.DB
	repo          domain.Repository
	events        eventdomain.Service
	orders        orderdomain.Service
	users         authdomain.Service
	notifications notificationdomain.Service
	mailer        email.Provider
	renderer      *pdf.Renderer
	commerce      *config.CommerceConfigHolder
	metrics       *metrics.Metrics
	genID         *snowflake.Node
}

func New(p Params) domain.Service {
	return &Service{
		log:           p.Log.Named("ticket.service"),
		db:            p.DB,
		repo:          p.Repo,
		events:        p.Events,
		orders:        p.Orders,
		users:         p.Users,
		notifications: p.Notifications,
		mailer:        p.Mailer,
		renderer:      p.Renderer,
		commerce:      p.Commerce,
		metrics:       p.Metrics,
		genID:         p.GenID,
	}
}

func (s *Service) Purchase(ctx context.Context, userID, eventID snowflake.ID) (*domain.EventTicket, error) {
	event, err := s.events.GetApproved(ctx, eventID)
	if err != nil {
		return nil, err
	}

	ticket := &domain.EventTicket{
		ID:            s.genID.Generate(),
		EventID:       event.ID,
		UserID:        userID,
		QRCode:        uuid.NewString(),
		PaymentStatus: domain.PaymentPending,
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		order, err := s.orders.CreateTicketOrder(ctx, tx, orderdomain.TicketOrderRequest{
			UserID:    userID,
			EventID:   event.ID,
			EventName: event.Name,
			Price:     event.TicketPrice,
		})
		if err != nil {
			return err
		}
		ticket.OrderID = order.ID
		return s.repo.Create(ctx, tx, ticket)
	})
	if err != nil {
		return nil, err
	}

	s.metrics.RecordTicketIssued()
	s.log.Info("ticket issued",
		zap.Int64("ticket_id", int64(ticket.ID)),
		zap.Int64("event_id", int64(event.ID)),
	)

	// Calendar entry on the event date; failure never blocks the sale.
	eventRef := event.ID
	if _, err := s.notifications.CreateCalendarEvent(ctx, notificationdomain.CalendarEventRequest{
		UserID:    userID,
		Title:     event.Name,
		Date:      event.Date,
		Type:      notificationdomain.CalendarTicket,
		RelatedID: &eventRef,
		Notes:     event.Location,
	}); err != nil {
		s.log.Warn("calendar entry failed", zap.Int64("ticket_id", int64(ticket.ID)), zap.Error(err))
	}

	return ticket, nil
}

func (s *Service) Get(ctx context.Context, userID, ticketID snowflake.ID) (*domain.EventTicket, error) {
	ticket, err := s.repo.FindByID(ctx, ticketID)
	if err != nil {
		return nil, err
	}
	if ticket.UserID != userID {
		return nil, domain.ErrTicketNotFound
	}
	return ticket, nil
}

func (s *Service) ListMine(ctx context.Context, userID snowflake.ID) ([]domain.EventTicket, error) {
	return s.repo.ListByUser(ctx, userID)
}

func (s *Service) ConfirmPayment(ctx context.Context, ticketID snowflake.ID) (*domain.EventTicket, error) {
	ticket, err := s.repo.FindByID(ctx, ticketID)
	if err != nil {
		return nil, err
	}
	if ticket.PaymentStatus != domain.PaymentPending {
		return nil, domain.ErrTicketNotPending
	}

	if err := s.repo.UpdatePaymentStatus(ctx, ticketID, domain.PaymentPaid); err != nil {
		return nil, err
	}
	ticket.PaymentStatus = domain.PaymentPaid

	// The backing order moves to PROCESSING with the payment.
	if _, err := s.orders.AdvanceStatus(ctx, ticket.OrderID, orderdomain.StatusProcessing); err != nil {
		s.log.Warn("order advance after payment failed",
			zap.Int64("order_id", int64(ticket.OrderID)), zap.Error(err))
	}

	s.afterPayment(ctx, ticket)
	return ticket, nil
}

func (s *Service) afterPayment(ctx context.Context, ticket *domain.EventTicket) {
	ticketID := ticket.ID
	if _, err := s.notifications.Notify(ctx, notificationdomain.NotifyRequest{
		UserID:    ticket.UserID,
		Title:     "Ticket confirmed",
		Content:   "Your payment was received. See you at the event.",
		Type:      notificationdomain.TypeOrder,
		RelatedID: &ticketID,
	}); err != nil {
		s.log.Warn("ticket notification failed", zap.Int64("ticket_id", int64(ticket.ID)), zap.Error(err))
	}

	user, err := s.users.GetUser(ctx, ticket.UserID)
	if err != nil {
		s.log.Warn("ticket mail skipped, user lookup failed", zap.Error(err))
		return
	}
	event, err := s.events.Get(ctx, ticket.EventID)
	if err != nil {
		s.log.Warn("ticket mail skipped, event lookup failed", zap.Error(err))
		return
	}
	if err := s.mailer.Send(ctx, email.TicketConfirmationMessage(user.Email, event.Name, ticket.QRCode)); err != nil {
		s.log.Warn("ticket mail failed", zap.Int64("ticket_id", int64(ticket.ID)), zap.Error(err))
	}
}

func (s *Service) Cancel(ctx context.Context, userID, ticketID snowflake.ID) (*domain.EventTicket, error) {
	ticket, err := s.Get(ctx, userID, ticketID)
	if err != nil {
		return nil, err
	}
	if ticket.PaymentStatus != domain.PaymentPending {
		return nil, domain.ErrTicketNotPending
	}

	if err := s.repo.UpdatePaymentStatus(ctx, ticketID, domain.PaymentCancelled); err != nil {
		return nil, err
	}
	ticket.PaymentStatus = domain.PaymentCancelled

	if _, err := s.orders.AdvanceStatus(ctx, ticket.OrderID, orderdomain.StatusCancelled); err != nil {
		s.log.Warn("order cancel after ticket cancel failed",
			zap.Int64("order_id", int64(ticket.OrderID)), zap.Error(err))
	}
	return ticket, nil
}

func (s *Service) ReceiptPDF(ctx context.Context, userID, ticketID snowflake.ID) ([]byte, error) {
	ticket, err := s.Get(ctx, userID, ticketID)
	if err != nil {
		return nil, err
	}
	if ticket.PaymentStatus != domain.PaymentPaid {
		return nil, domain.ErrTicketNotPaid
	}

	event, err := s.events.Get(ctx, ticket.EventID)
	if err != nil {
		return nil, err
	}
	user, err := s.users.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	return s.renderer.RenderTicket(pdf.TicketReceipt{
		EventName:   event.Name,
		EventDate:   event.Date,
		Location:    event.Location,
		HolderName:  user.DisplayName,
		QRCode:      ticket.QRCode,
		Price:       event.TicketPrice,
		Currency:    s.commerce.Current().Currency,
		PurchasedAt: ticket.CreatedAt,
	})
}
