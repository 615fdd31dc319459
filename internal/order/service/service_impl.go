package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	authdomain "github.com/tedxmekong/stagehub/internal/auth/domain"
	cartdomain "github.com/tedxmekong/stagehub/internal/cart/domain"
	"github.com/tedxmekong/stagehub/internal/config"
	discountdomain "github.com/tedxmekong/stagehub/internal/discount/domain"
	notificationdomain "github.com/tedxmekong/stagehub/internal/notification/domain"
	"github.com/tedxmekong/stagehub/internal/observability/metrics"
	"github.com/tedxmekong/stagehub/internal/order/domain"
	productdomain "github.com/tedxmekong/stagehub/internal/product/domain"
	"github.com/tedxmekong/stagehub/internal/providers/email"
	"github.com/tedxmekong/stagehub/pkg/db/pagination"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	Log           *zap.Logger
	DB            *gorm.DB
	Repo          domain.Repository
	CartRepo      cartdomain.Repository
	ProductRepo   productdomain.Repository
	Discounts     discountdomain.Service
	Commerce      *config.CommerceConfigHolder
	Users         authdomain.Service
	Notifications notificationdomain.Service
	Mailer        email.Provider
	Metrics       *metrics.Metrics
	GenID         *snowflake.Node
}

type Service struct {
	log           *zap.Logger
	db            *gorm.DB
	repo          domain.Repository
	cartRepo      cartdomain.Repository
	productRepo   productdomain.Repository
	discounts     discountdomain.Service
	commerce      *config.CommerceConfigHolder
	users         authdomain.Service
	notifications notificationdomain.Service
	mailer        email.Provider
	metrics       *metrics.Metrics
	genID         *snowflake.Node
}

func New(p Params) domain.Service {
	return &Service{
		log:           p.Log.Named("order.service"),
		db:            p.DB,
		repo:          p.Repo,
		cartRepo:      p.CartRepo,
		productRepo:   p.ProductRepo,
		discounts:     p.Discounts,
		commerce:      p.Commerce,
		users:         p.Users,
		notifications: p.Notifications,
		mailer:        p.Mailer,
		metrics:       p.Metrics,
		genID:         p.GenID,
	}
}

func (s *Service) Checkout(ctx context.Context, req domain.CheckoutRequest) (*domain.OrderWithItems, error) {
	if strings.TrimSpace(req.ShippingAddress) == "" {
		return nil, domain.ErrInvalidAddress
	}

	lines, err := s.cartRepo.ListLines(ctx, req.UserID)
	if err != nil {
		return nil, err
	}
	if len(lines) == 0 {
		return nil, domain.ErrEmptyCart
	}

	var subtotal int64
	items := make([]domain.OrderItem, 0, len(lines))
	for _, line := range lines {
		if !line.Approved {
			return nil, domain.ErrProductUnavailable
		}
		subtotal += line.LineSubtotal
	}

	commerce := s.commerce.Current()
	order := &domain.Order{
		ID:              s.genID.Generate(),
		UserID:          req.UserID,
		Type:            domain.TypeMerchandise,
		Status:          domain.StatusPending,
		Subtotal:        subtotal,
		ShippingFee:     commerce.ShippingFee,
		ShippingAddress: strings.TrimSpace(req.ShippingAddress),
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, line := range lines {
			if err := s.productRepo.DecrementStock(ctx, tx, line.Item.ProductID, line.Item.Quantity); err != nil {
				return err
			}
			productID := line.Item.ProductID
			items = append(items, domain.OrderItem{
				ID:        s.genID.Generate(),
				OrderID:   order.ID,
				ProductID: &productID,
				Name:      line.ProductName,
				Quantity:  line.Item.Quantity,
				UnitPrice: line.UnitPrice,
			})
		}

		if code := strings.TrimSpace(req.DiscountCode); code != "" {
			quote, err := s.discounts.Redeem(ctx, tx, code, subtotal)
			if err != nil {
				return err
			}
			order.DiscountCode = quote.Code
			order.DiscountAmount = quote.DiscountAmount
		}

		order.Total = order.Subtotal - order.DiscountAmount + order.ShippingFee

		if err := s.repo.Create(ctx, tx, order, items); err != nil {
			return err
		}
		return s.cartRepo.DeleteAll(ctx, tx, req.UserID)
	})
	if err != nil {
		if errors.Is(err, productdomain.ErrInsufficientStock) || errors.Is(err, discountdomain.ErrRedeemConflict) {
			s.metrics.RecordCheckoutConflict()
		}
		return nil, err
	}

	s.metrics.RecordOrderCreated(domain.TypeMerchandise)
	s.log.Info("order created",
		zap.Int64("order_id", int64(order.ID)),
		zap.Int64("user_id", int64(order.UserID)),
		zap.Int64("total", order.Total),
	)
	s.afterCheckout(ctx, order)

	return &domain.OrderWithItems{Order: *order, Items: items}, nil
}

// afterCheckout sends the confirmation mail and the in-app
// notification. Failures here never fail the order.
func (s *Service) afterCheckout(ctx context.Context, order *domain.Order) {
	orderID := order.ID
	if _, err := s.notifications.Notify(ctx, notificationdomain.NotifyRequest{
		UserID:    order.UserID,
		Title:     "Order received",
		Content:   "Your order has been received and is pending processing.",
		Type:      notificationdomain.TypeOrder,
		RelatedID: &orderID,
	}); err != nil {
		s.log.Warn("order notification failed", zap.Int64("order_id", int64(order.ID)), zap.Error(err))
	}

	user, err := s.users.GetUser(ctx, order.UserID)
	if err != nil {
		s.log.Warn("order mail skipped, user lookup failed", zap.Int64("order_id", int64(order.ID)), zap.Error(err))
		return
	}
	currency := s.commerce.Current().Currency
	msg := email.OrderConfirmationMessage(user.Email, int64(order.ID), order.Total, currency)
	if err := s.mailer.Send(ctx, msg); err != nil {
		s.log.Warn("order mail failed", zap.Int64("order_id", int64(order.ID)), zap.Error(err))
	}
}

func (s *Service) CreateTicketOrder(ctx context.Context, tx *gorm.DB, req domain.TicketOrderRequest) (*domain.Order, error) {
	order := &domain.Order{
		ID:       s.genID.Generate(),
		UserID:   req.UserID,
		Type:     domain.TypeTicket,
		Status:   domain.StatusPending,
		Subtotal: req.Price,
		Total:    req.Price,
	}
	items := []domain.OrderItem{{
		ID:        s.genID.Generate(),
		OrderID:   order.ID,
		Name:      req.EventName,
		Quantity:  1,
		UnitPrice: req.Price,
	}}
	if err := s.repo.Create(ctx, tx, order, items); err != nil {
		return nil, err
	}

	s.metrics.RecordOrderCreated(domain.TypeTicket)
	return order, nil
}

func (s *Service) Get(ctx context.Context, orderID snowflake.ID) (*domain.OrderWithItems, error) {
	order, err := s.repo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	items, err := s.repo.ListItems(ctx, orderID)
	if err != nil {
		return nil, err
	}
	return &domain.OrderWithItems{Order: *order, Items: items}, nil
}

func (s *Service) GetForUser(ctx context.Context, userID, orderID snowflake.ID) (*domain.OrderWithItems, error) {
	result, err := s.Get(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if result.Order.UserID != userID {
		return nil, domain.ErrOrderNotFound
	}
	return result, nil
}

func (s *Service) ListMine(ctx context.Context, userID snowflake.ID) ([]domain.Order, error) {
	return s.repo.ListByUser(ctx, userID)
}

func (s *Service) ListAll(ctx context.Context, req domain.ListAllRequest) (domain.ListAllResponse, error) {
	pageSize := req.PageSize
	if pageSize <= 0 {
		pageSize = 50
	}

	var cursor *pagination.Cursor
	if req.PageToken != "" {
		decoded, err := pagination.DecodeCursor(req.PageToken)
		if err != nil {
			return domain.ListAllResponse{}, domain.ErrInvalidPageToken
		}
		cursor = decoded
	}

	items, err := s.repo.ListAll(ctx, cursor, pageSize)
	if err != nil {
		return domain.ListAllResponse{}, err
	}

	pageInfo := pagination.BuildCursorPageInfo(items, pageSize, func(order *domain.Order) string {
		token, err := pagination.EncodeCursor(pagination.Cursor{
			ID:        order.ID.String(),
			CreatedAt: order.CreatedAt.UTC().Format(time.RFC3339),
		})
		if err != nil {
			return ""
		}
		return token
	})
	if len(items) > pageSize {
		items = items[:pageSize]
	}

	orders := make([]domain.Order, 0, len(items))
	for _, item := range items {
		if item == nil {
			continue
		}
		orders = append(orders, *item)
	}

	resp := domain.ListAllResponse{Orders: orders}
	if pageInfo != nil {
		resp.PageInfo = *pageInfo
	}
	return resp, nil
}

func (s *Service) AdvanceStatus(ctx context.Context, orderID snowflake.ID, status string) (*domain.Order, error) {
	if !domain.ValidStatus(status) {
		return nil, domain.ErrInvalidStatus
	}

	order, err := s.repo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if !domain.CanTransition(order.Status, status) {
		return nil, domain.ErrInvalidTransition
	}

	if status == domain.StatusCancelled {
		return s.cancel(ctx, order)
	}

	if err := s.repo.UpdateStatus(ctx, nil, orderID, status); err != nil {
		return nil, err
	}
	order.Status = status
	s.notifyStatus(ctx, order)
	return order, nil
}

func (s *Service) Cancel(ctx context.Context, userID, orderID snowflake.ID) (*domain.Order, error) {
	order, err := s.repo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.UserID != userID {
		return nil, domain.ErrOrderNotFound
	}
	if !domain.CanTransition(order.Status, domain.StatusCancelled) {
		return nil, domain.ErrNotCancellable
	}
	return s.cancel(ctx, order)
}

// cancel flips the order to CANCELLED and restores stock in the same
// transaction.
func (s *Service) cancel(ctx context.Context, order *domain.Order) (*domain.Order, error) {
	items, err := s.repo.ListItems(ctx, order.ID)
	if err != nil {
		return nil, err
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.repo.UpdateStatus(ctx, tx, order.ID, domain.StatusCancelled); err != nil {
			return err
		}
		for _, item := range items {
			if item.ProductID == nil {
				continue
			}
			if err := s.productRepo.RestoreStock(ctx, tx, *item.ProductID, item.Quantity); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	order.Status = domain.StatusCancelled
	s.notifyStatus(ctx, order)
	return order, nil
}

func (s *Service) notifyStatus(ctx context.Context, order *domain.Order) {
	orderID := order.ID
	if _, err := s.notifications.Notify(ctx, notificationdomain.NotifyRequest{
		UserID:    order.UserID,
		Title:     "Order " + strings.ToLower(order.Status),
		Content:   "Your order status changed to " + order.Status + ".",
		Type:      notificationdomain.TypeOrder,
		RelatedID: &orderID,
	}); err != nil {
		s.log.Warn("status notification failed", zap.Int64("order_id", int64(order.ID)), zap.Error(err))
	}
}
