package service

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"github.com/tedxmekong/stagehub/internal/cart/domain"
	productdomain "github.com/tedxmekong/stagehub/internal/product/domain"
	"go.uber.org/zap"
)

type Service struct {
	log      *zap.Logger
	repo     domain.Repository
	products productdomain.Service
	genID    *snowflake.Node
}

func New(log *zap.Logger, repo domain.Repository, products productdomain.Service, genID *snowflake.Node) domain.Service {
	return &Service{
		log:      log.Named("cart.service"),
		repo:     repo,
		products: products,
		genID:    genID,
	}
}

func (s *Service) Add(ctx context.Context, userID, productID snowflake.ID, quantity int) (*domain.CartItem, error) {
	if quantity <= 0 {
		return nil, domain.ErrInvalidQuantity
	}
	if _, err := s.products.GetApproved(ctx, productID); err != nil {
		return nil, err
	}

	item := &domain.CartItem{
		ID:        s.genID.Generate(),
		UserID:    userID,
		ProductID: productID,
		Quantity:  quantity,
	}
	return s.repo.Upsert(ctx, item)
}

func (s *Service) UpdateQuantity(ctx context.Context, userID, productID snowflake.ID, quantity int) (*domain.CartItem, error) {
	if quantity <= 0 {
		return nil, domain.ErrInvalidQuantity
	}

	item, err := s.repo.Find(ctx, userID, productID)
	if err != nil {
		return nil, err
	}
	if err := s.repo.UpdateQuantity(ctx, item.ID, quantity); err != nil {
		return nil, err
	}
	item.Quantity = quantity
	return item, nil
}

func (s *Service) Remove(ctx context.Context, userID, productID snowflake.ID) error {
	item, err := s.repo.Find(ctx, userID, productID)
	if err != nil {
		return err
	}
	return s.repo.Delete(ctx, item.ID)
}

func (s *Service) List(ctx context.Context, userID snowflake.ID) ([]domain.Line, error) {
	return s.repo.ListLines(ctx, userID)
}

func (s *Service) Clear(ctx context.Context, userID snowflake.ID) error {
	return s.repo.DeleteAll(ctx, nil, userID)
}
