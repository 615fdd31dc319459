package service

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/tedxmekong/stagehub/internal/product/domain"
	"go.uber.org/zap"
	"gorm.io/datatypes"
)

type Service struct {
	log   *zap.Logger
	repo  domain.Repository
	genID *snowflake.Node
}

func New(log *zap.Logger, repo domain.Repository, genID *snowflake.Node) domain.Service {
	return &Service{
		log:   log.Named("product.service"),
		repo:  repo,
		genID: genID,
	}
}

func (s *Service) Create(ctx context.Context, req domain.CreateRequest) (*domain.Product, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, domain.ErrInvalidName
	}
	if req.Price < 0 {
		return nil, domain.ErrInvalidPrice
	}
	if req.Stock < 0 {
		return nil, domain.ErrInvalidStock
	}

	images, err := encodeImages(req.Images)
	if err != nil {
		return nil, err
	}

	product := &domain.Product{
		ID:             s.genID.Generate(),
		Name:           name,
		Description:    strings.TrimSpace(req.Description),
		Price:          req.Price,
		Images:         images,
		Stock:          req.Stock,
		Category:       strings.TrimSpace(req.Category),
		OrganizationID: req.OrganizationID,
		Approved:       false,
		CreatedBy:      req.CreatedBy,
	}
	if err := s.repo.Create(ctx, product); err != nil {
		return nil, err
	}

	s.log.Info("product created",
		zap.Int64("product_id", int64(product.ID)),
		zap.Int("stock", product.Stock),
	)
	return product, nil
}

func (s *Service) Get(ctx context.Context, id snowflake.ID) (*domain.Product, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *Service) GetApproved(ctx context.Context, id snowflake.ID) (*domain.Product, error) {
	product, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !product.Approved {
		return nil, domain.ErrProductNotFound
	}
	return product, nil
}

func (s *Service) ListPublic(ctx context.Context) ([]domain.Product, error) {
	return s.repo.List(ctx, true)
}

func (s *Service) ListAll(ctx context.Context) ([]domain.Product, error) {
	return s.repo.List(ctx, false)
}

func (s *Service) Update(ctx context.Context, req domain.UpdateRequest) (*domain.Product, error) {
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
	if req.Price != nil {
		if *req.Price < 0 {
			return nil, domain.ErrInvalidPrice
		}
		fields["price"] = *req.Price
	}
	if req.Images != nil {
		images, err := encodeImages(req.Images)
		if err != nil {
			return nil, err
		}
		fields["images"] = images
	}
	if req.Category != nil {
		fields["category"] = strings.TrimSpace(*req.Category)
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

func (s *Service) AdjustStock(ctx context.Context, id snowflake.ID, delta int) (*domain.Product, error) {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return nil, err
	}

	switch {
	case delta > 0:
		if err := s.repo.RestoreStock(ctx, nil, id, delta); err != nil {
			return nil, err
		}
	case delta < 0:
		if err := s.repo.DecrementStock(ctx, nil, id, -delta); err != nil {
			return nil, err
		}
	}

	return s.repo.FindByID(ctx, id)
}

func encodeImages(images []string) (datatypes.JSON, error) {
	if images == nil {
		images = []string{}
	}
	raw, err := json.Marshal(images)
	if err != nil {
		return nil, err
	}
	return datatypes.JSON(raw), nil
}
