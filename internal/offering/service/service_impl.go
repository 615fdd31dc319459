package service

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/tedxmekong/stagehub/internal/offering/domain"
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
		log:   log.Named("offering.service"),
		repo:  repo,
		genID: genID,
	}
}

func (s *Service) Create(ctx context.Context, req domain.CreateRequest) (*domain.Offering, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, domain.ErrInvalidName
	}
	if req.Price < 0 {
		return nil, domain.ErrInvalidPrice
	}
	category := strings.ToLower(strings.TrimSpace(req.Category))
	if !domain.ValidCategory(category) {
		return nil, domain.ErrInvalidCategory
	}

	features, err := encodeFeatures(req.Features)
	if err != nil {
		return nil, err
	}

	offering := &domain.Offering{
		ID:             s.genID.Generate(),
		Name:           name,
		Description:    strings.TrimSpace(req.Description),
		Price:          req.Price,
		Category:       category,
		Features:       features,
		OrganizationID: req.OrganizationID,
		Approved:       false,
		CreatedBy:      req.CreatedBy,
	}
	if err := s.repo.Create(ctx, offering); err != nil {
		return nil, err
	}

	s.log.Info("offering created",
		zap.Int64("offering_id", int64(offering.ID)),
		zap.String("category", offering.Category),
	)
	return offering, nil
}

func (s *Service) Get(ctx context.Context, id snowflake.ID) (*domain.Offering, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *Service) GetApproved(ctx context.Context, id snowflake.ID) (*domain.Offering, error) {
	offering, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !offering.Approved {
		return nil, domain.ErrOfferingNotFound
	}
	return offering, nil
}

func (s *Service) ListPublic(ctx context.Context) ([]domain.Offering, error) {
	return s.repo.List(ctx, true)
}

func (s *Service) ListAll(ctx context.Context) ([]domain.Offering, error) {
	return s.repo.List(ctx, false)
}

func (s *Service) Update(ctx context.Context, req domain.UpdateRequest) (*domain.Offering, error) {
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
	if req.Category != nil {
		category := strings.ToLower(strings.TrimSpace(*req.Category))
		if !domain.ValidCategory(category) {
			return nil, domain.ErrInvalidCategory
		}
		fields["category"] = category
	}
	if req.Features != nil {
		features, err := encodeFeatures(req.Features)
		if err != nil {
			return nil, err
		}
		fields["features"] = features
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

func encodeFeatures(features []string) (datatypes.JSON, error) {
	if features == nil {
		features = []string{}
	}
	raw, err := json.Marshal(features)
	if err != nil {
		return nil, err
	}
	return datatypes.JSON(raw), nil
}
