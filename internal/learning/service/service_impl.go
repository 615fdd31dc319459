package service

import (
	"context"
	"encoding/json"
	"errors"
	"math"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/tedxmekong/stagehub/internal/learning/domain"
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
		log:   log.Named("learning.service"),
		repo:  repo,
		genID: genID,
	}
}

func (s *Service) Upsert(ctx context.Context, req domain.UpsertRequest) (*domain.Progress, error) {
	percent := req.CompletionPercent
	if percent < 0 {
		percent = 0
	}
	if percent > 100 {
		percent = 100
	}
	materials, err := encodeMaterials(req.Materials)
	if err != nil {
		return nil, err
	}
	now := time.Now().UTC()

	existing, err := s.repo.Find(ctx, req.UserID, req.OfferingID)
	if err != nil {
		if !errors.Is(err, domain.ErrProgressNotFound) {
			return nil, err
		}
		progress := &domain.Progress{
			ID:                s.genID.Generate(),
			UserID:            req.UserID,
			OfferingID:        req.OfferingID,
			CompletionPercent: percent,
			Materials:         materials,
			LastAccessedAt:    now,
		}
		if err := s.repo.Create(ctx, progress); err != nil {
			return nil, err
		}
		return progress, nil
	}

	fields := map[string]any{
		"completion_percent": percent,
		"last_accessed_at":   now,
		"updated_at":         now,
	}
	if req.Materials != nil {
		fields["materials"] = materials
	}
	if err := s.repo.UpdateFields(ctx, existing.ID, fields); err != nil {
		return nil, err
	}
	existing.CompletionPercent = percent
	existing.LastAccessedAt = now
	if req.Materials != nil {
		existing.Materials = materials
	}
	return existing, nil
}

func (s *Service) ListMine(ctx context.Context, userID snowflake.ID) ([]domain.Progress, error) {
	return s.repo.ListByUser(ctx, userID)
}

func (s *Service) Summarize(ctx context.Context, userID snowflake.ID) (*domain.Summary, error) {
	rows, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return &domain.Summary{}, nil
	}

	var sum int
	for _, row := range rows {
		sum += row.CompletionPercent
	}
	average := int(math.Round(float64(sum) / float64(len(rows))))
	return &domain.Summary{Courses: len(rows), AveragePercent: average}, nil
}

func encodeMaterials(materials []string) (datatypes.JSON, error) {
	if materials == nil {
		materials = []string{}
	}
	raw, err := json.Marshal(materials)
	if err != nil {
		return nil, err
	}
	return datatypes.JSON(raw), nil
}
