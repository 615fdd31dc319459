package service

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
	offeringdomain "github.com/tedxmekong/stagehub/internal/offering/domain"
	"github.com/tedxmekong/stagehub/internal/purchase/domain"
	workspacedomain "github.com/tedxmekong/stagehub/internal/workspace/domain"
	"go.uber.org/zap"
)

type Service struct {
	log        *zap.Logger
	repo       domain.Repository
	offerings  offeringdomain.Service
	workspaces workspacedomain.Service
	genID      *snowflake.Node
}

func New(log *zap.Logger, repo domain.Repository, offerings offeringdomain.Service, workspaces workspacedomain.Service, genID *snowflake.Node) domain.Service {
	return &Service{
		log:        log.Named("purchase.service"),
		repo:       repo,
		offerings:  offerings,
		workspaces: workspaces,
		genID:      genID,
	}
}

func (s *Service) Purchase(ctx context.Context, userID, offeringID snowflake.ID) (*domain.ServicePurchase, error) {
	offering, err := s.offerings.GetApproved(ctx, offeringID)
	if err != nil {
		return nil, err
	}

	purchase := &domain.ServicePurchase{
		ID:         s.genID.Generate(),
		UserID:     userID,
		OfferingID: offering.ID,
		Status:     domain.StatusActive,
		Progress:   0,
	}
	// The insert goes first so the unique (user, offering) index settles
	// concurrent duplicates before any workspace exists.
	if err := s.repo.Create(ctx, purchase); err != nil {
		return nil, err
	}

	workspace, err := s.workspaces.Provision(ctx, workspacedomain.ProvisionRequest{
		Name:    offering.Name,
		Type:    workspacedomain.TypeService,
		OwnerID: userID,
	})
	if err != nil {
		s.log.Error("workspace provisioning failed",
			zap.Int64("purchase_id", int64(purchase.ID)), zap.Error(err))
		return purchase, nil
	}

	if err := s.repo.UpdateFields(ctx, purchase.ID, map[string]any{
		"workspace_id": workspace.ID,
		"updated_at":   time.Now().UTC(),
	}); err != nil {
		return nil, err
	}
	purchase.WorkspaceID = &workspace.ID

	s.log.Info("service purchased",
		zap.Int64("purchase_id", int64(purchase.ID)),
		zap.Int64("offering_id", int64(offering.ID)),
		zap.Int64("workspace_id", int64(workspace.ID)),
	)
	return purchase, nil
}

func (s *Service) Get(ctx context.Context, userID, purchaseID snowflake.ID) (*domain.ServicePurchase, error) {
	purchase, err := s.repo.FindByID(ctx, purchaseID)
	if err != nil {
		return nil, err
	}
	if purchase.UserID != userID {
		return nil, domain.ErrPurchaseNotFound
	}
	return purchase, nil
}

func (s *Service) ListMine(ctx context.Context, userID snowflake.ID) ([]domain.ServicePurchase, error) {
	return s.repo.ListByUser(ctx, userID)
}

func (s *Service) UpdateProgress(ctx context.Context, purchaseID snowflake.ID, progress int) (*domain.ServicePurchase, error) {
	purchase, err := s.repo.FindByID(ctx, purchaseID)
	if err != nil {
		return nil, err
	}
	if purchase.Status != domain.StatusActive {
		return nil, domain.ErrPurchaseInactive
	}

	progress = clamp(progress, 0, 100)
	if err := s.repo.UpdateFields(ctx, purchaseID, map[string]any{
		"progress":   progress,
		"updated_at": time.Now().UTC(),
	}); err != nil {
		return nil, err
	}
	purchase.Progress = progress
	return purchase, nil
}

func (s *Service) Complete(ctx context.Context, purchaseID snowflake.ID) (*domain.ServicePurchase, error) {
	purchase, err := s.repo.FindByID(ctx, purchaseID)
	if err != nil {
		return nil, err
	}
	if purchase.Status != domain.StatusActive {
		return nil, domain.ErrPurchaseInactive
	}

	if err := s.repo.UpdateFields(ctx, purchaseID, map[string]any{
		"status":     domain.StatusCompleted,
		"progress":   100,
		"updated_at": time.Now().UTC(),
	}); err != nil {
		return nil, err
	}
	purchase.Status = domain.StatusCompleted
	purchase.Progress = 100
	return purchase, nil
}

func (s *Service) Cancel(ctx context.Context, userID, purchaseID snowflake.ID) (*domain.ServicePurchase, error) {
	purchase, err := s.Get(ctx, userID, purchaseID)
	if err != nil {
		return nil, err
	}
	if purchase.Status != domain.StatusActive {
		return nil, domain.ErrPurchaseInactive
	}

	if err := s.repo.UpdateFields(ctx, purchaseID, map[string]any{
		"status":     domain.StatusCancelled,
		"updated_at": time.Now().UTC(),
	}); err != nil {
		return nil, err
	}
	purchase.Status = domain.StatusCancelled
	return purchase, nil
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
