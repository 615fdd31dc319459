package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/gosimple/slug"
	"github.com/tedxmekong/stagehub/internal/config"
	"github.com/tedxmekong/stagehub/internal/organization/domain"
	"go.uber.org/zap"
)

const (
	// Owner memberships get this role and are approved immediately.
	memberRoleOwner  = "OWNER"
	memberRoleMember = "MEMBER"
)

type Service struct {
	log      *zap.Logger
	repo     domain.Repository
	commerce *config.CommerceConfigHolder
	genID    *snowflake.Node
}

func New(log *zap.Logger, repo domain.Repository, commerce *config.CommerceConfigHolder, genID *snowflake.Node) domain.Service {
	return &Service{
		log:      log.Named("organization.service"),
		repo:     repo,
		commerce: commerce,
		genID:    genID,
	}
}

func (s *Service) Create(ctx context.Context, req domain.CreateRequest) (*domain.Organization, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, domain.ErrInvalidName
	}

	org := &domain.Organization{
		ID:          s.genID.Generate(),
		Name:        name,
		Slug:        s.uniqueSlug(ctx, name),
		Description: strings.TrimSpace(req.Description),
		LogoURL:     strings.TrimSpace(req.LogoURL),
		Website:     strings.TrimSpace(req.Website),
		Tier:        domain.TierStandard,
		Approved:    false,
		OwnerID:     req.OwnerID,
	}
	if err := s.repo.Create(ctx, org); err != nil {
		return nil, err
	}

	owner := &domain.Member{
		ID:             s.genID.Generate(),
		OrganizationID: org.ID,
		UserID:         req.OwnerID,
		Role:           memberRoleOwner,
		Approved:       true,
	}
	if err := s.repo.CreateMember(ctx, owner); err != nil {
		return nil, err
	}

	s.log.Info("organization created",
		zap.Int64("organization_id", int64(org.ID)),
		zap.String("slug", org.Slug),
	)
	return org, nil
}

// uniqueSlug derives a URL slug from the name, suffixing with an ID
// fragment when the plain slug is taken.
func (s *Service) uniqueSlug(ctx context.Context, name string) string {
	base := slug.Make(name)
	if _, err := s.repo.FindBySlug(ctx, base); errors.Is(err, domain.ErrOrgNotFound) {
		return base
	}
	return fmt.Sprintf("%s-%s", base, strings.ToLower(s.genID.Generate().Base36()))
}

func (s *Service) Get(ctx context.Context, id snowflake.ID) (*domain.Organization, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *Service) GetBySlug(ctx context.Context, slugValue string) (*domain.Organization, error) {
	return s.repo.FindBySlug(ctx, strings.TrimSpace(slugValue))
}

func (s *Service) List(ctx context.Context, filter domain.ListFilter) ([]domain.Organization, error) {
	if filter.Tier != "" && !domain.ValidTier(filter.Tier) {
		return nil, domain.ErrInvalidTier
	}
	return s.repo.List(ctx, filter)
}

func (s *Service) ListMine(ctx context.Context, userID snowflake.ID) ([]domain.Organization, error) {
	return s.repo.ListByMember(ctx, userID)
}

func (s *Service) Update(ctx context.Context, req domain.UpdateRequest) (*domain.Organization, error) {
	org, err := s.repo.FindByID(ctx, req.ID)
	if err != nil {
		return nil, err
	}
	if org.OwnerID != req.ActorID {
		return nil, domain.ErrNotOrganizer
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
	if req.LogoURL != nil {
		fields["logo_url"] = strings.TrimSpace(*req.LogoURL)
	}
	if req.Website != nil {
		fields["website"] = strings.TrimSpace(*req.Website)
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

func (s *Service) SetTier(ctx context.Context, id snowflake.ID, tier string) error {
	tier = strings.ToUpper(strings.TrimSpace(tier))
	if !domain.ValidTier(tier) {
		return domain.ErrInvalidTier
	}
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return err
	}
	return s.repo.UpdateFields(ctx, id, map[string]any{
		"tier":       tier,
		"updated_at": time.Now().UTC(),
	})
}

func (s *Service) Join(ctx context.Context, orgID, userID snowflake.ID) (*domain.Member, error) {
	org, err := s.repo.FindByID(ctx, orgID)
	if err != nil {
		return nil, err
	}
	if !org.Approved {
		return nil, domain.ErrOrgNotApproved
	}

	member := &domain.Member{
		ID:             s.genID.Generate(),
		OrganizationID: orgID,
		UserID:         userID,
		Role:           memberRoleMember,
		Approved:       false,
	}
	if err := s.repo.CreateMember(ctx, member); err != nil {
		return nil, err
	}
	return member, nil
}

func (s *Service) IsApprovedMember(ctx context.Context, orgID, userID snowflake.ID) (bool, error) {
	member, err := s.repo.FindMember(ctx, orgID, userID)
	if err != nil {
		if errors.Is(err, domain.ErrMemberNotFound) {
			return false, nil
		}
		return false, err
	}
	return member.Approved, nil
}

func (s *Service) ApproveMember(ctx context.Context, actorID, orgID, userID snowflake.ID) error {
	org, err := s.repo.FindByID(ctx, orgID)
	if err != nil {
		return err
	}
	if org.OwnerID != actorID {
		return domain.ErrNotOrganizer
	}

	member, err := s.repo.FindMember(ctx, orgID, userID)
	if err != nil {
		return err
	}
	return s.repo.UpdateMemberFields(ctx, member.ID, map[string]any{
		"approved":   true,
		"updated_at": time.Now().UTC(),
	})
}

func (s *Service) RemoveMember(ctx context.Context, actorID, orgID, userID snowflake.ID) error {
	org, err := s.repo.FindByID(ctx, orgID)
	if err != nil {
		return err
	}
	// Members may leave on their own; anyone else needs to be the owner.
	if actorID != userID && org.OwnerID != actorID {
		return domain.ErrForbiddenMember
	}
	if userID == org.OwnerID {
		return domain.ErrSelfRemoveOwner
	}

	member, err := s.repo.FindMember(ctx, orgID, userID)
	if err != nil {
		return err
	}
	return s.repo.DeleteMember(ctx, member.ID)
}

func (s *Service) ListMembers(ctx context.Context, orgID snowflake.ID) ([]domain.Member, error) {
	if _, err := s.repo.FindByID(ctx, orgID); err != nil {
		return nil, err
	}
	return s.repo.ListMembers(ctx, orgID)
}

func (s *Service) CommissionPercent(ctx context.Context, id snowflake.ID) (float64, error) {
	org, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return 0, err
	}
	return s.commerce.CommissionFor(org.Tier), nil
}
