package repository

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
	"github.com/tedxmekong/stagehub/internal/organization/domain"
	"github.com/tedxmekong/stagehub/pkg/db"
	"gorm.io/gorm"
)

type repository struct {
	db *gorm.DB
}

func New(conn *gorm.DB) domain.Repository {
	return &repository{db: conn}
}

func (r *repository) Create(ctx context.Context, org *domain.Organization) error {
	err := r.db.WithContext(ctx).Create(org).Error
	if db.IsDuplicateKeyErr(err) {
		return domain.ErrOrgExists
	}
	return err
}

func (r *repository) FindByID(ctx context.Context, id snowflake.ID) (*domain.Organization, error) {
	var org domain.Organization
	err := r.db.WithContext(ctx).First(&org, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrOrgNotFound
		}
		return nil, err
	}
	return &org, nil
}

func (r *repository) FindBySlug(ctx context.Context, slug string) (*domain.Organization, error) {
	var org domain.Organization
	err := r.db.WithContext(ctx).Where("slug = ?", slug).First(&org).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrOrgNotFound
		}
		return nil, err
	}
	return &org, nil
}

func (r *repository) List(ctx context.Context, filter domain.ListFilter) ([]domain.Organization, error) {
	query := r.db.WithContext(ctx).Model(&domain.Organization{})
	if filter.ApprovedOnly {
		query = query.Where("approved = ?", true)
	}
	if filter.Tier != "" {
		query = query.Where("tier = ?", filter.Tier)
	}

	var orgs []domain.Organization
	if err := query.Order("created_at DESC").Find(&orgs).Error; err != nil {
		return nil, err
	}
	return orgs, nil
}

func (r *repository) ListByMember(ctx context.Context, userID snowflake.ID) ([]domain.Organization, error) {
	var orgs []domain.Organization
	err := r.db.WithContext(ctx).
		Joins("JOIN organization_members m ON m.organization_id = organizations.id").
		Where("m.user_id = ?", userID).
		Order("organizations.created_at DESC").
		Find(&orgs).Error
	if err != nil {
		return nil, err
	}
	return orgs, nil
}

func (r *repository) UpdateFields(ctx context.Context, id snowflake.ID, fields map[string]any) error {
	err := r.db.WithContext(ctx).
		Model(&domain.Organization{}).
		Where("id = ?", id).
		Updates(fields).Error
	if db.IsDuplicateKeyErr(err) {
		return domain.ErrOrgExists
	}
	return err
}

func (r *repository) CreateMember(ctx context.Context, member *domain.Member) error {
	err := r.db.WithContext(ctx).Create(member).Error
	if db.IsDuplicateKeyErr(err) {
		return domain.ErrMemberExists
	}
	return err
}

func (r *repository) FindMember(ctx context.Context, orgID, userID snowflake.ID) (*domain.Member, error) {
	var member domain.Member
	err := r.db.WithContext(ctx).
		Where("organization_id = ? AND user_id = ?", orgID, userID).
		First(&member).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrMemberNotFound
		}
		return nil, err
	}
	return &member, nil
}

func (r *repository) ListMembers(ctx context.Context, orgID snowflake.ID) ([]domain.Member, error) {
	var members []domain.Member
	err := r.db.WithContext(ctx).
		Where("organization_id = ?", orgID).
		Order("created_at ASC").
		Find(&members).Error
	if err != nil {
		return nil, err
	}
	return members, nil
}

func (r *repository) UpdateMemberFields(ctx context.Context, id snowflake.ID, fields map[string]any) error {
	return r.db.WithContext(ctx).
		Model(&domain.Member{}).
		Where("id = ?", id).
		Updates(fields).Error
}

func (r *repository) DeleteMember(ctx context.Context, id snowflake.ID) error {
	return r.db.WithContext(ctx).
		Delete(&domain.Member{}, "id = ?", id).Error
}
