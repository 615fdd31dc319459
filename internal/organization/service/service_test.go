package service

import (
	"context"
	"errors"
	"testing"

	"github.com/bwmarrin/snowflake"
	"github.com/tedxmekong/stagehub/internal/config"
	"github.com/tedxmekong/stagehub/internal/organization/domain"
	"github.com/tedxmekong/stagehub/internal/organization/repository"
	"github.com/tedxmekong/stagehub/pkg/db"
	"go.uber.org/zap"
)

func newTestService(t *testing.T) domain.Service {
	t.Helper()

	conn, err := db.NewTest()
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	if err := conn.AutoMigrate(&domain.Organization{}, &domain.Member{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	node, err := snowflake.NewNode(1)
	if err != nil {
		t.Fatalf("snowflake node: %v", err)
	}

	holder := config.NewStaticCommerceHolder(config.DefaultCommerceConfig())
	return New(zap.NewNop(), repository.New(conn), holder, node)
}

func TestCreateSetsSlugAndOwnerMembership(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	owner := snowflake.ID(101)

	org, err := svc.Create(ctx, domain.CreateRequest{Name: "Mekong Delta Speakers", OwnerID: owner})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if org.Slug != "mekong-delta-speakers" {
		t.Fatalf("unexpected slug %q", org.Slug)
	}
	if org.Tier != domain.TierStandard {
		t.Fatalf("new org should start STANDARD, got %q", org.Tier)
	}
	if org.Approved {
		t.Fatal("new org should start unapproved")
	}

	members, err := svc.ListMembers(ctx, org.ID)
	if err != nil {
		t.Fatalf("list members: %v", err)
	}
	if len(members) != 1 || members[0].UserID != owner || !members[0].Approved {
		t.Fatalf("expected one approved owner membership, got %+v", members)
	}
}

func TestSlugCollisionGetsSuffix(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	// Distinct names that flatten to the same slug.
	first, err := svc.Create(ctx, domain.CreateRequest{Name: "Can Tho Hub", OwnerID: 1})
	if err != nil {
		t.Fatalf("create first: %v", err)
	}
	second, err := svc.Create(ctx, domain.CreateRequest{Name: "Can-Tho-Hub", OwnerID: 2})
	if err != nil {
		t.Fatalf("create second: %v", err)
	}
	if first.Slug == second.Slug {
		t.Fatalf("expected distinct slugs, both %q", first.Slug)
	}
}

func TestCreateDuplicateNameConflicts(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	if _, err := svc.Create(ctx, domain.CreateRequest{Name: "TEDx Can Tho", OwnerID: 1}); err != nil {
		t.Fatalf("create first: %v", err)
	}
	if _, err := svc.Create(ctx, domain.CreateRequest{Name: "TEDx Can Tho", OwnerID: 2}); !errors.Is(err, domain.ErrOrgExists) {
		t.Fatalf("expected ErrOrgExists for duplicate name, got %v", err)
	}
}

func TestIsApprovedMember(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	owner := snowflake.ID(1)

	org, err := svc.Create(ctx, domain.CreateRequest{Name: "Members Only", OwnerID: owner})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := svc.Approve(ctx, org.ID); err != nil {
		t.Fatalf("approve: %v", err)
	}

	if ok, err := svc.IsApprovedMember(ctx, org.ID, owner); err != nil || !ok {
		t.Fatalf("owner should be an approved member, got ok=%v err=%v", ok, err)
	}
	if ok, err := svc.IsApprovedMember(ctx, org.ID, 99); err != nil || ok {
		t.Fatalf("stranger should not be a member, got ok=%v err=%v", ok, err)
	}

	// A pending join request does not grant membership yet.
	joiner := snowflake.ID(2)
	if _, err := svc.Join(ctx, org.ID, joiner); err != nil {
		t.Fatalf("join: %v", err)
	}
	if ok, err := svc.IsApprovedMember(ctx, org.ID, joiner); err != nil || ok {
		t.Fatalf("pending member should not count, got ok=%v err=%v", ok, err)
	}
	if err := svc.ApproveMember(ctx, owner, org.ID, joiner); err != nil {
		t.Fatalf("approve member: %v", err)
	}
	if ok, err := svc.IsApprovedMember(ctx, org.ID, joiner); err != nil || !ok {
		t.Fatalf("approved member should count, got ok=%v err=%v", ok, err)
	}
}

func TestJoinRequiresApprovedOrg(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	org, err := svc.Create(ctx, domain.CreateRequest{Name: "Pending Org", OwnerID: 1})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if _, err := svc.Join(ctx, org.ID, 2); !errors.Is(err, domain.ErrOrgNotApproved) {
		t.Fatalf("expected org-not-approved, got %v", err)
	}

	if err := svc.Approve(ctx, org.ID); err != nil {
		t.Fatalf("approve: %v", err)
	}

	member, err := svc.Join(ctx, org.ID, 2)
	if err != nil {
		t.Fatalf("join: %v", err)
	}
	if member.Approved {
		t.Fatal("membership should start unapproved")
	}

	// Joining twice conflicts.
	if _, err := svc.Join(ctx, org.ID, 2); !errors.Is(err, domain.ErrMemberExists) {
		t.Fatalf("expected member exists, got %v", err)
	}
}

func TestCommissionFollowsTier(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	org, err := svc.Create(ctx, domain.CreateRequest{Name: "Tiered Org", OwnerID: 1})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	pct, err := svc.CommissionPercent(ctx, org.ID)
	if err != nil {
		t.Fatalf("commission: %v", err)
	}
	if pct != 20 {
		t.Fatalf("standard tier commission = %v, want 20", pct)
	}

	if err := svc.SetTier(ctx, org.ID, "vip"); err != nil {
		t.Fatalf("set tier: %v", err)
	}
	pct, err = svc.CommissionPercent(ctx, org.ID)
	if err != nil {
		t.Fatalf("commission after tier change: %v", err)
	}
	if pct != 10 {
		t.Fatalf("vip commission = %v, want 10", pct)
	}
}

func TestSetTierRejectsUnknownTier(t *testing.T) {
	svc := newTestService(t)

	org, err := svc.Create(context.Background(), domain.CreateRequest{Name: "Org", OwnerID: 1})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := svc.SetTier(context.Background(), org.ID, "PLATINUM"); !errors.Is(err, domain.ErrInvalidTier) {
		t.Fatalf("expected invalid tier, got %v", err)
	}
}
