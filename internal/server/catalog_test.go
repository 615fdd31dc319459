package server

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"
	authdomain "github.com/tedxmekong/stagehub/internal/auth/domain"
	offeringdomain "github.com/tedxmekong/stagehub/internal/offering/domain"
	organizationdomain "github.com/tedxmekong/stagehub/internal/organization/domain"
)

type fakeOfferingService struct {
	created []offeringdomain.CreateRequest
}

func (f *fakeOfferingService) Create(ctx context.Context, req offeringdomain.CreateRequest) (*offeringdomain.Offering, error) {
	_ = ctx
	f.created = append(f.created, req)
	return &offeringdomain.Offering{ID: 1, Name: req.Name}, nil
}

func (f *fakeOfferingService) Get(ctx context.Context, id snowflake.ID) (*offeringdomain.Offering, error) {
	_ = ctx
	_ = id
	return nil, nil
}

func (f *fakeOfferingService) GetApproved(ctx context.Context, id snowflake.ID) (*offeringdomain.Offering, error) {
	_ = ctx
	_ = id
	return nil, nil
}

func (f *fakeOfferingService) ListPublic(ctx context.Context) ([]offeringdomain.Offering, error) {
	_ = ctx
	return nil, nil
}

func (f *fakeOfferingService) ListAll(ctx context.Context) ([]offeringdomain.Offering, error) {
	_ = ctx
	return nil, nil
}

func (f *fakeOfferingService) Update(ctx context.Context, req offeringdomain.UpdateRequest) (*offeringdomain.Offering, error) {
	_ = ctx
	_ = req
	return nil, nil
}

func (f *fakeOfferingService) Approve(ctx context.Context, id snowflake.ID) error {
	_ = ctx
	_ = id
	return nil
}

// fakeOrgService only answers membership checks.
type fakeOrgService struct {
	approvedMembers map[snowflake.ID]bool
}

func (f *fakeOrgService) IsApprovedMember(ctx context.Context, orgID, userID snowflake.ID) (bool, error) {
	_ = ctx
	_ = orgID
	return f.approvedMembers[userID], nil
}

func (f *fakeOrgService) Create(ctx context.Context, req organizationdomain.CreateRequest) (*organizationdomain.Organization, error) {
	_ = ctx
	_ = req
	return nil, nil
}

func (f *fakeOrgService) Get(ctx context.Context, id snowflake.ID) (*organizationdomain.Organization, error) {
	_ = ctx
	_ = id
	return nil, nil
}

func (f *fakeOrgService) GetBySlug(ctx context.Context, slug string) (*organizationdomain.Organization, error) {
	_ = ctx
	_ = slug
	return nil, nil
}

func (f *fakeOrgService) List(ctx context.Context, filter organizationdomain.ListFilter) ([]organizationdomain.Organization, error) {
	_ = ctx
	_ = filter
	return nil, nil
}

func (f *fakeOrgService) ListMine(ctx context.Context, userID snowflake.ID) ([]organizationdomain.Organization, error) {
	_ = ctx
	_ = userID
	return nil, nil
}

func (f *fakeOrgService) Update(ctx context.Context, req organizationdomain.UpdateRequest) (*organizationdomain.Organization, error) {
	_ = ctx
	_ = req
	return nil, nil
}

func (f *fakeOrgService) Approve(ctx context.Context, id snowflake.ID) error {
	_ = ctx
	_ = id
	return nil
}

func (f *fakeOrgService) SetTier(ctx context.Context, id snowflake.ID, tier string) error {
	_ = ctx
	_ = id
	_ = tier
	return nil
}

func (f *fakeOrgService) Join(ctx context.Context, orgID, userID snowflake.ID) (*organizationdomain.Member, error) {
	_ = ctx
	_ = orgID
	_ = userID
	return nil, nil
}

func (f *fakeOrgService) ApproveMember(ctx context.Context, actorID, orgID, userID snowflake.ID) error {
	_ = ctx
	_ = actorID
	_ = orgID
	_ = userID
	return nil
}

func (f *fakeOrgService) RemoveMember(ctx context.Context, actorID, orgID, userID snowflake.ID) error {
	_ = ctx
	_ = actorID
	_ = orgID
	_ = userID
	return nil
}

func (f *fakeOrgService) ListMembers(ctx context.Context, orgID snowflake.ID) ([]organizationdomain.Member, error) {
	_ = ctx
	_ = orgID
	return nil, nil
}

func (f *fakeOrgService) CommissionPercent(ctx context.Context, id snowflake.ID) (float64, error) {
	_ = ctx
	_ = id
	return 0, nil
}

func newOfferingRouter(user *authdomain.User, offerings offeringdomain.Service, orgs organizationdomain.Service) *gin.Engine {
	gin.SetMode(gin.TestMode)

	srv := &Server{
		offeringSvc:     offerings,
		organizationSvc: orgs,
	}

	r := gin.New()
	r.Use(ErrorHandlingMiddleware())
	r.POST("/api/offerings", func(c *gin.Context) {
		c.Set(contextUserKey, user)
	}, srv.CreateOffering)
	return r
}

func TestCreateOfferingRejectsForeignOrganization(t *testing.T) {
	offerings := &fakeOfferingService{}
	orgs := &fakeOrgService{approvedMembers: map[snowflake.ID]bool{}}
	partner := &authdomain.User{ID: 7, Role: authdomain.RolePartner}
	r := newOfferingRouter(partner, offerings, orgs)

	body := `{"name":"Pitch Coaching","price":100000,"category":"optional","organization_id":"42"}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/offerings", strings.NewReader(body))
	r.ServeHTTP(w, req)

	if w.Code != http.StatusForbidden {
		t.Fatalf("status = %d, want %d; body %s", w.Code, http.StatusForbidden, w.Body.String())
	}
	if len(offerings.created) != 0 {
		t.Fatalf("offering created despite missing membership: %+v", offerings.created)
	}
}

func TestCreateOfferingAllowsApprovedMember(t *testing.T) {
	offerings := &fakeOfferingService{}
	partner := &authdomain.User{ID: 7, Role: authdomain.RolePartner}
	orgs := &fakeOrgService{approvedMembers: map[snowflake.ID]bool{partner.ID: true}}
	r := newOfferingRouter(partner, offerings, orgs)

	body := `{"name":"Pitch Coaching","price":100000,"category":"optional","organization_id":"42"}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/offerings", strings.NewReader(body))
	r.ServeHTTP(w, req)

	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, want %d; body %s", w.Code, http.StatusCreated, w.Body.String())
	}
	if len(offerings.created) != 1 || offerings.created[0].OrganizationID == nil {
		t.Fatalf("expected one attributed create, got %+v", offerings.created)
	}
}

func TestCreateOfferingWithoutOrganizationSkipsMembershipCheck(t *testing.T) {
	offerings := &fakeOfferingService{}
	orgs := &fakeOrgService{approvedMembers: map[snowflake.ID]bool{}}
	partner := &authdomain.User{ID: 7, Role: authdomain.RolePartner}
	r := newOfferingRouter(partner, offerings, orgs)

	body := `{"name":"Pitch Coaching","price":100000,"category":"optional"}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/offerings", strings.NewReader(body))
	r.ServeHTTP(w, req)

	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, want %d; body %s", w.Code, http.StatusCreated, w.Body.String())
	}
	if len(offerings.created) != 1 {
		t.Fatalf("expected one create, got %d", len(offerings.created))
	}
}
