// Package authorization enforces role based access on top of the session
// layer. Policies are stored through the shared database connection so
// operators can extend them without a redeploy.
package authorization

import (
	"fmt"

	"github.com/casbin/casbin/v2"
	casbinmodel "github.com/casbin/casbin/v2/model"
	gormadapter "github.com/casbin/gorm-adapter/v3"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const rbacModel = `
[request_definition]
r = sub, obj, act

[policy_definition]
p = sub, obj, act

[role_definition]
g = _, _

[policy_effect]
e = some(where (p.eft == allow))

[matchers]
m = g(r.sub, p.sub) && keyMatch2(r.obj, p.obj) && (r.act == p.act || p.act == "*")
`

// Default grants. Admin owns the admin surface, partners manage their own
// catalog and workspaces, mentors manage schedules.
var defaultPolicies = [][]string{
	{"ADMIN", "/admin/*", "*"},
	{"PARTNER", "/api/offerings", "POST"},
	{"PARTNER", "/api/offerings/:id", "PUT"},
	{"PARTNER", "/api/events", "POST"},
	{"PARTNER", "/api/events/:id", "PUT"},
	{"PARTNER", "/api/products", "POST"},
	{"PARTNER", "/api/products/:id", "PUT"},
	{"PARTNER", "/api/products/:id/stock", "POST"},
	{"PARTNER", "/api/organizations", "POST"},
	{"MENTOR", "/api/mentors/slots", "POST"},
	{"MENTOR", "/api/mentors/slots/:id/toggle", "POST"},
	{"MENTOR", "/api/mentors/slots/:id", "DELETE"},
	{"MENTOR", "/api/sessions/:id/complete", "POST"},
}

// Admin inherits the partner and mentor surfaces.
var defaultGroupings = [][]string{
	{"ADMIN", "PARTNER"},
	{"ADMIN", "MENTOR"},
}

type Authorizer struct {
	enforcer *casbin.Enforcer
	log      *zap.Logger
}

func New(db *gorm.DB, log *zap.Logger) (*Authorizer, error) {
	adapter, err := gormadapter.NewAdapterByDBUseTableName(db, "", "casbin_rules")
	if err != nil {
		return nil, fmt.Errorf("casbin adapter: %w", err)
	}

	m, err := casbinmodel.NewModelFromString(rbacModel)
	if err != nil {
		return nil, fmt.Errorf("casbin model: %w", err)
	}

	enforcer, err := casbin.NewEnforcer(m, adapter)
	if err != nil {
		return nil, fmt.Errorf("casbin enforcer: %w", err)
	}
	if err := enforcer.LoadPolicy(); err != nil {
		return nil, fmt.Errorf("load policy: %w", err)
	}

	for _, p := range defaultPolicies {
		if _, err := enforcer.AddPolicy(p[0], p[1], p[2]); err != nil {
			return nil, fmt.Errorf("seed policy %v: %w", p, err)
		}
	}
	for _, g := range defaultGroupings {
		if _, err := enforcer.AddGroupingPolicy(g[0], g[1]); err != nil {
			return nil, fmt.Errorf("seed grouping %v: %w", g, err)
		}
	}

	return &Authorizer{enforcer: enforcer, log: log.Named("authorization")}, nil
}

// Allowed reports whether the given role may perform act on obj.
func (a *Authorizer) Allowed(role, obj, act string) bool {
	ok, err := a.enforcer.Enforce(role, obj, act)
	if err != nil {
		a.log.Warn("enforce failed", zap.String("role", role), zap.String("obj", obj), zap.Error(err))
		return false
	}
	return ok
}
