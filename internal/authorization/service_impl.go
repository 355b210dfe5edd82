package authorization

import (
	"context"
	_ "embed"
	"fmt"

	"github.com/bwmarrin/snowflake"
	"github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/model"
	gormadapter "github.com/casbin/gorm-adapter/v3"
	ownerdomain "github.com/matjarly/matjarly/internal/owner/domain"
	userdomain "github.com/matjarly/matjarly/internal/user/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

//go:embed model.conf
var modelText string

// capabilityGrants maps an owner capability onto the object/action
// pairs it unlocks.
var capabilityGrants = map[string][][2]string{
	ownerdomain.CapManageUsers: {
		{ObjectUser, ActionManage},
		{ObjectUser, ActionView},
		{ObjectOwner, ActionView},
	},
	ownerdomain.CapManageProducts: {
		{ObjectProduct, ActionManage},
		{ObjectProduct, ActionView},
	},
	ownerdomain.CapManagePaymentMethods: {
		{ObjectPaymentMethod, ActionManage},
		{ObjectPaymentMethod, ActionView},
	},
	ownerdomain.CapManageDeliveryMethods: {
		{ObjectDeliveryMethod, ActionManage},
		{ObjectDeliveryMethod, ActionView},
	},
	ownerdomain.CapManageSliders: {
		{ObjectSlider, ActionManage},
		{ObjectSlider, ActionView},
	},
	ownerdomain.CapManageSettings: {
		{ObjectSettings, ActionManage},
		{ObjectStore, ActionManage},
		{ObjectStore, ActionView},
	},
	ownerdomain.CapManageOrders: {
		{ObjectOrder, ActionManage},
		{ObjectOrder, ActionView},
	},
	ownerdomain.CapViewReports: {
		{ObjectReport, ActionView},
	},
}

type Params struct {
	fx.In

	DB       *gorm.DB
	Log      *zap.Logger
	Enforcer *casbin.SyncedEnforcer
	Owners   ownerdomain.Service
}

type ServiceImpl struct {
	db       *gorm.DB
	log      *zap.Logger
	enforcer *casbin.SyncedEnforcer
	owners   ownerdomain.Service
}

func NewEnforcer(db *gorm.DB) (*casbin.SyncedEnforcer, error) {
	adapter, err := gormadapter.NewAdapterByDB(db)
	if err != nil {
		return nil, err
	}
	m, err := model.NewModelFromString(modelText)
	if err != nil {
		return nil, err
	}
	enforcer, err := casbin.NewSyncedEnforcer(m, adapter)
	if err != nil {
		return nil, err
	}
	enforcer.EnableAutoSave(true)
	enforcer.EnableAutoBuildRoleLinks(true)
	if err := enforcer.LoadPolicy(); err != nil {
		return nil, err
	}
	if err := seedPolicies(enforcer); err != nil {
		return nil, err
	}
	enforcer.BuildRoleLinks()
	return enforcer, nil
}

func NewService(p Params) Service {
	return &ServiceImpl{
		db:       p.DB,
		log:      p.Log.Named("authorization.service"),
		enforcer: p.Enforcer,
		owners:   p.Owners,
	}
}

func (s *ServiceImpl) Authorize(ctx context.Context, userID snowflake.ID, role string, storeID snowflake.ID, object, action string) error {
	if userID == 0 {
		return ErrInvalidActor
	}
	if role == string(userdomain.RoleSuperadmin) {
		return nil
	}
	if storeID == 0 {
		return ErrInvalidStore
	}

	owner, err := s.activeOwner(ctx, userID, storeID)
	if err != nil {
		return err
	}

	subject := fmt.Sprintf("user:%s", userID)
	domain := fmt.Sprintf("store:%s", storeID)
	if err := s.syncGroupings(subject, domain, owner.Capabilities()); err != nil {
		return err
	}

	allowed, err := s.enforcer.Enforce(subject, domain, object, action)
	if err != nil {
		return err
	}
	if !allowed {
		s.log.Debug("authorization denied",
			zap.String("subject", subject),
			zap.String("domain", domain),
			zap.String("object", object),
			zap.String("action", action),
		)
		return ErrForbidden
	}
	return nil
}

func (s *ServiceImpl) AuthorizePrimary(ctx context.Context, userID snowflake.ID, role string, storeID snowflake.ID) error {
	if userID == 0 {
		return ErrInvalidActor
	}
	if role == string(userdomain.RoleSuperadmin) {
		return nil
	}
	if storeID == 0 {
		return ErrInvalidStore
	}

	owner, err := s.activeOwner(ctx, userID, storeID)
	if err != nil {
		return err
	}
	if !owner.IsPrimaryOwner {
		return ErrForbidden
	}
	return nil
}

// activeOwner re-checks ownership even when the coarse role middleware
// passed: a revoked or deactivated owner keeps a valid JWT until
// expiry.
func (s *ServiceImpl) activeOwner(ctx context.Context, userID, storeID snowflake.ID) (*ownerdomain.Owner, error) {
	owner, err := s.owners.ActiveForUser(ctx, storeID, userID)
	if err != nil {
		return nil, err
	}
	if owner == nil {
		return nil, ErrForbidden
	}
	return owner, nil
}

// syncGroupings mirrors the owner's capability array into casbin:
// one (user, perm:<capability>, store-domain) grouping per held
// capability, removing the ones no longer held.
func (s *ServiceImpl) syncGroupings(subject, domain string, capabilities []string) error {
	held := make(map[string]struct{}, len(capabilities))
	for _, capability := range capabilities {
		held["perm:"+capability] = struct{}{}
	}

	existing, err := s.enforcer.GetFilteredGroupingPolicy(0, subject, "", domain)
	if err != nil {
		return err
	}
	for _, rule := range existing {
		if len(rule) < 2 {
			continue
		}
		if _, ok := held[rule[1]]; ok {
			delete(held, rule[1])
			continue
		}
		params := make([]interface{}, 0, len(rule))
		for _, value := range rule {
			params = append(params, value)
		}
		_, _ = s.enforcer.RemoveGroupingPolicy(params...)
	}

	for permRole := range held {
		if _, err := s.enforcer.AddGroupingPolicy(subject, permRole, domain); err != nil {
			return err
		}
	}
	return nil
}

func seedPolicies(enforcer *casbin.SyncedEnforcer) error {
	for capability, grants := range capabilityGrants {
		for _, grant := range grants {
			policy := []string{"perm:" + capability, "*", grant[0], grant[1]}
			if _, err := enforcer.AddPolicy(policy); err != nil {
				return err
			}
		}
	}
	return nil
}
