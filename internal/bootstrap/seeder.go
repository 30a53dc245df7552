// Package bootstrap seeds a fresh store with the canonical modules, the full
// permission set, an all-powerful Admin role and a single administrative
// account. It runs exactly once, before the server accepts traffic.
package bootstrap

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/crypto/bcrypt"

	"github.com/vantage-console/vantage/internal/rbac"
)

const (
	// AdminRoleName is the seeded role holding every permission.
	AdminRoleName = "Admin"
	// AdminGroupName is the seeded group holding the Admin role.
	AdminGroupName = "Administrators"
	// DefaultAdminPassword is used when no password is configured. Relying
	// on it in production is a security concern, so the seeder warns.
	DefaultAdminPassword = "admin123"
)

// Config carries the administrative account settings.
type Config struct {
	AdminUsername string
	AdminEmail    string
	AdminPassword string
}

// Seeder populates the initial authorization graph.
type Seeder struct {
	store  StorePort
	logger *slog.Logger
	cfg    Config
}

// NewSeeder builds a Seeder instance.
func NewSeeder(store StorePort, logger *slog.Logger, cfg Config) *Seeder {
	return &Seeder{store: store, logger: logger, cfg: cfg}
}

// Run seeds the store unless users already exist. Any failure aborts the
// transaction; the caller must treat an error as fatal to startup.
func (s *Seeder) Run(ctx context.Context) error {
	count, err := s.store.CountUsers(ctx)
	if err != nil {
		return fmt.Errorf("bootstrap: count users: %w", err)
	}
	if count > 0 {
		s.logger.Info("store already seeded, skipping bootstrap")
		return nil
	}

	password := s.cfg.AdminPassword
	if password == "" {
		password = DefaultAdminPassword
		s.logger.Warn("ADMIN_PASSWORD not set, seeding admin account with the default password")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("bootstrap: hash admin password: %w", err)
	}

	err = s.store.InTx(ctx, func(tx TxPort) error {
		var permissionIDs []int64
		for _, module := range rbac.Modules() {
			moduleID, err := tx.InsertModule(ctx, module, module+" management")
			if err != nil {
				return fmt.Errorf("insert module %s: %w", module, err)
			}
			for _, action := range rbac.Actions() {
				permID, err := tx.InsertPermission(ctx, string(action), moduleID)
				if err != nil {
					return fmt.Errorf("insert permission %s:%s: %w", module, action, err)
				}
				permissionIDs = append(permissionIDs, permID)
			}
		}

		roleID, err := tx.InsertRole(ctx, AdminRoleName, "Full access to every module")
		if err != nil {
			return fmt.Errorf("insert admin role: %w", err)
		}
		for _, permID := range permissionIDs {
			if err := tx.LinkRolePermission(ctx, roleID, permID); err != nil {
				return fmt.Errorf("link admin permission: %w", err)
			}
		}

		groupID, err := tx.InsertGroup(ctx, AdminGroupName, "Holders of the Admin role")
		if err != nil {
			return fmt.Errorf("insert administrators group: %w", err)
		}
		if err := tx.LinkGroupRole(ctx, groupID, roleID); err != nil {
			return fmt.Errorf("link admin role to group: %w", err)
		}

		userID, err := tx.InsertUser(ctx, s.cfg.AdminUsername, s.cfg.AdminEmail, string(hash))
		if err != nil {
			return fmt.Errorf("insert admin user: %w", err)
		}
		if err := tx.LinkUserGroup(ctx, userID, groupID); err != nil {
			return fmt.Errorf("link admin user to group: %w", err)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("bootstrap: seed: %w", err)
	}

	s.logger.Info("bootstrap seed complete",
		slog.Int("modules", len(rbac.Modules())),
		slog.Int("permissions", len(rbac.Modules())*len(rbac.Actions())),
		slog.String("admin", s.cfg.AdminUsername))
	return nil
}
