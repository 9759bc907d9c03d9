package migration

import (
	assignmentdomain "github.com/loanridge/loanridge/internal/assignment/domain"
	auditdomain "github.com/loanridge/loanridge/internal/audit/domain"
	authdomain "github.com/loanridge/loanridge/internal/auth/domain"
	"github.com/loanridge/loanridge/internal/config"
	contactdomain "github.com/loanridge/loanridge/internal/contact/domain"
	invitationdomain "github.com/loanridge/loanridge/internal/invitation/domain"
	professionaldomain "github.com/loanridge/loanridge/internal/professional/domain"
	"github.com/loanridge/loanridge/internal/seed"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Module applies the schema and seeds the default admin before any
// service starts taking requests.
var Module = fx.Module("migration",
	fx.Invoke(Run),
)

// Run migrates the schema and seeds bootstrap data. Postgres installs
// use the versioned SQL migrations; other dialects fall back to gorm
// AutoMigrate plus the partial unique indexes the migration files
// carry, where the dialect supports them.
func Run(cfg config.Config, db *gorm.DB, log *zap.Logger) error {
	if cfg.DBType == "postgres" {
		sqlDB, err := db.DB()
		if err != nil {
			return err
		}
		if err := RunMigrations(sqlDB); err != nil {
			return err
		}
	} else {
		if err := db.AutoMigrate(
			&professionaldomain.Professional{},
			&authdomain.Session{},
			&contactdomain.Client{},
			&contactdomain.TeamMembership{},
			&contactdomain.ManualContact{},
			&assignmentdomain.TeamAssignment{},
			&invitationdomain.Invitation{},
			&auditdomain.RoleChangeRecord{},
		); err != nil {
			return err
		}
		if cfg.DBType == "sqlite" {
			if err := ensurePartialIndexes(db); err != nil {
				return err
			}
		} else {
			log.Warn("dialect cannot enforce partial unique indexes; open-invitation and active-assignment uniqueness is advisory only",
				zap.String("db_type", cfg.DBType),
			)
		}
	}

	if err := seed.EnsureDefaultAdmin(db); err != nil {
		return err
	}

	log.Info("database schema ready", zap.String("db_type", cfg.DBType))
	return nil
}

// ensurePartialIndexes recreates the storage-level guards that
// AutoMigrate cannot express: one open invitation per
// (professional, email, target role) and one active assignment per
// (client, role tag).
func ensurePartialIndexes(db *gorm.DB) error {
	stmts := []string{
		`CREATE UNIQUE INDEX IF NOT EXISTS ux_invitations_open
			ON invitations (professional_id, email, target_role)
			WHERE status IN ('pending', 'sent')`,
		`CREATE UNIQUE INDEX IF NOT EXISTS ux_team_assignments_active
			ON team_assignments (client_id, role_tag)
			WHERE status = 'active'`,
	}
	for _, stmt := range stmts {
		if err := db.Exec(stmt).Error; err != nil {
			return err
		}
	}
	return nil
}
