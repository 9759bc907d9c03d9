package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	"github.com/loanridge/loanridge/internal/cache"
	"github.com/loanridge/loanridge/internal/clock"
	"github.com/loanridge/loanridge/internal/config"
	"github.com/loanridge/loanridge/internal/contact/domain"
	"github.com/loanridge/loanridge/internal/contact/repository"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
	"gorm.io/gorm"
)

func setupContactService(t *testing.T) (domain.Service, *gorm.DB, *snowflake.Node) {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_loc=auto", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetMaxIdleConns(1)

	schema := []string{
		`CREATE TABLE professionals (
			id INTEGER PRIMARY KEY,
			name TEXT NOT NULL,
			email TEXT NOT NULL UNIQUE,
			phone TEXT,
			company TEXT,
			slug TEXT NOT NULL DEFAULT '',
			role TEXT NOT NULL,
			password_hash TEXT NOT NULL DEFAULT '',
			visible_to_clients BOOLEAN NOT NULL DEFAULT TRUE,
			showcase_role TEXT,
			showcase_description TEXT,
			status TEXT NOT NULL DEFAULT 'active',
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE clients (
			id INTEGER PRIMARY KEY,
			name TEXT NOT NULL,
			email TEXT,
			phone TEXT,
			status TEXT NOT NULL DEFAULT 'active',
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE team_memberships (
			id INTEGER PRIMARY KEY,
			professional_id INTEGER NOT NULL,
			member_professional_id INTEGER NOT NULL,
			relationship_type TEXT,
			status TEXT NOT NULL DEFAULT 'active',
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE UNIQUE INDEX ux_team_memberships_pair
			ON team_memberships (professional_id, member_professional_id)`,
		`CREATE TABLE manual_contacts (
			id INTEGER PRIMARY KEY,
			owner_professional_id INTEGER NOT NULL,
			name TEXT NOT NULL,
			email TEXT,
			phone TEXT,
			company TEXT,
			contact_kind TEXT,
			relationship_type TEXT,
			status TEXT NOT NULL DEFAULT 'active',
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE team_assignments (
			id INTEGER PRIMARY KEY,
			client_id INTEGER NOT NULL,
			professional_id INTEGER NOT NULL,
			role_tag TEXT NOT NULL,
			assigned_by INTEGER NOT NULL,
			status TEXT NOT NULL DEFAULT 'active',
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			ended_at DATETIME
		)`,
	}
	for _, stmt := range schema {
		require.NoError(t, db.Exec(stmt).Error)
	}

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)
	network, err := config.NewNetworkConfigHolder()
	require.NoError(t, err)

	svc := New(Params{
		DB:      db,
		Log:     zaptest.NewLogger(t),
		GenID:   node,
		Clock:   clock.NewFakeClock(time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)),
		Repo:    repository.NewRepository(db),
		Cache:   cache.NewProjectionCache(),
		Network: network,
	})
	return svc, db, node
}

func seedProfessional(t *testing.T, db *gorm.DB, id snowflake.ID, name, email, phone, company, role string) {
	t.Helper()
	require.NoError(t, db.Exec(
		`INSERT INTO professionals (id, name, email, phone, company, role) VALUES (?, ?, ?, ?, ?, ?)`,
		id, name, email, phone, company, role,
	).Error)
}

func TestListUnifiesThreeSources(t *testing.T) {
	svc, db, node := setupContactService(t)
	ctx := context.Background()

	owner := node.Generate()
	partner := node.Generate()
	seedProfessional(t, db, owner, "Rita Vargas", "rita@homeside.example", "", "", "realtor")
	seedProfessional(t, db, partner, "Lee Lender", "lee@lending.example", "+15550001111", "Summit Lending", "mortgage_professional")

	_, err := svc.LinkMembership(ctx, domain.LinkMembershipRequest{
		ProfessionalID:       owner,
		MemberProfessionalID: partner,
	})
	require.NoError(t, err)

	client, err := svc.CreateClient(ctx, domain.CreateClientRequest{
		Name:  "Pat Buyer",
		Email: "pat@example.com",
	})
	require.NoError(t, err)
	require.NoError(t, db.Exec(
		`INSERT INTO team_assignments (id, client_id, professional_id, role_tag, assigned_by) VALUES (?, ?, ?, 'realtor', ?)`,
		node.Generate(), client.ID, owner, owner,
	).Error)

	_, err = svc.CreateManualContact(ctx, domain.CreateManualContactRequest{
		OwnerID:     owner,
		Name:        "Ivy Inspector",
		Email:       "ivy@inspections.example",
		ContactKind: "inspector",
	})
	require.NoError(t, err)

	contacts, err := svc.List(ctx, domain.ListRequest{OwnerID: owner})
	require.NoError(t, err)
	require.Len(t, contacts, 3)

	byEmail := map[string]domain.Contact{}
	for _, c := range contacts {
		byEmail[c.Email] = c
	}
	require.Equal(t, domain.RelLendingTeam, byEmail["lee@lending.example"].RelationshipType)
	require.Equal(t, domain.RelClient, byEmail["pat@example.com"].RelationshipType)
	require.Equal(t, domain.RelInspector, byEmail["ivy@inspections.example"].RelationshipType)
}

func TestListCategoryFilter(t *testing.T) {
	svc, db, node := setupContactService(t)
	ctx := context.Background()

	owner := node.Generate()
	seedProfessional(t, db, owner, "Rita Vargas", "rita@homeside.example", "", "", "realtor")

	_, err := svc.CreateManualContact(ctx, domain.CreateManualContactRequest{
		OwnerID:     owner,
		Name:        "Ivy Inspector",
		ContactKind: "inspector",
	})
	require.NoError(t, err)

	vendors, err := svc.List(ctx, domain.ListRequest{OwnerID: owner, Category: domain.CategoryVendors})
	require.NoError(t, err)
	require.Len(t, vendors, 1)

	clients, err := svc.List(ctx, domain.ListRequest{OwnerID: owner, Category: domain.CategoryClients})
	require.NoError(t, err)
	require.Empty(t, clients)

	_, err = svc.List(ctx, domain.ListRequest{OwnerID: owner, Category: domain.Category("bogus")})
	require.ErrorIs(t, err, domain.ErrInvalidCategory)
}

func TestListSearchMatchesAcrossFields(t *testing.T) {
	svc, db, node := setupContactService(t)
	ctx := context.Background()

	owner := node.Generate()
	seedProfessional(t, db, owner, "Rita Vargas", "rita@homeside.example", "", "", "realtor")

	_, err := svc.CreateManualContact(ctx, domain.CreateManualContactRequest{
		OwnerID: owner,
		Name:    "Tess Title",
		Email:   "tess@titleco.example",
		Phone:   "+15559876543",
		Company: "Titleworks",
	})
	require.NoError(t, err)
	_, err = svc.CreateManualContact(ctx, domain.CreateManualContactRequest{
		OwnerID: owner,
		Name:    "Gus Glass",
		Email:   "gus@glazing.example",
	})
	require.NoError(t, err)

	for _, query := range []string{"TESS", "titleco", "9876", "titleworks"} {
		found, err := svc.List(ctx, domain.ListRequest{OwnerID: owner, Query: query})
		require.NoError(t, err, query)
		require.Len(t, found, 1, query)
		require.Equal(t, "Tess Title", found[0].Name, query)
	}

	none, err := svc.List(ctx, domain.ListRequest{OwnerID: owner, Query: "zzz"})
	require.NoError(t, err)
	require.Empty(t, none)
}

func TestLinkMembershipRejectsDuplicatePair(t *testing.T) {
	svc, db, node := setupContactService(t)
	ctx := context.Background()

	owner := node.Generate()
	partner := node.Generate()
	seedProfessional(t, db, owner, "Rita Vargas", "rita@homeside.example", "", "", "realtor")
	seedProfessional(t, db, partner, "Lee Lender", "lee@lending.example", "", "", "mortgage_professional")

	_, err := svc.LinkMembership(ctx, domain.LinkMembershipRequest{
		ProfessionalID:       owner,
		MemberProfessionalID: partner,
	})
	require.NoError(t, err)

	_, err = svc.LinkMembership(ctx, domain.LinkMembershipRequest{
		ProfessionalID:       owner,
		MemberProfessionalID: partner,
	})
	require.ErrorIs(t, err, domain.ErrAlreadyLinked)
}

func TestProjectionCacheInvalidatedByNewContact(t *testing.T) {
	svc, db, node := setupContactService(t)
	ctx := context.Background()

	owner := node.Generate()
	seedProfessional(t, db, owner, "Rita Vargas", "rita@homeside.example", "", "", "realtor")

	contacts, err := svc.List(ctx, domain.ListRequest{OwnerID: owner})
	require.NoError(t, err)
	require.Empty(t, contacts)

	// The cached empty projection must be dropped by the write.
	_, err = svc.CreateManualContact(ctx, domain.CreateManualContactRequest{
		OwnerID: owner,
		Name:    "Ivy Inspector",
	})
	require.NoError(t, err)

	contacts, err = svc.List(ctx, domain.ListRequest{OwnerID: owner})
	require.NoError(t, err)
	require.Len(t, contacts, 1)
}
