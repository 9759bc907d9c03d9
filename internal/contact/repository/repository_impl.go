package repository

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"github.com/loanridge/loanridge/internal/contact/domain"
	"gorm.io/gorm"
)

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) domain.Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) domain.Repository {
	return &repository{db: tx}
}

func (r *repository) Memberships(ctx context.Context, ownerID snowflake.ID) ([]domain.MembershipRow, error) {
	var rows []domain.MembershipRow
	err := r.db.WithContext(ctx).Raw(
		`SELECT m.id, m.professional_id, m.member_professional_id, m.relationship_type, m.status, m.created_at,
		        p.name AS counterpart_name,
		        p.email AS counterpart_email,
		        p.phone AS counterpart_phone,
		        p.company AS counterpart_company,
		        p.role AS counterpart_role
		 FROM team_memberships m
		 JOIN professionals p ON p.id = m.member_professional_id
		 WHERE m.professional_id = ?
		 ORDER BY m.created_at ASC`,
		ownerID,
	).Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *repository) AssignedClients(ctx context.Context, ownerID snowflake.ID) ([]domain.AssignedClientRow, error) {
	var rows []domain.AssignedClientRow
	err := r.db.WithContext(ctx).Raw(
		`SELECT c.id, c.name, c.email, c.phone, c.status, c.created_at,
		        a.id AS assignment_id,
		        a.status AS assignment_status
		 FROM clients c
		 JOIN team_assignments a ON a.client_id = c.id
		 WHERE a.professional_id = ? AND a.status = 'active'
		 ORDER BY c.created_at ASC`,
		ownerID,
	).Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *repository) ManualContacts(ctx context.Context, ownerID snowflake.ID) ([]domain.ManualContact, error) {
	var contacts []domain.ManualContact
	err := r.db.WithContext(ctx).
		Where("owner_professional_id = ?", ownerID).
		Order("created_at ASC").
		Find(&contacts).Error
	if err != nil {
		return nil, err
	}
	return contacts, nil
}

func (r *repository) InsertClient(ctx context.Context, client domain.Client) error {
	return r.db.WithContext(ctx).Create(&client).Error
}

func (r *repository) InsertManualContact(ctx context.Context, contact domain.ManualContact) error {
	return r.db.WithContext(ctx).Create(&contact).Error
}

func (r *repository) InsertMembership(ctx context.Context, membership domain.TeamMembership) error {
	return r.db.WithContext(ctx).Create(&membership).Error
}
