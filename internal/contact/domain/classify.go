package domain

import (
	"strings"

	"github.com/loanridge/loanridge/internal/role"
)

// manualKinds maps a manual contact's declared kind onto a relationship type.
var manualKinds = map[string]RelationshipType{
	"attorney":      RelAttorney,
	"title_company": RelTitleCompany,
	"title company": RelTitleCompany,
	"inspector":     RelInspector,
	"appraiser":     RelAppraiser,
	"insurance":     RelInsurance,
	"contractor":    RelContractor,
}

var knownTypes = map[RelationshipType]bool{
	RelTeamMember:     true,
	RelClient:         true,
	RelRealtorPartner: true,
	RelLendingTeam:    true,
	RelAttorney:       true,
	RelTitleCompany:   true,
	RelInspector:      true,
	RelAppraiser:      true,
	RelInsurance:      true,
	RelContractor:     true,
	RelOther:          true,
}

// ClassifyMembership resolves the relationship type for a team membership
// row. An explicit type on the row wins; otherwise the counterpart's role
// decides; anything else is a plain team member. Total by construction.
func ClassifyMembership(explicit string, counterpartRole string) RelationshipType {
	if rt, ok := explicitType(explicit); ok {
		return rt
	}
	switch role.Normalize(counterpartRole) {
	case role.Realtor:
		return RelRealtorPartner
	case role.MortgageProfessional:
		return RelLendingTeam
	default:
		return RelTeamMember
	}
}

// ClassifyManual resolves the relationship type for a manual contact row.
// Explicit type, then declared kind, then the generic fallback.
func ClassifyManual(explicit, contactKind string) RelationshipType {
	if rt, ok := explicitType(explicit); ok {
		return rt
	}
	kind := strings.ToLower(strings.TrimSpace(contactKind))
	if rt, ok := manualKinds[kind]; ok {
		return rt
	}
	return RelOther
}

func explicitType(raw string) (RelationshipType, bool) {
	rt := RelationshipType(strings.ToLower(strings.TrimSpace(raw)))
	if rt == "" {
		return "", false
	}
	if knownTypes[rt] {
		return rt, true
	}
	return "", false
}

// InCategory reports whether a classified contact belongs to a UI category.
// Filtering is a pure function over the classified set so list and export
// paths cannot disagree. CategoryPending covers contacts whose underlying
// relationship exists but is not yet active (an invited client still
// onboarding, a suspended membership); open invitations are not contacts
// and surface on the invitation list instead.
func InCategory(c Contact, category Category) bool {
	switch category {
	case CategoryAll:
		return true
	case CategoryClients:
		return c.RelationshipType == RelClient
	case CategoryTeam:
		switch c.RelationshipType {
		case RelTeamMember, RelRealtorPartner, RelLendingTeam:
			return true
		}
		return false
	case CategoryVendors:
		switch c.RelationshipType {
		case RelAttorney, RelTitleCompany, RelInspector, RelAppraiser, RelInsurance, RelContractor, RelOther:
			return true
		}
		return false
	case CategoryPending:
		return c.Status != StatusActive
	default:
		return false
	}
}
