// Package role normalizes legacy role strings and answers capability checks.
package role

import "strings"

// Role is the closed set of network roles.
type Role string

const (
	Admin                Role = "admin"
	Realtor              Role = "realtor"
	MortgageProfessional Role = "mortgage_professional"
	Client               Role = "client"
)

// Capability names an action a role may perform.
type Capability string

const (
	CapInviteClients        Capability = "invite_clients"
	CapInviteProfessionals  Capability = "invite_professionals"
	CapManageTeam           Capability = "manage_team"
	CapManageVisibility     Capability = "manage_visibility"
	CapChangeRoles          Capability = "change_roles"
	CapViewNetwork          Capability = "view_network"
	CapViewAssignedContacts Capability = "view_assigned_contacts"
)

// legacyRoles maps free-form and historical role spellings onto the
// canonical set. Lookups are lower-cased and trimmed first.
var legacyRoles = map[string]Role{
	"admin":                 Admin,
	"administrator":         Admin,
	"superadmin":            Admin,
	"realtor":               Realtor,
	"real_estate_agent":     Realtor,
	"real estate agent":     Realtor,
	"agent":                 Realtor,
	"broker":                Realtor,
	"mortgage_professional": MortgageProfessional,
	"mortgage professional": MortgageProfessional,
	"loan_officer":          MortgageProfessional,
	"loan officer":          MortgageProfessional,
	"lender":                MortgageProfessional,
	"mlo":                   MortgageProfessional,
	"client":                Client,
	"borrower":              Client,
	"buyer":                 Client,
	"customer":              Client,
}

var capabilities = map[Role]map[Capability]bool{
	Admin: {
		CapInviteClients:        true,
		CapInviteProfessionals:  true,
		CapManageTeam:           true,
		CapManageVisibility:     true,
		CapChangeRoles:          true,
		CapViewNetwork:          true,
		CapViewAssignedContacts: true,
	},
	Realtor: {
		CapInviteClients:        true,
		CapInviteProfessionals:  true,
		CapManageTeam:           true,
		CapManageVisibility:     true,
		CapViewNetwork:          true,
		CapViewAssignedContacts: true,
	},
	MortgageProfessional: {
		CapInviteClients:        true,
		CapInviteProfessionals:  true,
		CapManageTeam:           true,
		CapManageVisibility:     true,
		CapViewNetwork:          true,
		CapViewAssignedContacts: true,
	},
	Client: {
		CapViewAssignedContacts: true,
	},
}

// Normalize maps any input string onto a canonical Role. Unrecognized,
// empty, or whitespace input maps to Client; Normalize is total.
func Normalize(input string) Role {
	key := strings.ToLower(strings.TrimSpace(input))
	if mapped, ok := legacyRoles[key]; ok {
		return mapped
	}
	return Client
}

// IsProfessional reports whether the role can act on behalf of a network.
func (r Role) IsProfessional() bool {
	switch r {
	case Admin, Realtor, MortgageProfessional:
		return true
	default:
		return false
	}
}

// Valid reports whether r is one of the canonical roles.
func (r Role) Valid() bool {
	switch r {
	case Admin, Realtor, MortgageProfessional, Client:
		return true
	default:
		return false
	}
}

// HasCapability is a pure lookup; unknown roles or capabilities are false.
func HasCapability(r Role, capability Capability) bool {
	caps, ok := capabilities[r]
	if !ok {
		return false
	}
	return caps[capability]
}
