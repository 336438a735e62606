package domain

import "time"

// Company is a tenant: the isolation boundary for business ledgers.
type Company struct {
	CompanyID      string `json:"companyID"`
	Name           string `json:"name"`
	OwnerID        string `json:"ownerID"`
	CurrencyCode   string `json:"currencyCode"`
	CurrencySymbol string `json:"currencySymbol"`
	AuditFields
}

// CompanyRole defines the possible roles a user can have within a company.
type CompanyRole string

const (
	RoleAdmin  CompanyRole = "ADMIN"
	RoleMember CompanyRole = "MEMBER"
)

func (r CompanyRole) IsValid() bool {
	return r == RoleAdmin || r == RoleMember
}

// CompanyMember represents the membership of a User in a Company.
type CompanyMember struct {
	CompanyID string      `json:"companyID"`
	UserID    string      `json:"userID"`
	Role      CompanyRole `json:"role"`
	JoinedAt  time.Time   `json:"joinedAt"`
}

// Customer is a counterparty kept per company.
type Customer struct {
	CustomerID string `json:"customerID"`
	CompanyID  string `json:"companyID"`
	Name       string `json:"name"`
	Phone      string `json:"phone,omitempty"`
	Email      string `json:"email,omitempty"`
	AuditFields
}
