package domain

import (
	"errors"
	"fmt"
	"strings"
)

// PersonalTenantID is the storage id of the tenant shared by every personal ledger.
// No real company is ever created with it and company listings skip it.
const PersonalTenantID = "00000000-0000-0000-0000-000000000000"

// ContextMode selects between the personal ledger and a company ledger.
type ContextMode string

const (
	ModePersonal ContextMode = "personal"
	ModeBusiness ContextMode = "business"
)

var ErrInvalidContext = errors.New("invalid accounting context")

// AccountingContext is the ledger a request operates on.
// CompanyID is set only in business mode.
type AccountingContext struct {
	Mode      ContextMode `json:"mode"`
	CompanyID string      `json:"companyID,omitempty"`
}

func PersonalContext() AccountingContext {
	return AccountingContext{Mode: ModePersonal}
}

func BusinessContext(companyID string) AccountingContext {
	return AccountingContext{Mode: ModeBusiness, CompanyID: companyID}
}

func (c AccountingContext) IsPersonal() bool {
	return c.Mode == ModePersonal
}

// Validate checks the tag and payload agree.
func (c AccountingContext) Validate() error {
	switch c.Mode {
	case ModePersonal:
		if c.CompanyID != "" {
			return fmt.Errorf("%w: personal context cannot name a company", ErrInvalidContext)
		}
	case ModeBusiness:
		if strings.TrimSpace(c.CompanyID) == "" {
			return fmt.Errorf("%w: business context requires a company id", ErrInvalidContext)
		}
		if c.CompanyID == PersonalTenantID {
			return fmt.Errorf("%w: company id is reserved", ErrInvalidContext)
		}
	default:
		return fmt.Errorf("%w: unknown mode %q", ErrInvalidContext, c.Mode)
	}
	return nil
}

// TenantID maps the context to the tenant id used in storage.
func (c AccountingContext) TenantID() string {
	if c.IsPersonal() {
		return PersonalTenantID
	}
	return c.CompanyID
}

// ScopeFor returns the ledger scope of userID acting in this context.
// Personal scopes always carry the user as owner.
func (c AccountingContext) ScopeFor(userID string) LedgerScope {
	scope := LedgerScope{TenantID: c.TenantID()}
	if c.IsPersonal() {
		scope.OwnerID = userID
	}
	return scope
}

func (c AccountingContext) String() string {
	if c.IsPersonal() {
		return string(ModePersonal)
	}
	return string(ModeBusiness) + ":" + c.CompanyID
}

// ParseSelection reads "personal", "business:<companyID>" or "" (personal).
func ParseSelection(raw string) (AccountingContext, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" || strings.EqualFold(raw, string(ModePersonal)) {
		return PersonalContext(), nil
	}
	mode, id, found := strings.Cut(raw, ":")
	if !found || !strings.EqualFold(mode, string(ModeBusiness)) {
		return AccountingContext{}, fmt.Errorf("%w: %q", ErrInvalidContext, raw)
	}
	ctx := BusinessContext(strings.TrimSpace(id))
	if err := ctx.Validate(); err != nil {
		return AccountingContext{}, err
	}
	return ctx, nil
}

// LedgerScope is the row filter every account and journal query runs under.
// OwnerID is empty for company ledgers.
type LedgerScope struct {
	TenantID string
	OwnerID  string
}

func (s LedgerScope) IsPersonal() bool {
	return s.TenantID == PersonalTenantID
}

// ErrScopeWithoutOwner is returned by storage when a personal scope carries no owner.
var ErrScopeWithoutOwner = errors.New("personal scope requires an owner")

// Validate rejects scopes that would read across personal ledgers.
func (s LedgerScope) Validate() error {
	if strings.TrimSpace(s.TenantID) == "" {
		return fmt.Errorf("%w: scope has no tenant", ErrInvalidContext)
	}
	if s.IsPersonal() && strings.TrimSpace(s.OwnerID) == "" {
		return ErrScopeWithoutOwner
	}
	return nil
}

// AccountOwner is the owner column value of accounts in this scope.
func (s LedgerScope) AccountOwner() string {
	if s.IsPersonal() {
		return s.OwnerID
	}
	return ""
}
