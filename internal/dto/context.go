package dto

import "github.com/SscSPs/ledgerlite/internal/core/domain"

// SwitchContextRequest selects the accounting context.
type SwitchContextRequest struct {
	Mode      string `json:"mode" binding:"required,oneof=personal business"`
	CompanyID string `json:"companyID"`
}

func (r SwitchContextRequest) ToContext() domain.AccountingContext {
	if r.Mode == string(domain.ModePersonal) {
		return domain.PersonalContext()
	}
	return domain.BusinessContext(r.CompanyID)
}

// ContextResponse describes the active accounting context.
type ContextResponse struct {
	Mode      string            `json:"mode"`
	CompanyID string            `json:"companyID,omitempty"`
	TenantID  string            `json:"tenantID"`
	Header    string            `json:"header"`
	Accounts  []AccountResponse `json:"accounts,omitempty"`
}

func ToContextResponse(s *domain.ContextSwitch) ContextResponse {
	resp := ContextResponse{
		Mode:      string(s.Context.Mode),
		CompanyID: s.Context.CompanyID,
		TenantID:  s.TenantID,
		Header:    s.Context.String(),
	}
	for i := range s.Accounts {
		resp.Accounts = append(resp.Accounts, ToAccountResponse(&s.Accounts[i]))
	}
	return resp
}
