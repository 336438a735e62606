package sqlite

import (
	"context"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/SscSPs/ledgerlite/internal/apperrors"
	"github.com/SscSPs/ledgerlite/internal/core/domain"
	portsrepo "github.com/SscSPs/ledgerlite/internal/core/ports/repositories"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

type RepositoryTestSuite struct {
	suite.Suite
	db    *sqlx.DB
	repos portsrepo.RepositoryProvider
	ctx   context.Context
	now   time.Time
}

func TestRepositoryTestSuite(t *testing.T) {
	suite.Run(t, new(RepositoryTestSuite))
}

func (s *RepositoryTestSuite) SetupTest() {
	s.ctx = context.Background()
	db, err := Open(s.ctx, filepath.Join(s.T().TempDir(), "ledger.db"))
	s.Require().NoError(err)
	s.db = db
	s.repos = NewRepositoryProvider(db)
	s.now = time.Date(2026, 3, 1, 9, 30, 0, 0, time.UTC)
}

func (s *RepositoryTestSuite) TearDownTest() {
	s.db.Close()
}

func personal(userID string) domain.LedgerScope {
	return domain.PersonalContext().ScopeFor(userID)
}

func (s *RepositoryTestSuite) account(scope domain.LedgerScope, spec domain.AccountSpec) domain.Account {
	a, err := s.repos.AccountRepo.GetOrCreateAccount(s.ctx, scope, spec, "tester", s.now)
	s.Require().NoError(err)
	return *a
}

func (s *RepositoryTestSuite) entry(scope domain.LedgerScope, creator, reference string, at time.Time, debitID, creditID string, amount string) domain.JournalEntry {
	amt := decimal.RequireFromString(amount)
	id := uuid.NewString()
	return domain.JournalEntry{
		EntryID:     id,
		TenantID:    scope.TenantID,
		EntryDate:   at,
		Reference:   reference,
		Narration:   "test",
		Status:      domain.Posted,
		AuditFields: domain.NewAuditFields(creator, at),
		Lines: []domain.JournalLine{
			{LineID: uuid.NewString(), EntryID: id, AccountID: debitID, Debit: amt, Credit: decimal.Zero},
			{LineID: uuid.NewString(), EntryID: id, AccountID: creditID, Debit: decimal.Zero, Credit: amt},
		},
	}
}

func (s *RepositoryTestSuite) TestGetOrCreateAccountConcurrentCallersShareOneRow() {
	scope := personal("user-a")
	var wg sync.WaitGroup
	ids := make([]string, 8)
	for i := range ids {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			a, err := s.repos.AccountRepo.GetOrCreateAccount(s.ctx, scope, domain.PersonalCashAccount, "user-a", s.now)
			s.NoError(err)
			if a != nil {
				ids[i] = a.AccountID
			}
		}(i)
	}
	wg.Wait()

	for _, id := range ids {
		s.Equal(ids[0], id)
	}
	accounts, err := s.repos.AccountRepo.ListAccounts(s.ctx, scope)
	s.Require().NoError(err)
	s.Len(accounts, 1)
	s.Equal("user-a", accounts[0].OwnerID)
}

func (s *RepositoryTestSuite) TestPersonalAccountsAreIsolatedByOwner() {
	a := s.account(personal("user-a"), domain.PersonalCashAccount)
	b := s.account(personal("user-b"), domain.PersonalCashAccount)
	s.NotEqual(a.AccountID, b.AccountID)

	_, err := s.repos.AccountRepo.FindAccountByID(s.ctx, personal("user-b"), a.AccountID)
	s.ErrorIs(err, apperrors.ErrNotFound)
}

func (s *RepositoryTestSuite) TestPersonalScopeWithoutOwnerIsRejected() {
	scope := domain.LedgerScope{TenantID: domain.PersonalTenantID}

	_, err := s.repos.AccountRepo.ListAccounts(s.ctx, scope)
	s.ErrorIs(err, apperrors.ErrValidation)

	_, err = s.repos.JournalRepo.ListEntries(s.ctx, scope, domain.EntryFilter{})
	s.ErrorIs(err, apperrors.ErrValidation)
}

func (s *RepositoryTestSuite) TestSaveEntryRollsBackOnDuplicateLine() {
	scope := personal("user-a")
	cash := s.account(scope, domain.PersonalCashAccount)
	equity := s.account(scope, domain.PersonalEquityAccount)

	e := s.entry(scope, "user-a", "", s.now, cash.AccountID, equity.AccountID, "10")
	e.Lines[1].LineID = e.Lines[0].LineID

	err := s.repos.JournalRepo.SaveEntry(s.ctx, e)
	s.Require().Error(err)

	_, err = s.repos.JournalRepo.FindEntryByID(s.ctx, scope, e.EntryID)
	s.ErrorIs(err, apperrors.ErrNotFound)
}

func (s *RepositoryTestSuite) TestEntryRoundTripKeepsExactAmountsAndLineOrder() {
	scope := personal("user-a")
	cash := s.account(scope, domain.PersonalCashAccount)
	equity := s.account(scope, domain.PersonalEquityAccount)

	e := s.entry(scope, "user-a", "OPEN-1", s.now, cash.AccountID, equity.AccountID, "1234.5678")
	s.Require().NoError(s.repos.JournalRepo.SaveEntry(s.ctx, e))

	got, err := s.repos.JournalRepo.FindEntryByID(s.ctx, scope, e.EntryID)
	s.Require().NoError(err)
	s.Require().Len(got.Lines, 2)
	s.Equal(e.Lines[0].LineID, got.Lines[0].LineID)
	s.True(got.Lines[0].Debit.Equal(decimal.RequireFromString("1234.5678")))
	s.True(got.Lines[1].Credit.Equal(decimal.RequireFromString("1234.5678")))
	s.True(got.CreatedAt.Equal(s.now))
}

func (s *RepositoryTestSuite) TestPersonalEntriesAreFilteredByCreator() {
	scopeA, scopeB := personal("user-a"), personal("user-b")
	cash := s.account(scopeA, domain.PersonalCashAccount)
	equity := s.account(scopeA, domain.PersonalEquityAccount)
	e := s.entry(scopeA, "user-a", "", s.now, cash.AccountID, equity.AccountID, "5")
	s.Require().NoError(s.repos.JournalRepo.SaveEntry(s.ctx, e))

	entries, err := s.repos.JournalRepo.ListEntries(s.ctx, scopeB, domain.EntryFilter{})
	s.Require().NoError(err)
	s.Empty(entries)

	_, err = s.repos.JournalRepo.FindEntryByID(s.ctx, scopeB, e.EntryID)
	s.ErrorIs(err, apperrors.ErrNotFound)
}

func (s *RepositoryTestSuite) TestListEntriesResumesAfterCursor() {
	scope := personal("user-a")
	cash := s.account(scope, domain.PersonalCashAccount)
	equity := s.account(scope, domain.PersonalEquityAccount)
	var saved []domain.JournalEntry
	for i := 0; i < 3; i++ {
		e := s.entry(scope, "user-a", "", s.now.Add(time.Duration(i)*time.Second), cash.AccountID, equity.AccountID, "1")
		s.Require().NoError(s.repos.JournalRepo.SaveEntry(s.ctx, e))
		saved = append(saved, e)
	}

	first, err := s.repos.JournalRepo.ListEntries(s.ctx, scope, domain.EntryFilter{CreatorID: "user-a", Limit: 2})
	s.Require().NoError(err)
	s.Require().Len(first, 2)
	s.Equal(saved[2].EntryID, first[0].EntryID)

	last := first[1]
	rest, err := s.repos.JournalRepo.ListEntries(s.ctx, scope, domain.EntryFilter{
		CreatorID: "user-a",
		Limit:     2,
		After:     &domain.EntryCursor{CreatedAt: last.CreatedAt, EntryID: last.EntryID},
	})
	s.Require().NoError(err)
	s.Require().Len(rest, 1)
	s.Equal(saved[0].EntryID, rest[0].EntryID)
}

func (s *RepositoryTestSuite) TestVoidTwiceIsStateError() {
	scope := personal("user-a")
	cash := s.account(scope, domain.PersonalCashAccount)
	equity := s.account(scope, domain.PersonalEquityAccount)
	e := s.entry(scope, "user-a", "", s.now, cash.AccountID, equity.AccountID, "5")
	s.Require().NoError(s.repos.JournalRepo.SaveEntry(s.ctx, e))

	s.Require().NoError(s.repos.JournalRepo.UpdateEntryStatus(s.ctx, scope, e.EntryID, domain.Posted, domain.Void, "user-a", s.now))
	err := s.repos.JournalRepo.UpdateEntryStatus(s.ctx, scope, e.EntryID, domain.Posted, domain.Void, "user-a", s.now)
	s.ErrorIs(err, apperrors.ErrInvalidState)

	err = s.repos.JournalRepo.UpdateEntryStatus(s.ctx, scope, uuid.NewString(), domain.Posted, domain.Void, "user-a", s.now)
	s.ErrorIs(err, apperrors.ErrNotFound)
}

func (s *RepositoryTestSuite) TestReplaceTaggedEntryLeavesOnePosted() {
	scope := personal("user-a")
	alloc := s.account(scope, domain.BudgetAllocMemoAccount)
	income := s.account(scope, domain.BudgetIncomeMemoAccount)

	first := s.entry(scope, "user-a", "BUDGET-1", s.now, alloc.AccountID, income.AccountID, "1000")
	voided, err := s.repos.JournalRepo.ReplaceTaggedEntry(s.ctx, scope, domain.BudgetReferencePrefix, first)
	s.Require().NoError(err)
	s.Empty(voided)

	later := s.now.Add(time.Minute)
	second := s.entry(scope, "user-a", "BUDGET-2", later, alloc.AccountID, income.AccountID, "2000")
	voided, err = s.repos.JournalRepo.ReplaceTaggedEntry(s.ctx, scope, domain.BudgetReferencePrefix, second)
	s.Require().NoError(err)
	s.Equal([]string{first.EntryID}, voided)

	posted, err := s.repos.JournalRepo.ListEntries(s.ctx, scope, domain.EntryFilter{
		Status: domain.Posted, ReferencePrefix: domain.BudgetReferencePrefix,
	})
	s.Require().NoError(err)
	s.Require().Len(posted, 1)
	s.Equal(second.EntryID, posted[0].EntryID)

	// A plain save cannot sneak in a second posted budget.
	third := s.entry(scope, "user-a", "BUDGET-3", later, alloc.AccountID, income.AccountID, "3000")
	err = s.repos.JournalRepo.SaveEntry(s.ctx, third)
	s.ErrorIs(err, apperrors.ErrConflict)
}

func (s *RepositoryTestSuite) TestBudgetUniquenessOnlyAppliesToPersonalTenant() {
	owner := domain.User{UserID: uuid.NewString(), Phone: "+15550003333", AuditFields: domain.NewAuditFields("system", s.now)}
	s.Require().NoError(s.repos.UserRepo.SaveUser(s.ctx, owner))
	company := domain.Company{
		CompanyID: uuid.NewString(), Name: "Acme", OwnerID: owner.UserID,
		CurrencyCode: "USD", CurrencySymbol: "$", AuditFields: domain.NewAuditFields(owner.UserID, s.now),
	}
	s.Require().NoError(s.repos.CompanyRepo.SaveCompany(s.ctx, company,
		domain.CompanyMember{CompanyID: company.CompanyID, UserID: owner.UserID, Role: domain.RoleAdmin, JoinedAt: s.now}))

	business := domain.BusinessContext(company.CompanyID).ScopeFor(owner.UserID)
	bank := s.account(business, domain.AccountSpec{Code: "1000", Name: "Bank", Type: domain.Asset})
	capital := s.account(business, domain.AccountSpec{Code: "3000", Name: "Capital", Type: domain.Equity})
	s.Require().NoError(s.repos.JournalRepo.SaveEntry(s.ctx, s.entry(business, owner.UserID, "BUDGET-Q1", s.now, bank.AccountID, capital.AccountID, "10")))
	s.Require().NoError(s.repos.JournalRepo.SaveEntry(s.ctx, s.entry(business, owner.UserID, "BUDGET-Q2", s.now, bank.AccountID, capital.AccountID, "10")))

	scope := personal(owner.UserID)
	alloc := s.account(scope, domain.BudgetAllocMemoAccount)
	income := s.account(scope, domain.BudgetIncomeMemoAccount)
	s.Require().NoError(s.repos.JournalRepo.SaveEntry(s.ctx, s.entry(scope, owner.UserID, "BUDGET-1", s.now, alloc.AccountID, income.AccountID, "100")))
	err := s.repos.JournalRepo.SaveEntry(s.ctx, s.entry(scope, owner.UserID, "BUDGET-2", s.now, alloc.AccountID, income.AccountID, "100"))
	s.ErrorIs(err, apperrors.ErrConflict)
}

func (s *RepositoryTestSuite) TestSumAccountActivityIgnoresVoidEntries() {
	scope := personal("user-a")
	cash := s.account(scope, domain.PersonalCashAccount)
	equity := s.account(scope, domain.PersonalEquityAccount)

	kept := s.entry(scope, "user-a", "", s.now, cash.AccountID, equity.AccountID, "0.10")
	also := s.entry(scope, "user-a", "", s.now, cash.AccountID, equity.AccountID, "0.20")
	gone := s.entry(scope, "user-a", "", s.now, cash.AccountID, equity.AccountID, "99")
	for _, e := range []domain.JournalEntry{kept, also, gone} {
		s.Require().NoError(s.repos.JournalRepo.SaveEntry(s.ctx, e))
	}
	s.Require().NoError(s.repos.JournalRepo.UpdateEntryStatus(s.ctx, scope, gone.EntryID, domain.Posted, domain.Void, "user-a", s.now))

	activity, err := s.repos.JournalRepo.SumAccountActivity(s.ctx, scope, []string{cash.AccountID, equity.AccountID, "unused"})
	s.Require().NoError(err)
	s.True(activity[cash.AccountID].Debits.Equal(decimal.RequireFromString("0.3")))
	s.True(activity[equity.AccountID].Credits.Equal(decimal.RequireFromString("0.3")))
	s.True(activity["unused"].Debits.IsZero())
}

func (s *RepositoryTestSuite) TestCompanyListingSkipsPersonalTenant() {
	now := s.now
	user := domain.User{UserID: uuid.NewString(), Phone: "+15550001111", AuditFields: domain.NewAuditFields("system", now)}
	s.Require().NoError(s.repos.UserRepo.SaveUser(s.ctx, user))

	dup := user
	dup.UserID = uuid.NewString()
	s.ErrorIs(s.repos.UserRepo.SaveUser(s.ctx, dup), apperrors.ErrConflict)

	company := domain.Company{
		CompanyID: uuid.NewString(), Name: "Acme", OwnerID: user.UserID,
		CurrencyCode: "USD", CurrencySymbol: "$", AuditFields: domain.NewAuditFields(user.UserID, now),
	}
	owner := domain.CompanyMember{CompanyID: company.CompanyID, UserID: user.UserID, Role: domain.RoleAdmin, JoinedAt: now}
	s.Require().NoError(s.repos.CompanyRepo.SaveCompany(s.ctx, company, owner))

	companies, err := s.repos.CompanyRepo.ListCompaniesByUserID(s.ctx, user.UserID)
	s.Require().NoError(err)
	s.Require().Len(companies, 1)
	s.Equal("Acme", companies[0].Name)

	_, err = s.repos.CompanyRepo.FindCompanyByID(s.ctx, domain.PersonalTenantID)
	s.ErrorIs(err, apperrors.ErrNotFound)

	m, err := s.repos.CompanyRepo.FindMember(s.ctx, company.CompanyID, user.UserID)
	s.Require().NoError(err)
	s.Equal(domain.RoleAdmin, m.Role)
}

func (s *RepositoryTestSuite) TestOTPChallengeLifecycle() {
	otp := s.repos.OTPRepo
	c := domain.OTPChallenge{Phone: "+15550002222", CodeHash: "h1", ExpiresAt: s.now.Add(5 * time.Minute), CreatedAt: s.now}
	s.Require().NoError(otp.SaveChallenge(s.ctx, c))
	ok, err := otp.ConsumeAttempt(s.ctx, c.Phone, 2)
	s.Require().NoError(err)
	s.True(ok)
	ok, err = otp.ConsumeAttempt(s.ctx, c.Phone, 2)
	s.Require().NoError(err)
	s.True(ok)
	ok, err = otp.ConsumeAttempt(s.ctx, c.Phone, 2)
	s.Require().NoError(err)
	s.False(ok, "a third attempt exceeds the limit")

	got, err := otp.FindChallenge(s.ctx, c.Phone)
	s.Require().NoError(err)
	s.Equal(2, got.Attempts)

	c.CodeHash = "h2"
	s.Require().NoError(otp.SaveChallenge(s.ctx, c))
	got, err = otp.FindChallenge(s.ctx, c.Phone)
	s.Require().NoError(err)
	s.Equal("h2", got.CodeHash)
	s.Equal(0, got.Attempts)

	s.Require().NoError(otp.DeleteChallenge(s.ctx, c.Phone))
	_, err = otp.FindChallenge(s.ctx, c.Phone)
	s.ErrorIs(err, apperrors.ErrNotFound)
}
