package services_test

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/SscSPs/ledgerlite/internal/apperrors"
	"github.com/SscSPs/ledgerlite/internal/core/domain"
	portsrepo "github.com/SscSPs/ledgerlite/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/ledgerlite/internal/core/ports/services"
	"github.com/SscSPs/ledgerlite/internal/core/services"
	"github.com/SscSPs/ledgerlite/internal/dto"
	"github.com/SscSPs/ledgerlite/internal/platform/config"
	"github.com/SscSPs/ledgerlite/internal/repositories/database/sqlite"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
	"github.com/xuri/excelize/v2"
)

// LedgerScenarioTestSuite runs the services against a real SQLite store.
type LedgerScenarioTestSuite struct {
	suite.Suite
	ctx    context.Context
	clock  *fakeClock
	repos  portsrepo.RepositoryProvider
	svc    *portssvc.ServiceContainer
	sender *capturingSender
	closer func()
}

func TestLedgerScenarioTestSuite(t *testing.T) {
	suite.Run(t, new(LedgerScenarioTestSuite))
}

func testConfig() *config.Config {
	return &config.Config{
		JWTSecret:         "scenario-secret",
		JWTExpiryDuration: time.Hour,
		JWTIssuer:         "ledgerlite-test",
		OTPTTL:            5 * time.Minute,
		OTPMaxAttempts:    3,
	}
}

func (s *LedgerScenarioTestSuite) SetupTest() {
	s.ctx = context.Background()
	db, err := sqlite.Open(s.ctx, filepath.Join(s.T().TempDir(), "scenario.db"))
	s.Require().NoError(err)
	s.closer = func() { db.Close() }

	s.clock = &fakeClock{now: time.Date(2026, 1, 15, 8, 0, 0, 0, time.UTC)}
	s.repos = sqlite.NewRepositoryProvider(db)
	s.sender = newCapturingSender()
	s.svc = services.NewServiceContainer(testConfig(), s.repos, s.sender, services.WithClock(s.clock.Now))
}

func (s *LedgerScenarioTestSuite) TearDownTest() {
	s.closer()
}

// newUser signs a phone in through the OTP flow and returns the user id.
func (s *LedgerScenarioTestSuite) newUser(phone string) string {
	_, err := s.svc.Auth.RequestOTP(s.ctx, phone)
	s.Require().NoError(err)
	session, err := s.svc.Auth.VerifyOTP(s.ctx, phone, s.sender.Code(phone))
	s.Require().NoError(err)
	return session.User.UserID
}

func (s *LedgerScenarioTestSuite) TestIncomeShowsUpInSummary() {
	userID := s.newUser("+15550100001")

	entry, err := s.svc.Personal.RecordIncome(s.ctx, userID, dto.RecordIncomeRequest{
		Category: "salary",
		Amount:   decimal.NewFromInt(5000),
	})
	s.Require().NoError(err)
	s.Equal("PI-", entry.Reference[:3])
	s.Equal("Salary income", entry.Narration)

	summary, err := s.svc.Personal.Summary(s.ctx, userID)
	s.Require().NoError(err)
	s.True(summary.CashBalance.Equal(decimal.NewFromInt(5000)), summary.CashBalance.String())
	s.True(summary.TotalIncome.Equal(decimal.NewFromInt(5000)))
	s.True(summary.IncomeByCategory["salary"].Equal(decimal.NewFromInt(5000)))
	s.Nil(summary.ActiveBudget)

	income, err := s.svc.Personal.ListIncome(s.ctx, userID, 0)
	s.Require().NoError(err)
	s.Require().Len(income, 1)
	s.Equal("salary", income[0].Category)
	s.True(income[0].Amount.Equal(decimal.NewFromInt(5000)))

	accounts, err := s.svc.Account.ListAccounts(s.ctx, domain.PersonalContext(), userID)
	s.Require().NoError(err)
	codes := []string{}
	for _, a := range accounts {
		codes = append(codes, a.Code)
	}
	s.Equal([]string{"P-1001", "P-4SAL"}, codes)
}

func (s *LedgerScenarioTestSuite) TestUnknownIncomeCategoryIsRejected() {
	userID := s.newUser("+15550100002")

	_, err := s.svc.Personal.RecordIncome(s.ctx, userID, dto.RecordIncomeRequest{Category: "lottery", Amount: decimal.NewFromInt(1)})
	s.ErrorIs(err, apperrors.ErrValidation)

	_, err = s.svc.Personal.RecordIncome(s.ctx, userID, dto.RecordIncomeRequest{Category: "gift", Amount: decimal.Zero})
	s.ErrorIs(err, apperrors.ErrValidation)
}

func (s *LedgerScenarioTestSuite) TestUnbalancedEntryPersistsNothing() {
	userID := s.newUser("+15550100003")
	sw, err := s.svc.Context.Switch(s.ctx, userID, domain.PersonalContext())
	s.Require().NoError(err)
	s.Require().Len(sw.Accounts, 2)
	cash, equity := sw.Accounts[0], sw.Accounts[1]

	_, err = s.svc.Journal.PostEntry(s.ctx, domain.PersonalContext(), userID, domain.EntryDraft{
		Lines: []domain.LineDraft{
			{AccountID: cash.AccountID, Debit: decimal.NewFromInt(100)},
			{AccountID: equity.AccountID, Credit: decimal.NewFromInt(90)},
		},
	})
	s.ErrorIs(err, apperrors.ErrValidation)

	entries, err := s.svc.Journal.ListEntries(s.ctx, domain.PersonalContext(), userID, dto.ListEntriesParams{})
	s.Require().NoError(err)
	s.Empty(entries)
}

func (s *LedgerScenarioTestSuite) TestBudgetReplacementKeepsOneActive() {
	userID := s.newUser("+15550100004")
	_, err := s.svc.Personal.RecordIncome(s.ctx, userID, dto.RecordIncomeRequest{Category: "freelance", Amount: decimal.NewFromInt(1200)})
	s.Require().NoError(err)

	budgetA := domain.Budget{
		TotalIncome: decimal.NewFromInt(3000),
		BudgetType:  domain.BudgetModerate,
		Period:      domain.PeriodMonthly,
		Budgets: []domain.BudgetAllocation{
			{CategoryID: "housing", Amount: decimal.NewFromInt(1500), Percentage: decimal.NewFromInt(50)},
		},
	}
	first, err := s.svc.Budget.ReplaceActiveBudget(s.ctx, userID, budgetA)
	s.Require().NoError(err)

	s.clock.Advance(time.Minute)
	budgetB := budgetA
	budgetB.TotalIncome = decimal.NewFromInt(4000)
	budgetB.BudgetType = domain.BudgetAggressive
	second, err := s.svc.Budget.ReplaceActiveBudget(s.ctx, userID, budgetB)
	s.Require().NoError(err)
	s.NotEqual(first.EntryID, second.EntryID)

	active, err := s.svc.Budget.GetActiveBudget(s.ctx, userID)
	s.Require().NoError(err)
	s.Require().NotNil(active)
	s.Equal(second.EntryID, active.EntryID)
	s.True(active.Budget.Equal(budgetB))

	posted, err := s.svc.Journal.ListEntries(s.ctx, domain.PersonalContext(), userID, dto.ListEntriesParams{
		Status: string(domain.Posted), ReferencePrefix: domain.BudgetReferencePrefix,
	})
	s.Require().NoError(err)
	s.Len(posted, 1)

	old, err := s.svc.Journal.GetEntry(s.ctx, domain.PersonalContext(), userID, first.EntryID)
	s.Require().NoError(err)
	s.Equal(domain.Void, old.Status)

	// Memo lines never reach the cash balance.
	summary, err := s.svc.Personal.Summary(s.ctx, userID)
	s.Require().NoError(err)
	s.True(summary.CashBalance.Equal(decimal.NewFromInt(1200)))
	s.Require().NotNil(summary.ActiveBudget)
	s.Equal(second.EntryID, summary.ActiveBudget.EntryID)
}

func (s *LedgerScenarioTestSuite) TestInvalidBudgetIsRejected() {
	userID := s.newUser("+15550100005")
	_, err := s.svc.Budget.ReplaceActiveBudget(s.ctx, userID, domain.Budget{
		TotalIncome: decimal.Zero, BudgetType: domain.BudgetCustom, Period: domain.PeriodYearly,
	})
	s.ErrorIs(err, apperrors.ErrValidation)

	active, err := s.svc.Budget.GetActiveBudget(s.ctx, userID)
	s.Require().NoError(err)
	s.Nil(active)
}

func (s *LedgerScenarioTestSuite) TestPersonalLedgersAreIsolated() {
	alice := s.newUser("+15550100006")
	bob := s.newUser("+15550100007")

	entry, err := s.svc.Personal.RecordIncome(s.ctx, alice, dto.RecordIncomeRequest{Category: "salary", Amount: decimal.NewFromInt(10)})
	s.Require().NoError(err)

	_, err = s.svc.Journal.GetEntry(s.ctx, domain.PersonalContext(), bob, entry.EntryID)
	s.ErrorIs(err, apperrors.ErrNotFound)

	_, err = s.svc.Journal.VoidEntry(s.ctx, domain.PersonalContext(), bob, entry.EntryID)
	s.ErrorIs(err, apperrors.ErrNotFound)

	summary, err := s.svc.Personal.Summary(s.ctx, bob)
	s.Require().NoError(err)
	s.True(summary.CashBalance.IsZero())

	// Bob cannot post against Alice's cash account either.
	aliceAccounts, err := s.svc.Account.ListAccounts(s.ctx, domain.PersonalContext(), alice)
	s.Require().NoError(err)
	bobSwitch, err := s.svc.Context.Switch(s.ctx, bob, domain.PersonalContext())
	s.Require().NoError(err)
	_, err = s.svc.Journal.PostEntry(s.ctx, domain.PersonalContext(), bob, domain.EntryDraft{
		Lines: []domain.LineDraft{
			{AccountID: aliceAccounts[0].AccountID, Debit: decimal.NewFromInt(1)},
			{AccountID: bobSwitch.Accounts[1].AccountID, Credit: decimal.NewFromInt(1)},
		},
	})
	s.ErrorIs(err, apperrors.ErrNotFound)
}

func (s *LedgerScenarioTestSuite) TestBusinessLedgerRequiresMembership() {
	owner := s.newUser("+15550100008")
	member := s.newUser("+15550100009")
	outsider := s.newUser("+15550100010")

	company, err := s.svc.Company.CreateCompany(s.ctx, owner, dto.CreateCompanyRequest{Name: " Acme ", CurrencyCode: "EUR"})
	s.Require().NoError(err)
	s.Equal("Acme", company.Name)
	s.Equal("€", company.CurrencySymbol)
	actx := domain.BusinessContext(company.CompanyID)

	_, err = s.svc.Company.AddMember(s.ctx, company.CompanyID, member, dto.AddMemberRequest{UserID: outsider, Role: string(domain.RoleMember)})
	s.ErrorIs(err, apperrors.ErrForbidden)
	_, err = s.svc.Company.AddMember(s.ctx, company.CompanyID, owner, dto.AddMemberRequest{UserID: member, Role: string(domain.RoleMember)})
	s.Require().NoError(err)

	cash, err := s.svc.Account.GetOrCreateAccount(s.ctx, actx, owner, domain.AccountSpec{Code: "1000", Name: "Bank", Type: domain.Asset})
	s.Require().NoError(err)
	sales, err := s.svc.Account.GetOrCreateAccount(s.ctx, actx, member, domain.AccountSpec{Code: "4000", Name: "Sales", Type: domain.Revenue})
	s.Require().NoError(err)
	s.Empty(cash.OwnerID)

	entry, err := s.svc.Journal.PostEntry(s.ctx, actx, member, domain.EntryDraft{
		Reference: "INV-7",
		Lines: []domain.LineDraft{
			{AccountID: cash.AccountID, Debit: decimal.RequireFromString("250.75")},
			{AccountID: sales.AccountID, Credit: decimal.RequireFromString("250.75")},
		},
	})
	s.Require().NoError(err)

	// Company entries are shared between members regardless of creator.
	got, err := s.svc.Journal.GetEntry(s.ctx, actx, owner, entry.EntryID)
	s.Require().NoError(err)
	s.Equal(member, got.CreatedBy)

	balance, err := s.svc.Account.GetAccountBalance(s.ctx, actx, owner, sales.AccountID)
	s.Require().NoError(err)
	s.True(balance.Balance.Equal(decimal.RequireFromString("250.75")))

	_, err = s.svc.Journal.ListEntries(s.ctx, actx, outsider, dto.ListEntriesParams{})
	s.ErrorIs(err, apperrors.ErrForbidden)
	_, err = s.svc.Context.Switch(s.ctx, outsider, actx)
	s.ErrorIs(err, apperrors.ErrForbidden)
	_, err = s.svc.Journal.ListEntries(s.ctx, domain.BusinessContext(uuid.NewString()), owner, dto.ListEntriesParams{})
	s.ErrorIs(err, apperrors.ErrForbidden)

	_, err = s.svc.Journal.VoidEntry(s.ctx, actx, owner, entry.EntryID)
	s.Require().NoError(err)
	_, err = s.svc.Journal.VoidEntry(s.ctx, actx, owner, entry.EntryID)
	s.ErrorIs(err, apperrors.ErrInvalidState)

	balance, err = s.svc.Account.GetAccountBalance(s.ctx, actx, owner, sales.AccountID)
	s.Require().NoError(err)
	s.True(balance.Balance.IsZero())

	companies, err := s.svc.Company.ListCompanies(s.ctx, member)
	s.Require().NoError(err)
	s.Len(companies, 1)
	companies, err = s.svc.Company.ListCompanies(s.ctx, outsider)
	s.Require().NoError(err)
	s.Empty(companies)
}

func (s *LedgerScenarioTestSuite) TestBudgetPrefixIsFreeTextInCompanyLedger() {
	owner := s.newUser("+15550100015")
	company, err := s.svc.Company.CreateCompany(s.ctx, owner, dto.CreateCompanyRequest{Name: "Delta", CurrencyCode: "USD"})
	s.Require().NoError(err)
	actx := domain.BusinessContext(company.CompanyID)

	bank, err := s.svc.Account.GetOrCreateAccount(s.ctx, actx, owner, domain.AccountSpec{Code: "1000", Name: "Bank", Type: domain.Asset})
	s.Require().NoError(err)
	capital, err := s.svc.Account.GetOrCreateAccount(s.ctx, actx, owner, domain.AccountSpec{Code: "3000", Name: "Capital", Type: domain.Equity})
	s.Require().NoError(err)

	for _, ref := range []string{"BUDGET-Q1", "BUDGET-Q2"} {
		_, err := s.svc.Journal.PostEntry(s.ctx, actx, owner, domain.EntryDraft{
			Reference: ref,
			Lines: []domain.LineDraft{
				{AccountID: bank.AccountID, Debit: decimal.NewFromInt(10)},
				{AccountID: capital.AccountID, Credit: decimal.NewFromInt(10)},
			},
		})
		s.Require().NoError(err, ref)
	}

	entries, err := s.svc.Journal.ListEntries(s.ctx, actx, owner, dto.ListEntriesParams{ReferencePrefix: "BUDGET-", Status: string(domain.Posted)})
	s.Require().NoError(err)
	s.Len(entries, 2)
}

func (s *LedgerScenarioTestSuite) TestPersonalEntryCannotUseBudgetPrefix() {
	userID := s.newUser("+15550100016")
	sw, err := s.svc.Context.Switch(s.ctx, userID, domain.PersonalContext())
	s.Require().NoError(err)
	cash, equity := sw.Accounts[0], sw.Accounts[1]

	_, err = s.svc.Journal.PostEntry(s.ctx, domain.PersonalContext(), userID, domain.EntryDraft{
		Reference: " BUDGET-manual",
		Lines: []domain.LineDraft{
			{AccountID: cash.AccountID, Debit: decimal.NewFromInt(5)},
			{AccountID: equity.AccountID, Credit: decimal.NewFromInt(5)},
		},
	})
	s.ErrorIs(err, apperrors.ErrValidation)

	budget, err := s.svc.Budget.GetActiveBudget(s.ctx, userID)
	s.Require().NoError(err)
	s.Nil(budget)
}

func (s *LedgerScenarioTestSuite) TestAccountTypeConflict() {
	owner := s.newUser("+15550100011")
	company, err := s.svc.Company.CreateCompany(s.ctx, owner, dto.CreateCompanyRequest{Name: "Beta", CurrencyCode: "USD"})
	s.Require().NoError(err)
	actx := domain.BusinessContext(company.CompanyID)

	_, err = s.svc.Account.GetOrCreateAccount(s.ctx, actx, owner, domain.AccountSpec{Code: "2000", Name: "Loan", Type: domain.Liability})
	s.Require().NoError(err)
	_, err = s.svc.Account.GetOrCreateAccount(s.ctx, actx, owner, domain.AccountSpec{Code: "2000", Name: "Loan", Type: domain.Asset})
	s.ErrorIs(err, apperrors.ErrConflict)
}

func (s *LedgerScenarioTestSuite) TestCustomersFollowCompanyAccess() {
	owner := s.newUser("+15550100012")
	outsider := s.newUser("+15550100013")
	company, err := s.svc.Company.CreateCompany(s.ctx, owner, dto.CreateCompanyRequest{Name: "Gamma", CurrencyCode: "USD"})
	s.Require().NoError(err)

	c, err := s.svc.Customer.CreateCustomer(s.ctx, company.CompanyID, owner, dto.CreateCustomerRequest{Name: "Jo", Email: "jo@example.com"})
	s.Require().NoError(err)

	got, err := s.svc.Customer.GetCustomer(s.ctx, company.CompanyID, owner, c.CustomerID)
	s.Require().NoError(err)
	s.Equal("jo@example.com", got.Email)

	_, err = s.svc.Customer.ListCustomers(s.ctx, company.CompanyID, outsider)
	s.ErrorIs(err, apperrors.ErrForbidden)
}

func (s *LedgerScenarioTestSuite) TestExportWritesWorkbook() {
	userID := s.newUser("+15550100014")
	_, err := s.svc.Personal.RecordIncome(s.ctx, userID, dto.RecordIncomeRequest{Category: "rental", Amount: decimal.NewFromInt(800)})
	s.Require().NoError(err)

	var buf bytes.Buffer
	s.Require().NoError(s.svc.Export.ExportLedger(s.ctx, domain.PersonalContext(), userID, &buf))

	f, err := excelize.OpenReader(&buf)
	s.Require().NoError(err)
	defer f.Close()
	s.Equal([]string{"Entries", "Lines", "Balances"}, f.GetSheetList())

	entries, err := f.GetRows("Entries")
	s.Require().NoError(err)
	s.Require().Len(entries, 2)
	s.Equal("800", entries[1][6])

	lines, err := f.GetRows("Lines")
	s.Require().NoError(err)
	s.Require().Len(lines, 3)
	s.Equal("Effect", lines[0][6])
	for _, row := range lines[1:] {
		// Debit to cash and credit to income both raise their balances.
		s.Equal("800", row[6])
	}

	balances, err := f.GetRows("Balances")
	s.Require().NoError(err)
	s.Require().Len(balances, 3)
	s.Equal("P-1001", balances[1][0])
	s.Equal("800", balances[1][5])
}
