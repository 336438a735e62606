package services_test

import (
	"context"
	"sync"
	"time"

	"github.com/SscSPs/ledgerlite/internal/core/domain"
	portsrepo "github.com/SscSPs/ledgerlite/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/ledgerlite/internal/core/ports/services"
	"github.com/stretchr/testify/mock"
)

// --- Mock JournalRepository ---
type MockJournalRepository struct {
	mock.Mock
}

var _ portsrepo.JournalRepositoryFacade = (*MockJournalRepository)(nil)

func (m *MockJournalRepository) FindEntryByID(ctx context.Context, scope domain.LedgerScope, entryID string) (*domain.JournalEntry, error) {
	args := m.Called(ctx, scope, entryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

func (m *MockJournalRepository) ListEntries(ctx context.Context, scope domain.LedgerScope, filter domain.EntryFilter) ([]domain.JournalEntry, error) {
	args := m.Called(ctx, scope, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.JournalEntry), args.Error(1)
}

func (m *MockJournalRepository) FindLinesByEntryIDs(ctx context.Context, entryIDs []string) (map[string][]domain.JournalLine, error) {
	args := m.Called(ctx, entryIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string][]domain.JournalLine), args.Error(1)
}

func (m *MockJournalRepository) SaveEntry(ctx context.Context, entry domain.JournalEntry) error {
	return m.Called(ctx, entry).Error(0)
}

func (m *MockJournalRepository) UpdateEntryStatus(ctx context.Context, scope domain.LedgerScope, entryID string, from, to domain.JournalStatus, userID string, now time.Time) error {
	return m.Called(ctx, scope, entryID, from, to, userID, now).Error(0)
}

func (m *MockJournalRepository) ReplaceTaggedEntry(ctx context.Context, scope domain.LedgerScope, prefix string, entry domain.JournalEntry) ([]string, error) {
	args := m.Called(ctx, scope, prefix, entry)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockJournalRepository) SumAccountActivity(ctx context.Context, scope domain.LedgerScope, accountIDs []string) (map[string]domain.AccountActivity, error) {
	args := m.Called(ctx, scope, accountIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.AccountActivity), args.Error(1)
}

// --- Mock AccountRepository ---
type MockAccountRepository struct {
	mock.Mock
}

var _ portsrepo.AccountRepositoryFacade = (*MockAccountRepository)(nil)

func (m *MockAccountRepository) FindAccountByID(ctx context.Context, scope domain.LedgerScope, accountID string) (*domain.Account, error) {
	args := m.Called(ctx, scope, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) FindAccountByCode(ctx context.Context, scope domain.LedgerScope, code string) (*domain.Account, error) {
	args := m.Called(ctx, scope, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) FindAccountsByIDs(ctx context.Context, scope domain.LedgerScope, accountIDs []string) (map[string]domain.Account, error) {
	args := m.Called(ctx, scope, accountIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.Account), args.Error(1)
}

func (m *MockAccountRepository) ListAccounts(ctx context.Context, scope domain.LedgerScope) ([]domain.Account, error) {
	args := m.Called(ctx, scope)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}

func (m *MockAccountRepository) GetOrCreateAccount(ctx context.Context, scope domain.LedgerScope, spec domain.AccountSpec, userID string, now time.Time) (*domain.Account, error) {
	args := m.Called(ctx, scope, spec, userID, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

// --- Mock ContextSvc ---
type MockContextService struct {
	mock.Mock
}

var _ portssvc.ContextSvc = (*MockContextService)(nil)

func (m *MockContextService) Resolve(ctx context.Context, userID string, actx domain.AccountingContext) (domain.LedgerScope, error) {
	args := m.Called(ctx, userID, actx)
	return args.Get(0).(domain.LedgerScope), args.Error(1)
}

func (m *MockContextService) Switch(ctx context.Context, userID string, actx domain.AccountingContext) (*domain.ContextSwitch, error) {
	args := m.Called(ctx, userID, actx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ContextSwitch), args.Error(1)
}

// --- Mock CompanyAuthorizer ---
type MockCompanyAuthorizer struct {
	mock.Mock
}

var _ portssvc.CompanyAuthorizerSvc = (*MockCompanyAuthorizer)(nil)

func (m *MockCompanyAuthorizer) AuthorizeAccess(ctx context.Context, userID, companyID string) error {
	return m.Called(ctx, userID, companyID).Error(0)
}

// recordingTracker captures analytics events.
type recordingTracker struct {
	mu     sync.Mutex
	events []string
}

func (r *recordingTracker) Enqueue(distinctID, event string, _ map[string]any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event)
}

func (r *recordingTracker) Events() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.events...)
}

// capturingSender keeps the last code sent per phone.
type capturingSender struct {
	mu    sync.Mutex
	codes map[string]string
}

func newCapturingSender() *capturingSender {
	return &capturingSender{codes: map[string]string{}}
}

func (c *capturingSender) SendOTP(_ context.Context, phone, code string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.codes[phone] = code
	return nil
}

func (c *capturingSender) Code(phone string) string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.codes[phone]
}

// fakeClock is a settable clock for services.WithClock.
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}
