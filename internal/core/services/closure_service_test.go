package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/Musoni/mifosx-sub001/internal/apperrors"
	"github.com/Musoni/mifosx-sub001/internal/core/domain"
	portsrepo "github.com/Musoni/mifosx-sub001/internal/core/ports/repositories"
	portssvc "github.com/Musoni/mifosx-sub001/internal/core/ports/services"
	"github.com/Musoni/mifosx-sub001/internal/core/services"
	"github.com/Musoni/mifosx-sub001/internal/dto"
)

// MockClosureRepository is a mock type for the ClosureRepositoryFacade interface
type MockClosureRepository struct {
	mock.Mock
}

func (m *MockClosureRepository) FindClosureByID(ctx context.Context, closureID string) (*domain.GLClosure, error) {
	args := m.Called(ctx, closureID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.GLClosure), args.Error(1)
}

func (m *MockClosureRepository) FindLatestClosure(ctx context.Context, officeID string) (*domain.GLClosure, error) {
	args := m.Called(ctx, officeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.GLClosure), args.Error(1)
}

func (m *MockClosureRepository) FindLatestClosureForOffices(ctx context.Context, officeIDs []string) (*domain.GLClosure, error) {
	args := m.Called(ctx, officeIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.GLClosure), args.Error(1)
}

func (m *MockClosureRepository) ListClosuresByOffice(ctx context.Context, officeID string, limit int, nextToken *string) ([]domain.GLClosure, *string, error) {
	args := m.Called(ctx, officeID, limit, nextToken)
	var closures []domain.GLClosure
	if args.Get(0) != nil {
		closures = args.Get(0).([]domain.GLClosure)
	}
	var token *string
	if args.Get(1) != nil {
		token = args.Get(1).(*string)
	}
	return closures, token, args.Error(2)
}

func (m *MockClosureRepository) SaveClosure(ctx context.Context, closure domain.GLClosure) error {
	args := m.Called(ctx, closure)
	return args.Error(0)
}

func (m *MockClosureRepository) UpdateClosureComments(ctx context.Context, closureID string, comments string, updatedBy string, updatedAt time.Time) error {
	args := m.Called(ctx, closureID, comments, updatedBy, updatedAt)
	return args.Error(0)
}

func (m *MockClosureRepository) MarkClosureDeleted(ctx context.Context, closureID string, updatedBy string, updatedAt time.Time) error {
	args := m.Called(ctx, closureID, updatedBy, updatedAt)
	return args.Error(0)
}

func (m *MockClosureRepository) SaveBooking(ctx context.Context, booking domain.IncomeExpenseBooking) error {
	args := m.Called(ctx, booking)
	return args.Error(0)
}

func (m *MockClosureRepository) FindBookingByClosureID(ctx context.Context, closureID string) (*domain.IncomeExpenseBooking, error) {
	args := m.Called(ctx, closureID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.IncomeExpenseBooking), args.Error(1)
}

func (m *MockClosureRepository) MarkBookingReversed(ctx context.Context, bookingID string, updatedBy string, updatedAt time.Time) error {
	args := m.Called(ctx, bookingID, updatedBy, updatedAt)
	return args.Error(0)
}

func (m *MockClosureRepository) SaveSnapshots(ctx context.Context, snapshots []domain.AccountBalanceSnapshot) error {
	args := m.Called(ctx, snapshots)
	return args.Error(0)
}

func (m *MockClosureRepository) DeleteSnapshotsByClosureID(ctx context.Context, closureID string) error {
	args := m.Called(ctx, closureID)
	return args.Error(0)
}

// MockLedgerRepository is a mock type for the LedgerReader interface
type MockLedgerRepository struct {
	mock.Mock
}

func (m *MockLedgerRepository) RetrieveIncomeExpenseLines(ctx context.Context, officeID string, cutoffDate time.Time) ([]domain.IncomeExpenseLine, error) {
	args := m.Called(ctx, officeID, cutoffDate)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.IncomeExpenseLine), args.Error(1)
}

func (m *MockLedgerRepository) RetrieveAccountBalances(ctx context.Context, officeID string, cutoffDate time.Time) ([]domain.AccountBalance, error) {
	args := m.Called(ctx, officeID, cutoffDate)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.AccountBalance), args.Error(1)
}

// MockAccountRepository is a mock type for the GLAccountReader interface
type MockAccountRepository struct {
	mock.Mock
}

func (m *MockAccountRepository) FindAccountByID(ctx context.Context, accountID string) (*domain.GLAccount, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.GLAccount), args.Error(1)
}

// MockOfficeRepository is a mock type for the OfficeReader interface
type MockOfficeRepository struct {
	mock.Mock
}

func (m *MockOfficeRepository) FindOfficeByID(ctx context.Context, officeID string) (*domain.Office, error) {
	args := m.Called(ctx, officeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Office), args.Error(1)
}

func (m *MockOfficeRepository) OfficesUnderHierarchy(ctx context.Context, officeID string) ([]domain.Office, error) {
	args := m.Called(ctx, officeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Office), args.Error(1)
}

// MockJournalEntryWriter is a mock type for the JournalEntryWriter interface
type MockJournalEntryWriter struct {
	mock.Mock
}

func (m *MockJournalEntryWriter) CreateBalancedEntry(ctx context.Context, entry domain.BalancedJournalEntry, createdBy string) (string, error) {
	args := m.Called(ctx, entry, createdBy)
	return args.String(0), args.Error(1)
}

func (m *MockJournalEntryWriter) ReverseEntry(ctx context.Context, transactionID string, reversedBy string) error {
	args := m.Called(ctx, transactionID, reversedBy)
	return args.Error(0)
}

// passthroughTxManager runs the callback directly; unit tests assert on the
// repository calls, not on transaction mechanics.
type passthroughTxManager struct{}

func (passthroughTxManager) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

// fixedClock pins the tenant's "today" for deterministic date checks.
type fixedClock struct {
	today time.Time
}

func (c fixedClock) Today(ctx context.Context) time.Time {
	return c.today
}

// --- Test Suite Setup ---

type ClosureServiceTestSuite struct {
	suite.Suite
	mockClosureRepo *MockClosureRepository
	mockLedgerRepo  *MockLedgerRepository
	mockAccountRepo *MockAccountRepository
	mockOfficeRepo  *MockOfficeRepository
	mockJournal     *MockJournalEntryWriter
	service         portssvc.ClosureSvcFacade
	today           time.Time
	ctx             context.Context
}

func (suite *ClosureServiceTestSuite) SetupTest() {
	suite.mockClosureRepo = new(MockClosureRepository)
	suite.mockLedgerRepo = new(MockLedgerRepository)
	suite.mockAccountRepo = new(MockAccountRepository)
	suite.mockOfficeRepo = new(MockOfficeRepository)
	suite.mockJournal = new(MockJournalEntryWriter)
	suite.today = time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC)
	suite.ctx = context.Background()

	repos := portsrepo.RepositoryProvider{
		ClosureRepo:      suite.mockClosureRepo,
		LedgerRepo:       suite.mockLedgerRepo,
		AccountRepo:      suite.mockAccountRepo,
		OfficeRepo:       suite.mockOfficeRepo,
		JournalEntryRepo: suite.mockJournal,
		TxManager:        passthroughTxManager{},
	}
	suite.service = services.NewClosureService(repos, fixedClock{today: suite.today})
}

func (suite *ClosureServiceTestSuite) headOffice() *domain.Office {
	return &domain.Office{OfficeID: "office-1", Name: "Head Office", Hierarchy: "."}
}

func (suite *ClosureServiceTestSuite) equityAccount() *domain.GLAccount {
	return &domain.GLAccount{
		AccountID:   "equity-acct-1",
		Name:        "Retained Earnings",
		GLCode:      "3000",
		AccountType: domain.Equity,
	}
}

func (suite *ClosureServiceTestSuite) createRequest(bookOff bool) dto.CreateClosureRequest {
	equityID := "equity-acct-1"
	req := dto.CreateClosureRequest{
		OfficeID:     "office-1",
		ClosingDate:  "2024-03-31",
		Comments:     "quarter end",
		CurrencyCode: "EUR",
	}
	if bookOff {
		req.BookOffIncomeAndExpense = true
		req.EquityAccountID = &equityID
	}
	return req
}

// --- CreateClosure ---

func (suite *ClosureServiceTestSuite) TestCreateClosure_WithBooking() {
	req := suite.createRequest(true)
	lines := []domain.IncomeExpenseLine{
		incomeExpenseLine("income-pos", domain.Income, "100"),
		incomeExpenseLine("expense-pos", domain.Expense, "20"),
	}
	balances := []domain.AccountBalance{
		{AccountID: "income-pos", Balance: decimal.NewFromInt(100)},
		{AccountID: "cash", Balance: decimal.NewFromInt(500)},
	}

	suite.mockOfficeRepo.On("FindOfficeByID", suite.ctx, "office-1").Return(suite.headOffice(), nil).Once()
	suite.mockAccountRepo.On("FindAccountByID", suite.ctx, "equity-acct-1").Return(suite.equityAccount(), nil).Once()
	suite.mockClosureRepo.On("FindLatestClosureForOffices", suite.ctx, []string{"office-1"}).Return(nil, apperrors.ErrNotFound).Once()
	suite.mockLedgerRepo.On("RetrieveIncomeExpenseLines", suite.ctx, "office-1", req.ParsedClosingDate()).Return(lines, nil).Once()
	suite.mockJournal.On("CreateBalancedEntry", suite.ctx, mock.MatchedBy(func(entry domain.BalancedJournalEntry) bool {
		return entry.Balanced() && entry.OfficeID == "office-1"
	}), "tester").Return("txn-1", nil).Once()
	suite.mockClosureRepo.On("SaveClosure", suite.ctx, mock.AnythingOfType("domain.GLClosure")).Return(nil).Once()
	suite.mockClosureRepo.On("SaveBooking", suite.ctx, mock.MatchedBy(func(b domain.IncomeExpenseBooking) bool {
		return b.TransactionID == "txn-1" && !b.Reversed
	})).Return(nil).Once()
	suite.mockLedgerRepo.On("RetrieveAccountBalances", suite.ctx, "office-1", req.ParsedClosingDate()).Return(balances, nil).Once()
	suite.mockClosureRepo.On("SaveSnapshots", suite.ctx, mock.MatchedBy(func(s []domain.AccountBalanceSnapshot) bool {
		return len(s) == 2
	})).Return(nil).Once()

	closures, err := suite.service.CreateClosure(suite.ctx, req, "tester")

	suite.Require().NoError(err)
	suite.Require().Len(closures, 1)
	suite.Equal("office-1", closures[0].OfficeID)
	suite.Equal("Head Office", closures[0].OfficeName)
	suite.NotEmpty(closures[0].ClosureID)
	suite.mockClosureRepo.AssertExpectations(suite.T())
	suite.mockJournal.AssertExpectations(suite.T())
}

func (suite *ClosureServiceTestSuite) TestCreateClosure_WithoutBooking() {
	req := suite.createRequest(false)

	suite.mockOfficeRepo.On("FindOfficeByID", suite.ctx, "office-1").Return(suite.headOffice(), nil).Once()
	suite.mockClosureRepo.On("FindLatestClosureForOffices", suite.ctx, []string{"office-1"}).Return(nil, apperrors.ErrNotFound).Once()
	suite.mockClosureRepo.On("SaveClosure", suite.ctx, mock.AnythingOfType("domain.GLClosure")).Return(nil).Once()
	suite.mockLedgerRepo.On("RetrieveAccountBalances", suite.ctx, "office-1", req.ParsedClosingDate()).Return([]domain.AccountBalance{}, nil).Once()

	closures, err := suite.service.CreateClosure(suite.ctx, req, "tester")

	suite.Require().NoError(err)
	suite.Require().Len(closures, 1)
	suite.mockAccountRepo.AssertNotCalled(suite.T(), "FindAccountByID", mock.Anything, mock.Anything)
	suite.mockJournal.AssertNotCalled(suite.T(), "CreateBalancedEntry", mock.Anything, mock.Anything, mock.Anything)
	suite.mockClosureRepo.AssertNotCalled(suite.T(), "SaveBooking", mock.Anything, mock.Anything)
	suite.mockClosureRepo.AssertNotCalled(suite.T(), "SaveSnapshots", mock.Anything, mock.Anything)
}

func (suite *ClosureServiceTestSuite) TestCreateClosure_DegenerateNettingSkipsBooking() {
	req := suite.createRequest(true)
	// Income debit of 60 exactly cancels expense credit of 60.
	lines := []domain.IncomeExpenseLine{
		incomeExpenseLine("income-pos", domain.Income, "60"),
		incomeExpenseLine("expense-pos", domain.Expense, "60"),
	}

	suite.mockOfficeRepo.On("FindOfficeByID", suite.ctx, "office-1").Return(suite.headOffice(), nil).Once()
	suite.mockAccountRepo.On("FindAccountByID", suite.ctx, "equity-acct-1").Return(suite.equityAccount(), nil).Once()
	suite.mockClosureRepo.On("FindLatestClosureForOffices", suite.ctx, []string{"office-1"}).Return(nil, apperrors.ErrNotFound).Once()
	suite.mockLedgerRepo.On("RetrieveIncomeExpenseLines", suite.ctx, "office-1", req.ParsedClosingDate()).Return(lines, nil).Once()
	suite.mockClosureRepo.On("SaveClosure", suite.ctx, mock.AnythingOfType("domain.GLClosure")).Return(nil).Once()
	suite.mockLedgerRepo.On("RetrieveAccountBalances", suite.ctx, "office-1", req.ParsedClosingDate()).Return([]domain.AccountBalance{}, nil).Once()

	closures, err := suite.service.CreateClosure(suite.ctx, req, "tester")

	suite.Require().NoError(err)
	suite.Require().Len(closures, 1)
	suite.mockJournal.AssertNotCalled(suite.T(), "CreateBalancedEntry", mock.Anything, mock.Anything, mock.Anything)
	suite.mockClosureRepo.AssertNotCalled(suite.T(), "SaveBooking", mock.Anything, mock.Anything)
}

func (suite *ClosureServiceTestSuite) TestCreateClosure_SubBranchesClosesWholeSubtree() {
	req := suite.createRequest(false)
	req.IncludeSubBranches = true
	branch := domain.Office{OfficeID: "office-2", Name: "Branch", ParentOfficeID: strPtr("office-1"), Hierarchy: ".office-1."}

	suite.mockOfficeRepo.On("FindOfficeByID", suite.ctx, "office-1").Return(suite.headOffice(), nil).Once()
	suite.mockOfficeRepo.On("OfficesUnderHierarchy", suite.ctx, "office-1").Return([]domain.Office{branch}, nil).Twice()
	suite.mockClosureRepo.On("FindLatestClosureForOffices", suite.ctx, []string{"office-1", "office-2"}).Return(nil, apperrors.ErrNotFound).Once()
	suite.mockClosureRepo.On("SaveClosure", suite.ctx, mock.AnythingOfType("domain.GLClosure")).Return(nil).Twice()
	suite.mockLedgerRepo.On("RetrieveAccountBalances", suite.ctx, mock.Anything, req.ParsedClosingDate()).Return([]domain.AccountBalance{}, nil).Twice()

	closures, err := suite.service.CreateClosure(suite.ctx, req, "tester")

	suite.Require().NoError(err)
	suite.Require().Len(closures, 2)
	suite.Equal("office-1", closures[0].OfficeID, "target office closure comes first")
	suite.Equal("office-2", closures[1].OfficeID)
}

func (suite *ClosureServiceTestSuite) TestCreateClosure_DescendantAlreadyClosedFailsWholeRequest() {
	req := suite.createRequest(false)
	req.IncludeSubBranches = true
	branch := domain.Office{OfficeID: "office-2", Name: "Branch", ParentOfficeID: strPtr("office-1"), Hierarchy: ".office-1."}
	existing := &domain.GLClosure{
		ClosureID:   "closure-old",
		OfficeID:    "office-2",
		ClosingDate: time.Date(2024, 4, 30, 0, 0, 0, 0, time.UTC),
	}

	suite.mockOfficeRepo.On("FindOfficeByID", suite.ctx, "office-1").Return(suite.headOffice(), nil).Once()
	suite.mockOfficeRepo.On("OfficesUnderHierarchy", suite.ctx, "office-1").Return([]domain.Office{branch}, nil).Twice()
	suite.mockClosureRepo.On("FindLatestClosureForOffices", suite.ctx, []string{"office-1", "office-2"}).Return(existing, nil).Once()

	closures, err := suite.service.CreateClosure(suite.ctx, req, "tester")

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrAccountingAlreadyClosed)
	suite.Nil(closures)
	suite.mockClosureRepo.AssertNotCalled(suite.T(), "SaveClosure", mock.Anything, mock.Anything)
}

func (suite *ClosureServiceTestSuite) TestCreateClosure_SameDateAsExistingClosureAllowed() {
	req := suite.createRequest(false)
	existing := &domain.GLClosure{
		ClosureID:   "closure-old",
		OfficeID:    "office-1",
		ClosingDate: req.ParsedClosingDate(),
	}

	suite.mockOfficeRepo.On("FindOfficeByID", suite.ctx, "office-1").Return(suite.headOffice(), nil).Once()
	suite.mockClosureRepo.On("FindLatestClosureForOffices", suite.ctx, []string{"office-1"}).Return(existing, nil).Once()
	suite.mockClosureRepo.On("SaveClosure", suite.ctx, mock.AnythingOfType("domain.GLClosure")).Return(nil).Once()
	suite.mockLedgerRepo.On("RetrieveAccountBalances", suite.ctx, "office-1", req.ParsedClosingDate()).Return([]domain.AccountBalance{}, nil).Once()

	_, err := suite.service.CreateClosure(suite.ctx, req, "tester")

	suite.Require().NoError(err, "an existing closure with the same date does not block")
}

func (suite *ClosureServiceTestSuite) TestCreateClosure_FutureClosingDateRejected() {
	req := suite.createRequest(false)
	req.ClosingDate = "2024-04-01" // tenant today is 2024-03-31

	suite.mockOfficeRepo.On("FindOfficeByID", suite.ctx, "office-1").Return(suite.headOffice(), nil).Once()

	closures, err := suite.service.CreateClosure(suite.ctx, req, "tester")

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrFutureClosingDate)
	suite.Nil(closures)
	suite.mockClosureRepo.AssertNotCalled(suite.T(), "SaveClosure", mock.Anything, mock.Anything)
}

func (suite *ClosureServiceTestSuite) TestCreateClosure_OfficeNotFound() {
	req := suite.createRequest(false)

	suite.mockOfficeRepo.On("FindOfficeByID", suite.ctx, "office-1").Return(nil, apperrors.ErrNotFound).Once()

	closures, err := suite.service.CreateClosure(suite.ctx, req, "tester")

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrOfficeNotFound)
	suite.Nil(closures)
}

func (suite *ClosureServiceTestSuite) TestCreateClosure_EquityAccountNotFound() {
	req := suite.createRequest(true)

	suite.mockOfficeRepo.On("FindOfficeByID", suite.ctx, "office-1").Return(suite.headOffice(), nil).Once()
	suite.mockAccountRepo.On("FindAccountByID", suite.ctx, "equity-acct-1").Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.CreateClosure(suite.ctx, req, "tester")

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrEquityAccountNotFound)
}

func (suite *ClosureServiceTestSuite) TestCreateClosure_NonEquityAccountRejected() {
	req := suite.createRequest(true)
	account := suite.equityAccount()
	account.AccountType = domain.Income

	suite.mockOfficeRepo.On("FindOfficeByID", suite.ctx, "office-1").Return(suite.headOffice(), nil).Once()
	suite.mockAccountRepo.On("FindAccountByID", suite.ctx, "equity-acct-1").Return(account, nil).Once()

	_, err := suite.service.CreateClosure(suite.ctx, req, "tester")

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrNotEquityAccount)
}

func (suite *ClosureServiceTestSuite) TestCreateClosure_DisabledEquityAccountRejected() {
	req := suite.createRequest(true)
	account := suite.equityAccount()
	account.Disabled = true

	suite.mockOfficeRepo.On("FindOfficeByID", suite.ctx, "office-1").Return(suite.headOffice(), nil).Once()
	suite.mockAccountRepo.On("FindAccountByID", suite.ctx, "equity-acct-1").Return(account, nil).Once()

	_, err := suite.service.CreateClosure(suite.ctx, req, "tester")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *ClosureServiceTestSuite) TestCreateClosure_MissingEquityAccountID() {
	req := suite.createRequest(false)
	req.BookOffIncomeAndExpense = true

	suite.mockOfficeRepo.On("FindOfficeByID", suite.ctx, "office-1").Return(suite.headOffice(), nil).Once()

	_, err := suite.service.CreateClosure(suite.ctx, req, "tester")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *ClosureServiceTestSuite) TestCreateClosure_DuplicateClosureTranslated() {
	req := suite.createRequest(false)

	suite.mockOfficeRepo.On("FindOfficeByID", suite.ctx, "office-1").Return(suite.headOffice(), nil).Once()
	suite.mockClosureRepo.On("FindLatestClosureForOffices", suite.ctx, []string{"office-1"}).Return(nil, apperrors.ErrNotFound).Once()
	suite.mockClosureRepo.On("SaveClosure", suite.ctx, mock.AnythingOfType("domain.GLClosure")).Return(apperrors.ErrDuplicate).Once()

	_, err := suite.service.CreateClosure(suite.ctx, req, "tester")

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrDuplicateClosure)
}

// --- DeleteClosure ---

func (suite *ClosureServiceTestSuite) activeClosure() *domain.GLClosure {
	return &domain.GLClosure{
		ClosureID:   "closure-1",
		OfficeID:    "office-1",
		OfficeName:  "Head Office",
		ClosingDate: suite.today,
		Comments:    "quarter end",
	}
}

func (suite *ClosureServiceTestSuite) TestDeleteClosure_WithReversal() {
	closure := suite.activeClosure()
	booking := &domain.IncomeExpenseBooking{
		BookingID:     "booking-1",
		ClosureID:     "closure-1",
		TransactionID: "txn-1",
	}

	suite.mockClosureRepo.On("FindClosureByID", suite.ctx, "closure-1").Return(closure, nil).Once()
	suite.mockClosureRepo.On("FindLatestClosure", suite.ctx, "office-1").Return(closure, nil).Once()
	suite.mockClosureRepo.On("FindBookingByClosureID", suite.ctx, "closure-1").Return(booking, nil).Once()
	suite.mockJournal.On("ReverseEntry", suite.ctx, "txn-1", "tester").Return(nil).Once()
	suite.mockClosureRepo.On("MarkBookingReversed", suite.ctx, "booking-1", "tester", mock.AnythingOfType("time.Time")).Return(nil).Once()
	suite.mockClosureRepo.On("MarkClosureDeleted", suite.ctx, "closure-1", "tester", mock.AnythingOfType("time.Time")).Return(nil).Once()
	suite.mockClosureRepo.On("DeleteSnapshotsByClosureID", suite.ctx, "closure-1").Return(nil).Once()

	deleted, err := suite.service.DeleteClosure(suite.ctx, "closure-1", true, "tester")

	suite.Require().NoError(err)
	suite.Require().NotNil(deleted)
	suite.True(deleted.Deleted)
	suite.mockClosureRepo.AssertExpectations(suite.T())
	suite.mockJournal.AssertExpectations(suite.T())
}

func (suite *ClosureServiceTestSuite) TestDeleteClosure_WithoutReversal() {
	closure := suite.activeClosure()

	suite.mockClosureRepo.On("FindClosureByID", suite.ctx, "closure-1").Return(closure, nil).Once()
	suite.mockClosureRepo.On("FindLatestClosure", suite.ctx, "office-1").Return(closure, nil).Once()
	suite.mockClosureRepo.On("MarkClosureDeleted", suite.ctx, "closure-1", "tester", mock.AnythingOfType("time.Time")).Return(nil).Once()
	suite.mockClosureRepo.On("DeleteSnapshotsByClosureID", suite.ctx, "closure-1").Return(nil).Once()

	deleted, err := suite.service.DeleteClosure(suite.ctx, "closure-1", false, "tester")

	suite.Require().NoError(err)
	suite.Require().NotNil(deleted)
	suite.mockJournal.AssertNotCalled(suite.T(), "ReverseEntry", mock.Anything, mock.Anything, mock.Anything)
	suite.mockClosureRepo.AssertNotCalled(suite.T(), "FindBookingByClosureID", mock.Anything, mock.Anything)
}

func (suite *ClosureServiceTestSuite) TestDeleteClosure_NoBookingToReverse() {
	closure := suite.activeClosure()

	suite.mockClosureRepo.On("FindClosureByID", suite.ctx, "closure-1").Return(closure, nil).Once()
	suite.mockClosureRepo.On("FindLatestClosure", suite.ctx, "office-1").Return(closure, nil).Once()
	suite.mockClosureRepo.On("FindBookingByClosureID", suite.ctx, "closure-1").Return(nil, apperrors.ErrNotFound).Once()
	suite.mockClosureRepo.On("MarkClosureDeleted", suite.ctx, "closure-1", "tester", mock.AnythingOfType("time.Time")).Return(nil).Once()
	suite.mockClosureRepo.On("DeleteSnapshotsByClosureID", suite.ctx, "closure-1").Return(nil).Once()

	_, err := suite.service.DeleteClosure(suite.ctx, "closure-1", true, "tester")

	suite.Require().NoError(err, "a closure without a booking deletes cleanly")
	suite.mockJournal.AssertNotCalled(suite.T(), "ReverseEntry", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *ClosureServiceTestSuite) TestDeleteClosure_AlreadyReversedBookingSkipped() {
	closure := suite.activeClosure()
	booking := &domain.IncomeExpenseBooking{
		BookingID:     "booking-1",
		ClosureID:     "closure-1",
		TransactionID: "txn-1",
		Reversed:      true,
	}

	suite.mockClosureRepo.On("FindClosureByID", suite.ctx, "closure-1").Return(closure, nil).Once()
	suite.mockClosureRepo.On("FindLatestClosure", suite.ctx, "office-1").Return(closure, nil).Once()
	suite.mockClosureRepo.On("FindBookingByClosureID", suite.ctx, "closure-1").Return(booking, nil).Once()
	suite.mockClosureRepo.On("MarkClosureDeleted", suite.ctx, "closure-1", "tester", mock.AnythingOfType("time.Time")).Return(nil).Once()
	suite.mockClosureRepo.On("DeleteSnapshotsByClosureID", suite.ctx, "closure-1").Return(nil).Once()

	_, err := suite.service.DeleteClosure(suite.ctx, "closure-1", true, "tester")

	suite.Require().NoError(err)
	suite.mockJournal.AssertNotCalled(suite.T(), "ReverseEntry", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *ClosureServiceTestSuite) TestDeleteClosure_LaterClosureBlocks() {
	closure := suite.activeClosure()
	later := &domain.GLClosure{
		ClosureID:   "closure-2",
		OfficeID:    "office-1",
		ClosingDate: suite.today.AddDate(0, 1, 0),
	}

	suite.mockClosureRepo.On("FindClosureByID", suite.ctx, "closure-1").Return(closure, nil).Once()
	suite.mockClosureRepo.On("FindLatestClosure", suite.ctx, "office-1").Return(later, nil).Once()

	_, err := suite.service.DeleteClosure(suite.ctx, "closure-1", true, "tester")

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrClosureInvalidDelete)
	suite.mockClosureRepo.AssertNotCalled(suite.T(), "MarkClosureDeleted", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *ClosureServiceTestSuite) TestDeleteClosure_AlreadyDeleted() {
	closure := suite.activeClosure()
	closure.Deleted = true

	suite.mockClosureRepo.On("FindClosureByID", suite.ctx, "closure-1").Return(closure, nil).Once()

	_, err := suite.service.DeleteClosure(suite.ctx, "closure-1", true, "tester")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrConflict)
}

func (suite *ClosureServiceTestSuite) TestDeleteClosure_NotFound() {
	suite.mockClosureRepo.On("FindClosureByID", suite.ctx, "missing").Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.DeleteClosure(suite.ctx, "missing", true, "tester")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

// --- GetClosureByID / UpdateClosure / ListClosures ---

func (suite *ClosureServiceTestSuite) TestGetClosureByID_WithBooking() {
	closure := suite.activeClosure()
	booking := &domain.IncomeExpenseBooking{BookingID: "booking-1", ClosureID: "closure-1", TransactionID: "txn-1"}

	suite.mockClosureRepo.On("FindClosureByID", suite.ctx, "closure-1").Return(closure, nil).Once()
	suite.mockClosureRepo.On("FindBookingByClosureID", suite.ctx, "closure-1").Return(booking, nil).Once()

	gotClosure, gotBooking, err := suite.service.GetClosureByID(suite.ctx, "closure-1")

	suite.Require().NoError(err)
	suite.Equal(closure, gotClosure)
	suite.Equal(booking, gotBooking)
}

func (suite *ClosureServiceTestSuite) TestGetClosureByID_WithoutBooking() {
	closure := suite.activeClosure()

	suite.mockClosureRepo.On("FindClosureByID", suite.ctx, "closure-1").Return(closure, nil).Once()
	suite.mockClosureRepo.On("FindBookingByClosureID", suite.ctx, "closure-1").Return(nil, apperrors.ErrNotFound).Once()

	gotClosure, gotBooking, err := suite.service.GetClosureByID(suite.ctx, "closure-1")

	suite.Require().NoError(err)
	suite.Equal(closure, gotClosure)
	suite.Nil(gotBooking)
}

func (suite *ClosureServiceTestSuite) TestUpdateClosure_ChangesComments() {
	closure := suite.activeClosure()
	newComments := "audited and confirmed"

	suite.mockClosureRepo.On("FindClosureByID", suite.ctx, "closure-1").Return(closure, nil).Once()
	suite.mockClosureRepo.On("UpdateClosureComments", suite.ctx, "closure-1", newComments, "tester", mock.AnythingOfType("time.Time")).Return(nil).Once()

	changes, err := suite.service.UpdateClosure(suite.ctx, "closure-1", dto.UpdateClosureRequest{Comments: &newComments}, "tester")

	suite.Require().NoError(err)
	suite.Equal(map[string]interface{}{"comments": newComments}, changes)
}

func (suite *ClosureServiceTestSuite) TestUpdateClosure_NoChanges() {
	closure := suite.activeClosure()
	sameComments := closure.Comments

	suite.mockClosureRepo.On("FindClosureByID", suite.ctx, "closure-1").Return(closure, nil).Once()

	changes, err := suite.service.UpdateClosure(suite.ctx, "closure-1", dto.UpdateClosureRequest{Comments: &sameComments}, "tester")

	suite.Require().NoError(err)
	suite.Empty(changes)
	suite.mockClosureRepo.AssertNotCalled(suite.T(), "UpdateClosureComments", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *ClosureServiceTestSuite) TestListClosures_DefaultLimit() {
	closures := []domain.GLClosure{*suite.activeClosure()}

	suite.mockClosureRepo.On("ListClosuresByOffice", suite.ctx, "office-1", 20, (*string)(nil)).Return(closures, nil, nil).Once()

	resp, err := suite.service.ListClosures(suite.ctx, "office-1", dto.ListClosuresParams{})

	suite.Require().NoError(err)
	suite.Require().NotNil(resp)
	suite.Len(resp.Closures, 1)
	suite.Nil(resp.NextToken)
}

func strPtr(s string) *string {
	return &s
}

func TestClosureServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ClosureServiceTestSuite))
}
