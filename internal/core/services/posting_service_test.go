package services_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/bizledger/bizledger_app/internal/apperrors"
	"github.com/bizledger/bizledger_app/internal/core/domain"
	portsrepo "github.com/bizledger/bizledger_app/internal/core/ports/repositories"
	portssvc "github.com/bizledger/bizledger_app/internal/core/ports/services"
	"github.com/bizledger/bizledger_app/internal/core/services"
	"github.com/bizledger/bizledger_app/internal/dto"
	"github.com/bizledger/bizledger_app/internal/utils/accounting"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock AccountRepository ---
type MockAccountRepository struct {
	mock.Mock
}

var _ portsrepo.AccountRepositoryFacade = (*MockAccountRepository)(nil)

func (m *MockAccountRepository) SaveAccount(ctx context.Context, account domain.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockAccountRepository) FindAccountByID(ctx context.Context, companyID, accountID string) (*domain.Account, error) {
	args := m.Called(ctx, companyID, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) FindAccountsByIDs(ctx context.Context, companyID string, accountIDs []string) (map[string]domain.Account, error) {
	args := m.Called(ctx, companyID, accountIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.Account), args.Error(1)
}

func (m *MockAccountRepository) ListAccounts(ctx context.Context, companyID string) ([]domain.Account, error) {
	args := m.Called(ctx, companyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}

func (m *MockAccountRepository) DeactivateAccount(ctx context.Context, companyID, accountID string, userID string, now time.Time) error {
	args := m.Called(ctx, companyID, accountID, userID, now)
	return args.Error(0)
}

func (m *MockAccountRepository) FindAccountsByIDsForUpdate(ctx context.Context, tx pgx.Tx, companyID string, accountIDs []string) (map[string]domain.Account, error) {
	args := m.Called(ctx, tx, companyID, accountIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.Account), args.Error(1)
}

func (m *MockAccountRepository) ApplyBalanceDeltasInTx(ctx context.Context, tx pgx.Tx, deltas map[string]decimal.Decimal, userID string, now time.Time) error {
	args := m.Called(ctx, tx, deltas, userID, now)
	return args.Error(0)
}

// --- Mock TransactionRepository ---
type MockTransactionRepository struct {
	mock.Mock
}

var _ portsrepo.TransactionRepositoryWithTx = (*MockTransactionRepository)(nil)

func (m *MockTransactionRepository) SaveTransaction(ctx context.Context, txn domain.Transaction, deltas map[string]decimal.Decimal) error {
	args := m.Called(ctx, txn, deltas)
	return args.Error(0)
}

func (m *MockTransactionRepository) FindTransactionByID(ctx context.Context, companyID, transactionID string) (*domain.Transaction, error) {
	args := m.Called(ctx, companyID, transactionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) ListTransactions(ctx context.Context, companyID string, limit int, nextToken *string, date *time.Time) ([]domain.Transaction, *string, error) {
	args := m.Called(ctx, companyID, limit, nextToken, date)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	var returnedNextToken *string
	if args.Get(1) != nil {
		tokenVal := args.Get(1).(string)
		returnedNextToken = &tokenVal
	}
	return args.Get(0).([]domain.Transaction), returnedNextToken, args.Error(2)
}

func (m *MockTransactionRepository) Begin(ctx context.Context) (pgx.Tx, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(pgx.Tx), args.Error(1)
}

func (m *MockTransactionRepository) Commit(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *MockTransactionRepository) Rollback(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

// --- Test Suite Setup ---
type PostingServiceTestSuite struct {
	suite.Suite
	mockAccountRepo  *MockAccountRepository
	mockTxnRepo      *MockTransactionRepository
	service          portssvc.PostingSvcFacade
	assetAccount     domain.Account
	liabilityAccount domain.Account
	incomeAccount    domain.Account
	expenseAccount   domain.Account
	companyID        string
	userID           string
}

func (suite *PostingServiceTestSuite) SetupTest() {
	suite.mockAccountRepo = new(MockAccountRepository)
	suite.mockTxnRepo = new(MockTransactionRepository)
	suite.service = services.NewPostingService(suite.mockTxnRepo, suite.mockAccountRepo)

	suite.companyID = uuid.NewString()
	suite.userID = uuid.NewString()

	suite.assetAccount = domain.Account{
		AccountID: uuid.NewString(),
		CompanyID: suite.companyID,
		Name:      "Cash",
		Type:      domain.Asset,
		Group:     "Current Assets",
		IsActive:  true,
	}
	suite.liabilityAccount = domain.Account{
		AccountID: uuid.NewString(),
		CompanyID: suite.companyID,
		Name:      "Accounts Payable",
		Type:      domain.Liability,
		Group:     "Current Liabilities",
		IsActive:  true,
	}
	suite.incomeAccount = domain.Account{
		AccountID: uuid.NewString(),
		CompanyID: suite.companyID,
		Name:      "Sales",
		Type:      domain.Income,
		Group:     "Revenue",
		IsActive:  true,
	}
	suite.expenseAccount = domain.Account{
		AccountID: uuid.NewString(),
		CompanyID: suite.companyID,
		Name:      "Rent",
		Type:      domain.Expense,
		Group:     "Operating Expenses",
		IsActive:  true,
	}
}

func (suite *PostingServiceTestSuite) validRequest() dto.CreateTransactionRequest {
	return dto.CreateTransactionRequest{
		Date:        time.Now(),
		Reference:   "INV-001",
		Description: "Cash sale",
		Entries: []dto.EntryRequest{
			{AccountID: suite.assetAccount.AccountID, Debit: decimal.NewFromInt(500)},
			{AccountID: suite.incomeAccount.AccountID, Credit: decimal.NewFromInt(500)},
		},
	}
}

// --- Test Cases ---

func (suite *PostingServiceTestSuite) TestPostTransaction_Success() {
	ctx := context.Background()
	req := suite.validRequest()

	accountsMap := map[string]domain.Account{
		suite.assetAccount.AccountID:  suite.assetAccount,
		suite.incomeAccount.AccountID: suite.incomeAccount,
	}
	suite.mockAccountRepo.On("FindAccountsByIDs", ctx, suite.companyID, []string{suite.assetAccount.AccountID, suite.incomeAccount.AccountID}).Return(accountsMap, nil).Once()

	var savedDeltas map[string]decimal.Decimal
	suite.mockTxnRepo.On("SaveTransaction", ctx, mock.AnythingOfType("domain.Transaction"), mock.AnythingOfType("map[string]decimal.Decimal")).
		Run(func(args mock.Arguments) {
			savedDeltas = args.Get(2).(map[string]decimal.Decimal)
		}).
		Return(nil).Once()

	txn, err := suite.service.PostTransaction(ctx, suite.companyID, suite.userID, req)

	suite.Require().NoError(err)
	suite.Require().NotNil(txn)
	suite.NotEmpty(txn.TransactionID)
	suite.Equal(suite.companyID, txn.CompanyID)
	suite.Equal(req.Reference, txn.Reference)
	suite.True(txn.TotalAmount.Equal(decimal.NewFromInt(500)))
	suite.True(txn.IsActive)
	suite.Equal(suite.userID, txn.CreatedBy)
	suite.Len(txn.Entries, 2)
	suite.Equal(1, txn.Entries[0].LineNo)
	suite.Equal(2, txn.Entries[1].LineNo)

	// Debit on an asset raises the balance; credit on income raises it too.
	suite.Require().Len(savedDeltas, 2)
	suite.True(savedDeltas[suite.assetAccount.AccountID].Equal(decimal.NewFromInt(500)))
	suite.True(savedDeltas[suite.incomeAccount.AccountID].Equal(decimal.NewFromInt(500)))

	suite.mockAccountRepo.AssertExpectations(suite.T())
	suite.mockTxnRepo.AssertExpectations(suite.T())
}

func (suite *PostingServiceTestSuite) TestPostTransaction_AggregatesRepeatedAccount() {
	ctx := context.Background()
	req := dto.CreateTransactionRequest{
		Date:        time.Now(),
		Reference:   "PAY-007",
		Description: "Split rent payment",
		Entries: []dto.EntryRequest{
			{AccountID: suite.expenseAccount.AccountID, Debit: decimal.NewFromInt(60)},
			{AccountID: suite.expenseAccount.AccountID, Debit: decimal.NewFromInt(40)},
			{AccountID: suite.assetAccount.AccountID, Credit: decimal.NewFromInt(100)},
		},
	}

	accountsMap := map[string]domain.Account{
		suite.expenseAccount.AccountID: suite.expenseAccount,
		suite.assetAccount.AccountID:   suite.assetAccount,
	}
	suite.mockAccountRepo.On("FindAccountsByIDs", ctx, suite.companyID, []string{suite.expenseAccount.AccountID, suite.assetAccount.AccountID}).Return(accountsMap, nil).Once()

	var savedDeltas map[string]decimal.Decimal
	suite.mockTxnRepo.On("SaveTransaction", ctx, mock.AnythingOfType("domain.Transaction"), mock.AnythingOfType("map[string]decimal.Decimal")).
		Run(func(args mock.Arguments) {
			savedDeltas = args.Get(2).(map[string]decimal.Decimal)
		}).
		Return(nil).Once()

	txn, err := suite.service.PostTransaction(ctx, suite.companyID, suite.userID, req)

	suite.Require().NoError(err)
	suite.True(txn.TotalAmount.Equal(decimal.NewFromInt(100)))
	suite.Require().Len(savedDeltas, 2)
	suite.True(savedDeltas[suite.expenseAccount.AccountID].Equal(decimal.NewFromInt(100)))
	suite.True(savedDeltas[suite.assetAccount.AccountID].Equal(decimal.NewFromInt(-100)))

	suite.mockAccountRepo.AssertExpectations(suite.T())
	suite.mockTxnRepo.AssertExpectations(suite.T())
}

func (suite *PostingServiceTestSuite) TestPostTransaction_Unbalanced() {
	ctx := context.Background()
	req := suite.validRequest()
	req.Entries[1].Credit = decimal.NewFromInt(499)

	_, err := suite.service.PostTransaction(ctx, suite.companyID, suite.userID, req)

	suite.Require().Error(err)
	suite.ErrorIs(err, accounting.ErrUnbalanced)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockAccountRepo.AssertNotCalled(suite.T(), "FindAccountsByIDs", mock.Anything, mock.Anything, mock.Anything)
	suite.mockTxnRepo.AssertNotCalled(suite.T(), "SaveTransaction", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *PostingServiceTestSuite) TestPostTransaction_SingleEntry() {
	ctx := context.Background()
	req := suite.validRequest()
	req.Entries = req.Entries[:1]

	_, err := suite.service.PostTransaction(ctx, suite.companyID, suite.userID, req)

	suite.Require().Error(err)
	suite.ErrorIs(err, accounting.ErrInsufficientEntries)
	suite.mockTxnRepo.AssertNotCalled(suite.T(), "SaveTransaction", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *PostingServiceTestSuite) TestPostTransaction_MissingHeaderField() {
	ctx := context.Background()
	req := suite.validRequest()
	req.Reference = ""

	_, err := suite.service.PostTransaction(ctx, suite.companyID, suite.userID, req)

	suite.Require().Error(err)
	suite.ErrorIs(err, accounting.ErrMissingField)
	suite.mockTxnRepo.AssertNotCalled(suite.T(), "SaveTransaction", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *PostingServiceTestSuite) TestPostTransaction_AccountNotFound() {
	ctx := context.Background()
	unknownAccountID := uuid.NewString()
	req := suite.validRequest()
	req.Entries[1].AccountID = unknownAccountID

	accountsMap := map[string]domain.Account{
		suite.assetAccount.AccountID: suite.assetAccount,
		// unknownAccountID is missing
	}
	suite.mockAccountRepo.On("FindAccountsByIDs", ctx, suite.companyID, mock.Anything).Return(accountsMap, nil).Once()

	_, err := suite.service.PostTransaction(ctx, suite.companyID, suite.userID, req)

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrAccountNotFound)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockAccountRepo.AssertExpectations(suite.T())
	suite.mockTxnRepo.AssertNotCalled(suite.T(), "SaveTransaction", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *PostingServiceTestSuite) TestPostTransaction_FindAccountsError() {
	ctx := context.Background()
	req := suite.validRequest()
	repoErr := assert.AnError

	suite.mockAccountRepo.On("FindAccountsByIDs", ctx, suite.companyID, mock.Anything).Return(nil, repoErr).Once()

	_, err := suite.service.PostTransaction(ctx, suite.companyID, suite.userID, req)

	suite.Require().Error(err)
	suite.Contains(err.Error(), repoErr.Error())
	suite.mockTxnRepo.AssertNotCalled(suite.T(), "SaveTransaction", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *PostingServiceTestSuite) TestPostTransaction_SaveFails() {
	ctx := context.Background()
	req := suite.validRequest()

	accountsMap := map[string]domain.Account{
		suite.assetAccount.AccountID:  suite.assetAccount,
		suite.incomeAccount.AccountID: suite.incomeAccount,
	}
	suite.mockAccountRepo.On("FindAccountsByIDs", ctx, suite.companyID, mock.Anything).Return(accountsMap, nil).Once()
	suite.mockTxnRepo.On("SaveTransaction", ctx, mock.AnythingOfType("domain.Transaction"), mock.AnythingOfType("map[string]decimal.Decimal")).Return(assert.AnError).Once()

	_, err := suite.service.PostTransaction(ctx, suite.companyID, suite.userID, req)

	suite.Require().Error(err)
	suite.Contains(err.Error(), assert.AnError.Error())
	suite.mockTxnRepo.AssertExpectations(suite.T())
}

func (suite *PostingServiceTestSuite) TestPostTransaction_SaveReportsMissingAccount() {
	ctx := context.Background()
	req := suite.validRequest()

	accountsMap := map[string]domain.Account{
		suite.assetAccount.AccountID:  suite.assetAccount,
		suite.incomeAccount.AccountID: suite.incomeAccount,
	}
	suite.mockAccountRepo.On("FindAccountsByIDs", ctx, suite.companyID, mock.Anything).Return(accountsMap, nil).Once()
	// The repository re-checks existence under lock; a concurrent delete
	// surfaces as ErrNotFound from the save itself.
	suite.mockTxnRepo.On("SaveTransaction", ctx, mock.AnythingOfType("domain.Transaction"), mock.AnythingOfType("map[string]decimal.Decimal")).Return(apperrors.ErrNotFound).Once()

	_, err := suite.service.PostTransaction(ctx, suite.companyID, suite.userID, req)

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrAccountNotFound)
	suite.mockTxnRepo.AssertExpectations(suite.T())
}

func (suite *PostingServiceTestSuite) TestGetTransactionByID_Success() {
	ctx := context.Background()
	transactionID := uuid.NewString()
	expected := &domain.Transaction{TransactionID: transactionID, CompanyID: suite.companyID}

	suite.mockTxnRepo.On("FindTransactionByID", ctx, suite.companyID, transactionID).Return(expected, nil).Once()

	txn, err := suite.service.GetTransactionByID(ctx, suite.companyID, transactionID)

	suite.Require().NoError(err)
	suite.Equal(expected, txn)
	suite.mockTxnRepo.AssertExpectations(suite.T())
}

func (suite *PostingServiceTestSuite) TestGetTransactionByID_NotFound() {
	ctx := context.Background()
	transactionID := uuid.NewString()

	suite.mockTxnRepo.On("FindTransactionByID", ctx, suite.companyID, transactionID).Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.GetTransactionByID(ctx, suite.companyID, transactionID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockTxnRepo.AssertExpectations(suite.T())
}

func (suite *PostingServiceTestSuite) TestListTransactions_DefaultsLimit() {
	ctx := context.Background()
	txns := []domain.Transaction{{TransactionID: uuid.NewString(), CompanyID: suite.companyID}}

	suite.mockTxnRepo.On("ListTransactions", ctx, suite.companyID, 20, (*string)(nil), (*time.Time)(nil)).Return(txns, nil, nil).Once()

	resp, err := suite.service.ListTransactions(ctx, suite.companyID, dto.ListTransactionsParams{})

	suite.Require().NoError(err)
	suite.Require().NotNil(resp)
	suite.Len(resp.Transactions, 1)
	suite.Nil(resp.NextToken)
	suite.mockTxnRepo.AssertExpectations(suite.T())
}

func (suite *PostingServiceTestSuite) TestListTransactions_PassesToken() {
	ctx := context.Background()
	token := "opaque-token"
	nextToken := "next-token"
	txns := []domain.Transaction{{TransactionID: uuid.NewString(), CompanyID: suite.companyID}}

	suite.mockTxnRepo.On("ListTransactions", ctx, suite.companyID, 5, &token, (*time.Time)(nil)).Return(txns, nextToken, nil).Once()

	resp, err := suite.service.ListTransactions(ctx, suite.companyID, dto.ListTransactionsParams{Limit: 5, NextToken: &token})

	suite.Require().NoError(err)
	suite.Require().NotNil(resp.NextToken)
	suite.Equal(nextToken, *resp.NextToken)
	suite.mockTxnRepo.AssertExpectations(suite.T())
}

func TestPostingServiceTestSuite(t *testing.T) {
	suite.Run(t, new(PostingServiceTestSuite))
}

// --- Concurrency over a stateful fake ---

// fakeLedgerStore applies deltas under a mutex the way the database serializes
// row-locked updates, so concurrent postings must not lose increments.
type fakeLedgerStore struct {
	mu       sync.Mutex
	balances map[string]decimal.Decimal
	accounts map[string]domain.Account
	saved    []domain.Transaction
}

var _ portsrepo.AccountRepositoryFacade = (*fakeLedgerStore)(nil)
var _ portsrepo.TransactionRepositoryWithTx = (*fakeLedgerStore)(nil)

func newFakeLedgerStore(accounts ...domain.Account) *fakeLedgerStore {
	f := &fakeLedgerStore{
		balances: make(map[string]decimal.Decimal),
		accounts: make(map[string]domain.Account),
	}
	for _, a := range accounts {
		f.accounts[a.AccountID] = a
		f.balances[a.AccountID] = a.CurrentBalance
	}
	return f
}

func (f *fakeLedgerStore) SaveAccount(ctx context.Context, account domain.Account) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.accounts[account.AccountID] = account
	f.balances[account.AccountID] = account.CurrentBalance
	return nil
}

func (f *fakeLedgerStore) FindAccountByID(ctx context.Context, companyID, accountID string) (*domain.Account, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	a, ok := f.accounts[accountID]
	if !ok || a.CompanyID != companyID {
		return nil, apperrors.ErrNotFound
	}
	a.CurrentBalance = f.balances[accountID]
	return &a, nil
}

func (f *fakeLedgerStore) FindAccountsByIDs(ctx context.Context, companyID string, accountIDs []string) (map[string]domain.Account, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	result := make(map[string]domain.Account)
	for _, id := range accountIDs {
		if a, ok := f.accounts[id]; ok && a.CompanyID == companyID {
			a.CurrentBalance = f.balances[id]
			result[id] = a
		}
	}
	return result, nil
}

func (f *fakeLedgerStore) ListAccounts(ctx context.Context, companyID string) ([]domain.Account, error) {
	return nil, nil
}

func (f *fakeLedgerStore) DeactivateAccount(ctx context.Context, companyID, accountID string, userID string, now time.Time) error {
	return nil
}

func (f *fakeLedgerStore) FindAccountsByIDsForUpdate(ctx context.Context, tx pgx.Tx, companyID string, accountIDs []string) (map[string]domain.Account, error) {
	return f.FindAccountsByIDs(ctx, companyID, accountIDs)
}

func (f *fakeLedgerStore) ApplyBalanceDeltasInTx(ctx context.Context, tx pgx.Tx, deltas map[string]decimal.Decimal, userID string, now time.Time) error {
	return nil
}

func (f *fakeLedgerStore) SaveTransaction(ctx context.Context, txn domain.Transaction, deltas map[string]decimal.Decimal) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for id, delta := range deltas {
		if _, ok := f.accounts[id]; !ok {
			return apperrors.ErrNotFound
		}
		f.balances[id] = f.balances[id].Add(delta)
	}
	f.saved = append(f.saved, txn)
	return nil
}

func (f *fakeLedgerStore) FindTransactionByID(ctx context.Context, companyID, transactionID string) (*domain.Transaction, error) {
	return nil, apperrors.ErrNotFound
}

func (f *fakeLedgerStore) ListTransactions(ctx context.Context, companyID string, limit int, nextToken *string, date *time.Time) ([]domain.Transaction, *string, error) {
	return nil, nil, nil
}

func (f *fakeLedgerStore) Begin(ctx context.Context) (pgx.Tx, error) { return nil, nil }

func (f *fakeLedgerStore) Commit(ctx context.Context, tx pgx.Tx) error { return nil }

func (f *fakeLedgerStore) Rollback(ctx context.Context, tx pgx.Tx) error { return nil }

func TestPostTransaction_ConcurrentPostingsAccumulate(t *testing.T) {
	companyID := uuid.NewString()
	userID := uuid.NewString()
	cash := domain.Account{
		AccountID:      uuid.NewString(),
		CompanyID:      companyID,
		Name:           "Cash",
		Type:           domain.Asset,
		Group:          "Current Assets",
		CurrentBalance: decimal.NewFromInt(1000),
		IsActive:       true,
	}
	sales := domain.Account{
		AccountID: uuid.NewString(),
		CompanyID: companyID,
		Name:      "Sales",
		Type:      domain.Income,
		Group:     "Revenue",
		IsActive:  true,
	}

	store := newFakeLedgerStore(cash, sales)
	service := services.NewPostingService(store, store)

	const postings = 10
	var wg sync.WaitGroup
	errs := make(chan error, postings)
	for i := 0; i < postings; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			req := dto.CreateTransactionRequest{
				Date:        time.Now(),
				Reference:   "SALE",
				Description: "Concurrent cash sale",
				Entries: []dto.EntryRequest{
					{AccountID: cash.AccountID, Debit: decimal.NewFromInt(100)},
					{AccountID: sales.AccountID, Credit: decimal.NewFromInt(100)},
				},
			}
			_, err := service.PostTransaction(context.Background(), companyID, userID, req)
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		assert.NoError(t, err)
	}

	store.mu.Lock()
	defer store.mu.Unlock()
	assert.True(t, store.balances[cash.AccountID].Equal(decimal.NewFromInt(2000)),
		"expected cash balance 2000, got %s", store.balances[cash.AccountID])
	assert.True(t, store.balances[sales.AccountID].Equal(decimal.NewFromInt(1000)),
		"expected sales balance 1000, got %s", store.balances[sales.AccountID])
	assert.Len(t, store.saved, postings)
}
