package repositories

import (
	"testing"
	"time"

	"transaction-analytics/internal/database"
	"transaction-analytics/internal/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

func TestTransactionRepository(t *testing.T) {
	suite.Run(t, new(TransactionRepositoryTestSuite))
}

type TransactionRepositoryTestSuite struct {
	suite.Suite
	db      *database.DB
	repo    TransactionRepositoryInterface
	user    *models.User
	account *models.Account
	card    *models.Card
}

func (s *TransactionRepositoryTestSuite) SetupTest() {
	s.db = database.SetupTestDB(s.T())
	s.repo = NewTransactionRepository(s.db.DB)

	s.user = database.CreateTestUser(s.T(), s.db, "owner@example.com")
	s.account = database.CreateTestAccount(s.T(), s.db, s.user.ID, models.AccountTypeChecking)
	s.card = database.CreateTestCard(s.T(), s.db, s.user.ID, s.account.ID, models.CardTypeDebit)
}

func (s *TransactionRepositoryTestSuite) debitOn(day time.Time, amount float64) *models.Transaction {
	accountID := s.account.ID
	return database.CreateTestTransaction(s.T(), s.db, &models.Transaction{
		FromAccountID:   &accountID,
		TransactionType: models.TransactionTypeDebit,
		Amount:          decimal.NewFromFloat(amount),
		Description:     "Purchase",
		TransactionDate: day,
	})
}

func (s *TransactionRepositoryTestSuite) TestQueryTransactions_OwnershipSpansAccountsAndCards() {
	accountID := s.account.ID
	cardID := s.card.ID

	incoming := database.CreateTestTransaction(s.T(), s.db, &models.Transaction{
		ToAccountID:     &accountID,
		TransactionType: models.TransactionTypeCredit,
		Amount:          decimal.NewFromInt(3000),
		TransactionDate: time.Date(2024, time.January, 1, 9, 0, 0, 0, time.UTC),
	})
	outgoing := database.CreateTestTransaction(s.T(), s.db, &models.Transaction{
		FromAccountID:   &accountID,
		TransactionType: models.TransactionTypeDebit,
		Amount:          decimal.NewFromInt(40),
		TransactionDate: time.Date(2024, time.January, 2, 9, 0, 0, 0, time.UTC),
	})
	cardPurchase := database.CreateTestTransaction(s.T(), s.db, &models.Transaction{
		CardID:          &cardID,
		TransactionType: models.TransactionTypeDebit,
		Amount:          decimal.NewFromInt(25),
		TransactionDate: time.Date(2024, time.January, 3, 9, 0, 0, 0, time.UTC),
	})

	// Another user's activity must never leak into the result.
	stranger := database.CreateTestUser(s.T(), s.db, "stranger@example.com")
	strangerAccount := database.CreateTestAccount(s.T(), s.db, stranger.ID, models.AccountTypeChecking)
	strangerAccountID := strangerAccount.ID
	database.CreateTestTransaction(s.T(), s.db, &models.Transaction{
		FromAccountID:   &strangerAccountID,
		TransactionType: models.TransactionTypeDebit,
		Amount:          decimal.NewFromInt(999),
		TransactionDate: time.Date(2024, time.January, 2, 10, 0, 0, 0, time.UTC),
	})

	transactions, err := s.repo.QueryTransactions(s.user.ID, models.TransactionFilters{})

	s.NoError(err)
	s.Require().Len(transactions, 3)
	// Chronological order
	s.Equal(incoming.ID, transactions[0].ID)
	s.Equal(outgoing.ID, transactions[1].ID)
	s.Equal(cardPurchase.ID, transactions[2].ID)
}

func (s *TransactionRepositoryTestSuite) TestQueryTransactions_NoOwnedEntities() {
	lonely := database.CreateTestUser(s.T(), s.db, "lonely@example.com")

	transactions, err := s.repo.QueryTransactions(lonely.ID, models.TransactionFilters{})

	s.NoError(err)
	s.NotNil(transactions)
	s.Empty(transactions)
}

func (s *TransactionRepositoryTestSuite) TestQueryTransactions_FiltersByType() {
	accountID := s.account.ID
	s.debitOn(time.Date(2024, time.March, 1, 12, 0, 0, 0, time.UTC), 50)
	database.CreateTestTransaction(s.T(), s.db, &models.Transaction{
		ToAccountID:     &accountID,
		TransactionType: models.TransactionTypeCredit,
		Amount:          decimal.NewFromInt(2000),
		TransactionDate: time.Date(2024, time.March, 2, 12, 0, 0, 0, time.UTC),
	})

	transactions, err := s.repo.QueryTransactions(s.user.ID, models.TransactionFilters{
		Type: models.TransactionTypeCredit,
	})

	s.NoError(err)
	s.Require().Len(transactions, 1)
	s.Equal(models.TransactionTypeCredit, transactions[0].TransactionType)
}

func (s *TransactionRepositoryTestSuite) TestQueryTransactions_FiltersByCategoryAndSource() {
	accountID := s.account.ID
	database.CreateTestTransaction(s.T(), s.db, &models.Transaction{
		FromAccountID:   &accountID,
		TransactionType: models.TransactionTypeDebit,
		Amount:          decimal.NewFromInt(60),
		Category:        "Dining",
		Source:          "POS",
		TransactionDate: time.Date(2024, time.March, 1, 12, 0, 0, 0, time.UTC),
	})
	database.CreateTestTransaction(s.T(), s.db, &models.Transaction{
		FromAccountID:   &accountID,
		TransactionType: models.TransactionTypeDebit,
		Amount:          decimal.NewFromInt(90),
		Category:        "Dining",
		Source:          "Mobile App",
		TransactionDate: time.Date(2024, time.March, 2, 12, 0, 0, 0, time.UTC),
	})
	database.CreateTestTransaction(s.T(), s.db, &models.Transaction{
		FromAccountID:   &accountID,
		TransactionType: models.TransactionTypeDebit,
		Amount:          decimal.NewFromInt(120),
		Category:        "Travel",
		Source:          "POS",
		TransactionDate: time.Date(2024, time.March, 3, 12, 0, 0, 0, time.UTC),
	})

	transactions, err := s.repo.QueryTransactions(s.user.ID, models.TransactionFilters{
		Category: "Dining",
		Source:   "POS",
	})

	s.NoError(err)
	s.Require().Len(transactions, 1)
	s.True(transactions[0].Amount.Equal(decimal.NewFromInt(60)))
}

func (s *TransactionRepositoryTestSuite) TestQueryTransactions_MerchantMatchIsCaseInsensitiveSubstring() {
	accountID := s.account.ID
	database.CreateTestTransaction(s.T(), s.db, &models.Transaction{
		FromAccountID:   &accountID,
		TransactionType: models.TransactionTypeDebit,
		Amount:          decimal.NewFromInt(15),
		MerchantName:    "Whole Foods Market",
		TransactionDate: time.Date(2024, time.March, 1, 12, 0, 0, 0, time.UTC),
	})
	database.CreateTestTransaction(s.T(), s.db, &models.Transaction{
		FromAccountID:   &accountID,
		TransactionType: models.TransactionTypeDebit,
		Amount:          decimal.NewFromInt(8),
		MerchantName:    "Starbucks",
		TransactionDate: time.Date(2024, time.March, 2, 12, 0, 0, 0, time.UTC),
	})

	transactions, err := s.repo.QueryTransactions(s.user.ID, models.TransactionFilters{
		MerchantName: "whole foods",
	})

	s.NoError(err)
	s.Require().Len(transactions, 1)
	s.Equal("Whole Foods Market", transactions[0].MerchantName)
}

func (s *TransactionRepositoryTestSuite) TestQueryTransactions_AmountBoundsAreInclusive() {
	s.debitOn(time.Date(2024, time.March, 1, 12, 0, 0, 0, time.UTC), 50)
	s.debitOn(time.Date(2024, time.March, 2, 12, 0, 0, 0, time.UTC), 100)
	s.debitOn(time.Date(2024, time.March, 3, 12, 0, 0, 0, time.UTC), 250)

	minAmount := decimal.NewFromInt(100)
	maxAmount := decimal.NewFromInt(250)
	transactions, err := s.repo.QueryTransactions(s.user.ID, models.TransactionFilters{
		MinAmount: &minAmount,
		MaxAmount: &maxAmount,
	})

	s.NoError(err)
	s.Len(transactions, 2)
}

func (s *TransactionRepositoryTestSuite) TestQueryTransactions_DateRangeIsInclusive() {
	s.debitOn(time.Date(2024, time.March, 1, 12, 0, 0, 0, time.UTC), 10)
	inRange := s.debitOn(time.Date(2024, time.March, 5, 12, 0, 0, 0, time.UTC), 20)
	s.debitOn(time.Date(2024, time.March, 10, 12, 0, 0, 0, time.UTC), 30)

	start := time.Date(2024, time.March, 2, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, time.March, 9, 23, 59, 59, 0, time.UTC)
	transactions, err := s.repo.QueryTransactions(s.user.ID, models.TransactionFilters{
		StartDate: &start,
		EndDate:   &end,
	})

	s.NoError(err)
	s.Require().Len(transactions, 1)
	s.Equal(inRange.ID, transactions[0].ID)
}

func (s *TransactionRepositoryTestSuite) TestGetByID() {
	created := s.debitOn(time.Date(2024, time.March, 1, 12, 0, 0, 0, time.UTC), 75)

	found, err := s.repo.GetByID(created.ID)

	s.NoError(err)
	s.Require().NotNil(found)
	s.Equal(created.ID, found.ID)
	s.True(found.Amount.Equal(decimal.NewFromInt(75)))
}

func (s *TransactionRepositoryTestSuite) TestGetByID_NotFound() {
	_, err := s.repo.GetByID(uuid.New())

	s.ErrorIs(err, ErrTransactionNotFound)
}

func (s *TransactionRepositoryTestSuite) TestCreate_AssignsID() {
	accountID := s.account.ID
	txn := &models.Transaction{
		FromAccountID:   &accountID,
		TransactionType: models.TransactionTypeDebit,
		Amount:          decimal.NewFromInt(12),
		TransactionDate: time.Date(2024, time.March, 1, 12, 0, 0, 0, time.UTC),
	}

	err := s.repo.Create(txn)

	s.NoError(err)
	s.NotEqual(uuid.Nil, txn.ID)
}

func (s *TransactionRepositoryTestSuite) TestCreateBatch() {
	accountID := s.account.ID
	batch := make([]models.Transaction, 0, 3)
	for day := 1; day <= 3; day++ {
		batch = append(batch, models.Transaction{
			FromAccountID:   &accountID,
			TransactionType: models.TransactionTypeDebit,
			Amount:          decimal.NewFromInt(int64(day * 10)),
			TransactionDate: time.Date(2024, time.March, day, 12, 0, 0, 0, time.UTC),
		})
	}

	err := s.repo.CreateBatch(batch)
	s.NoError(err)

	transactions, queryErr := s.repo.QueryTransactions(s.user.ID, models.TransactionFilters{})
	s.NoError(queryErr)
	s.Len(transactions, 3)
}

func (s *TransactionRepositoryTestSuite) TestCreateBatch_EmptyIsNoOp() {
	s.NoError(s.repo.CreateBatch(nil))
}
