package services

import (
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"time"

	"transaction-analytics/internal/dto"
	"transaction-analytics/internal/models"
	"transaction-analytics/internal/repositories"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	defaultSeedMonths       = 6
	defaultSeedTransactions = 500
	seedAccountCount        = 2
	seedCardCount           = 2
	activityHoursStart      = 6
	activityHoursEnd        = 24
)

// merchantProfile ties a merchant to the category and channel its
// generated transactions carry.
type merchantProfile struct {
	Name     string
	Category string
	Source   string
}

type sampleDataGenerator struct {
	transactionRepo repositories.TransactionRepositoryInterface
	accountRepo     repositories.AccountRepositoryInterface
	cardRepo        repositories.CardRepositoryInterface
	merchantPool    []merchantProfile
	rng             *rand.Rand
	now             func() time.Time
}

// NewSampleDataGenerator creates a development data seeder.
func NewSampleDataGenerator(
	transactionRepo repositories.TransactionRepositoryInterface,
	accountRepo repositories.AccountRepositoryInterface,
	cardRepo repositories.CardRepositoryInterface,
) SampleDataGeneratorInterface {
	return &sampleDataGenerator{
		transactionRepo: transactionRepo,
		accountRepo:     accountRepo,
		cardRepo:        cardRepo,
		merchantPool:    initializeMerchantPool(),
		rng:             rand.New(rand.NewSource(time.Now().UnixNano())),
		now:             time.Now,
	}
}

func initializeMerchantPool() []merchantProfile {
	return []merchantProfile{
		// Groceries
		{"Walmart Supercenter", "Groceries", "POS"},
		{"Kroger", "Groceries", "POS"},
		{"Whole Foods Market", "Groceries", "POS"},
		{"Trader Joe's", "Groceries", "POS"},
		{"Costco Wholesale", "Groceries", "POS"},
		{"Aldi", "Groceries", "POS"},

		// Dining
		{"Starbucks", "Dining", "POS"},
		{"McDonald's", "Dining", "POS"},
		{"Chipotle Mexican Grill", "Dining", "Mobile App"},
		{"Panera Bread", "Dining", "POS"},
		{"Olive Garden", "Dining", "POS"},
		{"Five Guys", "Dining", "POS"},

		// Transportation
		{"Uber", "Transportation", "Mobile App"},
		{"Lyft", "Transportation", "Mobile App"},
		{"Shell", "Transportation", "POS"},
		{"Chevron", "Transportation", "POS"},
		{"Metro Transit", "Transportation", "POS"},

		// Shopping
		{"Amazon.com", "Shopping", "Online"},
		{"Best Buy", "Shopping", "Online"},
		{"Home Depot", "Shopping", "POS"},
		{"Nike", "Shopping", "Online"},
		{"Apple Store", "Shopping", "Online"},
		{"IKEA", "Shopping", "POS"},

		// Entertainment
		{"Netflix", "Entertainment", "Online"},
		{"Spotify", "Entertainment", "Online"},
		{"AMC Theaters", "Entertainment", "POS"},
		{"PlayStation Network", "Entertainment", "Online"},

		// Bills & Utilities
		{"AT&T", "Bills & Utilities", "Bank Transfer"},
		{"Verizon Wireless", "Bills & Utilities", "Bank Transfer"},
		{"Comcast Xfinity", "Bills & Utilities", "Bank Transfer"},
		{"PG&E", "Bills & Utilities", "Bank Transfer"},

		// Healthcare
		{"CVS Pharmacy", "Healthcare", "POS"},
		{"Walgreens", "Healthcare", "POS"},
		{"Kaiser Permanente", "Healthcare", "Bank Transfer"},

		// Travel
		{"Delta Air Lines", "Travel", "Online"},
		{"Marriott Hotels", "Travel", "Online"},
	}
}

var amountRanges = map[string][2]float64{
	"Groceries":         {15.00, 250.00},
	"Dining":            {8.00, 120.00},
	"Transportation":    {10.00, 80.00},
	"Shopping":          {25.00, 450.00},
	"Entertainment":     {10.00, 60.00},
	"Bills & Utilities": {50.00, 250.00},
	"Healthcare":        {20.00, 300.00},
	"Travel":            {100.00, 800.00},
	"Income":            {2000.00, 8000.00},
}

func (g *sampleDataGenerator) SeedUserData(userID uuid.UUID, months, transactionCount int) (*dto.SeedResponse, error) {
	if userID == uuid.Nil {
		return nil, errors.New("user ID is required")
	}
	if months <= 0 {
		months = defaultSeedMonths
	}
	if transactionCount <= 0 {
		transactionCount = defaultSeedTransactions
	}

	accounts, err := g.ensureAccounts(userID)
	if err != nil {
		return nil, err
	}

	cards, err := g.ensureCards(userID, accounts)
	if err != nil {
		return nil, err
	}

	end := g.now().UTC()
	start := end.AddDate(0, -months, 0)

	transactions := g.generateTransactions(accounts, cards, start, end, transactionCount)
	if err := g.transactionRepo.CreateBatch(transactions); err != nil {
		return nil, fmt.Errorf("failed to persist sample transactions: %w", err)
	}

	slog.Info("sample data seeded",
		"user_id", userID,
		"months", months,
		"transactions", len(transactions))

	return &dto.SeedResponse{
		AccountsCreated:     len(accounts),
		CardsCreated:        len(cards),
		TransactionsCreated: len(transactions),
	}, nil
}

// ensureAccounts returns the user's accounts, creating a checking and a
// savings account when none exist yet.
func (g *sampleDataGenerator) ensureAccounts(userID uuid.UUID) ([]models.Account, error) {
	existing, err := g.accountRepo.GetByUserID(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load accounts: %w", err)
	}
	if len(existing) >= seedAccountCount {
		return existing, nil
	}

	accountTypes := []string{models.AccountTypeChecking, models.AccountTypeSavings}
	for i := len(existing); i < seedAccountCount; i++ {
		account := models.Account{
			UserID:        userID,
			AccountNumber: fmt.Sprintf("%010d", g.rng.Int63n(1e10)),
			AccountType:   accountTypes[i%len(accountTypes)],
			Balance:       decimal.NewFromFloat(1000 + g.rng.Float64()*9000).Round(2),
			Status:        models.AccountStatusActive,
			Currency:      "USD",
		}
		if err := g.accountRepo.Create(&account); err != nil {
			return nil, fmt.Errorf("failed to create sample account: %w", err)
		}
		existing = append(existing, account)
	}
	return existing, nil
}

func (g *sampleDataGenerator) ensureCards(userID uuid.UUID, accounts []models.Account) ([]models.Card, error) {
	existing, err := g.cardRepo.GetByUserID(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load cards: %w", err)
	}
	if len(existing) >= seedCardCount {
		return existing, nil
	}

	cardTypes := []string{models.CardTypeDebit, models.CardTypeCredit}
	for i := len(existing); i < seedCardCount; i++ {
		card := models.Card{
			UserID:       userID,
			AccountID:    accounts[i%len(accounts)].ID,
			MaskedNumber: fmt.Sprintf("**** **** **** %04d", g.rng.Intn(10000)),
			CardType:     cardTypes[i%len(cardTypes)],
			Status:       models.CardStatusActive,
			ExpiresAt:    g.now().AddDate(3, 0, 0),
		}
		if err := g.cardRepo.Create(&card); err != nil {
			return nil, fmt.Errorf("failed to create sample card: %w", err)
		}
		existing = append(existing, card)
	}
	return existing, nil
}

func (g *sampleDataGenerator) generateTransactions(accounts []models.Account, cards []models.Card, start, end time.Time, count int) []models.Transaction {
	transactions := make([]models.Transaction, 0, count)

	for i := 0; i < count; i++ {
		timestamp := g.randomTimestamp(start, end)
		account := accounts[g.rng.Intn(len(accounts))]

		if g.rng.Float64() < 0.30 {
			transactions = append(transactions, g.creditTransaction(account, timestamp))
			continue
		}
		transactions = append(transactions, g.debitTransaction(account, cards, timestamp))
	}

	return transactions
}

func (g *sampleDataGenerator) creditTransaction(account models.Account, timestamp time.Time) models.Transaction {
	accountID := account.ID
	return models.Transaction{
		ToAccountID:     &accountID,
		TransactionType: models.TransactionTypeCredit,
		Amount:          g.randomAmount("Income"),
		Description:     "Direct Deposit - " + gofakeit.Company(),
		Category:        "Income",
		MerchantName:    gofakeit.Company(),
		Source:          "Bank Transfer",
		TransactionDate: timestamp,
	}
}

func (g *sampleDataGenerator) debitTransaction(account models.Account, cards []models.Card, timestamp time.Time) models.Transaction {
	merchant := g.merchantPool[g.rng.Intn(len(g.merchantPool))]
	accountID := account.ID

	txn := models.Transaction{
		FromAccountID:   &accountID,
		TransactionType: models.TransactionTypeDebit,
		Amount:          g.randomAmount(merchant.Category),
		Description:     "Purchase at " + merchant.Name,
		Category:        merchant.Category,
		MerchantName:    merchant.Name,
		Source:          merchant.Source,
		TransactionDate: timestamp,
	}

	// Some purchases go through a card rather than straight off the
	// account; a few bills land as payments.
	switch {
	case len(cards) > 0 && g.rng.Float64() < 0.50:
		cardID := cards[g.rng.Intn(len(cards))].ID
		txn.CardID = &cardID
	case merchant.Category == "Bills & Utilities":
		txn.TransactionType = models.TransactionTypePayment
		txn.Description = "Bill Payment - " + merchant.Name
	}

	return txn
}

func (g *sampleDataGenerator) randomAmount(category string) decimal.Decimal {
	bounds, ok := amountRanges[category]
	if !ok {
		bounds = [2]float64{10.00, 100.00}
	}
	amount := bounds[0] + g.rng.Float64()*(bounds[1]-bounds[0])
	return decimal.NewFromFloat(amount).Round(2)
}

func (g *sampleDataGenerator) randomTimestamp(start, end time.Time) time.Time {
	span := end.Sub(start)
	point := start.Add(time.Duration(g.rng.Int63n(int64(span))))

	hour := activityHoursStart + g.rng.Intn(activityHoursEnd-activityHoursStart)
	return time.Date(point.Year(), point.Month(), point.Day(), hour, g.rng.Intn(60), g.rng.Intn(60), 0, time.UTC)
}
