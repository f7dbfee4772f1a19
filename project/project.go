// Package project defines the in-memory project document persisted by folio: portfolios,
// transactions, securities with their price history, cash accounts and FX data.
//
// A Project is a plain value. Callers mutate it by replacing the whole document, the
// persistence layer never keeps references into it.
package project

import (
	"time"

	"github.com/etnz/folio/date"
)

// DocumentVersion is the logical schema version of a Project document.
const DocumentVersion = 2

// ReferenceCurrency is the base currency of all FX rates.
const ReferenceCurrency = "EUR"

// Defaults used for placeholder securities.
const (
	DefaultCurrency  = "EUR"
	DefaultQuoteType = "EQUITY"

	// PlaceholderStatus marks securities rebuilt from an orphan price history.
	PlaceholderStatus = "placeholder"
)

// Project is the root document.
type Project struct {
	Version       int                 `json:"version"`
	ID            string              `json:"id"`
	Name          string              `json:"name"`
	Created       string              `json:"created"`
	Modified      string              `json:"modified"`
	Settings      Settings            `json:"settings"`
	Portfolios    []Portfolio         `json:"portfolios"`
	Transactions  []Transaction       `json:"transactions"`
	Securities    map[string]Security `json:"securities"`
	CashAccounts  []CashAccount       `json:"cashAccounts"`
	CashMovements []CashMovement      `json:"cashMovements"`
	FXData        FXData              `json:"fxData"`
}

// Settings are the user preferences stored with the project.
type Settings struct {
	BaseCurrency string      `json:"baseCurrency"`
	WealthGoal   *WealthGoal `json:"wealthGoal,omitempty"`

	// WealthGoals is the legacy per-currency goal map, replaced by WealthGoal on load.
	WealthGoals map[string]float64 `json:"wealthGoals,omitempty"`
}

// WealthGoal is a target net worth.
type WealthGoal struct {
	Amount   float64 `json:"amount"`
	Currency string  `json:"currency"`
}

// Portfolio groups transactions and cash accounts, usually one per broker account.
type Portfolio struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Broker    string `json:"broker,omitempty"`
	CreatedAt string `json:"createdAt,omitempty"`
}

// TransactionType enumerates the kinds of transaction.
type TransactionType string

const (
	Buy        TransactionType = "buy"
	Sell       TransactionType = "sell"
	Dividend   TransactionType = "dividend"
	Deposit    TransactionType = "deposit"
	Withdrawal TransactionType = "withdrawal"
	Fee        TransactionType = "fee"
	Tax        TransactionType = "tax"
	Interest   TransactionType = "interest"
	Transfer   TransactionType = "transfer"
)

// Transaction is a single entry of a portfolio.
type Transaction struct {
	ID          string          `json:"id"`
	PortfolioID string          `json:"portfolioId"`
	Date        string          `json:"date"`
	Type        TransactionType `json:"type"`
	ISIN        string          `json:"isin,omitempty"`
	Name        string          `json:"name,omitempty"`
	Shares      float64         `json:"shares"`
	Price       float64         `json:"price"`
	Amount      float64         `json:"amount"`
	Fee         float64         `json:"fee"`
	Tax         float64         `json:"tax"`
	Currency    string          `json:"currency"`
	FXRate      float64         `json:"fxRate,omitempty"`
	Note        string          `json:"note,omitempty"`
}

// CashAccount is a cash balance held in a single currency.
type CashAccount struct {
	ID             string  `json:"id"`
	PortfolioID    string  `json:"portfolioId"`
	Name           string  `json:"name"`
	Currency       string  `json:"currency"`
	OpeningBalance float64 `json:"openingBalance"`
}

// CashMovement moves money in or out of a CashAccount.
type CashMovement struct {
	ID            string  `json:"id"`
	AccountID     string  `json:"accountId"`
	Date          string  `json:"date"`
	Type          string  `json:"type"`
	Amount        float64 `json:"amount"`
	TransactionID string  `json:"transactionId,omitempty"`
	Note          string  `json:"note,omitempty"`
}

// SecurityCore is the light part of a Security: identity and latest market metrics.
type SecurityCore struct {
	ISIN         string         `json:"isin"`
	Symbol       string         `json:"symbol"`
	Name         string         `json:"name"`
	Currency     string         `json:"currency"`
	QuoteType    string         `json:"quoteType"`
	SymbolStatus string         `json:"symbolStatus,omitempty"`
	SymbolSource string         `json:"symbolSource,omitempty"`
	Metrics      *MarketMetrics `json:"metrics,omitempty"`
}

// MarketMetrics are the latest known indicators of a security.
type MarketMetrics struct {
	MarketCap     float64 `json:"marketCap,omitempty"`
	PERatio       float64 `json:"peRatio,omitempty"`
	DividendYield float64 `json:"dividendYield,omitempty"`
	High52Week    float64 `json:"high52Week,omitempty"`
	Low52Week     float64 `json:"low52Week,omitempty"`
	Beta          float64 `json:"beta,omitempty"`
	UpdatedAt     string  `json:"updatedAt,omitempty"`
}

// PriceHistory maps a date string to a closing price.
type PriceHistory map[string]float64

// Security is a SecurityCore with its price history.
type Security struct {
	SecurityCore
	PriceHistory PriceHistory `json:"priceHistory,omitempty"`
}

// RateHistory maps a date string to an exchange rate.
type RateHistory map[string]float64

// FXData holds exchange rates from ReferenceCurrency to other currencies.
type FXData struct {
	BaseCurrency string                 `json:"baseCurrency"`
	Rates        map[string]RateHistory `json:"rates"`
	LastUpdated  string                 `json:"lastUpdated"`
}

// History returns the parseable points of the price history in chronological order.
func (p PriceHistory) History() *date.History[float64] { return collect(p) }

// History returns the parseable points of the rate history in chronological order.
func (r RateHistory) History() *date.History[float64] { return collect(r) }

func collect(m map[string]float64) *date.History[float64] {
	h := new(date.History[float64])
	for k, v := range m {
		on, err := date.Parse(k)
		if err != nil {
			continue
		}
		h.Append(on, v)
	}
	return h
}

// New returns an empty normalized project named name.
func New(name string) *Project {
	now := time.Now().UTC().Format(time.RFC3339)
	p := &Project{
		Version:  DocumentVersion,
		ID:       NewID(),
		Name:     name,
		Created:  now,
		Modified: now,
		Settings: Settings{BaseCurrency: ReferenceCurrency},
	}
	Normalize(p)
	return p
}

// Touch updates the modification timestamp.
func (p *Project) Touch() { p.Modified = time.Now().UTC().Format(time.RFC3339) }
