// Package testutil holds fixtures and assertions shared by the package tests.
package testutil

import (
	"fmt"
	"sync/atomic"

	"github.com/etnz/folio/project"
)

// counter provides unique values across fixtures within a test run.
var counter atomic.Int64

func nextID() int64 {
	return counter.Add(1)
}

// Sample ISINs used by SampleProject.
const (
	ISINApple = "US0378331005"
	ISINMSCI  = "IE00B4L5Y983"
	ISINBond  = "FR0010754135" // no price history
)

// SampleProject returns a normalized project exercising every section of the document,
// with price histories and FX rates.
func SampleProject() *project.Project {
	p := project.New(fmt.Sprintf("Sample %d", nextID()))
	p.Created = "2024-01-02T10:00:00Z"
	p.Modified = "2025-03-04T18:30:00Z"
	p.Settings.WealthGoal = &project.WealthGoal{Amount: 500000, Currency: "EUR"}

	p.Portfolios = []project.Portfolio{
		{ID: "pf-1", Name: "Broker", Broker: "tradegate", CreatedAt: "2024-01-02"},
		{ID: "pf-2", Name: "Savings"},
	}
	p.Transactions = []project.Transaction{
		{ID: "tx-1", PortfolioID: "pf-1", Date: "2024-01-03", Type: project.Deposit, Amount: 10000, Currency: "EUR"},
		{ID: "tx-2", PortfolioID: "pf-1", Date: "2024-01-04", Type: project.Buy, ISIN: ISINApple, Shares: 10, Price: 170.5, Amount: 1705, Fee: 1, Currency: "USD", FXRate: 1.09},
		{ID: "tx-3", PortfolioID: "pf-1", Date: "2024-02-01", Type: project.Buy, ISIN: ISINMSCI, Shares: 50, Price: 80, Amount: 4000, Currency: "EUR"},
		{ID: "tx-4", PortfolioID: "pf-2", Date: "2024-03-01", Type: project.Buy, ISIN: ISINBond, Shares: 1, Price: 98.2, Amount: 98.2, Currency: "EUR"},
	}
	p.Securities = map[string]project.Security{
		ISINApple: {
			SecurityCore: project.SecurityCore{
				ISIN: ISINApple, Symbol: "AAPL", Name: "Apple Inc.", Currency: "USD", QuoteType: "EQUITY",
				Metrics: &project.MarketMetrics{MarketCap: 2.9e12, PERatio: 29.1, UpdatedAt: "2025-03-04"},
			},
			PriceHistory: project.PriceHistory{"2024-01-04": 170.5, "2024-01-05": 172.1, "2024-01-08": 169.8},
		},
		ISINMSCI: {
			SecurityCore: project.SecurityCore{ISIN: ISINMSCI, Symbol: "IWDA.AS", Name: "iShares Core MSCI World", Currency: "EUR", QuoteType: "ETF"},
			PriceHistory: project.PriceHistory{"2024-02-01": 80, "2024-02-02": 80.4},
		},
		ISINBond: {
			SecurityCore: project.SecurityCore{ISIN: ISINBond, Symbol: "OAT", Name: "OAT 4% 2060", Currency: "EUR", QuoteType: "BOND"},
		},
	}
	p.CashAccounts = []project.CashAccount{
		{ID: "ca-1", PortfolioID: "pf-1", Name: "Broker cash", Currency: "EUR", OpeningBalance: 250.75},
	}
	p.CashMovements = []project.CashMovement{
		{ID: "cm-1", AccountID: "ca-1", Date: "2024-01-03", Type: "deposit", Amount: 10000, TransactionID: "tx-1"},
	}
	p.FXData = project.FXData{
		BaseCurrency: project.ReferenceCurrency,
		Rates: map[string]project.RateHistory{
			"USD": {"2024-01-04": 1.0945, "2024-01-05": 1.0921},
			"CHF": {"2024-01-04": 0.9312},
		},
		LastUpdated: "2024-01-05",
	}
	project.Normalize(p)
	return p
}
