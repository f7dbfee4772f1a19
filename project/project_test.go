package project

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitMergeSecurities(t *testing.T) {
	securities := map[string]Security{
		"A": {SecurityCore: SecurityCore{ISIN: "A", Symbol: "AAA", Currency: "USD"}, PriceHistory: PriceHistory{"2025-01-02": 1.5}},
		"B": {SecurityCore: SecurityCore{ISIN: "B", Symbol: "BBB"}},
		"C": {SecurityCore: SecurityCore{ISIN: "C", Symbol: "CCC"}, PriceHistory: PriceHistory{}},
	}

	core, history := SplitSecurities(securities)
	assert.Len(t, core, 3, "core must contain every ISIN")
	assert.Equal(t, map[string]PriceHistory{"A": {"2025-01-02": 1.5}}, history, "empty histories are omitted")

	merged := MergeSecurities(core, history)
	want := map[string]Security{
		"A": securities["A"],
		"B": securities["B"],
		"C": {SecurityCore: SecurityCore{ISIN: "C", Symbol: "CCC"}},
	}
	assert.Equal(t, want, merged)
}

func TestMergeSecurities_Orphan(t *testing.T) {
	merged := MergeSecurities(
		map[string]SecurityCore{},
		map[string]PriceHistory{"X1": {"2025-01-02": 10}, "X2": {}},
	)

	require.Len(t, merged, 1, "empty orphan history is dropped")
	x := merged["X1"]
	assert.Equal(t, "X1", x.ISIN)
	assert.Equal(t, "X1", x.Symbol)
	assert.Equal(t, "X1", x.Name)
	assert.Equal(t, DefaultCurrency, x.Currency)
	assert.Equal(t, DefaultQuoteType, x.QuoteType)
	assert.Equal(t, PriceHistory{"2025-01-02": 10}, x.PriceHistory)
}

func TestNormalize_WealthGoals(t *testing.T) {
	testCases := []struct {
		name     string
		settings Settings
		want     *WealthGoal
	}{
		{
			name:     "base currency preferred",
			settings: Settings{BaseCurrency: "USD", WealthGoals: map[string]float64{"EUR": 1, "USD": 2}},
			want:     &WealthGoal{Amount: 2, Currency: "USD"},
		},
		{
			name:     "first currency otherwise",
			settings: Settings{BaseCurrency: "EUR", WealthGoals: map[string]float64{"USD": 3, "CHF": 4}},
			want:     &WealthGoal{Amount: 4, Currency: "CHF"},
		},
		{
			name:     "existing goal kept",
			settings: Settings{BaseCurrency: "EUR", WealthGoal: &WealthGoal{Amount: 9, Currency: "GBP"}, WealthGoals: map[string]float64{"EUR": 5}},
			want:     &WealthGoal{Amount: 9, Currency: "GBP"},
		},
		{
			name:     "zero goals ignored",
			settings: Settings{BaseCurrency: "EUR", WealthGoals: map[string]float64{"EUR": 0}},
			want:     nil,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			p := &Project{Settings: tc.settings}
			Normalize(p)
			assert.Equal(t, tc.want, p.Settings.WealthGoal)
			assert.Nil(t, p.Settings.WealthGoals, "legacy goals must be cleared")
		})
	}
}

func TestNormalize_Canonical(t *testing.T) {
	p := &Project{
		Securities: map[string]Security{"A": {SecurityCore: SecurityCore{ISIN: "A"}, PriceHistory: PriceHistory{}}},
		FXData:     FXData{BaseCurrency: "USD"},
	}
	Normalize(p)

	assert.Equal(t, DocumentVersion, p.Version)
	assert.NotNil(t, p.Portfolios)
	assert.NotNil(t, p.Transactions)
	assert.NotNil(t, p.CashAccounts)
	assert.NotNil(t, p.CashMovements)
	assert.NotNil(t, p.FXData.Rates)
	assert.Equal(t, ReferenceCurrency, p.FXData.BaseCurrency)
	assert.Nil(t, p.Securities["A"].PriceHistory)

	data, err := json.Marshal(p)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"portfolios":[]`)
	assert.Contains(t, string(data), `"rates":{}`)
	assert.NotContains(t, string(data), `priceHistory`)

	// Normalize is idempotent.
	again := *p
	Normalize(&again)
	assert.Equal(t, *p, again)
}

func TestSecurityJSON(t *testing.T) {
	// The core fields are flattened next to the price history.
	s := Security{SecurityCore: SecurityCore{ISIN: "A", Symbol: "AAA"}, PriceHistory: PriceHistory{"2025-01-02": 1}}
	data, err := json.Marshal(s)
	require.NoError(t, err)

	var raw map[string]any
	require.NoError(t, json.Unmarshal(data, &raw))
	assert.Equal(t, "A", raw["isin"])
	assert.Contains(t, raw, "priceHistory")
}

func TestNew(t *testing.T) {
	p := New("Household")
	assert.Equal(t, "Household", p.Name)
	assert.True(t, IsValidID(p.ID))
	assert.NotEqual(t, p.ID, New("Household").ID)
	assert.Equal(t, p.Created, p.Modified)
	assert.Empty(t, Validate(p))
}

func TestPriceHistory_History(t *testing.T) {
	h := PriceHistory{"2025-01-03": 3, "2025-01-01": 1, "not a date": 2}.History()
	assert.Equal(t, 2, h.Len())
	day, v := h.Latest()
	assert.Equal(t, "2025-01-03", day.String())
	assert.Equal(t, 3.0, v)
}

func TestValidate(t *testing.T) {
	p := New("Broken")
	p.Portfolios = []Portfolio{{ID: "pf"}}
	p.Transactions = []Transaction{
		{ID: "t1", PortfolioID: "pf", Date: "2025-01-01", ISIN: "MISSING"},
		{ID: "t2", PortfolioID: "other", Date: "01/02/2025"},
	}
	p.Securities = map[string]Security{
		"A": {SecurityCore: SecurityCore{ISIN: "B"}, PriceHistory: PriceHistory{"bad": 1}},
	}
	p.CashMovements = []CashMovement{{ID: "m1", AccountID: "nope"}}
	p.FXData.Rates = map[string]RateHistory{"USD": {"2025-13-01": 1.1}}

	var got []string
	for _, issue := range Validate(p) {
		got = append(got, issue.Section+"/"+issue.Key)
	}
	assert.ElementsMatch(t, []string{
		"cashMovements/m1",
		"fxData/USD",
		"securities/A",
		"securities/A",
		"transactions/t1",
		"transactions/t2",
		"transactions/t2",
	}, got)
}

func TestValidate_MissingRate(t *testing.T) {
	p := New("FX")
	p.Portfolios = []Portfolio{{ID: "pf"}}
	p.FXData.Rates = map[string]RateHistory{"USD": {"2025-01-10": 1.05}}
	p.Transactions = []Transaction{
		{ID: "t1", PortfolioID: "pf", Date: "2025-01-09", Currency: "USD"},
		{ID: "t2", PortfolioID: "pf", Date: "2025-01-15", Currency: "USD"},
		{ID: "t3", PortfolioID: "pf", Date: "2025-01-09", Currency: "USD", FXRate: 1.04},
		{ID: "t4", PortfolioID: "pf", Date: "2025-01-09", Currency: "CHF"},
		{ID: "t5", PortfolioID: "pf", Date: "2025-01-09", Currency: "EUR"},
	}

	assert.Equal(t, []Issue{
		{Section: "transactions", Key: "t1", Message: "no USD rate on or before 2025-01-09"},
		{Section: "transactions", Key: "t4", Message: "no CHF rate on or before 2025-01-09"},
	}, Validate(p))
}
