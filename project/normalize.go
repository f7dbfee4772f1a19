package project

import (
	"maps"
	"sort"
)

// Normalize brings p to its canonical form, in place. It is idempotent.
//
//   - the legacy per-currency wealth goals are folded into a single WealthGoal.
//   - FX rates are based on ReferenceCurrency.
//   - lists and maps are non-nil, except empty price histories which are nil.
func Normalize(p *Project) {
	if p.Version == 0 {
		p.Version = DocumentVersion
	}
	if p.Settings.BaseCurrency == "" {
		p.Settings.BaseCurrency = ReferenceCurrency
	}
	migrateWealthGoals(&p.Settings)

	if p.Portfolios == nil {
		p.Portfolios = []Portfolio{}
	}
	if p.Transactions == nil {
		p.Transactions = []Transaction{}
	}
	if p.CashAccounts == nil {
		p.CashAccounts = []CashAccount{}
	}
	if p.CashMovements == nil {
		p.CashMovements = []CashMovement{}
	}
	if p.Securities == nil {
		p.Securities = map[string]Security{}
	}
	for isin, s := range p.Securities {
		if s.PriceHistory != nil && len(s.PriceHistory) == 0 {
			s.PriceHistory = nil
			p.Securities[isin] = s
		}
	}

	p.FXData.BaseCurrency = ReferenceCurrency
	if p.FXData.Rates == nil {
		p.FXData.Rates = map[string]RateHistory{}
	}
}

// Canonical returns a normalized copy of p, leaving p untouched.
func Canonical(p *Project) *Project {
	c := *p
	c.Securities = maps.Clone(p.Securities)
	Normalize(&c)
	return &c
}

// migrateWealthGoals replaces the legacy goal map with a single goal, preferring the goal
// expressed in the base currency, then the first currency in alphabetical order.
func migrateWealthGoals(s *Settings) {
	if len(s.WealthGoals) == 0 {
		s.WealthGoals = nil
		return
	}
	if s.WealthGoal == nil {
		if amount, ok := s.WealthGoals[s.BaseCurrency]; ok && amount != 0 {
			s.WealthGoal = &WealthGoal{Amount: amount, Currency: s.BaseCurrency}
		} else {
			currencies := make([]string, 0, len(s.WealthGoals))
			for c, amount := range s.WealthGoals {
				if amount != 0 {
					currencies = append(currencies, c)
				}
			}
			sort.Strings(currencies)
			if len(currencies) > 0 {
				c := currencies[0]
				s.WealthGoal = &WealthGoal{Amount: s.WealthGoals[c], Currency: c}
			}
		}
	}
	s.WealthGoals = nil
}
