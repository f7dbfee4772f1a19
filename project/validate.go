package project

import (
	"fmt"
	"sort"

	"github.com/etnz/folio/date"
)

// Issue is a problem found in a project by Validate.
type Issue struct {
	Section string // section of the document the issue belongs to.
	Key     string // identifier of the faulty item.
	Message string
}

func (i Issue) String() string { return fmt.Sprintf("%s[%s]: %s", i.Section, i.Key, i.Message) }

// Validate reports inconsistencies in p. It never changes p, and loading or saving a project
// never requires it to be valid.
func Validate(p *Project) []Issue {
	var issues []Issue
	add := func(section, key, format string, args ...any) {
		issues = append(issues, Issue{Section: section, Key: key, Message: fmt.Sprintf(format, args...)})
	}

	if !IsValidID(p.ID) {
		add("project", "id", "invalid identifier %q", p.ID)
	}

	portfolios := make(map[string]bool, len(p.Portfolios))
	for _, pf := range p.Portfolios {
		if portfolios[pf.ID] {
			add("portfolios", pf.ID, "duplicate portfolio id")
		}
		portfolios[pf.ID] = true
	}

	for _, tx := range p.Transactions {
		if _, err := date.Parse(tx.Date); err != nil {
			add("transactions", tx.ID, "invalid date %q", tx.Date)
		}
		if !portfolios[tx.PortfolioID] {
			add("transactions", tx.ID, "unknown portfolio %q", tx.PortfolioID)
		}
		if needsRate(p, tx) {
			on, _ := date.Parse(tx.Date)
			if _, ok := p.FXData.Rates[tx.Currency].History().ValueAsOf(on); !ok {
				add("transactions", tx.ID, "no %s rate on or before %s", tx.Currency, tx.Date)
			}
		}
		if tx.ISIN == "" {
			continue
		}
		if _, ok := p.Securities[tx.ISIN]; !ok {
			add("transactions", tx.ID, "unknown security %q", tx.ISIN)
		}
	}

	for isin, s := range p.Securities {
		if s.ISIN != isin {
			add("securities", isin, "keyed by %q but identifies itself as %q", isin, s.ISIN)
		}
		for k := range s.PriceHistory {
			if _, err := date.Parse(k); err != nil {
				add("securities", isin, "invalid price date %q", k)
			}
		}
	}

	accounts := make(map[string]bool, len(p.CashAccounts))
	for _, a := range p.CashAccounts {
		accounts[a.ID] = true
	}
	for _, m := range p.CashMovements {
		if !accounts[m.AccountID] {
			add("cashMovements", m.ID, "unknown cash account %q", m.AccountID)
		}
	}

	for currency, rates := range p.FXData.Rates {
		for k := range rates {
			if _, err := date.Parse(k); err != nil {
				add("fxData", currency, "invalid rate date %q", k)
			}
		}
	}

	sort.SliceStable(issues, func(i, j int) bool {
		if issues[i].Section != issues[j].Section {
			return issues[i].Section < issues[j].Section
		}
		return issues[i].Key < issues[j].Key
	})
	return issues
}

// needsRate reports whether the amounts of tx can only be converted with the FX history: a
// valid date in a foreign currency without an explicit rate.
func needsRate(p *Project, tx Transaction) bool {
	if tx.Currency == "" || tx.Currency == p.FXData.BaseCurrency || tx.FXRate != 0 {
		return false
	}
	_, err := date.Parse(tx.Date)
	return err == nil
}
