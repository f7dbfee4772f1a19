// Package renderer renders project summaries as markdown.
package renderer

import (
	"sort"

	"github.com/etnz/folio/project"
	"github.com/etnz/folio/store"
)

// Info summarizes a project file.
type Info struct {
	Path     string
	Format   string
	Deferred bool // heavy data was not read.

	Name         string
	ID           string
	Version      int
	Created      string
	Modified     string
	BaseCurrency string
	HasGoal      bool
	Goal         Money

	Portfolios    int
	Transactions  int
	CashMovements int
	Securities    []SecurityInfo
	CashAccounts  []CashAccountInfo
	Currencies    []CurrencyInfo
	Sections      []SectionInfo
}

// SecurityInfo summarizes a security and its price history.
type SecurityInfo struct {
	ISIN      string
	Symbol    string
	Name      string
	QuoteType string
	Loaded    bool // the price history was read.
	Prices    int
	Period    string
	Last      string
}

// CashAccountInfo summarizes a cash account.
type CashAccountInfo struct {
	Name      string
	Portfolio string
	Opening   Money
}

// CurrencyInfo summarizes the rate history of a currency against the reference currency.
type CurrencyInfo struct {
	Code   string
	Loaded bool
	Rates  int
	Period string
	Last   string
}

// SectionInfo describes a section stored in a SQLite file.
type SectionInfo struct {
	Name   string
	Bytes  int
	Digest string
	Status string
}

// NewInfo builds the summary of p read from path. stats are the stored sections of a SQLite
// file, nil for JSON files.
func NewInfo(path, format string, deferred bool, p *project.Project, stats []store.SectionStat) *Info {
	i := &Info{
		Path:          path,
		Format:        format,
		Deferred:      deferred,
		Name:          p.Name,
		ID:            p.ID,
		Version:       p.Version,
		Created:       p.Created,
		Modified:      p.Modified,
		BaseCurrency:  p.Settings.BaseCurrency,
		Portfolios:    len(p.Portfolios),
		Transactions:  len(p.Transactions),
		CashMovements: len(p.CashMovements),
		Sections:      sectionInfos(stats),
	}
	if g := p.Settings.WealthGoal; g != nil {
		i.HasGoal = true
		i.Goal = M(g.Amount, g.Currency)
	}

	portfolios := make(map[string]string, len(p.Portfolios))
	for _, pf := range p.Portfolios {
		portfolios[pf.ID] = pf.Name
	}
	for _, a := range p.CashAccounts {
		name, ok := portfolios[a.PortfolioID]
		if !ok {
			name = a.PortfolioID
		}
		i.CashAccounts = append(i.CashAccounts, CashAccountInfo{
			Name:      a.Name,
			Portfolio: name,
			Opening:   M(a.OpeningBalance, a.Currency),
		})
	}

	for _, isin := range sortedKeys(p.Securities) {
		s := p.Securities[isin]
		si := SecurityInfo{
			ISIN:      isin,
			Symbol:    s.Symbol,
			Name:      s.Name,
			QuoteType: s.QuoteType,
			Loaded:    !deferred,
		}
		if si.Loaded {
			si.Prices, si.Period, si.Last = summarize(s.PriceHistory)
		}
		i.Securities = append(i.Securities, si)
	}

	for _, code := range sortedKeys(p.FXData.Rates) {
		ci := CurrencyInfo{Code: code, Loaded: !deferred}
		if ci.Loaded {
			ci.Rates, ci.Period, ci.Last = summarize(p.FXData.Rates[code])
		}
		i.Currencies = append(i.Currencies, ci)
	}
	return i
}

// summarize returns the number of points of a dated series, its period and its latest value.
func summarize[S ~map[string]float64](m S) (n int, period, last string) {
	h := project.PriceHistory(m).History()
	span, ok := h.Span()
	if !ok {
		return len(m), "", ""
	}
	_, v := h.Latest()
	return len(m), span.String(), Price(v).String()
}

func sectionInfos(stats []store.SectionStat) []SectionInfo {
	var infos []SectionInfo
	for _, st := range stats {
		status := "loaded"
		if !st.Loaded {
			status = "deferred"
		}
		infos = append(infos, SectionInfo{
			Name:   string(st.Name),
			Bytes:  st.Bytes,
			Digest: st.Digest,
			Status: status,
		})
	}
	return infos
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Verification is the outcome of checking a project file.
type Verification struct {
	Path          string
	Format        string
	SchemaVersion string // empty for JSON files.
	Sections      []SectionInfo
	Issues        []project.Issue
}

// NewVerification builds the verification report of p read from path.
func NewVerification(path, format, schemaVersion string, p *project.Project, stats []store.SectionStat) *Verification {
	return &Verification{
		Path:          path,
		Format:        format,
		SchemaVersion: schemaVersion,
		Sections:      sectionInfos(stats),
		Issues:        project.Validate(p),
	}
}
