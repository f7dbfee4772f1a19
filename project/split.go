package project

// SplitSecurities separates securities into their light core and their price histories.
//
// The core map contains every ISIN. The history map only contains securities with a
// non-empty price history.
func SplitSecurities(securities map[string]Security) (map[string]SecurityCore, map[string]PriceHistory) {
	core := make(map[string]SecurityCore, len(securities))
	history := make(map[string]PriceHistory)
	for isin, s := range securities {
		core[isin] = s.SecurityCore
		if len(s.PriceHistory) > 0 {
			history[isin] = s.PriceHistory
		}
	}
	return core, history
}

// MergeSecurities rebuilds securities from a core map and a price history map.
//
// A price history whose ISIN is missing from core gets a placeholder security so that no
// price data is ever dropped.
func MergeSecurities(core map[string]SecurityCore, history map[string]PriceHistory) map[string]Security {
	securities := make(map[string]Security, len(core))
	for isin, c := range core {
		s := Security{SecurityCore: c}
		if h := history[isin]; len(h) > 0 {
			s.PriceHistory = h
		}
		securities[isin] = s
	}
	for isin, h := range history {
		if _, exists := core[isin]; exists || len(h) == 0 {
			continue
		}
		securities[isin] = Security{
			SecurityCore: Placeholder(isin),
			PriceHistory: h,
		}
	}
	return securities
}

// Placeholder returns the core of a security known only by its ISIN.
func Placeholder(isin string) SecurityCore {
	return SecurityCore{
		ISIN:         isin,
		Symbol:       isin,
		Name:         isin,
		Currency:     DefaultCurrency,
		QuoteType:    DefaultQuoteType,
		SymbolStatus: PlaceholderStatus,
	}
}

// CoreOf returns the light part of securities.
func CoreOf(securities map[string]Security) map[string]SecurityCore {
	core, _ := SplitSecurities(securities)
	return core
}
