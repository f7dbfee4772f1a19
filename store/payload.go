package store

import (
	"encoding/json"
	"strconv"

	"github.com/etnz/folio/project"
)

// metaOf returns the meta entries of doc, in write order.
func metaOf(doc *project.Project) ([][2]string, error) {
	settings, err := json.Marshal(doc.Settings)
	if err != nil {
		return nil, err
	}
	return [][2]string{
		{keySchemaVersion, SchemaVersion},
		{keyVersion, strconv.Itoa(doc.Version)},
		{keyID, doc.ID},
		{keyName, doc.Name},
		{keyCreated, doc.Created},
		{keyModified, doc.Modified},
		{keySettings, string(settings)},
		{keyFXBaseCurrency, doc.FXData.BaseCurrency},
		{keyFXLastUpdated, doc.FXData.LastUpdated},
	}, nil
}

// payloadsOf encodes every section of doc.
func payloadsOf(doc *project.Project) (map[Section]string, error) {
	core, history := project.SplitSecurities(doc.Securities)
	values := map[Section]any{
		SectionPortfolios:    doc.Portfolios,
		SectionTransactions:  doc.Transactions,
		SectionCashAccounts:  doc.CashAccounts,
		SectionCashMovements: doc.CashMovements,
		SectionSecurities:    core,
		SectionPriceHistory:  history,
		SectionFXRates:       doc.FXData.Rates,
	}
	payloads := make(map[Section]string, len(values))
	for name, v := range values {
		data, err := json.Marshal(v)
		if err != nil {
			return nil, err
		}
		payloads[name] = string(data)
	}
	return payloads, nil
}

func sectionNames(sections []Section) []string {
	names := make([]string, len(sections))
	for i, s := range sections {
		names[i] = string(s)
	}
	return names
}
