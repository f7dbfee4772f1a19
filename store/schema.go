package store

// SchemaVersion is the physical layout version written in project_meta.
const SchemaVersion = "2"

// Section is the name of a stored JSON payload.
type Section string

const (
	SectionPortfolios    Section = "portfolios"
	SectionTransactions  Section = "transactions"
	SectionCashAccounts  Section = "cash_accounts"
	SectionCashMovements Section = "cash_movements"
	SectionSecurities    Section = "securities_core"
	SectionPriceHistory  Section = "security_price_history"
	SectionFXRates       Section = "fx_rates"
)

// Sections lists every section in write order.
var Sections = []Section{
	SectionPortfolios,
	SectionTransactions,
	SectionCashAccounts,
	SectionCashMovements,
	SectionSecurities,
	SectionPriceHistory,
	SectionFXRates,
}

// heavySections are loaded on demand.
var heavySections = []Section{SectionPriceHistory, SectionFXRates}

// lightSections are always loaded.
var lightSections = []Section{
	SectionPortfolios,
	SectionTransactions,
	SectionCashAccounts,
	SectionCashMovements,
	SectionSecurities,
}

// IsHeavy reports whether s is loaded on demand.
func (s Section) IsHeavy() bool { return s == SectionPriceHistory || s == SectionFXRates }

// trivialPayload is the longest payload considered empty.
const trivialPayload = "{}"

func isTrivial(payload string) bool { return len(payload) <= len(trivialPayload) }

// Meta keys.
const (
	keySchemaVersion  = "schema_version"
	keyVersion        = "version"
	keyID             = "id"
	keyName           = "name"
	keyCreated        = "created"
	keyModified       = "modified"
	keySettings       = "settings_json"
	keyFXBaseCurrency = "fx_base_currency"
	keyFXLastUpdated  = "fx_last_updated"
)

const (
	metaTable     = "project_meta"
	sectionsTable = "project_sections"
)

// legacyTables are the tables of the first, one table per entity, layout.
var legacyTables = []string{
	"project_info",
	"portfolios",
	"transactions",
	"securities",
	"price_history",
	"cash_accounts",
	"cash_movements",
	"fx_rates",
}

var ddl = []string{
	`CREATE TABLE IF NOT EXISTS project_meta (key TEXT PRIMARY KEY, value TEXT NOT NULL)`,
	`CREATE TABLE IF NOT EXISTS project_sections (name TEXT PRIMARY KEY, payload TEXT NOT NULL)`,
}

type metaRow struct {
	Key   string `gorm:"column:key;primaryKey"`
	Value string `gorm:"column:value;not null"`
}

func (metaRow) TableName() string { return metaTable }

type sectionRow struct {
	Name    string `gorm:"column:name;primaryKey"`
	Payload string `gorm:"column:payload;not null"`
}

func (sectionRow) TableName() string { return sectionsTable }
