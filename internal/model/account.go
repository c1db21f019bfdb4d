package model

// AccountType classifies accounts using GnuCash's type tags.
type AccountType string

const (
	AccountTypeRoot       AccountType = "ROOT"
	AccountTypeAsset      AccountType = "ASSET"
	AccountTypeLiability  AccountType = "LIABILITY"
	AccountTypeIncome     AccountType = "INCOME"
	AccountTypeExpense    AccountType = "EXPENSE"
	AccountTypeEquity     AccountType = "EQUITY"
	AccountTypeBank       AccountType = "BANK"
	AccountTypeCash       AccountType = "CASH"
	AccountTypeCredit     AccountType = "CREDIT"
	AccountTypeReceivable AccountType = "RECEIVABLE"
	AccountTypePayable    AccountType = "PAYABLE"
	AccountTypeStock      AccountType = "STOCK"
	AccountTypeMutual     AccountType = "MUTUAL"
	AccountTypeTrading    AccountType = "TRADING"
)

// Names GnuCash assigns to the two ROOT records of a book.
const (
	RootAccountName  = "Root Account"
	TemplateRootName = "Template Root"
)

// CommoditySpaceCurrency is the commodity namespace for ISO currencies.
// Other namespaces (exchanges, "template") identify securities and
// bookkeeping placeholders.
const CommoditySpaceCurrency = "CURRENCY"

// Commodity is a namespace+code pair attached to an account, e.g.
// CURRENCY/USD.
type Commodity struct {
	Space string
	ID    string
}

// IsCurrency reports whether the commodity lives in the CURRENCY namespace.
func (c Commodity) IsCurrency() bool {
	return c.Space == CommoditySpaceCurrency && c.ID != ""
}

// Account represents one account record read from a GnuCash XML document.
// Records are read once and never mutated.
type Account struct {
	GUID        string
	Name        string
	Type        AccountType
	ParentGUID  string // empty = no parent recorded
	Commodity   *Commodity
	Code        string
	Description string
}

// IsRoot reports whether the record carries GnuCash's ROOT type tag.
func (a Account) IsRoot() bool {
	return a.Type == AccountTypeRoot
}

// Currency returns the account's currency code when its commodity is a
// CURRENCY-namespace entry, or "" otherwise.
func (a Account) Currency() string {
	if a.Commodity != nil && a.Commodity.IsCurrency() {
		return a.Commodity.ID
	}
	return ""
}
