package book

// currencyNames maps ISO codes to display names for the currencies a
// chart of accounts commonly carries. Codes outside the table fall back
// to the code itself; GnuCash refines the metadata on next open.
var currencyNames = map[string]string{
	"USD": "US Dollar",
	"EUR": "Euro",
	"GBP": "Pound Sterling",
	"JPY": "Japanese Yen",
}

// fullname resolves the display name for a currency code, preferring
// configured overrides over the built-in table.
func (b *Book) fullname(code string) string {
	if name, ok := b.names[code]; ok {
		return name
	}
	if name, ok := currencyNames[code]; ok {
		return name
	}
	return code
}
