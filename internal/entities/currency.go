package entities

// CurrencyInfo is one entry of the static currency reference table.
type CurrencyInfo struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

// currencyTable is loaded once and never mutated. Lookups go through
// currencyIndex; accessors hand out copies.
var currencyTable = []CurrencyInfo{
	{"AED", "United Arab Emirates Dirham"},
	{"ARS", "Argentine Peso"},
	{"AUD", "Australian Dollar"},
	{"BGN", "Bulgarian Lev"},
	{"BHD", "Bahraini Dinar"},
	{"BRL", "Brazilian Real"},
	{"CAD", "Canadian Dollar"},
	{"CHF", "Swiss Franc"},
	{"CLP", "Chilean Peso"},
	{"CNY", "Chinese Yuan"},
	{"COP", "Colombian Peso"},
	{"CZK", "Czech Koruna"},
	{"DKK", "Danish Krone"},
	{"EGP", "Egyptian Pound"},
	{"EUR", "Euro"},
	{"GBP", "British Pound Sterling"},
	{"HKD", "Hong Kong Dollar"},
	{"HUF", "Hungarian Forint"},
	{"IDR", "Indonesian Rupiah"},
	{"ILS", "Israeli New Sheqel"},
	{"INR", "Indian Rupee"},
	{"ISK", "Icelandic Krona"},
	{"JPY", "Japanese Yen"},
	{"KES", "Kenyan Shilling"},
	{"KRW", "South Korean Won"},
	{"KWD", "Kuwaiti Dinar"},
	{"MAD", "Moroccan Dirham"},
	{"MXN", "Mexican Peso"},
	{"MYR", "Malaysian Ringgit"},
	{"NGN", "Nigerian Naira"},
	{"NOK", "Norwegian Krone"},
	{"NZD", "New Zealand Dollar"},
	{"PHP", "Philippine Peso"},
	{"PKR", "Pakistani Rupee"},
	{"PLN", "Polish Zloty"},
	{"QAR", "Qatari Rial"},
	{"RON", "Romanian Leu"},
	{"RSD", "Serbian Dinar"},
	{"RUB", "Russian Ruble"},
	{"SAR", "Saudi Riyal"},
	{"SEK", "Swedish Krona"},
	{"SGD", "Singapore Dollar"},
	{"THB", "Thai Baht"},
	{"TRY", "Turkish Lira"},
	{"TWD", "New Taiwan Dollar"},
	{"UAH", "Ukrainian Hryvnia"},
	{"USD", "United States Dollar"},
	{"UYU", "Uruguayan Peso"},
	{"VND", "Vietnamese Dong"},
	{"ZAR", "South African Rand"},
}

var currencyIndex = func() map[string]int {
	idx := make(map[string]int, len(currencyTable))
	for i, c := range currencyTable {
		idx[c.Code] = i
	}
	return idx
}()

// CurrencyName returns the reference name for a code, if known.
func CurrencyName(code string) (string, bool) {
	i, ok := currencyIndex[code]
	if !ok {
		return "", false
	}
	return currencyTable[i].Name, true
}

// SupportedCurrencies returns a copy of the reference table, ordered by
// code.
func SupportedCurrencies() []CurrencyInfo {
	out := make([]CurrencyInfo, len(currencyTable))
	copy(out, currencyTable)
	return out
}
