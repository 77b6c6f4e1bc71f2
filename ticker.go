package main

// Ticker is what we know about one symbol, straight from the provider's
// summary endpoint. Nothing is stored; the redis-cached provider response
// is the only copy.
type Ticker struct {
	TickerSymbol    string `json:"ticker_symbol"`
	ExchangeCode    string `json:"exchange_code"`
	TickerName      string `json:"ticker_name"`
	CompanyName     string `json:"company_name"`
	Sector          string `json:"sector"`
	Industry        string `json:"industry"`
	Website         string `json:"website"`
	Country         string `json:"country"`
	BusinessSummary string `json:"-"`
}

// DisplayName prefers the company's long name but always has something to
// show, falling back to the bare symbol.
func (t Ticker) DisplayName() string {
	if t.CompanyName != "" {
		return t.CompanyName
	}
	if t.TickerName != "" {
		return t.TickerName
	}
	return t.TickerSymbol
}
