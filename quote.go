package main

// Quote is the live quote we show in the pair header, refreshed every few
// seconds while the market is open.
type Quote struct {
	Symbol         string  `json:"symbol"`
	ShortName      string  `json:"short_name"`
	MarketState    string  `json:"market_state"`
	QuotePrice     float64 `json:"quote_price"`
	QuoteChange    float64 `json:"quote_change"`
	QuoteChangePct float64 `json:"quote_change_pct"`
	QuoteTime      int64   `json:"quote_time"`
	QuoteVolume    int64   `json:"quote_volume"`
	QuoteLow       float64 `json:"quote_low"`
	QuoteHigh      float64 `json:"quote_high"`
}

// wire shape of the marketQuote endpoint; only the fields we read
type yhQuoteEnvelope struct {
	QuoteResponse struct {
		Quotes []yhQuote `json:"result"`
	} `json:"quoteResponse"`
}

type yhQuote struct {
	Symbol                     string  `json:"symbol"`
	ShortName                  string  `json:"shortName"`
	LongName                   string  `json:"longName"`
	MarketState                string  `json:"marketState"`
	RegularMarketPrice         float64 `json:"regularMarketPrice"`
	RegularMarketChange        float64 `json:"regularMarketChange"`
	RegularMarketChangePercent float64 `json:"regularMarketChangePercent"`
	RegularMarketTime          int64   `json:"regularMarketTime"`
	RegularMarketVolume        int64   `json:"regularMarketVolume"`
	RegularMarketDayLow        float64 `json:"regularMarketDayLow"`
	RegularMarketDayHigh       float64 `json:"regularMarketDayHigh"`
}

func quoteFromWire(wire yhQuote) Quote {
	shortName := wire.ShortName
	if shortName == "" {
		shortName = wire.LongName
	}
	return Quote{
		Symbol:         wire.Symbol,
		ShortName:      shortName,
		MarketState:    wire.MarketState,
		QuotePrice:     wire.RegularMarketPrice,
		QuoteChange:    wire.RegularMarketChange,
		QuoteChangePct: wire.RegularMarketChangePercent,
		QuoteTime:      wire.RegularMarketTime,
		QuoteVolume:    wire.RegularMarketVolume,
		QuoteLow:       wire.RegularMarketDayLow,
		QuoteHigh:      wire.RegularMarketDayHigh,
	}
}
