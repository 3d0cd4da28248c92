package coinmarketcap

import (
	"fmt"
	"strconv"
)

// USD is the quote currency code the program reads.
const USD = "USD"

// QuoteResponse is the decoded body of a quotes/latest call, keyed by the
// ticker symbol the vendor returned.
type QuoteResponse struct {
	Data map[string]Currency
}

// Currency returns the currency record for symbol.
func (r QuoteResponse) Currency(symbol string) (Currency, bool) {
	c, ok := r.Data[symbol]
	return c, ok
}

// Currency is a single asset and its quotes keyed by quote currency code.
type Currency struct {
	Name   string
	Symbol string
	Quotes map[string]Quote
}

// Quote looks up the quote denominated in code.
func (c Currency) Quote(code string) (Quote, error) {
	q, ok := c.Quotes[code]
	if !ok {
		return Quote{}, &QuoteUnavailableError{Symbol: c.Symbol, Currency: code}
	}
	return q, nil
}

func (c Currency) String() string {
	q, err := c.Quote(USD)
	if err != nil {
		return fmt.Sprintf("Name: %s, Symbol: %s, Price: n/a, Change(7d): n/a", c.Name, c.Symbol)
	}
	return fmt.Sprintf("Name: %s, Symbol: %s, Price: %s, Change(7d): %s%%", c.Name, c.Symbol, FormatFloat(q.Price), FormatFloat(q.PercentChange7d))
}

// Quote is a price snapshot in one quote currency.
type Quote struct {
	Price           float64
	PercentChange7d float64
}

// FormatFloat renders v as the shortest decimal string that round-trips,
// never in exponent form.
func FormatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

type status struct {
	Timestamp    string  `json:"timestamp"`
	ErrorCode    int     `json:"error_code"`
	ErrorMessage *string `json:"error_message"`
	Elapsed      int     `json:"elapsed"`
	CreditCount  int     `json:"credit_count"`
}

type quoteLatestResponse struct {
	Status status                      `json:"status"`
	Data   map[string]*quoteLatestData `json:"data"`
}

type quoteLatestData struct {
	Name   *string                 `json:"name"`
	Symbol *string                 `json:"symbol"`
	Quote  map[string]*latestQuote `json:"quote"`
}

type latestQuote struct {
	Price           *float64 `json:"price"`
	PercentChange7d *float64 `json:"percent_change_7d"`
}

func (r quoteLatestResponse) toQuoteResponse() (QuoteResponse, error) {
	if r.Data == nil {
		return QuoteResponse{}, &SchemaError{Field: "data"}
	}

	ret := QuoteResponse{Data: make(map[string]Currency, len(r.Data))}
	for key, d := range r.Data {
		c, err := d.toCurrency(key)
		if err != nil {
			return QuoteResponse{}, err
		}
		ret.Data[key] = c
	}
	return ret, nil
}

func (d *quoteLatestData) toCurrency(key string) (Currency, error) {
	path := "data." + key
	switch {
	case d == nil:
		return Currency{}, &SchemaError{Field: path}
	case d.Name == nil:
		return Currency{}, &SchemaError{Field: path + ".name"}
	case d.Symbol == nil:
		return Currency{}, &SchemaError{Field: path + ".symbol"}
	case d.Quote == nil:
		return Currency{}, &SchemaError{Field: path + ".quote"}
	}

	quotes := make(map[string]Quote, len(d.Quote))
	for code, q := range d.Quote {
		qpath := path + ".quote." + code
		switch {
		case q == nil:
			return Currency{}, &SchemaError{Field: qpath}
		case q.Price == nil:
			return Currency{}, &SchemaError{Field: qpath + ".price"}
		case q.PercentChange7d == nil:
			return Currency{}, &SchemaError{Field: qpath + ".percent_change_7d"}
		}
		quotes[code] = Quote{
			Price:           *q.Price,
			PercentChange7d: *q.PercentChange7d,
		}
	}

	return Currency{
		Name:   *d.Name,
		Symbol: *d.Symbol,
		Quotes: quotes,
	}, nil
}
