package coinmarketcap

import (
	"errors"
	"fmt"
)

var (
	ErrMissingAPIKey  = errors.New("missing api key")
	ErrMissingSymbols = errors.New("missing symbols")
)

// APIError is returned when the API answers with a non-200 status or
// reports an error code in the response status block.
type APIError struct {
	StatusCode int
	ErrorCode  int
	Message    string
}

func (e *APIError) Error() string {
	switch {
	case e.Message == "" && e.ErrorCode == 0:
		return fmt.Sprintf("unexpected status code: %d", e.StatusCode)
	case e.Message == "":
		return fmt.Sprintf("api error (status %d, code %d)", e.StatusCode, e.ErrorCode)
	}
	return fmt.Sprintf("api error (status %d, code %d): %s", e.StatusCode, e.ErrorCode, e.Message)
}

// SchemaError is returned when a required field is absent from the response.
type SchemaError struct {
	Field string
}

func (e *SchemaError) Error() string {
	return "response missing required field: " + e.Field
}

// QuoteUnavailableError is returned when a currency has no quote in the
// requested quote currency.
type QuoteUnavailableError struct {
	Symbol   string
	Currency string
}

func (e *QuoteUnavailableError) Error() string {
	return fmt.Sprintf("no %s quote for %s", e.Currency, e.Symbol)
}
