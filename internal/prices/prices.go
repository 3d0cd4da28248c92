package prices

import (
	"encoding/csv"
	"fmt"
	"io"
	"maps"
	"os"
	"slices"

	"github.com/nais/coin-prices/internal/coinmarketcap"
)

// Header is the first line of every prices file.
var Header = []string{"Name", "Symbol", "Price", "7DayChange"}

// Row is one line of the prices file.
type Row struct {
	Name            string
	Symbol          string
	Price           float64
	PercentChange7d float64
}

func (r Row) record() []string {
	return []string{
		r.Name,
		r.Symbol,
		coinmarketcap.FormatFloat(r.Price),
		coinmarketcap.FormatFloat(r.PercentChange7d),
	}
}

// Rows resolves the USD quote of every currency, ordered by the key the API
// returned it under. A currency without a USD quote fails the whole set.
func Rows(currencies map[string]coinmarketcap.Currency) ([]Row, error) {
	ret := make([]Row, 0, len(currencies))
	for _, key := range slices.Sorted(maps.Keys(currencies)) {
		c := currencies[key]
		q, err := c.Quote(coinmarketcap.USD)
		if err != nil {
			return nil, err
		}
		ret = append(ret, Row{
			Name:            c.Name,
			Symbol:          c.Symbol,
			Price:           q.Price,
			PercentChange7d: q.PercentChange7d,
		})
	}
	return ret, nil
}

// Write writes the header followed by rows as CSV.
func Write(w io.Writer, rows []Row) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Header); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	for _, row := range rows {
		if err := cw.Write(row.record()); err != nil {
			return fmt.Errorf("writing row for %s: %w", row.Symbol, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteFile resolves rows for currencies and writes them to path, replacing
// any existing file. Nothing is created if a row cannot be resolved.
func WriteFile(path string, currencies map[string]coinmarketcap.Currency) (err error) {
	rows, err := Rows(currencies)
	if err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("closing %s: %w", path, cerr)
		}
	}()

	if err := Write(f, rows); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
