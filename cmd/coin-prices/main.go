package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/nais/coin-prices/internal/coinmarketcap"
	"github.com/nais/coin-prices/internal/config"
	"github.com/nais/coin-prices/internal/log"
	"github.com/nais/coin-prices/internal/prices"
	"github.com/sirupsen/logrus"
)

const (
	exitCodeOK = iota
	exitCodeConfigError
	exitCodeLoggerError
	exitCodeRunError
	exitCodeUsageError
)

const (
	envFile    = ".env"
	outputFile = "prices.csv"
)

var errMissingCoins = errors.New("missing required flag -c/--coins")

func main() {
	coins, err := parseFlags(os.Args[0], os.Args[1:], os.Stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(exitCodeOK)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(exitCodeUsageError)
	}

	cfg, err := config.New(envFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create config: %v\n", err)
		os.Exit(exitCodeConfigError)
	}

	logger, err := log.New(os.Stderr, cfg.Log.Format, cfg.Log.Level)
	if err != nil {
		fmt.Fprintf(os.Stderr, "unable to create logger: %v\n", err)
		os.Exit(exitCodeLoggerError)
	}

	err = run(context.Background(), cfg, logger, coins, outputFile)
	if err != nil {
		logger.WithError(err).Error("error in run()")
		os.Exit(exitCodeRunError)
	}

	os.Exit(exitCodeOK)
}

// parseFlags returns the value of -c/--coins exactly as given.
func parseFlags(name string, args []string, output io.Writer) (string, error) {
	var coins string

	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(output)
	fs.StringVar(&coins, "coins", "", "comma separated ticker symbols, e.g. BTC,ETH")
	fs.StringVar(&coins, "c", "", "shorthand for -coins")
	if err := fs.Parse(args); err != nil {
		return "", err
	}

	if fs.NArg() > 0 {
		return "", fmt.Errorf("unexpected arguments: %s", strings.Join(fs.Args(), " "))
	}
	if coins == "" {
		return "", errMissingCoins
	}
	return coins, nil
}

func run(ctx context.Context, cfg *config.Config, logger logrus.FieldLogger, coins, output string) error {
	logger.WithField("symbols", coins).Info("fetching latest quotes")

	client, err := coinmarketcap.New(cfg.CoinMarketCap.APIKey, coinmarketcap.WithBaseURL(cfg.CoinMarketCap.APIHost))
	if err != nil {
		return fmt.Errorf("failed to create coinmarketcap client: %w", err)
	}

	resp, err := client.QuotesLatest(ctx, coins)
	if err != nil {
		return fmt.Errorf("failed to get quotes: %w", err)
	}

	logger.Infof("received quotes for %d currencies", len(resp.Data))
	for _, c := range resp.Data {
		logger.Debug(c.String())
	}

	if err := prices.WriteFile(output, resp.Data); err != nil {
		return fmt.Errorf("failed to write prices: %w", err)
	}

	logger.WithField("path", output).Info("wrote prices")
	return nil
}
