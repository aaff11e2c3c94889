package main

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"perpScope/internal/config"
)

func main() {
	root := &cobra.Command{
		Use:          "perpscope",
		Short:        "Data access for the perps protocol price feed and subgraph",
		SilenceUsage: true,
	}

	root.PersistentFlags().String("config", "", "config file path")
	root.PersistentFlags().String("price-url", "", "price metadata service base URL")
	root.PersistentFlags().String("subgraph-url", "", "subgraph endpoint URL")
	root.PersistentFlags().String("log-level", "info", "log level (debug, info, warn, error)")

	pricesCmd := &cobra.Command{
		Use:   "prices",
		Short: "Fetch the full latest-prices table",
		Args:  cobra.NoArgs,
		RunE:  runPrices,
	}
	root.AddCommand(pricesCmd)

	priceCmd := &cobra.Command{
		Use:   "price FROM TO",
		Short: "Fetch the mid price and market state for one asset pair",
		Args:  cobra.ExactArgs(2),
		RunE:  runPrice,
	}
	root.AddCommand(priceCmd)

	watchCmd := &cobra.Command{
		Use:   "watch",
		Short: "Poll the price table and store snapshots",
		Args:  cobra.NoArgs,
		RunE:  runWatch,
	}
	watchCmd.Flags().Duration("interval", 10*time.Second, "polling interval")
	watchCmd.Flags().String("out", "./data/quotes.jsonl", "output JSONL path")
	watchCmd.Flags().String("pg-dsn", "", "Postgres DSN (JSONL output when empty)")
	root.AddCommand(watchCmd)

	pairsCmd := &cobra.Command{
		Use:   "pairs",
		Short: "List tradable pairs",
		Args:  cobra.NoArgs,
		RunE:  runPairs,
	}
	root.AddCommand(pairsCmd)

	pairCmd := &cobra.Command{
		Use:   "pair ID",
		Short: "Fetch one pair's parameters",
		Args:  cobra.ExactArgs(1),
		RunE:  runPair,
	}
	root.AddCommand(pairCmd)

	paramCmd := &cobra.Command{
		Use:   "param",
		Short: "Fetch the liquidation margin threshold",
		Args:  cobra.NoArgs,
		RunE:  runParam,
	}
	root.AddCommand(paramCmd)

	tradesCmd := &cobra.Command{
		Use:   "trades TRADER",
		Short: "List a trader's open trades",
		Args:  cobra.ExactArgs(1),
		RunE:  runTrades,
	}
	root.AddCommand(tradesCmd)

	ordersCmd := &cobra.Command{
		Use:   "orders TRADER",
		Short: "List a trader's active limit orders",
		Args:  cobra.ExactArgs(1),
		RunE:  runOrders,
	}
	root.AddCommand(ordersCmd)

	historyCmd := &cobra.Command{
		Use:   "history TRADER",
		Short: "List a trader's recent order history, oldest first",
		Args:  cobra.ExactArgs(1),
		RunE:  runHistory,
	}
	historyCmd.Flags().Int("last", 10, "maximum history entries")
	historyCmd.Flags().String("pg-dsn", "", "Postgres DSN to also persist the page")
	root.AddCommand(historyCmd)

	orderCmd := &cobra.Command{
		Use:   "order ID",
		Short: "Fetch one order by id",
		Args:  cobra.ExactArgs(1),
		RunE:  runOrder,
	}
	root.AddCommand(orderCmd)

	tradeCmd := &cobra.Command{
		Use:   "trade ID",
		Short: "Fetch one trade by id",
		Args:  cobra.ExactArgs(1),
		RunE:  runTrade,
	}
	root.AddCommand(tradeCmd)

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func loadConfig(cmd *cobra.Command) (config.Config, error) {
	cfgFile, _ := cmd.Flags().GetString("config")
	return config.Load(cfgFile, cmd.Flags())
}

func newLogger(level string) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevel()
	if err := cfg.Level.UnmarshalText([]byte(level)); err != nil {
		return nil, err
	}

	cfg.EncoderConfig.TimeKey = "ts"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	return cfg.Build()
}

func printJSON(v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(data))
	return nil
}
