package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/ethereum/go-ethereum/common"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"perpScope/internal/config"
	"perpScope/internal/storage/postgres"
	"perpScope/internal/subgraph"
)

// setupSubgraph loads config, builds the logger and subgraph client, and
// installs signal handling shared by every subgraph command.
func setupSubgraph(cmd *cobra.Command) (context.Context, context.CancelFunc, config.Config, *zap.Logger, *subgraph.Client, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, nil, config.Config{}, nil, nil, err
	}

	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		return nil, nil, config.Config{}, nil, nil, err
	}

	if cfg.SubgraphURL == "" {
		return nil, nil, config.Config{}, nil, nil, fmt.Errorf("subgraph url is required")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	client := subgraph.NewClient(cfg.SubgraphURL, logger)
	return ctx, stop, cfg, logger, client, nil
}

func parseTrader(arg string) (common.Address, error) {
	if !common.IsHexAddress(arg) {
		return common.Address{}, fmt.Errorf("invalid trader address: %s", arg)
	}
	return common.HexToAddress(arg), nil
}

func runPairs(cmd *cobra.Command, _ []string) error {
	ctx, stop, _, logger, client, err := setupSubgraph(cmd)
	if err != nil {
		return err
	}
	defer stop()
	defer logger.Sync()

	pairs, err := client.Pairs(ctx)
	if err != nil {
		return err
	}
	return printJSON(pairs)
}

func runPair(cmd *cobra.Command, args []string) error {
	ctx, stop, _, logger, client, err := setupSubgraph(cmd)
	if err != nil {
		return err
	}
	defer stop()
	defer logger.Sync()

	pair, err := client.PairDetails(ctx, args[0])
	if err != nil {
		return err
	}
	return printJSON(pair)
}

func runParam(cmd *cobra.Command, _ []string) error {
	ctx, stop, _, logger, client, err := setupSubgraph(cmd)
	if err != nil {
		return err
	}
	defer stop()
	defer logger.Sync()

	threshold, err := client.LiqMarginThresholdP(ctx)
	if err != nil {
		return err
	}
	return printJSON(struct {
		LiqMarginThresholdP float64 `json:"liqMarginThresholdP"`
	}{threshold})
}

func runTrades(cmd *cobra.Command, args []string) error {
	ctx, stop, _, logger, client, err := setupSubgraph(cmd)
	if err != nil {
		return err
	}
	defer stop()
	defer logger.Sync()

	trader, err := parseTrader(args[0])
	if err != nil {
		return err
	}

	trades, err := client.OpenTrades(ctx, trader)
	if err != nil {
		return err
	}
	return printJSON(trades)
}

func runOrders(cmd *cobra.Command, args []string) error {
	ctx, stop, _, logger, client, err := setupSubgraph(cmd)
	if err != nil {
		return err
	}
	defer stop()
	defer logger.Sync()

	trader, err := parseTrader(args[0])
	if err != nil {
		return err
	}

	orders, err := client.OpenOrders(ctx, trader)
	if err != nil {
		return err
	}
	return printJSON(orders)
}

func runHistory(cmd *cobra.Command, args []string) error {
	ctx, stop, cfg, logger, client, err := setupSubgraph(cmd)
	if err != nil {
		return err
	}
	defer stop()
	defer logger.Sync()

	trader, err := parseTrader(args[0])
	if err != nil {
		return err
	}

	orders, err := client.RecentHistory(ctx, trader, cfg.LastN)
	if err != nil {
		return err
	}

	if cfg.PGDSN != "" {
		store, err := postgres.NewStore(ctx, cfg.PGDSN)
		if err != nil {
			return fmt.Errorf("connect postgres: %w", err)
		}
		defer store.Close()
		if err := store.PutOrderBatch(ctx, orders); err != nil {
			return fmt.Errorf("store orders: %w", err)
		}
		logger.Info("history stored", zap.Int("orders", len(orders)))
	}

	return printJSON(orders)
}

func runOrder(cmd *cobra.Command, args []string) error {
	ctx, stop, _, logger, client, err := setupSubgraph(cmd)
	if err != nil {
		return err
	}
	defer stop()
	defer logger.Sync()

	order, err := client.OrderByID(ctx, args[0])
	if err != nil {
		return err
	}
	if order == nil {
		logger.Info("order not found", zap.String("id", args[0]))
		return printJSON(nil)
	}
	return printJSON(order)
}

func runTrade(cmd *cobra.Command, args []string) error {
	ctx, stop, _, logger, client, err := setupSubgraph(cmd)
	if err != nil {
		return err
	}
	defer stop()
	defer logger.Sync()

	trade, err := client.TradeByID(ctx, args[0])
	if err != nil {
		return err
	}
	if trade == nil {
		logger.Info("trade not found", zap.String("id", args[0]))
		return printJSON(nil)
	}
	return printJSON(trade)
}
