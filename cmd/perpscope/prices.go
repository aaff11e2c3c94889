package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"perpScope/internal/pricefeed"
	"perpScope/internal/storage"
	"perpScope/internal/storage/postgres"
)

func runPrices(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		return err
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	client := pricefeed.NewClient(cfg.PriceURL, logger)
	quotes, err := client.LatestPrices(ctx)
	if err != nil {
		return err
	}

	return printJSON(quotes)
}

func runPrice(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		return err
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	client := pricefeed.NewClient(cfg.PriceURL, logger)
	mid, isMarketOpen, isDayTradingClosed, err := client.Price(ctx, args[0], args[1])
	if err != nil {
		return err
	}

	return printJSON(struct {
		Mid                float64 `json:"mid"`
		IsMarketOpen       bool    `json:"isMarketOpen"`
		IsDayTradingClosed bool    `json:"isDayTradingClosed"`
	}{mid, isMarketOpen, isDayTradingClosed})
}

func runWatch(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		return err
	}
	defer logger.Sync()

	if cfg.Interval <= 0 {
		return fmt.Errorf("interval must be positive")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var sink storage.QuoteSink
	if cfg.PGDSN != "" {
		store, err := postgres.NewStore(ctx, cfg.PGDSN)
		if err != nil {
			return fmt.Errorf("connect postgres: %w", err)
		}
		defer store.Close()
		sink = store
	} else {
		sink = storage.NewJsonlStorage(cfg.Out)
	}

	client := pricefeed.NewClient(cfg.PriceURL, logger)
	limiter := rate.NewLimiter(rate.Every(cfg.Interval), 1)

	logger.Info("watch start",
		zap.Duration("interval", cfg.Interval),
		zap.String("out", cfg.Out),
		zap.Bool("postgres", cfg.PGDSN != ""),
	)

	for {
		if err := limiter.Wait(ctx); err != nil {
			logger.Info("watch stop")
			return nil
		}

		quotes, err := client.LatestPrices(ctx)
		if err != nil {
			if ctx.Err() != nil {
				logger.Info("watch stop")
				return nil
			}
			logger.Error("fetch prices", zap.Error(err))
			continue
		}

		if err := sink.PutQuoteBatch(ctx, quotes); err != nil {
			return fmt.Errorf("store quotes: %w", err)
		}
		logger.Info("snapshot stored", zap.Int("quotes", len(quotes)))
	}
}
