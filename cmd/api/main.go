package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/adaptor"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/Siri-durga/dex-amm/internal/config"
	"github.com/Siri-durga/dex-amm/internal/handler"
	"github.com/Siri-durga/dex-amm/internal/logging"
	"github.com/Siri-durga/dex-amm/internal/metrics"
	"github.com/Siri-durga/dex-amm/internal/pool"
	"github.com/Siri-durga/dex-amm/internal/service"
	"github.com/Siri-durga/dex-amm/internal/token"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	_ = godotenv.Load()

	cfg, err := config.FromEnv()
	if err != nil {
		return err
	}

	logger := logging.NewLogger(cfg.LogLevel, cfg.LogFormat)
	slog.SetDefault(logger)

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	tokenA, err := newToken(cfg.Pool.TokenA)
	if err != nil {
		return err
	}
	tokenB, err := newToken(cfg.Pool.TokenB)
	if err != nil {
		return err
	}

	p, err := pool.New(pool.Config{
		Address: cfg.Pool.Address,
		AssetA:  tokenA.Address(),
		AssetB:  tokenB.Address(),
		LedgerA: tokenA,
		LedgerB: tokenB,
		FeeBps:  cfg.Pool.FeeBps,
	}, pool.WithLogger(logger), pool.WithMetrics(metrics.New(reg)), pool.WithInvariantChecks())
	if err != nil {
		return fmt.Errorf("create pool: %w", err)
	}
	logger.Info("pool created",
		"pool", p.Address().Hex(),
		"assetA", tokenA.Symbol()+"@"+tokenA.Address().Hex(),
		"assetB", tokenB.Symbol()+"@"+tokenB.Address().Hex(),
		"feeBps", p.FeeBps())

	poolService := service.NewPoolService(logger, p, tokenA, tokenB)
	poolHandler := handler.NewPoolHandler(logger, poolService)

	app := fiber.New()
	poolHandler.Register(app)
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		errCh <- app.Listen(cfg.Addr)
	}()

	select {
	case <-ctx.Done():
	case err := <-errCh:
		if err != nil {
			_ = app.Shutdown()
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		logger.Error("shutdown", "err", err)
	}
	return nil
}

// newToken creates the in-memory ledger for t and mints its genesis balances.
func newToken(t config.Token) (*token.Token, error) {
	tok := token.New(t.Symbol, t.Address)
	for owner, amount := range t.Balances {
		if err := tok.Mint(owner, amount); err != nil {
			return nil, fmt.Errorf("genesis %s: %w", t.Symbol, err)
		}
	}
	return tok, nil
}
