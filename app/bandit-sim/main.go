package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"myGreenField/app/bandit-sim/router"
	"myGreenField/business/bandit"
	"myGreenField/business/yield"
	"myGreenField/internal/middleware"
	"myGreenField/internal/report"
	"myGreenField/internal/repository/memory"
	"myGreenField/internal/rest"
	"myGreenField/pkg/config"
	"myGreenField/pkg/logger"
	"myGreenField/pkg/metrics"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
)

func main() {
	cfg, err := config.Load(os.Args[1:])
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger.Init(cfg.App.Environment)
	if cfg.App.LogLevel != "" {
		if err := logger.SetLevel(cfg.App.LogLevel); err != nil {
			logger.Fatal("Invalid log level", "error", err)
		}
	}
	metrics.Init()

	scenario, err := config.LoadScenario(cfg.Bandit.ScenarioPath)
	if err != nil {
		logger.Fatal("Failed to load scenario", "path", cfg.Bandit.ScenarioPath, "error", err)
	}

	gen, err := yield.NewGenerator(scenario)
	if err != nil {
		logger.Fatal("Invalid scenario", "error", err)
	}
	runCfg := cfg.Bandit.RunConfig(gen.NumContexts(), gen.NumActions())

	// Init recorders
	console := report.NewConsole(os.Stdout, cfg.Bandit.ProgressEvery, scenario.ContextLabels(), scenario.Actions)
	observations := memory.NewObservationRepository(memory.DefaultCapacity)
	regret, err := bandit.NewRegretTracker(gen, gen.NumContexts(), gen.NumActions())
	if err != nil {
		logger.Fatal("Failed to init regret tracker", "error", err)
	}

	driver, err := bandit.NewDriver(runCfg, gen, bandit.WithRecorders(console, observations, regret))
	if err != nil {
		logger.Fatal("Failed to init driver", "error", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	ctx = bandit.WithTraceID(ctx, bandit.NewTraceID())

	run := driver.Run
	if runCfg.Workers > 1 {
		run = driver.RunParallel
	}

	table, runErr := run(ctx)
	if table == nil {
		logger.Fatal("Run failed", "error", runErr)
	}

	if err := report.PrintSummary(os.Stdout, bandit.Summarize(table, scenario.ContextLabels(), scenario.Actions)); err != nil {
		logger.Error("Failed to print summary", "error", err)
	}
	logger.Info("bandit_regret",
		"trace_id", bandit.TraceIDFromContext(ctx),
		"total", regret.Total(),
		"per_context", regret.PerContext(),
	)

	switch {
	case runErr == nil:
	case errors.Is(runErr, bandit.ErrDeadlineExceeded):
		logger.Warn("Run hit its deadline, estimates are partial", "deadline", runCfg.Deadline)
	default:
		stop()
		logger.Error("Run stopped early", "error", runErr)
		os.Exit(1)
	}

	if cfg.Server.Addr == "" || ctx.Err() != nil {
		return
	}

	svc, err := bandit.NewService(table, scenario.ContextLabels(), scenario.Actions, observations)
	if err != nil {
		logger.Fatal("Failed to init service", "error", err)
	}
	serve(ctx, cfg.Server.Addr, rest.NewBanditHandler(svc))
}

// serve blocks until ctx is cancelled by SIGINT or SIGTERM.
func serve(ctx context.Context, addr string, handler *rest.BanditHandler) {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	// Global middleware
	e.Use(echomiddleware.Recover())
	e.Use(middleware.RequestLogger())

	api := e.Group("/api/v1")
	router.SetBanditRoutes(api, handler)
	router.SetMetricsRoutes(e)

	// Goroutine server
	go func() {
		logger.Info("Server starting", "address", addr)
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start server", "error", err)
		}
	}()

	// Graceful shutdown
	<-ctx.Done()
	logger.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server shutdown error", "error", err)
	}

	logger.Info("Server stopped")
}
