package main

import (
	"context"
	"os"

	"github.com/nimasrn/debt-ledger/internal/app"
	"github.com/nimasrn/debt-ledger/internal/config"
	"github.com/nimasrn/debt-ledger/internal/handlers"
	xhttp "github.com/nimasrn/debt-ledger/pkg/http"
	"github.com/nimasrn/debt-ledger/pkg/logger"
	"github.com/nimasrn/debt-ledger/pkg/prom"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	err := config.Load(config.EnvPathFromArgs(os.Args))
	if err != nil {
		logger.Error("failed to load config", "error", err)
		return
	}
	cfg := config.Get()
	if err := app.SetupLogging(cfg); err != nil {
		logger.Error("failed to set up logging", "error", err)
		return
	}
	defer logger.Sync()
	logger.Info("starting ledger api", "version", version, "commit", commit, "date", date)

	if cfg.MetricsEnable {
		hostname, _ := os.Hostname()
		if err := prom.Create(hostname, cfg.AppEnv, cfg.PromNamespace); err != nil {
			logger.Error("failed creating metrics", "error", err)
			return
		}
		go prom.ListenAndServer(cfg.MetricsAddr, cfg.MetricsURI)
	}

	a, err := app.New(context.Background(), cfg)
	if err != nil {
		logger.Error("failed to open the ledger", "error", err)
		return
	}
	defer a.Close()

	s := newServer(a)
	s.CloseOnSignal()
	if err := s.ListenAndServe(cfg.HttpListenAddr); err != nil {
		logger.Error("error in running http-server", "error", err)
	}
}

// newServer wires the ledger routes. Recover sits inside Timeout because the
// timeout handler runs the request on its own goroutine.
func newServer(a *app.App) *xhttp.Engine {
	s := xhttp.CreateServer()
	s.Use(xhttp.RequestLoggerMiddleware)
	s.Use(xhttp.TimeoutMiddleware(s.Option().RequestTimeout))
	s.Use(xhttp.RecoverMiddleware)
	s.Use(xhttp.CompressMiddleware(6))

	g := s.Router.Group("/api/v1")
	handlers.RegisterHealthRoutes(g, handlers.NewHealthHandler(a.DB))
	handlers.RegisterLedgerRoutes(g, handlers.NewLedgerHandler(a.Controller))
	return s
}
