package main

import (
	"context"
	"errors"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"SameKart/internal/catalog"
	"SameKart/internal/config"
	"SameKart/internal/kv"
	"SameKart/pkg/kit"
)

func main() {
	service := "storefront"
	log := kit.NewLogger(service)
	defer func() { _ = log.Sync() }()

	cfg := config.Load("8082")

	state, err := kv.NewFileStore(cfg.DataDir)
	if err != nil {
		log.Fatal("open state dir failed", zap.Error(err))
	}

	store := catalog.NewMemStore(state, cfg.CatalogLoadDelay)

	// The seed load happens once at startup; shutting the server down
	// cancels a load still in flight.
	loadCtx, cancelLoad := context.WithCancel(context.Background())
	defer cancelLoad()
	go func() {
		if err := store.Load(loadCtx); err != nil && !errors.Is(err, context.Canceled) {
			log.Error("catalog load failed", zap.Error(err))
		}
	}()

	s := &catalog.Server{Store: store, Log: log}

	reg := prometheus.NewRegistry()
	h := catalog.NewHandler(s, catalog.HTTPDeps{
		Log:            log,
		Service:        service,
		Registry:       reg,
		MetricsEnabled: cfg.MetricsEnabled,
		MetricsToken:   cfg.MetricsToken,
	})

	if err := kit.RunHTTPServer(":"+cfg.Port, h, log); err != nil {
		log.Fatal("http server stopped", zap.Error(err))
	}
}
