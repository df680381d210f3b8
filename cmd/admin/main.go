package main

import (
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"SameKart/internal/admin"
	"SameKart/internal/config"
	"SameKart/internal/kv"
	"SameKart/internal/session"
	"SameKart/pkg/kit"
)

func main() {
	service := "admin"
	log := kit.NewLogger(service)
	defer func() { _ = log.Sync() }()

	cfg := config.Load("8081")

	state, err := kv.NewFileStore(cfg.DataDir)
	if err != nil {
		log.Fatal("open state dir failed", zap.Error(err))
	}

	jwt := session.NewTokenMaker(cfg.JWTSecret)

	store, err := session.NewStore(state, jwt, cfg.LoginDelay, log)
	if err != nil {
		log.Fatal("init session store failed", zap.Error(err))
	}

	sess := &session.Server{Log: log, Store: store, JWT: jwt}
	s := &admin.Server{
		Storefront: admin.NewStorefrontClient(cfg.StorefrontURL),
		Log:        log,
	}

	reg := prometheus.NewRegistry()
	h := admin.NewHandler(sess, s, admin.HTTPDeps{
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
